package parking

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrUnknownGate     = errors.New("unknown gate")
	ErrAlreadyParked   = errors.New("vehicle already parked")
	ErrNoSlotAvailable = errors.New("no compatible slot available")
	ErrNoActiveTicket  = errors.New("no active ticket")
	ErrPaymentFailed   = errors.New("payment failed")
	ErrUnknownSlot     = errors.New("unknown slot")
)

type Gate struct {
	ID    string
	Floor int
}

// Facility owns the floors, the gates and the active-ticket index, and runs
// every park or exit call under one lock so allocate-and-occupy is a single
// atomic step per vehicle.
type Facility struct {
	mu sync.Mutex

	floors    []*Floor
	entryGate []Gate
	exitGate  []Gate

	allocator Allocator
	pricer    Pricer
	payments  PaymentProcessor

	activeTickets map[string]*Ticket

	now func() time.Time
}

func NewFacility(allocator Allocator, pricer Pricer) *Facility {
	return &Facility{
		allocator:     allocator,
		pricer:        pricer,
		payments:      AcceptAllPayments,
		activeTickets: make(map[string]*Ticket),
		now:           time.Now,
	}
}

func (f *Facility) AddFloor(floor *Floor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.floors = append(f.floors, floor)
}

func (f *Facility) AddEntryGate(g Gate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entryGate = append(f.entryGate, g)
}

func (f *Facility) AddExitGate(g Gate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitGate = append(f.exitGate, g)
}

func (f *Facility) SetAllocator(a Allocator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allocator = a
}

func (f *Facility) SetPricer(p Pricer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pricer = p
}

func (f *Facility) SetPaymentProcessor(p PaymentProcessor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = p
}

// Park allocates a slot, occupies it and issues a ticket, all under the
// facility lock. The ticket and the occupied slot come into existence
// together or not at all.
func (f *Facility) Park(v *Vehicle, entryGateID string) (*Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gate, ok := findGate(f.entryGate, entryGateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGate, entryGateID)
	}

	if _, exists := f.activeTickets[v.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyParked, v.ID)
	}

	slot := f.allocator.Allocate(v, f.floors, gate.Floor)
	if slot == nil {
		return nil, fmt.Errorf("%w for vehicle %s", ErrNoSlotAvailable, v.ID)
	}

	if !slot.Park(v) {
		// The allocator only returns slots that pass CanAccommodate, and
		// nothing mutates slots outside this lock.
		return nil, fmt.Errorf("allocated slot %s rejected vehicle %s: state invariant violated", slot.ID, v.ID)
	}

	ticket := NewTicket(v, slot, gate.ID, f.now())
	f.activeTickets[v.ID] = ticket

	return ticket, nil
}

// Exit prices the stay, takes payment and only then releases the slot. A
// failed payment leaves the vehicle parked and the ticket active.
func (f *Facility) Exit(vehicleID, exitGateID string, method PaymentMethod) (*Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gate, ok := findGate(f.exitGate, exitGateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGate, exitGateID)
	}

	ticket, exists := f.activeTickets[vehicleID]
	if !exists {
		return nil, fmt.Errorf("%w for vehicle %s", ErrNoActiveTicket, vehicleID)
	}

	now := f.now()
	amount := f.pricer.Price(ticket, now)
	bill := NewBill(ticket, amount, gate.ID, now)

	if err := f.payments(bill, method); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	bill.PaymentMethod = method
	bill.Paid = true

	ticket.Slot.Release()
	delete(f.activeTickets, vehicleID)

	return bill, nil
}

// Quote previews the fare for an active stay without mutating anything.
func (f *Facility) Quote(vehicleID string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ticket, exists := f.activeTickets[vehicleID]
	if !exists {
		return 0, fmt.Errorf("%w for vehicle %s", ErrNoActiveTicket, vehicleID)
	}

	return f.pricer.Price(ticket, f.now()), nil
}

func (f *Facility) TicketFor(vehicleID string) (*Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ticket, exists := f.activeTickets[vehicleID]
	if !exists {
		return nil, fmt.Errorf("%w for vehicle %s", ErrNoActiveTicket, vehicleID)
	}
	return ticket, nil
}

type FloorSummary struct {
	Floor     int `json:"floor"`
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

type CapacitySummary struct {
	TotalSlots int            `json:"total_slots"`
	Available  int            `json:"available"`
	Occupied   int            `json:"occupied"`
	PerFloor   []FloorSummary `json:"per_floor"`
}

func (f *Facility) CapacitySummary() CapacitySummary {
	f.mu.Lock()
	defer f.mu.Unlock()

	summary := CapacitySummary{}
	for _, floor := range f.floors {
		fs := FloorSummary{
			Floor:     floor.Index,
			Total:     len(floor.Slots()),
			Available: floor.Available(),
			Occupied:  floor.Occupied(),
		}
		summary.TotalSlots += fs.Total
		summary.Available += fs.Available
		summary.Occupied += fs.Occupied
		summary.PerFloor = append(summary.PerFloor, fs)
	}
	return summary
}

func (f *Facility) IsFull() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, floor := range f.floors {
		if floor.Available() > 0 {
			return false
		}
	}
	return true
}

func (f *Facility) ActiveTickets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.activeTickets)
}

// SetSlotOutOfService takes an empty slot out of allocation scans.
func (f *Facility) SetSlotOutOfService(slotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot := f.findSlot(slotID)
	if slot == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	if !slot.SetOutOfService() {
		return fmt.Errorf("slot %s is not empty", slotID)
	}
	return nil
}

func (f *Facility) ReturnSlotToService(slotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot := f.findSlot(slotID)
	if slot == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	if !slot.ReturnToService() {
		return fmt.Errorf("slot %s is not out of service", slotID)
	}
	return nil
}

func (f *Facility) findSlot(slotID string) *Slot {
	for _, floor := range f.floors {
		for _, slot := range floor.Slots() {
			if slot.ID == slotID {
				return slot
			}
		}
	}
	return nil
}

func findGate(gates []Gate, id string) (Gate, bool) {
	for _, g := range gates {
		if g.ID == id {
			return g, true
		}
	}
	return Gate{}, false
}
