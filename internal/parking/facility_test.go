package parking

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFacility(t *testing.T) *Facility {
	t.Helper()

	f := NewFacility(NearestSlotAllocator{}, DynamicPricer{})

	ground := NewFloor(0)
	require.NoError(t, ground.AddSlot(NewSlot("F0S1", Small, false, 0, 1)))
	require.NoError(t, ground.AddSlot(NewSlot("F0M2", Medium, true, 0, 2)))
	f.AddFloor(ground)

	first := NewFloor(1)
	require.NoError(t, first.AddSlot(NewSlot("F1M1", Medium, false, 1, 1)))
	require.NoError(t, first.AddSlot(NewSlot("F1L2", Large, true, 1, 2)))
	f.AddFloor(first)

	f.AddEntryGate(Gate{ID: "ENTRY_01", Floor: 0})
	f.AddExitGate(Gate{ID: "EXIT_01", Floor: 0})

	f.now = func() time.Time { return offPeak }

	return f
}

func TestFacilityParkIssuesTicket(t *testing.T) {
	f := newTestFacility(t)

	car := NewVehicle("KA01HH1234", Car, Petrol)
	ticket, err := f.Park(car, "ENTRY_01")
	require.NoError(t, err)
	require.NotNil(t, ticket)

	assert.Equal(t, "F0M2", ticket.Slot.ID)
	assert.Equal(t, "ENTRY_01", ticket.EntryGateID)
	assert.Equal(t, offPeak, ticket.EntryTime)

	held, err := f.TicketFor("KA01HH1234")
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, held.ID)

	_, err = f.Park(car, "ENTRY_01")
	assert.ErrorIs(t, err, ErrAlreadyParked)
	assert.Equal(t, 1, f.ActiveTickets())
}

func TestFacilityParkUnknownGate(t *testing.T) {
	f := newTestFacility(t)

	_, err := f.Park(NewVehicle("KA01HH1234", Car, Petrol), "ENTRY_99")
	assert.ErrorIs(t, err, ErrUnknownGate)
	assert.Equal(t, 0, f.ActiveTickets())
}

func TestFacilityParkNoSlotAvailable(t *testing.T) {
	f := newTestFacility(t)

	// The only large slot goes to the first bus.
	_, err := f.Park(NewVehicle("KA01HH0001", Bus, Petrol), "ENTRY_01")
	require.NoError(t, err)

	before := f.CapacitySummary()

	_, err = f.Park(NewVehicle("KA01HH0002", Bus, Petrol), "ENTRY_01")
	assert.ErrorIs(t, err, ErrNoSlotAvailable)

	assert.Equal(t, before, f.CapacitySummary())
}

func TestFacilityExitBeforePark(t *testing.T) {
	f := newTestFacility(t)

	before := f.CapacitySummary()

	_, err := f.Exit("KA01HH1234", "EXIT_01", Card)
	assert.ErrorIs(t, err, ErrNoActiveTicket)
	assert.Equal(t, before, f.CapacitySummary())

	_, err = f.Exit("KA01HH1234", "EXIT_99", Card)
	assert.ErrorIs(t, err, ErrUnknownGate)
}

func TestFacilityExitReleasesSlot(t *testing.T) {
	f := newTestFacility(t)

	car := NewVehicle("KA01HH1234", Car, Petrol)
	ticket, err := f.Park(car, "ENTRY_01")
	require.NoError(t, err)

	f.now = func() time.Time { return offPeak.Add(90 * time.Minute) }

	bill, err := f.Exit("KA01HH1234", "EXIT_01", Card)
	require.NoError(t, err)

	assert.True(t, bill.Paid)
	assert.Equal(t, Card, bill.PaymentMethod)
	assert.Equal(t, "EXIT_01", bill.ExitGateID)
	assert.Equal(t, ticket.ID, bill.Ticket.ID)
	// Medium slot, 2 billable hours, off-peak.
	assert.Equal(t, 12.00, bill.Amount)

	assert.Equal(t, SlotEmpty, ticket.Slot.State)
	_, err = f.TicketFor("KA01HH1234")
	assert.ErrorIs(t, err, ErrNoActiveTicket)

	// The vehicle can come back.
	_, err = f.Park(car, "ENTRY_01")
	assert.NoError(t, err)
}

func TestFacilityPaymentFailureLeavesVehicleParked(t *testing.T) {
	f := newTestFacility(t)
	f.SetPaymentProcessor(func(b *Bill, method PaymentMethod) error {
		return errors.New("card declined")
	})

	car := NewVehicle("KA01HH1234", Car, Petrol)
	ticket, err := f.Park(car, "ENTRY_01")
	require.NoError(t, err)

	_, err = f.Exit("KA01HH1234", "EXIT_01", Card)
	assert.ErrorIs(t, err, ErrPaymentFailed)

	assert.Equal(t, SlotOccupied, ticket.Slot.State)
	assert.Equal(t, 1, f.ActiveTickets())

	f.SetPaymentProcessor(AcceptAllPayments)
	bill, err := f.Exit("KA01HH1234", "EXIT_01", Cash)
	require.NoError(t, err)
	assert.True(t, bill.Paid)
	assert.Equal(t, 0, f.ActiveTickets())
}

func TestFacilityQuoteIsReadOnly(t *testing.T) {
	f := newTestFacility(t)

	_, err := f.Quote("KA01HH1234")
	assert.ErrorIs(t, err, ErrNoActiveTicket)

	_, err = f.Park(NewVehicle("KA01HH1234", Car, Petrol), "ENTRY_01")
	require.NoError(t, err)

	f.now = func() time.Time { return offPeak.Add(90 * time.Minute) }

	before := f.CapacitySummary()
	amount, err := f.Quote("KA01HH1234")
	require.NoError(t, err)
	assert.Equal(t, 12.00, amount)
	assert.Equal(t, before, f.CapacitySummary())
	assert.Equal(t, 1, f.ActiveTickets())
}

func TestFacilityCapacitySummaryIdempotent(t *testing.T) {
	f := newTestFacility(t)

	_, err := f.Park(NewVehicle("KA01HH1234", Car, Petrol), "ENTRY_01")
	require.NoError(t, err)

	first := f.CapacitySummary()
	second := f.CapacitySummary()
	assert.Equal(t, first, second)

	assert.Equal(t, 4, first.TotalSlots)
	assert.Equal(t, 3, first.Available)
	assert.Equal(t, 1, first.Occupied)
	require.Len(t, first.PerFloor, 2)
	assert.Equal(t, 1, first.PerFloor[0].Occupied)
}

func TestFacilityRoundTripCounts(t *testing.T) {
	f := newTestFacility(t)

	vehicles := []*Vehicle{
		NewVehicle("KA01HH0001", Bike, Petrol),
		NewVehicle("KA01HH0002", Car, Petrol),
		NewVehicle("KA01HH0003", Auto, Petrol),
	}

	for _, v := range vehicles {
		_, err := f.Park(v, "ENTRY_01")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, f.CapacitySummary().Occupied)
	assert.Equal(t, 3, f.ActiveTickets())

	_, err := f.Exit("KA01HH0002", "EXIT_01", UPI)
	require.NoError(t, err)

	assert.Equal(t, 2, f.CapacitySummary().Occupied)
	assert.Equal(t, 2, f.ActiveTickets())
}

func TestFacilityIsFull(t *testing.T) {
	f := NewFacility(NearestSlotAllocator{}, DynamicPricer{})
	floor := NewFloor(0)
	require.NoError(t, floor.AddSlot(NewSlot("F0M1", Medium, false, 0, 1)))
	f.AddFloor(floor)
	f.AddEntryGate(Gate{ID: "ENTRY_01", Floor: 0})
	f.AddExitGate(Gate{ID: "EXIT_01", Floor: 0})

	assert.False(t, f.IsFull())

	_, err := f.Park(NewVehicle("KA01HH1234", Car, Petrol), "ENTRY_01")
	require.NoError(t, err)
	assert.True(t, f.IsFull())
}

func TestFacilitySwappablePricer(t *testing.T) {
	f := newTestFacility(t)

	_, err := f.Park(NewVehicle("KA01HH1234", Car, Petrol), "ENTRY_01")
	require.NoError(t, err)

	f.SetPricer(PerHourPricer{})
	f.now = func() time.Time { return offPeak.Add(90 * time.Minute) }

	amount, err := f.Quote("KA01HH1234")
	require.NoError(t, err)
	// Flat per-hour policy: 4.0 * 2 hours, no slot multiplier.
	assert.Equal(t, 8.00, amount)
}

func TestFacilitySlotMaintenance(t *testing.T) {
	f := newTestFacility(t)

	require.NoError(t, f.SetSlotOutOfService("F0M2"))

	// The out-of-service slot is skipped, so the car lands one floor up.
	ticket, err := f.Park(NewVehicle("KA01HH1234", Car, Petrol), "ENTRY_01")
	require.NoError(t, err)
	assert.Equal(t, "F1M1", ticket.Slot.ID)

	assert.Error(t, f.SetSlotOutOfService("F1M1"))

	require.NoError(t, f.ReturnSlotToService("F0M2"))
	second, err := f.Park(NewVehicle("KA01HH5678", Car, Petrol), "ENTRY_01")
	require.NoError(t, err)
	assert.Equal(t, "F0M2", second.Slot.ID)

	err = f.SetSlotOutOfService("F9X9")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestFacilitySequentialParks(t *testing.T) {
	f := newTestFacility(t)

	for i := 0; i < 4; i++ {
		_, err := f.Park(NewVehicle(fmt.Sprintf("KA01HH%04d", i), Bike, Petrol), "ENTRY_01")
		require.NoError(t, err)
	}

	_, err := f.Park(NewVehicle("KA01HH9999", Bike, Petrol), "ENTRY_01")
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
	assert.True(t, f.IsFull())
}

// farthestSlotAllocator picks the candidate with the greatest distance.
type farthestSlotAllocator struct{}

func (farthestSlotAllocator) Allocate(v *Vehicle, floors []*Floor, originFloor int) *Slot {
	var best *Slot
	for _, floor := range floors {
		for _, slot := range floor.AvailableSlotsFor(v) {
			if best == nil || slot.DistanceFrom(originFloor) > best.DistanceFrom(originFloor) {
				best = slot
			}
		}
	}
	return best
}

func TestFacilitySwappableAllocator(t *testing.T) {
	f := newTestFacility(t)

	f.SetAllocator(farthestSlotAllocator{})

	ticket, err := f.Park(NewVehicle("KA01HH1234", Car, Petrol), "ENTRY_01")
	require.NoError(t, err)
	assert.Equal(t, "F1L2", ticket.Slot.ID)
}
