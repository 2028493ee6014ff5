package parking

type SlotClass string

const (
	Small  SlotClass = "SMALL"
	Medium SlotClass = "MEDIUM"
	Large  SlotClass = "LARGE"
)

// SizeUnits is the largest vehicle size the class can host.
func (c SlotClass) SizeUnits() int {
	switch c {
	case Small:
		return 1
	case Medium:
		return 2
	case Large:
		return 4
	}
	return 0
}

func (c SlotClass) CanFit(category VehicleCategory) bool {
	return c.SizeUnits() >= category.SizeUnits()
}

type SlotState string

const (
	SlotEmpty        SlotState = "EMPTY"
	SlotOccupied     SlotState = "OCCUPIED"
	SlotOutOfService SlotState = "OUT_OF_SERVICE"
)

type Slot struct {
	ID                string
	Class             SlotClass
	State             SlotState
	ChargingAvailable bool
	Vehicle           *Vehicle
	Floor             int
	Index             int
}

func NewSlot(id string, class SlotClass, chargingAvailable bool, floor, index int) *Slot {
	return &Slot{
		ID:                id,
		Class:             class,
		State:             SlotEmpty,
		ChargingAvailable: chargingAvailable,
		Vehicle:           nil,
		Floor:             floor,
		Index:             index,
	}
}

func (s *Slot) CanAccommodate(v *Vehicle) bool {
	if s.State != SlotEmpty {
		return false
	}
	if !s.Class.CanFit(v.Category) {
		return false
	}
	if v.NeedsCharging() && !s.ChargingAvailable {
		return false
	}
	return true
}

// Park re-checks compatibility at call time rather than trusting the caller.
func (s *Slot) Park(v *Vehicle) bool {
	if !s.CanAccommodate(v) {
		return false
	}
	s.Vehicle = v
	s.State = SlotOccupied
	return true
}

// Release clears the slot and returns the previous occupant. Releasing an
// empty slot returns nil and is a no-op.
func (s *Slot) Release() *Vehicle {
	if s.State != SlotOccupied {
		return nil
	}
	v := s.Vehicle
	s.Vehicle = nil
	s.State = SlotEmpty
	return v
}

// SetOutOfService marks the slot for maintenance. Occupied slots are left
// alone; there is no automatic transition back to empty.
func (s *Slot) SetOutOfService() bool {
	if s.State != SlotEmpty {
		return false
	}
	s.State = SlotOutOfService
	return true
}

func (s *Slot) ReturnToService() bool {
	if s.State != SlotOutOfService {
		return false
	}
	s.State = SlotEmpty
	return true
}

// DistanceFrom ranks slots for allocation: floor proximity dominates, the
// slot index breaks ties within a floor.
func (s *Slot) DistanceFrom(originFloor int) int {
	d := s.Floor - originFloor
	if d < 0 {
		d = -d
	}
	return d*100 + s.Index
}
