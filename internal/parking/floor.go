package parking

import "fmt"

type Floor struct {
	Index        int
	slots        []*Slot
	slotsByClass map[SlotClass][]*Slot
}

func NewFloor(index int) *Floor {
	return &Floor{
		Index: index,
		slotsByClass: map[SlotClass][]*Slot{
			Small:  {},
			Medium: {},
			Large:  {},
		},
	}
}

func (f *Floor) AddSlot(s *Slot) error {
	if s.Floor != f.Index {
		return fmt.Errorf("slot %s belongs to floor %d, not %d", s.ID, s.Floor, f.Index)
	}
	f.slots = append(f.slots, s)
	f.slotsByClass[s.Class] = append(f.slotsByClass[s.Class], s)
	return nil
}

func (f *Floor) Slots() []*Slot {
	return f.slots
}

func (f *Floor) SlotsByClass(class SlotClass) []*Slot {
	return f.slotsByClass[class]
}

// AvailableSlotsFor returns the slots on this floor that can take the
// vehicle right now, in slot order.
func (f *Floor) AvailableSlotsFor(v *Vehicle) []*Slot {
	var available []*Slot
	for _, s := range f.slots {
		if s.CanAccommodate(v) {
			available = append(available, s)
		}
	}
	return available
}

func (f *Floor) AvailableByClass(class SlotClass) int {
	count := 0
	for _, s := range f.slotsByClass[class] {
		if s.State == SlotEmpty {
			count++
		}
	}
	return count
}

func (f *Floor) Available() int {
	count := 0
	for _, s := range f.slots {
		if s.State == SlotEmpty {
			count++
		}
	}
	return count
}

func (f *Floor) Occupied() int {
	count := 0
	for _, s := range f.slots {
		if s.State == SlotOccupied {
			count++
		}
	}
	return count
}
