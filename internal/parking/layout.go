package parking

import (
	"fmt"
	"math"
)

// FloorLayout describes how many slots of each class a floor gets and what
// share of them are charging-capable.
type FloorLayout struct {
	Small         int
	Medium        int
	Large         int
	ChargingRatio float64
}

// BuildFloor lays out a floor deterministically: class letters in the slot
// id, charging pads on a fixed stride derived from the ratio. The same
// layout always produces the same geometry, so restarts and tests agree.
func BuildFloor(index int, layout FloorLayout) (*Floor, error) {
	floor := NewFloor(index)
	stride := chargingStride(layout.ChargingRatio)

	n := 1
	add := func(class SlotClass, letter string, count int) error {
		for i := 0; i < count; i++ {
			charging := stride > 0 && n%stride == 0
			id := fmt.Sprintf("F%d%s%d", index, letter, n)
			if err := floor.AddSlot(NewSlot(id, class, charging, index, n)); err != nil {
				return err
			}
			n++
		}
		return nil
	}

	if err := add(Small, "S", layout.Small); err != nil {
		return nil, err
	}
	if err := add(Medium, "M", layout.Medium); err != nil {
		return nil, err
	}
	if err := add(Large, "L", layout.Large); err != nil {
		return nil, err
	}

	return floor, nil
}

func chargingStride(ratio float64) int {
	if ratio <= 0 {
		return 0
	}
	if ratio >= 1 {
		return 1
	}
	return int(math.Round(1 / ratio))
}

// BuildFacility assembles floors and gates in one go. Gate ids resolve
// against these lists for the process lifetime.
func BuildFacility(allocator Allocator, pricer Pricer, layouts []FloorLayout, entryGates, exitGates []Gate) (*Facility, error) {
	facility := NewFacility(allocator, pricer)

	for i, layout := range layouts {
		floor, err := BuildFloor(i, layout)
		if err != nil {
			return nil, err
		}
		facility.AddFloor(floor)
	}

	for _, g := range entryGates {
		facility.AddEntryGate(g)
	}
	for _, g := range exitGates {
		facility.AddExitGate(g)
	}

	return facility, nil
}
