package parking

// Allocator picks one slot for a vehicle across all floors. A nil result
// means no compatible slot exists; the caller owns the actual reservation.
type Allocator interface {
	Allocate(v *Vehicle, floors []*Floor, originFloor int) *Slot
}

// NearestSlotAllocator prefers slots closest to the origin floor, breaking
// ties by the lowest slot index. Scan order is stable, so repeated calls on
// unchanged state return the same slot.
type NearestSlotAllocator struct{}

func (NearestSlotAllocator) Allocate(v *Vehicle, floors []*Floor, originFloor int) *Slot {
	var best *Slot
	shortest := int(^uint(0) >> 1)

	for _, floor := range floors {
		for _, slot := range floor.AvailableSlotsFor(v) {
			if d := slot.DistanceFrom(originFloor); d < shortest {
				shortest = d
				best = slot
			}
		}
	}

	return best
}
