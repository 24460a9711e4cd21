package objectpool

import (
	"sync/atomic"
)

// Buffer is a fixed-capacity, lock-free slot array used as the storage core
// of a pool. Every slot holds either nil or a pointer to a distinct item.
// TryDequeue and TryEnqueue are safe for arbitrary concurrent producers and
// consumers; each scans the slots linearly and claims one with a single
// compare-and-swap. No FIFO ordering is promised.
//
// Both operations are O(capacity) worst case, which is acceptable for the
// small capacities object pools run with.
//
// Resize is NOT safe to call concurrently with itself. The owning pool
// serializes structural changes through a single adjustment flag while
// dequeue and enqueue remain lock-free.
type Buffer[T any] struct {
	slots atomic.Pointer[[]atomic.Pointer[T]]
}

// NewBuffer creates a buffer with the given capacity. Capacity must be
// positive; the pool validates its bounds before constructing a buffer.
func NewBuffer[T any](capacity int) *Buffer[T] {
	b := &Buffer[T]{}
	slots := make([]atomic.Pointer[T], capacity)
	b.slots.Store(&slots)
	return b
}

// TryDequeue removes and returns an item from the first occupied slot.
// Returns false if no occupied slot was found. An empty buffer is not an
// error; the caller decides whether that is a pool miss.
func (b *Buffer[T]) TryDequeue() (*T, bool) {
	slots := *b.slots.Load()
	for i := range slots {
		item := slots[i].Load()
		if item == nil {
			continue
		}
		if slots[i].CompareAndSwap(item, nil) {
			return item, true
		}
		// Lost the race for this slot, keep scanning
	}
	return nil, false
}

// TryEnqueue stores the item in the first empty slot. Returns false if every
// slot is occupied; the caller must then destroy the item rather than drop it.
//
// A successful claim is re-verified against the live slot array: an enqueue
// racing a Resize could otherwise land in a retired array after the resize
// sweeps have passed over it, stranding the item where no dequeue will ever
// find it.
func (b *Buffer[T]) TryEnqueue(item *T) bool {
	for {
		snap := b.slots.Load()
		slots := *snap
		claimed := -1
		for i := range slots {
			if slots[i].Load() != nil {
				continue
			}
			if slots[i].CompareAndSwap(nil, item) {
				claimed = i
				break
			}
			// Another producer claimed this slot, keep scanning
		}
		if claimed < 0 {
			return false
		}

		cur := b.slots.Load()
		if cur == snap {
			return true
		}
		// The array was swapped while the claim was in flight. The slot may
		// still be live: a shrink retains the prefix of the old backing array.
		curSlots := *cur
		if claimed < len(curSlots) && &curSlots[claimed] == &slots[claimed] {
			return true
		}
		// Stranded in a retired array. Take the item back and retry against
		// the fresh array. Losing this swap means a resize sweep already
		// collected the item, which is a completed hand-off.
		if !slots[claimed].CompareAndSwap(item, nil) {
			return true
		}
	}
}

// Count returns the number of occupied slots. The value is computed by
// scanning and is an approximation while producers and consumers are active.
func (b *Buffer[T]) Count() int {
	slots := *b.slots.Load()
	n := 0
	for i := range slots {
		if slots[i].Load() != nil {
			n++
		}
	}
	return n
}

// Capacity returns the current slot count.
func (b *Buffer[T]) Capacity() int {
	return len(*b.slots.Load())
}

// Resize changes the buffer capacity and returns any items evicted by a
// shrink. The caller owns the returned items and must release their
// resources explicitly.
//
// Growing reallocates a larger array and moves the occupied slots across.
// Shrinking installs the truncated prefix first, so concurrent traffic lands
// in retained slots, then collects everything stranded past the boundary.
// A second sweep of the old array catches writers that raced the hand-off;
// writers that land after both sweeps notice the retired array themselves and
// withdraw the item (see TryEnqueue), so nothing is ever stranded.
func (b *Buffer[T]) Resize(newCapacity int) []*T {
	old := *b.slots.Load()
	if newCapacity == len(old) {
		return nil
	}

	if newCapacity > len(old) {
		grown := make([]atomic.Pointer[T], newCapacity)
		b.slots.Store(&grown)

		// Move items over; a concurrent dequeuer still holding the old
		// array can win any individual slot, in which case Swap sees nil.
		// Re-insertion goes through TryEnqueue so it cannot clobber slots
		// claimed by concurrent producers on the new array.
		var overflow []*T
		for pass := 0; pass < 2; pass++ {
			for i := range old {
				if item := old[i].Swap(nil); item != nil {
					if !b.TryEnqueue(item) {
						overflow = append(overflow, item)
					}
				}
			}
		}
		return overflow
	}

	// Shrink: the retained prefix shares its backing array with the old
	// slice, so in-flight enqueues below the boundary stay visible.
	trunc := old[:newCapacity]
	b.slots.Store(&trunc)

	var evicted []*T
	for pass := 0; pass < 2; pass++ {
		for i := newCapacity; i < len(old); i++ {
			if item := old[i].Swap(nil); item != nil {
				evicted = append(evicted, item)
			}
		}
	}
	return evicted
}
