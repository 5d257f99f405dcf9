package hive

import "fmt"

// Splice appends other's live sequence to h by transferring block ownership;
// no element moves and no allocation happens. other is left empty (its
// parked blocks are released). Requires every other block capacity to fit
// h's limits; otherwise ErrSpliceIncompatible is returned before any
// mutation.
//
// To keep iteration cheap, whichever of the two containers has more free
// trailing capacity in its end block becomes the back of the combined
// sequence, so the two sequences may appear in either order. The trailing
// free slots of the front part are converted into one erased run.
func (h *Of[T, S]) Splice(other *Of[T, S]) error {
	if h == other {
		panic("hive: Splice of a container with itself")
	}
	if other.size == 0 {
		return nil
	}
	if h.size == 0 {
		// Adopt other wholesale, configuration included.
		h.releaseAllBlocks()
		*h = *other
		other.blank()
		return nil
	}

	// The side with less trailing free capacity in its end block goes in
	// front; its free tail becomes the erased run created below.
	needSwap := (h.end.b.capacity - h.end.idx) > (other.end.b.capacity - other.end.idx)
	dest, src := h, other
	if needSwap {
		dest, src = other, h
	}

	// Validate before any mutation: every inbound block must conform to the
	// destination's limits.
	if src.minCap < dest.minCap || src.maxCap > dest.maxCap {
		for b := src.begin.b; b != nil; b = b.next {
			if b.capacity < dest.minCap || b.capacity > dest.maxCap {
				return fmt.Errorf("hive: splice: block capacity %d outside [%d, %d]: %w",
					b.capacity, dest.minCap, dest.maxCap, ErrSpliceIncompatible)
			}
		}
	}

	if needSwap {
		h.Swap(other)
	}
	other.Trim()

	// Merge other's blocks-with-erasures list onto h's.
	if other.erasuresHead != nil {
		if h.erasuresHead != nil {
			tail := h.erasuresHead
			for tail.erasuresNext != nil {
				tail = tail.erasuresNext
			}
			tail.erasuresNext = other.erasuresHead
		} else {
			h.erasuresHead = other.erasuresHead
		}
	}

	// Convert the end block's free tail into an erased run so lastEndpoint
	// can move to the block's capacity and iteration crosses cleanly.
	if distToEnd := h.end.b.capacity - h.end.idx; distToEnd != 0 {
		b := h.end.b
		prevVal := 0
		if h.end.idx > 0 {
			prevVal = int(b.skipfield[h.end.idx-1])
		}
		b.lastEndpoint = b.capacity
		if prevVal == 0 {
			b.skipfield[h.end.idx] = S(distToEnd)
			b.skipfield[b.capacity-1] = S(distToEnd)
			h.pushFreeNode(b, h.end.idx)
		} else {
			b.skipfield[h.end.idx-prevVal] = S(prevVal + distToEnd)
			b.skipfield[b.capacity-1] = S(prevVal + distToEnd)
		}
	}

	// Renumber the inbound blocks to continue h's ordering, then join.
	num := h.end.b.number
	for b := other.begin.b; b != nil; b = b.next {
		num++
		b.number = num
	}
	h.end.b.next = other.begin.b
	other.begin.b.prev = h.end.b
	h.end = other.end
	h.size += other.size
	h.capacity += other.capacity
	other.blank()
	return nil
}
