package hive

import "fmt"

// Insert adds a copy of v and returns its position. Erased slots are reused
// before new storage is touched; a new block is allocated only when every
// block is full and nothing is parked. Amortized O(1).
func (h *Of[T, S]) Insert(v T) (Iterator[T, S], error) {
	return h.Emplace(func() (T, error) { return v, nil })
}

// Emplace constructs an element in place via ctor and returns its position.
// If ctor fails the container is unchanged and the error is returned
// wrapped. Slot-reuse and growth behavior are identical to Insert.
func (h *Of[T, S]) Emplace(ctor func() (T, error)) (Iterator[T, S], error) {
	if h.end.b == nil {
		return h.emplaceFirst(ctor)
	}
	if h.erasuresHead != nil {
		// Reuse the newest erased run of the newest block with erasures.
		b := h.erasuresHead
		idx := int(b.freeListHead)
		v, err := ctor()
		if err != nil {
			return h.end, fmt.Errorf("hive: emplace: %w", err)
		}
		b.elements[idx] = v
		h.reuseSkipblockHead(b, idx)
		return Iterator[T, S]{b: b, idx: idx}, nil
	}
	if h.end.idx < h.end.b.capacity {
		// Trailing capacity in the end block.
		v, err := ctor()
		if err != nil {
			return h.end, fmt.Errorf("hive: emplace: %w", err)
		}
		b := h.end.b
		ret := h.end
		b.elements[h.end.idx] = v
		h.end.idx++
		b.lastEndpoint = h.end.idx
		b.size++
		h.size++
		return ret, nil
	}

	// End block is full: refill a parked block, or grow.
	var nb *block[T, S]
	if h.unusedHead != nil {
		nb = h.unusedHead
		v, err := ctor()
		if err != nil {
			return h.end, fmt.Errorf("hive: emplace: %w", err)
		}
		nb.elements[0] = v
		h.unusedHead = nb.next
		nb.resetFor(1, nil, h.end.b, h.end.b.number+1)
	} else {
		capn := h.size
		if capn > h.maxCap {
			capn = h.maxCap
		}
		var err error
		nb, err = newBlock(h.source, capn, h.end.b)
		if err != nil {
			return h.end, err
		}
		v, err := ctor()
		if err != nil {
			h.source.Release(nb.elements, nb.aux)
			return h.end, fmt.Errorf("hive: emplace: %w", err)
		}
		nb.elements[0] = v
		h.capacity += capn
	}
	h.end.b.next = nb
	h.end = Iterator[T, S]{b: nb, idx: 1}
	h.size++
	return Iterator[T, S]{b: nb, idx: 0}, nil
}

// emplaceFirst handles insertion into a container with no blocks at all.
func (h *Of[T, S]) emplaceFirst(ctor func() (T, error)) (Iterator[T, S], error) {
	nb, err := newBlock(h.source, h.minCap, nil)
	if err != nil {
		return h.end, err
	}
	v, err := ctor()
	if err != nil {
		h.source.Release(nb.elements, nb.aux)
		return h.end, fmt.Errorf("hive: emplace: %w", err)
	}
	nb.elements[0] = v
	h.begin = Iterator[T, S]{b: nb, idx: 0}
	h.end = Iterator[T, S]{b: nb, idx: 1}
	h.size = 1
	h.capacity += nb.capacity
	return h.begin, nil
}

// reuseSkipblockHead reclaims the first slot of the newest erased run in b
// (which must be the erasures-list head): the run shrinks by one, its
// free-list node moving to the new first slot, or disappears entirely.
func (h *Of[T, S]) reuseSkipblockHead(b *block[T, S], idx int) {
	none := noneIndex[S]()
	newValue := int(b.skipfield[idx]) - 1
	prev := b.linkPrev(idx)

	if newValue != 0 {
		// Shrink the run: its head moves one slot right.
		b.skipfield[idx+1] = S(newValue)
		b.skipfield[idx+newValue] = S(newValue)
		b.freeListHead = S(idx + 1)
		b.setLink(idx+1, prev, none)
		if prev != none {
			b.setLinkNext(int(prev), S(idx+1))
		}
	} else {
		// Single-slot run consumed: drop its node.
		b.freeListHead = prev
		if prev != none {
			b.setLinkNext(int(prev), none)
		} else {
			h.erasuresHead = b.erasuresNext
		}
	}

	b.skipfield[idx] = 0
	b.size++
	if b == h.begin.b && idx < h.begin.idx {
		// The reused slot precedes the old first element.
		h.begin = Iterator[T, S]{b: b, idx: idx}
	}
	h.size++
}
