package hive

import (
	"fmt"
	"iter"
)

// InsertFill inserts n copies of v. Erased runs are refilled first, in
// free-list order, then trailing capacity, then parked blocks, then new
// blocks. Capacity for all n elements is reserved up front.
func (h *Of[T, S]) InsertFill(n int, v T) error {
	return h.InsertFunc(n, func(int) (T, error) { return v, nil })
}

// InsertSlice inserts every element of vs, in order, via the bulk path.
func (h *Of[T, S]) InsertSlice(vs []T) error {
	return h.InsertFunc(len(vs), func(i int) (T, error) { return vs[i], nil })
}

// InsertSeq inserts every element yielded by seq. The sequence length is
// unknown, so elements are inserted one at a time rather than through the
// reserving bulk path.
func (h *Of[T, S]) InsertSeq(seq iter.Seq[T]) error {
	for v := range seq {
		if _, err := h.Insert(v); err != nil {
			return err
		}
	}
	return nil
}

// InsertFunc inserts n elements produced by ctor(0..n-1). If a constructor
// fails, the elements already produced stay inserted, all invariants are
// restored, and the error is returned: the container reflects a well-formed
// prefix of the operation.
func (h *Of[T, S]) InsertFunc(n int, ctor func(int) (T, error)) error {
	switch {
	case n == 0:
		return nil
	case n == 1:
		_, err := h.Emplace(func() (T, error) { return ctor(0) })
		return err
	case h.size == 0:
		return h.AssignFunc(n, ctor)
	}
	if err := h.Reserve(h.size + n); err != nil {
		return err
	}
	i := 0
	next := func() (T, error) {
		v, err := ctor(i)
		i++
		return v, err
	}
	return h.insertN(n, next)
}

// insertN is the bulk insertion engine. Capacity must already cover n.
func (h *Of[T, S]) insertN(n int, next func() (T, error)) error {
	none := noneIndex[S]()

	// Refill whole erased runs while any remain.
	for h.erasuresHead != nil {
		b := h.erasuresHead
		idx := int(b.freeListHead)
		runLen := int(b.skipfield[idx])

		// The run may precede the first element; begin moves to the run
		// head once at least one slot there is filled.
		movesBegin := b == h.begin.b && idx < h.begin.idx

		if runLen <= n {
			// Consume the whole run; its node is popped up front.
			b.freeListHead = b.linkPrev(idx)
			if err := h.fillSkipblock(next, b, idx, runLen); err != nil {
				if movesBegin && b.skipfield[idx] == 0 {
					h.begin = Iterator[T, S]{b: b, idx: idx}
				}
				return err
			}
			if movesBegin {
				h.begin = Iterator[T, S]{b: b, idx: idx}
			}
			n -= runLen
			if b.freeListHead != none {
				b.setLinkNext(int(b.freeListHead), none)
			} else {
				h.erasuresHead = b.erasuresNext
			}
			if n == 0 {
				return nil
			}
		} else {
			// Fill a prefix and shrink the run to the suffix.
			prevIdx := b.linkPrev(idx)
			if err := h.fillSkipblock(next, b, idx, n); err != nil {
				if movesBegin && b.skipfield[idx] == 0 {
					h.begin = Iterator[T, S]{b: b, idx: idx}
				}
				return err
			}
			if movesBegin {
				h.begin = Iterator[T, S]{b: b, idx: idx}
			}
			newLen := runLen - n
			b.skipfield[idx+n] = S(newLen)
			b.skipfield[idx+runLen-1] = S(newLen)
			b.freeListHead = S(idx + n)
			b.setLink(idx+n, prevIdx, none)
			if prevIdx != none {
				b.setLinkNext(int(prevIdx), S(idx+n))
			}
			return nil
		}
	}

	// Trailing capacity of the end block.
	remainder := h.end.b.capacity - h.end.idx
	if remainder > n {
		remainder = n
	}
	if remainder != 0 {
		if err := h.fillAtEnd(remainder, next); err != nil {
			return err
		}
		b := h.end.b
		b.lastEndpoint = h.end.idx
		b.size += remainder
		if n == remainder {
			return nil
		}
		n -= remainder
	}

	// Parked blocks, then (already reserved) fresh blocks.
	h.end.b.next = h.unusedHead
	return h.fillUnusedBlocks(n, next, h.end.b.number+1, h.end.b, h.unusedHead)
}

// fillAtEnd constructs n elements at the end cursor. The target region is
// hole-free, so only the cursor moves; the caller owns lastEndpoint/size
// bookkeeping on success, recovery owns it on failure.
func (h *Of[T, S]) fillAtEnd(n int, next func() (T, error)) error {
	b := h.end.b
	for i := 0; i < n; i++ {
		v, err := next()
		if err != nil {
			h.recoverFromPartialFill(i)
			return fmt.Errorf("hive: bulk fill: %w", err)
		}
		b.elements[h.end.idx] = v
		h.end.idx++
	}
	h.size += n
	return nil
}

// recoverFromPartialFill commits the constructed prefix of a failed
// fillAtEnd: counters reflect exactly the elements built, and any chain of
// not-yet-filled blocks behind the end block goes back to the unused list.
func (h *Of[T, S]) recoverFromPartialFill(constructed int) {
	b := h.end.b
	b.lastEndpoint = h.end.idx
	b.size = h.end.idx
	h.size += constructed
	if b.next != nil {
		h.unusedHead = b.next
		b.next = nil
	}
}

// fillSkipblock constructs n elements into the erased run headed at idx in
// b (the erasures-list head block) and marks them live. n must not exceed
// the run length; the caller has already repositioned the free-list head.
func (h *Of[T, S]) fillSkipblock(next func() (T, error), b *block[T, S], idx, n int) error {
	prevNode := b.linkPrev(idx)
	for i := 0; i < n; i++ {
		v, err := next()
		if err != nil {
			h.recoverFromPartialSkipblockFill(b, idx, i, prevNode)
			return fmt.Errorf("hive: bulk fill: %w", err)
		}
		b.elements[idx+i] = v
	}
	clear(b.skipfield[idx : idx+n])
	b.size += n
	h.size += n
	return nil
}

// recoverFromPartialSkipblockFill rebuilds a valid skipblock from the
// unfilled suffix of a failed fillSkipblock: the filled prefix becomes
// live, the suffix becomes a run with correct end counters, and its node is
// relinked where the original head sat.
func (h *Of[T, S]) recoverFromPartialSkipblockFill(b *block[T, S], idx, constructed int, prevNode S) {
	none := noneIndex[S]()
	runLen := int(b.skipfield[idx]) // head counter is still the original length
	b.size += constructed
	h.size += constructed
	clear(b.skipfield[idx : idx+constructed])

	newHead := idx + constructed
	remaining := runLen - constructed
	b.skipfield[newHead] = S(remaining)
	b.skipfield[idx+runLen-1] = S(remaining)
	b.setLink(newHead, prevNode, none)
	b.freeListHead = S(newHead)
	if prevNode != none {
		b.setLinkNext(int(prevNode), S(newHead))
	}
}

// fillUnusedBlocks resets and fills blocks from the chain starting at cur
// (fully, until the remainder fits in one final block) and installs the
// final block as the end block. Total chain capacity must cover n.
func (h *Of[T, S]) fillUnusedBlocks(n int, next func() (T, error), number int, prev, cur *block[T, S]) error {
	for cur.capacity < n {
		nxt := cur.next
		cur.resetFor(cur.capacity, nxt, prev, number)
		number++
		prev = cur
		n -= cur.capacity
		h.end = Iterator[T, S]{b: cur, idx: 0}
		if err := h.fillAtEnd(cur.capacity, next); err != nil {
			return err
		}
		cur = nxt
	}
	h.unusedHead = cur.next
	cur.resetFor(n, nil, prev, number)
	h.end = Iterator[T, S]{b: cur, idx: 0}
	return h.fillAtEnd(n, next)
}

// Assign replaces the contents with n copies of v. Assign(0, v) empties the
// container and releases all blocks.
func (h *Of[T, S]) Assign(n int, v T) error {
	return h.AssignFunc(n, func(int) (T, error) { return v, nil })
}

// AssignSlice replaces the contents with the elements of vs.
func (h *Of[T, S]) AssignSlice(vs []T) error {
	return h.AssignFunc(len(vs), func(i int) (T, error) { return vs[i], nil })
}

// AssignFunc replaces the contents with n elements produced by
// ctor(0..n-1). Unlike InsertFunc, a constructor failure empties the
// container entirely before the error is returned.
func (h *Of[T, S]) AssignFunc(n int, ctor func(int) (T, error)) error {
	if n == 0 {
		h.reset()
		return nil
	}
	if err := h.prepareBlocksForAssign(n); err != nil {
		return err
	}
	i := 0
	next := func() (T, error) {
		v, err := ctor(i)
		i++
		return v, err
	}
	if err := h.fillUnusedBlocks(n, next, 0, nil, h.begin.b); err != nil {
		h.reset()
		return err
	}
	return nil
}

// prepareBlocksForAssign destroys all elements and reorganizes blocks into
// one chain (reachable from the begin block) whose capacity covers n,
// releasing surplus small blocks when the incoming size is well below the
// current capacity.
func (h *Of[T, S]) prepareBlocksForAssign(n int) error {
	for it := h.begin; it != h.end; it = it.Next() {
		var zero T
		it.b.elements[it.idx] = zero
	}

	if h.begin.b != nil && n < h.capacity && h.capacity-n >= h.minCap {
		difference := h.capacity - n
		h.end.b.next = h.unusedHead
		var prev *block[T, S]
		for cur := h.begin.b; cur != nil; {
			nxt := cur.next
			if cur.capacity <= difference {
				difference -= cur.capacity
				h.capacity -= cur.capacity
				h.source.Release(cur.elements, cur.aux)
				if cur == h.begin.b {
					h.begin.b = nxt
				}
			} else {
				if prev != nil {
					prev.next = cur
				}
				prev = cur
			}
			cur = nxt
		}
		prev.next = nil
	} else {
		if n > h.capacity {
			if err := h.Reserve(n); err != nil {
				return err
			}
		}
		h.end.b.next = h.unusedHead
	}

	h.begin = Iterator[T, S]{b: h.begin.b, idx: 0}
	h.erasuresHead = nil
	h.size = 0
	return nil
}
