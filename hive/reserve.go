package hive

import "fmt"

// Reserve grows total capacity to at least n elements without changing the
// live contents: floor((n-Cap)/max) blocks of the maximum capacity plus one
// remainder block, all parked for later refill. If any allocation fails,
// everything allocated by this call is released and the container is
// unchanged. Reserve(n) for n <= Cap() is a no-op.
func (h *Of[T, S]) Reserve(n int) error {
	if n <= h.capacity {
		return nil
	}
	if n > h.MaxLen() {
		return fmt.Errorf("hive: reserve %d: %w", n, ErrReserveTooLarge)
	}

	need := n - h.capacity
	numMax := need / h.maxCap
	remainder := need - numMax*h.maxCap
	if remainder == 0 {
		remainder = h.maxCap
		numMax--
	} else if remainder < h.minCap {
		remainder = h.minCap
	}

	blocks := make([]*block[T, S], 0, numMax+1)
	fail := func(err error) error {
		for _, b := range blocks {
			h.source.Release(b.elements, b.aux)
		}
		return err
	}
	alloc := func(capn int) error {
		b, err := newBlock(h.source, capn, nil)
		if err != nil {
			return err
		}
		b.lastEndpoint = 0 // creation reserves slot 0 for insertion; undo that
		b.size = 0
		blocks = append(blocks, b)
		return nil
	}
	if err := alloc(remainder); err != nil {
		return fail(err)
	}
	for i := 0; i < numMax; i++ {
		if err := alloc(h.maxCap); err != nil {
			return fail(err)
		}
	}

	park := blocks
	if h.begin.b == nil {
		// No live chain yet: the remainder block becomes an empty live
		// block so subsequent insertion finds a ready end block.
		live := blocks[0]
		h.begin = Iterator[T, S]{b: live, idx: 0}
		h.end = Iterator[T, S]{b: live, idx: 0}
		park = blocks[1:]
	}
	for i := len(park) - 1; i >= 0; i-- {
		park[i].next = h.unusedHead
		h.unusedHead = park[i]
	}
	for _, b := range blocks {
		h.capacity += b.capacity
	}
	return nil
}

// Trim releases every parked unused block. Live blocks and elements are
// untouched; no iterator is invalidated.
func (h *Of[T, S]) Trim() {
	for h.unusedHead != nil {
		b := h.unusedHead
		h.capacity -= b.capacity
		h.unusedHead = b.next
		h.source.Release(b.elements, b.aux)
	}
}

// ShrinkToFit reduces capacity to the minimum for the current contents by
// rebuilding into densely packed blocks. All iterators and element pointers
// are invalidated. An empty container releases everything.
func (h *Of[T, S]) ShrinkToFit() error {
	if h.size == 0 {
		h.reset()
		return nil
	}
	if h.size != h.capacity {
		return h.consolidate()
	}
	return nil
}

// Reshape changes the soft block-capacity bounds. If any existing block
// (live, end, or parked) violates the new bounds the contents are
// consolidated into fresh conforming blocks, invalidating iterators;
// otherwise nothing moves.
func (h *Of[T, S]) Reshape(min, max int) error {
	lim := Limits{Min: min, Max: max}
	if err := checkLimits[S](lim); err != nil {
		return err
	}
	h.minCap = min
	h.maxCap = max

	conforms := func(b *block[T, S]) bool {
		return b.capacity >= min && b.capacity <= max
	}
	for b := h.begin.b; b != nil; b = b.next {
		if !conforms(b) {
			return h.consolidate()
		}
	}
	for b := h.unusedHead; b != nil; b = b.next {
		if !conforms(b) {
			return h.consolidate()
		}
	}
	return nil
}

// consolidate rebuilds the container into freshly reserved blocks under the
// current bounds, copying all live elements in iteration order, then
// releases the old storage. On failure the container is unchanged.
func (h *Of[T, S]) consolidate() error {
	temp := &Of[T, S]{minCap: h.minCap, maxCap: h.maxCap, source: h.source}
	it := h.begin
	ctor := func(int) (T, error) {
		v := it.b.elements[it.idx]
		it = it.Next()
		return v, nil
	}
	if err := temp.AssignFunc(h.size, ctor); err != nil {
		return err
	}
	h.Swap(temp)
	temp.releaseAllBlocks()
	return nil
}

// Clone returns a new container with the same limits and source holding a
// copy of every live element, densely packed.
func (h *Of[T, S]) Clone() (*Of[T, S], error) {
	c := &Of[T, S]{minCap: h.minCap, maxCap: h.maxCap, source: h.source}
	if h.size == 0 {
		return c, nil
	}
	// Raise the minimum toward the source size for the duration of the fill
	// so the clone doesn't open with undersized blocks, then restore it.
	if h.size > c.minCap {
		c.minCap = h.size
		if c.minCap > c.maxCap {
			c.minCap = c.maxCap
		}
	}
	it := h.begin
	ctor := func(int) (T, error) {
		v := it.b.elements[it.idx]
		it = it.Next()
		return v, nil
	}
	err := c.AssignFunc(h.size, ctor)
	c.minCap = h.minCap
	if err != nil {
		return nil, err
	}
	return c, nil
}
