package hive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErase_ReturnsNextLivePosition(t *testing.T) {
	h := New[int]()
	its := insertAll(t, h, 10, 20, 30)

	next := h.Erase(its[1])
	assert.Equal(t, 30, next.Value())
	assert.Equal(t, []int{10, 30}, collect(h))
	audit(t, h)

	next = h.Erase(its[2])
	assert.Equal(t, h.End(), next)
	audit(t, h)
}

// Insert-then-erase must round-trip the container back to its prior state.
func TestErase_InsertEraseRoundTrip(t *testing.T) {
	h := newBounded(t, 4, 8)
	insertAll(t, h, intRange(0, 10)...)
	sizeBefore := h.Len()

	it, err := h.Insert(99)
	require.NoError(t, err)
	h.Erase(it)

	assert.Equal(t, sizeBefore, h.Len())
	assert.Equal(t, intRange(0, 10), collect(h))
	audit(t, h)
}

// The four skipfield transitions of a single erasure: isolated, extend
// left, prepend right, and merge.
func TestErase_SkipfieldRunTransitions(t *testing.T) {
	build := func(t *testing.T) (*Hive[int], []Iterator[int, uint16]) {
		h := newBounded(t, 8, 8)
		return h, insertAll(t, h, intRange(0, 8)...)
	}

	t.Run("isolated then extend left", func(t *testing.T) {
		h, its := build(t)
		h.Erase(its[2]) // isolated: run [2]
		audit(t, h)
		h.Erase(its[3]) // extends left: run [2,3]
		audit(t, h)
		assert.Equal(t, []int{0, 1, 4, 5, 6, 7}, collect(h))
	})

	t.Run("prepend right", func(t *testing.T) {
		h, its := build(t)
		h.Erase(its[3])
		h.Erase(its[2]) // prepends to the run on its right
		audit(t, h)
		assert.Equal(t, []int{0, 1, 4, 5, 6, 7}, collect(h))
	})

	t.Run("merge two runs", func(t *testing.T) {
		h, its := build(t)
		h.Erase(its[2])
		h.Erase(its[4])
		audit(t, h)
		h.Erase(its[3]) // bridges [2] and [4] into [2,4]
		audit(t, h)
		assert.Equal(t, []int{0, 1, 5, 6, 7}, collect(h))

		st := h.Stats()
		assert.Equal(t, 1, st.Runs, "merged erasures form a single run")
		assert.Equal(t, 3, st.Holes)
	})
}

func TestErase_FirstElementMovesBegin(t *testing.T) {
	h := newBounded(t, 4, 4)
	insertAll(t, h, intRange(0, 6)...)

	h.Erase(h.Begin())
	assert.Equal(t, 1, h.Begin().Value())
	h.Erase(h.Begin())
	assert.Equal(t, 2, h.Begin().Value())
	audit(t, h)
}

// --- block lifecycle on emptying erasures ---

func TestErase_SoleBlockResetInPlace(t *testing.T) {
	h := New[int]()
	it, err := h.Insert(1)
	require.NoError(t, err)
	capBefore := h.Cap()

	ret := h.Erase(it)
	assert.Equal(t, h.End(), ret)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, capBefore, h.Cap(), "sole block is retained, reset in place")
	st := h.Stats()
	assert.Equal(t, 1, st.Blocks)
	assert.Equal(t, 0, st.Unused)
	audit(t, h)

	insertAll(t, h, 5)
	assert.Equal(t, []int{5}, collect(h))
	audit(t, h)
}

func TestErase_HeadBlockIsFreed(t *testing.T) {
	h := newBounded(t, 4, 4)
	its := insertAll(t, h, intRange(0, 12)...)
	capBefore := h.Cap()

	for i := 0; i < 4; i++ {
		h.Erase(its[i])
	}
	assert.Equal(t, 8, h.Len())
	assert.Equal(t, capBefore-4, h.Cap(), "emptied head block is freed, not parked")
	assert.Equal(t, 4, h.Begin().Value())
	assert.Equal(t, 0, h.Stats().Unused)
	audit(t, h)
}

func TestErase_MiddleBlockFreedOrParked(t *testing.T) {
	// Four blocks of four: emptying block 1 (not adjacent to the end block)
	// frees it; emptying block 2 (just before the end block) parks it.
	h := newBounded(t, 4, 4)
	its := insertAll(t, h, intRange(0, 16)...)
	capBefore := h.Cap()

	for i := 4; i < 8; i++ {
		h.Erase(its[i])
	}
	assert.Equal(t, capBefore-4, h.Cap(), "distant middle block freed")
	assert.Equal(t, 0, h.Stats().Unused)
	audit(t, h)

	for i := 8; i < 12; i++ {
		h.Erase(its[i])
	}
	assert.Equal(t, capBefore-4, h.Cap(), "block before the end block is parked")
	assert.Equal(t, 1, h.Stats().Unused)
	audit(t, h)

	assert.Equal(t, []int{0, 1, 2, 3, 12, 13, 14, 15}, collect(h))
}

func TestErase_TailBlockParkedAndEndMoves(t *testing.T) {
	h := newBounded(t, 4, 4)
	its := insertAll(t, h, intRange(0, 8)...)

	// Empty the tail block back-to-front; End must land on the new tail's
	// endpoint.
	for i := 7; i >= 4; i-- {
		ret := h.Erase(its[i])
		assert.Equal(t, h.End(), ret)
	}
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, 1, h.Stats().Unused)
	assert.Equal(t, 3, h.End().Prev().Value())
	audit(t, h)

	// The parked block is refilled before any new allocation.
	capBefore := h.Cap()
	insertAll(t, h, 100)
	assert.Equal(t, capBefore, h.Cap())
	audit(t, h)
}

func TestErase_PanicsOnMisuse(t *testing.T) {
	h := New[int]()
	assert.Panics(t, func() { h.Erase(Iterator[int, uint16]{}) })

	its := insertAll(t, h, 1, 2)
	h.Erase(its[0])
	assert.Panics(t, func() { h.Erase(its[0]) }, "double erase")
	assert.Panics(t, func() { h.Erase(h.End()) })
}

// Seed scenario: big churn - insert half a million, erase every other one.
func TestErase_LargeAlternatingChurn(t *testing.T) {
	const n = 500_000
	h := New[int]()
	for i := 0; i < n; i++ {
		_, err := h.Insert(i)
		require.NoError(t, err)
	}

	it := h.Begin()
	for it != h.End() {
		it = h.Erase(it)
		if it == h.End() {
			break
		}
		it = it.Next()
	}

	require.Equal(t, n/2, h.Len())
	sum := 0
	for v := range h.Values() {
		sum += v
	}
	// Evens were erased (begin, then skip one): odds remain.
	want := 0
	for i := 1; i < n; i += 2 {
		want += i
	}
	assert.Equal(t, want, sum)
	audit(t, h)
}

// --- range erase ---

func TestEraseRange_EmptyRangeIsNoOp(t *testing.T) {
	h := New[int]()
	insertAll(t, h, 1, 2, 3)
	it := h.Begin().NextN(1)
	assert.Equal(t, it, h.EraseRange(it, it))
	assert.Equal(t, 3, h.Len())
	audit(t, h)
}

func TestEraseRange_WithinOneBlock(t *testing.T) {
	h := newBounded(t, 8, 8)
	insertAll(t, h, intRange(0, 8)...)

	first := h.Begin().NextN(2)
	last := h.Begin().NextN(5)
	ret := h.EraseRange(first, last)
	assert.Equal(t, 5, ret.Value())
	assert.Equal(t, []int{0, 1, 5, 6, 7}, collect(h))
	audit(t, h)
}

func TestEraseRange_MergesWithPrecedingRun(t *testing.T) {
	h := newBounded(t, 8, 8)
	its := insertAll(t, h, intRange(0, 8)...)
	h.Erase(its[2]) // run [2]

	first := h.Begin().NextN(3) // element 3 (slot 3, right after the run)
	last := h.Begin().NextN(5)  // element 5
	h.EraseRange(first, last)
	audit(t, h)

	assert.Equal(t, []int{0, 1, 5, 6, 7}, collect(h))
	assert.Equal(t, 1, h.Stats().Runs, "span merges with the run to its left")
}

func TestEraseRange_AcrossBlocks(t *testing.T) {
	h := newBounded(t, 4, 4)
	insertAll(t, h, intRange(0, 16)...)

	// From mid block 0 to mid block 3: partial, whole, whole, partial.
	first := h.Begin().NextN(2)
	last := h.Begin().NextN(14)
	ret := h.EraseRange(first, last)
	assert.Equal(t, 14, ret.Value())
	assert.Equal(t, []int{0, 1, 14, 15}, collect(h))
	assert.Equal(t, 4, h.Len())
	audit(t, h)
}

func TestEraseRange_FromBeginMovesBegin(t *testing.T) {
	h := newBounded(t, 4, 4)
	insertAll(t, h, intRange(0, 12)...)

	last := h.Begin().NextN(6)
	h.EraseRange(h.Begin(), last)
	assert.Equal(t, 6, h.Begin().Value())
	assert.Equal(t, []int{6, 7, 8, 9, 10, 11}, collect(h))
	audit(t, h)
}

func TestEraseRange_EverythingCollapsesToOneBlock(t *testing.T) {
	h := newBounded(t, 4, 4)
	insertAll(t, h, intRange(0, 20)...)

	ret := h.EraseRange(h.Begin(), h.End())
	assert.Equal(t, h.End(), ret)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, h.Begin(), h.End())
	assert.Equal(t, 1, h.Stats().Blocks, "container collapses to one reset block")
	audit(t, h)

	insertAll(t, h, 42)
	assert.Equal(t, []int{42}, collect(h))
	audit(t, h)
}

func TestEraseRange_SuffixUpdatesEnd(t *testing.T) {
	h := newBounded(t, 4, 4)
	insertAll(t, h, intRange(0, 10)...)

	first := h.Begin().NextN(3)
	ret := h.EraseRange(first, h.End())
	assert.Equal(t, h.End(), ret)
	assert.Equal(t, []int{0, 1, 2}, collect(h))
	assert.Equal(t, 2, h.End().Prev().Value())
	audit(t, h)
}

func TestEraseRange_UnlinksCrossedFreeNodes(t *testing.T) {
	h := newBounded(t, 8, 8)
	its := insertAll(t, h, intRange(0, 8)...)

	// Pre-punch runs inside the soon-to-be-erased span.
	h.Erase(its[2])
	h.Erase(its[4])
	h.Erase(its[5])
	audit(t, h)

	first := h.GetIterator(its[1].Ref())
	last := h.GetIterator(its[7].Ref())
	h.EraseRange(first, last)
	audit(t, h)

	assert.Equal(t, []int{0, 7}, collect(h))
	assert.Equal(t, 1, h.Stats().Runs, "crossed runs fold into one span")
}
