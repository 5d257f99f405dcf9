package hive

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort_OrdersAcrossBlocksAndHoles(t *testing.T) {
	h := newBounded(t, 4, 8)
	rng := rand.New(rand.NewSource(41))
	vals := rng.Perm(60)
	require.NoError(t, h.InsertSlice(vals))

	// Punch holes so the permutation spans erasure-riddled blocks.
	it := h.Begin()
	for i := 0; it != h.End(); i++ {
		if i%5 == 0 {
			it = h.Erase(it)
			continue
		}
		it = it.Next()
	}
	want := collect(h)
	sort.Ints(want)

	h.Sort(func(a, b int) bool { return a < b })
	assert.Equal(t, want, collect(h))
	audit(t, h)
}

func TestSort_IteratorsStayValid(t *testing.T) {
	h := newBounded(t, 4, 4)
	its := insertAll(t, h, 5, 1, 4, 2, 3)

	h.Sort(func(a, b int) bool { return a < b })
	// Positions are untouched; only values moved through them.
	got := make([]int, 0, len(its))
	for _, it := range its {
		got = append(got, it.Value())
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	audit(t, h)
}

func TestSort_Stability(t *testing.T) {
	type pair struct{ k, tag int }
	h := New[pair]()
	require.NoError(t, h.InsertSlice([]pair{{2, 0}, {1, 1}, {2, 2}, {1, 3}, {2, 4}}))

	h.Sort(func(a, b pair) bool { return a.k < b.k })
	assert.Equal(t,
		[]pair{{1, 1}, {1, 3}, {2, 0}, {2, 2}, {2, 4}},
		collect(h))
}

func TestUnique_RemovesConsecutiveDuplicates(t *testing.T) {
	h := newBounded(t, 4, 4)
	require.NoError(t, h.InsertSlice([]int{1, 1, 2, 2, 2, 3, 1, 1, 4, 4, 4, 4, 5}))

	n := h.Unique(func(a, b int) bool { return a == b })
	assert.Equal(t, 7, n)
	assert.Equal(t, []int{1, 2, 3, 1, 4, 5}, collect(h))
	audit(t, h)

	assert.Equal(t, 0, h.Unique(func(a, b int) bool { return a == b }))
}

func TestEraseIf_RemovesMatchesInRanges(t *testing.T) {
	h := newBounded(t, 4, 4)
	require.NoError(t, h.InsertSlice(intRange(0, 30)))

	n := h.EraseIf(func(v int) bool { return v%3 == 0 })
	assert.Equal(t, 10, n)
	for v := range h.Values() {
		assert.NotZero(t, v%3)
	}
	assert.Equal(t, 20, h.Len())
	audit(t, h)
}

func TestEraseValue(t *testing.T) {
	h := newBounded(t, 4, 4)
	require.NoError(t, h.InsertSlice([]int{1, 2, 1, 3, 1, 1, 4}))

	assert.Equal(t, 4, EraseValue(h, 1))
	assert.Equal(t, []int{2, 3, 4}, collect(h))
	assert.Equal(t, 0, EraseValue(h, 1))
	audit(t, h)
}

func TestEraseIf_AllAndNone(t *testing.T) {
	h := newBounded(t, 4, 4)
	require.NoError(t, h.InsertSlice(intRange(0, 13)))

	assert.Equal(t, 0, h.EraseIf(func(int) bool { return false }))
	assert.Equal(t, 13, h.Len())

	assert.Equal(t, 13, h.EraseIf(func(int) bool { return true }))
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, h.End(), h.Begin())
	audit(t, h)
}

func TestSortUnique_Together(t *testing.T) {
	h := New[int]()
	rng := rand.New(rand.NewSource(7))
	var vals []int
	for i := 0; i < 100; i++ {
		vals = append(vals, rng.Intn(20))
	}
	require.NoError(t, h.InsertSlice(vals))

	h.Sort(func(a, b int) bool { return a < b })
	h.Unique(func(a, b int) bool { return a == b })

	want := slices.Clone(vals)
	sort.Ints(want)
	want = slices.Compact(want)
	assert.Equal(t, want, collect(h))
	audit(t, h)
}
