package hive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// --- shared test helpers ---

// audit asserts every structural invariant the container promises to hold
// after any public operation.
func audit[T any, S SkipIndex](t *testing.T, h *Of[T, S]) {
	t.Helper()
	require.NoError(t, h.Validate())
}

// collect drains the forward iteration into a slice.
func collect[T any, S SkipIndex](h *Of[T, S]) []T {
	var out []T
	for v := range h.Values() {
		out = append(out, v)
	}
	return out
}

// collectBackward drains the reverse iteration into a slice.
func collectBackward[T any, S SkipIndex](h *Of[T, S]) []T {
	var out []T
	for v := range h.Backward() {
		out = append(out, v)
	}
	return out
}

// newBounded builds a Hive[int] with fixed block bounds, failing the test on
// bad limits.
func newBounded(t *testing.T, min, max int) *Hive[int] {
	t.Helper()
	h, err := NewWithLimits[int](min, max)
	require.NoError(t, err)
	return h
}

// insertAll inserts values in order and returns the iterator of each.
func insertAll[T any, S SkipIndex](t *testing.T, h *Of[T, S], vs ...T) []Iterator[T, S] {
	t.Helper()
	its := make([]Iterator[T, S], 0, len(vs))
	for _, v := range vs {
		it, err := h.Insert(v)
		require.NoError(t, err)
		its = append(its, it)
	}
	return its
}

// intRange returns [lo, hi).
func intRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
