package hive

import "slices"

// Sort reorders the live elements so iteration visits them in ascending
// order under less. Element values move between slots; iterators stay
// valid but may observe different values afterwards. O(n log n) with one
// O(n) side table.
func (h *Of[T, S]) Sort(less func(a, b T) bool) {
	if h.size <= 1 {
		return
	}

	type slotRef struct {
		loc  *T
		orig int
	}
	refs := make([]slotRef, 0, h.size)
	i := 0
	for it := h.begin; it != h.end; it = it.Next() {
		refs = append(refs, slotRef{loc: &it.b.elements[it.idx], orig: i})
		i++
	}

	slices.SortStableFunc(refs, func(a, b slotRef) int {
		switch {
		case less(*a.loc, *b.loc):
			return -1
		case less(*b.loc, *a.loc):
			return 1
		default:
			return 0
		}
	})

	// Apply the permutation cycle by cycle, moving each value at most once.
	for j := range refs {
		if refs[j].orig == j {
			continue
		}
		displaced := *refs[j].loc
		dst := j
		src := refs[j].orig
		for {
			*refs[dst].loc = *refs[src].loc
			dst = src
			src = refs[dst].orig
			refs[dst].orig = dst
			if src == j {
				break
			}
		}
		*refs[dst].loc = displaced
	}
}

// Unique erases all but the first element of every group of consecutive
// elements considered equal by eq, returning the number erased. Sort first
// for global deduplication.
func (h *Of[T, S]) Unique(eq func(a, b T) bool) int {
	count := 0
	end := h.end
	for it := h.begin; it != end; {
		prev := it
		it = it.Next()
		if it == end {
			break
		}
		pv := prev.b.elements[prev.idx]
		if !eq(it.b.elements[it.idx], pv) {
			continue
		}
		count++
		before := count
		last := it
		for {
			last = last.Next()
			if last == end || !eq(last.b.elements[last.idx], pv) {
				break
			}
			count++
		}
		if count != before {
			it = h.EraseRange(it, last)
		} else {
			it = h.Erase(it)
		}
		end = h.end
	}
	return count
}

// EraseValue erases every element equal to v, returning the number erased.
// A free function because it needs comparable elements, which the container
// itself does not require.
func EraseValue[T comparable, S SkipIndex](h *Of[T, S], v T) int {
	return h.EraseIf(func(x T) bool { return x == v })
}

// EraseIf erases every element for which pred returns true, coalescing
// consecutive matches into range erasures. Returns the number erased.
func (h *Of[T, S]) EraseIf(pred func(T) bool) int {
	count := 0
	end := h.end
	for it := h.begin; it != end; {
		if !pred(it.b.elements[it.idx]) {
			it = it.Next()
			continue
		}
		count++
		before := count
		last := it
		for {
			last = last.Next()
			if last == end || !pred(last.b.elements[last.idx]) {
				break
			}
			count++
		}
		if count != before {
			it = h.EraseRange(it, last)
		} else {
			it = h.Erase(it)
		}
		end = h.end
	}
	return count
}
