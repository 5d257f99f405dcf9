// Package hive provides a bucketed, skip-indexed element container: an
// unordered-erase sequence with O(1) amortized insertion, O(1) erasure at a
// position, and pointer/iterator stability for unerased elements across both.
//
// # Overview
//
// A hive stores elements in a doubly-linked chain of fixed-capacity blocks.
// Each block colocates its element array with a parallel "skipfield" of small
// unsigned counters that run-length encodes erased slots, so iteration steps
// over arbitrarily long runs of holes in constant time without inspecting
// element storage. Erased slots are threaded into per-block free lists and
// reused by later insertions, newest-block first, so memory churn stays low
// under mixed insert/erase workloads.
//
// The container suits long-lived tables of loosely coupled objects - particle
// systems, component stores, task tables - where callers hold iterators or
// raw pointers to live elements while inserting and erasing around them.
//
// # Key Types
//
//   - Of: the container, generic over the element type and skipfield width
//   - Hive: alias of Of with 16-bit skipfield counters (performance priority)
//   - Compact: alias of Of with 8-bit counters (memory priority)
//   - Iterator: a stable position; survives unrelated insertions and erasures
//   - Limits: soft bounds on per-block element capacity
//   - BlockSource: pluggable backing-array provider for blocks
//
// # Block Layout
//
// Each block holds up to C element slots plus C+1 skipfield counters. The
// extra trailing counter is a permanent zero sentinel: forward iteration can
// always read one counter past the last slot without a bounds test, which
// keeps the increment path branch-light. Free-list link words for erased
// slots live in the same backing array as the skipfield (two words per slot),
// so a block is exactly two allocations: elements and the aux word array.
//
// # Iteration Order
//
// Iteration visits live elements in slot order within a block and blocks in
// chain order. Erasure never reorders survivors; insertion may fill earlier
// holes, so insertion order is not preserved once erasures are reused.
//
// # Usage
//
//	h := hive.New[int]()
//	it, _ := h.Insert(42)
//	for v := range h.Values() {
//	    _ = v
//	}
//	h.Erase(it)
//
// # Thread Safety
//
// A hive is not safe for concurrent mutation. Multiple concurrent readers,
// or one writer with no readers, are fine. Callers needing more must
// synchronize externally.
package hive
