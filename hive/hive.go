package hive

import (
	"math"
	"unsafe"
)

// SkipIndex constrains the skipfield counter width. The width bounds the
// maximum per-block capacity (255 or 65535) and sets per-slot overhead to
// three counters (one skipfield cell plus two free-list link words).
type SkipIndex interface {
	~uint8 | ~uint16
}

// Of is a bucketed, skip-indexed element container. The zero value is not
// usable; construct with New, NewCompact, NewWithLimits or NewOf.
//
// Of is generic over the skipfield width S. Most code should use the Hive
// or Compact aliases rather than naming Of directly.
type Of[T any, S SkipIndex] struct {
	begin Iterator[T, S]
	end   Iterator[T, S]

	// erasuresHead heads the singly-linked list of blocks that currently
	// own at least one reusable erased-slot run.
	erasuresHead *block[T, S]

	// unusedHead heads the singly-linked stack (via next) of empty blocks
	// retained by erasure/Clear or created by Reserve.
	unusedHead *block[T, S]

	size     int
	capacity int

	minCap int
	maxCap int

	source BlockSource[T, S]
}

// Hive is a container with 16-bit skipfield counters: blocks of up to 65535
// elements, three bytes of extra per-slot overhead beyond the element.
type Hive[T any] = Of[T, uint16]

// Compact is a container with 8-bit skipfield counters: blocks capped at 255
// elements, minimal per-slot overhead. Prefer it for very small elements or
// very large element counts where memory matters more than block size.
type Compact[T any] = Of[T, uint8]

// Limits bounds per-block element capacity. Every block the container
// creates has a capacity in [Min, Max].
type Limits struct {
	Min int
	Max int
}

// Config carries optional construction parameters. A nil Config, or any nil
// field, selects the defaults.
type Config[T any, S SkipIndex] struct {
	// Limits are the soft block-capacity bounds. Defaults to
	// DefaultLimits[T, S]().
	Limits *Limits

	// Source provides backing arrays for blocks. Defaults to an in-process
	// make-based source that never fails.
	Source BlockSource[T, S]
}

// New returns an empty Hive with default limits. No block is allocated
// until the first insertion.
func New[T any]() *Hive[T] {
	h, _ := NewOf[T, uint16](nil)
	return h
}

// NewCompact returns an empty Compact hive with default limits.
func NewCompact[T any]() *Compact[T] {
	h, _ := NewOf[T, uint8](nil)
	return h
}

// NewWithLimits returns an empty Hive whose blocks all have capacities in
// [min, max]. Returns ErrLimits if the bounds fall outside HardLimits.
func NewWithLimits[T any](min, max int) (*Hive[T], error) {
	return NewOf[T, uint16](&Config[T, uint16]{Limits: &Limits{Min: min, Max: max}})
}

// NewOf returns an empty container configured by cfg.
func NewOf[T any, S SkipIndex](cfg *Config[T, S]) (*Of[T, S], error) {
	h := &Of[T, S]{}
	lim := Limits{Min: defaultMinCapacity[T, S](), Max: maxSkipIndex[S]()}
	if cfg != nil && cfg.Limits != nil {
		lim = *cfg.Limits
		if err := checkLimits[S](lim); err != nil {
			return nil, err
		}
	}
	h.minCap = lim.Min
	h.maxCap = lim.Max
	h.source = defaultSource[T, S]{}
	if cfg != nil && cfg.Source != nil {
		h.source = cfg.Source
	}
	return h, nil
}

// Len returns the number of live elements.
func (h *Of[T, S]) Len() int { return h.size }

// Cap returns the total element capacity across all blocks, including
// retained unused blocks.
func (h *Of[T, S]) Cap() int { return h.capacity }

// MaxLen returns the maximum number of elements the container could hold.
func (h *Of[T, S]) MaxLen() int {
	elem := int(unsafe.Sizeof(*new(T)))
	if elem == 0 {
		elem = 1
	}
	return math.MaxInt / elem
}

// BlockCapacityLimits returns the configured soft block-capacity bounds.
func (h *Of[T, S]) BlockCapacityLimits() Limits {
	return Limits{Min: h.minCap, Max: h.maxCap}
}

// HardLimits returns the allowable range for soft block-capacity bounds:
// [3, 255] for Compact, [3, 65535] for Hive.
func HardLimits[S SkipIndex]() Limits {
	return Limits{Min: minBlockCapacity, Max: maxSkipIndex[S]()}
}

// minBlockCapacity is the hard floor on block capacity. Below three slots
// the skipfield run encoding cannot distinguish all split/merge cases.
const minBlockCapacity = 3

// maxSkipIndex returns the largest value representable by S: the hard cap
// on block capacity and therefore on any skip run length.
func maxSkipIndex[S SkipIndex]() int {
	var z S
	return int(^z)
}

func checkLimits[S SkipIndex](lim Limits) error {
	hard := HardLimits[S]()
	if !(hard.Min <= lim.Min && lim.Min <= lim.Max && lim.Max <= hard.Max) {
		return ErrLimits
	}
	return nil
}

// defaultMinCapacity adapts the default minimum block capacity to the
// element size: 8 elements, or however many it takes for one block's element
// storage to be worth at least twice the container+block bookkeeping.
func defaultMinCapacity[T any, S SkipIndex]() int {
	elem := unsafe.Sizeof(*new(T))
	if elem == 0 {
		elem = 1
	}
	overhead := unsafe.Sizeof(Of[T, S]{}) + unsafe.Sizeof(block[T, S]{})
	n := 8
	if elem*8 <= overhead*2 {
		n = int(overhead * 2 / elem)
	}
	if max := maxSkipIndex[S](); n > max {
		n = max
	}
	if n < minBlockCapacity {
		n = minBlockCapacity
	}
	return n
}

// blank empties every field that refers to storage. Callers are responsible
// for releasing blocks first where that matters.
func (h *Of[T, S]) blank() {
	h.begin = Iterator[T, S]{}
	h.end = Iterator[T, S]{}
	h.erasuresHead = nil
	h.unusedHead = nil
	h.size = 0
	h.capacity = 0
}

// reset releases every block and returns the container to its initial
// (blockless) state.
func (h *Of[T, S]) reset() {
	h.releaseAllBlocks()
	h.blank()
}

func (h *Of[T, S]) releaseAllBlocks() {
	for b := h.unusedHead; b != nil; {
		next := b.next
		h.source.Release(b.elements, b.aux)
		b = next
	}
	if h.begin.b != nil {
		for b := h.begin.b; b != nil; {
			next := b.next
			h.source.Release(b.elements, b.aux)
			b = next
		}
	}
}

// Clear destroys all live elements and collapses to a single retained block;
// every other block is parked on the unused list. Capacity is unchanged -
// follow with Trim to release memory.
func (h *Of[T, S]) Clear() {
	if h.size == 0 {
		return
	}
	// Release element references so the GC can collect what they point at.
	for it := h.begin; it != h.end; it = it.Next() {
		var zero T
		it.b.elements[it.idx] = zero
	}
	if h.begin.b != h.end.b {
		h.end.b.next = h.unusedHead
		h.unusedHead = h.begin.b.next
		h.unusedHead.prev = nil
	}
	h.resetSoleBlock(h.begin.b)
	h.erasuresHead = nil
	h.size = 0
}

// resetSoleBlock rewinds b in place as the container's only live block and
// points begin/end at its first slot.
func (h *Of[T, S]) resetSoleBlock(b *block[T, S]) {
	h.erasuresHead = nil
	b.resetFor(0, nil, nil, 0)
	h.begin = Iterator[T, S]{b: b, idx: 0}
	h.end = Iterator[T, S]{b: b, idx: 0}
}

// Swap exchanges the full contents and configuration (including capacity
// limits and block source) of h and other.
func (h *Of[T, S]) Swap(other *Of[T, S]) {
	*h, *other = *other, *h
}
