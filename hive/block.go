package hive

import "fmt"

// block is one storage unit: a fixed-capacity element array, its parallel
// skipfield, free-list link words, and the chain bookkeeping. Blocks are
// owned exclusively by their container.
type block[T any, S SkipIndex] struct {
	elements []T

	// aux packs the skipfield and the free-list link words into one
	// allocation: aux[0..capacity] is the skipfield (the cell at index
	// capacity is the permanent zero sentinel), and aux[capacity+1:] holds
	// two link words per slot, (prev, next), used while the slot heads an
	// erased run.
	aux       []S
	skipfield []S // aux[:capacity+1]

	// lastEndpoint is one past the highest slot ever filled since the last
	// reset. It only grows between resets; erasure never rewinds it. It is
	// the forward-iteration boundary for this block.
	lastEndpoint int

	next *block[T, S]
	prev *block[T, S]

	// freeListHead indexes the most recently pushed erased-run head, or
	// noneIndex when the block has no erasures.
	freeListHead S

	// erasuresNext links blocks on the container's blocks-with-erasures
	// list; meaningful only while freeListHead != noneIndex.
	erasuresNext *block[T, S]

	capacity int
	size     int // live elements

	// number orders blocks along the chain; used only to compare iterators
	// from different blocks.
	number int
}

// noneIndex is the free-list "no node" sentinel: the all-ones value of S.
// Block capacity never exceeds maxSkipIndex, so the largest valid slot index
// is maxSkipIndex-1 and the sentinel cannot collide.
func noneIndex[S SkipIndex]() S {
	var z S
	return ^z
}

func auxLen(capacity int) int { return (capacity + 1) + 2*capacity }

// newBlock allocates a block of the given capacity and links it after prev.
// The first slot is left reserved (lastEndpoint == 1, size == 1): block
// creation happens on the insertion hot path, and the caller fills slot 0.
func newBlock[T any, S SkipIndex](src BlockSource[T, S], capacity int, prev *block[T, S]) (*block[T, S], error) {
	elems, err := src.AllocElements(capacity)
	if err != nil {
		return nil, fmt.Errorf("hive: allocating %d element slots: %w (%w)", capacity, err, ErrOutOfMemory)
	}
	aux, err := src.AllocAux(auxLen(capacity))
	if err != nil {
		src.Release(elems, nil)
		return nil, fmt.Errorf("hive: allocating block aux array: %w (%w)", err, ErrOutOfMemory)
	}
	b := &block[T, S]{
		elements:     elems[:capacity],
		aux:          aux[:auxLen(capacity)],
		lastEndpoint: 1,
		prev:         prev,
		freeListHead: noneIndex[S](),
		capacity:     capacity,
		size:         1,
	}
	b.skipfield = b.aux[:capacity+1]
	clear(b.skipfield) // pooled sources may hand back dirty memory
	if prev != nil {
		b.number = prev.number + 1
	}
	return b, nil
}

// resetFor rewinds a block for reuse with the first fill slots considered
// occupied. The skipfield sentinel is never written after creation, so only
// the first capacity cells are cleared.
func (b *block[T, S]) resetFor(fill int, next, prev *block[T, S], number int) {
	b.lastEndpoint = fill
	b.next = next
	b.prev = prev
	b.freeListHead = noneIndex[S]()
	b.size = fill
	b.erasuresNext = nil
	b.number = number
	clear(b.skipfield[:b.capacity])
}

// firstLive returns the index of the first unerased slot, which is slot 0
// plus whatever run of erasures starts the block.
func (b *block[T, S]) firstLive() int { return int(b.skipfield[0]) }

/* ---------- free-list link words ---------- */

func (b *block[T, S]) linkPrev(i int) S { return b.aux[b.capacity+1+2*i] }
func (b *block[T, S]) linkNext(i int) S { return b.aux[b.capacity+1+2*i+1] }

func (b *block[T, S]) setLink(i int, prev, next S) {
	b.aux[b.capacity+1+2*i] = prev
	b.aux[b.capacity+1+2*i+1] = next
}

func (b *block[T, S]) setLinkPrev(i int, v S) { b.aux[b.capacity+1+2*i] = v }
func (b *block[T, S]) setLinkNext(i int, v S) { b.aux[b.capacity+1+2*i+1] = v }
