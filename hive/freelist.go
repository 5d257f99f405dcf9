package hive

// Free-list protocol. Within a block, every maximal run of erased slots
// ("skipblock") contributes exactly one node to a doubly-linked list whose
// node index is the run's first slot. The list is threaded through the
// block's aux link words: a node's prev points at the next-older node, its
// next at the next-newer one. freeListHead is the newest node (next ==
// noneIndex). Blocks owning at least one node are chained on the
// container's erasures list.

// pushFreeNode makes slot i a new free-list head in b, enrolling b on the
// erasures list if this is its first node.
func (h *Of[T, S]) pushFreeNode(b *block[T, S], i int) {
	none := noneIndex[S]()
	if b.freeListHead != none {
		b.setLinkNext(int(b.freeListHead), S(i))
	} else {
		b.erasuresNext = h.erasuresHead
		h.erasuresHead = b
	}
	b.setLink(i, b.freeListHead, none)
	b.freeListHead = S(i)
}

// unlinkFreeNode removes the node at slot i from b's free list, dropping b
// from the erasures list when its last node goes.
func (h *Of[T, S]) unlinkFreeNode(b *block[T, S], i int) {
	none := noneIndex[S]()
	prev, next := b.linkPrev(i), b.linkNext(i)
	if next != none {
		b.setLinkPrev(int(next), prev)
	} else {
		b.freeListHead = prev
	}
	if prev != none {
		b.setLinkNext(int(prev), next)
	}
	if b.freeListHead == none {
		h.removeFromErasuresList(b)
	}
}

// moveFreeNode relocates the node at slot from to slot to within b,
// preserving its neighbors. Used when an erased run shrinks or gains a new
// first slot.
func (b *block[T, S]) moveFreeNode(from, to int) {
	none := noneIndex[S]()
	prev, next := b.linkPrev(from), b.linkNext(from)
	b.setLink(to, prev, next)
	if prev != none {
		b.setLinkNext(int(prev), S(to))
	}
	if next != none {
		b.setLinkPrev(int(next), S(to))
	} else {
		b.freeListHead = S(to)
	}
}

// removeFromErasuresList unlinks b from the container's blocks-with-erasures
// list. b must be on the list.
func (h *Of[T, S]) removeFromErasuresList(b *block[T, S]) {
	if b == h.erasuresHead {
		h.erasuresHead = b.erasuresNext
		return
	}
	cur := h.erasuresHead
	for cur.erasuresNext != b {
		cur = cur.erasuresNext
	}
	cur.erasuresNext = b.erasuresNext
}
