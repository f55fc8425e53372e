package goslab

import "unsafe"

// Free returns a block previously obtained from Alloc on this cache.
// Behavior is undefined if ptr was not allocated by this cache, or was
// already freed — the allocator does not track per-block ownership or
// a free/in-use flag, since doing so would cost the O(1) budget Free
// is specified for.
func (c *Cache) Free(ptr unsafe.Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blockPtr := subOffset(ptr, wordSize)
	base := maskToBase(blockPtr, c.slabSize)
	header := (*slabHeader)(addOffset(base, c.metaOffset))

	link := (*blockLink)(blockPtr)
	link.next = header.head
	header.head = blockPtr
	header.free++

	switch {
	case header.free == 1:
		// Was fully busy; always detach from its source list and
		// attach to its destination, whether or not it happened to
		// be at the list head.
		detach(&c.busyList, header)
		if header.free == c.cntObjects {
			pushFront(&c.freeList, header)
		} else {
			pushFront(&c.partbusyList, header)
		}
	case header.free == c.cntObjects:
		detach(&c.partbusyList, header)
		pushFront(&c.freeList, header)
	default:
		// Remains partially busy; the header update above already
		// reflects the new free count.
	}
}
