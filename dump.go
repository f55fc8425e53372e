package goslab

import (
	"fmt"
	"io"
)

// Dump writes a human-readable snapshot of the cache's configuration
// and every slab's free chain to w. The format is not part of the
// stable contract and traversal order within a list is not
// guaranteed; callers must not parse it or depend on slab ordering.
func (c *Cache) Dump(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(w, "cache object_size=%d slab_order=%d cnt_objects=%d meta_offset=%d\n",
		c.requestedSize, c.slabOrder, c.cntObjects, c.metaOffset)

	fmt.Fprintln(w, "free_list:")
	dumpList(w, c.freeList)

	fmt.Fprintln(w, "partbusy_list:")
	dumpList(w, c.partbusyList)

	fmt.Fprintln(w, "busy_list:")
	dumpList(w, c.busyList)
}

func dumpList(w io.Writer, head *slabHeader) {
	for h := head; h != nil; h = h.next {
		h.dump(w)
	}
}

// dump writes one slab's free-chain contents to w.
func (h *slabHeader) dump(w io.Writer) {
	fmt.Fprintf(w, "\tslab base=%p free=%d\n", h.base, h.free)

	idx := 1
	for p := h.head; p != nil; idx++ {
		fmt.Fprintf(w, "\t\t[%d] %p\n", idx, p)
		p = (*blockLink)(p).next
	}
}
