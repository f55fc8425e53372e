package goslab

import "unsafe"

// Alloc returns a block of ObjectSize() usable bytes, or nil if the
// region provider could not supply a new slab. Complexity is
// amortized O(1).
//
// Lists are consulted in a fixed order: the partially busy list first
// (to keep fully free slabs in reserve for bursts), then the free
// list, and only once both are empty is a new slab built. Building a
// new slab never recurses back into Alloc — it pushes the slab onto
// the free list and retries the same loop, per the allocator's
// non-reentrant mutex contract.
func (c *Cache) Alloc() unsafe.Pointer {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if h := c.partbusyList; h != nil {
			link := (*blockLink)(h.head)
			h.head = link.next
			h.free--
			link.next = nil

			if h.head == nil {
				detach(&c.partbusyList, h)
				pushFront(&c.busyList, h)
			}
			return addOffset(unsafe.Pointer(link), wordSize)
		}

		if h := c.freeList; h != nil {
			link := (*blockLink)(h.head)
			h.head = link.next
			h.free--
			link.next = nil

			detach(&c.freeList, h)
			if h.head == nil {
				pushFront(&c.busyList, h)
			} else {
				pushFront(&c.partbusyList, h)
			}
			return addOffset(unsafe.Pointer(link), wordSize)
		}

		newHeader, err := c.newSlab()
		if err != nil {
			return nil
		}
		pushFront(&c.freeList, newHeader)
		// retry from the top: the new slab is now on freeList.
	}
}
