package goslab

import (
	"fmt"
	"sync"

	"github.com/gocache/goslab/region"
)

// defaultSlabOrder is the slab order used when no Option overrides it:
// slab size PageSize<<10 = 4 MiB.
const defaultSlabOrder = 10

// Cache is a size class: one object size and a pool of slabs carved
// for it. The zero value is uninitialized storage; pass it to Setup
// before using it. All exported methods are safe for concurrent use.
type Cache struct {
	mu sync.Mutex

	requestedSize uintptr
	objectSize    uintptr // requestedSize + wordSize
	slabOrder     int
	slabSize      uintptr
	cntObjects    uintptr
	metaOffset    uintptr

	provider region.Provider

	freeList     *slabHeader
	busyList     *slabHeader
	partbusyList *slabHeader
}

// Option configures a Cache during Setup.
type Option func(*Cache)

// WithSlabOrder overrides the default slab order (10, i.e. 4 MiB
// slabs). Valid range is [0, region.MaxOrder].
func WithSlabOrder(order int) Option {
	return func(c *Cache) {
		c.slabOrder = order
	}
}

// WithProvider overrides the region.Provider used to acquire slabs.
// Mainly useful for tests that need to inject failure or track calls.
func WithProvider(p region.Provider) Option {
	return func(c *Cache) {
		c.provider = p
	}
}

// Setup initializes cache for objects of objectSize bytes. cache must
// refer to uninitialized (zero-value) storage. It eagerly acquires one
// slab and installs it on the free list, so that after a successful
// return the cache always owns at least one slab.
func (c *Cache) Setup(objectSize uintptr, opts ...Option) error {
	if objectSize == 0 {
		return ErrInvalidObjectSize
	}

	c.slabOrder = defaultSlabOrder
	for _, opt := range opts {
		opt(c)
	}
	if c.slabOrder < 0 || c.slabOrder > region.MaxOrder {
		return ErrInvalidSlabOrder
	}
	if c.provider == nil {
		c.provider = region.NewDefault()
	}

	c.requestedSize = objectSize
	c.objectSize = objectSize + wordSize
	c.slabSize = region.Size(c.slabOrder)

	c.cntObjects = c.slabSize / c.objectSize
	for c.cntObjects > 0 && c.slabSize-c.cntObjects*c.objectSize < slabHeaderSize {
		c.cntObjects--
	}
	if c.cntObjects == 0 {
		return ErrSlabTooSmall
	}
	c.metaOffset = c.cntObjects * c.objectSize

	header, err := c.newSlab()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderExhausted, err)
	}
	c.freeList = header
	return nil
}

// newSlab acquires one region from the provider and lays out a fresh
// slab header and free chain inside it, per the construction steps in
// the allocator's slab layout.
func (c *Cache) newSlab() (*slabHeader, error) {
	base, err := c.provider.Acquire(c.slabOrder)
	if err != nil {
		return nil, err
	}
	header := (*slabHeader)(addOffset(base, c.metaOffset))
	initSlab(header, base, c.objectSize, c.cntObjects)
	return header, nil
}

// releaseListLocked returns every slab on list to the provider and
// empties the list. Caller must hold c.mu.
func (c *Cache) releaseListLocked(list **slabHeader) {
	h := *list
	for h != nil {
		next := h.next
		c.provider.Release(h.base)
		h = next
	}
	*list = nil
}

// Release returns every slab in all three occupancy lists back to the
// provider and zeroes the cache's configuration. After Release the
// cache is again eligible for Setup.
func (c *Cache) Release() {
	c.mu.Lock()
	c.releaseListLocked(&c.freeList)
	c.releaseListLocked(&c.busyList)
	c.releaseListLocked(&c.partbusyList)

	c.requestedSize = 0
	c.objectSize = 0
	c.slabOrder = 0
	c.slabSize = 0
	c.cntObjects = 0
	c.metaOffset = 0
	c.provider = nil
	c.mu.Unlock()
}

// Shrink releases every slab currently on the free list. It does not
// touch partially or fully busy slabs.
func (c *Cache) Shrink() {
	c.mu.Lock()
	c.releaseListLocked(&c.freeList)
	c.mu.Unlock()
}

// ObjectSize returns the object size this cache was configured for
// (not including the reserved intrusive-link word).
func (c *Cache) ObjectSize() uintptr {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestedSize
}

// CountPerSlab returns the number of blocks carved from each slab.
func (c *Cache) CountPerSlab() uintptr {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cntObjects
}

// Stats is a snapshot of a cache's slab-list occupancy, used by tests
// and diagnostics. The counts are not part of the allocator's stable
// contract.
type Stats struct {
	FreeSlabs     int
	PartBusySlabs int
	BusySlabs     int
}

// Stats returns the current number of slabs in each occupancy list.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		FreeSlabs:     listLen(c.freeList),
		PartBusySlabs: listLen(c.partbusyList),
		BusySlabs:     listLen(c.busyList),
	}
}
