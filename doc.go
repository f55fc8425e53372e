// Package goslab implements a fixed-size object slab allocator.
//
// A Cache is configured for one object size with Setup. It hands out
// and recycles blocks of exactly that size with amortized O(1)
// allocation and O(1) (expected) deallocation. There is no coalescing
// between slabs and no variable sizing within a cache: callers that
// need several object sizes run several Caches side by side.
//
// The owning slab of any block returned by Alloc is recoverable in
// O(1) by masking the pointer to the slab's natural alignment, which
// is why each slab is obtained from a region.Provider as a naturally
// aligned memory region rather than a plain heap allocation.
package goslab
