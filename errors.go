package goslab

import "errors"

// Errors returned by Setup. Precondition violations a caller could
// have validated ahead of time come back as errors; pointer-aliasing
// bugs (double-free, foreign free) remain undefined behavior per the
// allocator's contract and are never checked at runtime.
var (
	ErrInvalidObjectSize = errors.New("goslab: object size must be > 0")
	ErrInvalidSlabOrder  = errors.New("goslab: slab order out of range")
	ErrSlabTooSmall      = errors.New("goslab: object size leaves no room for one block plus the slab header")
	ErrProviderExhausted = errors.New("goslab: region provider could not supply the initial slab")
)
