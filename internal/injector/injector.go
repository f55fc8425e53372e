// Package injector provides a region.Provider decorator for exercising
// the allocator's resource-exhaustion path (spec scenario S6) without
// needing to actually exhaust system memory.
package injector

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/gocache/goslab/region"
)

// ErrCapacityReached is returned by LimitedProvider.Acquire once the
// configured number of successful acquires has been reached.
var ErrCapacityReached = errors.New("injector: simulated provider exhaustion")

// LimitedProvider wraps a region.Provider and fails every Acquire past
// the Nth successful one, regardless of whether the underlying
// provider could have supplied more.
type LimitedProvider struct {
	mu        sync.Mutex
	inner     region.Provider
	remaining int
}

// NewLimitedProvider wraps inner so that only the first n Acquire
// calls succeed.
func NewLimitedProvider(inner region.Provider, n int) *LimitedProvider {
	return &LimitedProvider{inner: inner, remaining: n}
}

// Acquire forwards to the wrapped provider while the budget lasts,
// then always fails.
func (p *LimitedProvider) Acquire(order int) (unsafe.Pointer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.remaining <= 0 {
		return nil, ErrCapacityReached
	}
	base, err := p.inner.Acquire(order)
	if err != nil {
		return nil, err
	}
	p.remaining--
	return base, nil
}

// Release always forwards to the wrapped provider.
func (p *LimitedProvider) Release(base unsafe.Pointer) {
	p.inner.Release(base)
}
