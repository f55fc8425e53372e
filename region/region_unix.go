//go:build linux || darwin || freebsd

package region

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// unixProvider acquires naturally aligned regions by mmap-ing twice
// the requested size and trimming the unaligned head and tail back to
// the kernel, the same over-allocate-and-offset trick
// original_source/main.cpp performs with malloc, done here with real
// page mappings so the trimmed slack is actually returned to the OS
// rather than merely unused.
type unixProvider struct {
	reg *registry
}

// NewDefault returns the Provider used when no explicit Provider is
// configured on this platform.
func NewDefault() Provider {
	return &unixProvider{reg: newRegistry()}
}

func (p *unixProvider) Acquire(order int) (unsafe.Pointer, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	size := Size(order)
	mapLen := int(2 * size)

	// unix.Munmap only accepts the exact slice unix.Mmap returned, so the
	// partial trims below go through the pointer-based calls instead.
	rawBase, err := unix.MmapPtr(-1, 0, nil, uintptr(mapLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %d bytes: %w", mapLen, err)
	}

	alignedAddr := alignUp(uintptr(rawBase), size)
	headTrim := alignedAddr - uintptr(rawBase)
	tailTrim := uintptr(mapLen) - headTrim - size

	if headTrim > 0 {
		if err := unix.MunmapPtr(rawBase, headTrim); err != nil {
			_ = unix.MunmapPtr(rawBase, uintptr(mapLen))
			return nil, fmt.Errorf("region: trim head: %w", err)
		}
	}
	if tailTrim > 0 {
		if err := unix.MunmapPtr(unsafe.Pointer(alignedAddr+size), tailTrim); err != nil {
			_ = unix.MunmapPtr(unsafe.Pointer(alignedAddr), size+tailTrim)
			return nil, fmt.Errorf("region: trim tail: %w", err)
		}
	}

	aligned := unsafe.Pointer(alignedAddr)
	p.reg.register(aligned, aligned, size)
	return aligned, nil
}

func (p *unixProvider) Release(base unsafe.Pointer) {
	_, rawLen := p.reg.take(base)
	if err := unix.MunmapPtr(base, rawLen); err != nil {
		panic(fmt.Sprintf("region: munmap: %v", err))
	}
}
