package region

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterAndTake(t *testing.T) {
	r := newRegistry()
	a := unsafe.Pointer(new(byte))
	raw := unsafe.Pointer(new(byte))

	r.register(a, raw, 0x1000)
	assert.Equal(t, 1, r.len())

	gotRaw, gotLen := r.take(a)
	assert.Equal(t, raw, gotRaw)
	assert.Equal(t, uintptr(0x1000), gotLen)
	assert.Equal(t, 0, r.len())
}

func TestRegistry_TakeUnknownPanics(t *testing.T) {
	r := newRegistry()
	assert.Panics(t, func() {
		r.take(unsafe.Pointer(new(byte)))
	})
}

func TestRegistry_ReusesFreedSlots(t *testing.T) {
	r := newRegistry()
	a := unsafe.Pointer(new(byte))
	b := unsafe.Pointer(new(byte))

	r.register(a, a, 0x1000)
	r.take(a)
	r.register(b, b, 0x1000)

	assert.Equal(t, 1, len(r.entries))
	assert.Equal(t, 1, r.len())
}

func TestRegistry_ExhaustionPanics(t *testing.T) {
	r := newRegistry()
	pointers := make([]byte, maxRegistryEntries+1)
	for i := 0; i < maxRegistryEntries; i++ {
		p := unsafe.Pointer(&pointers[i])
		r.register(p, p, 0x1000)
	}
	assert.Panics(t, func() {
		extra := unsafe.Pointer(&pointers[maxRegistryEntries])
		r.register(extra, extra, 0x1000)
	})
}
