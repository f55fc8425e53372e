package region

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uintptr(0), alignUp(0, 4096))
	assert.Equal(t, uintptr(4096), alignUp(1, 4096))
	assert.Equal(t, uintptr(4096), alignUp(4096, 4096))
	assert.Equal(t, uintptr(8192), alignUp(4097, 4096))
}

func TestMaskBase(t *testing.T) {
	size := uintptr(4096)
	buf := make([]byte, size*2)
	rawAddr := uintptr(unsafe.Pointer(&buf[0]))
	pad := (size - rawAddr%size) % size
	base := unsafe.Pointer(uintptr(unsafe.Pointer(&buf[0])) + pad)
	inside := unsafe.Pointer(uintptr(base) + 0xabc)
	assert.Equal(t, base, maskBase(inside, size))
	assert.Equal(t, base, maskBase(base, size))
}

func TestValidateOrder(t *testing.T) {
	assert.NoError(t, validateOrder(0))
	assert.NoError(t, validateOrder(MaxOrder))
	assert.Error(t, validateOrder(-1))
	assert.Error(t, validateOrder(MaxOrder+1))
}

func TestSize(t *testing.T) {
	assert.Equal(t, uintptr(PageSize), Size(0))
	assert.Equal(t, uintptr(PageSize*2), Size(1))
}

func TestDefaultProvider_AcquireIsNaturallyAligned(t *testing.T) {
	p := NewDefault()

	for order := 0; order <= 4; order++ {
		base, err := p.Acquire(order)
		require.NoError(t, err)
		require.NotNil(t, base)

		size := Size(order)
		assert.Equal(t, uintptr(0), uintptr(base)%size, "order %d base not aligned", order)

		p.Release(base)
	}
}

func TestDefaultProvider_RegionIsWritable(t *testing.T) {
	p := NewDefault()
	base, err := p.Acquire(0)
	require.NoError(t, err)
	defer p.Release(base)

	buf := unsafe.Slice((*byte)(base), PageSize)
	for i := range buf {
		buf[i] = byte(i)
	}
	for i := range buf {
		assert.Equal(t, byte(i), buf[i])
	}
}

func TestDefaultProvider_AcquireRejectsOutOfRangeOrder(t *testing.T) {
	p := NewDefault()
	_, err := p.Acquire(-1)
	assert.Error(t, err)
	_, err = p.Acquire(MaxOrder + 1)
	assert.Error(t, err)
}

func TestDefaultProvider_ReleaseOfUnknownPointerPanics(t *testing.T) {
	p := NewDefault()
	bogus := unsafe.Pointer(new(byte))
	assert.Panics(t, func() {
		p.Release(bogus)
	})
}

func TestDefaultProvider_DoubleReleasePanics(t *testing.T) {
	p := NewDefault()
	base, err := p.Acquire(0)
	require.NoError(t, err)

	p.Release(base)
	assert.Panics(t, func() {
		p.Release(base)
	})
}
