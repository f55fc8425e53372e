package goslab

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// unsafePointerBuf views an allocated block as a byte slice for
// writability/overlap tests, without ever touching the reserved
// intrusive-link word below the returned pointer.
type unsafePointerBuf struct {
	buf []byte
}

func newUnsafePointerBuf(p unsafe.Pointer, size uintptr) unsafePointerBuf {
	return unsafePointerBuf{buf: unsafe.Slice((*byte)(p), size)}
}

func (b unsafePointerBuf) fill(v byte) {
	for i := range b.buf {
		b.buf[i] = v
	}
}

func (b unsafePointerBuf) verify(t *testing.T, v byte) {
	t.Helper()
	for i, got := range b.buf {
		if got != v {
			assert.Equal(t, v, got, "byte %d corrupted", i)
			return
		}
	}
}
