package directio

import (
	"testing"
	"unsafe"
)

func TestAlignedBufferIsAligned(t *testing.T) {
	buf := alignedBuffer(100, SafeAlign)
	if len(buf) != 100 {
		t.Fatalf("got length %d, want 100", len(buf))
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	if addr%SafeAlign != 0 {
		t.Fatalf("buffer start %x is not %d-byte aligned", addr, SafeAlign)
	}
}

func TestAlignedBufferZeroSize(t *testing.T) {
	buf := alignedBuffer(0, SafeAlign)
	if len(buf) != 0 {
		t.Fatalf("got length %d, want 0", len(buf))
	}
}

func TestAlignedBufferCapacityDoesNotExceedLength(t *testing.T) {
	buf := alignedBuffer(37, SafeAlign)
	if cap(buf) != len(buf) {
		t.Fatalf("got cap %d, len %d: writers could silently grow past the aligned region", cap(buf), len(buf))
	}
}
