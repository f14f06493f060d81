package arena

import (
	"math"
	"math/bits"
	"unsafe"
)

// MaxAlign is the largest natural alignment of any Go scalar type on the
// target platform. An alignment of 0 passed to the allocation functions
// means MaxAlign.
const MaxAlign = max(
	unsafe.Alignof(uint64(0)),
	unsafe.Alignof(float64(0)),
	unsafe.Alignof(complex128(0)),
	unsafe.Alignof(uintptr(0)),
)

// alignUp returns the smallest multiple of align that is >= base.
// It reports false if align is not a power of two or the result would
// overflow the address space.
func alignUp(base, align uintptr) (uintptr, bool) {
	if align == 0 {
		align = MaxAlign
	}
	if bits.OnesCount64(uint64(align)) != 1 {
		return 0, false
	}
	mask := align - 1
	if base > math.MaxUint-mask {
		return 0, false
	}
	return (base + mask) &^ mask, true
}

// normAlign converts a caller supplied alignment into a uintptr, mapping 0 to
// MaxAlign. Negative alignments are rejected.
func normAlign(align int) (uintptr, bool) {
	switch {
	case align < 0:
		return 0, false
	case align == 0:
		return MaxAlign, true
	}
	a := uintptr(align)
	return a, bits.OnesCount64(uint64(a)) == 1
}

// addSize returns a+b, reporting false on int overflow. Both operands must be
// non-negative.
func addSize(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// mulSize returns a*b, reporting false on int overflow. Both operands must be
// non-negative.
func mulSize(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}
