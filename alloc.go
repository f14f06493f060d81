package arena

import (
	"bytes"
	"unsafe"

	"github.com/pkg/errors"
)

// Alloc returns a pointer to a zeroed T stored inside the arena.
// T must not contain Go pointers: block memory is not scanned by the garbage
// collector. A zero-sized T yields (nil, nil).
func Alloc[T any](a *Arena) (*T, error) {
	p, err := allocN[T](a, 1, true)
	return (*T)(p), err
}

// AllocUninitialized is like Alloc but leaves the memory as found. The same
// restriction on Go pointers applies.
func AllocUninitialized[T any](a *Arena) (*T, error) {
	p, err := allocN[T](a, 1, false)
	return (*T)(p), err
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The elements are not initialized. Returns (nil, nil) if the slice would
// occupy no memory.
//
// T must not contain Go pointers (no pointers, strings, slices, maps,
// interfaces, channels or funcs): the garbage collector does not see
// references stored in arena memory and may free what they point to.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	p, err := allocN[T](a, n, false)
	if p == nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

// AllocSliceZeroed is like AllocSlice but zeroes the elements. T must not
// contain Go pointers.
func AllocSliceZeroed[T any](a *Arena, n int) ([]T, error) {
	p, err := allocN[T](a, n, true)
	if p == nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

func allocN[T any](a *Arena, n int, zero bool) (unsafe.Pointer, error) {
	var v T
	elem := int(unsafe.Sizeof(v))
	size, ok := mulSize(elem, n)
	if n < 0 || !ok {
		return nil, errors.Wrapf(ErrAllocFailed, "%d elements of %d bytes", n, elem)
	}
	align := int(unsafe.Alignof(v))

	var (
		buf []byte
		err error
	)
	if zero {
		buf, err = a.AllocateZeroed(size, align)
	} else {
		buf, err = a.Allocate(size, align)
	}
	if err != nil || buf == nil {
		return nil, err
	}
	return unsafe.Pointer(unsafe.SliceData(buf)), nil
}

// Strdup copies s followed by a NUL terminator into the arena and returns
// the len(s)+1 copied bytes.
func (a *Arena) Strdup(s string) ([]byte, error) {
	buf, err := a.Allocate(len(s)+1, 1)
	if err != nil {
		return nil, err
	}
	copy(buf, s)
	buf[len(s)] = 0
	return buf, nil
}

// DupString copies s into the arena and returns the arena-backed copy. The
// copy is NUL terminated in memory, past the end of the returned string.
func (a *Arena) DupString(s string) (string, error) {
	buf, err := a.Strdup(s)
	if err != nil {
		return "", err
	}
	return unsafe.String(unsafe.SliceData(buf), len(s)), nil
}

// DupCString copies the C string in b, up to and including its first NUL,
// into the arena. A terminator is appended when b has none.
func (a *Arena) DupCString(b []byte) ([]byte, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return a.Strdup(unsafe.String(unsafe.SliceData(b), len(b)))
}
