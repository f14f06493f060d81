package arena

import "unsafe"

// block is a single backing buffer with a bump cursor.
type block struct {
	prev   *block // next-older block
	id     uint64 // serial number, unique within the owning arena
	buf    []byte // exactly capacity bytes
	offset int    // bytes consumed, 0 <= offset <= len(buf)
}

func (b *block) capacity() int {
	return len(b.buf)
}

// alloc carves size bytes aligned to align out of the free tail of b.
// It reports false without touching b when the request does not fit.
func (b *block) alloc(size int, align uintptr) ([]byte, bool) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(b.buf)))
	aligned, ok := alignUp(base+uintptr(b.offset), align)
	if !ok {
		return nil, false
	}
	off := aligned - base
	if off > uintptr(len(b.buf)) || uintptr(len(b.buf))-off < uintptr(size) {
		return nil, false
	}
	start := int(off)
	b.offset = start + size
	return b.buf[start:b.offset:b.offset], true
}
