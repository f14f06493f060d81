// Package arena implements a block-chained bump allocator (memory arena).
// Typical usage: create one arena per phase, allocate many temporary
// objects from it, then Reset() at the end of the phase for bulk cleanup.
package arena

import (
	"github.com/pkg/errors"
)

// DefaultBlockSize is the default block size for new arenas (64 KiB).
const DefaultBlockSize = 1 << 16

// Arena is a bump allocator over a LIFO chain of blocks. The newest block is
// the current one; allocations only ever advance its cursor. Not safe for
// concurrent use.
//
// The zero value is an empty arena ready for use with DefaultBlockSize.
type Arena struct {
	current      *block
	blockSize    int
	reserved     int // sum of capacities over the live chain
	nblocks      int
	nextID       uint64
	generation   uint64
	source       BlockSource
	growth       Growth
	maxBlockSize int
	counters     counters
}

type counters struct {
	blocksAllocated uint64
	blocksFreed     uint64
	resets          uint64
	releases        uint64
}

// New returns an arena whose first block holds blockSize bytes.
// If blockSize <= 0, DefaultBlockSize is used. If the first block cannot be
// obtained the arena starts empty and retries on the first allocation; use
// Init to observe that error.
func New(blockSize int, opts ...Option) *Arena {
	a := &Arena{}
	_ = a.Init(blockSize, opts...)
	return a
}

// Init (re)initializes a with a first block of blockSize bytes. An arena that
// still owns blocks is destroyed first. On error a is left empty but usable.
func (a *Arena) Init(blockSize int, opts ...Option) error {
	a.Destroy()
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	a.blockSize = blockSize
	for _, opt := range opts {
		opt(a)
	}
	b, err := a.newBlock(blockSize)
	if err != nil {
		return err
	}
	a.push(b)
	return nil
}

// Allocate returns size bytes aligned to align from the arena. align must be
// a power of two; 0 means MaxAlign. The memory is not zeroed.
//
// A size of 0 returns (nil, nil) and consumes nothing. Any failure returns an
// error wrapping ErrAllocFailed and leaves the arena unchanged.
//
// The returned slice stays valid until the block backing it is freed by
// Reset, Release or Destroy.
func (a *Arena) Allocate(size, align int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	al, ok := normAlign(align)
	if size < 0 || !ok {
		return nil, errors.Wrapf(ErrAllocFailed, "invalid request of %d bytes aligned to %d", size, align)
	}

	// Fast path: bump the current block
	if b := a.current; b != nil {
		if buf, ok := b.alloc(size, al); ok {
			return buf, nil
		}
	}

	return a.allocateSlow(size, al)
}

// allocateSlow serves a request from a fresh block.
func (a *Arena) allocateSlow(size int, align uintptr) ([]byte, error) {
	need, ok := addSize(size, int(align)-1)
	if !ok {
		return nil, errors.Wrapf(ErrAllocFailed, "%d bytes aligned to %d overflows", size, align)
	}
	b, err := a.newBlock(max(a.nextBlockSize(), need))
	if err != nil {
		return nil, err
	}
	buf, ok := b.alloc(size, align)
	if !ok {
		a.src().Put(b.buf)
		return nil, errors.Wrapf(ErrAllocFailed, "%d bytes aligned to %d do not fit a %d byte block", size, align, b.capacity())
	}
	a.push(b)
	return buf, nil
}

// AllocateZeroed is like Allocate but clears the returned memory.
func (a *Arena) AllocateZeroed(size, align int) ([]byte, error) {
	buf, err := a.Allocate(size, align)
	if err != nil {
		return nil, err
	}
	clear(buf)
	return buf, nil
}

// Reset frees every block except the oldest one and rewinds it, so the next
// cycle starts without asking the source for memory. Every slice previously
// returned by the arena becomes invalid and every outstanding Mark goes stale.
func (a *Arena) Reset() {
	if a.current == nil {
		return
	}
	for a.current.prev != nil {
		a.pop()
	}
	a.current.offset = 0
	a.generation++
	a.counters.resets++
}

// Destroy returns every block to the source and puts a back into its zero
// state. The arena may be reused afterwards, with or without Init. The
// lifetime counters reported by Stats survive.
func (a *Arena) Destroy() {
	for a.current != nil {
		a.pop()
	}
	*a = Arena{generation: a.generation + 1, counters: a.counters}
}

// nextBlockSize returns the default capacity of the next block.
func (a *Arena) nextBlockSize() int {
	size := a.blockSize
	if size <= 0 {
		size = DefaultBlockSize
	}
	if a.growth != GrowthDoubling {
		return size
	}
	limit := a.maxBlockSize
	if limit <= 0 {
		limit = DefaultMaxBlockSize
	}
	for i := 0; i < a.nblocks && size < limit; i++ {
		if size > limit/2 {
			size = limit
		} else {
			size *= 2
		}
	}
	return size
}

func (a *Arena) newBlock(capacity int) (*block, error) {
	if capacity <= 0 {
		capacity = 1
	}
	buf, err := a.src().Get(capacity)
	if err != nil {
		if !errors.Is(err, ErrAllocFailed) {
			err = errors.Wrapf(ErrAllocFailed, "block source: %v", err)
		}
		return nil, err
	}
	if len(buf) != capacity {
		a.src().Put(buf)
		return nil, errors.Wrapf(ErrAllocFailed, "block source returned %d bytes, want %d", len(buf), capacity)
	}
	a.nextID++
	return &block{id: a.nextID, buf: buf}, nil
}

// push links b as the new current block.
func (a *Arena) push(b *block) {
	b.prev = a.current
	a.current = b
	a.reserved += b.capacity()
	a.nblocks++
	a.counters.blocksAllocated++
}

// pop unlinks the current block and hands its buffer back to the source.
func (a *Arena) pop() {
	b := a.current
	a.current = b.prev
	a.reserved -= b.capacity()
	a.nblocks--
	a.counters.blocksFreed++
	a.src().Put(b.buf)
	b.prev, b.buf = nil, nil
}

func (a *Arena) src() BlockSource {
	if a.source == nil {
		return HeapSource{}
	}
	return a.source
}
