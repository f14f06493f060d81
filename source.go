package arena

import (
	"math"

	"github.com/pkg/errors"
	"github.com/prometheus/prometheus/util/pool"
)

// maxHeapBlock is the largest buffer a source will ask the Go runtime for.
// Larger requests are refused instead of letting make panic.
const maxHeapBlock = min(1<<47, math.MaxInt)

// BlockSource provides the backing buffers of arena blocks.
// Get must return a slice of exactly size bytes or an error. Put receives
// every buffer back once the arena frees the block that owned it.
type BlockSource interface {
	Get(size int) ([]byte, error)
	Put(buf []byte)
}

// HeapSource allocates every block with make and lets the garbage collector
// reclaim freed blocks. It is the default source.
type HeapSource struct{}

// Get implements BlockSource.
func (HeapSource) Get(size int) ([]byte, error) {
	if err := checkBlockSize(size); err != nil {
		return nil, err
	}
	return make([]byte, size), nil
}

// Put implements BlockSource.
func (HeapSource) Put([]byte) {}

// PoolSource recycles block buffers through size-bucketed sync.Pools, so an
// arena that repeatedly grows and resets stops allocating new blocks.
// Recycled buffers are not zeroed.
type PoolSource struct {
	pool *pool.Pool
}

// NewPoolSource creates a PoolSource with buckets from minSize to maxSize,
// each bucket factor times larger than the previous one. Requests larger than
// maxSize bypass the pool.
func NewPoolSource(minSize, maxSize int, factor float64) *PoolSource {
	return &PoolSource{
		pool: pool.New(minSize, maxSize, factor, func(size int) interface{} {
			return make([]byte, size)
		}),
	}
}

// Get implements BlockSource.
func (p *PoolSource) Get(size int) ([]byte, error) {
	if err := checkBlockSize(size); err != nil {
		return nil, err
	}
	return p.pool.Get(size).([]byte)[:size], nil
}

// Put implements BlockSource.
func (p *PoolSource) Put(buf []byte) {
	p.pool.Put(buf)
}

// LimitSource caps the total number of bytes handed out by an underlying
// source. Requests that would cross the limit fail with ErrLimitExceeded.
// It is not safe for concurrent use.
type LimitSource struct {
	src   BlockSource
	limit int
	inUse int
}

// NewLimitSource wraps src so that at most limit bytes are outstanding. A nil
// src means HeapSource.
func NewLimitSource(src BlockSource, limit int) *LimitSource {
	if src == nil {
		src = HeapSource{}
	}
	return &LimitSource{src: src, limit: limit}
}

// Get implements BlockSource.
func (l *LimitSource) Get(size int) ([]byte, error) {
	if size > l.limit-l.inUse {
		return nil, errors.Wrapf(ErrLimitExceeded, "block of %d bytes with %d of %d in use", size, l.inUse, l.limit)
	}
	buf, err := l.src.Get(size)
	if err != nil {
		return nil, err
	}
	l.inUse += len(buf)
	return buf, nil
}

// Put implements BlockSource.
func (l *LimitSource) Put(buf []byte) {
	l.inUse -= len(buf)
	l.src.Put(buf)
}

// InUse returns the number of bytes currently handed out.
func (l *LimitSource) InUse() int {
	return l.inUse
}

func checkBlockSize(size int) error {
	if size <= 0 || size > maxHeapBlock {
		return errors.Wrapf(ErrAllocFailed, "block size %d out of range", size)
	}
	return nil
}
