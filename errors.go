package arena

import "github.com/pkg/errors"

var (
	// ErrAllocFailed is returned when a request cannot be satisfied: the
	// size or alignment arithmetic overflows, the alignment is not a power of
	// two, or the BlockSource could not provide a new block.
	ErrAllocFailed = errors.New("arena: allocation failed")

	// ErrStaleMark is returned by Release when the mark was taken before an
	// intervening Reset or Destroy, or its block is no longer in the chain.
	ErrStaleMark = errors.New("arena: stale mark")

	// ErrLimitExceeded is returned by LimitSource when a block would push the
	// source past its byte limit. It wraps ErrAllocFailed.
	ErrLimitExceeded = errors.Wrap(ErrAllocFailed, "byte limit exceeded")
)
