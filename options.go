package arena

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// DefaultMaxBlockSize bounds the default size of blocks under GrowthDoubling.
const DefaultMaxBlockSize = 64 << 20

// Growth selects how the default size of successive blocks evolves.
type Growth int

const (
	// GrowthFixed sizes every new block as max(block size, request).
	GrowthFixed Growth = iota
	// GrowthDoubling doubles the default size for every live block, up to the
	// maximum block size. Reset and Release shrink it back with the chain.
	GrowthDoubling
)

func (g Growth) String() string {
	switch g {
	case GrowthFixed:
		return "fixed"
	case GrowthDoubling:
		return "doubling"
	}
	return fmt.Sprintf("Growth(%d)", int(g))
}

// MarshalText implements encoding.TextMarshaler.
func (g Growth) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Growth) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "fixed":
		*g = GrowthFixed
	case "doubling":
		*g = GrowthDoubling
	default:
		return errors.Errorf("unknown growth policy %q", text)
	}
	return nil
}

// Option configures an Arena during Init or New.
type Option func(*Arena)

// WithSource sets the BlockSource new blocks are obtained from.
func WithSource(src BlockSource) Option {
	return func(a *Arena) {
		a.source = src
	}
}

// WithGrowth sets the block growth policy.
func WithGrowth(g Growth) Option {
	return func(a *Arena) {
		a.growth = g
	}
}

// WithMaxBlockSize caps the default block size reached by GrowthDoubling.
// Requests larger than the cap still get a block that fits them.
func WithMaxBlockSize(size int) Option {
	return func(a *Arena) {
		a.maxBlockSize = size
	}
}
