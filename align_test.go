package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		base, align uintptr
		expected    uintptr
		ok          bool
	}{
		{0, 1, 0, true},
		{7, 1, 7, true},
		{1, 8, 8, true},
		{8, 8, 8, true},
		{9, 8, 16, true},
		{33, 32, 64, true},
		{1, 0, MaxAlign, true},
		{MaxAlign, 0, MaxAlign, true},
		{5, 3, 0, false},
		{5, 12, 0, false},
		{math.MaxUint - 2, 8, 0, false},
		{math.MaxUint, 1, math.MaxUint, true},
	}

	for _, tt := range tests {
		got, ok := alignUp(tt.base, tt.align)
		require.Equal(t, tt.ok, ok, "alignUp(%d, %d) ok", tt.base, tt.align)
		if tt.ok {
			require.Equal(t, tt.expected, got, "alignUp(%d, %d)", tt.base, tt.align)
		}
	}
}

func TestNormAlign(t *testing.T) {
	for _, align := range []int{1, 2, 4, 8, 16, 32, 64, 4096} {
		got, ok := normAlign(align)
		require.True(t, ok)
		require.Equal(t, uintptr(align), got)
	}

	got, ok := normAlign(0)
	require.True(t, ok)
	require.Equal(t, MaxAlign, got)

	for _, align := range []int{-1, -8, 3, 6, 24} {
		_, ok := normAlign(align)
		require.False(t, ok, "normAlign(%d)", align)
	}
}

func TestSizeArithmetic(t *testing.T) {
	sum, ok := addSize(40, 2)
	require.True(t, ok)
	require.Equal(t, 42, sum)

	_, ok = addSize(math.MaxInt, 1)
	require.False(t, ok)

	prod, ok := mulSize(8, 1000)
	require.True(t, ok)
	require.Equal(t, 8000, prod)

	prod, ok = mulSize(0, math.MaxInt)
	require.True(t, ok)
	require.Zero(t, prod)

	_, ok = mulSize(math.MaxInt/2+1, 2)
	require.False(t, ok)
}
