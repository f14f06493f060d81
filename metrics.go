package arena

// BytesUsed returns the number of bytes handed out across all live blocks,
// alignment padding included. It walks the chain.
func (a *Arena) BytesUsed() int {
	sum := 0
	for b := a.current; b != nil; b = b.prev {
		sum += b.offset
	}
	return sum
}

// BytesReserved returns the total capacity of all live blocks.
func (a *Arena) BytesReserved() int {
	return a.reserved
}

// NumBlocks returns the number of live blocks.
func (a *Arena) NumBlocks() int {
	return a.nblocks
}

// BlockSize returns the default block size used by this arena.
func (a *Arena) BlockSize() int {
	if a.blockSize <= 0 {
		return DefaultBlockSize
	}
	return a.blockSize
}

// Utilization returns the ratio of bytes used to bytes reserved (0.0 to 1.0).
// Returns 0.0 if the arena has no blocks.
func (a *Arena) Utilization() float64 {
	if a.reserved == 0 {
		return 0
	}
	return float64(a.BytesUsed()) / float64(a.reserved)
}

// Stats returns a snapshot of arena statistics.
func (a *Arena) Stats() Stats {
	used := a.BytesUsed()
	s := Stats{
		BytesUsed:       used,
		BytesReserved:   a.reserved,
		NumBlocks:       a.nblocks,
		BlockSize:       a.BlockSize(),
		BlocksAllocated: a.counters.blocksAllocated,
		BlocksFreed:     a.counters.blocksFreed,
		Resets:          a.counters.resets,
		Releases:        a.counters.releases,
	}
	if a.reserved > 0 {
		s.Utilization = float64(used) / float64(a.reserved)
	}
	return s
}

// Stats contains statistical information about an arena. The counters only
// ever grow, across Reset, Destroy and Init alike.
type Stats struct {
	BytesUsed     int     // Bytes handed out
	BytesReserved int     // Total block capacity
	NumBlocks     int     // Live blocks
	BlockSize     int     // Default block size
	Utilization   float64 // BytesUsed / BytesReserved

	BlocksAllocated uint64
	BlocksFreed     uint64
	Resets          uint64
	Releases        uint64
}
