// Package arena implements a block-chained bump allocator (memory arena) for Go.
//
// # Overview
//
// An arena hands out memory by advancing a cursor through a chain of
// pre-allocated blocks and reclaims it in bulk instead of per object. This is
// useful for:
//
//   - Phase or frame scoped allocations that all die together
//   - Scratch memory that is dropped as soon as a computation finishes
//   - Reducing garbage collection pressure for pointer-free data
//
// # Basic Usage
//
//	a := arena.New(0) // Use default block size
//	defer a.Destroy()  // Hand every block back when done
//
//	// Allocate raw bytes: size and power-of-two alignment (0 = MaxAlign)
//	buf, err := a.Allocate(1024, 16)
//
//	// Allocate typed values
//	ptr, err := arena.Alloc[MyStruct](a)
//	slice, err := arena.AllocSlice[int32](a, 100)
//
//	// Copy strings into the arena
//	name, err := a.DupString("hello")
//
//	// Reclaim everything but the oldest block
//	a.Reset()
//
// A zero-size request returns (nil, nil). Every failure, whether arithmetic
// overflow, an invalid alignment or an exhausted block source, is reported as
// an error wrapping ErrAllocFailed and leaves the arena unchanged.
//
// # Marks
//
// Mark and Release scope memory without tearing down the arena:
//
//	m := a.Mark()
//	scratch, _ := arena.AllocSlice[float64](a, 1<<20)
//	// ... use scratch ...
//	_ = a.Release(m) // blocks created since m are freed
//
// Marks are invalidated by Reset and Destroy. Releasing such a mark returns
// ErrStaleMark and changes nothing.
//
// # Memory Layout
//
// Each block is a fixed header plus a byte buffer obtained from a
// BlockSource (HeapSource by default, PoolSource to recycle buffers,
// LimitSource to cap memory). A request that does not fit the current block
// gets a new block of max(block size, request + alignment slack); with
// GrowthDoubling the default size doubles for every live block instead.
//
// # Thread Safety
//
// Arena is not thread-safe. Give every goroutine its own arena or guard it
// externally.
//
// # Important Notes
//
//   - Allocated memory is only valid until the block backing it is freed
//   - There is no individual deallocation: use Release, Reset or Destroy
//   - Memory is not zeroed unless using AllocateZeroed, Alloc or AllocSliceZeroed
//   - Typed allocations must not contain Go pointers; block memory is not
//     scanned by the garbage collector
//
// # Metrics and Monitoring
//
//	stats := a.Stats()
//	fmt.Printf("Utilization: %.2f%%\n", stats.Utilization*100)
//	fmt.Printf("Memory in use: %d bytes\n", stats.BytesUsed)
//	fmt.Printf("Total reserved: %d bytes\n", stats.BytesReserved)
//
// Package arenametrics exports the same numbers to Prometheus.
package arena
