package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// Example demonstrates basic arena usage
func Example() {
	// Create a new arena with default block size
	a := New(0)
	defer a.Destroy() // Always clean up

	// Allocate raw bytes, aligned to MaxAlign
	buf, _ := a.Allocate(1024, 0)
	fmt.Printf("Allocated buffer of size: %d\n", len(buf))

	// Allocate a typed value (zeroed)
	ptr, _ := Alloc[int](a)
	*ptr = 42
	fmt.Printf("Allocated int with value: %d\n", *ptr)

	// Allocate a slice
	slice, _ := AllocSlice[int](a, 5)
	for i := range slice {
		slice[i] = i * 2
	}
	fmt.Printf("Allocated slice: %v\n", slice)

	// Check memory usage
	fmt.Printf("Memory in use: %d bytes\n", a.BytesUsed())
	fmt.Printf("Utilization: %.2f%%\n", a.Utilization()*100)

	// Reset for reuse
	a.Reset()
	fmt.Printf("After reset, memory in use: %d bytes\n", a.BytesUsed())

	// Output:
	// Allocated buffer of size: 1024
	// Allocated int with value: 42
	// Allocated slice: [0 2 4 6 8]
	// Memory in use: 1072 bytes
	// Utilization: 1.64%
	// After reset, memory in use: 0 bytes
}

// ExampleArena_Mark demonstrates scoped scratch memory
func ExampleArena_Mark() {
	a := New(4096)
	defer a.Destroy()

	keep, _ := AllocSlice[int64](a, 100)
	fmt.Printf("Kept: %d bytes in %d block(s)\n", len(keep)*8, a.NumBlocks())

	m := a.Mark()
	scratch, _ := a.Allocate(1<<20, 1)
	fmt.Printf("Scratch: %d bytes in %d block(s)\n", len(scratch), a.NumBlocks())

	if err := a.Release(m); err != nil {
		fmt.Println(err)
	}
	fmt.Printf("Released: %d used / %d reserved in %d block(s)\n", a.BytesUsed(), a.BytesReserved(), a.NumBlocks())

	// Output:
	// Kept: 800 bytes in 1 block(s)
	// Scratch: 1048576 bytes in 2 block(s)
	// Released: 800 used / 4096 reserved in 1 block(s)
}

// ExampleArena_Release_stale shows that marks do not survive a Reset
func ExampleArena_Release_stale() {
	a := New(1024)
	defer a.Destroy()

	m := a.Mark()
	a.Reset()

	err := a.Release(m)
	fmt.Println(errors.Is(err, ErrStaleMark))

	// Output:
	// true
}

// ExampleArena_webServer demonstrates arena usage in a request handler
func ExampleArena_webServer() {
	// Simulate a request handler that uses arena for temporary allocations
	handleRequest := func(requestID int) {
		// Create arena for this request
		a := New(4096) // 4KB blocks
		defer a.Destroy()

		// Allocate temporary objects for request processing
		requestData, _ := AllocSlice[byte](a, 1024)
		responseBuffer, _ := AllocSlice[byte](a, 2048)

		// Simulate processing
		copy(requestData, "request data")
		copy(responseBuffer, "response data")

		fmt.Printf("Request %d processed\n", requestID)
		fmt.Printf("Arena utilization: %.1f%%\n", a.Utilization()*100)
	}

	// Simulate multiple requests
	for i := 1; i <= 3; i++ {
		handleRequest(i)
	}

	// Output:
	// Request 1 processed
	// Arena utilization: 75.0%
	// Request 2 processed
	// Arena utilization: 75.0%
	// Request 3 processed
	// Arena utilization: 75.0%
}

// ExampleArena_Reset demonstrates arena reuse with Reset
func ExampleArena_Reset() {
	a := New(1024)
	defer a.Destroy()

	for round := 1; round <= 3; round++ {
		// Allocate memory for this round
		for i := 0; i < 5; i++ {
			_, _ = Alloc[int64](a)
		}

		fmt.Printf("Round %d - Memory in use: %d bytes\n", round, a.BytesUsed())

		// Reset arena for next round
		a.Reset()
	}

	// Output:
	// Round 1 - Memory in use: 40 bytes
	// Round 2 - Memory in use: 40 bytes
	// Round 3 - Memory in use: 40 bytes
}

// ExampleArena_DupString demonstrates copying strings into the arena
func ExampleArena_DupString() {
	a := New(1024)
	defer a.Destroy()

	s, _ := a.DupString("blah blah blah")
	fmt.Printf("%q uses %d bytes including the terminator\n", s, a.BytesUsed())

	// Output:
	// "blah blah blah" uses 15 bytes including the terminator
}

// ExampleStats demonstrates monitoring arena usage
func ExampleStats() {
	a := New(1024)
	defer a.Destroy()

	// Allocate various sizes to see metrics
	_, _ = a.Allocate(100, 0)
	_, _ = Alloc[int64](a)
	_, _ = AllocSlice[int32](a, 50)

	// Get detailed metrics
	stats := a.Stats()
	fmt.Printf("Stats:\n")
	fmt.Printf("  Bytes used: %d bytes\n", stats.BytesUsed)
	fmt.Printf("  Bytes reserved: %d bytes\n", stats.BytesReserved)
	fmt.Printf("  Blocks: %d\n", stats.NumBlocks)
	fmt.Printf("  Block size: %d bytes\n", stats.BlockSize)
	fmt.Printf("  Utilization: %.1f%%\n", stats.Utilization*100)

	// Output:
	// Stats:
	//   Bytes used: 312 bytes
	//   Bytes reserved: 1024 bytes
	//   Blocks: 1
	//   Block size: 1024 bytes
	//   Utilization: 30.5%
}

// ExampleAlloc_alignment demonstrates that allocations are properly aligned
func ExampleAlloc_alignment() {
	a := New(1024)
	defer a.Destroy()

	// Allocate different types to show alignment
	ptr1, _ := Alloc[int8](a)
	ptr2, _ := Alloc[int64](a) // Should be 8-byte aligned
	ptr3, _ := Alloc[int32](a) // Should be 4-byte aligned

	fmt.Printf("int8 address alignment: %d\n", uintptr(unsafe.Pointer(ptr1))%unsafe.Alignof(*ptr1))
	fmt.Printf("int64 address alignment: %d\n", uintptr(unsafe.Pointer(ptr2))%unsafe.Alignof(*ptr2))
	fmt.Printf("int32 address alignment: %d\n", uintptr(unsafe.Pointer(ptr3))%unsafe.Alignof(*ptr3))

	// Output:
	// int8 address alignment: 0
	// int64 address alignment: 0
	// int32 address alignment: 0
}
