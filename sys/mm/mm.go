// Package mm implements the physical page allocator and the bump heap on
// top of it. Allocations are never reclaimed; the heap grows until reset.
package mm

import (
	"fmt"

	"github.com/ascpixi/pyton/sys/boot"
)

// PageSize is the allocation granularity of the physical allocator.
const PageSize = 4096

// region is a usable memory region with a bump cursor.
type region struct {
	buf  []byte
	next int
}

var (
	regions []region
	current int

	allocated uint64
	freed     uint64
)

// Stats reports heap usage counters.
type Stats struct {
	// Allocated is the total number of bytes handed out.
	Allocated uint64

	// Freed is the total number of bytes passed to HeapFree. Nothing is
	// actually reclaimed; the counter exists for diagnostics.
	Freed uint64

	// Capacity is the total usable heap size in bytes.
	Capacity uint64
}

// Init initializes the allocator from the bootloader memory map. Regions
// that are not usable, or smaller than one page, are skipped.
func Init(info *boot.Info) {
	if info == nil {
		panic("mm: nil boot info")
	}

	regions = nil
	current = 0
	allocated = 0
	freed = 0

	for _, r := range info.MemoryMap {
		if !r.Usable || r.Length < PageSize {
			continue
		}
		buf := r.Buffer
		if buf == nil {
			// No backing storage was supplied, so host memory of the
			// region's length stands in for it.
			buf = make([]byte, r.Length)
		}
		regions = append(regions, region{buf: buf})
	}

	if len(regions) == 0 {
		panic("mm: no usable memory regions")
	}
}

// Initialized reports whether Init has run.
func Initialized() bool {
	return len(regions) > 0
}

// HeapAlloc returns a zeroed buffer of n bytes from the bump heap.
// Allocation failure is fatal.
func HeapAlloc(n int) []byte {
	if n <= 0 {
		panic("mm: non-positive allocation size")
	}
	if len(regions) == 0 {
		panic("mm: allocator not initialized")
	}

	// Round up to pointer alignment so consecutive allocations stay
	// aligned for any payload.
	aligned := (n + 7) &^ 7

	for current < len(regions) {
		r := &regions[current]
		if r.next+aligned <= len(r.buf) {
			buf := r.buf[r.next : r.next+n : r.next+n]
			r.next += aligned
			allocated += uint64(n)
			for i := range buf {
				buf[i] = 0
			}
			return buf
		}
		current++
	}

	panic(fmt.Sprintf("mm: out of memory allocating %d bytes", n))
}

// AllocPages returns count contiguous pages.
func AllocPages(count int) []byte {
	return HeapAlloc(count * PageSize)
}

// HeapFree records that a buffer is no longer needed. The heap never
// reclaims memory; object lifetime is "until reset".
func HeapFree(buf []byte) {
	freed += uint64(len(buf))
}

// HeapStats returns the current usage counters.
func HeapStats() Stats {
	var capacity uint64
	for _, r := range regions {
		capacity += uint64(len(r.buf))
	}
	return Stats{Allocated: allocated, Freed: freed, Capacity: capacity}
}
