// Package mem provides cache-line geometry helpers for arena slabs.
package mem

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the size of a CPU cache line on the target
// architecture, as reported by x/sys/cpu (64 bytes on amd64/arm64).
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// AlignmentSkip returns the number of elements of size elemSize to skip
// from base so that the next element starts on a cache-line boundary.
//
// The search is bounded by one full cycle of base mod CacheLineSize. For
// element sizes that never land on a line boundary from the given base
// (possible when elemSize shares no suitable factor with the line size),
// it returns 0 and the slab keeps its natural alignment.
func AlignmentSkip(base uintptr, elemSize uintptr) int {
	if elemSize == 0 {
		return 0
	}
	for i := uintptr(0); i < CacheLineSize; i++ {
		if (base+i*elemSize)%CacheLineSize == 0 {
			return int(i)
		}
	}
	return 0
}

// MaxAlignmentSkip returns the largest value AlignmentSkip can yield for
// the given element size. Callers over-allocate by this many elements so
// the skip never eats into the requested capacity.
func MaxAlignmentSkip(elemSize uintptr) int {
	if elemSize == 0 {
		return 0
	}
	// Addresses base+i*elemSize revisit the same residue mod the line
	// size with period CacheLineSize/gcd(elemSize, CacheLineSize).
	return int(CacheLineSize/gcd(elemSize, CacheLineSize)) - 1
}

func gcd(a, b uintptr) uintptr {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
