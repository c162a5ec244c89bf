// Package arena provides the fixed-capacity bump allocator that backs all
// B-tree node storage.
//
// # Allocation Model
//
// An Arena reserves one typed slab up front and hands out contiguous,
// zero-valued element runs by advancing a single offset. The offset never
// decreases: there is no free, no reset and no compaction. Once the slab
// is exhausted every further allocation fails with ErrArenaExhausted, and
// the condition is permanent. The entire slab is released in one step
// when the owning tree drops its arena references.
//
// # Why a typed slab
//
// A raw byte region with unsafe casts only works for pointer-free
// payloads; key and value types may carry pointers, and those must stay
// visible to the garbage collector. A typed slab gives the same bump
// discipline with full GC safety. The slab base is still steered onto a
// cache-line boundary where the element size permits it.
//
// # Concurrency
//
// Arena is deliberately not safe for concurrent use. The index it backs
// is single-threaded, so the allocator carries no locks and no atomics.
package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hupe1980/ordex/internal/mem"
)

// ErrArenaExhausted is returned when an allocation cannot be satisfied
// within the reserved capacity. The arena cannot grow and never reclaims
// space, so callers must treat the error as unrecoverable.
var ErrArenaExhausted = errors.New("arena: exhausted")

// Stats is a snapshot of arena usage.
type Stats struct {
	ElemsReserved uint64 // Slab capacity in elements
	ElemsUsed     uint64 // Elements handed out so far
	TotalAllocs   uint64 // Cumulative allocation count
}

// Arena is a monotonic bump allocator over a single typed slab.
type Arena[T any] struct {
	slab   []T
	offset int
	allocs uint64
}

// New reserves a slab of elems elements of T. The slab is over-allocated
// by at most one alignment cycle so the first handed-out element can sit
// on a cache-line boundary.
func New[T any](elems int) *Arena[T] {
	if elems <= 0 {
		return &Arena[T]{}
	}

	var zero T
	elemSize := unsafe.Sizeof(zero)
	if elemSize == 0 {
		return &Arena[T]{slab: make([]T, elems)}
	}

	slab := make([]T, elems+mem.MaxAlignmentSkip(elemSize))
	skip := mem.AlignmentSkip(uintptr(unsafe.Pointer(&slab[0])), elemSize)
	return &Arena[T]{slab: slab[skip : skip+elems : skip+elems]}
}

// Alloc hands out n contiguous zero-valued elements and returns the index
// of the first one together with the run itself. It fails with
// ErrArenaExhausted when the remaining capacity is smaller than n; the
// failed call changes nothing.
func (a *Arena[T]) Alloc(n int) (uint32, []T, error) {
	if n <= 0 {
		return 0, nil, nil
	}
	if a.offset+n > len(a.slab) {
		return 0, nil, ErrArenaExhausted
	}

	start := a.offset
	a.offset += n
	a.allocs++

	return uint32(start), a.slab[start : start+n : start+n], nil
}

// At returns a pointer to the element at index i. It performs the slab's
// own bounds check and nothing more; i must come from a prior Alloc.
func (a *Arena[T]) At(i uint32) *T {
	return &a.slab[i]
}

// Len returns the number of elements handed out so far.
func (a *Arena[T]) Len() int {
	return a.offset
}

// Cap returns the slab capacity in elements.
func (a *Arena[T]) Cap() int {
	return len(a.slab)
}

// Remaining returns the number of elements still available.
func (a *Arena[T]) Remaining() int {
	return len(a.slab) - a.offset
}

// Stats returns a snapshot of the current arena usage.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		ElemsReserved: uint64(len(a.slab)),
		ElemsUsed:     uint64(a.offset),
		TotalAllocs:   a.allocs,
	}
}

// Usage returns the used fraction of the slab as a percentage.
func (a *Arena[T]) Usage() float64 {
	if len(a.slab) == 0 {
		return 0
	}
	return float64(a.offset) / float64(len(a.slab)) * 100
}

func (a *Arena[T]) String() string {
	return fmt.Sprintf("Arena{elems: %d/%d, allocs: %d, usage: %.1f%%}",
		a.offset, len(a.slab), a.allocs, a.Usage())
}
