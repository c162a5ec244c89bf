package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheLineSize(t *testing.T) {
	// Power of two on every supported architecture.
	assert.NotZero(t, CacheLineSize)
	assert.Zero(t, CacheLineSize&(CacheLineSize-1))
}

func TestAlignmentSkip(t *testing.T) {
	t.Run("aligned base", func(t *testing.T) {
		assert.Equal(t, 0, AlignmentSkip(0, 8))
		assert.Equal(t, 0, AlignmentSkip(CacheLineSize*3, 16))
	})

	t.Run("skip lands on a line", func(t *testing.T) {
		// Bases are element-aligned, as slab bases handed out by the
		// runtime always are.
		sizes := []uintptr{1, 2, 4, 8, 16, 32, CacheLineSize, CacheLineSize + 32}
		for _, size := range sizes {
			for mult := uintptr(0); mult < 8; mult++ {
				base := mult * size
				skip := AlignmentSkip(base, size)
				assert.LessOrEqual(t, skip, MaxAlignmentSkip(size))
				assert.Zero(t, (base+uintptr(skip)*size)%CacheLineSize,
					"base=%d size=%d skip=%d", base, size, skip)
			}
		}
	})

	t.Run("no reachable boundary falls back to zero", func(t *testing.T) {
		// base 8 with stride 16 only ever visits residues 8,24,40,56.
		assert.Equal(t, 0, AlignmentSkip(8, 16))
	})

	t.Run("zero element size", func(t *testing.T) {
		assert.Equal(t, 0, AlignmentSkip(8, 0))
		assert.Equal(t, 0, MaxAlignmentSkip(0))
	})
}

func TestMaxAlignmentSkip(t *testing.T) {
	assert.Equal(t, 0, MaxAlignmentSkip(CacheLineSize))
	assert.Equal(t, 0, MaxAlignmentSkip(CacheLineSize*2))
	assert.Equal(t, int(CacheLineSize)-1, MaxAlignmentSkip(1))
	assert.Equal(t, int(CacheLineSize)/8-1, MaxAlignmentSkip(8))
}
