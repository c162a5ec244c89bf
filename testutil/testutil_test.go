package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestRNG_Reset(t *testing.T) {
	r := NewRNG(7)

	first := make([]int, 10)
	for i := range first {
		first[i] = r.Intn(1000)
	}

	r.Reset()
	for i := range first {
		assert.Equal(t, first[i], r.Intn(1000))
	}
}

func TestRNG_Keys(t *testing.T) {
	r := NewRNG(1)
	keys := r.Keys(1000)
	require.Len(t, keys, 1000)

	seen := make(map[int64]bool, len(keys))
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %d", k)
		seen[k] = true
		assert.GreaterOrEqual(t, k, int64(0))
		assert.Less(t, k, int64(1000))
	}
}

func TestRNG_Seed(t *testing.T) {
	r := NewRNG(99)
	assert.Equal(t, int64(99), r.Seed())
}
