package ordex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ordex"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		idx, err := ordex.New[int64, string]()
		require.NoError(t, err)
		defer idx.Close()

		assert.Equal(t, 0, idx.Len())
		assert.Equal(t, 1, idx.Height())
	})

	t.Run("invalid order", func(t *testing.T) {
		_, err := ordex.New[int64, string](ordex.WithOrder(0))
		require.Error(t, err)

		var invalid *ordex.ErrInvalidOrder
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 0, invalid.Order)
	})

	t.Run("invalid arena size", func(t *testing.T) {
		_, err := ordex.New[int64, string](ordex.WithArenaSize(1))
		require.Error(t, err)

		var invalid *ordex.ErrInvalidArenaSize
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 1, invalid.Size)
	})
}

func TestOrdex_InsertSearch(t *testing.T) {
	idx, err := ordex.New[string, int](ordex.WithOrder(2))
	require.NoError(t, err)
	defer idx.Close()

	require.NoError(t, idx.Insert("ask", 101))
	require.NoError(t, idx.Insert("bid", 99))

	v, ok := idx.Search("bid")
	require.True(t, ok)
	assert.Equal(t, 99, v)

	_, ok = idx.Search("mid")
	assert.False(t, ok)

	assert.Equal(t, 2, idx.Len())
}

func TestOrdex_ArenaExhaustion(t *testing.T) {
	// A budget this small holds exactly one node at order 2: the root
	// leaf fills at four keys and the fifth insert cannot split.
	idx, err := ordex.New[int64, int64](
		ordex.WithOrder(2),
		ordex.WithArenaSize(300),
	)
	require.NoError(t, err)
	defer idx.Close()

	require.Equal(t, 1, idx.Stats().NodeCapacity)

	for k := int64(1); k <= 4; k++ {
		require.NoError(t, idx.Insert(k, k))
	}

	err = idx.Insert(5, 5)
	require.ErrorIs(t, err, ordex.ErrArenaExhausted)

	// The index stays in its last consistent state.
	for k := int64(1); k <= 4; k++ {
		v, ok := idx.Search(k)
		require.True(t, ok)
		require.Equal(t, k, v)
	}
}

func TestOrdex_Builder(t *testing.T) {
	t.Run("build", func(t *testing.T) {
		idx, err := ordex.BTree[int64, string]().
			Order(4).
			ArenaSize(1 << 20).
			Build()
		require.NoError(t, err)
		defer idx.Close()

		require.NoError(t, idx.Insert(1, "one"))

		v, ok := idx.Search(1)
		require.True(t, ok)
		assert.Equal(t, "one", v)
		assert.Equal(t, 4, idx.Stats().Order)
	})

	t.Run("binary search mode", func(t *testing.T) {
		idx, err := ordex.BTree[int64, int64]().
			Order(64).
			BinarySearch().
			Build()
		require.NoError(t, err)
		defer idx.Close()

		for k := int64(0); k < 1000; k++ {
			require.NoError(t, idx.Insert(k, k*2))
		}
		for k := int64(0); k < 1000; k++ {
			v, ok := idx.Search(k)
			require.True(t, ok)
			require.Equal(t, k*2, v)
		}
	})

	t.Run("must build panics", func(t *testing.T) {
		assert.Panics(t, func() {
			ordex.BTree[int64, string]().Order(-1).MustBuild()
		})
	})
}

func TestOrdex_Metrics(t *testing.T) {
	metrics := &ordex.BasicMetricsCollector{}

	idx, err := ordex.New[int64, int64](
		ordex.WithOrder(2),
		ordex.WithMetricsCollector(metrics),
	)
	require.NoError(t, err)
	defer idx.Close()

	for k := int64(0); k < 10; k++ {
		require.NoError(t, idx.Insert(k, k))
	}
	idx.Search(3)
	idx.Search(-1)

	stats := metrics.GetStats()
	assert.Equal(t, int64(10), stats.InsertCount)
	assert.Equal(t, int64(0), stats.InsertErrors)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchHits)
}

func TestOrdex_DuplicateKeys(t *testing.T) {
	idx, err := ordex.New[int64, string](ordex.WithOrder(2))
	require.NoError(t, err)
	defer idx.Close()

	require.NoError(t, idx.Insert(7, "first"))
	require.NoError(t, idx.Insert(7, "second"))

	v, ok := idx.Search(7)
	require.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 2, idx.Len())
}

func TestOrdex_Close(t *testing.T) {
	idx, err := ordex.New[int64, int64]()
	require.NoError(t, err)

	require.NoError(t, idx.Insert(1, 1))
	require.NoError(t, idx.Close())

	assert.ErrorIs(t, idx.Insert(2, 2), ordex.ErrClosed)

	_, ok := idx.Search(1)
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}
