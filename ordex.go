package ordex

import (
	"cmp"
	"time"

	"github.com/hupe1980/ordex/btree"
)

// Ordex is an embedded ordered index mapping keys to values, backed by an
// arena-allocated fixed-fanout B-tree. It adds logging, metrics and error
// translation on top of the btree package; the data-structure semantics
// live there.
//
// An Ordex instance is single-threaded: callers must not invoke Insert or
// Search concurrently from multiple goroutines.
type Ordex[K cmp.Ordered, V any] struct {
	tree    *btree.Tree[K, V]
	logger  *Logger
	metrics MetricsCollector
}

// New creates an Ordex instance with the given options. The full arena
// budget is reserved up front; it cannot grow afterwards.
func New[K cmp.Ordered, V any](optFns ...Option) (*Ordex[K, V], error) {
	o := applyOptions(optFns)

	tree, err := btree.New[K, V](func(bo *btree.Options) {
		bo.Order = o.order
		bo.ArenaSize = o.arenaSize
		bo.BinarySearch = o.binarySearch
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &Ordex[K, V]{
		tree:    tree,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

// Insert adds a key/value pair. Duplicate keys accumulate rather than
// overwrite; Search keeps returning the first-inserted value for an equal
// key. The only failure mode is ErrArenaExhausted, which is permanent and
// leaves the index in its last consistent state.
func (o *Ordex[K, V]) Insert(key K, value V) error {
	if o.tree == nil {
		return ErrClosed
	}

	start := time.Now()
	err := o.tree.Insert(key, value)
	o.metrics.RecordInsert(time.Since(start), err)
	o.logger.LogInsert(err)

	return translateError(err)
}

// Search returns the value associated with key, or the zero value and
// false if no such key exists. A miss is a normal outcome, not an error.
// A closed index also reports a miss; callers that need to tell the two
// apart must check for ErrClosed on the write path.
func (o *Ordex[K, V]) Search(key K) (V, bool) {
	if o.tree == nil {
		var zero V
		return zero, false
	}

	start := time.Now()
	v, found := o.tree.Search(key)
	o.metrics.RecordSearch(found, time.Since(start))
	o.logger.LogSearch(found)

	return v, found
}

// Len returns the number of inserted pairs, duplicates included.
func (o *Ordex[K, V]) Len() int {
	if o.tree == nil {
		return 0
	}
	return o.tree.Len()
}

// Height returns the number of tree levels from the root to the leaves.
func (o *Ordex[K, V]) Height() int {
	if o.tree == nil {
		return 0
	}
	return o.tree.Height()
}

// Stats returns a snapshot of the tree shape and arena usage.
func (o *Ordex[K, V]) Stats() btree.Stats {
	if o.tree == nil {
		return btree.Stats{}
	}
	return o.tree.Stats()
}

// Close releases the index. Dropping the tree releases every node's
// memory in one step; nodes are never reclaimed individually. Further
// calls on a closed index fail with ErrClosed (or report a miss).
func (o *Ordex[K, V]) Close() error {
	o.tree = nil
	return nil
}
