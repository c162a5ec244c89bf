// Package ordex provides an embedded ordered key/value index.
//
// This file implements the fluent builder API for creating and configuring
// Ordex instances. The builder is immutable - each method returns a new
// builder with the updated configuration.
package ordex

import (
	"cmp"

	"github.com/hupe1980/ordex/btree"
)

// BTree creates a new index builder with default configuration.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents
// accidental state sharing.
//
// Example:
//
//	idx, err := ordex.BTree[int64, string]().
//	    Order(32).
//	    ArenaSize(64 << 20).
//	    Build()
func BTree[K cmp.Ordered, V any]() BTreeBuilder[K, V] {
	return BTreeBuilder[K, V]{
		order:     btree.DefaultOrder,
		arenaSize: btree.DefaultArenaSize,
	}
}

// BTreeBuilder is an immutable fluent builder for creating Ordex instances.
// Each method returns a new builder with the updated configuration.
type BTreeBuilder[K cmp.Ordered, V any] struct {
	order        int
	arenaSize    int
	binarySearch bool
	logger       *Logger
	metrics      MetricsCollector
}

// Order sets the fanout parameter; a node holds at most 2*order keys.
// Default: 32. Must be in [1, btree.MaxOrder].
func (b BTreeBuilder[K, V]) Order(order int) BTreeBuilder[K, V] {
	b.order = order
	return b
}

// ArenaSize sets the node storage budget in bytes. The budget is reserved
// up front and never grows.
// Default: 64 MiB.
func (b BTreeBuilder[K, V]) ArenaSize(size int) BTreeBuilder[K, V] {
	b.arenaSize = size
	return b
}

// BinarySearch enables the binary in-node lower-bound scan instead of the
// default linear pass. Only worthwhile at large orders; benchmark first.
func (b BTreeBuilder[K, V]) BinarySearch() BTreeBuilder[K, V] {
	b.binarySearch = true
	return b
}

// Logger sets the structured logger for operation tracing.
func (b BTreeBuilder[K, V]) Logger(l *Logger) BTreeBuilder[K, V] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b BTreeBuilder[K, V]) Metrics(mc MetricsCollector) BTreeBuilder[K, V] {
	b.metrics = mc
	return b
}

// Build creates the Ordex instance.
func (b BTreeBuilder[K, V]) Build() (*Ordex[K, V], error) {
	optFns := []Option{
		WithOrder(b.order),
		WithArenaSize(b.arenaSize),
	}
	if b.binarySearch {
		optFns = append(optFns, WithBinarySearch())
	}
	if b.logger != nil {
		optFns = append(optFns, WithLogger(b.logger))
	}
	if b.metrics != nil {
		optFns = append(optFns, WithMetricsCollector(b.metrics))
	}

	return New[K, V](optFns...)
}

// MustBuild creates the Ordex instance, panicking on error.
func (b BTreeBuilder[K, V]) MustBuild() *Ordex[K, V] {
	idx, err := b.Build()
	if err != nil {
		panic(err)
	}
	return idx
}
