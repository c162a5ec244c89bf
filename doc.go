// Package ordex provides an embedded ordered key/value index for Go.
//
// Ordex is built around a fixed-fanout, arena-allocated B-tree aimed at
// workloads where allocator jitter and cache misses matter more than
// feature breadth: order-book style lookups, symbol tables on the hot
// path, latency-sensitive routing tables. All node memory is reserved in
// one step at construction time and handed out by a bump allocator, so
// steady-state inserts and searches never touch the general-purpose heap.
//
// # Quick Start
//
//	idx, _ := ordex.BTree[int64, string]().
//	    Order(32).              // fanout: up to 64 keys per node
//	    ArenaSize(64 << 20).    // node budget, fixed for the lifetime
//	    Build()
//	defer idx.Close()
//
//	_ = idx.Insert(1001, "bid")
//	v, ok := idx.Search(1001)
//
// Or with functional options:
//
//	idx, _ := ordex.New[int64, string](ordex.WithOrder(32))
//
// # Design Constraints
//
// The index trades generality for predictable latency, and the missing
// pieces are deliberate:
//
//   - No deletion, no range scans, no rebalancing on shrink.
//   - The arena never grows; once the node budget is spent, Insert fails
//     with ErrArenaExhausted and keeps failing.
//   - Duplicate keys accumulate instead of overwriting; Search returns
//     the first-inserted value for an equal key.
//   - Single-threaded: no locks, no atomics, no concurrent use.
//
// # In-Node Search Policy
//
// Within a node the lower-bound scan is linear (4-way unrolled), not a
// binary search. At small fixed fanouts the sequential, cache-resident
// pass is branch-predictable and faster; a binary variant is available
// behind an option for large orders.
package ordex
