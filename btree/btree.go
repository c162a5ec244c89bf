// Package btree implements a fixed-fanout B-tree with arena-allocated
// nodes, built for ordered lookups with predictable, low-variance latency.
//
// All node storage comes from fixed-capacity bump arenas reserved at
// construction time, so the hot path never touches the general-purpose
// allocator. Nodes reference each other by index rather than pointer,
// keeping the one-owner, no-individual-free contract explicit.
//
// The tree supports insertion and exact lookup only. There is no
// deletion, no range iteration and no rebalancing on shrink; once the
// arena budget is spent, further inserts fail with ErrArenaExhausted.
//
// Duplicate keys are accepted: an equal key inserted later lands after
// the existing occurrences and Search keeps returning the value of the
// first-encountered match. Callers that need overwrite semantics must
// de-duplicate before inserting.
//
// The tree is not safe for concurrent use.
package btree

import (
	"cmp"
	"math"
	"unsafe"

	"github.com/hupe1980/ordex/internal/arena"
)

const (
	// DefaultOrder is the default fanout parameter. A node holds at
	// most 2*Order keys.
	DefaultOrder = 32

	// DefaultArenaSize is the default node storage budget (64 MiB).
	DefaultArenaSize = 64 * 1024 * 1024

	// MaxOrder is the largest accepted fanout parameter. Node occupancy
	// is tracked in a uint16, so 2*Order must stay within its range.
	MaxOrder = math.MaxUint16 / 2
)

// ErrArenaExhausted is returned by Insert when a node allocation cannot
// be satisfied within the arena budget fixed at construction time. The
// condition is permanent; the tree stays in its last consistent state
// and every previously inserted key remains searchable.
var ErrArenaExhausted = arena.ErrArenaExhausted

// Options represents the options for configuring a Tree.
type Options struct {
	// Order is the fanout parameter; a node holds at most 2*Order keys
	// and 2*Order+1 children. Fixed for the lifetime of the tree.
	// Must be in [1, MaxOrder].
	Order int

	// ArenaSize is the node storage budget in bytes. It bounds the
	// number of nodes the tree can ever allocate; the backing arenas
	// are reserved up front and never grow.
	ArenaSize int

	// BinarySearch switches the in-node lower-bound scan from the
	// default linear pass to a binary search. The linear scan is the
	// default on purpose: at small fixed fanouts a branch-predictable
	// sequential pass over one or two cache lines beats the branchy
	// binary variant. Enable this only for large orders, and measure.
	BinarySearch bool
}

// DefaultOptions holds the default Tree options.
var DefaultOptions = Options{
	Order:     DefaultOrder,
	ArenaSize: DefaultArenaSize,
}

// Stats is a snapshot of tree shape and arena usage.
type Stats struct {
	Len          int // Inserted pairs, duplicates included
	Height       int // Levels from root to leaf, inclusive
	Order        int
	MaxKeys      int
	NodesUsed    int // Allocated nodes
	NodeCapacity int // Total node budget
}

// Tree is a fixed-fanout B-tree mapping ordered keys to values.
type Tree[K cmp.Ordered, V any] struct {
	nodes    *arena.Arena[node[K, V]]
	keys     *arena.Arena[K]
	vals     *arena.Arena[V]
	children *arena.Arena[uint32]

	root    uint32
	maxKeys int
	length  int
	height  int
	binary  bool
	opts    Options
}

// New creates a Tree with the given options. The full arena budget is
// reserved before New returns; construction fails rather than letting
// the first Insert discover an unusable configuration.
func New[K cmp.Ordered, V any](optFns ...func(o *Options)) (*Tree[K, V], error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Order < 1 || opts.Order > MaxOrder {
		return nil, &ErrInvalidOrder{Order: opts.Order}
	}

	maxKeys := 2 * opts.Order
	footprint := nodeFootprint[K, V](maxKeys)
	budget := 0
	if footprint > 0 {
		budget = opts.ArenaSize / footprint
	}
	if budget < 1 {
		return nil, &ErrInvalidArenaSize{Size: opts.ArenaSize, MinSize: footprint}
	}

	t := &Tree[K, V]{
		// One extra node slot: index 0 is reserved as the null
		// reference so the zero-filled child array means "no child".
		nodes:    arena.New[node[K, V]](budget + 1),
		keys:     arena.New[K](budget * maxKeys),
		vals:     arena.New[V](budget * maxKeys),
		children: arena.New[uint32](budget * (maxKeys + 1)),
		maxKeys:  maxKeys,
		binary:   opts.BinarySearch,
		opts:     opts,
	}

	if _, _, err := t.nodes.Alloc(1); err != nil {
		return nil, err
	}

	root, _, err := t.newNode(true)
	if err != nil {
		return nil, err
	}

	t.root = root
	t.height = 1

	return t, nil
}

// Search returns the value associated with key, or the zero value and
// false if no such key exists. A miss is a normal outcome, not an error.
//
// The walk is a single root-to-leaf pass with no backtracking. If key
// was inserted more than once, the first-encountered occurrence wins.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	n := t.nodes.At(t.root)
	for {
		pos := t.findPos(n, key)
		if pos < int(n.count) && n.keys[pos] == key {
			return n.vals[pos], true
		}
		if n.leaf {
			var zero V
			return zero, false
		}
		n = t.nodes.At(n.children[pos])
	}
}

// Insert adds a key/value pair to the tree. Equal keys accumulate rather
// than overwrite. The only failure mode is ErrArenaExhausted; allocation
// happens before any linked mutation, so a failed Insert leaves the tree
// exactly as it was.
func (t *Tree[K, V]) Insert(key K, value V) error {
	n := t.nodes.At(t.root)
	if int(n.count) == t.maxKeys {
		// Grow the tree by one level: the old root becomes the sole
		// child of a fresh root, which is then split preemptively.
		// The root reference is swapped only after the split
		// succeeded, so an exhausted arena cannot re-root the tree.
		rootIdx, root, err := t.newNode(false)
		if err != nil {
			return err
		}
		root.children[0] = t.root

		if err := t.splitChild(root, 0); err != nil {
			return err
		}

		t.root = rootIdx
		t.height++
		n = root
	}

	return t.insertNonFull(n, key, value)
}

// insertNonFull descends from a node known to have a free slot, splitting
// any full child before stepping into it. Preemptive splitting means the
// parent always has room for the promoted key, so the descent never needs
// a second pass.
func (t *Tree[K, V]) insertNonFull(n *node[K, V], key K, value V) error {
	for {
		if n.leaf {
			// Shift right-to-left to open the slot. Scanning with a
			// strict > places an equal key after existing ones.
			i := int(n.count) - 1
			for i >= 0 && n.keys[i] > key {
				n.keys[i+1] = n.keys[i]
				n.vals[i+1] = n.vals[i]
				i--
			}
			n.keys[i+1] = key
			n.vals[i+1] = value
			n.count++
			t.length++
			return nil
		}

		pos := t.findPos(n, key)
		if child := t.nodes.At(n.children[pos]); int(child.count) == t.maxKeys {
			if err := t.splitChild(n, pos); err != nil {
				return err
			}
			if n.keys[pos] < key {
				pos++
			}
		}
		n = t.nodes.At(n.children[pos])
	}
}

// Len returns the number of inserted pairs, duplicates included.
func (t *Tree[K, V]) Len() int {
	return t.length
}

// Height returns the number of levels from the root to the leaves.
func (t *Tree[K, V]) Height() int {
	return t.height
}

// Order returns the fanout parameter fixed at construction time.
func (t *Tree[K, V]) Order() int {
	return t.opts.Order
}

// MaxKeys returns the per-node key capacity (2*Order).
func (t *Tree[K, V]) MaxKeys() int {
	return t.maxKeys
}

// Stats returns a snapshot of the tree shape and arena usage.
func (t *Tree[K, V]) Stats() Stats {
	return Stats{
		Len:          t.length,
		Height:       t.height,
		Order:        t.opts.Order,
		MaxKeys:      t.maxKeys,
		NodesUsed:    t.nodes.Len() - 1,
		NodeCapacity: t.nodes.Cap() - 1,
	}
}

// nodeFootprint is the arena cost of one node: the record itself plus its
// key, value and child storage.
func nodeFootprint[K cmp.Ordered, V any](maxKeys int) int {
	var (
		n node[K, V]
		k K
		v V
	)
	return int(unsafe.Sizeof(n)) +
		maxKeys*int(unsafe.Sizeof(k)) +
		maxKeys*int(unsafe.Sizeof(v)) +
		(maxKeys+1)*int(unsafe.Sizeof(uint32(0)))
}
