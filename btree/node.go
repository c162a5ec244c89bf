package btree

import (
	"cmp"
	"sort"
)

// node is a fixed-capacity tree node. Its key, value and child storage is
// carved from the tree's arenas at allocation time and never resized;
// only the first count slots of keys/vals are meaningful, and only the
// first count+1 slots of children when the node is internal. Child slots
// hold node indices, with 0 meaning "no child".
type node[K cmp.Ordered, V any] struct {
	keys     []K
	vals     []V
	children []uint32
	count    uint16
	leaf     bool
}

// newNode allocates a zeroed node together with its key, value and child
// storage. The arenas are sized in lockstep at construction, so either
// the whole node fits or the first sub-allocation fails with nothing
// linked into the tree.
func (t *Tree[K, V]) newNode(leaf bool) (uint32, *node[K, V], error) {
	idx, run, err := t.nodes.Alloc(1)
	if err != nil {
		return 0, nil, err
	}

	n := &run[0]
	if _, n.keys, err = t.keys.Alloc(t.maxKeys); err != nil {
		return 0, nil, err
	}
	if _, n.vals, err = t.vals.Alloc(t.maxKeys); err != nil {
		return 0, nil, err
	}
	if _, n.children, err = t.children.Alloc(t.maxKeys + 1); err != nil {
		return 0, nil, err
	}
	n.leaf = leaf

	return idx, n, nil
}

// findPos returns the smallest index i in [0, count] with keys[i] >= key,
// or count if no such slot exists. Search and insert use the same scan to
// pick the descent index.
func (t *Tree[K, V]) findPos(n *node[K, V], key K) int {
	if t.binary {
		return findPosBinary(n, key)
	}
	return findPosLinear(n, key)
}

// findPosLinear is the default lower-bound scan: a 4-way unrolled linear
// pass over the occupied slots. At the small fixed fanouts this tree is
// built for, the sequential cache-resident pass is branch-predictable and
// beats binary search; this is a deliberate policy, not a shortcut.
func findPosLinear[K cmp.Ordered, V any](n *node[K, V], key K) int {
	i, count := 0, int(n.count)

	for ; i+4 <= count; i += 4 {
		if n.keys[i] >= key {
			return i
		}
		if n.keys[i+1] >= key {
			return i + 1
		}
		if n.keys[i+2] >= key {
			return i + 2
		}
		if n.keys[i+3] >= key {
			return i + 3
		}
	}
	for ; i < count; i++ {
		if n.keys[i] >= key {
			return i
		}
	}

	return count
}

// findPosBinary is the opt-in binary lower-bound variant for large
// orders. See Options.BinarySearch.
func findPosBinary[K cmp.Ordered, V any](n *node[K, V], key K) int {
	return sort.Search(int(n.count), func(i int) bool {
		return n.keys[i] >= key
	})
}

// splitChild splits the full child at parent.children[idx]. The sibling
// takes the upper half [mid+1, maxKeys), the child truncates to mid, and
// the entry at slot mid moves up into the parent at idx. The sibling is
// allocated before anything is mutated, so arena exhaustion aborts the
// split with the tree untouched.
//
// Called only when the child is full and the parent is not.
func (t *Tree[K, V]) splitChild(parent *node[K, V], idx int) error {
	full := t.nodes.At(parent.children[idx])

	sibIdx, sib, err := t.newNode(full.leaf)
	if err != nil {
		return err
	}

	mid := t.maxKeys / 2
	moved := t.maxKeys - mid - 1

	sib.count = uint16(moved)
	copy(sib.keys[:moved], full.keys[mid+1:t.maxKeys])
	copy(sib.vals[:moved], full.vals[mid+1:t.maxKeys])
	if !full.leaf {
		copy(sib.children[:moved+1], full.children[mid+1:t.maxKeys+1])
	}
	full.count = uint16(mid)

	for i := int(parent.count); i > idx; i-- {
		parent.children[i+1] = parent.children[i]
		parent.keys[i] = parent.keys[i-1]
		parent.vals[i] = parent.vals[i-1]
	}
	parent.children[idx+1] = sibIdx
	parent.keys[idx] = full.keys[mid]
	parent.vals[idx] = full.vals[mid]
	parent.count++

	return nil
}
