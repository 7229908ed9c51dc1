// Package stree implements an ordered key-value container on a scapegoat
// tree, a self-balancing binary search tree that restores balance with
// amortized partial rebuilds instead of per-node color or height metadata.
//
// Unlike a pointer-linked tree, every node of a Tree lives in a single
// contiguous arena and is addressed by a small integer index rather than a
// pointer: a Tree owns its arena outright, and no node holds a parent
// index. Operations that need ancestry — insertion's rebalance test,
// scapegoat selection, removal — reconstruct the root-to-target path by
// walking down from the root once, rather than carrying a parent index on
// every node.
//
// The scapegoat tree algorithm is described by the paper:
//
//	I. Galperin, R. Rivest: "Scapegoat Trees"
//	https://people.csail.mit.edu/rivest/pubs/GR93.pdf
//
// # Basic usage
//
//	t := stree.New[int, string]()
//	t.Insert(3, "c")
//	t.Insert(2, "b")
//	t.Insert(1, "a")
//
//	for k, v := range t.All() {
//		fmt.Println(k, v)
//	}
//
// # Build tags
//
// Two scapegoat-selection variants and one node-layout change are selected
// at compile time rather than through a runtime option, because they change
// what gets compiled into the node itself:
//
//   - fastrebalance: caches a subtree size on every node (see
//     node_fastrebalance.go), trading memory for O(1) scapegoat-search size
//     queries instead of a subtree walk.
//   - altimpl: selects the alternate scapegoat-selection rule from
//     Galperin's 1996 thesis (scapegoat_alt.go) over the original paper's
//     rule (scapegoat_classic.go).
package stree

import (
	"cmp"
	"unsafe"
)

// Tree is an ordered map on a scapegoat tree. The zero value is not usable;
// construct one with New or NewFunc. A *Tree is not safe for concurrent use
// without external synchronization.
type Tree[K, V any] struct {
	arena arena[K, V]
	cmp   func(a, b K) int

	root, min, max int32

	size, maxSize int
	alphaNum      int
	alphaDenom    int
	rebalCnt      uint64

	capacity      int
	highAssurance bool
}

// New constructs an empty Tree using the natural comparison order for an
// ordered key type.
func New[K cmp.Ordered, V any](opts ...Option) *Tree[K, V] {
	return NewFunc[K, V](cmp.Compare[K], opts...)
}

// NewFunc constructs an empty Tree using cmpFn to order keys. cmpFn must
// return <0, 0, or >0 as a is less than, equal to, or greater than b; it
// must implement a strict total order. NewFunc panics if cmpFn is nil.
func NewFunc[K, V any](cmpFn func(a, b K) int, opts ...Option) *Tree[K, V] {
	if cmpFn == nil {
		panic("stree: nil comparison function")
	}
	cfg := newConfig(opts)
	return &Tree[K, V]{
		arena:         *newArena[K, V](cfg.capacity),
		cmp:           cmpFn,
		root:          noIdx,
		min:           noIdx,
		max:           noIdx,
		alphaNum:      cfg.alphaNum,
		alphaDenom:    cfg.alphaDenom,
		capacity:      cfg.capacity,
		highAssurance: cfg.highAssurance,
	}
}

// SetRebalParam sets the balance factor alpha = num/denom. It returns
// ErrRebalanceFactorOutOfRange, leaving the tree unchanged, unless
// 0.5 <= alpha < 1.0.
func (t *Tree[K, V]) SetRebalParam(num, denom int) error {
	if denom <= 0 {
		return ErrRebalanceFactorOutOfRange
	}
	a := float64(num) / float64(denom)
	if a < 0.5 || a >= 1.0 {
		return ErrRebalanceFactorOutOfRange
	}
	t.alphaNum, t.alphaDenom = num, denom
	return nil
}

// RebalParam returns the current balance factor as (alpha_num, alpha_denom).
func (t *Tree[K, V]) RebalParam() (int, int) { return t.alphaNum, t.alphaDenom }

// Capacity returns the capacity configured with WithCapacity, or 0 if none
// was given (the arena then grows freely).
func (t *Tree[K, V]) Capacity() int { return t.capacity }

// NodeSize returns the size, in bytes, of one arena slot.
func (t *Tree[K, V]) NodeSize() int { return int(unsafe.Sizeof(node[K, V]{})) }

// Len reports the number of elements stored in the tree. Constant time.
func (t *Tree[K, V]) Len() int { return t.size }

// IsEmpty reports whether t is empty.
func (t *Tree[K, V]) IsEmpty() bool { return t.size == 0 }

// RebalCnt reports the number of completed rebuilds. It wraps on overflow.
func (t *Tree[K, V]) RebalCnt() uint64 { return t.rebalCnt }

// Clear removes every element from t. It preserves RebalCnt — counting
// rebuilds is a lifetime statistic, not a property of the current
// contents.
func (t *Tree[K, V]) Clear() {
	t.arena = *newArena[K, V](t.capacity)
	t.root, t.min, t.max = noIdx, noIdx, noIdx
	t.size, t.maxSize = 0, 0
}

// Insert adds or replaces the key-value pair for key, reporting the value
// it displaced, if any. Both the key and value are overwritten on a
// collision, which accommodates key types whose equality relation ignores
// fields the caller still wants refreshed.
//
// In HighAssurance mode, Insert returns ErrCapacityExceeded without
// modifying the tree if it is already at capacity.
func (t *Tree[K, V]) Insert(key K, val V) (V, bool, error) {
	if t.highAssurance && t.capacity > 0 && t.size >= t.capacity {
		var zero V
		return zero, false, ErrCapacityExceeded
	}
	old, had := t.put(key, val)
	return old, had, nil
}

// Append moves every element of other into t, leaving other empty. In
// HighAssurance mode, Append fails with ErrCapacityExceeded — leaving both
// trees unchanged — if the combined size would exceed t's capacity.
func (t *Tree[K, V]) Append(other *Tree[K, V]) error {
	if other.IsEmpty() {
		return nil
	}
	if t.highAssurance && t.capacity > 0 && t.size+other.size > t.capacity {
		return ErrCapacityExceeded
	}
	for idx := int32(0); idx < int32(len(other.arena.slots)); idx++ {
		if !other.arena.occupied[idx] {
			continue
		}
		k, v, _ := other.arena.remove(idx)
		t.put(k, v)
	}
	other.Clear()
	return nil
}

// GetOK reports whether key is present, and if so returns its value.
func (t *Tree[K, V]) GetOK(key K) (V, bool) {
	res := t.find(nil, key)
	if res.idx == noIdx {
		var zero V
		return zero, false
	}
	return t.arena.at(res.idx).val, true
}

// Get returns the value associated with key, or a zero value if absent.
func (t *Tree[K, V]) Get(key K) V {
	v, _ := t.GetOK(key)
	return v
}

// GetKeyValue returns the stored key and value for key, if present.
func (t *Tree[K, V]) GetKeyValue(key K) (k K, v V, ok bool) {
	res := t.find(nil, key)
	if res.idx == noIdx {
		return k, v, false
	}
	n := t.arena.at(res.idx)
	return n.key, n.val, true
}

// GetMut returns a pointer to the value stored for key, if present, for
// in-place mutation.
func (t *Tree[K, V]) GetMut(key K) (*V, bool) {
	res := t.find(nil, key)
	if res.idx == noIdx {
		return nil, false
	}
	return &t.arena.at(res.idx).val, true
}

// ContainsKey reports whether key is present in t.
func (t *Tree[K, V]) ContainsKey(key K) bool {
	_, ok := t.GetOK(key)
	return ok
}

// At returns the value for key, and panics if key is not present — the Go
// analogue of the source's indexing-by-key operator.
func (t *Tree[K, V]) At(key K) V {
	v, ok := t.GetOK(key)
	if !ok {
		panic("stree: key not found")
	}
	return v
}

// FirstKeyValue returns the minimum key and its value, in O(1).
func (t *Tree[K, V]) FirstKeyValue() (k K, v V, ok bool) {
	if t.size == 0 {
		return k, v, false
	}
	n := t.arena.at(t.min)
	return n.key, n.val, true
}

// FirstKey returns the minimum key, in O(1).
func (t *Tree[K, V]) FirstKey() (K, bool) {
	k, _, ok := t.FirstKeyValue()
	return k, ok
}

// LastKeyValue returns the maximum key and its value, in O(1).
func (t *Tree[K, V]) LastKeyValue() (k K, v V, ok bool) {
	if t.size == 0 {
		return k, v, false
	}
	n := t.arena.at(t.max)
	return n.key, n.val, true
}

// LastKey returns the maximum key, in O(1).
func (t *Tree[K, V]) LastKey() (K, bool) {
	k, _, ok := t.LastKeyValue()
	return k, ok
}

// PopFirst removes and returns the minimum key-value pair.
func (t *Tree[K, V]) PopFirst() (k K, v V, ok bool) {
	if t.IsEmpty() {
		return k, v, false
	}
	return t.popIdx(t.min)
}

// PopLast removes and returns the maximum key-value pair.
func (t *Tree[K, V]) PopLast() (k K, v V, ok bool) {
	if t.IsEmpty() {
		return k, v, false
	}
	return t.popIdx(t.max)
}

// RemoveEntry removes key, returning the removed key and value if present.
// If the removal leaves the tree overweight relative to its high-water
// mark (max_size > 2*size), the whole tree is rebuilt and the high-water
// mark reset.
func (t *Tree[K, V]) RemoveEntry(key K) (k K, v V, ok bool) {
	k, v, ok = t.removeByKey(key)
	if ok && t.maxSize > 2*t.size && t.root != noIdx {
		t.rebuild(t.root)
		t.maxSize = t.size
	}
	return k, v, ok
}

// Remove removes key, returning its value if present.
func (t *Tree[K, V]) Remove(key K) (V, bool) {
	_, v, ok := t.RemoveEntry(key)
	return v, ok
}

// Compact renumbers the arena so that occupied slots are stored in
// ascending key order with no gaps, restoring cache locality after a
// sequence of removals has scattered free slots through the middle of the
// arena. It does not rebalance the tree's shape, only its storage layout.
func (t *Tree[K, V]) Compact() {
	if t.root == noIdx {
		return
	}
	order := t.flattenSorted(t.root)
	t.root = t.arena.sort(t.root, order)
	t.min = 0
	t.max = int32(len(order) - 1)
}
