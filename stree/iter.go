package stree

import "iter"

// inorderWalk visits the subtree rooted at idx in key order using an
// explicit stack rather than recursion, so traversal depth never grows the
// Go call stack regardless of how deep a pre-rebuild tree gets.
func (t *Tree[K, V]) inorderWalk(idx int32, f func(key K, val V) bool) bool {
	var stack []int32
	cur := idx
	for cur != noIdx || len(stack) > 0 {
		for cur != noIdx {
			stack = append(stack, cur)
			cur = t.arena.at(cur).left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.arena.at(cur)
		if !f(n.key, n.val) {
			return false
		}
		cur = n.right
	}
	return true
}

// Inorder calls f for every key and value in the tree, in ascending key
// order. It stops early if f returns false.
func (t *Tree[K, V]) Inorder(f func(key K, val V) bool) bool {
	return t.inorderWalk(t.root, f)
}

// InorderMutate calls f for every key and value in the tree, in ascending
// key order, giving f a pointer to the stored value for in-place mutation.
// It stops early if f returns false.
func (t *Tree[K, V]) InorderMutate(f func(key K, val *V) bool) bool {
	var stack []int32
	cur := t.root
	for cur != noIdx || len(stack) > 0 {
		for cur != noIdx {
			stack = append(stack, cur)
			cur = t.arena.at(cur).left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.arena.at(cur)
		if !f(n.key, &n.val) {
			return false
		}
		cur = n.right
	}
	return true
}

// All returns an iterator over the tree's key-value pairs in ascending key
// order, the range-over-func counterpart to Inorder.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.Inorder(yield)
	}
}

// Mutate returns an iterator over the tree's keys paired with a pointer to
// each stored value, for in-place mutation during a range loop.
func (t *Tree[K, V]) Mutate() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		t.InorderMutate(func(k K, v *V) bool { return yield(k, v) })
	}
}

// Drain returns an iterator that removes and yields every key-value pair
// in the tree, in ascending key order. Stopping the range early leaves the
// remaining elements in place.
//
// The arena is sorted once up front so that index order matches key order;
// each element is then vacated and yielded in a single pass.
func (t *Tree[K, V]) Drain() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.IsEmpty() {
			return
		}
		t.Compact()
		n := int32(len(t.arena.slots))
		for i := int32(0); i < n; i++ {
			k, v := t.arena.hardRemove(i)
			t.size--
			if !yield(k, v) {
				t.resetAfterPartialDrain(i+1, n)
				return
			}
		}
		t.root, t.min, t.max = noIdx, noIdx, noIdx
		t.maxSize = 0
	}
}

// resetAfterPartialDrain restores a consistent tree from the still-occupied
// arena range [lo, hi) after a Drain stopped early. The range is already in
// key order (Drain compacted the arena first), so the survivors are
// relinked as a balanced tree directly.
func (t *Tree[K, V]) resetAfterPartialDrain(lo, hi int32) {
	if lo >= hi {
		t.root, t.min, t.max = noIdx, noIdx, noIdx
		t.maxSize = 0
		return
	}
	sorted := make([]int32, 0, hi-lo)
	for i := lo; i < hi; i++ {
		sorted = append(sorted, i)
	}
	t.root = t.linkBalanced(sorted)
	t.min, t.max = lo, hi-1
	t.maxSize = t.size
}

// Retain keeps only the entries for which keep returns true, removing the
// rest. It walks the tree in order once, collecting the keys to discard,
// then removes each of them.
func (t *Tree[K, V]) Retain(keep func(key K, val V) bool) {
	var drop []K
	t.Inorder(func(k K, v V) bool {
		if !keep(k, v) {
			drop = append(drop, k)
		}
		return true
	})
	for _, k := range drop {
		t.removeByKey(k)
	}
}

// SplitOff removes every entry with a key greater than or equal to key and
// returns them as a new Tree configured the same way as t (same comparator
// and balance factor, but not capacity or HighAssurance — the split
// portion is unbounded dynamic storage).
func (t *Tree[K, V]) SplitOff(key K) *Tree[K, V] {
	out := NewFunc[K, V](t.cmp, WithAlpha(t.alphaNum, t.alphaDenom))
	return t.drainFilter(out, func(k K, _ V) bool { return t.cmp(k, key) >= 0 })
}

// drainFilter moves every entry matching pred out of t and into out,
// returning out. pred is evaluated once per entry during a single inorder
// pass; matching keys are collected and then removed and reinserted.
func (t *Tree[K, V]) drainFilter(out *Tree[K, V], pred func(key K, val V) bool) *Tree[K, V] {
	var match []K
	t.Inorder(func(k K, v V) bool {
		if pred(k, v) {
			match = append(match, k)
		}
		return true
	})
	for _, k := range match {
		if kk, v, ok := t.removeByKey(k); ok {
			out.put(kk, v)
		}
	}
	return out
}
