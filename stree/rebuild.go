package stree

import "slices"

// rebuildJob describes one node still to be relinked during an iterative
// rebuild: its position (sortedIdx) within the flattened, sorted slice, and
// the inclusive [low, high] range of that slice its subtree spans.
type rebuildJob struct {
	sortedIdx, low, high int
}

// flattenSorted collects every arena index reachable from idx by an
// iterative depth-first walk, then sorts them by key. No recursion: the
// walk uses an explicit stack, as required of a subtree that may be as
// deep as the whole tree mid-rebuild.
func (t *Tree[K, V]) flattenSorted(idx int32) []int32 {
	var out []int32
	stack := []int32{idx}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, i)
		n := t.arena.at(i)
		if n.left != noIdx {
			stack = append(stack, n.left)
		}
		if n.right != noIdx {
			stack = append(stack, n.right)
		}
	}
	// No duplicate keys exist, so a stable sort buys nothing; sort
	// unstably by key.
	slices.SortFunc(out, func(a, b int32) int {
		return t.cmp(t.arena.at(a).key, t.arena.at(b).key)
	})
	return out
}

// rebuild flattens the subtree rooted at idx and reassembles it as a
// perfectly height-balanced BST occupying the same arena slots, then
// records the rebuild.
func (t *Tree[K, V]) rebuild(idx int32) {
	sorted := t.flattenSorted(idx)
	t.rebuildFromSorted(idx, sorted)
	t.rebalCnt++
}

// rebuildFromSorted rewires left/right indices in place so that sorted —
// already in key order — forms a balanced BST, via the classic midpoint
// recursion run iteratively over an explicit worklist. The new subtree root
// is linked into whatever currently points at oldRoot: the tree root, or
// the appropriate child of the (re-discovered) parent.
func (t *Tree[K, V]) rebuildFromSorted(oldRoot int32, sorted []int32) {
	if len(sorted) <= 1 {
		return
	}

	newRoot := sorted[(len(sorted)-1)/2]
	if oldRoot == t.root {
		t.root = newRoot
	} else {
		// The subtree's parent still points at oldRoot; re-discover it by
		// key, since no node carries a parent index.
		res := t.find(nil, t.arena.at(oldRoot).key)
		parent := t.arena.at(res.parent)
		if res.isRight {
			parent.right = newRoot
		} else {
			parent.left = newRoot
		}
	}

	t.linkBalanced(sorted)
}

// linkBalanced rewires the left and right indices of every node in sorted —
// already in key order — so they form a perfectly height-balanced BST, and
// returns the index of its root. Children are cleared before reassignment;
// cached subtree sizes, when compiled in, are set from the range widths.
func (t *Tree[K, V]) linkBalanced(sorted []int32) int32 {
	lastIdx := len(sorted) - 1
	midIdx := lastIdx / 2

	work := []rebuildJob{{midIdx, 0, lastIdx}}
	for len(work) > 0 {
		j := work[len(work)-1]
		work = work[:len(work)-1]

		n := t.arena.at(sorted[j.sortedIdx])
		n.left, n.right = noIdx, noIdx

		if j.low < j.sortedIdx {
			lo, hi := j.low, j.sortedIdx-1
			mid := lo + (hi-lo)/2
			n.left = sorted[mid]
			work = append(work, rebuildJob{mid, lo, hi})
		}
		if j.sortedIdx < j.high {
			lo, hi := j.sortedIdx+1, j.high
			mid := lo + (hi-lo)/2
			n.right = sorted[mid]
			work = append(work, rebuildJob{mid, lo, hi})
		}

		setNodeSize(n, int32(j.high-j.low+1))
	}
	return sorted[midIdx]
}
