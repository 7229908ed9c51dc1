//go:build fastrebalance

package stree

// subtreeSize reads the cached size directly — O(1) instead of a subtree
// walk, the payoff for the fastrebalance tag's extra bookkeeping.
func (a *arena[K, V]) subtreeSize(idx int32) int32 {
	if idx == noIdx {
		return 0
	}
	return a.slots[idx].size
}

// subtreeSizeDifferential has nothing to differentiate when the size is
// already cached on every node.
func (a *arena[K, V]) subtreeSizeDifferential(parentIdx, _, _ int32) int32 {
	return a.subtreeSize(parentIdx)
}

// bumpPathSizes adjusts the cached subtree size of every ancestor recorded
// on path by delta, keeping every cached size exact after a structural
// insert or remove.
func bumpPathSizes[K, V any](a *arena[K, V], path []int32, delta int32) {
	for _, idx := range path {
		a.slots[idx].size += delta
	}
}

func setNodeSize[K, V any](n *node[K, V], sz int32) { n.size = sz }

func nodeSize[K, V any](n *node[K, V]) int32 { return n.size }
