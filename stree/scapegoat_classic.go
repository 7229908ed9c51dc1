//go:build !altimpl

package stree

// findScapegoat walks path — root to parent of the just-inserted leaf —
// from the end toward the root, using the rule from the original paper
// (Galperin & Rivest, 1993): keep climbing while
// alpha_denom*childSize <= alpha_num*parentSize, and return the first
// ancestor where that inequality fails. It returns noIdx only if path holds
// fewer than two nodes, which should not happen when the caller only
// selects a scapegoat after a depth-bound violation.
func (t *Tree[K, V]) findScapegoat(path []int32) int32 {
	if len(path) <= 1 {
		return noIdx
	}

	childSize := int32(1) // the newly inserted leaf
	parentPathIdx := len(path) - 1
	parentSize := t.arena.subtreeSize(path[parentPathIdx])

	for parentPathIdx > 0 &&
		int64(t.alphaDenom)*int64(childSize) <= int64(t.alphaNum)*int64(parentSize) {
		childSize = parentSize
		parentPathIdx--
		parentSize = t.arena.subtreeSizeDifferential(path[parentPathIdx], path[parentPathIdx+1], childSize)
	}

	return path[parentPathIdx]
}
