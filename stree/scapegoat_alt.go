//go:build altimpl

package stree

// findScapegoat walks path — root to parent of the just-inserted leaf —
// from the end toward the root, using the alternate rule from Galperin's
// 1996 thesis: keep climbing while the number of ancestors visited so far
// does not exceed floor(log_{1/alpha}(childSize)). It returns noIdx only
// if path holds fewer than two nodes.
func (t *Tree[K, V]) findScapegoat(path []int32) int32 {
	if len(path) <= 1 {
		return noIdx
	}

	i := 0
	childSize := int32(1) // the newly inserted leaf
	parentPathIdx := len(path) - 1
	parentSize := t.arena.subtreeSize(path[parentPathIdx])

	for parentPathIdx > 0 && i <= t.alphaBalanceDepth(childSize) {
		childSize = parentSize
		parentPathIdx--
		i++
		parentSize = t.arena.subtreeSizeDifferential(path[parentPathIdx], path[parentPathIdx+1], childSize)
	}

	return path[parentPathIdx]
}
