package stree

import "math"

// alphaBalanceDepth computes floor(log_{1/alpha}(val)), the depth bound a
// tree of the given size must not exceed. Values below 2 have no positive
// log in this base and are clamped to 0, matching the base case of an
// empty or single-node tree.
func (t *Tree[K, V]) alphaBalanceDepth(val int32) int {
	if val < 2 {
		return 0
	}
	base := float64(t.alphaDenom) / float64(t.alphaNum)
	return int(math.Floor(math.Log(float64(val)) / math.Log(base)))
}
