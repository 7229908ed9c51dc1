//go:build fastrebalance

package stree

import (
	"math/rand"
	"testing"
)

// actualSubtreeSize recomputes the size of the subtree rooted at idx by
// walking it directly, independent of the cached size field, so it can be
// compared against node.size to check the cache.
func actualSubtreeSize[K, V any](a *arena[K, V], idx int32) int32 {
	if idx == noIdx {
		return 0
	}
	n := a.at(idx)
	return 1 + actualSubtreeSize(a, n.left) + actualSubtreeSize(a, n.right)
}

// checkSizeCache walks every occupied node reachable from t.root and fails
// t if any node's cached size field disagrees with its true subtree size
// (each must equal one plus the sizes of its children's subtrees).
func checkSizeCache[K, V any](t *testing.T, tr *Tree[K, V]) {
	t.Helper()
	var walk func(idx int32)
	walk = func(idx int32) {
		if idx == noIdx {
			return
		}
		n := tr.arena.at(idx)
		if want := actualSubtreeSize(&tr.arena, idx); n.size != want {
			t.Errorf("node %d: cached size %d, actual subtree size %d", idx, n.size, want)
		}
		walk(n.left)
		walk(n.right)
	}
	walk(tr.root)
}

func TestFastRebalanceSizeCacheAfterInserts(t *testing.T) {
	tr := New[int, int]()
	rng := rand.New(rand.NewSource(11))
	for _, k := range rng.Perm(500) {
		tr.Insert(k, k)
	}
	checkSizeCache(t, tr)
}

func TestFastRebalanceSizeCacheAfterRemoves(t *testing.T) {
	tr := New[int, int]()
	for i := 0; i < 300; i++ {
		tr.Insert(i, i)
	}
	checkSizeCache(t, tr)

	rng := rand.New(rand.NewSource(12))
	for _, k := range rng.Perm(300)[:250] {
		tr.Remove(k)
	}
	checkSizeCache(t, tr)
}

func TestFastRebalanceSizeCacheAcrossTwoChildRemoval(t *testing.T) {
	tr := New[int, int]()
	for _, k := range []int{50, 25, 75, 10, 30, 60, 90, 27, 40} {
		tr.Insert(k, k)
	}
	tr.Remove(25) // target has two children; exercises unlinkSuccessor
	checkSizeCache(t, tr)
}

func TestFastRebalanceSizeCacheDeepSuccessorRemoval(t *testing.T) {
	tr := New[int, int]()
	for i := 0; i < 63; i++ {
		tr.Insert(i, i)
	}
	tr.rebuild(tr.root)
	// The root of a well-balanced tree has two children and an in-order
	// successor several levels down its right subtree, so removing it
	// exercises the long-walk case of unlinkSuccessor.
	rootKey := tr.arena.at(tr.root).key
	if _, ok := tr.Remove(rootKey); !ok {
		t.Fatalf("Remove(%d): want true", rootKey)
	}
	checkSizeCache(t, tr)
}

func TestFastRebalanceSizeCacheAfterExplicitRebuild(t *testing.T) {
	tr := New[int, int]()
	for i := 0; i < 200; i++ {
		tr.Insert(i, i)
	}
	if tr.root == noIdx {
		t.Fatal("tree unexpectedly empty")
	}
	tr.rebuild(tr.root)
	checkSizeCache(t, tr)
}
