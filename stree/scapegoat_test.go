package stree_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"scapegoat.dev/sgtree/stree"
)

// depths returns the root-to-node depth of every occupied node, via a
// cursor-based traversal so the test exercises the same navigation surface
// callers use.
func depths[K, V any](tr *stree.Tree[K, V]) []int {
	var out []int
	var walk func(c *stree.Cursor[K, V], d int)
	walk = func(c *stree.Cursor[K, V], d int) {
		if !c.Valid() {
			return
		}
		out = append(out, d)
		walk(c.Clone().Left(), d+1)
		walk(c.Clone().Right(), d+1)
	}
	walk(tr.Root(), 0)
	return out
}

func TestDepthBoundAfterInserts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := stree.New[int, int]()

	n := 2000
	keys := rng.Perm(n)
	for _, k := range keys {
		tr.Insert(k, k)
	}

	bound := int(math.Floor(math.Log(float64(n))/math.Log(1.5))) + 1
	for _, d := range depths(tr) {
		if d > bound {
			t.Fatalf("depth %d exceeds bound %d for n=%d", d, bound, n)
		}
	}
}

func TestDepthBoundAscendingInserts(t *testing.T) {
	tr := stree.New[int, int]()
	const n = 1024
	for i := 1; i <= n; i++ {
		tr.Insert(i, i)
	}

	// Ascending insertion is the adversarial order for an unbalanced BST;
	// with alpha = 2/3 the depth must still come out at most
	// floor(log_1.5(1024)) + 1 = 18.
	bound := int(math.Floor(math.Log(n)/math.Log(1.5))) + 1
	for _, d := range depths(tr) {
		if d > bound {
			t.Fatalf("depth %d exceeds bound %d for n=%d", d, bound, n)
		}
	}
	if tr.RebalCnt() == 0 {
		t.Error("ascending inserts should have triggered at least one rebuild")
	}
}

func TestInsertRemoveAgainstReferenceMap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := stree.New[int, int]()
	ref := map[int]int{}

	for i := 0; i < 4000; i++ {
		k := rng.Intn(500)
		if rng.Intn(3) == 0 && len(ref) > 0 {
			if _, ok := ref[k]; ok {
				delete(ref, k)
				if _, removed := tr.Remove(k); !removed {
					t.Fatalf("Remove(%d): expected removal, tree disagrees with reference", k)
				}
				continue
			}
		}
		ref[k] = i
		tr.Insert(k, i)
	}

	if tr.Len() != len(ref) {
		t.Fatalf("Len mismatch: tree=%d reference=%d", tr.Len(), len(ref))
	}

	var wantKeys []int
	for k := range ref {
		wantKeys = append(wantKeys, k)
	}
	sort.Ints(wantKeys)

	var gotKeys []int
	tr.Inorder(func(k, v int) bool {
		if want := ref[k]; v != want {
			t.Errorf("value mismatch for key %d: got %d, want %d", k, v, want)
		}
		gotKeys = append(gotKeys, k)
		return true
	})

	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("key count mismatch: got %d, want %d", len(gotKeys), len(wantKeys))
	}
	for i := range wantKeys {
		if gotKeys[i] != wantKeys[i] {
			t.Fatalf("key order mismatch at %d: got %d, want %d", i, gotKeys[i], wantKeys[i])
		}
	}
}

func TestRebalCntIncreasesUnderChurn(t *testing.T) {
	tr := stree.New[int, int]()
	for i := 0; i < 1000; i++ {
		tr.Insert(i, i)
	}
	if tr.RebalCnt() == 0 {
		t.Error("RebalCnt should be nonzero after enough sequential inserts to violate the depth bound")
	}
}

func TestDeletionTriggeredRebuild(t *testing.T) {
	tr := stree.New[int, int]()
	for i := 0; i < 100; i++ {
		tr.Insert(i, i)
	}
	before := tr.RebalCnt()

	// Remove a large majority to push max_size past 2*size and force the
	// deletion-triggered whole-tree rebuild.
	for i := 0; i < 90; i++ {
		tr.Remove(i)
	}

	if tr.RebalCnt() <= before {
		t.Error("deletion-triggered rebuild should have incremented RebalCnt")
	}
	if tr.Len() != 10 {
		t.Errorf("Len after heavy deletion: got %d, want 10", tr.Len())
	}
}
