package stree

// put inserts or replaces the key-value pair for key. It reports the value
// it displaced, and whether one existed.
func (t *Tree[K, V]) put(key K, val V) (old V, had bool) {
	if t.root == noIdx {
		idx := t.arena.add(key, val)
		setNodeSize(t.arena.at(idx), 1)
		t.root, t.min, t.max = idx, idx, idx
		t.size, t.maxSize = 1, 1
		return old, false
	}

	var path []int32
	cur := t.root
	for {
		n := t.arena.at(cur)
		switch c := t.cmp(key, n.key); {
		case c == 0:
			old, n.key, n.val = n.val, key, val
			return old, true
		case c < 0:
			path = append(path, cur)
			if n.left == noIdx {
				t.insertLeaf(path, cur, key, val, true)
				return old, false
			}
			cur = n.left
		default:
			path = append(path, cur)
			if n.right == noIdx {
				t.insertLeaf(path, cur, key, val, false)
				return old, false
			}
			cur = n.right
		}
	}
}

// insertLeaf allocates the new leaf under parent, updates bookkeeping, and
// runs the rebalance test. path holds every ancestor from the root down to
// and including parent.
func (t *Tree[K, V]) insertLeaf(path []int32, parent int32, key K, val V, left bool) {
	idx := t.arena.add(key, val)
	setNodeSize(t.arena.at(idx), 1)

	if t.cmp(key, t.arena.at(t.min).key) < 0 {
		t.min = idx
	}
	if t.cmp(key, t.arena.at(t.max).key) > 0 {
		t.max = idx
	}

	p := t.arena.at(parent)
	if left {
		p.left = idx
	} else {
		p.right = idx
	}

	t.size++
	t.maxSize++
	bumpPathSizes(&t.arena, path, 1)

	depth := len(path)
	if depth > t.alphaBalanceDepth(int32(t.maxSize)) {
		if sg := t.findScapegoat(path); sg != noIdx {
			t.rebuild(sg)
		}
	}
}
