// ABOUTME: Delete path - recursive descent, rebalance via borrow or merge
// ABOUTME: separator-key repair in ancestor internal nodes, root-shrink

package btree

// Remove deletes key from the tree and reports whether it was present.
func (t *Tree[K, V]) Remove(key K) bool {
	removed, _ := t.remove(t.root, t.height, key, true)

	if t.height > 0 && t.root.n() == 1 {
		t.root = t.root.entries[0].Child
		t.height--
	}
	return removed
}

// remove recursively deletes key starting at n (at the given height,
// with isRoot set only for the tree's actual root). It reports whether
// the key was removed, and whether n now needs rebalancing by its
// parent (a leaf dropped below minEntries, or an internal node dropped
// below minEntries+1 children). Root-level underflow is handled by
// the caller via root-shrink, not by this flag.
func (t *Tree[K, V]) remove(n *node[K, V], height int, key K, isRoot bool) (removed bool, rebalance bool) {
	if height == 0 {
		i := exactSearch(n.entries, key)
		if i < 0 {
			return false, false
		}
		n.removeAt(i)
		t.size--
		return true, n.n() < n.minEntries()
	}

	i := n.childIndexFor(key)
	removed, childRebalance := t.remove(n.entries[i].Child, height-1, key, false)
	if !removed {
		return false, false
	}

	if childRebalance {
		childRebalance = t.rebalanceChild(n, i, height-1)
	}
	rebalance = childRebalance

	if sepIdx := exactSearch(n.entries, key); sepIdx >= 0 {
		if n.n() <= n.minEntries() && !isRoot {
			rebalance = true
		} else {
			n.entries[sepIdx].Key = n.entries[sepIdx].Child.min()
		}
	}

	return true, rebalance
}

// rebalanceChild repairs the underflowed child at index i of n: it tries
// to borrow a single entry from the predecessor sibling, then the
// successor sibling, and merges with a neighbor as a last resort. It
// reports whether n itself now needs rebalancing by its own parent.
func (t *Tree[K, V]) rebalanceChild(n *node[K, V], i int, childHeight int) bool {
	if i > 0 && n.entries[i-1].Child.canBeBorrowedFrom(childHeight) {
		borrowFromPredecessor(n, i, childHeight)
		t.borrows++
		return false
	}
	if i+1 < n.n() && n.entries[i+1].Child.canBeBorrowedFrom(childHeight) {
		borrowFromSuccessor(n, i, childHeight)
		t.borrows++
		return false
	}

	if i > 0 {
		left := n.entries[i-1].Child
		if childHeight > 0 {
			n.entries[i].Child.entries[0].Key = n.entries[i].Key
		}
		left.extendWithNode(n.entries[i].Child)
		n.removeAt(i)
	} else {
		right := n.entries[i+1].Child
		if childHeight > 0 {
			right.entries[0].Key = n.entries[i+1].Key
		}
		n.entries[i].Child.extendWithNode(right)
		n.removeAt(i + 1)
	}
	t.merges++
	return n.n() < n.minEntries()+1
}

// borrowFromPredecessor moves the predecessor sibling's last entry to
// the front of the child at index i. sep is i: the separator between
// donor and recipient is the entry that represents the recipient's own
// subtree minimum.
func borrowFromPredecessor[K Ordered, V any](n *node[K, V], i int, childHeight int) {
	sibling := n.entries[i-1].Child
	child := n.entries[i].Child
	e := sibling.removeAt(sibling.n() - 1)
	child.insertAt(0, e)

	if childHeight == 0 {
		n.entries[i].Key = child.min()
		return
	}
	oldSep := n.entries[i].Key
	n.entries[i].Key = e.Key
	child.entries[1].Key = oldSep
}

// borrowFromSuccessor moves the successor sibling's first entry to the
// tail of the child at index i. sep is i+1: the separator between
// donor and recipient is the entry that represents the donor's own
// subtree minimum.
func borrowFromSuccessor[K Ordered, V any](n *node[K, V], i int, childHeight int) {
	sibling := n.entries[i+1].Child
	child := n.entries[i].Child
	e := sibling.removeAt(0)
	child.insertAt(child.n(), e)

	if childHeight == 0 {
		n.entries[i+1].Key = sibling.min()
		return
	}
	oldSep := n.entries[i+1].Key
	n.entries[i+1].Key = sibling.min()
	child.entries[child.n()-1].Key = oldSep
}
