// ABOUTME: Unit tests for node-local mutation helpers
// ABOUTME: insertAt/removeAt, split, extendWithNode, childIndexFor, min/max

package btree

import "testing"

func leafEntry(k int) entry[int, string] {
	return entry[int, string]{Key: k, Value: string(rune('a' + k))}
}

func TestNodeInsertAtShiftsTail(t *testing.T) {
	n := newNode[int, string](2)
	n.entries = append(n.entries, leafEntry(1), leafEntry(3))

	n.insertAt(1, leafEntry(2))

	if got := n.n(); got != 3 {
		t.Fatalf("n()=%d, want 3", got)
	}
	for i, want := range []int{1, 2, 3} {
		if n.entries[i].Key != want {
			t.Fatalf("entries[%d].Key=%d, want %d", i, n.entries[i].Key, want)
		}
	}
}

func TestNodeRemoveAtShiftsTail(t *testing.T) {
	n := newNode[int, string](2)
	n.entries = append(n.entries, leafEntry(1), leafEntry(2), leafEntry(3))

	removed := n.removeAt(1)

	if removed.Key != 2 {
		t.Fatalf("removed key=%d, want 2", removed.Key)
	}
	if got := n.n(); got != 2 {
		t.Fatalf("n()=%d, want 2", got)
	}
	if n.entries[0].Key != 1 || n.entries[1].Key != 3 {
		t.Fatalf("entries=%v, want [1 3]", n.entries)
	}
}

func TestNodeSplitKeepsFirstDegreeEntries(t *testing.T) {
	n := newNode[int, string](2)
	n.entries = append(n.entries, leafEntry(1), leafEntry(2), leafEntry(3), leafEntry(4))

	sibling := n.split(true)

	if n.n() != 2 || sibling.n() != 2 {
		t.Fatalf("split sizes = %d/%d, want 2/2", n.n(), sibling.n())
	}
	if n.entries[0].Key != 1 || n.entries[1].Key != 2 {
		t.Fatalf("left half=%v, want [1 2]", n.entries)
	}
	if sibling.entries[0].Key != 3 || sibling.entries[1].Key != 4 {
		t.Fatalf("right half=%v, want [3 4]", sibling.entries)
	}
}

func TestNodeSplitRepairsLeafChain(t *testing.T) {
	n := newNode[int, string](2)
	n.entries = append(n.entries, leafEntry(1), leafEntry(2), leafEntry(3), leafEntry(4))
	tail := newNode[int, string](2)
	n.next = tail
	tail.prev = n

	sibling := n.split(true)

	if n.next != sibling || sibling.prev != n {
		t.Fatal("split did not splice sibling between n and its old next")
	}
	if sibling.next != tail || tail.prev != sibling {
		t.Fatal("split did not repair old next's prev link")
	}
}

func TestNodeSplitInternalSkipsChainRepair(t *testing.T) {
	n := newNode[int, string](2)
	n.entries = append(n.entries, leafEntry(1), leafEntry(2), leafEntry(3), leafEntry(4))

	sibling := n.split(false)

	if n.next != nil || sibling.prev != nil {
		t.Fatal("internal split should not touch leaf-chain links")
	}
}

func TestNodeExtendWithNode(t *testing.T) {
	left := newNode[int, string](2)
	left.entries = append(left.entries, leafEntry(1), leafEntry(2))
	right := newNode[int, string](2)
	right.entries = append(right.entries, leafEntry(3), leafEntry(4))
	tail := newNode[int, string](2)
	right.next = tail
	tail.prev = right

	left.extendWithNode(right)

	if left.n() != 4 {
		t.Fatalf("n()=%d, want 4", left.n())
	}
	for i, want := range []int{1, 2, 3, 4} {
		if left.entries[i].Key != want {
			t.Fatalf("entries[%d].Key=%d, want %d", i, left.entries[i].Key, want)
		}
	}
	if left.next != tail || tail.prev != left {
		t.Fatal("extendWithNode did not adopt src's successor")
	}
}

func TestChildIndexForDegenerateLeftmost(t *testing.T) {
	leafA := newNode[int, string](2)
	leafA.entries = append(leafA.entries, leafEntry(5))
	leafB := newNode[int, string](2)
	leafB.entries = append(leafB.entries, leafEntry(10))

	internal := newNode[int, string](2)
	internal.entries = append(internal.entries,
		entry[int, string]{Key: 5, Child: leafA},
		entry[int, string]{Key: 10, Child: leafB},
	)

	if got := internal.childIndexFor(0); got != 0 {
		t.Fatalf("childIndexFor(0)=%d, want 0", got)
	}
	if got := internal.childIndexFor(5); got != 0 {
		t.Fatalf("childIndexFor(5)=%d, want 0", got)
	}
	if got := internal.childIndexFor(7); got != 0 {
		t.Fatalf("childIndexFor(7)=%d, want 0", got)
	}
	if got := internal.childIndexFor(10); got != 1 {
		t.Fatalf("childIndexFor(10)=%d, want 1", got)
	}
	if got := internal.childIndexFor(99); got != 1 {
		t.Fatalf("childIndexFor(99)=%d, want 1", got)
	}
}

func TestNodeMinMaxDescendToLeaves(t *testing.T) {
	leafA := newNode[int, string](2)
	leafA.entries = append(leafA.entries, leafEntry(1), leafEntry(2))
	leafB := newNode[int, string](2)
	leafB.entries = append(leafB.entries, leafEntry(3), leafEntry(4))

	internal := newNode[int, string](2)
	internal.entries = append(internal.entries,
		entry[int, string]{Key: 1, Child: leafA},
		entry[int, string]{Key: 3, Child: leafB},
	)

	if got := internal.min(); got != 1 {
		t.Fatalf("min()=%d, want 1", got)
	}
	if got := internal.max(); got != 4 {
		t.Fatalf("max()=%d, want 4", got)
	}
}

func TestCanBeBorrowedFrom(t *testing.T) {
	leaf := newNode[int, string](2)
	leaf.entries = append(leaf.entries, leafEntry(1))
	if leaf.canBeBorrowedFrom(0) {
		t.Fatal("leaf at exactly minEntries should not be lendable")
	}
	leaf.entries = append(leaf.entries, leafEntry(2))
	if !leaf.canBeBorrowedFrom(0) {
		t.Fatal("leaf above minEntries should be lendable")
	}

	internal := newNode[int, string](2)
	internal.entries = append(internal.entries, leafEntry(1), leafEntry(2))
	if internal.canBeBorrowedFrom(1) {
		t.Fatal("internal node needs one entry of margin over minEntries")
	}
	internal.entries = append(internal.entries, leafEntry(3))
	if !internal.canBeBorrowedFrom(1) {
		t.Fatal("internal node with margin should be lendable")
	}
}
