// ABOUTME: Tree public API - owns the root, height and size
// ABOUTME: dispatches Put/Get/Remove/Clear and drives the insert path

package btree

import "fmt"

// Tree is an in-memory, single-threaded, ordered B+tree index generic
// over a totally ordered key type K and an arbitrary value type V.
type Tree[K Ordered, V any] struct {
	degree int
	root   *node[K, V]
	height int
	size   int

	splits  int
	merges  int
	borrows int
}

// New constructs an empty tree. degree is the minimum branching factor
// of any non-root node; it must be at least 2.
func New[K Ordered, V any](degree int) (*Tree[K, V], error) {
	if degree < 2 {
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("degree must be >= 2, got %d", degree)}
	}
	return &Tree[K, V]{
		degree: degree,
		root:   newNode[K, V](degree),
	}, nil
}

func (t *Tree[K, V]) IsEmpty() bool        { return t.size == 0 }
func (t *Tree[K, V]) GetSize() int         { return t.size }
func (t *Tree[K, V]) GetHeight() int       { return t.height }
func (t *Tree[K, V]) GetMinimumDegree() int { return t.degree }

// StructuralCounts returns the lifetime count of splits, merges and
// borrows performed by this tree, for callers that want to expose them
// (e.g. as Prometheus counters) without the tree itself depending on
// any metrics library.
func (t *Tree[K, V]) StructuralCounts() (splits, merges, borrows int) {
	return t.splits, t.merges, t.borrows
}

// Clear resets the tree to an empty leaf root.
func (t *Tree[K, V]) Clear() {
	t.root = newNode[K, V](t.degree)
	t.size = 0
	t.height = 0
}

// Put inserts key with value, or replaces the value of an existing key
// in place (size and node occupancy are unaffected by an update).
func (t *Tree[K, V]) Put(key K, value V) {
	split := t.put(t.root, t.height, key, value)
	if split == nil {
		return
	}

	oldRoot := t.root
	newRoot := newNode[K, V](t.degree)
	newRoot.entries = append(newRoot.entries,
		entry[K, V]{Key: oldRoot.entries[0].Key, Child: oldRoot},
		entry[K, V]{Key: split.entries[0].Key, Child: split},
	)
	t.root = newRoot
	t.height++
}

// put recursively descends to the leaf covering key, inserts or updates
// it there, and propagates a split sibling back up the recursion. The
// returned node, if non-nil, must be linked into the caller at index+1
// of the child it descended into.
func (t *Tree[K, V]) put(n *node[K, V], height int, key K, value V) *node[K, V] {
	if height == 0 {
		i := insertionSearch(n.entries, key)
		if i < len(n.entries) && n.entries[i].Key == key {
			n.entries[i].Value = value
			return nil
		}
		n.insertAt(i, entry[K, V]{Key: key, Value: value})
		t.size++
	} else {
		i := n.childIndexFor(key)
		if split := t.put(n.entries[i].Child, height-1, key, value); split != nil {
			n.insertAt(i+1, entry[K, V]{Key: split.entries[0].Key, Child: split})
		}
	}

	if n.n() > n.maxEntries() {
		t.splits++
		return n.split(height == 0)
	}
	return nil
}

// Get retrieves the value stored for key, if present.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	n := t.root
	for h := t.height; h > 0; h-- {
		n = n.entries[n.childIndexFor(key)].Child
	}
	if i := exactSearch(n.entries, key); i >= 0 {
		return n.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present in the tree.
func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}
