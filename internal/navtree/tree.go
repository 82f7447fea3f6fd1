// Package navtree provides a tree of values
// keyed by /-separated paths.
// It backs the site's navigation:
// documents sit at their URL paths,
// and intermediate nodes without values become section listings.
package navtree

import (
	"sort"
	"strings"
)

const _sep = '/'

// Root is the starting point of the tree.
// The zero value of Root is an empty tree.
type Root[T any] struct {
	root node[T]
}

// Set adds a value to the tree under the given path.
// If this path already had a value, it is overwritten.
func (r *Root[T]) Set(p string, v T) {
	r.root.Set(p, &v)
}

// Lookup retrieves the value stored at exactly the given path.
// It reports false for paths that hold no value,
// including intermediate paths created by deeper Sets.
func (r *Root[T]) Lookup(p string) (v T, ok bool) {
	if got := r.root.Get(p); got != nil {
		v = *got
		ok = true
	}
	return v, ok
}

// Snapshot is a view of values added to the tree
// presented in a hierarchical manner.
type Snapshot[T any] struct {
	// Value at this node,
	// or nil if this node doesn't have an explicit value.
	Value *T
	// Path to this node from the root.
	Path string
	// Children of this node, ordered by name.
	Children []Snapshot[T]
}

// Snapshot builds and returns a view of all values in this tree.
// The returned slice holds the nodes closest to the root.
func (r *Root[T]) Snapshot() []Snapshot[T] {
	return r.root.Snapshot(nil).Children
}

// node children are kept as a name-sorted slice
// so that snapshots are deterministic without re-sorting.
type node[T any] struct {
	value    *T
	names    []string
	children []*node[T]
}

func (n *node[T]) child(name string) *node[T] {
	idx := sort.SearchStrings(n.names, name)
	if idx < len(n.names) && n.names[idx] == name {
		return n.children[idx]
	}

	c := new(node[T])
	n.names = append(n.names, "")
	copy(n.names[idx+1:], n.names[idx:])
	n.names[idx] = name
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = c
	return c
}

func (n *node[T]) Set(p string, v *T) {
	if len(p) == 0 {
		n.value = v
		return
	}

	head, tail := split(p)
	n.child(head).Set(tail, v)
}

func (n *node[T]) Get(p string) *T {
	if len(p) == 0 {
		return n.value
	}

	head, tail := split(p)
	idx := sort.SearchStrings(n.names, head)
	if idx >= len(n.names) || n.names[idx] != head {
		return nil
	}
	return n.children[idx].Get(tail)
}

func (n *node[T]) Snapshot(path []string) Snapshot[T] {
	var children []Snapshot[T]
	if len(n.children) > 0 {
		children = make([]Snapshot[T], len(n.children))
		for i, c := range n.children {
			children[i] = c.Snapshot(append(path, n.names[i]))
		}
	}

	return Snapshot[T]{
		Value:    n.value,
		Path:     strings.Join(path, string(_sep)),
		Children: children,
	}
}

func split(p string) (head, tail string) {
	head, tail = p, ""
	if idx := strings.IndexByte(p, _sep); idx >= 0 {
		head, tail = p[:idx], p[idx+1:]
	}
	for len(tail) > 0 && tail[0] == _sep {
		tail = tail[1:]
	}
	return head, tail
}
