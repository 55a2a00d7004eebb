package ast

import (
	"jfold/internal/source"
)

// Tree is the arena-backed syntax tree of one document.
type Tree struct {
	File      source.FileID
	Nodes     *Arena[Node]
	Root      NodeID
	FirstType NodeID
}

// NewTree creates an empty tree for file.
func NewTree(file source.FileID, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Tree{
		File:  file,
		Nodes: NewArena[Node](capHint),
	}
}

// New allocates a node.
func (t *Tree) New(n Node) NodeID {
	return NodeID(t.Nodes.Allocate(n))
}

// Get returns the node for id, or nil.
func (t *Tree) Get(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Adopt appends child to parent's Children and records the back link.
func (t *Tree) Adopt(parent, child NodeID) {
	if !parent.IsValid() || !child.IsValid() {
		return
	}
	p := t.Get(parent)
	p.Children = append(p.Children, child)
	t.Get(child).Parent = parent
}

// Depth returns the number of element ancestors between id and the file root.
// Top-level types have depth 0.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for n := t.Get(id); n != nil && n.Parent.IsValid(); n = t.Get(n.Parent) {
		if t.Get(n.Parent).Kind != KindFile {
			depth++
		}
	}
	return depth
}

// IsTopLevel reports whether id is a direct child of the file root.
func (t *Tree) IsTopLevel(id NodeID) bool {
	n := t.Get(id)
	if n == nil {
		return false
	}
	p := t.Get(n.Parent)
	return p != nil && p.Kind == KindFile
}

// Walk visits id and its descendants in source order. Returning false from
// fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	n := t.Get(id)
	if n == nil {
		return
	}
	if !fn(id, n) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, fn)
	}
}

// FindKey returns the node with the given key.
func (t *Tree) FindKey(key string) (NodeID, bool) {
	found := NoNodeID
	t.Walk(t.Root, func(id NodeID, n *Node) bool {
		if found.IsValid() {
			return false
		}
		if n.Key == key {
			found = id
			return false
		}
		return true
	})
	return found, found.IsValid()
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return int(t.Nodes.Len())
}
