package ast

import (
	"jfold/internal/source"
)

// Node is one construct of the tree. Which link fields are set depends on Kind:
//
//	If:           Then, Else (Else is an If for `else if`)
//	loops:        Body, HeaderEnd (end of the closing paren, or of `do`)
//	Try:          Body, Catches, Finally
//	Catch, Method, Initializer, Synchronized, Lambda: Body
//	Case:         Arrow; Children are the case statements
//	TypeDecl, AnonClass: Body spans the braces, Children are the members
//
// Children always lists every nested node in source order, including the link
// targets, so a walker never needs to look at the link fields.
type Node struct {
	Kind      Kind
	Span      source.Span
	Name      source.Span
	Body      NodeID
	Then      NodeID
	Else      NodeID
	Finally   NodeID
	Catches   []NodeID
	Children  []NodeID
	Parent    NodeID
	HeaderEnd uint32
	BodySpan  source.Span
	Flavor    TypeFlavor
	Arrow     bool
	// Key is the node's stable identity across reparses of the same text,
	// for example `Outer.Inner#run(int)/if[0]`.
	Key string
}

// HasBody reports whether the node owns a body link.
func (n *Node) HasBody() bool {
	return n.Body.IsValid()
}
