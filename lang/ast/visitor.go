package ast

// VisitDirection reports whether the visitor is entering or exiting a node.
type VisitDirection int

// A node is visited twice, once before and once after its children.
const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor is called by Walk for every node of the tree, in both directions.
// Returning nil from the VisitEnter call prunes the node's children and
// skips its VisitExit call.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(n Node, dir VisitDirection) Visitor

// Visit calls f.
func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor {
	return f(n, dir)
}

// Walk traverses the tree rooted at node in depth-first order: the node is
// visited with VisitEnter, its children are walked with the visitor
// returned by that call, and the node is visited again with VisitExit once
// all children are done.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(node, VisitExit)
}
