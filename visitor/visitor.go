// Package visitor provides generic AST traversal, search and rewriting
// utilities (component H), exposed through the adql package and to
// callers for their own tree inspection.
package visitor

import "github.com/skyquery-adql/adql/ast"

// Visitor is the interface for AST traversal, matching go/ast's shape:
// Visit is called with each node; returning nil stops descent into its
// children, returning a (possibly different) Visitor continues with it.
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses node and its descendants in document order, calling
// v.Visit at every node. node's own Children() method supplies the
// descent, so Walk itself needs no per-node-type switch.
func Walk(v Visitor, node ast.Node) {
	if node == nil || isNilNode(node) {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range node.Children() {
		Walk(v, child)
	}
}

type funcVisitor struct {
	fn func(ast.Node) bool
}

func (v *funcVisitor) Visit(node ast.Node) Visitor {
	if v.fn(node) {
		return v
	}
	return nil
}

// WalkFunc calls fn for every node in document order; returning false
// from fn skips that node's children.
func WalkFunc(node ast.Node, fn func(ast.Node) bool) {
	Walk(&funcVisitor{fn: fn}, node)
}

// Inspect is an alias for WalkFunc, matching go/ast's naming.
func Inspect(node ast.Node, fn func(ast.Node) bool) { WalkFunc(node, fn) }

// isNilNode guards against a typed-nil interface (e.g. a (*ast.Query)(nil)
// boxed into ast.Node), which node == nil does not catch.
func isNilNode(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Query:
		return v == nil
	case *ast.SetOperation:
		return v == nil
	case *ast.Join:
		return v == nil
	case *ast.TableRef:
		return v == nil
	}
	return false
}
