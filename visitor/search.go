package visitor

import "github.com/skyquery-adql/adql/ast"

// SearchHandler couples a match predicate with a "go-into" rule, so a
// caller can, for example, search GROUP BY for column references without
// descending into a correlated subquery's own SELECT list (spec.md §4.6).
// Match is called on every node reached; GoInto decides whether the
// search continues into that node's children (a nil GoInto means
// "always descend").
type SearchHandler struct {
	Match  func(ast.Node) bool
	GoInto func(ast.Node) bool
}

// Search walks node (inclusive) applying h, returning every node for
// which h.Match reports true, in document order.
func Search(node ast.Node, h SearchHandler) []ast.Node {
	var out []ast.Node
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if n == nil || isNilNode(n) {
			return
		}
		if h.Match != nil && h.Match(n) {
			out = append(out, n)
		}
		if h.GoInto != nil && !h.GoInto(n) {
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(node)
	return out
}

// FindFirst returns the first node matching h, or nil.
func FindFirst(node ast.Node, h SearchHandler) ast.Node {
	results := Search(node, h)
	if len(results) == 0 {
		return nil
	}
	return results[0]
}
