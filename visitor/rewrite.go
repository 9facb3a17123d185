package visitor

import "github.com/skyquery-adql/adql/ast"

// ApplyFunc is called for each node during Rewrite; it returns the
// replacement node (or the node itself, unchanged) to keep in the tree.
type ApplyFunc func(ast.Node) ast.Node

// Rewrite traverses node post-order (children first, then the node
// itself) and applies f, mutating parents via ReplaceChild as children
// are replaced. This models the "mutation on the parent" API spec.md §9
// calls for, rather than a shared iterator that mutates its own source.
func Rewrite(node ast.Node, f ApplyFunc) ast.Node {
	if node == nil || isNilNode(node) {
		return node
	}
	children := node.Children()
	for i, child := range children {
		replacement := Rewrite(child, f)
		if replacement != child {
			ReplaceChild(node, i, replacement)
		}
	}
	return f(node)
}

// ReplaceChild replaces the child at position index (in the order
// node.Children() enumerates them) with replacement, mutating node in
// place. It panics if index is out of range or replacement's concrete
// type cannot occupy that slot — both indicate a caller bug, not a
// recoverable runtime condition.
func ReplaceChild(node ast.Node, index int, replacement ast.Node) {
	switch n := node.(type) {
	case *ast.Query:
		replaceQueryChild(n, index, replacement)
	case *ast.SetOperation:
		if index == 0 {
			n.Left = replacement.(ast.QueryExpr)
		} else {
			n.Right = replacement.(ast.QueryExpr)
		}
	case *ast.WithItem:
		n.Query = replacement.(ast.QueryExpr)
	case *ast.Join:
		replaceJoinChild(n, index, replacement)
	case *ast.TableRef:
		n.Subquery = replacement.(ast.QueryExpr)
	case *ast.Order:
		n.Expr = replacement.(ast.Operand)
	case *ast.Operation:
		if index == 0 {
			n.Left = replacement.(ast.Operand)
		} else {
			n.Right = replacement.(ast.Operand)
		}
	case *ast.Negative:
		n.Operand = replacement.(ast.Operand)
	case *ast.Wrapped:
		n.Operand = replacement.(ast.Operand)
	case *ast.SQLFunction:
		n.Arg = replacement.(ast.Operand)
	case *ast.MathFunction:
		n.Args[index] = replacement.(ast.Operand)
	case *ast.LowerFunction:
		n.Arg = replacement.(ast.Operand)
	case *ast.InUnitFunction:
		n.Arg = replacement.(ast.Operand)
	case *ast.UserDefinedFunction:
		n.Args[index] = replacement.(ast.Operand)
	case *ast.GeometryFunction:
		replaceGeometryChild(n, index, replacement)
	case *ast.GeometryPredicate:
		n.Func = replacement.(*ast.GeometryFunction)
	case *ast.Comparison:
		if index == 0 {
			n.Left = replacement.(ast.Operand)
		} else {
			n.Right = replacement.(ast.Operand)
		}
	case *ast.Between:
		switch index {
		case 0:
			n.Expr = replacement.(ast.Operand)
		case 1:
			n.Low = replacement.(ast.Operand)
		default:
			n.High = replacement.(ast.Operand)
		}
	case *ast.In:
		replaceInChild(n, index, replacement)
	case *ast.Like:
		if index == 0 {
			n.Expr = replacement.(ast.Operand)
		} else {
			n.Pattern = replacement.(ast.Operand)
		}
	case *ast.IsNull:
		n.Expr = replacement.(ast.Operand)
	case *ast.Exists:
		n.Subquery = replacement.(ast.QueryExpr)
	case *ast.Not:
		n.Constraint = replacement.(ast.Constraint)
	case *ast.Group:
		n.Constraint = replacement.(ast.Constraint)
	case *ast.BooleanChain:
		if index == 0 {
			n.Left = replacement.(ast.Constraint)
		} else {
			n.Right = replacement.(ast.Constraint)
		}
	default:
		panic("visitor: ReplaceChild: unsupported node type")
	}
}

func replaceQueryChild(n *ast.Query, index int, replacement ast.Node) {
	i := index
	if i < len(n.With) {
		n.With[i] = replacement.(*ast.WithItem)
		return
	}
	i -= len(n.With)
	if i < len(n.Select) {
		n.Select[i] = replacement.(ast.SelectItem)
		return
	}
	i -= len(n.Select)
	if n.From != nil {
		if i == 0 {
			n.From = replacement.(ast.FromContent)
			return
		}
		i--
	}
	if n.Where != nil {
		if i == 0 {
			n.Where = replacement.(ast.Constraint)
			return
		}
		i--
	}
	if i < len(n.GroupBy) {
		n.GroupBy[i] = replacement.(ast.Operand)
		return
	}
	i -= len(n.GroupBy)
	if n.Having != nil {
		if i == 0 {
			n.Having = replacement.(ast.Constraint)
			return
		}
		i--
	}
	n.OrderBy[i] = replacement.(*ast.Order)
}

func replaceJoinChild(n *ast.Join, index int, replacement ast.Node) {
	switch index {
	case 0:
		n.Left = replacement.(ast.FromContent)
	case 1:
		n.Right = replacement.(ast.FromContent)
	default:
		n.On = replacement.(ast.Constraint)
	}
}

func replaceGeometryChild(n *ast.GeometryFunction, index int, replacement ast.Node) {
	i := index
	if n.CoordSys != nil {
		if i == 0 {
			n.CoordSys = replacement.(ast.Operand)
			return
		}
		i--
	}
	n.Args[i] = replacement.(ast.Operand)
}

func replaceInChild(n *ast.In, index int, replacement ast.Node) {
	i := index
	if i == 0 {
		n.Expr = replacement.(ast.Operand)
		return
	}
	i--
	if i < len(n.Values) {
		n.Values[i] = replacement.(ast.Operand)
		return
	}
	n.Subquery = replacement.(ast.QueryExpr)
}

// RewriteOperand is a convenience wrapper for rewriting only operands.
func RewriteOperand(expr ast.Operand, f func(ast.Operand) ast.Operand) ast.Operand {
	result := Rewrite(expr, func(n ast.Node) ast.Node {
		if o, ok := n.(ast.Operand); ok {
			return f(o)
		}
		return n
	})
	if result == nil {
		return nil
	}
	return result.(ast.Operand)
}
