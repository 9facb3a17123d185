package check

import "github.com/skyquery-adql/adql/ast"

// resolveConstraint resolves every operand/subquery reachable from a
// WHERE/HAVING/ON condition tree.
func (c *Checker) resolveConstraint(cons ast.Constraint, sc *scope, errs *Errors) {
	switch n := cons.(type) {
	case *ast.Comparison:
		c.resolveOperand(n.Left, sc, errs)
		c.resolveOperand(n.Right, sc, errs)
	case *ast.Between:
		c.resolveOperand(n.Expr, sc, errs)
		c.resolveOperand(n.Low, sc, errs)
		c.resolveOperand(n.High, sc, errs)
	case *ast.In:
		c.resolveOperand(n.Expr, sc, errs)
		for _, v := range n.Values {
			c.resolveOperand(v, sc, errs)
		}
		if n.Subquery != nil {
			c.checkQueryExpr(n.Subquery, sc, errs)
		}
	case *ast.Like:
		c.resolveOperand(n.Expr, sc, errs)
		c.resolveOperand(n.Pattern, sc, errs)
	case *ast.IsNull:
		c.resolveOperand(n.Expr, sc, errs)
	case *ast.Exists:
		c.checkQueryExpr(n.Subquery, sc, errs)
	case *ast.Not:
		c.resolveConstraint(n.Constraint, sc, errs)
	case *ast.Group:
		c.resolveConstraint(n.Constraint, sc, errs)
	case *ast.BooleanChain:
		c.resolveConstraint(n.Left, sc, errs)
		c.resolveConstraint(n.Right, sc, errs)
	case *ast.GeometryPredicate:
		c.resolveOperand(n.Func, sc, errs)
	default:
		errs.add(cons.Pos(), "unsupported constraint type")
	}
}
