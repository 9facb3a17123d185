package translate

import (
	"fmt"

	"github.com/skyquery-adql/adql/ast"
)

func (t *Translator) translateConstraint(c ast.Constraint) (string, error) {
	switch n := c.(type) {
	case *ast.Comparison:
		left, err := t.translateOperand(n.Left)
		if err != nil {
			return "", err
		}
		right, err := t.translateOperand(n.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", left, n.Op, right), nil
	case *ast.Between:
		expr, err := t.translateOperand(n.Expr)
		if err != nil {
			return "", err
		}
		low, err := t.translateOperand(n.Low)
		if err != nil {
			return "", err
		}
		high, err := t.translateOperand(n.High)
		if err != nil {
			return "", err
		}
		not := ""
		if n.Not {
			not = "NOT "
		}
		return fmt.Sprintf("%s %sBETWEEN %s AND %s", expr, not, low, high), nil
	case *ast.In:
		return t.translateIn(n)
	case *ast.Like:
		expr, err := t.translateOperand(n.Expr)
		if err != nil {
			return "", err
		}
		pattern, err := t.translateOperand(n.Pattern)
		if err != nil {
			return "", err
		}
		kw := "LIKE"
		if n.ILike {
			kw = "ILIKE"
		}
		not := ""
		if n.Not {
			not = "NOT "
		}
		return fmt.Sprintf("%s %s%s %s", expr, not, kw, pattern), nil
	case *ast.IsNull:
		expr, err := t.translateOperand(n.Expr)
		if err != nil {
			return "", err
		}
		if n.Not {
			return expr + " IS NOT NULL", nil
		}
		return expr + " IS NULL", nil
	case *ast.Exists:
		sub, err := t.translateQueryExpr(n.Subquery)
		if err != nil {
			return "", err
		}
		if n.Not {
			return fmt.Sprintf("NOT EXISTS (%s)", sub), nil
		}
		return fmt.Sprintf("EXISTS (%s)", sub), nil
	case *ast.Not:
		inner, err := t.translateConstraint(n.Constraint)
		if err != nil {
			return "", err
		}
		return "NOT " + inner, nil
	case *ast.Group:
		inner, err := t.translateConstraint(n.Constraint)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *ast.BooleanChain:
		left, err := t.translateConstraint(n.Left)
		if err != nil {
			return "", err
		}
		right, err := t.translateConstraint(n.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", left, n.Op, right), nil
	case *ast.GeometryPredicate:
		return t.translateOperand(n.Func)
	default:
		return "", t.fail("unsupported constraint node type")
	}
}

func (t *Translator) translateIn(n *ast.In) (string, error) {
	expr, err := t.translateOperand(n.Expr)
	if err != nil {
		return "", err
	}
	not := ""
	if n.Not {
		not = "NOT "
	}
	if n.Subquery != nil {
		sub, err := t.translateQueryExpr(n.Subquery)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %sIN (%s)", expr, not, sub), nil
	}
	values, err := t.translateOperandList(n.Values)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %sIN (%s)", expr, not, values), nil
}
