package translate

import (
	"fmt"
	"strings"

	"github.com/skyquery-adql/adql/ast"
)

func (t *Translator) translateOperand(op ast.Operand) (string, error) {
	switch n := op.(type) {
	case *ast.ColumnReference:
		return t.translateColumnReference(n)
	case *ast.NumericConstant:
		return n.Text, nil
	case *ast.StringConstant:
		return "'" + strings.ReplaceAll(n.Value, "'", "''") + "'", nil
	case *ast.Negative:
		inner, err := t.translateOperand(n.Operand)
		if err != nil {
			return "", err
		}
		return "-" + inner, nil
	case *ast.Operation:
		return t.translateOperation(n)
	case *ast.Wrapped:
		inner, err := t.translateOperand(n.Operand)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *ast.SQLFunction:
		return t.translateSQLFunction(n)
	case *ast.MathFunction:
		return t.translateMathFunction(n)
	case *ast.LowerFunction:
		inner, err := t.translateOperand(n.Arg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("LOWER(%s)", inner), nil
	case *ast.InUnitFunction:
		return "", t.fail("IN_UNIT has no SQL rendering for this dialect")
	case *ast.UserDefinedFunction:
		args, err := t.translateOperandList(n.Args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", n.Name, args), nil
	case *ast.GeometryFunction:
		return t.translateGeometryFunction(n)
	default:
		return "", t.fail("unsupported operand node type")
	}
}

func (t *Translator) translateColumnReference(c *ast.ColumnReference) (string, error) {
	if len(c.Parts) > 1 {
		parts := make([]string, len(c.Parts))
		for i, p := range c.Parts {
			cs := false
			if i < len(c.CaseSensitive) {
				cs = c.CaseSensitive[i]
			}
			parts[i] = t.quoteIdent(p, cs)
		}
		return strings.Join(parts, "."), nil
	}
	name := c.Name()
	if c.Resolved != nil && c.Resolved.Table == nil {
		if qualifier, ok := t.currentOrphanQualifier(name); ok && qualifier != "" {
			return qualifier + "." + t.quoteIdent(name, c.NameCaseSensitive()), nil
		}
	}
	return t.quoteIdent(name, c.NameCaseSensitive()), nil
}

func (t *Translator) translateOperation(n *ast.Operation) (string, error) {
	left, err := t.translateOperand(n.Left)
	if err != nil {
		return "", err
	}
	right, err := t.translateOperand(n.Right)
	if err != nil {
		return "", err
	}
	op := n.Op.String()
	if n.Op == ast.OpConcat {
		op = t.Dialect.ConcatOperator()
	}
	return fmt.Sprintf("%s %s %s", left, op, right), nil
}

func (t *Translator) translateSQLFunction(f *ast.SQLFunction) (string, error) {
	name := f.Func.String()
	if f.Star {
		return name + "(*)", nil
	}
	arg, err := t.translateOperand(f.Arg)
	if err != nil {
		return "", err
	}
	if f.Distinct {
		return fmt.Sprintf("%s(DISTINCT %s)", name, arg), nil
	}
	return fmt.Sprintf("%s(%s)", name, arg), nil
}

func (t *Translator) translateMathFunction(m *ast.MathFunction) (string, error) {
	args, err := t.translateOperandList(m.Args)
	if err != nil {
		return "", err
	}
	if m.Name == "mod" && t.Dialect.ModuloStyle() == ModuloConvertSQLServer && len(m.Args) == 2 {
		a, err := t.translateOperand(m.Args[0])
		if err != nil {
			return "", err
		}
		b, err := t.translateOperand(m.Args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(convert(numeric, %s) %% convert(numeric, %s))", a, b), nil
	}
	return fmt.Sprintf("%s(%s)", t.Dialect.MathFunctionName(m.Name), args), nil
}

func (t *Translator) translateGeometryFunction(g *ast.GeometryFunction) (string, error) {
	if g.Kind == ast.GeomRegion && len(g.Args) == 1 {
		if lit, ok := g.Args[0].(*ast.StringConstant); ok {
			return t.regionLiteral(lit.Value)
		}
	}

	coordSys := ""
	if g.CoordSys != nil {
		if lit, ok := g.CoordSys.(*ast.StringConstant); ok {
			coordSys = lit.Value
		}
	}
	argList := make([]string, len(g.Args))
	for i, a := range g.Args {
		text, err := t.translateOperand(a)
		if err != nil {
			return "", err
		}
		argList[i] = text
	}

	return t.Dialect.RenderGeometry(g.Kind, coordSys, argList)
}
