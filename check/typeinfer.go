package check

import (
	"strings"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/metadata"
)

// resolveOperand resolves every ColumnReference/UserDefinedFunction
// reachable from op and returns its inferred Datatype. sc may be nil
// only for operands known not to contain column references (callers
// pass a real scope whenever one is in context).
func (c *Checker) resolveOperand(op ast.Operand, sc *scope, errs *Errors) metadata.Datatype {
	switch n := op.(type) {
	case *ast.ColumnReference:
		return c.resolveColumnRef(n, sc, errs)
	case *ast.NumericConstant:
		if strings.ContainsAny(n.Text, ".eE") {
			return metadata.New(metadata.DOUBLE)
		}
		return metadata.New(metadata.INTEGER)
	case *ast.StringConstant:
		return metadata.NewSized(metadata.VARCHAR, len(n.Value))
	case *ast.Negative:
		inner := c.resolveOperand(n.Operand, sc, errs)
		if !inner.IsNumeric() {
			errs.add(n.Pos(), "unary minus requires a numeric operand")
		}
		return inner
	case *ast.Operation:
		return c.resolveOperation(n, sc, errs)
	case *ast.Wrapped:
		return c.resolveOperand(n.Operand, sc, errs)
	case *ast.SQLFunction:
		return c.resolveSQLFunction(n, sc, errs)
	case *ast.MathFunction:
		for _, a := range n.Args {
			arg := c.resolveOperand(a, sc, errs)
			if !arg.IsNumeric() {
				errs.add(a.Pos(), "%s requires numeric arguments", n.Name)
			}
		}
		return metadata.New(metadata.DOUBLE)
	case *ast.LowerFunction:
		arg := c.resolveOperand(n.Arg, sc, errs)
		if !arg.IsString() {
			errs.add(n.Pos(), "LOWER requires a string argument")
		}
		return arg
	case *ast.InUnitFunction:
		arg := c.resolveOperand(n.Arg, sc, errs)
		if !arg.IsNumeric() {
			errs.add(n.Pos(), "IN_UNIT requires a numeric argument")
		}
		return metadata.New(metadata.DOUBLE)
	case *ast.UserDefinedFunction:
		c.resolveUDF(n, sc, errs)
		if n.Resolved != nil {
			return n.Resolved.Return
		}
		return metadata.Unknown
	case *ast.GeometryFunction:
		return c.resolveGeometryFunction(n, sc, errs)
	case *ast.GeometryPredicate:
		c.resolveGeometryFunction(n.Func, sc, errs)
		return metadata.New(metadata.BOOLEAN)
	default:
		errs.add(op.Pos(), "unsupported operand type")
		return metadata.Unknown
	}
}

func (c *Checker) resolveOperation(n *ast.Operation, sc *scope, errs *Errors) metadata.Datatype {
	if n.Op == ast.OpConcat {
		if _, ok := n.Left.(*ast.Negative); ok {
			errs.add(n.Left.Pos(), "a unary-minus operand of || must be parenthesized")
		}
		if _, ok := n.Right.(*ast.Negative); ok {
			errs.add(n.Right.Pos(), "a unary-minus operand of || must be parenthesized")
		}
		left := c.resolveOperand(n.Left, sc, errs)
		right := c.resolveOperand(n.Right, sc, errs)
		if !left.IsString() && !right.IsString() {
			errs.add(n.Pos(), "|| requires at least one string operand")
		}
		return metadata.NewSized(metadata.VARCHAR, left.Length+right.Length)
	}
	left := c.resolveOperand(n.Left, sc, errs)
	right := c.resolveOperand(n.Right, sc, errs)
	if !left.IsNumeric() || !right.IsNumeric() {
		errs.add(n.Pos(), "%s requires numeric operands", n.Op)
	}
	return metadata.New(metadata.DOUBLE)
}

func (c *Checker) resolveSQLFunction(n *ast.SQLFunction, sc *scope, errs *Errors) metadata.Datatype {
	if n.Star {
		return metadata.New(metadata.BIGINT)
	}
	arg := c.resolveOperand(n.Arg, sc, errs)
	switch n.Func {
	case ast.AggCount:
		return metadata.New(metadata.BIGINT)
	default:
		if !arg.IsNumeric() {
			errs.add(n.Pos(), "%s requires a numeric argument", n.Func)
		}
		return arg
	}
}

func (c *Checker) resolveGeometryFunction(g *ast.GeometryFunction, sc *scope, errs *Errors) metadata.Datatype {
	if g.CoordSys != nil {
		cs := c.resolveOperand(g.CoordSys, sc, errs)
		if !cs.IsString() {
			errs.add(g.CoordSys.Pos(), "geometry coordinate system argument must be a string literal")
		}
	}
	for _, a := range g.Args {
		c.resolveOperand(a, sc, errs)
	}
	switch g.Kind {
	case ast.GeomPoint:
		return metadata.New(metadata.POINT)
	case ast.GeomCircle, ast.GeomBox, ast.GeomPolygon, ast.GeomRegion:
		return metadata.New(metadata.REGIONTYPE)
	case ast.GeomCentroid:
		return metadata.New(metadata.POINT)
	case ast.GeomArea, ast.GeomDistance, ast.GeomCoord1, ast.GeomCoord2:
		return metadata.New(metadata.DOUBLE)
	case ast.GeomContains, ast.GeomIntersects:
		return metadata.New(metadata.BOOLEAN)
	case ast.GeomCoordSys:
		return metadata.New(metadata.VARCHAR)
	default:
		return metadata.Unknown
	}
}

// resolveColumnRef looks up ref against sc, applying ADQL's
// qualified-name rules: a 2/3-part name must match a bound table first,
// a 1-part name is searched across every bound table's columns with an
// ambiguity error if more than one matches.
func (c *Checker) resolveColumnRef(ref *ast.ColumnReference, sc *scope, errs *Errors) metadata.Datatype {
	if sc == nil {
		errs.add(ref.Pos(), "column reference %s used outside of any FROM scope", ref.Name())
		return metadata.Unknown
	}
	if len(ref.Parts) >= 2 {
		tbl, ok := sc.findTable(ref.Table(), tableCaseSensitive(ref))
		if !ok {
			errs.add(ref.Pos(), "unknown table qualifier %s", ref.Table())
			return metadata.Unknown
		}
		col := tbl.Column(ref.Name(), ref.NameCaseSensitive())
		if col == nil {
			errs.add(ref.Pos(), "table %s has no column named %s", ref.Table(), ref.Name())
			return metadata.Unknown
		}
		ref.Resolved = col
		return col.Datatype
	}
	col, ambiguous := sc.findColumn(ref.Name(), ref.NameCaseSensitive())
	if ambiguous {
		errs.add(ref.Pos(), "column reference %s is ambiguous", ref.Name())
		return metadata.Unknown
	}
	if col == nil {
		errs.add(ref.Pos(), "unknown column %s", ref.Name())
		return metadata.Unknown
	}
	ref.Resolved = col
	return col.Datatype
}

func tableCaseSensitive(ref *ast.ColumnReference) bool {
	if len(ref.CaseSensitive) < 2 {
		return false
	}
	return ref.CaseSensitive[len(ref.CaseSensitive)-2]
}
