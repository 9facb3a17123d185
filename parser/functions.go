package parser

import (
	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/token"
)

// mathFuncNames is the set of ADQL 2.0's built-in numeric math functions,
// which the grammar treats as ordinary (non-reserved) identifiers rather
// than keywords; any other name followed by '(' is a user-defined function.
var mathFuncNames = map[string]bool{
	"abs": true, "ceiling": true, "degrees": true, "exp": true, "floor": true,
	"log": true, "log10": true, "mod": true, "pi": true, "power": true,
	"radians": true, "rand": true, "round": true, "sign": true, "sqrt": true,
	"truncate": true, "acos": true, "asin": true, "atan": true, "atan2": true,
	"cos": true, "sin": true, "tan": true,
}

func (p *Parser) parseOperandList() []ast.Operand {
	var args []ast.Operand
	if p.curIs(token.RPAREN) {
		return args
	}
	for {
		args = append(args, p.parseOperand())
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return args
}

func (p *Parser) parseAggregateFunc() ast.Operand {
	start := p.pos()
	fn := aggFuncFor(p.cur.Type)
	p.advance()
	p.expect(token.LPAREN)
	f := &ast.SQLFunction{StartPos: start, Func: fn}
	if p.curIs(token.DISTINCT) {
		f.Distinct = true
		p.advance()
	}
	if fn == ast.AggCount && p.curIs(token.ASTERISK) {
		f.Star = true
		p.advance()
	} else {
		f.Arg = p.parseOperand()
	}
	p.expect(token.RPAREN)
	f.EndPos = p.cur.Pos
	return f
}

func aggFuncFor(t token.Token) ast.AggregateFunc {
	switch t {
	case token.COUNT:
		return ast.AggCount
	case token.SUM:
		return ast.AggSum
	case token.AVG:
		return ast.AggAvg
	case token.MIN:
		return ast.AggMin
	default:
		return ast.AggMax
	}
}

func (p *Parser) parseLowerFunc() ast.Operand {
	start := p.pos()
	p.advance()
	p.expect(token.LPAREN)
	arg := p.parseOperand()
	p.expect(token.RPAREN)
	return &ast.LowerFunction{StartPos: start, EndPos: p.cur.Pos, Arg: arg}
}

func (p *Parser) parseInUnitFunc() ast.Operand {
	start := p.pos()
	p.advance()
	p.expect(token.LPAREN)
	arg := p.parseOperand()
	p.expect(token.COMMA)
	unit := ""
	if p.curIs(token.STRING) {
		unit = p.cur.Value
		p.advance()
	} else {
		p.errorf("expected a string literal unit, got %s", p.cur.Type)
	}
	p.expect(token.RPAREN)
	return &ast.InUnitFunction{StartPos: start, EndPos: p.cur.Pos, Arg: arg, Unit: unit}
}

func (p *Parser) parseGeometryFunc() ast.Operand {
	start := p.pos()
	kind := geometryKindFor(p.cur.Type)
	p.advance()
	p.expect(token.LPAREN)
	args := p.parseOperandList()
	p.expect(token.RPAREN)
	g := &ast.GeometryFunction{StartPos: start, Kind: kind}
	switch kind {
	case ast.GeomPoint, ast.GeomCircle, ast.GeomBox, ast.GeomPolygon:
		if len(args) > 0 {
			if _, ok := args[0].(*ast.StringConstant); ok {
				g.CoordSys = args[0]
				args = args[1:]
			}
		}
	}
	g.Args = args
	g.EndPos = p.cur.Pos
	return g
}

func geometryKindFor(t token.Token) ast.GeometryKind {
	switch t {
	case token.POINT:
		return ast.GeomPoint
	case token.CIRCLE:
		return ast.GeomCircle
	case token.BOX:
		return ast.GeomBox
	case token.POLYGON:
		return ast.GeomPolygon
	case token.REGION:
		return ast.GeomRegion
	case token.CENTROID:
		return ast.GeomCentroid
	case token.AREA:
		return ast.GeomArea
	case token.DISTANCE:
		return ast.GeomDistance
	case token.CONTAINS:
		return ast.GeomContains
	case token.INTERSECTS:
		return ast.GeomIntersects
	case token.COORD1:
		return ast.GeomCoord1
	case token.COORD2:
		return ast.GeomCoord2
	default:
		return ast.GeomCoordSys
	}
}

// parseNamedFunctionCall parses a call to an identifier already consumed
// (name), classifying it as a built-in math function or, failing that, a
// user-defined function resolved later by the checker.
func (p *Parser) parseNamedFunctionCall(start token.Pos, name string) ast.Operand {
	p.advance() // consume '('
	args := p.parseOperandList()
	p.expect(token.RPAREN)
	if mathFuncNames[lowerASCII(name)] {
		return &ast.MathFunction{StartPos: start, EndPos: p.cur.Pos, Name: ast.MathFuncName(lowerASCII(name)), Args: args}
	}
	return &ast.UserDefinedFunction{StartPos: start, EndPos: p.cur.Pos, Name: name, Args: args}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
