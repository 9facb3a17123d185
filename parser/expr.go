package parser

import (
	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/token"
)

// parseOperand parses a full arithmetic/concatenation expression via
// precedence climbing: additive (+, -, ||) over multiplicative (*, /)
// over unary minus over primary.
func (p *Parser) parseOperand() ast.Operand {
	return p.continueAdditive(p.parseMultiplicative())
}

func (p *Parser) continueAdditive(left ast.Operand) ast.Operand {
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) || p.curIs(token.CONCAT) {
		op := arithOpFor(p.cur.Type)
		start := left.Pos()
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.Operation{StartPos: start, EndPos: p.cur.Pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Operand {
	return p.continueMultiplicative(p.parseUnary())
}

func (p *Parser) continueMultiplicative(left ast.Operand) ast.Operand {
	for p.curIs(token.ASTERISK) || p.curIs(token.SLASH) {
		op := arithOpFor(p.cur.Type)
		start := left.Pos()
		p.advance()
		right := p.parseUnary()
		left = &ast.Operation{StartPos: start, EndPos: p.cur.Pos, Op: op, Left: left, Right: right}
	}
	return left
}

func arithOpFor(t token.Token) ast.ArithOp {
	switch t {
	case token.PLUS:
		return ast.OpAdd
	case token.MINUS:
		return ast.OpSub
	case token.ASTERISK:
		return ast.OpMul
	case token.SLASH:
		return ast.OpDiv
	default:
		return ast.OpConcat
	}
}

func (p *Parser) parseUnary() ast.Operand {
	if p.curIs(token.MINUS) {
		start := p.pos()
		p.advance()
		operand := p.parseUnary()
		return &ast.Negative{StartPos: start, EndPos: p.cur.Pos, Operand: operand}
	}
	return p.parsePrimary()
}

// continueOperand resumes precedence-climbing from an already-parsed
// primary-level operand (used by the select-list parser after it
// manually disambiguates a leading "ident." against the "ident.*"
// wildcard form).
func (p *Parser) continueOperand(left ast.Operand) ast.Operand {
	return p.continueAdditive(p.continueMultiplicative(left))
}

func (p *Parser) parsePrimary() ast.Operand {
	start := p.pos()
	switch p.cur.Type {
	case token.LPAREN:
		p.advance()
		inner := p.parseOperand()
		p.expect(token.RPAREN)
		return &ast.Wrapped{StartPos: start, EndPos: p.cur.Pos, Operand: inner}
	case token.INT, token.FLOAT:
		text := p.cur.Value
		p.advance()
		return &ast.NumericConstant{StartPos: start, EndPos: p.cur.Pos, Text: text}
	case token.STRING:
		text := p.cur.Value
		p.advance()
		return &ast.StringConstant{StartPos: start, EndPos: p.cur.Pos, Value: text}
	case token.COUNT, token.SUM, token.AVG, token.MIN, token.MAX:
		return p.parseAggregateFunc()
	case token.LOWER:
		return p.parseLowerFunc()
	case token.IN_UNIT:
		return p.parseInUnitFunc()
	case token.POINT, token.CIRCLE, token.BOX, token.POLYGON, token.REGION,
		token.CENTROID, token.AREA, token.DISTANCE, token.CONTAINS, token.INTERSECTS,
		token.COORD1, token.COORD2, token.COORDSYS:
		return p.parseGeometryFunc()
	case token.IDENT:
		return p.parseIdentOperand()
	default:
		p.errorf("unexpected token %s in expression", p.cur.Type)
		p.advance()
		return &ast.NumericConstant{StartPos: start, EndPos: start, Text: "0"}
	}
}

// parseIdentOperand parses a dotted column reference, or (if followed
// by '(') a built-in math function / user-defined function call.
func (p *Parser) parseIdentOperand() ast.Operand {
	start := p.pos()
	name := p.cur.Value
	delimited := p.cur.Delimited
	p.advance()
	if p.curIs(token.LPAREN) {
		return p.parseNamedFunctionCall(start, name)
	}
	parts := []string{name}
	caseSensitive := []bool{delimited}
	for p.curIs(token.DOT) {
		p.advance()
		part := p.parseIdentifierText()
		parts = append(parts, part.text)
		caseSensitive = append(caseSensitive, part.delimited)
	}
	return &ast.ColumnReference{StartPos: start, EndPos: p.cur.Pos, Parts: parts, CaseSensitive: caseSensitive}
}
