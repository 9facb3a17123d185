package parser

import (
	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/token"
)

// parseConstraint parses a full boolean search condition: OR over AND
// over a possibly NOT-prefixed predicate.
func (p *Parser) parseConstraint() ast.Constraint {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Constraint {
	left := p.parseAnd()
	for p.curIs(token.OR) {
		start := left.Pos()
		p.advance()
		right := p.parseAnd()
		left = &ast.BooleanChain{StartPos: start, EndPos: p.cur.Pos, Op: ast.BoolOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Constraint {
	left := p.parseNot()
	for p.curIs(token.AND) {
		start := left.Pos()
		p.advance()
		right := p.parseNot()
		left = &ast.BooleanChain{StartPos: start, EndPos: p.cur.Pos, Op: ast.BoolAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNot() ast.Constraint {
	if p.curIs(token.NOT) {
		start := p.pos()
		p.advance()
		inner := p.parseNot()
		return &ast.Not{StartPos: start, EndPos: p.cur.Pos, Constraint: inner}
	}
	return p.parsePredicate()
}

func (p *Parser) parsePredicate() ast.Constraint {
	start := p.pos()
	if p.curIs(token.EXISTS) {
		p.advance()
		p.expect(token.LPAREN)
		sub := p.parseQueryExpr()
		p.expect(token.RPAREN)
		return &ast.Exists{StartPos: start, EndPos: p.cur.Pos, Subquery: sub}
	}
	if p.curIs(token.LPAREN) {
		m := p.mark()
		p.advance()
		inner := p.parseConstraint()
		if p.curIs(token.RPAREN) && len(p.errors) == m.errCount {
			p.advance()
			return &ast.Group{StartPos: start, EndPos: p.cur.Pos, Constraint: inner}
		}
		p.reset(m)
	}
	expr := p.parseOperand()
	return p.parsePredicateTail(start, expr)
}

// parsePredicateTail consumes whatever follows an already-parsed
// leading operand to complete a predicate: a comparison, [NOT]
// BETWEEN/IN/LIKE/ILIKE, or IS [NOT] NULL. A CONTAINS/INTERSECTS
// geometry call not followed by any of these is accepted directly as a
// boolean predicate (GeometryPredicate).
func (p *Parser) parsePredicateTail(start token.Pos, expr ast.Operand) ast.Constraint {
	not := false
	if p.curIs(token.NOT) {
		switch p.peek().Type {
		case token.BETWEEN, token.IN, token.LIKE, token.ILIKE:
			not = true
			p.advance()
		}
	}
	switch p.cur.Type {
	case token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE:
		op := compareOpFor(p.cur.Type)
		p.advance()
		right := p.parseOperand()
		return &ast.Comparison{StartPos: start, EndPos: p.cur.Pos, Op: op, Left: expr, Right: right}
	case token.BETWEEN:
		p.advance()
		low := p.parseOperand()
		p.expect(token.AND)
		high := p.parseOperand()
		return &ast.Between{StartPos: start, EndPos: p.cur.Pos, Not: not, Expr: expr, Low: low, High: high}
	case token.IN:
		p.advance()
		p.expect(token.LPAREN)
		in := &ast.In{StartPos: start, Not: not, Expr: expr}
		if p.curIs(token.SELECT) || p.curIs(token.WITH) {
			in.Subquery = p.parseQueryExpr()
		} else {
			in.Values = p.parseOperandList()
		}
		p.expect(token.RPAREN)
		in.EndPos = p.cur.Pos
		return in
	case token.LIKE, token.ILIKE:
		ilike := p.cur.Type == token.ILIKE
		p.advance()
		pattern := p.parseOperand()
		return &ast.Like{StartPos: start, EndPos: p.cur.Pos, Not: not, ILike: ilike, Expr: expr, Pattern: pattern}
	case token.IS:
		p.advance()
		isNot := false
		if p.curIs(token.NOT) {
			isNot = true
			p.advance()
		}
		p.expect(token.NULL)
		return &ast.IsNull{StartPos: start, EndPos: p.cur.Pos, Not: isNot, Expr: expr}
	default:
		if g, ok := expr.(*ast.GeometryFunction); ok && (g.Kind == ast.GeomContains || g.Kind == ast.GeomIntersects) {
			return &ast.GeometryPredicate{Func: g}
		}
		p.errorf("expected a comparison operator, BETWEEN, IN, LIKE or IS NULL, got %s", p.cur.Type)
		return &ast.Comparison{StartPos: start, EndPos: p.cur.Pos, Op: ast.CmpEQ, Left: expr, Right: expr}
	}
}

func compareOpFor(t token.Token) ast.CompareOp {
	switch t {
	case token.EQ:
		return ast.CmpEQ
	case token.NEQ:
		return ast.CmpNEQ
	case token.LT:
		return ast.CmpLT
	case token.GT:
		return ast.CmpGT
	case token.LTE:
		return ast.CmpLTE
	default:
		return ast.CmpGTE
	}
}
