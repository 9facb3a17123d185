package parser

import (
	"strconv"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/metadata"
	"github.com/skyquery-adql/adql/token"
)

// parseQueryExpr parses a query body together with any trailing
// UNION/INTERSECT/EXCEPT chain, left-associatively.
func (p *Parser) parseQueryExpr() ast.QueryExpr {
	left := p.parseQueryPrimary()
	for p.curIs(token.UNION) || p.curIs(token.INTERSECT) || p.curIs(token.EXCEPT) {
		start := p.pos()
		kind := ast.SetUnion
		switch p.cur.Type {
		case token.INTERSECT:
			kind = ast.SetIntersect
		case token.EXCEPT:
			kind = ast.SetExcept
		}
		p.advance()
		all := false
		if p.curIs(token.ALL) {
			all = true
			p.advance()
		} else if p.curIs(token.DISTINCT) {
			p.advance()
		}
		right := p.parseQueryPrimary()
		left = &ast.SetOperation{StartPos: start, EndPos: p.cur.Pos, Kind: kind, All: all, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseQueryPrimary() ast.QueryExpr {
	if p.curIs(token.WITH) {
		return p.parseWith()
	}
	if p.curIs(token.LPAREN) {
		p.advance()
		inner := p.parseQueryExpr()
		p.expect(token.RPAREN)
		return inner
	}
	return p.parseSelect()
}

func (p *Parser) parseWith() ast.QueryExpr {
	start := p.pos()
	p.advance() // consume WITH
	var items []*ast.WithItem
	for {
		itemStart := p.pos()
		label := p.parseIdentifierText()
		p.expect(token.AS)
		p.expect(token.LPAREN)
		q := p.parseQueryExpr()
		p.expect(token.RPAREN)
		items = append(items, &ast.WithItem{
			StartPos: itemStart,
			EndPos:   p.cur.Pos,
			Label:    metadata.NewIdentifier(label.text, label.delimited),
			Query:    q,
		})
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	body := p.parseQueryPrimary()
	if inner, ok := body.(*ast.Query); ok {
		inner.With = items
		inner.StartPos = start
		return inner
	}
	return body
}

// identText is a parsed identifier together with whether it was delimited.
type identText struct {
	text      string
	delimited bool
}

func (p *Parser) parseIdentifierText() identText {
	if !p.curIsIdent() {
		p.errorf("expected identifier, got %s", p.cur.Type)
		return identText{}
	}
	it := identText{text: p.cur.Value, delimited: p.cur.Delimited}
	p.advance()
	return it
}

func (p *Parser) parseSelect() *ast.Query {
	start := p.pos()
	if !p.expect(token.SELECT) {
		return &ast.Query{StartPos: start, EndPos: start, Version: p.version}
	}
	q := &ast.Query{StartPos: start, Version: p.version}

	if p.curIs(token.ALL) {
		p.advance()
	} else if p.curIs(token.DISTINCT) {
		p.advance()
	}
	if p.curIs(token.TOP) {
		p.advance()
		n := p.parseIntLiteral()
		q.Top = &n
	}

	q.Select = p.parseSelectList()
	if len(q.Select) == 1 && q.Select[0].Star {
		q.SelectAll = true
	}

	if p.curIs(token.FROM) {
		p.advance()
		q.From = p.parseFromContent()
	}
	if p.curIs(token.WHERE) {
		p.advance()
		q.Where = p.parseConstraint()
	}
	if p.curIs(token.GROUP) {
		p.advance()
		p.expect(token.BY)
		q.GroupBy = p.parseGroupByList()
	}
	if p.curIs(token.HAVING) {
		p.advance()
		q.Having = p.parseConstraint()
	}
	if p.curIs(token.ORDER) {
		p.advance()
		p.expect(token.BY)
		q.OrderBy = p.parseOrderByList()
	}
	if p.curIs(token.OFFSET) {
		p.advance()
		n := p.parseIntLiteral()
		q.Offset = &n
	}
	q.EndPos = p.cur.Pos
	return q
}

func (p *Parser) parseIntLiteral() int {
	if !p.curIs(token.INT) {
		p.errorf("expected an integer literal, got %s", p.cur.Type)
		return 0
	}
	n, err := strconv.Atoi(p.cur.Value)
	if err != nil {
		p.errorf("malformed integer literal %s", p.cur.Value)
	}
	p.advance()
	return n
}

func (p *Parser) parseSelectList() []ast.SelectItem {
	var items []ast.SelectItem
	for {
		items = append(items, p.parseSelectItem())
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return items
}

func (p *Parser) parseSelectItem() ast.SelectItem {
	start := p.pos()
	if p.curIs(token.ASTERISK) {
		p.advance()
		return ast.SelectItem{StartPos: start, EndPos: p.cur.Pos, Star: true}
	}
	if p.curIsIdent() && p.peekIs(token.DOT) {
		save := p.cur
		name := p.cur.Value
		p.advance() // ident
		p.advance() // dot
		if p.curIs(token.ASTERISK) {
			p.advance()
			return ast.SelectItem{StartPos: start, EndPos: p.cur.Pos, QualifiedStar: name}
		}
		// not actually "table.*": rewind conceptually by re-parsing as an operand
		// starting from the already-consumed ident/dot via a synthetic column path.
		return p.finishSelectItemFromQualified(start, save.Value)
	}
	expr := p.parseOperand()
	item := ast.SelectItem{StartPos: start, Expr: expr}
	if p.curIs(token.AS) {
		p.advance()
		item.Alias = p.parseIdentifierText().text
	} else if p.curIsIdent() {
		item.Alias = p.parseIdentifierText().text
	}
	item.EndPos = p.cur.Pos
	return item
}

// finishSelectItemFromQualified completes parsing a select item whose
// leading "ident." turned out to be a qualified column reference rather
// than a "table.*" wildcard; firstPart is the already-consumed identifier.
func (p *Parser) finishSelectItemFromQualified(start token.Pos, firstPart string) ast.SelectItem {
	parts := []string{firstPart}
	caseSensitive := []bool{false}
	for {
		part := p.parseIdentifierText()
		parts = append(parts, part.text)
		caseSensitive = append(caseSensitive, part.delimited)
		if p.curIs(token.DOT) {
			p.advance()
			continue
		}
		break
	}
	ref := &ast.ColumnReference{StartPos: start, EndPos: p.cur.Pos, Parts: parts, CaseSensitive: caseSensitive}
	expr := p.continueOperand(ref)
	item := ast.SelectItem{StartPos: start, Expr: expr}
	if p.curIs(token.AS) {
		p.advance()
		item.Alias = p.parseIdentifierText().text
	} else if p.curIsIdent() {
		item.Alias = p.parseIdentifierText().text
	}
	item.EndPos = p.cur.Pos
	return item
}

func (p *Parser) parseGroupByList() []ast.Operand {
	var out []ast.Operand
	for {
		out = append(out, p.parseOperand())
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return out
}

func (p *Parser) parseOrderByList() []*ast.Order {
	var out []*ast.Order
	for {
		start := p.pos()
		order := &ast.Order{StartPos: start}
		if p.curIs(token.INT) {
			order.Position = p.parseIntLiteral()
		} else {
			order.Expr = p.parseOperand()
		}
		if p.curIs(token.ASC) {
			p.advance()
		} else if p.curIs(token.DESC) {
			order.Desc = true
			p.advance()
		}
		order.EndPos = p.cur.Pos
		out = append(out, order)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return out
}

// parseFromContent parses one comma-separated (cross-joined) FROM item
// and any trailing explicit JOIN clauses attached to it, folding
// multiple comma items left-associatively as CROSS JOINs.
func (p *Parser) parseFromContent() ast.FromContent {
	left := p.parseJoinChain()
	for p.curIs(token.COMMA) {
		p.advance()
		right := p.parseJoinChain()
		left = &ast.Join{StartPos: left.Pos(), EndPos: p.cur.Pos, Left: left, Right: right, Kind: ast.JoinCross}
	}
	return left
}

func (p *Parser) parseJoinChain() ast.FromContent {
	left := p.parseTableRef()
	for {
		natural := false
		if p.curIs(token.NATURAL) {
			natural = true
			p.advance()
		}
		kind, ok := p.peekJoinKind()
		if !ok {
			if natural {
				p.errorf("expected JOIN after NATURAL")
			}
			break
		}
		p.consumeJoinKeyword()
		right := p.parseTableRef()
		j := &ast.Join{StartPos: left.Pos(), Left: left, Right: right, Kind: kind, Natural: natural}
		if natural {
			// no ON/USING permitted
		} else if p.curIs(token.ON) {
			p.advance()
			j.On = p.parseConstraint()
		} else if p.curIs(token.USING) {
			p.advance()
			p.expect(token.LPAREN)
			for {
				j.Using = append(j.Using, p.parseIdentifierText().text)
				if !p.curIs(token.COMMA) {
					break
				}
				p.advance()
			}
			p.expect(token.RPAREN)
		}
		j.EndPos = p.cur.Pos
		left = j
	}
	return left
}

func (p *Parser) peekJoinKind() (ast.JoinKind, bool) {
	switch p.cur.Type {
	case token.JOIN, token.INNER:
		return ast.JoinInner, true
	case token.CROSS:
		return ast.JoinCross, true
	case token.LEFT:
		return ast.JoinOuterLeft, true
	case token.RIGHT:
		return ast.JoinOuterRight, true
	case token.FULL:
		return ast.JoinOuterFull, true
	default:
		return 0, false
	}
}

func (p *Parser) consumeJoinKeyword() {
	switch p.cur.Type {
	case token.JOIN:
		p.advance()
	case token.INNER:
		p.advance()
		p.expect(token.JOIN)
	case token.CROSS:
		p.advance()
		p.expect(token.JOIN)
	case token.LEFT, token.RIGHT, token.FULL:
		p.advance()
		if p.curIs(token.OUTER) {
			p.advance()
		}
		p.expect(token.JOIN)
	}
}

func (p *Parser) parseTableRef() ast.FromContent {
	start := p.pos()
	if p.curIs(token.LPAREN) {
		p.advance()
		inner := p.parseQueryExpr()
		p.expect(token.RPAREN)
		ref := &ast.TableRef{StartPos: start, Subquery: inner}
		if p.curIs(token.AS) {
			p.advance()
			ref.Alias = p.parseIdentifierText().text
		} else if p.curIsIdent() {
			ref.Alias = p.parseIdentifierText().text
		}
		ref.EndPos = p.cur.Pos
		return ref
	}
	first := p.parseIdentifierText().text
	ref := &ast.TableRef{StartPos: start, Name: first}
	if p.curIs(token.DOT) {
		p.advance()
		ref.Schema = first
		ref.Name = p.parseIdentifierText().text
	}
	if p.curIs(token.AS) {
		p.advance()
		ref.Alias = p.parseIdentifierText().text
	} else if p.curIsIdent() {
		ref.Alias = p.parseIdentifierText().text
	}
	ref.EndPos = p.cur.Pos
	return ref
}
