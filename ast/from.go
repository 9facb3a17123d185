package ast

import (
	"github.com/skyquery-adql/adql/metadata"
	"github.com/skyquery-adql/adql/token"
)

// TableRef is a FROM-clause table reference: a declared database table,
// a parenthesised subquery (auto-aliased if no alias given), or a CTE
// reference, each with an optional alias.
type TableRef struct {
	StartPos token.Pos
	EndPos   token.Pos

	Schema string // qualifier, or "" if unqualified
	Name   string // table or CTE name; "" when Subquery != nil
	Alias  string

	Subquery QueryExpr // set for a FROM (SELECT ...) AS alias item

	// Resolved is filled in by the checker.
	Resolved *metadata.Table
}

func (*TableRef) fromContentNode()   {}
func (t *TableRef) Pos() token.Pos   { return t.StartPos }
func (t *TableRef) End() token.Pos   { return t.EndPos }
func (t *TableRef) Children() []Node {
	if t.Subquery != nil {
		return []Node{t.Subquery}
	}
	return nil
}

// EffectiveName is the name by which this table is known in this FROM
// clause: its alias if given, else its declared name.
func (t *TableRef) EffectiveName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// JoinKind is the kind of table join.
type JoinKind int

const (
	JoinCross JoinKind = iota
	JoinInner
	JoinOuterLeft
	JoinOuterRight
	JoinOuterFull
)

func (k JoinKind) String() string {
	switch k {
	case JoinCross:
		return "CROSS JOIN"
	case JoinInner:
		return "JOIN"
	case JoinOuterLeft:
		return "LEFT OUTER JOIN"
	case JoinOuterRight:
		return "RIGHT OUTER JOIN"
	default:
		return "FULL OUTER JOIN"
	}
}

// Join is a FROM-clause join of two table expressions. Condition is
// exactly one of: On set, Using set, or neither (natural/cross join).
type Join struct {
	StartPos token.Pos
	EndPos   token.Pos

	Left  FromContent
	Right FromContent
	Kind  JoinKind

	Natural bool
	On      Constraint // ON <condition>
	Using   []string   // USING (col, ...)

	// ExportedColumns is filled in by the checker: the effective column
	// list this join exposes to its enclosing query, per §4.3.6. Columns
	// shared via NATURAL/USING appear once and are orphaned (Table==nil).
	ExportedColumns []*metadata.Column
}

func (*Join) fromContentNode()   {}
func (j *Join) Pos() token.Pos   { return j.StartPos }
func (j *Join) End() token.Pos   { return j.EndPos }
func (j *Join) Children() []Node {
	out := []Node{j.Left, j.Right}
	if j.On != nil {
		out = append(out, j.On)
	}
	return out
}
