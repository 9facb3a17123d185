package ast

import (
	"github.com/skyquery-adql/adql/metadata"
	"github.com/skyquery-adql/adql/token"
)

// ColumnReference is a (possibly qualified) column name appearing as an
// operand. Parts holds the dotted name as written, most-specific last
// (e.g. ["schema", "table", "column"]); CaseSensitive mirrors whether
// each part was delimited (double-quoted) in the source text.
type ColumnReference struct {
	StartPos      token.Pos
	EndPos        token.Pos
	Parts         []string
	CaseSensitive []bool

	// Resolved is filled in by the checker: the single column this name
	// matched, or nil before checking / after a failed resolution.
	Resolved *metadata.Column
}

func (*ColumnReference) operandNode()     {}
func (c *ColumnReference) Pos() token.Pos { return c.StartPos }
func (c *ColumnReference) End() token.Pos { return c.EndPos }
func (c *ColumnReference) Children() []Node { return nil }

// Name returns the unqualified column name (last part).
func (c *ColumnReference) Name() string {
	if len(c.Parts) == 0 {
		return ""
	}
	return c.Parts[len(c.Parts)-1]
}

// Table returns the table qualifier (second-to-last part), or "".
func (c *ColumnReference) Table() string {
	if len(c.Parts) < 2 {
		return ""
	}
	return c.Parts[len(c.Parts)-2]
}

// Schema returns the schema qualifier (third-to-last part), or "".
func (c *ColumnReference) Schema() string {
	if len(c.Parts) < 3 {
		return ""
	}
	return c.Parts[len(c.Parts)-3]
}

// NameCaseSensitive reports whether the unqualified name part was delimited.
func (c *ColumnReference) NameCaseSensitive() bool {
	if len(c.CaseSensitive) == 0 {
		return false
	}
	return c.CaseSensitive[len(c.CaseSensitive)-1]
}

// NumericConstant is a numeric literal operand.
type NumericConstant struct {
	StartPos token.Pos
	EndPos   token.Pos
	Text     string // as written, preserving exponent/decimal form
}

func (*NumericConstant) operandNode()       {}
func (n *NumericConstant) Pos() token.Pos   { return n.StartPos }
func (n *NumericConstant) End() token.Pos   { return n.EndPos }
func (n *NumericConstant) Children() []Node { return nil }

// StringConstant is a string literal operand.
type StringConstant struct {
	StartPos token.Pos
	EndPos   token.Pos
	Value    string // decoded (doubled quotes already collapsed)
}

func (*StringConstant) operandNode()       {}
func (s *StringConstant) Pos() token.Pos   { return s.StartPos }
func (s *StringConstant) End() token.Pos   { return s.EndPos }
func (s *StringConstant) Children() []Node { return nil }

// Negative is a unary-minus applied to a numeric operand. It is kept
// distinct from a general unary operator node because the checker
// special-cases it: `'x' || -1` is rejected but `'x' || (-1)` is
// accepted (see the open question recorded in DESIGN.md).
type Negative struct {
	StartPos token.Pos
	EndPos   token.Pos
	Operand  Operand
}

func (*Negative) operandNode()       {}
func (n *Negative) Pos() token.Pos   { return n.StartPos }
func (n *Negative) End() token.Pos   { return n.EndPos }
func (n *Negative) Children() []Node { return []Node{n.Operand} }

// ArithOp is a binary arithmetic or concatenation operator.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpConcat
)

func (o ArithOp) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "||"
	}
}

// Operation is a binary arithmetic or concatenation expression.
type Operation struct {
	StartPos token.Pos
	EndPos   token.Pos
	Op       ArithOp
	Left     Operand
	Right    Operand
}

func (*Operation) operandNode()       {}
func (o *Operation) Pos() token.Pos   { return o.StartPos }
func (o *Operation) End() token.Pos   { return o.EndPos }
func (o *Operation) Children() []Node { return []Node{o.Left, o.Right} }

// Wrapped is a parenthesised operand, kept as its own node (rather than
// collapsed away) because parens are semantically significant for the
// `'x' || (-1)` acceptance rule above.
type Wrapped struct {
	StartPos token.Pos
	EndPos   token.Pos
	Operand  Operand
}

func (*Wrapped) operandNode()       {}
func (w *Wrapped) Pos() token.Pos   { return w.StartPos }
func (w *Wrapped) End() token.Pos   { return w.EndPos }
func (w *Wrapped) Children() []Node { return []Node{w.Operand} }

// AggregateFunc is an ADQL SQL aggregate function name.
type AggregateFunc int

const (
	AggCount AggregateFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

func (f AggregateFunc) String() string {
	return [...]string{"COUNT", "SUM", "AVG", "MIN", "MAX"}[f]
}

// SQLFunction is a SQL aggregate function call: COUNT(*), COUNT(DISTINCT x), SUM(x), ...
type SQLFunction struct {
	StartPos token.Pos
	EndPos   token.Pos
	Func     AggregateFunc
	Distinct bool
	Star     bool    // COUNT(*)
	Arg      Operand // nil when Star is true
}

func (*SQLFunction) operandNode()     {}
func (f *SQLFunction) Pos() token.Pos { return f.StartPos }
func (f *SQLFunction) End() token.Pos { return f.EndPos }
func (f *SQLFunction) Children() []Node {
	if f.Arg != nil {
		return []Node{f.Arg}
	}
	return nil
}

// MathFuncName is a numeric ADQL math-function name (ABS, CEILING,
// DEGREES, EXP, FLOOR, LOG, LOG10, MOD, PI, POWER, RADIANS, RAND,
// ROUND, SIGN, SQRT, TRUNCATE, plus trig functions).
type MathFuncName string

// MathFunction is a call to one of the built-in numeric math functions.
type MathFunction struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     MathFuncName
	Args     []Operand
}

func (*MathFunction) operandNode()     {}
func (m *MathFunction) Pos() token.Pos { return m.StartPos }
func (m *MathFunction) End() token.Pos { return m.EndPos }
func (m *MathFunction) Children() []Node {
	out := make([]Node, len(m.Args))
	for i, a := range m.Args {
		out[i] = a
	}
	return out
}

// LowerFunction is ADQL 2.1's LOWER(string) (feature.Lower).
type LowerFunction struct {
	StartPos token.Pos
	EndPos   token.Pos
	Arg      Operand
}

func (*LowerFunction) operandNode()       {}
func (l *LowerFunction) Pos() token.Pos   { return l.StartPos }
func (l *LowerFunction) End() token.Pos   { return l.EndPos }
func (l *LowerFunction) Children() []Node { return []Node{l.Arg} }

// InUnitFunction is ADQL 2.1's IN_UNIT(value, 'unit') (feature.InUnit).
type InUnitFunction struct {
	StartPos token.Pos
	EndPos   token.Pos
	Arg      Operand
	Unit     string
}

func (*InUnitFunction) operandNode()       {}
func (i *InUnitFunction) Pos() token.Pos   { return i.StartPos }
func (i *InUnitFunction) End() token.Pos   { return i.EndPos }
func (i *InUnitFunction) Children() []Node { return []Node{i.Arg} }

// UserDefinedFunction is a call to a name not recognised as a built-in:
// resolved against the declared UDF signature list by the checker.
type UserDefinedFunction struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Args     []Operand

	// Resolved is filled in by the checker: the matched signature, or
	// nil if "allow any UDF" left this as a default-typed call.
	Resolved *metadata.FunctionDef

	// Constructed is filled in by the checker when the matched
	// signature declares a Constructor: the specialized operand it
	// built from this call's arguments, for callers that want to
	// substitute it in place of the generic call (e.g. via
	// visitor.Rewrite). nil otherwise.
	Constructed Operand
}

func (*UserDefinedFunction) operandNode()     {}
func (u *UserDefinedFunction) Pos() token.Pos { return u.StartPos }
func (u *UserDefinedFunction) End() token.Pos { return u.EndPos }
func (u *UserDefinedFunction) Children() []Node {
	out := make([]Node, len(u.Args))
	for i, a := range u.Args {
		out[i] = a
	}
	return out
}
