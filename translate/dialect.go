package translate

import (
	"strings"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/feature"
)

// Pagination is how a dialect expresses TOP-n / OFFSET-m row limiting.
type Pagination int

const (
	// PaginationTopOffsetFetch: "SELECT TOP n ..." without OFFSET, else
	// "... ORDER BY ... OFFSET m ROWS [FETCH NEXT n ROWS ONLY]" (SQL Server).
	PaginationTopOffsetFetch Pagination = iota
	// PaginationLimitOffset: "... LIMIT n OFFSET m" (PostgreSQL, MySQL, generic JDBC).
	PaginationLimitOffset
)

// ModuloStyle is how a dialect renders the `%`/MOD arithmetic operator
// the parser never actually produces directly (ADQL has no `%` token),
// but that the MOD() math function lowers to on some dialects.
type ModuloStyle int

const (
	ModuloOperator  ModuloStyle = iota // "a % b"
	ModuloConvertSQLServer             // "convert(numeric, a) % convert(numeric, b)"
)

// GeometryRenderer renders one geometry-function call for a dialect.
// coordSys is the already-decoded coordinate-system text ("" if absent
// or irrelevant to the dialect), args are the already-translated
// argument expressions. An empty string with a non-nil error signals
// the dialect cannot express this geometry construct at all.
type GeometryRenderer func(kind ast.GeometryKind, coordSys string, args []string) (string, error)

// Dialect is a target SQL dialect's rendering profile: reserved words,
// identifier quoting, which ADQL features it renders natively, its
// function lexicon, and its pagination style, per spec.md §4.4.
type Dialect interface {
	Name() string
	QuoteRune() byte
	IsReserved(word string) bool
	SupportsNatural() bool
	SupportsUsing() bool
	ConcatOperator() string
	ModuloStyle() ModuloStyle
	Pagination() Pagination
	MathFunctionName(name ast.MathFuncName) string
	RenderGeometry(kind ast.GeometryKind, coordSys string, args []string) (string, error)
	SupportedFeatures() *feature.Set
}

// Profile is a data-driven Dialect implementation: every dialect the
// translator ships is one Profile value configured differently, rather
// than five hand-written types repeating the same plumbing.
type Profile struct {
	name            string
	quote           byte
	reserved        map[string]bool
	supportsNatural bool
	supportsUsing   bool
	concatOperator  string
	moduloStyle     ModuloStyle
	pagination      Pagination
	mathNames       map[ast.MathFuncName]string
	geometry        GeometryRenderer
	features        *feature.Set
}

func (p *Profile) Name() string      { return p.name }
func (p *Profile) QuoteRune() byte   { return p.quote }
func (p *Profile) SupportsNatural() bool { return p.supportsNatural }
func (p *Profile) SupportsUsing() bool   { return p.supportsUsing }
func (p *Profile) ConcatOperator() string { return p.concatOperator }
func (p *Profile) ModuloStyle() ModuloStyle { return p.moduloStyle }
func (p *Profile) Pagination() Pagination   { return p.pagination }
func (p *Profile) SupportedFeatures() *feature.Set { return p.features }

func (p *Profile) IsReserved(word string) bool {
	return p.reserved[strings.ToLower(word)]
}

func (p *Profile) MathFunctionName(name ast.MathFuncName) string {
	if n, ok := p.mathNames[name]; ok {
		return n
	}
	return strings.ToUpper(string(name))
}

func (p *Profile) RenderGeometry(kind ast.GeometryKind, coordSys string, args []string) (string, error) {
	if p.geometry == nil {
		return "", &TranslationException{Dialect: p.name, Message: "dialect does not support geometry functions"}
	}
	return p.geometry(kind, coordSys, args)
}

// commonReserved is the ANSI-ish reserved-word core every profile
// starts from; each profile's constructor layers its own additions on top.
var commonReserved = []string{
	"select", "from", "where", "join", "on", "and", "or", "not", "as",
	"group", "by", "having", "order", "union", "all", "distinct", "null",
	"table", "into", "values", "insert", "update", "delete", "create",
	"drop", "in", "between", "like", "is", "exists",
}

func newReservedSet(extra ...string) map[string]bool {
	out := make(map[string]bool, len(commonReserved)+len(extra))
	for _, w := range commonReserved {
		out[w] = true
	}
	for _, w := range extra {
		out[strings.ToLower(w)] = true
	}
	return out
}
