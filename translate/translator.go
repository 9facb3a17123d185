// Package translate renders a checked ADQL AST as SQL text for one of a
// fixed set of target dialect profiles (component G).
package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/metadata"
	"github.com/skyquery-adql/adql/region"
)

// Translator renders one ast.QueryExpr tree as SQL text for Dialect,
// post-order: each clause is built from its already-translated children
// and joined by newlines at clause boundaries, per spec.md §4.4.
type Translator struct {
	Dialect Dialect

	aliasSeq   int
	orphans    []map[string]string        // column name -> left-qualifier, one frame per *ast.Query
	tableAlias []map[*metadata.Table]string // resolved table -> FROM-clause alias, one frame per *ast.Query
}

// New builds a Translator targeting d.
func New(d Dialect) *Translator { return &Translator{Dialect: d} }

// Translate renders a complete, already-checked query expression.
func (t *Translator) Translate(q ast.QueryExpr) (string, error) {
	return t.translateQueryExpr(q)
}

func (t *Translator) nextAlias() int {
	t.aliasSeq++
	return t.aliasSeq
}

func (t *Translator) pushFrame() {
	t.orphans = append(t.orphans, map[string]string{})
	t.tableAlias = append(t.tableAlias, map[*metadata.Table]string{})
}

func (t *Translator) popFrame() {
	t.orphans = t.orphans[:len(t.orphans)-1]
	t.tableAlias = t.tableAlias[:len(t.tableAlias)-1]
}

func (t *Translator) currentOrphanQualifier(name string) (string, bool) {
	if len(t.orphans) == 0 {
		return "", false
	}
	q, ok := t.orphans[len(t.orphans)-1][strings.ToLower(name)]
	return q, ok
}

func (t *Translator) setOrphanQualifier(name, qualifier string) {
	t.orphans[len(t.orphans)-1][strings.ToLower(name)] = qualifier
}

func (t *Translator) setTableAlias(tbl *metadata.Table, alias string) {
	m := t.tableAlias[len(t.tableAlias)-1]
	if _, exists := m[tbl]; !exists {
		m[tbl] = alias
	}
}

func (t *Translator) translateQueryExpr(q ast.QueryExpr) (string, error) {
	switch n := q.(type) {
	case *ast.Query:
		return t.translateQuery(n)
	case *ast.SetOperation:
		return t.translateSetOperation(n)
	default:
		return "", t.fail("unsupported query expression type")
	}
}

func (t *Translator) translateSetOperation(s *ast.SetOperation) (string, error) {
	left, err := t.translateBranch(s.Left)
	if err != nil {
		return "", err
	}
	right, err := t.translateBranch(s.Right)
	if err != nil {
		return "", err
	}
	quant := ""
	if s.All {
		quant = " ALL"
	}
	return fmt.Sprintf("%s\n%s%s\n%s", left, s.Kind, quant, right), nil
}

// translateBranch renders one side of a set operation, wrapping it as
// "SELECT * FROM (<branch>) AS tN_k" when the branch itself uses ORDER
// BY or OFFSET (which are only legal on the outermost query), per
// spec.md §4.4's set-operation rewrite.
func (t *Translator) translateBranch(q ast.QueryExpr) (string, error) {
	text, err := t.translateQueryExpr(q)
	if err != nil {
		return "", err
	}
	if needsSetOpWrap(q) {
		alias := fmt.Sprintf("t%d_k", t.nextAlias())
		return fmt.Sprintf("SELECT * FROM (%s) AS %s", text, alias), nil
	}
	return text, nil
}

func needsSetOpWrap(q ast.QueryExpr) bool {
	query, ok := q.(*ast.Query)
	if !ok {
		return false
	}
	return len(query.OrderBy) > 0 || query.Offset != nil
}

func (t *Translator) translateQuery(q *ast.Query) (string, error) {
	t.pushFrame()
	defer t.popFrame()

	var clauses []string

	if len(q.With) > 0 {
		with, err := t.translateWith(q.With)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, with)
	}

	var fromText string
	if q.From != nil {
		var err error
		fromText, err = t.translateFrom(q.From)
		if err != nil {
			return "", err
		}
	}

	selectList, err := t.translateSelectList(q.Select)
	if err != nil {
		return "", err
	}

	selectClause := "SELECT"
	if q.Top != nil && q.Offset == nil && t.Dialect.Pagination() == PaginationTopOffsetFetch {
		selectClause += fmt.Sprintf(" TOP %d", *q.Top)
	}
	selectClause += " " + selectList
	clauses = append(clauses, selectClause)

	if fromText != "" {
		clauses = append(clauses, "FROM "+fromText)
	}

	if q.Where != nil {
		where, err := t.translateConstraint(q.Where)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, "WHERE "+where)
	}

	if len(q.GroupBy) > 0 {
		gb, err := t.translateOperandList(q.GroupBy)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, "GROUP BY "+gb)
	}

	if q.Having != nil {
		having, err := t.translateConstraint(q.Having)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, "HAVING "+having)
	}

	orderBy := q.OrderBy
	injectOrderBy := t.Dialect.Pagination() == PaginationTopOffsetFetch &&
		q.Offset != nil && len(orderBy) == 0 && !(*q.Offset == 0 && q.Top == nil)
	if len(orderBy) > 0 {
		ob, err := t.translateOrderBy(orderBy)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, "ORDER BY "+ob)
	} else if injectOrderBy {
		clauses = append(clauses, "ORDER BY 1 ASC")
	}

	if suffix := t.paginationClause(q.Top, q.Offset); suffix != "" {
		clauses = append(clauses, suffix)
	}

	return strings.Join(clauses, "\n"), nil
}

// paginationClause renders the TOP/OFFSET combination for dialects whose
// pagination is not expressed inline on the SELECT keyword.
func (t *Translator) paginationClause(top, offset *int) string {
	switch t.Dialect.Pagination() {
	case PaginationTopOffsetFetch:
		if offset == nil {
			return "" // TOP n alone is already inline on SELECT
		}
		if *offset == 0 && top == nil {
			return ""
		}
		if top != nil {
			return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", *offset, *top)
		}
		return fmt.Sprintf("OFFSET %d ROWS", *offset)
	default: // PaginationLimitOffset
		switch {
		case top != nil && offset != nil:
			return fmt.Sprintf("LIMIT %d OFFSET %d", *top, *offset)
		case top != nil:
			return fmt.Sprintf("LIMIT %d", *top)
		case offset != nil:
			if t.Dialect.Name() == "MySQL" {
				return fmt.Sprintf("LIMIT 18446744073709551615 OFFSET %d", *offset)
			}
			return fmt.Sprintf("OFFSET %d", *offset)
		default:
			return ""
		}
	}
}

func (t *Translator) translateWith(items []*ast.WithItem) (string, error) {
	parts := make([]string, len(items))
	for i, w := range items {
		inner, err := t.translateQueryExpr(w.Query)
		if err != nil {
			return "", err
		}
		label := t.quoteIdent(w.Label.ADQLName, w.Label.ADQLCaseSensitive)
		parts[i] = fmt.Sprintf("%s AS (%s)", label, inner)
	}
	return "WITH " + strings.Join(parts, ",\n"), nil
}

func (t *Translator) translateSelectList(items []ast.SelectItem) (string, error) {
	var parts []string
	for _, item := range items {
		text, err := t.translateSelectItem(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", "), nil
}

func (t *Translator) translateSelectItem(item ast.SelectItem) (string, error) {
	if item.Star {
		return "*", nil
	}
	if item.QualifiedStar != "" {
		return t.quoteIdent(item.QualifiedStar, false) + ".*", nil
	}
	expr, err := t.translateOperand(item.Expr)
	if err != nil {
		return "", err
	}
	alias := item.EffectiveAlias()
	if alias == "" {
		return expr, nil
	}
	caseSensitive := item.Alias != ""
	if col, ok := item.Expr.(*ast.ColumnReference); ok && item.Alias == "" {
		caseSensitive = col.NameCaseSensitive()
		alias = strings.ToLower(alias)
		if caseSensitive {
			alias = col.Name()
		}
	}
	return expr + " AS " + t.quoteIdent(alias, caseSensitive), nil
}

func (t *Translator) translateOperandList(ops []ast.Operand) (string, error) {
	parts := make([]string, len(ops))
	for i, o := range ops {
		text, err := t.translateOperand(o)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return strings.Join(parts, ", "), nil
}

func (t *Translator) translateOrderBy(items []*ast.Order) (string, error) {
	parts := make([]string, len(items))
	for i, o := range items {
		var text string
		if o.Position > 0 {
			text = strconv.Itoa(o.Position)
		} else {
			var err error
			text, err = t.translateOperand(o.Expr)
			if err != nil {
				return "", err
			}
		}
		if o.Desc {
			text += " DESC"
		} else {
			text += " ASC"
		}
		parts[i] = text
	}
	return strings.Join(parts, ", "), nil
}

// Identifier quoting.

func (t *Translator) quoteDBIdent(name string) string {
	q := string(t.Dialect.QuoteRune())
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// quoteIdent renders name bare unless it must be quoted: forceQuote is
// set (case-sensitive ADQL name), the name collides with a reserved
// word, or it isn't a plain [A-Za-z_][A-Za-z0-9_]* identifier.
func (t *Translator) quoteIdent(name string, forceQuote bool) string {
	if forceQuote || t.Dialect.IsReserved(name) || !isSimpleIdent(name) {
		return t.quoteDBIdent(name)
	}
	return name
}

func isSimpleIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// regionLiteral re-parses a REGION('...') string argument and
// re-serialises the shape in the target dialect's own geometry
// rendering, per spec.md §4.4's "regions are re-parsed and re-serialised".
func (t *Translator) regionLiteral(text string) (string, error) {
	r, err := region.Parse(text)
	if err != nil {
		return "", t.fail("invalid region literal %q: %v", text, err)
	}
	return t.renderRegion(r)
}

func (t *Translator) renderRegion(r *region.Region) (string, error) {
	switch r.Type {
	case region.Position:
		p := r.Coordinates[0]
		return t.Dialect.RenderGeometry(ast.GeomPoint, "", []string{formatCoord(p.X), formatCoord(p.Y)})
	case region.Circle:
		p := r.Coordinates[0]
		return t.Dialect.RenderGeometry(ast.GeomCircle, "", []string{formatCoord(p.X), formatCoord(p.Y), formatCoord(*r.Radius)})
	case region.Box:
		p := r.Coordinates[0]
		return "", t.fail("BOX regions have no dialect rendering (point %g,%g width %g height %g)", p.X, p.Y, *r.Width, *r.Height)
	case region.Polygon:
		args := make([]string, 0, len(r.Coordinates)*2)
		for _, p := range r.Coordinates {
			args = append(args, formatCoord(p.X), formatCoord(p.Y))
		}
		return t.Dialect.RenderGeometry(ast.GeomPolygon, "", args)
	default:
		return "", t.fail("%s regions have no dialect rendering", r.Type)
	}
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
