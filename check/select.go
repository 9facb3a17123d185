package check

import (
	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/metadata"
)

func (c *Checker) resolveSelectItem(item *ast.SelectItem, sc *scope, errs *Errors) {
	switch {
	case item.Star:
		item.Resolved = append([]*metadata.Column(nil), sc.columns...)
	case item.QualifiedStar != "":
		tbl, ok := sc.findTable(item.QualifiedStar, false)
		if !ok {
			errs.add(item.Pos(), "unknown table qualifier %s in %s.*", item.QualifiedStar, item.QualifiedStar)
			return
		}
		item.Resolved = append([]*metadata.Column(nil), tbl.Columns...)
	default:
		c.resolveOperand(item.Expr, sc, errs)
		item.Resolved = []*metadata.Column{c.syntheticColumn(item, sc)}
	}
}

// syntheticColumn builds the pseudo-column a non-star SELECT item
// exposes to an enclosing query level (e.g. for a subquery-as-table or
// a CTE): a plain column reference reuses the referenced column's own
// metadata, everything else becomes a type-inferred column named by the
// item's alias (unnamed when there is none).
func (c *Checker) syntheticColumn(item *ast.SelectItem, sc *scope) *metadata.Column {
	if ref, ok := item.Expr.(*ast.ColumnReference); ok && ref.Resolved != nil {
		col := *ref.Resolved
		if item.Alias != "" {
			col.Identifier = metadata.NewIdentifier(item.Alias, false)
		}
		return &col
	}
	dt := c.resolveOperand(item.Expr, sc, &Errors{})
	name := item.Alias
	return &metadata.Column{Identifier: metadata.NewIdentifier(name, false), Datatype: dt}
}
