package translate

import (
	"fmt"
	"strings"

	"github.com/skyquery-adql/adql/ast"
)

func (t *Translator) translateFrom(fc ast.FromContent) (string, error) {
	switch n := fc.(type) {
	case *ast.TableRef:
		return t.translateTableRef(n)
	case *ast.Join:
		return t.translateJoin(n)
	default:
		return "", t.fail("unsupported FROM-clause content type")
	}
}

func (t *Translator) translateTableRef(tr *ast.TableRef) (string, error) {
	if tr.Subquery != nil {
		inner, err := t.translateQueryExpr(tr.Subquery)
		if err != nil {
			return "", err
		}
		alias := tr.Alias
		if alias == "" {
			alias = fmt.Sprintf("t%d_sub", t.nextAlias())
		}
		if tr.Resolved != nil {
			t.setTableAlias(tr.Resolved, alias)
		}
		return fmt.Sprintf("(%s) AS %s", inner, t.quoteIdent(alias, tr.Alias != "")), nil
	}

	name := tr.Name
	if tr.Resolved != nil {
		name = tr.Resolved.DBName()
		t.setTableAlias(tr.Resolved, tr.EffectiveName())
	}

	text := t.quoteDBIdent(name)
	if tr.Schema != "" {
		text = t.quoteDBIdent(tr.Schema) + "." + text
	}
	if tr.Alias != "" {
		text += " AS " + t.quoteIdent(tr.Alias, false)
	}
	return text, nil
}

// translateJoin renders a FROM-clause join. When the dialect lacks
// NATURAL or USING (SQL Server), the join is rewritten to an explicit
// ON condition comparing the shared columns already computed by the
// checker (j.ExportedColumns' orphaned entries), and the left side's
// column is recorded as the qualifier later SELECT/WHERE references to
// that shared name should use.
func (t *Translator) translateJoin(j *ast.Join) (string, error) {
	left, err := t.translateFrom(j.Left)
	if err != nil {
		return "", err
	}
	right, err := t.translateFrom(j.Right)
	if err != nil {
		return "", err
	}

	needsRewrite := (j.Natural && !t.Dialect.SupportsNatural()) || (len(j.Using) > 0 && !t.Dialect.SupportsUsing())

	if (j.Natural || len(j.Using) > 0) && !needsRewrite {
		kw := "NATURAL " + j.Kind.String()
		if !j.Natural {
			kw = j.Kind.String()
		}
		text := fmt.Sprintf("%s %s %s", left, kw, right)
		if !j.Natural {
			cols := make([]string, len(j.Using))
			for i, c := range j.Using {
				cols[i] = t.quoteIdent(c, false)
			}
			text += fmt.Sprintf(" USING (%s)", strings.Join(cols, ", "))
		}
		t.recordSharedQualifiers(j)
		return text, nil
	}

	if j.Natural || len(j.Using) > 0 {
		leftAlias, ok := effectiveAliasOf(j.Left)
		if !ok {
			return "", t.fail("cannot rewrite NATURAL/USING join without a simple left-hand table alias")
		}
		rightAlias, ok := effectiveAliasOf(j.Right)
		if !ok {
			return "", t.fail("cannot rewrite NATURAL/USING join without a simple right-hand table alias")
		}
		var conds []string
		for _, col := range j.ExportedColumns {
			if col.Table != nil {
				continue
			}
			name := t.quoteIdent(col.ADQLName, col.ADQLCaseSensitive)
			conds = append(conds, fmt.Sprintf("%s.%s = %s.%s", leftAlias, name, rightAlias, name))
			t.setOrphanQualifier(col.ADQLName, leftAlias)
		}
		if len(conds) == 0 {
			return "", t.fail("NATURAL/USING join shares no columns to rewrite")
		}
		return fmt.Sprintf("%s %s %s ON %s", left, j.Kind, right, strings.Join(conds, " AND ")), nil
	}

	if j.On != nil {
		on, err := t.translateConstraint(j.On)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s ON %s", left, j.Kind, right, on), nil
	}
	return fmt.Sprintf("%s %s %s", left, j.Kind, right), nil
}

// recordSharedQualifiers registers, for a NATURAL/USING join the dialect
// renders natively, that later bare references to a shared column need
// no qualifier at all (the orphan map entry is "", meaning "bare").
func (t *Translator) recordSharedQualifiers(j *ast.Join) {
	for _, col := range j.ExportedColumns {
		if col.Table == nil {
			t.setOrphanQualifier(col.ADQLName, "")
		}
	}
}

// effectiveAliasOf returns the single alias/name a FROM-content item is
// known by, if it is a plain table reference (possibly a subquery with
// an alias); nested joins have no single name and report false.
func effectiveAliasOf(fc ast.FromContent) (string, bool) {
	tr, ok := fc.(*ast.TableRef)
	if !ok {
		return "", false
	}
	return tr.EffectiveName(), true
}
