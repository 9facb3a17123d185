package check

import (
	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/metadata"
)

// resolveFromContent resolves one FROM-clause item (a table, subquery
// or join) against the catalogue and cte/parent scopes already present
// in sc, registering whatever it exposes back into sc.
func (c *Checker) resolveFromContent(fc ast.FromContent, sc *scope, errs *Errors) {
	switch n := fc.(type) {
	case *ast.TableRef:
		c.resolveTableRef(n, sc, errs)
	case *ast.Join:
		c.resolveJoin(n, sc, errs)
	default:
		errs.add(fc.Pos(), "unsupported FROM-clause content type")
	}
}

func (c *Checker) resolveTableRef(t *ast.TableRef, sc *scope, errs *Errors) {
	if t.Subquery != nil {
		innerScope := c.checkQueryExpr(t.Subquery, sc.parent, errs)
		name := t.Alias
		if name == "" {
			name = t.Name
		}
		tbl := &metadata.Table{
			Identifier: metadata.NewIdentifier(name, t.Alias != ""),
			Columns:    append([]*metadata.Column(nil), innerScope.columns...),
		}
		for _, col := range tbl.Columns {
			col.Table = tbl
		}
		t.Resolved = tbl
		sc.addTable(t.EffectiveName(), false, tbl)
		return
	}

	if tbl, ok := sc.findTable(t.Name, false); ok && tbl.IsCTE {
		t.Resolved = tbl
		sc.addTable(t.EffectiveName(), t.Alias != "", tbl)
		return
	}

	tbl := c.findCatalogueTable(t.Schema, t.Name)
	if tbl == nil {
		errs.add(t.Pos(), "unknown table %s", qualifiedName(t.Schema, t.Name))
		return
	}
	t.Resolved = tbl
	sc.addTable(t.EffectiveName(), t.Alias != "", tbl)
}

func (c *Checker) findCatalogueTable(schemaName, tableName string) *metadata.Table {
	if schemaName != "" {
		for _, s := range c.Schemas {
			if s.EqualName(schemaName, false) {
				return s.Table(tableName, false)
			}
		}
		return nil
	}
	for _, s := range c.Schemas {
		if tbl := s.Table(tableName, false); tbl != nil {
			return tbl
		}
	}
	return nil
}

func qualifiedName(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}

// resolveJoin resolves both sides, then computes ExportedColumns per
// §4.3.6: a NATURAL or USING join exposes each shared column once, as
// an orphaned (Table == nil) "common column" no longer bound to either
// side, followed by each side's remaining, unshared columns in order.
func (c *Checker) resolveJoin(j *ast.Join, sc *scope, errs *Errors) {
	leftScope := newScope(sc.parent)
	c.resolveFromContent(j.Left, leftScope, errs)
	rightScope := newScope(sc.parent)
	c.resolveFromContent(j.Right, rightScope, errs)

	var shared map[string]bool
	switch {
	case j.Natural:
		shared = map[string]bool{}
		for _, lc := range leftScope.columns {
			for _, rc := range rightScope.columns {
				if lc.Equal(rc.Identifier) {
					shared[lc.DBName()] = true
				}
			}
		}
	case len(j.Using) > 0:
		shared = map[string]bool{}
		for _, name := range j.Using {
			lc, _ := findNamed(leftScope.columns, name)
			rc, _ := findNamed(rightScope.columns, name)
			if lc == nil || rc == nil {
				errs.add(j.Pos(), "USING column %s not found on both sides of the join", name)
				continue
			}
			shared[commonKey(lc)] = true
			shared[commonKey(rc)] = true
		}
	}

	var exported []*metadata.Column
	if shared != nil {
		seen := map[string]bool{}
		for _, lc := range leftScope.columns {
			if shared[commonKey(lc)] && !seen[commonKey(lc)] {
				orphan := *lc
				orphan.Table = nil
				exported = append(exported, &orphan)
				seen[commonKey(lc)] = true
			}
		}
		for _, lc := range leftScope.columns {
			if !shared[commonKey(lc)] {
				exported = append(exported, lc)
			}
		}
		for _, rc := range rightScope.columns {
			if !shared[commonKey(rc)] {
				exported = append(exported, rc)
			}
		}
	} else {
		exported = append(exported, leftScope.columns...)
		exported = append(exported, rightScope.columns...)
	}
	j.ExportedColumns = exported

	sc.tables = append(sc.tables, leftScope.tables...)
	sc.tables = append(sc.tables, rightScope.tables...)
	sc.addColumns(exported)

	if j.On != nil {
		onScope := newScope(sc.parent)
		onScope.tables = sc.tables
		onScope.columns = append(leftScope.columns, rightScope.columns...)
		c.resolveConstraint(j.On, onScope, errs)
	}
}

func commonKey(c *metadata.Column) string { return c.DBName() }

func findNamed(cols []*metadata.Column, name string) (*metadata.Column, bool) {
	for _, c := range cols {
		if c.EqualName(name, false) {
			return c, true
		}
	}
	return nil, false
}
