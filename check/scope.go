package check

import "github.com/skyquery-adql/adql/metadata"

// tableBinding is one FROM-clause entry as it is visible for column
// resolution: a real table, CTE, subquery result or join, known in this
// scope under effectiveName.
type tableBinding struct {
	effectiveName      string
	effectiveCaseSensitive bool
	table              *metadata.Table
}

// scope is the set of column/table bindings visible while resolving
// identifiers within one query level, with an optional parent scope for
// correlated-subquery lookups (spec.md §4.6: a correlated subquery can
// see its enclosing query's columns, but the enclosing query cannot see
// into the subquery).
type scope struct {
	tables  []tableBinding
	columns []*metadata.Column // flattened, includes orphaned (Table==nil) join columns
	parent  *scope
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent}
}

func (s *scope) addTable(effectiveName string, caseSensitive bool, table *metadata.Table) {
	s.tables = append(s.tables, tableBinding{effectiveName: effectiveName, effectiveCaseSensitive: caseSensitive, table: table})
	s.columns = append(s.columns, table.Columns...)
}

// addColumns registers a flat column list without an associated table
// binding, used for join ExportedColumns where the join itself (not its
// two sides individually) is what the enclosing scope sees.
func (s *scope) addColumns(cols []*metadata.Column) {
	s.columns = append(s.columns, cols...)
}

// findTable looks up a FROM-clause table by its effective (alias or
// declared) name, honoring ADQL's per-identifier case-sensitivity rule.
func (s *scope) findTable(name string, caseSensitive bool) (*metadata.Table, bool) {
	for _, b := range s.tables {
		if identEqualName(b.effectiveName, b.effectiveCaseSensitive, name, caseSensitive) {
			return b.table, true
		}
	}
	if s.parent != nil {
		return s.parent.findTable(name, caseSensitive)
	}
	return nil, false
}

// findColumn looks up an unqualified column name across every table
// bound in this scope (and, failing that, the parent scope — a
// correlated reference). ambiguous reports whether more than one local
// column matched.
func (s *scope) findColumn(name string, caseSensitive bool) (col *metadata.Column, ambiguous bool) {
	var matches []*metadata.Column
	for _, c := range s.columns {
		if c.EqualName(name, caseSensitive) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		if s.parent != nil {
			return s.parent.findColumn(name, caseSensitive)
		}
		return nil, false
	case 1:
		return matches[0], false
	default:
		return nil, true
	}
}

// identEqualName applies ADQL's case-sensitivity comparison rule
// directly to two plain strings (used for alias comparisons, which
// metadata.Identifier does not itself carry).
func identEqualName(a string, aCaseSensitive bool, b string, bCaseSensitive bool) bool {
	if aCaseSensitive || bCaseSensitive {
		return a == b
	}
	return foldEqual(a, b)
}

func foldEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
