package visitor

import (
	"testing"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/parser"
	"github.com/skyquery-adql/adql/token"
)

func mustParse(t *testing.T, adql string) ast.QueryExpr {
	t.Helper()
	q, err := parser.New(adql, token.V21).Parse()
	if err != nil {
		t.Fatalf("parse error for %q: %v", adql, err)
	}
	return q
}

func TestWalkFuncVisitsEveryColumnReference(t *testing.T) {
	q := mustParse(t, "SELECT ra, dec FROM mytable WHERE ra > 10")
	var names []string
	WalkFunc(q, func(n ast.Node) bool {
		if col, ok := n.(*ast.ColumnReference); ok {
			names = append(names, col.Name())
		}
		return true
	})
	if len(names) != 3 {
		t.Fatalf("expected 3 column references (2 select items + 1 in WHERE), got %d: %v", len(names), names)
	}
}

func TestWalkFuncFalseStopsDescent(t *testing.T) {
	q := mustParse(t, "SELECT ra FROM mytable WHERE ra > 10")
	var sawQuery bool
	WalkFunc(q, func(n ast.Node) bool {
		if _, ok := n.(*ast.Query); ok {
			sawQuery = true
			return false
		}
		t.Fatalf("expected descent to stop at the query node, but visited %T", n)
		return true
	})
	if !sawQuery {
		t.Fatal("expected to visit the top-level query node")
	}
}

func TestSearchWithGoIntoSkipsSubquery(t *testing.T) {
	q := mustParse(t, "SELECT t.ra FROM (SELECT ra FROM mytable WHERE dec > 5) AS t")
	found := Search(q, SearchHandler{
		Match: func(n ast.Node) bool {
			_, ok := n.(*ast.ColumnReference)
			return ok
		},
		GoInto: func(n ast.Node) bool {
			_, isTableRef := n.(*ast.TableRef)
			return !isTableRef
		},
	})
	for _, n := range found {
		col := n.(*ast.ColumnReference)
		if col.Name() == "dec" {
			t.Fatal("expected GoInto to prevent descending into the subquery, but found its dec reference")
		}
	}
}

func TestFindFirstReturnsNilWhenNoMatch(t *testing.T) {
	q := mustParse(t, "SELECT ra FROM mytable")
	got := FindFirst(q, SearchHandler{Match: func(n ast.Node) bool {
		_, ok := n.(*ast.Exists)
		return ok
	}})
	if got != nil {
		t.Fatalf("expected no EXISTS node to be found, got %v", got)
	}
}

func TestRewriteOperandRenamesColumnReferences(t *testing.T) {
	q := mustParse(t, "SELECT ra FROM mytable WHERE ra > 10").(*ast.Query)
	q.Where = rewriteConstraint(t, q.Where)
	cmp := q.Where.(*ast.Comparison)
	col := cmp.Left.(*ast.ColumnReference)
	if col.Parts[len(col.Parts)-1] != "ra_renamed" {
		t.Fatalf("expected the column reference to be renamed, got %+v", col.Parts)
	}
}

func rewriteConstraint(t *testing.T, c ast.Constraint) ast.Constraint {
	t.Helper()
	result := Rewrite(c, func(n ast.Node) ast.Node {
		if col, ok := n.(*ast.ColumnReference); ok && col.Name() == "ra" {
			renamed := *col
			renamed.Parts = append([]string(nil), col.Parts[:len(col.Parts)-1]...)
			renamed.Parts = append(renamed.Parts, "ra_renamed")
			return &renamed
		}
		return n
	})
	return result.(ast.Constraint)
}

func TestWalkIgnoresTypedNilFromContent(t *testing.T) {
	q := &ast.Query{Select: []ast.SelectItem{{Star: true}}, From: (*ast.TableRef)(nil)}
	var visited int
	WalkFunc(q, func(n ast.Node) bool {
		visited++
		return true
	})
	if visited == 0 {
		t.Fatal("expected at least the query node itself to be visited")
	}
}
