package fuzz

import (
	"testing"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/check"
	"github.com/skyquery-adql/adql/metadata"
	"github.com/skyquery-adql/adql/parser"
	"github.com/skyquery-adql/adql/region"
	"github.com/skyquery-adql/adql/token"
	"github.com/skyquery-adql/adql/translate"
	"github.com/skyquery-adql/adql/visitor"
)

// fuzzSchema gives the fuzz corpus's table/column names somewhere to
// resolve against, so FuzzTranslate exercises real, checked queries
// rather than bailing out of every seed at Check.
func fuzzSchema() []*metadata.Schema {
	mkTable := func(name string) *metadata.Table {
		tbl := &metadata.Table{Identifier: metadata.NewIdentifier(name, false)}
		tbl.AddColumn(&metadata.Column{Identifier: metadata.NewIdentifier("id", false), Datatype: metadata.New(metadata.BIGINT)})
		tbl.AddColumn(&metadata.Column{Identifier: metadata.NewIdentifier("ra", false), Datatype: metadata.New(metadata.DOUBLE)})
		tbl.AddColumn(&metadata.Column{Identifier: metadata.NewIdentifier("dec", false), Datatype: metadata.New(metadata.DOUBLE)})
		tbl.AddColumn(&metadata.Column{Identifier: metadata.NewIdentifier("name", false), Datatype: metadata.NewSized(metadata.VARCHAR, 32)})
		return tbl
	}
	schema := &metadata.Schema{Identifier: metadata.NewIdentifier("public", false)}
	for _, name := range []string{"mytable", "a", "b", "t", "t2", "u"} {
		schema.Tables = append(schema.Tables, mkTable(name))
	}
	return []*metadata.Schema{schema}
}

// FuzzParse tests that the parser doesn't panic on arbitrary input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		// Basic SELECT
		"SELECT * FROM users",
		"SELECT ra, dec FROM mytable WHERE ra > 10",
		"SELECT TOP 10 ra, dec FROM ogle.sources WHERE ra BETWEEN 10 AND 11",
		"SELECT DISTINCT a, b FROM t",
		"SELECT ALL * FROM t",

		// Joins
		"SELECT a.ra, b.dec FROM a JOIN b ON a.id = b.id",
		"SELECT a.ra FROM a NATURAL JOIN b",
		"SELECT a.ra FROM a LEFT OUTER JOIN b USING (id)",
		"SELECT a.ra FROM a CROSS JOIN b",

		// Subqueries
		"SELECT * FROM (SELECT ra FROM t) AS sub",
		"SELECT ra FROM t WHERE ra IN (SELECT ra FROM t2)",
		"SELECT ra FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)",

		// CTEs (V21-only)
		"WITH cte AS (SELECT ra FROM t) SELECT * FROM cte",
		"WITH cte1 AS (SELECT ra FROM t), cte2 AS (SELECT dec FROM t) SELECT * FROM cte1, cte2",

		// Set operations
		"SELECT ra FROM a UNION SELECT ra FROM b",
		"SELECT ra FROM a INTERSECT SELECT ra FROM b",
		"SELECT ra FROM a EXCEPT SELECT ra FROM b",

		// Aggregates / grouping
		"SELECT name, COUNT(*) FROM mytable GROUP BY name HAVING COUNT(*) > 1",
		"SELECT AVG(ra), MAX(dec), MIN(dec), SUM(ra) FROM mytable",

		// Ordering, paging
		"SELECT ra FROM mytable ORDER BY ra DESC, dec ASC",
		"SELECT ra FROM mytable OFFSET 10",
		"SELECT TOP 5 ra FROM mytable ORDER BY ra",

		// Predicates
		"SELECT ra FROM mytable WHERE ra BETWEEN 1 AND 2 AND name IN ('a', 'b')",
		"SELECT ra FROM mytable WHERE name LIKE 'M%'",
		"SELECT ra FROM mytable WHERE ra IS NOT NULL",
		"SELECT ra FROM mytable WHERE NOT (ra > 1 OR dec < 0)",

		// Geometry predicates and functions
		"SELECT ra FROM mytable WHERE 1=CONTAINS(POINT('ICRS', ra, dec), CIRCLE('ICRS', 10, 20, 1))",
		"SELECT DISTANCE(POINT('ICRS', ra, dec), POINT('ICRS', 0, 0)) FROM mytable",
		"SELECT AREA(CIRCLE('ICRS', 10, 20, 1)) FROM mytable",
		"SELECT ra FROM mytable WHERE INTERSECTS(CIRCLE('ICRS', ra, dec, 1), BOX('ICRS', 0, 0, 5, 5)) = 1",
		"SELECT COORD1(POINT('ICRS', ra, dec)), COORD2(POINT('ICRS', ra, dec)) FROM mytable",
		"SELECT REGION('CIRCLE ICRS 10 20 1') FROM mytable",

		// Numeric functions and arithmetic
		"SELECT ABS(-ra), SQRT(ra*ra+dec*dec), POWER(ra, 2), MOD(ra, 2) FROM mytable",
		"SELECT ra + 1, ra - 1, ra * 2, ra / 2 FROM mytable",

		// String handling (and the negation/concat ambiguity)
		"SELECT name FROM mytable WHERE name = 'it''s'",
		"SELECT 'toto' || 'titi' FROM mytable",
		"SELECT 'toto' || -1 FROM mytable",
		"SELECT CAST(ra AS VARCHAR(10)) FROM mytable",

		// Malformed / adversarial fragments the fuzzer should mutate further
		"SELECT",
		"SELECT * FROM",
		"SELECT ra FROM t WHERE",
		"(((",
		"SELECT 'unterminated",
		"SELECT ra, FROM t",
		"SELECT ra FROM t JOIN",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on %q: %v", src, r)
			}
		}()
		q, err := parser.New(src, token.V21).Parse()
		if err != nil {
			return
		}
		// A successfully parsed query must also survive a full Walk
		// without panicking.
		visitor.WalkFunc(q, func(n ast.Node) bool { return true })
	})
}

// FuzzParseVersionGating checks that switching the grammar version never
// panics, only ever changes which constructs are accepted.
func FuzzParseVersionGating(f *testing.F) {
	seeds := []string{
		"WITH cte AS (SELECT ra FROM t) SELECT * FROM cte",
		"SELECT ra FROM t OFFSET 5",
		"SELECT ra FROM t",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on %q: %v", src, r)
			}
		}()
		parser.New(src, token.V20).Parse()
		parser.New(src, token.V21).Parse()
	})
}

// FuzzQuickFix tests that the text-repair pass never panics.
func FuzzQuickFix(f *testing.F) {
	seeds := []string{
		"SELECT cat.point FROM mytable AS cat",
		"SELECT ra FROM mytable WHERE ra > 10",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("QuickFix panicked on %q: %v", src, r)
			}
		}()
		parser.QuickFix(src, token.V21)
	})
}

// FuzzRegion tests that the STC-S/DALI region parser doesn't panic on
// arbitrary input, mirroring FuzzParse's role for the query grammar.
func FuzzRegion(f *testing.F) {
	seeds := []string{
		// STC-S
		"CIRCLE ICRS 10 20 1",
		"CIRCLE ICRS GEOCENTER 10 20 1",
		"BOX ICRS 10 20 5 5",
		"POLYGON ICRS 10 20 30 40 50 60",
		"POSITION ICRS 10 20",
		"UNION ICRS (CIRCLE 10 20 1 CIRCLE 30 40 1)",
		"INTERSECTION ICRS (CIRCLE 10 20 1 BOX 10 20 5 5)",
		"NOT (CIRCLE ICRS 10 20 1)",
		"CIRCLE GALACTIC SPHERICAL2 10 20 1",

		// DALI (bare numeric arrays)
		"10 20 1",
		"10 20 30 40 50 60",

		// Malformed fragments
		"NOTASHAPE 1 2 3",
		"CIRCLE ICRS 10 20",
		"CIRCLE",
		"",
		"POLYGON ICRS 10 20 30",
		"UNION ICRS ()",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("region.Parse panicked on %q: %v", src, r)
			}
		}()
		r, err := region.Parse(src)
		if err != nil {
			return
		}
		// Anything that parses must also serialise back to text without
		// panicking, and the result must itself be parseable.
		again := r.String()
		if _, err := region.Parse(again); err != nil {
			t.Fatalf("region %q serialised to unparseable text %q: %v", src, again, err)
		}
	})
}

// FuzzTranslate exercises parse, check, and translate together, since
// this repo has no AST-to-ADQL-text formatter to round-trip through
// (translate targets a different output language entirely). Translate
// is documented to require an already-checked query, so this only
// hands it queries that Check has already resolved against a fixed
// fuzzSchema, rather than speculating about its behaviour on raw ASTs.
func FuzzTranslate(f *testing.F) {
	seeds := []string{
		"SELECT TOP 10 ra, dec FROM mytable WHERE ra > 10",
		"SELECT a.ra, b.dec FROM a JOIN b ON a.id = b.id",
		"SELECT name, COUNT(*) FROM mytable GROUP BY name HAVING COUNT(*) > 1",
		"SELECT ra FROM mytable WHERE 1=CONTAINS(POINT('ICRS', ra, dec), CIRCLE('ICRS', 10, 20, 1))",
		"SELECT ra FROM a UNION SELECT ra FROM b",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	schemas := fuzzSchema()
	f.Fuzz(func(t *testing.T, src string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("check/translate panicked on %q: %v", src, r)
			}
		}()
		q, err := parser.New(src, token.V21).Parse()
		if err != nil {
			return
		}
		if err := check.New(schemas, nil, nil, token.V21).Check(q); err != nil {
			return
		}
		for _, d := range []translate.Dialect{translate.PostgreSQL, translate.MySQL, translate.PostgreSQLPgSphere} {
			translate.New(d).Translate(q)
		}
	})
}
