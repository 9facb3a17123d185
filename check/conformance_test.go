package check

// conformance_test.go is a structural sanity check, not a semantic one:
// the SELECT/FROM/WHERE/ORDER BY/GROUP BY shapes ADQL shares with
// standard SQL should also parse as some valid SQL under a generic,
// unrelated SQL grammar. It catches cases where our own grammar has
// drifted from the ANSI-ish subset ADQL is built on top of, independent
// of whatever bugs our own parser might share with itself.

import (
	"testing"

	vitess "github.com/blastrain/vitess-sqlparser/sqlparser"

	"github.com/skyquery-adql/adql/parser"
	"github.com/skyquery-adql/adql/token"
)

// sqlShapedCorpus holds ADQL queries that use no ADQL-only syntax (TOP,
// REGION, geometry predicates, position units): the subset that should
// also be accepted by a plain SQL grammar.
var sqlShapedCorpus = []string{
	"SELECT ra, dec FROM mytable WHERE ra > 10",
	"SELECT a.ra, b.dec FROM a JOIN b ON a.id = b.id",
	"SELECT name, COUNT(*) FROM mytable GROUP BY name HAVING COUNT(*) > 1",
	"SELECT ra FROM mytable ORDER BY ra DESC",
	"SELECT ra FROM mytable WHERE ra BETWEEN 1 AND 2 AND name IN ('a', 'b')",
	"SELECT ra FROM a UNION SELECT ra FROM b",
}

func TestSQLShapedCorpusParsesUnderAdqlAndVitess(t *testing.T) {
	for _, q := range sqlShapedCorpus {
		q := q
		t.Run(q, func(t *testing.T) {
			if _, err := parser.New(q, token.V21).Parse(); err != nil {
				t.Fatalf("adql/parser rejected a plain-SQL-shaped query: %v", err)
			}
			if _, err := vitess.Parse(q); err != nil {
				t.Fatalf("vitess-sqlparser rejected a plain-SQL-shaped query: %v", err)
			}
		})
	}
}

// adqlOnlyCorpus holds queries using syntax with no MySQL-grammar
// equivalent: SQL Server's TOP clause and a bare OFFSET with no LIMIT.
// vitess is expected to reject both; a query it unexpectedly accepts
// would mean our "ADQL-only" assumption about that syntax no longer
// holds.
var adqlOnlyCorpus = []string{
	"SELECT TOP 5 ra FROM mytable",
	"SELECT ra FROM mytable OFFSET 10",
}

func TestAdqlOnlySyntaxIsRejectedByVitess(t *testing.T) {
	for _, q := range adqlOnlyCorpus {
		q := q
		t.Run(q, func(t *testing.T) {
			if _, err := parser.New(q, token.V21).Parse(); err != nil {
				t.Fatalf("adql/parser rejected its own syntax: %v", err)
			}
			if _, err := vitess.Parse(q); err == nil {
				t.Fatalf("expected vitess-sqlparser to reject ADQL-only syntax, it accepted %q", q)
			}
		})
	}
}
