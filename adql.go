// Package adql implements an ADQL (Astronomical Data Query Language)
// parser, semantic checker, and multi-dialect SQL translator, per the
// IVOA ADQL 2.0/2.1 recommendations.
//
// Basic usage:
//
//	q, err := adql.Parse("SELECT TOP 10 ra, dec FROM ogle.sources WHERE ra BETWEEN 10 AND 11", token.V21)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := adql.Check(q, schemas, nil, nil, token.V21); err != nil {
//	    log.Fatal(err)
//	}
//	sql, err := adql.Translate(q, adql.PostgreSQL)
//
// Walking the AST:
//
//	adql.Walk(q, func(n ast.Node) bool {
//	    if col, ok := n.(*ast.ColumnReference); ok {
//	        fmt.Println("column:", col.Name())
//	    }
//	    return true
//	})
package adql

import (
	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/check"
	"github.com/skyquery-adql/adql/feature"
	"github.com/skyquery-adql/adql/metadata"
	"github.com/skyquery-adql/adql/parser"
	"github.com/skyquery-adql/adql/token"
	"github.com/skyquery-adql/adql/translate"
	"github.com/skyquery-adql/adql/visitor"
)

// Parse parses a single ADQL query into its AST. The result is not yet
// resolved against any catalogue; call Check before Translate.
func Parse(adql string, version token.Version) (ast.QueryExpr, error) {
	return parser.New(adql, version).Parse()
}

// QuickFix runs the text-repair pass over raw ADQL source, rewriting
// keyword/identifier collisions (e.g. "cat.point") as delimited
// identifiers before Parse is attempted. changed reports whether any
// rewrite was made.
func QuickFix(adql string, version token.Version) (fixed string, changed bool) {
	return parser.QuickFix(adql, version)
}

// Check resolves q against schemas and udfs, filling in the AST's
// Resolved/ExportedColumns fields that Translate depends on. features
// may be nil to accept every feature the version allows.
func Check(q ast.QueryExpr, schemas []*metadata.Schema, udfs []*metadata.FunctionDef, features *feature.Set, version token.Version) error {
	return check.New(schemas, udfs, features, version).Check(q)
}

// Translate renders an already-checked query expression as SQL text
// for the given target dialect.
func Translate(q ast.QueryExpr, d translate.Dialect) (string, error) {
	return translate.New(d).Translate(q)
}

// Walk traverses node and its descendants in document order, calling
// fn at every node; returning false from fn skips that node's children.
func Walk(node ast.Node, fn func(ast.Node) bool) { visitor.WalkFunc(node, fn) }

// Rewrite traverses node post-order (children first), replacing each
// node with whatever fn returns (the node itself to keep it unchanged).
func Rewrite(node ast.Node, fn func(ast.Node) ast.Node) ast.Node {
	return visitor.Rewrite(node, fn)
}

// Search walks node (inclusive), applying h, and returns every node
// h.Match reports true for, in document order.
func Search(node ast.Node, h visitor.SearchHandler) []ast.Node {
	return visitor.Search(node, h)
}

// Type aliases for convenience, so callers need not import the
// underlying packages for the common cases.
type (
	Node        = ast.Node
	QueryExpr   = ast.QueryExpr
	Query       = ast.Query
	Schema      = metadata.Schema
	Table       = metadata.Table
	Column      = metadata.Column
	FunctionDef = metadata.FunctionDef
	Dialect     = translate.Dialect
	Version     = token.Version
)

// Grammar versions.
const (
	V20 = token.V20
	V21 = token.V21
)

// Built-in dialect profiles.
var (
	PostgreSQL         = translate.PostgreSQL
	PostgreSQLPgSphere = translate.PostgreSQLPgSphere
	SQLServer          = translate.SQLServer
	MySQL              = translate.MySQL
	GenericJDBC        = translate.GenericJDBC
)
