package check

import (
	"fmt"
	"strings"
	"testing"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/feature"
	"github.com/skyquery-adql/adql/metadata"
	"github.com/skyquery-adql/adql/token"
)

func testSchema() []*metadata.Schema {
	tbl := &metadata.Table{Identifier: metadata.NewIdentifier("mytable", false)}
	tbl.AddColumn(&metadata.Column{Identifier: metadata.NewIdentifier("ra", false), Datatype: metadata.New(metadata.DOUBLE)})
	tbl.AddColumn(&metadata.Column{Identifier: metadata.NewIdentifier("dec", false), Datatype: metadata.New(metadata.DOUBLE)})
	tbl.AddColumn(&metadata.Column{Identifier: metadata.NewIdentifier("name", false), Datatype: metadata.NewSized(metadata.VARCHAR, 32)})
	schema := &metadata.Schema{Identifier: metadata.NewIdentifier("public", false), Tables: []*metadata.Table{tbl}}
	return []*metadata.Schema{schema}
}

func simpleSelectAll() *ast.Query {
	return &ast.Query{
		Select:    []ast.SelectItem{{Star: true}},
		From:      &ast.TableRef{Name: "mytable"},
		SelectAll: true,
		Version:   token.V21,
	}
}

func TestCheckResolvesStarColumns(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	q := simpleSelectAll()
	if err := c.Check(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Select[0].Resolved) != 3 {
		t.Fatalf("expected 3 resolved columns, got %d", len(q.Select[0].Resolved))
	}
}

func TestCheckUnknownTable(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	q := &ast.Query{
		Select: []ast.SelectItem{{Star: true}},
		From:   &ast.TableRef{Name: "nosuchtable"},
	}
	if err := c.Check(q); err == nil {
		t.Fatal("expected an error for an unknown table")
	}
}

func TestCheckAmbiguousColumn(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	q := &ast.Query{
		Select: []ast.SelectItem{{Expr: &ast.ColumnReference{Parts: []string{"ra"}, CaseSensitive: []bool{false}}}},
		From: &ast.Join{
			Kind:  ast.JoinCross,
			Left:  &ast.TableRef{Name: "mytable", Alias: "a"},
			Right: &ast.TableRef{Name: "mytable", Alias: "b"},
		},
	}
	err := c.Check(q)
	if err == nil {
		t.Fatal("expected an ambiguous-column error")
	}
}

func TestCheckConcatRejectsBareNegative(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	q := &ast.Query{
		Select: []ast.SelectItem{{Expr: &ast.Operation{
			Op:    ast.OpConcat,
			Left:  &ast.StringConstant{Value: "toto"},
			Right: &ast.Negative{Operand: &ast.NumericConstant{Text: "1"}},
		}}},
		From: &ast.TableRef{Name: "mytable"},
	}
	if err := c.Check(q); err == nil {
		t.Fatal("expected 'toto' || -1 to be rejected")
	}
}

func TestCheckConcatAcceptsParenthesizedNegative(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	q := &ast.Query{
		Select: []ast.SelectItem{{Expr: &ast.Operation{
			Op:   ast.OpConcat,
			Left: &ast.StringConstant{Value: "toto"},
			Right: &ast.Wrapped{Operand: &ast.Negative{
				Operand: &ast.NumericConstant{Text: "1"},
			}},
		}}},
		From: &ast.TableRef{Name: "mytable"},
	}
	if err := c.Check(q); err != nil {
		t.Fatalf("expected 'toto' || (-1) to be accepted, got %v", err)
	}
}

func TestCheckNaturalJoinExportsOrphanedColumns(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	q := &ast.Query{
		Select: []ast.SelectItem{{Star: true}},
		From: &ast.Join{
			Kind:    ast.JoinInner,
			Natural: true,
			Left:    &ast.TableRef{Name: "mytable", Alias: "a"},
			Right:   &ast.TableRef{Name: "mytable", Alias: "b"},
		},
	}
	if err := c.Check(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	join := q.From.(*ast.Join)
	if len(join.ExportedColumns) == 0 {
		t.Fatal("expected some exported columns from the natural join")
	}
	for _, col := range join.ExportedColumns {
		if col.DBName() == "ra" && col.Table != nil {
			t.Fatal("expected the shared 'ra' column to be orphaned (Table == nil)")
		}
	}
}

func TestCheckUsingJoinDedupsRegardlessOfNameCase(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	q := &ast.Query{
		Select: []ast.SelectItem{{Star: true}},
		From: &ast.Join{
			Kind:  ast.JoinInner,
			Using: []string{"RA"},
			Left:  &ast.TableRef{Name: "mytable", Alias: "a"},
			Right: &ast.TableRef{Name: "mytable", Alias: "b"},
		},
	}
	if err := c.Check(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	join := q.From.(*ast.Join)
	var raCount int
	for _, col := range join.ExportedColumns {
		if col.DBName() == "ra" {
			raCount++
			if col.Table != nil {
				t.Fatal("expected the shared 'ra' column to be orphaned (Table == nil)")
			}
		}
	}
	if raCount != 1 {
		t.Fatalf("expected USING (RA) to dedup the case-mismatched 'ra' column exactly once, got %d", raCount)
	}
}

func healpixUDF() *metadata.FunctionDef {
	return &metadata.FunctionDef{
		Name:   "gaia_healpix",
		Return: metadata.New(metadata.BIGINT),
		Params: []metadata.Param{{Name: "ra", Type: metadata.New(metadata.DOUBLE)}, {Name: "dec", Type: metadata.New(metadata.DOUBLE)}},
	}
}

func udfCallQuery(name string) *ast.Query {
	return &ast.Query{
		Select: []ast.SelectItem{{Expr: &ast.UserDefinedFunction{
			Name: name,
			Args: []ast.Operand{&ast.ColumnReference{Parts: []string{"ra"}, CaseSensitive: []bool{false}},
				&ast.ColumnReference{Parts: []string{"dec"}, CaseSensitive: []bool{false}}},
		}}},
		From: &ast.TableRef{Name: "mytable"},
	}
}

func TestCheckResolvesMatchingUDFSignature(t *testing.T) {
	udf := healpixUDF()
	features := feature.NewDefault(token.V21)
	features.RegisterUDF("gaia_healpix(DOUBLE,DOUBLE)")
	c := New(testSchema(), []*metadata.FunctionDef{udf}, features, token.V21)
	q := udfCallQuery("gaia_healpix")
	if err := c.Check(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := q.Select[0].Expr.(*ast.UserDefinedFunction)
	if call.Resolved != udf {
		t.Fatalf("expected the matching signature to be resolved, got %+v", call.Resolved)
	}
}

func TestCheckRejectsUnmatchedUDFByDefault(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	q := udfCallQuery("no_such_function")
	if err := c.Check(q); err == nil {
		t.Fatal("expected an error for a call to an unregistered UDF")
	}
}

func TestCheckAllowAnyUDFAcceptsUnmatchedCallAsDefaultTyped(t *testing.T) {
	c := New(testSchema(), nil, nil, token.V21)
	c.AllowAnyUDF = true
	q := udfCallQuery("no_such_function")
	if err := c.Check(q); err != nil {
		t.Fatalf("unexpected error with AllowAnyUDF set: %v", err)
	}
	call := q.Select[0].Expr.(*ast.UserDefinedFunction)
	if call.Resolved != nil {
		t.Fatalf("expected no signature to be resolved, got %+v", call.Resolved)
	}
	dt := c.resolveOperand(call, nil, &Errors{})
	if !dt.IsNumeric() || !dt.IsString() {
		t.Fatalf("expected the default-typed call's datatype to satisfy both numeric and string, got %+v", dt)
	}
}

func TestCheckReportsAmbiguousUDFSignatureTie(t *testing.T) {
	narrow := &metadata.FunctionDef{
		Name:   "gaia_healpix",
		Return: metadata.New(metadata.BIGINT),
		Params: []metadata.Param{{Name: "a", Type: metadata.New(metadata.DOUBLE)}, {Name: "b", Type: metadata.New(metadata.DOUBLE)}},
	}
	wide := &metadata.FunctionDef{
		Name:   "gaia_healpix",
		Return: metadata.New(metadata.DOUBLE),
		Params: []metadata.Param{{Name: "a", Type: metadata.New(metadata.DOUBLE)}, {Name: "b", Type: metadata.New(metadata.DOUBLE)}},
	}
	features := feature.NewDefault(token.V21)
	features.RegisterUDF("gaia_healpix(DOUBLE,DOUBLE)")
	c := New(testSchema(), []*metadata.FunctionDef{narrow, wide}, features, token.V21)
	q := udfCallQuery("gaia_healpix")
	if err := c.Check(q); err == nil {
		t.Fatal("expected an ambiguous-signature error when two declared UDFs match the same call")
	}
}

func TestCheckUDFConstructorBuildsSpecializedNode(t *testing.T) {
	udf := &metadata.FunctionDef{
		Name:   "gaia_healpix",
		Return: metadata.New(metadata.BIGINT),
		Params: []metadata.Param{{Name: "ra", Type: metadata.New(metadata.DOUBLE)}, {Name: "dec", Type: metadata.New(metadata.DOUBLE)}},
		Constructor: func(args []any) (any, error) {
			ops := make([]ast.Operand, len(args))
			for i, a := range args {
				ops[i] = a.(ast.Operand)
			}
			return &ast.MathFunction{Name: "gaia_healpix", Args: ops}, nil
		},
	}
	features := feature.NewDefault(token.V21)
	features.RegisterUDF("gaia_healpix(DOUBLE,DOUBLE)")
	c := New(testSchema(), []*metadata.FunctionDef{udf}, features, token.V21)
	q := udfCallQuery("gaia_healpix")
	if err := c.Check(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := q.Select[0].Expr.(*ast.UserDefinedFunction)
	built, ok := call.Constructed.(*ast.MathFunction)
	if !ok {
		t.Fatalf("expected the constructor's specialized node to be recorded, got %+v", call.Constructed)
	}
	if built.Name != "gaia_healpix" || len(built.Args) != 2 {
		t.Fatalf("unexpected constructed node shape: %+v", built)
	}
}

func TestCheckUDFConstructorFailureIsReportedByFunctionName(t *testing.T) {
	udf := &metadata.FunctionDef{
		Name:   "gaia_healpix",
		Return: metadata.New(metadata.BIGINT),
		Params: []metadata.Param{{Name: "ra", Type: metadata.New(metadata.DOUBLE)}, {Name: "dec", Type: metadata.New(metadata.DOUBLE)}},
		Constructor: func(args []any) (any, error) {
			return nil, fmt.Errorf("bad healpix order")
		},
	}
	features := feature.NewDefault(token.V21)
	features.RegisterUDF("gaia_healpix(DOUBLE,DOUBLE)")
	c := New(testSchema(), []*metadata.FunctionDef{udf}, features, token.V21)
	q := udfCallQuery("gaia_healpix")
	err := c.Check(q)
	if err == nil {
		t.Fatal("expected an error when the matched UDF's constructor fails")
	}
	if !strings.Contains(err.Error(), "gaia_healpix") {
		t.Fatalf("expected the constructor error to name the function, got %v", err)
	}
}
