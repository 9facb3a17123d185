package metadata

import "testing"

func buildTable() *Table {
	tbl := &Table{Identifier: NewIdentifier("mytable", false)}
	tbl.AddColumn(&Column{Identifier: NewIdentifier("ra", false), Datatype: New(DOUBLE)})
	tbl.AddColumn(&Column{Identifier: NewIdentifier("name", false), Datatype: NewSized(VARCHAR, 32)})
	return tbl
}

func TestAddColumnSetsBackReference(t *testing.T) {
	tbl := buildTable()
	if tbl.Columns[0].Table != tbl {
		t.Fatal("expected AddColumn to set the column's Table back-reference")
	}
}

func TestTableColumnLookup(t *testing.T) {
	tbl := buildTable()
	if tbl.Column("RA", false) == nil {
		t.Fatal("expected a case-insensitive lookup of RA to find ra")
	}
	if tbl.Column("nosuch", false) != nil {
		t.Fatal("expected a lookup of an unknown column to return nil")
	}
}

func TestSchemaTableLookup(t *testing.T) {
	tbl := buildTable()
	schema := &Schema{Identifier: NewIdentifier("public", false), Tables: []*Table{tbl}}
	if schema.Table("MyTable", false) != tbl {
		t.Fatal("expected a case-insensitive schema table lookup to succeed")
	}
	if schema.Table("nosuch", false) != nil {
		t.Fatal("expected a lookup of an unknown table to return nil")
	}
}

func TestFunctionDefAcceptsFixedArity(t *testing.T) {
	f := FunctionDef{
		Name:   "gaia_healpix",
		Return: New(BIGINT),
		Params: []Param{{Name: "ra", Type: New(DOUBLE)}, {Name: "dec", Type: New(DOUBLE)}},
	}
	if !f.Accepts([]Datatype{New(DOUBLE), New(INTEGER)}) {
		t.Fatal("expected numeric-compatible arguments to be accepted")
	}
	if f.Accepts([]Datatype{New(DOUBLE)}) {
		t.Fatal("expected a wrong-arity call to be rejected")
	}
	if f.Accepts([]Datatype{New(DOUBLE), New(VARCHAR)}) {
		t.Fatal("expected a string argument where a numeric one is wanted to be rejected")
	}
}

func TestFunctionDefAcceptsVariadic(t *testing.T) {
	f := FunctionDef{
		Name:     "concat_all",
		Return:   New(VARCHAR),
		Params:   []Param{{Name: "s", Type: New(VARCHAR)}},
		Variadic: true,
	}
	if !f.Accepts([]Datatype{New(VARCHAR), New(VARCHAR), New(VARCHAR)}) {
		t.Fatal("expected a variadic signature to accept more arguments than declared params")
	}
	if !f.Accepts([]Datatype{}) {
		t.Fatal("expected a variadic signature with one param to accept zero arguments")
	}
}

func TestFunctionDefUnknownArgIsAlwaysCompatible(t *testing.T) {
	f := FunctionDef{Name: "f", Return: New(DOUBLE), Params: []Param{{Name: "x", Type: New(DOUBLE)}}}
	if !f.Accepts([]Datatype{Unknown}) {
		t.Fatal("expected UNKNOWN to satisfy any parameter type")
	}
}
