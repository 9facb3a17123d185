package metadata

import (
	"strings"
	"testing"
)

func TestLoadTOMLBuildsSchemaTree(t *testing.T) {
	doc := `
[[schema]]
name = "public"

  [[schema.table]]
  name = "mytable"

    [[schema.table.column]]
    name = "ra"
    datatype = "DOUBLE"

    [[schema.table.column]]
    name = "name"
    datatype = "VARCHAR"
    size = 32
`
	schemas, err := LoadTOML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schemas) != 1 || schemas[0].ADQLName != "public" {
		t.Fatalf("expected 1 schema named public, got %+v", schemas)
	}
	tbl := schemas[0].Tables[0]
	if tbl.ADQLName != "mytable" || len(tbl.Columns) != 2 {
		t.Fatalf("unexpected table shape: %+v", tbl)
	}
	ra := tbl.Column("ra", false)
	if ra == nil || ra.Datatype.Kind != DOUBLE {
		t.Fatalf("expected a DOUBLE ra column, got %+v", ra)
	}
	name := tbl.Column("name", false)
	if name == nil || name.Datatype != (Datatype{Kind: VARCHAR, Length: 32}) {
		t.Fatalf("expected a VARCHAR(32) name column, got %+v", name)
	}
}

func TestLoadTOMLHonorsDBNameOverride(t *testing.T) {
	doc := `
[[schema]]
name = "public"

  [[schema.table]]
  name = "mytable"
  db_name = "MYTABLE_T"

    [[schema.table.column]]
    name = "ra"
    db_name = "RAJ2000"
    datatype = "DOUBLE"
`
	schemas, err := LoadTOML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl := schemas[0].Tables[0]
	if tbl.DBName() != "MYTABLE_T" {
		t.Fatalf("expected db_name override MYTABLE_T, got %q", tbl.DBName())
	}
	if tbl.Columns[0].DBName() != "RAJ2000" {
		t.Fatalf("expected db_name override RAJ2000, got %q", tbl.Columns[0].DBName())
	}
}

func TestLoadTOMLRejectsUnknownDatatype(t *testing.T) {
	doc := `
[[schema]]
name = "public"

  [[schema.table]]
  name = "mytable"

    [[schema.table.column]]
    name = "ra"
    datatype = "NOTATYPE"
`
	if _, err := LoadTOML(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for an unrecognized datatype")
	}
}

func TestLoadTOMLRejectsMalformedInput(t *testing.T) {
	if _, err := LoadTOML(strings.NewReader("not valid toml [[[")); err == nil {
		t.Fatal("expected an error for malformed TOML input")
	}
}
