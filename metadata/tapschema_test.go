package metadata

import "testing"

func TestLoadTAPSchemaBuildsSchemaTree(t *testing.T) {
	schemas := []Row{{"schema_name": "public"}}
	tables := []Row{{"schema_name": "public", "table_name": "mytable"}}
	columns := []Row{
		{"table_name": "mytable", "column_name": "ra", "datatype": "DOUBLE"},
		{"table_name": "mytable", "column_name": "name", "datatype": "VARCHAR", "size": "32"},
	}
	out, err := LoadTAPSchema(schemas, tables, columns, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || len(out[0].Tables) != 1 || len(out[0].Tables[0].Columns) != 2 {
		t.Fatalf("unexpected schema shape: %+v", out)
	}
	raCol := out[0].Tables[0].Column("ra", false)
	if raCol == nil || raCol.Datatype.Kind != DOUBLE {
		t.Fatalf("expected a DOUBLE ra column, got %+v", raCol)
	}
	nameCol := out[0].Tables[0].Column("name", false)
	if nameCol == nil || nameCol.Datatype != (Datatype{Kind: VARCHAR, Length: 32}) {
		t.Fatalf("expected a VARCHAR(32) name column, got %+v", nameCol)
	}
}

func TestLoadTAPSchemaHonorsDBNameOverride(t *testing.T) {
	schemas := []Row{{"schema_name": "public"}}
	tables := []Row{{"schema_name": "public", "table_name": "mytable", "db_name": "MYTABLE_T"}}
	columns := []Row{{"table_name": "mytable", "column_name": "ra", "db_name": "RAJ2000", "datatype": "DOUBLE"}}
	out, err := LoadTAPSchema(schemas, tables, columns, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl := out[0].Tables[0]
	if tbl.DBName() != "MYTABLE_T" {
		t.Fatalf("expected db_name override MYTABLE_T, got %q", tbl.DBName())
	}
	if tbl.Columns[0].DBName() != "RAJ2000" {
		t.Fatalf("expected db_name override RAJ2000, got %q", tbl.Columns[0].DBName())
	}
}

func TestLoadTAPSchemaRejectsUnknownSchema(t *testing.T) {
	tables := []Row{{"schema_name": "nosuch", "table_name": "mytable"}}
	if _, err := LoadTAPSchema(nil, tables, nil, nil, nil); err == nil {
		t.Fatal("expected an error for a table referencing an unknown schema")
	}
}

func TestLoadTAPSchemaRejectsUnknownDatatype(t *testing.T) {
	schemas := []Row{{"schema_name": "public"}}
	tables := []Row{{"schema_name": "public", "table_name": "mytable"}}
	columns := []Row{{"table_name": "mytable", "column_name": "ra", "datatype": "NOTATYPE"}}
	if _, err := LoadTAPSchema(schemas, tables, columns, nil, nil); err == nil {
		t.Fatal("expected an error for an unrecognized TAP_SCHEMA datatype")
	}
}
