package metadata

import "fmt"

// Row is one record from a TAP_SCHEMA table, keyed by column name. Row
// sources are out of this package's scope (the caller's JDBC/HTTP client
// hydrates them); metadata only interprets the five well-known tables.
type Row map[string]string

// LoadTAPSchema reads the standard five-table TAP_SCHEMA description of
// a database: schemas, tables, columns, keys and key_columns. It builds a []*Schema from in-memory rows, honoring a db_name override on
// both tables and columns per the companion TAP requirements.
func LoadTAPSchema(schemas, tables, columns, keys, keyColumns []Row) ([]*Schema, error) {
	schemaByName := map[string]*Schema{}
	var order []*Schema
	for _, r := range schemas {
		name := r["schema_name"]
		s := &Schema{Identifier: NewIdentifier(name, false)}
		schemaByName[name] = s
		order = append(order, s)
	}

	tableByName := map[string]*Table{}
	for _, r := range tables {
		schemaName := r["schema_name"]
		s, ok := schemaByName[schemaName]
		if !ok {
			return nil, fmt.Errorf("tap_schema.tables: unknown schema %q", schemaName)
		}
		name := r["table_name"]
		t := &Table{Identifier: withDBName(name, r["db_name"]), Schema: s}
		s.Tables = append(s.Tables, t)
		tableByName[name] = t
	}

	for _, r := range columns {
		tableName := r["table_name"]
		t, ok := tableByName[tableName]
		if !ok {
			return nil, fmt.Errorf("tap_schema.columns: unknown table %q", tableName)
		}
		dt, err := parseTAPType(r["datatype"], r["size"])
		if err != nil {
			return nil, fmt.Errorf("tap_schema.columns: column %q: %w", r["column_name"], err)
		}
		col := &Column{
			Identifier:  withDBName(r["column_name"], r["db_name"]),
			Datatype:    dt,
			UCD:         r["ucd"],
			Unit:        r["unit"],
			Description: r["description"],
		}
		t.AddColumn(col)
	}

	// keys / key_columns describe foreign-key joins between tables; the
	// core does not enforce referential integrity, so they are parsed
	// only far enough to validate shape, matching TAP_SCHEMA's contract.
	keyTables := map[string]bool{}
	for _, r := range keys {
		keyTables[r["from_table"]] = true
		keyTables[r["target_table"]] = true
	}
	for _, r := range keyColumns {
		if r["key_id"] == "" {
			return nil, fmt.Errorf("tap_schema.key_columns: missing key_id")
		}
	}

	return order, nil
}

func withDBName(adqlName, dbName string) Identifier {
	if dbName == "" {
		return NewIdentifier(adqlName, false)
	}
	return NewIdentifierWithDB(adqlName, false, dbName)
}

func parseTAPType(datatype, size string) (Datatype, error) {
	length := 0
	if size != "" {
		for _, c := range size {
			if c < '0' || c > '9' {
				return Datatype{}, fmt.Errorf("invalid size %q", size)
			}
			length = length*10 + int(c-'0')
		}
	}
	switch datatype {
	case "BOOLEAN":
		return New(BOOLEAN), nil
	case "SMALLINT":
		return New(SMALLINT), nil
	case "INTEGER":
		return New(INTEGER), nil
	case "BIGINT":
		return New(BIGINT), nil
	case "REAL":
		return New(REAL), nil
	case "DOUBLE":
		return New(DOUBLE), nil
	case "CHAR":
		return NewSized(CHAR, length), nil
	case "VARCHAR":
		return NewSized(VARCHAR, length), nil
	case "BINARY":
		return NewSized(BINARY, length), nil
	case "VARBINARY":
		return NewSized(VARBINARY, length), nil
	case "TIMESTAMP":
		return New(TIMESTAMP), nil
	case "POINT":
		return New(POINT), nil
	case "REGION":
		return New(REGIONTYPE), nil
	case "CLOB":
		return New(CLOB), nil
	case "BLOB":
		return New(BLOB), nil
	case "":
		return New(UNKNOWN), nil
	default:
		return Datatype{}, fmt.Errorf("unknown TAP_SCHEMA datatype %q", datatype)
	}
}
