// Package metadata describes the astronomical database a query is
// checked against: catalogues, schemas, tables, columns, datatypes and
// user-defined-function signatures (component A of the ADQL engine).
package metadata

import "strings"

// Identifier is the (adqlName, adqlCaseSensitive, dbName) triple every
// named entity carries, per the ADQL identifier model: dbName defaults
// to adqlName when unset, and ADQL-side comparison is case-insensitive
// unless either side was declared case-sensitive (delimited at
// declaration).
type Identifier struct {
	ADQLName          string
	ADQLCaseSensitive bool
	dbName            string // empty means "same as ADQLName"; use DBName()
}

// NewIdentifier builds an Identifier with dbName defaulting to adqlName.
func NewIdentifier(adqlName string, caseSensitive bool) Identifier {
	return Identifier{ADQLName: adqlName, ADQLCaseSensitive: caseSensitive}
}

// NewIdentifierWithDB builds an Identifier with an explicit database-side
// name override, honoring a TAP_SCHEMA db_name column.
func NewIdentifierWithDB(adqlName string, caseSensitive bool, dbName string) Identifier {
	return Identifier{ADQLName: adqlName, ADQLCaseSensitive: caseSensitive, dbName: dbName}
}

// DBName returns the database-side name, defaulting to ADQLName.
func (id Identifier) DBName() string {
	if id.dbName == "" {
		return id.ADQLName
	}
	return id.dbName
}

// Equal reports whether id and other denote the same name under ADQL's
// comparison rule: case-insensitive unless either side is case-sensitive.
func (id Identifier) Equal(other Identifier) bool {
	if id.ADQLCaseSensitive || other.ADQLCaseSensitive {
		return id.ADQLName == other.ADQLName
	}
	return strings.EqualFold(id.ADQLName, other.ADQLName)
}

// EqualName reports whether id denotes name, applying id's own
// case-sensitivity (used when matching a bare name parsed from a query
// against a catalogue identifier that may or may not be delimited).
func (id Identifier) EqualName(name string, nameCaseSensitive bool) bool {
	if id.ADQLCaseSensitive || nameCaseSensitive {
		return id.ADQLName == name
	}
	return strings.EqualFold(id.ADQLName, name)
}
