package metadata

// Kind enumerates the ADQL/TAP datatype tags.
type Kind int

const (
	BOOLEAN Kind = iota
	SMALLINT
	INTEGER
	BIGINT
	REAL
	DOUBLE
	CHAR
	VARCHAR
	BINARY
	VARBINARY
	TIMESTAMP
	POINT
	REGIONTYPE
	CLOB
	BLOB
	UNKNOWN
	UNKNOWN_NUMERIC
)

// Datatype is a column or operand's declared or inferred type, carrying
// a length for the parameterised char/binary kinds.
type Datatype struct {
	Kind   Kind
	Length int // meaningful for CHAR/VARCHAR/BINARY/VARBINARY, 0 otherwise
}

func New(k Kind) Datatype                  { return Datatype{Kind: k} }
func NewSized(k Kind, length int) Datatype { return Datatype{Kind: k, Length: length} }

// IsNumeric reports whether values of this type participate in arithmetic.
// UNKNOWN satisfies every capability demand, per the ADQL type-inference rule.
func (d Datatype) IsNumeric() bool {
	switch d.Kind {
	case SMALLINT, INTEGER, BIGINT, REAL, DOUBLE, UNKNOWN, UNKNOWN_NUMERIC:
		return true
	default:
		return false
	}
}

// IsString reports whether values of this type participate in string
// operators (||, LIKE, LOWER). UNKNOWN satisfies this too.
func (d Datatype) IsString() bool {
	switch d.Kind {
	case CHAR, VARCHAR, CLOB, UNKNOWN:
		return true
	default:
		return false
	}
}

// IsGeometry reports whether values of this type may feed a geometry
// predicate (CONTAINS, INTERSECTS, AREA, ...).
func (d Datatype) IsGeometry() bool {
	return d.Kind == POINT || d.Kind == REGIONTYPE
}

// IsBinary reports whether values of this type are raw byte strings.
func (d Datatype) IsBinary() bool {
	return d.Kind == BINARY || d.Kind == VARBINARY || d.Kind == BLOB
}

// Unknown is the capability-neutral type assigned to expressions the
// checker cannot otherwise classify (e.g. an accepted unresolved UDF).
var Unknown = Datatype{Kind: UNKNOWN}

// String renders the SQL-ish spelling of the datatype, used by error
// messages and TAP_SCHEMA round-tripping.
func (d Datatype) String() string {
	name, sized := kindNames[d.Kind]
	if !sized {
		name = "UNKNOWN"
	}
	switch d.Kind {
	case CHAR, VARCHAR, BINARY, VARBINARY:
		if d.Length > 0 {
			return name + "(" + itoa(d.Length) + ")"
		}
	}
	return name
}

var kindNames = map[Kind]string{
	BOOLEAN:         "BOOLEAN",
	SMALLINT:        "SMALLINT",
	INTEGER:         "INTEGER",
	BIGINT:          "BIGINT",
	REAL:            "REAL",
	DOUBLE:          "DOUBLE",
	CHAR:            "CHAR",
	VARCHAR:         "VARCHAR",
	BINARY:          "BINARY",
	VARBINARY:       "VARBINARY",
	TIMESTAMP:       "TIMESTAMP",
	POINT:           "POINT",
	REGIONTYPE:      "REGION",
	CLOB:            "CLOB",
	BLOB:            "BLOB",
	UNKNOWN:         "UNKNOWN",
	UNKNOWN_NUMERIC: "UNKNOWN_NUMERIC",
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
