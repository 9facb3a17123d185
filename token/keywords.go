package token

// Version selects which ADQL grammar generation a keyword table or parser targets.
type Version int

const (
	V20 Version = iota
	V21
)

// v21Only holds the keywords introduced by ADQL 2.1 (WITH for CTEs,
// OFFSET, IN_UNIT, LOWER). In ADQL 2.0 these words are regular
// identifiers.
var v21Only = map[string]Token{
	"with":    WITH,
	"offset":  OFFSET,
	"in_unit": IN_UNIT,
	"lower":   LOWER,
}

// keywords maps lowercase keyword text to its token, for ADQL 2.0. 2.1
// adds v21Only on top of this set (see Keywords).
var keywords = map[string]Token{
	"select":     SELECT,
	"top":        TOP,
	"all":        ALL,
	"distinct":   DISTINCT,
	"as":         AS,
	"from":       FROM,
	"join":       JOIN,
	"inner":      INNER,
	"left":       LEFT,
	"right":      RIGHT,
	"full":       FULL,
	"outer":      OUTER,
	"cross":      CROSS,
	"natural":    NATURAL,
	"on":         ON,
	"using":      USING,
	"where":      WHERE,
	"group":      GROUP,
	"by":         BY,
	"having":     HAVING,
	"order":      ORDER,
	"asc":        ASC,
	"desc":       DESC,
	"union":      UNION,
	"intersect":  INTERSECT,
	"except":     EXCEPT,
	"and":        AND,
	"or":         OR,
	"not":        NOT,
	"between":    BETWEEN,
	"in":         IN,
	"like":       LIKE,
	"ilike":      ILIKE,
	"is":         IS,
	"null":       NULL,
	"exists":     EXISTS,
	"true":       TRUE,
	"false":      FALSE,
	"count":      COUNT,
	"sum":        SUM,
	"avg":        AVG,
	"min":        MIN,
	"max":        MAX,
	"point":      POINT,
	"circle":     CIRCLE,
	"box":        BOX,
	"polygon":    POLYGON,
	"region":     REGION,
	"centroid":   CENTROID,
	"area":       AREA,
	"distance":   DISTANCE,
	"contains":   CONTAINS,
	"intersects": INTERSECTS,
	"coord1":     COORD1,
	"coord2":     COORD2,
	"coordsys":   COORDSYS,
}

// Keywords returns the keyword table active for the given ADQL version.
// The map is built once per call; lexers built from Keywords(v) own their
// table and never mutate the package-level ones.
func Keywords(v Version) map[string]Token {
	if v == V20 {
		out := make(map[string]Token, len(keywords))
		for k, t := range keywords {
			out[k] = t
		}
		return out
	}
	out := make(map[string]Token, len(keywords)+len(v21Only))
	for k, t := range keywords {
		out[k] = t
	}
	for k, t := range v21Only {
		out[k] = t
	}
	return out
}

// Lookup returns the keyword token for ident, and whether it is one, for
// the given version's reserved-word set.
func Lookup(ident string, v Version) (Token, bool) {
	lower := toLower(ident)
	if t, ok := keywords[lower]; ok {
		return t, true
	}
	if v == V21 {
		if t, ok := v21Only[lower]; ok {
			return t, true
		}
	}
	return IDENT, false
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
