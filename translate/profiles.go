package translate

import (
	"fmt"
	"strings"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/feature"
	"github.com/skyquery-adql/adql/token"
)

// PostgreSQL is plain PostgreSQL without the pgSphere extension: it has
// no native spherical-geometry type, so every ADQL geometry function is
// a TranslationException (spec's "null / no-op on plain PostgreSQL").
var PostgreSQL Dialect = &Profile{
	name:            "PostgreSQL",
	quote:           '"',
	reserved:        newReservedSet("returning", "window", "lateral"),
	supportsNatural: true,
	supportsUsing:   true,
	concatOperator:  "||",
	moduloStyle:     ModuloOperator,
	pagination:      PaginationLimitOffset,
	mathNames:       map[ast.MathFuncName]string{},
	geometry:        nil,
	features:        noGeometryFeatures(),
}

// PostgreSQLPgSphere is PostgreSQL with the pgSphere extension loaded:
// POINT/CIRCLE/POLYGON map to spoint/scircle/spoly constructors, and
// CONTAINS/INTERSECTS map to pgSphere's containment/overlap operators.
var PostgreSQLPgSphere Dialect = &Profile{
	name:            "PostgreSQLPgSphere",
	quote:           '"',
	reserved:        newReservedSet("returning", "window", "lateral"),
	supportsNatural: true,
	supportsUsing:   true,
	concatOperator:  "||",
	moduloStyle:     ModuloOperator,
	pagination:      PaginationLimitOffset,
	mathNames:       map[ast.MathFuncName]string{},
	geometry:        pgSphereGeometry,
	features:        fullFeatures(),
}

// SQLServer has no NATURAL/USING keywords (rewritten to explicit ON by
// the translator), uses `+` for concatenation, needs an explicit numeric
// CAST for modulo, and expresses pagination with OFFSET/FETCH.
var SQLServer Dialect = &Profile{
	name:            "SQLServer",
	quote:           '"', // bracket quoting [] is also legal; double-quote matches ANSI mode
	reserved:        newReservedSet("top", "identity", "output", "rowcount"),
	supportsNatural: false,
	supportsUsing:   false,
	concatOperator:  "+",
	moduloStyle:     ModuloConvertSQLServer,
	pagination:      PaginationTopOffsetFetch,
	mathNames:       map[ast.MathFuncName]string{},
	geometry:        nil,
	features:        noGeometryFeatures(),
}

// MySQL has no NATURAL JOIN rewriting need (it supports NATURAL and
// USING natively) but uses backtick quoting and LIMIT/OFFSET pagination.
var MySQL Dialect = &Profile{
	name:            "MySQL",
	quote:           '`',
	reserved:        newReservedSet("limit", "rlike", "match"),
	supportsNatural: true,
	supportsUsing:   true,
	concatOperator:  "||", // requires PIPES_AS_CONCAT sql_mode
	moduloStyle:     ModuloOperator,
	pagination:      PaginationLimitOffset,
	mathNames: map[ast.MathFuncName]string{
		"ceiling": "CEILING",
	},
	geometry: nil,
	features: noGeometryFeatures(),
}

// GenericJDBC is the fallback profile for a plain ANSI-SQL-ish JDBC
// target with no assumed extensions: conservative reserved-word set,
// LIMIT/OFFSET pagination, no native geometry.
var GenericJDBC Dialect = &Profile{
	name:            "GenericJDBC",
	quote:           '"',
	reserved:        newReservedSet(),
	supportsNatural: true,
	supportsUsing:   true,
	concatOperator:  "||",
	moduloStyle:     ModuloOperator,
	pagination:      PaginationLimitOffset,
	mathNames:       map[ast.MathFuncName]string{},
	geometry:        nil,
	features:        noGeometryFeatures(),
}

func noGeometryFeatures() *feature.Set {
	s := feature.NewDefault(token.V21)
	s.UnsupportAll(feature.TypeADQLGeo)
	return s
}

func fullFeatures() *feature.Set {
	return feature.NewDefault(token.V21)
}

// pgSphereGeometry renders POINT/CIRCLE/POLYGON as pgSphere constructors
// and CONTAINS/INTERSECTS as pgSphere's contained-by (@) and overlap (&&)
// operators; BOX has no pgSphere equivalent and is rejected.
func pgSphereGeometry(kind ast.GeometryKind, coordSys string, args []string) (string, error) {
	switch kind {
	case ast.GeomPoint:
		if len(args) != 2 {
			return "", fmt.Errorf("POINT expects 2 arguments, got %d", len(args))
		}
		return fmt.Sprintf("spoint(radians(%s), radians(%s))", args[0], args[1]), nil
	case ast.GeomCircle:
		if len(args) != 3 {
			return "", fmt.Errorf("CIRCLE expects 3 arguments, got %d", len(args))
		}
		return fmt.Sprintf("scircle(spoint(radians(%s), radians(%s)), radians(%s))", args[0], args[1], args[2]), nil
	case ast.GeomBox:
		return "", fmt.Errorf("pgSphere has no native box type; BOX cannot be translated")
	case ast.GeomPolygon:
		if len(args) < 6 || len(args)%2 != 0 {
			return "", fmt.Errorf("POLYGON expects an even number of coordinates >= 6, got %d", len(args))
		}
		var pts []string
		for i := 0; i+1 < len(args); i += 2 {
			pts = append(pts, fmt.Sprintf("spoint(radians(%s), radians(%s))", args[i], args[i+1]))
		}
		return fmt.Sprintf("spoly(ARRAY[%s])", strings.Join(pts, ", ")), nil
	case ast.GeomCentroid:
		if len(args) != 1 {
			return "", fmt.Errorf("CENTROID expects 1 argument, got %d", len(args))
		}
		return fmt.Sprintf("@@%s", args[0]), nil
	case ast.GeomArea:
		if len(args) != 1 {
			return "", fmt.Errorf("AREA expects 1 argument, got %d", len(args))
		}
		return fmt.Sprintf("area(%s)", args[0]), nil
	case ast.GeomDistance:
		if len(args) != 2 {
			return "", fmt.Errorf("DISTANCE expects 2 arguments, got %d", len(args))
		}
		return fmt.Sprintf("degrees(%s <-> %s)", args[0], args[1]), nil
	case ast.GeomContains:
		if len(args) != 2 {
			return "", fmt.Errorf("CONTAINS expects 2 arguments, got %d", len(args))
		}
		return fmt.Sprintf("(%s @ %s)", args[0], args[1]), nil
	case ast.GeomIntersects:
		if len(args) != 2 {
			return "", fmt.Errorf("INTERSECTS expects 2 arguments, got %d", len(args))
		}
		return fmt.Sprintf("(%s && %s)", args[0], args[1]), nil
	case ast.GeomCoord1:
		if len(args) != 1 {
			return "", fmt.Errorf("COORD1 expects 1 argument, got %d", len(args))
		}
		return fmt.Sprintf("degrees(long(%s))", args[0]), nil
	case ast.GeomCoord2:
		if len(args) != 1 {
			return "", fmt.Errorf("COORD2 expects 1 argument, got %d", len(args))
		}
		return fmt.Sprintf("degrees(lat(%s))", args[0]), nil
	default:
		return "", fmt.Errorf("%s has no pgSphere rendering", kind)
	}
}
