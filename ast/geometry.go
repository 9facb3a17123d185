package ast

import "github.com/skyquery-adql/adql/token"

// GeometryKind is the geometry-function family a GeometryFunction node
// represents, per spec.md §3.3's enumerated list.
type GeometryKind int

const (
	GeomPoint GeometryKind = iota
	GeomCircle
	GeomBox
	GeomPolygon
	GeomRegion
	GeomCentroid
	GeomArea
	GeomDistance
	GeomContains
	GeomIntersects
	GeomCoord1
	GeomCoord2
	GeomCoordSys
)

func (k GeometryKind) String() string {
	return [...]string{"POINT", "CIRCLE", "BOX", "POLYGON", "REGION",
		"CENTROID", "AREA", "DISTANCE", "CONTAINS", "INTERSECTS",
		"COORD1", "COORD2", "COORDSYS"}[k]
}

// IsPredicate reports whether this geometry function yields a boolean
// (CONTAINS/INTERSECTS), as opposed to a geometry or numeric value.
func (k GeometryKind) IsPredicate() bool {
	return k == GeomContains || k == GeomIntersects
}

// GeometryFunction is a call to one of the geometry/region functions:
// POINT, CIRCLE, BOX, POLYGON, REGION (shape constructors), CENTROID,
// AREA, DISTANCE (geometry-valued/numeric-valued operators), CONTAINS,
// INTERSECTS (predicates), and the coordinate extractors COORD1/COORD2/
// COORDSYS. Args holds the call's operands (e.g. Circle: [ra, dec,
// radius]); for POINT/CIRCLE/BOX/POLYGON a leading string-literal
// coordinate system is moved to CoordSys instead. The parser does not
// check the argument count.
type GeometryFunction struct {
	StartPos token.Pos
	EndPos   token.Pos
	Kind     GeometryKind
	CoordSys Operand // optional leading string-literal coord-sys argument
	Args     []Operand

	// A CONTAINS/INTERSECTS call in boolean position (WHERE/HAVING/ON)
	// is wrapped in a GeometryPredicate (below) to satisfy ast.Constraint.
}

func (*GeometryFunction) operandNode()     {}
func (g *GeometryFunction) Pos() token.Pos { return g.StartPos }
func (g *GeometryFunction) End() token.Pos { return g.EndPos }
func (g *GeometryFunction) Children() []Node {
	var out []Node
	if g.CoordSys != nil {
		out = append(out, g.CoordSys)
	}
	for _, a := range g.Args {
		out = append(out, a)
	}
	return out
}

// GeometryPredicate wraps a CONTAINS/INTERSECTS GeometryFunction so it
// can appear directly in a Constraint position (WHERE/HAVING/ON),
// matching how the ADQL grammar treats these two functions as
// simultaneously operands and boolean predicates.
type GeometryPredicate struct {
	Func *GeometryFunction
}

func (*GeometryPredicate) constraintNode()     {}
func (g *GeometryPredicate) Pos() token.Pos    { return g.Func.Pos() }
func (g *GeometryPredicate) End() token.Pos    { return g.Func.End() }
func (g *GeometryPredicate) Children() []Node  { return []Node{g.Func} }
