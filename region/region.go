// Package region implements the STC-S and DALI region sub-languages
// (component C): parsing region literals, serialising them back to
// text, and bridging to/from ADQL geometry-function AST nodes.
package region

import "fmt"

// Kind is the shape a Region describes.
type Kind int

const (
	Position Kind = iota
	Circle
	Box
	Polygon
	Union
	Intersection
	Not
)

func (k Kind) String() string {
	return [...]string{"POSITION", "CIRCLE", "BOX", "POLYGON", "UNION", "INTERSECTION", "NOT"}[k]
}

// Frame, RefPos and Flavor are the three independent axes of an STC-S
// coordinate system, each defaulting per §4.5 when omitted.
type Frame string
type RefPos string
type Flavor string

const (
	UnknownFrame  Frame  = "UNKNOWNFRAME"
	UnknownRefPos RefPos = "UNKNOWNREFPOS"
	Spherical2    Flavor = "SPHERICAL2"
)

// CoordSys is the (frame, refpos, flavor) triple tagging a region,
// except NOT regions which carry none (§4.5).
type CoordSys struct {
	Frame  Frame
	RefPos RefPos
	Flavor Flavor
}

// DefaultCoordSys is the coordinate system assumed when none is given.
var DefaultCoordSys = CoordSys{Frame: UnknownFrame, RefPos: UnknownRefPos, Flavor: Spherical2}

// IsDefault reports whether cs equals the default, blank-component coordinate system.
func (cs CoordSys) IsDefault() bool { return cs == DefaultCoordSys || cs == (CoordSys{}) }

// Point is one (x, y) coordinate pair.
type Point struct{ X, Y float64 }

// Region is a parsed STC-S/DALI region literal.
type Region struct {
	Type        Kind
	CoordSys    CoordSys
	Coordinates []Point

	Radius *float64 // CIRCLE
	Width  *float64 // BOX
	Height *float64 // BOX

	Children []*Region // UNION / INTERSECTION (multiple) / NOT (exactly one)
}

func f(v float64) *float64 { return &v }

// NewPosition builds a POSITION region.
func NewPosition(cs CoordSys, x, y float64) *Region {
	return &Region{Type: Position, CoordSys: cs, Coordinates: []Point{{x, y}}}
}

// NewCircle builds a CIRCLE region.
func NewCircle(cs CoordSys, x, y, radius float64) *Region {
	return &Region{Type: Circle, CoordSys: cs, Coordinates: []Point{{x, y}}, Radius: f(radius)}
}

// NewBox builds a BOX region (centre x,y with full width/height).
func NewBox(cs CoordSys, x, y, width, height float64) *Region {
	return &Region{Type: Box, CoordSys: cs, Coordinates: []Point{{x, y}}, Width: f(width), Height: f(height)}
}

// NewPolygon builds a POLYGON region from its (x,y) vertex pairs.
func NewPolygon(cs CoordSys, pts []Point) *Region {
	return &Region{Type: Polygon, CoordSys: cs, Coordinates: pts}
}

// ParseError carries a malformed-literal message and byte-range, per §7.
type ParseError struct {
	Start, End int
	Message    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("region parse error at %d:%d: %s", e.Start, e.End, e.Message)
}

// Parse accepts either region grammar: DALI first, STC-S as fallback,
// per §4.5.
func Parse(s string) (*Region, error) {
	if r, err := ParseDALI(s); err == nil {
		return r, nil
	}
	return ParseSTCS(s)
}

// String serialises r: DALI when the shape is DALI-expressible (not
// UNION/INTERSECTION/NOT) and its coordinate system is the default,
// otherwise STC-S.
func (r *Region) String() string {
	if r.daliExpressible() && r.CoordSys.IsDefault() {
		return r.toDALI()
	}
	return r.toSTCS()
}

func (r *Region) daliExpressible() bool {
	switch r.Type {
	case Position, Circle, Polygon:
		return true
	default:
		return false
	}
}

// Equal reports structural equality modulo default coordinate systems,
// matching the round-trip property spec.md §8 requires.
func (r *Region) Equal(other *Region) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Type != other.Type {
		return false
	}
	if !coordSysEqual(r.CoordSys, other.CoordSys) {
		return false
	}
	if len(r.Coordinates) != len(other.Coordinates) {
		return false
	}
	for i := range r.Coordinates {
		if r.Coordinates[i] != other.Coordinates[i] {
			return false
		}
	}
	if !floatPtrEqual(r.Radius, other.Radius) || !floatPtrEqual(r.Width, other.Width) || !floatPtrEqual(r.Height, other.Height) {
		return false
	}
	if len(r.Children) != len(other.Children) {
		return false
	}
	for i := range r.Children {
		if !r.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

func coordSysEqual(a, b CoordSys) bool {
	norm := func(cs CoordSys) CoordSys {
		if cs.Frame == "" {
			cs.Frame = UnknownFrame
		}
		if cs.RefPos == "" {
			cs.RefPos = UnknownRefPos
		}
		if cs.Flavor == "" {
			cs.Flavor = Spherical2
		}
		return cs
	}
	return norm(a) == norm(b)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
