package region

import (
	"strconv"
	"strings"
)

// ParseDALI parses a DALI region literal: a pure whitespace-separated
// sequence of numerics whose length determines the shape — 2 →
// POSITION, 3 → CIRCLE, even length >= 6 → POLYGON (§4.5). DALI carries
// no coordinate system, so the result always uses DefaultCoordSys.
func ParseDALI(s string) (*Region, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, &ParseError{Message: "empty DALI region literal"}
	}
	nums := make([]float64, len(fields))
	for i, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{Message: "DALI region literal is not purely numeric: " + tok}
		}
		nums[i] = v
	}
	switch {
	case len(nums) == 2:
		return NewPosition(DefaultCoordSys, nums[0], nums[1]), nil
	case len(nums) == 3:
		return NewCircle(DefaultCoordSys, nums[0], nums[1], nums[2]), nil
	case len(nums) >= 6 && len(nums)%2 == 0:
		pts := make([]Point, 0, len(nums)/2)
		for i := 0; i+1 < len(nums); i += 2 {
			pts = append(pts, Point{nums[i], nums[i+1]})
		}
		return NewPolygon(DefaultCoordSys, pts), nil
	default:
		return nil, &ParseError{Message: "DALI region literal has an unsupported coordinate count"}
	}
}

// toDALI serialises a DALI-expressible region (POSITION, CIRCLE or
// POLYGON with the default coordinate system) as its bare numeric
// sequence.
func (r *Region) toDALI() string {
	var fields []string
	switch r.Type {
	case Position:
		fields = pointFields(r.Coordinates[0])
	case Circle:
		fields = append(pointFields(r.Coordinates[0]), formatFloat(*r.Radius))
	case Polygon:
		for _, pt := range r.Coordinates {
			fields = append(fields, pointFields(pt)...)
		}
	}
	return strings.Join(fields, " ")
}

func pointFields(p Point) []string {
	return []string{formatFloat(p.X), formatFloat(p.Y)}
}
