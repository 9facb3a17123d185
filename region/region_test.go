package region

import (
	"testing"

	"github.com/skyquery-adql/adql/ast"
)

func TestParseSTCSCircle(t *testing.T) {
	r, err := Parse("CIRCLE ICRS 10 20 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Type != Circle {
		t.Fatalf("expected Circle, got %v", r.Type)
	}
	if r.Coordinates[0] != (Point{10, 20}) {
		t.Fatalf("expected (10,20), got %+v", r.Coordinates[0])
	}
	if r.Radius == nil || *r.Radius != 1 {
		t.Fatalf("expected radius 1, got %v", r.Radius)
	}
}

func TestParseDALIPolygon(t *testing.T) {
	r, err := Parse("10 20 30 40 50 60")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Type != Polygon {
		t.Fatalf("expected Polygon, got %v", r.Type)
	}
	if len(r.Coordinates) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(r.Coordinates))
	}
}

func TestParseInvalidRegionErrors(t *testing.T) {
	if _, err := Parse("NOTASHAPE 1 2 3"); err == nil {
		t.Fatalf("expected a parse error for an unrecognized shape keyword")
	}
}

func TestRegionRoundTripsThroughString(t *testing.T) {
	r := NewCircle(DefaultCoordSys, 10, 20, 1)
	text := r.String()
	reparsed, err := Parse(text)
	if err != nil {
		t.Fatalf("re-parsing %q: %v", text, err)
	}
	if !r.Equal(reparsed) {
		t.Fatalf("expected round-trip equality, got %+v vs %+v", r, reparsed)
	}
}

func TestFromGeometryFuncPoint(t *testing.T) {
	g := &ast.GeometryFunction{
		Kind: ast.GeomPoint,
		Args: []ast.Operand{&ast.NumericConstant{Text: "10"}, &ast.NumericConstant{Text: "20"}},
	}
	r, err := FromGeometryFunc(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Type != Position || r.Coordinates[0] != (Point{10, 20}) {
		t.Fatalf("unexpected region: %+v", r)
	}
}

func TestFromGeometryFuncRejectsNonConstantArgs(t *testing.T) {
	g := &ast.GeometryFunction{
		Kind: ast.GeomPoint,
		Args: []ast.Operand{&ast.ColumnReference{Parts: []string{"ra"}}, &ast.NumericConstant{Text: "20"}},
	}
	if _, err := FromGeometryFunc(g); err == nil {
		t.Fatalf("expected an error for a non-constant region argument")
	}
}

func TestToGeometryFuncPolygonFallsBackToRegionText(t *testing.T) {
	r := NewPolygon(DefaultCoordSys, []Point{{0, 0}, {1, 0}, {1, 1}})
	g := ToGeometryFunc(r)
	if g.Kind != ast.GeomRegion {
		t.Fatalf("expected POLYGON to fall back to a REGION literal, got %v", g.Kind)
	}
	lit, ok := g.Args[0].(*ast.StringConstant)
	if !ok {
		t.Fatalf("expected a string-literal argument, got %T", g.Args[0])
	}
	if _, err := Parse(lit.Value); err != nil {
		t.Fatalf("expected the fallback text to re-parse: %v", err)
	}
}

func TestCoordSysDefaults(t *testing.T) {
	r, err := Parse("CIRCLE 10 20 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.CoordSys.IsDefault() {
		t.Fatalf("expected default coordinate system, got %+v", r.CoordSys)
	}
}
