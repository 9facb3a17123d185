package region

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skyquery-adql/adql/ast"
)

// FromGeometryFunc builds a Region from a geometry-constructor AST node
// (POINT, CIRCLE, BOX, POLYGON, REGION), extracting numeric/string
// constants. It fails if fed a non-constructor kind or an argument that
// is not itself a constant, since a region literal must be statically
// known (§4.5's "AST bridge").
func FromGeometryFunc(g *ast.GeometryFunction) (*Region, error) {
	switch g.Kind {
	case ast.GeomPoint:
		x, y, err := xyArgs(g.Args)
		if err != nil {
			return nil, err
		}
		cs, err := coordSysArg(g.CoordSys)
		if err != nil {
			return nil, err
		}
		return NewPosition(cs, x, y), nil
	case ast.GeomCircle:
		x, y, radius, err := xyrArgs(g.Args)
		if err != nil {
			return nil, err
		}
		cs, err := coordSysArg(g.CoordSys)
		if err != nil {
			return nil, err
		}
		return NewCircle(cs, x, y, radius), nil
	case ast.GeomBox:
		if len(g.Args) != 4 {
			return nil, &ParseError{Message: "BOX requires exactly 4 numeric arguments"}
		}
		x, err := numArg(g.Args[0])
		if err != nil {
			return nil, err
		}
		y, err := numArg(g.Args[1])
		if err != nil {
			return nil, err
		}
		w, err := numArg(g.Args[2])
		if err != nil {
			return nil, err
		}
		h, err := numArg(g.Args[3])
		if err != nil {
			return nil, err
		}
		cs, err := coordSysArg(g.CoordSys)
		if err != nil {
			return nil, err
		}
		return NewBox(cs, x, y, w, h), nil
	case ast.GeomPolygon:
		if len(g.Args) < 6 || len(g.Args)%2 != 0 {
			return nil, &ParseError{Message: "POLYGON requires an even number >= 6 of numeric arguments"}
		}
		pts := make([]Point, 0, len(g.Args)/2)
		for i := 0; i+1 < len(g.Args); i += 2 {
			x, err := numArg(g.Args[i])
			if err != nil {
				return nil, err
			}
			y, err := numArg(g.Args[i+1])
			if err != nil {
				return nil, err
			}
			pts = append(pts, Point{x, y})
		}
		cs, err := coordSysArg(g.CoordSys)
		if err != nil {
			return nil, err
		}
		return NewPolygon(cs, pts), nil
	case ast.GeomRegion:
		if len(g.Args) != 1 {
			return nil, &ParseError{Message: "REGION requires exactly one string-literal argument"}
		}
		lit, ok := g.Args[0].(*ast.StringConstant)
		if !ok {
			return nil, &ParseError{Message: "REGION's argument must be a string literal, not an expression"}
		}
		return Parse(lit.Value)
	default:
		return nil, fmt.Errorf("region: %s is not a region-constructing geometry function", g.Kind)
	}
}

// ToGeometryFunc renders r back as the ADQL geometry-constructor call
// that would produce it: POINT/CIRCLE/BOX for the simple shapes, and
// REGION('<STC-S or DALI text>') for everything else (UNION,
// INTERSECTION, NOT, and any POLYGON, since POLYGON's own grammar takes
// no coordinate system argument in all dialects we translate to).
func ToGeometryFunc(r *Region) *ast.GeometryFunction {
	switch r.Type {
	case Position:
		return &ast.GeometryFunction{
			Kind:     ast.GeomPoint,
			CoordSys: coordSysOperand(r.CoordSys),
			Args:     []ast.Operand{numOperand(r.Coordinates[0].X), numOperand(r.Coordinates[0].Y)},
		}
	case Circle:
		return &ast.GeometryFunction{
			Kind:     ast.GeomCircle,
			CoordSys: coordSysOperand(r.CoordSys),
			Args:     []ast.Operand{numOperand(r.Coordinates[0].X), numOperand(r.Coordinates[0].Y), numOperand(*r.Radius)},
		}
	case Box:
		return &ast.GeometryFunction{
			Kind:     ast.GeomBox,
			CoordSys: coordSysOperand(r.CoordSys),
			Args: []ast.Operand{
				numOperand(r.Coordinates[0].X), numOperand(r.Coordinates[0].Y),
				numOperand(*r.Width), numOperand(*r.Height),
			},
		}
	default:
		return &ast.GeometryFunction{
			Kind: ast.GeomRegion,
			Args: []ast.Operand{&ast.StringConstant{Value: r.String()}},
		}
	}
}

func numArg(op ast.Operand) (float64, error) {
	switch v := op.(type) {
	case *ast.NumericConstant:
		return parseNumericText(v.Text)
	case *ast.Negative:
		inner, err := numArg(v.Operand)
		if err != nil {
			return 0, err
		}
		return -inner, nil
	case *ast.Wrapped:
		return numArg(v.Operand)
	default:
		return 0, &ParseError{Message: "region geometry argument must be a numeric constant"}
	}
}

func parseNumericText(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ParseError{Message: "malformed numeric literal " + text}
	}
	return v, nil
}

func xyArgs(args []ast.Operand) (x, y float64, err error) {
	if len(args) != 2 {
		return 0, 0, &ParseError{Message: "POINT requires exactly 2 numeric arguments"}
	}
	x, err = numArg(args[0])
	if err != nil {
		return 0, 0, err
	}
	y, err = numArg(args[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func xyrArgs(args []ast.Operand) (x, y, radius float64, err error) {
	if len(args) != 3 {
		return 0, 0, 0, &ParseError{Message: "CIRCLE requires exactly 3 numeric arguments"}
	}
	x, err = numArg(args[0])
	if err != nil {
		return 0, 0, 0, err
	}
	y, err = numArg(args[1])
	if err != nil {
		return 0, 0, 0, err
	}
	radius, err = numArg(args[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return x, y, radius, nil
}

// coordSysArg decodes the optional leading string-literal coordinate
// system argument geometry constructors accept (e.g. POINT('ICRS', ra, dec)).
func coordSysArg(op ast.Operand) (CoordSys, error) {
	if op == nil {
		return DefaultCoordSys, nil
	}
	lit, ok := op.(*ast.StringConstant)
	if !ok {
		return CoordSys{}, &ParseError{Message: "geometry coordinate system argument must be a string literal"}
	}
	if lit.Value == "" {
		return DefaultCoordSys, nil
	}
	p := &stcsParser{toks: tokenizeSTCS(lit.Value)}
	return p.parseCoordSys(), nil
}

func coordSysOperand(cs CoordSys) ast.Operand {
	if cs.IsDefault() {
		return nil
	}
	var sb strings.Builder
	writeCoordSys(&sb, cs)
	s := strings.TrimSpace(sb.String())
	if s == "" {
		return nil
	}
	return &ast.StringConstant{Value: s}
}

func numOperand(v float64) ast.Operand {
	return &ast.NumericConstant{Text: formatFloat(v)}
}
