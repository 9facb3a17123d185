package region

import (
	"strconv"
	"strings"
)

// ParseSTCS parses an STC-S region literal: `<shape> <coord-sys>? <operands...>`,
// with UNION/INTERSECTION wrapping `(region region ...)` and NOT wrapping
// a single parenthesised region with no coordinate system (§4.5).
func ParseSTCS(s string) (*Region, error) {
	p := &stcsParser{toks: tokenizeSTCS(s), input: s}
	r, err := p.parseRegion()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.toks) {
		return nil, &ParseError{Message: "unexpected trailing text after region"}
	}
	return r, nil
}

type stcsParser struct {
	toks  []string
	pos   int
	input string
}

func tokenizeSTCS(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func (p *stcsParser) skipSpace() {}

func (p *stcsParser) peek() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	return p.toks[p.pos], true
}

func (p *stcsParser) next() (string, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *stcsParser) parseRegion() (*Region, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &ParseError{Message: "expected region shape keyword, got end of input"}
	}
	switch strings.ToUpper(tok) {
	case "POSITION":
		cs := p.parseCoordSys()
		x, y, err := p.parseXY()
		if err != nil {
			return nil, err
		}
		return NewPosition(cs, x, y), nil
	case "CIRCLE":
		cs := p.parseCoordSys()
		x, y, err := p.parseXY()
		if err != nil {
			return nil, err
		}
		radius, err := p.parseFloat()
		if err != nil {
			return nil, err
		}
		return NewCircle(cs, x, y, radius), nil
	case "BOX":
		cs := p.parseCoordSys()
		x, y, err := p.parseXY()
		if err != nil {
			return nil, err
		}
		w, err := p.parseFloat()
		if err != nil {
			return nil, err
		}
		h, err := p.parseFloat()
		if err != nil {
			return nil, err
		}
		return NewBox(cs, x, y, w, h), nil
	case "POLYGON":
		cs := p.parseCoordSys()
		var pts []Point
		for {
			if _, ok := p.peek(); !ok {
				break
			}
			if isKeyword(p.toks[p.pos]) {
				break
			}
			x, y, err := p.parseXY()
			if err != nil {
				return nil, err
			}
			pts = append(pts, Point{x, y})
		}
		if len(pts) < 3 {
			return nil, &ParseError{Message: "POLYGON requires at least 3 vertices"}
		}
		return NewPolygon(cs, pts), nil
	case "UNION", "INTERSECTION":
		cs := p.parseCoordSys()
		if t, _ := p.next(); t != "(" {
			return nil, &ParseError{Message: "expected '(' after " + tok}
		}
		var children []*Region
		for {
			if t, ok := p.peek(); ok && t == ")" {
				p.next()
				break
			}
			child, err := p.parseRegion()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		kind := Union
		if strings.ToUpper(tok) == "INTERSECTION" {
			kind = Intersection
		}
		return &Region{Type: kind, CoordSys: cs, Children: children}, nil
	case "NOT":
		if t, _ := p.next(); t != "(" {
			return nil, &ParseError{Message: "expected '(' after NOT"}
		}
		child, err := p.parseRegion()
		if err != nil {
			return nil, err
		}
		if t, _ := p.next(); t != ")" {
			return nil, &ParseError{Message: "expected ')' to close NOT"}
		}
		return &Region{Type: Not, Children: []*Region{child}}, nil
	default:
		return nil, &ParseError{Message: "unrecognised region shape keyword " + tok}
	}
}

var frameWords = map[string]bool{"ICRS": true, "FK4": true, "FK5": true, "GALACTIC": true, "UNKNOWNFRAME": true}
var refposWords = map[string]bool{"TOPOCENTER": true, "GEOCENTER": true, "BARYCENTER": true, "HELIOCENTER": true, "UNKNOWNREFPOS": true}
var flavorWords = map[string]bool{"SPHERICAL2": true, "CARTESIAN2": true, "CARTESIAN3": true}

func isKeyword(tok string) bool {
	up := strings.ToUpper(tok)
	switch up {
	case "POSITION", "CIRCLE", "BOX", "POLYGON", "UNION", "INTERSECTION", "NOT", "(", ")":
		return true
	}
	return frameWords[up] || refposWords[up] || flavorWords[up]
}

// parseCoordSys consumes zero or more of the (frame, refpos, flavor)
// tokens, matched case-insensitively against the fixed enumerations,
// applying defaults for whatever was not given (§4.5).
func (p *stcsParser) parseCoordSys() CoordSys {
	cs := DefaultCoordSys
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		up := strings.ToUpper(tok)
		switch {
		case frameWords[up]:
			cs.Frame = Frame(up)
			p.next()
		case refposWords[up]:
			cs.RefPos = RefPos(up)
			p.next()
		case flavorWords[up]:
			cs.Flavor = Flavor(up)
			p.next()
		default:
			return cs
		}
	}
	return cs
}

func (p *stcsParser) parseFloat() (float64, error) {
	tok, ok := p.next()
	if !ok {
		return 0, &ParseError{Message: "expected number, got end of input"}
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, &ParseError{Message: "expected number, got " + tok}
	}
	return v, nil
}

func (p *stcsParser) parseXY() (x, y float64, err error) {
	x, err = p.parseFloat()
	if err != nil {
		return 0, 0, err
	}
	y, err = p.parseFloat()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (r *Region) toSTCS() string {
	var sb strings.Builder
	r.writeSTCS(&sb)
	return sb.String()
}

func (r *Region) writeSTCS(sb *strings.Builder) {
	switch r.Type {
	case Position:
		sb.WriteString("POSITION ")
		writeCoordSys(sb, r.CoordSys)
		writePoint(sb, r.Coordinates[0])
	case Circle:
		sb.WriteString("CIRCLE ")
		writeCoordSys(sb, r.CoordSys)
		writePoint(sb, r.Coordinates[0])
		sb.WriteByte(' ')
		sb.WriteString(formatFloat(*r.Radius))
	case Box:
		sb.WriteString("BOX ")
		writeCoordSys(sb, r.CoordSys)
		writePoint(sb, r.Coordinates[0])
		sb.WriteByte(' ')
		sb.WriteString(formatFloat(*r.Width))
		sb.WriteByte(' ')
		sb.WriteString(formatFloat(*r.Height))
	case Polygon:
		sb.WriteString("POLYGON ")
		writeCoordSys(sb, r.CoordSys)
		for i, pt := range r.Coordinates {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writePoint(sb, pt)
		}
	case Union, Intersection:
		if r.Type == Union {
			sb.WriteString("UNION ")
		} else {
			sb.WriteString("INTERSECTION ")
		}
		writeCoordSys(sb, r.CoordSys)
		sb.WriteByte('(')
		for i, c := range r.Children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			c.writeSTCS(sb)
		}
		sb.WriteByte(')')
	case Not:
		sb.WriteString("NOT (")
		r.Children[0].writeSTCS(sb)
		sb.WriteByte(')')
	}
}

func writeCoordSys(sb *strings.Builder, cs CoordSys) {
	if cs.IsDefault() {
		return
	}
	parts := []string{}
	if cs.Frame != "" && cs.Frame != UnknownFrame {
		parts = append(parts, string(cs.Frame))
	}
	if cs.RefPos != "" && cs.RefPos != UnknownRefPos {
		parts = append(parts, string(cs.RefPos))
	}
	if cs.Flavor != "" && cs.Flavor != Spherical2 {
		parts = append(parts, string(cs.Flavor))
	}
	if len(parts) == 0 {
		return
	}
	sb.WriteString(strings.Join(parts, " "))
	sb.WriteByte(' ')
}

func writePoint(sb *strings.Builder, p Point) {
	sb.WriteString(formatFloat(p.X))
	sb.WriteByte(' ')
	sb.WriteString(formatFloat(p.Y))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
