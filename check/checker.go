package check

import (
	"strings"

	"github.com/skyquery-adql/adql/ast"
	"github.com/skyquery-adql/adql/feature"
	"github.com/skyquery-adql/adql/metadata"
	"github.com/skyquery-adql/adql/token"
)

// Checker resolves identifiers, infers types and gates optional
// features over a parsed query, against a fixed catalogue and UDF
// registry.
type Checker struct {
	Schemas  []*metadata.Schema
	UDFs     []*metadata.FunctionDef
	Features *feature.Set
	Version  token.Version

	// AllowAnyUDF, when true, lets a call to an unregistered UDF name
	// (or one with no matching signature) through as a default-typed
	// call instead of a resolution error, per spec.md §4.3 item 5.
	AllowAnyUDF bool
}

// New builds a Checker. features may be nil, in which case
// feature.NewDefault(version) is used (everything the version allows).
func New(schemas []*metadata.Schema, udfs []*metadata.FunctionDef, features *feature.Set, version token.Version) *Checker {
	if features == nil {
		features = feature.NewDefault(version)
	}
	return &Checker{Schemas: schemas, UDFs: udfs, Features: features, Version: version}
}

// Check resolves and validates q in place (filling every Resolved field
// reachable from it) and returns nil, or a *Errors aggregate of every
// problem found.
func (c *Checker) Check(q ast.QueryExpr) error {
	errs := &Errors{}
	c.checkQueryExpr(q, nil, errs)
	return errs.errOrNil()
}

func (c *Checker) checkQueryExpr(q ast.QueryExpr, parent *scope, errs *Errors) *scope {
	switch n := q.(type) {
	case *ast.Query:
		return c.checkQuery(n, parent, errs)
	case *ast.SetOperation:
		return c.checkSetOperation(n, parent, errs)
	default:
		errs.add(q.Pos(), "unsupported query expression type")
		return newScope(parent)
	}
}

func (c *Checker) checkSetOperation(s *ast.SetOperation, parent *scope, errs *Errors) *scope {
	if !c.Features.IsSupporting(feature.SetOps) {
		errs.add(s.Pos(), "UNION/INTERSECT/EXCEPT is not a supported feature")
	}
	left := c.checkQueryExpr(s.Left, parent, errs)
	right := c.checkQueryExpr(s.Right, parent, errs)
	if len(left.columns) != len(right.columns) {
		errs.add(s.Pos(), "%s operands must select the same number of columns", s.Kind)
	}
	return left
}

func (c *Checker) checkQuery(q *ast.Query, parent *scope, errs *Errors) *scope {
	if len(q.With) > 0 && !c.Features.IsSupporting(feature.CTEs) {
		errs.add(q.Pos(), "WITH (common table expressions) is not a supported feature")
	}
	cteScope := newScope(parent)
	for _, w := range q.With {
		innerScope := c.checkQueryExpr(w.Query, cteScope, errs)
		tbl := &metadata.Table{
			Identifier: metadata.NewIdentifier(w.Label.ADQLName, w.Label.ADQLCaseSensitive),
			IsCTE:      true,
			Columns:    append([]*metadata.Column(nil), innerScope.columns...),
		}
		for _, col := range tbl.Columns {
			col.Table = tbl
		}
		cteScope.addTable(w.Label.ADQLName, w.Label.ADQLCaseSensitive, tbl)
	}

	fromScope := newScope(cteScope)
	if q.From != nil {
		c.resolveFromContent(q.From, fromScope, errs)
	}

	for i := range q.Select {
		c.resolveSelectItem(&q.Select[i], fromScope, errs)
	}

	if q.Where != nil {
		c.resolveConstraint(q.Where, fromScope, errs)
	}
	for _, g := range q.GroupBy {
		c.resolveOperand(g, fromScope, errs)
	}
	if q.Having != nil {
		c.resolveConstraint(q.Having, fromScope, errs)
	}
	for _, o := range q.OrderBy {
		c.resolveOrder(o, q, fromScope, errs)
	}

	if q.Offset != nil && !c.Features.IsSupporting(feature.OffsetCl) {
		errs.add(q.Pos(), "OFFSET is not a supported feature")
	}

	c.checkFeatureUsage(q, fromScope, errs)

	result := newScope(parent)
	result.addColumns(selectResultColumns(q))
	return result
}

// selectResultColumns flattens a query's SELECT list into the column
// set an enclosing FROM/CTE sees it as, in SELECT order. Each column is
// copied so that re-hosting it under a synthetic CTE/subquery table (by
// mutating its Table back-reference) never corrupts the catalogue
// column a "SELECT *" item may have reused directly.
func selectResultColumns(q *ast.Query) []*metadata.Column {
	var out []*metadata.Column
	for _, item := range q.Select {
		for _, col := range item.Resolved {
			cp := *col
			out = append(out, &cp)
		}
	}
	return out
}

func (c *Checker) resolveOrder(o *ast.Order, q *ast.Query, sc *scope, errs *Errors) {
	if o.Position > 0 {
		if o.Position > len(q.Select) {
			errs.add(o.Pos(), "ORDER BY position %d is out of range for a %d-item select list", o.Position, len(q.Select))
		}
		return
	}
	if o.Expr == nil {
		return
	}
	if ref, ok := o.Expr.(*ast.ColumnReference); ok && len(ref.Parts) == 1 {
		for _, item := range q.Select {
			if item.EffectiveAlias() != "" && identEqualName(item.EffectiveAlias(), false, ref.Name(), ref.NameCaseSensitive()) {
				return
			}
		}
	}
	c.resolveOperand(o.Expr, sc, errs)
}

// checkFeatureUsage walks the whole query looking for constructs gated
// by the feature registry that resolution itself does not already
// cover (geometry functions, ILIKE, LOWER, IN_UNIT). UDF calls are
// gated by resolveUDF, which resolveOperand already runs.
func (c *Checker) checkFeatureUsage(q *ast.Query, sc *scope, errs *Errors) {
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		switch v := n.(type) {
		case *ast.GeometryFunction:
			if f, ok := geometryFeature(v.Kind); ok && !c.Features.IsSupporting(f) {
				errs.add(v.Pos(), "%s is not a supported feature", v.Kind)
			}
		case *ast.Like:
			if v.ILike && !c.Features.IsSupporting(feature.ILike) {
				errs.add(v.Pos(), "ILIKE is not a supported feature")
			}
		case *ast.LowerFunction:
			if !c.Features.IsSupporting(feature.Lower) {
				errs.add(v.Pos(), "LOWER is not a supported feature")
			}
		case *ast.InUnitFunction:
			if !c.Features.IsSupporting(feature.InUnit) {
				errs.add(v.Pos(), "IN_UNIT is not a supported feature")
			}
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	for _, item := range q.Select {
		walk(item.Expr)
	}
	walk(q.Where)
	for _, g := range q.GroupBy {
		walk(g)
	}
	walk(q.Having)
	for _, o := range q.OrderBy {
		walk(o.Expr)
	}
}

func geometryFeature(k ast.GeometryKind) (feature.Feature, bool) {
	switch k {
	case ast.GeomPoint:
		return feature.Point, true
	case ast.GeomCircle:
		return feature.Circle, true
	case ast.GeomBox:
		return feature.Box, true
	case ast.GeomPolygon:
		return feature.Polygon, true
	case ast.GeomRegion:
		return feature.RegionFn, true
	case ast.GeomCentroid:
		return feature.Centroid, true
	case ast.GeomArea:
		return feature.AreaFn, true
	case ast.GeomDistance:
		return feature.DistanceFn, true
	case ast.GeomContains:
		return feature.Contains, true
	case ast.GeomIntersects:
		return feature.Intersects, true
	case ast.GeomCoord1:
		return feature.Coord1, true
	case ast.GeomCoord2:
		return feature.Coord2, true
	case ast.GeomCoordSys:
		return feature.CoordSys, true
	default:
		return feature.Feature{}, false
	}
}

func (c *Checker) resolveUDF(u *ast.UserDefinedFunction, sc *scope, errs *Errors) {
	args := make([]metadata.Datatype, len(u.Args))
	for i, a := range u.Args {
		args[i] = c.resolveOperand(a, sc, errs)
	}

	var matches []*metadata.FunctionDef
	for _, def := range c.UDFs {
		if def.Name == u.Name && def.Accepts(args) {
			matches = append(matches, def)
		}
	}

	switch len(matches) {
	case 0:
		if c.AllowAnyUDF {
			// u.Resolved stays nil: resolveOperand's *ast.UserDefinedFunction
			// case already falls back to metadata.Unknown, whose
			// numeric-and-string capability is exactly the "default-typed"
			// contract this toggle promises.
			return
		}
		errs.add(u.Pos(), "no matching signature for user-defined function %s", u.Name)
		return
	case 1:
		// fall through
	default:
		sigs := make([]string, len(matches))
		for i, def := range matches {
			sigs[i] = signatureOf(def)
		}
		errs.add(u.Pos(), "ambiguous call to user-defined function %s matches more than one signature: %s", u.Name, strings.Join(sigs, ", "))
		return
	}

	def := matches[0]
	if !c.Features.IsSupporting(feature.UDFFeature(signatureOf(def))) {
		errs.add(u.Pos(), "user-defined function %s is not a registered feature", u.Name)
	}
	u.Resolved = def

	if def.Constructor != nil {
		rawArgs := make([]any, len(u.Args))
		for i, a := range u.Args {
			rawArgs[i] = a
		}
		built, err := def.Constructor(rawArgs)
		if err != nil {
			errs.add(u.Pos(), "constructor for user-defined function %s failed: %v", u.Name, err)
			return
		}
		if op, ok := built.(ast.Operand); ok {
			u.Constructed = op
		}
	}
}

func signatureOf(def *metadata.FunctionDef) string {
	sig := def.Name + "("
	for i, p := range def.Params {
		if i > 0 {
			sig += ","
		}
		sig += p.Type.String()
	}
	sig += ")"
	return sig
}
