// Package feature implements the registry of optional ADQL language
// features (component D): geometry functions, ILIKE, set operations,
// OFFSET, CTEs, LOWER, IN_UNIT, and per-name UDF gating.
package feature

// Type tags a feature by the kind of construct it gates.
type Type string

const (
	TypeADQLGeo   Type = "ivo://ivoa.net/std/TAPRegExt#features-adqlgeo"
	TypeUDF       Type = "ivo://ivoa.net/std/TAPRegExt#features-udf"
	TypeSetOp     Type = "ivo://ivoa.net/std/TAPRegExt#features-adql-set-op"
	TypeCTE       Type = "ivo://ivoa.net/std/TAPRegExt#features-adql-cte"
	TypeOffset    Type = "ivo://ivoa.net/std/TAPRegExt#features-adql-offset"
	TypeString    Type = "ivo://ivoa.net/std/TAPRegExt#features-adql-string"
	TypeUnit      Type = "ivo://ivoa.net/std/TAPRegExt#features-adql-unit"
)

// Feature is one optional construct a dialect or FeatureSet may or may
// not support, identified by a type tag and an opaque name (the geometry
// function name, the UDF signature text, etc).
type Feature struct {
	Type Type
	Name string
}

func New(t Type, name string) Feature { return Feature{Type: t, Name: name} }

// Named optional-feature instances, matching spec.md §3.3/§4.1's
// enumerated geometry functions and ADQL 2.1 additions.
var (
	Point      = New(TypeADQLGeo, "POINT")
	Circle     = New(TypeADQLGeo, "CIRCLE")
	Box        = New(TypeADQLGeo, "BOX")
	Polygon    = New(TypeADQLGeo, "POLYGON")
	RegionFn   = New(TypeADQLGeo, "REGION")
	Centroid   = New(TypeADQLGeo, "CENTROID")
	AreaFn     = New(TypeADQLGeo, "AREA")
	DistanceFn = New(TypeADQLGeo, "DISTANCE")
	Contains   = New(TypeADQLGeo, "CONTAINS")
	Intersects = New(TypeADQLGeo, "INTERSECTS")
	Coord1     = New(TypeADQLGeo, "COORD1")
	Coord2     = New(TypeADQLGeo, "COORD2")
	CoordSys   = New(TypeADQLGeo, "COORDSYS")

	ILike     = New(TypeString, "ILIKE")
	Lower     = New(TypeString, "LOWER")
	SetOps    = New(TypeSetOp, "UNION_INTERSECT_EXCEPT")
	CTEs      = New(TypeCTE, "WITH")
	OffsetCl  = New(TypeOffset, "OFFSET")
	InUnit    = New(TypeUnit, "IN_UNIT")
)

// allGeometry lists every optional geometry feature, for SupportAll/NewDefault.
var allGeometry = []Feature{Point, Circle, Box, Polygon, RegionFn, Centroid,
	AreaFn, DistanceFn, Contains, Intersects, Coord1, Coord2, CoordSys}

// allV21 lists the features ADQL 2.1 adds beyond ADQL 2.0's geometry set.
var allV21 = []Feature{ILike, Lower, SetOps, CTEs, OffsetCl, InUnit}

// UDFFeature builds the Feature a declared UDF signature registers,
// named by its canonical "name(TYPE,TYPE,...)" signature text.
func UDFFeature(signature string) Feature { return New(TypeUDF, signature) }
