package feature

import "github.com/skyquery-adql/adql/token"

// Set tracks which optional features are currently enabled. It is read
// by the parser (to reject syntactically valid but disabled constructs),
// by the checker (to emit unsupported-feature errors), and by
// translators (to decide what needs rewriting).
type Set struct {
	enabled map[Feature]bool
}

// NewEmpty returns a FeatureSet with nothing enabled.
func NewEmpty() *Set { return &Set{enabled: map[Feature]bool{}} }

// NewDefault returns the "all optional features supported" FeatureSet for
// the given ADQL version: every geometry function, plus (for 2.1) ILIKE,
// LOWER, set operations, CTEs, OFFSET and IN_UNIT.
func NewDefault(v token.Version) *Set {
	s := NewEmpty()
	s.SupportAll()
	if v == token.V20 {
		for _, f := range allV21 {
			s.Unsupport(f)
		}
	}
	return s
}

// Support enables f.
func (s *Set) Support(f Feature) { s.enabled[f] = true }

// Unsupport disables f.
func (s *Set) Unsupport(f Feature) { delete(s.enabled, f) }

// UnsupportAll disables every currently-enabled feature of the given type.
func (s *Set) UnsupportAll(t Type) {
	for f := range s.enabled {
		if f.Type == t {
			delete(s.enabled, f)
		}
	}
}

// SupportAll enables every known built-in feature (all geometry
// functions plus all ADQL 2.1 additions); UDF features are registered
// separately via RegisterUDF as signatures are declared.
func (s *Set) SupportAll() {
	for _, f := range allGeometry {
		s.Support(f)
	}
	for _, f := range allV21 {
		s.Support(f)
	}
}

// IsSupporting reports whether f is currently enabled.
func (s *Set) IsSupporting(f Feature) bool { return s.enabled[f] }

// Features returns every currently-enabled feature, in no particular order.
func (s *Set) Features() []Feature {
	out := make([]Feature, 0, len(s.enabled))
	for f := range s.enabled {
		out = append(out, f)
	}
	return out
}

// RegisterUDF enables the feature instance a declared UDF signature
// registers, so that feature-gating treats "call this named UDF" as an
// optional construct like any other.
func (s *Set) RegisterUDF(signature string) { s.Support(UDFFeature(signature)) }
