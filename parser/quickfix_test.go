package parser

import (
	"testing"

	"github.com/skyquery-adql/adql/token"
)

func TestQuickFixDelimitsKeywordAfterDot(t *testing.T) {
	fixed, changed := QuickFix(`SELECT cat.point FROM mytable AS cat`, token.V21)
	if !changed {
		t.Fatalf("expected a rewrite")
	}
	want := `SELECT cat."point" FROM mytable AS cat`
	if fixed != want {
		t.Fatalf("got %q, want %q", fixed, want)
	}
}

func TestQuickFixDelimitsKeywordBeforeDot(t *testing.T) {
	fixed, changed := QuickFix(`SELECT region.ra FROM mytable AS region`, token.V21)
	if !changed {
		t.Fatalf("expected a rewrite")
	}
	want := `SELECT "region".ra FROM mytable AS region`
	if fixed != want {
		t.Fatalf("got %q, want %q", fixed, want)
	}
}

func TestQuickFixLeavesCleanQueryUnchanged(t *testing.T) {
	q := `SELECT ra, dec FROM mytable WHERE ra > 10`
	fixed, changed := QuickFix(q, token.V21)
	if changed {
		t.Fatalf("did not expect a rewrite, got %q", fixed)
	}
	if fixed != q {
		t.Fatalf("input should be returned verbatim when unchanged")
	}
}

func TestQuickFixResultParses(t *testing.T) {
	fixed, _ := QuickFix(`SELECT cat.point, cat.ra FROM mytable AS cat`, token.V21)
	p := New(fixed, token.V21)
	if _, err := p.Parse(); err != nil {
		t.Fatalf("quick-fixed query failed to parse: %v", err)
	}
}
