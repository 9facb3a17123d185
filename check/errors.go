// Package check implements the semantic checker (component F):
// identifier resolution, type inference, join-column expansion, UDF
// resolution and feature gating over a parsed ast.QueryExpr.
package check

import (
	"fmt"
	"strings"

	"github.com/skyquery-adql/adql/token"
)

// Error is one semantic problem found while checking a query, carrying
// the source position of the offending node.
type Error struct {
	Pos     token.Pos
	Message string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

// Errors aggregates every Error found during a single Check call, so a
// caller can report all problems at once rather than stopping at the
// first (spec.md §7's UnresolvedIdentifiers-style aggregate).
type Errors struct {
	List []*Error
}

func (e *Errors) Error() string {
	parts := make([]string, len(e.List))
	for i, err := range e.List {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the individual errors for errors.Is/As and
// errors.Join-style inspection.
func (e *Errors) Unwrap() []error {
	out := make([]error, len(e.List))
	for i, err := range e.List {
		out[i] = err
	}
	return out
}

func (e *Errors) add(pos token.Pos, format string, args ...any) {
	e.List = append(e.List, &Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (e *Errors) errOrNil() error {
	if len(e.List) == 0 {
		return nil
	}
	return e
}
