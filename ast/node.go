// Package ast defines the abstract syntax tree produced by the ADQL parser.
package ast

import "github.com/skyquery-adql/adql/token"

// Node is the base interface every AST node implements: a source range
// plus uniform child iteration, matching the teacher's Node contract.
type Node interface {
	Pos() token.Pos
	End() token.Pos
	// Children returns this node's direct children in document order.
	// Implementations return a fresh slice; callers may not assume aliasing.
	Children() []Node
}

// Cloner is implemented by nodes that support "copy" cloning. Only
// *Query implements it: its clone has its own clause slices, but the
// child nodes in them are shared with the original.
type Cloner interface {
	Clone() Node
}

// Operand is any value-producing ADQL expression: column references,
// constants, arithmetic, functions, and geometry functions.
type Operand interface {
	Node
	operandNode()
}

// Constraint is any boolean-valued ADQL predicate appearing in WHERE/HAVING/ON.
type Constraint interface {
	Node
	constraintNode()
}

// FromContent is a FROM-clause item: a table reference or a join.
type FromContent interface {
	Node
	fromContentNode()
}
