package ast

import "github.com/sergey-rogatin/compiler/report"

// Expr represents an expression.  It is a closed sum over the expression
// nodes defined below.
type Expr interface {
	Value

	// Type is the resolved type of the expression.  It is nil until the
	// expression is resolved.
	Type() Type

	// SetType sets the resolved type of the expression.
	SetType(Type)

	base() *ExprBase
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	ASTBase

	typ Type

	// The node this expression was resolved into if resolution gave it a
	// different shape: eg. a name denoting a type resolves to a TypeValue.
	rewrite Expr
}

// NewExprBase creates a new expression base over the given span.
func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span)}
}

func (eb *ExprBase) Type() Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ Type) {
	eb.typ = typ
}

func (eb *ExprBase) base() *ExprBase {
	return eb
}

func (*ExprBase) valueNode() {}

// Rewrite records that the parsed expression `from` resolved into the
// expression `to`.  The parsed node itself is left unchanged.
func Rewrite(from, to Expr) {
	from.base().rewrite = to
}

// Resolved returns the node an expression was resolved into: either the
// expression itself or the node recorded by Rewrite.
func Resolved(expr Expr) Expr {
	for {
		next := expr.base().rewrite
		if next == nil {
			return expr
		}

		expr = next
	}
}

// -----------------------------------------------------------------------------

// Name is a reference to a named symbol.
type Name struct {
	ExprBase

	Name string

	// The declaration the name refers to: set during resolution.
	Decl *Decl
}

// IntLit is an integer literal.
type IntLit struct {
	ExprBase

	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	ExprBase

	Value float64
}

// StringLit is a string literal.
type StringLit struct {
	ExprBase

	// The text of the literal as it appears between the quotes (escape
	// sequences intact).
	Text string

	// The length in bytes of the decoded string.
	Len int
}

// Unary is a unary operator application.
type Unary struct {
	ExprBase

	Op      Op
	Operand Expr
}

// Binary is a binary operator application including member access and
// subscripting.
type Binary struct {
	ExprBase

	Op          Op
	Left, Right Expr

	// Whether this member access names an enum constant: set during
	// resolution.
	EnumMember bool
}

// Call is a function call.  A call whose callee denotes a type is resolved
// into a Cast.
type Call struct {
	ExprBase

	Callee Expr
	Args   []Expr

	// Whether the implicit context argument has been appended.
	HasContext bool
}

// Cast is a type cast.
type Cast struct {
	ExprBase

	CastType Type
	Operand  Expr
}

// TypeValue is a type used as a value: eg. the value of a type definition.
type TypeValue struct {
	ExprBase

	Value Type
}

// NewName creates a new name expression.
func NewName(span *report.TextSpan, name string) *Name {
	return &Name{ExprBase: NewExprBase(span), Name: name}
}

// NewTypeValue creates a new type value expression.
func NewTypeValue(span *report.TextSpan, typ Type) *TypeValue {
	return &TypeValue{ExprBase: NewExprBase(span), Value: typ}
}
