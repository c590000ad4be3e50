package ast

import "github.com/sergey-rogatin/compiler/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// ResolveState is the depth to which a declaration has been checked or
// emitted.  States only ever increase.
type ResolveState int

// Enumeration of resolve states.
const (
	Unresolved ResolveState = iota // Nothing has been done yet.
	Partial                        // Only the signature is known or emitted.
	Full                           // The whole declaration is known or emitted.
)

func (rs ResolveState) String() string {
	switch rs {
	case Unresolved:
		return "unresolved"
	case Partial:
		return "partial"
	case Full:
		return "full"
	}

	return "invalid"
}

// Decl represents a declaration: a named binding of a type and/or a value.
type Decl struct {
	ASTBase

	// The name of the declared symbol.
	Name string

	// The type of the declaration.  This is nil until it is either given
	// explicitly or inferred from the value.
	Type Type

	// The value of the declaration: either an Expr, a *Func or nil.
	Value Value

	// Whether the declaration is constant (declared with `::`).
	Const bool

	// How far the declaration has been checked and emitted.
	CheckState, EmitState ResolveState
}

// NewDecl creates a new unresolved declaration.
func NewDecl(span *report.TextSpan, name string, typ Type, value Value, isConst bool) *Decl {
	return &Decl{
		ASTBase: NewASTBaseOn(span),
		Name:    name,
		Type:    typ,
		Value:   value,
		Const:   isConst,
	}
}

// Value is the value of a declaration: an expression or a function body.
type Value interface {
	ASTNode

	valueNode()
}

// Func is a function with a body.
type Func struct {
	ASTBase

	// The signature of the function.
	Type *FuncType

	// The body of the function.
	Body *Block

	// The scope containing the function's parameters.  It is created when the
	// function's signature is resolved.
	Scope *Scope
}

func (*Func) valueNode() {}

// FuncOf returns the function body of the declaration if it has one.
func (d *Decl) FuncOf() (*Func, bool) {
	fn, ok := d.Value.(*Func)
	return fn, ok
}

// TypeValueOf returns the type a declaration's value denotes if the value is a
// type expression.
func (d *Decl) TypeValueOf() (Type, bool) {
	if expr, ok := d.Value.(Expr); ok {
		if tv, ok := Resolved(expr).(*TypeValue); ok {
			return tv.Value, true
		}
	}

	return nil, false
}

// IsStructDef returns whether the declaration's value is a struct type literal.
func (d *Decl) IsStructDef() bool {
	if tv, ok := d.Value.(*TypeValue); ok {
		_, ok := tv.Value.(*StructType)
		return ok
	}

	return false
}

// IsEnumDef returns whether the declaration's value is an enum type literal.
func (d *Decl) IsEnumDef() bool {
	if tv, ok := d.Value.(*TypeValue); ok {
		_, ok := tv.Value.(*EnumType)
		return ok
	}

	return false
}
