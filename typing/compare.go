// Package typing implements type equivalence.
//
// Equivalence is mixed nominal/structural.  Pointers and function signatures
// are compared structurally; aliases are compared by name only, so two
// different names are never equivalent even when they denote the same type.
//
// Struct, enum and array types are never compared: whether they should be
// equivalent by name or by shape is undecided, so any such comparison is
// reported as an UnsupportedTypeComparison error.  In practice struct and enum
// types are always referred to through aliases and so are compared
// nominally.
package typing

import (
	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// Equivalent returns whether two resolved types are equivalent.  Types of
// different kinds are never equivalent.  An error is returned if the types
// cannot be compared at all.
func Equivalent(a, b ast.Type) (bool, error) {
	if a == nil || b == nil {
		return false, report.Raise(report.InternalInvariantViolation, nil, "comparison of unresolved type")
	}

	switch at := a.(type) {
	case *ast.AliasType:
		if bt, ok := b.(*ast.AliasType); ok {
			return at.Name == bt.Name, nil
		}
	case *ast.PointerType:
		if bt, ok := b.(*ast.PointerType); ok {
			return Equivalent(at.Base, bt.Base)
		}
	case *ast.FuncType:
		if bt, ok := b.(*ast.FuncType); ok {
			return funcsEquivalent(at, bt)
		}
	case *ast.StructType, *ast.EnumType, *ast.ArrayType:
		if sameKind(a, b) {
			return false, report.Raise(
				report.UnsupportedTypeComparison,
				nil,
				"cannot compare %s with %s",
				a.Repr(),
				b.Repr(),
			)
		}
	default:
		return false, report.Raise(report.InternalInvariantViolation, nil, "unknown type kind: %T", a)
	}

	return false, nil
}

// funcsEquivalent compares two function signatures: they must have the same
// arity, pairwise equivalent parameters and equivalent return types.
func funcsEquivalent(a, b *ast.FuncType) (bool, error) {
	if len(a.Params) != len(b.Params) {
		return false, nil
	}

	for i, aparam := range a.Params {
		if eq, err := Equivalent(aparam.Type, b.Params[i].Type); !eq || err != nil {
			return false, err
		}
	}

	return Equivalent(a.Return, b.Return)
}

// sameKind returns whether two types are of the same kind.
func sameKind(a, b ast.Type) bool {
	switch a.(type) {
	case *ast.StructType:
		_, ok := b.(*ast.StructType)
		return ok
	case *ast.EnumType:
		_, ok := b.(*ast.EnumType)
		return ok
	case *ast.ArrayType:
		_, ok := b.(*ast.ArrayType)
		return ok
	}

	return false
}
