package typing

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

func alias(name string) *ast.AliasType {
	return &ast.AliasType{Name: name}
}

func ptr(base ast.Type) *ast.PointerType {
	return &ast.PointerType{Base: base}
}

func fn(ret ast.Type, params ...ast.Type) *ast.FuncType {
	ft := &ast.FuncType{Return: ret}
	for _, param := range params {
		ft.Params = append(ft.Params, ast.NewDecl(nil, "p", param, nil, false))
	}

	return ft
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		name string
		a, b ast.Type
		want bool
	}{
		{"same alias", alias("i32"), alias("i32"), true},
		{"different alias", alias("i32"), alias("i64"), false},
		{"pointer", ptr(alias("Node")), ptr(alias("Node")), true},
		{"pointer base", ptr(alias("Node")), ptr(alias("Tree")), false},
		{"double pointer", ptr(ptr(alias("char"))), ptr(ptr(alias("char"))), true},
		{"pointer and alias", ptr(alias("i32")), alias("i32"), false},
		{"func", fn(alias("i32"), alias("i32")), fn(alias("i32"), alias("i32")), true},
		{"func arity", fn(alias("i32"), alias("i32")), fn(alias("i32")), false},
		{"func param", fn(alias("i32"), alias("i32")), fn(alias("i32"), alias("f32")), false},
		{"func return", fn(alias("i32")), fn(alias("void")), false},
		{"struct and alias", &ast.StructType{}, alias("S"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equivalent(tt.a, tt.b)
			be.Err(t, err, nil)
			be.Equal(t, got, tt.want)
		})
	}
}

func TestEquivalentRejectsUnsupportedComparisons(t *testing.T) {
	tests := []struct {
		name string
		a, b ast.Type
	}{
		{"struct", &ast.StructType{}, &ast.StructType{}},
		{"enum", &ast.EnumType{Members: []string{"A"}}, &ast.EnumType{Members: []string{"A"}}},
		{"array", &ast.ArrayType{Item: alias("i32"), Count: 2}, &ast.ArrayType{Item: alias("i32"), Count: 2}},
		{"nested", ptr(&ast.StructType{}), ptr(&ast.StructType{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Equivalent(tt.a, tt.b)

			cerr, ok := err.(*report.CompileError)
			be.True(t, ok)
			be.Equal(t, cerr.Kind, report.UnsupportedTypeComparison)
		})
	}
}

func TestEquivalentRejectsUnresolvedTypes(t *testing.T) {
	_, err := Equivalent(nil, alias("i32"))

	cerr, ok := err.(*report.CompileError)
	be.True(t, ok)
	be.Equal(t, cerr.Kind, report.InternalInvariantViolation)
}
