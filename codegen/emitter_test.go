package codegen

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/depm"
)

// resolvedDecl creates a declaration which is treated as fully checked.
func resolvedDecl(name string, typ ast.Type, value ast.Value) *ast.Decl {
	decl := ast.NewDecl(nil, name, typ, value, false)
	decl.CheckState = ast.Full
	return decl
}

func emit(uni *depm.Universe, decl *ast.Decl, depth ast.ResolveState) string {
	e := NewEmitter(uni)
	e.EmitDecl(decl, depth)
	e.EmitTerminator(decl, depth)
	return e.String()
}

func TestEmitDeclarators(t *testing.T) {
	uni := depm.NewUniverse()

	i32 := &ast.AliasType{Name: "i32"}
	char := &ast.AliasType{Name: "char"}

	tests := []struct {
		name string
		typ  ast.Type
		want string
	}{
		{"alias", i32, "i32 x;\n"},
		{"pointer", &ast.PointerType{Base: &ast.PointerType{Base: char}}, "char** x;\n"},
		{"array", &ast.ArrayType{Item: char, Count: 8}, "char x[8];\n"},
		{"nested array", &ast.ArrayType{Item: &ast.ArrayType{Item: i32, Count: 3}, Count: 2}, "i32 x[2][3];\n"},
		{
			"function pointer",
			&ast.FuncType{Params: []*ast.Decl{resolvedDecl("a", i32, nil)}, Return: i32},
			"i32 (*x)(i32 a);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, emit(uni, resolvedDecl("x", tt.typ, nil), ast.Full), tt.want)
		})
	}
}

func TestEmitInitializedGlobal(t *testing.T) {
	uni := depm.NewUniverse()
	i32 := uni.Primitive("i32")

	lit := &ast.IntLit{ExprBase: ast.NewExprBase(nil), Value: 3}
	lit.SetType(i32)

	neg := &ast.Unary{ExprBase: ast.NewExprBase(nil), Op: ast.OpNeg, Operand: lit}
	neg.SetType(i32)

	be.Equal(t, emit(uni, resolvedDecl("x", i32, neg), ast.Full), "i32 x = -(3);\n")
}

func TestEmitFloatLiteral(t *testing.T) {
	uni := depm.NewUniverse()
	f32 := uni.Primitive("f32")

	lit := &ast.FloatLit{ExprBase: ast.NewExprBase(nil), Value: 1.5}
	lit.SetType(f32)

	be.Equal(t, emit(uni, resolvedDecl("x", f32, lit), ast.Full), "f32 x = 1.5000000000;\n")
}

func TestEmitStructForms(t *testing.T) {
	uni := depm.NewUniverse()

	st := &ast.StructType{Members: []*ast.Decl{resolvedDecl("v", &ast.AliasType{Name: "i32"}, nil)}}
	decl := ast.NewDecl(nil, "S", uni.MetaType, ast.NewTypeValue(nil, st), true)
	decl.CheckState = ast.Full

	e := NewEmitter(uni)
	e.EmitDecl(decl, ast.Partial)
	e.EmitTerminator(decl, ast.Partial)
	be.Equal(t, decl.EmitState, ast.Partial)

	e.EmitDecl(decl, ast.Full)
	e.EmitTerminator(decl, ast.Full)
	be.Equal(t, decl.EmitState, ast.Full)

	be.Equal(t, e.String(), "typedef struct S S;\n\nstruct S {\n  i32 v;\n};\n\n")
	be.Equal(t, e.Len(), len(e.String()))
}

func TestEmitFuncPrototype(t *testing.T) {
	uni := depm.NewUniverse()

	ft := &ast.FuncType{Return: &ast.AliasType{Name: "void"}}
	fn := &ast.Func{Type: ft, Body: &ast.Block{}}
	decl := resolvedDecl("f", ft, fn)

	be.Equal(t, emit(uni, decl, ast.Partial), "void f();\n")
	be.Equal(t, emit(uni, decl, ast.Full), "void f() {\n}\n\n")
}

func TestPreambleDefinesPrimitives(t *testing.T) {
	for _, name := range depm.PrimitiveNames {
		switch name {
		case depm.MetaTypeName, "void", "char":
			continue
		}

		be.True(t, strings.Contains(Preamble, " "+name+";\n"))
	}
}
