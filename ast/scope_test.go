package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"
)

func declNamed(name string) *Decl {
	return NewDecl(nil, name, &AliasType{Name: "i32"}, nil, false)
}

func namesOf(decls []*Decl) []string {
	var names []string
	for _, decl := range decls {
		names = append(names, decl.Name)
	}

	return names
}

func TestScopeLookupWalksOutward(t *testing.T) {
	global := NewScope(nil)
	local := NewScope(global)

	x := declNamed("x")
	global.Bind(x)

	got, ok := local.Lookup("x")
	be.True(t, ok)
	be.True(t, got == x)

	_, ok = local.LookupLocal("x")
	be.Equal(t, ok, false)

	_, ok = local.Lookup("y")
	be.Equal(t, ok, false)
}

func TestScopeShadowing(t *testing.T) {
	global := NewScope(nil)
	local := NewScope(global)

	outer, inner := declNamed("x"), declNamed("x")
	global.Bind(outer)
	local.Bind(inner)

	got, _ := local.Lookup("x")
	be.True(t, got == inner)

	got, _ = global.Lookup("x")
	be.True(t, got == outer)
}

func TestScopeRebindKeepsPosition(t *testing.T) {
	s := NewScope(nil)
	s.Bind(declNamed("a"))
	s.Bind(declNamed("b"))
	s.Bind(declNamed("c"))

	again := declNamed("b")
	s.Bind(again)

	if diff := cmp.Diff([]string{"a", "b", "c"}, namesOf(s.Decls())); diff != "" {
		t.Errorf("binding order mismatch (-want +got):\n%s", diff)
	}

	got, _ := s.LookupLocal("b")
	be.True(t, got == again)
}

func TestResolvedFollowsRewrites(t *testing.T) {
	name := NewName(nil, "i32")
	be.True(t, Resolved(name) == Expr(name))

	tv := NewTypeValue(nil, &AliasType{Name: "i32"})
	Rewrite(name, tv)

	be.True(t, Resolved(name) == Expr(tv))
	be.Equal(t, name.Name, "i32")
}

func TestTypeRepr(t *testing.T) {
	ft := &FuncType{
		Params: []*Decl{
			declNamed("a"),
			NewDecl(nil, "b", &PointerType{Base: &AliasType{Name: "char"}}, nil, false),
		},
		Return: &ArrayType{Item: &AliasType{Name: "u8"}, Count: 4},
	}

	be.Equal(t, ft.Repr(), "(a: i32, b: *char) -> [4]u8")
	be.Equal(t, (&EnumType{Members: []string{"A", "B"}}).Repr(), "enum{A, B}")
	be.Equal(t, (&StructType{Members: []*Decl{declNamed("x")}}).Repr(), "struct{x: i32}")
}

func TestDeclValueHelpers(t *testing.T) {
	structDecl := NewDecl(nil, "S", nil, NewTypeValue(nil, &StructType{}), true)
	be.True(t, structDecl.IsStructDef())
	be.Equal(t, structDecl.IsEnumDef(), false)

	typ, ok := structDecl.TypeValueOf()
	be.True(t, ok)
	_, isStruct := typ.(*StructType)
	be.True(t, isStruct)

	fnDecl := NewDecl(nil, "f", nil, &Func{Type: &FuncType{}, Body: &Block{}}, true)
	_, ok = fnDecl.FuncOf()
	be.True(t, ok)
	_, ok = fnDecl.TypeValueOf()
	be.Equal(t, ok, false)
}
