package depm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"

	"github.com/sergey-rogatin/compiler/ast"
)

func TestUniverseSeedsPrimitives(t *testing.T) {
	u := NewUniverse()

	var names []string
	for _, decl := range u.Global.Decls() {
		names = append(names, decl.Name)

		be.True(t, decl.Const)
		be.True(t, u.IsMetaType(decl.Type))
		be.Equal(t, decl.CheckState, ast.Full)
		be.Equal(t, decl.EmitState, ast.Full)
	}

	if diff := cmp.Diff(PrimitiveNames, names); diff != "" {
		t.Errorf("seeded names mismatch (-want +got):\n%s", diff)
	}
}

func TestPrimitiveDenotesItself(t *testing.T) {
	u := NewUniverse()

	typ := u.Primitive("i32")
	alias, ok := typ.(*ast.AliasType)
	be.True(t, ok)
	be.Equal(t, alias.Name, "i32")

	be.Equal(t, u.Primitive("nope"), nil)
}

func TestMetaTypeIsComparedByIdentity(t *testing.T) {
	u := NewUniverse()

	be.True(t, u.IsMetaType(u.MetaType))
	be.Equal(t, u.IsMetaType(&ast.AliasType{Name: MetaTypeName}), false)

	// Universes never share their sentinel.
	be.Equal(t, NewUniverse().IsMetaType(u.MetaType), false)
}

func TestNameClasses(t *testing.T) {
	be.True(t, IsPrimitive("char"))
	be.Equal(t, IsPrimitive("string"), false)

	be.True(t, IsIntegerName("u64"))
	be.Equal(t, IsIntegerName("f32"), false)
	be.Equal(t, IsIntegerName("b32"), false)
}
