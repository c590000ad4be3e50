package depm

import "github.com/sergey-rogatin/compiler/ast"

// MetaTypeName is the name of the meta-type: the type of all type values.
const MetaTypeName = "Type"

// PrimitiveNames lists the names seeded into the global scope in seeding
// order.  Each is a constant whose value is an alias to itself.
var PrimitiveNames = []string{
	MetaTypeName,
	"void",
	"u8", "u16", "u32", "u64",
	"i8", "i16", "i32", "i64",
	"f32", "f64",
	"b32", "b8",
	"byte", "char",
}

// IntegerNames lists the primitive integer types that may be added to or
// subtracted from a pointer.
var IntegerNames = []string{
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
}

// Universe is the compilation context shared by every stage of a single
// compilation: it owns the global scope and the meta-type sentinel.  One
// universe is created per compilation and passed explicitly; nothing about it
// is process-global.
type Universe struct {
	// MetaType is the sentinel type of every declaration whose value is itself
	// a type.  It is compared by identity.
	MetaType *ast.AliasType

	// Global is the root scope.
	Global *ast.Scope
}

// NewUniverse creates a new universe with the primitive types bound in its
// global scope.
func NewUniverse() *Universe {
	u := &Universe{
		MetaType: &ast.AliasType{Name: MetaTypeName},
		Global:   ast.NewScope(nil),
	}

	for _, name := range PrimitiveNames {
		var value ast.Type
		if name == MetaTypeName {
			value = u.MetaType
		} else {
			value = &ast.AliasType{Name: name}
		}

		decl := ast.NewDecl(nil, name, u.MetaType, ast.NewTypeValue(nil, value), true)
		decl.CheckState = ast.Full
		decl.EmitState = ast.Full
		decl.Value.(*ast.TypeValue).SetType(u.MetaType)

		u.Global.Bind(decl)
	}

	return u
}

// IsMetaType returns whether typ is the meta-type sentinel.
func (u *Universe) IsMetaType(typ ast.Type) bool {
	if at, ok := typ.(*ast.AliasType); ok {
		return at == u.MetaType
	}

	return false
}

// Primitive returns the type bound to a primitive name in the global scope.
func (u *Universe) Primitive(name string) ast.Type {
	if decl, ok := u.Global.LookupLocal(name); ok {
		if typ, ok := decl.TypeValueOf(); ok {
			return typ
		}
	}

	return nil
}

// IsPrimitive returns whether name is one of the seeded primitive names.
func IsPrimitive(name string) bool {
	for _, pname := range PrimitiveNames {
		if pname == name {
			return true
		}
	}

	return false
}

// IsIntegerName returns whether name is a primitive integer type name.
func IsIntegerName(name string) bool {
	for _, iname := range IntegerNames {
		if iname == name {
			return true
		}
	}

	return false
}
