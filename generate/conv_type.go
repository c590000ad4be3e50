package generate

import (
	"github.com/llir/llvm/ir/types"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/depm"
	"github.com/sergey-rogatin/compiler/report"
)

// convType converts a resolved type to its LLVM type.
func (g *Generator) convType(typ ast.Type) types.Type {
	switch v := typ.(type) {
	case *ast.AliasType:
		if depm.IsPrimitive(v.Name) {
			if pt := convPrimType(v.Name); pt != nil {
				return pt
			}

			report.ICE("primitive `%s` has no LLVM equivalent", v.Name)
		}

		if llTyp, ok := g.globalTypes[v.Name]; ok {
			return llTyp
		}

		report.ICE("type `%s` used before it was generated", v.Name)
	case *ast.PointerType:
		// `*void` has no LLVM equivalent: it is an `i8*` as in C.
		if alias, ok := v.Base.(*ast.AliasType); ok && alias.Name == "void" {
			return types.I8Ptr
		}

		return types.NewPointer(g.convType(v.Base))
	case *ast.ArrayType:
		return types.NewArray(uint64(v.Count), g.convType(v.Item))
	case *ast.FuncType:
		// Values of function type are function pointers.
		return types.NewPointer(g.convFuncType(v))
	case *ast.StructType:
		fields := make([]types.Type, len(v.Members))
		for i, member := range v.Members {
			fields[i] = g.convType(member.Type)
		}

		return types.NewStruct(fields...)
	case *ast.EnumType:
		return types.I32
	}

	report.ICE("unknown type kind: %T", typ)
	return nil
}

// convFuncType converts a function signature to an LLVM function type.
func (g *Generator) convFuncType(ft *ast.FuncType) *types.FuncType {
	params := make([]types.Type, len(ft.Params))
	for i, param := range ft.Params {
		params[i] = g.convType(param.Type)
	}

	return types.NewFunc(g.convType(ft.Return), params...)
}

// convPrimType converts a primitive type name to its LLVM type.  It returns
// nil for primitives that only exist at compile time.
func convPrimType(name string) types.Type {
	switch name {
	case "i8", "u8", "b8", "byte", "char":
		return types.I8
	case "i16", "u16":
		return types.I16
	case "i32", "u32", "b32":
		return types.I32
	case "i64", "u64":
		return types.I64
	case "f32":
		return types.Float
	case "f64":
		return types.Double
	case "void":
		return types.Void
	}

	return nil
}
