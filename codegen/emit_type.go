package codegen

import (
	"strconv"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// A type is emitted in two halves so that it can wrap a declared name in C's
// declarator order: the prefix comes before the name and the postfix after.
// For example, `(a: i32) -> i32` has prefix `i32` and postfix `(i32 a)`.

// emitTypePrefix emits the part of a type that precedes the declared name.
func (e *Emitter) emitTypePrefix(typ ast.Type) {
	switch v := typ.(type) {
	case *ast.FuncType:
		e.emitTypePrefix(v.Return)
	case *ast.ArrayType:
		e.emitTypePrefix(v.Item)
	case *ast.StructType:
		e.write("struct ")
		e.emitStructBody(v)
	case *ast.PointerType:
		e.emitTypePrefix(v.Base)
		e.write("*")
	case *ast.AliasType:
		e.write(v.Name)
	case *ast.EnumType:
		e.write("enum {\n")

		e.indent++
		for _, member := range v.Members {
			e.emitIndent()
			e.write(e.enumName, "_", member, ",\n")
		}
		e.indent--

		e.emitIndent()
		e.write("}")
	default:
		report.ICE("unknown type kind: %T", typ)
	}
}

// emitTypePostfix emits the part of a type that follows the declared name.
func (e *Emitter) emitTypePostfix(typ ast.Type) {
	switch v := typ.(type) {
	case *ast.FuncType:
		e.write("(")
		for i, param := range v.Params {
			if i > 0 {
				e.write(", ")
			}

			e.emitDeclarator(param.Type, param.Name)
		}
		e.write(")")
	case *ast.ArrayType:
		e.write("[", strconv.FormatInt(v.Count, 10), "]")
		e.emitTypePostfix(v.Item)
	case *ast.StructType, *ast.PointerType, *ast.AliasType, *ast.EnumType:
	default:
		report.ICE("unknown type kind: %T", typ)
	}
}

// emitStructBody emits the braced member list of a struct.
func (e *Emitter) emitStructBody(st *ast.StructType) {
	e.write("{\n")

	e.indent++
	for _, member := range st.Members {
		e.emitIndent()
		e.emitDeclarator(member.Type, member.Name)
		e.write(";\n")
	}
	e.indent--

	e.emitIndent()
	e.write("}")
}

// emitDeclarator emits a type wrapped around a name.  Function types are
// emitted as function pointers.
func (e *Emitter) emitDeclarator(typ ast.Type, name string) {
	e.emitTypePrefix(typ)
	e.write(" ")

	if _, ok := typ.(*ast.FuncType); ok {
		e.write("(*", name, ")")
	} else {
		e.write(name)
	}

	e.emitTypePostfix(typ)
}
