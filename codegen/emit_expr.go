package codegen

import (
	"strconv"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// emitExpr emits a resolved expression.  Binary operations are always fully
// parenthesized.
func (e *Emitter) emitExpr(expr ast.Expr) {
	switch v := ast.Resolved(expr).(type) {
	case *ast.TypeValue:
		e.emitTypePrefix(v.Value)
		e.emitTypePostfix(v.Value)
	case *ast.Name:
		e.write(v.Name)
	case *ast.Unary:
		e.write(v.Op.String(), "(")
		e.emitExpr(v.Operand)
		e.write(")")
	case *ast.Binary:
		e.emitBinary(v)
	case *ast.Call:
		e.emitExpr(v.Callee)
		e.write("(")
		for i, arg := range v.Args {
			if i > 0 {
				e.write(", ")
			}

			e.emitExpr(arg)
		}
		e.write(")")
	case *ast.Cast:
		e.write("(")
		e.emitTypePrefix(v.CastType)
		e.emitTypePostfix(v.CastType)
		e.write(")(")
		e.emitExpr(v.Operand)
		e.write(")")
	case *ast.IntLit:
		e.write(strconv.FormatInt(v.Value, 10))
	case *ast.FloatLit:
		e.write(strconv.FormatFloat(v.Value, 'f', 10, 64))
	case *ast.StringLit:
		e.write(stringMakeName, "(\"", v.Text, "\", ", strconv.Itoa(v.Len), ", ctx)")
	default:
		report.ICE("unknown expression kind: %T", v)
	}
}

// stringMakeName is the name of the function string literals are built with.
const stringMakeName = "__string_make"

// emitBinary emits a binary operator application.
func (e *Emitter) emitBinary(bin *ast.Binary) {
	switch bin.Op {
	case ast.OpMember:
		e.emitExpr(bin.Left)

		if bin.EnumMember {
			e.write("_")
		} else if _, ok := bin.Left.Type().(*ast.PointerType); ok {
			e.write("->")
		} else {
			e.write(".")
		}

		e.emitExpr(bin.Right)
	case ast.OpSubscript:
		e.emitExpr(bin.Left)
		e.write("[")
		e.emitExpr(bin.Right)
		e.write("]")
	default:
		e.write("(")
		e.emitExpr(bin.Left)
		e.write(" ", bin.Op.String(), " ")
		e.emitExpr(bin.Right)
		e.write(")")
	}
}
