package generate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// genDecl generates a top-level declaration and adds it to the module.
func (g *Generator) genDecl(decl *ast.Decl) {
	if decl.CheckState != ast.Full {
		report.ICE("declaration `%s` exported before it was resolved", decl.Name)
	}

	if g.uni.IsMetaType(decl.Type) {
		g.genTypeDef(decl)
		return
	}

	if fn, ok := decl.FuncOf(); ok {
		g.genFuncDecl(decl.Name, fn.Type)
		return
	}

	g.genGlobal(decl)
}

// -----------------------------------------------------------------------------

// structDef returns the struct type a declaration defines if it defines one.
func (g *Generator) structDef(decl *ast.Decl) (*ast.StructType, bool) {
	if !g.uni.IsMetaType(decl.Type) {
		return nil, false
	}

	typ, ok := decl.TypeValueOf()
	if !ok {
		return nil, false
	}

	st, ok := typ.(*ast.StructType)
	return st, ok
}

// declareStruct adds a named struct type definition whose fields are filled in
// when the declaration itself is generated.
func (g *Generator) declareStruct(name string) {
	g.globalTypes[name] = g.mod.NewTypeDef(name, &types.StructType{})
}

// genTypeDef generates a type definition.
func (g *Generator) genTypeDef(decl *ast.Decl) {
	typ, ok := decl.TypeValueOf()
	if !ok {
		report.ICE("type definition `%s` has no type value", decl.Name)
	}

	switch v := typ.(type) {
	case *ast.StructType:
		llStruct := g.globalTypes[decl.Name].(*types.StructType)
		for _, member := range v.Members {
			llStruct.Fields = append(llStruct.Fields, g.convType(member.Type))
		}
	case *ast.EnumType:
		// Each enum gets its own named integer type.
		g.globalTypes[decl.Name] = g.mod.NewTypeDef(decl.Name, &types.IntType{BitSize: 32})
	default:
		// Other type definitions are transparent.
		g.globalTypes[decl.Name] = g.convType(v)
	}
}

// genFuncDecl generates an external function declaration.
func (g *Generator) genFuncDecl(name string, ft *ast.FuncType) *ir.Func {
	params := make([]*ir.Param, len(ft.Params))
	for i, param := range ft.Params {
		params[i] = ir.NewParam(param.Name, g.convType(param.Type))
	}

	// A function without blocks is printed as an external declaration.
	return g.mod.NewFunc(name, g.convType(ft.Return), params...)
}

// genGlobal generates a global variable or constant.  Literal initializers
// are exported as is; every other initializer is computed at run time by the
// C output so the global is zero initialized.
func (g *Generator) genGlobal(decl *ast.Decl) *ir.Global {
	llType := g.convType(decl.Type)

	var init constant.Constant
	if expr, ok := decl.Value.(ast.Expr); ok {
		init = g.genConstant(llType, expr)
	}

	if init == nil {
		init = constant.NewZeroInitializer(llType)
	}

	global := g.mod.NewGlobalDef(decl.Name, init)
	global.Immutable = decl.Const

	return global
}

// genConstant converts a literal expression to an LLVM constant of the given
// type.  It returns nil if the expression is not a literal.
func (g *Generator) genConstant(llType types.Type, expr ast.Expr) constant.Constant {
	switch v := ast.Resolved(expr).(type) {
	case *ast.IntLit:
		if intType, ok := llType.(*types.IntType); ok {
			return constant.NewInt(intType, v.Value)
		}
	case *ast.FloatLit:
		if floatType, ok := llType.(*types.FloatType); ok {
			return constant.NewFloat(floatType, v.Value)
		}
	case *ast.Cast:
		return g.genConstant(llType, v.Operand)
	case *ast.Binary:
		// Enum constants are exported as their values.
		if name, ok := v.Right.(*ast.Name); ok && v.EnumMember && name.Decl != nil {
			if value, ok := name.Decl.Value.(ast.Expr); ok {
				return g.genConstant(llType, value)
			}
		}
	}

	return nil
}
