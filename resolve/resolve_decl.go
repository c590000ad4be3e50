package resolve

import (
	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
	"github.com/sergey-rogatin/compiler/typing"
)

// resolveDeclPartial resolves the signature of a declaration: its declared
// type and the type of its value.  Struct definitions and functions are left
// at Partial: their members and bodies are resolved by resolveDeclFull.  All
// other declarations are complete after this pass.  The declaration is bound
// into scope at the end of the pass.
func (r *Resolver) resolveDeclPartial(scope *ast.Scope, decl *ast.Decl) {
	if decl.Type != nil {
		r.resolveType(scope, decl.Type, decl.Span())

		// A declared `Type` is the meta-type itself.
		if eq, _ := typing.Equivalent(decl.Type, r.uni.MetaType); eq {
			decl.Type = r.uni.MetaType
		}
	}

	if decl.Value == nil {
		if decl.Type == nil {
			report.ICE("declaration `%s` has neither a type nor a value", decl.Name)
		} else if r.uni.IsMetaType(decl.Type) {
			r.error(report.TypeMismatch, decl.Span(), "type definition `%s` has no value", decl.Name)
		}

		// There is nothing more to check.
		decl.CheckState = ast.Full
		scope.Bind(decl)
		return
	}

	var valueType ast.Type
	switch v := decl.Value.(type) {
	case *ast.Func:
		v.Scope = ast.NewScope(scope)
		r.resolveSignature(v.Scope, v.Type, v.Span())

		valueType = v.Type
		decl.CheckState = ast.Partial
	case *ast.TypeValue:
		switch v.Value.(type) {
		case *ast.StructType:
			// The members are resolved in the full pass so that they may refer
			// back to the struct.
			valueType = r.uni.MetaType
			decl.CheckState = ast.Partial
		case *ast.FuncType:
			prevTypedef := r.insideFuncTypedef
			r.insideFuncTypedef = true
			r.resolveExpr(scope, v)
			r.insideFuncTypedef = prevTypedef

			valueType = v.Type()
			decl.CheckState = ast.Full
		default:
			r.resolveExpr(scope, v)
			valueType = v.Type()
			decl.CheckState = ast.Full
		}
	case ast.Expr:
		r.resolveExpr(scope, v)
		valueType = v.Type()
		decl.CheckState = ast.Full
	default:
		report.ICE("unknown declaration value: %T", v)
	}

	if decl.Type != nil {
		r.mustMatch(decl.Span(), decl.Type, valueType)
	} else {
		decl.Type = valueType
	}

	if r.uni.IsMetaType(decl.Type) && !decl.Const {
		r.error(report.TypeMismatch, decl.Span(), "type definition `%s` must be constant", decl.Name)
	}

	scope.Bind(decl)
}

// resolveDeclFull completely resolves a declaration: it runs the partial pass
// if it has not run yet and then resolves the struct members or the function
// body left over by it.
func (r *Resolver) resolveDeclFull(scope *ast.Scope, decl *ast.Decl) {
	if decl.CheckState == ast.Unresolved {
		r.resolveDeclPartial(scope, decl)
	}

	if decl.CheckState == ast.Partial {
		switch v := decl.Value.(type) {
		case *ast.Func:
			prevFunc := r.currentFunc
			r.currentFunc = v
			r.resolveBlock(v.Scope, v.Body, true)
			r.currentFunc = prevFunc
		case ast.Expr:
			r.resolveExpr(scope, v)
		}
	}

	decl.CheckState = ast.Full
}
