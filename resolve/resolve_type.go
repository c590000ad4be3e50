package resolve

import (
	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// contextTypeName is the type of the implicit context parameter.
const contextTypeName = "Context"

// contextParamName is the name of the implicit context parameter.
const contextParamName = "ctx"

// resolveType resolves every name a type refers to.  Struct and enum types get
// their member scopes on their first resolution.
func (r *Resolver) resolveType(scope *ast.Scope, typ ast.Type, span *report.TextSpan) {
	switch v := typ.(type) {
	case *ast.EnumType:
		if v.Scope != nil {
			return
		}

		i32 := r.uni.Primitive("i32")
		v.Scope = ast.NewScope(scope)
		for i, member := range v.Members {
			value := &ast.IntLit{ExprBase: ast.NewExprBase(span), Value: int64(i)}
			value.SetType(i32)

			memberDecl := ast.NewDecl(span, member, i32, value, true)
			memberDecl.CheckState = ast.Full
			v.Scope.Bind(memberDecl)
		}

		v.ItemType = i32
	case *ast.StructType:
		if v.Scope != nil {
			return
		}

		v.Scope = ast.NewScope(scope)
		for _, member := range v.Members {
			r.resolveDeclFull(v.Scope, member)
		}
	case *ast.PointerType:
		// A pointer only needs the signature of the type it points to: this is
		// what allows self-referential structs.
		if alias, ok := v.Base.(*ast.AliasType); ok {
			r.resolveAlias(scope, alias, ast.Partial, span)
		} else {
			r.resolveType(scope, v.Base, span)
		}
	case *ast.AliasType:
		if r.insideFuncTypedef {
			r.resolveAlias(scope, v, ast.Partial, span)
		} else {
			r.resolveAlias(scope, v, ast.Full, span)
		}
	case *ast.ArrayType:
		r.resolveType(scope, v.Item, span)
	case *ast.FuncType:
		r.resolveSignature(ast.NewScope(scope), v, span)
	default:
		report.ICE("unknown type kind: %T", typ)
	}
}

// resolveSignature resolves a function type binding its parameters into the
// given scope.  The implicit context parameter is appended to the parameter
// list exactly once.
func (r *Resolver) resolveSignature(paramScope *ast.Scope, ft *ast.FuncType, span *report.TextSpan) {
	if !ft.HasContext {
		ctxType := &ast.PointerType{Base: &ast.AliasType{Name: contextTypeName}}
		ft.Params = append(ft.Params, ast.NewDecl(span, contextParamName, ctxType, nil, false))
		ft.HasContext = true
	}

	for _, param := range ft.Params {
		r.resolveDeclFull(paramScope, param)
	}

	r.resolveType(paramScope, ft.Return, span)
}

// resolveAlias resolves the declaration a named type refers to and checks that
// it really is a type.
func (r *Resolver) resolveAlias(scope *ast.Scope, alias *ast.AliasType, depth ast.ResolveState, span *report.TextSpan) {
	r.resolveName(alias.Name, depth)

	decl := r.lookup(scope, alias.Name, span)
	if !r.uni.IsMetaType(decl.Type) {
		r.error(report.TypeMismatch, span, "`%s` is not a type", alias.Name)
	}
}

// underlyingFunc returns the function type a type denotes: either the type
// itself or the function type definition an alias names.
func (r *Resolver) underlyingFunc(scope *ast.Scope, typ ast.Type) (*ast.FuncType, bool) {
	switch v := typ.(type) {
	case *ast.FuncType:
		return v, true
	case *ast.AliasType:
		if decl, ok := scope.Lookup(v.Name); ok && r.uni.IsMetaType(decl.Type) {
			if denoted, ok := decl.TypeValueOf(); ok {
				ft, ok := denoted.(*ast.FuncType)
				return ft, ok
			}
		}
	}

	return nil, false
}
