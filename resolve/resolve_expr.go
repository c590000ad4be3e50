package resolve

import (
	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/depm"
	"github.com/sergey-rogatin/compiler/report"
)

// Names of the declarations string literals depend on.
const (
	stringTypeName = "string"
	stringMakeName = "__string_make"
)

// resolveExpr resolves an expression and sets its type.  Expressions that
// turn out to denote types (names of types, calls to types, references to
// types) are rewritten into type values and casts.
func (r *Resolver) resolveExpr(scope *ast.Scope, expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.TypeValue:
		r.resolveType(scope, v.Value, v.Span())
		v.SetType(r.uni.MetaType)
	case *ast.Unary:
		r.resolveUnary(scope, v)
	case *ast.Binary:
		switch v.Op {
		case ast.OpSubscript:
			r.resolveSubscript(scope, v)
		case ast.OpMember:
			r.resolveMember(scope, v)
		default:
			r.resolveBinary(scope, v)
		}
	case *ast.Call:
		r.resolveCall(scope, v)
	case *ast.Cast:
		r.resolveType(scope, v.CastType, v.Span())
		r.resolveExpr(scope, v.Operand)
		v.SetType(v.CastType)
	case *ast.IntLit:
		v.SetType(r.uni.Primitive("i32"))
	case *ast.FloatLit:
		v.SetType(r.uni.Primitive("f32"))
	case *ast.StringLit:
		r.resolveName(stringTypeName, ast.Full)
		r.resolveName(stringMakeName, ast.Full)
		v.SetType(&ast.AliasType{Name: stringTypeName})
	case *ast.Name:
		r.resolveNameExpr(scope, v)
	default:
		report.ICE("unknown expression kind: %T", expr)
	}

	if expr.Type() == nil {
		report.ICE("expression left without a type: %T", expr)
	}
}

// resolveNameExpr resolves a name used as a value.  Functions only need their
// signatures to be referenced; every other top-level declaration is resolved
// completely first.
func (r *Resolver) resolveNameExpr(scope *ast.Scope, name *ast.Name) {
	depth := ast.Full
	if top, ok := r.topIndex[name.Name]; ok {
		if _, isFunc := top.FuncOf(); isFunc {
			depth = ast.Partial
		}
	}
	r.resolveName(name.Name, depth)

	r.bindName(scope, name)
}

// bindName looks up the declaration a name refers to and types the name with
// it.  Names denoting types are rewritten into type values.
func (r *Resolver) bindName(scope *ast.Scope, name *ast.Name) {
	decl := r.lookup(scope, name.Name, name.Span())
	if decl.Type == nil {
		r.error(report.UndefinedSymbol, name.Span(), "`%s` is used before its type is known", name.Name)
	}

	name.Decl = decl
	name.SetType(decl.Type)

	if r.uni.IsMetaType(decl.Type) {
		r.rewriteAsType(name, &ast.AliasType{Name: name.Name})
	}
}

// rewriteAsType records that an expression denotes the given type.
func (r *Resolver) rewriteAsType(expr ast.Expr, typ ast.Type) {
	tv := ast.NewTypeValue(expr.Span(), typ)
	tv.SetType(r.uni.MetaType)

	ast.Rewrite(expr, tv)
	expr.SetType(r.uni.MetaType)
}

// denotedType returns the type a resolved type-valued expression denotes.
func (r *Resolver) denotedType(expr ast.Expr) ast.Type {
	if tv, ok := ast.Resolved(expr).(*ast.TypeValue); ok {
		return tv.Value
	}

	report.ICE("expression of meta-type does not denote a type: %T", expr)
	return nil
}

// -----------------------------------------------------------------------------

// resolveUnary resolves a unary operator application.  Taking the reference of
// a type yields a pointer type.
func (r *Resolver) resolveUnary(scope *ast.Scope, un *ast.Unary) {
	r.resolveExpr(scope, un.Operand)

	operandType := un.Operand.Type()
	switch un.Op {
	case ast.OpRef:
		if r.uni.IsMetaType(operandType) {
			r.rewriteAsType(un, &ast.PointerType{Base: r.denotedType(un.Operand)})
		} else {
			un.SetType(&ast.PointerType{Base: operandType})
		}
	case ast.OpDeref:
		pt, ok := operandType.(*ast.PointerType)
		if !ok {
			r.error(report.TypeMismatch, un.Span(), "cannot dereference non-pointer type %s", operandType.Repr())
		}

		un.SetType(pt.Base)
	default:
		un.SetType(operandType)
	}
}

// resolveSubscript resolves an array subscript: the index must be an i32.
func (r *Resolver) resolveSubscript(scope *ast.Scope, bin *ast.Binary) {
	r.resolveExpr(scope, bin.Left)
	r.resolveExpr(scope, bin.Right)

	r.mustMatch(bin.Right.Span(), r.uni.Primitive("i32"), bin.Right.Type())

	at, ok := bin.Left.Type().(*ast.ArrayType)
	if !ok {
		r.error(report.TypeMismatch, bin.Left.Span(), "cannot index non-array type %s", bin.Left.Type().Repr())
	}

	bin.SetType(at.Item)
}

// resolveMember resolves a member access.  If the left operand denotes a type,
// the access names an enum constant; otherwise, it names a struct field,
// possibly through one pointer.
func (r *Resolver) resolveMember(scope *ast.Scope, bin *ast.Binary) {
	r.resolveExpr(scope, bin.Left)

	right, ok := bin.Right.(*ast.Name)
	if !ok {
		report.ICE("member access without member name")
	}

	leftType := bin.Left.Type()
	if pt, ok := leftType.(*ast.PointerType); ok {
		leftType = pt.Base
	}

	if r.uni.IsMetaType(leftType) {
		r.resolveEnumMember(scope, bin, right)
		return
	}

	alias, ok := leftType.(*ast.AliasType)
	if !ok {
		r.error(report.UnresolvedMember, bin.Span(), "type %s has no members", leftType.Repr())
	}

	// The struct must be complete before its fields can be used.
	r.resolveName(alias.Name, ast.Full)

	var st *ast.StructType
	if decl := r.lookup(scope, alias.Name, bin.Left.Span()); r.uni.IsMetaType(decl.Type) {
		if denoted, ok := decl.TypeValueOf(); ok {
			st, _ = denoted.(*ast.StructType)
		}
	}

	if st == nil || st.Scope == nil {
		r.error(report.UnresolvedMember, bin.Span(), "type %s has no members", alias.Name)
	}

	member, ok := st.Scope.LookupLocal(right.Name)
	if !ok {
		r.error(report.UnresolvedMember, right.Span(), "type %s has no member named `%s`", alias.Name, right.Name)
	}

	right.Decl = member
	right.SetType(member.Type)
	bin.SetType(member.Type)
}

// resolveEnumMember resolves an access to an enum constant: the result is
// typed as the enum itself.
func (r *Resolver) resolveEnumMember(scope *ast.Scope, bin *ast.Binary, right *ast.Name) {
	bin.EnumMember = true

	alias, ok := r.denotedType(bin.Left).(*ast.AliasType)
	if !ok {
		r.error(report.UnresolvedMember, bin.Span(), "type %s has no members", r.denotedType(bin.Left).Repr())
	}

	var et *ast.EnumType
	if decl := r.lookup(scope, alias.Name, bin.Left.Span()); r.uni.IsMetaType(decl.Type) {
		if denoted, ok := decl.TypeValueOf(); ok {
			et, _ = denoted.(*ast.EnumType)
		}
	}

	if et == nil || et.Scope == nil {
		r.error(report.UnresolvedMember, bin.Span(), "type %s has no members", alias.Name)
	}

	member, ok := et.Scope.LookupLocal(right.Name)
	if !ok {
		r.error(report.UnresolvedMember, right.Span(), "enum %s has no member named `%s`", alias.Name, right.Name)
	}

	r.mustMatch(right.Span(), et.ItemType, member.Type)

	right.Decl = member
	right.SetType(member.Type)
	bin.SetType(&ast.AliasType{Name: alias.Name})
}

// resolveBinary resolves an arithmetic, comparison or logical operator.  The
// operands must have equivalent types unless the left operand is a pointer.
func (r *Resolver) resolveBinary(scope *ast.Scope, bin *ast.Binary) {
	r.resolveExpr(scope, bin.Left)
	r.resolveExpr(scope, bin.Right)

	if _, ok := bin.Left.Type().(*ast.PointerType); ok {
		r.checkPointerOperand(bin.Span(), bin.Op, bin.Left.Type(), bin.Right.Type())
	} else {
		r.mustMatch(bin.Span(), bin.Left.Type(), bin.Right.Type())
	}

	bin.SetType(bin.Left.Type())
}

// checkPointerOperand checks the right operand of an operator whose left
// operand is a pointer.  Integers may be added to or subtracted from a
// pointer, pointers may be subtracted from one another and compared.
func (r *Resolver) checkPointerOperand(span *report.TextSpan, op ast.Op, left, right ast.Type) {
	_, rightIsPtr := right.(*ast.PointerType)

	switch op {
	case ast.OpAdd, ast.OpAddAssign:
		if isIntegerType(right) {
			return
		}
	case ast.OpSub, ast.OpSubAssign:
		if rightIsPtr || isIntegerType(right) {
			return
		}
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		r.mustMatch(span, left, right)
		return
	}

	r.error(report.IllegalPointerArithmetic, span, "cannot apply %s to %s and %s", op, left.Repr(), right.Repr())
}

// isIntegerType returns whether typ is one of the primitive integer types.
func isIntegerType(typ ast.Type) bool {
	if alias, ok := typ.(*ast.AliasType); ok {
		return depm.IsIntegerName(alias.Name)
	}

	return false
}

// resolveCall resolves a function call.  A call whose callee denotes a type is
// a cast and is rewritten into one.  Calls get the implicit context argument
// appended before their arguments are checked.
func (r *Resolver) resolveCall(scope *ast.Scope, call *ast.Call) {
	if name, ok := call.Callee.(*ast.Name); ok {
		// Calling only requires the signature.
		r.resolveName(name.Name, ast.Partial)
		r.bindName(scope, name)
	} else {
		r.resolveExpr(scope, call.Callee)
	}

	if r.uni.IsMetaType(call.Callee.Type()) {
		if len(call.Args) != 1 {
			r.error(report.TypeMismatch, call.Span(), "conversion takes exactly one argument but got %d", len(call.Args))
		}

		castType := r.denotedType(call.Callee)
		cast := &ast.Cast{
			ExprBase: ast.NewExprBase(call.Span()),
			CastType: castType,
			Operand:  call.Args[0],
		}
		ast.Rewrite(call, cast)

		r.resolveExpr(scope, cast.Operand)
		cast.SetType(castType)
		call.SetType(castType)
		return
	}

	ft, ok := r.underlyingFunc(scope, call.Callee.Type())
	if !ok {
		r.error(report.TypeMismatch, call.Callee.Span(), "cannot call non-function type %s", call.Callee.Type().Repr())
	}

	if !call.HasContext {
		call.Args = append(call.Args, ast.NewName(call.Span(), contextParamName))
		call.HasContext = true
	}

	if len(call.Args) != len(ft.Params) {
		r.error(
			report.TypeMismatch,
			call.Span(),
			"expected %d arguments but got %d",
			len(ft.Params)-1,
			len(call.Args)-1,
		)
	}

	for i, arg := range call.Args {
		r.resolveExpr(scope, arg)
		r.mustMatch(arg.Span(), ft.Params[i].Type, arg.Type())
	}

	call.SetType(ft.Return)
}
