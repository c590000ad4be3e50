package resolve

import (
	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// resolveBlock resolves a block of statements.  Function bodies share the scope
// of the function's parameters; every other block opens a new scope.
func (r *Resolver) resolveBlock(scope *ast.Scope, block *ast.Block, isFuncBody bool) {
	blockScope := scope
	if !isFuncBody {
		blockScope = ast.NewScope(scope)
	}

	for _, stmt := range block.Stmts {
		r.resolveStmt(blockScope, stmt)
	}
}

// resolveStmt resolves a statement.
func (r *Resolver) resolveStmt(scope *ast.Scope, stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.DeclStmt:
		r.resolveDeclFull(scope, v.Decl)
	case *ast.AssignStmt:
		r.resolveAssign(scope, v)
	case *ast.ExprStmt:
		r.resolveExpr(scope, v.Expr)
	case *ast.IfStmt:
		r.resolveExpr(scope, v.Cond)
		r.resolveStmt(ast.NewScope(scope), v.Then)

		if v.Else != nil {
			r.resolveStmt(ast.NewScope(scope), v.Else)
		}
	case *ast.Block:
		r.resolveBlock(scope, v, false)
	case *ast.ForStmt:
		// The loop variable is only visible inside the loop.
		loopScope := ast.NewScope(scope)
		r.resolveDeclFull(loopScope, v.Init)
		r.resolveExpr(loopScope, v.Cond)
		r.resolveStmt(loopScope, v.Post)
		r.resolveStmt(loopScope, v.Body)
	case *ast.KeywordStmt:
		r.resolveKeywordStmt(scope, v)
	default:
		report.ICE("unknown statement kind: %T", stmt)
	}
}

// resolveAssign resolves an assignment.  Constants cannot be assigned to.
func (r *Resolver) resolveAssign(scope *ast.Scope, assign *ast.AssignStmt) {
	r.resolveExpr(scope, assign.Left)
	r.resolveExpr(scope, assign.Right)

	if name, ok := assign.Left.(*ast.Name); ok && name.Decl != nil && name.Decl.Const {
		r.error(report.ConstAssignmentViolation, assign.Span(), "cannot assign to constant `%s`", name.Name)
	}

	_, leftIsPtr := assign.Left.Type().(*ast.PointerType)
	if leftIsPtr && (assign.Op == ast.OpAddAssign || assign.Op == ast.OpSubAssign) {
		r.checkPointerOperand(assign.Span(), assign.Op, assign.Left.Type(), assign.Right.Type())
	} else {
		r.mustMatch(assign.Span(), assign.Left.Type(), assign.Right.Type())
	}
}

// resolveKeywordStmt resolves a return, defer or push_context statement.
func (r *Resolver) resolveKeywordStmt(scope *ast.Scope, kw *ast.KeywordStmt) {
	switch kw.Keyword {
	case ast.KwReturn:
		if r.currentFunc == nil {
			r.error(report.InternalInvariantViolation, kw.Span(), "return outside of function")
		}

		returnType := r.currentFunc.Type.Return
		if kw.Expr == nil {
			if alias, ok := returnType.(*ast.AliasType); !ok || alias.Name != "void" {
				r.error(report.TypeMismatch, kw.Span(), "missing return value of type %s", returnType.Repr())
			}

			return
		}

		r.resolveExpr(scope, kw.Expr)
		r.mustMatch(kw.Expr.Span(), returnType, kw.Expr.Type())
	case ast.KwDefer:
		r.resolveStmt(scope, kw.Body)
	case ast.KwPushContext:
		r.resolveExpr(scope, kw.Expr)
		r.mustMatch(
			kw.Expr.Span(),
			&ast.PointerType{Base: &ast.AliasType{Name: contextTypeName}},
			kw.Expr.Type(),
		)

		r.resolveStmt(scope, kw.Body)
	default:
		report.ICE("unknown keyword statement: %s", kw.Keyword)
	}
}
