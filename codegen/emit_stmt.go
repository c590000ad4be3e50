package codegen

import (
	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// emitBlock emits a braced list of statements.  Deferred statements produce
// no output.
func (e *Emitter) emitBlock(stmts []ast.Stmt) {
	e.write("{\n")

	e.indent++
	for _, stmt := range stmts {
		if kw, ok := stmt.(*ast.KeywordStmt); ok && kw.Keyword == ast.KwDefer {
			continue
		}

		e.emitIndent()
		e.emitStmt(stmt, true)
		e.write("\n")
	}
	e.indent--

	e.emitIndent()
	e.write("}")
}

// emitStmt emits a statement.  If semi is false, simple statements are not
// terminated with a semicolon: eg. the post statement of a for loop.
func (e *Emitter) emitStmt(stmt ast.Stmt, semi bool) {
	switch v := stmt.(type) {
	case *ast.AssignStmt:
		e.emitExpr(v.Left)
		e.write(" ", v.Op.String(), " ")
		e.emitExpr(v.Right)

		if semi {
			e.write(";")
		}
	case *ast.ExprStmt:
		e.emitExpr(v.Expr)

		if semi {
			e.write(";")
		}
	case *ast.IfStmt:
		e.write("if (")
		e.emitExpr(v.Cond)
		e.write(") ")
		e.emitStmt(v.Then, true)

		if v.Else != nil {
			e.write(" else ")
			e.emitStmt(v.Else, true)
		}
	case *ast.Block:
		e.emitBlock(v.Stmts)
	case *ast.ForStmt:
		e.write("for (")
		e.EmitDecl(v.Init, ast.Full)
		e.write("; ")
		e.emitExpr(v.Cond)
		e.write("; ")
		e.emitStmt(v.Post, false)
		e.write(") ")
		e.emitStmt(v.Body, true)
	case *ast.KeywordStmt:
		e.emitKeywordStmt(v)
	case *ast.DeclStmt:
		e.EmitDecl(v.Decl, ast.Full)

		if semi {
			e.write(";")
		}
	default:
		report.ICE("unknown statement kind: %T", stmt)
	}
}

// pushedContextName is the temporary holding a pushed context while `ctx` is
// rebound.
const pushedContextName = "__pushed_ctx"

// emitKeywordStmt emits a keyword statement.
func (e *Emitter) emitKeywordStmt(kw *ast.KeywordStmt) {
	switch kw.Keyword {
	case ast.KwReturn:
		e.write("return")
		if kw.Expr != nil {
			e.write(" ")
			e.emitExpr(kw.Expr)
		}
		e.write(";")
	case ast.KwPushContext:
		// The new context is evaluated before `ctx` is shadowed so that it may
		// refer to the enclosing context.
		e.write("{\n")
		e.indent++

		e.emitIndent()
		e.emitTypePrefix(kw.Expr.Type())
		e.write(" ", pushedContextName, " = ")
		e.emitExpr(kw.Expr)
		e.write(";\n")

		e.emitIndent()
		e.emitTypePrefix(kw.Expr.Type())
		e.write(" ctx = ", pushedContextName, ";\n")

		body, ok := kw.Body.(*ast.Block)
		if !ok {
			report.ICE("push_context body is not a block")
		}

		for _, stmt := range body.Stmts {
			if inner, ok := stmt.(*ast.KeywordStmt); ok && inner.Keyword == ast.KwDefer {
				continue
			}

			e.emitIndent()
			e.emitStmt(stmt, true)
			e.write("\n")
		}

		e.indent--
		e.emitIndent()
		e.write("}")
	case ast.KwDefer:
	default:
		report.ICE("unknown keyword statement: %s", kw.Keyword)
	}
}
