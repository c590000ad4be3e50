package syntax

import "github.com/sergey-rogatin/compiler/ast"

// block := '{' {stmt} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.want(TOK_LBRACE).Span

	var stmts []ast.Stmt
	for !p.has(TOK_RBRACE) {
		stmts = append(stmts, p.parseStmt())
	}

	p.want(TOK_RBRACE)

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Stmts:   stmts,
	}
}

// stmt := decl_stmt | block | if_stmt | for_loop | 'return' [expr] ';'
//       | 'defer' stmt | 'push_context' expr block | simple_stmt ';' ;
func (p *Parser) parseStmt() ast.Stmt {
	startSpan := p.tok.Span

	switch p.tok.Kind {
	case TOK_LBRACE:
		return p.parseBlock()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_FOR:
		return p.parseForLoop()
	case TOK_RETURN:
		p.next()

		var expr ast.Expr
		if !p.has(TOK_SEMI) {
			expr = p.parseExpr()
		}

		p.want(TOK_SEMI)

		return &ast.KeywordStmt{
			ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			Keyword: ast.KwReturn,
			Expr:    expr,
		}
	case TOK_DEFER:
		p.next()

		body := p.parseStmt()
		return &ast.KeywordStmt{
			ASTBase: ast.NewASTBaseOver(startSpan, body.Span()),
			Keyword: ast.KwDefer,
			Body:    body,
		}
	case TOK_PUSHCTX:
		p.next()

		expr := p.parseExpr()
		body := p.parseBlock()

		return &ast.KeywordStmt{
			ASTBase: ast.NewASTBaseOver(startSpan, body.Span()),
			Keyword: ast.KwPushContext,
			Expr:    expr,
			Body:    body,
		}
	}

	if p.isDeclStart() {
		decl := p.parseDeclStmt()
		return &ast.DeclStmt{ASTBase: ast.NewASTBaseOn(decl.Span()), Decl: decl}
	}

	stmt := p.parseSimpleStmt()
	p.want(TOK_SEMI)

	return stmt
}

// assignOps maps assignment tokens to their operators.
var assignOps = map[int]ast.Op{
	TOK_ASSIGN:  ast.OpAssign,
	TOK_PLUSEQ:  ast.OpAddAssign,
	TOK_MINUSEQ: ast.OpSubAssign,
	TOK_STAREQ:  ast.OpMulAssign,
	TOK_DIVEQ:   ast.OpDivAssign,
	TOK_MODEQ:   ast.OpModAssign,
}

// simple_stmt := expr [assign_op expr] ;
// assign_op := '=' | '+=' | '-=' | '*=' | '/=' | '%=' ;
func (p *Parser) parseSimpleStmt() ast.Stmt {
	lhs := p.parseExpr()

	if op, ok := assignOps[p.tok.Kind]; ok {
		p.next()

		rhs := p.parseExpr()
		return &ast.AssignStmt{
			ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
			Op:      op,
			Left:    lhs,
			Right:   rhs,
		}
	}

	return &ast.ExprStmt{ASTBase: ast.NewASTBaseOn(lhs.Span()), Expr: lhs}
}

// if_stmt := 'if' expr block ['else' (if_stmt | block)] ;
func (p *Parser) parseIfStmt() *ast.IfStmt {
	startSpan := p.want(TOK_IF).Span

	cond := p.parseExpr()
	then := p.parseBlock()

	var elseStmt ast.Stmt
	if p.has(TOK_ELSE) {
		p.next()

		if p.has(TOK_IF) {
			elseStmt = p.parseIfStmt()
		} else {
			elseStmt = p.parseBlock()
		}
	}

	return &ast.IfStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Cond:    cond,
		Then:    then,
		Else:    elseStmt,
	}
}

// for_loop := 'for' decl ';' expr ';' simple_stmt block ;
func (p *Parser) parseForLoop() *ast.ForStmt {
	startSpan := p.want(TOK_FOR).Span

	if !p.isDeclStart() {
		p.error(p.tok.Span, "expected loop variable declaration")
	}

	init := p.parseDecl()
	p.want(TOK_SEMI)

	cond := p.parseExpr()
	p.want(TOK_SEMI)

	post := p.parseSimpleStmt()
	body := p.parseBlock()

	return &ast.ForStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Init:    init,
		Cond:    cond,
		Post:    post,
		Body:    body,
	}
}
