package syntax

import "github.com/sergey-rogatin/compiler/ast"

// file := {decl} 'EOF' ;
func (p *Parser) parseFile() []*ast.Decl {
	var decls []*ast.Decl

	for !p.has(TOK_EOF) {
		decls = append(decls, p.parseDeclStmt())
	}

	return decls
}

// isDeclStart returns whether the parser is positioned at the start of a
// declaration.
func (p *Parser) isDeclStart() bool {
	if !p.has(TOK_IDENT) {
		return false
	}

	switch p.peek(1).Kind {
	case TOK_COLON, TOK_DCOLON, TOK_DECLARE:
		return true
	}

	return false
}

// decl_stmt := decl [';'] ;
//
// The semicolon may only be omitted after a value ending in a brace: a
// function body or a struct or enum type.
func (p *Parser) parseDeclStmt() *ast.Decl {
	decl := p.parseDecl()

	if p.has(TOK_SEMI) {
		p.next()
	} else if !p.lookbehindIsBrace() {
		p.want(TOK_SEMI)
	}

	return decl
}

// lookbehindIsBrace returns whether the last consumed token was a `}`.
func (p *Parser) lookbehindIsBrace() bool {
	return p.lookbehind != nil && p.lookbehind.Kind == TOK_RBRACE
}

// decl := 'IDENT' (':' [type] [(':' | '=') value] | '::' value | ':=' value) ;
func (p *Parser) parseDecl() *ast.Decl {
	nameTok := p.want(TOK_IDENT)

	var typ ast.Type
	var value ast.Value
	var isConst bool

	switch p.tok.Kind {
	case TOK_DCOLON:
		p.next()

		isConst = true
		value = p.parseValue()
	case TOK_DECLARE:
		p.next()

		value = p.parseValue()
	case TOK_COLON:
		p.next()

		if !p.has(TOK_COLON) && !p.has(TOK_ASSIGN) {
			typ = p.parseType()
		}

		switch p.tok.Kind {
		case TOK_COLON:
			p.next()

			isConst = true
			value = p.parseValue()
		case TOK_ASSIGN:
			p.next()

			value = p.parseValue()
		default:
			if typ == nil {
				p.reject()
			}
		}
	default:
		p.reject()
	}

	decl := ast.NewDecl(nameTok.Span, nameTok.Value, typ, value, isConst)
	decl.ASTBase = ast.NewASTBaseOver(nameTok.Span, p.lookbehind.Span)
	return decl
}

// value := func_type block | expr ;
func (p *Parser) parseValue() ast.Value {
	if p.isFuncTypeStart() {
		startSpan := p.tok.Span
		ft := p.parseFuncType()

		// A signature without a body is a function type value.
		if !p.has(TOK_LBRACE) {
			return p.continueExpr(ast.NewTypeValue(p.spanFrom(startSpan), ft))
		}

		body := p.parseBlock()
		return &ast.Func{
			ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			Type:    ft,
			Body:    body,
		}
	}

	return p.parseExpr()
}
