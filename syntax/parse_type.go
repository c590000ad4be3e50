package syntax

import "github.com/sergey-rogatin/compiler/ast"

// type := 'IDENT' | '*' type | '[' 'INTLIT' ']' type | func_type
//       | struct_type | enum_type ;
func (p *Parser) parseType() ast.Type {
	switch p.tok.Kind {
	case TOK_IDENT:
		p.next()
		return &ast.AliasType{Name: p.lookbehind.Value}
	case TOK_STAR:
		p.next()
		return &ast.PointerType{Base: p.parseType()}
	case TOK_LBRACKET:
		return p.parseArrayType()
	case TOK_LPAREN:
		return p.parseFuncType()
	case TOK_STRUCT:
		return p.parseStructType()
	case TOK_ENUM:
		return p.parseEnumType()
	default:
		p.reject()
		return nil
	}
}

// array_type := '[' 'INTLIT' ']' type ;
func (p *Parser) parseArrayType() *ast.ArrayType {
	p.want(TOK_LBRACKET)

	count := p.parseIntValue(p.want(TOK_INTLIT))

	p.want(TOK_RBRACKET)

	return &ast.ArrayType{Item: p.parseType(), Count: count}
}

// isFuncTypeStart returns whether the parser is positioned at the start of a
// function type rather than a parenthesized expression: the `(` must be
// followed by `)` or by a parameter name and a colon.
func (p *Parser) isFuncTypeStart() bool {
	if !p.has(TOK_LPAREN) {
		return false
	}

	switch p.peek(1).Kind {
	case TOK_RPAREN:
		return true
	case TOK_IDENT:
		return p.peek(2).Kind == TOK_COLON
	}

	return false
}

// func_type := '(' [func_param {',' func_param}] ')' ['->' type] ;
// func_param := 'IDENT' ':' type ;
func (p *Parser) parseFuncType() *ast.FuncType {
	p.want(TOK_LPAREN)

	ft := &ast.FuncType{}
	paramNames := make(map[string]struct{})

	for !p.has(TOK_RPAREN) {
		nameTok := p.want(TOK_IDENT)
		p.want(TOK_COLON)
		typ := p.parseType()

		if _, ok := paramNames[nameTok.Value]; ok {
			p.error(nameTok.Span, "multiple parameters named `%s`", nameTok.Value)
		}
		paramNames[nameTok.Value] = struct{}{}

		ft.Params = append(ft.Params, ast.NewDecl(nameTok.Span, nameTok.Value, typ, nil, false))

		if p.has(TOK_COMMA) {
			p.next()
		} else {
			break
		}
	}

	p.want(TOK_RPAREN)

	if p.has(TOK_ARROW) {
		p.next()
		ft.Return = p.parseType()
	} else {
		ft.Return = &ast.AliasType{Name: "void"}
	}

	return ft
}

// struct_type := 'struct' '{' {struct_field} '}' ;
// struct_field := 'IDENT' ':' type ';' ;
func (p *Parser) parseStructType() *ast.StructType {
	p.want(TOK_STRUCT)
	p.want(TOK_LBRACE)

	st := &ast.StructType{}
	for !p.has(TOK_RBRACE) {
		nameTok := p.want(TOK_IDENT)
		p.want(TOK_COLON)
		typ := p.parseType()
		p.want(TOK_SEMI)

		if _, ok := st.Member(nameTok.Value); ok {
			p.error(nameTok.Span, "multiple fields named `%s`", nameTok.Value)
		}

		st.Members = append(st.Members, ast.NewDecl(nameTok.Span, nameTok.Value, typ, nil, false))
	}

	p.want(TOK_RBRACE)
	return st
}

// enum_type := 'enum' '{' 'IDENT' {',' 'IDENT'} [','] '}' ;
func (p *Parser) parseEnumType() *ast.EnumType {
	p.want(TOK_ENUM)
	p.want(TOK_LBRACE)

	et := &ast.EnumType{}
	for {
		nameTok := p.want(TOK_IDENT)

		if et.HasMember(nameTok.Value) {
			p.error(nameTok.Span, "multiple enum members named `%s`", nameTok.Value)
		}
		et.Members = append(et.Members, nameTok.Value)

		if !p.has(TOK_COMMA) {
			break
		}

		p.next()
		if p.has(TOK_RBRACE) {
			break
		}
	}

	p.want(TOK_RBRACE)
	return et
}
