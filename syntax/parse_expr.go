package syntax

import (
	"strconv"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// expr := or_expr ;
func (p *Parser) parseExpr() ast.Expr {
	return p.precedenceParse(p.parseUnaryExpr(), len(precTable))
}

// continueExpr parses the rest of an expression whose first atom has already
// been parsed.
func (p *Parser) continueExpr(atom ast.Expr) ast.Expr {
	return p.precedenceParse(p.parseTrailers(atom), len(precTable))
}

// -----------------------------------------------------------------------------

// precTable is the operator precedence table for binary operators. The table is
// ordered highest to lowest precedence.
var precTable = [][]int{
	{TOK_STAR, TOK_DIV, TOK_MOD},
	{TOK_PLUS, TOK_MINUS},
	{TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ},
	{TOK_EQ, TOK_NEQ},
	{TOK_LAND},
	{TOK_LOR},
}

// binaryOps maps binary operator tokens to their operators.
var binaryOps = map[int]ast.Op{
	TOK_STAR:  ast.OpMul,
	TOK_DIV:   ast.OpDiv,
	TOK_MOD:   ast.OpMod,
	TOK_PLUS:  ast.OpAdd,
	TOK_MINUS: ast.OpSub,
	TOK_LT:    ast.OpLt,
	TOK_GT:    ast.OpGt,
	TOK_LTEQ:  ast.OpLe,
	TOK_GTEQ:  ast.OpGe,
	TOK_EQ:    ast.OpEq,
	TOK_NEQ:   ast.OpNe,
	TOK_LAND:  ast.OpAnd,
	TOK_LOR:   ast.OpOr,
}

// or_expr := and_expr {'||' and_expr} ;
// and_expr := eq_expr {'&&' eq_expr} ;
// eq_expr := comp_expr {('==' | '!=') comp_expr} ;
// comp_expr := arith_expr {('<' | '>' | '<=' | '>=') arith_expr} ;
// arith_expr := term {('+' | '-') term} ;
// term := unary_expr {('*' | '/' | '%') unary_expr} ;
func (p *Parser) precedenceParse(lhs ast.Expr, maxPrec int) ast.Expr {
	for {
		opPrec := p.operatorPrec(maxPrec)
		if opPrec < 0 {
			return lhs
		}

		op := binaryOps[p.tok.Kind]
		p.next()

		rhs := p.parseUnaryExpr()

		// Bind every following operator of higher precedence to the right
		// operand first.
		for p.operatorPrec(opPrec) >= 0 {
			rhs = p.precedenceParse(rhs, opPrec)
		}

		lhs = &ast.Binary{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
			Op:       op,
			Left:     lhs,
			Right:    rhs,
		}
	}
}

// operatorPrec returns the precedence level of the operator the parser is on
// if it is within precTable[:maxPrec] and -1 otherwise.
func (p *Parser) operatorPrec(maxPrec int) int {
	for prec, precLevel := range precTable[:maxPrec] {
		for _, kind := range precLevel {
			if p.has(kind) {
				return prec
			}
		}
	}

	return -1
}

// -----------------------------------------------------------------------------

// unaryOps maps prefix operator tokens to their operators.
var unaryOps = map[int]ast.Op{
	TOK_MINUS: ast.OpNeg,
	TOK_NOT:   ast.OpNot,
	TOK_AMP:   ast.OpRef,
	TOK_STAR:  ast.OpDeref,
}

// unary_expr := ('-' | '!' | '&' | '*') unary_expr | atom_expr ;
func (p *Parser) parseUnaryExpr() ast.Expr {
	if op, ok := unaryOps[p.tok.Kind]; ok {
		p.next()
		startSpan := p.lookbehind.Span

		operand := p.parseUnaryExpr()
		return &ast.Unary{
			ExprBase: ast.NewExprBase(report.NewSpanOver(startSpan, operand.Span())),
			Op:       op,
			Operand:  operand,
		}
	}

	return p.parseTrailers(p.parseAtom())
}

// atom_expr := atom {trailer} ;
// trailer := '(' [expr {',' expr}] ')' | '.' 'IDENT' | '[' expr ']' ;
func (p *Parser) parseTrailers(atom ast.Expr) ast.Expr {
	for {
		switch p.tok.Kind {
		case TOK_LPAREN:
			p.next()

			var args []ast.Expr
			for !p.has(TOK_RPAREN) {
				args = append(args, p.parseExpr())

				if p.has(TOK_COMMA) {
					p.next()
				} else {
					break
				}
			}

			p.want(TOK_RPAREN)

			atom = &ast.Call{
				ExprBase: ast.NewExprBase(p.spanFrom(atom.Span())),
				Callee:   atom,
				Args:     args,
			}
		case TOK_DOT:
			p.next()

			nameTok := p.want(TOK_IDENT)
			atom = &ast.Binary{
				ExprBase: ast.NewExprBase(p.spanFrom(atom.Span())),
				Op:       ast.OpMember,
				Left:     atom,
				Right:    ast.NewName(nameTok.Span, nameTok.Value),
			}
		case TOK_LBRACKET:
			p.next()

			index := p.parseExpr()
			p.want(TOK_RBRACKET)

			atom = &ast.Binary{
				ExprBase: ast.NewExprBase(p.spanFrom(atom.Span())),
				Op:       ast.OpSubscript,
				Left:     atom,
				Right:    index,
			}
		default:
			return atom
		}
	}
}

// atom := 'IDENT' | 'INTLIT' | 'FLOATLIT' | 'STRINGLIT' | '(' expr ')'
//       | 'cast' '(' type ')' unary_expr | func_type | struct_type
//       | enum_type | array_type ;
func (p *Parser) parseAtom() ast.Expr {
	startSpan := p.tok.Span

	switch p.tok.Kind {
	case TOK_IDENT:
		p.next()
		return ast.NewName(startSpan, p.lookbehind.Value)
	case TOK_INTLIT:
		p.next()
		return &ast.IntLit{
			ExprBase: ast.NewExprBase(startSpan),
			Value:    p.parseIntValue(p.lookbehind),
		}
	case TOK_FLOATLIT:
		p.next()

		value, err := strconv.ParseFloat(p.lookbehind.Value, 64)
		if err != nil {
			p.error(startSpan, "invalid float literal: %s", p.lookbehind.Value)
		}

		return &ast.FloatLit{ExprBase: ast.NewExprBase(startSpan), Value: value}
	case TOK_STRINGLIT:
		p.next()
		return &ast.StringLit{
			ExprBase: ast.NewExprBase(startSpan),
			Text:     p.lookbehind.Value,
			Len:      decodedLen(p.lookbehind.Value),
		}
	case TOK_CAST:
		p.next()

		p.want(TOK_LPAREN)
		typ := p.parseType()
		p.want(TOK_RPAREN)

		operand := p.parseUnaryExpr()
		return &ast.Cast{
			ExprBase: ast.NewExprBase(report.NewSpanOver(startSpan, operand.Span())),
			CastType: typ,
			Operand:  operand,
		}
	case TOK_LPAREN:
		if p.isFuncTypeStart() {
			ft := p.parseFuncType()
			return ast.NewTypeValue(p.spanFrom(startSpan), ft)
		}

		p.next()
		expr := p.parseExpr()
		p.want(TOK_RPAREN)

		return expr
	case TOK_STRUCT, TOK_ENUM, TOK_LBRACKET:
		typ := p.parseType()
		return ast.NewTypeValue(p.spanFrom(startSpan), typ)
	default:
		p.reject()
		return nil
	}
}

// parseIntValue converts an integer literal token to its value.  Literals
// with a leading zero are only treated as prefixed if a base letter follows.
func (p *Parser) parseIntValue(tok *Token) int64 {
	base := 10
	if len(tok.Value) > 1 && tok.Value[0] == '0' {
		switch tok.Value[1] {
		case 'x', 'o', 'b':
			base = 0
		}
	}

	value, err := strconv.ParseInt(tok.Value, base, 64)
	if err != nil {
		p.error(tok.Span, "integer literal out of range: %s", tok.Value)
	}

	return value
}

// decodedLen returns the number of bytes a string literal's text stands for
// once its escape sequences are decoded.
func decodedLen(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			if text[i+1] == 'x' {
				i += 3
			} else {
				i++
			}
		}

		n++
	}

	return n
}

// spanFrom returns the span from the given start to the last consumed token.
func (p *Parser) spanFrom(start *report.TextSpan) *report.TextSpan {
	return report.NewSpanOver(start, p.lookbehind.Span)
}
