package syntax

import (
	"bufio"
	"io"
	"strings"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for a source file.  It is a recursive descent parser:
// all parsing functions assume that they begin with the parser centered on the
// first token of their production and must consume all tokens (including the
// last) of their production, leaving the parser on the next token.  Syntax
// errors are raised as panics and recovered at the API boundary.  The parser
// performs no symbol lookups: names are bound by the resolver.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token the parser was positioned on before the current
	// token.
	lookbehind *Token

	// lookahead holds tokens lexed past the current token by peek.
	lookahead []*Token
}

// NewParser creates a new parser for the given file reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(bufio.NewReader(r))}
}

// Parse parses a whole source file into its top-level declarations in source
// order.
func (p *Parser) Parse() (decls []*ast.Decl, err error) {
	defer report.Catch(&err)

	p.next()

	return p.parseFile(), nil
}

// Parse parses source text into its top-level declarations.
func Parse(src string) ([]*ast.Decl, error) {
	return NewParser(strings.NewReader(src)).Parse()
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.lookbehind = p.tok

	if len(p.lookahead) > 0 {
		p.tok = p.lookahead[0]
		p.lookahead = p.lookahead[1:]
	} else {
		p.tok = p.lexer.NextToken()
	}
}

// peek returns the token n tokens past the current one without moving the
// parser.  peek(0) is the current token.
func (p *Parser) peek(n int) *Token {
	if n == 0 {
		return p.tok
	}

	for len(p.lookahead) < n {
		if len(p.lookahead) > 0 && p.lookahead[len(p.lookahead)-1].Kind == TOK_EOF {
			return p.lookahead[len(p.lookahead)-1]
		}

		p.lookahead = append(p.lookahead, p.lexer.NextToken())
	}

	return p.lookahead[n-1]
}

// has returns whether the parser is on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind, moves past it
// and returns it.  Any other token is rejected.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.error(p.tok.Span, "expected %s but got %s", tokenKindName(kind), p.describe(p.tok))
	}

	p.next()
	return p.lookbehind
}

// -----------------------------------------------------------------------------

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	p.error(p.tok.Span, "unexpected %s", p.describe(p.tok))
}

// describe returns the printable form of a token for error messages.
func (p *Parser) describe(tok *Token) string {
	switch tok.Kind {
	case TOK_EOF:
		return "end of file"
	case TOK_STRINGLIT:
		return "string literal"
	default:
		return "token: `" + tok.Value + "`"
	}
}

// error raises a syntax error on the given span.
func (p *Parser) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(report.SyntaxError, span, msg, args...))
}
