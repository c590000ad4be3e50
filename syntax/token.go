package syntax

import "github.com/sergey-rogatin/compiler/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.  This may not directly
	// correspond to its value: eg. the value of a string token has the leading
	// quotes trimmed off for convenience.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_STRUCT = iota
	TOK_ENUM
	TOK_CAST

	TOK_IF
	TOK_ELSE
	TOK_FOR
	TOK_RETURN
	TOK_DEFER
	TOK_PUSHCTX

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_LAND
	TOK_LOR
	TOK_NOT
	TOK_AMP

	TOK_ASSIGN
	TOK_PLUSEQ
	TOK_MINUSEQ
	TOK_STAREQ
	TOK_DIVEQ
	TOK_MODEQ

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_DOT
	TOK_SEMI
	TOK_COLON
	TOK_DCOLON
	TOK_DECLARE
	TOK_ARROW

	TOK_IDENT
	TOK_INTLIT
	TOK_FLOATLIT
	TOK_STRINGLIT

	TOK_EOF
)

// tokenNames gives the printable name of the token kinds which have no fixed
// spelling.
var tokenNames = map[int]string{
	TOK_IDENT:     "identifier",
	TOK_INTLIT:    "integer literal",
	TOK_FLOATLIT:  "float literal",
	TOK_STRINGLIT: "string literal",
	TOK_EOF:       "end of file",
}

// tokenKindName returns the printable name of a token kind.
func tokenKindName(kind int) string {
	if name, ok := tokenNames[kind]; ok {
		return name
	}

	for spelling, k := range symbolPatterns {
		if k == kind {
			return "`" + spelling + "`"
		}
	}

	for spelling, k := range keywordPatterns {
		if k == kind {
			return "`" + spelling + "`"
		}
	}

	return "token"
}
