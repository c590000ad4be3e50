package syntax

import (
	"bufio"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"

	"github.com/sergey-rogatin/compiler/report"
)

// lexAll lexes src up to and excluding the EOF token.
func lexAll(src string) (toks []*Token, err error) {
	defer report.Catch(&err)

	l := NewLexer(bufio.NewReader(strings.NewReader(src)))
	for tok := l.NextToken(); tok.Kind != TOK_EOF; tok = l.NextToken() {
		toks = append(toks, tok)
	}

	return toks, nil
}

func kindsOf(toks []*Token) []int {
	var kinds []int
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	return kinds
}

func TestLexDeclarationOperators(t *testing.T) {
	toks, err := lexAll("a :: b := c : d -> e")
	be.Err(t, err, nil)

	want := []int{
		TOK_IDENT, TOK_DCOLON, TOK_IDENT, TOK_DECLARE, TOK_IDENT,
		TOK_COLON, TOK_IDENT, TOK_ARROW, TOK_IDENT,
	}
	if diff := cmp.Diff(want, kindsOf(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  int
	}{
		{"+", TOK_PLUS},
		{"+=", TOK_PLUSEQ},
		{"-", TOK_MINUS},
		{"-=", TOK_MINUSEQ},
		{"*", TOK_STAR},
		{"/", TOK_DIV},
		{"/=", TOK_DIVEQ},
		{"%=", TOK_MODEQ},
		{"==", TOK_EQ},
		{"!=", TOK_NEQ},
		{"<=", TOK_LTEQ},
		{">", TOK_GT},
		{"&&", TOK_LAND},
		{"||", TOK_LOR},
		{"&", TOK_AMP},
		{"!", TOK_NOT},
		{"=", TOK_ASSIGN},
	}

	for _, tt := range tests {
		toks, err := lexAll(tt.input)
		be.Err(t, err, nil)
		be.Equal(t, len(toks), 1)
		be.Equal(t, toks[0].Kind, tt.kind)
		be.Equal(t, toks[0].Value, tt.input)
	}
}

func TestLexKeywords(t *testing.T) {
	toks, err := lexAll("struct enum cast if else for return defer push_context structure")
	be.Err(t, err, nil)

	want := []int{
		TOK_STRUCT, TOK_ENUM, TOK_CAST, TOK_IF, TOK_ELSE, TOK_FOR,
		TOK_RETURN, TOK_DEFER, TOK_PUSHCTX, TOK_IDENT,
	}
	if diff := cmp.Diff(want, kindsOf(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  int
		value string
	}{
		{"12345", TOK_INTLIT, "12345"},
		{"1_000_000", TOK_INTLIT, "1000000"},
		{"0x1F", TOK_INTLIT, "0x1F"},
		{"0b101", TOK_INTLIT, "0b101"},
		{"0o17", TOK_INTLIT, "0o17"},
		{"3.25", TOK_FLOATLIT, "3.25"},
		{"1e-3", TOK_FLOATLIT, "1e-3"},
	}

	for _, tt := range tests {
		toks, err := lexAll(tt.input)
		be.Err(t, err, nil)
		be.Equal(t, len(toks), 1)
		be.Equal(t, toks[0].Kind, tt.kind)
		be.Equal(t, toks[0].Value, tt.value)
	}
}

func TestLexIntBeforeMemberAccess(t *testing.T) {
	toks, err := lexAll("p[1].x")
	be.Err(t, err, nil)

	want := []int{TOK_IDENT, TOK_LBRACKET, TOK_INTLIT, TOK_RBRACKET, TOK_DOT, TOK_IDENT}
	if diff := cmp.Diff(want, kindsOf(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexStringKeepsEscapes(t *testing.T) {
	toks, err := lexAll(`"a\n\x41\"b"`)
	be.Err(t, err, nil)
	be.Equal(t, len(toks), 1)
	be.Equal(t, toks[0].Kind, TOK_STRINGLIT)
	be.Equal(t, toks[0].Value, `a\n\x41\"b`)
}

func TestLexKeepsMultibyteRunes(t *testing.T) {
	toks, err := lexAll(`"héllo ✓"`)
	be.Err(t, err, nil)
	be.Equal(t, toks[0].Value, "héllo ✓")
}

func TestLexSkipsComments(t *testing.T) {
	toks, err := lexAll("a // line comment\n/* block\ncomment */ b")
	be.Err(t, err, nil)
	be.Equal(t, len(toks), 2)
	be.Equal(t, toks[0].Value, "a")
	be.Equal(t, toks[1].Value, "b")
	be.Equal(t, toks[1].Span.StartLine, 2)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"open`, "unclosed string literal"},
		{"\"a\nb\"", "newline"},
		{`"\q"`, "unknown escape sequence"},
		{`"\xZZ"`, "hexadecimal"},
		{"0x", "incomplete numeric literal"},
		{"2e", "incomplete numeric literal"},
		{"a | b", "unknown rune"},
		{"@", "unknown rune"},
		{"/* never closed", "unclosed block comment"},
		{"\"a\xffb\"", "invalid UTF-8"},
		{"x\xc3", "invalid UTF-8"},
	}

	for _, tt := range tests {
		_, err := lexAll(tt.input)
		be.Err(t, err, tt.want)

		cerr, ok := err.(*report.CompileError)
		be.True(t, ok)
		be.Equal(t, cerr.Kind, report.SyntaxError)
	}
}
