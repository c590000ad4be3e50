package syntax

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sergey-rogatin/compiler/report"
)

// Lexer turns a source file into tokens one at a time.  Lexical errors are
// raised as panics of *report.CompileError and recovered by the caller of the
// parser.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
	}
}

// NextToken returns the next token, or an EOF token once input runs out.
func (l *Lexer) NextToken() *Token {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok := l.lexCommentOrDiv(); tok != nil {
				return tok
			}
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF)
}

// -----------------------------------------------------------------------------

// symbolPatterns holds every punctuation and operator spelling.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	// `/` and `/=` are lexed with comments.
	"%": TOK_MOD,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,
	"&":  TOK_AMP,

	"=":  TOK_ASSIGN,
	"+=": TOK_PLUSEQ,
	"-=": TOK_MINUSEQ,
	"*=": TOK_STAREQ,
	"/=": TOK_DIVEQ,
	"%=": TOK_MODEQ,

	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	"{":  TOK_LBRACE,
	"}":  TOK_RBRACE,
	"[":  TOK_LBRACKET,
	"]":  TOK_RBRACKET,
	",":  TOK_COMMA,
	".":  TOK_DOT,
	";":  TOK_SEMI,
	":":  TOK_COLON,
	"::": TOK_DCOLON,
	":=": TOK_DECLARE,
	"->": TOK_ARROW,
}

// lexPunctOrOper lexes the longest symbol matching the input.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()
	l.eat()

	for next := l.peek(); next != -1; next = l.peek() {
		if _, ok := symbolPatterns[l.tokBuff.String()+string(next)]; !ok {
			break
		}

		l.eat()
	}

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		l.error("unknown rune: `%s`", l.tokBuff.String())
	}

	return l.makeToken(kind)
}

// -----------------------------------------------------------------------------

// keywordPatterns holds the reserved words.
var keywordPatterns = map[string]int{
	"struct": TOK_STRUCT,
	"enum":   TOK_ENUM,
	"cast":   TOK_CAST,

	"if":           TOK_IF,
	"else":         TOK_ELSE,
	"for":          TOK_FOR,
	"return":       TOK_RETURN,
	"defer":        TOK_DEFER,
	"push_context": TOK_PUSHCTX,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()
	l.eat()

	for {
		c := l.peek()
		if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	if kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kind)
	}

	return l.makeToken(TOK_IDENT)
}

// -----------------------------------------------------------------------------

// basePrefixes maps the rune after a leading zero to the digit class of the
// literal it introduces.
var basePrefixes = map[rune]func(rune) bool{
	'b': func(c rune) bool { return c == '0' || c == '1' },
	'o': func(c rune) bool { return '0' <= c && c <= '7' },
	'x': isHexDigit,
}

// lexNumericLit lexes an integer or float literal.  Prefixed literals are
// always integers; the prefix is kept in the token value.  Underscores are
// dropped.
func (l *Lexer) lexNumericLit() *Token {
	l.mark()

	if l.eat() == '0' {
		if isDigit, ok := basePrefixes[l.peek()]; ok {
			l.eat()
			l.eatDigits(isDigit)
			return l.makeToken(TOK_INTLIT)
		}
	}

	kind := TOK_INTLIT
	l.skipDigits()

	// `1.x` is a member access, not a fraction.
	if l.peek() == '.' && isDecimalDigit(l.peekSecond()) {
		l.eat()
		l.skipDigits()
		kind = TOK_FLOATLIT
	}

	if c := l.peek(); c == 'e' || c == 'E' {
		l.eat()
		if l.peek() == '-' {
			l.eat()
		}

		l.eatDigits(isDecimalDigit)
		kind = TOK_FLOATLIT
	}

	return l.makeToken(kind)
}

// eatDigits consumes a run of digits of one class.  At least one digit is
// required.
func (l *Lexer) eatDigits(isDigit func(rune) bool) {
	n := 0
	for c := l.peek(); isDigit(c) || c == '_'; c = l.peek() {
		if c == '_' {
			l.skip()
		} else {
			l.eat()
			n++
		}
	}

	if n == 0 {
		l.error("incomplete numeric literal")
	}
}

// skipDigits consumes any decimal digits that follow.
func (l *Lexer) skipDigits() {
	for c := l.peek(); isDecimalDigit(c) || c == '_'; c = l.peek() {
		if c == '_' {
			l.skip()
		} else {
			l.eat()
		}
	}
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal.  Escape sequences are validated but
// kept as written: the output language shares them.
func (l *Lexer) lexStringLit() *Token {
	l.mark()
	l.skip()

	for {
		switch l.peek() {
		case -1:
			l.error("unclosed string literal")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT)
		case '\\':
			l.eat()
			l.eatEscapeSequence()
		case '\n':
			l.error("string literal cannot contain a newline")
		default:
			l.eat()
		}
	}
}

// eatEscapeSequence consumes an escape sequence.  This assumes the leading `\`
// has already been consumed.
func (l *Lexer) eatEscapeSequence() {
	c := l.eat()

	switch c {
	case -1:
		l.error("expected escape sequence not end of file")
	case 'a', 'b', 'f', 'n', 'r', 't', 'v', '0', '\'', '\\', '"':
	case 'x':
		for i := 0; i < 2; i++ {
			if c := l.eat(); !isHexDigit(c) {
				l.error("expected 2 digit hexadecimal value")
			}
		}
	default:
		l.error("unknown escape sequence: `\\%c`", c)
	}
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.  Nil is returned if a
// comment was skipped.
func (l *Lexer) lexCommentOrDiv() *Token {
	l.mark()
	l.eat()

	switch l.peek() {
	case '/':
		l.tokBuff.Reset()
		for c := l.skip(); c != '\n' && c != -1; c = l.skip() {
		}
	case '*':
		l.tokBuff.Reset()
		l.skip()

		for {
			c := l.skip()
			if c == -1 {
				l.error("unclosed block comment")
			}

			if c == '*' && l.peek() == '/' {
				l.skip()
				break
			}
		}
	case '=':
		l.eat()
		return l.makeToken(TOK_DIVEQ)
	default:
		return l.makeToken(TOK_DIV)
	}

	return nil
}

// -----------------------------------------------------------------------------

// mark records the start of the next token.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken turns the buffered text into a token and clears the buffer.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan spans from the last mark to the current position.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// error raises a syntax error over the token being lexed.
func (l *Lexer) error(msg string, args ...interface{}) {
	panic(report.Raise(report.SyntaxError, l.getSpan(), msg, args...))
}

// -----------------------------------------------------------------------------

// eat consumes a rune into the token buffer.
func (l *Lexer) eat() rune {
	c := l.read()
	if c != -1 {
		l.tokBuff.WriteRune(c)
	}

	return c
}

// skip consumes a rune without buffering it.
func (l *Lexer) skip() rune {
	return l.read()
}

// peek returns the next rune without consuming it, or -1 at end of file.
func (l *Lexer) peek() rune {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1
		}

		l.error("failed to read source: %s", err)
	}

	if err = l.file.UnreadRune(); err != nil {
		l.error("failed to read source: %s", err)
	}

	return c
}

// peekSecond returns the byte after the next one as a rune, or -1.  It is only
// used after an ASCII rune.
func (l *Lexer) peekSecond() rune {
	b, _ := l.file.Peek(2)
	if len(b) < 2 {
		return -1
	}

	return rune(b[1])
}

// read consumes one rune and updates the lexer's position.  Source text must
// be valid UTF-8.
func (l *Lexer) read() rune {
	c, size, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1
		}

		l.error("failed to read source: %s", err)
	}

	if c == utf8.RuneError && size == 1 {
		l.error("invalid UTF-8 in source text")
	}

	l.updatePos(c)
	return c
}

// updatePos advances the position past c.  Tabs count as four columns.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
