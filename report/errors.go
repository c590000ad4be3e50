package report

import (
	"fmt"
)

// TextSpan represents a range or "span" of source text.  Text spans are
// inclusive on both sides: the starting position is the position of the first
// character in the span and the ending position is the position of the last
// character in the span.  The line and column numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.  Either span may be nil in which case the other is used.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	if start == nil {
		return end
	} else if end == nil {
		return start
	}

	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// -----------------------------------------------------------------------------

// Kind classifies a compile error.
type Kind int

// Enumeration of compile error kinds.
const (
	TypeMismatch Kind = iota
	UnsupportedTypeComparison
	ConstAssignmentViolation
	IllegalPointerArithmetic
	UnresolvedMember
	UndefinedSymbol
	DependencyCycle
	SyntaxError
	InternalInvariantViolation
)

var kindNames = [...]string{
	TypeMismatch:               "type mismatch",
	UnsupportedTypeComparison:  "unsupported type comparison",
	ConstAssignmentViolation:   "constant assignment",
	IllegalPointerArithmetic:   "illegal pointer arithmetic",
	UnresolvedMember:           "unresolved member",
	UndefinedSymbol:            "undefined symbol",
	DependencyCycle:            "dependency cycle",
	SyntaxError:                "syntax error",
	InternalInvariantViolation: "internal invariant violation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// CompileError is a compilation error that occurs in a context in which the
// file is known by the error handler and thus doesn't need to be passed along
// with the error.
type CompileError struct {
	// The kind of the error.
	Kind Kind

	// The error message.
	Message string

	// The span over which the error occurs.  May be nil.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return fmt.Sprintf("%s: %s", ce.Kind, ce.Message)
	}

	return fmt.Sprintf("%d:%d: %s: %s", ce.Span.StartLine+1, ce.Span.StartCol+1, ce.Kind, ce.Message)
}

// Raise creates a new compile error.  It is typically passed directly to
// `panic` and recovered by a deferred call to Catch.
func Raise(kind Kind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// ICE raises an internal invariant violation.  It never returns.
func ICE(msg string, args ...interface{}) {
	panic(Raise(InternalInvariantViolation, nil, msg, args...))
}

// Catch recovers a compile error raised with `panic` and stores it into the
// given error pointer.  Panics of any other value are re-raised: they are not
// compile errors but bugs.
// NB: This function must ALWAYS be deferred.
func Catch(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
		} else {
			panic(x)
		}
	}
}
