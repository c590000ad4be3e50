package ast

// Op is an operator kind.
type Op int

// Enumeration of operators.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe

	OpAnd
	OpOr
	OpNot
	OpNeg

	OpRef
	OpDeref

	OpMember
	OpSubscript

	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
)

// opSpellings maps each operator to its spelling in both the source and the
// output language.
var opSpellings = [...]string{
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpMod:       "%",
	OpEq:        "==",
	OpNe:        "!=",
	OpLt:        "<",
	OpGt:        ">",
	OpLe:        "<=",
	OpGe:        ">=",
	OpAnd:       "&&",
	OpOr:        "||",
	OpNot:       "!",
	OpNeg:       "-",
	OpRef:       "&",
	OpDeref:     "*",
	OpMember:    ".",
	OpSubscript: "[]",
	OpAssign:    "=",
	OpAddAssign: "+=",
	OpSubAssign: "-=",
	OpMulAssign: "*=",
	OpDivAssign: "/=",
	OpModAssign: "%=",
}

func (op Op) String() string {
	if op >= 0 && int(op) < len(opSpellings) {
		return opSpellings[op]
	}

	return ""
}

// -----------------------------------------------------------------------------

// Keyword is the kind of a keyword statement.
type Keyword int

// Enumeration of keyword statement kinds.
const (
	KwReturn Keyword = iota
	KwDefer
	KwPushContext
)

var keywordSpellings = [...]string{
	KwReturn:      "return",
	KwDefer:       "defer",
	KwPushContext: "push_context",
}

func (kw Keyword) String() string {
	if kw >= 0 && int(kw) < len(keywordSpellings) {
		return keywordSpellings[kw]
	}

	return ""
}
