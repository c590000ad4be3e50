package ast

// Stmt represents a statement.  It is a closed sum over the statement nodes
// defined below.
type Stmt interface {
	ASTNode

	stmtNode()
}

// DeclStmt is a local declaration.
type DeclStmt struct {
	ASTBase

	Decl *Decl
}

// AssignStmt is an assignment or compound assignment.
type AssignStmt struct {
	ASTBase

	Op          Op
	Left, Right Expr
}

// ExprStmt is an expression evaluated for its effects.
type ExprStmt struct {
	ASTBase

	Expr Expr
}

// IfStmt is a conditional.  Else may be nil.
type IfStmt struct {
	ASTBase

	Cond Expr
	Then Stmt
	Else Stmt
}

// Block is a braced list of statements.
type Block struct {
	ASTBase

	Stmts []Stmt
}

// ForStmt is a C-style for loop.
type ForStmt struct {
	ASTBase

	Init *Decl
	Cond Expr
	Post Stmt
	Body Stmt
}

// KeywordStmt is a statement introduced by a keyword.  For `return`, Expr is
// the (optional) returned value.  For `defer`, Body is the deferred statement.
// For `push_context`, Expr is the new context and Body the block it applies
// to.
type KeywordStmt struct {
	ASTBase

	Keyword Keyword
	Expr    Expr
	Body    Stmt
}

func (*DeclStmt) stmtNode()    {}
func (*AssignStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()    {}
func (*IfStmt) stmtNode()      {}
func (*Block) stmtNode()       {}
func (*ForStmt) stmtNode()     {}
func (*KeywordStmt) stmtNode() {}
