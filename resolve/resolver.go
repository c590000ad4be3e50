package resolve

import (
	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/codegen"
	"github.com/sergey-rogatin/compiler/depm"
	"github.com/sergey-rogatin/compiler/report"
	"github.com/sergey-rogatin/compiler/typing"
)

// Resolver is responsible for resolving the names and types of declarations
// and driving their emission.  Resolution is demand driven: when a
// declaration refers to another top-level declaration, that declaration is
// resolved and emitted first, to at least the depth the reference needs.  As
// a result, declarations are emitted in dependency order rather than source
// order.
type Resolver struct {
	// The universe of the current compilation.
	uni *depm.Universe

	// The emitter receiving the output of every resolved declaration.
	emitter *codegen.Emitter

	// The top-level declarations in source order.
	topDecls []*ast.Decl

	// The top-level declarations by name.  If several declarations share a
	// name, the first one wins.
	topIndex map[string]*ast.Decl

	// The resolutions currently underway.  A request to resolve a declaration
	// to a depth it is already being resolved to is a dependency cycle.
	inProgress map[progressKey]struct{}

	// The top-level declarations in the order they were first emitted.
	order []*ast.Decl

	// The function whose body is being resolved, if any.  It is used to check
	// return statements.
	currentFunc *ast.Func

	// Whether the resolver is inside a function type definition.  Inside one,
	// named types only need their signatures resolved.
	insideFuncTypedef bool

	// The chain of top-level declarations currently being resolved, outermost
	// first.
	stack []*ast.Decl

	// The innermost top-level declaration being resolved when the last error
	// occurred.
	failed *ast.Decl
}

// progressKey identifies a resolution underway.
type progressKey struct {
	decl  *ast.Decl
	depth ast.ResolveState
}

// NewResolver creates a new resolver for the given top-level declarations.
func NewResolver(uni *depm.Universe, emitter *codegen.Emitter, topDecls []*ast.Decl) *Resolver {
	r := &Resolver{
		uni:        uni,
		emitter:    emitter,
		topIndex:   make(map[string]*ast.Decl),
		inProgress: make(map[progressKey]struct{}),
	}

	r.AddDecls(topDecls...)
	return r
}

// AddDecls appends declarations to the list of top-level declarations.
func (r *Resolver) AddDecls(decls ...*ast.Decl) {
	for _, decl := range decls {
		r.topDecls = append(r.topDecls, decl)

		if _, ok := r.topIndex[decl.Name]; !ok {
			r.topIndex[decl.Name] = decl
		}
	}
}

// Order returns the top-level declarations in the order they were first
// emitted: every declaration appears after the declarations it depends on.
func (r *Resolver) Order() []*ast.Decl {
	return r.order
}

// ResolveAll fully resolves and emits every top-level declaration in source
// order.  Resolution stops at the first error.
func (r *Resolver) ResolveAll() (err error) {
	defer r.catch(&err)

	for _, decl := range r.topDecls {
		r.resolveAndEmit(decl, ast.Full)
	}

	return nil
}

// ResolveAndEmit resolves a top-level declaration to the given depth and then
// emits it to the same depth.  Both steps do nothing if the declaration has
// already reached that depth.
func (r *Resolver) ResolveAndEmit(decl *ast.Decl, depth ast.ResolveState) (err error) {
	defer r.catch(&err)

	r.resolveAndEmit(decl, depth)
	return nil
}

// ResolveName resolves and emits the top-level declaration with the given
// name.  It does nothing if there is no such declaration.
func (r *Resolver) ResolveName(name string, depth ast.ResolveState) (err error) {
	defer r.catch(&err)

	r.resolveName(name, depth)
	return nil
}

// FailedDecl returns the innermost top-level declaration that was being
// resolved when the last error occurred.  It is nil if no error has occurred
// or the error did not occur inside a declaration.
func (r *Resolver) FailedDecl() *ast.Decl {
	return r.failed
}

// catch recovers a compile error and records where it occurred.  The
// resolution state left behind by the error is discarded.
// NB: This function must ALWAYS be deferred.
func (r *Resolver) catch(err *error) {
	x := recover()
	if x == nil {
		return
	}

	if len(r.stack) > 0 {
		r.failed = r.stack[len(r.stack)-1]
	} else {
		r.failed = nil
	}

	r.stack = r.stack[:0]
	r.inProgress = make(map[progressKey]struct{})
	r.currentFunc, r.insideFuncTypedef = nil, false

	if cerr, ok := x.(*report.CompileError); ok {
		*err = cerr
	} else {
		panic(x)
	}
}

// -----------------------------------------------------------------------------

func (r *Resolver) resolveAndEmit(decl *ast.Decl, depth ast.ResolveState) {
	if decl.CheckState < depth {
		key := progressKey{decl, depth}
		if _, ok := r.inProgress[key]; ok {
			r.error(report.DependencyCycle, decl.Span(), "`%s` depends on itself", decl.Name)
		}
		r.inProgress[key] = struct{}{}
		r.stack = append(r.stack, decl)

		// Each top-level declaration is resolved in a fresh context.
		prevFunc, prevTypedef := r.currentFunc, r.insideFuncTypedef
		r.currentFunc, r.insideFuncTypedef = nil, false

		switch depth {
		case ast.Partial:
			r.resolveDeclPartial(r.uni.Global, decl)
		case ast.Full:
			r.resolveDeclFull(r.uni.Global, decl)
		default:
			report.ICE("invalid resolve depth: %s", depth)
		}

		r.currentFunc, r.insideFuncTypedef = prevFunc, prevTypedef
		r.stack = r.stack[:len(r.stack)-1]
		delete(r.inProgress, key)
	}

	if decl.EmitState < depth {
		if decl.EmitState == ast.Unresolved {
			r.order = append(r.order, decl)
		}

		r.emitter.EmitDecl(decl, depth)
		r.emitter.EmitTerminator(decl, depth)
	}
}

// resolveName resolves the top-level declaration with the given name if there
// is one.  Names that only exist in local scopes are ignored.
func (r *Resolver) resolveName(name string, depth ast.ResolveState) {
	if decl, ok := r.topIndex[name]; ok {
		r.resolveAndEmit(decl, depth)
	}
}

// -----------------------------------------------------------------------------

// lookup looks up a declaration by name in the given scope.  If no declaration
// by the given name can be found, then an error is reported.
func (r *Resolver) lookup(scope *ast.Scope, name string, span *report.TextSpan) *ast.Decl {
	if decl, ok := scope.Lookup(name); ok {
		return decl
	}

	r.error(report.UndefinedSymbol, span, "`%s` is not defined", name)
	return nil
}

// mustMatch asserts that the type got is equivalent to the type want.
func (r *Resolver) mustMatch(span *report.TextSpan, want, got ast.Type) {
	eq, err := typing.Equivalent(want, got)
	if err != nil {
		if cerr, ok := err.(*report.CompileError); ok && cerr.Span == nil {
			cerr.Span = span
		}

		panic(err)
	}

	if !eq {
		r.error(report.TypeMismatch, span, "expected %s but got %s", want.Repr(), got.Repr())
	}
}

// error reports an error on the given span that aborts resolution.
func (r *Resolver) error(kind report.Kind, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}
