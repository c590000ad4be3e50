package codegen

import (
	"strings"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/depm"
	"github.com/sergey-rogatin/compiler/report"
)

// Emitter converts resolved declarations into C source text.  All output is
// appended to a single buffer in the order declarations are emitted.
type Emitter struct {
	// uni is the universe of the compilation being emitted.
	uni *depm.Universe

	// out is the output text.
	out strings.Builder

	// indent is the current indentation level.
	indent int

	// enumName is the name of the enum currently being defined, if any.  It is
	// used to prefix enum member names.
	enumName string
}

// NewEmitter creates a new emitter for the given universe.
func NewEmitter(uni *depm.Universe) *Emitter {
	return &Emitter{uni: uni}
}

// String returns all the text emitted so far.
func (e *Emitter) String() string {
	return e.out.String()
}

// Len returns the number of bytes emitted so far.
func (e *Emitter) Len() int {
	return e.out.Len()
}

// EmitDecl emits a declaration to the given depth and updates its emit
// state.  At Partial depth, functions are emitted as prototypes and struct
// type definitions as opaque forward declarations; all other declarations are
// emitted in full.
func (e *Emitter) EmitDecl(decl *ast.Decl, depth ast.ResolveState) {
	switch depth {
	case ast.Partial:
		if _, ok := decl.FuncOf(); ok {
			e.emitSignature(decl)
			decl.EmitState = ast.Partial
		} else if e.isStructDef(decl) {
			e.write("typedef struct ", decl.Name, " ", decl.Name)
			decl.EmitState = ast.Partial
		} else {
			e.emitDeclFull(decl)
			decl.EmitState = ast.Full
		}
	case ast.Full:
		if decl.EmitState == ast.Partial && e.isStructDef(decl) {
			st, _ := decl.TypeValueOf()
			e.write("struct ", decl.Name, " ")
			e.emitStructBody(st.(*ast.StructType))
		} else {
			e.emitDeclFull(decl)
		}

		decl.EmitState = ast.Full
	default:
		report.ICE("invalid emit depth: %s", depth)
	}
}

// EmitTerminator writes the punctuation following a top-level declaration
// emitted to the given depth.
func (e *Emitter) EmitTerminator(decl *ast.Decl, depth ast.ResolveState) {
	if _, ok := decl.FuncOf(); ok {
		if depth == ast.Partial {
			e.write(";\n")
		} else {
			e.write("\n\n")
		}
	} else if decl.IsStructDef() || decl.IsEnumDef() {
		e.write(";\n\n")
	} else {
		e.write(";\n")
	}
}

// -----------------------------------------------------------------------------

// emitDeclFull emits the complete form of a declaration.
func (e *Emitter) emitDeclFull(decl *ast.Decl) {
	if e.uni.IsMetaType(decl.Type) {
		typ, ok := decl.TypeValueOf()
		if !ok {
			report.ICE("type definition `%s` has no type value", decl.Name)
		}

		e.write("typedef ")

		e.enumName = decl.Name
		e.emitTypePrefix(typ)
		e.write(" ")

		if _, ok := typ.(*ast.FuncType); ok {
			e.write("(*", decl.Name, ")")
		} else {
			e.write(decl.Name)
		}

		e.emitTypePostfix(typ)
		e.enumName = ""
		return
	}

	e.emitSignature(decl)

	switch v := decl.Value.(type) {
	case nil:
	case *ast.Func:
		e.write(" ")
		e.emitBlock(v.Body.Stmts)
	case ast.Expr:
		e.write(" = ")
		e.emitExpr(v)
	default:
		report.ICE("unknown declaration value: %T", v)
	}
}

// emitSignature emits the type and name of a value declaration.  Values of
// function type which are not function definitions are function pointers.
func (e *Emitter) emitSignature(decl *ast.Decl) {
	if decl.Type == nil {
		report.ICE("declaration `%s` has no type", decl.Name)
	}

	e.emitTypePrefix(decl.Type)
	e.write(" ")

	_, isFuncType := decl.Type.(*ast.FuncType)
	_, isFuncDef := decl.FuncOf()
	if isFuncType && !isFuncDef {
		e.write("(*", decl.Name, ")")
	} else {
		e.write(decl.Name)
	}

	e.emitTypePostfix(decl.Type)
}

// isStructDef returns whether a declaration defines a struct type.
func (e *Emitter) isStructDef(decl *ast.Decl) bool {
	if !e.uni.IsMetaType(decl.Type) {
		return false
	}

	typ, ok := decl.TypeValueOf()
	if !ok {
		return false
	}

	_, ok = typ.(*ast.StructType)
	return ok
}

// -----------------------------------------------------------------------------

// write appends text to the output.
func (e *Emitter) write(text ...string) {
	for _, t := range text {
		e.out.WriteString(t)
	}
}

// emitIndent writes the current indentation.
func (e *Emitter) emitIndent() {
	for i := 0; i < e.indent; i++ {
		e.out.WriteString("  ")
	}
}
