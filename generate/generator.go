package generate

import (
	"io"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/depm"
	"github.com/sergey-rogatin/compiler/report"
)

// Generator is responsible for exporting resolved top-level declarations as an
// LLVM module: named types become type definitions, functions become external
// function declarations and global values become global definitions.  Function
// bodies are not lowered: the module describes the interface of the compiled C
// output so that other LLVM modules can link against it.
type Generator struct {
	// uni is the universe of the compilation being exported.
	uni *depm.Universe

	// mod is the LLVM module being generated.
	mod *ir.Module

	// globalTypes is a table containing all the named types defined so far.
	globalTypes map[string]types.Type
}

// NewGenerator creates a new generator for the given universe.
func NewGenerator(uni *depm.Universe) *Generator {
	return &Generator{
		uni:         uni,
		mod:         ir.NewModule(),
		globalTypes: make(map[string]types.Type),
	}
}

// Generate exports the given declarations which must be fully resolved and
// listed in dependency order: every declaration after the declarations it
// depends on.
func (g *Generator) Generate(decls []*ast.Decl) (mod *ir.Module, err error) {
	defer report.Catch(&err)

	// Struct types are declared up front so that they may be referred to
	// through pointers before their fields are known.
	for _, decl := range decls {
		if _, ok := g.structDef(decl); ok {
			g.declareStruct(decl.Name)
		}
	}

	for _, decl := range decls {
		g.genDecl(decl)
	}

	return g.mod, nil
}

// WriteModule writes the textual LLVM IR of a module.
func WriteModule(w io.Writer, mod *ir.Module) error {
	if _, err := mod.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write LLVM module")
	}

	return nil
}
