package build

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/pkg/errors"

	"github.com/sergey-rogatin/compiler/ast"
	"github.com/sergey-rogatin/compiler/codegen"
	"github.com/sergey-rogatin/compiler/common"
	"github.com/sergey-rogatin/compiler/depm"
	"github.com/sergey-rogatin/compiler/generate"
	"github.com/sergey-rogatin/compiler/mods"
	"github.com/sergey-rogatin/compiler/report"
	"github.com/sergey-rogatin/compiler/resolve"
	"github.com/sergey-rogatin/compiler/syntax"
)

// Source is a single source text being compiled.
type Source struct {
	// AbsPath is the path the source was read from.  It is empty for sources
	// which do not live on disk.
	AbsPath string

	// ReprPath is the path displayed to the user.
	ReprPath string

	// Text is the source text.
	Text []byte
}

// Compiler is the data structure responsible for maintaining all high-level
// state of a single compilation.  A compiler is used for exactly one
// compilation: every compilation gets a fresh universe.
type Compiler struct {
	// proj is the project being compiled.
	proj *mods.Project

	// rep is the reporter all errors and progress are reported to.
	rep *report.Reporter

	// uni is the universe of the compilation.
	uni *depm.Universe

	// emitter receives the C output of every resolved declaration.
	emitter *codegen.Emitter

	// resolver drives resolution and emission.
	resolver *resolve.Resolver

	// declSources maps each top-level declaration to the source it was parsed
	// from.  It is used to report resolution errors against the right file.
	declSources map[*ast.Decl]*Source

	// preludeDone indicates whether the prelude has been analyzed.
	preludeDone bool

	// preludeLen is the length of the C output produced by the prelude.
	preludeLen int

	// errs is the list of errors encountered so far.
	errs []error
}

// NewCompiler creates a new compiler for the given project.
func NewCompiler(proj *mods.Project, rep *report.Reporter) *Compiler {
	uni := depm.NewUniverse()
	emitter := codegen.NewEmitter(uni)

	return &Compiler{
		proj:        proj,
		rep:         rep,
		uni:         uni,
		emitter:     emitter,
		resolver:    resolve.NewResolver(uni, emitter, nil),
		declSources: make(map[*ast.Decl]*Source),
	}
}

// Compile runs the full compilation algorithm on the project and writes its
// outputs.  It handles all compilation errors appropriately and returns
// whether compilation succeeded.
func (c *Compiler) Compile() bool {
	sources, ok := c.readSources()
	if !ok || !c.Analyze(sources) {
		return false
	}

	c.rep.BeginPhase("Writing Output")

	var outputPaths []string
	if c.proj.Emit == common.EmitC || c.proj.Emit == common.EmitBoth {
		path := c.proj.OutputPath + ".c"
		if !c.writeOutput(path, []byte(c.CText())) {
			c.rep.EndPhase(false)
			return false
		}

		outputPaths = append(outputPaths, path)
	}

	if c.proj.Emit == common.EmitLLVM || c.proj.Emit == common.EmitBoth {
		path := c.proj.OutputPath + ".ll"
		if !c.writeLLVM(path) {
			c.rep.EndPhase(false)
			return false
		}

		outputPaths = append(outputPaths, path)
	}

	c.rep.EndPhase(true)
	c.rep.ReportCompilationFinished(outputPaths...)
	return true
}

// Check runs the analysis portion of the compilation algorithm without
// writing any output.  It returns whether the project is free of errors.
func (c *Compiler) Check() bool {
	sources, ok := c.readSources()
	if !ok {
		return false
	}

	return c.Analyze(sources)
}

// Analyze parses, resolves and emits the given sources after the prelude if
// the project uses one.  It returns whether analysis succeeded.  Analyze may
// be called repeatedly: the declarations of each call are added to the ones
// analyzed before.
func (c *Compiler) Analyze(sources []*Source) bool {
	withPrelude := c.proj.Prelude && !c.preludeDone

	c.rep.BeginPhase("Parsing")

	var preludeDecls []*ast.Decl
	parseOk := true
	if withPrelude {
		preludeDecls, parseOk = c.parseSource(&Source{ReprPath: preludeName, Text: []byte(preludeSource)})
	}

	// Parsing continues past a broken file so that the errors of every file
	// are reported.
	var decls []*ast.Decl
	for _, src := range sources {
		fileDecls, ok := c.parseSource(src)
		parseOk = parseOk && ok
		decls = append(decls, fileDecls...)
	}

	c.rep.EndPhase(parseOk)
	if !parseOk {
		return false
	}

	c.rep.BeginPhase("Resolving")

	if withPrelude {
		if !c.resolveDecls(preludeDecls) {
			return false
		}

		c.preludeDone = true
		c.preludeLen = c.emitter.Len()
	}

	if !c.resolveDecls(decls) {
		return false
	}

	c.rep.EndPhase(true)
	return true
}

// CText returns the complete C output: the preamble followed by every
// declaration emitted so far.
func (c *Compiler) CText() string {
	return codegen.Preamble + c.emitter.String()
}

// UserCText returns the C output emitted for declarations outside of the
// prelude.
func (c *Compiler) UserCText() string {
	return c.emitter.String()[c.preludeLen:]
}

// GenerateLLVM exports every declaration emitted so far as an LLVM module.
func (c *Compiler) GenerateLLVM() (*ir.Module, error) {
	return generate.NewGenerator(c.uni).Generate(c.resolver.Order())
}

// Errors returns the errors encountered so far.
func (c *Compiler) Errors() []error {
	return c.errs
}

// -----------------------------------------------------------------------------

// parseSource parses a source and records which source each of its
// declarations came from.
func (c *Compiler) parseSource(src *Source) ([]*ast.Decl, bool) {
	decls, err := syntax.Parse(string(src.Text))
	if err != nil {
		c.reportError(src, err)
		return nil, false
	}

	for _, decl := range decls {
		c.declSources[decl] = src
	}

	return decls, true
}

// resolveDecls resolves and emits declarations after the ones resolved
// before.  Resolution stops at the first error, which ends the current phase.
func (c *Compiler) resolveDecls(decls []*ast.Decl) bool {
	c.resolver.AddDecls(decls...)
	if err := c.resolver.ResolveAll(); err != nil {
		c.rep.EndPhase(false)

		src := c.declSources[c.resolver.FailedDecl()]
		if src == nil {
			src = &Source{ReprPath: c.proj.Name}
		}

		c.reportError(src, err)
		return false
	}

	return true
}

// reportError records an error and reports it against a source.
func (c *Compiler) reportError(src *Source, err error) {
	c.errs = append(c.errs, err)
	c.rep.ReportError(src.AbsPath, src.ReprPath, src.Text, err)
}

// readSources reads the project's source files from disk.
func (c *Compiler) readSources() ([]*Source, bool) {
	if c.proj.Version != "" && c.proj.Version != common.LvlcVersion {
		c.rep.ReportCompileWarning(
			common.ProjectFileName,
			nil,
			"project `"+c.proj.Name+"` was written for lvlc v"+c.proj.Version+" but this is v"+common.LvlcVersion,
		)
	}

	var sources []*Source
	ok := true

	for _, path := range c.proj.Sources {
		text, err := os.ReadFile(path)
		if err != nil {
			c.errs = append(c.errs, err)
			c.rep.ReportStdError("File Error", errors.Wrapf(err, "failed to read %s", path))
			ok = false
			continue
		}

		sources = append(sources, &Source{
			AbsPath:  path,
			ReprPath: c.reprPath(path),
			Text:     text,
		})
	}

	return sources, ok
}

// reprPath returns the path of a source file relative to the project root if
// it is inside of it.
func (c *Compiler) reprPath(path string) string {
	if rel, err := filepath.Rel(c.proj.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}

	return path
}

// writeOutput writes an output file creating its directory as necessary.
func (c *Compiler) writeOutput(path string, content []byte) bool {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		c.rep.ReportStdError("Output Error", errors.Wrap(err, "failed to create output directory"))
		return false
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		c.rep.ReportStdError("Output Error", errors.Wrapf(err, "failed to write %s", path))
		return false
	}

	return true
}

// writeLLVM generates the LLVM module and writes it to path.
func (c *Compiler) writeLLVM(path string) bool {
	mod, err := c.GenerateLLVM()
	if err != nil {
		c.rep.ReportStdError("LLVM Error", err)
		return false
	}

	sb := &strings.Builder{}
	if err := generate.WriteModule(sb, mod); err != nil {
		c.rep.ReportStdError("LLVM Error", err)
		return false
	}

	return c.writeOutput(path, []byte(sb.String()))
}
