package build

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/pkg/errors"

	"github.com/sergey-rogatin/compiler/codegen"
	"github.com/sergey-rogatin/compiler/common"
	"github.com/sergey-rogatin/compiler/golden"
	"github.com/sergey-rogatin/compiler/mods"
	"github.com/sergey-rogatin/compiler/report"
)

func silentReporter() *report.Reporter {
	return report.NewReporter(io.Discard, report.LogLevelSilent)
}

func newTestCompiler(prelude bool) *Compiler {
	return NewCompiler(&mods.Project{Name: "test", Prelude: prelude}, silentReporter())
}

func TestGoldenCases(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		cases, err := golden.Load(file)
		be.Err(t, err, nil)

		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					runGoldenCase(t, tc)
				})
			}
		})
	}
}

func runGoldenCase(t *testing.T, tc *golden.Case) {
	c := newTestCompiler(tc.Prelude)
	ok := c.Analyze([]*Source{{ReprPath: tc.Name, Text: []byte(tc.Source)}})

	if tc.WantsError() {
		be.Equal(t, ok, false)
		be.True(t, len(c.Errors()) > 0)

		var cerr *report.CompileError
		be.True(t, errors.As(c.Errors()[0], &cerr))
		be.Equal(t, cerr.Kind.String(), tc.Error)
		return
	}

	if !ok {
		t.Fatalf("line %d: unexpected errors: %v", tc.Line, c.Errors())
	}

	got := strings.TrimRight(c.UserCText(), "\n")
	want := strings.TrimRight(tc.C, "\n")
	if diff := golden.Diff(want+"\n", got+"\n"); diff != "" {
		t.Errorf("line %d: output mismatch:\n%s", tc.Line, diff)
	}
}

func TestPreludeIsExcludedFromUserText(t *testing.T) {
	c := newTestCompiler(true)
	be.True(t, c.Analyze([]*Source{{ReprPath: "a", Text: []byte("x : i32 = 1;")}}))

	be.Equal(t, c.UserCText(), "i32 x = 1;\n")
	be.True(t, strings.HasPrefix(c.CText(), codegen.Preamble))
	be.True(t, strings.Contains(c.CText(), "} Context;"))
	be.True(t, strings.Contains(c.CText(), "string __string_make(char* data, i64 count, Context* ctx) {"))
}

func TestAnalyzeAccumulates(t *testing.T) {
	c := newTestCompiler(true)
	be.True(t, c.Analyze([]*Source{{ReprPath: "a", Text: []byte("x : i32 = 1;")}}))
	be.True(t, c.Analyze([]*Source{{ReprPath: "b", Text: []byte("y : i32 = x;")}}))

	be.Equal(t, c.UserCText(), "i32 x = 1;\ni32 y = x;\n")
}

func TestSourcesShareScope(t *testing.T) {
	c := newTestCompiler(true)
	ok := c.Analyze([]*Source{
		{ReprPath: "main.lang", Text: []byte("n : Node;")},
		{ReprPath: "node.lang", Text: []byte("Node :: struct { next: *Node; }")},
	})
	be.True(t, ok)

	be.True(t, strings.Contains(c.UserCText(), "struct Node {\n  Node* next;\n};\n\nNode n;\n"))
}

func TestParseErrorsInEveryFileAreReported(t *testing.T) {
	c := newTestCompiler(false)
	ok := c.Analyze([]*Source{
		{ReprPath: "a.lang", Text: []byte("x : i32 = ;")},
		{ReprPath: "b.lang", Text: []byte("y i32;")},
	})

	be.Equal(t, ok, false)
	be.Equal(t, len(c.Errors()), 2)
}

func TestCompileWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.lang")
	be.Err(t, os.WriteFile(src, []byte("Node :: struct { value: i32; next: *Node; }\ncount : i64 = i64(3);\n"), 0o644), nil)

	proj, err := mods.LoadProject(src)
	be.Err(t, err, nil)
	proj.OutputPath = filepath.Join(dir, "out", "main")
	proj.Emit = common.EmitBoth

	be.True(t, NewCompiler(proj, silentReporter()).Compile())

	cText, err := os.ReadFile(proj.OutputPath + ".c")
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(string(cText), codegen.Preamble))
	be.True(t, strings.Contains(string(cText), "i64 count = (i64)(3);"))

	llText, err := os.ReadFile(proj.OutputPath + ".ll")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(llText), "%Node = type { i32, %Node* }"))
	be.True(t, strings.Contains(string(llText), "@count = global i64 3"))
}

func TestCompileFailsWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.lang")
	be.Err(t, os.WriteFile(src, []byte("x : i32 = y;\n"), 0o644), nil)

	proj, err := mods.LoadProject(src)
	be.Err(t, err, nil)

	be.Equal(t, NewCompiler(proj, silentReporter()).Compile(), false)

	_, err = os.Stat(proj.OutputPath + ".c")
	be.True(t, os.IsNotExist(err))
}

func TestCheckReportsMissingSources(t *testing.T) {
	proj := &mods.Project{
		Name:    "test",
		Sources: []string{filepath.Join(t.TempDir(), "gone.lang")},
		Prelude: true,
	}

	c := NewCompiler(proj, silentReporter())
	be.Equal(t, c.Check(), false)
	be.Equal(t, len(c.Errors()), 1)
}

func TestCompileAtVerboseLevel(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.lang")
	be.Err(t, os.WriteFile(src, []byte("x : i32 = 1;\n"), 0o644), nil)

	proj, err := mods.LoadProject(src)
	be.Err(t, err, nil)
	proj.OutputPath = filepath.Join(dir, "main")

	out := &bytes.Buffer{}
	be.True(t, NewCompiler(proj, report.NewReporter(out, report.LogLevelVerbose)).Compile())

	be.True(t, strings.Contains(out.String(), "Writing Output"))
	be.True(t, strings.Contains(out.String(), proj.OutputPath+".c"))

	_, err = os.Stat(proj.OutputPath + ".c")
	be.Err(t, err, nil)
}

func TestPhasesAreReportedOnce(t *testing.T) {
	out := &bytes.Buffer{}
	proj := &mods.Project{Name: "test", Prelude: true}
	c := NewCompiler(proj, report.NewReporter(out, report.LogLevelVerbose))

	be.True(t, c.Analyze([]*Source{{ReprPath: "a.lang", Text: []byte("x : i32 = 1;")}}))
	be.Equal(t, strings.Count(out.String(), "Parsing"), 1)
	be.Equal(t, strings.Count(out.String(), "Resolving"), 1)
	be.Equal(t, c.UserCText(), "i32 x = 1;\n")
}
