package mods

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"

	"github.com/sergey-rogatin/compiler/common"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)
}

func TestIsValidIdentifier(t *testing.T) {
	for _, name := range []string{"a", "_x", "Proj_2"} {
		be.True(t, IsValidIdentifier(name))
	}

	for _, name := range []string{"", "2fast", "my-proj", "a b"} {
		be.Equal(t, IsValidIdentifier(name), false)
	}
}

func TestLoadSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main"+common.SrcFileExtension)
	writeFile(t, path, "x : i32;\n")

	proj, err := LoadProject(path)
	be.Err(t, err, nil)

	be.Equal(t, proj.Name, "main")
	be.Equal(t, proj.Root, dir)
	be.Equal(t, proj.OutputPath, filepath.Join(dir, "main"))
	be.Equal(t, proj.Emit, common.EmitC)
	be.True(t, proj.Prelude)
	be.Equal(t, proj.Version, "")
	if diff := cmp.Diff([]string{path}, proj.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSingleFileChecksExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.txt")
	writeFile(t, path, "")

	_, err := LoadProject(path)
	be.Err(t, err, "must have the extension")
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, common.ProjectFileName), `
[project]
name = "demo"
output = "build/demo"
emit = "both"
prelude = false
lvlc-version = "0.1.0"
`)
	writeFile(t, filepath.Join(dir, "b.lang"), "")
	writeFile(t, filepath.Join(dir, "a.lang"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")

	proj, err := LoadProject(dir)
	be.Err(t, err, nil)

	be.Equal(t, proj.Name, "demo")
	be.Equal(t, proj.OutputPath, filepath.Join(dir, "build", "demo"))
	be.Equal(t, proj.Emit, common.EmitBoth)
	be.Equal(t, proj.Prelude, false)
	be.Equal(t, proj.Version, "0.1.0")

	want := []string{filepath.Join(dir, "a.lang"), filepath.Join(dir, "b.lang")}
	if diff := cmp.Diff(want, proj.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProjectFileExplicitSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, common.ProjectFileName), `
[project]
name = "demo"
sources = ["src/second.lang", "src/first.lang"]
lvlc-version = "0.1.0"
`)

	proj, err := LoadProject(dir)
	be.Err(t, err, nil)

	be.Equal(t, proj.Emit, common.EmitC)
	be.True(t, proj.Prelude)
	be.Equal(t, proj.OutputPath, filepath.Join(dir, "demo"))

	want := []string{
		filepath.Join(dir, "src", "second.lang"),
		filepath.Join(dir, "src", "first.lang"),
	}
	if diff := cmp.Diff(want, proj.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProjectFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no table", `name = "demo"`, "no [project] table"},
		{"no name", "[project]\nemit = \"c\"", "missing project name"},
		{"bad name", "[project]\nname = \"my-demo\"", "valid identifier"},
		{"bad emit", "[project]\nname = \"demo\"\nemit = \"wasm\"", "invalid output kind"},
		{"no sources", "[project]\nname = \"demo\"", "no source files"},
		{"bad toml", "[project\nname = ", "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, common.ProjectFileName), tt.content)

			_, err := LoadProject(dir)
			be.Err(t, err, tt.want)
		})
	}
}

func TestLoadMissingProject(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "missing"))
	be.Err(t, err, "failed to open project")

	_, err = LoadProject(t.TempDir())
	be.Err(t, err, "failed to read project file")
}

func TestValidateEmit(t *testing.T) {
	for _, kind := range common.EmitKinds {
		be.Err(t, ValidateEmit(kind), nil)
	}

	be.Err(t, ValidateEmit("asm"), "invalid output kind")
}

func TestInitProject(t *testing.T) {
	dir := t.TempDir()
	be.Err(t, InitProject("demo", dir), nil)

	// The generated project file loads once there is a source file.
	writeFile(t, filepath.Join(dir, "main.lang"), "")

	proj, err := LoadProject(dir)
	be.Err(t, err, nil)
	be.Equal(t, proj.Name, "demo")
	be.Equal(t, proj.OutputPath, filepath.Join(dir, "out", "demo"))
	be.Equal(t, proj.Version, common.LvlcVersion)
	be.True(t, proj.Prelude)

	be.Err(t, InitProject("demo", dir), "already exists")
}

func TestInitProjectRejectsBadName(t *testing.T) {
	be.Err(t, InitProject("9lives", t.TempDir()), "valid identifier")
}
