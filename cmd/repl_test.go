package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/sergey-rogatin/compiler/mods"
)

func TestBraceDepth(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"x : i32 = 1;", 0},
		{"f :: () {", 1},
		{"}", -1},
		{"S :: struct { a: i32; }", 0},
		{`s := "{";`, 0},
		{`s := "\"{";`, 0},
		{"if x { if y {", 2},
	}

	for _, tt := range tests {
		be.Equal(t, braceDepth(tt.line), tt.want)
	}
}

func TestSessionPrintsNewOutputOnly(t *testing.T) {
	out := &bytes.Buffer{}
	s := &session{proj: &mods.Project{Name: "repl", Prelude: true}, out: out}

	s.submit("x : i32 = 1;\n")
	be.Equal(t, out.String(), "i32 x = 1;\n")

	out.Reset()
	s.submit("y : i32 = x;\n")
	be.Equal(t, out.String(), "i32 y = x;\n")
	be.Equal(t, len(s.accepted), 2)
}

func TestSessionDiscardsRejectedInput(t *testing.T) {
	out := &bytes.Buffer{}
	s := &session{proj: &mods.Project{Name: "repl", Prelude: true}, out: out}

	s.submit("x : i32 = 1;\n")
	s.submit("z : i32 = missing;\n")
	be.Equal(t, len(s.accepted), 1)

	out.Reset()
	s.submit("missing : i32 = 2;\n")
	be.Equal(t, out.String(), "i32 missing = 2;\n")
	be.True(t, !strings.Contains(out.String(), "z"))
}

func TestSessionEmitsDependenciesOnce(t *testing.T) {
	out := &bytes.Buffer{}
	s := &session{proj: &mods.Project{Name: "repl", Prelude: true}, out: out}

	s.submit("Node :: struct {\n\tnext: *Node;\n}\n")
	be.Equal(t, out.String(), "typedef struct Node Node;\n\nstruct Node {\n  Node* next;\n};\n\n")

	out.Reset()
	s.submit("head : *Node;\n")
	be.Equal(t, out.String(), "Node* head;\n")
}
