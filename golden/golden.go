// Package golden loads compiler test cases written as Markdown documents.
//
// Each case starts at a heading of the form `Test: <name>` and is followed by
// a `lang` fence holding the source to compile and either a `c` fence holding
// the expected C output or an `error` fence holding the expected error kind.
// The source fence may carry the extra info word `no-prelude` to compile the
// source without the prelude.
package golden

import (
	"bytes"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages recognized inside a test case.
const (
	FenceSource = "lang"
	FenceC      = "c"
	FenceError  = "error"
)

// noPreludeInfo is the info word disabling the prelude for a source fence.
const noPreludeInfo = "no-prelude"

// testPrefix is the prefix of every heading starting a test case.
const testPrefix = "Test: "

// Case is a single compiler test case.
type Case struct {
	// The name of the case from its heading.
	Name string

	// The source text to compile.
	Source string

	// The expected C output of the source excluding the preamble and the
	// prelude.  Empty if the case expects an error.
	C string

	// The expected error kind.  Empty if the case expects success.
	Error string

	// Whether the source is compiled with the prelude.
	Prelude bool

	// The line the case's source fence starts on.
	Line int
}

// WantsError returns whether the case expects compilation to fail.
func (c *Case) WantsError() bool {
	return c.Error != ""
}

// Load reads and parses the test cases in the Markdown file at path.
func Load(path string) ([]*Case, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	cases, err := Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return cases, nil
}

// Parse extracts the test cases from a Markdown document.
func Parse(src []byte) ([]*Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var cases []*Case
	var current *Case

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, src)
			if !strings.HasPrefix(heading, testPrefix) {
				return ast.WalkContinue, nil
			}

			if current != nil {
				if err := validate(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, current)
			}

			current = &Case{Name: strings.TrimPrefix(heading, testPrefix), Prelude: true}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			info := fenceInfo(n, src)
			line := lineOf(n, src)

			if len(info) == 0 {
				return ast.WalkContinue, nil
			} else if current == nil {
				return ast.WalkStop, errors.Errorf("line %d: `%s` fence outside of a test case", line, info[0])
			}

			content := blockText(n, src)
			switch info[0] {
			case FenceSource:
				if current.Source != "" {
					return ast.WalkStop, errors.Errorf("line %d: multiple source fences in `%s`", line, current.Name)
				}

				current.Source = content
				current.Line = line
				for _, word := range info[1:] {
					if word == noPreludeInfo {
						current.Prelude = false
					}
				}
			case FenceC:
				current.C = content
			case FenceError:
				current.Error = strings.TrimSpace(content)
			default:
				return ast.WalkStop, errors.Errorf("line %d: unknown fence `%s` in `%s`", line, info[0], current.Name)
			}
		}

		return ast.WalkContinue, nil
	})

	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, err
		}
		cases = append(cases, current)
	}

	return cases, nil
}

// Diff returns a unified diff between the expected and actual output.  It
// returns the empty string if they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}

	return diff
}

// -----------------------------------------------------------------------------

// validate checks that a case has a source and exactly one expectation.
func validate(c *Case) error {
	switch {
	case c.Source == "":
		return errors.Errorf("test `%s` has no source fence", c.Name)
	case c.C == "" && c.Error == "":
		return errors.Errorf("test `%s` has no expectation", c.Name)
	case c.C != "" && c.Error != "":
		return errors.Errorf("test `%s` expects both output and an error", c.Name)
	}

	return nil
}

// nodeText concatenates the text segments beneath a node.
func nodeText(node ast.Node, src []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}

		return ast.WalkContinue, nil
	})

	return buf.String()
}

// fenceInfo returns the words of a fence's info string.
func fenceInfo(block *ast.FencedCodeBlock, src []byte) []string {
	if block.Info == nil {
		return nil
	}

	return strings.Fields(string(block.Info.Segment.Value(src)))
}

// blockText returns the content of a fenced code block.
func blockText(block *ast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer

	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}

	return buf.String()
}

// lineOf returns the one-based line a block's content starts on.
func lineOf(node ast.Node, src []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}

	start := node.Lines().At(0).Start
	return bytes.Count(src[:start], []byte{'\n'}) + 1
}
