package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ComedicChimera/olive"
	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/sergey-rogatin/compiler/build"
	"github.com/sergey-rogatin/compiler/mods"
	"github.com/sergey-rogatin/compiler/report"
)

// replName is the path errors in REPL input are reported under.
const replName = "<stdin>"

// session holds the declarations accepted by the REPL so far.  Every input is
// compiled together with all the accepted inputs before it in a fresh
// compilation so that a rejected input leaves no trace.
type session struct {
	proj     *mods.Project
	out      io.Writer
	accepted []string

	// emitted is the length of the C output of the accepted inputs.
	emitted int
}

// submit compiles an input after the accepted inputs and prints the C output
// it adds.  Inputs with errors are reported and discarded.
func (s *session) submit(input string) {
	rep := report.NewReporter(s.out, report.LogLevelError)
	c := build.NewCompiler(s.proj, rep)

	for _, prev := range s.accepted {
		if !c.Analyze([]*build.Source{{ReprPath: replName, Text: []byte(prev)}}) {
			return
		}
	}

	if !c.Analyze([]*build.Source{{ReprPath: replName, Text: []byte(input)}}) {
		return
	}

	text := c.UserCText()
	fmt.Fprint(s.out, text[s.emitted:])

	s.accepted = append(s.accepted, input)
	s.emitted = len(text)
}

// execReplCommand executes the repl subcommand.
func execReplCommand(result *olive.ArgParseResult) int {
	s := &session{
		proj: &mods.Project{Name: "repl", Prelude: !result.HasFlag("no-prelude")},
		out:  os.Stdout,
	}

	// Piped input is compiled as a single batch.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			report.NewReporter(os.Stderr, report.LogLevelError).ReportStdError("Input Error", err)
			return 1
		}

		s.submit(string(input))
		return 0
	}

	rl, err := readline.New(">>> ")
	if err != nil {
		report.NewReporter(os.Stderr, report.LogLevelError).ReportStdError("REPL Error", err)
		return 1
	}
	defer rl.Close()

	for {
		input, err := readInput(rl)
		if err == readline.ErrInterrupt {
			fmt.Println(err)
			continue
		} else if err != nil {
			break
		}

		if strings.TrimSpace(input) != "" {
			s.submit(input)
		}
	}

	fmt.Println()
	return 0
}

// readInput reads lines until the braces read are balanced.
func readInput(rl *readline.Instance) (string, error) {
	sb := strings.Builder{}
	depth := 0

	rl.SetPrompt(">>> ")
	for {
		line, err := rl.Readline()
		if err != nil {
			return "", err
		}

		sb.WriteString(line)
		sb.WriteRune('\n')

		depth += braceDepth(line)
		if depth <= 0 {
			return sb.String(), nil
		}

		rl.SetPrompt("... ")
	}
}

// braceDepth returns the number of braces a line opens minus the number it
// closes.  Braces inside string literals are not counted.
func braceDepth(line string) int {
	depth := 0
	inString := false

	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case !inString && c == '{':
			depth++
		case !inString && c == '}':
			depth--
		}
	}

	return depth
}
