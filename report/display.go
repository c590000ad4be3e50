package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func (r *Reporter) displayCompileMessage(label, absPath, reprPath string, source []byte, span *TextSpan, message string) {
	var labelStr string
	if label == "error" {
		labelStr = ErrorColorFG.Sprint(label)
	} else {
		labelStr = WarnColorFG.Sprint(label)
	}

	if span == nil {
		fmt.Fprintf(r.out, "%s: %s: %s\n\n", reprPath, labelStr, message)
		return
	}

	fmt.Fprintf(r.out, "%s:%d:%d: %s: %s\n\n", reprPath, span.StartLine+1, span.StartCol+1, labelStr, message)

	if source == nil && absPath != "" {
		buff, err := os.ReadFile(absPath)
		if err != nil {
			return
		}
		source = buff
	}

	if source != nil {
		displaySourceText(r.out, source, span)
	}
}

// displayStdError displays a standard Go error.
func (r *Reporter) displayStdError(tag string, err error) {
	fmt.Fprint(r.out, ErrorStyleBG.Sprint(tag))
	fmt.Fprintln(r.out, ErrorColorFG.Sprint(" "+err.Error()))
}

// displayInfo displays an informational message.
func (r *Reporter) displayInfo(tag, msg string) {
	fmt.Fprint(r.out, InfoStyleBG.Sprint(tag))
	fmt.Fprintln(r.out, InfoColorFG.Sprint(" "+msg))
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(out io.Writer, source []byte, span *TextSpan) {
	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(source))
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	// Common indentation is trimmed from every displayed line.
	minIndent := math.MaxInt
	for _, line := range lines {
		if indent := len(line) - len(strings.TrimLeft(line, " ")); indent < minIndent {
			minIndent = indent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Fprintf(out, lineNumFmtStr, i+span.StartLine+1)
		fmt.Fprintln(out, line[minIndent:])
		fmt.Fprint(out, strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and
		// continues from the beginning of every following line.
		var carretPrefixCount int
		if i == 0 {
			carretPrefixCount = span.StartCol - minIndent
		}

		// The last line is only underlined up to and including the end column.
		var carretSuffixCount int
		if i == len(lines)-1 {
			carretSuffixCount = len(line) - span.EndCol - 1
		}

		carretCount := len(line) - carretSuffixCount - carretPrefixCount - minIndent
		if carretPrefixCount < 0 {
			carretPrefixCount = 0
		}
		if carretCount < 1 {
			carretCount = 1
		}

		fmt.Fprint(out, strings.Repeat(" ", carretPrefixCount))
		fmt.Fprintln(out, ErrorColorFG.Sprint(strings.Repeat("^", carretCount)))
	}

	fmt.Fprintln(out)
}

// -----------------------------------------------------------------------------

// maxPhaseLength is the length of the longest phase name.
const maxPhaseLength = len("Writing Output")

var (
	phaseDonePrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: SuccessStyleBG, Text: "Done"},
	}

	phaseFailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: ErrorStyleBG, Text: "Fail"},
	}
)

// phasePadding aligns the text following a phase name.
func phasePadding(phase string) string {
	n := maxPhaseLength - len(phase) + 2
	if n < 0 {
		n = 0
	}

	return strings.Repeat(" ", n)
}

// displayBeginPhase displays the beginning of a compilation phase.  The
// spinner can only draw to standard output, so any other output only gets the
// line printed when the phase ends.
func (r *Reporter) displayBeginPhase(phase string) {
	r.currentPhase = phase
	r.phaseStartTime = time.Now()

	if r.out != os.Stdout {
		return
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	spinner.SuccessPrinter = phaseDonePrinter
	spinner.FailPrinter = phaseFailPrinter

	r.phaseSpinner, _ = spinner.Start(phase + "..." + phasePadding(phase))
}

// displayEndPhase displays the end of a compilation phase.
func (r *Reporter) displayEndPhase(success bool) {
	if r.currentPhase == "" {
		return
	}

	text := r.currentPhase + phasePadding(r.currentPhase)
	elapsed := fmt.Sprintf("(%.3fs)", time.Since(r.phaseStartTime).Seconds())

	switch {
	case r.phaseSpinner != nil && success:
		r.phaseSpinner.Success(text, elapsed)
	case r.phaseSpinner != nil:
		r.phaseSpinner.Fail(text)
	case success:
		fmt.Fprint(r.out, phaseDonePrinter.Sprintln(text, elapsed))
	default:
		fmt.Fprint(r.out, phaseFailPrinter.Sprintln(text))
	}

	r.phaseSpinner = nil
	r.currentPhase = ""
}

// displayCompilationFinished displays the error and warning totals followed
// by the files that were written.
func (r *Reporter) displayCompilationFinished(outputPaths []string) {
	fmt.Fprintln(r.out)

	if r.errorCount == 0 {
		fmt.Fprint(r.out, SuccessColorFG.Sprint("Build finished "))
	} else {
		fmt.Fprint(r.out, ErrorColorFG.Sprint("Build failed "))
	}

	fmt.Fprintf(
		r.out,
		"(%s, %s)\n",
		countText(r.errorCount, "error", ErrorColorFG),
		countText(r.warningCount, "warning", WarnColorFG),
	)

	for _, path := range outputPaths {
		fmt.Fprintln(r.out, "  ->", InfoColorFG.Sprint(path))
	}
}

// countText renders a count and its noun, coloring nonzero counts.
func countText(n int, noun string, color pterm.Color) string {
	if n != 1 {
		noun += "s"
	}

	if n == 0 {
		return SuccessColorFG.Sprint(0) + " " + noun
	}

	return color.Sprint(n) + " " + noun
}
