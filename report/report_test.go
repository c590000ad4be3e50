package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/pkg/errors"
)

func TestCompileErrorMessage(t *testing.T) {
	cerr := Raise(UndefinedSymbol, &TextSpan{StartLine: 2, StartCol: 4}, "`%s` is not defined", "x")
	be.Equal(t, cerr.Error(), "3:5: undefined symbol: `x` is not defined")

	noSpan := Raise(DependencyCycle, nil, "`a` depends on itself")
	be.Equal(t, noSpan.Error(), "dependency cycle: `a` depends on itself")
}

func TestKindNames(t *testing.T) {
	be.Equal(t, IllegalPointerArithmetic.String(), "illegal pointer arithmetic")
	be.Equal(t, UnsupportedTypeComparison.String(), "unsupported type comparison")
	be.Equal(t, Kind(99).String(), "Kind(99)")
}

func TestSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 3}
	end := &TextSpan{StartLine: 4, StartCol: 0, EndLine: 5, EndCol: 7}

	be.Equal(t, *NewSpanOver(start, end), TextSpan{StartLine: 1, StartCol: 2, EndLine: 5, EndCol: 7})
	be.True(t, NewSpanOver(nil, end) == end)
	be.True(t, NewSpanOver(start, nil) == start)
}

func catchOf(f func()) (err error) {
	defer Catch(&err)
	f()
	return nil
}

func TestCatch(t *testing.T) {
	err := catchOf(func() { panic(Raise(SyntaxError, nil, "bad")) })
	be.Err(t, err, "syntax error: bad")

	err = catchOf(func() { ICE("broken %d", 1) })

	var cerr *CompileError
	be.True(t, errors.As(err, &cerr))
	be.Equal(t, cerr.Kind, InternalInvariantViolation)

	be.Err(t, catchOf(func() {}), nil)

	defer func() {
		be.Equal(t, recover(), any("not a compile error"))
	}()
	catchOf(func() { panic("not a compile error") })
}

func TestLogLevelFromName(t *testing.T) {
	be.Equal(t, LogLevelFromName("silent"), LogLevelSilent)
	be.Equal(t, LogLevelFromName("error"), LogLevelError)
	be.Equal(t, LogLevelFromName("warn"), LogLevelWarn)
	be.Equal(t, LogLevelFromName("verbose"), LogLevelVerbose)
	be.Equal(t, LogLevelFromName("loud"), LogLevelVerbose)
}

func TestReportCompileErrorShowsSource(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out, LogLevelError)

	src := []byte("x : i32 = 1;\ny : i32 = z;\n")
	span := &TextSpan{StartLine: 1, StartCol: 10, EndLine: 1, EndCol: 10}
	r.ReportError("", "main.lang", src, Raise(UndefinedSymbol, span, "`z` is not defined"))

	be.True(t, r.AnyErrors())
	be.True(t, strings.Contains(out.String(), "main.lang:2:11: "))
	be.True(t, strings.Contains(out.String(), "undefined symbol: `z` is not defined"))
	be.True(t, strings.Contains(out.String(), "2 | y : i32 = z;"))
	be.True(t, strings.Contains(out.String(), "^"))
}

func TestSilentReporterCountsErrors(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out, LogLevelSilent)

	be.Equal(t, r.AnyErrors(), false)
	r.ReportError("", "main.lang", nil, errors.New("disk on fire"))
	r.ReportInfo("Info", "hidden")
	r.BeginPhase("Parsing")
	r.EndPhase(true)

	be.True(t, r.AnyErrors())
	be.Equal(t, out.Len(), 0)
}

func TestWarningsNeedWarnLevel(t *testing.T) {
	out := &bytes.Buffer{}
	NewReporter(out, LogLevelError).ReportCompileWarning("lvlc.toml", nil, "old version")
	be.Equal(t, out.Len(), 0)

	NewReporter(out, LogLevelWarn).ReportCompileWarning("lvlc.toml", nil, "old version")
	be.True(t, strings.Contains(out.String(), "old version"))
}

func TestPhasesWriteToReporterOutput(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out, LogLevelVerbose)

	r.BeginPhase("Writing Output")
	r.EndPhase(true)
	r.BeginPhase("Resolving")
	r.EndPhase(false)

	be.True(t, strings.Contains(out.String(), "Writing Output"))
	be.True(t, strings.Contains(out.String(), "Done"))
	be.True(t, strings.Contains(out.String(), "Fail"))
}

func TestLongPhaseNames(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out, LogLevelVerbose)

	r.BeginPhase("Resolving Everything At Once")
	r.EndPhase(true)

	be.True(t, strings.Contains(out.String(), "Resolving Everything At Once"))
}

func TestEndPhaseWithoutBeginIsIgnored(t *testing.T) {
	out := &bytes.Buffer{}
	NewReporter(out, LogLevelVerbose).EndPhase(true)
	be.Equal(t, out.Len(), 0)
}
