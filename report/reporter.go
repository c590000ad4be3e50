package report

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The destination of all displayed messages.
	out io.Writer

	// The number of errors reported so far.
	errorCount int

	// The number of warnings reported so far.
	warningCount int

	// The spinner used to display the current compilation phase.
	phaseSpinner   *pterm.SpinnerPrinter
	currentPhase   string
	phaseStartTime time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelFromName converts a log level name as accepted on the command line
// into a log level.  Unknown names default to verbose.
func LogLevelFromName(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// NewReporter creates a new reporter writing to the given output.  If out is
// nil, standard output is used.
func NewReporter(out io.Writer, logLevel int) *Reporter {
	if out == nil {
		out = os.Stdout
	}

	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		out:      out,
	}
}

// LogLevel returns the log level of the reporter.
func (r *Reporter) LogLevel() int {
	return r.logLevel
}

// -----------------------------------------------------------------------------
// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportCompileError reports a compilation error: ie. erroneous input code. The
// absPath is the path used to read the offending source text; the reprPath is
// the path displayed to the user.  If source is non-nil, it is used instead of
// reading absPath from disk.
func (r *Reporter) ReportCompileError(absPath, reprPath string, source []byte, cerr *CompileError) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++

	if r.logLevel > LogLevelSilent {
		r.displayCompileMessage("error", absPath, reprPath, source, cerr.Span, cerr.Kind.String()+": "+cerr.Message)
	}
}

// ReportCompileWarning reports a compilation warning.
func (r *Reporter) ReportCompileWarning(reprPath string, span *TextSpan, msg string) {
	r.m.Lock()
	defer r.m.Unlock()

	r.warningCount++

	if r.logLevel >= LogLevelWarn {
		r.displayCompileMessage("warning", "", reprPath, nil, span, msg)
	}
}

// ReportError reports an error that is either a compile error or a standard Go
// error.  Compile errors are displayed with source text.
func (r *Reporter) ReportError(absPath, reprPath string, source []byte, err error) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		r.ReportCompileError(absPath, reprPath, source, cerr)
		return
	}

	r.ReportStdError(reprPath, err)
}

// ReportStdError reports a non-fatal, standard Go error.
func (r *Reporter) ReportStdError(tag string, err error) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++

	if r.logLevel > LogLevelSilent {
		r.displayStdError(tag, err)
	}
}

// ReportInfo reports an informational message.  It is only displayed in
// verbose mode.
func (r *Reporter) ReportInfo(tag, msg string) {
	if r.logLevel == LogLevelVerbose {
		r.m.Lock()
		defer r.m.Unlock()

		r.displayInfo(tag, msg)
	}
}

// AnyErrors returns whether or not any errors were reported.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount > 0
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.

// BeginPhase displays the beginning of a compilation phase.
func (r *Reporter) BeginPhase(phase string) {
	if r.logLevel == LogLevelVerbose {
		r.displayBeginPhase(phase)
	}
}

// EndPhase displays the end of the current compilation phase.
func (r *Reporter) EndPhase(success bool) {
	if r.logLevel == LogLevelVerbose {
		r.displayEndPhase(success)
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
func (r *Reporter) ReportCompilationFinished(outputPaths ...string) {
	if r.logLevel == LogLevelVerbose {
		r.displayCompilationFinished(outputPaths)
	}
}
