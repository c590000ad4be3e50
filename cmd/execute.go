package cmd

import (
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"
	"github.com/pkg/errors"

	"github.com/sergey-rogatin/compiler/build"
	"github.com/sergey-rogatin/compiler/common"
	"github.com/sergey-rogatin/compiler/mods"
	"github.com/sergey-rogatin/compiler/report"
)

// Execute runs the main `lvlc` application and returns its exit code.
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("lvlc", "lvlc compiles declarations to C", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a project or source file", true)
	buildCmd.AddPrimaryArg("path", "the path to the project directory or source file", true)
	buildCmd.AddStringArg("out", "o", "the output path without extension", false)
	buildCmd.AddSelectorArg("emit", "e", "the kind of output to produce", false, common.EmitKinds)
	buildCmd.AddFlag("no-prelude", "np", "do not compile the prelude before the sources")

	checkCmd := cli.AddSubcommand("check", "check a project or source file for errors", true)
	checkCmd.AddPrimaryArg("path", "the path to the project directory or source file", true)
	checkCmd.AddFlag("no-prelude", "np", "do not compile the prelude before the sources")

	initCmd := cli.AddSubcommand("init", "initialize a project in the working directory", true)
	initCmd.AddPrimaryArg("name", "the name of the project", true)

	replCmd := cli.AddSubcommand("repl", "compile declarations interactively", false)
	replCmd.AddFlag("no-prelude", "np", "do not compile the prelude before the declarations")

	cli.AddSubcommand("version", "print the lvlc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.NewReporter(os.Stderr, report.LogLevelError).ReportStdError("CLI Usage Error", err)
		return 1
	}

	logLevel := report.LogLevelVerbose
	if name, ok := result.Arguments["loglevel"].(string); ok {
		logLevel = report.LogLevelFromName(name)
	}
	rep := report.NewReporter(os.Stdout, logLevel)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(rep, subResult)
	case "check":
		return execCheckCommand(rep, subResult)
	case "init":
		return execInitCommand(rep, subResult)
	case "repl":
		return execReplCommand(subResult)
	case "version":
		report.NewReporter(os.Stdout, report.LogLevelVerbose).ReportInfo("lvlc Version", common.LvlcVersion)
	}

	return 0
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(rep *report.Reporter, result *olive.ArgParseResult) int {
	proj, ok := loadProject(rep, result)
	if !ok {
		return 1
	}

	if out, ok := result.Arguments["out"].(string); ok {
		outPath, err := filepath.Abs(out)
		if err != nil {
			rep.ReportStdError("Path Error", errors.Wrap(err, "invalid output path"))
			return 1
		}

		proj.OutputPath = outPath
	}

	if emit, ok := result.Arguments["emit"].(string); ok {
		if err := mods.ValidateEmit(emit); err != nil {
			rep.ReportStdError("CLI Usage Error", err)
			return 1
		}

		proj.Emit = emit
	}

	if !build.NewCompiler(proj, rep).Compile() {
		return 1
	}

	return 0
}

// execCheckCommand executes the check subcommand and handles all errors.
func execCheckCommand(rep *report.Reporter, result *olive.ArgParseResult) int {
	proj, ok := loadProject(rep, result)
	if !ok {
		return 1
	}

	if !build.NewCompiler(proj, rep).Check() {
		return 1
	}

	rep.ReportInfo("Check", "no errors found")
	return 0
}

// execInitCommand executes the init subcommand and handles all errors.
func execInitCommand(rep *report.Reporter, result *olive.ArgParseResult) int {
	workDir, err := os.Getwd()
	if err != nil {
		rep.ReportStdError("Path Error", err)
		return 1
	}

	name, _ := result.PrimaryArg()
	if err := mods.InitProject(name, workDir); err != nil {
		rep.ReportStdError("Project Init Error", err)
		return 1
	}

	rep.ReportInfo("Project", "initialized project `"+name+"`")
	return 0
}

// loadProject loads the project named by the primary argument and applies the
// flags shared by all compiling commands.
func loadProject(rep *report.Reporter, result *olive.ArgParseResult) (*mods.Project, bool) {
	path, _ := result.PrimaryArg()

	proj, err := mods.LoadProject(path)
	if err != nil {
		rep.ReportStdError("Project Load Error", err)
		return nil, false
	}

	if result.HasFlag("no-prelude") {
		proj.Prelude = false
	}

	return proj, true
}
