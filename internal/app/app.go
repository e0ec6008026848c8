package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/polyroots/internal/cli"
	"github.com/agbru/polyroots/internal/config"
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/input"
	"github.com/agbru/polyroots/internal/logging"
	"github.com/agbru/polyroots/internal/orchestration"
	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/server"
	"github.com/agbru/polyroots/internal/service"
	"github.com/agbru/polyroots/internal/ui"
)

// Application is a configured polyroots instance, ready to run in one of
// its modes (completion, server, REPL or a single reconstruction).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides the assembly strategies.
	Factory polynomial.AssemblerFactory
	// ErrWriter receives diagnostics and failure status lines.
	ErrWriter io.Writer
	// In feeds the REPL; standard input when nil.
	In io.Reader
}

// New parses the command line into an Application.
//
// Parameters:
//   - args: The full command line, program name first (typically os.Args).
//   - errWriter: The writer for usage and configuration errors.
//
// Returns:
//   - *Application: The configured application.
//   - error: flag.ErrHelp when -h was given, or a configuration error.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := polynomial.GlobalFactory()

	programName := "polyroots"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run dispatches to the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	// Assembly debug lines go through zerolog's global logger; without -v
	// they are filtered out by the console logger's level.
	logger := logging.NewConsoleLogger(a.ErrWriter, "cli", a.Config.Verbose, a.Config.NoColor)
	logging.SetGlobal(logger)

	if a.Config.ServerMode {
		return a.runServer()
	}
	if a.Config.Interactive {
		return a.runREPL(out)
	}
	return a.runSolve(ctx, out, logger)
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		MaxRoots:    a.Config.MaxRoots,
		Verbose:     a.Config.Verbose,
	})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.Start()
	return apperrors.ExitSuccess
}

// runSolve reads the input document, selects the roots and runs the
// configured strategy, or every strategy for -algo all.
func (a *Application) runSolve(ctx context.Context, out io.Writer, logger *logging.ZerologAdapter) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	colors := cli.CLIColorProvider{}

	format, err := input.ParseFormat(a.Config.InputFormat)
	if err != nil {
		return apperrors.HandleRunError(apperrors.NewConfigError("%v", err), 0, a.ErrWriter, colors)
	}
	doc, err := input.ReadFile(a.Config.InputPath, format)
	if err != nil {
		return apperrors.HandleRunError(apperrors.NewInputError(err), 0, a.ErrWriter, colors)
	}
	for _, w := range doc.Warnings() {
		logger.Warn(w, logging.String("input", a.Config.InputPath))
	}

	svc := service.NewPolynomialService(a.Factory, a.Config.MaxRoots)
	selected, err := svc.Prepare(doc, a.Config.K)
	if err != nil {
		return apperrors.HandleRunError(err, 0, a.ErrWriter, colors)
	}
	logger.Debug("roots selected",
		logging.Int("available", doc.RootCount()),
		logging.Int("selected", len(selected)))

	assemblers := cli.GetAssemblersToRun(a.Config, a.Factory)
	if len(assemblers) == 0 {
		return apperrors.HandleRunError(apperrors.NewConfigError("no assembly strategy named %q", a.Config.Algo), 0, a.ErrWriter, colors)
	}

	machineOutput := a.Config.Quiet || a.Config.JSONOutput || a.Config.CBOROutput
	progressOut := out
	if machineOutput {
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, selected, out)
		cli.PrintExecutionMode(assemblers, out)
	}

	results := orchestration.ExecuteAssemblies(ctx, assemblers, selected.Values(), progressOut, progressObserver(a.Config.Verbose, logger))

	base := service.Solution{
		Roots:    selected,
		Entries:  service.IndexEntries(doc.Entries),
		Warnings: doc.Warnings(),
	}
	return orchestration.AnalyzeComparisonResults(results, base, a.Config, out)
}

// progressObserver logs throttled assembly progress in verbose mode.
func progressObserver(verbose bool, logger *logging.ZerologAdapter) polynomial.ProgressObserver {
	if !verbose {
		return polynomial.NewNoOpObserver()
	}
	return polynomial.NewLoggingObserver(logger.Zerolog(), 0.25)
}

// IsHelpError reports whether err means -h or --help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
