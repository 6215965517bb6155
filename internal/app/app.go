package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/checked/internal/calc"
	"github.com/agbru/checked/internal/cli"
	"github.com/agbru/checked/internal/config"
	apperrors "github.com/agbru/checked/internal/errors"
	"github.com/agbru/checked/internal/logging"
	"github.com/agbru/checked/internal/metrics"
	"github.com/agbru/checked/internal/ui"
)

// Application represents the checkedcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In is read by the REPL. It defaults to os.Stdin.
	In io.Reader
	// Logger overrides the logger built from -log-level.
	Logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the REPL.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithLogger sets the application logger, ignoring -log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "checkedcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, calc.SupportedTypes())
	if err != nil {
		if !IsHelpError(err) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	if ui.GetCurrentTheme().Name != "none" {
		ui.SetTheme(a.Config.Theme)
	}

	logger, err := a.logger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var recorder metrics.Recorder = metrics.Nop{}
	if a.Config.MetricsAddr != "" {
		prom := metrics.NewPrometheus()
		if _, err := metrics.NewServer(a.Config.MetricsAddr, prom, logger).Start(ctx); err != nil {
			logger.Error("cannot start metrics server", err, logging.String("addr", a.Config.MetricsAddr))
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorConfig
		}
		recorder = prom
	}

	engine := calc.NewEngine(calc.WithRecorder(recorder), calc.WithLogger(logger))
	if a.Config.REPL {
		return a.runREPL(ctx, engine, out)
	}
	return a.runEvaluate(ctx, engine, logger, out)
}

func (a *Application) logger() (logging.Logger, error) {
	if a.Logger != nil {
		return a.Logger, nil
	}
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid log level %q", a.Config.LogLevel)
	}
	return logging.NewLogger(a.ErrWriter, "checkedcalc").WithLevel(level), nil
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, calc.SupportedTypes()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive mode. It runs until exit or EOF and is not
// bounded by -timeout, which applies to each evaluation instead.
func (a *Application) runREPL(ctx context.Context, engine *calc.Engine, out io.Writer) int {
	repl := cli.NewREPL(engine, cli.REPLConfig{
		Timeout: a.Config.Timeout,
		Output:  a.outputConfig(),
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		JSON:    a.Config.JSON,
		Quiet:   a.Config.Quiet,
		Verbose: a.Config.Verbose,
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
