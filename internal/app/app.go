// Package app implements the application layer for plotpy.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports"
	"go.trai.ch/plotpy/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	writer       ports.ScriptWriter
	interpreters ports.InterpreterFactory
	stores       ports.HistoryStoreFactory
	watchers     ports.WatcherFactory
	tracer       ports.Tracer
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	writer ports.ScriptWriter,
	interpreters ports.InterpreterFactory,
	stores ports.HistoryStoreFactory,
	watchers ports.WatcherFactory,
	tracer ports.Tracer,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		writer:       writer,
		interpreters: interpreters,
		stores:       stores,
		watchers:     watchers,
		tracer:       tracer,
		telemetry:    telemetry,
		logger:       log,
	}
}

// Options are the settings shared by every command.
type Options struct {
	// ConfigPath is a configuration file or a directory to search from. Empty means the
	// working directory.
	ConfigPath string
	// Python overrides the interpreter from the configuration and the environment.
	Python string
}

// ConfigureLogging switches the logger to debug level or JSON records when it supports it.
func (a *App) ConfigureLogging(verbose, json bool) {
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(json)
	}
}

// Header returns the text written before every script body.
func (a *App) Header() string {
	return domain.PythonHeader
}

func (a *App) loadConfig(opts Options) (domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return domain.Config{}, err
	}
	if opts.Python != "" {
		cfg.Python = opts.Python
	}
	return cfg, nil
}

func (a *App) newScheduler(cfg domain.Config) *scheduler.Scheduler {
	s := scheduler.NewScheduler(a.writer, a.interpreters(cfg), a.tracer, a.logger)
	if a.telemetry != nil {
		s.WithTelemetry(a.telemetry)
	}
	if cfg.HistoryPath == "" {
		return s
	}

	store, err := a.stores(cfg.HistoryPath)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("run history disabled: %v", err))
		return s
	}
	return s.WithHistory(store)
}

// ReadBody resolves a body argument. "-" reads stdin, "@path" reads a file and anything
// else is the body text itself.
func ReadBody(arg string, stdin io.Reader) (string, error) {
	switch {
	case arg == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrBodyFileRead, err)
		}
		return string(data), nil
	case strings.HasPrefix(arg, "@"):
		path := strings.TrimPrefix(arg, "@")
		// #nosec G304 -- the body file is chosen by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return "", zerr.With(fmt.Errorf("%w: %w", domain.ErrBodyFileRead, err), "path", path)
		}
		return string(data), nil
	default:
		return arg, nil
	}
}

// outputPaths decides where each of n scripts is written. A single script goes to out
// when it is set. Several scripts go into out, or the configured output directory, as
// plot_1.py, plot_2.py and so on.
func outputPaths(cfg domain.Config, out string, n int) []string {
	if n == 1 && out != "" {
		return []string{out}
	}

	dir := out
	if dir == "" {
		dir = cfg.OutputDir
	}
	if n == 1 {
		return []string{filepath.Join(dir, "plot.py")}
	}

	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("plot_%d.py", i+1))
	}
	return paths
}

func defaultJobs(jobs int) int {
	if jobs > 0 {
		return jobs
	}
	return runtime.NumCPU()
}
