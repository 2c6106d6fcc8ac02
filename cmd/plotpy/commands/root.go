// Package commands implements the CLI commands for plotpy.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/plotpy/internal/app"
	"go.trai.ch/plotpy/internal/build"
	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/engine/scheduler"
	"golang.org/x/term"
)

// CLI represents the command line interface for plotpy.
type CLI struct {
	app        Application
	rootCmd    *cobra.Command
	isTerminal func(io.Reader) bool

	configPath string
	python     string
	verbose    bool
	jsonLogs   bool
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, bodies []string, opts app.RunOptions) ([]scheduler.Result, error)
	Show(ctx context.Context, body string, opts app.ShowOptions) (scheduler.Result, error)
	Watch(ctx context.Context, bodyFile string, opts app.WatchOptions) error
	History(ctx context.Context, path string, opts app.Options) ([]domain.HistoryEntry, error)
	Header() string
	ConfigureLogging(verbose, json bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "plotpy",
		Short:         "Generate matplotlib scripts and run them with Python",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:        a,
		rootCmd:    rootCmd,
		isTerminal: isTerminal,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Configuration file, or directory to search for "+domain.ConfigFileName)
	flags.StringVar(&c.python, "python", "", "Python interpreter, overrides the configuration and $"+domain.PythonEnvVar)
	// -v is taken by --version.
	flags.BoolVar(&c.verbose, "verbose", false, "Enable debug logging")
	flags.BoolVar(&c.jsonLogs, "json-logs", false, "Write logs as JSON records")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		c.app.ConfigureLogging(c.verbose, c.jsonLogs)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newHistoryCmd())
	rootCmd.AddCommand(c.newHeaderCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the stream bodies and dismiss lines are read from. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// SetTerminalCheck replaces the check deciding whether stdin is interactive. Used for testing.
func (c *CLI) SetTerminalCheck(fn func(io.Reader) bool) {
	c.isTerminal = fn
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *CLI) options() app.Options {
	return app.Options{ConfigPath: c.configPath, Python: c.python}
}

// printOutput writes the interpreter output of a run, stdout first.
func printOutput(w io.Writer, out domain.Output) error {
	text, err := out.Text()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}
