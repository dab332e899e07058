// Package cli provides the pdf-automation command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pdf-edit-automation/internal/config"
	"pdf-edit-automation/internal/domain"
	"pdf-edit-automation/pkg/logger"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// LLMFactory creates the language model used by the crew
type LLMFactory func(ctx context.Context, c *config.Container) (domain.LLM, error)

// App represents the CLI application.
type App struct {
	root      *cobra.Command
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	container *config.Container
	newLLM    LLMFactory
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		newLLM: geminiLLM,
	}

	app.root = &cobra.Command{
		Use:   "pdf-automation",
		Short: "Analyze a PDF and apply text replacement requests",
		Long: `pdf-automation reads a PDF, turns a natural-language request into
"Replace X with Y" instructions and writes a page-for-page copy of the
document together with a report of what was identified.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newRunCmd(),
		app.newExtractCmd(),
		app.newModifyCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// WithInput sets the reader prompts are answered from.
func (a *App) WithInput(stdin io.Reader) *App {
	a.stdin = stdin
	a.root.SetIn(stdin)
	return a
}

// WithContainer uses an already wired container instead of building one from the environment.
func (a *App) WithContainer(c *config.Container) *App {
	a.container = c
	return a
}

// WithLLMFactory overrides how the crew's language model is created.
func (a *App) WithLLMFactory(f LLMFactory) *App {
	a.newLLM = f
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// loadContainer wires the application once; logs go to stderr so stdout stays clean.
func (a *App) loadContainer() (*config.Container, error) {
	if a.container != nil {
		return a.container, nil
	}
	cfg := config.NewConfig()
	appLogger := logger.NewLoggerWithOutput(cfg.GetLogLevel(), cfg.GetLogFormat(), a.stderr)
	c, err := config.NewContainerWith(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	a.container = c
	return c, nil
}

func geminiLLM(ctx context.Context, c *config.Container) (domain.LLM, error) {
	svc, err := c.NewLLM(ctx)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (a *App) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "pdf-automation version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
