package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/testit/config"
	"github.com/s0up4200/testit/filter"
	"github.com/s0up4200/testit/testit"
)

var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// app carries the state shared by every command once initialized
type app struct {
	cfgFile string
	output  string

	cfg     *config.Config
	logger  zerolog.Logger
	client  *testit.Client
	filters *filter.Manager
}

// SetVersion records build information for the version command
func SetVersion(v, c, built string) {
	version = v
	commit = c
	buildTime = built
}

// Execute builds the command tree and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "testit",
		Short: "A command line client for the TestIT test management API",
		Long: `testit talks to a TestIT instance through its v2 REST API.

It lists and filters autotests and projects, fetches work items,
uploads and downloads attachments, drives test runs and can send
arbitrary API requests. Request body templates are available offline
through the catalog command.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initialize,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "json", "output format (json|yaml)")

	rootCmd.AddCommand(
		a.newTestCmd(),
		a.newAutoTestsCmd(),
		a.newProjectsCmd(),
		a.newWorkItemsCmd(),
		a.newAttachmentsCmd(),
		a.newTestRunsCmd(),
		a.newCallCmd(),
		a.newCatalogCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// initialize loads configuration, logger, client and filter presets
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || (cmd.HasParent() && cmd.Parent().Name() == "completion") {
		return nil
	}

	if err := validateOutput(a.output); err != nil {
		return err
	}

	var err error
	a.cfg, err = config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a.logger = setupLogger(a.cfg.Logging, cmd.ErrOrStderr())

	opts := []testit.Option{
		testit.WithTimeout(a.cfg.TestIT.Timeout),
		testit.WithUserAgent(a.cfg.TestIT.UserAgent),
	}
	if a.cfg.TestIT.StrictParams {
		opts = append(opts, testit.WithStrictParams())
	}

	a.client, err = testit.NewClient(a.cfg.TestIT.URL, a.cfg.TestIT.Token, a.logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create TestIT client: %w", err)
	}

	a.filters = filter.NewManager(
		filter.WithCompiler(filter.NewExprCompiler(filter.WithCache(a.cfg.Filter.CacheSize))),
		filter.WithEvaluator(filter.NewConcurrentEvaluator(filter.WithWorkers(a.cfg.Concurrency))),
	)
	if err := a.filters.RegisterFilters(a.cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	a.logger.Debug().
		Str("url", a.client.BaseURL()).
		Dur("timeout", a.cfg.TestIT.Timeout).
		Bool("strict_params", a.cfg.TestIT.StrictParams).
		Int("presets", len(a.cfg.Filter.Presets)).
		Msg("Client initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// offline lets a command run without configuration or client
func offline(cmd *cobra.Command, args []string) error {
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Args:              cobra.NoArgs,
		PersistentPreRunE: offline,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "testit %s (commit %s, built %s)\n", version, commit, buildTime)
		},
	}
}

func (a *app) newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test connection to TestIT",
		Long:  `Test the connection to your TestIT instance and the validity of the API token.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Testing connection to TestIT at %s...\n", a.client.BaseURL())

			if err := a.client.TestConnection(cmd.Context()); err != nil {
				return fmt.Errorf("connection failed: %w", err)
			}

			fmt.Fprintln(out, "✓ Connection successful!")
			return nil
		},
	}
}
