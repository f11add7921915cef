package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mathe-alves-alv/analise-dre/pkg/runtime/terminal/commands"
	"github.com/mathe-alves-alv/analise-dre/pkg/runtime/terminal/export"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/analysis"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	logOut  io.Writer
	rootCmd *cobra.Command

	configPath          string
	logLevel            string
	includeEventRevenue bool
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// LogOutput receives the structured log; stderr when nil
	LogOutput io.Writer
	Input     io.Reader
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	cli := &CLI{
		env: &commands.Env{
			Reporter: export.NewReporter(opts.Output),
			Input:    opts.Input,
		},
		logOut: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetIn(opts.Input)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "dre",
		Short:             "Income statement (DRE) analysis and markup pricing",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVar(&cli.configPath, "config", "", "Path to the config file (yaml)")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level, overrides log_level from the config")
	cmd.PersistentFlags().BoolVar(&cli.includeEventRevenue, "include-event-revenue", false,
		"Add the Eventos revenue line to total sales")

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.env))
	cmd.AddCommand(commands.NewMarkupCmd(cli.env))
	cmd.AddCommand(commands.NewCatalogCmd(cli.env))
	cmd.AddCommand(commands.NewCategoriesCmd(cli.env))

	return cmd
}

// setup loads the config and wires the services once the flags are parsed
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return err
	}
	if cli.logLevel != "" {
		cfg.LogLevel = cli.logLevel
	}
	if cmd.Flags().Changed("include-event-revenue") {
		cfg.Markup.IncludeEventRevenue = cli.includeEventRevenue
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := zerolog.New(cli.logOut).With().Timestamp().Logger().Level(level)
	cmd.SetContext(logger.WithContext(cmd.Context()))

	catalogs, err := cfg.Catalogs()
	if err != nil {
		return fmt.Errorf("failed to load catalogs: %w", err)
	}
	calculator, err := cfg.Calculator()
	if err != nil {
		return err
	}
	analyzer, err := analysis.NewService(catalogs, calculator)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	cli.env.Config = cfg
	cli.env.Analyzer = analyzer
	return nil
}
