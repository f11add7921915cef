package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/mathe-alves-alv/analise-dre/pkg/server"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/analysis"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the DRE analysis HTTP API",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (defaults and DRE_* environment variables when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)

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

	logger.Info().
		Strs("catalogs", catalogs.List()).
		Str("target_profit_ratio", calculator.TargetProfitRatio.String()).
		Bool("include_event_revenue", calculator.IncludeEventRevenue).
		Msg("analysis service configured")

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Dependencies: server.Dependencies{
			Analyzer: analyzer,
		},
	})

	return webAPI.Start()
}
