package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/supplysift/supplysift/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "supplysift",
		Short: "SupplySift — supplier product page extraction",
		Long: `SupplySift turns supplier product pages into structured catalog records.

Features:
  • Static and browser-rendered (dynamic) page fetching
  • JSON-LD, selector, and heuristic extraction with confidence ranking
  • Finish/color variant detection with per-variant pricing and images
  • AI-assisted description synthesis with a deterministic fallback
  • Automatic category suggestions
  • Review-then-confirm persistence to MongoDB or JSON lines`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("SupplySift %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Server:\n")
			fmt.Printf("  Port:               %d\n", cfg.Server.Port)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Timeout:            %s\n", cfg.Fetcher.Timeout)
			fmt.Printf("  Follow Redirects:   %v\n", cfg.Fetcher.FollowRedirects)
			fmt.Printf("  Max Body Size:      %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Page Timeout:       %s\n", cfg.Browser.PageTimeout)
			fmt.Printf("  Settle Delay:       %s\n", cfg.Browser.SettleDelay)
			fmt.Printf("  Selection Delay:    %s\n", cfg.Browser.SelectionDelay)
			fmt.Printf("  Stealth:            %v\n", cfg.Browser.Stealth)
			fmt.Printf("\nExtract:\n")
			fmt.Printf("  Fallback Price:     %v\n", cfg.Extract.FallbackPrice)
			fmt.Printf("  Sell Multiplier:    %v\n", cfg.Extract.SellMultiplier)
			fmt.Printf("  Max Images:         %d\n", cfg.Extract.MaxImages)
			fmt.Printf("  Min Description:    %d chars\n", cfg.Extract.MinDescriptionLength)
			fmt.Printf("\nAI:\n")
			fmt.Printf("  Enabled:            %v\n", cfg.AI.Enabled)
			fmt.Printf("  Provider:           %s\n", cfg.AI.Provider)
			fmt.Printf("  Model:              %s\n", cfg.AI.Model)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Enabled:            %v\n", cfg.Storage.Enabled)
			fmt.Printf("  Backend:            %s\n", cfg.Storage.Backend)
			return nil
		},
	}
}

// setupLogger creates a structured logger per the logging config.
func setupLogger(cfg *config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
