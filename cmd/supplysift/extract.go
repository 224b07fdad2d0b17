package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/supplysift/supplysift/internal/config"
)

var (
	dynamicMode bool
	outputPath  string
)

// extractCmd creates the "extract" subcommand.
func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [url]",
		Short: "Extract one product page and print the record",
		Long:  "Fetch a supplier product page, run the extraction pipeline, and print the assembled record as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}

	cmd.Flags().BoolVarP(&dynamicMode, "dynamic", "d", false, "render the page in a headless browser and probe variation prices")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the record to a file instead of stdout")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(&cfg.Logging)

	pipe, err := buildPipeline(cfg, logger, dynamicMode)
	if err != nil {
		return err
	}
	defer pipe.Close()

	start := time.Now()
	record, err := func() (any, error) {
		if dynamicMode {
			return pipe.ExtractDynamic(cmd.Context(), args[0])
		}
		return pipe.Extract(cmd.Context(), args[0])
	}()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("✅ Extracted in %s → %s\n", time.Since(start).Round(time.Millisecond), outputPath)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
