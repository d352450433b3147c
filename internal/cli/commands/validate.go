package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/productetl/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a productetl configuration file without running the pipeline.

Checks:
  - YAML syntax
  - Log and report settings
  - Webhook URLs and triggers
  - Input file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Input:    %s\n", cfg.Input)
	fmt.Fprintf(out, "  Output:   %s\n", cfg.Output)
	fmt.Fprintf(out, "  Log:      %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	fmt.Fprintf(out, "  Report:   %s\n", cfg.Report.Format)
	fmt.Fprintf(out, "  Webhooks: %d\n", len(cfg.Webhooks))

	for i, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		fmt.Fprintf(out, "  %d. %s [%s]\n", i+1, name, wh.Trigger)
	}

	if _, err := os.Stat(cfg.Input); err != nil {
		fmt.Fprintf(out, "\nWarning: input file %s is not accessible: %v\n", cfg.Input, err)
	}

	return nil
}
