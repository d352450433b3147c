package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/productetl/internal/ctxlog"
	"github.com/ccollicutt/productetl/pkg/config"
	"github.com/ccollicutt/productetl/pkg/lineio"
	"github.com/ccollicutt/productetl/pkg/output"
	"github.com/ccollicutt/productetl/pkg/pipeline"
)

// previewOutputName labels the in-memory sink in reports.
const previewOutputName = "(preview)"

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [input]",
		Short: "Print the transformed catalog without writing a file",
		Long: `Run the same transformation as the default command, but print the
resulting CSV to standard output instead of writing the output file.
The row summary follows the CSV.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPreview,
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = cfg.WithPaths(argAt(args, 0), "")

	out := cmd.OutOrStdout()
	logger := ctxlog.New(out, cfg.Log.Level, cfg.Log.Format)
	ctx = ctxlog.WithLogger(ctx, logger)

	sink := lineio.NewMemorySink(previewOutputName)
	result, runErr := pipeline.NewDriver().Run(ctx, lineio.NewFileSource(cfg.Input), sink)
	logRunError(logger, result, runErr)

	if sink.Writes() > 0 {
		if _, err := sink.WriteTo(out); err != nil {
			logger.Error("printing preview", "error", err)
		}
	}

	formatter := output.NewTextFormatter(output.FormatOptions{Quiet: true})
	if err := formatter.Format(ctx, output.NewReport(result, runErr), out); err != nil {
		logger.Error("printing report", "error", err)
	}

	return nil
}
