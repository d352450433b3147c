package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/productetl/internal/ctxlog"
	"github.com/ccollicutt/productetl/pkg/config"
	"github.com/ccollicutt/productetl/pkg/lineio"
	"github.com/ccollicutt/productetl/pkg/output"
	"github.com/ccollicutt/productetl/pkg/pipeline"
	"github.com/ccollicutt/productetl/pkg/webhook"
)

// NewPipelineCommand creates the command that runs the ETL pass.
// It is used as the root command, so it takes positional arguments only.
func NewPipelineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "productetl [input] [output]",
		Short: "Transform a product catalog CSV",
		Long: `Read a product catalog CSV, apply the pricing and category rules, and
write the transformed catalog.

Arguments:
  input   catalog to read  (default ` + config.DefaultInput + `)
  output  file to write    (default ` + config.DefaultOutput + `)

Rules:
  - names are upper-cased
  - Electronics get a 10% discount
  - prices are rounded to 2 places, halves away from zero
  - Electronics above 500.00 become Premium Electronics
  - each row gets a price range: Low, Medium, High, Premium

Malformed rows are skipped and counted. Run failures are logged and the
process still exits 0.

Configuration is read from the YAML file named by ` + config.EnvConfigFile + `, if set.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runPipeline,
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = cfg.WithPaths(argAt(args, 0), argAt(args, 1))

	out := cmd.OutOrStdout()
	logger := ctxlog.New(out, cfg.Log.Level, cfg.Log.Format)
	ctx = ctxlog.WithLogger(ctx, logger)

	driver := pipeline.NewDriver(pipeline.WithLogger(logger))
	result, runErr := driver.Run(ctx, lineio.NewFileSource(cfg.Input), lineio.NewFileSink(cfg.Output))
	logRunError(logger, result, runErr)

	report := output.NewReport(result, runErr)
	if err := printReport(ctx, cfg, report, out); err != nil {
		logger.Error("printing report", "error", err)
	}

	sendWebhooks(ctx, logger, cfg, report)

	return nil
}

// logRunError reports file-level failures. None of them are fatal.
func logRunError(logger *slog.Logger, result *pipeline.Result, err error) {
	if err == nil {
		return
	}

	if errors.Is(err, pipeline.ErrInputMissing) {
		logger.Error("input file does not exist", "input", result.Metadata.Input)
		return
	}
	if errors.Is(err, pipeline.ErrRead) {
		logger.Error("file reading error", "input", result.Metadata.Input, "error", err)
	}
	if errors.Is(err, pipeline.ErrWrite) {
		logger.Error("cannot write output file", "output", result.Metadata.Output, "error", err)
	}
}

func printReport(ctx context.Context, cfg *config.Config, report *output.Report, w io.Writer) error {
	formatter, err := output.NewFormatter(cfg.Report.Format, output.FormatOptions{
		Verbose: cfg.Report.Verbose,
	})
	if err != nil {
		return err
	}
	return formatter.Format(ctx, report, w)
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged but don't fail the run.
func sendWebhooks(ctx context.Context, logger *slog.Logger, cfg *config.Config, report *output.Report) {
	if len(cfg.Webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range cfg.Webhooks {
		if !webhook.ShouldFire(wh.Trigger, report.HasIssues()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			logger.Info("webhook sent", "webhook", name, "status", resp.StatusCode, "duration", resp.Duration)
		} else {
			logger.Warn("webhook failed", "webhook", name, "error", resp.Error)
		}
	}
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
