package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/junkd0g/bechdel/internal/cli/config"
	"github.com/junkd0g/bechdel/internal/report"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, nil)
}

// run is Run with the log destination exposed for tests. A nil w means stderr.
func run(ctx context.Context, args []string, w io.Writer) error {
	var (
		loggerCfg config.Logger
		reportCfg config.Report
	)

	app := &cli.Command{
		Name:    "bechdel",
		Usage:   "Generate Bechdel test charts for the IMDb Top movies",
		Version: "1.0.0",
		Flags:   joinFlags(loggerCfg.Flags(), reportCfg.Flags()),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure(w)
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			cfg, err := reportCfg.Configure()
			if err != nil {
				return err
			}
			logger.Debug("Starting chart generation", slog.Any("config", cfg))

			summary, err := report.Generate(ctx, cfg)
			if err != nil {
				logger.Error("Chart generation failed", slog.Any("error", err))
				return err
			}

			logger.Info("All plots generated",
				slog.Int("movies", summary.Rows),
				slog.Int("passing", summary.Passing),
				slog.Int("pass_percent", summary.PassPercent),
				slog.Int("files", len(summary.Files)),
			)
			return nil
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}
