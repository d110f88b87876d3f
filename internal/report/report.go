package report

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/junkd0g/bechdel/internal/aggregate"
	"github.com/junkd0g/bechdel/internal/category"
	"github.com/junkd0g/bechdel/internal/chart"
	"github.com/junkd0g/bechdel/internal/dataset"
	"github.com/junkd0g/bechdel/internal/diagram"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultInput     = "data/imdb_bechdel.csv"
	DefaultOutputDir = "_includes/plots/2025-07-13"
)

// Config describes one run. Relative Input and OutputDir are resolved against Root.
type Config struct {
	Root         string
	Input        string
	OutputDir    string
	CategoryFile string
	Schema       dataset.Schema
	Collapse     bool   // reduce comparison and timeline to Pass/Fail
	DiagramPath  string // optional static overview; empty disables it
	Preview      bool
}

// DefaultConfig returns the fixed paths of the blog post, relative to root.
func DefaultConfig(root string) Config {
	return Config{
		Root:      root,
		Input:     DefaultInput,
		OutputDir: DefaultOutputDir,
		Schema:    dataset.DefaultSchema(),
	}
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// InputPath returns the resolved dataset path.
func (c Config) InputPath() string { return c.resolve(c.Input) }

// OutputPath returns the resolved output directory.
func (c Config) OutputPath() string { return c.resolve(c.OutputDir) }

// LogValue returns structured log value
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("input", c.InputPath()),
		slog.String("output_dir", c.OutputPath()),
		slog.String("categories", c.CategoryFile),
		slog.Bool("collapse", c.Collapse),
		slog.String("diagram", c.resolve(c.DiagramPath)),
		slog.Bool("preview", c.Preview),
	)
}

// Summary describes a finished run.
type Summary struct {
	Rows        int
	Passing     int
	PassPercent int
	Files       []string
}

// Generate loads the dataset and writes the pie, comparison and timeline charts in that
// order. It stops at the first error; files written before it are kept.
func Generate(ctx context.Context, cfg Config) (*Summary, error) {
	logger := ctxlog.From(ctx)

	categories := category.Default()
	if cfg.CategoryFile != "" {
		set, err := category.LoadFromFile(cfg.resolve(cfg.CategoryFile))
		if err != nil {
			return nil, err
		}
		categories = set
	}

	logger.Info("Loading data", slog.String("path", cfg.InputPath()))
	table, err := dataset.Load(cfg.InputPath(), cfg.Schema, categories)
	if err != nil {
		return nil, err
	}
	logger.Debug("Dataset loaded", slog.Int("rows", table.Len()))

	derived := table
	if cfg.Collapse {
		if derived, err = table.Collapse(); err != nil {
			return nil, err
		}
	}

	summary := &Summary{Rows: table.Len()}
	for _, row := range table.Rows {
		if c, ok := categories.Lookup(row.Bechdel); ok && c.Passing {
			summary.Passing++
		}
	}
	summary.PassPercent = aggregate.Percent(summary.Passing, summary.Rows)

	w := &chart.Writer{Dir: cfg.OutputPath()}
	var charts []*chart.Chart
	write := func(c *chart.Chart) error {
		path, err := w.Write(c)
		if err != nil {
			return err
		}
		logger.Info("Plot saved", slog.String("chart", c.Name), slog.String("path", path))
		charts = append(charts, c)
		summary.Files = append(summary.Files, path)
		return nil
	}

	logger.Info("Generating plots")

	pie, err := aggregate.PieOf(table, aggregate.Bechdel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate pie chart")
	}
	if err := write(chart.PieChart(pie)); err != nil {
		return nil, err
	}

	comparison, err := aggregate.ComparisonOf(derived)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate comparison chart")
	}
	if err := write(chart.ComparisonChart(comparison)); err != nil {
		return nil, err
	}

	timeline, err := aggregate.TimelineOf(derived, aggregate.Bechdel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate timeline chart")
	}
	if err := write(chart.TimelineChart(timeline)); err != nil {
		return nil, err
	}

	if cfg.DiagramPath != "" {
		path := cfg.resolve(cfg.DiagramPath)
		if err := diagram.Generate(ctx, timeline, path); err != nil {
			return nil, goerr.Wrap(err, "failed to generate diagram", goerr.V("path", path))
		}
		logger.Info("Diagram saved", slog.String("path", path))
		summary.Files = append(summary.Files, path)
	}

	if cfg.Preview {
		path, err := w.WritePreview("Bechdel Test Analysis", charts...)
		if err != nil {
			return nil, err
		}
		logger.Info("Preview saved", slog.String("path", path))
		summary.Files = append(summary.Files, path)
	}

	return summary, nil
}
