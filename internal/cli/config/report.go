package config

import (
	"os"

	"github.com/junkd0g/bechdel/internal/report"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Report holds the paths and switches of a chart run
type Report struct {
	Root         string
	Input        string
	OutputDir    string
	CategoryFile string
	Collapse     bool
	DiagramPath  string
	Preview      bool
}

// Flags returns CLI flags for Report configuration
func (r *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "root",
			Usage:       "Project root; defaults to the working directory",
			Category:    "Paths",
			Sources:     cli.EnvVars("BECHDEL_ROOT"),
			Destination: &r.Root,
		},
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Tab-separated dataset, relative to root",
			Category:    "Paths",
			Value:       report.DefaultInput,
			Sources:     cli.EnvVars("BECHDEL_INPUT"),
			Destination: &r.Input,
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "Directory for chart fragments, relative to root",
			Category:    "Paths",
			Value:       report.DefaultOutputDir,
			Sources:     cli.EnvVars("BECHDEL_OUTPUT_DIR"),
			Destination: &r.OutputDir,
		},
		&cli.StringFlag{
			Name:        "categories",
			Usage:       "YAML file overriding the category table",
			Category:    "Charts",
			Sources:     cli.EnvVars("BECHDEL_CATEGORIES"),
			Destination: &r.CategoryFile,
		},
		&cli.BoolFlag{
			Name:        "collapse",
			Usage:       "Reduce comparison and timeline charts to Pass/Fail",
			Category:    "Charts",
			Sources:     cli.EnvVars("BECHDEL_COLLAPSE"),
			Destination: &r.Collapse,
		},
		&cli.StringFlag{
			Name:        "diagram",
			Usage:       "Also render a decade overview with graphviz (.svg or .png)",
			Category:    "Charts",
			Sources:     cli.EnvVars("BECHDEL_DIAGRAM"),
			Destination: &r.DiagramPath,
		},
		&cli.BoolFlag{
			Name:        "preview",
			Usage:       "Also write index.html embedding every chart",
			Category:    "Charts",
			Sources:     cli.EnvVars("BECHDEL_PREVIEW"),
			Destination: &r.Preview,
		},
	}
}

// Configure converts the flags into a report.Config
func (r *Report) Configure() (report.Config, error) {
	root := r.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return report.Config{}, goerr.Wrap(err, "failed to get working directory")
		}
		root = wd
	}

	cfg := report.DefaultConfig(root)
	if r.Input != "" {
		cfg.Input = r.Input
	}
	if r.OutputDir != "" {
		cfg.OutputDir = r.OutputDir
	}
	cfg.CategoryFile = r.CategoryFile
	cfg.Collapse = r.Collapse
	cfg.DiagramPath = r.DiagramPath
	cfg.Preview = r.Preview
	return cfg, nil
}
