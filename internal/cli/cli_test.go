package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/junkd0g/bechdel/internal/chart"
	"github.com/junkd0g/bechdel/internal/report"
	"github.com/m-mizutani/gt"
)

const sample = "Rank\tTitle\tYear of Release\tPass Bechdel Test?\tPass Reverse Bechdel Test?\n" +
	"1\tThe Shawshank Redemption\t1994\t❌ Fails\t✅ Passes\n" +
	"2\tThe Godfather\t1972\t✅ Passes (dubiously)\t✅ Passes\n" +
	"3\tSpirited Away\t2001\t✅ Passes\t❌ Fails\n"

func TestRun(t *testing.T) {
	root := t.TempDir()
	gt.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))
	gt.NoError(t, os.WriteFile(filepath.Join(root, report.DefaultInput), []byte(sample), 0o644))

	var buf bytes.Buffer
	err := run(context.Background(), []string{
		"bechdel", "--root", root, "--log-format", "json", "--preview",
	}, &buf)
	gt.NoError(t, err)

	for _, name := range []string{chart.PieChartName, chart.ComparisonChartName, chart.TimelineChartName, "index"} {
		_, err := os.Stat(filepath.Join(root, report.DefaultOutputDir, name+".html"))
		gt.NoError(t, err)
	}
	gt.S(t, buf.String()).Contains(`"msg":"All plots generated"`)
	gt.S(t, buf.String()).Contains(`"movies":3`)
}

func TestRunCustomPaths(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "movies.tsv")
	gt.NoError(t, os.WriteFile(input, []byte(sample), 0o644))

	var buf bytes.Buffer
	err := run(context.Background(), []string{
		"bechdel", "--root", root, "--input", input, "-o", "plots", "--log-format", "json",
	}, &buf)
	gt.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "plots", chart.PieChartName+".html"))
	gt.NoError(t, err)
}

func TestRunMissingInput(t *testing.T) {
	var buf bytes.Buffer
	err := run(context.Background(), []string{
		"bechdel", "--root", t.TempDir(), "--log-format", "json",
	}, &buf)
	gt.Error(t, err)
	gt.S(t, buf.String()).Contains(`"msg":"Chart generation failed"`)
}

func TestRunInvalidLogFormat(t *testing.T) {
	var buf bytes.Buffer
	err := run(context.Background(), []string{
		"bechdel", "--root", t.TempDir(), "--log-format", "xml",
	}, &buf)
	gt.Error(t, err)
}
