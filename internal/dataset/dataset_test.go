package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/junkd0g/bechdel/internal/category"
	"github.com/junkd0g/bechdel/internal/dataset"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

const header = "Rank\tTitle\tYear of Release\tPass Bechdel Test?\tPass Reverse Bechdel Test?\n"

func TestLoad(t *testing.T) {
	table, err := dataset.Load(filepath.Join("testdata", "imdb_sample.csv"), dataset.DefaultSchema(), category.Default())
	gt.NoError(t, err)
	gt.Equal(t, table.Len(), 6)

	t.Run("categorical columns are trimmed", func(t *testing.T) {
		gt.Equal(t, table.Rows[0].Bechdel, "❌ Fails")
		gt.Equal(t, table.Rows[0].Reverse, "✅ Passes")
	})

	t.Run("label combines rank, title and year", func(t *testing.T) {
		gt.Equal(t, table.Rows[0].Label, "1. The Shawshank Redemption (1994)")
		gt.Equal(t, table.Rows[2].Label, "3. The Dark Knight (2008)")
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		gt.Equal(t, table.Rows[5].Rank, 6)
		gt.Equal(t, table.Rows[5].Title, "Spirited Away")
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "missing.csv"), dataset.DefaultSchema(), category.Default())
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, dataset.ErrTagNotFound)).True()
}

func TestReadSchemaErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		tag   goerr.Tag
	}{
		{
			name:  "empty input",
			input: "",
			tag:   dataset.ErrTagSchema,
		},
		{
			name:  "missing reverse column",
			input: "Rank\tTitle\tYear of Release\tPass Bechdel Test?\n1\tA\t1990\t❌ Fails\n",
			tag:   dataset.ErrTagSchema,
		},
		{
			name:  "year is not a number",
			input: header + "1\tA\tnineteen\t❌ Fails\t❌ Fails\n",
			tag:   dataset.ErrTagSchema,
		},
		{
			name:  "rank is not a number",
			input: header + "first\tA\t1990\t❌ Fails\t❌ Fails\n",
			tag:   dataset.ErrTagSchema,
		},
		{
			name:  "short row",
			input: header + "1\tA\t1990\n",
			tag:   dataset.ErrTagSchema,
		},
		{
			name:  "unknown bechdel category",
			input: header + "1\tA\t1990\t🤷 Unclear\t❌ Fails\n",
			tag:   dataset.ErrTagUnknownCategory,
		},
		{
			name:  "unknown reverse category",
			input: header + "1\tA\t1990\t❌ Fails\tPasses\n",
			tag:   dataset.ErrTagUnknownCategory,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataset.Read(strings.NewReader(tc.input), dataset.DefaultSchema(), category.Default())
			gt.Error(t, err)
			gt.B(t, goerr.HasTag(err, tc.tag)).True()
		})
	}
}

func TestReadCustomSchema(t *testing.T) {
	schema := dataset.Schema{Rank: "#", Title: "Movie", Year: "Year", Bechdel: "B", Reverse: "R"}
	input := "Year\tMovie\t#\tB\tR\textra\n2005\tBatman Begins\t7\t❌ Fails\t✅ Passes\tx\n"

	table, err := dataset.Read(strings.NewReader(input), schema, category.Default())
	gt.NoError(t, err)
	gt.Equal(t, table.Len(), 1)
	gt.Equal(t, table.Rows[0].Label, "7. Batman Begins (2005)")
	gt.Equal(t, table.Rows[0].Decade(), 2000)
}

func TestDecade(t *testing.T) {
	testCases := []struct {
		year   int
		decade int
		label  string
	}{
		{year: 1994, decade: 1990, label: "1990s"},
		{year: 2005, decade: 2000, label: "2000s"},
		{year: 1990, decade: 1990, label: "1990s"},
		{year: 1999, decade: 1990, label: "1990s"},
		{year: -5, decade: -10, label: "-10s"},
	}

	for _, tc := range testCases {
		gt.Equal(t, dataset.Decade(tc.year), tc.decade)
		gt.Equal(t, dataset.DecadeLabel(dataset.Decade(tc.year)), tc.label)
	}
}

func TestCollapse(t *testing.T) {
	table, err := dataset.Load(filepath.Join("testdata", "imdb_sample.csv"), dataset.DefaultSchema(), category.Default())
	gt.NoError(t, err)

	collapsed, err := table.Collapse()
	gt.NoError(t, err)
	gt.Equal(t, collapsed.Len(), table.Len())
	gt.Equal(t, collapsed.Rows[0].Bechdel, category.FailID)
	gt.Equal(t, collapsed.Rows[1].Bechdel, category.PassID)
	gt.Equal(t, collapsed.Rows[3].Bechdel, category.PassID)
	gt.Equal(t, collapsed.Rows[5].Reverse, category.FailID)
	gt.Equal(t, collapsed.Rows[0].Label, table.Rows[0].Label)
	gt.True(t, collapsed.Categories.Contains(category.PassID))

	// the source table is left untouched
	gt.Equal(t, table.Rows[1].Bechdel, "✅ Passes (dubiously)")
}

func TestLoadUnreadableDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "as-dir.csv")
	gt.NoError(t, os.Mkdir(path, 0o755))

	_, err := dataset.Load(path, dataset.DefaultSchema(), category.Default())
	gt.Error(t, err)
}
