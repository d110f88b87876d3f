package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/junkd0g/bechdel/internal/category"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrTagNotFound        = goerr.NewTag("input_not_found")
	ErrTagSchema          = goerr.NewTag("schema")
	ErrTagUnknownCategory = goerr.NewTag("unknown_category")
)

// Schema names the required columns of the input file.
type Schema struct {
	Rank    string
	Title   string
	Year    string
	Bechdel string
	Reverse string
}

// DefaultSchema returns the column names of the IMDb Bechdel sheet.
func DefaultSchema() Schema {
	return Schema{
		Rank:    "Rank",
		Title:   "Title",
		Year:    "Year of Release",
		Bechdel: "Pass Bechdel Test?",
		Reverse: "Pass Reverse Bechdel Test?",
	}
}

func (s Schema) columns() []string {
	return []string{s.Rank, s.Title, s.Year, s.Bechdel, s.Reverse}
}

// Row is one movie.
type Row struct {
	Rank    int
	Title   string
	Year    int
	Bechdel string // Bechdel test category ID
	Reverse string // Reverse Bechdel test category ID
	Label   string
}

// Decade returns the row's release decade, e.g. 1990 for 1994.
func (r Row) Decade() int {
	return Decade(r.Year)
}

// Decade truncates year to its decade using floor division.
func Decade(year int) int {
	d := year / 10
	if year%10 < 0 {
		d--
	}
	return d * 10
}

// DecadeLabel formats a decade as "1990s".
func DecadeLabel(decade int) string {
	return fmt.Sprintf("%ds", decade)
}

// Label formats the display label of a movie.
func Label(rank int, title string, year int) string {
	return fmt.Sprintf("%d. %s (%d)", rank, title, year)
}

// Table is the loaded dataset together with the category table its results belong to.
type Table struct {
	Rows       []Row
	Categories *category.Set
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Load reads a tab-separated file and validates every result against categories.
func Load(path string, schema Schema, categories *category.Set) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(err, "input file not found",
				goerr.V("path", path),
				goerr.T(ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to open input file",
			goerr.V("path", path),
			goerr.T(ErrTagNotFound))
	}
	defer f.Close()

	table, err := Read(f, schema, categories)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("path", path))
	}
	return table, nil
}

// Read parses tab-separated rows from r.
func Read(r io.Reader, schema Schema, categories *category.Set) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, goerr.New("input file is empty", goerr.T(ErrTagSchema))
		}
		return nil, goerr.Wrap(err, "failed to read header", goerr.T(ErrTagSchema))
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range schema.columns() {
		if _, ok := index[col]; !ok {
			return nil, goerr.New("required column is missing",
				goerr.V("column", col),
				goerr.T(ErrTagSchema))
		}
	}

	table := &Table{Categories: categories}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read row", goerr.T(ErrTagSchema))
		}
		line, _ := reader.FieldPos(0)

		row, err := parseRow(record, index, schema, categories)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid row", goerr.V("line", line))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func parseRow(record []string, index map[string]int, schema Schema, categories *category.Set) (Row, error) {
	field := func(col string) string {
		return record[index[col]]
	}

	rank, err := strconv.Atoi(strings.TrimSpace(field(schema.Rank)))
	if err != nil {
		return Row{}, goerr.Wrap(err, "rank is not an integer",
			goerr.V("column", schema.Rank),
			goerr.V("value", field(schema.Rank)),
			goerr.T(ErrTagSchema))
	}
	year, err := strconv.Atoi(strings.TrimSpace(field(schema.Year)))
	if err != nil {
		return Row{}, goerr.Wrap(err, "year is not an integer",
			goerr.V("column", schema.Year),
			goerr.V("value", field(schema.Year)),
			goerr.T(ErrTagSchema))
	}

	title := strings.TrimSpace(field(schema.Title))
	bechdel := strings.TrimSpace(field(schema.Bechdel))
	reverse := strings.TrimSpace(field(schema.Reverse))

	for _, v := range []struct{ col, value string }{
		{schema.Bechdel, bechdel},
		{schema.Reverse, reverse},
	} {
		if !categories.Contains(v.value) {
			return Row{}, goerr.New("unknown category",
				goerr.V("column", v.col),
				goerr.V("value", v.value),
				goerr.V("title", title),
				goerr.T(ErrTagUnknownCategory))
		}
	}

	return Row{
		Rank:    rank,
		Title:   title,
		Year:    year,
		Bechdel: bechdel,
		Reverse: reverse,
		Label:   Label(rank, title, year),
	}, nil
}

// Collapse maps every result onto the Pass/Fail table.
func (t *Table) Collapse() (*Table, error) {
	collapsed := &Table{
		Rows:       make([]Row, 0, len(t.Rows)),
		Categories: category.Collapsed(),
	}
	for _, row := range t.Rows {
		bechdel, ok := t.Categories.CollapseID(row.Bechdel)
		if !ok {
			return nil, goerr.New("unknown category",
				goerr.V("value", row.Bechdel),
				goerr.V("title", row.Title),
				goerr.T(ErrTagUnknownCategory))
		}
		reverse, ok := t.Categories.CollapseID(row.Reverse)
		if !ok {
			return nil, goerr.New("unknown category",
				goerr.V("value", row.Reverse),
				goerr.V("title", row.Title),
				goerr.T(ErrTagUnknownCategory))
		}
		row.Bechdel = bechdel
		row.Reverse = reverse
		collapsed.Rows = append(collapsed.Rows, row)
	}
	return collapsed, nil
}
