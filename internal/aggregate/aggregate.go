package aggregate

import (
	"math"
	"sort"

	"github.com/junkd0g/bechdel/internal/category"
	"github.com/junkd0g/bechdel/internal/dataset"
	"github.com/m-mizutani/goerr/v2"
)

// Field selects which test result of a row is aggregated.
type Field int

const (
	Bechdel Field = iota
	Reverse
)

// Value returns the selected category ID of row.
func (f Field) Value(row dataset.Row) string {
	if f == Reverse {
		return row.Reverse
	}
	return row.Bechdel
}

func (f Field) String() string {
	if f == Reverse {
		return "Reverse Bechdel Test"
	}
	return "Bechdel Test"
}

// Bucket is the set of movies sharing one category.
type Bucket struct {
	Category category.Category
	Count    int
	Percent  int
	Members  []string
}

// Pie holds one bucket per non-empty category, in table order.
type Pie struct {
	Field   Field
	Total   int
	Buckets []Bucket
}

// Comparison holds the Bechdel and reverse Bechdel breakdowns of the same movies.
type Comparison struct {
	Bechdel    *Pie
	Reverse    *Pie
	Categories []category.Category // categories present in either pie, in table order
}

// DecadeGroup holds the buckets of one decade. Percentages are relative to Total.
type DecadeGroup struct {
	Decade  int
	Label   string
	Total   int
	Buckets []Bucket
}

// Bucket returns the bucket of categoryID, if the decade has any such movie.
func (g DecadeGroup) Bucket(categoryID string) (Bucket, bool) {
	for _, b := range g.Buckets {
		if b.Category.ID == categoryID {
			return b, true
		}
	}
	return Bucket{}, false
}

// Timeline holds decades in chronological order.
type Timeline struct {
	Field      Field
	Decades    []DecadeGroup
	Categories []category.Category // categories present in at least one decade, in table order
}

// Percent rounds count/total to a whole percentage. Buckets are rounded independently,
// so a breakdown may add up to slightly more or less than 100.
func Percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}

// PieOf counts table rows per category of field.
func PieOf(table *dataset.Table, field Field) (*Pie, error) {
	buckets, err := group(table.Rows, table.Categories, field)
	if err != nil {
		return nil, err
	}
	return &Pie{
		Field:   field,
		Total:   len(table.Rows),
		Buckets: buckets,
	}, nil
}

// ComparisonOf computes the two breakdowns independently.
func ComparisonOf(table *dataset.Table) (*Comparison, error) {
	bechdel, err := PieOf(table, Bechdel)
	if err != nil {
		return nil, err
	}
	reverse, err := PieOf(table, Reverse)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool)
	for _, pie := range []*Pie{bechdel, reverse} {
		for _, b := range pie.Buckets {
			present[b.Category.ID] = true
		}
	}
	cmp := &Comparison{Bechdel: bechdel, Reverse: reverse}
	for _, c := range table.Categories.Categories {
		if present[c.ID] {
			cmp.Categories = append(cmp.Categories, c)
		}
	}
	return cmp, nil
}

// TimelineOf groups rows by release decade and category.
func TimelineOf(table *dataset.Table, field Field) (*Timeline, error) {
	byDecade := make(map[int][]dataset.Row)
	for _, row := range table.Rows {
		d := row.Decade()
		byDecade[d] = append(byDecade[d], row)
	}

	decades := make([]int, 0, len(byDecade))
	for d := range byDecade {
		decades = append(decades, d)
	}
	sort.Ints(decades)

	present := make(map[string]bool)
	timeline := &Timeline{Field: field}
	for _, d := range decades {
		rows := byDecade[d]
		buckets, err := group(rows, table.Categories, field)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to group decade", goerr.V("decade", d))
		}
		for _, b := range buckets {
			present[b.Category.ID] = true
		}
		timeline.Decades = append(timeline.Decades, DecadeGroup{
			Decade:  d,
			Label:   dataset.DecadeLabel(d),
			Total:   len(rows),
			Buckets: buckets,
		})
	}

	for _, c := range table.Categories.Categories {
		if present[c.ID] {
			timeline.Categories = append(timeline.Categories, c)
		}
	}

	return timeline, nil
}

// group buckets rows by category in table order, skipping empty categories.
// Percentages are relative to len(rows).
func group(rows []dataset.Row, categories *category.Set, field Field) ([]Bucket, error) {
	members := make(map[string][]string)
	for _, row := range rows {
		id := field.Value(row)
		if !categories.Contains(id) {
			return nil, goerr.New("unknown category",
				goerr.V("field", field.String()),
				goerr.V("value", id),
				goerr.V("title", row.Title),
				goerr.T(dataset.ErrTagUnknownCategory))
		}
		members[id] = append(members[id], row.Label)
	}

	buckets := []Bucket{}
	for _, c := range categories.Categories {
		labels, ok := members[c.ID]
		if !ok || len(labels) == 0 {
			continue
		}
		buckets = append(buckets, Bucket{
			Category: c,
			Count:    len(labels),
			Percent:  Percent(len(labels), len(rows)),
			Members:  labels,
		})
	}
	return buckets, nil
}
