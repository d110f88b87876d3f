package category

import (
	"os"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Category is one Bechdel test outcome as it appears in the dataset.
type Category struct {
	ID      string `yaml:"id"`      // Exact (trimmed) label used in the data, e.g. "✅ Passes"
	Color   string `yaml:"color"`   // Hex color used for every chart
	Passing bool   `yaml:"passing"` // Whether the outcome counts as a pass in the collapsed view
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate validates the category
func (c *Category) Validate() error {
	if c.ID == "" {
		return goerr.New("category ID is required")
	}
	if !hexColor.MatchString(c.Color) {
		return goerr.New("category color must be #rrggbb",
			goerr.V("id", c.ID),
			goerr.V("color", c.Color))
	}
	return nil
}

// Set is an ordered category table. The slice order is the display order.
type Set struct {
	Categories []Category `yaml:"categories"`
}

const (
	PassID = "Pass"
	FailID = "Fail"
)

// Default returns the outcome table used by the IMDb top 25 dataset.
func Default() *Set {
	return &Set{
		Categories: []Category{
			{ID: "✅ Passes", Color: "#2ca02c", Passing: true},
			{ID: "✅ Passes (dubiously)", Color: "#7fba3c", Passing: true},
			{ID: "✅ Barely passes", Color: "#b5d96c", Passing: true},
			{ID: "❌ Fails", Color: "#d62728", Passing: false},
		},
	}
}

// Collapsed returns the two-outcome Pass/Fail table.
func Collapsed() *Set {
	return &Set{
		Categories: []Category{
			{ID: PassID, Color: "#2ca02c", Passing: true},
			{ID: FailID, Color: "#d62728", Passing: false},
		},
	}
}

// Validate validates the category table
func (s *Set) Validate() error {
	if len(s.Categories) == 0 {
		return goerr.New("at least one category is required")
	}

	seen := make(map[string]bool)
	for i, c := range s.Categories {
		if err := c.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category at index",
				goerr.V("index", i),
				goerr.V("id", c.ID))
		}
		if seen[c.ID] {
			return goerr.New("duplicate category ID", goerr.V("id", c.ID))
		}
		seen[c.ID] = true
	}
	return nil
}

// Lookup returns the category with the given ID.
func (s *Set) Lookup(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Order returns the display position of id, or -1 when it is not in the table.
func (s *Set) Order(id string) int {
	for i, c := range s.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is a known category.
func (s *Set) Contains(id string) bool {
	return s.Order(id) >= 0
}

// CollapseID maps a category of s onto the Pass/Fail table.
func (s *Set) CollapseID(id string) (string, bool) {
	c, ok := s.Lookup(id)
	if !ok {
		return "", false
	}
	if c.Passing {
		return PassID, true
	}
	return FailID, true
}

// LoadFromFile loads a category table from a YAML file
func LoadFromFile(path string) (*Set, error) {
	if path == "" {
		return nil, goerr.New("category file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "category file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read category file",
			goerr.V("path", path))
	}

	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, goerr.Wrap(err, "failed to parse category file",
			goerr.V("path", path))
	}

	if err := set.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid category file",
			goerr.V("path", path))
	}

	return &set, nil
}
