package chart

import (
	"fmt"
	"html"
	"strings"

	"github.com/junkd0g/bechdel/internal/aggregate"
)

// Logical chart names. Each is used as the output file name and the container id.
const (
	PieChartName        = "bechdel_bar_chart"
	ComparisonChartName = "bechdel_comparison_chart"
	TimelineChartName   = "bechdel_timeline_chart"
)

const (
	Width  = 700
	Height = 500

	ExportName       = "bechdel_analysis"
	ExportPixelRatio = 2
)

// Chart is a named ECharts option ready to be written as a fragment.
type Chart struct {
	Name   string
	Title  string
	Width  int
	Height int
	Option Option
}

func newChart(name, title string) *Chart {
	return &Chart{
		Name:   name,
		Title:  title,
		Width:  Width,
		Height: Height,
		Option: Option{
			BackgroundColor: "rgba(0,0,0,0)",
			TextStyle:       TextStyle{FontSize: 14},
			Title: []Title{{
				Text:      title,
				Left:      "center",
				TextStyle: &TextStyle{FontSize: 18, FontWeight: "bold"},
			}},
			Tooltip: Tooltip{Trigger: "item", Confine: true},
			Legend: Legend{
				Data:      []string{},
				Bottom:    "0",
				TextStyle: TextStyle{FontSize: 14},
			},
			Toolbox: Toolbox{
				Show:  true,
				Right: "10",
				Feature: ToolboxFeature{
					SaveAsImage: SaveAsImage{
						Type:       "png",
						Name:       ExportName,
						PixelRatio: ExportPixelRatio,
						Title:      "Download PNG",
					},
				},
			},
			Series: []Series{},
		},
	}
}

// PieChart renders the breakdown of one test as a single pie.
func PieChart(pie *aggregate.Pie) *Chart {
	c := newChart(PieChartName, fmt.Sprintf("Bechdel Test Results for IMDb Top %d Movies", pie.Total))
	c.Option.Legend.Data = legendOf(pie.Buckets)
	c.Option.Series = append(c.Option.Series, pieSeries(pie, "55%", []string{"50%", "52%"}))
	return c
}

// ComparisonChart renders both tests as two pies side by side.
func ComparisonChart(cmp *aggregate.Comparison) *Chart {
	c := newChart(ComparisonChartName, "Comparison of Bechdel and Reverse Bechdel Test Results")
	for _, cat := range cmp.Categories {
		c.Option.Legend.Data = append(c.Option.Legend.Data, cat.ID)
	}

	for i, pie := range []*aggregate.Pie{cmp.Bechdel, cmp.Reverse} {
		left := []string{"25%", "75%"}[i]
		c.Option.Title = append(c.Option.Title, Title{
			Text:      pie.Field.String(),
			Left:      left,
			Top:       "12%",
			TextAlign: "center",
			TextStyle: &TextStyle{FontSize: 16},
		})
		c.Option.Series = append(c.Option.Series, pieSeries(pie, "38%", []string{left, "55%"}))
	}
	return c
}

// TimelineChart renders one stacked bar per decade.
func TimelineChart(tl *aggregate.Timeline) *Chart {
	c := newChart(TimelineChartName, "Bechdel Test Results by Decade")
	c.Option.Grid = &Grid{Left: "60", Right: "30", Top: "70", Bottom: "80", ContainLabel: true}

	decades := make([]string, 0, len(tl.Decades))
	for _, d := range tl.Decades {
		decades = append(decades, d.Label)
	}
	c.Option.XAxis = &Axis{
		Type:          "category",
		Name:          "Decade",
		NameLocation:  "middle",
		NameGap:       30,
		NameTextStyle: &TextStyle{FontSize: 16},
		Data:          decades,
	}
	c.Option.YAxis = &Axis{
		Type:          "value",
		Name:          "Number of Movies",
		NameLocation:  "middle",
		NameGap:       40,
		NameTextStyle: &TextStyle{FontSize: 16},
		MinInterval:   1,
	}

	for _, cat := range tl.Categories {
		c.Option.Legend.Data = append(c.Option.Legend.Data, cat.ID)

		s := Series{
			Name:        cat.ID,
			Type:        "bar",
			Stack:       "decade",
			BarMaxWidth: 80,
			ItemStyle:   &ItemStyle{Color: cat.Color},
			Label:       &Label{Show: true, Position: "inside"},
			Data:        make([]*DataItem, 0, len(tl.Decades)),
		}
		for _, d := range tl.Decades {
			b, ok := d.Bucket(cat.ID)
			if !ok {
				s.Data = append(s.Data, nil)
				continue
			}
			s.Data = append(s.Data, &DataItem{
				Name:    d.Label,
				Value:   b.Count,
				Label:   &Label{Show: true, Formatter: fmt.Sprintf("%d%%", b.Percent)},
				Tooltip: &ItemTooltip{Formatter: hoverText(d.Label+" · "+cat.ID, b)},
			})
		}
		c.Option.Series = append(c.Option.Series, s)
	}

	return c
}

func pieSeries(pie *aggregate.Pie, radius string, center []string) Series {
	s := Series{
		Name:   pie.Field.String(),
		Type:   "pie",
		Radius: radius,
		Center: center,
		ItemStyle: &ItemStyle{
			BorderColor: "#ffffff",
			BorderWidth: 2,
		},
		Label: &Label{Show: true, Position: "outside", FontSize: 13},
		Data:  make([]*DataItem, 0, len(pie.Buckets)),
	}
	for _, b := range pie.Buckets {
		s.Data = append(s.Data, &DataItem{
			Name:      b.Category.ID,
			Value:     b.Count,
			ItemStyle: &ItemStyle{Color: b.Category.Color},
			Label:     &Label{Show: true, Formatter: sliceLabel(b)},
			Tooltip:   &ItemTooltip{Formatter: hoverText(b.Category.ID, b)},
		})
	}
	return s
}

func sliceLabel(b aggregate.Bucket) string {
	unit := "movies"
	if b.Count == 1 {
		unit = "movie"
	}
	return fmt.Sprintf("%d %s (%d%%)", b.Count, unit, b.Percent)
}

// hoverText lists every member of the bucket. Titles are escaped because ECharts
// renders tooltip formatters as HTML.
func hoverText(heading string, b aggregate.Bucket) string {
	var sb strings.Builder
	sb.WriteString("<b>")
	sb.WriteString(html.EscapeString(heading))
	sb.WriteString("</b><br/>")
	sb.WriteString(fmt.Sprintf("Number of Movies: %d (%d%%)", b.Count, b.Percent))
	for _, m := range b.Members {
		sb.WriteString("<br/>")
		sb.WriteString(html.EscapeString(m))
	}
	return sb.String()
}

func legendOf(buckets []aggregate.Bucket) []string {
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Category.ID)
	}
	return names
}
