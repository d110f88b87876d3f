package diagram

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/junkd0g/bechdel/internal/aggregate"
	"github.com/m-mizutani/goerr/v2"
)

// Generate renders the decade overview of tl and saves it to outputPath.
// The format follows the extension: .svg renders SVG, anything else PNG.
func Generate(ctx context.Context, tl *aggregate.Timeline, outputPath string) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to create graphviz")
	}
	defer g.Close()

	graph, err := graphviz.ParseBytes([]byte(GenerateDOT(tl)))
	if err != nil {
		return goerr.Wrap(err, "failed to parse DOT")
	}
	defer graph.Close()

	format := graphviz.PNG
	if strings.HasSuffix(strings.ToLower(outputPath), ".svg") {
		format = graphviz.SVG
	}

	var buf bytes.Buffer
	if err := g.Render(ctx, graph, format, &buf); err != nil {
		return goerr.Wrap(err, "failed to render graph")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("path", outputPath))
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return goerr.Wrap(err, "failed to write output", goerr.V("path", outputPath))
	}

	return nil
}

// GenerateDOT lays decades out left to right, one cluster per decade with a node per
// category that has movies in it.
func GenerateDOT(tl *aggregate.Timeline) string {
	var sb strings.Builder

	sb.WriteString("digraph Timeline {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString(fmt.Sprintf("  label=%s;\n", quote(tl.Field.String()+" results by decade")))
	sb.WriteString("  labelloc=t;\n")
	sb.WriteString("  fontsize=20;\n")
	sb.WriteString("  fontname=\"Helvetica-Bold\";\n")
	sb.WriteString("  pad=0.4;\n")
	sb.WriteString("  nodesep=0.3;\n")
	sb.WriteString("  ranksep=0.8;\n\n")

	sb.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12, fontcolor=\"white\", penwidth=0];\n")
	sb.WriteString("  edge [style=invis];\n\n")

	var anchors []string
	for _, d := range tl.Decades {
		cluster := fmt.Sprintf("d%d", d.Decade)
		if d.Decade < 0 {
			cluster = fmt.Sprintf("dm%d", -d.Decade)
		}

		sb.WriteString(fmt.Sprintf("  subgraph cluster_%s {\n", cluster))
		sb.WriteString(fmt.Sprintf("    label=%s;\n", quote(fmt.Sprintf("%s (%d)", d.Label, d.Total))))
		sb.WriteString("    style=\"rounded,filled\";\n")
		sb.WriteString("    fillcolor=\"#FAFAFA\";\n")
		sb.WriteString("    color=\"#CCCCCC\";\n")
		sb.WriteString("    fontsize=14;\n")
		sb.WriteString("    fontname=\"Helvetica-Bold\";\n\n")

		for i, b := range d.Buckets {
			node := fmt.Sprintf("%s_%d", cluster, i)
			if i == 0 {
				anchors = append(anchors, node)
			}
			label := fmt.Sprintf("%s\\n%d (%d%%)", escape(b.Category.ID), b.Count, b.Percent)
			sb.WriteString(fmt.Sprintf("    %s [fillcolor=\"%s\", label=\"%s\"];\n", node, b.Category.Color, label))
		}

		sb.WriteString("  }\n\n")
	}

	// invisible edges keep the decades in chronological order
	for i := 1; i < len(anchors); i++ {
		sb.WriteString(fmt.Sprintf("  %s -> %s;\n", anchors[i-1], anchors[i]))
	}

	sb.WriteString("}\n")

	return sb.String()
}

func quote(s string) string {
	return "\"" + escape(s) + "\""
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return strings.ReplaceAll(s, "\"", "\\\"")
}
