package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ScriptURL is the ECharts build loaded by every fragment. It is never bundled.
const ScriptURL = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

var ErrTagWrite = goerr.NewTag("write_failed")

// RenderFragment serializes c into an embeddable HTML fragment: the container div,
// the CDN script tag and an inline script that initializes the chart.
func RenderFragment(c *Chart) ([]byte, error) {
	optionJSON, err := json.Marshal(c.Option)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal chart option", goerr.V("chart", c.Name))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<div id="%s" class="bechdel-chart" style="width:%dpx;height:%dpx;"></div>
<script src="%s"></script>
<script>
(function() {
    const el = document.getElementById('%s');
    if (!el || typeof echarts === 'undefined') return;
    const chart = echarts.init(el, null, { renderer: 'canvas', width: %d, height: %d });
    chart.setOption(%s);
})();
</script>
`, html.EscapeString(c.Name), c.Width, c.Height, ScriptURL, jsString(c.Name), c.Width, c.Height, optionJSON)

	return buf.Bytes(), nil
}

// Writer writes chart fragments into Dir, one file per logical chart name.
type Writer struct {
	Dir string
}

// Path returns the output path of the chart called name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.Dir, name+".html")
}

// Write renders c and replaces any existing file at its path.
func (w *Writer) Write(c *Chart) (string, error) {
	fragment, err := RenderFragment(c)
	if err != nil {
		return "", err
	}

	path := w.Path(c.Name)
	if err := writeFileBytes(path, fragment); err != nil {
		return "", goerr.Wrap(err, "failed to write chart",
			goerr.V("chart", c.Name),
			goerr.V("path", path),
			goerr.T(ErrTagWrite))
	}
	return path, nil
}

// WritePreview writes index.html, a full page embedding every chart for local review.
func (w *Writer) WritePreview(title string, charts ...*Chart) (string, error) {
	page, err := RenderPage(title, charts...)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.Dir, "index.html")
	if err := writeFileBytes(path, page); err != nil {
		return "", goerr.Wrap(err, "failed to write preview",
			goerr.V("path", path),
			goerr.T(ErrTagWrite))
	}
	return path, nil
}

// RenderPage builds a standalone HTML document around the chart fragments.
func RenderPage(title string, charts ...*Chart) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>%s</style>
</head>
<body><div class="container">
<header>
    <h1>%s</h1>
    <p>%d charts</p>
</header>
`, html.EscapeString(title), previewCSS, html.EscapeString(title), len(charts)))

	for _, c := range charts {
		fragment, err := RenderFragment(c)
		if err != nil {
			return nil, err
		}
		sb.WriteString(`<div class="chart-box">`)
		sb.WriteString(fmt.Sprintf("\n<h3>%s</h3>\n", html.EscapeString(c.Title)))
		sb.Write(fragment)
		sb.WriteString("</div>\n")
	}

	sb.WriteString(`<footer><p>Generated by bechdel</p></footer>
</div></body></html>
`)
	return []byte(sb.String()), nil
}

func writeFileBytes(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// jsString quotes s for use inside a single-quoted JavaScript literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	inner := string(b[1 : len(b)-1])
	return strings.ReplaceAll(inner, "'", `\'`)
}

const previewCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: linear-gradient(135deg, #f5f7fa 0%, #e4e8ec 100%);
    min-height: 100vh;
    color: #333;
}
.container { max-width: 800px; margin: 0 auto; padding: 20px; }
header { text-align: center; padding: 30px 0; border-bottom: 1px solid #ddd; margin-bottom: 30px; }
header h1 { font-size: 2rem; background: linear-gradient(90deg, #2ca02c, #d62728); -webkit-background-clip: text; -webkit-text-fill-color: transparent; margin-bottom: 10px; }
header p { color: #666; font-size: 1.1rem; }
.chart-box { background: #fff; border-radius: 12px; padding: 20px; border: 1px solid #e0e0e0; box-shadow: 0 2px 8px rgba(0,0,0,0.05); margin-bottom: 25px; overflow-x: auto; }
.chart-box h3 { margin-bottom: 15px; color: #333; font-size: 1.2rem; }
footer { text-align: center; padding: 30px 0; color: #999; border-top: 1px solid #ddd; margin-top: 30px; }
`
