package render

import (
	"bytes"
	"fmt"
	"io"

	domstats "edareport/domain/stats"
	"edareport/internal/errors"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// htmlPage wraps the converted report body in a standalone document.
const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; color: #24292f; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #d0d7de; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f6f8fa; }
img { max-width: 100%%; }
blockquote { border-left: 4px solid #d0d7de; margin-left: 0; padding-left: 1rem; color: #57606a; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLWriter outputs the report as a standalone HTML page by converting the
// markdown form.
type HTMLWriter struct {
	md *MarkdownWriter
}

// NewHTMLWriter creates a writer sharing the markdown writer's layout.
func NewHTMLWriter(mw *MarkdownWriter) *HTMLWriter {
	return &HTMLWriter{md: mw}
}

// Write renders the analysis as HTML to w.
func (hw *HTMLWriter) Write(w io.Writer, a *domstats.Analysis, graphs *GraphSet) error {
	var buf bytes.Buffer
	if err := hw.md.Write(&buf, a, graphs); err != nil {
		return err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML(buf.Bytes(), p, renderer)

	if _, err := fmt.Fprintf(w, htmlPage, hw.md.Title, body); err != nil {
		return errors.Wrap(err, "writing HTML report")
	}
	return nil
}
