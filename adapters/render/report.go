package render

import (
	"io"
	"os"
	"path/filepath"

	"edareport/domain/dataset"
	domstats "edareport/domain/stats"
	"edareport/internal/errors"
	"edareport/internal/logging"
	"edareport/internal/plot"
)

// Output file names inside the report directory.
const (
	markdownFileName = "report.md"
	htmlFileName     = "report.html"
)

// Generator writes a complete report directory for an analysis: markdown
// source, HTML page and every graph.
type Generator struct {
	log      *logging.Logger
	renderer *plot.Renderer
	md       *MarkdownWriter
	html     *HTMLWriter
}

// NewGenerator creates a report generator with the given title and graph
// color.
func NewGenerator(log *logging.Logger, title, graphColor string) *Generator {
	mw := NewMarkdownWriter(title)
	return &Generator{
		log:      log,
		renderer: plot.NewRenderer(graphColor),
		md:       mw,
		html:     NewHTMLWriter(mw),
	}
}

// Result names the files a generation run produced.
type Result struct {
	Dir          string
	MarkdownPath string
	HTMLPath     string
	GraphCount   int
}

// Generate renders all graphs and documents for the analysis into dir.
func (g *Generator) Generate(tbl dataset.Table, a *domstats.Analysis, dir string) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	graphs, err := BuildGraphs(g.renderer, tbl, a)
	if err != nil {
		return nil, err
	}
	if err := graphs.WriteFiles(dir); err != nil {
		return nil, err
	}

	mdPath := filepath.Join(dir, markdownFileName)
	if err := g.writeDocument(mdPath, a, graphs, g.md.Write); err != nil {
		return nil, err
	}

	htmlPath := filepath.Join(dir, htmlFileName)
	if err := g.writeDocument(htmlPath, a, graphs, g.html.Write); err != nil {
		return nil, err
	}

	count := len(graphs.Regressions)
	for _, m := range graphs.Variables {
		count += len(m)
	}
	if graphs.Heatmap != nil {
		count++
	}

	g.log.Info("report written: dir=%s graphs=%d report_id=%s", dir, count, a.ReportID)
	return &Result{
		Dir:          dir,
		MarkdownPath: mdPath,
		HTMLPath:     htmlPath,
		GraphCount:   count,
	}, nil
}

type documentFunc func(w io.Writer, a *domstats.Analysis, graphs *GraphSet) error

func (g *Generator) writeDocument(path string, a *domstats.Analysis, graphs *GraphSet, write documentFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Base(path))
	}

	if err := write(f, a, graphs); err != nil {
		f.Close()
		return errors.Wrapf(err, "rendering %s", filepath.Base(path))
	}
	return f.Close()
}
