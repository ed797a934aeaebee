// Package render turns a completed analysis into report documents: a
// markdown source, an HTML page, and the PNG graphs both link to.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"edareport/domain/dataset"
	domstats "edareport/domain/stats"
	"edareport/internal/errors"
	"edareport/internal/plot"
)

// graphDirName is the subdirectory of the report output that holds PNGs.
const graphDirName = "graphs"

// GraphSet holds every rendered image for one analysis, keyed the way the
// document writers reference them.
type GraphSet struct {
	// Variables maps column name to graph key to PNG bytes.
	Variables map[string]map[string][]byte

	// Heatmap is nil when bivariate analysis was skipped.
	Heatmap []byte

	// Regressions follow the correlation ranking order, capped upstream.
	Regressions []plot.PairImage
}

// BuildGraphs renders all graphs for the analysis.
func BuildGraphs(r *plot.Renderer, tbl dataset.Table, a *domstats.Analysis) (*GraphSet, error) {
	set := &GraphSet{Variables: make(map[string]map[string][]byte, len(a.Variables))}

	var groups dataset.Column
	if a.GroupBy != "" {
		groups, _ = tbl.Column(a.GroupBy)
	}

	for _, v := range a.Variables {
		col, ok := tbl.Column(v.Name)
		if !ok {
			continue
		}
		graphs, err := r.VariableGraphs(col, v, groups)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering graphs for %q", v.Name)
		}
		set.Variables[v.Name] = graphs
	}

	if a.Correlations != nil {
		heatmap, err := r.Heatmap(a.CorrelatedColumns, a.Correlations)
		if err != nil {
			return nil, errors.Wrap(err, "rendering correlation heatmap")
		}
		set.Heatmap = heatmap

		regressions, err := r.RegressionPlots(tbl, a.Correlations, a.GroupBy)
		if err != nil {
			return nil, errors.Wrap(err, "rendering regression plots")
		}
		set.Regressions = regressions
	}

	return set, nil
}

// WriteFiles writes every PNG under dir/graphs, creating the directory as
// needed.
func (g *GraphSet) WriteFiles(dir string) error {
	graphDir := filepath.Join(dir, graphDirName)
	if err := os.MkdirAll(graphDir, 0o755); err != nil {
		return errors.Wrap(err, "creating graph directory")
	}

	write := func(name string, data []byte) error {
		if err := os.WriteFile(filepath.Join(graphDir, name), data, 0o644); err != nil {
			return errors.Wrapf(err, "writing graph %s", name)
		}
		return nil
	}

	for colName, graphs := range g.Variables {
		for key, data := range graphs {
			if err := write(variableGraphFile(colName, key), data); err != nil {
				return err
			}
		}
	}
	if g.Heatmap != nil {
		if err := write(heatmapFile(), g.Heatmap); err != nil {
			return err
		}
	}
	for _, pair := range g.Regressions {
		if err := write(pairGraphFile(pair.X, pair.Y), pair.PNG); err != nil {
			return err
		}
	}
	return nil
}

// variableGraphPath returns the document-relative link target for a
// variable's graph.
func variableGraphPath(colName, key string) string {
	return graphDirName + "/" + variableGraphFile(colName, key)
}

func heatmapPath() string { return graphDirName + "/" + heatmapFile() }

func pairGraphPath(x, y string) string {
	return graphDirName + "/" + pairGraphFile(x, y)
}

func variableGraphFile(colName, key string) string {
	return fmt.Sprintf("%s_%s.png", sanitizeName(colName), key)
}

func heatmapFile() string { return plot.KeyHeatmap + ".png" }

func pairGraphFile(x, y string) string {
	return fmt.Sprintf("%s_%s_vs_%s.png", plot.KeyRegression, sanitizeName(x), sanitizeName(y))
}

// sanitizeName turns a column name into a safe file-name fragment.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
