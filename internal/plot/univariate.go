package plot

import (
	"sort"

	"edareport/domain/dataset"
	domstats "edareport/domain/stats"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// VariableGraphs renders the graphs for a single analyzed column, keyed by
// graph name. Numeric columns get a combined histogram/box-plot panel,
// color-coded per group when a grouping column is supplied; everything else
// gets a bar plot of its most common values.
func (r *Renderer) VariableGraphs(col dataset.Column, v domstats.Variable, groups dataset.Column) (map[string][]byte, error) {
	if v.Type == dataset.TypeNumeric {
		png, err := r.histAndBoxPlot(col, groups)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{KeyHistAndBox: png}, nil
	}

	png, err := r.barPlot(col, v)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{KeyBarPlot: png}, nil
}

// histAndBoxPlot draws a histogram and a box plot of the column side by side.
// With a grouping column, each group gets its own histogram overlay and its
// own box, sharing one legend color per group.
func (r *Renderer) histAndBoxPlot(col, groups dataset.Column) ([]byte, error) {
	byGroup, order := partitionByGroup(col, groups)
	grouped := len(order) > 1 || (len(order) == 1 && order[0] != "")

	histPlot := plot.New()
	histPlot.Title.Text = "Distribution - " + col.Name
	histPlot.X.Label.Text = col.Name
	histPlot.Y.Label.Text = "Frequency"

	boxPlot := plot.New()
	boxPlot.Title.Text = "Box-plot - " + col.Name
	boxPlot.Y.Label.Text = col.Name

	for gi, g := range order {
		data := byGroup[g]

		hist, err := plotter.NewHist(plotter.Values(data), 30)
		if err != nil {
			return nil, err
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(gi), plotter.Values(data))
		if err != nil {
			return nil, err
		}
		if grouped {
			hist.FillColor = plotutil.Color(gi)
			box.FillColor = plotutil.Color(gi)
			histPlot.Legend.Add(g, hist)
		} else {
			hist.FillColor = r.color
			box.FillColor = r.color
		}
		histPlot.Add(hist)
		boxPlot.Add(box)
	}

	if grouped {
		boxPlot.NominalX(order...)
	} else {
		boxPlot.NominalX(col.Name)
	}

	return encodeTiledPNG([]*plot.Plot{histPlot, boxPlot}, 22*vg.Centimeter, 10*vg.Centimeter)
}

// partitionByGroup splits the column's numeric payloads by the parallel
// grouping column's display values. Without a usable grouping column every
// value lands in a single "" bucket; with one, rows whose group is missing
// are left out.
func partitionByGroup(col, groups dataset.Column) (map[string][]float64, []string) {
	grouped := groups.Name != "" && groups.Len() == col.Len() && groups.Name != col.Name

	byGroup := make(map[string][]float64)
	var order []string
	for i, v := range col.Values {
		if v.Kind != dataset.KindNumber {
			continue
		}
		key := ""
		if grouped {
			gv := groups.Values[i]
			if gv.Missing() {
				continue
			}
			key = gv.Display()
		}
		if _, seen := byGroup[key]; !seen {
			order = append(order, key)
		}
		byGroup[key] = append(byGroup[key], v.Number)
	}
	return byGroup, order
}

// barPlot draws the most common values of a categorical-style column.
func (r *Renderer) barPlot(col dataset.Column, v domstats.Variable) ([]byte, error) {
	// Datetime columns have no categorical summary; fall back to raw counts.
	categories := v.Summary.Categorical
	if categories == nil {
		categories = countDisplays(col)
	}

	values := make(plotter.Values, len(categories.MostCommon))
	labels := make([]string, len(categories.MostCommon))
	for i, c := range categories.MostCommon {
		values[i] = float64(c.Count)
		labels[i] = c.Value
	}

	p := plot.New()
	p.Title.Text = "Bar-plot - " + col.Name
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = r.color
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return encodePNG(p, 14*vg.Centimeter, 10*vg.Centimeter)
}

// countDisplays builds a frequency summary from raw display values.
func countDisplays(col dataset.Column) *domstats.CategoricalSummary {
	counts := make(map[string]int)
	var order []string
	for _, v := range col.NonMissing() {
		d := v.Display()
		if _, seen := counts[d]; !seen {
			order = append(order, d)
		}
		counts[d]++
	}

	summary := &domstats.CategoricalSummary{Unique: len(counts)}
	for _, d := range order {
		summary.Count += counts[d]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	limit := 5
	if len(order) < limit {
		limit = len(order)
	}
	for _, d := range order[:limit] {
		summary.MostCommon = append(summary.MostCommon, domstats.CategoryCount{
			Value: d,
			Count: counts[d],
		})
	}
	return summary
}
