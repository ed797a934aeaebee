package plot

import (
	"math/rand"

	"edareport/domain/dataset"
	domstats "edareport/domain/stats"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PairImage is one rendered regression plot for a correlation pair.
type PairImage struct {
	X   string
	Y   string
	PNG []byte
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ.
type corrGrid struct {
	names []string
	cells [][]float64
}

func (g corrGrid) Dims() (c, r int)   { return len(g.names), len(g.names) }
func (g corrGrid) Z(c, r int) float64 { return g.cells[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// correlationCells builds the symmetric coefficient matrix over names, with a
// unit diagonal. Pairs referencing a name outside the universe are skipped
// rather than misplaced.
func correlationCells(names []string, ranking domstats.CorrelationRanking) [][]float64 {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	cells := make([][]float64, len(names))
	for i := range cells {
		cells[i] = make([]float64, len(names))
		cells[i][i] = 1
	}
	for _, pair := range ranking {
		i, okX := index[pair.X]
		j, okY := index[pair.Y]
		if !okX || !okY {
			continue
		}
		cells[i][j] = pair.Coefficient
		cells[j][i] = pair.Coefficient
	}
	return cells
}

// Heatmap draws the correlation matrix of the numerically stored columns as
// a diverging-color heatmap with the coefficient range pinned to [-1, 1].
// The name universe must match the one the ranking was computed over.
func (r *Renderer) Heatmap(names []string, ranking domstats.CorrelationRanking) ([]byte, error) {
	cells := correlationCells(names, ranking)

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	pal := cm.Palette(255)

	p := plot.New()
	p.Title.Text = "Correlation - Numeric Columns"
	p.Add(plotter.NewHeatMap(corrGrid{names: names, cells: cells}, pal))

	ticks := make([]plot.Tick, len(names))
	for i, n := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: n}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.8

	return encodePNG(p, 16*vg.Centimeter, 14*vg.Centimeter)
}

// RegressionPlots renders a scatter-plus-fit plot for each of the leading
// correlation pairs, capped at stats.RankingCap. Pairs whose row count
// exceeds the sampling threshold are rendered from a deterministic sample;
// the ranking's coefficients are untouched by sampling.
func (r *Renderer) RegressionPlots(tbl dataset.Table, ranking domstats.CorrelationRanking, groupBy string) ([]PairImage, error) {
	top := ranking.Top(domstats.RankingCap)
	images := make([]PairImage, 0, len(top))

	var groups dataset.Column
	if groupBy != "" {
		groups, _ = tbl.Column(groupBy)
	}

	for _, pair := range top {
		colX, okX := tbl.Column(pair.X)
		colY, okY := tbl.Column(pair.Y)
		if !okX || !okY {
			continue
		}
		png, err := r.regressionPlot(colX, colY, groups)
		if err != nil {
			return nil, err
		}
		images = append(images, PairImage{X: pair.X, Y: pair.Y, PNG: png})
	}
	return images, nil
}

// regressionPlot draws the pairwise-complete observations of two numeric
// columns with an ordinary-least-squares fit line. When a grouping column is
// supplied, points are color-coded per group.
func (r *Renderer) regressionPlot(colX, colY, groups dataset.Column) ([]byte, error) {
	rows := colX.Len()
	grouped := groups.Len() == rows && groups.Name != ""

	type point struct {
		x, y  float64
		group string
	}
	points := make([]point, 0, rows)
	for i := 0; i < rows; i++ {
		vx, vy := colX.Values[i], colY.Values[i]
		if vx.Missing() || vy.Missing() {
			continue
		}
		pt := point{x: vx.Number, y: vy.Number}
		if grouped {
			pt.group = groups.Values[i].Display()
		}
		points = append(points, pt)
	}

	// Scatter rendering only; the fit below still uses every point.
	scatterPoints := points
	if len(points) > sampleThreshold {
		rng := rand.New(rand.NewSource(sampleSeed))
		perm := rng.Perm(len(points))[:sampleThreshold]
		scatterPoints = make([]point, sampleThreshold)
		for i, idx := range perm {
			scatterPoints[i] = points[idx]
		}
	}

	p := plot.New()
	p.Title.Text = "Regression-plot - " + colX.Name + " vs " + colY.Name
	p.X.Label.Text = colX.Name
	p.Y.Label.Text = colY.Name

	byGroup := make(map[string]plotter.XYs)
	var groupOrder []string
	for _, pt := range scatterPoints {
		if _, seen := byGroup[pt.group]; !seen {
			groupOrder = append(groupOrder, pt.group)
		}
		byGroup[pt.group] = append(byGroup[pt.group], plotter.XY{X: pt.x, Y: pt.y})
	}

	for gi, g := range groupOrder {
		scatter, err := plotter.NewScatter(byGroup[g])
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Radius = vg.Points(1.5)
		if grouped {
			scatter.GlyphStyle.Color = plotutil.Color(gi)
			p.Legend.Add(g, scatter)
		} else {
			scatter.GlyphStyle.Color = r.color
		}
		p.Add(scatter)
	}

	// OLS fit over the full pairwise-complete data.
	if len(points) >= 2 {
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for i, pt := range points {
			xs[i] = pt.x
			ys[i] = pt.y
		}
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)

		minX, maxX := xs[0], xs[0]
		for _, x := range xs {
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
		line, err := plotter.NewLine(plotter.XYs{
			{X: minX, Y: alpha + beta*minX},
			{X: maxX, Y: alpha + beta*maxX},
		})
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
	}

	return encodePNG(p, 14*vg.Centimeter, 10*vg.Centimeter)
}
