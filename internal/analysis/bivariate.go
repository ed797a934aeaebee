package analysis

import (
	"math"
	"sort"

	"edareport/domain/dataset"
	domstats "edareport/domain/stats"

	"gonum.org/v1/gonum/stat"
)

// BivariateAnalyzer computes pairwise Pearson correlations over the numeric
// columns of a table.
type BivariateAnalyzer struct{}

// NewBivariateAnalyzer creates a new bivariate analyzer
func NewBivariateAnalyzer() *BivariateAnalyzer {
	return &BivariateAnalyzer{}
}

// AnalyzePairs computes the Pearson correlation for every unique unordered
// pair of numerically stored columns, sorted by descending absolute
// coefficient with ties broken by combination order. It returns nil when
// fewer than two such columns exist; the caller records the skip condition.
//
// The full ranking is returned; narrative and graph consumers must cap their
// consumption at stats.RankingCap entries.
func (a *BivariateAnalyzer) AnalyzePairs(columns []dataset.Column) domstats.CorrelationRanking {
	if len(columns) < 2 {
		return nil
	}

	ranking := make(domstats.CorrelationRanking, 0, len(columns)*(len(columns)-1)/2)
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			ranking = append(ranking, domstats.CorrelationPair{
				X:           columns[i].Name,
				Y:           columns[j].Name,
				Coefficient: r,
			})
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return math.Abs(ranking[i].Coefficient) > math.Abs(ranking[j].Coefficient)
	})

	return ranking
}

// pairwiseCorrelation computes Pearson's r over pairwise-complete
// observations: rows missing in either column are excluded from this pair's
// computation only.
func pairwiseCorrelation(x, y dataset.Column) float64 {
	n := x.Len()
	if y.Len() < n {
		n = y.Len()
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		vx := x.Values[i]
		vy := y.Values[i]
		if vx.Missing() || vy.Missing() {
			continue
		}
		xs = append(xs, vx.Number)
		ys = append(ys, vy.Number)
	}

	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
