package analysis

import (
	"math"
	"sort"
	"time"

	"edareport/domain/dataset"
	domstats "edareport/domain/stats"

	"github.com/montanaflynn/stats"
)

// mostCommonLimit caps most-common-value tables for categorical columns.
const mostCommonLimit = 5

// UnivariateAnalyzer computes per-column summary statistics and normality
// test results according to the column's variable type.
type UnivariateAnalyzer struct{}

// NewUnivariateAnalyzer creates a new univariate analyzer
func NewUnivariateAnalyzer() *UnivariateAnalyzer {
	return &UnivariateAnalyzer{}
}

// Analyze computes the summary statistics appropriate to the variable type,
// the normality test battery (plain numeric columns only), and missing-value
// accounting. All statistics use non-missing values only.
func (a *UnivariateAnalyzer) Analyze(col dataset.Column, varType dataset.VariableType) domstats.Variable {
	missing := domstats.MissingInfo{Count: col.MissingCount(), Total: col.Len()}

	v := domstats.Variable{
		Name:      col.Name,
		Type:      varType,
		NumUnique: col.UniqueCount(),
		Missing:   missing,
	}

	switch varType {
	case dataset.TypeNumeric:
		v.Summary = domstats.VariableSummary{
			Type:    varType,
			Numeric: a.numericSummary(col.Floats()),
		}
		v.Normality = TestNormality(col.Floats(), SignificanceLevel)
	case dataset.TypeDatetime:
		v.Summary = domstats.VariableSummary{
			Type:     varType,
			Datetime: a.datetimeSummary(col),
		}
	default:
		v.Summary = domstats.VariableSummary{
			Type:        varType,
			Categorical: a.categoricalSummary(col),
		}
	}

	return v
}

// numericSummary computes the descriptive statistics for a numeric column.
func (a *UnivariateAnalyzer) numericSummary(data []float64) *domstats.NumericSummary {
	summary := &domstats.NumericSummary{Count: len(data)}
	if len(data) == 0 {
		return summary
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	summary.Mean = mean
	summary.StdDev = stdDev
	summary.Min = min
	summary.Max = max
	summary.Median = median
	summary.LowerQuartile = q25
	summary.UpperQuartile = q75
	summary.Skewness = sampleSkewness(data)
	summary.Kurtosis = sampleExcessKurtosis(data)

	return summary
}

// datetimeSummary computes order statistics over Unix-time ordinals.
func (a *UnivariateAnalyzer) datetimeSummary(col dataset.Column) *domstats.DatetimeSummary {
	ordinals := make([]float64, 0, col.Len())
	for _, v := range col.Values {
		if v.Kind == dataset.KindTime {
			ordinals = append(ordinals, float64(v.Time.UnixNano()))
		}
	}

	summary := &domstats.DatetimeSummary{Count: len(ordinals)}
	if len(ordinals) == 0 {
		return summary
	}

	mean, _ := stats.Mean(ordinals)
	min, _ := stats.Min(ordinals)
	max, _ := stats.Max(ordinals)
	median, _ := stats.Median(ordinals)
	q25, _ := stats.Percentile(ordinals, 25)
	q75, _ := stats.Percentile(ordinals, 75)

	summary.Mean = fromOrdinal(mean)
	summary.Min = fromOrdinal(min)
	summary.Max = fromOrdinal(max)
	summary.Median = fromOrdinal(median)
	summary.LowerQuartile = fromOrdinal(q25)
	summary.UpperQuartile = fromOrdinal(q75)

	return summary
}

func fromOrdinal(nanos float64) time.Time {
	return time.Unix(0, int64(nanos)).UTC()
}

// categoricalSummary computes the mode and most-common table for columns
// summarized as categorical (categorical, boolean, few-levels numeric).
func (a *UnivariateAnalyzer) categoricalSummary(col dataset.Column) *domstats.CategoricalSummary {
	values := col.NonMissing()
	summary := &domstats.CategoricalSummary{
		Count:  len(values),
		Unique: col.UniqueCount(),
	}
	if len(values) == 0 {
		return summary
	}

	// Count frequencies, remembering first-appearance order for stable ties.
	counts := make(map[string]int, len(values))
	order := make(map[string]int, len(values))
	for i, v := range values {
		display := v.Display()
		if _, seen := counts[display]; !seen {
			order[display] = i
		}
		counts[display]++
	}

	ranked := make([]domstats.CategoryCount, 0, len(counts))
	for value, count := range counts {
		ranked = append(ranked, domstats.CategoryCount{
			Value: value,
			Count: count,
			Pct:   float64(count) / float64(len(values)) * 100,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return order[ranked[i].Value] < order[ranked[j].Value]
	})

	summary.Mode = ranked[0].Value
	summary.ModeFreq = ranked[0].Count
	if len(ranked) > mostCommonLimit {
		ranked = ranked[:mostCommonLimit]
	}
	summary.MostCommon = ranked

	return summary
}

// centralMoments computes the population central moments m2, m3 and m4.
func centralMoments(data []float64) (m2, m3, m4 float64) {
	n := float64(len(data))
	mean := 0.0
	for _, x := range data {
		mean += x
	}
	mean /= n

	for _, x := range data {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	return m2 / n, m3 / n, m4 / n
}

// sampleSkewness computes the bias-corrected sample skewness (the adjusted
// Fisher-Pearson coefficient).
func sampleSkewness(data []float64) float64 {
	n := float64(len(data))
	if n < 3 {
		return math.NaN()
	}
	m2, m3, _ := centralMoments(data)
	if m2 == 0 {
		return math.NaN()
	}

	g1 := m3 / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// sampleExcessKurtosis computes the bias-corrected sample excess kurtosis.
func sampleExcessKurtosis(data []float64) float64 {
	n := float64(len(data))
	if n < 4 {
		return math.NaN()
	}
	m2, _, m4 := centralMoments(data)
	if m2 == 0 {
		return math.NaN()
	}

	g2 := m4/(m2*m2) - 3
	return ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
}
