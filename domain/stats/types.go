package stats

import (
	"fmt"
	"time"

	"edareport/domain/core"
	"edareport/domain/dataset"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with locale-aware digit grouping ("12,345").
var printer = message.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// MissingInfo records missing-value accounting for one column.
type MissingInfo struct {
	Count int
	Total int
}

// String renders the contractual "N (P%)" form, or the "None" sentinel when
// no values are missing.
func (m MissingInfo) String() string {
	if m.Count == 0 {
		return "None"
	}
	pct := float64(m.Count) / float64(m.Total) * 100
	return fmt.Sprintf("%s (%.2f%%)", FormatCount(m.Count), pct)
}

// NumericSummary holds the descriptive statistics of a numeric column,
// computed from non-missing values only.
type NumericSummary struct {
	Count         int
	Mean          float64
	StdDev        float64
	Min           float64
	LowerQuartile float64
	Median        float64
	UpperQuartile float64
	Max           float64
	Skewness      float64
	Kurtosis      float64
}

// CategoryCount is one row of a most-common-values table.
type CategoryCount struct {
	Value string
	Count int
	Pct   float64 // percentage of non-missing values
}

// Annotation renders the "count (pct%)" form used in report tables.
func (c CategoryCount) Annotation() string {
	return fmt.Sprintf("%s (%.2f%%)", FormatCount(c.Count), c.Pct)
}

// CategoricalSummary holds the descriptive statistics of a categorical,
// boolean or few-levels-numeric column.
type CategoricalSummary struct {
	Count      int
	Unique     int
	Mode       string
	ModeFreq   int
	MostCommon []CategoryCount // top 5 by frequency, ties by first appearance
}

// DatetimeSummary holds the descriptive statistics of a datetime column.
// Quantiles are computed over Unix-time ordinals.
type DatetimeSummary struct {
	Count         int
	Mean          time.Time
	Min           time.Time
	LowerQuartile time.Time
	Median        time.Time
	UpperQuartile time.Time
	Max           time.Time
}

// VariableSummary is a tagged variant over the per-type summary shapes.
// Exactly one payload field is set, selected by Type.
type VariableSummary struct {
	Type        dataset.VariableType
	Numeric     *NumericSummary
	Categorical *CategoricalSummary
	Datetime    *DatetimeSummary
}

// NormalityTest is the outcome of a single test for normality.
type NormalityTest struct {
	Name       string
	PValue     float64
	Conclusion string
}

// NormalityResult holds the outcomes of the normality test battery. Present
// only for numeric columns with enough observations and nonzero variance.
type NormalityResult struct {
	Alpha float64
	Tests []NormalityTest
}

// Variable is the complete univariate analysis record for one column.
type Variable struct {
	Name      string
	Type      dataset.VariableType
	NumUnique int
	Missing   MissingInfo
	Summary   VariableSummary
	Normality *NormalityResult // nil unless plain numeric
}

// CorrelationPair is an unordered pair of numeric column names with their
// Pearson correlation coefficient.
type CorrelationPair struct {
	X           string
	Y           string
	Coefficient float64
}

// CorrelationRanking is the full set of unique numeric column pairs sorted by
// descending absolute coefficient. Renderers and narrative generators must
// consume at most the top RankingCap entries.
type CorrelationRanking []CorrelationPair

// RankingCap bounds how many correlation pairs reach narrative and graph
// output. 20 pairs is already around ten report pages.
const RankingCap = 20

// Top returns at most n leading pairs.
func (r CorrelationRanking) Top(n int) CorrelationRanking {
	if len(r) <= n {
		return r
	}
	return r[:n]
}

// ContingencyRow is one level of a cross-tabulated column: the per-group
// counts, aligned with the parent table's Groups, plus the row total.
type ContingencyRow struct {
	Level  string
	Counts []int
	Total  int
}

// ContingencyTable cross-tabulates one categorical-style column against the
// grouping column, with "Total" margins on both axes.
type ContingencyTable struct {
	Column      string
	Groups      []string
	Rows        []ContingencyRow
	GroupTotals []int
	GrandTotal  int
}

// NumericOverviewRow is one row of the dataset-level numeric overview table.
type NumericOverviewRow struct {
	Column  string
	Summary NumericSummary
}

// CategoricalOverviewRow is one row of the dataset-level categorical overview
// table. RelativeFreq is the mode frequency relative to total rows.
type CategoricalOverviewRow struct {
	Column       string
	Count        int
	Unique       int
	Top          string
	Freq         int
	RelativeFreq float64
}

// DiagnosticLevel grades pipeline diagnostics.
type DiagnosticLevel uint8

const (
	DiagInfo DiagnosticLevel = iota
	DiagWarn
)

// Diagnostic records a skip condition or warning produced during analysis.
// Skip conditions are values, not errors: downstream code treats the matching
// absent result as a normal state.
type Diagnostic struct {
	Level   DiagnosticLevel
	Message string
}

// Analysis is the full, immutable result of analyzing one dataset. All fields
// are populated eagerly during construction and never mutated afterwards.
type Analysis struct {
	ReportID core.ReportID
	Rows     int
	Cols     int

	// Variables holds the univariate records in input column order.
	Variables []Variable

	// NumericColumns names the plain-numeric columns, in input order.
	NumericColumns []string

	// CorrelatedColumns names every numerically stored column, in input
	// order. This is the name universe Correlations draws its pairs from;
	// it is a superset of NumericColumns.
	CorrelatedColumns []string

	// Correlations is nil when bivariate analysis was skipped.
	Correlations CorrelationRanking

	// ContingencyTables cross-tabulate the qualifying categorical-style
	// columns against the grouping column. Nil when no grouping applies.
	ContingencyTables []ContingencyTable

	NumericOverview     []NumericOverviewRow
	CategoricalOverview []CategoricalOverviewRow

	// GroupBy names the effective grouping column, or "" when none applies.
	GroupBy string

	Diagnostics []Diagnostic
	CreatedAt   core.Timestamp
}

// Variable returns the univariate record for the named column.
func (a *Analysis) Variable(name string) (Variable, bool) {
	for _, v := range a.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Crosstab returns the contingency table for the named column.
func (a *Analysis) Crosstab(name string) (ContingencyTable, bool) {
	for _, t := range a.ContingencyTables {
		if t.Column == name {
			return t, true
		}
	}
	return ContingencyTable{}, false
}

// NumericCount returns the number of plain-numeric columns.
func (a *Analysis) NumericCount() int { return len(a.NumericColumns) }
