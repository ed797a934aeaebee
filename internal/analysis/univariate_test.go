package analysis

import (
	"math"
	"testing"
	"time"

	"edareport/domain/dataset"
	"edareport/internal/testkit"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func TestNumericSummary(t *testing.T) {
	col := testkit.NumberColumn("x", 1, 2, 3, 4)
	v := NewUnivariateAnalyzer().Analyze(col, dataset.TypeNumeric)

	s := v.Summary.Numeric
	if s == nil {
		t.Fatal("numeric summary missing")
	}
	if s.Count != 4 {
		t.Errorf("count: got %d", s.Count)
	}
	approx(t, "mean", s.Mean, 2.5, 1e-12)
	approx(t, "stddev", s.StdDev, 1.2909944487358056, 1e-9)
	approx(t, "min", s.Min, 1, 0)
	approx(t, "max", s.Max, 4, 0)
	approx(t, "median", s.Median, 2.5, 1e-12)
	approx(t, "q25", s.LowerQuartile, 1.5, 1e-12)
	approx(t, "q75", s.UpperQuartile, 3.5, 1e-12)
}

func TestNumericSummaryIgnoresMissing(t *testing.T) {
	col := dataset.Column{Name: "x", Values: []dataset.Value{
		dataset.Num(1), dataset.Missing(), dataset.Num(3), dataset.Missing(),
	}}
	v := NewUnivariateAnalyzer().Analyze(col, dataset.TypeNumeric)

	if v.Summary.Numeric.Count != 2 {
		t.Errorf("count: got %d, want 2", v.Summary.Numeric.Count)
	}
	approx(t, "mean", v.Summary.Numeric.Mean, 2, 1e-12)
	if v.Missing.String() != "2 (50.00%)" {
		t.Errorf("missing info: got %q", v.Missing.String())
	}
}

func TestSampleSkewness(t *testing.T) {
	// Bias-corrected skewness of {1,2,3,4,10}.
	got := sampleSkewness([]float64{1, 2, 3, 4, 10})
	approx(t, "skewness", got, 1.6970562748477143, 1e-9)

	if !math.IsNaN(sampleSkewness([]float64{1, 2})) {
		t.Error("skewness of n<3 should be NaN")
	}
	if !math.IsNaN(sampleSkewness([]float64{5, 5, 5, 5})) {
		t.Error("skewness of constant data should be NaN")
	}

	// Symmetric data has zero skewness.
	approx(t, "symmetric", sampleSkewness([]float64{1, 2, 3, 4, 5}), 0, 1e-12)
}

func TestSampleExcessKurtosis(t *testing.T) {
	got := sampleExcessKurtosis([]float64{1, 2, 3, 4, 10})
	approx(t, "kurtosis", got, 3.152, 1e-9)

	if !math.IsNaN(sampleExcessKurtosis([]float64{1, 2, 3})) {
		t.Error("kurtosis of n<4 should be NaN")
	}
}

func TestCategoricalSummary(t *testing.T) {
	col := testkit.StringColumn("fruit",
		"apple", "banana", "apple", "cherry", "banana", "apple", "date", "elder", "fig")
	v := NewUnivariateAnalyzer().Analyze(col, dataset.TypeCategorical)

	s := v.Summary.Categorical
	if s == nil {
		t.Fatal("categorical summary missing")
	}
	if s.Mode != "apple" || s.ModeFreq != 3 {
		t.Errorf("mode: got %q (%d)", s.Mode, s.ModeFreq)
	}
	if s.Unique != 6 {
		t.Errorf("unique: got %d, want 6", s.Unique)
	}
	if len(s.MostCommon) != 5 {
		t.Fatalf("most common: got %d entries, want 5", len(s.MostCommon))
	}
	if s.MostCommon[0].Value != "apple" || s.MostCommon[1].Value != "banana" {
		t.Errorf("ordering: got %q, %q", s.MostCommon[0].Value, s.MostCommon[1].Value)
	}
	// Ties rank by first appearance: cherry precedes date, elder, fig.
	if s.MostCommon[2].Value != "cherry" {
		t.Errorf("tie order: got %q, want cherry", s.MostCommon[2].Value)
	}
	approx(t, "mode pct", s.MostCommon[0].Pct, 100.0/3, 1e-9)
}

func TestDatetimeSummary(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	col := dataset.Column{Name: "when"}
	for i := 0; i < 5; i++ {
		col.Values = append(col.Values, dataset.TimeVal(base.AddDate(0, 0, i)))
	}
	v := NewUnivariateAnalyzer().Analyze(col, dataset.TypeDatetime)

	s := v.Summary.Datetime
	if s == nil {
		t.Fatal("datetime summary missing")
	}
	if !s.Min.Equal(base) {
		t.Errorf("min: got %v", s.Min)
	}
	if !s.Max.Equal(base.AddDate(0, 0, 4)) {
		t.Errorf("max: got %v", s.Max)
	}
	if !s.Median.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("median: got %v", s.Median)
	}
	if !s.Mean.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("mean: got %v", s.Mean)
	}
}

func TestNormalityOnlyForNumeric(t *testing.T) {
	a := NewUnivariateAnalyzer()

	few := testkit.NumberColumn("coded", testkit.Cycle(40, 1, 2, 3)...)
	if v := a.Analyze(few, dataset.TypeNumericFewLevels); v.Normality != nil {
		t.Error("few-levels column should not get normality tests")
	}

	numeric := testkit.NumberColumn("x", testkit.QuasiNormal(40)...)
	if v := a.Analyze(numeric, dataset.TypeNumeric); v.Normality == nil {
		t.Error("numeric column should get normality tests")
	}
}
