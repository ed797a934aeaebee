package render

import (
	"bytes"
	"strings"
	"testing"

	"edareport/domain/core"
	"edareport/domain/dataset"
	domstats "edareport/domain/stats"
)

func sampleAnalysis() *domstats.Analysis {
	return &domstats.Analysis{
		ReportID: core.ReportID(core.NewID()),
		Rows:     100,
		Cols:     2,
		Variables: []domstats.Variable{
			{
				Name:      "height",
				Type:      dataset.TypeNumeric,
				NumUnique: 90,
				Missing:   domstats.MissingInfo{Count: 0, Total: 100},
				Summary: domstats.VariableSummary{
					Type:    dataset.TypeNumeric,
					Numeric: &domstats.NumericSummary{Count: 100, Mean: 170.5, StdDev: 8.2, Min: 150, Max: 195},
				},
				Normality: &domstats.NormalityResult{
					Alpha: 0.05,
					Tests: []domstats.NormalityTest{
						{Name: "Shapiro-Wilk test", PValue: 0.42, Conclusion: "Possibly normal"},
					},
				},
			},
			{
				Name:      "city",
				Type:      dataset.TypeCategorical,
				NumUnique: 3,
				Missing:   domstats.MissingInfo{Count: 5, Total: 100},
				Summary: domstats.VariableSummary{
					Type: dataset.TypeCategorical,
					Categorical: &domstats.CategoricalSummary{
						Count: 95, Unique: 3, Mode: "Oslo", ModeFreq: 50,
						MostCommon: []domstats.CategoryCount{{Value: "Oslo", Count: 50, Pct: 52.63}},
					},
				},
			},
		},
		NumericColumns: []string{"height"},
		Diagnostics: []domstats.Diagnostic{
			{Level: domstats.DiagInfo, Message: "Skipped bivariate analysis: there are less than 2 numeric variables."},
		},
		CreatedAt: core.Now(),
	}
}

func TestMarkdownWriterBasicSections(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownWriter("My Report").Write(&buf, sampleAnalysis(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# My Report",
		"The dataset consists of 100 rows (observations) and 2 columns (features), 1 of which is numeric.",
		"### height",
		"Height is a numeric variable with 90 unique values. None of its values are missing.",
		"Shapiro-Wilk test",
		"Possibly normal",
		"### city",
		"5 (5.00%) of its values are missing.",
		"Skipped bivariate analysis",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdownWriterBivariateSection(t *testing.T) {
	a := sampleAnalysis()
	a.NumericColumns = []string{"height", "weight"}
	a.Correlations = domstats.CorrelationRanking{
		{X: "height", Y: "weight", Coefficient: 0.85},
	}

	var buf bytes.Buffer
	if err := NewMarkdownWriter("").Write(&buf, a, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "## Bivariate Analysis") {
		t.Error("missing bivariate section")
	}
	if !strings.Contains(out, "Height and Weight have very strong positive correlation (0.85).") {
		t.Error("missing pair summary sentence")
	}
}

func TestMarkdownWriterContingencyTable(t *testing.T) {
	a := sampleAnalysis()
	a.GroupBy = "region"
	a.ContingencyTables = []domstats.ContingencyTable{
		{
			Column: "city",
			Groups: []string{"east", "west"},
			Rows: []domstats.ContingencyRow{
				{Level: "Oslo", Counts: []int{30, 20}, Total: 50},
				{Level: "Bergen", Counts: []int{10, 35}, Total: 45},
			},
			GroupTotals: []int{40, 55},
			GrandTotal:  95,
		},
	}

	var buf bytes.Buffer
	if err := NewMarkdownWriter("").Write(&buf, a, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"#### Contingency Table (by region)",
		"| city | east | west | Total |",
		"| Oslo | 30 | 20 | 50 |",
		"| Total | 40 | 55 | 95 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdownWriterDefaultTitle(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownWriter("").Write(&buf, sampleAnalysis(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "# Exploratory Data Analysis Report") {
		t.Error("default title not applied")
	}
}

func TestHTMLWriter(t *testing.T) {
	mw := NewMarkdownWriter("My Report")
	var buf bytes.Buffer
	if err := NewHTMLWriter(mw).Write(&buf, sampleAnalysis(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(out, "<title>My Report</title>") {
		t.Error("missing page title")
	}
	if !strings.Contains(out, "My Report</h1>") {
		t.Error("heading not converted to HTML")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"Height":      "height",
		"body mass":   "body_mass",
		"x/y (ratio)": "x_y__ratio_",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
