package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	domstats "edareport/domain/stats"
	"edareport/internal/analysis"
	"edareport/internal/errors"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs the report as GitHub-flavored markdown. Graph
// references are relative links into the graphs/ subdirectory, so the
// document works when the output directory is served or viewed as-is.
type MarkdownWriter struct {
	// Title heads the document.
	Title string
}

// NewMarkdownWriter creates a writer with the given report title.
func NewMarkdownWriter(title string) *MarkdownWriter {
	if title == "" {
		title = "Exploratory Data Analysis Report"
	}
	return &MarkdownWriter{Title: title}
}

// Write renders the analysis and graph references to w.
func (mw *MarkdownWriter) Write(w io.Writer, a *domstats.Analysis, graphs *GraphSet) error {
	md := markdown.NewMarkdown(w)

	md.H1(mw.Title)
	md.PlainText("")
	md.PlainText(analysis.DescribeOverview(a.Rows, a.Cols, a.NumericCount()))
	md.PlainText("")

	mw.writeDiagnostics(md, a)
	mw.writeOverview(md, a)
	mw.writeVariables(md, a, graphs)
	mw.writeBivariate(md, a, graphs)

	md.HorizontalRule()
	md.PlainTextf("*Generated %s*", a.CreatedAt.String())

	if err := md.Build(); err != nil {
		return errors.Wrap(err, "building markdown report")
	}
	return nil
}

func (mw *MarkdownWriter) writeDiagnostics(md *markdown.Markdown, a *domstats.Analysis) {
	for _, d := range a.Diagnostics {
		if d.Level == domstats.DiagWarn {
			md.Warningf("%s", d.Message)
		} else {
			md.Note(d.Message)
		}
		md.PlainText("")
	}
}

func (mw *MarkdownWriter) writeOverview(md *markdown.Markdown, a *domstats.Analysis) {
	md.H2("Overview")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Rows", domstats.FormatCount(a.Rows)},
			{"Columns", domstats.FormatCount(a.Cols)},
			{"Numeric columns", strconv.Itoa(a.NumericCount())},
		},
	})
	md.PlainText("")

	if len(a.NumericOverview) > 0 {
		md.H3("Numeric Columns")
		md.PlainText("")
		rows := make([][]string, len(a.NumericOverview))
		for i, row := range a.NumericOverview {
			s := row.Summary
			rows[i] = []string{
				row.Column,
				strconv.Itoa(s.Count),
				formatFloat(s.Mean), formatFloat(s.StdDev),
				formatFloat(s.Min), formatFloat(s.LowerQuartile),
				formatFloat(s.Median), formatFloat(s.UpperQuartile),
				formatFloat(s.Max),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Column", "Count", "Mean", "Std Dev", "Min", "25%", "50%", "75%", "Max"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(a.CategoricalOverview) > 0 {
		md.H3("Categorical Columns")
		md.PlainText("")
		rows := make([][]string, len(a.CategoricalOverview))
		for i, row := range a.CategoricalOverview {
			rows[i] = []string{
				row.Column,
				strconv.Itoa(row.Count),
				strconv.Itoa(row.Unique),
				row.Top,
				strconv.Itoa(row.Freq),
				fmt.Sprintf("%.2f%%", row.RelativeFreq),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Column", "Count", "Unique", "Top", "Freq", "Relative Freq"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

func (mw *MarkdownWriter) writeVariables(md *markdown.Markdown, a *domstats.Analysis, graphs *GraphSet) {
	md.H2("Variables")
	md.PlainText("")

	for _, v := range a.Variables {
		md.H3(v.Name)
		md.PlainText("")
		md.PlainText(analysis.DescribeVariable(v))
		md.PlainText("")

		switch {
		case v.Summary.Numeric != nil:
			mw.writeNumericTable(md, v.Summary.Numeric)
		case v.Summary.Datetime != nil:
			mw.writeDatetimeTable(md, v.Summary.Datetime)
		case v.Summary.Categorical != nil:
			mw.writeCategoricalTable(md, v.Summary.Categorical)
		}

		if v.Normality != nil {
			mw.writeNormalityTable(md, v.Normality)
		}

		if ct, ok := a.Crosstab(v.Name); ok {
			mw.writeContingencyTable(md, a.GroupBy, ct)
		}

		if graphs != nil {
			for key := range graphs.Variables[v.Name] {
				md.PlainTextf("![%s](%s)", v.Name, variableGraphPath(v.Name, key))
				md.PlainText("")
			}
		}
	}
}

func (mw *MarkdownWriter) writeNumericTable(md *markdown.Markdown, s *domstats.NumericSummary) {
	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Number of observations", strconv.Itoa(s.Count)},
			{"Average", formatFloat(s.Mean)},
			{"Standard Deviation", formatFloat(s.StdDev)},
			{"Minimum", formatFloat(s.Min)},
			{"Lower Quartile", formatFloat(s.LowerQuartile)},
			{"Median", formatFloat(s.Median)},
			{"Upper Quartile", formatFloat(s.UpperQuartile)},
			{"Maximum", formatFloat(s.Max)},
			{"Skewness", formatFloat(s.Skewness)},
			{"Kurtosis", formatFloat(s.Kurtosis)},
		},
	})
	md.PlainText("")
}

func (mw *MarkdownWriter) writeCategoricalTable(md *markdown.Markdown, s *domstats.CategoricalSummary) {
	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Number of observations", strconv.Itoa(s.Count)},
			{"Unique values", strconv.Itoa(s.Unique)},
			{"Mode (Most frequent)", s.Mode},
			{"Mode frequency", strconv.Itoa(s.ModeFreq)},
		},
	})
	md.PlainText("")

	if len(s.MostCommon) > 0 {
		md.H4("Most Common Values")
		md.PlainText("")
		rows := make([][]string, len(s.MostCommon))
		for i, c := range s.MostCommon {
			rows[i] = []string{c.Value, c.Annotation()}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Value", "Count (%)"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

func (mw *MarkdownWriter) writeDatetimeTable(md *markdown.Markdown, s *domstats.DatetimeSummary) {
	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Number of observations", strconv.Itoa(s.Count)},
			{"Average", formatTime(s.Mean)},
			{"Minimum", formatTime(s.Min)},
			{"Lower Quartile", formatTime(s.LowerQuartile)},
			{"Median", formatTime(s.Median)},
			{"Upper Quartile", formatTime(s.UpperQuartile)},
			{"Maximum", formatTime(s.Max)},
		},
	})
	md.PlainText("")
}

func (mw *MarkdownWriter) writeNormalityTable(md *markdown.Markdown, n *domstats.NormalityResult) {
	md.H4("Tests for Normality")
	md.PlainText("")
	rows := make([][]string, len(n.Tests))
	for i, t := range n.Tests {
		rows[i] = []string{t.Name, fmt.Sprintf("%.7f", t.PValue), t.Conclusion}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Test", "p-value", fmt.Sprintf("Conclusion at α = %.2f", n.Alpha)},
		Rows:   rows,
	})
	md.PlainText("")
}

func (mw *MarkdownWriter) writeContingencyTable(md *markdown.Markdown, groupBy string, ct domstats.ContingencyTable) {
	md.H4(fmt.Sprintf("Contingency Table (by %s)", groupBy))
	md.PlainText("")

	header := append([]string{ct.Column}, ct.Groups...)
	header = append(header, "Total")

	rows := make([][]string, 0, len(ct.Rows)+1)
	for _, row := range ct.Rows {
		cells := make([]string, 0, len(row.Counts)+2)
		cells = append(cells, row.Level)
		for _, n := range row.Counts {
			cells = append(cells, strconv.Itoa(n))
		}
		cells = append(cells, strconv.Itoa(row.Total))
		rows = append(rows, cells)
	}
	totals := make([]string, 0, len(ct.GroupTotals)+2)
	totals = append(totals, "Total")
	for _, n := range ct.GroupTotals {
		totals = append(totals, strconv.Itoa(n))
	}
	totals = append(totals, strconv.Itoa(ct.GrandTotal))
	rows = append(rows, totals)

	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

func (mw *MarkdownWriter) writeBivariate(md *markdown.Markdown, a *domstats.Analysis, graphs *GraphSet) {
	if a.Correlations == nil {
		return
	}

	md.H2("Bivariate Analysis")
	md.PlainText("")

	if graphs != nil && graphs.Heatmap != nil {
		md.PlainTextf("![Correlation heatmap](%s)", heatmapPath())
		md.PlainText("")
	}

	top := a.Correlations.Top(domstats.RankingCap)
	rows := make([][]string, len(top))
	for i, pair := range top {
		rows[i] = []string{pair.X, pair.Y, fmt.Sprintf("%.2f", pair.Coefficient)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Variable 1", "Variable 2", "Pearson r"},
		Rows:   rows,
	})
	md.PlainText("")

	summaries := analysis.SummarizePairs(a.Correlations)
	texts := make([]string, len(summaries))
	for i, s := range summaries {
		texts[i] = s.Text
	}
	md.BulletList(texts...)
	md.PlainText("")

	if graphs != nil {
		for _, pair := range graphs.Regressions {
			md.H4(fmt.Sprintf("%s vs %s", pair.X, pair.Y))
			md.PlainText("")
			md.PlainTextf("![%s vs %s](%s)", pair.X, pair.Y, pairGraphPath(pair.X, pair.Y))
			md.PlainText("")
		}
	}
}

// formatFloat renders a statistic with four decimal places, or a dash for
// undefined values.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
