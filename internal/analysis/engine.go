package analysis

import (
	"context"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"edareport/domain/core"
	"edareport/domain/dataset"
	domstats "edareport/domain/stats"
	"edareport/internal/errors"
	"edareport/internal/logging"

	"golang.org/x/sync/semaphore"
)

// groupByCardinalityLimit is the highest cardinality accepted for a grouping
// column. Anything above would clutter color-coded graphs; such a column is
// kept in the analysis but excluded from grouping, with a warning.
const groupByCardinalityLimit = 10

// Engine runs the full analysis pipeline: classification, per-column
// univariate analysis fanned out over a bounded worker pool, dataset-level
// correlation analysis, and overview table assembly.
type Engine struct {
	log        *logging.Logger
	univariate *UnivariateAnalyzer
	bivariate  *BivariateAnalyzer
	workers    int64
}

// NewEngine creates an analysis engine with the given worker-pool size.
// A non-positive size falls back to the CPU count.
func NewEngine(log *logging.Logger, workers int) *Engine {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logging.DefaultLogger
	}
	return &Engine{
		log:        log,
		univariate: NewUnivariateAnalyzer(),
		bivariate:  NewBivariateAnalyzer(),
		workers:    int64(workers),
	}
}

// Options controls a single analysis run.
type Options struct {
	// GroupBy selects the grouping column by name or decimal index.
	// Empty means no grouping.
	GroupBy string
}

// Analyze builds the complete, immutable analysis of the table. All derived
// fields are computed eagerly. Skip conditions (too few numeric columns,
// high-cardinality group-by) become diagnostics, not errors.
func (e *Engine) Analyze(ctx context.Context, tbl dataset.Table, opts Options) (*domstats.Analysis, error) {
	if tbl.Cols() == 0 || tbl.Rows() == 0 {
		return nil, errors.New(errors.CodeEmptyData, "no data to process")
	}

	analysis := &domstats.Analysis{
		ReportID:  core.ReportID(core.NewID()),
		Rows:      tbl.Rows(),
		Cols:      tbl.Cols(),
		CreatedAt: core.Now(),
	}

	groupBy, diag, err := e.resolveGroupBy(tbl, opts.GroupBy)
	if err != nil {
		return nil, err
	}
	if diag != nil {
		analysis.Diagnostics = append(analysis.Diagnostics, *diag)
	}
	analysis.GroupBy = groupBy

	variables, err := e.analyzeColumns(ctx, tbl)
	if err != nil {
		return nil, err
	}
	analysis.Variables = variables

	// Plain numeric columns feed the numeric overview; every numerically
	// stored column (few-levels and 0/1-coded booleans included)
	// participates in correlation analysis.
	var numericKind []dataset.Column
	for i, col := range tbl.Columns {
		switch variables[i].Type {
		case dataset.TypeNumeric:
			analysis.NumericColumns = append(analysis.NumericColumns, col.Name)
		}
		if col.NumericKind() {
			numericKind = append(numericKind, col)
			analysis.CorrelatedColumns = append(analysis.CorrelatedColumns, col.Name)
		}
	}

	analysis.Correlations = e.bivariate.AnalyzePairs(numericKind)
	if analysis.Correlations == nil {
		msg := "Skipped bivariate analysis: there are less than 2 numeric variables."
		e.log.Warn("%s", msg)
		analysis.Diagnostics = append(analysis.Diagnostics, domstats.Diagnostic{
			Level:   domstats.DiagWarn,
			Message: msg,
		})
	}

	analysis.ContingencyTables = buildContingencyTables(tbl, variables, groupBy)

	e.buildOverviews(analysis, tbl)

	return analysis, nil
}

// analyzeColumns fans per-column univariate analysis out over the worker
// pool. Results are collected by original column index, so report ordering
// follows input order rather than completion order.
func (e *Engine) analyzeColumns(ctx context.Context, tbl dataset.Table) ([]domstats.Variable, error) {
	sem := semaphore.NewWeighted(e.workers)
	results := make([]domstats.Variable, tbl.Cols())

	var wg sync.WaitGroup
	for i, col := range tbl.Columns {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Cancellation is all-or-nothing: in-flight results are
			// discarded with the run.
			return nil, errors.Wrap(err, "analysis canceled")
		}

		wg.Add(1)
		go func(idx int, c dataset.Column) {
			defer wg.Done()
			defer sem.Release(1)
			varType := Classify(c)
			results[idx] = e.univariate.Analyze(c, varType)
		}(i, col)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "analysis canceled")
	}
	return results, nil
}

// resolveGroupBy validates the grouping reference. An unknown name or
// out-of-range index is an input error; a valid column with too many unique
// values is accepted but excluded, with a warning diagnostic.
func (e *Engine) resolveGroupBy(tbl dataset.Table, ref string) (string, *domstats.Diagnostic, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil, nil
	}

	var col dataset.Column
	if idx, err := strconv.Atoi(ref); err == nil {
		if idx < 0 || idx >= tbl.Cols() {
			return "", nil, errors.Newf(errors.CodeGroupByError,
				"column index %d is not in the range [0, %d]", idx, tbl.Cols()-1)
		}
		col = tbl.Columns[idx]
	} else {
		var ok bool
		col, ok = tbl.Column(ref)
		if !ok {
			return "", nil, errors.Newf(errors.CodeGroupByError,
				"%q is not in %v", ref, tbl.ColumnNames())
		}
	}

	if cardinality := col.UniqueCount(); cardinality > groupByCardinalityLimit {
		msg := "Group-by variable '" + col.Name + "' not used to group values. " +
			"It has high cardinality (" + strconv.Itoa(cardinality) + ") and would clutter graphs."
		e.log.Warn("%s", msg)
		return "", &domstats.Diagnostic{Level: domstats.DiagWarn, Message: msg}, nil
	}

	return col.Name, nil, nil
}

// buildOverviews assembles the dataset-level numeric and categorical
// overview tables. Plain numeric columns appear in the numeric overview;
// everything else lands in the categorical overview.
func (e *Engine) buildOverviews(analysis *domstats.Analysis, tbl dataset.Table) {
	for i, v := range analysis.Variables {
		col := tbl.Columns[i]
		if v.Type == dataset.TypeNumeric && v.Summary.Numeric != nil {
			analysis.NumericOverview = append(analysis.NumericOverview, domstats.NumericOverviewRow{
				Column:  v.Name,
				Summary: *v.Summary.Numeric,
			})
			continue
		}

		row := domstats.CategoricalOverviewRow{
			Column: v.Name,
			Unique: v.NumUnique,
		}
		switch {
		case v.Summary.Categorical != nil:
			row.Count = v.Summary.Categorical.Count
			row.Top = v.Summary.Categorical.Mode
			row.Freq = v.Summary.Categorical.ModeFreq
		case v.Summary.Datetime != nil:
			// Datetime columns are categorical for overview purposes;
			// reuse the most frequent display value.
			cat := e.univariate.categoricalSummary(col)
			row.Count = cat.Count
			row.Top = cat.Mode
			row.Freq = cat.ModeFreq
		}
		if analysis.Rows > 0 {
			row.RelativeFreq = float64(row.Freq) / float64(analysis.Rows) * 100
		}
		analysis.CategoricalOverview = append(analysis.CategoricalOverview, row)
	}
}
