// Package testkit provides deterministic dataset builders for tests. No
// generator here uses a random source; every call returns the same data.
package testkit

import (
	"fmt"

	"edareport/domain/dataset"

	"gonum.org/v1/gonum/stat/distuv"
)

// NumberColumn builds a numeric column from literal values.
func NumberColumn(name string, values ...float64) dataset.Column {
	col := dataset.Column{Name: name, Values: make([]dataset.Value, len(values))}
	for i, v := range values {
		col.Values[i] = dataset.Num(v)
	}
	return col
}

// StringColumn builds a string column; empty strings become missing values.
func StringColumn(name string, values ...string) dataset.Column {
	col := dataset.Column{Name: name, Values: make([]dataset.Value, len(values))}
	for i, v := range values {
		if v == "" {
			col.Values[i] = dataset.Missing()
		} else {
			col.Values[i] = dataset.Str(v)
		}
	}
	return col
}

// Table assembles columns into a table.
func Table(cols ...dataset.Column) dataset.Table {
	return dataset.Table{Columns: cols}
}

// Sequence returns 0, 1, ..., n-1 as floats.
func Sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Linear returns slope*i + intercept for i in [0, n).
func Linear(n int, slope, intercept float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = slope*float64(i) + intercept
	}
	return out
}

// Cycle repeats the given values until the result has n entries.
func Cycle(n int, values ...float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i%len(values)]
	}
	return out
}

// QuasiNormal returns n points from the standard normal quantile function at
// evenly spaced probabilities. The sample is as close to normally distributed
// as n points can be, so normality tests accept it.
func QuasiNormal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		p := (float64(i) + 0.5) / float64(n)
		out[i] = distuv.UnitNormal.Quantile(p)
	}
	return out
}

// Exponentialish returns n strongly right-skewed points from the exponential
// quantile function, which normality tests reliably reject at usable sizes.
func Exponentialish(n int) []float64 {
	dist := distuv.Exponential{Rate: 1}
	out := make([]float64, n)
	for i := range out {
		p := (float64(i) + 0.5) / float64(n)
		out[i] = dist.Quantile(p)
	}
	return out
}

// Groups returns labels cycling through group0..group{k-1}.
func Groups(n, k int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("group%d", i%k)
	}
	return out
}
