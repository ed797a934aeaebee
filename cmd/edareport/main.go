// Package main provides the entry point for the edareport CLI.
//
// edareport generates exploratory data analysis reports from tabular data:
// it classifies columns, computes univariate and bivariate statistics,
// renders graphs and writes a narrated markdown/HTML document.
//
// Usage:
//
//	edareport generate data.csv
//	edareport serve ./eda-report
//
// See --help for all available options.
package main

func main() {
	Execute()
}
