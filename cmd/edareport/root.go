package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for edareport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edareport",
		Short: "Automated exploratory data analysis reports",
		Long: `edareport turns a tabular dataset into a narrated EDA document.

It loads CSV, XLSX or SQL query input, classifies every column as numeric,
categorical, boolean or datetime, computes summary statistics, normality
tests and pairwise correlations, renders graphs, and writes a markdown and
HTML report.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
