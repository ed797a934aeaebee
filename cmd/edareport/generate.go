package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"edareport/adapters/render"
	"edareport/adapters/tabular"
	"edareport/domain/dataset"
	"edareport/internal/analysis"
	"edareport/internal/config"
	"edareport/internal/errors"
	"edareport/internal/logging"

	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [input-file]",
		Short: "Generate an EDA report from a dataset",
		Long: `Generate loads a dataset, analyzes it and writes a report directory
containing report.md, report.html and a graphs/ folder.

Input is a CSV or XLSX file, or a SQL query against a Postgres database.

Examples:
  # Report on a CSV file
  edareport generate data.csv

  # Group scatter plots by a categorical column
  edareport generate data.csv --group-by species

  # Headerless input; columns become var_1, var_2, ...
  edareport generate data.csv --no-header

  # Report on a query result
  edareport generate --dsn "postgres://localhost/db?sslmode=disable" --sql "SELECT * FROM trips"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Output directory (default from EDA_OUTPUT_DIR)")
	cmd.Flags().StringP("title", "t", "", "Report title")
	cmd.Flags().StringP("group-by", "g", "", "Column name or index to color scatter plots by")
	cmd.Flags().String("color", "", "Graph color (cyan, orangered, blue, ...)")
	cmd.Flags().IntP("workers", "w", 0, "Number of concurrent column analyzers (default: CPU count)")
	cmd.Flags().Bool("no-header", false, "Treat the first row as data, not column names")
	cmd.Flags().String("sql", "", "SQL query to load instead of a file")
	cmd.Flags().String("dsn", "", "Postgres connection string for --sql")

	return cmd
}

func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, cfg)

	log := logging.NewDefaultLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tbl, err := loadInput(ctx, cmd, args)
	if err != nil {
		return err
	}

	groupBy, _ := cmd.Flags().GetString("group-by")
	engine := analysis.NewEngine(log, cfg.Report.Workers)
	a, err := engine.Analyze(ctx, tbl, analysis.Options{GroupBy: groupBy})
	if err != nil {
		return err
	}

	gen := render.NewGenerator(log, cfg.Report.Title, cfg.Report.GraphColor)
	res, err := gen.Generate(tbl, a, cfg.Report.OutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d graphs)\n", res.Dir, res.GraphCount)
	for _, d := range a.Diagnostics {
		fmt.Fprintf(cmd.OutOrStdout(), "  note: %s\n", d.Message)
	}
	return nil
}

// applyGenerateFlags overlays explicit flags on the environment config.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("title"); v != "" {
		cfg.Report.Title = v
	}
	if v, _ := cmd.Flags().GetString("color"); v != "" {
		cfg.Report.GraphColor = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Report.Workers = v
	}
}

// loadInput reads the dataset from a file argument or a SQL query.
func loadInput(ctx context.Context, cmd *cobra.Command, args []string) (dataset.Table, error) {
	query, _ := cmd.Flags().GetString("sql")
	if query != "" {
		dsn, _ := cmd.Flags().GetString("dsn")
		if dsn == "" {
			return dataset.Table{}, errors.New(errors.CodeInputError, "--sql requires --dsn")
		}
		reader, err := tabular.NewSQLReader(dsn)
		if err != nil {
			return dataset.Table{}, err
		}
		defer reader.Close()
		return reader.Query(ctx, query)
	}

	if len(args) == 0 {
		return dataset.Table{}, errors.New(errors.CodeInputError, "an input file or --sql query is required")
	}
	reader := tabular.NewReader(args[0])
	reader.Headerless, _ = cmd.Flags().GetBool("no-header")
	return reader.Read()
}
