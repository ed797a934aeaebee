package tabular

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"edareport/domain/dataset"
	"edareport/internal/errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// SQLReader loads the result set of a query into a table. Cell values are
// stringified and re-coerced through the same typing pass as file input, so a
// TEXT column holding numbers still classifies as numeric.
type SQLReader struct {
	db *sqlx.DB
}

// NewSQLReader connects to a Postgres database.
func NewSQLReader(dsn string) (*SQLReader, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &SQLReader{db: db}, nil
}

// Close releases the connection pool.
func (r *SQLReader) Close() error { return r.db.Close() }

// Query runs the query and assembles its rows into a typed table.
func (r *SQLReader) Query(ctx context.Context, query string, args ...any) (dataset.Table, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return dataset.Table{}, errors.Wrap(err, "running query")
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return dataset.Table{}, errors.Wrap(err, "reading result columns")
	}

	records := [][]string{names}
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return dataset.Table{}, errors.Wrap(err, "scanning result row")
		}
		record := make([]string, len(raw))
		for i, cell := range raw {
			record[i] = stringifyCell(cell)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return dataset.Table{}, errors.Wrap(err, "iterating result rows")
	}

	return FromRecords(records, true)
}

func stringifyCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case sql.NullString:
		if !v.Valid {
			return ""
		}
		return v.String
	default:
		return fmt.Sprintf("%v", v)
	}
}
