package frameql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dshills/FrameQL/dataframe"
	_ "github.com/lib/pq" // registers the "postgres" driver
)

// OpenPostgres opens a PostgreSQL connection usable with
// RegisterTableFromDB.
func OpenPostgres(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}

// RegisterTableFromDB runs a query against an external database and
// registers its result set as a table. The load happens eagerly here;
// later SQL calls never touch the database. Integer widths widen to
// int64, floats to float64, byte slices become strings.
func (c *Context) RegisterTableFromDB(db *sql.DB, name, query string) error {
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("loading table %q: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("loading table %q: %w", name, err)
	}

	data := make([][]any, len(cols))
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("loading table %q: %w", name, err)
		}
		for i, cell := range cells {
			data[i] = append(data[i], normalizeCell(cell))
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loading table %q: %w", name, err)
	}

	series := make([]dataframe.Series, len(cols))
	for i, col := range cols {
		series[i] = dataframe.NewSeries(col, inferColumnType(data[i]), data[i])
	}
	df, err := dataframe.New(series...)
	if err != nil {
		return fmt.Errorf("loading table %q: %w", name, err)
	}
	c.RegisterTable(name, df)
	return nil
}

func normalizeCell(cell any) any {
	switch v := cell.(type) {
	case []byte:
		return string(v)
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}

// inferColumnType picks the native type from the first non-missing cell.
// An all-missing column defaults to string.
func inferColumnType(data []any) dataframe.ColumnType {
	for _, cell := range data {
		switch cell.(type) {
		case nil:
			continue
		case int64:
			return dataframe.Int64
		case float64:
			return dataframe.Float64
		case bool:
			return dataframe.Bool
		case string:
			return dataframe.String
		case time.Time:
			return dataframe.Timestamp
		default:
			return dataframe.Any
		}
	}
	return dataframe.String
}
