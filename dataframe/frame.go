package dataframe

import (
	"fmt"
	"reflect"
)

// ColumnType identifies the native type of a column.
type ColumnType int

const (
	Int64 ColumnType = iota
	Float64
	Bool
	String
	Timestamp
	// Any holds values the engine does not interpret. Columns of this type
	// cannot be exposed to SQL (they have no SQL type equivalent).
	Any
)

func (t ColumnType) String() string {
	switch t {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Timestamp:
		return "timestamp"
	case Any:
		return "any"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Series is a single named column. A nil element is a missing value,
// distinct from 0, false and "".
type Series struct {
	Name string
	Type ColumnType
	Data []any
}

// NewSeries creates a series from a name, type and cell values.
func NewSeries(name string, typ ColumnType, data []any) Series {
	return Series{Name: name, Type: typ, Data: data}
}

// NullSeries creates a series of n missing values.
func NullSeries(name string, typ ColumnType, n int) Series {
	return Series{Name: name, Type: typ, Data: make([]any, n)}
}

// Len returns the number of cells in the series.
func (s Series) Len() int {
	return len(s.Data)
}

// WithName returns a copy of the series header under a new name.
// The cell data is shared, never copied.
func (s Series) WithName(name string) Series {
	return Series{Name: name, Type: s.Type, Data: s.Data}
}

// DataFrame is an immutable, ordered collection of equal-length series.
// Every operation returns a new frame; cell data is shared between frames
// and must not be mutated.
type DataFrame struct {
	series []Series
	byName map[string]int
}

// New creates a dataframe from the given series. Series names must be
// unique and all series must have the same length.
func New(series ...Series) (*DataFrame, error) {
	byName := make(map[string]int, len(series))
	for i, s := range series {
		if _, ok := byName[s.Name]; ok {
			return nil, fmt.Errorf("duplicate column name %q", s.Name)
		}
		if s.Len() != series[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", s.Name, s.Len(), series[0].Len())
		}
		byName[s.Name] = i
	}
	return &DataFrame{series: series, byName: byName}, nil
}

// Len returns the number of rows.
func (df *DataFrame) Len() int {
	if len(df.series) == 0 {
		return 0
	}
	return df.series[0].Len()
}

// Width returns the number of columns.
func (df *DataFrame) Width() int {
	return len(df.series)
}

// Columns returns the column names in order.
func (df *DataFrame) Columns() []string {
	names := make([]string, len(df.series))
	for i, s := range df.series {
		names[i] = s.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.byName[name]
	return ok
}

// Column returns the series with the given name.
func (df *DataFrame) Column(name string) (Series, error) {
	i, ok := df.byName[name]
	if !ok {
		return Series{}, fmt.Errorf("no column %q", name)
	}
	return df.series[i], nil
}

// ColumnAt returns the series at the given position.
func (df *DataFrame) ColumnAt(i int) (Series, error) {
	if i < 0 || i >= len(df.series) {
		return Series{}, fmt.Errorf("column index %d out of range [0,%d)", i, len(df.series))
	}
	return df.series[i], nil
}

// Select returns a frame containing exactly the named columns, in the
// given order.
func (df *DataFrame) Select(names ...string) (*DataFrame, error) {
	series := make([]Series, 0, len(names))
	for _, name := range names {
		s, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return New(series...)
}

// Rename returns a frame with column names substituted per mapping.
// Names not present in the mapping are kept. Order is preserved.
func (df *DataFrame) Rename(mapping map[string]string) (*DataFrame, error) {
	series := make([]Series, len(df.series))
	for i, s := range df.series {
		if to, ok := mapping[s.Name]; ok {
			series[i] = s.WithName(to)
		} else {
			series[i] = s
		}
	}
	return New(series...)
}

// Equal reports whether two frames hold the same columns (names, types,
// order) and the same cell values. Missing values compare equal.
func (df *DataFrame) Equal(other *DataFrame) bool {
	if df.Width() != other.Width() || df.Len() != other.Len() {
		return false
	}
	for i, s := range df.series {
		o := other.series[i]
		if s.Name != o.Name || s.Type != o.Type {
			return false
		}
		if !reflect.DeepEqual(s.Data, o.Data) {
			return false
		}
	}
	return true
}

// WithColumn returns a frame with the series appended, or replacing an
// existing column of the same name in place.
func (df *DataFrame) WithColumn(s Series) (*DataFrame, error) {
	if len(df.series) > 0 && s.Len() != df.Len() {
		return nil, fmt.Errorf("column %q has %d rows, frame has %d", s.Name, s.Len(), df.Len())
	}
	series := make([]Series, len(df.series))
	copy(series, df.series)
	if i, ok := df.byName[s.Name]; ok {
		series[i] = s
	} else {
		series = append(series, s)
	}
	return New(series...)
}
