package container

import (
	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sqlerr"
)

// DataContainer pairs a physical dataframe with the column container
// describing its visible schema. It is the unit of value flowing between
// plan conversion plugins. Invariant: every physical label in Columns is
// present in DF.
type DataContainer struct {
	DF      *dataframe.DataFrame
	Columns ColumnContainer
}

// New creates a data container.
func New(df *dataframe.DataFrame, columns ColumnContainer) DataContainer {
	return DataContainer{DF: df, Columns: columns}
}

// Series resolves the logical column at the given position to its
// physical series.
func (dc DataContainer) Series(index int) (dataframe.Series, error) {
	label, err := dc.Columns.PhysicalLabelAt(index)
	if err != nil {
		return dataframe.Series{}, err
	}
	s, err := dc.DF.Column(label)
	if err != nil {
		return dataframe.Series{}, sqlerr.SchemaErrorf(
			"logical column %d maps to physical label %q absent from dataframe", index, label)
	}
	return s, nil
}

// Assign materializes a dataframe whose columns carry the logical names,
// in declared output order. This is the only point where logical names
// become actual dataframe labels, performed as the last step before data
// leaves the conversion pipeline.
func (dc DataContainer) Assign() (*dataframe.DataFrame, error) {
	series := make([]dataframe.Series, 0, dc.Columns.Len())
	for _, logical := range dc.Columns.Columns() {
		physical, err := dc.Columns.PhysicalLabel(logical)
		if err != nil {
			return nil, err
		}
		s, err := dc.DF.Column(physical)
		if err != nil {
			return nil, sqlerr.SchemaErrorf(
				"logical column %q maps to physical label %q absent from dataframe", logical, physical)
		}
		series = append(series, s.WithName(logical))
	}
	return dataframe.New(series...)
}
