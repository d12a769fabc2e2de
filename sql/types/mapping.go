package types

import (
	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sqlerr"
)

// ToSQLType maps a native dataframe column type to its SQL equivalent.
// The mapping is total over the types a registry may contain: a native
// type without a SQL equivalent fails here, at schema-build time, rather
// than deep inside plan conversion.
func ToSQLType(t dataframe.ColumnType) (DataType, error) {
	switch t {
	case dataframe.Int64:
		return BigInt, nil
	case dataframe.Float64:
		return Double, nil
	case dataframe.Bool:
		return Boolean, nil
	case dataframe.String:
		return Text, nil
	case dataframe.Timestamp:
		return Timestamp, nil
	default:
		return nil, sqlerr.TypeMappingError(t.String())
	}
}

// FromSQLType maps a SQL type back to the native column type used to
// materialize values of that type.
func FromSQLType(t DataType) (dataframe.ColumnType, error) {
	switch t {
	case BigInt, Integer, SmallInt:
		return dataframe.Int64, nil
	case Float, Double:
		return dataframe.Float64, nil
	case Boolean:
		return dataframe.Bool, nil
	case Varchar, Text:
		return dataframe.String, nil
	case Timestamp, Date:
		return dataframe.Timestamp, nil
	default:
		return dataframe.Any, sqlerr.TypeMappingError(t.Name())
	}
}

// IsNumeric reports whether a SQL type belongs to the numeric family.
func IsNumeric(t DataType) bool {
	switch t {
	case BigInt, Integer, SmallInt, Float, Double:
		return true
	default:
		return false
	}
}

// ValueFromNative wraps a dataframe cell as a SQL value. A nil cell is
// NULL, never zero.
func ValueFromNative(cell any) Value {
	if cell == nil {
		return NewNullValue()
	}
	return NewValue(cell)
}

// NativeFromValue unwraps a SQL value into a dataframe cell.
func NativeFromValue(v Value) any {
	if v.Null {
		return nil
	}
	return v.Data
}

// CoerceNative converts a SQL value into the canonical native cell for
// the given column type (int64 for the integer family, float64 for the
// floating family), so mixed widths never reach a dataframe column.
func CoerceNative(v Value, t dataframe.ColumnType) (any, error) {
	if v.Null {
		return nil, nil
	}
	switch t {
	case dataframe.Int64:
		return v.AsInt()
	case dataframe.Float64:
		return v.AsDouble()
	case dataframe.Bool:
		return v.AsBool()
	case dataframe.String:
		return v.AsString()
	default:
		return v.Data, nil
	}
}
