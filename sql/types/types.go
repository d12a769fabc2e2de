package types

import (
	"fmt"
	"time"

	"github.com/dshills/FrameQL/sqlerr"
)

// DataType represents a SQL data type as seen by the external
// parser/optimizer.
type DataType interface {
	// Name returns the SQL name of the type (e.g., "BIGINT", "VARCHAR").
	Name() string
}

type sqlType struct {
	name string
	id   TypeID
}

func (t sqlType) Name() string { return t.name }

// TypeID represents the internal ID of a data type.
type TypeID uint16

const (
	TypeIDInvalid TypeID = iota
	TypeIDBigInt
	TypeIDInteger
	TypeIDSmallInt
	TypeIDBoolean
	TypeIDVarchar
	TypeIDText
	TypeIDTimestamp
	TypeIDDate
	TypeIDFloat
	TypeIDDouble
)

// Common SQL types
var (
	BigInt    DataType = sqlType{name: "BIGINT", id: TypeIDBigInt}
	Integer   DataType = sqlType{name: "INTEGER", id: TypeIDInteger}
	SmallInt  DataType = sqlType{name: "SMALLINT", id: TypeIDSmallInt}
	Boolean   DataType = sqlType{name: "BOOLEAN", id: TypeIDBoolean}
	Varchar   DataType = sqlType{name: "VARCHAR", id: TypeIDVarchar}
	Text      DataType = sqlType{name: "TEXT", id: TypeIDText}
	Timestamp DataType = sqlType{name: "TIMESTAMP", id: TypeIDTimestamp}
	Date      DataType = sqlType{name: "DATE", id: TypeIDDate}
	Float     DataType = sqlType{name: "FLOAT", id: TypeIDFloat}
	Double    DataType = sqlType{name: "DOUBLE", id: TypeIDDouble}
	Unknown   DataType = sqlType{name: "UNKNOWN", id: TypeIDInvalid}
)

// Value represents a SQL value that can be NULL.
type Value struct {
	Data interface{}
	Null bool
}

// NewValue creates a non-null value.
func NewValue(data interface{}) Value {
	return Value{Data: data, Null: false}
}

// NewNullValue creates a null value.
func NewNullValue() Value {
	return Value{Data: nil, Null: true}
}

// IsNull returns true if the value is NULL.
func (v Value) IsNull() bool {
	return v.Null
}

// String returns a string representation of the value.
func (v Value) String() string {
	if v.Null {
		return "NULL"
	}
	return fmt.Sprintf("%v", v.Data)
}

// AsBool returns the value as a boolean.
func (v Value) AsBool() (bool, error) {
	if v.Null {
		return false, fmt.Errorf("cannot convert NULL to bool")
	}
	if b, ok := v.Data.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("cannot convert %T to bool", v.Data)
}

// AsInt returns the value as an int64.
func (v Value) AsInt() (int64, error) {
	if v.Null {
		return 0, fmt.Errorf("cannot convert NULL to int")
	}
	switch val := v.Data.(type) {
	case int64:
		return val, nil
	case int32:
		return int64(val), nil
	case int:
		return int64(val), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v.Data)
	}
}

// AsDouble returns the value as a float64.
func (v Value) AsDouble() (float64, error) {
	if v.Null {
		return 0, fmt.Errorf("cannot convert NULL to double")
	}
	switch val := v.Data.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case int32:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to double", v.Data)
	}
}

// AsString returns the value as a string.
func (v Value) AsString() (string, error) {
	if v.Null {
		return "", fmt.Errorf("cannot convert NULL to string")
	}
	if s, ok := v.Data.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("cannot convert %T to string", v.Data)
}

// Equal returns true if two values are equal.
func (v Value) Equal(other Value) bool {
	return CompareValues(v, other) == 0
}

// Compare compares two values, handling NULLs.
// NULL is considered less than any non-NULL value. Integer and floating
// point values are compared numerically across widths. Unsupported or
// mismatched operand types fail with a datatype error (SQLSTATE 42804).
func Compare(a, b Value) (int, error) {
	if a.Null && b.Null {
		return 0, nil
	}
	if a.Null {
		return -1, nil
	}
	if b.Null {
		return 1, nil
	}
	if af, aok := asFloat(a.Data); aok {
		if bf, bok := asFloat(b.Data); bok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	switch v1 := a.Data.(type) {
	case string:
		if v2, ok := b.Data.(string); ok {
			switch {
			case v1 < v2:
				return -1, nil
			case v1 > v2:
				return 1, nil
			default:
				return 0, nil
			}
		}
	case bool:
		if v2, ok := b.Data.(bool); ok {
			switch {
			case !v1 && v2:
				return -1, nil
			case v1 && !v2:
				return 1, nil
			default:
				return 0, nil
			}
		}
	case time.Time:
		if v2, ok := b.Data.(time.Time); ok {
			switch {
			case v1.Before(v2):
				return -1, nil
			case v1.After(v2):
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, sqlerr.Newf(sqlerr.DatatypeMismatch, "cannot compare %T with %T", a.Data, b.Data)
}

// CompareValues is Compare for callers that have already established
// operand compatibility; a mismatch here is a defect, so it panics.
func CompareValues(a, b Value) int {
	c, err := Compare(a, b)
	if err != nil {
		panic(fmt.Sprintf("CompareValues: %v", err))
	}
	return c
}

func asFloat(data interface{}) (float64, bool) {
	switch v := data.(type) {
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}
