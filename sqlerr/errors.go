// Package sqlerr defines the error taxonomy of the conversion layer.
// Every error carries a SQLSTATE code so callers can classify failures
// without string matching.
package sqlerr

import (
	"errors"
	"fmt"
)

// Error is a SQLSTATE-coded error raised during schema building or plan
// conversion.
type Error struct {
	Code     string // SQLSTATE code
	Message  string // Primary error message
	Detail   string // Optional detailed error message
	Query    string // Original query text, if applicable
	Table    string // Table name, if applicable
	Column   string // Column name, if applicable
	Function string // Function or operator name, if applicable
	DataType string // Data type name, if applicable
	Node     string // Plan or expression node kind being converted
	cause    error  // Chained cause, only set in debug mode
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Node != "" {
		msg = fmt.Sprintf("%s: %s", e.Node, msg)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s (SQLSTATE %s) DETAIL: %s", msg, e.Code, e.Detail)
	}
	return fmt.Sprintf("%s (SQLSTATE %s)", msg, e.Code)
}

// Unwrap returns the chained cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a new Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetail adds detail to the error.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithDetailf adds formatted detail to the error.
func (e *Error) WithDetailf(format string, args ...interface{}) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithQuery attaches the original query text.
func (e *Error) WithQuery(query string) *Error {
	e.Query = query
	return e
}

// WithTable sets the table name.
func (e *Error) WithTable(table string) *Error {
	e.Table = table
	return e
}

// WithColumn sets the column name.
func (e *Error) WithColumn(column string) *Error {
	e.Column = column
	return e
}

// WithFunction sets the function or operator name.
func (e *Error) WithFunction(name string) *Error {
	e.Function = name
	return e
}

// WithDataType sets the data type name.
func (e *Error) WithDataType(name string) *Error {
	e.DataType = name
	return e
}

// WithNode names the plan or expression node kind that failed.
func (e *Error) WithNode(kind string) *Error {
	e.Node = kind
	return e
}

// WithCause chains the underlying error so it participates in
// errors.Is/errors.As and is printed by %+v-style inspection.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// Common error constructors

// ParsingError reports a parse or validation failure from the external
// planner, carrying the original query text.
func ParsingError(query, message string) *Error {
	return New(SyntaxError, message).WithQuery(query)
}

// UndefinedTableError reports a table scan against an unregistered name.
func UndefinedTableError(tableName string) *Error {
	return Newf(UndefinedTable, "table %q is not registered", tableName).
		WithTable(tableName)
}

// ColumnResolutionError reports a column reference that cannot be
// resolved against the current schema.
func ColumnResolutionError(index, width int) *Error {
	return Newf(UndefinedColumn, "column reference %d out of range [0,%d)", index, width)
}

// UndefinedColumnError reports a named column that does not exist.
func UndefinedColumnError(columnName string) *Error {
	return Newf(UndefinedColumn, "column %q does not exist", columnName).
		WithColumn(columnName)
}

// UnsupportedOperationError reports an operator or function with no
// registered implementation.
func UnsupportedOperationError(name string) *Error {
	return Newf(UndefinedFunction, "operation %q is not supported", name).
		WithFunction(name)
}

// TypeMappingError reports a native type with no SQL equivalent.
func TypeMappingError(nativeType string) *Error {
	return Newf(DatatypeMismatch, "native type %q has no SQL type mapping", nativeType).
		WithDataType(nativeType)
}

// SchemaErrorf reports an internal invariant violation between a column
// container and its dataframe. Reaching this path is a defect.
func SchemaErrorf(format string, args ...interface{}) *Error {
	return Newf(InternalError, format, args...)
}

// IsError checks if an error is an Error with a specific SQLSTATE code.
func IsError(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetError attempts to extract an Error from any error, wrapping generic
// errors as internal errors.
func GetError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return SchemaErrorf("%v", err)
}
