package sqlerr

// SQLSTATE codes used by the conversion layer, following the PostgreSQL
// error code conventions.
const (
	// Class 0A - Feature Not Supported
	FeatureNotSupported = "0A000"

	// Class 22 - Data Exception
	DivisionByZero = "22012"

	// Class 42 - Syntax Error or Access Rule Violation
	SyntaxError       = "42601"
	UndefinedColumn   = "42703"
	UndefinedFunction = "42883"
	DatatypeMismatch  = "42804"
	UndefinedTable    = "42P01"

	// Class XX - Internal Error
	InternalError = "XX000"
)
