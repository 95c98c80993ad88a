package errors

// SQLSTATE error codes used by StrataDB. The subset below covers the
// planning layer; codes follow the PostgreSQL SQLSTATE assignments.
const (
	// Class 0A - Feature Not Supported
	FeatureNotSupported = "0A000"

	// Class 22 - Data Exception
	InvalidParameterValue = "22023"

	// Class 42 - Syntax Error or Access Rule Violation
	SyntaxError     = "42601"
	UndefinedColumn = "42703"
	UndefinedTable  = "42P01"
	DuplicateTable  = "42P07"
	DuplicateObject = "42710"
	UndefinedObject = "42704"

	// Class F0 - Configuration File Error
	ConfigFileError = "F0000"

	// Class XX - Internal Error
	InternalError = "XX000"
)
