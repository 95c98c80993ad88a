package types

import (
	"fmt"
	"strings"
)

// DataType represents a SQL data type.
type DataType interface {
	// Name returns the SQL name of the type (e.g., "INTEGER", "VARCHAR")
	Name() string

	// Compare compares two values of this type
	// Returns: -1 if a < b, 0 if a == b, 1 if a > b
	Compare(a, b Value) int

	// IsValid checks if a value is valid for this type
	IsValid(v Value) bool
}

// Value represents a SQL value that can be NULL
type Value struct {
	Data interface{}
	Null bool
}

// NewValue creates a non-null value
func NewValue(data interface{}) Value {
	return Value{Data: data, Null: false}
}

// NewNullValue creates a null value
func NewNullValue() Value {
	return Value{Data: nil, Null: true}
}

// IsNull returns true if the value is NULL
func (v Value) IsNull() bool {
	return v.Null
}

// String returns a string representation of the value
func (v Value) String() string {
	if v.Null {
		return "NULL"
	}
	if s, ok := v.Data.(string); ok {
		return "'" + s + "'"
	}
	return fmt.Sprintf("%v", v.Data)
}

// ParseTypeName resolves a SQL type name to a DataType.
func ParseTypeName(name string) (DataType, error) {
	switch strings.ToUpper(name) {
	case "INT", "INTEGER", "BIGINT":
		return Integer, nil
	case "FLOAT", "REAL", "DOUBLE":
		return Float, nil
	case "VARCHAR", "CHAR", "TEXT", "STRING":
		return Varchar, nil
	case "BOOL", "BOOLEAN":
		return Boolean, nil
	default:
		return nil, fmt.Errorf("unknown type name: %s", name)
	}
}
