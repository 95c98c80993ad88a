package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := Newf(UndefinedTable, "relation \"%s\" does not exist", "users")
	assert.Equal(t, `relation "users" does not exist (SQLSTATE 42P01)`, err.Error())

	err = err.WithDetail("query referenced 2 tables")
	assert.Contains(t, err.Error(), "DETAIL: query referenced 2 tables")
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, UndefinedTable, UndefinedTableError("t").Code)
	assert.Equal(t, "t", UndefinedTableError("t").Table)

	colErr := UndefinedColumnError("c", "t")
	assert.Equal(t, UndefinedColumn, colErr.Code)
	assert.Equal(t, "c", colErr.Column)

	assert.Equal(t, ConfigFileError, ConfigErrorf("bad").Code)
	assert.Equal(t, InternalError, InternalErrorf("oops %d", 1).Code)
	assert.Equal(t, DuplicateTable, DuplicateTableError("t").Code)
	assert.Equal(t, FeatureNotSupported, FeatureNotSupportedError("CTE").Code)
}

func TestIsError(t *testing.T) {
	err := InternalErrorf("boom")
	assert.True(t, IsError(err, InternalError))
	assert.False(t, IsError(err, UndefinedTable))
	assert.False(t, IsError(nil, InternalError))
	assert.False(t, IsError(fmt.Errorf("plain"), InternalError))
}

func TestGetError(t *testing.T) {
	assert.Nil(t, GetError(nil))

	orig := ConfigErrorf("bad")
	assert.Same(t, orig, GetError(orig))

	wrapped := GetError(fmt.Errorf("plain"))
	assert.Equal(t, InternalError, wrapped.Code)
	assert.Equal(t, "plain", wrapped.Message)
}
