package types

import "strings"

// VarcharType implements variable-length character strings.
type VarcharType struct{}

// Varchar is the singleton varchar type.
var Varchar = VarcharType{}

func (t VarcharType) Name() string { return "VARCHAR" }

func (t VarcharType) IsValid(v Value) bool {
	if v.Null {
		return true
	}
	_, ok := v.Data.(string)
	return ok
}

func (t VarcharType) Compare(a, b Value) int {
	av, _ := a.Data.(string)
	bv, _ := b.Data.(string)
	return strings.Compare(av, bv)
}
