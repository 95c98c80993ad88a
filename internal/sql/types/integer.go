package types

// IntegerType implements 64-bit signed integers.
type IntegerType struct{}

// Integer is the singleton integer type.
var Integer = IntegerType{}

func (t IntegerType) Name() string { return "INTEGER" }

func (t IntegerType) IsValid(v Value) bool {
	if v.Null {
		return true
	}
	_, ok := asInt64(v.Data)
	return ok
}

func (t IntegerType) Compare(a, b Value) int {
	av, _ := asInt64(a.Data)
	bv, _ := asInt64(b.Data)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func asInt64(data interface{}) (int64, bool) {
	switch v := data.(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
