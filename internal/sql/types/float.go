package types

// FloatType implements double-precision floating point numbers.
type FloatType struct{}

// Float is the singleton float type.
var Float = FloatType{}

func (t FloatType) Name() string { return "FLOAT" }

func (t FloatType) IsValid(v Value) bool {
	if v.Null {
		return true
	}
	_, ok := asFloat64(v.Data)
	return ok
}

func (t FloatType) Compare(a, b Value) int {
	av, _ := asFloat64(a.Data)
	bv, _ := asFloat64(b.Data)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func asFloat64(data interface{}) (float64, bool) {
	switch v := data.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
