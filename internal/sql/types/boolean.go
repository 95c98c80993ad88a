package types

// BooleanType implements SQL booleans.
type BooleanType struct{}

// Boolean is the singleton boolean type.
var Boolean = BooleanType{}

func (t BooleanType) Name() string { return "BOOLEAN" }

func (t BooleanType) IsValid(v Value) bool {
	if v.Null {
		return true
	}
	_, ok := v.Data.(bool)
	return ok
}

func (t BooleanType) Compare(a, b Value) int {
	av, _ := a.Data.(bool)
	bv, _ := b.Data.(bool)
	if av == bv {
		return 0
	}
	if !av {
		return -1
	}
	return 1
}
