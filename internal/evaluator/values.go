package evaluator

import "strconv"

// Value system
type Value interface{ repr() string }

type (
	Int  struct{ V int64 }
	Bool struct{ V bool }
	Str  struct{ V string }
)

func (v Int) repr() string { return strconv.FormatInt(v.V, 10) }
func (v Str) repr() string { return v.V }
func (v Bool) repr() string {
	if v.V {
		return "True"
	}
	return "False"
}

// Format produces the canonical printed representation for a value. Booleans
// print in the form read accepts back.
func Format(v Value) string { return v.repr() }

func typeName(v Value) string {
	switch v.(type) {
	case Int:
		return "integer"
	case Bool:
		return "boolean"
	case Str:
		return "string"
	case nil:
		return "nothing"
	default:
		return "unknown"
	}
}

// equal compares two values; values of different kinds are never equal.
func equal(a, b Value) bool {
	switch x := a.(type) {
	case Int:
		y, ok := b.(Int)
		return ok && x.V == y.V
	case Bool:
		y, ok := b.(Bool)
		return ok && x.V == y.V
	case Str:
		y, ok := b.(Str)
		return ok && x.V == y.V
	}
	return false
}
