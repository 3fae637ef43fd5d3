package evaluator

import (
	"strings"

	"gjk-lang/impl/internal/diag"
	"gjk-lang/impl/internal/parser"
)

var symbols = map[parser.Operator]string{
	parser.OpSum:          "+",
	parser.OpDifference:   "-",
	parser.OpProduct:      "*",
	parser.OpQuotient:     "/",
	parser.OpAnd:          "?",
	parser.OpOr:           "|",
	parser.OpLess:         "<",
	parser.OpLessEqual:    "<=",
	parser.OpGreater:      ">",
	parser.OpGreaterEqual: ">=",
	parser.OpEqual:        "==",
	parser.OpNotEqual:     "!=",
	parser.OpNot:          "!",
}

// maxStringLen caps the length of a string built by repetition.
const maxStringLen = 1 << 26

func unsupported(op parser.Operator, a, b Value, pos diag.Pos) error {
	return diag.Errorf(diag.Runtime, pos, diag.ErrOperandType,
		"unsupported operand types for %s: %s and %s", symbols[op], typeName(a), typeName(b))
}

// binary applies every operator except assignment to two evaluated operands.
func binary(op parser.Operator, a, b Value, pos diag.Pos) (Value, error) {
	switch op {
	case parser.OpSum:
		return add(a, b, pos)
	case parser.OpDifference, parser.OpQuotient:
		return arith(op, a, b, pos)
	case parser.OpProduct:
		return mul(a, b, pos)
	case parser.OpAnd, parser.OpOr:
		x, ok1 := a.(Bool)
		y, ok2 := b.(Bool)
		if !ok1 || !ok2 {
			return nil, unsupported(op, a, b, pos)
		}
		if op == parser.OpAnd {
			return Bool{V: x.V && y.V}, nil
		}
		return Bool{V: x.V || y.V}, nil
	case parser.OpLess, parser.OpLessEqual, parser.OpGreater, parser.OpGreaterEqual:
		c, ok := compare(a, b)
		if !ok {
			return nil, unsupported(op, a, b, pos)
		}
		switch op {
		case parser.OpLess:
			return Bool{V: c < 0}, nil
		case parser.OpLessEqual:
			return Bool{V: c <= 0}, nil
		case parser.OpGreater:
			return Bool{V: c > 0}, nil
		default:
			return Bool{V: c >= 0}, nil
		}
	case parser.OpEqual:
		return Bool{V: equal(a, b)}, nil
	case parser.OpNotEqual:
		return Bool{V: !equal(a, b)}, nil
	}
	return nil, unsupported(op, a, b, pos)
}

func add(a, b Value, pos diag.Pos) (Value, error) {
	switch x := a.(type) {
	case Int:
		if y, ok := b.(Int); ok {
			return Int{V: x.V + y.V}, nil
		}
	case Str:
		if y, ok := b.(Str); ok {
			return Str{V: x.V + y.V}, nil
		}
	}
	return nil, unsupported(parser.OpSum, a, b, pos)
}

func arith(op parser.Operator, a, b Value, pos diag.Pos) (Value, error) {
	x, ok1 := a.(Int)
	y, ok2 := b.(Int)
	if !ok1 || !ok2 {
		return nil, unsupported(op, a, b, pos)
	}
	if op == parser.OpDifference {
		return Int{V: x.V - y.V}, nil
	}
	if y.V == 0 {
		return nil, diag.Errorf(diag.Runtime, pos, diag.ErrDivisionByZero, "division by zero")
	}
	// truncates toward zero
	return Int{V: x.V / y.V}, nil
}

func mul(a, b Value, pos diag.Pos) (Value, error) {
	// String repetition
	if s, ok := a.(Str); ok {
		n, ok := b.(Int)
		if !ok {
			return nil, unsupported(parser.OpProduct, a, b, pos)
		}
		if n.V < 0 {
			return nil, diag.Errorf(diag.Runtime, pos, diag.ErrOperandType,
				"negative repetition count %d", n.V)
		}
		if len(s.V) > 0 && n.V > int64(maxStringLen/len(s.V)) {
			return nil, diag.Errorf(diag.Runtime, pos, diag.ErrTooLarge,
				"repeated string would exceed %d bytes", maxStringLen)
		}
		return Str{V: strings.Repeat(s.V, int(n.V))}, nil
	}
	if s, ok := b.(Str); ok {
		if _, isInt := a.(Int); isInt {
			return mul(s, a, pos)
		}
		return nil, unsupported(parser.OpProduct, a, b, pos)
	}
	x, ok1 := a.(Int)
	y, ok2 := b.(Int)
	if !ok1 || !ok2 {
		return nil, unsupported(parser.OpProduct, a, b, pos)
	}
	return Int{V: x.V * y.V}, nil
}

// compare orders two integers or two strings.
func compare(a, b Value) (int, bool) {
	switch x := a.(type) {
	case Int:
		if y, ok := b.(Int); ok {
			switch {
			case x.V < y.V:
				return -1, true
			case x.V > y.V:
				return 1, true
			}
			return 0, true
		}
	case Str:
		if y, ok := b.(Str); ok {
			return strings.Compare(x.V, y.V), true
		}
	}
	return 0, false
}

func not(v Value, pos diag.Pos) (Value, error) {
	b, ok := v.(Bool)
	if !ok {
		return nil, diag.Errorf(diag.Runtime, pos, diag.ErrOperandType,
			"unsupported operand type for !: %s", typeName(v))
	}
	return Bool{V: !b.V}, nil
}
