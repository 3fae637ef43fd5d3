package evaluator

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gjk-lang/impl/internal/diag"
	"gjk-lang/impl/internal/parser"
)

// Evaluator walks a parsed tree once, in source order, against its binding
// table. The table outlives a single Run so an interactive session can keep
// its variables between inputs.
type Evaluator struct {
	out io.Writer
	in  LineReader
	env *Bindings
}

func New(out io.Writer, in LineReader) *Evaluator {
	return &Evaluator{out: out, in: in, env: NewBindings()}
}

func (ev *Evaluator) Bindings() *Bindings { return ev.env }

// Run executes prog for its side effects. The first runtime error stops the
// run; output already printed stays printed.
func (ev *Evaluator) Run(prog parser.Program) error {
	_, err := ev.evalBlock(prog)
	return err
}

// evalBlock yields the value of the last statement, or nil for an empty block.
func (ev *Evaluator) evalBlock(b parser.Program) (Value, error) {
	var last Value
	for _, st := range b.Statements {
		v, err := ev.eval(st)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// eval returns nil for statements that produce no value.
func (ev *Evaluator) eval(n parser.Node) (Value, error) {
	switch x := n.(type) {
	case parser.Constant:
		switch c := x.Value.(type) {
		case int64:
			return Int{V: c}, nil
		case bool:
			return Bool{V: c}, nil
		case string:
			return Str{V: c}, nil
		}
		return nil, fmt.Errorf("unsupported constant %T", x.Value)
	case parser.Identifier:
		v, ok := ev.env.Get(x.Name)
		if !ok {
			return nil, diag.Errorf(diag.Runtime, x.Pos, diag.ErrUnbound, "undefined identifier '%s'", x.Name)
		}
		return v, nil
	case parser.Program:
		return ev.evalBlock(x)
	case parser.Conditional:
		ok, err := ev.condition(x.Condition)
		if err != nil {
			return nil, err
		}
		if ok {
			_, err = ev.evalBlock(x.Then)
		} else if x.Else != nil {
			_, err = ev.evalBlock(*x.Else)
		}
		return nil, err
	case parser.Ternary:
		ok, err := ev.condition(x.Condition)
		if err != nil {
			return nil, err
		}
		if ok {
			return ev.evalBlock(x.True)
		}
		return ev.evalBlock(x.False)
	case parser.While:
		for {
			ok, err := ev.condition(x.Condition)
			if err != nil || !ok {
				return nil, err
			}
			if _, err := ev.evalBlock(x.Body); err != nil {
				return nil, err
			}
		}
	case parser.Read:
		return nil, ev.read(x)
	case parser.Print:
		v, err := ev.eval(x.Value)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, diag.Errorf(diag.Runtime, parser.PosOf(x.Value), diag.ErrNoValue,
				"cannot print a statement that has no value")
		}
		fmt.Fprintln(ev.out, Format(v))
		return nil, nil
	case parser.UnaryOp:
		v, err := ev.operand(x.Operand)
		if err != nil {
			return nil, err
		}
		return not(v, x.Pos)
	case parser.BinaryOp:
		if x.Operator == parser.OpAssign {
			v, err := ev.operand(x.Right)
			if err != nil {
				return nil, err
			}
			ev.env.Set(x.Left.(parser.Identifier).Name, v)
			return v, nil
		}
		l, err := ev.operand(x.Left)
		if err != nil {
			return nil, err
		}
		r, err := ev.operand(x.Right)
		if err != nil {
			return nil, err
		}
		return binary(x.Operator, l, r, x.Pos)
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

// operand evaluates n where a value is required.
func (ev *Evaluator) operand(n parser.Node) (Value, error) {
	v, err := ev.eval(n)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, diag.Errorf(diag.Runtime, parser.PosOf(n), diag.ErrNoValue,
			"%s used as a value", describe(n))
	}
	return v, nil
}

func (ev *Evaluator) condition(n parser.Node) (bool, error) {
	v, err := ev.operand(n)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, diag.Errorf(diag.Runtime, parser.PosOf(n), diag.ErrCondition,
			"condition must be a boolean, found %s", typeName(v))
	}
	return b.V, nil
}

func (ev *Evaluator) read(x parser.Read) error {
	line, err := ev.in.ReadLine()
	if errors.Is(err, io.EOF) {
		return diag.Errorf(diag.Runtime, x.Pos, diag.ErrInputClosed,
			"input closed while reading '%s'", x.Target.Name)
	}
	if err != nil {
		return diag.Errorf(diag.Runtime, x.Pos, diag.ErrInputClosed,
			"reading '%s': %v", x.Target.Name, err)
	}
	ev.env.Set(x.Target.Name, Coerce(line))
	return nil
}

// Coerce classifies an input line: an integer if it parses as one, a boolean
// for exactly "True" or "False", the raw text otherwise.
func Coerce(line string) Value {
	if n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64); err == nil {
		return Int{V: n}
	}
	switch line {
	case "True":
		return Bool{V: true}
	case "False":
		return Bool{V: false}
	}
	return Str{V: line}
}

func describe(n parser.Node) string {
	switch n.(type) {
	case parser.Conditional:
		return "conditional"
	case parser.While:
		return "loop"
	case parser.Read:
		return "read statement"
	case parser.Print:
		return "print statement"
	}
	return "empty block"
}
