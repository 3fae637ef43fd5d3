package parser

import (
	"gjk-lang/impl/internal/diag"
)

// Ordered JSON/YAML fields are ensured by struct field order. Positions are
// kept out of dumps.

// Node is a closed union of syntactic constructs; consumers type-switch over
// the concrete types below.
type Node interface{ isNode() }

// Operator names the semantic function of a BinaryOp or UnaryOp.
type Operator string

const (
	OpSum          Operator = "sum"
	OpDifference   Operator = "difference"
	OpProduct      Operator = "product"
	OpQuotient     Operator = "quotient"
	OpAnd          Operator = "and"
	OpOr           Operator = "or"
	OpAssign       Operator = "assign"
	OpLess         Operator = "less"
	OpLessEqual    Operator = "less_equal"
	OpGreater      Operator = "greater"
	OpGreaterEqual Operator = "greater_equal"
	OpEqual        Operator = "equal"
	OpNotEqual     Operator = "not_equal"
	OpNot          Operator = "not"
)

type Identifier struct {
	Type string   `json:"type" yaml:"type"`
	Name string   `json:"name" yaml:"name"`
	Pos  diag.Pos `json:"-" yaml:"-"`
}

func (Identifier) isNode() {}

// Constant holds an int64, a bool or a string.
type Constant struct {
	Type  string   `json:"type" yaml:"type"`
	Value any      `json:"value" yaml:"value"`
	Pos   diag.Pos `json:"-" yaml:"-"`
}

func (Constant) isNode() {}

// Program is the whole script as well as any braced block.
type Program struct {
	Type       string   `json:"type" yaml:"type"`
	Statements []Node   `json:"statements" yaml:"statements"`
	Pos        diag.Pos `json:"-" yaml:"-"`
}

func (Program) isNode() {}

type Conditional struct {
	Type      string   `json:"type" yaml:"type"`
	Condition Node     `json:"condition" yaml:"condition"`
	Then      Program  `json:"then" yaml:"then"`
	Else      *Program `json:"else,omitempty" yaml:"else,omitempty"`
	Pos       diag.Pos `json:"-" yaml:"-"`
}

func (Conditional) isNode() {}

// Ternary is the bracketed conditional expression
// `[ cond ] ? { ... } : { ... }`.
type Ternary struct {
	Type      string   `json:"type" yaml:"type"`
	Condition Node     `json:"condition" yaml:"condition"`
	True      Program  `json:"true" yaml:"true"`
	False     Program  `json:"false" yaml:"false"`
	Pos       diag.Pos `json:"-" yaml:"-"`
}

func (Ternary) isNode() {}

type While struct {
	Type      string   `json:"type" yaml:"type"`
	Condition Node     `json:"condition" yaml:"condition"`
	Body      Program  `json:"body" yaml:"body"`
	Pos       diag.Pos `json:"-" yaml:"-"`
}

func (While) isNode() {}

type Read struct {
	Type   string     `json:"type" yaml:"type"`
	Target Identifier `json:"target" yaml:"target"`
	Pos    diag.Pos   `json:"-" yaml:"-"`
}

func (Read) isNode() {}

type Print struct {
	Type  string   `json:"type" yaml:"type"`
	Value Node     `json:"value" yaml:"value"`
	Pos   diag.Pos `json:"-" yaml:"-"`
}

func (Print) isNode() {}

type BinaryOp struct {
	Type     string   `json:"type" yaml:"type"`
	Operator Operator `json:"operator" yaml:"operator"`
	Left     Node     `json:"left" yaml:"left"`
	Right    Node     `json:"right" yaml:"right"`
	Pos      diag.Pos `json:"-" yaml:"-"`
}

func (BinaryOp) isNode() {}

type UnaryOp struct {
	Type     string   `json:"type" yaml:"type"`
	Operator Operator `json:"operator" yaml:"operator"`
	Operand  Node     `json:"operand" yaml:"operand"`
	Pos      diag.Pos `json:"-" yaml:"-"`
}

func (UnaryOp) isNode() {}

func NewIdentifier(name string, pos diag.Pos) Identifier {
	return Identifier{Type: "Identifier", Name: name, Pos: pos}
}

func NewConstant(value any, pos diag.Pos) Constant {
	return Constant{Type: "Constant", Value: value, Pos: pos}
}

func NewProgram(pos diag.Pos, stmts ...Node) Program {
	if stmts == nil {
		stmts = []Node{}
	}
	return Program{Type: "Program", Statements: stmts, Pos: pos}
}

func NewPrint(value Node, pos diag.Pos) Print {
	return Print{Type: "Print", Value: value, Pos: pos}
}

func NewUnaryOp(op Operator, operand Node, pos diag.Pos) UnaryOp {
	return UnaryOp{Type: "UnaryOp", Operator: op, Operand: operand, Pos: pos}
}

// NewBinaryOp rejects an assignment whose left side is not an identifier.
func NewBinaryOp(op Operator, left, right Node, pos diag.Pos) (BinaryOp, error) {
	if op == OpAssign {
		if _, ok := left.(Identifier); !ok {
			return BinaryOp{}, diag.Errorf(diag.Semantic, PosOf(left), diag.ErrInvalidTarget,
				"assignment target must be an identifier, found %s", nodeName(left))
		}
	}
	return BinaryOp{Type: "BinaryOp", Operator: op, Left: left, Right: right, Pos: pos}, nil
}

func NewRead(target Node, pos diag.Pos) (Read, error) {
	id, ok := target.(Identifier)
	if !ok {
		return Read{}, diag.Errorf(diag.Semantic, PosOf(target), diag.ErrInvalidTarget,
			"read target must be an identifier, found %s", nodeName(target))
	}
	return Read{Type: "Read", Target: id, Pos: pos}, nil
}

func NewConditional(cond, then Node, pos diag.Pos) (Conditional, error) {
	block, err := asProgram(then)
	if err != nil {
		return Conditional{}, err
	}
	return Conditional{Type: "Conditional", Condition: cond, Then: block, Pos: pos}, nil
}

// WithElse returns a copy of c with the else branch attached.
func (c Conditional) WithElse(branch Node) (Conditional, error) {
	block, err := asProgram(branch)
	if err != nil {
		return Conditional{}, err
	}
	c.Else = &block
	return c, nil
}

func NewTernary(cond, whenTrue, whenFalse Node, pos diag.Pos) (Ternary, error) {
	t, err := asProgram(whenTrue)
	if err != nil {
		return Ternary{}, err
	}
	f, err := asProgram(whenFalse)
	if err != nil {
		return Ternary{}, err
	}
	return Ternary{Type: "Ternary", Condition: cond, True: t, False: f, Pos: pos}, nil
}

func NewWhile(cond, body Node, pos diag.Pos) (While, error) {
	block, err := asProgram(body)
	if err != nil {
		return While{}, err
	}
	return While{Type: "While", Condition: cond, Body: block, Pos: pos}, nil
}

func asProgram(n Node) (Program, error) {
	switch p := n.(type) {
	case Program:
		return p, nil
	case *Program:
		if p != nil {
			return *p, nil
		}
	}
	return Program{}, diag.Errorf(diag.Semantic, PosOf(n), diag.ErrInvalidBranch,
		"branch must be a block, found %s", nodeName(n))
}

// PosOf returns the source position a node was parsed at.
func PosOf(n Node) diag.Pos {
	switch x := n.(type) {
	case Identifier:
		return x.Pos
	case Constant:
		return x.Pos
	case Program:
		return x.Pos
	case *Program:
		if x != nil {
			return x.Pos
		}
	case Conditional:
		return x.Pos
	case Ternary:
		return x.Pos
	case While:
		return x.Pos
	case Read:
		return x.Pos
	case Print:
		return x.Pos
	case BinaryOp:
		return x.Pos
	case UnaryOp:
		return x.Pos
	}
	return diag.Pos{}
}

func nodeName(n Node) string {
	switch n.(type) {
	case Identifier:
		return "identifier"
	case Constant:
		return "constant"
	case Program, *Program:
		return "block"
	case Conditional:
		return "conditional"
	case Ternary:
		return "ternary expression"
	case While:
		return "loop"
	case Read:
		return "read statement"
	case Print:
		return "print statement"
	case BinaryOp:
		return "binary expression"
	case UnaryOp:
		return "unary expression"
	case nil:
		return "nothing"
	default:
		return "unknown node"
	}
}
