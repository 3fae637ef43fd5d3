package parser

import (
	"strings"

	"github.com/edwingeng/deque"

	"gjk-lang/impl/internal/diag"
	"gjk-lang/impl/internal/lexer"
)

// Parser pulls tokens from a Scanner and builds the tree top-down. The first
// error aborts the parse; there is no recovery.
type Parser struct {
	s *lexer.Scanner
}

func New(s *lexer.Scanner) *Parser { return &Parser{s: s} }

// ParseSource scans and parses src in one go.
func ParseSource(src string) (Program, error) {
	return New(lexer.New(src)).Parse()
}

// bailout carries a fatal error up to Parse.
type bailout struct{ err error }

// Parse builds the root Program: statements separated by ';', the last one
// may omit it.
func (p *Parser) Parse() (prog Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = Program{}, b.err
		}
	}()
	var stmts []Node
	for !p.atEnd() {
		stmts = append(stmts, p.parseExpression())
		if !p.atEnd() {
			p.skip(lexer.Semicolon)
		}
	}
	return NewProgram(diag.Pos{Line: 1}, stmts...), nil
}

func (p *Parser) peek() lexer.Token {
	t := p.s.Peek()
	if t.Kind == lexer.EOF {
		if err := p.s.Err(); err != nil {
			panic(bailout{err})
		}
	}
	return t
}

func (p *Parser) next() lexer.Token {
	t := p.peek()
	p.s.Next()
	return t
}

func (p *Parser) atEnd() bool { return p.peek().Kind == lexer.EOF }

// skip consumes the current token, which must be of the given kind.
func (p *Parser) skip(kind lexer.Kind) lexer.Token {
	t := p.peek()
	if t.Kind != kind {
		p.fail(diag.Errorf(diag.Syntax, t.Pos, diag.ErrUnexpectedToken,
			"expected '%s', found %s", strings.ToLower(kind.String()), t.Describe()))
	}
	return p.next()
}

func (p *Parser) fail(err error) { panic(bailout{err}) }

func must[T any](v T, err error) T {
	if err != nil {
		panic(bailout{err})
	}
	return v
}

// Precedence values (higher binds tighter)
func precedence(k lexer.Kind) int {
	switch k {
	case lexer.Assign:
		return 1
	case lexer.Or:
		return 2
	case lexer.And:
		return 3
	case lexer.Less, lexer.LessEq, lexer.Greater, lexer.GreaterEq, lexer.Eq, lexer.NotEq:
		return 5
	case lexer.Plus, lexer.Minus:
		return 10
	case lexer.Star, lexer.Slash:
		return 20
	default:
		return 0
	}
}

var binaryOps = map[lexer.Kind]Operator{
	lexer.Plus:      OpSum,
	lexer.Minus:     OpDifference,
	lexer.Star:      OpProduct,
	lexer.Slash:     OpQuotient,
	lexer.And:       OpAnd,
	lexer.Or:        OpOr,
	lexer.Assign:    OpAssign,
	lexer.Less:      OpLess,
	lexer.LessEq:    OpLessEqual,
	lexer.Greater:   OpGreater,
	lexer.GreaterEq: OpGreaterEqual,
	lexer.Eq:        OpEqual,
	lexer.NotEq:     OpNotEqual,
}

// reducesBefore reports whether the stacked operator top has to be folded
// before op is pushed. Assignment groups to the right, everything else to the
// left.
func reducesBefore(top, op lexer.Kind) bool {
	pt, po := precedence(top), precedence(op)
	if pt == po {
		return op != lexer.Assign
	}
	return pt > po
}

// parseExpression reads an operand followed by any number of
// `binop operand` pairs and folds them with an operand stack and an
// operator stack.
func (p *Parser) parseExpression() Node {
	operands := deque.NewDeque()
	operators := deque.NewDeque()
	operands.PushBack(p.parseOperand())
	for p.peek().Kind.IsBinary() {
		op := p.next()
		for operators.Len() > 0 && reducesBefore(operators.Back().(lexer.Token).Kind, op.Kind) {
			p.reduce(operands, operators)
		}
		operators.PushBack(op)
		operands.PushBack(p.parseOperand())
	}
	for operators.Len() > 0 {
		p.reduce(operands, operators)
	}
	return operands.PopBack().(Node)
}

func (p *Parser) reduce(operands, operators deque.Deque) {
	op := operators.PopBack().(lexer.Token)
	right := operands.PopBack().(Node)
	left := operands.PopBack().(Node)
	operands.PushBack(must(NewBinaryOp(binaryOps[op.Kind], left, right, op.Pos)))
}

func (p *Parser) parseOperand() Node {
	n := p.parsePrimary()
	if p.peek().Kind.IsPostfix() {
		n = p.parsePostfix(n)
	}
	return n
}

func (p *Parser) parsePrimary() Node {
	t := p.peek()
	switch t.Kind {
	case lexer.Bool:
		p.next()
		return NewConstant(t.Bool, t.Pos)
	case lexer.Num:
		p.next()
		return NewConstant(t.Num, t.Pos)
	case lexer.Str:
		p.next()
		return NewConstant(t.Lit, t.Pos)
	case lexer.Ident:
		p.next()
		return NewIdentifier(t.Lit, t.Pos)
	case lexer.If:
		return p.parseConditional()
	case lexer.While:
		return p.parseWhile()
	case lexer.LBrace:
		return p.parseBlock()
	case lexer.Not:
		p.next()
		return NewUnaryOp(OpNot, p.parseOperand(), t.Pos)
	case lexer.Read:
		p.next()
		return must(NewRead(p.parseOperand(), t.Pos))
	case lexer.Print:
		p.next()
		return NewPrint(p.parseExpression(), t.Pos)
	case lexer.LBracket:
		return p.parseTernary()
	case lexer.LParen:
		return p.parseCondition()
	}
	p.fail(diag.Errorf(diag.Syntax, t.Pos, diag.ErrUnexpectedToken,
		"expected expression, found %s", t.Describe()))
	return nil
}

// parsePostfix rewrites `x ++` as `x = x + 1` and `x --` as `x = x - 1`.
func (p *Parser) parsePostfix(target Node) Node {
	op := p.next()
	id, ok := target.(Identifier)
	if !ok {
		p.fail(diag.Errorf(diag.Semantic, PosOf(target), diag.ErrInvalidTarget,
			"'%s' target must be an identifier, found %s", op.Lit, nodeName(target)))
	}
	arith := OpSum
	if op.Kind == lexer.Decr {
		arith = OpDifference
	}
	step := must(NewBinaryOp(arith, id, NewConstant(int64(1), op.Pos), op.Pos))
	return must(NewBinaryOp(OpAssign, id, step, op.Pos))
}

func (p *Parser) parseCondition() Node {
	p.skip(lexer.LParen)
	expr := p.parseExpression()
	p.skip(lexer.RParen)
	return expr
}

func (p *Parser) parseConditional() Node {
	kw := p.skip(lexer.If)
	cond := p.parseCondition()
	p.skip(lexer.Then)
	node := must(NewConditional(cond, p.parseBlock(), kw.Pos))
	if p.peek().Kind == lexer.Else {
		p.next()
		node = must(node.WithElse(p.parseBlock()))
	}
	return node
}

func (p *Parser) parseWhile() Node {
	kw := p.skip(lexer.While)
	cond := p.parseCondition()
	return must(NewWhile(cond, p.parseBlock(), kw.Pos))
}

// parseTernary reads `[ cond ] ? { ... } : { ... }`.
func (p *Parser) parseTernary() Node {
	open := p.skip(lexer.LBracket)
	cond := p.parseExpression()
	p.skip(lexer.RBracket)
	p.skip(lexer.And)
	whenTrue := p.parseBlock()
	p.skip(lexer.Colon)
	whenFalse := p.parseBlock()
	return must(NewTernary(cond, whenTrue, whenFalse, open.Pos))
}

func (p *Parser) parseBlock() Program {
	open := p.skip(lexer.LBrace)
	var stmts []Node
	for p.peek().Kind != lexer.RBrace {
		if p.atEnd() {
			p.fail(diag.Errorf(diag.Syntax, p.peek().Pos, diag.ErrUnterminated,
				"expected '}', found end of input"))
		}
		stmts = append(stmts, p.parseExpression())
		p.skip(lexer.Semicolon)
	}
	p.next()
	return NewProgram(open.Pos, stmts...)
}
