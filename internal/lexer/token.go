package lexer

import (
	"fmt"

	"gjk-lang/impl/internal/diag"
)

// Kind tags every lexical unit. The set is closed: consumers switch over it.
type Kind int

const (
	EOF Kind = iota

	Ident
	Num
	Str
	Bool

	// keywords
	If
	Then
	Else
	Print
	Read
	While

	// binary operators
	Plus
	Minus
	Star
	Slash
	Assign
	And
	Or
	Less
	LessEq
	Greater
	GreaterEq
	Eq
	NotEq

	// unary and postfix operators
	Not
	Incr
	Decr

	// delimiters
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Semicolon
)

var kindNames = [...]string{
	EOF:       "EOF",
	Ident:     "ID",
	Num:       "NUM",
	Str:       "STR",
	Bool:      "BOOL",
	If:        "IF",
	Then:      "THEN",
	Else:      "ELSE",
	Print:     "PRINT",
	Read:      "READ",
	While:     "WHILE",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Assign:    "=",
	And:       "?",
	Or:        "|",
	Less:      "<",
	LessEq:    "<=",
	Greater:   ">",
	GreaterEq: ">=",
	Eq:        "==",
	NotEq:     "!=",
	Not:       "!",
	Incr:      "++",
	Decr:      "--",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
	Colon:     ":",
	Semicolon: ";",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsBinary reports whether k can join two operands.
func (k Kind) IsBinary() bool { return k >= Plus && k <= NotEq }

// IsPostfix reports whether k is an increment or decrement operator.
func (k Kind) IsPostfix() bool { return k == Incr || k == Decr }

// Token is an immutable lexical unit. Lit holds the source text (the name for
// identifiers, the unquoted text for strings); Num and Bool hold the decoded
// payload of numeric and boolean constants.
type Token struct {
	Kind Kind
	Lit  string
	Num  int64
	Bool bool
	Pos  diag.Pos
}

// Describe names the token for error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Ident:
		return fmt.Sprintf("identifier '%s'", t.Lit)
	case Num:
		return fmt.Sprintf("number %d", t.Num)
	case Str:
		return fmt.Sprintf("string \"%s\"", t.Lit)
	case Bool:
		return fmt.Sprintf("boolean %t", t.Bool)
	default:
		return fmt.Sprintf("'%s'", t.Lit)
	}
}

// String renders the debug form used by token dumps.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<EOF>"
	case Ident:
		return fmt.Sprintf("<IDENT name='%s'>", t.Lit)
	case Num:
		return fmt.Sprintf("<CONST_NUM val='%d'>", t.Num)
	case Str:
		return fmt.Sprintf("<CONST_STR val='%s'>", t.Lit)
	case Bool:
		if t.Bool {
			return "<CONST_BOOL val='True'>"
		}
		return "<CONST_BOOL val='False'>"
	}
	return "<" + debugNames[t.Kind] + ">"
}

var debugNames = map[Kind]string{
	If:        "KW_IF",
	Then:      "KW_THEN",
	Else:      "KW_ELSE",
	Print:     "KW_PRINT",
	Read:      "KW_READ",
	While:     "KW_WHILE",
	Plus:      "OP_SUM",
	Minus:     "OP_SUB",
	Star:      "OP_MUL",
	Slash:     "OP_DIV",
	Assign:    "OP_ASSIGN",
	And:       "OP_AND",
	Or:        "OP_OR",
	Less:      "OP_LESSER_THAN",
	LessEq:    "OP_LESSER_OR_EQUAL_THAN",
	Greater:   "OP_GREATER_THAN",
	GreaterEq: "OP_GREATER_OR_EQUAL_THAN",
	Eq:        "OP_EQUAL",
	NotEq:     "OP_UNEQUAL",
	Not:       "OP_NOT",
	Incr:      "OP_INCR",
	Decr:      "OP_DECR",
	LParen:    "LPAR",
	RParen:    "RPAR",
	LBrace:    "SBLOCK",
	RBrace:    "EBLOCK",
	LBracket:  "LTERN",
	RBracket:  "RTERN",
	Colon:     "DIVTERN",
	Semicolon: "SEMICOLON",
}
