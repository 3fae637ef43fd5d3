package lexer

import (
	"strings"
	"unicode"

	"gjk-lang/impl/internal/diag"
)

var keywords = map[string]Kind{
	"if":    If,
	"then":  Then,
	"else":  Else,
	"print": Print,
	"read":  Read,
	"while": While,
	"true":  Bool,
	"false": Bool,
}

var operators = map[string]Kind{
	"+":  Plus,
	"-":  Minus,
	"*":  Star,
	"/":  Slash,
	"=":  Assign,
	"?":  And,
	"|":  Or,
	"!":  Not,
	"<":  Less,
	"<=": LessEq,
	">":  Greater,
	">=": GreaterEq,
	"==": Eq,
	"!=": NotEq,
	"++": Incr,
	"--": Decr,
}

var delimiters = map[rune]Kind{
	'[': LBracket,
	']': RBracket,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	':': Colon,
	';': Semicolon,
}

// Scanner turns source text into tokens on demand with one token of
// lookahead. After the first lexical error it only yields EOF; the error is
// available from Err.
type Scanner struct {
	cur   *Cursor
	tok   Token
	ready bool
	err   error
	count int
}

func New(src string) *Scanner { return &Scanner{cur: NewCursor(src)} }

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() Token {
	if !s.ready {
		s.tok = s.scan()
		s.ready = true
	}
	return s.tok
}

// Next returns the next token and consumes it.
func (s *Scanner) Next() Token {
	t := s.Peek()
	if t.Kind != EOF {
		s.ready = false
		s.count++
	}
	return t
}

// Count returns the number of tokens consumed so far.
func (s *Scanner) Count() int { return s.count }

func (s *Scanner) IsEnd() bool { return s.Peek().Kind == EOF }

// Err returns the lexical error that stopped the scanner, if any.
func (s *Scanner) Err() error { return s.err }

// Lex drains a fresh scanner over src.
func Lex(src string) ([]Token, error) {
	s := New(src)
	var out []Token
	for !s.IsEnd() {
		out = append(out, s.Next())
	}
	return out, s.Err()
}

func (s *Scanner) scan() Token {
	for {
		if s.err != nil || s.cur.IsEOF() {
			return Token{Kind: EOF, Pos: s.cur.Pos()}
		}
		ch := s.cur.Peek()
		pos := s.cur.Pos()
		switch {
		case ch == '#':
			s.skipComment()
			continue
		case isDigit(ch):
			return s.readNumber(pos)
		case ch == '"':
			return s.readString(pos)
		case unicode.IsLetter(ch):
			return s.readWord(pos)
		case isOperator(ch):
			lit := s.cur.Next()
			return Token{Kind: operators[lit], Lit: lit, Pos: pos}
		case isDelimiter(ch):
			s.cur.Next()
			return Token{Kind: delimiters[ch], Lit: string(ch), Pos: pos}
		case unicode.IsSpace(ch):
			s.cur.Next()
			continue
		}
		s.err = s.cur.Errorf(diag.ErrUnexpectedChar, "Unexpected character '%c' was found", ch)
	}
}

func (s *Scanner) skipComment() {
	for !s.cur.IsEOF() && s.cur.Peek() != '\n' {
		s.cur.Next()
	}
}

// readNumber accumulates a base-10 integer; overflow wraps.
func (s *Scanner) readNumber(pos diag.Pos) Token {
	var b strings.Builder
	var v int64
	for !s.cur.IsEOF() && isDigit(s.cur.Peek()) {
		d := s.cur.Next()
		b.WriteString(d)
		v = v*10 + int64(d[0]-'0')
	}
	return Token{Kind: Num, Lit: b.String(), Num: v, Pos: pos}
}

func (s *Scanner) readString(pos diag.Pos) Token {
	s.cur.Next() // opening quote
	var b strings.Builder
	for !s.cur.IsEOF() && s.cur.Peek() != '"' {
		b.WriteString(s.cur.Next())
	}
	if s.cur.IsEOF() {
		s.err = s.cur.Errorf(diag.ErrUnterminated, "EOF found while reading string constant")
		return Token{Kind: EOF, Pos: s.cur.Pos()}
	}
	s.cur.Next() // closing quote
	return Token{Kind: Str, Lit: b.String(), Pos: pos}
}

func (s *Scanner) readWord(pos diag.Pos) Token {
	var b strings.Builder
	for !s.cur.IsEOF() && unicode.IsLetter(s.cur.Peek()) {
		b.WriteString(s.cur.Next())
	}
	if s.cur.IsEOF() {
		s.err = s.cur.Errorf(diag.ErrUnterminated, "EOF found while reading identifier")
		return Token{Kind: EOF, Pos: s.cur.Pos()}
	}
	word := b.String()
	kind, ok := keywords[word]
	if !ok {
		return Token{Kind: Ident, Lit: word, Pos: pos}
	}
	return Token{Kind: kind, Lit: word, Bool: word == "true", Pos: pos}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isOperator(ch rune) bool {
	_, ok := operators[string(ch)]
	return ok
}

func isDelimiter(ch rune) bool {
	_, ok := delimiters[ch]
	return ok
}
