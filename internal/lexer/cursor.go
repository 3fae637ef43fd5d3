package lexer

import (
	"gjk-lang/impl/internal/diag"
)

// compound lists the characters that may merge with the following one into
// a single two-character operator, and the character they merge with.
var compound = map[rune]rune{
	'<': '=',
	'>': '=',
	'=': '=',
	'!': '=',
	'+': '+',
	'-': '-',
}

// Cursor walks the source buffer one character at a time and tracks the
// position used in diagnostics.
type Cursor struct {
	buf  []rune
	off  int
	line int
	col  int
}

func NewCursor(src string) *Cursor {
	return &Cursor{buf: []rune(src), line: 1}
}

// Peek returns the current character without consuming it, or 0 at the end.
func (c *Cursor) Peek() rune {
	if c.off >= len(c.buf) {
		return 0
	}
	return c.buf[c.off]
}

// Next consumes and returns the current character. A compound operator
// character followed by its partner is consumed together with it.
func (c *Cursor) Next() string {
	ch := c.Peek()
	c.off++
	if partner, ok := compound[ch]; ok && c.off < len(c.buf) && c.buf[c.off] == partner {
		c.off++
		c.col += 2
		return string([]rune{ch, partner})
	}
	if ch == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col++
	}
	return string(ch)
}

func (c *Cursor) IsEOF() bool { return c.off >= len(c.buf) }

func (c *Cursor) Pos() diag.Pos { return diag.Pos{Line: c.line, Col: c.col} }

// Errorf reports a lexical error at the current position.
func (c *Cursor) Errorf(sentinel error, format string, args ...any) *diag.Error {
	return diag.Errorf(diag.Lexical, c.Pos(), sentinel, format, args...)
}
