package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Pos is a location in the source text. Line is 1-based, Col is 0-based and
// resets on every newline.
type Pos struct {
	Line int `json:"line" yaml:"line"`
	Col  int `json:"col" yaml:"col"`
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Kind classifies a fatal error by the stage that raised it.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Semantic
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Runtime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Sentinels carried in Error.Err so callers can match with errors.Is.
var (
	ErrUnexpectedChar  = errors.New("unexpected character")
	ErrUnterminated    = errors.New("unterminated construct")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrInvalidTarget   = errors.New("invalid assignment target")
	ErrInvalidBranch   = errors.New("branch is not a block")
	ErrUnbound         = errors.New("unbound identifier")
	ErrOperandType     = errors.New("incompatible operand types")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrCondition       = errors.New("condition is not a boolean")
	ErrNoValue         = errors.New("expression has no value")
	ErrInputClosed     = errors.New("input closed")
	ErrTooLarge        = errors.New("result too large")
)

// Error is the single fatal diagnostic produced by any stage of a run.
type Error struct {
	Kind Kind
	Pos  Pos
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error occurred [l:%d, c:%d]: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a positioned error wrapping sentinel.
func Errorf(kind Kind, pos Pos, sentinel error, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

// Reporter writes diagnostics to the error channel, one line each.
type Reporter struct {
	out io.Writer
	red *color.Color
}

// NewReporter returns a Reporter writing to w. When colored is false the
// output carries no escape sequences regardless of the terminal.
func NewReporter(w io.Writer, colored bool) *Reporter {
	red := color.New(color.FgRed)
	if colored {
		red.EnableColor()
	} else {
		red.DisableColor()
	}
	return &Reporter{out: w, red: red}
}

// Report prints err. Errors not produced by this package are printed verbatim.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	r.red.Fprintln(r.out, err.Error())
}
