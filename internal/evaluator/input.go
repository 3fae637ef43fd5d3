package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineReader supplies the lines consumed by read. ReadLine returns the line
// without its terminator, or io.EOF once input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

type stdinReader struct {
	r      *bufio.Reader
	prompt string
	out    io.Writer
}

// NewStdinReader reads lines from r, writing prompt to out before each one
// when prompt is non-empty.
func NewStdinReader(r io.Reader, prompt string, out io.Writer) LineReader {
	return &stdinReader{r: bufio.NewReader(r), prompt: prompt, out: out}
}

func (s *stdinReader) ReadLine() (string, error) {
	if s.prompt != "" && s.out != nil {
		fmt.Fprint(s.out, s.prompt)
	}
	line, err := s.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
