package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"gjk-lang/impl/internal/diag"
	"gjk-lang/impl/internal/evaluator"
	"gjk-lang/impl/internal/parser"
)

const replPrompt = "gjk> "

// prompter is the part of *liner.State the loop needs.
type prompter interface {
	Prompt(string) (string, error)
	AppendHistory(string)
}

// linerReader serves read statements from the line editor.
type linerReader struct {
	p      prompter
	prompt string
}

func (r linerReader) ReadLine() (string, error) {
	line, err := r.p.Prompt(r.prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return line, err
}

func (a *app) repl() int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	hist := a.cfg.HistoryPath()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				a.log.Printf("history %s: %v", hist, err)
			}
			f.Close()
		}
	}

	readPrompt := a.cfg.Prompt
	if readPrompt == "" {
		readPrompt = "? "
	}
	replLoop(line, readPrompt, a.stdout, a.reporter)

	if hist != "" {
		f, err := os.Create(hist)
		if err != nil {
			a.log.Printf("history %s: %v", hist, err)
			return exitOK
		}
		if _, err := line.WriteHistory(f); err != nil {
			a.log.Printf("history %s: %v", hist, err)
		}
		f.Close()
	}
	return exitOK
}

// replLoop evaluates one input at a time against a single evaluator so
// bindings survive between inputs. Errors are reported and the loop goes on.
func replLoop(p prompter, readPrompt string, out io.Writer, reporter *diag.Reporter) {
	ev := evaluator.New(out, linerReader{p: p, prompt: readPrompt})
	for {
		input, err := p.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ":quit" {
			return
		}
		p.AppendHistory(input)
		// A trailing newline keeps a final identifier from running into EOF.
		prog, err := parser.ParseSource(input + "\n")
		if err != nil {
			reporter.Report(err)
			continue
		}
		if err := ev.Run(prog); err != nil {
			reporter.Report(err)
		}
	}
}
