package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"gjk-lang/impl/internal/config"
	"gjk-lang/impl/internal/diag"
	"gjk-lang/impl/internal/evaluator"
	"gjk-lang/impl/internal/lexer"
	"gjk-lang/impl/internal/parser"
)

const version = "0.1.0"

// Exit statuses
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type tokenOut struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// app carries what every sub-command needs once flags and settings are read.
type app struct {
	cfg      *config.Config
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	reporter *diag.Reporter
	log      *log.Logger
}

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [-c config] [-d] [-y] [-v] [-V] [-h] [tokens|ast|repl|run] <file>\n", filepath.Base(prog))
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(args, "c:dyvVh")
	if err != nil {
		fmt.Fprintln(stderr, "gjk:", err)
		usage(stderr, args[0])
		return exitUsage
	}
	var configPath string
	var dump, asYAML, verbose bool
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			configPath = opt.Value
		case 'd':
			dump = true
		case 'y':
			asYAML = true
		case 'v':
			verbose = true
		case 'V':
			fmt.Fprintln(stdout, "gjk", version)
			return exitOK
		case 'h':
			usage(stdout, args[0])
			return exitOK
		}
	}
	rest := args[optind:]

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := config.Resolve(configPath, cwd)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if dump {
		cfg.DumpAST = true
	}
	if asYAML {
		cfg.ASTFormat = "yaml"
	}

	logger := log.New(io.Discard, "gjk: ", 0)
	if verbose {
		logger.SetOutput(stderr)
	}
	if cfg.Path != "" {
		logger.Printf("settings from %s", cfg.Path)
	}
	a := &app{
		cfg:      cfg,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		reporter: diag.NewReporter(stderr, colorEnabled(cfg.Color, stderr)),
		log:      logger,
	}

	cmd := "run"
	if len(rest) > 0 {
		switch rest[0] {
		case "tokens", "ast", "repl", "run":
			cmd, rest = rest[0], rest[1:]
		}
	}
	if cmd == "repl" {
		if len(rest) != 0 {
			usage(stderr, args[0])
			return exitUsage
		}
		return a.repl()
	}
	if len(rest) != 1 {
		usage(stderr, args[0])
		return exitUsage
	}
	data, err := os.ReadFile(rest[0])
	if err != nil {
		a.reporter.Report(err)
		return exitFailure
	}
	src := string(data)

	switch cmd {
	case "tokens":
		err = a.printTokens(src)
	case "ast":
		err = a.printAST(src)
	default:
		err = a.runProgram(src)
	}
	if err != nil {
		a.reporter.Report(err)
		return exitFailure
	}
	return exitOK
}

// colorEnabled resolves the color setting; auto colors only a terminal stderr.
func colorEnabled(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	return w == os.Stderr && !color.NoColor
}

func (a *app) printTokens(src string) error {
	toks, err := lexer.Lex(src)
	enc := json.NewEncoder(a.stdout)
	enc.SetEscapeHTML(false)
	for _, t := range toks {
		if err := enc.Encode(tokenOut{Type: t.Kind.String(), Value: t.Lit}); err != nil {
			return err
		}
	}
	return err
}

func (a *app) printAST(src string) error {
	prog, err := parser.ParseSource(src)
	if err != nil {
		return err
	}
	return dumpAST(a.stdout, prog, a.cfg.ASTFormat)
}

func dumpAST(w io.Writer, prog parser.Program, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(prog); err != nil {
			return err
		}
		return enc.Close()
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prog); err != nil {
		return err
	}
	return bw.Flush()
}

func (a *app) runProgram(src string) error {
	start := time.Now()
	s := lexer.New(src)
	prog, err := parser.New(s).Parse()
	if err != nil {
		return err
	}
	a.log.Printf("scanned %d tokens and parsed %d statements in %s", s.Count(), len(prog.Statements), time.Since(start))
	if a.cfg.DumpAST {
		if err := dumpAST(a.stdout, prog, a.cfg.ASTFormat); err != nil {
			return err
		}
	}

	start = time.Now()
	ev := evaluator.New(a.stdout, evaluator.NewStdinReader(a.stdin, a.cfg.Prompt, a.stdout))
	err = ev.Run(prog)
	a.log.Printf("evaluated in %s, %d bindings", time.Since(start), len(ev.Bindings().Names()))
	return err
}
