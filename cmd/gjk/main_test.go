package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gjk-lang/impl/internal/diag"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// gjk runs the CLI in-process with a settings file that disables colour and
// history.
func gjk(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	cfg := writeTemp(t, "settings.yml", "color: never\nhistory: \"\"\n")
	argv := append([]string{"gjk", "-c", cfg}, args...)
	var out, errOut bytes.Buffer
	code := run(argv, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunProgram(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		stdin string
		want  string
	}{
		{"precedence", "print 2 + 3 * 4 ;\n", "", "14\n"},
		{"conditional", "x = 3 ;\nif ( x > 2 ) then { print \"big\" ; } else { print \"small\" ; }\n", "", "big\n"},
		{"read", "read x ; print x * 2 ;\n", "21\n", "> 42\n"},
		{"loop", "i = 0 ; while ( i < 2 ) { print i ; i ++ ; } ;\n", "", "0\n1\n"},
	}
	for _, tt := range tests {
		path := writeTemp(t, "prog.gjk", tt.src)
		for _, args := range [][]string{{"run", path}, {path}} {
			code, out, errOut := gjk(t, tt.stdin, args...)
			if code != exitOK || errOut != "" {
				t.Fatalf("%s %v: code %d, stderr %q", tt.name, args, code, errOut)
			}
			if out != tt.want {
				t.Fatalf("%s %v: stdout %q, want %q", tt.name, args, out, tt.want)
			}
		}
	}
}

func TestRunReportsFatalErrors(t *testing.T) {
	tests := []struct {
		src    string
		out    string
		errOut string
	}{
		{"print 1 ; print y ;", "1\n", "Error occurred [l:1, c:16]: undefined identifier 'y'\n"},
		{`print "abc`, "", "Error occurred [l:1, c:10]: EOF found while reading string constant\n"},
		{"{ print 1 ;", "", "Error occurred [l:1, c:11]: expected '}', found end of input\n"},
		{"x = 1 ;\n5 = x ;\n", "", "Error occurred [l:2, c:0]: assignment target must be an identifier, found constant\n"},
	}
	for _, tt := range tests {
		path := writeTemp(t, "prog.gjk", tt.src)
		code, out, errOut := gjk(t, "", path)
		if code != exitFailure {
			t.Fatalf("%q: code %d, want %d", tt.src, code, exitFailure)
		}
		if out != tt.out || errOut != tt.errOut {
			t.Fatalf("%q: stdout %q stderr %q, want %q %q", tt.src, out, errOut, tt.out, tt.errOut)
		}
	}
}

func TestTokens(t *testing.T) {
	path := writeTemp(t, "prog.gjk", "x = 5 ;\nprint \"<a>\" ;\n")
	code, out, _ := gjk(t, "", "tokens", path)
	if code != exitOK {
		t.Fatalf("code %d", code)
	}
	want := `{"type":"ID","value":"x"}
{"type":"=","value":"="}
{"type":"NUM","value":"5"}
{"type":";","value":";"}
{"type":"PRINT","value":"print"}
{"type":"STR","value":"<a>"}
{"type":";","value":";"}
`
	if out != want {
		t.Fatalf("tokens:\n%s\nwant:\n%s", out, want)
	}
}

func TestTokensStopAtLexicalError(t *testing.T) {
	path := writeTemp(t, "prog.gjk", "x $ ;")
	code, out, errOut := gjk(t, "", "tokens", path)
	if code != exitFailure {
		t.Fatalf("code %d, want %d", code, exitFailure)
	}
	if out != "{\"type\":\"ID\",\"value\":\"x\"}\n" {
		t.Fatalf("stdout %q", out)
	}
	if errOut != "Error occurred [l:1, c:2]: Unexpected character '$' was found\n" {
		t.Fatalf("stderr %q", errOut)
	}
}

func TestAST(t *testing.T) {
	path := writeTemp(t, "prog.gjk", "x = 5 ;")
	code, out, _ := gjk(t, "", "ast", path)
	if code != exitOK {
		t.Fatalf("code %d", code)
	}
	for _, want := range []string{`"type": "Program"`, `"operator": "assign"`, `"name": "x"`, `"value": 5`} {
		if !strings.Contains(out, want) {
			t.Fatalf("json dump missing %s:\n%s", want, out)
		}
	}

	code, out, _ = gjk(t, "", "-y", "ast", path)
	if code != exitOK {
		t.Fatalf("code %d", code)
	}
	for _, want := range []string{"type: Program", "operator: assign", "name: x", "value: 5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml dump missing %s:\n%s", want, out)
		}
	}
}

func TestDumpBeforeRun(t *testing.T) {
	path := writeTemp(t, "prog.gjk", "x = 5 ; print x ;")
	code, out, _ := gjk(t, "", "-d", path)
	if code != exitOK {
		t.Fatalf("code %d", code)
	}
	if !strings.HasPrefix(out, "{") || !strings.HasSuffix(out, "}\n5\n") {
		t.Fatalf("stdout %q", out)
	}
}

func TestVerboseLogsPhases(t *testing.T) {
	path := writeTemp(t, "prog.gjk", "print 1 ;")
	code, _, errOut := gjk(t, "", "-v", path)
	if code != exitOK {
		t.Fatalf("code %d", code)
	}
	for _, want := range []string{"gjk: scanned 3 tokens and parsed 1 statements", "gjk: evaluated in"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestUsageAndConfigErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"gjk", "-V"}, strings.NewReader(""), &out, &errOut); code != exitOK || out.String() != "gjk "+version+"\n" {
		t.Fatalf("-V: code %d, stdout %q", code, out.String())
	}
	if code, _, _ := gjk(t, ""); code != exitUsage {
		t.Fatalf("no file: code %d, want %d", code, exitUsage)
	}
	if code, _, _ := gjk(t, "", "-z", "x.gjk"); code != exitUsage {
		t.Fatalf("unknown flag: code %d, want %d", code, exitUsage)
	}
	if code, _, _ := gjk(t, "", "a.gjk", "b.gjk"); code != exitUsage {
		t.Fatalf("two files: code %d, want %d", code, exitUsage)
	}
	if code, _, _ := gjk(t, "", filepath.Join(t.TempDir(), "missing.gjk")); code != exitFailure {
		t.Fatalf("missing file: code %d, want %d", code, exitFailure)
	}

	bad := writeTemp(t, "bad.yml", "color: blue\n")
	out.Reset()
	errOut.Reset()
	code := run([]string{"gjk", "-c", bad, "x.gjk"}, strings.NewReader(""), &out, &errOut)
	if code != exitUsage || !strings.Contains(errOut.String(), "color must be") {
		t.Fatalf("bad config: code %d, stderr %q", code, errOut.String())
	}
}

type fakePrompter struct {
	lines   []string
	prompts []string
	history []string
}

func (f *fakePrompter) Prompt(p string) (string, error) {
	f.prompts = append(f.prompts, p)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakePrompter) AppendHistory(s string) { f.history = append(f.history, s) }

func TestReplLoop(t *testing.T) {
	p := &fakePrompter{lines: []string{
		"x = 2",
		"print y",
		"",
		"print x * 3",
		"read z ; print z + x",
		"40",
		"x = = 1",
		"print x",
		":quit",
		"print 99",
	}}
	var out, errOut bytes.Buffer
	replLoop(p, "? ", &out, diag.NewReporter(&errOut, false))

	if out.String() != "6\n42\n2\n" {
		t.Fatalf("stdout %q", out.String())
	}
	wantErr := "Error occurred [l:1, c:6]: undefined identifier 'y'\n" +
		"Error occurred [l:1, c:4]: expected expression, found '='\n"
	if errOut.String() != wantErr {
		t.Fatalf("stderr %q, want %q", errOut.String(), wantErr)
	}
	wantPrompts := []string{replPrompt, replPrompt, replPrompt, replPrompt, replPrompt, "? ", replPrompt, replPrompt, replPrompt}
	if !reflect.DeepEqual(p.prompts, wantPrompts) {
		t.Fatalf("prompts %q, want %q", p.prompts, wantPrompts)
	}
	wantHistory := []string{"x = 2", "print y", "print x * 3", "read z ; print z + x", "x = = 1", "print x"}
	if !reflect.DeepEqual(p.history, wantHistory) {
		t.Fatalf("history %q, want %q", p.history, wantHistory)
	}
	if len(p.lines) != 1 {
		t.Fatalf(":quit should stop the loop, %d inputs left", len(p.lines))
	}
}

func TestReplLoopEndsAtEOF(t *testing.T) {
	p := &fakePrompter{lines: []string{"print 1"}}
	var out bytes.Buffer
	replLoop(p, "? ", &out, diag.NewReporter(io.Discard, false))
	if out.String() != "1\n" {
		t.Fatalf("stdout %q", out.String())
	}
}
