package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/while/internal/config"
)

// runApp runs the command line with stdin, returning stdout, stderr and the
// error from Run.
func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"while"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"parse", "-e", "x := 1; skip"}, "(; (:= x 1) skip)\n"},
		{[]string{"parse", "--entry", "aexp", "-e", "1 + 2*3"}, "(+ 1 (* 2 3))\n"},
		{[]string{"parse", "--entry", "bexp", "-e", "!a < 1 & true"}, "(& (! (< (- a 1) 0)) true)\n"},
		{[]string{"parse", "--format", "yaml", "-e", "skip"}, "kind: skip\n"},
	}
	for _, tt := range tests {
		stdout, stderr, err := runApp(t, "", tt.args...)
		if err != nil {
			t.Fatalf("%v: unexpected error %v (stderr %q)", tt.args, err, stderr)
		}
		if stdout != tt.want {
			t.Fatalf("%v: stdout = %q, want %q", tt.args, stdout, tt.want)
		}
	}
}

func TestParseReadsStdinAndFiles(t *testing.T) {
	stdout, _, err := runApp(t, "while x < 1 do skip", "parse", "-")
	if err != nil {
		t.Fatalf("parse from stdin: %v", err)
	}
	if want := "(while 1:1 (< (- x 1) 0) skip)\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}

	path := filepath.Join(t.TempDir(), "prog.while")
	if err := os.WriteFile(path, []byte("# init\nx := 0;\nwhile x < 3 do x := x + 1\n"), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	stdout, _, err = runApp(t, "", "parse", path)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if want := "(; (:= x 0) (while 3:1 (< (- x 3) 0) (:= x (+ x 1))))\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}

	if _, _, err := runApp(t, "", "parse", filepath.Join(t.TempDir(), "missing.while")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	stdout, stderr, err := runApp(t, "", "--no-color", "parse", "-e", "x := 1 +\n+ 2")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got %v", err)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	want := "expr:2:1: expected arithmetic expression, found +\n\t+ 2\n\t^\n"
	if stderr != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}

	_, stderr, err = runApp(t, "", "--no-color", "parse", "-e", "x := 1 $")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got %v", err)
	}
	if !strings.Contains(stderr, `invalid token "$"`) || !strings.Contains(stderr, "\t       ^\n") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestParseRejectsUnknownSettings(t *testing.T) {
	if _, _, err := runApp(t, "", "parse", "--format", "json", "-e", "skip"); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
	if _, _, err := runApp(t, "", "parse", "--entry", "program", "-e", "skip"); err == nil || !strings.Contains(err.Error(), "unknown entry point") {
		t.Fatalf("expected unknown entry error, got %v", err)
	}
}

func TestConfigFileSetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "while.yaml")
	if err := os.WriteFile(path, []byte("format: yaml\nentry: term\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	stdout, _, err := runApp(t, "", "--config", path, "parse", "-e", "x")
	if err != nil {
		t.Fatalf("parse with config: %v", err)
	}
	if want := "kind: variable\nname: x\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}

	if _, _, err := runApp(t, "", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "parse", "-e", "skip"); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestTokensCommand(t *testing.T) {
	stdout, _, err := runApp(t, "", "tokens", "-e", "x := 1")
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	want := []string{
		"1:1\tidentifier\tx",
		"1:3\t:=\t:=",
		"1:6\tint\t1",
	}
	if len(lines) != len(want)+1 {
		t.Fatalf("expected %d lines, got %q", len(want)+1, stdout)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Fatalf("line %d = %q, want %q", i, lines[i], line)
		}
	}
	if !strings.Contains(lines[len(lines)-1], "EOF") {
		t.Fatalf("expected EOF line, got %q", lines[len(lines)-1])
	}
}

func TestVarsCommand(t *testing.T) {
	stdout, _, err := runApp(t, "", "vars", "-e", "x := y + 1; while x < 3 do skip")
	if err != nil {
		t.Fatalf("vars: %v", err)
	}
	if want := "vars: x y\nconstants: 1 3\n"; stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := runApp(t, "", "-v", "parse", "-e", "skip")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(stderr, "level=DEBUG") || !strings.Contains(stderr, "msg=parsed") {
		t.Fatalf("expected debug log, got %q", stderr)
	}

	_, stderr, err = runApp(t, "", "parse", "-e", "skip")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if stderr != "" {
		t.Fatalf("expected quiet stderr, got %q", stderr)
	}
}

func TestBufferedREPL(t *testing.T) {
	input := "x := 1;\ny := 2\n\nif true then\nskip else skip\nx := )\nwhile true do skip\n"
	stdout, stderr, err := runApp(t, input, "--no-color")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	want := "(; (:= x 1) (:= y 2))\n(if true skip skip)\n(while 1:1 true skip)\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "repl:1:6: expected arithmetic expression, found )") {
		t.Fatalf("expected syntax error on stderr, got %q", stderr)
	}
}

func TestBufferedREPLReportsIncompleteInputAtEOF(t *testing.T) {
	stdout, stderr, err := runApp(t, "while x < 1 do", "--no-color", "repl", "--format", "yaml")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "unexpected end of input, expected statement") {
		t.Fatalf("expected incomplete-input error, got %q", stderr)
	}
}
