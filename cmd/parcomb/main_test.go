package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with an empty config file and returns what
// it wrote to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "parcomb.toml")
	if err := os.WriteFile(cfgFile, nil, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestErrorsAreReported(t *testing.T) {
	bad := writeFile(t, "bad.json", "[1,]")
	badGrammar := writeFile(t, "bad.ebnf", "A = ")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"json", "-f", "xml", "missing.json"}, "unknown format: xml"},
		{"missing file", []string{"json", "missing.json"}, "read file"},
		{"syntax error", []string{"json", bad}, "bad.json:1:4: invalid value"},
		{"calc", []string{"calc", "1", "/", "0"}, "division by zero"},
		{"missing grammar", []string{"grammar", "tokens", "missing.ebnf"}, "open grammar"},
		{"bad grammar", []string{"grammar", "check", badGrammar}, "parse grammar:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := run(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestBadConfigIsReported(t *testing.T) {
	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "calc", "1"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(stderr.String(), "load config") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestJSON(t *testing.T) {
	stdout, _, err := run(t, `{"b": [1, 2], "a": null}`, "json", "-f", "line")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	want := "$\tobject\t2\n$.b\tarray\t2\n$.b[0]\tnumber\t1\n$.b[1]\tnumber\t2\n$.a\tnull\n"
	if stdout != want {
		t.Errorf("got:\n%s\nwant:\n%s", stdout, want)
	}
}

func TestCalc(t *testing.T) {
	stdout, _, err := run(t, "", "calc", "1 + 2 * 3")
	if err != nil || stdout != "7\n" {
		t.Errorf("got %q, %v", stdout, err)
	}

	stdout, stderr, err := run(t, "2*3\n\n1 +\nmax(1, 4)\n", "calc")
	if err == nil {
		t.Error("expected error for the failing line")
	}
	if stdout != "6\n4\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "line 3:") || !strings.Contains(stderr, "1 expressions failed") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestGrammarTokens(t *testing.T) {
	stdout, _, err := run(t, "1 + x", "grammar", "tokens", "../../calc/calc.ebnf",
		"--kinds", "WhiteSpace,Number,Ident,Plus")
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	want := "-:1:1\tNumber\t\"1\"\n-:1:3\tPlus\t\"+\"\n-:1:5\tIdent\t\"x\"\n-:1:6\tEOF\t\"\"\n"
	if stdout != want {
		t.Errorf("got:\n%s\nwant:\n%s", stdout, want)
	}
}

func TestGrammarCheck(t *testing.T) {
	if _, stderr, err := run(t, "", "grammar", "check", "../../calc/calc.ebnf", "--start", "Tokens"); err != nil {
		t.Errorf("check: %v\n%s", err, stderr)
	}
}
