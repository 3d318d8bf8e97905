package lang

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestRunGreetingLoopExample(t *testing.T) {
	wantLines(t, `var greeting ("Hello, Lovelace!")
out greeting
loop (3):
out "Looping..."
end
`,
		"Hello, Lovelace!",
		"Looping...",
		"Looping...",
		"Looping...")
}

func TestRunUndefinedFunctionExample(t *testing.T) {
	lines, err := runProgram(t, `
out "before"
foo()
out "after"
`)

	if !errors.Is(err, ErrName) {
		t.Fatalf("expected name error, got %v", err)
	}

	if len(lines) != 1 || lines[0] != "before" {
		t.Errorf("expected output to stop at the failing statement, got %v", lines)
	}
}

func TestRunRejectsBadSourceBeforeExecution(t *testing.T) {
	// A program either parses fully or does not run at all.
	lines, err := runProgram(t, `
out "executed"
loop (3):
out "no end"
`)

	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}

	if len(lines) != 0 {
		t.Errorf("expected no output before execution, got %v", lines)
	}
}

func TestSessionPersistsBindings(t *testing.T) {
	var lines []string

	session := NewSession(WithWriteLine(func(line string) {
		lines = append(lines, line)
	}))

	for _, input := range []string{
		"var x (40)",
		"func bump(n) => n + 2",
		"out bump(x)",
	} {
		if err := session.Eval(t.Context(), input); err != nil {
			t.Fatalf("eval %q: %v", input, err)
		}
	}

	if len(lines) != 1 || lines[0] != "42" {
		t.Errorf("expected [42], got %v", lines)
	}
}

func TestSessionSurvivesErrors(t *testing.T) {
	session := NewSession(WithWriteLine(func(string) {}))

	if err := session.Eval(t.Context(), "var x (1)"); err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if err := session.Eval(t.Context(), "out missing"); err == nil {
		t.Fatal("expected name error")
	}

	// Earlier bindings remain intact after a failed input.
	if err := session.Eval(t.Context(), "out x"); err != nil {
		t.Errorf("expected x to survive the failed input: %v", err)
	}
}

func TestSessionIdents(t *testing.T) {
	session := NewSession(WithWriteLine(func(string) {}))

	err := session.Eval(t.Context(), `
var alpha (1)
func beta() => 2
`)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	idents := session.Idents()

	for _, want := range []string{"alpha", "beta"} {
		if !slices.Contains(idents, want) {
			t.Errorf("expected %q in idents, got %v", want, idents)
		}
	}
}

// fixture is one end-to-end program in testdata/programs.yaml.
type fixture struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Output []string `yaml:"output"`
	Error  string   `yaml:"error"`
}

// errKinds maps fixture error names to their sentinels.
var errKinds = map[string]*Error{
	"lex":        ErrLex,
	"parse":      ErrParse,
	"name":       ErrName,
	"type":       ErrType,
	"index":      ErrIndex,
	"arity":      ErrArity,
	"arithmetic": ErrArithmetic,
}

func TestRunFixtures(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "programs.yaml"))
	if err != nil {
		t.Fatalf("read fixtures: %v", err)
	}

	var fixtures []fixture

	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		t.Fatalf("decode fixtures: %v", err)
	}

	for _, fx := range fixtures {
		t.Run(fx.Name, func(t *testing.T) {
			lines, err := runProgram(t, fx.Source)

			if fx.Error != "" {
				kind, ok := errKinds[fx.Error]
				if !ok {
					t.Fatalf("fixture names unknown error kind %q", fx.Error)
				}

				if !errors.Is(err, kind) {
					t.Fatalf("expected %v, got %v", kind, err)
				}
			} else if err != nil {
				t.Fatalf("run error: %v", err)
			}

			if len(lines) != len(fx.Output) {
				t.Fatalf("expected %d lines, got %d: %v",
					len(fx.Output), len(lines), lines)
			}

			for i, want := range fx.Output {
				if lines[i] != want {
					t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
				}
			}
		})
	}
}
