package lang

import (
	"errors"
	"reflect"
	"testing"
)

// parseSource tokenizes and parses in one step.
func parseSource(t *testing.T, source string) []Stmt {
	t.Helper()

	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	stmts, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return stmts
}

func parseError(t *testing.T, source string) error {
	t.Helper()

	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	_, err = Parse(tokens)
	if err == nil {
		t.Fatal("expected parse error, got none")
	}

	return err
}

func TestParseVarDecl(t *testing.T) {
	stmts := parseSource(t, `var x (41 + 1)`)

	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}

	decl, ok := stmts[0].(*VarDecl)
	if !ok {
		t.Fatalf("expected *VarDecl, got %T", stmts[0])
	}

	if decl.Name != "x" {
		t.Errorf("expected name x, got %q", decl.Name)
	}

	if _, ok := decl.Init.(*Binary); !ok {
		t.Errorf("expected *Binary init, got %T", decl.Init)
	}
}

func TestParseElifChain(t *testing.T) {
	stmts := parseSource(t, `
if (a):
out 1
elif (b):
out 2
else:
out 3
end
`)

	cond, ok := stmts[0].(*If)
	if !ok {
		t.Fatalf("expected *If, got %T", stmts[0])
	}

	// elif nests as a single If in the else branch.
	if len(cond.Else) != 1 {
		t.Fatalf("expected 1 else statement, got %d", len(cond.Else))
	}

	nested, ok := cond.Else[0].(*If)
	if !ok {
		t.Fatalf("expected nested *If, got %T", cond.Else[0])
	}

	if len(nested.Then) != 1 || len(nested.Else) != 1 {
		t.Errorf("nested if: expected 1 then and 1 else statement, got %d and %d",
			len(nested.Then), len(nested.Else))
	}
}

func TestParseLoopForms(t *testing.T) {
	stmts := parseSource(t, `
loop (3):
out 1
end
loop cells:
out item
end
`)

	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}

	counted, ok := stmts[0].(*Loop)
	if !ok {
		t.Fatalf("expected *Loop, got %T", stmts[0])
	}

	if _, ok := counted.Count.(*Literal); !ok {
		t.Errorf("expected *Literal count, got %T", counted.Count)
	}

	each, ok := stmts[1].(*LoopEach)
	if !ok {
		t.Fatalf("expected *LoopEach, got %T", stmts[1])
	}

	if each.Name != "cells" {
		t.Errorf("expected array name cells, got %q", each.Name)
	}

	if len(each.Body) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(each.Body))
	}
}

func TestParseLoopMalformed(t *testing.T) {
	for _, source := range []string{
		"loop:\nend",      // neither count nor array name
		"loop 3:\nend",    // count form requires parentheses
		"loop cells\nend", // missing colon
	} {
		err := parseError(t, source)
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected parse error, got %v", source, err)
		}
	}
}

func TestParseExprBodiedFunc(t *testing.T) {
	stmts := parseSource(t, `func double(n) => n * 2`)

	def, ok := stmts[0].(*FuncDef)
	if !ok {
		t.Fatalf("expected *FuncDef, got %T", stmts[0])
	}

	if len(def.Params) != 1 || def.Params[0] != "n" {
		t.Errorf("expected params [n], got %v", def.Params)
	}

	if len(def.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(def.Body))
	}

	ret, ok := def.Body[0].(*Return)
	if !ok {
		t.Fatalf("expected *Return body, got %T", def.Body[0])
	}

	if ret.Value == nil {
		t.Error("expected return value expression, got nil")
	}
}

func TestParseBlockFunc(t *testing.T) {
	stmts := parseSource(t, `
func announce(who):
out "hello"
out who
return
end
`)

	def, ok := stmts[0].(*FuncDef)
	if !ok {
		t.Fatalf("expected *FuncDef, got %T", stmts[0])
	}

	if len(def.Body) != 3 {
		t.Errorf("expected 3 body statements, got %d", len(def.Body))
	}
}

func TestParseStrayReturn(t *testing.T) {
	err := parseError(t, "return 1")

	if !errors.Is(err, ErrParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestParseReturnInSpawnBody(t *testing.T) {
	// The spawn body runs as its own unit, so a return inside it is
	// stray even when the spawn appears inside a function.
	err := parseError(t, `
func f():
spawn:
return 1
end
end
`)

	if !errors.Is(err, ErrParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestParseMissingEnd(t *testing.T) {
	for _, source := range []string{
		"loop (3):\nout 1",
		"if (true):\nout 1",
		"func f():\nout 1",
		"spawn:\nout 1",
	} {
		err := parseError(t, source)

		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected parse error, got %v", source, err)
		}
	}
}

func TestParsePrecedence(t *testing.T) {
	stmts := parseSource(t, `out 1 + 2 * 3 < 10 and true`)

	out, ok := stmts[0].(*Output)
	if !ok {
		t.Fatalf("expected *Output, got %T", stmts[0])
	}

	and, ok := out.Value.(*Binary)
	if !ok || and.Op != "and" {
		t.Fatalf("expected top-level and, got %#v", out.Value)
	}

	cmp, ok := and.Left.(*Binary)
	if !ok || cmp.Op != "<" {
		t.Fatalf("expected < under and, got %#v", and.Left)
	}

	add, ok := cmp.Left.(*Binary)
	if !ok || add.Op != "+" {
		t.Fatalf("expected + under <, got %#v", cmp.Left)
	}

	mul, ok := add.Right.(*Binary)
	if !ok || mul.Op != "*" {
		t.Errorf("expected * on right of +, got %#v", add.Right)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	stmts := parseSource(t, `out 10 - 4 - 3`)

	out := stmts[0].(*Output)

	outer, ok := out.Value.(*Binary)
	if !ok || outer.Op != "-" {
		t.Fatalf("expected top-level -, got %#v", out.Value)
	}

	// (10 - 4) - 3, not 10 - (4 - 3)
	inner, ok := outer.Left.(*Binary)
	if !ok || inner.Op != "-" {
		t.Errorf("expected - on left, got %#v", outer.Left)
	}
}

func TestParseCallArityUnchecked(t *testing.T) {
	// Arity is a call-time concern; the parser accepts any count.
	stmts := parseSource(t, `
func one(a):
end
one(1, 2, 3)
one()
`)

	if len(stmts) != 3 {
		t.Errorf("expected 3 statements, got %d", len(stmts))
	}
}

func TestParseTrailingTokens(t *testing.T) {
	err := parseError(t, "out 1 2")

	if !errors.Is(err, ErrParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestParseDeterministic(t *testing.T) {
	source := `
var n (3)
loop (n):
if (n > 1):
out n
end
end
spawn:
out "done"
end
`

	first := parseSource(t, source)
	second := parseSource(t, source)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical source produced different programs")
	}
}

func TestParseArrayStatements(t *testing.T) {
	stmts := parseSource(t, "array mem (8)\nmem[0] = 1\nout mem[0]")

	if _, ok := stmts[0].(*DeclareArray); !ok {
		t.Errorf("expected *DeclareArray, got %T", stmts[0])
	}

	set, ok := stmts[1].(*ArraySet)
	if !ok {
		t.Fatalf("expected *ArraySet, got %T", stmts[1])
	}

	if set.Name != "mem" {
		t.Errorf("expected name mem, got %q", set.Name)
	}

	out := stmts[2].(*Output)
	if _, ok := out.Value.(*ArrayGet); !ok {
		t.Errorf("expected *ArrayGet, got %T", out.Value)
	}
}
