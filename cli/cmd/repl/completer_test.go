package repl

import (
	"slices"
	"testing"

	"github.com/Pinkwolf12321/lovelace-language/lang"
	"github.com/Pinkwolf12321/lovelace-language/log"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"empty input", "", 0, "", 0, 0},
		{"single word", "greeting", 8, "greeting", 0, 8},
		{"cursor mid-word", "greeting", 4, "greeting", 0, 8},
		{"after space", "out ", 4, "", 4, 4},
		{"second word", "out total", 9, "total", 4, 9},
		{"after operator", "x + cou", 7, "cou", 4, 7},
		{"inside parens", "double(val", 10, "val", 7, 10},
		{"after bracket", "cells[idx", 9, "idx", 6, 9},
		{"underscored ident", "out my_var", 10, "my_var", 4, 10},
		{"cursor past end clamps", "abc", 10, "abc", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)

			if word != tt.wantWord {
				t.Errorf("word = %q, want %q", word, tt.wantWord)
			}

			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("bounds = [%d,%d], want [%d,%d]",
					start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestEvalCandidates_IncludeKeywordsAndIdents(t *testing.T) {
	session := lang.NewSession(lang.WithWriteLine(func(string) {}))

	err := session.Eval(t.Context(), "var total (10)\nfunc bump(n) => n + 1")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}

	m := model{session: session}
	candidates := m.evalCandidates()

	for _, want := range []string{"loop", "spawn", "total", "bump"} {
		if !slices.Contains(candidates, want) {
			t.Errorf("candidates missing %q", want)
		}
	}
}

func TestComputeMatches_CtrlMode(t *testing.T) {
	m := newModel(t.Context(), NewHistory(""), log.Logger{})
	m, _ = m.switchToMode(modeCtrl)
	m.input.SetValue("li")
	m.input.SetCursor(2)

	matches, candidates, start, end := m.computeMatches()

	if len(matches) == 0 {
		t.Fatal("expected at least one match for \"li\"")
	}

	if matches[0].Str != "list" {
		t.Errorf("best match = %q, want %q", matches[0].Str, "list")
	}

	if !slices.Equal(candidates, ctrlCommands) {
		t.Errorf("candidates = %v, want %v", candidates, ctrlCommands)
	}

	if start != 0 || end != 2 {
		t.Errorf("bounds = [%d,%d], want [0,2]", start, end)
	}
}

func TestComputeMatches_EmptyWordHasNoMatches(t *testing.T) {
	m := newModel(t.Context(), NewHistory(""), log.Logger{})
	m.input.SetValue("out ")
	m.input.SetCursor(4)

	matches, _, _, _ := m.computeMatches()

	if matches != nil {
		t.Errorf("expected nil matches on a word boundary, got %v", matches)
	}
}

func TestRenderCandidateBar_Empty(t *testing.T) {
	if bar := renderCandidateBar(nil, 0, false, 80); bar != "" {
		t.Errorf("expected empty bar, got %q", bar)
	}
}
