package repl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempHistory(t *testing.T) *History {
	t.Helper()

	return NewHistory(filepath.Join(t.TempDir(), baseHistory))
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := tempHistory(t)

	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file should succeed, got %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", h.Len())
	}
}

func TestHistory_WriteAndReload(t *testing.T) {
	h := tempHistory(t)

	entries := []HistoryEntry{
		{"out 1 + 2", modeEval},
		{"list", modeCtrl},
		{"var x (10)", modeEval},
	}

	for _, e := range entries {
		if _, err := h.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatalf("WriteWithMode(%q) failed: %v", e.Line, err)
		}
	}

	// Reload from disk into a fresh instance.
	h2 := NewHistory(h.path)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := h2.Entries()
	if len(got) != len(entries) {
		t.Fatalf("got %d entries, want %d", len(got), len(entries))
	}

	for i, want := range entries {
		if got[i] != want {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestHistory_ConsecutiveDuplicateSkipped(t *testing.T) {
	h := tempHistory(t)

	for range 3 {
		if _, err := h.WriteWithMode("out 1", modeEval); err != nil {
			t.Fatalf("WriteWithMode failed: %v", err)
		}
	}

	if h.Len() != 1 {
		t.Errorf("expected 1 entry after duplicate writes, got %d", h.Len())
	}
}

func TestHistory_DuplicateMovesToEnd(t *testing.T) {
	h := tempHistory(t)

	lines := []string{"out 1", "out 2", "out 1"}
	for _, line := range lines {
		if _, err := h.WriteWithMode(line, modeEval); err != nil {
			t.Fatalf("WriteWithMode(%q) failed: %v", line, err)
		}
	}

	got := h.Entries()
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}

	if got[0].Line != "out 2" || got[1].Line != "out 1" {
		t.Errorf("entries = %v, want [out 2, out 1]", got)
	}

	// The rewritten file must match the in-memory order.
	data, err := os.ReadFile(h.path)
	if err != nil {
		t.Fatalf("reading history file: %v", err)
	}

	want := "E:out 2\nE:out 1\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", string(data), want)
	}
}

func TestHistory_ModePrefixesRoundTrip(t *testing.T) {
	h := tempHistory(t)

	if _, err := h.WriteWithMode("help", modeCtrl); err != nil {
		t.Fatalf("WriteWithMode failed: %v", err)
	}

	data, err := os.ReadFile(h.path)
	if err != nil {
		t.Fatalf("reading history file: %v", err)
	}

	if !strings.HasPrefix(string(data), "C:") {
		t.Errorf("ctrl entry should carry C: prefix, got %q", string(data))
	}
}

func TestHistory_LegacyLinesAssumeEvalMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	if err := os.WriteFile(path, []byte("out 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entry, err := h.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}

	if entry.Mode != modeEval || entry.Line != "out 42" {
		t.Errorf("entry = %+v, want eval-mode \"out 42\"", entry)
	}
}

func TestHistory_GetEntryOutOfBounds(t *testing.T) {
	h := tempHistory(t)

	_, err := h.GetEntry(0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	_, err = h.GetEntry(-1)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for negative index, got %v", err)
	}
}

func TestHistory_BlankEntriesIgnored(t *testing.T) {
	h := tempHistory(t)

	if _, err := h.WriteWithMode("   ", modeEval); err != nil {
		t.Fatalf("WriteWithMode failed: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("blank entry should be ignored, got %d entries", h.Len())
	}
}
