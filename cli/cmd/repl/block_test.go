package repl

import "testing"

func TestOpenBlocks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"empty", "", 0},
		{"simple statement", "out 1 + 2", 0},
		{"open if", "if x > 1:", 1},
		{"closed if", "if x > 1:\nout x\nend", 0},
		{"elif does not nest", "if x > 1:\nout 1\nelif x > 0:\nout 2", 1},
		{"else does not nest", "if x > 1:\nout 1\nelse:\nout 2\nend", 0},
		{"nested blocks", "loop 3:\nif true:\nout 1", 2},
		{"partially closed", "loop 3:\nif true:\nout 1\nend", 1},
		{"func body", "func f(n):\nreturn n", 1},
		{"expression func is complete", "func f(n) => n + 1", 0},
		{"spawn block", "spawn:\nout 1", 1},
		{"stray end submits", "end", 0},
		{"lex error submits", `out "unterminated`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := openBlocks(tt.source); got != tt.want {
				t.Errorf("openBlocks(%q) = %d, want %d", tt.source, got, tt.want)
			}
		})
	}
}
