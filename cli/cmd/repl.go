package cmd

import (
	"context"

	"github.com/Pinkwolf12321/lovelace-language/cli/cmd/repl"
)

// Repl starts an interactive Lovelace session.
type Repl struct {
	History string `default:"${cache}/history.utf8" help:"History file path." type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, repl.WithHistoryPath(r.History))
}
