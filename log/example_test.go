package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/Pinkwolf12321/lovelace-language/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout)
	logger.Info("interpreter started", slog.String("source", "main.love"))
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCallsite(true))

	logger.Debug("debug message with callsite info")
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelWarn))

	logger.Trace("trace message")
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message", slog.String("error", "something failed"))
}

func Example_textFormat() {
	logger := log.Make(os.Stdout, log.WithFormat(log.FormatText))
	logger.Info("text format message", slog.String("unit", "main"))
}

func Example_withAttributes() {
	// Create a logger with persistent attributes
	logger := log.Make(os.Stdout)
	logger = logger.With(slog.String("source", "scripts/demo.love"))

	logger.Info("program parsed")
	logger.Debug("program details", slog.Int("statements", 12))
}

func Example_withContext() {
	type runIDKey struct{}

	// Create a context with a run ID
	ctx := context.WithValue(context.Background(), runIDKey{}, "run-789")

	logger := log.Make(os.Stdout)

	// Use context-aware logging methods
	logger.InfoContext(ctx, "evaluating program with context")
	logger.DebugContext(ctx, "program details", slog.Int("units", 3))
}
