package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Pinkwolf12321/lovelace-language/lang"
	"github.com/Pinkwolf12321/lovelace-language/log"
)

// Run executes a Lovelace program from a file, stdin, or the sources given
// with the top-level --source flag.
type Run struct {
	Path string `arg:"" help:"Program file or '-' for stdin" name:"path" optional:""`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	// Derive the context the session runs under, recording the command's
	// outcome as the cancellation cause once it returns.
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	source, name, err := r.source(ctx)
	if err != nil {
		return err
	}

	session := lang.NewSession(
		lang.WithName(name),
		lang.WithOutput(os.Stdout),
		lang.WithLogger(log.Default()),
	)

	began := time.Now()

	err = session.Eval(ctx, source)
	if err != nil {
		// The annotated form carries a caret snippet pointing at the
		// offending source position.
		fmt.Fprintln(os.Stderr, lang.Annotate(err, source))

		return ErrRunProgram.Wrap(err).
			With(slog.String("source", name))
	}

	log.DebugContext(ctx, "program finished",
		slog.String("source", name),
		slog.Duration("elapsed", time.Since(began)),
	)

	// The main unit succeeded, but a spawned unit may still have failed.
	// Its error was already reported on the output stream.
	if session.Failed() {
		return ErrUnitFailure.With(slog.String("source", name))
	}

	return nil
}

// source resolves the program text and a display name for it. An explicit
// path argument wins over --source files; with neither, stdin is read.
func (r *Run) source(ctx context.Context) (source, name string, err error) {
	var reader io.Reader

	switch {
	case r.Path == stdinSource:
		reader, name = os.Stdin, "stdin"

	case r.Path != "":
		file, err := os.Open(r.Path)
		if err != nil {
			return "", "", ErrReadSource.Wrap(err).
				With(slog.String("path", r.Path))
		}
		defer file.Close()

		reader, name = file, r.Path

	default:
		if srcs := sourceFilesFrom(ctx); srcs != nil && !srcs.IsZero() {
			reader, name = srcs, srcs.Name()
		} else {
			reader, name = os.Stdin, "stdin"
		}
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", "", ErrReadSource.Wrap(err).
			With(slog.String("source", name))
	}

	return string(data), name, nil
}
