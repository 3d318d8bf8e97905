package lang

import (
	"io"
	"os"

	"github.com/Pinkwolf12321/lovelace-language/log"
)

// Option configures a [Session] or a single [Run] call.
type Option func(*options)

type options struct {
	write  func(string)
	logger log.Logger
	name   string
}

func makeOptions(opts ...Option) options {
	o := options{
		write: func(line string) {
			_, _ = io.WriteString(os.Stdout, line+"\n")
		},
		name: "input",
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithOutput directs program output to w, one line per write. A nil
// writer discards output.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w == nil {
			w = io.Discard
		}

		o.write = func(line string) {
			_, _ = io.WriteString(w, line+"\n")
		}
	}
}

// WithWriteLine directs program output to fn, called once per line
// without a trailing newline. The sink serializes calls; fn itself
// need not be safe for concurrent use.
func WithWriteLine(fn func(string)) Option {
	return func(o *options) {
		if fn == nil {
			fn = func(string) {}
		}

		o.write = fn
	}
}

// WithLogger sets the structured logger for engine diagnostics. The
// zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName sets the source name used in diagnostics, typically the
// file path or "stdin".
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}
