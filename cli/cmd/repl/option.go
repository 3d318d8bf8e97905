package repl

import "github.com/Pinkwolf12321/lovelace-language/log"

// Option configures the REPL.
type Option func(*options)

type options struct {
	historyPath string
	logger      log.Logger
}

func makeOptions(opts ...Option) options {
	o := options{
		historyPath: baseHistory,
		logger:      log.Default(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithHistoryPath sets the path of the persistent history file.
func WithHistoryPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.historyPath = path
		}
	}
}

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
