// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, callsite information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("interpreter started", slog.String("source", path))
//	logger.Error("run failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCallsite(true))
//
// # Package-Level Logger
//
// A package-level default logger backs the package-level logging
// functions ([Trace], [Debug], [Info], [Warn], [Error] and their
// Context variants). [Config] reconfigures it in place, which lets
// command-line flag parsing adjust logging before the rest of the
// program starts:
//
//	log.Config(log.WithLevel(log.LevelDebug), log.WithFormat(log.FormatText))
//	log.Debug("logger initialized")
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("source", "main.love"))
//	logger.Info("program parsed") // includes source=main.love
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware
// variant. Context-unaware functions internally call their context-aware
// counterparts using [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the
// configured level are discarded. Trace sits below slog's debug level
// and renders as "trace" rather than "DEBUG-4".
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText], each with an optional colorized pretty variant
// ([WithPretty], enabled by default). Format is set at logger creation
// time using functional options.
package log
