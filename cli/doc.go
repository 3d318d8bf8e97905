// Package cli contains the command line interface for lovelace.
//
// # Usage
//
// The CLI runs Lovelace programs from files or stdin and hosts an
// interactive session:
//
//	lovelace run script.love
//	lovelace run - < script.love
//	lovelace repl
//
// Multiple sources given with --source are concatenated in order and run
// as a single program, with stdin (given as "-") always read last.
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads
// YAML config files and converts them to Kong flag values. The config file
// lives under the user config directory (e.g., ~/.config/lovelace).
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-callsite: Include callsite information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/lovelace/pprof)
//
// # Examples
//
//	# Debug logging while running a script
//	lovelace --log-level=debug run script.love
//
//	# Text format with CPU profiling
//	lovelace --log-format=text --pprof-mode=cpu run script.love
package cli
