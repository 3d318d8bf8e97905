package lang

import (
	"context"
	"log/slog"
)

// Run parses and executes one complete program. It returns the first
// lex or parse error without executing anything; at runtime it returns
// the error that aborted the main unit, if any.
//
// Run does not return until every spawned unit has finished. Errors in
// spawned units never reach the caller: each is reported to the output
// sink as a line tagged with the failing unit's id.
func Run(ctx context.Context, source string, opts ...Option) error {
	return NewSession(opts...).Eval(ctx, source)
}

// Session is a persistent interpreter. Successive Eval calls share one
// root scope and one function table, so bindings and definitions made
// by earlier inputs remain visible to later ones. The interactive
// shell keeps a Session alive for its lifetime; Run uses a throwaway
// one.
type Session struct {
	in   *Interp
	opts options
}

// NewSession returns an empty interpreter session.
func NewSession(opts ...Option) *Session {
	o := makeOptions(opts...)

	logger := o.logger.With(slog.String("source", o.name))

	return &Session{
		in:   newInterp(&sink{write: o.write}, logger),
		opts: o,
	}
}

// Eval runs one program in the session, waiting for every unit it
// spawned before returning.
func (s *Session) Eval(ctx context.Context, source string) error {
	tokens, err := Tokenize(source)
	if err != nil {
		return err
	}

	stmts, err := Parse(tokens)
	if err != nil {
		return err
	}

	s.in.log.TraceContext(ctx, "program parsed",
		slog.Int("tokens", len(tokens)),
		slog.Int("statements", len(stmts)),
	)

	// Top-level definitions register before execution begins, so a call
	// may precede its function's definition in source order.
	for _, stmt := range stmts {
		if def, ok := stmt.(*FuncDef); ok {
			s.in.define(def)
		}
	}

	main := &unit{in: s.in, id: mainUnit, root: s.in.root}

	runErr := main.execBlock(ctx, s.in.root, stmts)

	// A main-unit failure still lets already-spawned units finish.
	s.in.sched.wait()

	return runErr
}

// Failed reports whether any spawned unit has ended in an error since
// the session began. Main-unit errors are returned by Eval directly
// and not recorded here.
func (s *Session) Failed() bool {
	return s.in.sched.failed.Load()
}

// Idents returns every name the session binds: variables visible from
// the root scope and defined functions. The interactive shell feeds
// this list to its completer.
func (s *Session) Idents() []string {
	return append(s.in.root.Names(), s.in.FuncNames()...)
}
