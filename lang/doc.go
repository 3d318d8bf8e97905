// Package lang implements the Lovelace scripting language: a lexer,
// a recursive-descent parser, and a tree-walking evaluator with a
// goroutine-per-unit concurrency model.
//
// The single entry point is [Run], which parses and executes a complete
// program. [Session] keeps an interpreter alive across inputs for
// interactive use.
//
// A program is a newline-separated statement list. The spawn statement
// launches its body as a concurrent unit with a snapshot of the
// spawning scope: scalar bindings are copied, array bindings share
// their backing store. Output from all units funnels through one sink
// that serializes whole lines.
//
// Typing is strict throughout: conditions must be Bool, arithmetic
// operands must match in kind, and reading an unbound name is an error
// rather than an implicit nil. Errors carry 1-based source positions
// and match their kind sentinels ([ErrName], [ErrType], ...) under
// errors.Is.
package lang
