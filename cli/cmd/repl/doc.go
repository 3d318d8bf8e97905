// Package repl implements the interactive Lovelace session.
//
// The REPL is a Bubble Tea program wrapping a persistent [lang.Session]:
// variables and functions defined in one submission remain visible to the
// next. Lines that open a block (if, loop, func, spawn) are buffered under
// a continuation prompt until the matching "end" arrives, then the whole
// block runs as one program.
//
// Two input modes share the prompt. Eval mode runs Lovelace statements;
// control mode (toggled with Esc) accepts session commands such as help,
// list, reset, clear, and quit. Fuzzy completion over keywords and the
// session's defined names is available in eval mode, and command history
// persists across sessions in a cache file.
package repl
