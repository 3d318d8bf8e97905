package lang

//go:generate go tool stringer --linecomment --type Kind --output token_string.go

import "strconv"

// Pos is a 1-based line/column source position.
type Pos struct {
	Line int
	Col  int
}

// String returns the position formatted as "line:col".
func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// IsZero reports whether the position is unset.
func (p Pos) IsZero() bool { return p.Line == 0 }

// Kind classifies a lexical token.
type Kind int

const (
	KindEOF     Kind = iota // EOF
	KindKeyword             // keyword
	KindIdent               // identifier
	KindNumber              // number
	KindString              // string
	KindSymbol              // symbol
)

// Token is a single lexical unit. Tokens are immutable once produced by
// the lexer.
//
// For [KindString] tokens, Text holds the unquoted string contents.
// The newline statement terminator is emitted as a [KindSymbol] token
// with Text "\n".
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

// IsNewline reports whether the token is a statement terminator.
func (t Token) IsNewline() bool {
	return t.Kind == KindSymbol && t.Text == "\n"
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// keywords is the closed set of reserved words. Identifiers matching an
// entry lex as [KindKeyword].
var keywords = map[string]struct{}{
	"var":    {},
	"array":  {},
	"out":    {},
	"sleep":  {},
	"loop":   {},
	"if":     {},
	"elif":   {},
	"else":   {},
	"end":    {},
	"func":   {},
	"return": {},
	"spawn":  {},
	"and":    {},
	"or":     {},
	"not":    {},
	"true":   {},
	"false":  {},
}

// Keywords returns the reserved words of the language in no particular
// order. The REPL uses this list for completion.
func Keywords() []string {
	words := make([]string, 0, len(keywords))

	for word := range keywords {
		words = append(words, word)
	}

	return words
}

func isKeyword(s string) bool {
	_, ok := keywords[s]

	return ok
}
