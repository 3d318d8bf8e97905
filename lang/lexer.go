package lang

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// commentMarker introduces a comment that extends to the end of the line.
const commentMarker = "###"

// Lexer scans Lovelace source text into a flat token sequence.
//
// Whitespace separates tokens; line breaks terminate statements and are
// emitted as newline symbol tokens with consecutive runs collapsed.
// Comments are stripped before token emission.
type Lexer struct {
	src    string
	cur    int // byte offset of the next unread rune
	line   int // 1-based
	col    int // 1-based column of the next unread rune
	tokens []Token
}

// Tokenize scans the given source and returns its token sequence,
// terminated by a [KindEOF] token. It fails with [ErrLex] on the first
// unrecognized character or unterminated string literal.
func Tokenize(src string) ([]Token, error) {
	l := &Lexer{
		src:  src,
		line: 1,
		col:  1,
	}

	for {
		tok, err := l.scan()
		if err != nil {
			return nil, err
		}

		// Collapse newline runs into a single terminator.
		if tok.IsNewline() && l.lastIsBoundary() {
			continue
		}

		l.tokens = append(l.tokens, tok)

		if tok.Kind == KindEOF {
			return l.tokens, nil
		}
	}
}

// lastIsBoundary reports whether the previously emitted token already
// terminates a statement (or no token has been emitted yet).
func (l *Lexer) lastIsBoundary() bool {
	if len(l.tokens) == 0 {
		return true
	}

	return l.tokens[len(l.tokens)-1].IsNewline()
}

// scan produces the next token.
func (l *Lexer) scan() (Token, error) {
	l.skipBlanks()

	pos := l.pos()

	r, ok := l.peek()
	if !ok {
		return Token{Kind: KindEOF, Pos: pos}, nil
	}

	switch {
	case r == '\n':
		l.next()

		return Token{Kind: KindSymbol, Text: "\n", Pos: pos}, nil

	case r == '"':
		return l.scanString(pos)

	case unicode.IsDigit(r):
		return l.scanNumber(pos)

	case isIdentStart(r):
		return l.scanIdent(pos)

	default:
		return l.scanSymbol(pos)
	}
}

// skipBlanks consumes spaces, tabs, carriage returns, and comments.
// Newlines are significant and left in place.
func (l *Lexer) skipBlanks() {
	for {
		if strings.HasPrefix(l.src[l.cur:], commentMarker) {
			for {
				r, ok := l.peek()
				if !ok || r == '\n' {
					break
				}

				l.next()
			}

			continue
		}

		r, ok := l.peek()
		if !ok || (r != ' ' && r != '\t' && r != '\r') {
			return
		}

		l.next()
	}
}

// scanString scans a double-quoted string literal. There is no escape
// processing beyond closing-quote detection; a literal that reaches end
// of line or end of input unterminated is a lex error.
func (l *Lexer) scanString(pos Pos) (Token, error) {
	l.next() // opening quote

	start := l.cur

	for {
		r, ok := l.peek()
		if !ok || r == '\n' {
			return Token{}, ErrLex.
				Wrap(fmt.Errorf("unterminated string literal")).
				At(pos).
				With(slog.String("char", `"`))
		}

		if r == '"' {
			text := l.src[start:l.cur]
			l.next() // closing quote

			return Token{Kind: KindString, Text: text, Pos: pos}, nil
		}

		l.next()
	}
}

// scanNumber scans an integer or decimal literal.
func (l *Lexer) scanNumber(pos Pos) (Token, error) {
	start := l.cur
	dotted := false

	for {
		r, ok := l.peek()
		if !ok {
			break
		}

		if r == '.' && !dotted {
			// Only consume the dot when a digit follows, so that a
			// trailing dot is not swallowed into the literal.
			if next, ok := l.peekAt(1); ok && unicode.IsDigit(next) {
				dotted = true
				l.next()

				continue
			}

			break
		}

		if !unicode.IsDigit(r) {
			break
		}

		l.next()
	}

	return Token{Kind: KindNumber, Text: l.src[start:l.cur], Pos: pos}, nil
}

// scanIdent scans an identifier or keyword.
func (l *Lexer) scanIdent(pos Pos) (Token, error) {
	start := l.cur

	for {
		r, ok := l.peek()
		if !ok || !isIdentPart(r) {
			break
		}

		l.next()
	}

	text := l.src[start:l.cur]

	kind := KindIdent
	if isKeyword(text) {
		kind = KindKeyword
	}

	return Token{Kind: kind, Text: text, Pos: pos}, nil
}

// symbols lists the recognized operator and punctuation tokens, longest
// first so that two-character operators win over their prefixes.
var symbols = []string{
	"==", "!=", "<=", ">=", "=>",
	"(", ")", "[", "]", ":", ",",
	"+", "-", "*", "/", "<", ">", "=",
}

// scanSymbol scans an operator or punctuation token.
func (l *Lexer) scanSymbol(pos Pos) (Token, error) {
	for _, sym := range symbols {
		if strings.HasPrefix(l.src[l.cur:], sym) {
			for range sym {
				l.next()
			}

			return Token{Kind: KindSymbol, Text: sym, Pos: pos}, nil
		}
	}

	r, _ := l.peek()

	return Token{}, ErrLex.
		Wrap(fmt.Errorf("unrecognized character %q", r)).
		At(pos).
		With(slog.String("char", string(r)))
}

// pos returns the position of the next unread rune.
func (l *Lexer) pos() Pos {
	return Pos{Line: l.line, Col: l.col}
}

// peek returns the next unread rune without consuming it.
func (l *Lexer) peek() (rune, bool) {
	return l.peekAt(0)
}

// peekAt returns the rune n runes past the next unread rune.
func (l *Lexer) peekAt(n int) (rune, bool) {
	cur := l.cur

	for {
		if cur >= len(l.src) {
			return 0, false
		}

		r, size := utf8.DecodeRuneInString(l.src[cur:])
		if n == 0 {
			return r, true
		}

		cur += size
		n--
	}
}

// next consumes one rune and advances the line/column bookkeeping.
func (l *Lexer) next() {
	r, size := utf8.DecodeRuneInString(l.src[l.cur:])
	l.cur += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
