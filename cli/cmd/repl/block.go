package repl

import "github.com/Pinkwolf12321/lovelace-language/lang"

// blockOpeners are the keywords that begin a block terminated by "end".
// "elif" and "else" continue an existing block and do not nest.
var blockOpeners = map[string]bool{
	"if":    true,
	"loop":  true,
	"func":  true,
	"spawn": true,
}

// openBlocks returns the number of blocks opened but not yet closed in the
// given source. A positive count means the program is incomplete and the
// REPL should keep buffering lines. A source that does not tokenize counts
// as complete so the error surfaces on submission.
func openBlocks(source string) int {
	tokens, err := lang.Tokenize(source)
	if err != nil {
		return 0
	}

	depth := 0

	for _, tok := range tokens {
		switch {
		case tok.Is(lang.KindKeyword, "end"):
			depth--
		case tok.Is(lang.KindSymbol, "=>"):
			// An expression-bodied func needs no "end".
			depth--
		case tok.Kind == lang.KindKeyword && blockOpeners[tok.Text]:
			depth++
		}
	}

	if depth < 0 {
		// Stray "end" is a parse error; let the parser report it.
		return 0
	}

	return depth
}
