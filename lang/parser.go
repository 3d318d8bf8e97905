package lang

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Parser builds an AST from a token sequence by recursive descent.
//
// The grammar is line-oriented: every statement ends at a newline, and
// block statements (if, loop, func, spawn) consume statements until
// their matching end keyword. Function arity is not checked here; call
// sites are validated at evaluation time.
type Parser struct {
	tokens []Token
	cur    int

	// funcDepth counts enclosing function bodies so that a stray
	// return outside any function is rejected. Spawn bodies reset it:
	// a return inside spawn escapes no function.
	funcDepth int
}

// Parse tokenizes nothing itself; it consumes the given token sequence
// (as produced by [Tokenize]) and returns the program's statement list.
// It fails with [ErrParse] on the first syntax error.
func Parse(tokens []Token) ([]Stmt, error) {
	p := &Parser{tokens: tokens}

	stmts, err := p.stmtsUntil()
	if err != nil {
		return nil, err
	}

	return stmts, nil
}

// stmtsUntil parses statements until EOF or until one of the given
// block-closing keywords appears at statement position. The closing
// keyword is left unconsumed. When closers are given, reaching EOF
// without one is a parse error.
func (p *Parser) stmtsUntil(closers ...string) ([]Stmt, error) {
	stmts := []Stmt{}

	for {
		p.skipNewlines()

		tok := p.peek()

		if tok.Kind == KindEOF {
			if len(closers) > 0 {
				return nil, ErrParse.
					Wrap(fmt.Errorf("missing %q to close block", "end")).
					At(tok.Pos)
			}

			return stmts, nil
		}

		if tok.Kind == KindKeyword {
			for _, close := range closers {
				if tok.Text == close {
					return stmts, nil
				}
			}
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}
}

// statement parses one statement, including its terminating newline.
func (p *Parser) statement() (Stmt, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindKeyword:
		switch tok.Text {
		case "var":
			return p.varDecl()
		case "array":
			return p.arrayDecl()
		case "out":
			return p.outputStmt()
		case "sleep":
			return p.sleepStmt()
		case "if":
			return p.ifStmt()
		case "loop":
			return p.loopStmt()
		case "func":
			return p.funcDef()
		case "spawn":
			return p.spawnStmt()
		case "return":
			return p.returnStmt()
		}

		return nil, p.unexpected(tok, "statement")

	case KindIdent:
		return p.identStmt()

	default:
		return nil, p.unexpected(tok, "statement")
	}
}

// varDecl parses `var NAME (expr)`.
func (p *Parser) varDecl() (Stmt, error) {
	pos := p.next().Pos // var

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	init, err := p.parenExpr()
	if err != nil {
		return nil, err
	}

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return &VarDecl{position: position{pos}, Name: name, Init: init}, nil
}

// arrayDecl parses `array NAME (sizeExpr)`.
func (p *Parser) arrayDecl() (Stmt, error) {
	pos := p.next().Pos // array

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	size, err := p.parenExpr()
	if err != nil {
		return nil, err
	}

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return &DeclareArray{position: position{pos}, Name: name, Size: size}, nil
}

// outputStmt parses `out expr`.
func (p *Parser) outputStmt() (Stmt, error) {
	pos := p.next().Pos // out

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return &Output{position: position{pos}, Value: value}, nil
}

// sleepStmt parses `sleep (expr)`.
func (p *Parser) sleepStmt() (Stmt, error) {
	pos := p.next().Pos // sleep

	dur, err := p.parenExpr()
	if err != nil {
		return nil, err
	}

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return &Sleep{position: position{pos}, Duration: dur}, nil
}

// ifStmt parses an if statement with optional elif chains and else
// branch. Each elif becomes a nested If in the Else slot of its
// predecessor, so evaluation only ever sees two-way branches.
func (p *Parser) ifStmt() (Stmt, error) {
	pos := p.next().Pos // if or elif

	cond, err := p.parenExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(":"); err != nil {
		return nil, err
	}

	then, err := p.stmtsUntil("elif", "else", "end")
	if err != nil {
		return nil, err
	}

	node := &If{position: position{pos}, Cond: cond, Then: then}

	switch tok := p.peek(); tok.Text {
	case "elif":
		tail, err := p.ifStmt() // consumes through its own end
		if err != nil {
			return nil, err
		}

		node.Else = []Stmt{tail}

		return node, nil

	case "else":
		p.next()

		if err := p.expectSymbol(":"); err != nil {
			return nil, err
		}

		node.Else, err = p.stmtsUntil("end")
		if err != nil {
			return nil, err
		}
	}

	p.next() // end

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return node, nil
}

// loopStmt parses both loop forms:
//
//	loop (countExpr): ... end
//	loop arrName: ... end
//
// The second form iterates an array, binding each element to "item" in
// the iteration's scope.
func (p *Parser) loopStmt() (Stmt, error) {
	pos := p.next().Pos // loop

	var (
		count Expr
		name  string
		err   error
	)

	if p.peek().Is(KindSymbol, "(") {
		count, err = p.parenExpr()
	} else {
		name, err = p.expectIdent()
	}

	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(":"); err != nil {
		return nil, err
	}

	body, err := p.stmtsUntil("end")
	if err != nil {
		return nil, err
	}

	p.next() // end

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	if count != nil {
		return &Loop{position: position{pos}, Count: count, Body: body}, nil
	}

	return &LoopEach{position: position{pos}, Name: name, Body: body}, nil
}

// funcDef parses both function forms:
//
//	func NAME(params): ... end
//	func NAME(params) => expr
//
// The expression-bodied form desugars to a single return statement.
func (p *Parser) funcDef() (Stmt, error) {
	pos := p.next().Pos // func

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	params := []string{}

	if !p.peek().Is(KindSymbol, ")") {
		for {
			param, err := p.expectIdent()
			if err != nil {
				return nil, err
			}

			params = append(params, param)

			if !p.peek().Is(KindSymbol, ",") {
				break
			}

			p.next()
		}
	}

	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	def := &FuncDef{position: position{pos}, Name: name, Params: params}

	if p.peek().Is(KindSymbol, "=>") {
		at := p.next().Pos

		value, err := p.expression()
		if err != nil {
			return nil, err
		}

		if err := p.endOfStatement(); err != nil {
			return nil, err
		}

		def.Body = []Stmt{&Return{position: position{at}, Value: value}}

		return def, nil
	}

	if err := p.expectSymbol(":"); err != nil {
		return nil, err
	}

	p.funcDepth++

	def.Body, err = p.stmtsUntil("end")

	p.funcDepth--

	if err != nil {
		return nil, err
	}

	p.next() // end

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return def, nil
}

// spawnStmt parses `spawn: ... end`.
func (p *Parser) spawnStmt() (Stmt, error) {
	pos := p.next().Pos // spawn

	if err := p.expectSymbol(":"); err != nil {
		return nil, err
	}

	// The body runs as its own unit: any return inside it is stray
	// even when the spawn appears inside a function.
	depth := p.funcDepth
	p.funcDepth = 0

	body, err := p.stmtsUntil("end")

	p.funcDepth = depth

	if err != nil {
		return nil, err
	}

	p.next() // end

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return &Spawn{position: position{pos}, Body: body}, nil
}

// returnStmt parses `return [expr]`, rejecting it outside a function
// body.
func (p *Parser) returnStmt() (Stmt, error) {
	tok := p.next() // return

	if p.funcDepth == 0 {
		return nil, ErrParse.
			Wrap(fmt.Errorf("return outside function body")).
			At(tok.Pos)
	}

	node := &Return{position: position{tok.Pos}}

	if !p.atStatementEnd() {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}

		node.Value = value
	}

	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	return node, nil
}

// identStmt parses the statements that begin with an identifier:
// assignment, array element assignment, and call-for-effect.
func (p *Parser) identStmt() (Stmt, error) {
	tok := p.next()
	pos := tok.Pos

	switch {
	case p.peek().Is(KindSymbol, "="):
		p.next()

		value, err := p.expression()
		if err != nil {
			return nil, err
		}

		if err := p.endOfStatement(); err != nil {
			return nil, err
		}

		return &Assign{position: position{pos}, Name: tok.Text, Value: value}, nil

	case p.peek().Is(KindSymbol, "["):
		p.next()

		index, err := p.expression()
		if err != nil {
			return nil, err
		}

		if err := p.expectSymbol("]"); err != nil {
			return nil, err
		}

		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}

		value, err := p.expression()
		if err != nil {
			return nil, err
		}

		if err := p.endOfStatement(); err != nil {
			return nil, err
		}

		return &ArraySet{
			position: position{pos},
			Name:     tok.Text,
			Index:    index,
			Value:    value,
		}, nil

	case p.peek().Is(KindSymbol, "("):
		args, err := p.callArgs()
		if err != nil {
			return nil, err
		}

		if err := p.endOfStatement(); err != nil {
			return nil, err
		}

		return &Call{position: position{pos}, Name: tok.Text, Args: args}, nil
	}

	return nil, p.unexpected(p.peek(), "'=', '[', or '('")
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// expression parses with precedence, loosest first:
//
//	or < and < comparison < additive < multiplicative < unary
//
// All binary operators are left-associative.
func (p *Parser) expression() (Expr, error) {
	return p.orExpr()
}

func (p *Parser) orExpr() (Expr, error) {
	return p.binary(p.andExpr, KindKeyword, "or")
}

func (p *Parser) andExpr() (Expr, error) {
	return p.binary(p.cmpExpr, KindKeyword, "and")
}

func (p *Parser) cmpExpr() (Expr, error) {
	return p.binary(p.addExpr, KindSymbol, "==", "!=", "<", ">", "<=", ">=")
}

func (p *Parser) addExpr() (Expr, error) {
	return p.binary(p.mulExpr, KindSymbol, "+", "-")
}

func (p *Parser) mulExpr() (Expr, error) {
	return p.binary(p.unaryExpr, KindSymbol, "*", "/")
}

// binary parses a left-associative run of operators at one precedence
// level, with next parsing the operands.
func (p *Parser) binary(
	next func() (Expr, error), kind Kind, ops ...string,
) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()

		matched := false

		for _, op := range ops {
			if tok.Is(kind, op) {
				matched = true

				break
			}
		}

		if !matched {
			return left, nil
		}

		p.next()

		right, err := next()
		if err != nil {
			return nil, err
		}

		left = &Binary{
			position: position{tok.Pos},
			Op:       tok.Text,
			Left:     left,
			Right:    right,
		}
	}
}

func (p *Parser) unaryExpr() (Expr, error) {
	tok := p.peek()

	if tok.Is(KindSymbol, "-") || tok.Is(KindKeyword, "not") {
		p.next()

		operand, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}

		return &Unary{
			position: position{tok.Pos},
			Op:       tok.Text,
			Operand:  operand,
		}, nil
	}

	return p.primaryExpr()
}

func (p *Parser) primaryExpr() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindNumber:
		p.next()

		num, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, ErrParse.
				Wrap(fmt.Errorf("malformed number literal %q", tok.Text)).
				At(tok.Pos)
		}

		return &Literal{position: position{tok.Pos}, Value: Number(num)}, nil

	case KindString:
		p.next()

		return &Literal{position: position{tok.Pos}, Value: String(tok.Text)}, nil

	case KindKeyword:
		switch tok.Text {
		case "true", "false":
			p.next()

			return &Literal{
				position: position{tok.Pos},
				Value:    Bool(tok.Text == "true"),
			}, nil
		}

		return nil, p.unexpected(tok, "expression")

	case KindIdent:
		p.next()

		switch {
		case p.peek().Is(KindSymbol, "("):
			args, err := p.callArgs()
			if err != nil {
				return nil, err
			}

			return &CallExpr{
				position: position{tok.Pos},
				Name:     tok.Text,
				Args:     args,
			}, nil

		case p.peek().Is(KindSymbol, "["):
			p.next()

			index, err := p.expression()
			if err != nil {
				return nil, err
			}

			if err := p.expectSymbol("]"); err != nil {
				return nil, err
			}

			return &ArrayGet{
				position: position{tok.Pos},
				Name:     tok.Text,
				Index:    index,
			}, nil
		}

		return &VarRef{position: position{tok.Pos}, Name: tok.Text}, nil

	case KindSymbol:
		if tok.Text == "(" {
			p.next()

			inner, err := p.expression()
			if err != nil {
				return nil, err
			}

			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}

			return inner, nil
		}
	}

	return nil, p.unexpected(tok, "expression")
}

// callArgs parses a parenthesized comma-separated argument list. The
// opening parenthesis has not been consumed yet.
func (p *Parser) callArgs() ([]Expr, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	args := []Expr{}

	if !p.peek().Is(KindSymbol, ")") {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if !p.peek().Is(KindSymbol, ",") {
				break
			}

			p.next()
		}
	}

	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	return args, nil
}

// parenExpr parses a required parenthesized expression.
func (p *Parser) parenExpr() (Expr, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	inner, err := p.expression()
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	return inner, nil
}

// ---------------------------------------------------------------------
// Token plumbing
// ---------------------------------------------------------------------

// peek returns the current token without consuming it. Past the end of
// input it returns the final EOF token.
func (p *Parser) peek() Token {
	if p.cur >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.cur]
}

// next consumes and returns the current token.
func (p *Parser) next() Token {
	tok := p.peek()

	if p.cur < len(p.tokens) {
		p.cur++
	}

	return tok
}

// skipNewlines consumes any run of statement terminators.
func (p *Parser) skipNewlines() {
	for p.peek().IsNewline() {
		p.next()
	}
}

// atStatementEnd reports whether the current token terminates a
// statement.
func (p *Parser) atStatementEnd() bool {
	tok := p.peek()

	return tok.IsNewline() || tok.Kind == KindEOF
}

// endOfStatement consumes the statement terminator, failing when the
// statement is followed by trailing tokens on the same line.
func (p *Parser) endOfStatement() error {
	if !p.atStatementEnd() {
		return p.unexpected(p.peek(), "end of statement")
	}

	if p.peek().IsNewline() {
		p.next()
	}

	return nil
}

// expectSymbol consumes the given symbol or fails.
func (p *Parser) expectSymbol(text string) error {
	tok := p.peek()
	if !tok.Is(KindSymbol, text) {
		return p.unexpected(tok, strconv.Quote(text))
	}

	p.next()

	return nil
}

// expectIdent consumes an identifier and returns its text.
func (p *Parser) expectIdent() (string, error) {
	tok := p.peek()
	if tok.Kind != KindIdent {
		return "", p.unexpected(tok, "identifier")
	}

	p.next()

	return tok.Text, nil
}

// unexpected builds the parse error for an unexpected token.
func (p *Parser) unexpected(tok Token, want string) error {
	found := tok.Text

	switch {
	case tok.Kind == KindEOF:
		found = "end of input"
	case tok.IsNewline():
		found = "end of line"
	}

	return ErrParse.
		Wrap(fmt.Errorf("expected %s, found %q", want, found)).
		At(tok.Pos).
		With(
			slog.String("kind", tok.Kind.String()),
			slog.String("want", want),
		)
}
