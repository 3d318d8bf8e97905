package lang

// Node is the interface shared by all AST nodes. Nodes are immutable
// after parsing; evaluation never mutates the tree.
type Node interface {
	// Pos returns the source position of the node's first token.
	Pos() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// position embeds a source position into a node.
type position struct {
	At Pos
}

func (p position) Pos() Pos { return p.At }

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// VarDecl declares a new variable in the current scope:
//
//	var name (expr)
type VarDecl struct {
	position
	Name string
	Init Expr
}

// Assign rebinds an existing variable, searching the scope chain
// outward:
//
//	name = expr
type Assign struct {
	position
	Name  string
	Value Expr
}

// DeclareArray declares a fixed-size array filled with Nil:
//
//	array name (sizeExpr)
type DeclareArray struct {
	position
	Name string
	Size Expr
}

// ArraySet writes one element of an array:
//
//	name[idxExpr] = expr
type ArraySet struct {
	position
	Name  string
	Index Expr
	Value Expr
}

// Output writes one line to the output sink:
//
//	out expr
type Output struct {
	position
	Value Expr
}

// Sleep suspends the current unit for a number of seconds:
//
//	sleep (expr)
type Sleep struct {
	position
	Duration Expr
}

// If is a conditional with an optional else branch. Chained elif
// clauses are represented as a nested If in Else.
type If struct {
	position
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// Loop repeats its body a fixed number of times:
//
//	loop (countExpr): ... end
type Loop struct {
	position
	Count Expr
	Body  []Stmt
}

// LoopEach runs its body once per element of a named array, binding the
// current element to "item" in the iteration's scope:
//
//	loop arrName: ... end
type LoopEach struct {
	position
	Name string
	Body []Stmt
}

// FuncDef defines (or redefines) a named function. The expression-bodied
// form `func name(params) => expr` parses with Body holding a single
// Return statement.
type FuncDef struct {
	position
	Name   string
	Params []string
	Body   []Stmt
}

// Call invokes a function for its side effects, discarding the result:
//
//	name(args)
type Call struct {
	position
	Name string
	Args []Expr
}

// Spawn launches its body as a concurrent unit:
//
//	spawn: ... end
type Spawn struct {
	position
	Body []Stmt
}

// Return exits the enclosing function. Value is nil for a bare return.
type Return struct {
	position
	Value Expr
}

func (*VarDecl) stmt()      {}
func (*Assign) stmt()       {}
func (*DeclareArray) stmt() {}
func (*ArraySet) stmt()     {}
func (*Output) stmt()       {}
func (*Sleep) stmt()        {}
func (*If) stmt()           {}
func (*Loop) stmt()         {}
func (*LoopEach) stmt()     {}
func (*FuncDef) stmt()      {}
func (*Call) stmt()         {}
func (*Spawn) stmt()        {}
func (*Return) stmt()       {}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// Literal holds a constant Number, String, or Bool value.
type Literal struct {
	position
	Value Value
}

// VarRef reads a variable from the scope chain.
type VarRef struct {
	position
	Name string
}

// ArrayGet reads one element of an array:
//
//	name[idxExpr]
type ArrayGet struct {
	position
	Name  string
	Index Expr
}

// CallExpr invokes a function in expression position and yields its
// return value.
type CallExpr struct {
	position
	Name string
	Args []Expr
}

// Unary applies a prefix operator: "-" or "not".
type Unary struct {
	position
	Op      string
	Operand Expr
}

// Binary applies an infix operator. Logical "and" and "or" evaluate
// their right operand only when needed.
type Binary struct {
	position
	Op    string
	Left  Expr
	Right Expr
}

func (*Literal) expr()  {}
func (*VarRef) expr()   {}
func (*ArrayGet) expr() {}
func (*CallExpr) expr() {}
func (*Unary) expr()    {}
func (*Binary) expr()   {}
