package lang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Pinkwolf12321/lovelace-language/log"
)

// Interp holds the state shared by every unit of one running program:
// the function table, the output sink, the scheduler, and the main
// unit's root scope. A REPL session keeps one Interp alive across
// inputs so bindings and definitions persist.
type Interp struct {
	root  *Env
	out   *sink
	sched *scheduler
	log   log.Logger

	// funcs is the per-run function table. Definitions may appear after
	// their call sites in source order; calls resolve at evaluation
	// time, and the last definition of a name wins.
	fmu   sync.RWMutex
	funcs map[string]*FuncDef
}

func newInterp(out *sink, logger log.Logger) *Interp {
	return &Interp{
		root:  NewEnv(),
		out:   out,
		sched: &scheduler{log: logger},
		log:   logger,
		funcs: make(map[string]*FuncDef),
	}
}

// define records a function definition, replacing any previous one of
// the same name.
func (in *Interp) define(def *FuncDef) {
	in.fmu.Lock()
	defer in.fmu.Unlock()

	in.funcs[def.Name] = def
}

// lookup resolves a function by name.
func (in *Interp) lookup(name string) (*FuncDef, bool) {
	in.fmu.RLock()
	defer in.fmu.RUnlock()

	def, ok := in.funcs[name]

	return def, ok
}

// FuncNames returns the names of all defined functions, in no
// particular order. The REPL uses this list for completion.
func (in *Interp) FuncNames() []string {
	in.fmu.RLock()
	defer in.fmu.RUnlock()

	names := make([]string, 0, len(in.funcs))
	for name := range in.funcs {
		names = append(names, name)
	}

	return names
}

// returnSignal unwinds evaluation out of a function body. It travels
// the error path and is absorbed by the call site; the parser
// guarantees it can never escape a unit.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return" }

// unit is one thread of evaluation: the main unit or a spawned one.
// Each unit has its own root scope; functions called by the unit close
// over that root.
type unit struct {
	in   *Interp
	id   int64
	root *Env
}

// execBlock runs stmts in order, stopping at the first error.
func (u *unit) execBlock(ctx context.Context, env *Env, stmts []Stmt) error {
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := u.execStmt(ctx, env, stmt); err != nil {
			return err
		}
	}

	return nil
}

func (u *unit) execStmt(ctx context.Context, env *Env, stmt Stmt) error {
	switch s := stmt.(type) {
	case *VarDecl:
		value, err := u.eval(ctx, env, s.Init)
		if err != nil {
			return err
		}

		env.Define(s.Name, value)

		return nil

	case *Assign:
		value, err := u.eval(ctx, env, s.Value)
		if err != nil {
			return err
		}

		if !env.Set(s.Name, value) {
			return ErrName.
				Wrap(fmt.Errorf("assignment to undeclared variable %q", s.Name)).
				At(s.Pos()).
				With(slog.String("name", s.Name))
		}

		return nil

	case *DeclareArray:
		size, err := u.evalInt(ctx, env, s.Size, "array size", ErrType)
		if err != nil {
			return err
		}

		if size < 0 {
			return ErrType.
				Wrap(fmt.Errorf("array size must be non-negative, got %d", size)).
				At(s.Size.Pos())
		}

		env.Define(s.Name, ArrayOf(NewArray(size)))

		return nil

	case *ArraySet:
		arr, err := u.resolveArray(env, s.Name, s.Pos())
		if err != nil {
			return err
		}

		index, err := u.evalInt(ctx, env, s.Index, "array index", ErrIndex)
		if err != nil {
			return err
		}

		value, err := u.eval(ctx, env, s.Value)
		if err != nil {
			return err
		}

		if !arr.Set(index, value) {
			return ErrIndex.
				Wrap(fmt.Errorf("index %d out of range for array %q of size %d",
					index, s.Name, arr.Len())).
				At(s.Index.Pos()).
				With(
					slog.Int("index", index),
					slog.Int("size", arr.Len()),
				)
		}

		return nil

	case *Output:
		value, err := u.eval(ctx, env, s.Value)
		if err != nil {
			return err
		}

		u.in.out.writeLine(value.String())

		return nil

	case *Sleep:
		return u.sleep(ctx, env, s)

	case *If:
		cond, err := u.evalBool(ctx, env, s.Cond, "condition")
		if err != nil {
			return err
		}

		if cond {
			return u.execBlock(ctx, env.Child(), s.Then)
		}

		return u.execBlock(ctx, env.Child(), s.Else)

	case *Loop:
		count, err := u.evalInt(ctx, env, s.Count, "loop count", ErrType)
		if err != nil {
			return err
		}

		if count < 0 {
			return ErrType.
				Wrap(fmt.Errorf("loop count must be non-negative, got %d", count)).
				At(s.Count.Pos())
		}

		// Each iteration gets a fresh scope: bindings made inside the
		// body do not survive into the next iteration.
		for range count {
			if err := u.execBlock(ctx, env.Child(), s.Body); err != nil {
				return err
			}
		}

		return nil

	case *LoopEach:
		arr, err := u.resolveArray(env, s.Name, s.Pos())
		if err != nil {
			return err
		}

		// Iterate a snapshot of the elements: writes to the array during
		// the loop (from the body or another unit) do not change which
		// values are visited.
		for _, elem := range arr.Elems() {
			scope := env.Child()
			scope.Define("item", elem)

			if err := u.execBlock(ctx, scope, s.Body); err != nil {
				return err
			}
		}

		return nil

	case *FuncDef:
		u.in.define(s)

		return nil

	case *Call:
		_, err := u.call(ctx, env, s.Name, s.Args, s.Pos())

		return err

	case *Spawn:
		u.spawn(ctx, env, s)

		return nil

	case *Return:
		value := Nil

		if s.Value != nil {
			var err error

			value, err = u.eval(ctx, env, s.Value)
			if err != nil {
				return err
			}
		}

		return returnSignal{value: value}
	}

	return fmt.Errorf("unhandled statement %T", stmt)
}

// sleep suspends the unit for the evaluated number of seconds. Only
// this unit blocks; context cancellation aborts the wait.
func (u *unit) sleep(ctx context.Context, env *Env, s *Sleep) error {
	value, err := u.eval(ctx, env, s.Duration)
	if err != nil {
		return err
	}

	if value.Kind() != ValueNumber || value.Num() < 0 {
		return ErrType.
			Wrap(fmt.Errorf("sleep duration must be a non-negative number, got %s",
				value.Kind())).
			At(s.Duration.Pos())
	}

	dur := time.Duration(value.Num() * float64(time.Second))
	if dur <= 0 {
		return nil
	}

	u.in.log.TraceContext(ctx, "unit sleeping",
		slog.Int64("unit", u.id),
		slog.Duration("duration", dur),
	)

	select {
	case <-time.After(dur):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// spawn snapshots the current scope chain and launches the body as a
// new unit. Scalars are copied; arrays remain shared. The spawning
// unit continues immediately and never observes the new unit's error,
// which is reported to the sink instead.
func (u *unit) spawn(ctx context.Context, env *Env, s *Spawn) {
	snap := env.Snapshot()

	u.in.sched.spawn(ctx, func(ctx context.Context, id int64) error {
		child := &unit{in: u.in, id: id, root: snap}

		err := child.execBlock(ctx, snap, s.Body)
		if err != nil {
			u.in.out.writeLine(fmt.Sprintf("[unit %d] error: %s", id, err))
		}

		return err
	})
}

// call invokes a named function with evaluated arguments. Parameters
// bind in a fresh scope nested directly in the unit's root scope, so
// functions see global bindings but never their caller's locals.
func (u *unit) call(
	ctx context.Context, env *Env, name string, args []Expr, pos Pos,
) (Value, error) {
	def, ok := u.in.lookup(name)
	if !ok {
		return Nil, ErrName.
			Wrap(fmt.Errorf("call to undefined function %q", name)).
			At(pos).
			With(slog.String("name", name))
	}

	if len(args) != len(def.Params) {
		return Nil, ErrArity.
			Wrap(fmt.Errorf("function %q takes %d argument(s), got %d",
				name, len(def.Params), len(args))).
			At(pos).
			With(
				slog.Int("want", len(def.Params)),
				slog.Int("got", len(args)),
			)
	}

	// Arguments evaluate in the caller's scope, before the callee's
	// scope exists.
	values := make([]Value, len(args))

	for i, arg := range args {
		value, err := u.eval(ctx, env, arg)
		if err != nil {
			return Nil, err
		}

		values[i] = value
	}

	scope := u.root.Child()
	for i, param := range def.Params {
		scope.Define(param, values[i])
	}

	err := u.execBlock(ctx, scope, def.Body)

	var ret returnSignal
	if errors.As(err, &ret) {
		return ret.value, nil
	}

	if err != nil {
		return Nil, err
	}

	return Nil, nil
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

func (u *unit) eval(ctx context.Context, env *Env, expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *Literal:
		return e.Value, nil

	case *VarRef:
		value, ok := env.Get(e.Name)
		if !ok {
			return Nil, ErrName.
				Wrap(fmt.Errorf("undefined variable %q", e.Name)).
				At(e.Pos()).
				With(slog.String("name", e.Name))
		}

		return value, nil

	case *ArrayGet:
		arr, err := u.resolveArray(env, e.Name, e.Pos())
		if err != nil {
			return Nil, err
		}

		index, err := u.evalInt(ctx, env, e.Index, "array index", ErrIndex)
		if err != nil {
			return Nil, err
		}

		value, ok := arr.Get(index)
		if !ok {
			return Nil, ErrIndex.
				Wrap(fmt.Errorf("index %d out of range for array %q of size %d",
					index, e.Name, arr.Len())).
				At(e.Index.Pos()).
				With(
					slog.Int("index", index),
					slog.Int("size", arr.Len()),
				)
		}

		return value, nil

	case *CallExpr:
		return u.call(ctx, env, e.Name, e.Args, e.Pos())

	case *Unary:
		return u.evalUnary(ctx, env, e)

	case *Binary:
		return u.evalBinary(ctx, env, e)
	}

	return Nil, fmt.Errorf("unhandled expression %T", expr)
}

func (u *unit) evalUnary(ctx context.Context, env *Env, e *Unary) (Value, error) {
	operand, err := u.eval(ctx, env, e.Operand)
	if err != nil {
		return Nil, err
	}

	switch e.Op {
	case "-":
		if operand.Kind() != ValueNumber {
			return Nil, ErrType.
				Wrap(fmt.Errorf("operator - requires a number, got %s",
					operand.Kind())).
				At(e.Pos())
		}

		return Number(-operand.Num()), nil

	case "not":
		if operand.Kind() != ValueBool {
			return Nil, ErrType.
				Wrap(fmt.Errorf("operator not requires a bool, got %s",
					operand.Kind())).
				At(e.Pos())
		}

		return Bool(!operand.IsTrue()), nil
	}

	return Nil, fmt.Errorf("unhandled unary operator %q", e.Op)
}

func (u *unit) evalBinary(ctx context.Context, env *Env, e *Binary) (Value, error) {
	// Logical operators short-circuit; everything else is strict in
	// both operands.
	if e.Op == "and" || e.Op == "or" {
		return u.evalLogical(ctx, env, e)
	}

	left, err := u.eval(ctx, env, e.Left)
	if err != nil {
		return Nil, err
	}

	right, err := u.eval(ctx, env, e.Right)
	if err != nil {
		return Nil, err
	}

	switch e.Op {
	case "+":
		// Number + Number or String + String. No implicit coercion.
		switch {
		case left.Kind() == ValueNumber && right.Kind() == ValueNumber:
			return Number(left.Num() + right.Num()), nil

		case left.Kind() == ValueString && right.Kind() == ValueString:
			return String(left.Str() + right.Str()), nil
		}

		return Nil, u.typeMismatch(e, left, right)

	case "-", "*", "/":
		if left.Kind() != ValueNumber || right.Kind() != ValueNumber {
			return Nil, u.typeMismatch(e, left, right)
		}

		switch e.Op {
		case "-":
			return Number(left.Num() - right.Num()), nil
		case "*":
			return Number(left.Num() * right.Num()), nil
		}

		if right.Num() == 0 {
			return Nil, ErrArithmetic.
				Wrap(fmt.Errorf("division by zero")).
				At(e.Pos())
		}

		return Number(left.Num() / right.Num()), nil

	case "==", "!=":
		if left.Kind() != right.Kind() {
			return Nil, u.typeMismatch(e, left, right)
		}

		eq := left.Equal(right)
		if e.Op == "!=" {
			eq = !eq
		}

		return Bool(eq), nil

	case "<", ">", "<=", ">=":
		return u.evalOrdering(e, left, right)
	}

	return Nil, fmt.Errorf("unhandled binary operator %q", e.Op)
}

// evalOrdering compares two numbers or two strings.
func (u *unit) evalOrdering(e *Binary, left, right Value) (Value, error) {
	var less, equal bool

	switch {
	case left.Kind() == ValueNumber && right.Kind() == ValueNumber:
		less = left.Num() < right.Num()
		equal = left.Num() == right.Num()

	case left.Kind() == ValueString && right.Kind() == ValueString:
		less = left.Str() < right.Str()
		equal = left.Str() == right.Str()

	default:
		return Nil, u.typeMismatch(e, left, right)
	}

	switch e.Op {
	case "<":
		return Bool(less), nil
	case ">":
		return Bool(!less && !equal), nil
	case "<=":
		return Bool(less || equal), nil
	default: // ">="
		return Bool(!less), nil
	}
}

func (u *unit) evalLogical(ctx context.Context, env *Env, e *Binary) (Value, error) {
	left, err := u.evalBool(ctx, env, e.Left, "operand of "+e.Op)
	if err != nil {
		return Nil, err
	}

	if (e.Op == "and" && !left) || (e.Op == "or" && left) {
		return Bool(left), nil
	}

	right, err := u.evalBool(ctx, env, e.Right, "operand of "+e.Op)
	if err != nil {
		return Nil, err
	}

	return Bool(right), nil
}

// evalBool evaluates expr and requires a Bool result. There is no
// truthiness: any other kind is a type error.
func (u *unit) evalBool(
	ctx context.Context, env *Env, expr Expr, what string,
) (bool, error) {
	value, err := u.eval(ctx, env, expr)
	if err != nil {
		return false, err
	}

	if value.Kind() != ValueBool {
		return false, ErrType.
			Wrap(fmt.Errorf("%s must be a bool, got %s", what, value.Kind())).
			At(expr.Pos())
	}

	return value.IsTrue(), nil
}

// evalInt evaluates expr and requires an integral Number result,
// returned as an int. Non-numbers are type errors; a fractional number
// raises nonInt, which distinguishes index position (index error) from
// counts and sizes (type error).
func (u *unit) evalInt(
	ctx context.Context, env *Env, expr Expr, what string, nonInt *Error,
) (int, error) {
	value, err := u.eval(ctx, env, expr)
	if err != nil {
		return 0, err
	}

	if value.Kind() != ValueNumber {
		return 0, ErrType.
			Wrap(fmt.Errorf("%s must be a number, got %s", what, value.Kind())).
			At(expr.Pos())
	}

	if !value.IsInt() {
		return 0, nonInt.
			Wrap(fmt.Errorf("%s must be an integer, got %s", what, value)).
			At(expr.Pos())
	}

	return int(value.Num()), nil
}

// resolveArray resolves name to an array binding.
func (u *unit) resolveArray(env *Env, name string, pos Pos) (*Array, error) {
	value, ok := env.Get(name)
	if !ok {
		return nil, ErrName.
			Wrap(fmt.Errorf("undefined variable %q", name)).
			At(pos).
			With(slog.String("name", name))
	}

	if value.Kind() != ValueArray {
		return nil, ErrType.
			Wrap(fmt.Errorf("%q is not an array, got %s", name, value.Kind())).
			At(pos)
	}

	return value.Arr(), nil
}

func (u *unit) typeMismatch(e *Binary, left, right Value) error {
	return ErrType.
		Wrap(fmt.Errorf("operator %s cannot combine %s and %s",
			e.Op, left.Kind(), right.Kind())).
		At(e.Pos()).
		With(
			slog.String("left", left.Kind().String()),
			slog.String("right", right.Kind().String()),
		)
}
