package lang

// Env is one scope in a lexically nested chain of variable bindings.
//
// Define always writes the innermost scope; Get and Set walk the chain
// outward. Reading a name no scope binds is the caller's error to
// raise: there is no implicit Nil.
//
// An Env is confined to one unit and needs no locking. Sharing across
// units happens only through Snapshot, which copies the bindings.
type Env struct {
	parent *Env
	vars   map[string]Value
}

// NewEnv returns an empty root scope.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Child returns a new empty scope nested inside e. The child is
// discarded when its block exits; bindings made in it never leak out.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: make(map[string]Value)}
}

// Define binds name in this scope, shadowing any outer binding of the
// same name.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Get resolves name against this scope and its ancestors. The second
// result is false when no scope binds the name.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}

	return Nil, false
}

// Set rebinds name in the nearest scope that already binds it. It
// reports false when no scope binds the name; Set never creates a
// binding.
func (e *Env) Set(name string, v Value) bool {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v

			return true
		}
	}

	return false
}

// Snapshot flattens the scope chain into a single root scope holding a
// copy of every binding visible from e, innermost shadowing outermost.
//
// Scalar values are copied; array values share their backing store, so
// the snapshot and the original observe each other's element writes.
func (e *Env) Snapshot() *Env {
	snap := NewEnv()

	// Walk outermost-first so inner bindings overwrite outer ones.
	var chain []*Env
	for s := e; s != nil; s = s.parent {
		chain = append(chain, s)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		for name, v := range chain[i].vars {
			snap.vars[name] = v
		}
	}

	return snap
}

// Names returns every name visible from e, in no particular order.
// The REPL uses this list for completion.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})

	for s := e; s != nil; s = s.parent {
		for name := range s.vars {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	return names
}
