package lang

//go:generate go tool stringer --linecomment --type ValueKind --output valuekind_string.go

import (
	"math"
	"strconv"
	"sync"
)

// ValueKind classifies a runtime value.
type ValueKind int

const (
	ValueNil    ValueKind = iota // nil
	ValueNumber                  // number
	ValueString                  // string
	ValueBool                    // bool
	ValueArray                   // array
)

// Value is a runtime value: Number, String, Bool, Array, or Nil.
//
// Scalar values are immutable. Arrays are reference values: copying a
// Value copies the pointer, and all copies observe element writes.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	boo  bool
	arr  *Array
}

// Nil is the sole value of the Nil kind.
var Nil = Value{kind: ValueNil}

// Number returns a Number value.
func Number(f float64) Value { return Value{kind: ValueNumber, num: f} }

// String returns a String value.
func String(s string) Value { return Value{kind: ValueString, str: s} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: ValueBool, boo: b} }

// ArrayOf returns an Array value referencing a.
func ArrayOf(a *Array) Value { return Value{kind: ValueArray, arr: a} }

// Kind returns the value's kind.
func (v Value) Kind() ValueKind { return v.kind }

// Num returns the Number payload. It is meaningful only when Kind is
// [ValueNumber].
func (v Value) Num() float64 { return v.num }

// Str returns the String payload. It is meaningful only when Kind is
// [ValueString].
func (v Value) Str() string { return v.str }

// IsTrue returns the Bool payload. It is meaningful only when Kind is
// [ValueBool]; conditions must check the kind first (no truthiness).
func (v Value) IsTrue() bool { return v.boo }

// Arr returns the Array payload, or nil when Kind is not [ValueArray].
func (v Value) Arr() *Array { return v.arr }

// IsInt reports whether the value is a Number with an integral payload.
func (v Value) IsInt() bool {
	return v.kind == ValueNumber && v.num == math.Trunc(v.num) &&
		!math.IsInf(v.num, 0)
}

// Equal reports whether two values are equal. Values of different kinds
// are never equal. Arrays compare by identity.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case ValueNumber:
		return v.num == o.num
	case ValueString:
		return v.str == o.str
	case ValueBool:
		return v.boo == o.boo
	case ValueArray:
		return v.arr == o.arr
	default:
		return true // both Nil
	}
}

// String renders the value for output. Integral Numbers render without
// a decimal point, matching the way counters and indices are written in
// source.
func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		if v.IsInt() {
			return strconv.FormatFloat(v.num, 'f', 0, 64)
		}

		return strconv.FormatFloat(v.num, 'g', -1, 64)

	case ValueString:
		return v.str

	case ValueBool:
		return strconv.FormatBool(v.boo)

	case ValueArray:
		return v.arr.String()

	default:
		return "nil"
	}
}

// Array is a fixed-size mutable sequence of values. Size is set at
// creation and never changes.
//
// Individual element reads and writes are atomic with respect to each
// other. There is no atomicity across elements: concurrent units that
// write disjoint indexes interleave freely, and the last write to an
// index wins.
type Array struct {
	mu    sync.RWMutex
	elems []Value
}

// NewArray returns an array of the given size with every element Nil.
func NewArray(size int) *Array {
	elems := make([]Value, size)
	for i := range elems {
		elems[i] = Nil
	}

	return &Array{elems: elems}
}

// Len returns the fixed size of the array.
func (a *Array) Len() int { return len(a.elems) }

// Get reads the element at index i. The second result is false when i
// is out of range.
func (a *Array) Get(i int) (Value, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if i < 0 || i >= len(a.elems) {
		return Nil, false
	}

	return a.elems[i], true
}

// Set writes the element at index i. It reports false when i is out of
// range.
func (a *Array) Set(i int, v Value) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if i < 0 || i >= len(a.elems) {
		return false
	}

	a.elems[i] = v

	return true
}

// Elems returns a copy of the current elements. The copy is taken
// atomically, so a concurrent writer cannot produce a torn view, but
// later writes to the array are not reflected in it.
func (a *Array) Elems() []Value {
	a.mu.RLock()
	defer a.mu.RUnlock()

	elems := make([]Value, len(a.elems))
	copy(elems, a.elems)

	return elems
}

// String renders the array as a bracketed element list.
func (a *Array) String() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := "["
	for i, e := range a.elems {
		if i > 0 {
			s += ", "
		}

		s += e.String()
	}

	return s + "]"
}
