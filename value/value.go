/*
File    : golox/value/value.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package value defines the runtime value model for Lox: a small tagged
// union of Nil, Boolean, Number, Str, and Function (the Function variant's
// concrete type lives in the function package, which depends on value
// rather than the reverse). It also implements the operator semantics and
// coercions spec'd for arithmetic, comparison, equality, and truthiness.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akashmaji946/golox/diag"
	"github.com/akashmaji946/golox/source"
)

// Kind identifies which variant of Value a given instance is.
type Kind string

const (
	NilKind      Kind = "nil"
	BooleanKind  Kind = "bool"
	NumberKind   Kind = "number"
	StringKind   Kind = "string"
	FunctionKind Kind = "func"
)

// Value is the interface every runtime value implements.
type Value interface {
	Kind() Kind
	// String is the display form used by `print` and the REPL's debug echo.
	String() string
}

// Identifiable is implemented by values (namely functions) whose equality
// is defined by identity rather than structure.
type Identifiable interface {
	Value
	IdentityID() string
}

// Nil is the single nil value.
type Nil struct{}

func (Nil) Kind() Kind     { return NilKind }
func (Nil) String() string { return "nil" }

// Boolean wraps a Go bool.
type Boolean bool

func (Boolean) Kind() Kind       { return BooleanKind }
func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

// Number wraps an IEEE-754 double, the language's only numeric type.
type Number float64

func (Number) Kind() Kind { return NumberKind }
func (n Number) String() string {
	f := float64(n)
	// Print integral doubles without a trailing ".0" fraction, matching
	// the way a user would write the literal back.
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Str wraps an immutable Go string.
type Str struct {
	S string
}

func (Str) Kind() Kind       { return StringKind }
func (s Str) String() string { return s.S }

// Truthy implements the truthiness projection used by if/while/and/or:
// nil and false are false, true is true. Numbers and strings are not
// implicitly truthy — a non-boolean, non-nil operand to a logical
// predicate is a TypeError rather than silently coercing to true.
func Truthy(v Value, pos source.Position) (bool, error) {
	switch vv := v.(type) {
	case Nil:
		return false, nil
	case Boolean:
		return bool(vv), nil
	default:
		return false, &diag.TypeError{Pos: pos, Found: string(v.Kind()), Expected: "bool or nil"}
	}
}

// Equal implements the language's `==`/`!=` semantics: same-variant
// structural equality on the payload; functions compare by identity;
// cross-variant comparisons are always false.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Nil:
		return true
	case Boolean:
		return av == b.(Boolean)
	case Number:
		return av == b.(Number)
	case Str:
		return av.S == b.(Str).S
	default:
		ai, aok := a.(Identifiable)
		bi, bok := b.(Identifiable)
		if aok && bok {
			return ai.IdentityID() == bi.IdentityID()
		}
		return false
	}
}

// String renders a Kind the way diagnostics reference it.
func (k Kind) String() string { return string(k) }

// Add implements the `+` operator: number+number adds, string+string
// concatenates; anything else is a TypeError.
func Add(a, b Value, pos source.Position) (Value, error) {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return an + bn, nil
		}
	}
	if as, ok := a.(Str); ok {
		if bs, ok := b.(Str); ok {
			return Str{S: as.S + bs.S}, nil
		}
	}
	return nil, &diag.TypeError{Pos: pos, Found: string(a.Kind()) + "+" + string(b.Kind()), Expected: "number+number or string+string"}
}

// Subtract implements `-` between two numbers.
func Subtract(a, b Value, pos source.Position) (Value, error) {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if !aok || !bok {
		return nil, numericTypeError(a, b, pos)
	}
	return an - bn, nil
}

// Multiply implements `*`: number*number multiplies; (string,number) or
// (number,string) repeats the string, with the count truncated toward
// zero then clamped to non-negative.
func Multiply(a, b Value, pos source.Position) (Value, error) {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return an * bn, nil
		}
	}
	if s, ok := a.(Str); ok {
		if n, ok := b.(Number); ok {
			return Str{S: repeatString(s.S, n)}, nil
		}
	}
	if n, ok := a.(Number); ok {
		if s, ok := b.(Str); ok {
			return Str{S: repeatString(s.S, n)}, nil
		}
	}
	return nil, numericTypeError(a, b, pos)
}

func repeatString(s string, n Number) string {
	count := int(n) // truncation toward zero
	if count < 0 {
		count = 0
	}
	return strings.Repeat(s, count)
}

// Divide implements `/` between two numbers with IEEE division-by-zero
// semantics (±Inf or NaN, never an error).
func Divide(a, b Value, pos source.Position) (Value, error) {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if !aok || !bok {
		return nil, numericTypeError(a, b, pos)
	}
	return an / bn, nil
}

func numericTypeError(a, b Value, pos source.Position) error {
	return &diag.TypeError{Pos: pos, Found: fmt.Sprintf("%s,%s", a.Kind(), b.Kind()), Expected: "number operands"}
}

// Negate implements unary `-`, which requires a number.
func Negate(v Value, pos source.Position) (Value, error) {
	n, ok := v.(Number)
	if !ok {
		return nil, &diag.TypeError{Pos: pos, Found: string(v.Kind()), Expected: string(NumberKind)}
	}
	return -n, nil
}

// Not implements unary `!`: nil and false are falsy, every other boolean
// is truthy; non-boolean, non-nil operands are a TypeError (spec.md §9
// Open Question ii — deliberately not generalised to truthiness-based `!`
// on numbers/strings).
func Not(v Value, pos source.Position) (Value, error) {
	switch vv := v.(type) {
	case Nil:
		return Boolean(true), nil
	case Boolean:
		return Boolean(!vv), nil
	default:
		return nil, &diag.TypeError{Pos: pos, Found: string(v.Kind()), Expected: "bool or nil"}
	}
}

// Ordering is the outcome of comparing two operands for `<`, `<=`, `>`,
// `>=` (see CompareLess and its siblings). Like-typed numeric, boolean,
// and string (lexicographic) operands compare normally; any unlike
// pairing makes those comparisons return false rather than raising.
type Ordering int

const (
	Less    Ordering = -1
	Equal_  Ordering = 0
	Greater Ordering = 1
)

// CompareLess reports a < b under the language's ordering rules, returning
// false for any pairing that isn't like-typed and orderable.
func CompareLess(a, b Value) bool {
	o, ok := compare(a, b)
	return ok && o == Less
}

// CompareLessEqual reports a <= b.
func CompareLessEqual(a, b Value) bool {
	o, ok := compare(a, b)
	return ok && (o == Less || o == Equal_)
}

// CompareGreater reports a > b.
func CompareGreater(a, b Value) bool {
	o, ok := compare(a, b)
	return ok && o == Greater
}

// CompareGreaterEqual reports a >= b.
func CompareGreaterEqual(a, b Value) bool {
	o, ok := compare(a, b)
	return ok && (o == Greater || o == Equal_)
}

func compare(a, b Value) (Ordering, bool) {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return Less, true
		case av > bv:
			return Greater, true
		default:
			return Equal_, true
		}
	case Boolean:
		bv, ok := b.(Boolean)
		if !ok {
			return 0, false
		}
		return boolOrdering(bool(av), bool(bv)), true
	case Str:
		bv, ok := b.(Str)
		if !ok {
			return 0, false
		}
		switch {
		case av.S < bv.S:
			return Less, true
		case av.S > bv.S:
			return Greater, true
		default:
			return Equal_, true
		}
	default:
		return 0, false
	}
}

func boolOrdering(a, b bool) Ordering {
	if a == b {
		return Equal_
	}
	if !a && b {
		return Less
	}
	return Greater
}
