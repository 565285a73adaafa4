/*
File    : golox/environment/environment.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package environment implements the lexical-scope chain: each block,
// function call, and the top-level program gets its own Environment,
// parent-linked to the scope it was opened inside of. This mirrors the
// teacher's scope.Scope, generalized with the declared-but-uninitialized
// tri-state spec'd for `var x;` (no initializer).
package environment

import (
	"sort"

	"github.com/akashmaji946/golox/value"
)

// LookupResult classifies the outcome of a Lookup call.
type LookupResult int

const (
	// Unknown means no binding for the name exists anywhere on the chain.
	Unknown LookupResult = iota
	// Uninitialized means the name is declared but was never given a value.
	Uninitialized
	// Found means the name is declared and holds a value.
	Found
)

type binding struct {
	value       value.Value
	initialized bool
}

// Environment is one link in the scope chain.
type Environment struct {
	parent *Environment
	values map[string]binding
}

// Fresh creates a top-level environment with no parent.
func Fresh() *Environment {
	return &Environment{values: make(map[string]binding)}
}

// ChildOf creates a new environment nested inside parent, such as a block
// body or a function call's argument scope.
func ChildOf(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]binding)}
}

// Define introduces name in this environment's own scope (shadowing any
// binding of the same name in an enclosing scope). hasValue is false for
// `var x;` with no initializer, producing an Uninitialized binding.
func (e *Environment) Define(name string, v value.Value, hasValue bool) {
	e.values[name] = binding{value: v, initialized: hasValue}
}

// Assign sets name to v in the nearest enclosing scope that declares it,
// reporting whether such a scope was found. It never creates a new
// binding — assignment to an undeclared name is the caller's
// UnknownIdentifier to raise.
func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = binding{value: v, initialized: true}
			return true
		}
	}
	return false
}

// Names returns the names declared directly in this environment's own
// scope, sorted for stable display (used by the REPL's `:env` command).
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves name by walking outward from this environment through
// its ancestors, returning the value (if any) and which of the three
// LookupResult states applies.
func (e *Environment) Lookup(name string) (value.Value, LookupResult) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			if !b.initialized {
				return nil, Uninitialized
			}
			return b.value, Found
		}
	}
	return nil, Unknown
}
