/*
File    : golox/function/function.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package function implements the runtime representation of a
// user-defined Lox function: its declared parameters, its body, and the
// environment it closed over at definition time. It satisfies
// value.Value (and value.Identifiable, for `==`) so functions can flow
// through the evaluator like any other value — passed around, assigned,
// and compared — without the evaluator needing a separate code path.
package function

import (
	"fmt"
	"sync/atomic"

	"github.com/akashmaji946/golox/environment"
	"github.com/akashmaji946/golox/parser"
	"github.com/akashmaji946/golox/value"
)

var nextID uint64

// Function is a closure: a parameter list, a body, and the environment
// in which `fun` was evaluated. Go's tracing garbage collector is what
// makes this safe even when the closure's environment transitively
// stores the closure itself (a function that recurses by referring to
// its own name) — there is no reference-counting scheme to break the
// cycle, unlike in a manually memory-managed host.
type Function struct {
	id      string
	Name    string
	Params  []string
	Body    []parser.Stmt
	Closure *environment.Environment
}

// New creates a Function value, stamping it with a process-unique
// identity used for `==` comparison between function values.
func New(name string, params []string, body []parser.Stmt, closure *environment.Environment) *Function {
	id := atomic.AddUint64(&nextID, 1)
	return &Function{
		id:      fmt.Sprintf("fn#%d", id),
		Name:    name,
		Params:  params,
		Body:    body,
		Closure: closure,
	}
}

func (f *Function) Kind() value.Kind { return value.FunctionKind }

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Name)
}

// IdentityID implements value.Identifiable: two Function values are `==`
// only if they are the exact same declaration's closure, never by
// structural comparison of params/body.
func (f *Function) IdentityID() string { return f.id }

// Arity is the number of parameters this function declares.
func (f *Function) Arity() int { return len(f.Params) }

var _ value.Identifiable = (*Function)(nil)
