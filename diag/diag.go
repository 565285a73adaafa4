/*
File    : golox/diag/diag.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package diag defines the structured diagnostics raised by the lexer,
// parser, and evaluator. Each diagnostic carries a human-readable kind and
// labelled source spans (every variant except UnexpectedEndOfTokenStream
// has at least one), following the taxonomy of the original Rust
// implementation's error.rs (ParseError/RuntimeError, each variant tagged
// with a #[label] span) this interpreter was distilled from. Render turns
// a Diagnostic plus the original source text into a caret-annotated
// message; cmd/lox and repl call it to print diagnostics.
package diag

import (
	"fmt"
	"strings"

	"github.com/akashmaji946/golox/source"
)

// Diagnostic is satisfied by every error this package defines. Label
// gives the short phrase describing the offending span; Spans gives the
// positions to annotate (most diagnostics have exactly one; a few, like
// UnclosedDelimiter, have two; UnexpectedEndOfTokenStream has none).
type Diagnostic interface {
	error
	Label() string
	Spans() []source.Position
}

// --- Parse errors -----------------------------------------------------

// IllegalToken is raised when the parser encounters a token that cannot
// begin an expression where one is required.
type IllegalToken struct {
	Pos   source.Position
	Found string
}

func (e *IllegalToken) Error() string {
	return fmt.Sprintf("illegal token %q", e.Found)
}
func (e *IllegalToken) Label() string            { return fmt.Sprintf("found `%s`", e.Found) }
func (e *IllegalToken) Spans() []source.Position { return []source.Position{e.Pos} }

// UnexpectedToken is raised when a specific token type was required but a
// different one was found.
type UnexpectedToken struct {
	Pos      source.Position
	Found    string
	Expected string
}

func (e *UnexpectedToken) Error() string {
	return fmt.Sprintf("unexpected token: found `%s`, expected `%s`", e.Found, e.Expected)
}
func (e *UnexpectedToken) Label() string {
	return fmt.Sprintf("found `%s` expected `%s`", e.Found, e.Expected)
}
func (e *UnexpectedToken) Spans() []source.Position { return []source.Position{e.Pos} }

// UnclosedDelimiter is raised when a `(` or `{` is never matched by its
// closing counterpart before the token stream ends.
type UnclosedDelimiter struct {
	Open source.Position
	End  source.Position
}

func (e *UnclosedDelimiter) Error() string { return "unclosed delimiter" }
func (e *UnclosedDelimiter) Label() string { return "unclosed delimiter" }
func (e *UnclosedDelimiter) Spans() []source.Position {
	return []source.Position{e.Open, e.End}
}

// UnexpectedEndOfTokenStream is raised when the parser needs a token but
// the stream has already reached EOF.
type UnexpectedEndOfTokenStream struct{}

func (e *UnexpectedEndOfTokenStream) Error() string { return "unexpected end of token stream" }
func (e *UnexpectedEndOfTokenStream) Label() string { return "unexpected end of token stream" }
func (e *UnexpectedEndOfTokenStream) Spans() []source.Position {
	return nil
}

// InvalidAssignmentTarget is raised when the left-hand side of `=` is not
// a variable reference.
type InvalidAssignmentTarget struct {
	Pos source.Position
}

func (e *InvalidAssignmentTarget) Error() string { return "invalid assignment target" }
func (e *InvalidAssignmentTarget) Label() string { return "invalid assignment target" }
func (e *InvalidAssignmentTarget) Spans() []source.Position {
	return []source.Position{e.Pos}
}

// --- Runtime errors -----------------------------------------------------

// TypeError is raised when an operator or call receives an operand of the
// wrong runtime kind.
type TypeError struct {
	Pos      source.Position
	Found    string
	Expected string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: no implicit conversion of %s into %s", e.Found, e.Expected)
}
func (e *TypeError) Label() string {
	return fmt.Sprintf("no implicit conversion of type %s into %s", e.Found, e.Expected)
}
func (e *TypeError) Spans() []source.Position { return []source.Position{e.Pos} }

// UninitializedVariable is raised when a variable is read before any
// value has been assigned to it.
type UninitializedVariable struct {
	Pos  source.Position
	Name string
}

func (e *UninitializedVariable) Error() string {
	return fmt.Sprintf("variable %q has not been initialized", e.Name)
}
func (e *UninitializedVariable) Label() string {
	return fmt.Sprintf("variable %s has not been initialized", e.Name)
}
func (e *UninitializedVariable) Spans() []source.Position { return []source.Position{e.Pos} }

// UnknownIdentifier is raised when a variable name has no binding in any
// scope on the environment chain.
type UnknownIdentifier struct {
	Pos  source.Position
	Name string
}

func (e *UnknownIdentifier) Error() string {
	return fmt.Sprintf("unknown identifier %q", e.Name)
}
func (e *UnknownIdentifier) Label() string {
	return fmt.Sprintf("unknown variable %s", e.Name)
}
func (e *UnknownIdentifier) Spans() []source.Position { return []source.Position{e.Pos} }

// ArityMismatch is raised when a call passes a different number of
// arguments than the callee's parameter list declares.
type ArityMismatch struct {
	Pos      source.Position
	Expected int
	Got      int
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("arity mismatch: expected %d argument(s), got %d", e.Expected, e.Got)
}
func (e *ArityMismatch) Label() string {
	return fmt.Sprintf("expected %d argument(s), got %d", e.Expected, e.Got)
}
func (e *ArityMismatch) Spans() []source.Position { return []source.Position{e.Pos} }

// StackOverflow is raised when nested function calls exceed the
// evaluator's configured call-depth limit, protecting the host stack.
type StackOverflow struct {
	Pos source.Position
}

func (e *StackOverflow) Error() string { return "stack overflow" }
func (e *StackOverflow) Label() string { return "call stack exceeded the depth limit here" }
func (e *StackOverflow) Spans() []source.Position {
	return []source.Position{e.Pos}
}

// Render turns a Diagnostic plus the original source text into a
// caret-annotated message in the style of the original Rust
// implementation's miette reports: the error's message, followed by one
// line per labelled span showing the offending source line with a run of
// `^` under the span and the diagnostic's label alongside it.
func Render(src string, d Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error: %s\n", d.Error())
	for _, span := range d.Spans() {
		line, col, text := lineContaining(src, span.Absolute)
		fmt.Fprintf(&b, "  --> line %d, column %d\n", line, col)
		fmt.Fprintf(&b, "  | %s\n", text)
		fmt.Fprintf(&b, "  | %s%s %s\n", strings.Repeat(" ", col-1), caretRun(span, text, col), d.Label())
	}
	return b.String()
}

// lineContaining locates the 1-indexed line and column of a byte offset
// within src, along with that line's text (without its trailing newline).
func lineContaining(src string, absolute int) (line, col int, text string) {
	if absolute > len(src) {
		absolute = len(src)
	}
	line = 1
	lineStart := 0
	for i := 0; i < absolute && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := len(src)
	if idx := strings.IndexByte(src[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	col = absolute - lineStart + 1
	return line, col, src[lineStart:lineEnd]
}

// caretRun produces a run of `^` spanning a diagnostic's width, clamped so
// it never reaches past the end of the rendered line.
func caretRun(span source.Position, lineText string, col int) string {
	width := span.Length
	if width < 1 {
		width = 1
	}
	if col-1+width > len(lineText) {
		width = len(lineText) - (col - 1)
	}
	if width < 1 {
		width = 1
	}
	return strings.Repeat("^", width)
}
