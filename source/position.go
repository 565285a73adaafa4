/*
File    : golox/source/position.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package source provides the character-level cursor the lexer scans over,
// and the byte-span type ("Position") used to label tokens, AST nodes, and
// diagnostics throughout the rest of the interpreter.
package source

import "fmt"

// Position is a half-open byte span [Absolute, Absolute+Length) over the
// original source text. Every token and AST node carries one so that
// diagnostics can point back at the exact bytes that produced them.
type Position struct {
	Absolute int // byte offset of the first byte in the span
	Length   int // number of bytes in the span
}

// End returns the exclusive end offset of the span.
func (p Position) End() int {
	return p.Absolute + p.Length
}

// Union returns the smallest span containing both a and b.
func Union(a, b Position) Position {
	start := a.Absolute
	if b.Absolute < start {
		start = b.Absolute
	}
	end := a.End()
	if b.End() > end {
		end = b.End()
	}
	return Position{Absolute: start, Length: end - start}
}

// String renders the span as "[start:end)", used by diagnostics and tests.
func (p Position) String() string {
	return fmt.Sprintf("[%d:%d)", p.Absolute, p.End())
}
