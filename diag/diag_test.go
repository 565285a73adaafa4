/*
File    : golox/diag/diag_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package diag

import (
	"testing"

	"github.com/akashmaji946/golox/source"
	"github.com/stretchr/testify/assert"
)

func TestRenderPointsAtTheOffendingSpan(t *testing.T) {
	src := "var x = 1 + \"a\";"
	d := &TypeError{
		Pos:      source.Position{Absolute: 8, Length: 9},
		Found:    "number,string",
		Expected: "number operands",
	}
	out := Render(src, d)
	assert.Contains(t, out, "type error")
	assert.Contains(t, out, "var x = 1 + \"a\";")
	assert.Contains(t, out, "^")
}

func TestRenderUnclosedDelimiterHasTwoSpans(t *testing.T) {
	src := "print (1 + 2;"
	d := &UnclosedDelimiter{
		Open: source.Position{Absolute: 6, Length: 1},
		End:  source.Position{Absolute: len(src), Length: 0},
	}
	assert.Len(t, d.Spans(), 2)
	out := Render(src, d)
	assert.Contains(t, out, "unclosed delimiter")
}
