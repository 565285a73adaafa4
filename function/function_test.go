/*
File    : golox/function/function_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package function

import (
	"testing"

	"github.com/akashmaji946/golox/environment"
	"github.com/akashmaji946/golox/value"
	"github.com/stretchr/testify/assert"
)

func TestNewFunctionHasStableIdentity(t *testing.T) {
	env := environment.Fresh()
	f := New("add", []string{"a", "b"}, nil, env)
	assert.Equal(t, 2, f.Arity())
	assert.Equal(t, f.IdentityID(), f.IdentityID())
}

func TestDistinctFunctionsHaveDistinctIdentity(t *testing.T) {
	env := environment.Fresh()
	f1 := New("f", nil, nil, env)
	f2 := New("f", nil, nil, env)
	assert.NotEqual(t, f1.IdentityID(), f2.IdentityID())
	assert.False(t, value.Equal(f1, f2))
}

func TestSameFunctionValueEqualsItself(t *testing.T) {
	env := environment.Fresh()
	f := New("f", nil, nil, env)
	assert.True(t, value.Equal(f, f))
}
