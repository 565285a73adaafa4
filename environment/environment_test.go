/*
File    : golox/environment/environment_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package environment

import (
	"testing"

	"github.com/akashmaji946/golox/value"
	"github.com/stretchr/testify/assert"
)

func TestDefineAndLookup(t *testing.T) {
	env := Fresh()
	env.Define("x", value.Number(42), true)
	v, res := env.Lookup("x")
	assert.Equal(t, Found, res)
	assert.Equal(t, value.Number(42), v)
}

func TestLookupUnknownIdentifier(t *testing.T) {
	env := Fresh()
	_, res := env.Lookup("missing")
	assert.Equal(t, Unknown, res)
}

func TestDeclaredWithoutInitializerIsUninitialized(t *testing.T) {
	env := Fresh()
	env.Define("x", nil, false)
	_, res := env.Lookup("x")
	assert.Equal(t, Uninitialized, res)
}

func TestChildSeesParentBindings(t *testing.T) {
	parent := Fresh()
	parent.Define("x", value.Number(1), true)
	child := ChildOf(parent)
	v, res := child.Lookup("x")
	assert.Equal(t, Found, res)
	assert.Equal(t, value.Number(1), v)
}

func TestChildShadowsParentBindingLocally(t *testing.T) {
	parent := Fresh()
	parent.Define("x", value.Number(1), true)
	child := ChildOf(parent)
	child.Define("x", value.Number(2), true)

	v, _ := child.Lookup("x")
	assert.Equal(t, value.Number(2), v)

	pv, _ := parent.Lookup("x")
	assert.Equal(t, value.Number(1), pv)
}

func TestAssignUpdatesNearestEnclosingScope(t *testing.T) {
	parent := Fresh()
	parent.Define("x", value.Number(1), true)
	child := ChildOf(parent)

	ok := child.Assign("x", value.Number(99))
	assert.True(t, ok)

	pv, _ := parent.Lookup("x")
	assert.Equal(t, value.Number(99), pv)
}

func TestAssignToUndeclaredNameFails(t *testing.T) {
	env := Fresh()
	ok := env.Assign("never_declared", value.Number(1))
	assert.False(t, ok)
}

func TestNamesListsOwnScopeBindingsSorted(t *testing.T) {
	env := Fresh()
	env.Define("zeta", value.Number(1), true)
	env.Define("alpha", value.Number(2), true)
	assert.Equal(t, []string{"alpha", "zeta"}, env.Names())
}

func TestNamesDoesNotIncludeParentBindings(t *testing.T) {
	parent := Fresh()
	parent.Define("x", value.Number(1), true)
	child := ChildOf(parent)
	child.Define("y", value.Number(2), true)
	assert.Equal(t, []string{"y"}, child.Names())
}

func TestAssignInitializesAPreviouslyUninitializedBinding(t *testing.T) {
	env := Fresh()
	env.Define("x", nil, false)
	ok := env.Assign("x", value.Number(7))
	assert.True(t, ok)
	v, res := env.Lookup("x")
	assert.Equal(t, Found, res)
	assert.Equal(t, value.Number(7), v)
}
