/*
File    : golox/repl/repl_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package repl

import (
	"bytes"
	"testing"

	"github.com/akashmaji946/golox/environment"
	"github.com/akashmaji946/golox/eval"
	"github.com/stretchr/testify/assert"
)

func TestPromptIncludesCounter(t *testing.T) {
	r := NewRepl("", "", "", "", "", "lox")
	assert.Equal(t, "lox:1>> ", r.prompt(1))
	assert.Equal(t, "lox:7>> ", r.prompt(7))
}

func TestExecuteWithRecoveryPrintsValue(t *testing.T) {
	r := NewRepl("", "", "", "", "", "lox")
	var buf bytes.Buffer
	env := environment.Fresh()
	evaluator := eval.New(&buf)
	r.executeWithRecovery(&buf, `print 1 + 2;`, evaluator, env)
	assert.Equal(t, "3\nnil\n", buf.String())
}

func TestExecuteWithRecoveryReportsParseError(t *testing.T) {
	r := NewRepl("", "", "", "", "", "lox")
	var buf bytes.Buffer
	env := environment.Fresh()
	evaluator := eval.New(&buf)
	r.executeWithRecovery(&buf, `1 = 2;`, evaluator, env)
	assert.Contains(t, buf.String(), "invalid assignment target")
}

func TestExecuteWithRecoveryPersistsEnvironmentAcrossCalls(t *testing.T) {
	r := NewRepl("", "", "", "", "", "lox")
	var buf bytes.Buffer
	env := environment.Fresh()
	evaluator := eval.New(&buf)
	r.executeWithRecovery(&buf, `var x = 10;`, evaluator, env)
	buf.Reset()
	r.executeWithRecovery(&buf, `print x;`, evaluator, env)
	assert.Equal(t, "10\nnil\n", buf.String())
}

func TestExecuteWithRecoveryEchoesBareExpressionDebugForm(t *testing.T) {
	r := NewRepl("", "", "", "", "", "lox")
	var buf bytes.Buffer
	env := environment.Fresh()
	evaluator := eval.New(&buf)
	r.executeWithRecovery(&buf, `1 + 2;`, evaluator, env)
	assert.Equal(t, "3\n", buf.String())
}

func TestPrintEnvListsBindings(t *testing.T) {
	r := NewRepl("", "", "", "", "", "lox")
	var buf bytes.Buffer
	env := environment.Fresh()
	evaluator := eval.New(&buf)
	r.executeWithRecovery(&buf, `var x = 42;`, evaluator, env)
	buf.Reset()
	r.printEnv(&buf, env)
	assert.Contains(t, buf.String(), "x = 42")
}
