/*
File    : golox/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/akashmaji946/golox/diag"
	"github.com/akashmaji946/golox/lexer"
	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, src string) ([]Stmt, []diag.Diagnostic) {
	t.Helper()
	tokens, lexErrs := lexer.New(src).Scan()
	assert.Empty(t, lexErrs)
	return New(tokens).Parse()
}

func TestParsePrintStatement(t *testing.T) {
	stmts, errs := parse(t, `print 1 + 2;`)
	assert.Empty(t, errs)
	assert.Len(t, stmts, 1)
	printStmt, ok := stmts[0].(*PrintStmt)
	assert.True(t, ok)
	bin, ok := printStmt.Expr.(*BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, "+", bin.Operator)
}

func TestArithmeticPrecedence(t *testing.T) {
	stmts, errs := parse(t, `1 + 2 * 3;`)
	assert.Empty(t, errs)
	exprStmt := stmts[0].(*ExpressionStmt)
	top := exprStmt.Expr.(*BinaryExpr)
	assert.Equal(t, "+", top.Operator)
	_, leftIsLiteral := top.Left.(*LiteralExpr)
	assert.True(t, leftIsLiteral)
	right := top.Right.(*BinaryExpr)
	assert.Equal(t, "*", right.Operator)
}

func TestVarDeclarationWithoutInitializer(t *testing.T) {
	stmts, errs := parse(t, `var x;`)
	assert.Empty(t, errs)
	v := stmts[0].(*VarStmt)
	assert.Equal(t, "x", v.Name)
	assert.Nil(t, v.Initializer)
}

func TestIfElseStatement(t *testing.T) {
	stmts, errs := parse(t, `if (true) print 1; else print 2;`)
	assert.Empty(t, errs)
	ifStmt := stmts[0].(*IfStmt)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestWhileLoop(t *testing.T) {
	stmts, errs := parse(t, `while (x) { print x; }`)
	assert.Empty(t, errs)
	_, ok := stmts[0].(*WhileStmt)
	assert.True(t, ok)
}

// Parentheses around if/while conditions are legal (a parenthesized
// condition parses as a grouping primary) but never required: the
// grammar accepts any bare expression as the condition.
func TestIfConditionWithoutParens(t *testing.T) {
	stmts, errs := parse(t, `if true print 1; else print 2;`)
	assert.Empty(t, errs)
	ifStmt := stmts[0].(*IfStmt)
	_, isLiteral := ifStmt.Cond.(*LiteralExpr)
	assert.True(t, isLiteral)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestWhileConditionWithoutParens(t *testing.T) {
	stmts, errs := parse(t, `while x { print x; }`)
	assert.Empty(t, errs)
	whileStmt, ok := stmts[0].(*WhileStmt)
	assert.True(t, ok)
	_, isVariable := whileStmt.Cond.(*VariableExpr)
	assert.True(t, isVariable)
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	stmts, errs := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	assert.Empty(t, errs)
	block := stmts[0].(*BlockStmt)
	assert.Len(t, block.Statements, 2)
	_, initIsVar := block.Statements[0].(*VarStmt)
	assert.True(t, initIsVar)
	whileStmt, ok := block.Statements[1].(*WhileStmt)
	assert.True(t, ok)
	body := whileStmt.Body.(*BlockStmt)
	assert.Len(t, body.Statements, 2)
}

func TestFunctionDeclarationAndReturn(t *testing.T) {
	stmts, errs := parse(t, `fun add(a, b) { return a + b; }`)
	assert.Empty(t, errs)
	fn := stmts[0].(*FunctionStmt)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	assert.Len(t, fn.Body, 1)
	_, ok := fn.Body[0].(*ReturnStmt)
	assert.True(t, ok)
}

func TestCallExpression(t *testing.T) {
	stmts, errs := parse(t, `add(1, 2);`)
	assert.Empty(t, errs)
	exprStmt := stmts[0].(*ExpressionStmt)
	call := exprStmt.Expr.(*CallExpr)
	assert.Len(t, call.Args, 2)
}

func TestLogicalOperatorsShortCircuitShapeIsDistinctFromBinary(t *testing.T) {
	stmts, errs := parse(t, `a and b or c;`)
	assert.Empty(t, errs)
	exprStmt := stmts[0].(*ExpressionStmt)
	top := exprStmt.Expr.(*LogicalExpr)
	assert.Equal(t, "or", top.Operator)
	left := top.Left.(*LogicalExpr)
	assert.Equal(t, "and", left.Operator)
}

func TestInvalidAssignmentTargetIsReported(t *testing.T) {
	_, errs := parse(t, `1 = 2;`)
	assert.Len(t, errs, 1)
	_, ok := errs[0].(*diag.InvalidAssignmentTarget)
	assert.True(t, ok)
}

func TestUnclosedParenIsReported(t *testing.T) {
	_, errs := parse(t, `print (1 + 2;`)
	assert.Len(t, errs, 1)
}

func TestUnclosedParenAtEndOfStreamIsUnclosedDelimiter(t *testing.T) {
	_, errs := parse(t, `(1 + 2`)
	assert.Len(t, errs, 1)
	unclosed, ok := errs[0].(*diag.UnclosedDelimiter)
	assert.True(t, ok)
	assert.Equal(t, 0, unclosed.Open.Absolute)
}

func TestUnclosedBraceAtEndOfStreamIsUnclosedDelimiter(t *testing.T) {
	_, errs := parse(t, `fun f() { print 1;`)
	assert.Len(t, errs, 1)
	_, ok := errs[0].(*diag.UnclosedDelimiter)
	assert.True(t, ok)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	stmts, errs := parse(t, `a = b = 3;`)
	assert.Empty(t, errs)
	exprStmt := stmts[0].(*ExpressionStmt)
	outer := exprStmt.Expr.(*AssignExpr)
	assert.Equal(t, "a", outer.Name)
	inner := outer.Value.(*AssignExpr)
	assert.Equal(t, "b", inner.Name)
}
