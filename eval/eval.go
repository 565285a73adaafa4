/*
File    : golox/eval/eval.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval walks the AST produced by the parser package and executes
// it against an environment chain, producing values and side effects
// (currently just `print`'s output). It is a straightforward tree-walking
// evaluator in the style of the teacher's own evaluator.go, scaled down
// to this language's statement and expression set.
package eval

import (
	"fmt"
	"io"

	"github.com/akashmaji946/golox/diag"
	"github.com/akashmaji946/golox/environment"
	"github.com/akashmaji946/golox/function"
	"github.com/akashmaji946/golox/parser"
	"github.com/akashmaji946/golox/value"
)

// maxCallDepth bounds nested function calls so a runaway recursive
// program fails with a StackOverflow diagnostic instead of crashing the
// host process's goroutine stack.
const maxCallDepth = 255

// returnSignal is how a `return` statement unwinds back to the call
// site that invoked the function it appears in. It is carried through
// the same (value.Value, error) channel every other statement uses, but
// deliberately does NOT implement a rendering label the way
// diag.Diagnostic does — evalCall must catch it before it can reach
// any code that reports ordinary errors to the user.
type returnSignal struct {
	value value.Value
}

func (returnSignal) Error() string { return "return outside of a function call (internal)" }

// Evaluator walks statements against a given environment.
type Evaluator struct {
	Out   io.Writer
	depth int
}

// New creates an Evaluator that writes `print` output to out.
func New(out io.Writer) *Evaluator {
	return &Evaluator{Out: out}
}

// Run executes a program's top-level statement list in env, returning
// the value of the last statement (an expression statement's value, or
// value.Nil{} for every other statement kind, exactly as §4.6
// specifies) and the first error encountered, if any. The REPL uses the
// returned value to echo a debug form after each submission; file
// execution ignores it. Top-level `return` simply ends the run, the
// same as reaching the end of the statement list would.
func (e *Evaluator) Run(stmts []parser.Stmt, env *environment.Environment) (value.Value, error) {
	var last value.Value = value.Nil{}
	for _, stmt := range stmts {
		if exprStmt, ok := stmt.(*parser.ExpressionStmt); ok {
			v, err := e.evaluate(exprStmt.Expr, env)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		last = value.Nil{}
		if err := e.execute(stmt, env); err != nil {
			if _, ok := err.(returnSignal); ok {
				return value.Nil{}, nil
			}
			return nil, err
		}
	}
	return last, nil
}

func (e *Evaluator) execute(stmt parser.Stmt, env *environment.Environment) error {
	switch s := stmt.(type) {
	case *parser.ExpressionStmt:
		_, err := e.evaluate(s.Expr, env)
		return err
	case *parser.PrintStmt:
		v, err := e.evaluate(s.Expr, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.Out, v.String())
		return nil
	case *parser.VarStmt:
		var v value.Value
		hasValue := false
		if s.Initializer != nil {
			var err error
			v, err = e.evaluate(s.Initializer, env)
			if err != nil {
				return err
			}
			hasValue = true
		}
		env.Define(s.Name, v, hasValue)
		return nil
	case *parser.BlockStmt:
		return e.executeBlock(s.Statements, environment.ChildOf(env))
	case *parser.IfStmt:
		cond, err := e.evaluate(s.Cond, env)
		if err != nil {
			return err
		}
		truthy, err := value.Truthy(cond, s.Cond.Pos())
		if err != nil {
			return err
		}
		if truthy {
			return e.execute(s.Then, env)
		}
		if s.Else != nil {
			return e.execute(s.Else, env)
		}
		return nil
	case *parser.WhileStmt:
		for {
			cond, err := e.evaluate(s.Cond, env)
			if err != nil {
				return err
			}
			truthy, err := value.Truthy(cond, s.Cond.Pos())
			if err != nil {
				return err
			}
			if !truthy {
				return nil
			}
			if err := e.execute(s.Body, env); err != nil {
				return err
			}
		}
	case *parser.FunctionStmt:
		fn := function.New(s.Name, s.Params, s.Body, env)
		env.Define(s.Name, fn, true)
		return nil
	case *parser.ReturnStmt:
		var v value.Value = value.Nil{}
		if s.Value != nil {
			var err error
			v, err = e.evaluate(s.Value, env)
			if err != nil {
				return err
			}
		}
		return returnSignal{value: v}
	default:
		return fmt.Errorf("eval: unhandled statement type %T", stmt)
	}
}

func (e *Evaluator) executeBlock(stmts []parser.Stmt, env *environment.Environment) error {
	for _, stmt := range stmts {
		if err := e.execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evaluate(expr parser.Expr, env *environment.Environment) (value.Value, error) {
	switch ex := expr.(type) {
	case *parser.LiteralExpr:
		return literalValue(ex.Value), nil

	case *parser.GroupingExpr:
		return e.evaluate(ex.Inner, env)

	case *parser.UnaryExpr:
		right, err := e.evaluate(ex.Right, env)
		if err != nil {
			return nil, err
		}
		switch ex.Operator {
		case "-":
			return value.Negate(right, ex.Position)
		case "!":
			return value.Not(right, ex.Position)
		default:
			return nil, fmt.Errorf("eval: unknown unary operator %q", ex.Operator)
		}

	case *parser.BinaryExpr:
		return e.evalBinary(ex, env)

	case *parser.LogicalExpr:
		return e.evalLogical(ex, env)

	case *parser.VariableExpr:
		v, res := env.Lookup(ex.Name)
		switch res {
		case environment.Found:
			return v, nil
		case environment.Uninitialized:
			return nil, &diag.UninitializedVariable{Pos: ex.Position, Name: ex.Name}
		default:
			return nil, &diag.UnknownIdentifier{Pos: ex.Position, Name: ex.Name}
		}

	case *parser.AssignExpr:
		v, err := e.evaluate(ex.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(ex.Name, v) {
			return nil, &diag.UnknownIdentifier{Pos: ex.Position, Name: ex.Name}
		}
		return v, nil

	case *parser.CallExpr:
		return e.evalCall(ex, env)

	default:
		return nil, fmt.Errorf("eval: unhandled expression type %T", expr)
	}
}

func literalValue(v interface{}) value.Value {
	switch vv := v.(type) {
	case nil:
		return value.Nil{}
	case bool:
		return value.Boolean(vv)
	case float64:
		return value.Number(vv)
	case string:
		return value.Str{S: vv}
	default:
		return value.Nil{}
	}
}

// evalLogical implements short-circuit `and`/`or`. Both operands are
// projected through value.Truthy rather than passed through verbatim:
// the result is always a Boolean, and a non-boolean, non-nil operand on
// either side is a TypeError (§4.5 — numbers and strings are not
// implicitly truthy).
func (e *Evaluator) evalLogical(ex *parser.LogicalExpr, env *environment.Environment) (value.Value, error) {
	left, err := e.evaluate(ex.Left, env)
	if err != nil {
		return nil, err
	}
	leftTruthy, err := value.Truthy(left, ex.Left.Pos())
	if err != nil {
		return nil, err
	}
	if ex.Operator == "or" {
		if leftTruthy {
			return value.Boolean(true), nil
		}
	} else { // "and"
		if !leftTruthy {
			return value.Boolean(false), nil
		}
	}
	right, err := e.evaluate(ex.Right, env)
	if err != nil {
		return nil, err
	}
	rightTruthy, err := value.Truthy(right, ex.Right.Pos())
	if err != nil {
		return nil, err
	}
	return value.Boolean(rightTruthy), nil
}

func (e *Evaluator) evalBinary(ex *parser.BinaryExpr, env *environment.Environment) (value.Value, error) {
	left, err := e.evaluate(ex.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluate(ex.Right, env)
	if err != nil {
		return nil, err
	}
	pos := ex.Position
	switch ex.Operator {
	case "+":
		return value.Add(left, right, pos)
	case "-":
		return value.Subtract(left, right, pos)
	case "*":
		return value.Multiply(left, right, pos)
	case "/":
		return value.Divide(left, right, pos)
	case "==":
		return value.Boolean(value.Equal(left, right)), nil
	case "!=":
		return value.Boolean(!value.Equal(left, right)), nil
	case "<":
		return value.Boolean(value.CompareLess(left, right)), nil
	case "<=":
		return value.Boolean(value.CompareLessEqual(left, right)), nil
	case ">":
		return value.Boolean(value.CompareGreater(left, right)), nil
	case ">=":
		return value.Boolean(value.CompareGreaterEqual(left, right)), nil
	default:
		return nil, fmt.Errorf("eval: unknown binary operator %q", ex.Operator)
	}
}

func (e *Evaluator) evalCall(ex *parser.CallExpr, env *environment.Environment) (value.Value, error) {
	callee, err := e.evaluate(ex.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*function.Function)
	if !ok {
		return nil, &diag.TypeError{Pos: ex.Position, Found: string(callee.Kind()), Expected: "callable"}
	}

	args := make([]value.Value, len(ex.Args))
	for i, argExpr := range ex.Args {
		v, err := e.evaluate(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if len(args) != fn.Arity() {
		return nil, &diag.ArityMismatch{Pos: ex.Position, Expected: fn.Arity(), Got: len(args)}
	}

	if e.depth >= maxCallDepth {
		return nil, &diag.StackOverflow{Pos: ex.Position}
	}

	callEnv := environment.ChildOf(fn.Closure)
	for i, param := range fn.Params {
		callEnv.Define(param, args[i], true)
	}

	e.depth++
	defer func() { e.depth-- }()

	for _, stmt := range fn.Body {
		if err := e.execute(stmt, callEnv); err != nil {
			if rs, ok := err.(returnSignal); ok {
				return rs.value, nil
			}
			return nil, err
		}
	}
	return value.Nil{}, nil
}
