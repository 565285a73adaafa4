/*
File    : golox/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"github.com/akashmaji946/golox/diag"
	"github.com/akashmaji946/golox/lexer"
	"github.com/akashmaji946/golox/source"
)

// maxArgs bounds the number of parameters a function may declare and the
// number of arguments a call may pass.
const maxArgs = 255

// Parser consumes a flat Token slice and builds the statement list that
// makes up a program, recursive-descent style: one method per grammar
// rule, each method consuming exactly the tokens its rule covers.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []diag.Diagnostic
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire token stream, returning the program's
// statements and any diagnostics raised along the way. Parsing recovers
// at statement boundaries after an error, so a single malformed statement
// does not necessarily prevent later ones from being reported too.
func (p *Parser) Parse() ([]Stmt, []diag.Diagnostic) {
	var stmts []Stmt
	for !p.atEnd() {
		before := p.pos
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, toDiagnostic(err))
			p.synchronize()
			if p.pos == before {
				p.advance()
			}
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, p.errors
}

func toDiagnostic(err error) diag.Diagnostic {
	if d, ok := err.(diag.Diagnostic); ok {
		return d
	}
	return &diag.UnexpectedEndOfTokenStream{}
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so parsing can continue after reporting one error instead of
// cascading into spurious follow-on ones.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.previous().Type == lexer.Semicolon {
			return
		}
		switch p.peek().Type {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For, lexer.If,
			lexer.While, lexer.Print, lexer.Return:
			return
		}
		p.advance()
	}
}

// --- declarations --------------------------------------------------------

func (p *Parser) declaration() (Stmt, error) {
	if p.match(lexer.Fun) {
		return p.function("function")
	}
	if p.match(lexer.Var) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) function(kind string) (Stmt, error) {
	start := p.previous().Position
	nameTok, err := p.consume(lexer.Identifier, kind+" name")
	if err != nil {
		return nil, err
	}
	openParen, err := p.consume(lexer.LeftParen, "(")
	if err != nil {
		return nil, err
	}
	var params []string
	if !p.check(lexer.RightParen) {
		for {
			if len(params) >= maxArgs {
				return nil, &diag.ArityMismatch{Pos: p.peek().Position, Expected: maxArgs, Got: len(params) + 1}
			}
			paramTok, err := p.consume(lexer.Identifier, "parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, paramTok.Lexeme)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consumeClose(lexer.RightParen, ")", openParen.Position); err != nil {
		return nil, err
	}
	openBrace, err := p.consume(lexer.LeftBrace, "{")
	if err != nil {
		return nil, err
	}
	body, err := p.blockBody(openBrace.Position)
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{
		Position: source.Union(start, p.previous().Position),
		Name:     nameTok.Lexeme,
		Params:   params,
		Body:     body,
	}, nil
}

func (p *Parser) varDeclaration() (Stmt, error) {
	start := p.previous().Position
	nameTok, err := p.consume(lexer.Identifier, "variable name")
	if err != nil {
		return nil, err
	}
	var initializer Expr
	if p.match(lexer.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &VarStmt{
		Position:    source.Union(start, p.previous().Position),
		Name:        nameTok.Lexeme,
		Initializer: initializer,
	}, nil
}

// --- statements ------------------------------------------------------------

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(lexer.Print):
		return p.printStatement()
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.For):
		return p.forStatement()
	case p.match(lexer.Return):
		return p.returnStatement()
	case p.match(lexer.LeftBrace):
		return p.blockStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (Stmt, error) {
	start := p.previous().Position
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &PrintStmt{Position: source.Union(start, p.previous().Position), Expr: expr}, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	start := p.peek().Position
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Position: source.Union(start, p.previous().Position), Expr: expr}, nil
}

// ifStatement parses `if <expr> <stmt> [else <stmt>]`. The condition is
// parsed as a plain expression rather than requiring surrounding
// parentheses — a parenthesized condition still works because `(…)`
// parses as a grouping primary, it just isn't mandatory.
func (p *Parser) ifStatement() (Stmt, error) {
	start := p.previous().Position
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt Stmt
	if p.match(lexer.Else) {
		elseStmt, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Position: source.Union(start, p.previous().Position), Cond: cond, Then: then, Else: elseStmt}, nil
}

// whileStatement parses `while <expr> <stmt>`. As with ifStatement, the
// condition is a plain expression; a parenthesized condition still
// works because `(…)` parses as a grouping primary, it just isn't
// mandatory.
func (p *Parser) whileStatement() (Stmt, error) {
	start := p.previous().Position
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Position: source.Union(start, p.previous().Position), Cond: cond, Body: body}, nil
}

// forStatement desugars the C-style for-loop into the equivalent block of
// an optional initializer followed by a WhileStmt whose body appends the
// increment expression — the evaluator never sees a dedicated for-loop
// construct.
func (p *Parser) forStatement() (Stmt, error) {
	start := p.previous().Position
	openParen, err := p.consume(lexer.LeftParen, "(")
	if err != nil {
		return nil, err
	}

	var initializer Stmt
	switch {
	case p.match(lexer.Semicolon):
		initializer = nil
	case p.match(lexer.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(lexer.Semicolon) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}

	var increment Expr
	if !p.check(lexer.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consumeClose(lexer.RightParen, ")", openParen.Position); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	end := p.previous().Position
	if increment != nil {
		body = &BlockStmt{Position: source.Union(body.Pos(), end), Statements: []Stmt{
			body,
			&ExpressionStmt{Position: increment.Pos(), Expr: increment},
		}}
	}
	if cond == nil {
		cond = &LiteralExpr{Position: start, Value: true}
	}
	loop := Stmt(&WhileStmt{Position: source.Union(start, end), Cond: cond, Body: body})
	if initializer != nil {
		loop = &BlockStmt{Position: source.Union(start, end), Statements: []Stmt{initializer, loop}}
	}
	return loop, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	start := p.previous().Position
	var value Expr
	var err error
	if !p.check(lexer.Semicolon) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Position: source.Union(start, p.previous().Position), Value: value}, nil
}

func (p *Parser) blockStatement() (Stmt, error) {
	start := p.previous().Position
	stmts, err := p.blockBody(start)
	if err != nil {
		return nil, err
	}
	return &BlockStmt{Position: source.Union(start, p.previous().Position), Statements: stmts}, nil
}

// blockBody parses declarations up to (and consuming) the closing brace.
// The opening brace must already have been consumed by the caller, and
// its position is passed in so a missing close reports UnclosedDelimiter
// against the right opening span.
func (p *Parser) blockBody(openBrace source.Position) ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(lexer.RightBrace) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consumeClose(lexer.RightBrace, "}", openBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// --- expressions -----------------------------------------------------------

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.Equal) {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		variable, ok := expr.(*VariableExpr)
		if !ok {
			return nil, &diag.InvalidAssignmentTarget{Pos: expr.Pos()}
		}
		return &AssignExpr{
			Position: source.Union(expr.Pos(), value.Pos()),
			Name:     variable.Name,
			Value:    value,
		}, nil
	}
	return expr, nil
}

func (p *Parser) logicOr() (Expr, error) {
	return p.logicalLevel(p.logicAnd, lexer.Or)
}

func (p *Parser) logicAnd() (Expr, error) {
	return p.logicalLevel(p.equality, lexer.And)
}

// logicalLevel implements one level of the `and`/`or` short-circuit
// operators, sharing the same left-associative accumulation shape as
// binaryLevel but building LogicalExpr nodes instead of BinaryExpr.
func (p *Parser) logicalLevel(next func() (Expr, error), ops ...lexer.TokenType) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{
			Position: source.Union(expr.Pos(), right.Pos()),
			Left:     expr,
			Operator: op.Lexeme,
			Right:    right,
		}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	return p.binaryLevel(p.comparison, lexer.BangEqual, lexer.EqualEqual)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binaryLevel(p.term, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual)
}

func (p *Parser) term() (Expr, error) {
	return p.binaryLevel(p.factor, lexer.Minus, lexer.Plus)
}

func (p *Parser) factor() (Expr, error) {
	return p.binaryLevel(p.unary, lexer.Slash, lexer.Star)
}

// binaryLevel is the shared shape for every left-associative binary
// precedence level: parse one operand at the next-tighter level, then
// keep folding in `(operator operand)` pairs as long as one of ops
// matches.
func (p *Parser) binaryLevel(next func() (Expr, error), ops ...lexer.TokenType) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{
			Position: source.Union(expr.Pos(), right.Pos()),
			Left:     expr,
			Operator: op.Lexeme,
			Right:    right,
		}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(lexer.Bang, lexer.Minus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Position: source.Union(op.Position, right.Pos()),
			Operator: op.Lexeme,
			Right:    right,
		}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if p.match(lexer.LeftParen) {
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	openParen := p.previous().Position
	var args []Expr
	if !p.check(lexer.RightParen) {
		for {
			if len(args) >= maxArgs {
				return nil, &diag.ArityMismatch{Pos: p.peek().Position, Expected: maxArgs, Got: len(args) + 1}
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	closing, err := p.consumeClose(lexer.RightParen, ")", openParen)
	if err != nil {
		return nil, err
	}
	return &CallExpr{Position: source.Union(callee.Pos(), closing.Position), Callee: callee, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	if p.atEnd() {
		return nil, &diag.UnexpectedEndOfTokenStream{}
	}
	tok := p.peek()
	switch {
	case p.match(lexer.False):
		return &LiteralExpr{Position: tok.Position, Value: false}, nil
	case p.match(lexer.True):
		return &LiteralExpr{Position: tok.Position, Value: true}, nil
	case p.match(lexer.Nil):
		return &LiteralExpr{Position: tok.Position, Value: nil}, nil
	case p.match(lexer.Number):
		return &LiteralExpr{Position: tok.Position, Value: tok.NumberValue}, nil
	case p.match(lexer.String):
		return &LiteralExpr{Position: tok.Position, Value: tok.StringValue}, nil
	case p.match(lexer.Identifier):
		return &VariableExpr{Position: tok.Position, Name: tok.Lexeme}, nil
	case p.match(lexer.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		closing, err := p.consumeClose(lexer.RightParen, ")", tok.Position)
		if err != nil {
			return nil, err
		}
		return &GroupingExpr{Position: source.Union(tok.Position, closing.Position), Inner: expr}, nil
	default:
		return nil, &diag.IllegalToken{Pos: tok.Position, Found: tok.Lexeme}
	}
}

// --- token-stream primitives ------------------------------------------------

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() lexer.Token {
	if p.atEnd() {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) consume(t lexer.TokenType, expected string) (lexer.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	if p.atEnd() {
		return lexer.Token{}, &diag.UnexpectedEndOfTokenStream{}
	}
	return lexer.Token{}, &diag.UnexpectedToken{
		Pos:      p.peek().Position,
		Found:    p.peek().Lexeme,
		Expected: expected,
	}
}

// consumeClose consumes a closing `)` or `}` matching the delimiter opened
// at open. Running out of tokens before finding it is reported as
// UnclosedDelimiter (carrying both the opening position and a synthetic
// end-of-stream position) rather than the generic end-of-stream error,
// per spec.md §4.3's closing-delimiter diagnostic rule.
func (p *Parser) consumeClose(t lexer.TokenType, expected string, open source.Position) (lexer.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	if p.atEnd() {
		return lexer.Token{}, &diag.UnclosedDelimiter{Open: open, End: p.eofPosition()}
	}
	return lexer.Token{}, &diag.UnexpectedToken{
		Pos:      p.peek().Position,
		Found:    p.peek().Lexeme,
		Expected: expected,
	}
}

// eofPosition synthesizes a zero-length position just past the last
// scanned token, standing in for the absent end-of-stream token.
func (p *Parser) eofPosition() source.Position {
	if len(p.tokens) == 0 {
		return source.Position{}
	}
	last := p.tokens[len(p.tokens)-1].Position
	return source.Position{Absolute: last.End(), Length: 0}
}
