/*
File    : golox/lexer/token.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package lexer performs lexical analysis of Lox source code. It scans a
// source string character-by-character (via the source package's cursor)
// and produces a flat sequence of span-bearing tokens for the parser.
package lexer

import (
	"fmt"

	"github.com/akashmaji946/golox/source"
)

// TokenType identifies the syntactic category of a Token.
type TokenType int

const (
	// Delimiters and structural symbols
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One- or two-character operators
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

// keywords maps reserved lexemes to their keyword token type. Any
// identifier-shaped lexeme not present here is a plain Identifier.
var keywords = map[string]TokenType{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// String renders a TokenType for diagnostics and test failure output.
func (t TokenType) String() string {
	switch t {
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case Comma:
		return ","
	case Dot:
		return "."
	case Minus:
		return "-"
	case Plus:
		return "+"
	case Semicolon:
		return ";"
	case Slash:
		return "/"
	case Star:
		return "*"
	case Bang:
		return "!"
	case BangEqual:
		return "!="
	case Equal:
		return "="
	case EqualEqual:
		return "=="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Identifier:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	case EOF:
		return "EOF"
	default:
		for lexeme, typ := range keywords {
			if typ == t {
				return lexeme
			}
		}
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is a single lexical token: its type, its source span, and (for
// identifiers, strings, and numbers) the payload carried alongside the
// lexeme.
type Token struct {
	Type        TokenType
	Lexeme      string // raw source text for the token (identifiers, keywords, operators)
	StringValue string // unescaped content, for String tokens only
	NumberValue float64
	Position    source.Position
}

func newToken(typ TokenType, lexeme string, pos source.Position) Token {
	return Token{Type: typ, Lexeme: lexeme, Position: pos}
}
