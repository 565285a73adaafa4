/*
File    : golox/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"testing"

	"github.com/akashmaji946/golox/diag"
	"github.com/stretchr/testify/assert"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanPunctuationAndOperators(t *testing.T) {
	tokens, errs := New("(){},.-+;*/ ! != = == < <= > >=").Scan()
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{
		LeftParen, RightParen, LeftBrace, RightBrace, Comma, Dot, Minus, Plus,
		Semicolon, Star, Slash, Bang, BangEqual, Equal, EqualEqual, Less,
		LessEqual, Greater, GreaterEqual,
	}, tokenTypes(tokens))
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens, errs := New("and class else false for fun if nil or print return super this true var while myVar").Scan()
	assert.Empty(t, errs)
	want := []TokenType{And, Class, Else, False, For, Fun, If, Nil, Or, Print,
		Return, Super, This, True, Var, While, Identifier}
	assert.Equal(t, want, tokenTypes(tokens))
	assert.Equal(t, "myVar", tokens[len(tokens)-1].Lexeme)
}

func TestScanNumberLiteral(t *testing.T) {
	tokens, errs := New("123 3.14 4.").Scan()
	assert.Empty(t, errs)
	assert.Len(t, tokens, 4) // "4." lexes as Number(4) followed by Dot
	assert.Equal(t, 123.0, tokens[0].NumberValue)
	assert.Equal(t, 3.14, tokens[1].NumberValue)
	assert.Equal(t, 4.0, tokens[2].NumberValue)
	assert.Equal(t, Dot, tokens[3].Type)
}

func TestScanStringLiteralExcludesQuotesFromValue(t *testing.T) {
	tokens, errs := New(`"hello there"`).Scan()
	assert.Empty(t, errs)
	assert.Len(t, tokens, 1)
	assert.Equal(t, String, tokens[0].Type)
	assert.Equal(t, "hello there", tokens[0].StringValue)
	assert.Equal(t, 0, tokens[0].Position.Absolute)
	assert.Equal(t, 13, tokens[0].Position.Length)
}

func TestUnterminatedStringHaltsScanning(t *testing.T) {
	tokens, errs := New(`"abc`).Scan()
	assert.Empty(t, tokens)
	assert.Len(t, errs, 1)
	_, ok := errs[0].(*diag.UnclosedDelimiter)
	assert.True(t, ok)
}

func TestLineCommentIsSkipped(t *testing.T) {
	tokens, errs := New("1 + 2 // this is a comment\n+ 3").Scan()
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{Number, Plus, Number, Plus, Number}, tokenTypes(tokens))
}

func TestTokenPositionsCoverTheirLexeme(t *testing.T) {
	src := "var x = 42;"
	tokens, errs := New(src).Scan()
	assert.Empty(t, errs)
	for _, tok := range tokens {
		assert.Equal(t, tok.Lexeme, src[tok.Position.Absolute:tok.Position.End()])
	}
}

func TestUnrecognizedCharacterHaltsScanning(t *testing.T) {
	tokens, errs := New("1 + @").Scan()
	assert.Equal(t, []TokenType{Number, Plus}, tokenTypes(tokens))
	assert.Len(t, errs, 1)
}
