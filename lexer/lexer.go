/*
File    : golox/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"strconv"
	"unicode"

	"github.com/akashmaji946/golox/diag"
	"github.com/akashmaji946/golox/source"
)

// Lexer turns Lox source text into a flat sequence of Tokens. It is
// deterministic and single-pass: it never panics on malformed input.
// Instead, an unrecognized character or an unterminated string appends a
// diagnostic and halts tokenization, returning whatever tokens were
// produced before the failure.
type Lexer struct {
	it     *source.Iterator
	errors []diag.Diagnostic
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{it: source.New(src)}
}

// Scan tokenizes the entire source, returning every token up to (but not
// including) EOF, plus any diagnostics raised along the way. A non-empty
// diagnostics slice means tokenization stopped early.
func (l *Lexer) Scan() ([]Token, []diag.Diagnostic) {
	tokens := make([]Token, 0)
	for {
		tok, ok := l.nextToken()
		if !ok {
			break
		}
		if tok.Type == EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.errors
}

func (l *Lexer) addError(d diag.Diagnostic) {
	l.errors = append(l.errors, d)
}

// nextToken scans and returns the next token. ok is false once scanning
// has been halted by an error; callers must stop calling nextToken then.
func (l *Lexer) nextToken() (Token, bool) {
	if len(l.errors) > 0 {
		return Token{}, false
	}

	l.skipWhitespaceAndComments()

	start := l.it.Position()
	entry, ok := l.it.Next()
	if !ok {
		return newToken(EOF, "", source.Position{Absolute: start, Length: 0}), true
	}

	switch entry.Value {
	case '(':
		return l.single(LeftParen, start), true
	case ')':
		return l.single(RightParen, start), true
	case '{':
		return l.single(LeftBrace, start), true
	case '}':
		return l.single(RightBrace, start), true
	case ',':
		return l.single(Comma, start), true
	case '.':
		return l.single(Dot, start), true
	case '-':
		return l.single(Minus, start), true
	case '+':
		return l.single(Plus, start), true
	case ';':
		return l.single(Semicolon, start), true
	case '*':
		return l.single(Star, start), true
	case '/':
		return l.single(Slash, start), true
	case '!':
		return l.oneOrTwo(start, Bang, BangEqual), true
	case '=':
		return l.oneOrTwo(start, Equal, EqualEqual), true
	case '<':
		return l.oneOrTwo(start, Less, LessEqual), true
	case '>':
		return l.oneOrTwo(start, Greater, GreaterEqual), true
	case '"':
		return l.readString(start)
	default:
		if isDigit(entry.Value) {
			return l.readNumber(start), true
		}
		if isAlpha(entry.Value) {
			return l.readIdentifier(start), true
		}
		l.addError(&diag.IllegalToken{
			Pos:   source.Position{Absolute: start, Length: l.it.Position() - start},
			Found: string(entry.Value),
		})
		return Token{}, false
	}
}

// single builds a one-character token whose span runs from start to the
// iterator's current (post-consumption) position.
func (l *Lexer) single(typ TokenType, start int) Token {
	return newToken(typ, l.it.Substring(start, l.it.Position()-1), source.Position{
		Absolute: start,
		Length:   l.it.Position() - start,
	})
}

// oneOrTwo consumes a trailing '=' if present, choosing between the
// one-character and two-character token type accordingly.
func (l *Lexer) oneOrTwo(start int, one, two TokenType) Token {
	typ := one
	if l.it.NextIfMatch('=') {
		typ = two
	}
	return newToken(typ, l.it.Substring(start, l.it.Position()-1), source.Position{
		Absolute: start,
		Length:   l.it.Position() - start,
	})
}

// skipWhitespaceAndComments advances past runs of whitespace and `//` line
// comments, which never themselves become tokens.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		r, ok := l.it.Peek()
		if !ok {
			return
		}
		switch {
		case r == ' ' || r == '\r' || r == '\t' || r == '\n':
			l.it.Next()
		case r == '/' && l.peekNextIs('/'):
			l.it.Next()
			l.it.Next()
			for {
				r, ok := l.it.Peek()
				if !ok || r == '\n' {
					break
				}
				l.it.Next()
			}
		default:
			return
		}
	}
}

func (l *Lexer) peekNextIs(expected rune) bool {
	r, ok := l.it.PeekNext()
	return ok && r == expected
}

// readString scans a string literal starting just after the opening
// quote has already been consumed by nextToken. The lexeme span covers
// both quotes; the token's StringValue excludes them.
func (l *Lexer) readString(start int) (Token, bool) {
	_, ok := l.it.ScanUntil('"')
	if !ok {
		l.addError(&diag.UnclosedDelimiter{
			Open: source.Position{Absolute: start, Length: 1},
			End:  source.Position{Absolute: l.it.Position(), Length: 0},
		})
		return Token{}, false
	}
	end := l.it.Position() - 1
	lexeme := l.it.Substring(start, end)
	tok := newToken(String, lexeme, source.Position{Absolute: start, Length: end - start + 1})
	tok.StringValue = lexeme[1 : len(lexeme)-1]
	return tok, true
}

// readNumber scans digits, optionally followed by a '.' and more digits.
// A trailing '.' not followed by a digit is left for the next token.
func (l *Lexer) readNumber(start int) Token {
	for {
		r, ok := l.it.Peek()
		if !ok || !isDigit(r) {
			break
		}
		l.it.Next()
	}
	if r, ok := l.it.Peek(); ok && r == '.' {
		if next, ok := l.it.PeekNext(); ok && isDigit(next) {
			l.it.Next() // consume '.'
			for {
				r, ok := l.it.Peek()
				if !ok || !isDigit(r) {
					break
				}
				l.it.Next()
			}
		}
	}
	end := l.it.Position() - 1
	lexeme := l.it.Substring(start, end)
	tok := newToken(Number, lexeme, source.Position{Absolute: start, Length: end - start + 1})
	value, _ := strconv.ParseFloat(lexeme, 64)
	tok.NumberValue = value
	return tok
}

// readIdentifier scans an identifier-shaped lexeme and classifies it as a
// keyword or a plain identifier.
func (l *Lexer) readIdentifier(start int) Token {
	for {
		r, ok := l.it.Peek()
		if !ok || !isAlphaNumeric(r) {
			break
		}
		l.it.Next()
	}
	end := l.it.Position() - 1
	lexeme := l.it.Substring(start, end)
	typ := Identifier
	if kw, ok := keywords[lexeme]; ok {
		typ = kw
	}
	return newToken(typ, lexeme, source.Position{Absolute: start, Length: end - start + 1})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

// Keyword reports whether lexeme names one of the language's reserved
// words, and which token type it would lex to.
func Keyword(lexeme string) (TokenType, bool) {
	typ, ok := keywords[lexeme]
	return typ, ok
}
