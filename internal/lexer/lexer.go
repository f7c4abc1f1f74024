// Package lexer turns HKSL source text into a stream of tokens.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/hksl-lang/hksl/internal/errorsx"
	"github.com/hksl-lang/hksl/internal/token"
)

// Error is a fatal lexical error. CollectTokens reports only an unexpected
// character: two-character forms are recognized by lookahead, so EOF never
// cuts a token short. Lexer errors abort compilation immediately (spec §7)
// rather than accumulating.
type Error struct {
	Span token.Span
	Msg  string
}

func (e *Error) Error() string {
	return errorsx.New(e.Span, "%s", e.Msg).String()
}

// Lexer scans a NUL-terminated-in-spirit byte buffer one character at a
// time, mirroring the teacher's next/peek/peekTwo scanner shape.
type Lexer struct {
	src  []byte
	idx  int // index of the last character returned by next(); -1 before start
	line int
	col  int
}

// New constructs a Lexer over source text.
func New(source string) *Lexer {
	return &Lexer{
		src:  []byte(source),
		idx:  -1,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) atEnd() bool {
	return l.idx >= len(l.src)-1
}

// next advances and returns the new current character. Returns false at EOF.
func (l *Lexer) next() bool {
	if l.atEnd() {
		return false
	}
	l.idx++
	if l.src[l.idx] == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return true
}

func (l *Lexer) cur() byte {
	return l.src[l.idx]
}

// peek returns the next byte without consuming it, or 0 at EOF.
func (l *Lexer) peek() byte {
	if l.idx+1 >= len(l.src) {
		return 0
	}
	return l.src[l.idx+1]
}

func (l *Lexer) peekTwo() byte {
	if l.idx+2 >= len(l.src) {
		return 0
	}
	return l.src[l.idx+2]
}

// span reports the span of the character currently under the cursor.
func (l *Lexer) span() token.Span {
	return token.Span{Line: l.line, Col: l.col}
}

// CollectTokens drains the lexer until and including Eof, or until a fatal
// lexical error occurs.
func (l *Lexer) CollectTokens() ([]token.Token, error) {
	var toks []token.Token

	for l.next() {
		start := l.span()

		switch c := l.cur(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			// whitespace, nothing to emit

		case c == '/' && l.peek() == '/':
			l.skipLineComment()

		case c == '+' && l.peek() == '=':
			l.next()
			toks = append(toks, token.Token{Kind: token.PlusEqual, Span: start})
		case c == '-' && l.peek() == '=':
			l.next()
			toks = append(toks, token.Token{Kind: token.MinusEqual, Span: start})
		case c == '*' && l.peek() == '=':
			l.next()
			toks = append(toks, token.Token{Kind: token.StarEqual, Span: start})
		case c == '/' && l.peek() == '=':
			l.next()
			toks = append(toks, token.Token{Kind: token.SlashEqual, Span: start})
		case c == '=' && l.peek() == '=':
			l.next()
			toks = append(toks, token.Token{Kind: token.DoubleEquals, Span: start})
		case c == '-' && l.peek() == '>':
			l.next()
			toks = append(toks, token.Token{Kind: token.RightArrow, Span: start})

		case c == '+':
			toks = append(toks, token.Token{Kind: token.Plus, Span: start})
		case c == '-':
			toks = append(toks, token.Token{Kind: token.Minus, Span: start})
		case c == '*':
			toks = append(toks, token.Token{Kind: token.Star, Span: start})
		case c == '/':
			toks = append(toks, token.Token{Kind: token.Slash, Span: start})
		case c == ',':
			toks = append(toks, token.Token{Kind: token.Comma, Span: start})
		case c == '.':
			toks = append(toks, token.Token{Kind: token.Dot, Span: start})
		case c == ';':
			toks = append(toks, token.Token{Kind: token.Semicolon, Span: start})
		case c == ':':
			toks = append(toks, token.Token{Kind: token.Colon, Span: start})
		case c == '=':
			toks = append(toks, token.Token{Kind: token.Equals, Span: start})
		case c == '(':
			toks = append(toks, token.Token{Kind: token.LeftRound, Span: start})
		case c == ')':
			toks = append(toks, token.Token{Kind: token.RightRound, Span: start})
		case c == '[':
			toks = append(toks, token.Token{Kind: token.LeftSquare, Span: start})
		case c == ']':
			toks = append(toks, token.Token{Kind: token.RightSquare, Span: start})
		case c == '{':
			toks = append(toks, token.Token{Kind: token.LeftCurly, Span: start})
		case c == '}':
			toks = append(toks, token.Token{Kind: token.RightCurly, Span: start})

		case isDigit(c):
			value := l.number()
			toks = append(toks, token.Token{Kind: token.Number, Span: start, Value: value})

		case isAlpha(c):
			name := l.identifier()
			if kw, ok := token.Keywords[name]; ok {
				toks = append(toks, token.Token{Kind: kw, Span: start})
			} else {
				toks = append(toks, token.Token{Kind: token.Identifier, Span: start, Name: name})
			}

		default:
			return nil, &Error{Span: start, Msg: fmt.Sprintf("unexpected character: %q", string(c))}
		}
	}

	toks = append(toks, token.Token{Kind: token.Eof, Span: l.span()})
	return toks, nil
}

func (l *Lexer) skipLineComment() {
	for {
		if !l.next() || l.cur() == '\n' {
			return
		}
	}
}

// number lexes `digits ('.' digits)?` starting at the current character.
func (l *Lexer) number() float64 {
	start := l.idx

	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' {
		// "3." parses as 3.0 even with no trailing digits (spec §8 boundary case)
		l.next()
		for isDigit(l.peek()) {
			l.next()
		}
	}

	lexeme := string(l.src[start : l.idx+1])
	f, _ := strconv.ParseFloat(lexeme, 64)
	return f
}

func (l *Lexer) identifier() string {
	start := l.idx
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
	return string(l.src[start : l.idx+1])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
