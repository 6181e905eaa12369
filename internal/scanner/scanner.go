// Package scanner turns a complete source string into a sequence of tokens
// (spec.md §4.1).
package scanner

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/token"
)

// Scanner reads a Lox-family source string into tokens.
type Scanner struct {
	source string
	tokens []token.Token
	sink   *diag.Sink

	start   int
	current int
	line    int
}

// New returns a Scanner over source. Errors encountered while scanning are
// reported to sink; scanning continues past them so a single pass can
// surface multiple lexical errors (spec.md §4.1 "Error behavior").
func New(source string, sink *diag.Sink) *Scanner {
	return &Scanner{source: source, sink: sink, line: 1}
}

// ScanTokens scans the entire source and returns the token sequence,
// terminated by a synthetic EOF token at the final line.
func (s *Scanner) ScanTokens() []token.Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.New(token.EOF, "", nil, s.line))
	logrus.WithField("count", len(s.tokens)).Debug("scanner: finished")
	return s.tokens
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) addToken(typ token.Type) {
	s.addTokenLiteral(typ, nil)
}

func (s *Scanner) addTokenLiteral(typ token.Type, literal interface{}) {
	text := s.source[s.start:s.current]
	s.tokens = append(s.tokens, token.New(typ, text, literal, s.line))
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		s.addToken(tern(s.match('='), token.BangEqual, token.Bang))
	case '=':
		s.addToken(tern(s.match('='), token.EqualEqual, token.Equal))
	case '<':
		s.addToken(tern(s.match('='), token.LessEqual, token.Less))
	case '>':
		s.addToken(tern(s.match('='), token.GreaterEqual, token.Greater))
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case ' ', '\r', '\t':
		// skip whitespace
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.sink.Error(s.line, "Unexpected character.")
		}
	}
}

func tern(cond bool, a, b token.Type) token.Type {
	if cond {
		return a
	}
	return b
}

func (s *Scanner) scanString() {
	startLine := s.line
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.sink.Error(startLine, "Unterminated string.")
		return
	}
	s.advance() // closing quote
	value := s.source[s.start+1 : s.current-1]
	s.addTokenLiteral(token.String, value)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	value, err := strconv.ParseFloat(s.source[s.start:s.current], 64)
	if err != nil {
		s.sink.Error(s.line, "Invalid number literal.")
		return
	}
	s.addTokenLiteral(token.Number, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	if typ, ok := token.Keywords[text]; ok {
		s.addToken(typ)
		return
	}
	s.addToken(token.Identifier)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
