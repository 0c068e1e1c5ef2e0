// Package token splits the s-expression text form of the IR into tokens.
//
// Quoted strings carry op kinds and symbol names. Numbers carry attribute values
// and static dimensions. Everything else is an identifier: clause keywords such as
// op or operands, type names, $value names and the "?" dynamic dimension.
package token

import (
	"strings"
	"unicode"
)

// Type classifies a token.
type Type int

const (
	LParen Type = iota
	RParen
	Ident
	String
	Number
)

var typeNames = [...]string{
	LParen: "'('",
	RParen: "')'",
	Ident:  "identifier",
	String: "string",
	Number: "number",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Token is a lexical token. String tokens keep their escapes; the parser unquotes them.
type Token struct {
	Value string
	Type  Type
	Line  int
}

// Tokenize splits input into tokens. ";;" comments run to the end of the line and
// "(; ;)" comments may nest. Unterminated strings and comments end at end of input.
func Tokenize(input string) []Token {
	s := &scanner{src: []rune(input), line: 1}
	for s.pos < len(s.src) {
		s.step()
	}
	return s.tokens
}

type scanner struct {
	src    []rune
	tokens []Token
	pos    int
	line   int
}

func (s *scanner) at(off int) rune {
	if i := s.pos + off; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

func (s *scanner) emit(typ Type, value string, line int) {
	s.tokens = append(s.tokens, Token{Value: value, Type: typ, Line: line})
}

func (s *scanner) step() {
	r := s.src[s.pos]
	switch {
	case r == '\n':
		s.line++
		s.pos++
	case unicode.IsSpace(r):
		s.pos++
	case r == ';' && s.at(1) == ';':
		for s.pos < len(s.src) && s.src[s.pos] != '\n' {
			s.pos++
		}
	case r == '(' && s.at(1) == ';':
		s.skipBlockComment()
	case r == '(':
		s.emit(LParen, "(", s.line)
		s.pos++
	case r == ')':
		s.emit(RParen, ")", s.line)
		s.pos++
	case r == '"':
		s.scanString()
	case unicode.IsDigit(r), (r == '-' || r == '+') && unicode.IsDigit(s.at(1)):
		start := s.pos
		s.pos++
		s.emit(Number, s.takeFrom(start, isNumberRune), s.line)
	case r == '$' || r == '?' || r == '_' || r == '.' || unicode.IsLetter(r):
		s.emit(Ident, s.takeFrom(s.pos, isIdentRune), s.line)
	default:
		// A stray rune reaches the parser as a one-rune identifier on its line.
		s.emit(Ident, string(r), s.line)
		s.pos++
	}
}

// takeFrom advances past every rune accepted by ok and returns the text since start.
func (s *scanner) takeFrom(start int, ok func(rune) bool) string {
	for s.pos < len(s.src) && ok(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) skipBlockComment() {
	depth := 0
	for s.pos < len(s.src) {
		switch {
		case s.src[s.pos] == '(' && s.at(1) == ';':
			depth++
			s.pos += 2
		case s.src[s.pos] == ';' && s.at(1) == ')':
			depth--
			s.pos += 2
			if depth == 0 {
				return
			}
		default:
			if s.src[s.pos] == '\n' {
				s.line++
			}
			s.pos++
		}
	}
}

// scanString reads a quoted string. The token takes the line of its opening quote.
func (s *scanner) scanString() {
	line := s.line
	s.pos++
	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '"' {
		if s.src[s.pos] == '\\' {
			s.pos++
		} else if s.src[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
	end := min(s.pos, len(s.src))
	s.emit(String, string(s.src[start:end]), line)
	s.pos++
}

// isNumberRune accepts decimal and hex digits, the 0x prefix and _ separators.
func isNumberRune(r rune) bool {
	switch {
	case unicode.IsDigit(r), r == '_', r == 'x', r == 'X':
		return true
	case r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		return true
	}
	return false
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.$-?", r)
}
