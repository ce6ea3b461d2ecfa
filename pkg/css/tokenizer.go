package css

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner is the character-level layer under Parser. Every method either
// consumes input and succeeds or leaves an error describing where it stopped.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

// whitespace skips spaces and /* ... */ comments.
func (s *scanner) whitespace() {
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		switch {
		case unicode.IsSpace(r):
			s.pos += size
		case strings.HasPrefix(s.input[s.pos:], "/*"):
			s.skipComment()
		default:
			return
		}
	}
}

// skipComment skips a /* ... */ comment. Assumes pos is at the '/'.
func (s *scanner) skipComment() {
	end := strings.Index(s.input[s.pos+2:], "*/")
	if end < 0 {
		// Unterminated comment: skip to end
		s.pos = len(s.input)
		return
	}
	s.pos += 2 + end + 2
}

// word reads a run of letters, digits and any of "#-.%!".
func (s *scanner) word() (string, error) {
	start := s.pos
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if !isWordRune(r) {
			break
		}
		s.pos += size
	}
	if s.pos == start {
		return "", s.errorf("expected a word")
	}
	return s.input[start:s.pos], nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("#-.%!", r)
}

func (s *scanner) literal(c byte) error {
	if s.peek() != c || s.eof() {
		return s.errorf("expected %q", c)
	}
	s.pos++
	return nil
}

// ignoreUntil advances to the first of chars and returns it without
// consuming it, or returns 0 at end of input.
func (s *scanner) ignoreUntil(chars string) byte {
	for !s.eof() {
		if c := s.input[s.pos]; strings.IndexByte(chars, c) >= 0 {
			return c
		}
		s.pos++
	}
	return 0
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("css: %s at offset %d", fmt.Sprintf(format, args...), s.pos)
}
