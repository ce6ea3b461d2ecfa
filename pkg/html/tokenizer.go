package html

import "strings"

type TokenType int

const (
	TokenText TokenType = iota
	TokenTag
	TokenEOF
)

// Token is either a run of text or the raw body of a tag: everything
// between '<' and '>', not yet split into name and attributes.
type Token struct {
	Type TokenType
	Text string
}

// Tokenizer scans markup one character at a time. It never fails: any text
// between '<' and '>' is a tag body, and an unterminated comment ends the
// input.
type Tokenizer struct {
	input  string
	pos    int
	buffer strings.Builder
	inTag  bool
	done   bool
}

func NewTokenizer(markup string) *Tokenizer {
	return &Tokenizer{input: markup}
}

func (t *Tokenizer) NextToken() Token {
	for t.pos < len(t.input) {
		if strings.HasPrefix(t.input[t.pos:], "<!--") {
			if !t.skipComment() {
				break
			}
			continue
		}
		c := t.input[t.pos]
		t.pos++
		switch c {
		case '<':
			t.inTag = true
			if text := t.take(); text != "" {
				return Token{Type: TokenText, Text: text}
			}
		case '>':
			t.inTag = false
			return Token{Type: TokenTag, Text: t.take()}
		default:
			t.buffer.WriteByte(c)
		}
	}

	if !t.done {
		t.done = true
		if text := t.take(); text != "" && !t.inTag {
			return Token{Type: TokenText, Text: text}
		}
	}
	return Token{Type: TokenEOF}
}

// skipComment moves past a <!-- ... --> span. When the comment is never
// closed it consumes the rest of the input and returns false.
func (t *Tokenizer) skipComment() bool {
	end := strings.Index(t.input[t.pos+len("<!--"):], "-->")
	if end < 0 {
		t.pos = len(t.input)
		return false
	}
	t.pos += len("<!--") + end + len("-->")
	return true
}

func (t *Tokenizer) take() string {
	s := t.buffer.String()
	t.buffer.Reset()
	return s
}
