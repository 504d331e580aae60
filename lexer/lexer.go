// Package lexer extracts the header of a C#-style source file.
//
// The header is the run of "//" comments at the top of the file, together
// with the whitespace and line breaks between them. It ends at the first
// token that is not whitespace, a line break or a "//" comment, or at a
// blank line after a comment.
package lexer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/Hengle/StyleCop/source"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Result holds the header of one file.
type Result struct {
	// Text is the comment bodies joined with "\n". A body is the comment
	// text after "//", minus one more "/" for "///" comments.
	Text string
	// Tokens runs from the first to the last header comment. It is never
	// nil; a file without a header yields an empty slice.
	Tokens []source.Token
}

// Scan returns the header of src.
func Scan(src []byte) Result {
	s := &scanner{src: src, line: 1, col: 1}
	if bytes.HasPrefix(src, bom) {
		s.pos = len(bom)
	}

	var (
		all         []source.Token
		lastComment = -1
		breaks      int
	)

scan:
	for s.pos < len(s.src) {
		var tok source.Token

		switch c := s.src[s.pos]; {
		case c == ' ' || c == '\t' || c == '\f' || c == '\v':
			tok = s.take(source.KindWhitespace, s.whitespaceLen())

		case c == '\n' || c == '\r':
			if lastComment >= 0 && breaks == 1 {
				break scan
			}

			tok = s.newline()
			breaks++

		case c == '/' && s.peek(1) == '/':
			tok = s.take(source.KindSingleLineComment, s.lineLen())
			lastComment = len(all)
			breaks = 0

		default:
			break scan
		}

		all = append(all, tok)
	}

	if lastComment < 0 {
		return Result{Tokens: []source.Token{}}
	}

	first := 0
	for !all[first].Kind.IsComment() {
		first++
	}

	tokens := all[first : lastComment+1]

	var bodies []string

	for _, tok := range tokens {
		if tok.Kind == source.KindSingleLineComment {
			bodies = append(bodies, commentBody(tok.Text))
		}
	}

	return Result{
		Text:   strings.Join(bodies, "\n"),
		Tokens: tokens,
	}
}

func commentBody(text string) string {
	body := strings.TrimPrefix(text, "//")

	return strings.TrimPrefix(body, "/")
}

type scanner struct {
	src  []byte
	pos  int
	line int
	col  int
}

func (s *scanner) peek(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}

	return s.src[s.pos+n]
}

func (s *scanner) whitespaceLen() int {
	n := 0
	for s.pos+n < len(s.src) {
		switch s.src[s.pos+n] {
		case ' ', '\t', '\f', '\v':
			n++
		default:
			return n
		}
	}

	return n
}

func (s *scanner) lineLen() int {
	n := bytes.IndexAny(s.src[s.pos:], "\r\n")
	if n < 0 {
		return len(s.src) - s.pos
	}

	return n
}

// take consumes n bytes on the current line as one token.
func (s *scanner) take(kind source.Kind, n int) source.Token {
	text := string(s.src[s.pos : s.pos+n])
	width := utf8.RuneCountInString(text)

	tok := source.Token{
		Kind: kind,
		Text: text,
		Location: source.Location{
			Start: source.Point{Index: s.pos, Line: s.line, Column: s.col},
			End:   source.Point{Index: s.pos + n - 1, Line: s.line, Column: s.col + width - 1},
		},
	}

	s.pos += n
	s.col += width

	return tok
}

// newline consumes one "\n", "\r\n" or "\r" sequence.
func (s *scanner) newline() source.Token {
	n := 1
	if s.src[s.pos] == '\r' && s.peek(1) == '\n' {
		n = 2
	}

	tok := s.take(source.KindEndOfLine, n)
	s.line++
	s.col = 1

	return tok
}
