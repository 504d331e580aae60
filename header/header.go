package header

import (
	"errors"
	"fmt"

	"github.com/Hengle/StyleCop/source"
)

// ErrInvalidArgument indicates that a required input to [New] is absent.
var ErrInvalidArgument = errors.New("invalid argument")

// Outcome describes how the header text was interpreted.
type Outcome int

const (
	// OutcomeEmpty means the header text was empty; no markup was built.
	OutcomeEmpty Outcome = iota
	// OutcomeParsed means the wrapped markup parsed and markers were checked.
	OutcomeParsed
	// OutcomeMalformed means the wrapped markup did not parse; all signals
	// keep their defaults.
	OutcomeMalformed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeParsed:
		return "parsed"
	case OutcomeMalformed:
		return "malformed"
	}

	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Header is the classified leading comment block of a source file.
//
// Create instances with [New]. A Header never changes after construction.
type Header struct {
	parseErr  error
	parent    source.ElementRef
	text      string
	markup    string
	tokens    []source.Token
	markers   []string
	location  source.Location
	outcome   Outcome
	generated bool
	unstyled  bool
}

// New classifies a file header.
//
// The text is the header as lexed, tokens are the tokens that make it up
// (possibly empty, but not nil), and parent refers to the code element that
// encloses the header. A nil tokens slice or a zero parent reference
// returns an error wrapping [ErrInvalidArgument].
//
// Malformed header markup is not an error; see [Header.Outcome].
func New(text string, tokens []source.Token, parent source.ElementRef) (*Header, error) {
	if tokens == nil {
		return nil, fmt.Errorf("%w: tokens must not be nil", ErrInvalidArgument)
	}

	if parent.IsZero() {
		return nil, fmt.Errorf("%w: parent must not be empty", ErrInvalidArgument)
	}

	h := &Header{
		text:     text,
		tokens:   tokens,
		parent:   parent,
		location: span(tokens),
	}

	if text == "" {
		return h, nil
	}

	h.markup = Wrap(text)

	res := parseMarkup(h.markup)
	if !res.ok() {
		h.outcome = OutcomeMalformed
		h.parseErr = res.err

		return h, nil
	}

	h.outcome = OutcomeParsed
	h.markers = res.children
	h.generated = isGenerated(res.unqualified)
	h.unstyled = isUnstyled(res.unqualified)

	return h, nil
}

// FromOptional is like [New], but also treats a nil text as absent.
func FromOptional(text *string, tokens []source.Token, parent source.ElementRef) (*Header, error) {
	if text == nil {
		return nil, fmt.Errorf("%w: text must not be nil", ErrInvalidArgument)
	}

	return New(*text, tokens, parent)
}

func span(tokens []source.Token) source.Location {
	if len(tokens) == 0 {
		return source.EmptyLocation
	}

	return source.Join(tokens[0].Location, tokens[len(tokens)-1].Location)
}

// Text returns the header text exactly as lexed.
func (h *Header) Text() string {
	return h.text
}

// Markup returns the synthetic markup document built from the header text.
// The second result is false when the text is empty. A returned document
// is not necessarily well-formed.
func (h *Header) Markup() (string, bool) {
	return h.markup, h.outcome != OutcomeEmpty
}

// Generated reports whether the header marks the file as generated by a
// tool.
func (h *Header) Generated() bool {
	return h.generated
}

// Unstyled reports whether the header opts the file out of style checking.
func (h *Header) Unstyled() bool {
	return h.unstyled
}

// Outcome reports how the header text was interpreted.
func (h *Header) Outcome() Outcome {
	return h.outcome
}

// ParseErr returns the reason the markup was malformed, or nil.
func (h *Header) ParseErr() error {
	return h.parseErr
}

// Markers returns the qualified names of the direct children of the
// synthetic root element, in document order. It is nil unless the markup
// parsed.
func (h *Header) Markers() []string {
	return h.markers
}

// Location returns the span from the first to the last header token, or
// [source.EmptyLocation] if there are none.
func (h *Header) Location() source.Location {
	return h.location
}

// LineNumber returns the line the header starts on, or 0 if it has no
// tokens.
func (h *Header) LineNumber() int {
	return h.location.LineNumber()
}

// Tokens returns the tokens that make up the header. Callers must not
// modify the returned slice.
func (h *Header) Tokens() []source.Token {
	return h.tokens
}

// ParentRef returns the reference to the enclosing code element.
func (h *Header) ParentRef() source.ElementRef {
	return h.parent
}

// Parent resolves the enclosing code element. It returns false if the
// element is no longer present in its tree.
func (h *Header) Parent() (source.Element, bool) {
	return h.parent.Resolve()
}
