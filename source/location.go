package source

import "fmt"

// Point is a single position in a source file.
//
// Index is the zero-based byte offset. Line and Column are one-based; a
// zero Line marks the point as unset.
type Point struct {
	Index  int `json:"index"  yaml:"index"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// IsZero reports whether p is the unset point.
func (p Point) IsZero() bool {
	return p == Point{}
}

// String returns p as "line:column".
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a range of source text. End is inclusive of the last
// character of the range.
type Location struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end"   yaml:"end"`
}

// EmptyLocation is the sentinel location of a lexical unit with no tokens.
var EmptyLocation = Location{}

// Join returns the location spanning from the start of first to the end of
// last. Tokens between the two are not consulted.
func Join(first, last Location) Location {
	return Location{
		Start: first.Start,
		End:   last.End,
	}
}

// IsEmpty reports whether l is [EmptyLocation].
func (l Location) IsEmpty() bool {
	return l == EmptyLocation
}

// LineNumber returns the line on which l starts, or 0 for [EmptyLocation].
func (l Location) LineNumber() int {
	return l.Start.Line
}

// LineSpan returns the number of lines covered by l.
func (l Location) LineSpan() int {
	if l.IsEmpty() {
		return 0
	}

	return l.End.Line - l.Start.Line + 1
}

// String returns l as "start-end", or "-" for [EmptyLocation].
func (l Location) String() string {
	if l.IsEmpty() {
		return "-"
	}

	return l.Start.String() + "-" + l.End.String()
}
