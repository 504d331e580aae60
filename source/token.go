package source

// Kind classifies a [Token].
type Kind int

// Token kinds produced for the leading trivia of a file.
const (
	KindOther Kind = iota
	KindWhitespace
	KindEndOfLine
	KindSingleLineComment
	KindMultiLineComment
)

var kindNames = map[Kind]string{
	KindOther:             "other",
	KindWhitespace:        "whitespace",
	KindEndOfLine:         "end-of-line",
	KindSingleLineComment: "single-line-comment",
	KindMultiLineComment:  "multi-line-comment",
}

// String returns the kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "unknown"
}

// IsComment reports whether k is a comment kind.
func (k Kind) IsComment() bool {
	return k == KindSingleLineComment || k == KindMultiLineComment
}

// Token is one lexical unit. Text holds the token exactly as it appears in
// the file, including comment delimiters.
type Token struct {
	Text     string
	Location Location
	Kind     Kind
}
