package header_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hengle/StyleCop/header"
	"github.com/Hengle/StyleCop/source"
	"github.com/Hengle/StyleCop/stringtest"
)

func newParent(t *testing.T) source.ElementRef {
	t.Helper()

	tree := source.NewTree()
	doc := tree.Add(source.NoElement, source.ElementDocument, "File.cs")

	return tree.Ref(doc)
}

func TestClassification(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text          string
		wantMarkers   []string
		wantOutcome   header.Outcome
		wantGenerated bool
		wantUnstyled  bool
	}{
		"empty": {
			text:        "",
			wantOutcome: header.OutcomeEmpty,
		},
		"self-closing autogenerated": {
			text:          "<autogenerated/>",
			wantOutcome:   header.OutcomeParsed,
			wantMarkers:   []string{"autogenerated"},
			wantGenerated: true,
		},
		"hyphenated auto-generated": {
			text:          "<auto-generated></auto-generated>",
			wantOutcome:   header.OutcomeParsed,
			wantMarkers:   []string{"auto-generated"},
			wantGenerated: true,
		},
		"generated marker is case-sensitive": {
			text:        "<AUTOGENERATED/>",
			wantOutcome: header.OutcomeParsed,
			wantMarkers: []string{"AUTOGENERATED"},
		},
		"mixed-case hyphenated marker": {
			text:        "<Auto-Generated/>",
			wantOutcome: header.OutcomeParsed,
			wantMarkers: []string{"Auto-Generated"},
		},
		"stylecopoff ignores case": {
			text:         "<StyleCopOff/>",
			wantOutcome:  header.OutcomeParsed,
			wantMarkers:  []string{"StyleCopOff"},
			wantUnstyled: true,
		},
		"unstyled": {
			text:         "<unstyled/>",
			wantOutcome:  header.OutcomeParsed,
			wantMarkers:  []string{"unstyled"},
			wantUnstyled: true,
		},
		"nostyle upper case": {
			text:         "<NOSTYLE></NOSTYLE>",
			wantOutcome:  header.OutcomeParsed,
			wantMarkers:  []string{"NOSTYLE"},
			wantUnstyled: true,
		},
		"both markers": {
			text:          "<autogenerated/><nostyle/>",
			wantOutcome:   header.OutcomeParsed,
			wantMarkers:   []string{"autogenerated", "nostyle"},
			wantGenerated: true,
			wantUnstyled:  true,
		},
		"plain prose": {
			text:        "Copyright (c) Contoso. All rights reserved.",
			wantOutcome: header.OutcomeParsed,
		},
		"ampersand in prose": {
			text:        "A & B",
			wantOutcome: header.OutcomeParsed,
		},
		"encoded entity in prose": {
			text:        "Tom &amp; Jerry",
			wantOutcome: header.OutcomeParsed,
		},
		"unclosed tag": {
			text:        "<unclosed",
			wantOutcome: header.OutcomeMalformed,
		},
		"less-than in prose": {
			text:        "if a < b then <autogenerated/>",
			wantOutcome: header.OutcomeMalformed,
		},
		"mismatched tags": {
			text:        "<autogenerated></nostyle>",
			wantOutcome: header.OutcomeMalformed,
		},
		"stray end tag": {
			text:        "</autogenerated>",
			wantOutcome: header.OutcomeMalformed,
		},
		"closes the synthetic root early": {
			text:        "text</root>more",
			wantOutcome: header.OutcomeMalformed,
		},
		"second root element": {
			text:        "</root><root>",
			wantOutcome: header.OutcomeMalformed,
		},
		"illegal character": {
			text:        "<autogenerated/>\x01",
			wantOutcome: header.OutcomeMalformed,
		},
		"markup declaration": {
			text:        `<?xml version="1.0"?><autogenerated/>`,
			wantOutcome: header.OutcomeMalformed,
		},
		"doctype directive": {
			text:        "<!DOCTYPE html><autogenerated/>",
			wantOutcome: header.OutcomeMalformed,
		},
		"unquoted attribute": {
			text:        "<autogenerated by=tool/>",
			wantOutcome: header.OutcomeMalformed,
		},
		"duplicate attribute": {
			text:        `<autogenerated by="a" by="b"/>`,
			wantOutcome: header.OutcomeMalformed,
		},
		"undeclared prefix": {
			text:        "<x:autogenerated/>",
			wantOutcome: header.OutcomeMalformed,
		},
		"declared prefix is part of the name": {
			text:        `<x:autogenerated xmlns:x="urn:tools"/>`,
			wantOutcome: header.OutcomeParsed,
			wantMarkers: []string{"x:autogenerated"},
		},
		"prefix declared on an ancestor": {
			text:        `<copyright xmlns:x="urn:tools"><x:note/></copyright>`,
			wantOutcome: header.OutcomeParsed,
			wantMarkers: []string{"copyright"},
		},
		"default namespace is not a marker": {
			text:        `<autogenerated xmlns="urn:tools"/><nostyle xmlns="urn:tools"/>`,
			wantOutcome: header.OutcomeParsed,
			wantMarkers: []string{"autogenerated", "nostyle"},
		},
		"empty default namespace still matches": {
			text:          `<autogenerated xmlns=""/>`,
			wantOutcome:   header.OutcomeParsed,
			wantMarkers:   []string{"autogenerated"},
			wantGenerated: true,
		},
		"namespaced sibling does not hide a marker": {
			text:         `<nostyle xmlns="urn:tools"/><StyleCopOff/>`,
			wantOutcome:  header.OutcomeParsed,
			wantMarkers:  []string{"nostyle", "StyleCopOff"},
			wantUnstyled: true,
		},
		"reserved xmlns prefix on element": {
			text:        "<xmlns:foo/><nostyle/>",
			wantOutcome: header.OutcomeMalformed,
		},
		"xmlns prefix on attribute is a declaration": {
			text:         `<nostyle xmlns:foo="urn:tools"/>`,
			wantOutcome:  header.OutcomeParsed,
			wantMarkers:  []string{"nostyle"},
			wantUnstyled: true,
		},
		"nested markers are ignored": {
			text:        "<copyright><autogenerated/><nostyle/></copyright>",
			wantOutcome: header.OutcomeParsed,
			wantMarkers: []string{"copyright"},
		},
		"comment is not a marker": {
			text:        "<!-- autogenerated -->",
			wantOutcome: header.OutcomeParsed,
		},
		"processing instruction is allowed": {
			text:         "<?tool run?><nostyle/>",
			wantOutcome:  header.OutcomeParsed,
			wantMarkers:  []string{"nostyle"},
			wantUnstyled: true,
		},
		"typical generated header": {
			text: stringtest.JoinLF(
				" <auto-generated>",
				"     This code was generated by a tool.",
				"     Runtime Version:4.0.30319.42000",
				"",
				"     Changes to this file may cause incorrect behavior & will be lost.",
				" </auto-generated>",
			),
			wantOutcome:   header.OutcomeParsed,
			wantMarkers:   []string{"auto-generated"},
			wantGenerated: true,
		},
		"typical copyright header": {
			text: stringtest.JoinLF(
				` <copyright file="Program.cs" company="Contoso">`,
				"   Copyright (c) Contoso. All rights reserved.",
				" </copyright>",
				` <summary>Entry point.</summary>`,
			),
			wantOutcome: header.OutcomeParsed,
			wantMarkers: []string{"copyright", "summary"},
		},
		"crlf line endings": {
			text: stringtest.JoinCRLF(
				` <copyright file="Legacy.cs" company="Contoso"/>`,
				" <StyleCopOff/>",
			),
			wantOutcome:  header.OutcomeParsed,
			wantMarkers:  []string{"copyright", "StyleCopOff"},
			wantUnstyled: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := header.New(tc.text, []source.Token{}, newParent(t))
			require.NoError(t, err)

			assert.Equal(t, tc.text, h.Text())
			assert.Equal(t, tc.wantOutcome, h.Outcome())
			assert.Equal(t, tc.wantGenerated, h.Generated())
			assert.Equal(t, tc.wantUnstyled, h.Unstyled())
			assert.Equal(t, tc.wantMarkers, h.Markers())

			markup, ok := h.Markup()

			switch tc.wantOutcome {
			case header.OutcomeEmpty:
				assert.False(t, ok)
				assert.Empty(t, markup)
				require.NoError(t, h.ParseErr())

			case header.OutcomeParsed:
				assert.True(t, ok)
				assert.Equal(t, header.Wrap(tc.text), markup)
				require.NoError(t, h.ParseErr())

			case header.OutcomeMalformed:
				assert.True(t, ok)
				assert.Equal(t, header.Wrap(tc.text), markup)
				require.Error(t, h.ParseErr())
			}
		})
	}
}

func TestMarkup(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text string
		want string
	}{
		"ampersand": {
			text: "A & B",
			want: "<root>A &amp; B</root>",
		},
		"already encoded": {
			text: "&amp;",
			want: "<root>&amp;amp;</root>",
		},
		"angle brackets are kept": {
			text: "a < b > c",
			want: "<root>a < b > c</root>",
		},
		"quotes are kept": {
			text: `say "hi" & 'bye'`,
			want: `<root>say "hi" &amp; 'bye'</root>`,
		},
		"unclosed": {
			text: "<unclosed",
			want: "<root><unclosed</root>",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := header.New(tc.text, []source.Token{}, newParent(t))
			require.NoError(t, err)

			markup, ok := h.Markup()
			require.True(t, ok)
			assert.Equal(t, tc.want, markup)
			assert.Equal(t, tc.want, header.Wrap(tc.text))
		})
	}
}

func TestEncodeAmpersands(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty":        {input: "", want: ""},
		"none":         {input: "plain", want: "plain"},
		"single":       {input: "&", want: "&amp;"},
		"repeated":     {input: "&&", want: "&amp;&amp;"},
		"entity":       {input: "&lt;", want: "&amp;lt;"},
		"other markup": {input: `<a href="x">'`, want: `<a href="x">'`},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, header.EncodeAmpersands(tc.input))
		})
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	tok := func(line, startCol, endCol, index int) source.Token {
		return source.Token{
			Kind: source.KindSingleLineComment,
			Location: source.Location{
				Start: source.Point{Index: index, Line: line, Column: startCol},
				End:   source.Point{Index: index + endCol - startCol, Line: line, Column: endCol},
			},
		}
	}

	tcs := map[string]struct {
		tokens   []source.Token
		want     source.Location
		wantLine int
	}{
		"no tokens": {
			tokens:   []source.Token{},
			want:     source.EmptyLocation,
			wantLine: 0,
		},
		"single token": {
			tokens: []source.Token{tok(1, 1, 12, 0)},
			want: source.Location{
				Start: source.Point{Index: 0, Line: 1, Column: 1},
				End:   source.Point{Index: 11, Line: 1, Column: 12},
			},
			wantLine: 1,
		},
		"many tokens": {
			tokens: []source.Token{
				tok(2, 5, 20, 30),
				tok(3, 1, 40, 60),
				tok(4, 1, 3, 101),
				tok(5, 1, 9, 105),
			},
			want: source.Location{
				Start: source.Point{Index: 30, Line: 2, Column: 5},
				End:   source.Point{Index: 113, Line: 5, Column: 9},
			},
			wantLine: 2,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := header.New("<autogenerated/>", tc.tokens, newParent(t))
			require.NoError(t, err)

			assert.Equal(t, tc.want, h.Location())
			assert.Equal(t, tc.wantLine, h.LineNumber())
			assert.Equal(t, tc.tokens, h.Tokens())
		})
	}
}

func TestInvalidArgument(t *testing.T) {
	t.Parallel()

	text := "<autogenerated/>"

	tcs := map[string]struct {
		build func(source.ElementRef) (*header.Header, error)
	}{
		"nil tokens": {
			build: func(parent source.ElementRef) (*header.Header, error) {
				return header.New(text, nil, parent)
			},
		},
		"zero parent": {
			build: func(source.ElementRef) (*header.Header, error) {
				return header.New(text, []source.Token{}, source.ElementRef{})
			},
		},
		"nil text": {
			build: func(parent source.ElementRef) (*header.Header, error) {
				return header.FromOptional(nil, []source.Token{}, parent)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := tc.build(newParent(t))
			require.ErrorIs(t, err, header.ErrInvalidArgument)
			assert.Nil(t, h)
		})
	}
}

func TestFromOptional(t *testing.T) {
	t.Parallel()

	text := "<nostyle/>"

	h, err := header.FromOptional(&text, []source.Token{}, newParent(t))
	require.NoError(t, err)
	assert.True(t, h.Unstyled())

	empty := ""

	h, err = header.FromOptional(&empty, []source.Token{}, newParent(t))
	require.NoError(t, err)

	_, ok := h.Markup()
	assert.False(t, ok)
}

func TestParent(t *testing.T) {
	t.Parallel()

	tree := source.NewTree()
	doc := tree.Add(source.NoElement, source.ElementDocument, "File.cs")

	h, err := header.New("", []source.Token{}, tree.Ref(doc))
	require.NoError(t, err)

	el, ok := h.Parent()
	require.True(t, ok)
	assert.Equal(t, "File.cs", el.Name)
	assert.Equal(t, doc, h.ParentRef().ID())

	dangling, err := header.New("", []source.Token{}, tree.Ref(source.ElementID(9)))
	require.NoError(t, err)

	_, ok = dangling.Parent()
	assert.False(t, ok)
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	parent := newParent(t)
	tokens := []source.Token{{
		Kind: source.KindSingleLineComment,
		Text: "// <autogenerated/>",
		Location: source.Location{
			Start: source.Point{Index: 0, Line: 1, Column: 1},
			End:   source.Point{Index: 18, Line: 1, Column: 19},
		},
	}}

	for name, text := range map[string]string{
		"parsed":    " <autogenerated/>",
		"malformed": " <autogenerated>",
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a, err := header.New(text, tokens, parent)
			require.NoError(t, err)

			b, err := header.New(text, tokens, parent)
			require.NoError(t, err)

			assert.Equal(t, a, b)
		})
	}
}

func TestConcurrentReaders(t *testing.T) {
	t.Parallel()

	h, err := header.New("<auto-generated/><unstyled/>", []source.Token{}, newParent(t))
	require.NoError(t, err)

	var wg sync.WaitGroup

	for range 16 {
		wg.Go(func() {
			assert.True(t, h.Generated())
			assert.True(t, h.Unstyled())
			assert.Equal(t, []string{"auto-generated", "unstyled"}, h.Markers())
		})
	}

	wg.Wait()
}

func TestUnstyledMarkers(t *testing.T) {
	t.Parallel()

	got := header.UnstyledMarkers()
	assert.Equal(t, []string{"unstyled", "stylecopoff", "nostyle"}, got)

	got[0] = "changed"
	assert.Equal(t, "unstyled", header.UnstyledMarkers()[0])
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "empty", header.OutcomeEmpty.String())
	assert.Equal(t, "parsed", header.OutcomeParsed.String())
	assert.Equal(t, "malformed", header.OutcomeMalformed.String())
	assert.Equal(t, "Outcome(7)", header.Outcome(7).String())
}
