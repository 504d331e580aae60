package header

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RootElement is the name of the synthetic element that encloses the
// header text.
const RootElement = "root"

var (
	errUnexpectedEOF    = errors.New("unexpected end of markup")
	errContentAfterRoot = errors.New("content after root element")
	errMismatchedTag    = errors.New("mismatched end tag")
	errUnexpectedEnd    = errors.New("unexpected end tag")
	errDeclaration      = errors.New("unexpected markup declaration")
	errDirective        = errors.New("unexpected directive")
	errDuplicateAttr    = errors.New("duplicate attribute")
	errUndeclaredPrefix = errors.New("undeclared namespace prefix")
	errReservedPrefix   = errors.New("reserved namespace prefix")

	ampersandReplacer = strings.NewReplacer("&", "&amp;")
)

// EncodeAmpersands returns s with every "&" replaced by "&amp;".
//
// Nothing else is escaped: "<", ">" and quotes pass through unchanged, so
// markup written in the header stays markup. Prose that contains a bare
// "<" produces a malformed document when wrapped.
func EncodeAmpersands(s string) string {
	return ampersandReplacer.Replace(s)
}

// Wrap returns the synthetic markup document for text: the
// ampersand-encoded text enclosed in a [RootElement] element.
func Wrap(text string) string {
	return "<" + RootElement + ">" + EncodeAmpersands(text) + "</" + RootElement + ">"
}

// parseResult is the outcome of parsing a synthetic markup document.
// When err is non-nil the document is malformed and the name lists are nil.
type parseResult struct {
	err error
	// children holds the qualified names of the root's direct children.
	children []string
	// unqualified holds the subset of children that are in no namespace,
	// the only elements a marker name can match.
	unqualified []string
}

// ok reports whether the document parsed.
func (r parseResult) ok() bool {
	return r.err == nil
}

// parseMarkup parses markup as a single-rooted document and collects the
// qualified names of the root's direct child elements in document order.
//
// The decoder's raw token stream is used so that namespace prefixes are
// kept as written; tag balance and prefix scoping are checked here.
func parseMarkup(markup string) parseResult {
	d := xml.NewDecoder(strings.NewReader(markup))
	d.Strict = true

	var (
		open        []xml.Name
		scopes      []map[string]bool
		children    []string
		unqualified []string
		rootSeen    bool
		closed      bool
	)

	for {
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return parseResult{err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if closed {
				return parseResult{err: fmt.Errorf("%w: <%s>", errContentAfterRoot, qualifiedName(t.Name))}
			}

			scope, err := declare(t, scopes)
			if err != nil {
				return parseResult{err: err}
			}

			if rootSeen && len(open) == 1 {
				children = append(children, qualifiedName(t.Name))

				// The synthetic root declares nothing, so a direct child is
				// namespaced only by its own prefix or xmlns attribute.
				if t.Name.Space == "" && defaultNamespace(t) == "" {
					unqualified = append(unqualified, t.Name.Local)
				}
			}

			rootSeen = true
			open = append(open, t.Name)
			scopes = append(scopes, scope)

		case xml.EndElement:
			if len(open) == 0 {
				return parseResult{err: fmt.Errorf("%w: </%s>", errUnexpectedEnd, qualifiedName(t.Name))}
			}

			top := open[len(open)-1]
			if top != t.Name {
				return parseResult{err: fmt.Errorf("%w: <%s> closed by </%s>",
					errMismatchedTag, qualifiedName(top), qualifiedName(t.Name))}
			}

			open = open[:len(open)-1]
			scopes = scopes[:len(scopes)-1]

			if len(open) == 0 {
				closed = true
			}

		case xml.CharData:
			if closed && strings.TrimSpace(string(t)) != "" {
				return parseResult{err: fmt.Errorf("%w: text", errContentAfterRoot)}
			}

		case xml.ProcInst:
			if strings.EqualFold(t.Target, "xml") {
				return parseResult{err: errDeclaration}
			}

		case xml.Directive:
			return parseResult{err: fmt.Errorf("%w: <!%s>", errDirective, firstWord(string(t)))}
		}
	}

	if !closed {
		return parseResult{err: errUnexpectedEOF}
	}

	return parseResult{children: children, unqualified: unqualified}
}

// defaultNamespace returns the value of the xmlns attribute on start.
func defaultNamespace(start xml.StartElement) string {
	for _, attr := range start.Attr {
		if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
			return attr.Value
		}
	}

	return ""
}

// declare validates the attributes and prefixes of start against the
// enclosing namespace scopes and returns the prefixes it declares.
func declare(start xml.StartElement, scopes []map[string]bool) (map[string]bool, error) {
	var scope map[string]bool

	seen := make(map[xml.Name]bool, len(start.Attr))

	for _, attr := range start.Attr {
		if seen[attr.Name] {
			return nil, fmt.Errorf("%w: %s", errDuplicateAttr, qualifiedName(attr.Name))
		}

		seen[attr.Name] = true

		if attr.Name.Space == "xmlns" {
			if scope == nil {
				scope = make(map[string]bool)
			}

			scope[attr.Name.Local] = true
		}
	}

	declared := func(prefix string) bool {
		switch prefix {
		case "", "xml", "xmlns":
			return true
		}

		if scope[prefix] {
			return true
		}

		for i := len(scopes) - 1; i >= 0; i-- {
			if scopes[i][prefix] {
				return true
			}
		}

		return false
	}

	if start.Name.Space == "xmlns" {
		return nil, fmt.Errorf("%w: %s", errReservedPrefix, qualifiedName(start.Name))
	}

	if !declared(start.Name.Space) {
		return nil, fmt.Errorf("%w: %s", errUndeclaredPrefix, start.Name.Space)
	}

	for _, attr := range start.Attr {
		if !declared(attr.Name.Space) {
			return nil, fmt.Errorf("%w: %s", errUndeclaredPrefix, attr.Name.Space)
		}
	}

	return scope, nil
}

// qualifiedName returns n as written in the document, "prefix:local" or
// "local".
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}

	return n.Space + ":" + n.Local
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		return s[:i]
	}

	return s
}
