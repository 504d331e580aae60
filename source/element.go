package source

import "sync"

// ElementID identifies an [Element] within its [Tree]. IDs start at 1.
type ElementID int

// NoElement is the ID of no element. It is the parent of root elements.
const NoElement ElementID = 0

// ElementKind names the syntactic category of an [Element].
type ElementKind string

// Element kinds known to the header pass. Other passes may add their own.
const (
	ElementDocument  ElementKind = "document"
	ElementNamespace ElementKind = "namespace"
	ElementClass     ElementKind = "class"
)

// Element is a code element. It is a plain value; the owning [Tree] is the
// only place elements are stored.
type Element struct {
	Kind   ElementKind
	Name   string
	ID     ElementID
	Parent ElementID
}

// Tree owns the elements of one file. It is safe for concurrent use.
//
// Create instances with [NewTree].
type Tree struct {
	elements []Element
	mu       sync.RWMutex
}

// NewTree creates an empty [Tree].
func NewTree() *Tree {
	return &Tree{}
}

// Add stores a new element under parent and returns its ID. Pass
// [NoElement] to add a root element.
func (t *Tree) Add(parent ElementID, kind ElementKind, name string) ElementID {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := ElementID(len(t.elements) + 1)
	t.elements = append(t.elements, Element{
		ID:     id,
		Parent: parent,
		Kind:   kind,
		Name:   name,
	})

	return id
}

// Get returns the element with the given ID.
func (t *Tree) Get(id ElementID) (Element, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if id <= NoElement || int(id) > len(t.elements) {
		return Element{}, false
	}

	return t.elements[id-1], true
}

// Children returns the direct children of id in insertion order.
func (t *Tree) Children(id ElementID) []Element {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Element

	for _, el := range t.elements {
		if el.Parent == id {
			out = append(out, el)
		}
	}

	return out
}

// Len returns the number of elements in t.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.elements)
}

// Ref returns a non-owning reference to the element with the given ID.
// The reference is not checked until it is resolved.
func (t *Tree) Ref(id ElementID) ElementRef {
	return ElementRef{tree: t, id: id}
}

// ElementRef is a non-owning handle to an [Element] in a [Tree]. The zero
// value refers to nothing and reports [ElementRef.IsZero].
type ElementRef struct {
	tree *Tree
	id   ElementID
}

// IsZero reports whether r is the zero reference.
func (r ElementRef) IsZero() bool {
	return r.tree == nil || r.id == NoElement
}

// ID returns the referenced element ID.
func (r ElementRef) ID() ElementID {
	return r.id
}

// Resolve looks the element up in its tree.
func (r ElementRef) Resolve() (Element, bool) {
	if r.IsZero() {
		return Element{}, false
	}

	return r.tree.Get(r.id)
}
