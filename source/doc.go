// Package source models the lexical surface of a source file as seen by the
// analyzer: positions, locations, tokens, and the code element tree.
//
// A [Location] is a pair of [Point] values. The zero Location is
// [EmptyLocation], which reports line number 0 and is used wherever a
// lexical unit has no tokens. [Join] combines the start of one location
// with the end of another, which is how multi-token units derive their
// span.
//
// Code elements live in a [Tree], an arena that owns every [Element] of one
// file. Other values refer to elements through an [ElementRef], a
// non-owning (tree, id) handle that is resolved on demand:
//
//	tree := source.NewTree()
//	doc := tree.Add(source.NoElement, source.ElementDocument, "Program.cs")
//
//	ref := tree.Ref(doc)
//	el, ok := ref.Resolve()
//
// Holding an ElementRef never keeps an element alive on its own, so a child
// may point back at its parent without creating an ownership cycle.
package source
