// Package header classifies the leading comment block of a source file.
//
// A file header is free-form prose written by people and tools. Some tools
// mark their output with a small markup vocabulary inside the header, for
// example:
//
//	// <auto-generated>
//	//     This code was generated by a tool.
//	// </auto-generated>
//
// or opt a file out of style checking:
//
//	// <copyright file="Legacy.cs" company="Contoso"/>
//	// <nostyle/>
//
// [New] interprets the header text as the body of a synthetic markup
// document and reports two signals: [Header.Generated] and
// [Header.Unstyled]. Lint rules use them to skip or relax analysis for a
// file.
//
// # Classification
//
// Classification is best-effort and never fails the caller:
//
//  1. Wrap: the text has every "&" replaced by "&amp;" ([EncodeAmpersands])
//     and is enclosed in a synthetic root element ([Wrap]). No other
//     character is escaped. The wrapped string is available from
//     [Header.Markup] whenever the text is non-empty, whether or not it is
//     well-formed.
//
//  2. Parse: the wrapped string is parsed as a markup document. Unbalanced
//     tags, illegal characters, content after the root element, duplicate
//     attributes, undeclared namespace prefixes and elements using the
//     reserved "xmlns" prefix make the document
//     malformed. A malformed document is an expected outcome, reported
//     through [Header.Outcome] and [Header.ParseErr], never through the
//     error returned by [New].
//
//  3. Detect: only the direct children of the synthetic root are examined.
//     A child named exactly "autogenerated" or "auto-generated" marks the
//     file as generated; the match is case-sensitive. A child whose name,
//     lower-cased, is "unstyled", "stylecopoff" or "nostyle" marks the file
//     as unstyled. Markers only match elements in no namespace: a prefixed
//     child or one carrying a non-empty xmlns attribute never matches,
//     although it is still listed by [Header.Markers].
//
// Because only "&" is escaped, a stray "<" in ordinary prose makes the
// header malformed and both signals stay false. Rules depend on this
// behavior, so it is kept as is.
//
// # Errors
//
// [ErrInvalidArgument] is returned when a required input is absent: a nil
// token slice or a zero [source.ElementRef]. An empty, non-nil token slice
// is valid. [FromOptional] extends the same check to the header text for
// callers that distinguish "no text" from "empty text".
//
// # Usage
//
//	res := lexer.Scan(src)
//	h, err := header.New(res.Text, res.Tokens, tree.Ref(doc))
//	if err != nil {
//	    return err
//	}
//
//	if h.Generated() {
//	    // Skip generated files.
//	}
//
// A [Header] is immutable once [New] returns and may be shared between
// goroutines without locking.
package header
