// Package stringtest provides helpers for building multi-line test inputs.
package stringtest

import (
	"strings"
)

// Input dedents a raw string literal for use as test input.
//
// One leading newline is removed, a trailing line made only of whitespace is
// removed, and the longest whitespace prefix shared by all non-blank lines
// is stripped. Whitespace-only lines become empty.
//
// Example:
//
//	src := stringtest.Input(`
//		// <auto-generated/>
//		namespace Demo;
//	`) // -> "// <auto-generated/>\nnamespace Demo;"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")

	lines := strings.Split(s, "\n")
	if last := len(lines) - 1; strings.TrimSpace(lines[last]) == "" {
		lines = lines[:last]
	}

	prefix := ""
	found := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix = indent
			found = true

			continue
		}

		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to construct expected test output with explicit line endings on
// Windows.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// Comment prefixes every line with "//" followed by a space, or with just
// "//" when the line is empty, producing a single-line comment block.
//
// Example:
//
//	src := stringtest.Comment(
//		"<copyright file=\"A.cs\"/>",
//		"",
//		"<nostyle/>",
//	) // -> "// <copyright file=\"A.cs\"/>\n//\n// <nostyle/>"
func Comment(lines ...string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			out[i] = "//"

			continue
		}

		out[i] = "// " + line
	}

	return JoinLF(out...)
}
