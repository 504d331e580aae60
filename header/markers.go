package header

import (
	"slices"
	"strings"
)

// Generated markers. Matching is case-sensitive.
const (
	MarkerAutoGenerated       = "autogenerated"
	MarkerAutoGeneratedHyphen = "auto-generated"
)

// unstyledMarkers holds the lower-case names of elements that opt a file
// out of style checking.
var unstyledMarkers = []string{"unstyled", "stylecopoff", "nostyle"}

// UnstyledMarkers returns the lower-case names of the unstyled markers.
// The returned slice is a copy.
func UnstyledMarkers() []string {
	return slices.Clone(unstyledMarkers)
}

// isGenerated reports whether the root children include a generated
// marker. The unhyphenated form is looked up first.
func isGenerated(children []string) bool {
	return slices.Contains(children, MarkerAutoGenerated) ||
		slices.Contains(children, MarkerAutoGeneratedHyphen)
}

// isUnstyled reports whether any root child is an unstyled marker,
// ignoring case.
func isUnstyled(children []string) bool {
	return slices.ContainsFunc(children, func(name string) bool {
		return slices.Contains(unstyledMarkers, strings.ToLower(name))
	})
}
