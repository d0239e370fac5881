package store

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the Unicode case folding of s. A Caser is stateful, so a new
// one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func equalFold(a, b string) bool {
	return fold(a) == fold(b)
}

func containsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}
