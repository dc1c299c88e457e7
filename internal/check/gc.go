// Package check holds the sequence scoring primitives the design pipeline
// leans on: translation, forbidden motif screening, hairpin counting,
// edit distance and GC content.
package check

import (
	"strings"

	"github.com/bebop/poly/checks"
)

// GC returns the fraction of G and C in seq, 0 for an empty sequence.
func GC(seq string) float64 {
	if seq == "" {
		return 0
	}
	return checks.GcContent(seq)
}

// GCCount returns the number of G and C bases in seq.
func GCCount(seq string) int {
	seq = strings.ToUpper(seq)
	return strings.Count(seq, "G") + strings.Count(seq, "C")
}
