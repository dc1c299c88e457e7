// Package errs holds the error kinds shared across the design pipeline.
//
// Callers match on them with errors.Is; every producer wraps one of these
// with context using fmt.Errorf("...: %w", ...).
package errs

import "errors"

var (
	// ErrInvalidInput is for an empty or malformed peptide, a residue without
	// codons, a peptide too short for RBS scoring, or malformed DNA
	ErrInvalidInput = errors.New("invalid input")

	// ErrDesignExhausted is for a window where no forbidden-free candidate
	// was found within the trial budget
	ErrDesignExhausted = errors.New("design exhausted")

	// ErrNoCandidates is for an RBS exclusion set that covers the whole library
	ErrNoCandidates = errors.New("no RBS candidates")
)
