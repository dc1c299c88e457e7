package check

import (
	"fmt"
	"strings"

	"github.com/bebop/poly/synthesis/codon"
	"github.com/jjtimmons/tdesign/internal/errs"
)

// Translator turns DNA into a peptide, one residue per codon. Stop codons
// translate to '*'. Unlike a CDS-aware translation the first codon is not
// treated as a start codon, so "GTG..." starts with V.
type Translator struct {
	index  int
	codons map[string]string
}

// NewTranslator returns a Translator over the NCBI translation table with the
// passed index (11 for bacteria).
func NewTranslator(tableIndex int) (*Translator, error) {
	table, err := codon.NewTranslationTable(tableIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load translation table %d: %v", tableIndex, err)
	}
	if len(table.TranslationMap) == 0 {
		return nil, fmt.Errorf("translation table %d has no codons", tableIndex)
	}

	codons := make(map[string]string, len(table.TranslationMap))
	for triplet, aa := range table.TranslationMap {
		codons[strings.ToUpper(triplet)] = aa
	}

	return &Translator{index: tableIndex, codons: codons}, nil
}

// Translate returns the peptide encoded by dna. It fails on sequences whose
// length isn't a multiple of three and on triplets outside the table.
func (t *Translator) Translate(dna string) (string, error) {
	if len(dna)%3 != 0 {
		return "", fmt.Errorf("%w: DNA length %d is not a multiple of 3", errs.ErrInvalidInput, len(dna))
	}

	dna = strings.ToUpper(dna)
	var peptide strings.Builder
	peptide.Grow(len(dna) / 3)
	for i := 0; i < len(dna); i += 3 {
		aa, ok := t.codons[dna[i:i+3]]
		if !ok {
			return "", fmt.Errorf("%w: malformed codon %q at %d", errs.ErrInvalidInput, dna[i:i+3], i)
		}
		peptide.WriteString(aa)
	}
	return peptide.String(), nil
}
