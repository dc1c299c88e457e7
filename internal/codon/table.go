// Package codon is the amino acid to synonymous codon table used for reverse
// translation. The table is built once and there is no way to mutate it.
package codon

import "fmt"

// Table maps single-letter amino acid symbols to their synonymous codons.
type Table struct {
	codons map[byte][]string
}

// Ecoli is the process-wide reverse translation table. Codons are listed
// in a fixed order per residue and that order is what random draws index into.
var Ecoli = mustTable(map[byte][]string{
	'A': {"GCG", "GCA", "GCC", "GCT"},
	'C': {"TGC", "TGT"},
	'D': {"GAT", "GAC"},
	'E': {"GAA", "GAG"},
	'F': {"TTC", "TTT"},
	'G': {"GGT", "GGC", "GGA", "GGG"},
	'H': {"CAC", "CAT"},
	'I': {"ATC", "ATT", "ATA"},
	'K': {"AAA", "AAG"},
	'L': {"CTG", "CTA", "CTC", "CTT", "TTA", "TTG"},
	'M': {"ATG"},
	'N': {"AAC", "AAT"},
	'P': {"CCG", "CCA", "CCC", "CCT"},
	'Q': {"CAG", "CAA"},
	'R': {"CGT", "CGC", "CGA", "CGG", "AGA", "AGG"},
	'S': {"TCT", "TCC", "TCA", "TCG", "AGC", "AGT"},
	'T': {"ACC", "ACT", "ACA", "ACG"},
	'V': {"GTT", "GTC", "GTA", "GTG"},
	'W': {"TGG"},
	'Y': {"TAC", "TAT"},
})

// New returns a Table from a residue to codon map. Every residue needs at least
// one codon and every codon has to be a triplet over ACGT.
func New(codons map[byte][]string) (*Table, error) {
	t := &Table{codons: make(map[byte][]string, len(codons))}
	for aa, cs := range codons {
		if len(cs) == 0 {
			return nil, fmt.Errorf("no codons for amino acid %q", aa)
		}

		copied := make([]string, len(cs))
		for i, c := range cs {
			if !isCodon(c) {
				return nil, fmt.Errorf("invalid codon %q for amino acid %q", c, aa)
			}
			copied[i] = c
		}
		t.codons[aa] = copied
	}
	return t, nil
}

func mustTable(codons map[byte][]string) *Table {
	t, err := New(codons)
	if err != nil {
		panic(err)
	}
	return t
}

// Count returns the number of synonymous codons for an amino acid, 0 if unknown.
func (t *Table) Count(aa byte) int {
	return len(t.codons[aa])
}

// Codon returns the i'th synonymous codon for an amino acid.
func (t *Table) Codon(aa byte, i int) string {
	return t.codons[aa][i]
}

// Codons returns a copy of the synonymous codons for an amino acid and
// whether the amino acid is in the table.
func (t *Table) Codons(aa byte) ([]string, bool) {
	cs, ok := t.codons[aa]
	if !ok {
		return nil, false
	}
	return append([]string(nil), cs...), true
}

// Contains returns whether every residue of peptide is in the table. If not,
// the index of the first unknown residue is returned.
func (t *Table) Contains(peptide string) (int, bool) {
	for i := 0; i < len(peptide); i++ {
		if _, ok := t.codons[peptide[i]]; !ok {
			return i, false
		}
	}
	return -1, true
}

func isCodon(c string) bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		switch c[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}
