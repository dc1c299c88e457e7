package check

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bebop/poly/transform"
)

// DefaultForbidden are the sequences a designed CDS must not contain on
// either strand: long homopolymers and dinucleotide repeats that trouble
// synthesis, and the recognition sites of common cloning enzymes.
var DefaultForbidden = []string{
	"AAAAAAAA",
	"TTTTTTTT",
	"CCCCCCCC",
	"GGGGGGGG",
	"ATATATAT",
	"CAATTG",   // MfeI
	"GAATTC",   // EcoRI
	"GGATCC",   // BamHI
	"AGATCT",   // BglII
	"ACTAGT",   // SpeI
	"TCTAGA",   // XbaI
	"GGTCTC",   // BsaI
	"CGTCTC",   // BsmBI
	"CACCTGC",  // BspMI
	"CTGCAG",   // PstI
	"CTCGAG",   // XhoI
	"GCGGCCGC", // NotI
	"AAGCTT",   // HindIII
}

// Forbidden screens DNA for a set of motifs on both strands. Motifs may use
// IUPAC ambiguity codes.
type Forbidden struct {
	motifs []string
	re     *regexp.Regexp
	span   int
}

// NewForbidden compiles the motifs into a single screen.
func NewForbidden(motifs []string) (*Forbidden, error) {
	f := &Forbidden{}
	if len(motifs) == 0 {
		return f, nil
	}

	alternatives := make([]string, 0, len(motifs))
	for _, m := range motifs {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}

		decoded, err := recogRegex(m)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, decoded)
		f.motifs = append(f.motifs, m)
		if len(m) > f.span {
			f.span = len(m)
		}
	}

	if len(alternatives) > 0 {
		re, err := regexp.Compile(strings.Join(alternatives, "|"))
		if err != nil {
			return nil, fmt.Errorf("failed to compile forbidden motifs: %v", err)
		}
		f.re = re
	}
	return f, nil
}

// ForbiddenFree returns whether dna, and its reverse complement, are free of every motif.
func (f *Forbidden) ForbiddenFree(dna string) bool {
	if f.re == nil {
		return true
	}

	dna = strings.ToUpper(dna)
	return !f.re.MatchString(dna) && !f.re.MatchString(transform.ReverseComplement(dna))
}

// Span is the length of the longest motif. A match can't overlap a
// boundary by more than Span-1 bases on either side.
func (f *Forbidden) Span() int {
	return f.span
}

// Motifs returns the normalized motifs being screened for.
func (f *Forbidden) Motifs() []string {
	return append([]string(nil), f.motifs...)
}

// recogRegex turns a recognition sequence with ambiguous bases into
// a regex for searching a template sequence
func recogRegex(recog string) (string, error) {
	regexDecode := map[rune]string{
		'A': "A",
		'C': "C",
		'G': "G",
		'T': "T",
		'M': "[AC]",
		'R': "[AG]",
		'W': "[AT]",
		'Y': "[CT]",
		'S': "[CG]",
		'K': "[GT]",
		'H': "[ACT]",
		'D': "[AGT]",
		'V': "[ACG]",
		'B': "[CGT]",
		'N': "[ACGT]",
		'X': "[ACGT]",
	}

	var regexDecoder strings.Builder
	for _, c := range recog {
		decoded, ok := regexDecode[c]
		if !ok {
			return "", fmt.Errorf("invalid base %q in forbidden motif %s", c, recog)
		}
		regexDecoder.WriteString(decoded)
	}

	return regexDecoder.String(), nil
}
