// Package design builds transcripts: a CDS for a peptide and the RBS to
// express it with.
package design

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jjtimmons/tdesign/internal/errs"
	"github.com/jjtimmons/tdesign/internal/rbs"
)

// CDSDesigner reverse translates a peptide into codons.
type CDSDesigner interface {
	Design(peptide string) ([]string, error)
}

// RBSSelector picks an RBS for a CDS.
type RBSSelector interface {
	Select(cds, peptide string, excluded map[rbs.Option]bool) (rbs.Option, error)
}

// Translator turns DNA into a peptide.
type Translator interface {
	Translate(dna string) (string, error)
}

// Transcript is a designed CDS and the RBS chosen to go upstream of it.
type Transcript struct {
	// RBS is the chosen ribosome binding site and its native gene
	RBS rbs.Option `json:"rbs"`

	// Peptide is the upper-cased target peptide
	Peptide string `json:"peptide"`

	// Codons of the CDS, one per residue
	Codons []string `json:"codons"`
}

// CDS is the codons joined together.
func (t *Transcript) CDS() string {
	return strings.Join(t.Codons, "")
}

// Designer runs the CDS designer and then the RBS selector.
type Designer struct {
	cds        CDSDesigner
	selector   RBSSelector
	translator Translator
}

// New returns a Designer. translator is used to check that every designed
// CDS encodes its peptide.
func New(cds CDSDesigner, selector RBSSelector, translator Translator) (*Designer, error) {
	if cds == nil || selector == nil || translator == nil {
		return nil, fmt.Errorf("designer needs a CDS designer, RBS selector and translator")
	}
	return &Designer{cds: cds, selector: selector, translator: translator}, nil
}

// Transcript designs a transcript for peptide without using any RBS in
// excluded. Errors from the CDS designer and RBS selector are returned
// as-is; nothing is retried.
func (d *Designer) Transcript(peptide string, excluded map[rbs.Option]bool) (*Transcript, error) {
	peptide, codons, err := d.codons(peptide)
	if err != nil {
		return nil, err
	}

	option, err := d.selector.Select(strings.Join(codons, ""), peptide, excluded)
	if err != nil {
		return nil, err
	}

	return &Transcript{RBS: option, Peptide: peptide, Codons: codons}, nil
}

// Alternatives designs up to n transcripts for peptide. They share a CDS and
// each uses an RBS that wasn't chosen for the ones before it. Fewer than n are
// returned if the library runs out first.
func (d *Designer) Alternatives(peptide string, n int, excluded map[rbs.Option]bool) ([]*Transcript, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one transcript, got %d", errs.ErrInvalidInput, n)
	}

	peptide, codons, err := d.codons(peptide)
	if err != nil {
		return nil, err
	}
	cds := strings.Join(codons, "")

	ignore := make(map[rbs.Option]bool, len(excluded)+n)
	for o, ex := range excluded {
		ignore[o] = ex
	}

	var transcripts []*Transcript
	for len(transcripts) < n {
		option, err := d.selector.Select(cds, peptide, ignore)
		if errors.Is(err, errs.ErrNoCandidates) && len(transcripts) > 0 {
			break
		}
		if err != nil {
			return nil, err
		}

		ignore[option] = true
		transcripts = append(transcripts, &Transcript{
			RBS:     option,
			Peptide: peptide,
			Codons:  append([]string(nil), codons...),
		})
	}
	return transcripts, nil
}

// codons normalizes peptide and designs its CDS
func (d *Designer) codons(peptide string) (string, []string, error) {
	peptide = strings.ToUpper(strings.TrimSpace(peptide))
	if peptide == "" {
		return "", nil, fmt.Errorf("%w: empty peptide", errs.ErrInvalidInput)
	}

	codons, err := d.cds.Design(peptide)
	if err != nil {
		return "", nil, err
	}

	translated, err := d.translator.Translate(strings.Join(codons, ""))
	if err != nil {
		return "", nil, fmt.Errorf("failed to translate designed CDS: %w", err)
	}
	if translated != peptide {
		return "", nil, fmt.Errorf("designed CDS encodes %s, not %s", translated, peptide)
	}

	return peptide, codons, nil
}
