package rbs

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/jjtimmons/tdesign/internal/check"
	"github.com/jjtimmons/tdesign/internal/errs"
)

// Hairpin scores secondary structure in DNA. It's called from several
// goroutines at once.
type Hairpin interface {
	Score(dna string) float64
}

// Score is how well an Option suits a CDS. Lower is better.
type Score struct {
	Option Option `json:"option"`

	// AA is the edit distance between the option's and peptide's first six residues
	AA int `json:"aa"`

	// Hairpin is the hairpin score of RBS+CDS per bp
	Hairpin float64 `json:"hairpin"`

	// Total is AA + Hairpin, less 1 if the first six residues match exactly
	Total float64 `json:"total"`
}

// Selector scores library options against a CDS.
type Selector struct {
	library  *Library
	hairpin  Hairpin
	distance func(a, b string) int
	workers  int
}

// NewSelector returns a Selector over library. Options are scored on up to
// workers goroutines.
func NewSelector(library *Library, hairpin Hairpin, workers int) (*Selector, error) {
	if library == nil {
		return nil, fmt.Errorf("selector needs a loaded RBS library")
	}
	if hairpin == nil {
		return nil, fmt.Errorf("selector needs a hairpin scorer")
	}
	if workers < 1 {
		workers = 1
	}

	return &Selector{
		library:  library,
		hairpin:  hairpin,
		distance: check.EditDistance,
		workers:  workers,
	}, nil
}

// Select returns the option with the lowest total score for cds and peptide,
// skipping those in excluded. Ties go to the option earliest in the library.
func (s *Selector) Select(cds, peptide string, excluded map[Option]bool) (Option, error) {
	scores, err := s.Rank(cds, peptide, excluded)
	if err != nil {
		return Option{}, err
	}
	if len(scores) == 0 {
		return Option{}, fmt.Errorf(
			"%w: all %d options are excluded", errs.ErrNoCandidates, s.library.Len(),
		)
	}

	best := 0
	lowest := math.Inf(1)
	for i, sc := range scores {
		if sc.Total < lowest {
			lowest = sc.Total
			best = i
		}
	}
	return scores[best].Option, nil
}

// Rank scores every option not in excluded, in library order.
func (s *Selector) Rank(cds, peptide string, excluded map[Option]bool) ([]Score, error) {
	if len(peptide) < 6 {
		return nil, fmt.Errorf("%w: peptide %q is shorter than 6 residues", errs.ErrInvalidInput, peptide)
	}
	first6 := strings.ToUpper(peptide[:6])
	cds = strings.ToUpper(cds)

	var candidates []Option
	for _, o := range s.library.options {
		if !excluded[o] {
			candidates = append(candidates, o)
		}
	}

	scores := make([]Score, len(candidates))
	if s.workers == 1 || len(candidates) < 2 {
		for i, o := range candidates {
			scores[i] = s.score(o, cds, first6)
		}
		return scores, nil
	}

	// each worker writes only to its own indices
	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers && w < len(candidates); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				scores[i] = s.score(candidates[i], cds, first6)
			}
		}()
	}
	for i := range candidates {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return scores, nil
}

func (s *Selector) score(o Option, cds, first6 string) Score {
	aa := s.distance(o.First6, first6)

	combined := o.RBS + cds
	hairpin := 0.0
	if len(combined) > 0 {
		hairpin = s.hairpin.Score(combined) / float64(len(combined))
	}

	total := float64(aa) + hairpin
	if aa == 0 {
		total--
	}

	return Score{Option: o, AA: aa, Hairpin: hairpin, Total: total}
}
