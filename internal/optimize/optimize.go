// Package optimize reverse translates a peptide into a CDS by sliding a
// window over the peptide and, for each window, sampling codon permutations
// of the window plus some downstream lookahead. Permutations are screened
// for forbidden sequences and GC content, ranked by hairpin score, and the
// winner's leading codons are committed before moving to the next window.
package optimize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jjtimmons/tdesign/internal/check"
	"github.com/jjtimmons/tdesign/internal/codon"
	"github.com/jjtimmons/tdesign/internal/errs"
)

// Forbidden screens DNA for sequences that may not appear in a CDS.
type Forbidden interface {
	ForbiddenFree(dna string) bool
}

// spanner is implemented by screens that know their longest motif.
type spanner interface {
	Span() int
}

// Hairpin scores secondary structure in DNA. Lower is better, 0 is none.
type Hairpin interface {
	Score(dna string) float64
}

// Settings tune the window search.
type Settings struct {
	// WindowResidues is the number of residues committed per window
	WindowResidues int

	// LookaheadResidues is the number of downstream residues scored along
	// with the window but not committed
	LookaheadResidues int

	// MaxCandidates caps the number of distinct candidates per window
	MaxCandidates int

	// RelaxAfter is the number of trials after which the GC band is dropped
	// for windows with MaxCandidates permutations
	RelaxAfter int

	// MaxTrials is the trial budget for a single window
	MaxTrials int

	// GCMin and GCMax are the exclusive bounds on preamble+trial GC content
	GCMin float64
	GCMax float64
}

// DefaultSettings are 3 residue windows with 6 residues of lookahead,
// 100 candidates and a 40-60% GC band.
func DefaultSettings() Settings {
	return Settings{
		WindowResidues:    3,
		LookaheadResidues: 6,
		MaxCandidates:     100,
		RelaxAfter:        1000,
		MaxTrials:         20000,
		GCMin:             0.40,
		GCMax:             0.60,
	}
}

func (s Settings) validate() error {
	switch {
	case s.WindowResidues < 1:
		return fmt.Errorf("window must be at least one residue, got %d", s.WindowResidues)
	case s.LookaheadResidues < 0:
		return fmt.Errorf("lookahead can't be negative, got %d", s.LookaheadResidues)
	case s.MaxCandidates < 1:
		return fmt.Errorf("max candidates must be at least 1, got %d", s.MaxCandidates)
	case s.RelaxAfter < 0 || s.MaxTrials < s.RelaxAfter:
		return fmt.Errorf("trial budget %d must be at least the relax threshold %d", s.MaxTrials, s.RelaxAfter)
	case s.GCMin >= s.GCMax:
		return fmt.Errorf("GC band (%.2f, %.2f) is empty", s.GCMin, s.GCMax)
	}
	return nil
}

// Optimizer designs CDSs for peptides.
type Optimizer struct {
	table     *codon.Table
	forbidden Forbidden
	hairpin   Hairpin
	settings  Settings
	newSource func() Source
}

// Window is a record of how one window of the peptide was resolved.
type Window struct {
	// Start is the index of the window's first residue in the peptide
	Start int `json:"start"`

	// Residues committed by this window
	Residues string `json:"residues"`

	// Context is the residues scored: the window plus lookahead
	Context string `json:"context"`

	// Possible is the number of distinct candidates sought (capped)
	Possible int `json:"possible"`

	// Rich is whether the context had at least MaxCandidates permutations
	Rich bool `json:"rich"`

	// Relaxed is whether the GC band was dropped to fill the window
	Relaxed bool `json:"relaxed"`

	// Trials drawn and candidates accepted
	Trials   int `json:"trials"`
	Accepted int `json:"accepted"`

	// Hairpin score of the winning candidate
	Hairpin float64 `json:"hairpin"`

	// ContextGC is the GC content of the preamble plus the winning candidate
	ContextGC float64 `json:"contextGC"`
}

// Result is a designed CDS and the windows that built it.
type Result struct {
	Codons  []string `json:"codons"`
	Windows []Window `json:"windows"`
}

// candidate is one accepted codon permutation of a window's context. It is
// compared by all three fields for de-duplication.
type candidate struct {
	seq     string
	gc      float64
	hairpin float64
}

// New returns an Optimizer. newSource is called once per design so that
// every design starts from the same random state.
func New(table *codon.Table, forbidden Forbidden, hairpin Hairpin, settings Settings, newSource func() Source) (*Optimizer, error) {
	if table == nil || forbidden == nil || hairpin == nil || newSource == nil {
		return nil, fmt.Errorf("optimizer needs a codon table, forbidden screen, hairpin scorer and random source")
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}

	return &Optimizer{
		table:     table,
		forbidden: forbidden,
		hairpin:   hairpin,
		settings:  settings,
		newSource: newSource,
	}, nil
}

// Design returns the codons of a CDS for peptide.
func (o *Optimizer) Design(peptide string) ([]string, error) {
	res, err := o.Run(peptide)
	if err != nil {
		return nil, err
	}
	return res.Codons, nil
}

// Run designs a CDS for peptide and reports on every window.
//
// Windows are resolved strictly in order: each window's candidates are
// screened against the preamble committed by the windows before it.
func (o *Optimizer) Run(peptide string) (*Result, error) {
	if peptide == "" {
		return nil, fmt.Errorf("%w: empty peptide", errs.ErrInvalidInput)
	}
	if i, ok := o.table.Contains(peptide); !ok {
		return nil, fmt.Errorf("%w: no codons for residue %q at %d", errs.ErrInvalidInput, peptide[i], i)
	}

	src := o.newSource()
	var preamble strings.Builder
	preamble.Grow(len(peptide) * 3)
	preambleGC := 0

	res := &Result{}
	for i := 0; i < len(peptide); i += o.settings.WindowResidues {
		end := min(i+o.settings.WindowResidues, len(peptide))
		contextEnd := min(end+o.settings.LookaheadResidues, len(peptide))

		w, winner, err := o.window(src, preamble.String(), preambleGC, peptide[i:contextEnd], end-i)
		if err != nil {
			return nil, fmt.Errorf("failed to design residues %d-%d: %w", i+1, end, err)
		}
		w.Start = i
		res.Windows = append(res.Windows, w)

		committed := winner.seq[:(end-i)*3]
		preamble.WriteString(committed)
		preambleGC += check.GCCount(committed)
	}

	cds := preamble.String()
	res.Codons = make([]string, 0, len(cds)/3)
	for i := 0; i < len(cds); i += 3 {
		res.Codons = append(res.Codons, cds[i:i+3])
	}
	return res, nil
}

// window samples candidates for a context and returns the best one.
func (o *Optimizer) window(src Source, preamble string, preambleGC int, context string, commit int) (Window, candidate, error) {
	possible := o.possible(context)
	rich := possible == o.settings.MaxCandidates
	tail := o.tail(preamble)

	w := Window{
		Residues: context[:commit],
		Context:  context,
		Possible: possible,
		Rich:     rich,
	}

	seen := make(map[candidate]bool)
	var accepted []candidate
	for len(accepted) < possible && w.Trials < o.settings.MaxTrials {
		w.Trials++
		if rich && !w.Relaxed && w.Trials > o.settings.RelaxAfter {
			w.Relaxed = true
		}

		seq := o.draw(src, context)
		if !o.forbidden.ForbiddenFree(tail + seq) {
			continue
		}
		if rich && !w.Relaxed {
			gc := float64(preambleGC+check.GCCount(seq)) / float64(len(preamble)+len(seq))
			if gc <= o.settings.GCMin || gc >= o.settings.GCMax {
				continue
			}
		}

		c := candidate{seq: seq, gc: check.GC(seq), hairpin: o.hairpin.Score(seq)}
		if seen[c] {
			continue
		}
		seen[c] = true
		accepted = append(accepted, c)
	}
	w.Accepted = len(accepted)

	if len(accepted) == 0 {
		return w, candidate{}, fmt.Errorf(
			"%w: no forbidden-free candidate for %s in %d trials",
			errs.ErrDesignExhausted, context, w.Trials,
		)
	}

	rank(accepted)
	winner := accepted[0]
	w.Hairpin = winner.hairpin
	w.ContextGC = float64(preambleGC+check.GCCount(winner.seq)) / float64(len(preamble)+len(winner.seq))
	return w, winner, nil
}

// rank sorts candidates by ascending hairpin score. Between two hairpin-free
// candidates the one with more GC goes first; any other tie keeps the order
// candidates were accepted in.
func rank(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].hairpin != cs[j].hairpin {
			return cs[i].hairpin < cs[j].hairpin
		}
		if cs[i].hairpin == 0 {
			return cs[i].gc > cs[j].gc
		}
		return false
	})
}

// possible is the number of codon permutations of context, capped at MaxCandidates.
func (o *Optimizer) possible(context string) int {
	n := 1
	for i := 0; i < len(context); i++ {
		n *= o.table.Count(context[i])
		if n >= o.settings.MaxCandidates {
			return o.settings.MaxCandidates
		}
	}
	return n
}

// draw picks a random synonymous codon for every residue in context.
func (o *Optimizer) draw(src Source, context string) string {
	var sb strings.Builder
	sb.Grow(len(context) * 3)
	for i := 0; i < len(context); i++ {
		aa := context[i]
		sb.WriteString(o.table.Codon(aa, src.Intn(o.table.Count(aa))))
	}
	return sb.String()
}

// tail is the end of the preamble that a forbidden motif could span into a
// new trial from. The rest of the preamble was screened when committed.
func (o *Optimizer) tail(preamble string) string {
	s, ok := o.forbidden.(spanner)
	if !ok {
		return preamble
	}
	keep := s.Span() - 1
	if keep <= 0 {
		return ""
	}
	if keep >= len(preamble) {
		return preamble
	}
	return preamble[len(preamble)-keep:]
}
