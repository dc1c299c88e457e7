package optimize

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jjtimmons/tdesign/internal/check"
	"github.com/jjtimmons/tdesign/internal/codon"
	"github.com/jjtimmons/tdesign/internal/errs"
)

// gfp is superfolder GFP without its stop
const gfp = "MSKGEELFTGVVPILVELDGDVNGHKFSVRGEGEGDATNGKLTLKFICTTGKLPVPWPTLVTTLTYGVQCFSRYPDHMKRHDFFKSAMPEGYVQERTISFKDDGTYKTRAEVKFEGDTLVNRIELKGIDFKEDGNILGHKLEYNFNSHNVYITADKQKNGIKANFKIRHNVEDGSVQLADHYQQNTPIGDGPVLLPDNHYLSTQSVLSKDPNEKRDHMVLLEFVTAAGITHGMDELYK"

// zeros always draws the first synonymous codon
type zeros struct{}

func (zeros) Intn(int) int { return 0 }

// never rejects every sequence
type never struct{}

func (never) ForbiddenFree(string) bool { return false }

func newOptimizer(t *testing.T, settings Settings, newSource func() Source) *Optimizer {
	t.Helper()

	forbidden, err := check.NewForbidden(check.DefaultForbidden)
	if err != nil {
		t.Fatal(err)
	}
	hairpin, err := check.NewHairpin(4, 3, 9)
	if err != nil {
		t.Fatal(err)
	}

	o, err := New(codon.Ecoli, forbidden, hairpin, settings, newSource)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestOptimizer_Run(t *testing.T) {
	o := newOptimizer(t, DefaultSettings(), Seeded(100))
	tr, err := check.NewTranslator(11)
	if err != nil {
		t.Fatal(err)
	}
	forbidden, _ := check.NewForbidden(check.DefaultForbidden)

	tests := []struct {
		name    string
		peptide string
	}{
		{"single residue", "M"},
		{"shorter than a window", "MS"},
		{"exactly one window", "MSK"},
		{"partial last window", "MSKGEEL"},
		{"superfolder GFP", gfp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := o.Run(tt.peptide)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if len(res.Codons) != len(tt.peptide) {
				t.Fatalf("got %d codons for %d residues", len(res.Codons), len(tt.peptide))
			}

			cds := strings.Join(res.Codons, "")
			peptide, err := tr.Translate(cds)
			if err != nil {
				t.Fatal(err)
			}
			if peptide != tt.peptide {
				t.Errorf("CDS translates to %s, want %s", peptide, tt.peptide)
			}

			if !forbidden.ForbiddenFree(cds) {
				t.Errorf("CDS has a forbidden sequence: %s", cds)
			}

			wantWindows := (len(tt.peptide) + 2) / 3
			if len(res.Windows) != wantWindows {
				t.Errorf("got %d windows, want %d", len(res.Windows), wantWindows)
			}

			for _, w := range res.Windows {
				// the band holds for the preamble plus the whole candidate, lookahead included
				if w.Rich && !w.Relaxed && (w.ContextGC <= 0.40 || w.ContextGC >= 0.60) {
					t.Errorf("window at %d has preamble+candidate GC %.3f outside of (0.40, 0.60)", w.Start, w.ContextGC)
				}
				if w.Accepted == 0 || w.Accepted > w.Possible {
					t.Errorf("window at %d accepted %d of %d", w.Start, w.Accepted, w.Possible)
				}
			}
		})
	}
}

func TestOptimizer_Run_committedGC(t *testing.T) {
	// one codon per residue, so every window has a single, rich candidate
	table, err := codon.New(map[byte][]string{'G': {"GGG"}, 'K': {"AAA"}})
	if err != nil {
		t.Fatal(err)
	}
	forbidden, _ := check.NewForbidden(nil)
	hairpin, _ := check.NewHairpin(4, 3, 9)
	settings := Settings{
		WindowResidues:    1,
		LookaheadResidues: 1,
		MaxCandidates:     1,
		RelaxAfter:        10,
		MaxTrials:         10,
		GCMin:             0.40,
		GCMax:             0.60,
	}

	o, err := New(table, forbidden, hairpin, settings, Seeded(1))
	if err != nil {
		t.Fatal(err)
	}

	res, err := o.Run("GK")
	if err != nil {
		t.Fatal(err)
	}
	cds := strings.Join(res.Codons, "")
	if cds != "GGGAAA" {
		t.Fatalf("CDS = %s, want GGGAAA", cds)
	}

	first := res.Windows[0]
	if !first.Rich || first.Relaxed || first.ContextGC != 0.5 {
		t.Fatalf("unexpected first window %+v", first)
	}

	// GGG+AAA is in the band, but only GGG is committed
	if committed := check.GC(cds[:3]); committed != 1.0 {
		t.Errorf("committed GC after the first window = %.3f, want 1.0", committed)
	}

	if last := res.Windows[1]; last.ContextGC != 0.5 || check.GC(cds) != 0.5 {
		t.Errorf("unexpected last window %+v for CDS GC %.3f", last, check.GC(cds))
	}
}

func TestOptimizer_Run_deterministic(t *testing.T) {
	o := newOptimizer(t, DefaultSettings(), Seeded(7))

	first, err := o.Design(gfp[:60])
	if err != nil {
		t.Fatal(err)
	}
	second, err := o.Design(gfp[:60])
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed gave different designs:\n%v\n%v", first, second)
	}
}

func TestOptimizer_Run_invalid(t *testing.T) {
	o := newOptimizer(t, DefaultSettings(), Seeded(100))

	tests := []struct {
		name    string
		peptide string
	}{
		{"empty", ""},
		{"unknown residue", "MSKBEE"},
		{"stop", "MSK*"},
		{"lower case", "msk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := o.Design(tt.peptide); !errors.Is(err, errs.ErrInvalidInput) {
				t.Errorf("Design(%q) error = %v, want ErrInvalidInput", tt.peptide, err)
			}
		})
	}
}

func TestOptimizer_Run_exhausted(t *testing.T) {
	settings := DefaultSettings()
	settings.RelaxAfter = 10
	settings.MaxTrials = 50

	hairpin, _ := check.NewHairpin(4, 3, 9)
	o, err := New(codon.Ecoli, never{}, hairpin, settings, Seeded(1))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := o.Design("MSKGEE"); !errors.Is(err, errs.ErrDesignExhausted) {
		t.Errorf("Design() error = %v, want ErrDesignExhausted", err)
	}
}

func TestOptimizer_Run_relaxed(t *testing.T) {
	settings := DefaultSettings()
	settings.RelaxAfter = 10
	settings.MaxTrials = 50

	// the same draw every time, so one distinct candidate per window at most
	o := newOptimizer(t, settings, func() Source { return zeros{} })

	res, err := o.Run("AAAGGGAAA")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"GCG", "GCG", "GCG", "GGT", "GGT", "GGT", "GCG", "GCG", "GCG"}
	if !reflect.DeepEqual(res.Codons, want) {
		t.Errorf("Codons = %v, want %v", res.Codons, want)
	}

	w := res.Windows[0]
	if !w.Rich || !w.Relaxed {
		t.Errorf("first window rich=%v relaxed=%v, want both", w.Rich, w.Relaxed)
	}
	if w.Accepted != 1 || w.Trials != settings.MaxTrials {
		t.Errorf("first window accepted %d in %d trials, want 1 in %d", w.Accepted, w.Trials, settings.MaxTrials)
	}
}

func TestOptimizer_possible(t *testing.T) {
	o := newOptimizer(t, DefaultSettings(), Seeded(1))

	tests := []struct {
		context string
		want    int
	}{
		{"M", 1},
		{"MW", 1},
		{"KE", 4},
		{"LLL", 100},
		{"AAA", 64},
		{"AAAK", 100},
	}
	for _, tt := range tests {
		if got := o.possible(tt.context); got != tt.want {
			t.Errorf("possible(%s) = %d, want %d", tt.context, got, tt.want)
		}
	}
}

func Test_rank(t *testing.T) {
	cs := []candidate{
		{seq: "a", gc: 0.5, hairpin: 4},
		{seq: "b", gc: 0.3, hairpin: 0},
		{seq: "c", gc: 0.6, hairpin: 0},
		{seq: "d", gc: 0.9, hairpin: 2},
		{seq: "e", gc: 0.1, hairpin: 2},
	}
	rank(cs)

	var got []string
	for _, c := range cs {
		got = append(got, c.seq)
	}

	// hairpin first, GC descending only between hairpin-free candidates
	want := []string{"c", "b", "d", "e", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rank() = %v, want %v", got, want)
	}
}

func TestNew_invalidSettings(t *testing.T) {
	forbidden, _ := check.NewForbidden(nil)
	hairpin, _ := check.NewHairpin(4, 3, 9)

	bad := DefaultSettings()
	bad.GCMin = 0.7
	if _, err := New(codon.Ecoli, forbidden, hairpin, bad, Seeded(1)); err == nil {
		t.Error("expected an error for an empty GC band")
	}

	bad = DefaultSettings()
	bad.MaxTrials = bad.RelaxAfter - 1
	if _, err := New(codon.Ecoli, forbidden, hairpin, bad, Seeded(1)); err == nil {
		t.Error("expected an error for a budget below the relax threshold")
	}

	if _, err := New(codon.Ecoli, nil, hairpin, DefaultSettings(), Seeded(1)); err == nil {
		t.Error("expected an error for a missing forbidden screen")
	}
}
