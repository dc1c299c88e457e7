package tdesign

import (
	"fmt"
	"os"
	"strings"

	"github.com/jjtimmons/tdesign/config"
	"github.com/jjtimmons/tdesign/internal/check"
	"github.com/jjtimmons/tdesign/internal/codon"
	"github.com/jjtimmons/tdesign/internal/design"
	"github.com/jjtimmons/tdesign/internal/optimize"
	"github.com/jjtimmons/tdesign/internal/rbs"
)

// settings are the optimizer's window settings from the config
func settings(conf *config.Config) optimize.Settings {
	return optimize.Settings{
		WindowResidues:    conf.WindowResidues,
		LookaheadResidues: conf.LookaheadResidues,
		MaxCandidates:     conf.MaxCandidates,
		RelaxAfter:        conf.RelaxAfter,
		MaxTrials:         conf.MaxTrials,
		GCMin:             conf.GCMin,
		GCMax:             conf.GCMax,
	}
}

// newHairpin returns the hairpin scorer shared by the optimizer and selector
func newHairpin(conf *config.Config) (*check.Hairpin, error) {
	return check.NewHairpin(conf.Hairpin.MinStem, conf.Hairpin.MinLoop, conf.Hairpin.MaxLoop)
}

// newOptimizer builds a codon window optimizer seeded from the config.
func newOptimizer(conf *config.Config) (*optimize.Optimizer, error) {
	forbidden, err := check.NewForbidden(conf.Forbidden)
	if err != nil {
		return nil, err
	}

	hairpin, err := newHairpin(conf)
	if err != nil {
		return nil, err
	}

	return optimize.New(codon.Ecoli, forbidden, hairpin, settings(conf), optimize.Seeded(conf.Seed))
}

// newLibrary loads the RBS library from the reference tables in the library dir.
func newLibrary(conf *config.Config, tr rbs.Translator) (*rbs.Library, error) {
	if _, err := os.Stat(conf.Library.Dir); err != nil {
		return nil, fmt.Errorf("failed to find the RBS library at %s, set library.dir or TDESIGN_LIBRARY_DIR: %v", conf.Library.Dir, err)
	}

	return rbs.Load(rbs.NewFSLoader(os.DirFS(conf.Library.Dir)), rbs.Tables{
		Genes:     conf.Library.Genes,
		RBS:       conf.Library.RBS,
		CDSColumn: conf.Library.CDSColumn,
	}, tr)
}

// newDesigner builds the transcript designer and returns it with the
// library that its selector draws from.
func newDesigner(conf *config.Config) (*design.Designer, *rbs.Library, error) {
	tr, err := check.NewTranslator(conf.TranslationTable)
	if err != nil {
		return nil, nil, err
	}

	opt, err := newOptimizer(conf)
	if err != nil {
		return nil, nil, err
	}

	lib, err := newLibrary(conf, tr)
	if err != nil {
		return nil, nil, err
	}

	hairpin, err := newHairpin(conf)
	if err != nil {
		return nil, nil, err
	}

	selector, err := rbs.NewSelector(lib, hairpin, conf.Workers)
	if err != nil {
		return nil, nil, err
	}

	d, err := design.New(&reporter{opt: opt, verbose: conf.Verbose}, selector, tr)
	if err != nil {
		return nil, nil, err
	}
	return d, lib, nil
}

// reporter designs CDSs with the optimizer and logs each window when verbose.
type reporter struct {
	opt     *optimize.Optimizer
	verbose bool
}

// Design runs the optimizer and reports on windows.
func (r *reporter) Design(peptide string) ([]string, error) {
	res, err := r.opt.Run(peptide)
	if err != nil {
		return nil, err
	}

	if r.verbose {
		logWindows(res)
	}
	return res.Codons, nil
}

// logWindows writes a line per window plus the CDS's GC content
func logWindows(res *optimize.Result) {
	for _, w := range res.Windows {
		regime := "poor"
		if w.Rich {
			regime = "rich"
		}
		fmt.Printf(
			"window %d (%s): %s, %d possible, %d/%d accepted, hairpin %.2f, GC %.2f\n",
			w.Start+1, w.Residues, regime, w.Possible, w.Accepted, w.Trials, w.Hairpin, w.ContextGC,
		)
		if w.Relaxed {
			fmt.Printf("window %d: no candidates in the GC band, relaxed after %d trials\n", w.Start+1, w.Trials)
		}
	}

	fmt.Printf("CDS GC content: %.3f\n", check.GC(strings.Join(res.Codons, "")))
}
