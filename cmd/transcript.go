package cmd

import (
	"github.com/jjtimmons/tdesign/internal/tdesign"
	"github.com/spf13/cobra"
)

// transcriptCmd is for designing a CDS and picking an RBS for it
var transcriptCmd = &cobra.Command{
	Use:                        "transcript [peptide]",
	Short:                      "Design a transcript (RBS + CDS) for a peptide",
	Run:                        tdesign.TranscriptCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Design a transcript for a peptide. The peptide's coding sequence is built up
three residues at a time: codon permutations of each window (plus six residues
of lookahead) are screened for forbidden sequences and GC content, and the one
with the fewest hairpins is kept.

An RBS is then picked from the library of native E. coli RBSs: the one whose
gene starts most like the peptide, with the fewest hairpins across RBS + CDS.

The RBS library is joined from two tab-separated reference tables, a gene table
and an RBS table, which aren't bundled with tdesign. Point "library.dir" (and
"library.genes", "library.rbs" if they're named differently) at them with a
--settings file or the TDESIGN_LIBRARY_DIR environment variable.`,
	Example: `  tdesign transcript MSKGEELFTGVVPILVELDGDVNGHKFSVRGEGEGDATNGKLTLKFICTTGK
  tdesign transcript --in gfp.fa --out gfp.json --genbank gfp.gb --alternatives 3`,
	Aliases: []string{"design"},
}

func init() {
	transcriptCmd.Flags().StringP("in", "i", "", "input FASTA with the peptide")
	transcriptCmd.Flags().StringP("out", "o", "", "output file name <JSON>")
	transcriptCmd.Flags().StringP("genbank", "g", "", "output file name for the best transcript <GenBank>")
	transcriptCmd.Flags().StringSliceP("exclude", "x", []string{}, "genes whose RBS can't be used")
	transcriptCmd.Flags().IntP("alternatives", "a", 1, "number of transcripts to design, each with a different RBS")

	RootCmd.AddCommand(transcriptCmd)
}
