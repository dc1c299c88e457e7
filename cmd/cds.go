package cmd

import (
	"github.com/jjtimmons/tdesign/internal/tdesign"
	"github.com/spf13/cobra"
)

// cdsCmd is for designing a coding sequence without an RBS
var cdsCmd = &cobra.Command{
	Use:                        "cds [peptide]",
	Short:                      "Design a coding sequence for a peptide",
	Run:                        tdesign.CDSCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Design a coding sequence for a peptide and print it as FASTA. No RBS is picked.`,
	Example: "  tdesign cds MSKGEELFTGVVPILVELDG",
}

func init() {
	cdsCmd.Flags().StringP("in", "i", "", "input FASTA with the peptide")

	RootCmd.AddCommand(cdsCmd)
}
