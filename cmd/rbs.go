package cmd

import (
	"github.com/jjtimmons/tdesign/internal/tdesign"
	"github.com/spf13/cobra"
)

// rbsCmd is for the library of RBS options
var rbsCmd = &cobra.Command{
	Use:   "rbs",
	Short: "List the library of RBS options",
}

// rbsListCmd prints every option in the library
var rbsListCmd = &cobra.Command{
	Use:                        "ls",
	Short:                      "List every RBS option",
	Run:                        tdesign.RBSListCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
List every RBS option in the library, in library order: the gene it's from,
its sequence, the gene's first six residues and the gene's description.

The library's reference tables are read from "library.dir", set with a
--settings file or the TDESIGN_LIBRARY_DIR environment variable.`,
	Aliases: []string{"list"},
}

func init() {
	rbsCmd.AddCommand(rbsListCmd)

	RootCmd.AddCommand(rbsCmd)
}
