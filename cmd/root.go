// Package cmd is for command line interactions with the tdesign application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "tdesign",
	Short: `Design bacterial transcripts: a coding sequence for a peptide
and a ribosome binding site from a library of native E. coli RBSs`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	// settings is an optional parameter for a settings file (that overrides the fields in the default settings)
	RootCmd.PersistentFlags().StringP("settings", "s", "", "settings file, overrides the default settings <YAML>")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "whether to log results and progress")
	RootCmd.PersistentFlags().Int64("seed", 100, "random seed for codon draws")

	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("seed", RootCmd.PersistentFlags().Lookup("seed"))
}
