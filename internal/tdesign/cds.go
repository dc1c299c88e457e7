package tdesign

import (
	"fmt"
	"strings"

	"github.com/jjtimmons/tdesign/config"
	"github.com/jjtimmons/tdesign/internal/optimize"
	"github.com/spf13/cobra"
)

// CDSCmd accepts a cobra.Command with a peptide and prints a CDS for it.
func CDSCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd, args)

	res, err := CDS(flags, conf)
	if err != nil {
		stderr.Fatalln(err)
	}
	fmt.Printf(">%s\n%s\n", flags.name, strings.Join(res.Codons, ""))
}

// CDS designs a coding sequence for the peptide without picking an RBS.
func CDS(flags *Flags, conf *config.Config) (*optimize.Result, error) {
	opt, err := newOptimizer(conf)
	if err != nil {
		return nil, err
	}

	res, err := opt.Run(flags.peptide)
	if err != nil {
		return nil, err
	}

	if conf.Verbose {
		logWindows(res)
	}
	return res, nil
}
