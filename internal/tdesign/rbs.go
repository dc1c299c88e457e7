package tdesign

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jjtimmons/tdesign/config"
	"github.com/jjtimmons/tdesign/internal/check"
	"github.com/spf13/cobra"
)

// RBSListCmd prints every RBS option in the library.
func RBSListCmd(cmd *cobra.Command, args []string) {
	if err := RBSList(os.Stdout, config.New()); err != nil {
		stderr.Fatalln(err)
	}
}

// RBSList writes the library's options to w, one per line, in library order.
func RBSList(w io.Writer, conf *config.Config) error {
	tr, err := check.NewTranslator(conf.TranslationTable)
	if err != nil {
		return err
	}

	lib, err := newLibrary(conf, tr)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
	fmt.Fprintf(tw, "gene\trbs\tfirst6\tdescription\n")
	for _, o := range lib.Options() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Name, o.RBS, o.First6, o.Description)
	}
	return tw.Flush()
}
