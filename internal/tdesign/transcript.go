package tdesign

import (
	"fmt"
	"time"

	"github.com/jjtimmons/tdesign/config"
	"github.com/jjtimmons/tdesign/internal/design"
	"github.com/jjtimmons/tdesign/internal/output"
	"github.com/spf13/cobra"
)

// TranscriptCmd accepts a cobra.Command with a peptide and designs a transcript for it.
func TranscriptCmd(cmd *cobra.Command, args []string) {
	if _, err := Transcript(parseCmdFlags(cmd, args)); err != nil {
		stderr.Fatalln(err)
	}
}

// Transcript designs a CDS for the peptide, picks an RBS for it and writes
// the result to the output files. With alternatives > 1 it designs one
// transcript per RBS, best first.
func Transcript(flags *Flags, conf *config.Config) ([]*design.Transcript, error) {
	start := time.Now()

	d, lib, err := newDesigner(conf)
	if err != nil {
		return nil, err
	}

	excluded, err := lib.Named(flags.exclude...)
	if err != nil {
		return nil, err
	}

	var transcripts []*design.Transcript
	if flags.alternatives > 1 {
		if transcripts, err = d.Alternatives(flags.peptide, flags.alternatives, excluded); err != nil {
			return nil, err
		}
	} else {
		t, err := d.Transcript(flags.peptide, excluded)
		if err != nil {
			return nil, err
		}
		transcripts = []*design.Transcript{t}
	}

	elapsed := time.Since(start)
	if flags.out != "" {
		if _, err = output.WriteJSON(flags.out, transcripts, elapsed.Seconds()); err != nil {
			return nil, err
		}
	}

	if flags.genbank != "" {
		if err = output.WriteGenbank(flags.genbank, flags.name, transcripts[0]); err != nil {
			return nil, err
		}
	}

	if conf.Verbose {
		for i, t := range transcripts {
			fmt.Printf("%d. RBS of %s (%s): %s\n", i+1, t.RBS.Name, t.RBS.First6, t.RBS.RBS)
		}
		fmt.Printf("%s\n\n", elapsed)
	}

	return transcripts, nil
}
