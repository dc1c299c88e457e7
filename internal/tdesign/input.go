// Package tdesign runs the design commands: it parses cobra flags, builds
// the optimizer, RBS library and selector from settings, and writes results.
package tdesign

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jjtimmons/tdesign/config"
	"github.com/jjtimmons/tdesign/internal/fasta"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra Flags like "in", "out", "exclude", etc that are used by multiple commands.
type Flags struct {
	// the name of the peptide, from its FASTA header
	name string

	// the peptide to design a transcript for
	peptide string

	// the name of the file to write the JSON output to
	out string

	// the name of the file to write a GenBank record of the best transcript to
	genbank string

	// genes whose RBS can't be used
	exclude []string

	// the number of transcripts to design, each with a different RBS
	alternatives int
}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(name, peptide, out, genbank string, exclude []string, alternatives int) *Flags {
	return &Flags{
		name:         name,
		peptide:      peptide,
		out:          out,
		genbank:      genbank,
		exclude:      exclude,
		alternatives: alternatives,
	}
}

// parseCmdFlags gathers the peptide, out path, etc from a cobra cmd object
// returns Flags and a Config struct for the design commands.
func parseCmdFlags(cmd *cobra.Command, args []string) (*Flags, *config.Config) {
	fs := &Flags{alternatives: 1}
	c := config.New()

	in, _ := cmd.Flags().GetString("in")
	name, peptide, err := parsePeptide(in, args)
	if err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}
	fs.name, fs.peptide = name, peptide

	if cmd.Flags().Lookup("out") != nil {
		if fs.out, _ = cmd.Flags().GetString("out"); fs.out == "" {
			fs.out = guessOutput(in, name)
		}
	}

	if cmd.Flags().Lookup("genbank") != nil {
		fs.genbank, _ = cmd.Flags().GetString("genbank")
	}

	if cmd.Flags().Lookup("exclude") != nil {
		if fs.exclude, err = cmd.Flags().GetStringSlice("exclude"); err != nil {
			stderr.Fatalf("failed to parse exclude flag: %v", err)
		}
	}

	if cmd.Flags().Lookup("alternatives") != nil {
		if fs.alternatives, err = cmd.Flags().GetInt("alternatives"); err != nil || fs.alternatives < 1 {
			stderr.Fatalf("alternatives must be a positive number, got %d", fs.alternatives)
		}
	}

	return fs, c
}

// parsePeptide reads the peptide from a FASTA file, if one was given, or
// else from the first argument. The stop codon symbol is trimmed.
func parsePeptide(in string, args []string) (name, peptide string, err error) {
	if in != "" {
		records, err := fasta.Read(in)
		if err != nil {
			return "", "", err
		}
		if len(records) > 1 {
			stderr.Printf("warning: %d records in %s, using the first: %s", len(records), in, records[0].ID)
		}
		name, peptide = records[0].ID, records[0].Seq
	} else if len(args) > 0 {
		name, peptide = "peptide", strings.Join(args, "")
	} else {
		return "", "", fmt.Errorf("failed: no peptide argument and no input FASTA file set")
	}

	if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[0]
	}
	peptide = strings.TrimRight(strings.ToUpper(strings.TrimSpace(peptide)), "*")
	if peptide == "" {
		return "", "", fmt.Errorf("failed: empty peptide %s", name)
	}
	return name, peptide, nil
}

// guessOutput names the JSON output after the input file, or after the
// peptide's name when it was passed as an argument.
func guessOutput(in, name string) string {
	if in == "" {
		return name + ".output.json"
	}
	ext := filepath.Ext(in)
	return in[0:len(in)-len(ext)] + ".output.json"
}
