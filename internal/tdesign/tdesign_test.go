package tdesign

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jjtimmons/tdesign/config"
	"github.com/jjtimmons/tdesign/internal/check"
	"github.com/jjtimmons/tdesign/internal/output"
	"github.com/spf13/viper"
)

// testConfig is the default config with the library in testdata
func testConfig(t *testing.T) *config.Config {
	v := viper.New()
	v.Set("library.dir", "testdata")
	v.Set("library.genes", "genes.txt")
	v.Set("library.rbs", "rbs.txt")

	c, err := config.Load(v)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func Test_parsePeptide(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		args        []string
		wantName    string
		wantPeptide string
		wantErr     bool
	}{
		{
			"first FASTA record",
			filepath.Join("testdata", "peptides.fa"),
			nil,
			"sfGFP",
			"MSKGEELFTGVVPILVELDGDVNGHKFSVR",
			false,
		},
		{
			"argument",
			"",
			[]string{"mskgeelftgvv*"},
			"peptide",
			"MSKGEELFTGVV",
			false,
		},
		{
			"missing FASTA file",
			filepath.Join("testdata", "missing.fa"),
			nil,
			"",
			"",
			true,
		},
		{
			"no input",
			"",
			nil,
			"",
			"",
			true,
		},
		{
			"only a stop",
			"",
			[]string{"*"},
			"",
			"",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, peptide, err := parsePeptide(tt.in, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePeptide() error = %v, wantErr %v", err, tt.wantErr)
			}
			if name != tt.wantName || peptide != tt.wantPeptide {
				t.Errorf("parsePeptide() = %s %s, want %s %s", name, peptide, tt.wantName, tt.wantPeptide)
			}
		})
	}
}

func Test_guessOutput(t *testing.T) {
	if got := guessOutput(filepath.Join("in", "gfp.fa"), "sfGFP"); got != filepath.Join("in", "gfp.output.json") {
		t.Errorf("guessOutput() = %s", got)
	}
	if got := guessOutput("", "sfGFP"); got != "sfGFP.output.json" {
		t.Errorf("guessOutput() = %s", got)
	}
}

func TestTranscript(t *testing.T) {
	conf := testConfig(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "gfp.json")
	gb := filepath.Join(dir, "gfp.gb")

	flags := NewFlags("sfGFP", "MSKGEELFTGVVPILVELDG", out, gb, nil, 2)
	transcripts, err := Transcript(flags, conf)
	if err != nil {
		t.Fatal(err)
	}

	if len(transcripts) != 2 {
		t.Fatalf("got %d transcripts, want 2", len(transcripts))
	}
	if transcripts[0].RBS.Name != "geneA" || transcripts[1].RBS.Name != "geneB" {
		t.Errorf("RBS order = %s, %s", transcripts[0].RBS.Name, transcripts[1].RBS.Name)
	}

	dat, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var o output.Output
	if err = json.Unmarshal(dat, &o); err != nil {
		t.Fatal(err)
	}
	if o.Peptide != "MSKGEELFTGVVPILVELDG" || len(o.Solutions) != 2 {
		t.Errorf("unexpected output %+v", o)
	}

	gbDat, err := os.ReadFile(gb)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(gbDat), "LOCUS") || !strings.Contains(string(gbDat), "sfGFP") {
		t.Errorf("unexpected GenBank output:\n%s", gbDat)
	}
}

func TestTranscript_exclude(t *testing.T) {
	conf := testConfig(t)

	transcripts, err := Transcript(NewFlags("gfp", "MSKGEELFTGVV", "", "", []string{"geneA"}, 1), conf)
	if err != nil {
		t.Fatal(err)
	}
	if transcripts[0].RBS.Name != "geneB" {
		t.Errorf("RBS = %s, want geneB", transcripts[0].RBS.Name)
	}

	if _, err = Transcript(NewFlags("gfp", "MSKGEELFTGVV", "", "", []string{"geneZ"}, 1), conf); err == nil {
		t.Error("expected an error excluding a gene that isn't in the library")
	}
}

func TestCDS(t *testing.T) {
	conf := testConfig(t)
	tr, _ := check.NewTranslator(conf.TranslationTable)

	res, err := CDS(NewFlags("gfp", "MSKGEELFTGVVPILVELDG", "", "", nil, 1), conf)
	if err != nil {
		t.Fatal(err)
	}

	peptide, err := tr.Translate(strings.Join(res.Codons, ""))
	if err != nil {
		t.Fatal(err)
	}
	if peptide != "MSKGEELFTGVVPILVELDG" {
		t.Errorf("CDS translates to %s", peptide)
	}
	if len(res.Windows) != 7 {
		t.Errorf("got %d windows, want 7", len(res.Windows))
	}
}

func TestRBSList(t *testing.T) {
	var buf bytes.Buffer
	if err := RBSList(&buf, testConfig(t)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want a header and 2 options:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "geneA") || !strings.HasPrefix(lines[2], "geneB") {
		t.Errorf("options out of library order:\n%s", buf.String())
	}
	if !strings.Contains(lines[1], "MSKGEE") {
		t.Errorf("missing first6 residues:\n%s", buf.String())
	}
}

func Test_newLibrary_missing(t *testing.T) {
	conf := testConfig(t)
	conf.Library.Dir = filepath.Join("testdata", "missing")

	err := RBSList(&bytes.Buffer{}, conf)
	if err == nil {
		t.Fatal("expected an error for a missing library dir")
	}
	if !strings.Contains(err.Error(), "TDESIGN_LIBRARY_DIR") {
		t.Errorf("error doesn't say how to set the library: %v", err)
	}
}
