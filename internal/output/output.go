// Package output writes designed transcripts to JSON and GenBank files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bebop/poly/io/genbank"
	"github.com/jjtimmons/tdesign/internal/check"
	"github.com/jjtimmons/tdesign/internal/design"
)

// Solution is a single designed transcript.
type Solution struct {
	// RBS is the name of the RBS's native gene
	RBS string `json:"rbs"`

	// RBSDescription is the description of the RBS's native gene
	RBSDescription string `json:"rbsDescription"`

	// RBSSeq is the RBS sequence
	RBSSeq string `json:"rbsSeq"`

	// First6 are the first six residues of the RBS's native gene
	First6 string `json:"first6"`

	// CDS is the designed coding sequence
	CDS string `json:"cds"`

	// Codons of the CDS
	Codons []string `json:"codons"`

	// GC content of the CDS
	GC float64 `json:"gc"`

	// Seq is the RBS followed by the CDS
	Seq string `json:"seq"`
}

// Output is the JSON written for a design run.
type Output struct {
	// Peptide that was designed for
	Peptide string `json:"peptide"`

	// Time, ex: "2018/01/01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Solutions are the transcripts, best first
	Solutions []Solution `json:"solutions"`
}

// WriteJSON serializes transcripts and writes them to filename.
func WriteJSON(filename string, transcripts []*design.Transcript, seconds float64) ([]byte, error) {
	// same format as log.Println
	t := time.Now()
	stamp := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	out := Output{Time: stamp, Execution: seconds, Solutions: []Solution{}}
	for _, tr := range transcripts {
		out.Peptide = tr.Peptide

		cds := tr.CDS()
		gc, err := round(check.GC(cds))
		if err != nil {
			return nil, err
		}

		out.Solutions = append(out.Solutions, Solution{
			RBS:            tr.RBS.Name,
			RBSDescription: tr.RBS.Description,
			RBSSeq:         tr.RBS.RBS,
			First6:         tr.RBS.First6,
			CDS:            cds,
			Codons:         tr.Codons,
			GC:             gc,
			Seq:            tr.RBS.RBS + cds,
		})
	}

	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize output: %v", err)
	}

	if err = os.WriteFile(filename, output, 0666); err != nil {
		return output, fmt.Errorf("failed to write the output: %v", err)
	}
	return output, nil
}

// Genbank is a transcript as a linear GenBank record with RBS and CDS features.
func Genbank(name string, tr *design.Transcript) genbank.Genbank {
	cds := tr.CDS()
	seq := tr.RBS.RBS + cds

	gb := genbank.Genbank{
		Meta: genbank.Meta{
			Name:       name,
			Definition: fmt.Sprintf("%s behind the RBS of %s", name, tr.RBS.Name),
			Accession:  ".",
			Locus: genbank.Locus{
				Name:             name,
				SequenceLength:   strconv.Itoa(len(seq)),
				MoleculeType:     "DNA",
				GenbankDivision:  "SYN",
				ModificationDate: strings.ToUpper(time.Now().Local().Format("02-Jan-2006")),
			},
		},
		Sequence: strings.ToLower(seq),
	}

	rbsLen := len(tr.RBS.RBS)
	if rbsLen > 0 {
		gb.AddFeature(&genbank.Feature{
			Type:       "RBS",
			Attributes: map[string]string{"label": tr.RBS.Name + " RBS"},
			Location:   genbank.Location{Start: 0, End: rbsLen},
		})
	}
	if len(cds) > 0 {
		gb.AddFeature(&genbank.Feature{
			Type:       "CDS",
			Attributes: map[string]string{"label": name, "translation": tr.Peptide},
			Location:   genbank.Location{Start: rbsLen, End: len(seq)},
		})
	}

	return gb
}

// WriteGenbank writes a transcript to filename as GenBank.
func WriteGenbank(filename, name string, tr *design.Transcript) error {
	if err := genbank.Write(Genbank(name, tr), filename); err != nil {
		return fmt.Errorf("failed to write %s: %v", filename, err)
	}
	return nil
}

// round to three decimal places
func round(f float64) (float64, error) {
	return strconv.ParseFloat(fmt.Sprintf("%.3f", f), 64)
}
