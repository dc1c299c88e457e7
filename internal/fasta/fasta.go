// Package fasta reads peptide records from FASTA files.
package fasta

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bebop/poly/io/fasta"
)

// Record is a single entry of a FASTA file.
type Record struct {
	ID  string
	Seq string
}

// unwantedChars are stripped from sequences: whitespace, digits, gaps
var unwantedChars = regexp.MustCompile(`[^A-Za-z*]`)

// Read parses the FASTA file at path.
func Read(path string) ([]Record, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FASTA file %s: %v", path, err)
	}

	records, err := Parse(string(dat))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return records, nil
}

// Parse reads FASTA records from a string. Text before the first header, and
// a header without a sequence, are errors.
func Parse(file string) ([]Record, error) {
	file = strings.ReplaceAll(file, "\r\n", "\n")
	if err := validate(strings.Split(file, "\n")); err != nil {
		return nil, err
	}

	// the parser drops a last record that isn't newline terminated
	if !strings.HasSuffix(file, "\n") {
		file += "\n"
	}

	fastas, err := fasta.Parse(strings.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to parse FASTA records: %v", err)
	}
	if len(fastas) == 0 {
		return nil, fmt.Errorf("no FASTA records found")
	}

	records := make([]Record, len(fastas))
	for i, f := range fastas {
		records[i] = Record{
			ID:  strings.TrimSpace(f.Name),
			Seq: unwantedChars.ReplaceAllString(f.Sequence, ""),
		}
	}
	return records, nil
}

// validate checks the layout of the records' lines. Blank and ';' lines are comments.
func validate(lines []string) error {
	header, open, hasSeq := "", false, false
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, ">"):
			if open && !hasSeq {
				return fmt.Errorf("record %s has no sequence", header)
			}
			header, open, hasSeq = strings.TrimSpace(line[1:]), true, false
		case strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";"):
		case !open:
			return fmt.Errorf("sequence on line %d comes before any header", i+1)
		default:
			hasSeq = true
		}
	}

	if open && !hasSeq {
		return fmt.Errorf("record %s has no sequence", header)
	}
	return nil
}
