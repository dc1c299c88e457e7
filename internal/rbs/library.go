// Package rbs picks a ribosome binding site for a designed CDS from a library
// of RBSs that sit upstream of native, highly expressed genes.
package rbs

import (
	"fmt"
	"io/fs"
	"strings"
)

// Option is an RBS and the native gene it was taken from. Options are
// compared by value, so they can key an exclusion set.
type Option struct {
	// Name of the native gene
	Name string `json:"name"`

	// Description of the native gene
	Description string `json:"description"`

	// RBS is the ribosome binding site sequence
	RBS string `json:"rbs"`

	// CDS is the native gene's coding sequence
	CDS string `json:"cds"`

	// First6 is the translation of the first 18bp of CDS
	First6 string `json:"first6"`
}

// Translator turns DNA into a peptide.
type Translator interface {
	Translate(dna string) (string, error)
}

// Loader returns the raw text of a reference table by its id.
type Loader interface {
	Load(id string) (string, error)
}

// FSLoader loads reference tables from files in a filesystem.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader returns a Loader that treats table ids as paths within fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Load reads the table at path id.
func (l *FSLoader) Load(id string) (string, error) {
	b, err := fs.ReadFile(l.fsys, id)
	if err != nil {
		return "", fmt.Errorf("failed to read reference table %s: %v", id, err)
	}
	return string(b), nil
}

// Tables names the two reference tables a Library is joined from.
type Tables struct {
	// Genes is the tab-separated gene table: description, gene name, ..., CDS
	Genes string

	// RBS is the tab-separated RBS table: gene name, RBS sequence
	RBS string

	// CDSColumn is the index of the CDS column in the gene table
	CDSColumn int
}

// Library is the list of RBS options, in the order of the RBS table.
// It is read only after construction.
type Library struct {
	options []Option
}

// Load reads the gene and RBS tables and joins them into a Library.
func Load(loader Loader, tables Tables, tr Translator) (*Library, error) {
	genes, err := loader.Load(tables.Genes)
	if err != nil {
		return nil, err
	}
	rbss, err := loader.Load(tables.RBS)
	if err != nil {
		return nil, err
	}
	return NewLibrary(genes, rbss, tables.CDSColumn, tr)
}

// geneRow is a row of the gene table that an RBS may join to
type geneRow struct {
	description string
	fields      []string
}

// NewLibrary joins the RBS table to the gene table on gene name. Each match
// becomes an Option with the first six residues of the native gene. RBS rows
// without a gene, and genes without an RBS, are dropped.
func NewLibrary(genes, rbss string, cdsColumn int, tr Translator) (*Library, error) {
	if cdsColumn < 2 {
		return nil, fmt.Errorf("CDS column %d overlaps the description or name", cdsColumn)
	}

	byName := make(map[string][]geneRow)
	for _, line := range lines(genes) {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimSpace(fields[1])
		byName[name] = append(byName[name], geneRow{
			description: strings.TrimSpace(fields[0]),
			fields:      fields,
		})
	}

	lib := &Library{}
	for i, line := range lines(rbss) {
		fields := strings.Split(line, "\t")
		name := strings.TrimSpace(fields[0])

		rows, ok := byName[name]
		if !ok {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("RBS row %d for %s has no sequence", i+1, name)
		}
		rbs := strings.ToUpper(strings.TrimSpace(fields[1]))

		for _, row := range rows {
			if len(row.fields) <= cdsColumn {
				return nil, fmt.Errorf("gene %s has no CDS in column %d", name, cdsColumn)
			}

			cds := strings.ToUpper(strings.TrimSpace(row.fields[cdsColumn]))
			if len(cds) < 18 {
				return nil, fmt.Errorf("CDS of gene %s is %dbp, need at least 18", name, len(cds))
			}

			first6, err := tr.Translate(cds[:18])
			if err != nil {
				return nil, fmt.Errorf("failed to translate the start of %s: %w", name, err)
			}

			lib.options = append(lib.options, Option{
				Name:        name,
				Description: row.description,
				RBS:         rbs,
				CDS:         cds,
				First6:      first6,
			})
		}
	}

	return lib, nil
}

// Options returns a copy of the library's options in library order.
func (l *Library) Options() []Option {
	return append([]Option(nil), l.options...)
}

// Len is the number of options in the library.
func (l *Library) Len() int {
	return len(l.options)
}

// Named returns an exclusion set with every option from the named genes.
func (l *Library) Named(names ...string) (map[Option]bool, error) {
	excluded := make(map[Option]bool)
	for _, name := range names {
		found := false
		for _, o := range l.options {
			if o.Name == name {
				excluded[o] = true
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("no RBS option for gene %s", name)
		}
	}
	return excluded, nil
}

// lines splits text on any line ending and drops blank lines
func lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
