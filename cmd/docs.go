package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// page is the just-the-docs front matter of a command's doc page
// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
type page struct {
	title       string
	parent      string
	grandParent string
	navOrder    int
	hasChildren bool
	root        bool
}

// docsCmd writes Markdown documentation for every command
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Write Markdown docs for each command",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./docs"
		if len(args) > 0 {
			dir = args[0]
		}
		return makeDocs(dir)
	},
}

func init() {
	RootCmd.AddCommand(docsCmd)
}

// makeDocs writes a Markdown page per command to dir, each with the front
// matter the docs theme needs to nest it under its parent
func makeDocs(dir string) error {
	pages := pagesOf(RootCmd)

	prepend := func(filename string) string {
		if p, ok := pages[baseName(filename)]; ok {
			return p.frontMatter()
		}
		return ""
	}

	link := func(filename string) string {
		if base := baseName(filename); base != RootCmd.Name() {
			return base
		}
		return "/"
	}

	if err := doc.GenMarkdownTreeCustom(RootCmd, dir, prepend, link); err != nil {
		return fmt.Errorf("failed to write docs to %s: %v", dir, err)
	}
	return nil
}

// pagesOf walks the documented commands under root, keyed by the base name
// cobra/doc gives their files. Siblings are ordered as cobra lists them.
func pagesOf(root *cobra.Command) map[string]page {
	pages := make(map[string]page)

	var walk func(c *cobra.Command, order int)
	walk = func(c *cobra.Command, order int) {
		p := page{
			title:       c.Name(),
			navOrder:    order,
			hasChildren: c.HasAvailableSubCommands(),
			root:        !c.HasParent(),
		}
		if c.HasParent() {
			p.parent = c.Parent().Name()
			if c.Parent().HasParent() {
				p.grandParent = c.Parent().Parent().Name()
			}
		}
		pages[strings.ReplaceAll(c.CommandPath(), " ", "_")] = p

		i := 0
		for _, sub := range c.Commands() {
			if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
				continue
			}
			walk(sub, i)
			i++
		}
	}
	walk(root, 0)

	return pages
}

// frontMatter is the YAML header of the page
func (p page) frontMatter() string {
	var b strings.Builder
	b.WriteString("---\nlayout: default\n")
	fmt.Fprintf(&b, "title: %s\n", p.title)
	if p.parent != "" {
		fmt.Fprintf(&b, "parent: %s\n", p.parent)
	}
	if p.grandParent != "" {
		fmt.Fprintf(&b, "grand_parent: %s\n", p.grandParent)
	}
	fmt.Fprintf(&b, "nav_order: %d\n", p.navOrder)
	if p.hasChildren {
		b.WriteString("has_children: true\n")
	}
	if p.root {
		b.WriteString("permalink: /\n")
	}
	b.WriteString("---\n")
	return b.String()
}

// baseName is a doc file's name without its directory or extension
func baseName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
