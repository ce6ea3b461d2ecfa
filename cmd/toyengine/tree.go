package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"toyengine/pkg/html"
	"toyengine/pkg/layout"
)

func newTreeCmd(a *app) *cobra.Command {
	var boxes, paint, styles bool
	cmd := &cobra.Command{
		Use:   "tree <input.html|->",
		Short: "Print the document tree, box tree or display list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case paint:
				for _, c := range p.DisplayList {
					if _, err := fmt.Fprintln(out, c); err != nil {
						return err
					}
				}
				return nil
			case boxes:
				return printBoxes(out, p.Document, 0, styles)
			default:
				return html.PrintTree(out, p.Root)
			}
		},
	}
	cmd.Flags().BoolVar(&boxes, "boxes", false, "print the layout box tree")
	cmd.Flags().BoolVar(&paint, "paint", false, "print the display list")
	cmd.Flags().BoolVar(&styles, "styles", false, "with --boxes, print each block's computed style")
	cmd.MarkFlagsMutuallyExclusive("boxes", "paint")
	return cmd
}

func printBoxes(w io.Writer, b layout.Box, indent int, styles bool) error {
	pad := strings.Repeat(" ", indent)
	if _, err := fmt.Fprintf(w, "%s%s\n", pad, layout.Describe(b)); err != nil {
		return err
	}
	if block, ok := b.(*layout.BlockBox); ok && styles {
		if err := printStyle(w, pad+"  ", block.Style.Properties()); err != nil {
			return err
		}
	}
	for _, child := range b.ChildBoxes() {
		if err := printBoxes(w, child, indent+2, styles); err != nil {
			return err
		}
	}
	return nil
}

// printStyle writes one "| name: value" line per property, sorted by name.
func printStyle(w io.Writer, pad string, properties map[string]string) error {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s| %s: %s\n", pad, name, properties[name]); err != nil {
			return err
		}
	}
	return nil
}
