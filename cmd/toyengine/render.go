package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"toyengine/pkg/html"
	"toyengine/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		scrollSteps int
		fullPage    bool
		focusInput  int
	)
	cmd := &cobra.Command{
		Use:   "render <input.html|-> <output.png>",
		Short: "Render a document to a PNG image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]
			p, err := a.load(cmd, input)
			if err != nil {
				return err
			}
			if focusInput >= 0 {
				if node := nthInput(p.Root, focusInput); node != nil {
					p.Focus(node)
				} else {
					a.logger.Warn("no such input", zap.Int("index", focusInput))
				}
			}

			height := a.cfg.Layout.Height
			if fullPage {
				height = p.Height() + 2*a.cfg.Layout.VStep
			} else {
				p.ScrollBy(float64(scrollSteps)*a.cfg.Render.ScrollStep, height)
			}

			fonts, err := a.fontsFor()
			if err != nil {
				return err
			}
			r := render.NewRenderer(int(a.cfg.Layout.Width), int(height), fonts, a.logger)
			drawn := r.Render(p.DisplayList, p.Scroll())
			if err := r.SavePNG(output); err != nil {
				return err
			}

			size := "?"
			if info, err := os.Stat(output); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s to %s (%s, %d of %d commands, scroll %g)\n",
				input, output, size, drawn, len(p.DisplayList), p.Scroll())
			return nil
		},
	}
	cmd.Flags().IntVar(&scrollSteps, "scroll", 0, "scroll down this many steps of render.scroll_step")
	cmd.Flags().BoolVar(&fullPage, "full-page", false, "size the image to the whole document")
	cmd.Flags().IntVar(&focusInput, "focus", -1, "focus the input with this index (0-based)")
	return cmd
}

func nthInput(root *html.Node, n int) *html.Node {
	for _, node := range html.TreeToList(root) {
		if node.IsElement("input") {
			if n == 0 {
				return node
			}
			n--
		}
	}
	return nil
}
