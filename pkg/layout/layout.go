package layout

import (
	"go.uber.org/zap"
	"golang.org/x/net/html/atom"

	"toyengine/pkg/css"
	"toyengine/pkg/html"
	"toyengine/pkg/text"
)

var blockElements = html.NewTagSet(
	atom.Html, atom.Body, atom.Article, atom.Section, atom.Nav, atom.Aside,
	atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Hgroup, atom.Header,
	atom.Footer, atom.Address, atom.P, atom.Hr, atom.Pre, atom.Blockquote,
	atom.Ol, atom.Ul, atom.Menu, atom.Li, atom.Dl, atom.Dt, atom.Dd, atom.Figure,
	atom.Figcaption, atom.Main, atom.Div, atom.Table, atom.Form, atom.Fieldset,
	atom.Legend, atom.Details, atom.Summary,
)

// IsBlockElement reports whether tag is in the block-level tag set.
func IsBlockElement(tag string) bool {
	return blockElements.Has(tag)
}

// Options are the layout constants.
type Options struct {
	// HStep and VStep are the page margins. VStep is also the gap below
	// each paragraph.
	HStep      float64
	VStep      float64
	InputWidth float64
	// Focus is the input element holding focus, if any.
	Focus *html.Node
}

func DefaultOptions() Options {
	return Options{HStep: 13, VStep: 18, InputWidth: 200}
}

// LayoutEngine builds box trees. It keeps no state between passes; font
// caching is left to the provider.
type LayoutEngine struct {
	fonts  text.Provider
	styles css.Styles
	opts   Options
	logger *zap.Logger
}

func NewLayoutEngine(fonts text.Provider, styles css.Styles, opts Options, logger *zap.Logger) *LayoutEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LayoutEngine{
		fonts:  fonts,
		styles: styles,
		opts:   opts,
		logger: logger,
	}
}

// Layout lays out the tree under root for the given viewport width.
func (le *LayoutEngine) Layout(root *html.Node, width float64) *DocumentBox {
	doc := &DocumentBox{Node: root}
	doc.X = le.opts.HStep
	doc.Y = le.opts.VStep
	doc.Width = width - 2*le.opts.HStep
	doc.Child = le.layoutBlock(root, doc.X, doc.Y, doc.Width)
	doc.Height = doc.Child.Height
	return doc
}

func layoutMode(node *html.Node) Mode {
	if node.Type == html.TextNode {
		return ModeInline
	}
	for _, child := range node.Children {
		if child.Type == html.ElementNode && IsBlockElement(child.TagName) {
			return ModeBlock
		}
	}
	if len(node.Children) > 0 || node.IsElement("input") {
		return ModeInline
	}
	return ModeBlock
}

func (le *LayoutEngine) layoutBlock(node *html.Node, x, y, width float64) *BlockBox {
	style := le.styles.Lookup(node)
	b := &BlockBox{
		Rect:  Rect{X: x, Y: y, Width: width},
		Node:  node,
		Style: style,
		Mode:  layoutMode(node),
	}
	if w, ok := style.GetPixels("width"); ok {
		b.Width = w
	}
	if hidden(style) {
		return b
	}

	switch b.Mode {
	case ModeBlock:
		cursorY := b.Y
		for _, child := range node.Children {
			childBox := le.layoutBlock(child, b.X, cursorY, b.Width)
			b.Children = append(b.Children, childBox)
			cursorY += childBox.Height
		}
		b.Height = cursorY - b.Y
	case ModeInline:
		il := newInlineLayout(le, b)
		il.recurse(node)
		for _, line := range il.finish() {
			b.Children = append(b.Children, line)
			b.Height += line.Height
		}
	}

	if node.IsElement("p") {
		b.Height += le.opts.VStep
	}
	if h, ok := style.GetPixels("height"); ok {
		b.Height = h
	}
	return b
}

func hidden(style *css.Style) bool {
	return style.Lookup("display", "") == "none"
}

func fontKey(style *css.Style) text.FontKey {
	return text.KeyFor(
		style.FontSizePx(),
		style.Lookup("font-weight", text.WeightNormal),
		style.Lookup("font-style", "normal"),
	)
}
