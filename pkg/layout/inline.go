package layout

import (
	"strings"

	"go.uber.org/zap"

	"toyengine/pkg/html"
	"toyengine/pkg/text"
)

// placed is an item on the current line waiting for its baseline.
type placed struct {
	rect    *Rect
	metrics text.Metrics
}

// inlineLayout breaks the inline content of one block into lines.
type inlineLayout struct {
	le      *LayoutEngine
	block   *BlockBox
	lines   []*LineBox
	line    *LineBox
	items   []placed
	cursorX float64
	nextY   float64
}

func newInlineLayout(le *LayoutEngine, block *BlockBox) *inlineLayout {
	il := &inlineLayout{le: le, block: block, nextY: block.Y}
	il.startLine()
	return il
}

func (il *inlineLayout) recurse(node *html.Node) {
	if node.Type == html.TextNode {
		for _, word := range strings.Fields(node.Text) {
			il.word(node, word)
		}
		return
	}
	switch {
	case hidden(il.le.styles.Lookup(node)):
		return
	case node.IsElement("br"):
		il.breakLine()
		return
	case node.IsElement("input"), node.IsElement("button"):
		il.input(node)
		return
	}
	for _, child := range node.Children {
		il.recurse(child)
	}
}

func (il *inlineLayout) word(node *html.Node, word string) {
	style := il.le.styles.Lookup(node)
	key := fontKey(style)
	font := il.le.fonts.Font(key)
	w := font.Measure(word)
	if il.cursorX+w > il.block.Width && len(il.items) > 0 {
		il.breakLine()
	}

	metrics := font.Metrics()
	run := &TextRun{
		Rect:  Rect{X: il.block.X + il.cursorX, Width: w, Height: metrics.Linespace},
		Node:  node,
		Word:  word,
		Font:  key,
		Color: style.Lookup("color", "black"),
		Style: style,
	}
	il.place(run, &run.Rect, metrics)
	il.cursorX += w + font.Measure(" ")
}

func (il *inlineLayout) input(node *html.Node) {
	style := il.le.styles.Lookup(node)
	key := fontKey(style)
	font := il.le.fonts.Font(key)
	w := il.le.opts.InputWidth
	if il.cursorX+w > il.block.Width && len(il.items) > 0 {
		il.breakLine()
	}

	metrics := font.Metrics()
	atom := &InputAtom{
		Rect:    Rect{X: il.block.X + il.cursorX, Width: w, Height: metrics.Linespace},
		Node:    node,
		Style:   style,
		Text:    il.inputText(node),
		Font:    key,
		Color:   style.Lookup("color", "black"),
		Focused: node == il.le.opts.Focus,
	}
	if atom.Focused {
		atom.CaretX = font.Measure(atom.Text)
	}
	il.place(atom, &atom.Rect, metrics)
	il.cursorX += w + font.Measure(" ")
}

// inputText is an input's value, or a button's text when its only child
// is a text node.
func (il *inlineLayout) inputText(node *html.Node) string {
	if node.IsElement("input") {
		value, _ := node.GetAttribute("value")
		return value
	}
	if len(node.Children) == 1 && node.Children[0].Type == html.TextNode {
		return node.Children[0].Text
	}
	if len(node.Children) > 0 {
		il.le.logger.Debug("ignoring button content", zap.Int("children", len(node.Children)))
	}
	return ""
}

func (il *inlineLayout) place(b Box, rect *Rect, metrics text.Metrics) {
	il.line.Children = append(il.line.Children, b)
	il.items = append(il.items, placed{rect: rect, metrics: metrics})
}

func (il *inlineLayout) startLine() {
	il.line = &LineBox{
		Rect: Rect{X: il.block.X, Y: il.nextY, Width: il.block.Width},
		Node: il.block.Node,
	}
	il.items = nil
	il.cursorX = 0
}

func (il *inlineLayout) breakLine() {
	il.finishLine()
	il.startLine()
}

// finishLine puts every item of the line on a shared baseline.
func (il *inlineLayout) finishLine() {
	var maxAscent, maxDescent float64
	for _, item := range il.items {
		maxAscent = max(maxAscent, item.metrics.Ascent)
		maxDescent = max(maxDescent, item.metrics.Descent)
	}
	baseline := il.line.Y + 1.25*maxAscent
	for _, item := range il.items {
		item.rect.Y = baseline - item.metrics.Ascent
	}
	il.line.Height = 1.25 * (maxAscent + maxDescent)
	il.nextY = il.line.Y + il.line.Height
	il.lines = append(il.lines, il.line)
}

func (il *inlineLayout) finish() []*LineBox {
	il.finishLine()
	return il.lines
}
