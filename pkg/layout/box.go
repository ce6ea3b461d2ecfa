package layout

import (
	"fmt"

	"toyengine/pkg/css"
	"toyengine/pkg/html"
	"toyengine/pkg/text"
)

// Rect represents a rectangular region in document coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Bounds() Rect {
	return r
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", r.X, r.Y, r.Width, r.Height)
}

// Box is a node of the layout tree. The variants are *DocumentBox,
// *BlockBox, *LineBox, *TextRun and *InputAtom.
type Box interface {
	Bounds() Rect
	// DOMNode is the node the box was generated for.
	DOMNode() *html.Node
	ChildBoxes() []Box
	isBox()
}

// Mode is how a block lays out its content.
type Mode int

const (
	ModeBlock Mode = iota
	ModeInline
)

func (m Mode) String() string {
	if m == ModeInline {
		return "inline"
	}
	return "block"
}

// DocumentBox is the root of the layout tree.
type DocumentBox struct {
	Rect
	Node  *html.Node
	Child *BlockBox
}

// BlockBox stacks its children vertically. In block mode the children are
// further blocks, in inline mode they are lines.
type BlockBox struct {
	Rect
	Node     *html.Node
	Style    *css.Style
	Mode     Mode
	Children []Box
}

// LineBox is one line of inline content.
type LineBox struct {
	Rect
	Node     *html.Node
	Children []Box
}

// TextRun is a single word.
type TextRun struct {
	Rect
	Node  *html.Node
	Word  string
	Font  text.FontKey
	Color string
	Style *css.Style
}

// InputAtom is the fixed-width box of an <input> or <button>.
type InputAtom struct {
	Rect
	Node    *html.Node
	Style   *css.Style
	Text    string
	Font    text.FontKey
	Color   string
	Focused bool
	// CaretX is the caret offset from the atom's left edge.
	CaretX float64
}

func (b *DocumentBox) DOMNode() *html.Node { return b.Node }
func (b *BlockBox) DOMNode() *html.Node    { return b.Node }
func (b *LineBox) DOMNode() *html.Node     { return b.Node }
func (b *TextRun) DOMNode() *html.Node     { return b.Node }
func (b *InputAtom) DOMNode() *html.Node   { return b.Node }

func (b *DocumentBox) ChildBoxes() []Box {
	if b.Child == nil {
		return nil
	}
	return []Box{b.Child}
}

func (b *BlockBox) ChildBoxes() []Box  { return b.Children }
func (b *LineBox) ChildBoxes() []Box   { return b.Children }
func (b *TextRun) ChildBoxes() []Box   { return nil }
func (b *InputAtom) ChildBoxes() []Box { return nil }

func (*DocumentBox) isBox() {}
func (*BlockBox) isBox()    {}
func (*LineBox) isBox()     {}
func (*TextRun) isBox()     {}
func (*InputAtom) isBox()   {}

// TreeToList flattens a box tree in pre-order.
func TreeToList(b Box) []Box {
	list := []Box{b}
	for _, child := range b.ChildBoxes() {
		list = append(list, TreeToList(child)...)
	}
	return list
}

// Describe returns a one-line description of a box for debugging.
func Describe(b Box) string {
	switch b := b.(type) {
	case *DocumentBox:
		return "Document " + b.Rect.String()
	case *BlockBox:
		return fmt.Sprintf("Block[%s] %s %s", b.Mode, b.Node, b.Rect)
	case *LineBox:
		return "Line " + b.Rect.String()
	case *TextRun:
		return fmt.Sprintf("TextRun %q %s %s", b.Word, b.Font, b.Rect)
	case *InputAtom:
		return fmt.Sprintf("Input %q %s %s", b.Text, b.Node, b.Rect)
	}
	return fmt.Sprintf("%T", b)
}
