package layout

import (
	"fmt"

	"toyengine/pkg/css"
	"toyengine/pkg/text"
)

// PaintCommand is one renderer-agnostic draw operation in document
// coordinates. The variants are *DrawText, *DrawRect, *DrawOutline and
// *DrawLine.
type PaintCommand interface {
	Bounds() Rect
	paintCommand()
}

// DrawText draws Text with its top-left corner at the rect origin.
type DrawText struct {
	Rect
	Text  string
	Font  text.FontKey
	Color string
}

// DrawRect fills the rect.
type DrawRect struct {
	Rect
	Color string
}

// DrawOutline strokes the rect's border.
type DrawOutline struct {
	Rect
	Color     string
	Thickness float64
}

// DrawLine draws a segment from the rect's top-left to its bottom-right
// corner.
type DrawLine struct {
	Rect
	Color     string
	Thickness float64
}

func (*DrawText) paintCommand()    {}
func (*DrawRect) paintCommand()    {}
func (*DrawOutline) paintCommand() {}
func (*DrawLine) paintCommand()    {}

// PaintTree walks the box tree in pre-order and returns the display list:
// each box's own commands come before those of its children.
func PaintTree(root Box) []PaintCommand {
	cmds := make([]PaintCommand, 0)
	paintTree(root, &cmds)
	return cmds
}

func paintTree(b Box, cmds *[]PaintCommand) {
	*cmds = append(*cmds, paint(b)...)
	for _, child := range b.ChildBoxes() {
		paintTree(child, cmds)
	}
}

func paint(b Box) []PaintCommand {
	switch b := b.(type) {
	case *DocumentBox, *LineBox:
		return nil
	case *BlockBox:
		// Inputs and buttons paint through their atom.
		if b.Node.IsElement("input") || b.Node.IsElement("button") {
			return nil
		}
		return decorations(b.Rect, b.Style)
	case *TextRun:
		return []PaintCommand{&DrawText{Rect: b.Rect, Text: b.Word, Font: b.Font, Color: b.Color}}
	case *InputAtom:
		cmds := decorations(b.Rect, b.Style)
		cmds = append(cmds, &DrawText{Rect: b.Rect, Text: b.Text, Font: b.Font, Color: b.Color})
		if b.Focused {
			caret := Rect{X: b.X + b.CaretX, Y: b.Y, Height: b.Height}
			cmds = append(cmds, &DrawLine{Rect: caret, Color: "black", Thickness: 1})
		}
		return cmds
	}
	return nil
}

// decorations are the background and outline of a box.
func decorations(r Rect, style *css.Style) []PaintCommand {
	var cmds []PaintCommand
	if bg := style.Lookup("background-color", "transparent"); bg != "transparent" {
		cmds = append(cmds, &DrawRect{Rect: r, Color: bg})
	}
	if width, ok := style.GetPixels("outline"); ok && width > 0 {
		cmds = append(cmds, &DrawOutline{Rect: r, Color: style.Lookup("outline-color", "black"), Thickness: width})
	}
	return cmds
}

func (c *DrawText) String() string {
	return fmt.Sprintf("DrawText %q %s %s %s", c.Text, c.Font, c.Color, c.Rect)
}

func (c *DrawRect) String() string {
	return fmt.Sprintf("DrawRect %s %s", c.Color, c.Rect)
}

func (c *DrawOutline) String() string {
	return fmt.Sprintf("DrawOutline %s %gpx %s", c.Color, c.Thickness, c.Rect)
}

func (c *DrawLine) String() string {
	return fmt.Sprintf("DrawLine %s %gpx %s", c.Color, c.Thickness, c.Rect)
}
