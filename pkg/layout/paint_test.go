package layout

import (
	"testing"

	"toyengine/pkg/css"
	"toyengine/pkg/html"
	"toyengine/pkg/text"
)

func TestPaintTree_Order(t *testing.T) {
	_, doc := layoutHTML(t, `<pre>code</pre><p style="background-color:yellow">a <b>b</b></p>`, 800, DefaultOptions())
	cmds := PaintTree(doc)

	var kinds []string
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case *DrawRect:
			kinds = append(kinds, "rect:"+c.Color)
		case *DrawText:
			kinds = append(kinds, "text:"+c.Text)
		default:
			kinds = append(kinds, "other")
		}
	}
	want := []string{"rect:gray", "text:code", "rect:yellow", "text:a", "text:b"}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("command %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestPaintTree_BackgroundCoversBlock(t *testing.T) {
	root, doc := layoutHTML(t, `<div style="background-color:red">x</div>`, 800, DefaultOptions())
	block := blockFor(doc, findElement(root, "div"))
	cmds := PaintTree(doc)
	rect, ok := cmds[0].(*DrawRect)
	if !ok {
		t.Fatalf("expected a rect first, got %T", cmds[0])
	}
	if rect.Rect != block.Rect || rect.Color != "red" {
		t.Errorf("expected red rect %s, got %s %s", block.Rect, rect.Color, rect.Rect)
	}
}

func TestPaintTree_TextCommand(t *testing.T) {
	_, doc := layoutHTML(t, `<a href="/x">link</a>`, 800, DefaultOptions())
	cmds := PaintTree(doc)
	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %d", len(cmds))
	}
	txt := cmds[0].(*DrawText)
	if txt.Text != "link" || txt.Color != "blue" {
		t.Errorf("unexpected text command %+v", txt)
	}
	if txt.Font != (text.FontKey{Size: 12, Weight: text.WeightNormal, Slant: text.SlantRoman}) {
		t.Errorf("unexpected font %s", txt.Font)
	}
	if txt.Width != 4*glyph || !approx(txt.Height, 12) {
		t.Errorf("unexpected text rect %s", txt.Rect)
	}
}

func TestPaintTree_InputCaret(t *testing.T) {
	markup := `<input value="ab"><input value="cd">`
	root := html.Parse(markup)
	styles := css.ApplyStyles(root, css.UserAgentRules())
	opts := DefaultOptions()
	var inputs []*html.Node
	for _, n := range html.TreeToList(root) {
		if n.IsElement("input") {
			inputs = append(inputs, n)
		}
	}
	opts.Focus = inputs[1]
	doc := NewLayoutEngine(text.NewFixedProvider(), styles, opts, nil).Layout(root, 800)

	cmds := PaintTree(doc)
	// background, text for each input, then the caret of the focused one.
	if len(cmds) != 5 {
		t.Fatalf("expected 5 commands, got %d", len(cmds))
	}
	if bg, ok := cmds[0].(*DrawRect); !ok || bg.Color != "lightblue" {
		t.Errorf("expected lightblue input background, got %#v", cmds[0])
	}
	caret, ok := cmds[4].(*DrawLine)
	if !ok {
		t.Fatalf("expected caret line last, got %T", cmds[4])
	}
	label := cmds[3].(*DrawText)
	if caret.X != label.X+2*glyph || caret.Width != 0 || caret.Y != label.Y || caret.Height != label.Height {
		t.Errorf("unexpected caret %s for text %s", caret.Rect, label.Rect)
	}
	if caret.Color != "black" || caret.Thickness != 1 {
		t.Errorf("unexpected caret style %s %v", caret.Color, caret.Thickness)
	}
}

func TestPaintTree_NoCaretWithoutFocus(t *testing.T) {
	_, doc := layoutHTML(t, `<input value="ab">`, 800, DefaultOptions())
	for _, cmd := range PaintTree(doc) {
		if _, ok := cmd.(*DrawLine); ok {
			t.Error("unexpected caret without focus")
		}
	}
}

func TestPaintTree_ButtonBlockNotPainted(t *testing.T) {
	_, doc := layoutHTML(t, `<div><button>Go</button><p>x</p></div>`, 800, DefaultOptions())
	rects := 0
	for _, cmd := range PaintTree(doc) {
		if r, ok := cmd.(*DrawRect); ok {
			rects++
			if r.Width != 200 {
				t.Errorf("button background should cover only the atom, got %s", r.Rect)
			}
		}
	}
	if rects != 1 {
		t.Errorf("expected exactly one background, got %d", rects)
	}
}

func TestPaintTree_Outline(t *testing.T) {
	root, doc := layoutHTML(t, `<div style="outline:2px;outline-color:red">x</div><p style="outline:auto">y</p>`, 800, DefaultOptions())
	block := blockFor(doc, findElement(root, "div"))
	var outlines []*DrawOutline
	for _, cmd := range PaintTree(doc) {
		if o, ok := cmd.(*DrawOutline); ok {
			outlines = append(outlines, o)
		}
	}
	if len(outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(outlines))
	}
	if outlines[0].Rect != block.Rect || outlines[0].Color != "red" || outlines[0].Thickness != 2 {
		t.Errorf("unexpected outline %+v", outlines[0])
	}
}
