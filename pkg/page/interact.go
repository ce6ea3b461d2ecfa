package page

import (
	"toyengine/pkg/html"
	"toyengine/pkg/layout"
)

// ClickResult describes what a click landed on.
type ClickResult struct {
	// Box is the innermost box under the point, nil if none.
	Box layout.Box
	// Link is the enclosing <a href> element, if any.
	Link *html.Node
	Href string
	// Focused is set when the click moved focus to an input.
	Focused *html.Node
}

// Click hit-tests a point in document coordinates. Clicking an input
// focuses it; clicking anything else clears the focus.
func (p *Page) Click(x, y float64) ClickResult {
	var result ClickResult
	result.Box = p.HitTest(x, y)
	if result.Box == nil {
		p.Focus(nil)
		return result
	}
	node := result.Box.DOMNode()
	if node.IsElement("input") {
		p.Focus(node)
		result.Focused = node
		return result
	}
	p.Focus(nil)
	if link, ok := layout.EnclosingLink(node); ok {
		result.Link = link
		result.Href, _ = link.GetAttribute("href")
	}
	return result
}

// ScrollBy moves the scroll offset by delta, clamped so the document stays
// on screen in a viewport of the given height. It returns the new offset.
func (p *Page) ScrollBy(delta, viewportHeight float64) float64 {
	p.scroll = clamp(p.scroll+delta, 0, p.MaxScroll(viewportHeight))
	return p.scroll
}

// Scroll is the current scroll offset.
func (p *Page) Scroll() float64 {
	return p.scroll
}

// MaxScroll is the largest offset that still shows the end of the
// document plus the page margins.
func (p *Page) MaxScroll(viewportHeight float64) float64 {
	return max(p.Document.Height+2*p.loader.opts.VStep-viewportHeight, 0)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
