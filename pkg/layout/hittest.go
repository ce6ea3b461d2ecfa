package layout

import "toyengine/pkg/html"

// HitTest returns the last box in document order whose bounds contain the
// point, or nil. Later boxes are nested deeper or laid out later, so this
// is the innermost hit.
func HitTest(root Box, x, y float64) Box {
	var hit Box
	for _, b := range TreeToList(root) {
		if b.Bounds().Contains(x, y) {
			hit = b
		}
	}
	return hit
}

// LinkAt returns the <a href> element enclosing the box hit at the point.
func LinkAt(root Box, x, y float64) (*html.Node, bool) {
	hit := HitTest(root, x, y)
	if hit == nil {
		return nil, false
	}
	return EnclosingLink(hit.DOMNode())
}

// EnclosingLink walks from node up to the nearest <a> with an href.
func EnclosingLink(node *html.Node) (*html.Node, bool) {
	for n := node; n != nil; n = n.Parent {
		if n.IsElement("a") {
			if _, ok := n.GetAttribute("href"); ok {
				return n, true
			}
		}
	}
	return nil, false
}
