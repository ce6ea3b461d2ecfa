package html

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
)

// Node is either an element or a run of text. Children are owned by the
// parent; Parent is a back-reference only and is nil for the root.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// NewElement returns an element with no children whose parent is parent.
func NewElement(tag string, attributes map[string]string, parent *Node) *Node {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attributes,
		Children:   make([]*Node, 0),
		Parent:     parent,
	}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// IsElement reports whether n is an element with the given tag name.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == ElementNode && n.TagName == tag
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.Children = append(n.Children, &Node{
		Type:   TextNode,
		Text:   text,
		Parent: n,
	})
}

func (n *Node) String() string {
	if n.Type == TextNode {
		return strconv.Quote(n.Text)
	}
	return "<" + n.TagName + ">"
}

// TreeToList flattens the subtree rooted at n in document order.
func TreeToList(n *Node) []*Node {
	list := []*Node{n}
	for _, child := range n.Children {
		list = append(list, TreeToList(child)...)
	}
	return list
}

// PrintTree writes an indented outline of the subtree, two spaces per level.
func PrintTree(w io.Writer, n *Node) error {
	return printTree(w, n, 0)
}

func printTree(w io.Writer, n *Node, indent int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := printTree(w, child, indent+2); err != nil {
			return err
		}
	}
	return nil
}

// SerializeOuter returns the markup for the node's own tags plus all
// descendants.
func (n *Node) SerializeOuter() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		sb.WriteString(escapeHTML(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)

	// Sort attributes for deterministic output
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			if v := n.Attributes[k]; v != "" {
				sb.WriteString(`="`)
				sb.WriteString(escapeAttr(v))
				sb.WriteByte('"')
			}
		}
	}

	sb.WriteByte('>')
	if IsSelfClosing(n.TagName) {
		return
	}
	for _, child := range n.Children {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// TagSet is a set of known tag names keyed by atom.
type TagSet map[atom.Atom]bool

func NewTagSet(tags ...atom.Atom) TagSet {
	set := make(TagSet, len(tags))
	for _, a := range tags {
		set[a] = true
	}
	return set
}

// Has reports whether the tag name is in the set. Unknown names never are.
func (s TagSet) Has(tag string) bool {
	a := atom.Lookup([]byte(tag))
	return a != 0 && s[a]
}

var selfClosingTags = NewTagSet(
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
	atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr,
)

var headTags = NewTagSet(
	atom.Base, atom.Basefont, atom.Bgsound, atom.Noscript,
	atom.Link, atom.Meta, atom.Title, atom.Style, atom.Script,
)

// IsSelfClosing returns true for void elements, which never take children.
func IsSelfClosing(tag string) bool {
	return selfClosingTags.Has(tag)
}

// Fold case-folds names the way tag and attribute names are compared.
func Fold(s string) string {
	return cases.Fold().String(s)
}
