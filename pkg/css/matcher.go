package css

import (
	"strings"

	"toyengine/pkg/html"
)

// Selector matches element nodes. The variants are TagSelector,
// ClassSelector, IDSelector and DescendantSelector.
type Selector interface {
	Matches(node *html.Node) bool
	// Priority is the selector's specificity in the cascade.
	Priority() int
	String() string
	selector()
}

type TagSelector struct {
	Tag string
}

type ClassSelector struct {
	Name string
}

type IDSelector struct {
	ID string
}

// DescendantSelector matches a node matched by Descendant that has some
// ancestor matched by Ancestor.
type DescendantSelector struct {
	Ancestor   Selector
	Descendant Selector
}

func (s *TagSelector) Matches(node *html.Node) bool {
	return node.Type == html.ElementNode && node.TagName == s.Tag
}

func (s *TagSelector) Priority() int    { return 1 }
func (s *TagSelector) String() string   { return s.Tag }
func (s *ClassSelector) Priority() int  { return 10 }
func (s *ClassSelector) String() string { return "." + s.Name }
func (s *IDSelector) Priority() int     { return 100 }
func (s *IDSelector) String() string    { return "#" + s.ID }

func (s *ClassSelector) Matches(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}
	classAttr, ok := node.GetAttribute("class")
	if !ok {
		return false
	}
	for _, class := range strings.Fields(classAttr) {
		if class == s.Name {
			return true
		}
	}
	return false
}

func (s *IDSelector) Matches(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}
	id, ok := node.GetAttribute("id")
	return ok && id == s.ID
}

func (s *DescendantSelector) Matches(node *html.Node) bool {
	if !s.Descendant.Matches(node) {
		return false
	}
	for ancestor := node.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if s.Ancestor.Matches(ancestor) {
			return true
		}
	}
	return false
}

func (s *DescendantSelector) Priority() int {
	return s.Ancestor.Priority() + s.Descendant.Priority()
}

func (s *DescendantSelector) String() string {
	return s.Ancestor.String() + " " + s.Descendant.String()
}

func (*TagSelector) selector()        {}
func (*ClassSelector) selector()      {}
func (*IDSelector) selector()         {}
func (*DescendantSelector) selector() {}

// FindMatchingRules returns all rules that match the given node, in the
// order they were given.
func FindMatchingRules(node *html.Node, rules []Rule) []Rule {
	matches := make([]Rule, 0)
	for _, rule := range rules {
		if rule.Selector.Matches(node) {
			matches = append(matches, rule)
		}
	}
	return matches
}
