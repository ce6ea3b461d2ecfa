package css

import (
	"sort"

	"toyengine/pkg/html"
)

const defaultFontSize = "16px"

// InheritedProperties are copied from parent to child before any rule
// applies. A root node starts from these defaults.
var InheritedProperties = []struct {
	Name    string
	Default string
}{
	{"font-size", defaultFontSize},
	{"font-style", "normal"},
	{"font-weight", "normal"},
	{"color", "black"},
}

const (
	// importantBoost lifts an !important declaration above every normal one.
	importantBoost = 1000
	inlinePriority = 1000
)

// Styles holds the computed style of every node in a tree.
type Styles map[*html.Node]*Style

// Lookup returns the node's computed style, or the defaults for a node the
// cascade never saw.
func (s Styles) Lookup(node *html.Node) *Style {
	if style, ok := s[node]; ok {
		return style
	}
	return DefaultStyle()
}

// SortRules returns the rules in cascade order: ascending selector
// priority, source order kept among equals.
func SortRules(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Selector.Priority() < sorted[j].Selector.Priority()
	})
	return sorted
}

type cascadeState struct {
	values     map[string]string
	priorities map[string]int
}

// set stores value unless a strictly higher priority already holds the
// property, so equal priorities go to the later declaration.
func (c *cascadeState) set(property, value string, priority int) {
	if current, ok := c.priorities[property]; ok && priority < current {
		return
	}
	c.values[property] = value
	c.priorities[property] = priority
}

func (c *cascadeState) apply(decls Declarations, priority int) {
	for property, decl := range decls {
		p := priority
		if decl.Important {
			p += importantBoost
		}
		c.set(property, decl.Value, p)
	}
}

// ComputeStyle resolves the style of a single node. parent is the parent
// node's computed style, or nil for the root.
func ComputeStyle(node *html.Node, rules []Rule, parent *Style) *Style {
	state := &cascadeState{
		values:     make(map[string]string),
		priorities: make(map[string]int),
	}
	for _, p := range InheritedProperties {
		value := p.Default
		if parent != nil {
			value = parent.Lookup(p.Name, p.Default)
		}
		state.set(p.Name, value, 0)
	}

	for _, rule := range FindMatchingRules(node, rules) {
		state.apply(rule.Declarations, rule.Selector.Priority())
	}

	if node.Type == html.ElementNode {
		if styleAttr, ok := node.GetAttribute("style"); ok {
			state.apply(ParseDeclarations(styleAttr), inlinePriority)
		}
	}

	state.values["font-size"] = resolveFontSize(state.values["font-size"], parent)
	return newStyle(state.values)
}

// resolveFontSize turns a percentage into pixels of the parent's size.
// Values in any other unit are rejected in favour of the inherited size.
func resolveFontSize(value string, parent *Style) string {
	parentPx, _ := ParsePixels(defaultFontSize)
	if parent != nil {
		parentPx = parent.FontSizePx()
	}
	if _, ok := ParsePixels(value); ok {
		return value
	}
	if pct, ok := ParsePercentage(value); ok {
		return formatPixels(pct * parentPx / 100)
	}
	return formatPixels(parentPx)
}

// ApplyStyles computes styles for the whole tree, parents before children.
func ApplyStyles(root *html.Node, rules []Rule) Styles {
	styles := make(Styles)
	applyStylesToNode(root, SortRules(rules), nil, styles)
	return styles
}

func applyStylesToNode(node *html.Node, rules []Rule, parent *Style, styles Styles) {
	style := ComputeStyle(node, rules, parent)
	styles[node] = style
	for _, child := range node.Children {
		applyStylesToNode(child, rules, style, styles)
	}
}
