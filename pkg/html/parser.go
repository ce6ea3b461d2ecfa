package html

import (
	gohtml "html"
	"strings"
	"unicode"
)

// Parser builds a DOM tree from tokens. Open elements live on the
// unfinished stack and are attached to their parent when they close.
type Parser struct {
	tokenizer  *Tokenizer
	unfinished []*Node
}

func NewParser(markup string) *Parser {
	return &Parser{tokenizer: NewTokenizer(markup)}
}

// Parse always returns an <html> root holding exactly one <head> followed
// by one <body>, whatever the input looks like.
func Parse(markup string) *Node {
	return NewParser(markup).Parse()
}

func (p *Parser) Parse() *Node {
	for {
		token := p.tokenizer.NextToken()
		switch token.Type {
		case TokenEOF:
			return p.finish()
		case TokenText:
			p.addText(token.Text)
		case TokenTag:
			p.addTag(token.Text)
		}
	}
}

func (p *Parser) currentParent() *Node {
	if len(p.unfinished) == 0 {
		return nil
	}
	return p.unfinished[len(p.unfinished)-1]
}

func (p *Parser) push(node *Node) {
	p.unfinished = append(p.unfinished, node)
}

func (p *Parser) pop() *Node {
	node := p.unfinished[len(p.unfinished)-1]
	p.unfinished = p.unfinished[:len(p.unfinished)-1]
	return node
}

func (p *Parser) addText(text string) {
	text = gohtml.UnescapeString(text)
	if strings.TrimSpace(text) == "" {
		return
	}
	p.implicitTags("")
	p.currentParent().AppendText(text)
}

func (p *Parser) addTag(body string) {
	tag, attributes := parseTagBody(body)
	if tag == "" || strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "?") {
		return
	}
	p.implicitTags(tag)

	switch {
	case strings.HasPrefix(tag, "/"):
		// A stray closing tag cannot close the root.
		if len(p.unfinished) == 1 {
			return
		}
		node := p.pop()
		p.currentParent().AddChild(node)
	case IsSelfClosing(tag):
		parent := p.currentParent()
		parent.AddChild(NewElement(tag, attributes, parent))
	default:
		p.push(NewElement(tag, attributes, p.currentParent()))
	}
}

// implicitTags opens or closes html, head and body until the pending tag
// (empty for text and end of input) has a legal place to go.
func (p *Parser) implicitTags(tag string) {
	for {
		open := make([]string, len(p.unfinished))
		for i, node := range p.unfinished {
			open[i] = node.TagName
		}

		switch {
		case len(open) == 0 && tag != "html":
			p.addTag("html")
		case len(open) == 1 && open[0] == "html" &&
			tag != "head" && tag != "body" && tag != "/html":
			if headTags.Has(tag) {
				p.addTag("head")
			} else {
				p.addTag("body")
			}
		case len(open) == 2 && open[0] == "html" && open[1] == "head" &&
			tag != "/head" && !headTags.Has(tag):
			p.addTag("/head")
		default:
			return
		}
	}
}

func (p *Parser) finish() *Node {
	if len(p.unfinished) == 0 {
		p.implicitTags("")
	}
	for len(p.unfinished) > 1 {
		node := p.pop()
		p.currentParent().AddChild(node)
	}
	root := p.pop()
	normalizeRoot(root)
	return root
}

// normalizeRoot leaves root with exactly one head followed by one body.
// Repeated heads or bodies are merged into the first one in document order,
// and anything else found directly under the root moves into the body.
func normalizeRoot(root *Node) {
	var head, body *Node
	var stray []*Node
	for _, child := range root.Children {
		switch {
		case child.IsElement("head"):
			if head == nil {
				head = child
			} else {
				adopt(head, child.Children)
			}
		case child.IsElement("body"):
			if body == nil {
				body = child
			} else {
				adopt(body, child.Children)
			}
		default:
			stray = append(stray, child)
		}
	}
	if head == nil {
		head = NewElement("head", nil, root)
	}
	if body == nil {
		body = NewElement("body", nil, root)
	}
	adopt(body, stray)
	root.Children = []*Node{head, body}
}

func adopt(parent *Node, children []*Node) {
	for _, child := range children {
		parent.AddChild(child)
	}
}

// parseTagBody splits a tag body into a folded tag name and attributes.
// Attribute values may be bare or quoted; quoted values keep whitespace.
func parseTagBody(body string) (string, map[string]string) {
	parts := trimSelfClosing(splitTagBody(body))
	if len(parts) == 0 {
		return "", nil
	}
	tag := Fold(parts[0])
	attributes := make(map[string]string)
	for _, pair := range parts[1:] {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			attributes[Fold(pair)] = ""
			continue
		}
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		attributes[Fold(key)] = value
	}
	return tag, attributes
}

// trimSelfClosing drops the "/" of a self-closing tag. It is only a marker
// when it stands alone or ends a name or a quoted value; an unquoted value
// keeps it.
func trimSelfClosing(parts []string) []string {
	if len(parts) == 0 {
		return parts
	}
	last := parts[len(parts)-1]
	if last == "/" && len(parts) > 1 {
		return parts[:len(parts)-1]
	}
	if len(last) < 2 || !strings.HasSuffix(last, "/") {
		return parts
	}
	trimmed := last[:len(last)-1]
	_, value, found := strings.Cut(trimmed, "=")
	if found && !(len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0]) {
		return parts
	}
	parts[len(parts)-1] = trimmed
	return parts
}

func splitTagBody(body string) []string {
	var parts []string
	var current strings.Builder
	var quote byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case (c == '"' || c == '\'') && i > 0 && body[i-1] == '=':
			quote = c
			current.WriteByte(c)
		case unicode.IsSpace(rune(c)):
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
