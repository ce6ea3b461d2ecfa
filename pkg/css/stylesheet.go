package css

import (
	"strings"

	"toyengine/pkg/html"
)

// Declaration is one property value from a rule body or a style attribute.
type Declaration struct {
	Value     string
	Important bool
}

// Declarations maps folded property names to their declared values.
type Declarations map[string]Declaration

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations Declarations
}

const importantKeyword = "!important"

// Parser is a recursive-descent stylesheet parser. Errors never escape it:
// a broken rule is skipped up to the next '}', and a broken declaration up
// to the next ';' or '}'.
type Parser struct {
	scanner
}

func NewParser(input string) *Parser {
	return &Parser{scanner{input: input}}
}

// ParseStylesheet parses stylesheet text into rules, in source order.
func ParseStylesheet(input string) []Rule {
	return NewParser(input).Parse()
}

// ParseDeclarations parses the body of a style attribute.
func ParseDeclarations(input string) Declarations {
	p := NewParser(input)
	p.whitespace()
	return p.Body()
}

func (p *Parser) Parse() []Rule {
	rules := make([]Rule, 0)
	for !p.eof() {
		rule, err := p.rule()
		if err != nil {
			if p.ignoreUntil("}") == '}' {
				p.pos++
				p.whitespace()
				continue
			}
			break
		}
		rules = append(rules, rule)
	}
	return rules
}

func (p *Parser) rule() (Rule, error) {
	p.whitespace()
	selector, err := p.selector()
	if err != nil {
		return Rule{}, err
	}
	p.whitespace()
	if err := p.literal('{'); err != nil {
		return Rule{}, err
	}
	p.whitespace()
	body := p.Body()
	p.whitespace()
	if err := p.literal('}'); err != nil {
		return Rule{}, err
	}
	return Rule{Selector: selector, Declarations: body}, nil
}

// Body parses declarations up to (not including) the closing '}' or the
// end of input.
func (p *Parser) Body() Declarations {
	decls := make(Declarations)
	for !p.eof() && p.peek() != '}' {
		property, decl, err := p.declaration()
		if err == nil {
			decls[property] = decl
			p.whitespace()
			err = p.literal(';')
		}
		if err == nil {
			p.whitespace()
			continue
		}
		if p.ignoreUntil(";}") != ';' {
			break
		}
		p.pos++
		p.whitespace()
	}
	return decls
}

func (p *Parser) declaration() (string, Declaration, error) {
	property, err := p.word()
	if err != nil {
		return "", Declaration{}, err
	}
	p.whitespace()
	if err := p.literal(':'); err != nil {
		return "", Declaration{}, err
	}
	p.whitespace()
	value, err := p.word()
	if err != nil {
		return "", Declaration{}, err
	}

	decl := Declaration{Value: value}
	if n := len(value) - len(importantKeyword); n > 0 && html.Fold(value[n:]) == importantKeyword {
		decl.Value, decl.Important = value[:n], true
		return html.Fold(property), decl, nil
	}

	mark := p.pos
	p.whitespace()
	if p.peek() == '!' {
		if keyword, err := p.word(); err == nil && html.Fold(keyword) == importantKeyword {
			decl.Important = true
			return html.Fold(property), decl, nil
		}
	}
	p.pos = mark
	return html.Fold(property), decl, nil
}

// selector reads one or more words; each extra word nests the selector
// read so far as the ancestor of a new descendant selector.
func (p *Parser) selector() (Selector, error) {
	word, err := p.word()
	if err != nil {
		return nil, err
	}
	out := simpleSelector(word)
	p.whitespace()
	for !p.eof() && p.peek() != '{' {
		word, err := p.word()
		if err != nil {
			return nil, err
		}
		out = &DescendantSelector{Ancestor: out, Descendant: simpleSelector(word)}
		p.whitespace()
	}
	return out, nil
}

func simpleSelector(word string) Selector {
	switch {
	case len(word) > 1 && strings.HasPrefix(word, "."):
		return &ClassSelector{Name: word[1:]}
	case len(word) > 1 && strings.HasPrefix(word, "#"):
		return &IDSelector{ID: word[1:]}
	default:
		return &TagSelector{Tag: html.Fold(word)}
	}
}
