// Package page ties the engine together: it parses a document, gathers its
// stylesheets, runs the cascade, and keeps the layout and display list of
// the result current as the page is resized, focused and scrolled.
package page

import (
	"time"

	"go.uber.org/zap"

	"toyengine/pkg/css"
	"toyengine/pkg/html"
	"toyengine/pkg/layout"
	"toyengine/pkg/resource"
	"toyengine/pkg/text"
)

// Loader turns markup into pages. One loader, and therefore one font
// provider, can serve many pages in sequence.
type Loader struct {
	fonts     text.Provider
	fetcher   resource.Fetcher
	logger    *zap.Logger
	opts      layout.Options
	userAgent []css.Rule
}

type Option func(*Loader)

// WithFetcher sets the fetcher used for linked stylesheets. Without one,
// linked stylesheets are skipped.
func WithFetcher(f resource.Fetcher) Option {
	return func(l *Loader) { l.fetcher = f }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

func WithLayoutOptions(opts layout.Options) Option {
	return func(l *Loader) { l.opts = opts }
}

// WithUserAgentStylesheet replaces the default stylesheet.
func WithUserAgentStylesheet(stylesheet string) Option {
	return func(l *Loader) { l.userAgent = css.ParseStylesheet(stylesheet) }
}

func NewLoader(fonts text.Provider, options ...Option) *Loader {
	l := &Loader{
		fonts:     fonts,
		logger:    zap.NewNop(),
		opts:      layout.DefaultOptions(),
		userAgent: css.UserAgentRules(),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Page is a loaded document.
type Page struct {
	Root        *html.Node
	Stylesheets []resource.Stylesheet
	// Rules are the default rules followed by every author rule, in
	// cascade order.
	Rules       []css.Rule
	Styles      css.Styles
	Document    *layout.DocumentBox
	DisplayList []layout.PaintCommand

	loader *Loader
	width  float64
	focus  *html.Node
	scroll float64
}

// Load parses markup and lays it out for the given width. It never fails:
// broken markup and stylesheets degrade to whatever could be recovered.
func (l *Loader) Load(markup string, width float64) *Page {
	start := time.Now()
	p := &Page{Root: html.Parse(markup), loader: l, width: width}
	p.Stylesheets = resource.CollectStylesheets(p.Root, l.fetcher, l.logger)

	rules := make([]css.Rule, 0, len(l.userAgent))
	rules = append(rules, l.userAgent...)
	for _, sheet := range p.Stylesheets {
		rules = append(rules, css.ParseStylesheet(sheet.Text)...)
	}
	p.Rules = css.SortRules(rules)
	p.Styles = css.ApplyStyles(p.Root, p.Rules)
	p.layout()

	l.logger.Debug("page loaded",
		zap.Int("nodes", len(p.Styles)),
		zap.Int("stylesheets", len(p.Stylesheets)),
		zap.Int("rules", len(p.Rules)),
		zap.Int("commands", len(p.DisplayList)),
		zap.Float64("height", p.Document.Height),
		zap.Duration("elapsed", time.Since(start)))
	return p
}

func (p *Page) layout() {
	opts := p.loader.opts
	opts.Focus = p.focus
	engine := layout.NewLayoutEngine(p.loader.fonts, p.Styles, opts, p.loader.logger)
	p.Document = engine.Layout(p.Root, p.width)
	p.DisplayList = layout.PaintTree(p.Document)
}

func (p *Page) Width() float64 {
	return p.width
}

// Height is the height of the laid out document.
func (p *Page) Height() float64 {
	return p.Document.Height
}

// Resize lays the page out again for a new width.
func (p *Page) Resize(width float64) {
	if width == p.width {
		return
	}
	p.width = width
	p.layout()
}

// Focus gives input focus to node, which must be an <input> in this page,
// or clears it when node is nil. It reports whether focus changed.
func (p *Page) Focus(node *html.Node) bool {
	if node != nil && !node.IsElement("input") {
		return false
	}
	if node == p.focus {
		return false
	}
	p.focus = node
	p.layout()
	return true
}

// Focused returns the input holding focus, or nil.
func (p *Page) Focused() *html.Node {
	return p.focus
}

func (p *Page) HitTest(x, y float64) layout.Box {
	return layout.HitTest(p.Document, x, y)
}
