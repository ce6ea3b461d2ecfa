package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"toyengine/pkg/html"
	"toyengine/pkg/layout"
	"toyengine/pkg/resource"
	"toyengine/pkg/text"
)

func find(root *html.Node, tag string) *html.Node {
	for _, n := range html.TreeToList(root) {
		if n.IsElement(tag) {
			return n
		}
	}
	return nil
}

func runs(p *Page) []*layout.TextRun {
	var out []*layout.TextRun
	for _, b := range layout.TreeToList(p.Document) {
		if run, ok := b.(*layout.TextRun); ok {
			out = append(out, run)
		}
	}
	return out
}

func TestLoad_Scenario(t *testing.T) {
	p := NewLoader(text.NewFixedProvider()).Load("<p>Hello <b>World</b></p>", 800)

	require.Equal(t, "html", p.Root.TagName)
	require.Len(t, p.Root.Children, 2)
	assert.Equal(t, "head", p.Root.Children[0].TagName)
	assert.Equal(t, "body", p.Root.Children[1].TagName)

	words := runs(p)
	require.Len(t, words, 2)
	assert.Equal(t, "Hello", words[0].Word)
	assert.Equal(t, "World", words[1].Word)
	assert.Equal(t, text.WeightBold, words[1].Font.Weight)
	assert.Equal(t, words[0].Y, words[1].Y)

	assert.Len(t, p.DisplayList, 2)
	assert.Equal(t, p.Document.Height, p.Height())
	assert.Equal(t, 800.0, p.Width())
}

func TestLoad_AuthorStylesheets(t *testing.T) {
	markup := `<link rel="stylesheet" href="data:text/css,p%20%7B%20color%3A%20green%20%7D">` +
		`<link rel="stylesheet" href="missing.css">` +
		`<style>.x { color: blue }</style><p>a <span class="x">b</span></p>`
	core, logs := observer.New(zapcore.WarnLevel)
	loader := NewLoader(text.NewFixedProvider(),
		WithFetcher(resource.NewFetcher(t.TempDir()+"/index.html")),
		WithLogger(zap.New(core)))

	p := loader.Load(markup, 800)
	require.Len(t, p.Stylesheets, 2)
	assert.Equal(t, 1, logs.FilterMessage("skipping stylesheet").Len())

	words := runs(p)
	require.Len(t, words, 2)
	assert.Equal(t, "green", words[0].Color)
	assert.Equal(t, "blue", words[1].Color)
}

func TestLoad_NoFetcherStillRenders(t *testing.T) {
	p := NewLoader(text.NewFixedProvider()).Load(`<link rel="stylesheet" href="a.css"><p>x</p>`, 800)
	assert.Empty(t, p.Stylesheets)
	assert.Len(t, runs(p), 1)
}

func TestLoad_CustomUserAgentStylesheet(t *testing.T) {
	p := NewLoader(text.NewFixedProvider(), WithUserAgentStylesheet("b { font-style: italic; }")).
		Load("<b>x</b>", 800)
	words := runs(p)
	require.Len(t, words, 1)
	assert.Equal(t, text.WeightNormal, words[0].Font.Weight)
	assert.Equal(t, text.SlantItalic, words[0].Font.Slant)
}

func TestLoad_LayoutOptions(t *testing.T) {
	opts := layout.DefaultOptions()
	opts.HStep, opts.VStep = 0, 0
	p := NewLoader(text.NewFixedProvider(), WithLayoutOptions(opts)).Load("<p>x</p>", 100)
	assert.Equal(t, 0.0, p.Document.X)
	assert.Equal(t, 100.0, p.Document.Width)
}

func TestPage_Resize(t *testing.T) {
	p := NewLoader(text.NewFixedProvider()).Load("<p>aaaa bbbb cccc</p>", 800)
	before := p.Height()

	p.Resize(26 + 60)
	assert.Equal(t, 86.0, p.Width())
	assert.Greater(t, p.Height(), before)

	lines := 0
	for _, b := range layout.TreeToList(p.Document) {
		if _, ok := b.(*layout.LineBox); ok {
			lines++
		}
	}
	assert.Equal(t, 3, lines)
}

func TestPage_FocusAndCaret(t *testing.T) {
	p := NewLoader(text.NewFixedProvider()).Load(`<p>x</p><input value="ab">`, 800)
	input := find(p.Root, "input")
	require.NotNil(t, input)

	assert.False(t, p.Focus(find(p.Root, "p")), "only inputs take focus")
	assert.True(t, p.Focus(input))
	assert.False(t, p.Focus(input), "focusing twice is a no-op")
	assert.Equal(t, input, p.Focused())

	carets := 0
	for _, cmd := range p.DisplayList {
		if _, ok := cmd.(*layout.DrawLine); ok {
			carets++
		}
	}
	assert.Equal(t, 1, carets)

	assert.True(t, p.Focus(nil))
	for _, cmd := range p.DisplayList {
		_, ok := cmd.(*layout.DrawLine)
		assert.False(t, ok, "caret should go away with focus")
	}
}

func TestPage_Click(t *testing.T) {
	p := NewLoader(text.NewFixedProvider()).Load(`<p>go <a href="/next">there</a></p><input>`, 800)

	var there *layout.TextRun
	var input *layout.InputAtom
	for _, b := range layout.TreeToList(p.Document) {
		switch b := b.(type) {
		case *layout.TextRun:
			if b.Word == "there" {
				there = b
			}
		case *layout.InputAtom:
			input = b
		}
	}
	require.NotNil(t, there)
	require.NotNil(t, input)

	result := p.Click(input.X+1, input.Y+1)
	assert.Equal(t, input.Node, result.Focused)
	assert.Equal(t, input.Node, p.Focused())

	result = p.Click(there.X+1, there.Y+1)
	assert.Equal(t, "/next", result.Href)
	assert.True(t, result.Link.IsElement("a"))
	assert.Nil(t, p.Focused(), "clicking elsewhere clears focus")

	result = p.Click(-10, -10)
	assert.Nil(t, result.Box)
	assert.Nil(t, result.Link)
}

func TestPage_Scroll(t *testing.T) {
	markup := ""
	for i := 0; i < 40; i++ {
		markup += "<p>line</p>"
	}
	p := NewLoader(text.NewFixedProvider()).Load(markup, 800)
	maxScroll := p.MaxScroll(600)
	require.Greater(t, maxScroll, 0.0)

	assert.Equal(t, 100.0, p.ScrollBy(100, 600))
	assert.Equal(t, 0.0, p.ScrollBy(-500, 600))
	assert.Equal(t, maxScroll, p.ScrollBy(1e6, 600))
	assert.Equal(t, maxScroll, p.Scroll())

	short := NewLoader(text.NewFixedProvider()).Load("<p>x</p>", 800)
	assert.Equal(t, 0.0, short.MaxScroll(600))
	assert.Equal(t, 0.0, short.ScrollBy(100, 600))
}
