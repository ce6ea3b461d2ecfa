package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"toyengine/pkg/html"
)

type mapFetcher map[string]string

func (m mapFetcher) Fetch(uri string) ([]byte, string, error) {
	body, ok := m[uri]
	if !ok {
		return nil, "", errors.New("not found")
	}
	return []byte(body), "text/css", nil
}

func TestLinkedStylesheets(t *testing.T) {
	root := html.Parse(`<link rel="stylesheet" href="a.css"><link rel="icon" href="x.ico">` +
		`<link rel="Alternate StyleSheet" href="b.css"><link rel="stylesheet"><p>hi</p>`)
	assert.Equal(t, []string{"a.css", "b.css"}, LinkedStylesheets(root))
}

func TestCollectStylesheets_DocumentOrder(t *testing.T) {
	root := html.Parse(`<link rel="stylesheet" href="a.css"><style>p { color: red; }</style>` +
		`<link rel="stylesheet" href="b.css">`)
	fetcher := mapFetcher{"a.css": "a { color: blue; }", "b.css": "b { color: green; }"}

	sheets := CollectStylesheets(root, fetcher, nil)
	require.Len(t, sheets, 3)
	assert.Equal(t, Stylesheet{Href: "a.css", Text: "a { color: blue; }"}, sheets[0])
	assert.Equal(t, Stylesheet{Text: "p { color: red; }"}, sheets[1])
	assert.Equal(t, Stylesheet{Href: "b.css", Text: "b { color: green; }"}, sheets[2])
}

func TestCollectStylesheets_MissingSheetSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	root := html.Parse(`<link rel="stylesheet" href="missing.css"><link rel="stylesheet" href="b.css">`)

	sheets := CollectStylesheets(root, mapFetcher{"b.css": "b {}"}, zap.New(core))
	require.Len(t, sheets, 1)
	assert.Equal(t, "b.css", sheets[0].Href)

	entries := logs.FilterMessage("skipping stylesheet").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "missing.css", entries[0].ContextMap()["href"])
}

func TestCollectStylesheets_NoFetcher(t *testing.T) {
	root := html.Parse(`<link rel="stylesheet" href="a.css"><style>i {}</style>`)
	sheets := CollectStylesheets(root, nil, nil)
	require.Len(t, sheets, 1)
	assert.Equal(t, "i {}", sheets[0].Text)
}
