package resource

import (
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"toyengine/pkg/html"
)

// Stylesheet is the text of one author stylesheet. Href is empty for an
// inline <style> element.
type Stylesheet struct {
	Href string
	Text string
}

// LinkedStylesheets returns the href of every <link rel="stylesheet">
// in document order.
func LinkedStylesheets(root *html.Node) []string {
	hrefs := make([]string, 0)
	for _, node := range html.TreeToList(root) {
		if href, ok := stylesheetLink(node); ok {
			hrefs = append(hrefs, href)
		}
	}
	return hrefs
}

func stylesheetLink(node *html.Node) (string, bool) {
	if !node.IsElement("link") {
		return "", false
	}
	rel, _ := node.GetAttribute("rel")
	href, ok := node.GetAttribute("href")
	if !ok || href == "" {
		return "", false
	}
	for _, r := range strings.Fields(rel) {
		if html.Fold(r) == "stylesheet" {
			return href, true
		}
	}
	return "", false
}

// CollectStylesheets gathers linked and inline stylesheets in document
// order. A linked stylesheet that cannot be fetched is logged and skipped.
func CollectStylesheets(root *html.Node, fetcher Fetcher, logger *zap.Logger) []Stylesheet {
	if logger == nil {
		logger = zap.NewNop()
	}
	sheets := make([]Stylesheet, 0)
	for _, node := range html.TreeToList(root) {
		if node.IsElement("style") {
			sheets = append(sheets, Stylesheet{Text: textContent(node)})
			continue
		}
		href, ok := stylesheetLink(node)
		if !ok {
			continue
		}
		if fetcher == nil {
			logger.Warn("no fetcher for linked stylesheet", zap.String("href", href))
			continue
		}
		body, err := FetchCSS(fetcher, href)
		if err != nil {
			logger.Warn("skipping stylesheet", zap.String("href", href), zap.Error(err))
			continue
		}
		logger.Debug("stylesheet loaded",
			zap.String("href", href),
			zap.String("size", humanize.Bytes(uint64(len(body)))))
		sheets = append(sheets, Stylesheet{Href: href, Text: body})
	}
	return sheets
}

func textContent(node *html.Node) string {
	var sb strings.Builder
	for _, child := range node.Children {
		if child.Type == html.TextNode {
			sb.WriteString(child.Text)
		}
	}
	return sb.String()
}
