package visualtest

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"toyengine/pkg/page"
	"toyengine/pkg/render"
	"toyengine/pkg/text"
)

// RenderHTML lays out markup at the given viewport width and rasterizes
// the first height pixels of it, scrolled down by scroll.
func RenderHTML(markup string, width, height int, scroll float64, fonts text.Provider) image.Image {
	p := page.NewLoader(fonts).Load(markup, float64(width))
	p.ScrollBy(scroll, float64(height))
	r := render.NewRenderer(width, height, fonts, zap.NewNop())
	r.Render(p.DisplayList, p.Scroll())
	return r.Image()
}

// RenderHTMLToFile renders markup to a PNG file, creating its directory.
func RenderHTMLToFile(markup, outputPath string, width, height int, fonts text.Provider) error {
	img := RenderHTML(markup, width, height, 0, fonts)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := savePNG(img, outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}
