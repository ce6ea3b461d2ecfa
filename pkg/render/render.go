package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"toyengine/pkg/css"
	"toyengine/pkg/layout"
	"toyengine/pkg/text"
)

// facer is implemented by fonts that can draw as well as measure.
type facer interface {
	Face() font.Face
}

// Renderer executes display lists on a raster canvas.
type Renderer struct {
	context *gg.Context
	fonts   text.Provider
	logger  *zap.Logger
}

func NewRenderer(width, height int, fonts text.Provider, logger *zap.Logger) *Renderer {
	return newRenderer(gg.NewContext(width, height), fonts, logger)
}

// NewRendererForImage draws directly into target.
func NewRendererForImage(target *image.RGBA, fonts text.Provider, logger *zap.Logger) *Renderer {
	return newRenderer(gg.NewContextForRGBA(target), fonts, logger)
}

func newRenderer(dc *gg.Context, fonts text.Provider, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{context: dc, fonts: fonts, logger: logger}
}

// Render clears the canvas and draws every command that is at least
// partly visible when the document is scrolled down by scroll. It returns
// the number of commands drawn.
func (r *Renderer) Render(cmds []layout.PaintCommand, scroll float64) int {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	height := float64(r.context.Height())
	drawn := 0
	for _, cmd := range cmds {
		bounds := cmd.Bounds()
		if bounds.Y > scroll+height || bounds.Y+bounds.Height < scroll {
			continue
		}
		r.execute(cmd, scroll)
		drawn++
	}
	r.logger.Debug("rendered",
		zap.Int("commands", len(cmds)),
		zap.Int("drawn", drawn),
		zap.Float64("scroll", scroll))
	return drawn
}

func (r *Renderer) execute(cmd layout.PaintCommand, scroll float64) {
	dc := r.context
	switch c := cmd.(type) {
	case *layout.DrawRect:
		dc.SetColor(r.color(c.Color))
		dc.DrawRectangle(c.X, c.Y-scroll, c.Width, c.Height)
		dc.Fill()
	case *layout.DrawOutline:
		dc.SetColor(r.color(c.Color))
		dc.SetLineWidth(c.Thickness)
		dc.DrawRectangle(c.X, c.Y-scroll, c.Width, c.Height)
		dc.Stroke()
	case *layout.DrawLine:
		dc.SetColor(r.color(c.Color))
		dc.SetLineWidth(c.Thickness)
		dc.DrawLine(c.X, c.Y-scroll, c.X+c.Width, c.Y+c.Height-scroll)
		dc.Stroke()
	case *layout.DrawText:
		dc.SetColor(r.color(c.Color))
		dc.SetFontFace(r.face(c.Font))
		// Anchor at the top-left corner of the text.
		dc.DrawStringAnchored(c.Text, c.X, c.Y-scroll, 0, 1)
	}
}

func (r *Renderer) face(key text.FontKey) font.Face {
	if r.fonts != nil {
		if f, ok := r.fonts.Font(key).(facer); ok {
			return f.Face()
		}
	}
	return basicfont.Face7x13
}

func (r *Renderer) color(name string) color.Color {
	if c, ok := css.ParseColor(name); ok {
		return c
	}
	r.logger.Debug("unknown color", zap.String("color", name))
	return color.Black
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	if err := r.context.SavePNG(filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}
