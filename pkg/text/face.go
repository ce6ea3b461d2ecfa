package text

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// faceDPI matches the 96 DPI screen the point sizes are meant for.
const faceDPI = 96

// FontConfig holds paths to font files used for text measurement and
// rendering. An empty path selects the bundled Go font for that style.
type FontConfig struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// FontPath returns the font path for the given style combination.
func (fc FontConfig) FontPath(bold, italic bool) string {
	switch {
	case bold && italic:
		return fc.BoldItalic
	case bold:
		return fc.Bold
	case italic:
		return fc.Italic
	default:
		return fc.Regular
	}
}

// FaceProvider measures text with real OpenType faces.
type FaceProvider struct {
	*Cache
	sources map[[2]bool]*opentype.Font
	logger  *zap.Logger
}

// NewFaceProvider parses the four configured fonts. Missing files are an
// error; a face that later fails to build falls back to basicfont.
func NewFaceProvider(cfg FontConfig, logger *zap.Logger) (*FaceProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	builtin := map[[2]bool][]byte{
		{false, false}: goregular.TTF,
		{true, false}:  gobold.TTF,
		{false, true}:  goitalic.TTF,
		{true, true}:   gobolditalic.TTF,
	}
	p := &FaceProvider{sources: make(map[[2]bool]*opentype.Font), logger: logger}
	for style, data := range builtin {
		if path := cfg.FontPath(style[0], style[1]); path != "" {
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read font %s: %w", path, err)
			}
			data = raw
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font (bold=%v italic=%v): %w", style[0], style[1], err)
		}
		p.sources[style] = f
	}
	p.Cache = NewCache(p.load)
	return p, nil
}

func (p *FaceProvider) load(key FontKey) Font {
	src := p.sources[[2]bool{key.Weight == WeightBold, key.Slant == SlantItalic}]
	size := key.Size
	if size < 1 {
		size = 1
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     faceDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		p.logger.Warn("falling back to basic font", zap.Stringer("font", key), zap.Error(err))
		return &FaceFont{face: basicfont.Face7x13}
	}
	p.logger.Debug("font face loaded", zap.Stringer("font", key))
	return &FaceFont{face: face}
}

// FaceFont is a Font backed by a font.Face. The face is not safe for
// concurrent use, so access is serialized.
type FaceFont struct {
	mu   sync.Mutex
	face font.Face
}

func (f *FaceFont) Measure(s string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fromFixed(font.MeasureString(f.face, s))
}

func (f *FaceFont) Metrics() Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.face.Metrics()
	return Metrics{
		Ascent:    fromFixed(m.Ascent),
		Descent:   fromFixed(m.Descent),
		Linespace: fromFixed(m.Height),
	}
}

// Face exposes the underlying face for drawing.
func (f *FaceFont) Face() font.Face {
	return f.face
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
