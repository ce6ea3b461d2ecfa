package text

import (
	"fmt"
	"math"
	"sync"
)

// Weight and slant names understood by every provider.
const (
	WeightNormal = "normal"
	WeightBold   = "bold"
	SlantRoman   = "roman"
	SlantItalic  = "italic"
)

// FontKey identifies a font by size, weight and slant. Size is in points,
// the unit providers work in; use KeyFor to convert from CSS pixels.
type FontKey struct {
	Size   int
	Weight string
	Slant  string
}

func (k FontKey) String() string {
	return fmt.Sprintf("%dpt %s %s", k.Size, k.Weight, k.Slant)
}

// KeyFor builds a FontKey from computed CSS values. The pixel size is
// scaled by 0.75 and floored; font-style "normal" maps to the roman slant.
func KeyFor(sizePx float64, weight, style string) FontKey {
	if style == "normal" || style == "" {
		style = SlantRoman
	}
	if weight == "" {
		weight = WeightNormal
	}
	return FontKey{Size: int(math.Floor(sizePx * 0.75)), Weight: weight, Slant: style}
}

// Metrics are the vertical measurements of a font.
type Metrics struct {
	Ascent    float64
	Descent   float64
	Linespace float64
}

// Font measures text in one size, weight and slant.
type Font interface {
	// Measure returns the advance width of s.
	Measure(s string) float64
	Metrics() Metrics
}

// Provider resolves a FontKey to a Font. Implementations must be total:
// every key yields a usable font, and the same key yields the same font
// for the provider's lifetime.
type Provider interface {
	Font(key FontKey) Font
}

// Cache memoizes fonts by key. It is the only mutable state shared across
// layout passes and belongs to the provider that owns it.
type Cache struct {
	mu    sync.Mutex
	fonts map[FontKey]Font
	load  func(FontKey) Font
}

func NewCache(load func(FontKey) Font) *Cache {
	return &Cache{fonts: make(map[FontKey]Font), load: load}
}

// Font returns the cached font for key, loading it on first use.
func (c *Cache) Font(key FontKey) Font {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.fonts[key]; ok {
		return f
	}
	f := c.load(key)
	c.fonts[key] = f
	return f
}

// Len reports how many fonts have been loaded.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fonts)
}
