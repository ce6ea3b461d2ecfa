package text

import "unicode/utf8"

// FixedProvider returns fonts in which every glyph is one em wide, with
// the ascent at 0.8em and the descent at 0.2em. Layout results under it
// depend only on character counts, which makes it the provider of choice
// for tests.
type FixedProvider struct {
	*Cache
}

func NewFixedProvider() *FixedProvider {
	return &FixedProvider{Cache: NewCache(func(key FontKey) Font {
		return fixedFont{size: float64(key.Size)}
	})}
}

type fixedFont struct {
	size float64
}

func (f fixedFont) Measure(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.size
}

func (f fixedFont) Metrics() Metrics {
	return Metrics{Ascent: 0.8 * f.size, Descent: 0.2 * f.size, Linespace: f.size}
}
