package css

import (
	"sort"
	"strconv"
	"strings"
)

// Style is the computed style of one node. It is built by the cascade and
// never changes afterwards.
type Style struct {
	properties map[string]string
}

func newStyle(properties map[string]string) *Style {
	return &Style{properties: properties}
}

// DefaultStyle is the style of a node with no parent and no matching rules.
func DefaultStyle() *Style {
	properties := make(map[string]string, len(InheritedProperties))
	for _, p := range InheritedProperties {
		properties[p.Name] = p.Default
	}
	return newStyle(properties)
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.properties[property]
	return val, ok
}

// Lookup returns the property value, or fallback when it was never set.
func (s *Style) Lookup(property, fallback string) string {
	if val, ok := s.properties[property]; ok {
		return val
	}
	return fallback
}

// Properties returns a copy of the resolved property map.
func (s *Style) Properties() map[string]string {
	out := make(map[string]string, len(s.properties))
	for k, v := range s.properties {
		out[k] = v
	}
	return out
}

// Equal reports whether both styles resolve every property identically.
func (s *Style) Equal(other *Style) bool {
	if len(s.properties) != len(other.properties) {
		return false
	}
	for k, v := range s.properties {
		if ov, ok := other.properties[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (s *Style) String() string {
	keys := make([]string, 0, len(s.properties))
	for k := range s.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + s.properties[k]
	}
	return strings.Join(parts, "; ")
}

// FontSizePx returns the resolved font-size in pixels.
func (s *Style) FontSizePx() float64 {
	if px, ok := ParsePixels(s.Lookup("font-size", defaultFontSize)); ok {
		return px
	}
	px, _ := ParsePixels(defaultFontSize)
	return px
}

// GetPixels returns a "px" length property. Missing, "auto" and
// unparseable values all report false.
func (s *Style) GetPixels(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParsePixels(val)
}

// ParsePixels parses a length such as "100px". Only the px unit is
// understood.
func ParsePixels(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	if !strings.HasSuffix(val, "px") {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.TrimSuffix(val, "px"), 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// ParsePercentage parses a value such as "150%" into 150.
func ParsePercentage(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	if !strings.HasSuffix(val, "%") {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func formatPixels(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}
