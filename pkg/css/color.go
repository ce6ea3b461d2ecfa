package css

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor understands CSS named colours, "transparent" and #rgb, #rgba,
// #rrggbb and #rrggbbaa hex forms.
func ParseColor(value string) (color.RGBA, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "transparent" {
		return color.RGBA{}, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value[1:])
	}
	c, ok := colornames.Map[value]
	return c, ok
}

func parseHexColor(hex string) (color.RGBA, bool) {
	switch len(hex) {
	case 3, 4:
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return color.RGBA{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	nrgba := color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}
	return color.RGBAModel.Convert(nrgba).(color.RGBA), true
}
