package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/colornames"
)

// shortColors are the single-letter colour codes familiar from plotting
// format strings.
var shortColors = map[string]drawing.Color{
	"b": {R: 0, G: 0, B: 255, A: 255},
	"g": {R: 0, G: 128, B: 0, A: 255},
	"r": {R: 255, G: 0, B: 0, A: 255},
	"c": {R: 0, G: 191, B: 191, A: 255},
	"m": {R: 191, G: 0, B: 191, A: 255},
	"y": {R: 191, G: 191, B: 0, A: 255},
	"k": {R: 0, G: 0, B: 0, A: 255},
	"w": {R: 255, G: 255, B: 255, A: 255},
}

// ParseColor resolves a single-letter code, an SVG colour name or a
// #rrggbb hex string.
func ParseColor(s string) (drawing.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := shortColors[name]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if hex, ok := strings.CutPrefix(name, "#"); ok && len(hex) == 6 {
		if _, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return drawing.ColorFromHex(hex), nil
		}
	}
	return drawing.Color{}, fmt.Errorf("unknown colour %q", s)
}
