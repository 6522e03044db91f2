package output

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ukaji3/statplot-go/pkg/statplot/palette"
)

// parseColor understands the colour strings traces carry: "rgb(...)",
// "rgba(...)", "#rgb" and "#rrggbb".
func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "rgba(") {
		var r, g, b uint8
		var a float64
		if _, err := fmt.Sscanf(s, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err != nil {
			return nil, fmt.Errorf("unsupported colour: %q", s)
		}
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}, nil
	}
	if len(s) == 4 && s[0] == '#' {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("unsupported colour: %q", s)
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, nil
	}
	c, err := palette.ParseColor(s)
	if err != nil {
		return nil, err
	}
	return c.RGBA(), nil
}

// colorOr parses s, falling back to def when s is empty or unreadable.
func colorOr(s string, def color.Color) color.Color {
	if s == "" {
		return def
	}
	c, err := parseColor(s)
	if err != nil {
		return def
	}
	return c
}

// cssColor returns s in a form HTML renderers accept.
func cssColor(s string) string {
	if s == "" {
		return ""
	}
	if c, err := parseColor(s); err == nil {
		r, g, b, _ := c.RGBA()
		return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
	}
	return s
}
