// Package palette provides the colour and line dash sequences used for traces.
package palette

import (
	"fmt"
	"image/color"
)

// Color is an opaque RGB colour.
type Color struct {
	R, G, B uint8
}

// String returns the colour as "rgb(r, g, b)".
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// RGBA converts the colour for image renderers.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ParseColor parses "rgb(r, g, b)" or "#rrggbb".
func ParseColor(s string) (Color, error) {
	var c Color
	if _, err := fmt.Sscanf(s, "rgb(%d, %d, %d)", &c.R, &c.G, &c.B); err == nil {
		return c, nil
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err == nil {
		return c, nil
	}
	return Color{}, fmt.Errorf("unsupported colour: %q", s)
}

// ColorPalette holds colours distinguishable with protanopia, deuteranopia
// and tritanopia. See https://davidmathlogic.com/colorblind.
var ColorPalette = []Color{
	{255, 194, 10},
	{12, 123, 220},
	{243, 203, 166},
	{51, 61, 112},
	{80, 253, 240},
	{183, 90, 96},
	{34, 148, 37},
	{118, 118, 239},
	{124, 101, 145},
	{201, 148, 184},
	{131, 231, 81},
	{105, 144, 57},
	{105, 170, 78},
	{234, 88, 74},
	{244, 186, 35},
	{160, 22, 102},
	{175, 31, 83},
	{59, 66, 156},
	{157, 159, 9},
	{199, 161, 75},
	{175, 186, 123},
}

// Dash is a plotly line dash name.
type Dash string

// Line dashes in cycling order.
const (
	DashSolid       Dash = "solid"
	DashDot         Dash = "dot"
	DashDash        Dash = "dash"
	DashLongDash    Dash = "longdash"
	DashDashDot     Dash = "dashdot"
	DashLongDashDot Dash = "longdashdot"
)

// LineDashes lists every dash style.
var LineDashes = []Dash{
	DashSolid,
	DashDot,
	DashDash,
	DashLongDash,
	DashDashDot,
	DashLongDashDot,
}

// Colors returns a fresh cycler over ColorPalette.
func Colors() *Cycler[Color] {
	return NewCycler(ColorPalette)
}

// Dashes returns a fresh cycler over LineDashes.
func Dashes() *Cycler[Dash] {
	return NewCycler(LineDashes)
}
