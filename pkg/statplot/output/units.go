package output

import "gonum.org/v1/plot/vg"

// PixelsPerInch is the resolution image sizes are given in.
// 1 inch = 72 points, and at 96 DPI, 1 inch = 96 pixels.
const PixelsPerInch = 96

// Default image size in pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

// PixelsToLength converts a pixel size at 96 DPI to a vector graphics length.
func PixelsToLength(px int) vg.Length {
	return vg.Length(px) * vg.Inch / PixelsPerInch
}
