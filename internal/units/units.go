// Package units provides raster unit conversions shared by the label
// composer and the PNG writer.
package units

import "math"

// MillimetresPerInch is the metric definition of the inch.
const MillimetresPerInch = 25.4

// PixelsPerMetre converts a dots-per-inch resolution to the pixels-per-metre
// figure carried by a PNG pHYs chunk, rounded to the nearest integer.
func PixelsPerMetre(dpi int) uint32 {
	return uint32(math.Round(float64(dpi) / (MillimetresPerInch / 1000.0)))
}

// MillimetresToPixels converts a physical length to pixels at the given
// resolution, rounded to the nearest integer.
func MillimetresToPixels(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / MillimetresPerInch))
}

// PixelsToMillimetres converts a pixel length to its physical size at the
// given resolution.
func PixelsToMillimetres(px int, dpi int) float64 {
	return float64(px) * MillimetresPerInch / float64(dpi)
}
