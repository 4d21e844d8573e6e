// Package colorutil provides shared color utilities for the scope annotator.
package colorutil

import (
	"image/color"
)

// Common overlay colors used throughout the application.
var (
	Black    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red      = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	Yellow   = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Cyan     = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Phosphor = color.RGBA{R: 60, G: 255, B: 120, A: 255} // PPI trace green
)
