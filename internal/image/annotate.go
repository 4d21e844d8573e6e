package image

import (
	"fmt"
	"image"
	"image/draw"

	"radar-scope/internal/scope"
	"radar-scope/pkg/colorutil"
)

// Annotation describes the markings burned onto a copy of a scope photograph
// for display and report export.
type Annotation struct {
	Frame     *scope.ReferenceFrame
	Detection *scope.Detection

	// RingFractions are fractions of the calibration distance at which range
	// rings are drawn. Empty disables rings.
	RingFractions []float64

	// MarkerSize is the half-length of crosshair and detection markers.
	MarkerSize int

	// LabelScale is the bitmap-font pixel multiplier.
	LabelScale int

	// Description lines are burned into the top-left corner (radar type,
	// station, date).
	Description []string
}

// Render composites the annotation onto a fresh copy of the source image.
// The source is never modified.
func Render(src image.Image, a Annotation) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	if a.Frame == nil {
		return dst
	}

	markerSize := a.MarkerSize
	if markerSize <= 0 {
		markerSize = 8
	}
	labelScale := a.LabelScale
	if labelScale <= 0 {
		labelScale = 2
	}

	cx := int(a.Frame.Center.X)
	cy := int(a.Frame.Center.Y)

	drawRangeRings(dst, a, cx, cy)

	// Scope center crosshair.
	drawCross(dst, cx, cy, markerSize*2, colorutil.Phosphor)

	// Calibration edge marker with a tick line back to center.
	if a.Frame.CalibrationEdge != nil {
		ex := int(a.Frame.CalibrationEdge.X)
		ey := int(a.Frame.CalibrationEdge.Y)
		drawLine(dst, cx, cy, ex, ey, colorutil.Cyan)
		drawDiagonalCross(dst, ex, ey, markerSize, colorutil.Cyan)
	}

	if a.Detection != nil {
		px := int(a.Detection.Pixel.X)
		py := int(a.Detection.Pixel.Y)

		drawLine(dst, cx, cy, px, py, colorutil.Yellow)
		drawDiagonalCross(dst, px, py, markerSize, colorutil.Red)

		label := fmt.Sprintf("A %.1f  R %.1f", a.Detection.AzimuthDegrees, a.Detection.RangeUnits)
		lx := px + markerSize + 2
		if lx+textWidth(label, labelScale) > dst.Bounds().Dx() {
			lx = px - markerSize - 2 - textWidth(label, labelScale)
		}
		drawText(dst, label, lx, py-markerSize, labelScale, colorutil.Red)
	}

	drawDescriptionBox(dst, a.Description, labelScale)

	return dst
}

// drawRangeRings draws concentric rings at fractions of the calibration
// distance. Nothing is drawn when the calibration distance is degenerate.
func drawRangeRings(dst *image.RGBA, a Annotation, cx, cy int) {
	if len(a.RingFractions) == 0 || a.Frame == nil {
		return
	}

	calib := a.Frame.CalibrationDistance
	if a.Frame.CalibrationEdge == nil {
		calib = float64(a.Frame.Height) - a.Frame.Center.Y
	}
	if calib <= 0 {
		return
	}

	for _, fraction := range a.RingFractions {
		drawCircle(dst, cx, cy, int(calib*fraction), colorutil.Phosphor)
	}
}

// drawDescriptionBox burns description lines into the top-left corner over a
// dark backing rectangle so they stay readable on a bright return.
func drawDescriptionBox(dst *image.RGBA, lines []string, scale int) {
	if len(lines) == 0 {
		return
	}

	const pad = 4
	lineHeight := 6 * scale

	maxWidth := 0
	for _, line := range lines {
		if w := textWidth(line, scale); w > maxWidth {
			maxWidth = w
		}
	}

	boxW := maxWidth + 2*pad
	boxH := len(lines)*lineHeight + 2*pad
	for y := 0; y < boxH; y++ {
		for x := 0; x < boxW; x++ {
			setPixel(dst, x, y, colorutil.Black)
		}
	}

	for i, line := range lines {
		drawText(dst, line, pad, pad+i*lineHeight, scale, colorutil.White)
	}
}
