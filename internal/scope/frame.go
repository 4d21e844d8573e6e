// Package scope converts pixel coordinates on a radar-indicator photograph
// into azimuth/range values relative to a calibrated reference frame.
package scope

import (
	"errors"
	"math"

	"radar-scope/pkg/geometry"
)

// DefaultScaleValue is the range represented by the calibration distance when
// the operator has not picked one, in the report's range units.
const DefaultScaleValue = 300

// ErrDegenerateCalibration is returned by Locate when the calibration
// distance resolves to zero pixels. The operator must recalibrate; the result
// is never silently substituted with Inf or NaN.
var ErrDegenerateCalibration = errors.New("calibration distance is zero, recalibrate before measuring")

// ReferenceFrame is the calibration state for one raster image: the scope
// center, an optional operator-placed calibration edge, and the scale value
// the calibration distance represents.
type ReferenceFrame struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Center of the scope sweep. Defaults to the image center and may be
	// nudged outside the raster; clicks are clamped, center moves are not.
	Center geometry.Point2D `json:"center"`

	// CalibrationEdge, when set, marks the pixel whose distance from Center
	// represents ScaleValue range units. When nil the vertical distance from
	// Center to the bottom image edge is used instead.
	CalibrationEdge *geometry.Point2D `json:"calibration_edge,omitempty"`

	// CalibrationDistance is the pixel distance captured when the edge was
	// placed. It is carried verbatim across image loads rather than
	// recomputed, so a grid calibrated on one photograph keeps its meaning
	// on the next.
	CalibrationDistance float64 `json:"calibration_distance,omitempty"`

	ScaleValue float64 `json:"scale_value"`
}

// Detection is one recorded measurement on the current image.
type Detection struct {
	Pixel          geometry.Point2D `json:"pixel"`
	AzimuthDegrees float64          `json:"azimuth_degrees"`
	RangeUnits     float64          `json:"range_units"`
}

// NewFrame creates a frame for an image of the given size with the center at
// the geometric image center and no calibration edge.
func NewFrame(width, height int, scaleValue float64) *ReferenceFrame {
	return &ReferenceFrame{
		Width:      width,
		Height:     height,
		Center:     geometry.Point2D{X: float64(width / 2), Y: float64(height / 2)},
		ScaleValue: scaleValue,
	}
}

// MoveCenter translates the center by the given pixel deltas. Fractional
// deltas come from fine-step keyboard nudges. The center is deliberately not
// clamped to the image bounds; only click placement is clamped.
func (f *ReferenceFrame) MoveCenter(dx, dy float64) *ReferenceFrame {
	f.Center.X += dx
	f.Center.Y += dy
	return f
}

// SetCalibrationEdge places the calibration edge and captures its pixel
// distance from the current center. Callers clamp (x, y) into the image
// first. A zero distance is legal here but makes Locate fail until the
// operator recalibrates.
func (f *ReferenceFrame) SetCalibrationEdge(x, y float64) *ReferenceFrame {
	edge := geometry.Point2D{X: x, Y: y}
	f.CalibrationEdge = &edge
	f.CalibrationDistance = f.Center.Distance(edge)
	return f
}

// ClearCalibrationEdge reverts to the bottom-edge distance default.
func (f *ReferenceFrame) ClearCalibrationEdge() *ReferenceFrame {
	f.CalibrationEdge = nil
	f.CalibrationDistance = 0
	return f
}

// SetScaleValue sets the range represented by the calibration distance.
// The allowed denominations are a UI concern; any positive value is accepted.
func (f *ReferenceFrame) SetScaleValue(v float64) *ReferenceFrame {
	f.ScaleValue = v
	return f
}

// calibrationPixels resolves the effective calibration distance in pixels.
func (f *ReferenceFrame) calibrationPixels() float64 {
	if f.CalibrationEdge != nil {
		return f.CalibrationDistance
	}
	return float64(f.Height) - f.Center.Y
}

// Locate converts a pixel coordinate into a Detection. Azimuth follows the
// compass convention: 0 degrees points straight up in image space and angles
// increase clockwise, so atan2 takes (dx, dy) rather than (dy, dx). The
// result is always in [0, 360). Range scales the pixel distance from center
// by the calibration ratio.
//
// The pixel at the exact center yields range 0 and azimuth 0.
func (f *ReferenceFrame) Locate(x, y float64) (Detection, error) {
	calib := f.calibrationPixels()
	if calib == 0 {
		return Detection{}, ErrDegenerateCalibration
	}

	dx := x - f.Center.X
	dy := f.Center.Y - y // image Y grows downward, azimuth "up" is -Y

	rangePixels := math.Hypot(dx, dy)

	azimuth := math.Atan2(dx, dy) * 180 / math.Pi
	if azimuth < 0 {
		azimuth += 360
	}
	if azimuth >= 360 {
		azimuth = 0
	}

	return Detection{
		Pixel:          geometry.Point2D{X: x, Y: y},
		AzimuthDegrees: azimuth,
		RangeUnits:     rangePixels / calib * f.ScaleValue,
	}, nil
}

// ClampToImage clamps a click coordinate into [0, width-1] x [0, height-1].
// The presentation layer applies this before Locate or SetCalibrationEdge;
// the frame itself never clamps.
func ClampToImage(x, y float64, width, height int) (float64, float64) {
	if x < 0 {
		x = 0
	}
	if x > float64(width-1) {
		x = float64(width - 1)
	}
	if y < 0 {
		y = 0
	}
	if y > float64(height-1) {
		y = float64(height - 1)
	}
	return x, y
}
