package scope

import (
	"radar-scope/pkg/geometry"
)

// GridSettings is a reference frame expressed relative to the image center so
// the operator's calibration can be reapplied to a differently sized image in
// a folder batch. One instance lives in the session and is updated whenever
// the center, edge, or scale changes.
type GridSettings struct {
	CenterOffset          geometry.Point2D  `json:"center_offset"`
	CalibrationEdgeOffset *geometry.Point2D `json:"calibration_edge_offset,omitempty"`

	// CalibrationDistance is the pixel distance captured at save time. It is
	// not recomputed from the offset on import: the distance is a measurement
	// tied to the photograph it was taken on.
	CalibrationDistance float64 `json:"calibration_distance,omitempty"`

	ScaleValue float64 `json:"scale_value"`
}

// ExportGrid captures the frame state relative to the image center.
func (f *ReferenceFrame) ExportGrid() GridSettings {
	imageCenter := geometry.Point2D{X: float64(f.Width / 2), Y: float64(f.Height / 2)}

	saved := GridSettings{
		CenterOffset:        f.Center.Sub(imageCenter),
		CalibrationDistance: f.CalibrationDistance,
		ScaleValue:          f.ScaleValue,
	}
	if f.CalibrationEdge != nil {
		off := f.CalibrationEdge.Sub(imageCenter)
		saved.CalibrationEdgeOffset = &off
	}
	return saved
}

// ImportGrid builds a frame for a new image from saved grid settings. The
// center offset always transfers. The calibration edge transfers only when
// the transplanted point lands inside the new image; otherwise the frame
// falls back to the bottom-edge default and edgeDropped reports the loss so
// the caller can warn the operator.
func ImportGrid(saved GridSettings, width, height int) (frame *ReferenceFrame, edgeDropped bool) {
	frame = NewFrame(width, height, saved.ScaleValue)

	if saved.CenterOffset != (geometry.Point2D{}) {
		frame.MoveCenter(saved.CenterOffset.X, saved.CenterOffset.Y)
	}

	if saved.CalibrationEdgeOffset == nil || saved.CalibrationDistance == 0 {
		return frame, false
	}

	imageCenter := geometry.Point2D{X: float64(width / 2), Y: float64(height / 2)}
	candidate := imageCenter.Add(*saved.CalibrationEdgeOffset)

	if candidate.X < 0 || candidate.X >= float64(width) ||
		candidate.Y < 0 || candidate.Y >= float64(height) {
		return frame, true
	}

	frame.CalibrationEdge = &candidate
	frame.CalibrationDistance = saved.CalibrationDistance
	return frame, false
}
