package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"radar-scope/internal/app"
	"radar-scope/internal/scope"
)

// Center nudge step sizes in pixels.
const (
	nudgeCoarse = 1.0
	nudgeFine   = 0.5
)

// MeasurePanel shows the current reading and the calibration controls.
type MeasurePanel struct {
	state     *app.State
	container fyne.CanvasObject

	azimuthLabel *widget.Label
	rangeLabel   *widget.Label
	pixelLabel   *widget.Label
	centerLabel  *widget.Label
	calibLabel   *widget.Label
	modeLabel    *widget.Label

	scaleSelect *widget.Select
	fineCheck   *widget.Check
}

// NewMeasurePanel creates the measurement panel.
func NewMeasurePanel(state *app.State) *MeasurePanel {
	mp := &MeasurePanel{state: state}

	mp.azimuthLabel = widget.NewLabel("Azimuth: —")
	mp.rangeLabel = widget.NewLabel("Range: —")
	mp.pixelLabel = widget.NewLabel("Pixel: —")
	mp.centerLabel = widget.NewLabel("Center: —")
	mp.calibLabel = widget.NewLabel("Calibration: bottom edge")
	mp.modeLabel = widget.NewLabel("Mode: " + app.ModeIdle.String())

	scaleNames := make([]string, len(state.Config.Scale.AllowedValues))
	for i, v := range state.Config.Scale.AllowedValues {
		scaleNames[i] = fmt.Sprintf("%.0f", v)
	}
	mp.scaleSelect = widget.NewSelect(scaleNames, func(selected string) {
		var v float64
		fmt.Sscanf(selected, "%f", &v)
		state.SetScale(v)
	})
	mp.scaleSelect.SetSelected(fmt.Sprintf("%.0f", state.Config.Scale.DefaultValue))

	setCenterButton := widget.NewButton("Set Center", func() {
		state.SetMode(app.ModeSetCenter)
	})
	setEdgeButton := widget.NewButton("Set Calibration Edge", func() {
		state.SetMode(app.ModeSetCalibrationEdge)
	})
	clearEdgeButton := widget.NewButton("Clear Edge", func() {
		state.ClearCalibrationEdge()
	})

	mp.fineCheck = widget.NewCheck("Fine step (0.5 px)", nil)

	nudge := func(dx, dy float64) func() {
		return func() {
			step := nudgeCoarse
			if mp.fineCheck.Checked {
				step = nudgeFine
			}
			state.NudgeCenter(dx*step, dy*step)
		}
	}
	nudgeGrid := container.NewGridWithColumns(3,
		widget.NewLabel(""), widget.NewButton("▲", nudge(0, -1)), widget.NewLabel(""),
		widget.NewButton("◀", nudge(-1, 0)), widget.NewLabel(""), widget.NewButton("▶", nudge(1, 0)),
		widget.NewLabel(""), widget.NewButton("▼", nudge(0, 1)), widget.NewLabel(""),
	)

	mp.container = container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Reading", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mp.azimuthLabel,
		mp.rangeLabel,
		mp.pixelLabel,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Calibration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mp.centerLabel,
		mp.calibLabel,
		widget.NewLabel("Scale value"),
		mp.scaleSelect,
		setCenterButton,
		setEdgeButton,
		clearEdgeButton,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Center nudge", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mp.fineCheck,
		nudgeGrid,
		widget.NewSeparator(),
		mp.modeLabel,
	))

	state.On(app.EventDetectionChanged, func(data interface{}) {
		if det, ok := data.(scope.Detection); ok {
			mp.showDetection(det)
		}
	})
	state.On(app.EventFrameChanged, func(data interface{}) {
		mp.showFrame()
	})
	state.On(app.EventImageLoaded, func(data interface{}) {
		mp.showFrame()
		mp.showStoredDetection()
	})
	state.On(app.EventModeChanged, func(data interface{}) {
		if mode, ok := data.(app.InteractionMode); ok {
			mp.modeLabel.SetText("Mode: " + mode.String())
		}
	})

	return mp
}

// Container returns the panel container.
func (mp *MeasurePanel) Container() fyne.CanvasObject {
	return mp.container
}

func (mp *MeasurePanel) showDetection(det scope.Detection) {
	mp.azimuthLabel.SetText(fmt.Sprintf("Azimuth: %.1f°", det.AzimuthDegrees))
	mp.rangeLabel.SetText(fmt.Sprintf("Range: %.1f km", det.RangeUnits))
	mp.pixelLabel.SetText(fmt.Sprintf("Pixel: (%.1f, %.1f)", det.Pixel.X, det.Pixel.Y))
}

func (mp *MeasurePanel) showStoredDetection() {
	if mp.state.Point != nil {
		mp.showDetection(*mp.state.Point)
		return
	}
	mp.azimuthLabel.SetText("Azimuth: —")
	mp.rangeLabel.SetText("Range: —")
	mp.pixelLabel.SetText("Pixel: —")
}

func (mp *MeasurePanel) showFrame() {
	frame := mp.state.Frame
	if frame == nil {
		return
	}

	mp.centerLabel.SetText(fmt.Sprintf("Center: (%.1f, %.1f)", frame.Center.X, frame.Center.Y))

	if frame.CalibrationEdge != nil {
		mp.calibLabel.SetText(fmt.Sprintf("Calibration: edge (%.0f, %.0f), %.1f px",
			frame.CalibrationEdge.X, frame.CalibrationEdge.Y, frame.CalibrationDistance))
	} else {
		mp.calibLabel.SetText("Calibration: bottom edge")
	}

	mp.scaleSelect.SetSelected(fmt.Sprintf("%.0f", frame.ScaleValue))
}
