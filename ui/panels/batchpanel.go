package panels

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"radar-scope/internal/app"
)

// templateDir returns the metadata template directory under the user config.
func templateDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "radar-scope", "templates")
}

// BatchPanel shows the photograph list and the recorded detections.
type BatchPanel struct {
	state     *app.State
	container fyne.CanvasObject

	positionLabel *widget.Label
	fileLabel     *widget.Label
	list          *widget.List
}

// NewBatchPanel creates the batch navigation panel.
func NewBatchPanel(state *app.State) *BatchPanel {
	bp := &BatchPanel{state: state}

	bp.positionLabel = widget.NewLabel("No folder loaded")
	bp.fileLabel = widget.NewLabel("")
	bp.fileLabel.Wrapping = fyne.TextWrapWord

	prevButton := widget.NewButton("◀ Prev", func() {
		state.PrevImage()
	})
	nextButton := widget.NewButton("Next ▶", func() {
		state.NextImage()
	})

	bp.list = widget.NewList(
		func() int {
			return len(state.Session.Annotations)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			anns := state.Session.Annotations
			if id >= len(anns) {
				return
			}
			a := anns[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  A %.1f°  R %.1f",
				a.ImagePath, a.Detection.AzimuthDegrees, a.Detection.RangeUnits))
		},
	)
	bp.list.OnSelected = func(id widget.ListItemID) {
		anns := state.Session.Annotations
		if id >= len(anns) || state.Folder == "" {
			return
		}
		path := filepath.Join(state.Folder, anns[id].ImagePath)
		if state.Navigator.JumpTo(path) {
			if err := state.LoadImage(path); err == nil {
				bp.refreshPosition()
			}
		}
	}

	refresh := func(interface{}) {
		bp.refreshPosition()
		bp.list.Refresh()
	}
	state.On(app.EventImageLoaded, refresh)
	state.On(app.EventDetectionChanged, refresh)
	state.On(app.EventSessionLoaded, refresh)

	bp.container = container.NewBorder(
		container.NewVBox(
			bp.positionLabel,
			bp.fileLabel,
			container.NewGridWithColumns(2, prevButton, nextButton),
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Detections", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		nil, nil, nil,
		bp.list,
	)

	return bp
}

// Container returns the panel container.
func (bp *BatchPanel) Container() fyne.CanvasObject {
	return bp.container
}

func (bp *BatchPanel) refreshPosition() {
	nav := bp.state.Navigator
	pos, total := nav.Position()
	if total == 0 {
		bp.positionLabel.SetText("No folder loaded")
		bp.fileLabel.SetText("")
		return
	}
	bp.positionLabel.SetText(fmt.Sprintf("Photograph %d of %d", pos, total))
	bp.fileLabel.SetText(filepath.Base(nav.Current()))
}
