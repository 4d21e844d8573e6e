// Package panels provides the side panel sections of the main window.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"radar-scope/internal/app"
	"radar-scope/ui/canvas"
)

// SidePanel provides the tabbed side panel.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.ScopeCanvas
	container *container.AppTabs

	measurePanel  *MeasurePanel
	metadataPanel *MetadataPanel
	batchPanel    *BatchPanel
}

// NewSidePanel creates the side panel and its tabs.
func NewSidePanel(state *app.State, cvs *canvas.ScopeCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.measurePanel = NewMeasurePanel(state)
	sp.metadataPanel = NewMetadataPanel(state)
	sp.batchPanel = NewBatchPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Measure", sp.measurePanel.Container()),
		container.NewTabItem("Report", sp.metadataPanel.Container()),
		container.NewTabItem("Batch", sp.batchPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.metadataPanel.SetWindow(w)
}
