package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"radar-scope/internal/app"
	"radar-scope/internal/session"
)

// MetadataPanel edits the report header fields and manages templates.
type MetadataPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	reportEntry   *widget.Entry
	stationEntry  *widget.Entry
	operatorEntry *widget.Entry
	radarEntry    *widget.Entry
	dateEntry     *widget.Entry
	notesEntry    *widget.Entry

	templateSelect *widget.Select
}

// NewMetadataPanel creates the report metadata panel.
func NewMetadataPanel(state *app.State) *MetadataPanel {
	mp := &MetadataPanel{state: state}

	mp.reportEntry = widget.NewEntry()
	mp.stationEntry = widget.NewEntry()
	mp.operatorEntry = widget.NewEntry()
	mp.radarEntry = widget.NewEntry()
	mp.dateEntry = widget.NewEntry()
	mp.dateEntry.SetPlaceHolder("YYYY-MM-DD")
	mp.notesEntry = widget.NewMultiLineEntry()
	mp.notesEntry.SetMinRowsVisible(3)

	for _, e := range []*widget.Entry{
		mp.reportEntry, mp.stationEntry, mp.operatorEntry,
		mp.radarEntry, mp.dateEntry, mp.notesEntry,
	} {
		e.OnChanged = func(string) { mp.apply() }
	}

	form := widget.NewForm(
		widget.NewFormItem("Report no.", mp.reportEntry),
		widget.NewFormItem("Station", mp.stationEntry),
		widget.NewFormItem("Operator", mp.operatorEntry),
		widget.NewFormItem("Radar type", mp.radarEntry),
		widget.NewFormItem("Date", mp.dateEntry),
		widget.NewFormItem("Notes", mp.notesEntry),
	)

	mp.templateSelect = widget.NewSelect(nil, nil)
	mp.reloadTemplates()

	loadButton := widget.NewButton("Load Template", func() {
		name := mp.templateSelect.Selected
		if name == "" {
			return
		}
		m, err := session.LoadTemplate(templateDir(), name)
		if err != nil {
			mp.showError(err)
			return
		}
		mp.state.Session.Metadata = m
		mp.fill()
		mp.state.SetModified(true)
	})

	saveButton := widget.NewButton("Save Template...", func() {
		mp.promptSaveTemplate()
	})

	mp.container = container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Report description", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Templates", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mp.templateSelect,
		loadButton,
		saveButton,
	))

	state.On(app.EventSessionLoaded, func(data interface{}) {
		mp.fill()
	})

	return mp
}

// Container returns the panel container.
func (mp *MetadataPanel) Container() fyne.CanvasObject {
	return mp.container
}

// SetWindow sets the parent window for dialogs.
func (mp *MetadataPanel) SetWindow(w fyne.Window) {
	mp.window = w
}

// apply copies the entry values into the session metadata.
func (mp *MetadataPanel) apply() {
	m := &mp.state.Session.Metadata
	m.ReportNumber = mp.reportEntry.Text
	m.Station = mp.stationEntry.Text
	m.Operator = mp.operatorEntry.Text
	m.RadarType = mp.radarEntry.Text
	m.ObservedDate = mp.dateEntry.Text
	m.Notes = mp.notesEntry.Text
	mp.state.SetModified(true)
}

// fill pushes session metadata into the entries without firing apply.
func (mp *MetadataPanel) fill() {
	m := mp.state.Session.Metadata
	entries := []struct {
		e *widget.Entry
		v string
	}{
		{mp.reportEntry, m.ReportNumber},
		{mp.stationEntry, m.Station},
		{mp.operatorEntry, m.Operator},
		{mp.radarEntry, m.RadarType},
		{mp.dateEntry, m.ObservedDate},
		{mp.notesEntry, m.Notes},
	}
	for _, it := range entries {
		onChanged := it.e.OnChanged
		it.e.OnChanged = nil
		it.e.SetText(it.v)
		it.e.OnChanged = onChanged
	}
}

func (mp *MetadataPanel) reloadTemplates() {
	names, err := session.ListTemplates(templateDir())
	if err != nil {
		return
	}
	mp.templateSelect.Options = names
	mp.templateSelect.Refresh()
}

func (mp *MetadataPanel) promptSaveTemplate() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("template name")

	dialog.ShowForm("Save Template", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
		func(ok bool) {
			if !ok || nameEntry.Text == "" {
				return
			}
			if err := session.SaveTemplate(templateDir(), nameEntry.Text, mp.state.Session.Metadata); err != nil {
				mp.showError(err)
				return
			}
			mp.reloadTemplates()
		}, mp.window)
}

func (mp *MetadataPanel) showError(err error) {
	if mp.window != nil {
		dialog.ShowError(err, mp.window)
	}
}
