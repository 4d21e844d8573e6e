// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"radar-scope/internal/app"
	scopeimage "radar-scope/internal/image"
	"radar-scope/internal/ocr"
	"radar-scope/internal/version"
	"radar-scope/ui/canvas"
	"radar-scope/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir = "lastDirectory"

	sessionExt = ".scopesession"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	canvas    *canvas.ScopeCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	fitToWindowItem *fyne.MenuItem
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow(version.AppName)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupKeys()

	return mw
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewScopeCanvas()
	mw.canvas.OnClick(func(x, y float64) {
		if err := mw.state.HandleClick(x, y); err != nil {
			mw.updateStatus(err.Error())
			return
		}
		mw.refreshCanvas()
	})

	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.updateStatus(fmt.Sprintf("Zoom: %.0f%%", zoom*100))
	})

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil, nil, nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	fitBtn := widget.NewButton("Fit", mw.onToggleFitToWindow)
	actualBtn := widget.NewButton("1:1", mw.onActualSize)
	prevBtn := widget.NewButton("◀", func() { mw.state.PrevImage() })
	nextBtn := widget.NewButton("▶", func() { mw.state.NextImage() })

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		widget.NewSeparator(),
		prevBtn,
		nextBtn,
	)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Open Folder...", mw.onOpenFolder),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Session...", mw.onOpenSession),
		fyne.NewMenuItem("Save Session", mw.onSaveSession),
		fyne.NewMenuItem("Save Session As...", mw.onSaveSessionAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Report...", mw.onExportReport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Auto-Detect Center", mw.onAutoDetectCenter),
		fyne.NewMenuItem("Read Caption", mw.onReadCaption),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, toolsMenu, helpMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.refreshCanvas()
		if layer, ok := data.(*scopeimage.Layer); ok {
			mw.updateStatus("Loaded " + filepath.Base(layer.Path))
			mw.maybeReadCaption(layer)
		}
	})

	mw.state.On(app.EventFrameChanged, func(data interface{}) {
		mw.refreshCanvas()
	})

	mw.state.On(app.EventDetectionChanged, func(data interface{}) {
		mw.refreshCanvas()
	})

	mw.state.On(app.EventCalibrationDropped, func(data interface{}) {
		if name, ok := data.(string); ok {
			mw.updateStatus("Calibration edge does not fit " + name + ", using bottom-edge default")
		}
	})

	mw.state.On(app.EventModeChanged, func(data interface{}) {
		if mode, ok := data.(app.InteractionMode); ok {
			mw.updateStatus("Mode: " + mode.String())
		}
	})

	mw.state.On(app.EventSessionLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(version.AppName + " - " + filepath.Base(path))
			mw.updateStatus("Session loaded: " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// setupKeys binds arrow keys to center nudges and PgUp/PgDn to navigation.
func (mw *MainWindow) setupKeys() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyUp:
			mw.state.NudgeCenter(0, -1)
		case fyne.KeyDown:
			mw.state.NudgeCenter(0, 1)
		case fyne.KeyLeft:
			mw.state.NudgeCenter(-1, 0)
		case fyne.KeyRight:
			mw.state.NudgeCenter(1, 0)
		case fyne.KeyPageDown:
			mw.state.NextImage()
		case fyne.KeyPageUp:
			mw.state.PrevImage()
		case fyne.KeyEscape:
			mw.state.SetMode(app.ModeIdle)
		}
	})
}

// refreshCanvas re-renders the annotation overlay onto the photograph.
func (mw *MainWindow) refreshCanvas() {
	layer := mw.state.CurrentImage
	if layer == nil {
		mw.canvas.SetImage(nil)
		return
	}
	mw.canvas.SetImage(scopeimage.Render(layer.Image, mw.state.AnnotationForDisplay()))
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.OpenFolder(filepath.Dir(path)); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.state.Navigator.JumpTo(path)
		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(scopeimage.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenFolder() {
	fd := dialog.NewFolderOpen(func(list fyne.ListableURI, err error) {
		if err != nil || list == nil {
			return
		}
		dir := list.Path()
		mw.app.Preferences().SetString(prefKeyLastDir, dir)
		if err := mw.state.OpenFolder(dir); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenSession() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadSession(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{sessionExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveSession() {
	if mw.state.SessionPath == "" {
		mw.onSaveSessionAs()
		return
	}
	if err := mw.state.SaveSession(mw.state.SessionPath); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.SetTitle(version.AppName + " - " + filepath.Base(mw.state.SessionPath))
	mw.updateStatus("Session saved")
}

func (mw *MainWindow) onSaveSessionAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != sessionExt {
			path += sessionExt
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveSession(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.SetTitle(version.AppName + " - " + filepath.Base(path))
		mw.updateStatus("Session saved")
	}, mw.Window)
	fd.SetFileName("observation" + sessionExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportReport() {
	if len(mw.state.Session.Annotations) == 0 {
		mw.updateStatus("Nothing to export: no detections recorded")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".rtf" {
			path += ".rtf"
		}
		mw.saveLastDir(path)
		if err := mw.state.ExportReport(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Report exported: " + path)
	}, mw.Window)
	fd.SetFileName("report.rtf")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.GetFitToWindow()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAutoDetectCenter() {
	face, err := mw.state.AutoDetectCenter()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if face == nil {
		mw.updateStatus("No scope face found")
		return
	}
	mw.updateStatus(fmt.Sprintf("Scope face at (%.0f, %.0f), radius %.0f px",
		face.Center.X, face.Center.Y, face.Radius))
}

func (mw *MainWindow) onReadCaption() {
	layer := mw.state.CurrentImage
	if layer == nil {
		mw.updateStatus("No image loaded")
		return
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	defer engine.Close()

	text, err := engine.ReadCaption(layer.Image, mw.state.Config.Caption.StripHeightFraction)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if text == "" {
		mw.updateStatus("No caption text found")
		return
	}

	dialog.ShowConfirm("Caption", "Use as observation date?\n\n"+text, func(ok bool) {
		if ok {
			mw.state.Session.Metadata.ObservedDate = text
			mw.state.SetModified(true)
		}
	}, mw.Window)
	mw.updateStatus("Caption: " + text)
}

// maybeReadCaption prefills the observation date from the caption strip when
// enabled in the config. Runs off the UI thread; OCR takes a moment.
func (mw *MainWindow) maybeReadCaption(layer *scopeimage.Layer) {
	if !mw.state.Config.Caption.Enabled || mw.state.Session.Metadata.ObservedDate != "" {
		return
	}

	go func() {
		engine, err := ocr.NewEngine()
		if err != nil {
			return
		}
		defer engine.Close()

		text, err := engine.ReadCaption(layer.Image, mw.state.Config.Caption.StripHeightFraction)
		if err != nil || text == "" {
			return
		}
		mw.state.Session.Metadata.ObservedDate = text
		mw.state.SetModified(true)
		mw.updateStatus("Caption: " + text)
	}()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+version.AppName,
		fmt.Sprintf("%s v%s\n\n"+
			"Annotates radar indicator photographs with azimuth and range\n"+
			"readings and exports observation reports.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.AppName, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
