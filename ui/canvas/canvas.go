// Package canvas provides the scope photograph canvas with pan, zoom, and
// click-to-measure.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// ScopeCanvas displays the annotated photograph. Clicks are reported in
// image coordinates regardless of zoom.
type ScopeCanvas struct {
	widget.BaseWidget

	// Annotated image, rendered by the application on every change.
	img image.Image

	raster *fynecanvas.Raster
	zoom   float64

	scroll  *zoomScroll
	content *clickableContent
	imgSize fyne.Size

	fitToWindow    bool
	lastScrollSize fyne.Size

	onZoomChange func(zoom float64)
	onClick      func(x, y float64)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ScopeCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ScopeCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
	zs.canvas.CheckResize(size)
}

// clickableContent wraps the raster to handle mouse events.
type clickableContent struct {
	widget.BaseWidget
	canvas *ScopeCanvas
	raster *fynecanvas.Raster
}

func newClickableContent(sc *ScopeCanvas, raster *fynecanvas.Raster) *clickableContent {
	cc := &clickableContent{canvas: sc, raster: raster}
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *clickableContent) CreateRenderer() fyne.WidgetRenderer {
	return &clickableContentRenderer{content: cc}
}

func (cc *clickableContent) MinSize() fyne.Size {
	return cc.raster.MinSize()
}

func (cc *clickableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		cc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		cc.canvas.ZoomOut()
	}
}

// Tapped converts the click position from the zoomed viewport to image
// coordinates and reports it.
func (cc *clickableContent) Tapped(ev *fyne.PointEvent) {
	if cc.canvas.onClick == nil {
		return
	}

	// Reject positions outside the widget; fyne occasionally delivers them.
	size := cc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	scrollOffset := cc.canvas.scroll.Offset()
	canvasX := float64(ev.Position.X + scrollOffset.X)
	canvasY := float64(ev.Position.Y + scrollOffset.Y)

	cc.canvas.onClick(canvasX/cc.canvas.zoom, canvasY/cc.canvas.zoom)
}

type clickableContentRenderer struct {
	content *clickableContent
}

func (r *clickableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *clickableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *clickableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *clickableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *clickableContentRenderer) Destroy() {}

// NewScopeCanvas creates an empty canvas.
func NewScopeCanvas() *ScopeCanvas {
	sc := &ScopeCanvas{
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
	}

	sc.raster = fynecanvas.NewRaster(sc.draw)
	sc.raster.ScaleMode = fynecanvas.ImageScalePixels
	sc.raster.SetMinSize(sc.imgSize)

	sc.content = newClickableContent(sc, sc.raster)
	sc.scroll = newZoomScroll(sc.content, sc)

	sc.ExtendBaseWidget(sc)
	return sc
}

// Container returns the canvas container for embedding in layouts.
func (sc *ScopeCanvas) Container() fyne.CanvasObject {
	return sc.scroll
}

// SetImage replaces the displayed image. Pass the already annotated frame.
func (sc *ScopeCanvas) SetImage(img image.Image) {
	sc.img = img
	sc.updateContentSize()
}

// SetZoom sets the zoom level, clamped to the allowed range.
func (sc *ScopeCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	sc.zoom = zoom
	sc.updateContentSize()

	if sc.onZoomChange != nil {
		sc.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (sc *ScopeCanvas) GetZoom() float64 {
	return sc.zoom
}

// ZoomIn increases the zoom level.
func (sc *ScopeCanvas) ZoomIn() {
	sc.SetZoom(sc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (sc *ScopeCanvas) ZoomOut() {
	sc.SetZoom(sc.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the whole photograph is visible.
func (sc *ScopeCanvas) FitToWindow() {
	if sc.img == nil {
		return
	}
	bounds := sc.img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	viewSize := sc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	sc.SetZoom(zoom * 0.95)
}

// SetFitToWindow enables or disables auto-fit on resize.
func (sc *ScopeCanvas) SetFitToWindow(fit bool) {
	sc.fitToWindow = fit
	if fit {
		sc.FitToWindow()
	}
}

// GetFitToWindow returns the current fit-to-window state.
func (sc *ScopeCanvas) GetFitToWindow() bool {
	return sc.fitToWindow
}

// CheckResize auto-fits when the scroll container was resized.
func (sc *ScopeCanvas) CheckResize(size fyne.Size) {
	if !sc.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != sc.lastScrollSize {
		sc.lastScrollSize = size
		sc.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (sc *ScopeCanvas) OnZoomChange(callback func(zoom float64)) {
	sc.onZoomChange = callback
}

// OnClick sets the click callback. Coordinates are in image space.
func (sc *ScopeCanvas) OnClick(callback func(x, y float64)) {
	sc.onClick = callback
}

// Refresh redraws the canvas.
func (sc *ScopeCanvas) Refresh() {
	sc.raster.Refresh()
}

func (sc *ScopeCanvas) updateContentSize() {
	if sc.img == nil {
		sc.imgSize = fyne.NewSize(400, 300)
	} else {
		bounds := sc.img.Bounds()
		sc.imgSize = fyne.NewSize(
			float32(float64(bounds.Dx())*sc.zoom),
			float32(float64(bounds.Dy())*sc.zoom),
		)
	}

	sc.raster.SetMinSize(sc.imgSize)
	sc.raster.Resize(sc.imgSize)
	if sc.content != nil {
		sc.content.Resize(sc.imgSize)
	}
	sc.Refresh()
	if sc.scroll != nil {
		sc.scroll.Refresh()
	}
}

// draw renders the zoomed photograph with nearest-neighbor sampling. Crisp
// pixels matter here: the operator aligns the crosshair against single-pixel
// film grain.
func (sc *ScopeCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	if sc.img == nil {
		return output
	}

	bounds := sc.img.Bounds()
	for y := 0; y < h; y++ {
		srcY := bounds.Min.Y + int(float64(y)/sc.zoom)
		if srcY >= bounds.Max.Y {
			break
		}
		for x := 0; x < w; x++ {
			srcX := bounds.Min.X + int(float64(x)/sc.zoom)
			if srcX >= bounds.Max.X {
				break
			}
			output.Set(x, y, sc.img.At(srcX, srcY))
		}
	}
	return output
}

// CreateRenderer implements fyne.Widget.
func (sc *ScopeCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sc.scroll)
}
