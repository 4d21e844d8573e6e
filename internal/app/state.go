// Package app provides application state, events, and interaction modes.
package app

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"radar-scope/internal/batch"
	"radar-scope/internal/config"
	"radar-scope/internal/detect"
	scopeimage "radar-scope/internal/image"
	"radar-scope/internal/report"
	"radar-scope/internal/scope"
	"radar-scope/internal/session"
)

// InteractionMode selects what a click on the canvas does. The modes are
// mutually exclusive: entering one leaves the others.
type InteractionMode int

const (
	// ModeIdle places an analysis point.
	ModeIdle InteractionMode = iota
	// ModeSetCenter moves the scope center to the clicked pixel.
	ModeSetCenter
	// ModeSetCalibrationEdge places the calibration edge at the clicked pixel.
	ModeSetCalibrationEdge
)

func (m InteractionMode) String() string {
	switch m {
	case ModeSetCenter:
		return "Set Center"
	case ModeSetCalibrationEdge:
		return "Set Calibration Edge"
	default:
		return "Place Detection"
	}
}

// EventType identifies application events.
type EventType int

const (
	EventSessionLoaded EventType = iota
	EventSessionSaved
	EventImageLoaded
	EventFrameChanged
	EventDetectionChanged
	EventModeChanged
	EventModified
	// EventCalibrationDropped fires when a saved calibration edge could not
	// be transplanted onto a newly loaded image and the frame fell back to
	// the bottom-edge default.
	EventCalibrationDropped
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the session, the current image, and its reference frame.
type State struct {
	mu sync.RWMutex

	Config *config.Config

	// Session
	SessionPath string
	Session     *session.File
	Modified    bool

	// Batch
	Folder    string
	Navigator *batch.Navigator

	// Current image
	CurrentImage *scopeimage.Layer
	Frame        *scope.ReferenceFrame
	Point        *scope.Detection

	Mode InteractionMode

	listeners map[EventType][]EventListener
}

// NewState creates application state with a fresh session.
func NewState(cfg *config.Config) *State {
	return &State{
		Config:    cfg,
		Session:   session.New(cfg.Scale.DefaultValue),
		Navigator: batch.NewNavigator(nil),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the session as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// SetMode switches the interaction mode, cancelling the previous one.
func (s *State) SetMode(mode InteractionMode) {
	s.mu.Lock()
	s.Mode = mode
	s.mu.Unlock()
	s.Emit(EventModeChanged, mode)
}

// OpenFolder loads a batch folder and its first image.
func (s *State) OpenFolder(dir string) error {
	files, err := batch.List(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported images in %s", dir)
	}

	s.mu.Lock()
	s.Folder = dir
	s.Navigator = batch.NewNavigator(files)
	s.mu.Unlock()

	if s.SessionPath != "" {
		s.Session.SetFolder(s.SessionPath, dir)
	}

	return s.LoadImage(files[0])
}

// LoadImage loads a scope photograph and rebuilds its reference frame from
// the session's grid settings, so calibration survives across the batch.
func (s *State) LoadImage(path string) error {
	layer, err := scopeimage.Load(path)
	if err != nil {
		return err
	}

	frame, edgeDropped := scope.ImportGrid(s.Session.Grid, layer.Width(), layer.Height())

	s.mu.Lock()
	s.CurrentImage = layer
	s.Frame = frame
	s.Point = nil
	// Restore a previously recorded detection for this image, if any.
	if ann := s.Session.AnnotationFor(filepath.Base(path)); ann != nil {
		det := ann.Detection
		s.Point = &det
	}
	s.mu.Unlock()

	if edgeDropped {
		log.Printf("calibration edge does not fit %dx%d image %s, using bottom-edge default",
			layer.Width(), layer.Height(), filepath.Base(path))
		s.Emit(EventCalibrationDropped, filepath.Base(path))
	}

	s.Emit(EventImageLoaded, layer)
	return nil
}

// HandleClick routes a click in image coordinates according to the current
// interaction mode. Click coordinates are clamped into the image before any
// frame operation; the frame itself never clamps.
func (s *State) HandleClick(x, y float64) error {
	s.mu.RLock()
	layer := s.CurrentImage
	frame := s.Frame
	mode := s.Mode
	s.mu.RUnlock()

	if layer == nil || frame == nil {
		return nil
	}

	x, y = scope.ClampToImage(x, y, layer.Width(), layer.Height())

	switch mode {
	case ModeSetCenter:
		frame.MoveCenter(x-frame.Center.X, y-frame.Center.Y)
		s.frameChanged()
		s.SetMode(ModeIdle)

	case ModeSetCalibrationEdge:
		frame.SetCalibrationEdge(x, y)
		s.frameChanged()
		s.SetMode(ModeIdle)

	default:
		det, err := frame.Locate(x, y)
		if err != nil {
			return fmt.Errorf("cannot compute range, recalibrate: %w", err)
		}
		s.mu.Lock()
		s.Point = &det
		s.mu.Unlock()
		s.Session.Record(filepath.Base(layer.Path), det, *frame)
		s.SetModified(true)
		s.Emit(EventDetectionChanged, det)
	}

	return nil
}

// NudgeCenter moves the center by a pixel delta (arrow keys; fine stepping
// uses ±0.5). The center is not clamped to the image.
func (s *State) NudgeCenter(dx, dy float64) {
	s.mu.RLock()
	frame := s.Frame
	s.mu.RUnlock()
	if frame == nil {
		return
	}

	frame.MoveCenter(dx, dy)
	s.frameChanged()
}

// SetScale applies a new scale denomination to the frame and the session.
// Only the configured denominations are accepted here; the frame itself takes
// any positive value so sessions saved elsewhere still load.
func (s *State) SetScale(v float64) {
	if !s.Config.IsAllowedScale(v) {
		return
	}
	s.mu.RLock()
	frame := s.Frame
	s.mu.RUnlock()

	if frame != nil {
		frame.SetScaleValue(v)
		s.frameChanged()
		return
	}
	// No image loaded yet: remember the choice for the next one.
	s.Session.Grid.ScaleValue = v
	s.SetModified(true)
}

// ClearCalibrationEdge reverts to the bottom-edge calibration default.
func (s *State) ClearCalibrationEdge() {
	s.mu.RLock()
	frame := s.Frame
	s.mu.RUnlock()
	if frame == nil {
		return
	}

	frame.ClearCalibrationEdge()
	s.frameChanged()
}

// frameChanged re-exports the grid, refreshes the current detection against
// the new frame, and notifies listeners.
func (s *State) frameChanged() {
	s.mu.RLock()
	frame := s.Frame
	point := s.Point
	layer := s.CurrentImage
	s.mu.RUnlock()

	s.Session.Grid = frame.ExportGrid()

	// The recorded detection keeps its pixel but its polar reading moves
	// with the frame.
	if point != nil && layer != nil {
		if det, err := frame.Locate(point.Pixel.X, point.Pixel.Y); err == nil {
			s.mu.Lock()
			s.Point = &det
			s.mu.Unlock()
			s.Session.Record(filepath.Base(layer.Path), det, *frame)
			s.Emit(EventDetectionChanged, det)
		}
	}

	s.SetModified(true)
	s.Emit(EventFrameChanged, frame)
}

// NextImage advances the batch. Returns false at the end.
func (s *State) NextImage() bool {
	path := s.Navigator.Next()
	if path == "" {
		return false
	}
	if err := s.LoadImage(path); err != nil {
		log.Printf("failed to load %s: %v", path, err)
		return false
	}
	return true
}

// PrevImage steps back in the batch. Returns false at the start.
func (s *State) PrevImage() bool {
	path := s.Navigator.Prev()
	if path == "" {
		return false
	}
	if err := s.LoadImage(path); err != nil {
		log.Printf("failed to load %s: %v", path, err)
		return false
	}
	return true
}

// AutoDetectCenter finds the scope face and moves the center onto it.
// Returns the detected face, or nil when none was found.
func (s *State) AutoDetectCenter() (*detect.ScopeFace, error) {
	s.mu.RLock()
	layer := s.CurrentImage
	frame := s.Frame
	s.mu.RUnlock()
	if layer == nil || frame == nil {
		return nil, nil
	}

	face, err := detect.FindScopeFace(layer.Image,
		s.Config.Detect.MinRadiusFraction, s.Config.Detect.MaxRadiusFraction)
	if err != nil || face == nil {
		return nil, err
	}

	frame.MoveCenter(face.Center.X-frame.Center.X, face.Center.Y-frame.Center.Y)
	s.frameChanged()
	return face, nil
}

// SaveSession writes the session to path.
func (s *State) SaveSession(path string) error {
	if s.Folder != "" {
		s.Session.SetFolder(path, s.Folder)
	}
	if err := s.Session.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionSaved, path)
	return nil
}

// LoadSession reads a session file and reopens its batch folder.
func (s *State) LoadSession(path string) error {
	sess, err := session.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Session = sess
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	if folder := sess.GetFolderPath(path); folder != "" {
		if err := s.OpenFolder(folder); err != nil {
			log.Printf("session folder unavailable: %v", err)
		}
	}

	s.Emit(EventSessionLoaded, path)
	return nil
}

// ExportReport renders every annotated image and writes the report document.
func (s *State) ExportReport(path string) error {
	opts := report.RenderOptions{
		RingFractions: s.Config.Annotation.RingFractions,
		MarkerSize:    s.Config.Annotation.MarkerSize,
		LabelScale:    s.Config.Annotation.LabelScale,
		Description:   s.Session.Metadata.DescriptionLines(),
	}

	images, err := report.CollectImages(s.Session, s.Folder, opts)
	if err != nil {
		return err
	}

	return report.Export(path, s.Session, images)
}

// AnnotationForDisplay builds the current annotation for canvas rendering.
func (s *State) AnnotationForDisplay() scopeimage.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scopeimage.Annotation{
		Frame:         s.Frame,
		Detection:     s.Point,
		RingFractions: s.Config.Annotation.RingFractions,
		MarkerSize:    s.Config.Annotation.MarkerSize,
		LabelScale:    s.Config.Annotation.LabelScale,
		Description:   s.Session.Metadata.DescriptionLines(),
	}
}
