package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"radar-scope/internal/config"
)

// writeTestImage writes a solid gray PNG of the given size.
func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.Gray{Y: 40})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func newTestState(t *testing.T, sizes ...[2]int) (*State, string) {
	t.Helper()

	dir := t.TempDir()
	for i, s := range sizes {
		name := filepath.Join(dir, string(rune('a'+i))+".png")
		writeTestImage(t, name, s[0], s[1])
	}

	state := NewState(config.Default())
	if err := state.OpenFolder(dir); err != nil {
		t.Fatalf("OpenFolder: %v", err)
	}
	return state, dir
}

func TestClickRecordsDetection(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100})

	if err := state.HandleClick(50, 0); err != nil {
		t.Fatalf("HandleClick: %v", err)
	}

	if state.Point == nil {
		t.Fatal("no detection recorded")
	}
	if got := state.Point.AzimuthDegrees; got != 0 {
		t.Errorf("azimuth = %v, want 0", got)
	}
	// Bottom-edge calibration: 50 px maps to the full scale value.
	if got := state.Point.RangeUnits; got != 300 {
		t.Errorf("range = %v, want 300", got)
	}

	if got := len(state.Session.Annotations); got != 1 {
		t.Fatalf("annotations = %d, want 1", got)
	}
	if got := state.Session.Annotations[0].ImagePath; got != "a.png" {
		t.Errorf("annotation path = %q, want a.png", got)
	}
}

func TestClickReplacesDetection(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100})

	if err := state.HandleClick(50, 0); err != nil {
		t.Fatal(err)
	}
	if err := state.HandleClick(99, 50); err != nil {
		t.Fatal(err)
	}

	if got := len(state.Session.Annotations); got != 1 {
		t.Fatalf("annotations = %d, want 1 after replacement", got)
	}
	if got := state.Point.AzimuthDegrees; got != 90 {
		t.Errorf("azimuth = %v, want 90", got)
	}
}

func TestSetCenterModeLeavesAfterClick(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100})

	state.SetMode(ModeSetCenter)
	if err := state.HandleClick(10, 20); err != nil {
		t.Fatal(err)
	}

	if state.Frame.Center.X != 10 || state.Frame.Center.Y != 20 {
		t.Errorf("center = %v, want (10, 20)", state.Frame.Center)
	}
	if state.Mode != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", state.Mode)
	}
}

func TestSetCalibrationEdgeMode(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100})

	state.SetMode(ModeSetCalibrationEdge)
	if err := state.HandleClick(90, 50); err != nil {
		t.Fatal(err)
	}

	frame := state.Frame
	if frame.CalibrationEdge == nil {
		t.Fatal("edge not set")
	}
	if frame.CalibrationDistance != 40 {
		t.Errorf("calibration distance = %v, want 40", frame.CalibrationDistance)
	}
	if state.Mode != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", state.Mode)
	}
	if state.Session.Grid.CalibrationEdgeOffset == nil {
		t.Error("edge not propagated to session grid")
	}
}

func TestClickOutsideImageIsClamped(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100})

	if err := state.HandleClick(500, 50); err != nil {
		t.Fatal(err)
	}
	if got := state.Point.Pixel.X; got != 99 {
		t.Errorf("clamped x = %v, want 99", got)
	}
}

func TestGridSharedAcrossBatch(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100}, [2]int{200, 200})

	state.NudgeCenter(10, 0)
	if state.Frame.Center.X != 60 {
		t.Fatalf("center x = %v, want 60", state.Frame.Center.X)
	}

	if !state.NextImage() {
		t.Fatal("NextImage failed")
	}

	// The +10 offset transfers relative to the new image center.
	if state.Frame.Center.X != 110 || state.Frame.Center.Y != 100 {
		t.Errorf("center = %v, want (110, 100)", state.Frame.Center)
	}

	if state.PrevImage() != true {
		t.Fatal("PrevImage failed")
	}
	if state.Frame.Center.X != 60 {
		t.Errorf("center x = %v after returning, want 60", state.Frame.Center.X)
	}
}

func TestCalibrationDroppedOnSmallerImage(t *testing.T) {
	state, _ := newTestState(t, [2]int{400, 400}, [2]int{100, 100})

	var droppedFor string
	state.On(EventCalibrationDropped, func(data interface{}) {
		if name, ok := data.(string); ok {
			droppedFor = name
		}
	})

	state.SetMode(ModeSetCalibrationEdge)
	if err := state.HandleClick(390, 200); err != nil {
		t.Fatal(err)
	}

	if !state.NextImage() {
		t.Fatal("NextImage failed")
	}

	if droppedFor != "b.png" {
		t.Errorf("dropped event for %q, want b.png", droppedFor)
	}
	if state.Frame.CalibrationEdge != nil {
		t.Error("edge should not survive onto an image it does not fit")
	}

	// Bottom-edge fallback still measures.
	if err := state.HandleClick(50, 0); err != nil {
		t.Errorf("Locate after fallback: %v", err)
	}
}

func TestDetectionRestoredWhenRevisiting(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100}, [2]int{100, 100})

	if err := state.HandleClick(50, 0); err != nil {
		t.Fatal(err)
	}
	if !state.NextImage() {
		t.Fatal("NextImage failed")
	}
	if state.Point != nil {
		t.Error("detection must clear on an unannotated image")
	}
	if !state.PrevImage() {
		t.Fatal("PrevImage failed")
	}
	if state.Point == nil {
		t.Fatal("detection not restored")
	}
	if state.Point.AzimuthDegrees != 0 {
		t.Errorf("restored azimuth = %v, want 0", state.Point.AzimuthDegrees)
	}
}

func TestFrameChangeUpdatesDetection(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100})

	if err := state.HandleClick(50, 25); err != nil {
		t.Fatal(err)
	}
	before := state.Point.RangeUnits

	// Halving the calibration distance doubles the reading.
	state.SetMode(ModeSetCalibrationEdge)
	if err := state.HandleClick(50, 75); err != nil {
		t.Fatal(err)
	}

	got := state.Point.RangeUnits
	if got != before*2 {
		t.Errorf("range after recalibration = %v, want %v", got, before*2)
	}
}

func TestSaveLoadSessionRoundTrip(t *testing.T) {
	state, dir := newTestState(t, [2]int{100, 100})

	if err := state.HandleClick(50, 0); err != nil {
		t.Fatal(err)
	}
	state.Session.Metadata.Station = "NORTH SITE"

	path := filepath.Join(t.TempDir(), "obs.scopesession")
	if err := state.SaveSession(path); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if state.Modified {
		t.Error("session still marked modified after save")
	}

	restored := NewState(config.Default())
	if err := restored.LoadSession(path); err != nil {
		t.Fatalf("LoadSession: %v", err)
	}

	if restored.Folder != dir {
		t.Errorf("folder = %q, want %q", restored.Folder, dir)
	}
	if restored.Session.Metadata.Station != "NORTH SITE" {
		t.Error("metadata lost")
	}
	if restored.Point == nil {
		t.Fatal("detection not restored with the session")
	}
	if restored.Point.RangeUnits != 300 {
		t.Errorf("restored range = %v, want 300", restored.Point.RangeUnits)
	}
}

func TestSetScaleRejectsDisallowedValue(t *testing.T) {
	state, _ := newTestState(t, [2]int{100, 100})

	state.SetScale(123)
	if got := state.Frame.ScaleValue; got != 300 {
		t.Errorf("scale = %v after disallowed value, want 300", got)
	}

	state.SetScale(50)
	if got := state.Frame.ScaleValue; got != 50 {
		t.Errorf("scale = %v, want 50", got)
	}
}

func TestModeEventEmitted(t *testing.T) {
	state := NewState(config.Default())

	var got InteractionMode = -1
	state.On(EventModeChanged, func(data interface{}) {
		if m, ok := data.(InteractionMode); ok {
			got = m
		}
	})

	state.SetMode(ModeSetCenter)
	if got != ModeSetCenter {
		t.Errorf("event mode = %v, want ModeSetCenter", got)
	}
}
