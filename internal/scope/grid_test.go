package scope

import (
	"testing"

	"radar-scope/pkg/geometry"
)

func TestGridRoundTripSameImage(t *testing.T) {
	f := NewFrame(800, 600, 200)
	f.MoveCenter(50, -20)
	f.SetCalibrationEdge(450, 120)

	restored, dropped := ImportGrid(f.ExportGrid(), 800, 600)
	if dropped {
		t.Fatalf("edge within bounds should not be dropped")
	}
	if restored.Center != f.Center {
		t.Errorf("center not restored: got %v, want %v", restored.Center, f.Center)
	}
	if restored.CalibrationEdge == nil || *restored.CalibrationEdge != *f.CalibrationEdge {
		t.Errorf("edge not restored: got %v, want %v", restored.CalibrationEdge, f.CalibrationEdge)
	}
	if restored.CalibrationDistance != f.CalibrationDistance {
		t.Errorf("calibration distance changed: got %v, want %v",
			restored.CalibrationDistance, f.CalibrationDistance)
	}
	if restored.ScaleValue != f.ScaleValue {
		t.Errorf("scale value changed: got %v, want %v", restored.ScaleValue, f.ScaleValue)
	}
}

func TestGridCenterTransferAcrossSizes(t *testing.T) {
	// Center (450, 280) on 800x600 is offset (50, -20) from the image center;
	// the same offset applied to 1000x700 lands at (550, 330).
	f := NewFrame(800, 600, 300)
	f.Center = geometry.Point2D{X: 450, Y: 280}

	restored, _ := ImportGrid(f.ExportGrid(), 1000, 700)
	if restored.Center.X != 550 || restored.Center.Y != 330 {
		t.Errorf("expected transplanted center (550, 330), got (%v, %v)",
			restored.Center.X, restored.Center.Y)
	}
}

func TestGridCalibrationDistancePreservedVerbatim(t *testing.T) {
	f := NewFrame(800, 600, 100)
	f.SetCalibrationEdge(500, 300) // 100 px right of (400, 300)

	restored, dropped := ImportGrid(f.ExportGrid(), 1200, 900)
	if dropped {
		t.Fatalf("edge should fit on the larger image")
	}
	// The edge moved with the image center but the captured distance did not
	// get recomputed from the new geometry.
	if restored.CalibrationDistance != 100 {
		t.Errorf("expected preserved distance 100, got %v", restored.CalibrationDistance)
	}
}

func TestGridEdgeDroppedWhenOutOfBounds(t *testing.T) {
	f := NewFrame(1000, 1000, 300)
	f.SetCalibrationEdge(950, 500) // offset (450, 0) from center

	restored, dropped := ImportGrid(f.ExportGrid(), 400, 400)
	if !dropped {
		t.Fatalf("expected transplanted edge to be reported dropped")
	}
	if restored.CalibrationEdge != nil {
		t.Errorf("out-of-bounds edge should not be set, got %v", restored.CalibrationEdge)
	}
	if restored.CalibrationDistance != 0 {
		t.Errorf("calibration distance should stay unset, got %v", restored.CalibrationDistance)
	}

	// Frame still measures against the bottom-edge default.
	d, err := restored.Locate(200, 0)
	if err != nil {
		t.Fatalf("Locate after dropped edge: %v", err)
	}
	if d.RangeUnits != 300 {
		t.Errorf("expected bottom-edge default range 300, got %v", d.RangeUnits)
	}
}

func TestGridWithoutEdge(t *testing.T) {
	f := NewFrame(640, 480, 50)
	saved := f.ExportGrid()

	if saved.CalibrationEdgeOffset != nil {
		t.Fatalf("no edge was set, offset should be nil")
	}

	restored, dropped := ImportGrid(saved, 320, 240)
	if dropped {
		t.Errorf("nothing to drop without a saved edge")
	}
	if restored.CalibrationEdge != nil {
		t.Errorf("restored frame should have no edge")
	}
}
