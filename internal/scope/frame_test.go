package scope

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tol
}

func mustLocate(t *testing.T, f *ReferenceFrame, x, y float64) Detection {
	t.Helper()
	d, err := f.Locate(x, y)
	if err != nil {
		t.Fatalf("Locate(%v, %v) returned error: %v", x, y, err)
	}
	return d
}

func TestNewFrameDefaults(t *testing.T) {
	f := NewFrame(1000, 800, DefaultScaleValue)

	if f.Center.X != 500 || f.Center.Y != 400 {
		t.Errorf("expected center (500, 400), got (%v, %v)", f.Center.X, f.Center.Y)
	}
	if f.CalibrationEdge != nil {
		t.Errorf("new frame should have no calibration edge")
	}
	if f.ScaleValue != 300 {
		t.Errorf("expected scale value 300, got %v", f.ScaleValue)
	}
}

func TestLocateAtCenter(t *testing.T) {
	f := NewFrame(1000, 1000, 300)

	d := mustLocate(t, f, 500, 500)
	if d.RangeUnits != 0 {
		t.Errorf("range at center should be 0, got %v", d.RangeUnits)
	}
	// Azimuth is undefined at the origin; the fixed convention is 0.
	if d.AzimuthDegrees != 0 {
		t.Errorf("azimuth at center should be 0, got %v", d.AzimuthDegrees)
	}
}

func TestLocateCardinalDirections(t *testing.T) {
	f := NewFrame(1000, 1000, 300)

	tests := []struct {
		name    string
		x, y    float64
		azimuth float64
	}{
		{"up", 500, 100, 0},
		{"right", 900, 500, 90},
		{"down", 500, 900, 180},
		{"left", 100, 500, 270},
		{"up-right diagonal", 600, 400, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustLocate(t, f, tt.x, tt.y)
			if !almostEqual(d.AzimuthDegrees, tt.azimuth) {
				t.Errorf("expected azimuth %v, got %v", tt.azimuth, d.AzimuthDegrees)
			}
		})
	}
}

func TestAzimuthAlwaysInRange(t *testing.T) {
	f := NewFrame(640, 480, 100)
	f.MoveCenter(37.5, -12)

	for x := 0.0; x < 640; x += 53 {
		for y := 0.0; y < 480; y += 41 {
			d := mustLocate(t, f, x, y)
			if d.AzimuthDegrees < 0 || d.AzimuthDegrees >= 360 {
				t.Fatalf("azimuth %v out of [0, 360) at (%v, %v)", d.AzimuthDegrees, x, y)
			}
		}
	}
}

func TestScenarioDefaultCalibration(t *testing.T) {
	// 1000x1000, no edge, scale 300, default center (500, 500). Click at the
	// top of the sweep: 500 px from center against a 500 px bottom-edge
	// calibration distance.
	f := NewFrame(1000, 1000, 300)

	d := mustLocate(t, f, 500, 0)
	if !almostEqual(d.RangeUnits, 300) {
		t.Errorf("expected range 300, got %v", d.RangeUnits)
	}
	if !almostEqual(d.AzimuthDegrees, 0) {
		t.Errorf("expected azimuth 0, got %v", d.AzimuthDegrees)
	}
}

func TestScenarioClampedEdgeClick(t *testing.T) {
	f := NewFrame(1000, 1000, 300)

	x, y := ClampToImage(1000, 500, 1000, 1000)
	if x != 999 || y != 500 {
		t.Fatalf("expected clamp to (999, 500), got (%v, %v)", x, y)
	}

	d := mustLocate(t, f, x, y)
	if !almostEqual(d.AzimuthDegrees, 90) {
		t.Errorf("expected azimuth 90, got %v", d.AzimuthDegrees)
	}
	if !almostEqual(d.RangeUnits, 499.0/500.0*300) {
		t.Errorf("expected range 299.4, got %v", d.RangeUnits)
	}
}

func TestScenarioCalibrationEdge(t *testing.T) {
	// Edge 100 px right of center with scale 50: a click 100 px above center
	// reads exactly one scale unit of range.
	f := NewFrame(1000, 1000, 50)
	f.SetCalibrationEdge(600, 500)

	if !almostEqual(f.CalibrationDistance, 100) {
		t.Fatalf("expected calibration distance 100, got %v", f.CalibrationDistance)
	}

	d := mustLocate(t, f, 500, 400)
	if !almostEqual(d.RangeUnits, 50) {
		t.Errorf("expected range 50, got %v", d.RangeUnits)
	}
}

func TestMoveCenterZeroIsIdempotent(t *testing.T) {
	f := NewFrame(800, 600, 200)
	before := f.Center
	f.MoveCenter(0, 0)
	if f.Center != before {
		t.Errorf("MoveCenter(0, 0) changed center from %v to %v", before, f.Center)
	}
}

func TestMoveCenterIsNotClamped(t *testing.T) {
	f := NewFrame(100, 100, 300)
	f.MoveCenter(-500, 0.5)
	if f.Center.X != -450 || f.Center.Y != 50.5 {
		t.Errorf("expected permissive center (-450, 50.5), got (%v, %v)", f.Center.X, f.Center.Y)
	}
}

func TestRangeMonotonicAlongBearing(t *testing.T) {
	f := NewFrame(1000, 1000, 300)
	f.SetCalibrationEdge(500, 100)

	prev := -1.0
	for dist := 10.0; dist <= 400; dist += 10 {
		d := mustLocate(t, f, 500+dist/math.Sqrt2, 500-dist/math.Sqrt2)
		if d.RangeUnits <= prev {
			t.Fatalf("range not strictly increasing at distance %v: %v <= %v", dist, d.RangeUnits, prev)
		}
		prev = d.RangeUnits
	}
}

func TestLocateDegenerateCalibration(t *testing.T) {
	t.Run("center on bottom edge", func(t *testing.T) {
		f := NewFrame(100, 100, 300)
		f.MoveCenter(0, 50) // center.Y == height
		_, err := f.Locate(10, 10)
		if !errors.Is(err, ErrDegenerateCalibration) {
			t.Errorf("expected ErrDegenerateCalibration, got %v", err)
		}
	})

	t.Run("edge placed on center", func(t *testing.T) {
		f := NewFrame(100, 100, 300)
		f.SetCalibrationEdge(50, 50)
		_, err := f.Locate(10, 10)
		if !errors.Is(err, ErrDegenerateCalibration) {
			t.Errorf("expected ErrDegenerateCalibration, got %v", err)
		}
	})
}

func TestClearCalibrationEdge(t *testing.T) {
	f := NewFrame(1000, 1000, 300)
	f.SetCalibrationEdge(600, 500)
	f.ClearCalibrationEdge()

	if f.CalibrationEdge != nil {
		t.Fatalf("edge should be cleared")
	}

	// Back to the 500 px bottom-edge default.
	d := mustLocate(t, f, 500, 0)
	if !almostEqual(d.RangeUnits, 300) {
		t.Errorf("expected range 300 after clearing edge, got %v", d.RangeUnits)
	}
}

func TestClampToImage(t *testing.T) {
	tests := []struct {
		name           string
		x, y           float64
		wantX, wantY   float64
	}{
		{"inside", 10, 20, 10, 20},
		{"negative", -5, -1, 0, 0},
		{"past right", 640, 100, 639, 100},
		{"past bottom", 100, 480, 100, 479},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ClampToImage(tt.x, tt.y, 640, 480)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("got (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}
