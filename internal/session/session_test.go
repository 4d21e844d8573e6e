package session

import (
	"path/filepath"
	"testing"

	"radar-scope/internal/scope"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.scopesession")

	sess := New(300)
	sess.Metadata = Metadata{
		ReportNumber: "R-042",
		Station:      "NORTH SITE",
		RadarType:    "P-35",
	}
	frame := scope.NewFrame(1000, 1000, 300)
	frame.SetCalibrationEdge(700, 500)
	sess.Grid = frame.ExportGrid()

	det, err := frame.Locate(500, 200)
	if err != nil {
		t.Fatal(err)
	}
	sess.Record("scan_001.png", det, *frame)

	if err := sess.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Metadata.ReportNumber != "R-042" {
		t.Errorf("metadata not preserved: %+v", loaded.Metadata)
	}
	if loaded.Grid.CalibrationDistance != 200 {
		t.Errorf("grid calibration distance not preserved: %v", loaded.Grid.CalibrationDistance)
	}

	ann := loaded.AnnotationFor("scan_001.png")
	if ann == nil {
		t.Fatalf("annotation missing after round trip")
	}
	if ann.Detection.AzimuthDegrees != det.AzimuthDegrees {
		t.Errorf("detection azimuth changed: got %v, want %v",
			ann.Detection.AzimuthDegrees, det.AzimuthDegrees)
	}
	if ann.Frame.CalibrationEdge == nil {
		t.Errorf("frame snapshot lost its calibration edge")
	}
}

func TestRecordReplacesExisting(t *testing.T) {
	sess := New(300)
	frame := scope.NewFrame(100, 100, 300)

	first, _ := frame.Locate(50, 10)
	second, _ := frame.Locate(90, 50)

	sess.Record("a.png", first, *frame)
	sess.Record("a.png", second, *frame)

	if len(sess.Annotations) != 1 {
		t.Fatalf("expected one annotation per image, got %d", len(sess.Annotations))
	}
	if sess.Annotations[0].Detection.AzimuthDegrees != second.AzimuthDegrees {
		t.Errorf("second click should replace the first")
	}
}

func TestFolderPathRelative(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, "work", "batch.scopesession")
	imageDir := filepath.Join(dir, "scans")

	sess := New(300)
	sess.SetFolder(sessionPath, imageDir)

	if filepath.IsAbs(sess.FolderPath) {
		t.Errorf("folder should be stored relative, got %q", sess.FolderPath)
	}
	if got := sess.GetFolderPath(sessionPath); got != imageDir {
		t.Errorf("GetFolderPath = %q, want %q", got, imageDir)
	}
}

func TestTemplates(t *testing.T) {
	dir := t.TempDir()

	m := Metadata{Station: "EAST SITE", RadarType: "P-14", Operator: "IVANOV"}
	if err := SaveTemplate(dir, "east-p14", m); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}

	names, err := ListTemplates(dir)
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(names) != 1 || names[0] != "east-p14" {
		t.Fatalf("unexpected template list: %v", names)
	}

	loaded, err := LoadTemplate(dir, "east-p14")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if loaded != m {
		t.Errorf("template round trip mismatch: got %+v, want %+v", loaded, m)
	}
}

func TestListTemplatesMissingDir(t *testing.T) {
	names, err := ListTemplates(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if names != nil {
		t.Errorf("expected no templates, got %v", names)
	}
}

func TestDescriptionLines(t *testing.T) {
	m := Metadata{RadarType: "P-35", ObservedDate: "1984-06-12"}
	lines := m.DescriptionLines()
	if len(lines) != 2 || lines[0] != "P-35" || lines[1] != "1984-06-12" {
		t.Errorf("unexpected description lines: %v", lines)
	}
}
