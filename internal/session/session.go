// Package session provides session file handling and persistence.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"radar-scope/internal/scope"
)

// Metadata holds the report header fields filled in by the operator.
type Metadata struct {
	ReportNumber string `json:"report_number,omitempty"`
	Station      string `json:"station,omitempty"`
	Operator     string `json:"operator,omitempty"`
	RadarType    string `json:"radar_type,omitempty"`
	ObservedDate string `json:"observed_date,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// DescriptionLines returns the metadata lines burned into annotated images.
func (m Metadata) DescriptionLines() []string {
	var lines []string
	if m.RadarType != "" {
		lines = append(lines, m.RadarType)
	}
	if m.Station != "" {
		lines = append(lines, m.Station)
	}
	if m.ObservedDate != "" {
		lines = append(lines, m.ObservedDate)
	}
	return lines
}

// ImageAnnotation records the detection and the frame it was measured
// against for one image of the batch.
type ImageAnnotation struct {
	// ImagePath is stored relative to the session file.
	ImagePath string               `json:"image"`
	Detection scope.Detection      `json:"detection"`
	Frame     scope.ReferenceFrame `json:"frame"`
}

// File represents an annotation session (.scopesession).
type File struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// FolderPath is the batch folder, relative to the session file.
	FolderPath string `json:"folder,omitempty"`

	// Grid is the one grid-settings instance shared across the batch,
	// re-applied to each image as it loads.
	Grid scope.GridSettings `json:"grid"`

	Metadata    Metadata          `json:"metadata"`
	Annotations []ImageAnnotation `json:"annotations,omitempty"`
}

// New creates a session with default settings.
func New(scaleValue float64) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Created:  now,
		Modified: now,
		Grid:     scope.GridSettings{ScaleValue: scaleValue},
	}
}

// Load loads a session from a .scopesession file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sess File
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// Save saves the session to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetFolder stores the batch folder relative to the session file.
func (f *File) SetFolder(sessionPath, dir string) {
	rel, err := filepath.Rel(filepath.Dir(sessionPath), dir)
	if err != nil {
		f.FolderPath = dir
	} else {
		f.FolderPath = rel
	}
	f.Modified = time.Now()
}

// GetFolderPath returns the absolute batch folder path.
func (f *File) GetFolderPath(sessionPath string) string {
	if f.FolderPath == "" {
		return ""
	}
	if filepath.IsAbs(f.FolderPath) {
		return f.FolderPath
	}
	return filepath.Join(filepath.Dir(sessionPath), f.FolderPath)
}

// Record stores or replaces the annotation for an image. Each image carries
// at most one detection; a new click replaces the old one.
func (f *File) Record(imagePath string, det scope.Detection, frame scope.ReferenceFrame) {
	for i := range f.Annotations {
		if f.Annotations[i].ImagePath == imagePath {
			f.Annotations[i].Detection = det
			f.Annotations[i].Frame = frame
			f.Modified = time.Now()
			return
		}
	}
	f.Annotations = append(f.Annotations, ImageAnnotation{
		ImagePath: imagePath,
		Detection: det,
		Frame:     frame,
	})
	f.Modified = time.Now()
}

// AnnotationFor returns the recorded annotation for an image, or nil.
func (f *File) AnnotationFor(imagePath string) *ImageAnnotation {
	for i := range f.Annotations {
		if f.Annotations[i].ImagePath == imagePath {
			return &f.Annotations[i]
		}
	}
	return nil
}

// Detections returns all recorded detections in batch order.
func (f *File) Detections() []scope.Detection {
	out := make([]scope.Detection, len(f.Annotations))
	for i, a := range f.Annotations {
		out[i] = a.Detection
	}
	return out
}
