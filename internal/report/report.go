package report

import (
	"fmt"
	"image"
	"os"

	"radar-scope/internal/scope"
	"radar-scope/internal/session"
)

// Page geometry in twips (A4 paper).
const (
	twipsPerMM = 56.69

	pageWidth  = 11906 // 210 mm
	pageHeight = 16838 // 297 mm
)

// mm converts millimetres to twips.
func mm(v float64) int {
	return int(v * twipsPerMM)
}

var (
	marginLeft   = mm(25)
	marginRight  = mm(15)
	marginTop    = mm(20)
	marginBottom = mm(20)

	contentWidth = pageWidth - marginLeft - marginRight

	// Column layouts for the report tables, as cumulative right cell edges.
	descriptionCols = []int{mm(50), contentWidth}
	detectionCols   = []int{mm(65), mm(120), contentWidth}
)

// AnnotatedImage pairs an annotation record with its rendered image for
// embedding.
type AnnotatedImage struct {
	Name       string
	Image      image.Image
	Annotation session.ImageAnnotation
}

// Build lays out the full report: title page, description table, then one
// section per annotated image, and a summary block.
func Build(sess *session.File, images []AnnotatedImage) ([]byte, error) {
	w := &rtfWriter{}

	writeTitlePage(w, sess.Metadata, len(images))
	w.pageBreak()
	writeDescriptionTable(w, sess.Metadata)

	for _, img := range images {
		w.pageBreak()
		if err := writeImageSection(w, img); err != nil {
			return nil, err
		}
	}

	if len(images) > 0 {
		w.pageBreak()
		writeSummary(w, sess.Detections())
	}

	return w.Bytes(), nil
}

// Export builds the report and writes it to path.
func Export(path string, sess *session.File, images []AnnotatedImage) error {
	data, err := Build(sess, images)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writeTitlePage(w *rtfWriter, m session.Metadata, imageCount int) {
	for i := 0; i < 8; i++ {
		w.emptyLine()
	}
	w.paragraph("RADAR SCOPE OBSERVATION REPORT", "\\qc\\b\\fs40")
	w.emptyLine()
	if m.ReportNumber != "" {
		w.paragraph("No. "+m.ReportNumber, "\\qc\\fs32")
	}
	w.emptyLine()
	w.emptyLine()
	if m.Station != "" {
		w.paragraph(m.Station, "\\qc\\fs28")
	}
	if m.ObservedDate != "" {
		w.paragraph(m.ObservedDate, "\\qc\\fs28")
	}
	w.emptyLine()
	w.paragraph(fmt.Sprintf("Annotated photographs: %d", imageCount), "\\qc\\fs24")
}

func writeDescriptionTable(w *rtfWriter, m session.Metadata) {
	w.paragraph("Observation description", "\\b\\fs28")
	w.emptyLine()

	rows := []struct {
		field, value string
	}{
		{"Report number", m.ReportNumber},
		{"Station", m.Station},
		{"Radar type", m.RadarType},
		{"Operator", m.Operator},
		{"Date of observation", m.ObservedDate},
		{"Notes", m.Notes},
	}

	w.tableRow([]string{"Field", "Value"}, descriptionCols, true)
	for _, r := range rows {
		w.tableRow([]string{r.field, r.value}, descriptionCols, false)
	}
}

func writeImageSection(w *rtfWriter, img AnnotatedImage) error {
	w.paragraph("Photograph: "+img.Name, "\\b\\fs28")
	w.emptyLine()

	ann := img.Annotation
	frame := ann.Frame

	calibration := "bottom edge"
	if frame.CalibrationEdge != nil {
		calibration = fmt.Sprintf("edge at (%.0f, %.0f)", frame.CalibrationEdge.X, frame.CalibrationEdge.Y)
	}
	calibDistance := frame.CalibrationDistance
	if frame.CalibrationEdge == nil {
		calibDistance = float64(frame.Height) - frame.Center.Y
	}

	w.tableRow([]string{"Quantity", "Value", "Units"}, detectionCols, true)
	w.tableRow([]string{"Azimuth", fmt.Sprintf("%.1f", ann.Detection.AzimuthDegrees), "deg"}, detectionCols, false)
	w.tableRow([]string{"Range", fmt.Sprintf("%.1f", ann.Detection.RangeUnits), "km"}, detectionCols, false)
	w.tableRow([]string{"Scale value", fmt.Sprintf("%.0f", frame.ScaleValue), "km"}, detectionCols, false)
	w.tableRow([]string{"Scope center", fmt.Sprintf("(%.1f, %.1f)", frame.Center.X, frame.Center.Y), "px"}, detectionCols, false)
	w.tableRow([]string{"Calibration", calibration, ""}, detectionCols, false)
	w.tableRow([]string{"Calibration distance", fmt.Sprintf("%.1f", calibDistance), "px"}, detectionCols, false)

	if img.Image != nil {
		w.emptyLine()
		if err := w.picture(img.Image, contentWidth); err != nil {
			return fmt.Errorf("photograph %s: %w", img.Name, err)
		}
	}
	return nil
}

func writeSummary(w *rtfWriter, detections []scope.Detection) {
	s := scope.Summarize(detections)

	w.paragraph("Detection summary", "\\b\\fs28")
	w.emptyLine()

	w.tableRow([]string{"Quantity", "Value", "Units"}, detectionCols, true)
	w.tableRow([]string{"Detections", fmt.Sprintf("%d", s.Count), ""}, detectionCols, false)
	w.tableRow([]string{"Mean azimuth", fmt.Sprintf("%.1f", s.MeanAzimuth), "deg"}, detectionCols, false)
	w.tableRow([]string{"Mean range", fmt.Sprintf("%.1f", s.MeanRange), "km"}, detectionCols, false)
	w.tableRow([]string{"Min range", fmt.Sprintf("%.1f", s.MinRange), "km"}, detectionCols, false)
	w.tableRow([]string{"Max range", fmt.Sprintf("%.1f", s.MaxRange), "km"}, detectionCols, false)
	w.tableRow([]string{"Range std dev", fmt.Sprintf("%.1f", s.RangeStdDev), "km"}, detectionCols, false)
}
