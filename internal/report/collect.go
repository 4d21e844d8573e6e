package report

import (
	"log"
	"path/filepath"

	scopeimage "radar-scope/internal/image"
	"radar-scope/internal/session"
)

// RenderOptions carries the annotation styling shared by every rendered image.
type RenderOptions struct {
	RingFractions []float64
	MarkerSize    int
	LabelScale    int
	Description   []string
}

// CollectImages loads each annotated photograph from the batch folder and
// renders its annotation for embedding. Images missing from disk are skipped
// with a log message so a partially moved batch still produces a report.
func CollectImages(sess *session.File, folder string, opts RenderOptions) ([]AnnotatedImage, error) {
	var out []AnnotatedImage

	for _, ann := range sess.Annotations {
		path := filepath.Join(folder, ann.ImagePath)
		layer, err := scopeimage.Load(path)
		if err != nil {
			log.Printf("skipping %s: %v", ann.ImagePath, err)
			continue
		}

		frame := ann.Frame
		det := ann.Detection
		rendered := scopeimage.Render(layer.Image, scopeimage.Annotation{
			Frame:         &frame,
			Detection:     &det,
			RingFractions: opts.RingFractions,
			MarkerSize:    opts.MarkerSize,
			LabelScale:    opts.LabelScale,
			Description:   opts.Description,
		})

		out = append(out, AnnotatedImage{
			Name:       ann.ImagePath,
			Image:      rendered,
			Annotation: ann,
		})
	}

	return out, nil
}
