// Package detect locates the circular scope face on a radar photograph so
// the operator gets a center suggestion instead of placing it by eye.
package detect

import (
	"fmt"
	"image"
	"math"

	"radar-scope/pkg/geometry"

	"gocv.io/x/gocv"
)

// ScopeFace is a detected circular indicator face.
type ScopeFace struct {
	Center geometry.Point2D
	Radius float64
}

// FindScopeFace runs a Hough circle transform over the photograph and
// returns the circle closest to the image center. Radius bounds are given as
// fractions of the smaller image dimension. Returns nil when no circle is
// found.
func FindScopeFace(img image.Image, minRadiusFrac, maxRadiusFrac float64) (*ScopeFace, error) {
	mat, err := imageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 9, Y: 9}, 2, 2, gocv.BorderDefault)

	w, h := mat.Cols(), mat.Rows()
	minDim := w
	if h < minDim {
		minDim = h
	}
	minR := int(minRadiusFrac * float64(minDim))
	maxR := int(maxRadiusFrac * float64(minDim))

	circles := gocv.NewMat()
	defer circles.Close()

	// minDist set to the radius bound: a scope photograph holds one face,
	// overlapping candidates are duplicates of it.
	gocv.HoughCirclesWithParams(blurred, &circles, gocv.HoughGradient, 1.5,
		float64(minR), 100, 50, minR, maxR)

	if circles.Empty() || circles.Cols() == 0 {
		return nil, nil
	}

	imageCenter := geometry.Point2D{X: float64(w) / 2, Y: float64(h) / 2}

	var best *ScopeFace
	bestDist := math.Inf(1)
	for i := 0; i < circles.Cols(); i++ {
		cx := float64(circles.GetFloatAt(0, i*3))
		cy := float64(circles.GetFloatAt(0, i*3+1))
		r := float64(circles.GetFloatAt(0, i*3+2))

		center := geometry.Point2D{X: cx, Y: cy}
		if d := center.Distance(imageCenter); d < bestDist {
			bestDist = d
			best = &ScopeFace{Center: center, Radius: r}
		}
	}

	return best, nil
}

// imageToMat converts a Go image.Image to a gocv.Mat in BGR format.
func imageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.Mat{}, fmt.Errorf("empty image")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat, nil
}
