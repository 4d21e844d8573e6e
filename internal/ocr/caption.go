// Package ocr reads the burned-in caption strip of a scope photograph
// (date/time and site code) to prefill report metadata.
package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// CaptionChars is the character set for caption OCR. Captions carry dates,
// times, and short uppercase site codes; restricting the set keeps Tesseract
// from inventing lowercase look-alikes.
const CaptionChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ:./- "

// Engine wraps a Tesseract client configured for caption strips.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a caption OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Captions are codes, not prose: dictionary correction does more harm
	// than good.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ReadCaption extracts text from the bottom caption strip of a photograph.
// stripFraction is the portion of the image height scanned, measured from
// the bottom edge.
func (e *Engine) ReadCaption(img image.Image, stripFraction float64) (string, error) {
	mat, err := imageToMat(img)
	if err != nil {
		return "", err
	}
	defer mat.Close()

	h, w := mat.Rows(), mat.Cols()
	stripH := int(float64(h) * stripFraction)
	if stripH < 8 {
		return "", fmt.Errorf("caption strip too small: %d rows", stripH)
	}

	strip := mat.Region(image.Rect(0, h-stripH, w, h))
	defer strip.Close()

	processed := preprocessCaption(strip)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("failed to encode strip: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetWhitelist(CaptionChars); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	text = strings.ToUpper(strings.Join(strings.Fields(text), " "))
	return text, nil
}

// preprocessCaption binarizes the strip for OCR. Scope captions are usually
// light text burned onto the dark phosphor background, which gets inverted
// to the dark-on-light form Tesseract expects.
func preprocessCaption(strip gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(strip, &gray, gocv.ColorBGRToGray)

	binary := gocv.NewMat()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	gray.Close()

	whiteCount := gocv.CountNonZero(binary)
	totalPixels := binary.Rows() * binary.Cols()
	if float64(whiteCount)/float64(totalPixels) < 0.5 {
		gocv.BitwiseNot(binary, &binary)
	}

	result := gocv.NewMat()
	gocv.CvtColor(binary, &result, gocv.ColorGrayToBGR)
	binary.Close()

	return result
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
