// Package report generates the multi-page detection report as an RTF
// document readable by common word processors.
package report

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// rtfWriter accumulates RTF body content. The document prologue and closing
// brace are added by Bytes.
type rtfWriter struct {
	body bytes.Buffer
}

// escape makes a string safe for RTF: control characters are escaped and
// non-ASCII runes are emitted as \u signed-16-bit escapes with an ASCII
// fallback character.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString("\\line ")
		case r < 128:
			b.WriteRune(r)
		default:
			// RTF \u takes a signed 16-bit value.
			v := int32(r)
			if v > 32767 {
				v -= 65536
			}
			fmt.Fprintf(&b, "\\u%d?", v)
		}
	}
	return b.String()
}

func (w *rtfWriter) raw(s string) {
	w.body.WriteString(s)
}

// paragraph emits one paragraph. fmtCodes are raw RTF formatting controls
// such as "\\qc\\b\\fs32".
func (w *rtfWriter) paragraph(text, fmtCodes string) {
	w.body.WriteString("{\\pard")
	w.body.WriteString(fmtCodes)
	w.body.WriteByte(' ')
	w.body.WriteString(escape(text))
	w.body.WriteString("\\par}\n")
}

// emptyLine emits a vertical spacer paragraph.
func (w *rtfWriter) emptyLine() {
	w.body.WriteString("{\\pard\\par}\n")
}

// pageBreak starts a new page.
func (w *rtfWriter) pageBreak() {
	w.body.WriteString("\\page\n")
}

// tableRow emits one bordered table row. widths are the cumulative right
// cell edges in twips; cells and widths must have equal length.
func (w *rtfWriter) tableRow(cells []string, widths []int, bold bool) {
	w.body.WriteString("{\\trowd\\trgaph108")
	for _, right := range widths {
		w.body.WriteString("\\clbrdrt\\brdrs\\clbrdrl\\brdrs\\clbrdrb\\brdrs\\clbrdrr\\brdrs")
		fmt.Fprintf(&w.body, "\\cellx%d", right)
	}
	for _, cell := range cells {
		w.body.WriteString("{\\pard\\intbl ")
		if bold {
			w.body.WriteString("\\b ")
		}
		w.body.WriteString(escape(cell))
		w.body.WriteString("\\cell}")
	}
	w.body.WriteString("\\row}\n")
}

// picture embeds a PNG image scaled to the given display width in twips,
// preserving aspect ratio.
func (w *rtfWriter) picture(img image.Image, goalWidthTwips int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode report image: %w", err)
	}

	bounds := img.Bounds()
	pw, ph := bounds.Dx(), bounds.Dy()
	goalH := goalWidthTwips * ph / pw

	fmt.Fprintf(&w.body, "{\\pard\\qc{\\pict\\pngblip\\picw%d\\pich%d\\picwgoal%d\\pichgoal%d\n",
		pw, ph, goalWidthTwips, goalH)

	// Hex payload wrapped to keep lines manageable.
	encoded := hex.EncodeToString(buf.Bytes())
	for len(encoded) > 128 {
		w.body.WriteString(encoded[:128])
		w.body.WriteByte('\n')
		encoded = encoded[128:]
	}
	w.body.WriteString(encoded)
	w.body.WriteString("}\\par}\n")
	return nil
}

// Bytes returns the finished RTF document: A4 paper, Times New Roman, the
// accumulated body.
func (w *rtfWriter) Bytes() []byte {
	var doc bytes.Buffer
	doc.WriteString("{\\rtf1\\ansi\\deff0\n")
	doc.WriteString("{\\fonttbl{\\f0 Times New Roman;}}\n")
	fmt.Fprintf(&doc, "\\paperw%d\\paperh%d\\margl%d\\margr%d\\margt%d\\margb%d\n",
		pageWidth, pageHeight, marginLeft, marginRight, marginTop, marginBottom)
	doc.Write(w.body.Bytes())
	doc.WriteString("}\n")
	return doc.Bytes()
}
