package genimage

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/adforgehq/adforge/pkg/errors"
)

// Placeholder renders a soft diagonal gradient at exactly w x h and
// returns it PNG-encoded. Used when no source image exists and the
// backend is unavailable, so a run always produces reviewable output.
func Placeholder(w, h int) ([]byte, error) {
	dc := gg.NewContext(w, h)

	grad := gg.NewLinearGradient(0, 0, float64(w), float64(h))
	grad.AddColorStop(0, color.RGBA{R: 240, G: 240, B: 245, A: 255})
	grad.AddColorStop(1, color.RGBA{R: 200, G: 210, B: 220, A: 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encoding placeholder")
	}
	return buf.Bytes(), nil
}
