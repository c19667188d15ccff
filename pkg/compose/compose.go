// Package compose provides the pure image transforms applied to campaign
// assets: letterboxed resizing to a target aspect ratio, logo placement,
// and the campaign message text band.
//
// All functions take and return encoded PNG bytes and never mutate their
// inputs. Decoding accepts any format registered with image; output is
// always PNG.
package compose

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/adforgehq/adforge/pkg/errors"
	"github.com/adforgehq/adforge/pkg/ratio"
)

// Corner selects the logo anchor.
type Corner int

const (
	TopRight Corner = iota // default
	TopLeft
	BottomRight
	BottomLeft
)

// Position selects the vertical placement of the text band.
type Position int

const (
	Bottom Position = iota // default
	Top
	Center
)

const (
	logoPadding = 20
	bandPadding = 40
)

// ResizeToRatio scales img to fill the target frame in one dimension,
// preserving its aspect ratio, and centers it on a white canvas of exactly
// r.Width x r.Height. Sources smaller than the frame are scaled up.
func ResizeToRatio(img []byte, r ratio.AspectRatio) ([]byte, error) {
	src, err := decode(img)
	if err != nil {
		return nil, err
	}

	// imaging.Fit never enlarges, so compute the scale explicitly.
	sb := src.Bounds()
	scale := minf(float64(r.Width)/float64(sb.Dx()), float64(r.Height)/float64(sb.Dy()))
	scaled := imaging.Resize(src, int(float64(sb.Dx())*scale), int(float64(sb.Dy())*scale), imaging.Lanczos)

	canvas := imaging.New(r.Width, r.Height, image.White)
	canvas = imaging.PasteCenter(canvas, scaled)

	return encode(canvas)
}

// OverlayLogo places logo in the given corner of img, scaled to fit within
// one fifth of each canvas dimension with a fixed edge padding. The logo's
// alpha channel is preserved.
func OverlayLogo(img, logo []byte, corner Corner) ([]byte, error) {
	base, err := decode(img)
	if err != nil {
		return nil, err
	}
	mark, err := decode(logo)
	if err != nil {
		return nil, err
	}

	bounds := base.Bounds()
	maxW := bounds.Dx() / 5
	maxH := bounds.Dy() / 5

	// Scale up as well as down so small logos remain legible on large
	// canvases. imaging.Fit only shrinks, so resize explicitly.
	mb := mark.Bounds()
	scale := minf(float64(maxW)/float64(mb.Dx()), float64(maxH)/float64(mb.Dy()))
	scaled := imaging.Resize(mark, int(float64(mb.Dx())*scale), int(float64(mb.Dy())*scale), imaging.Lanczos)

	sb := scaled.Bounds()
	var pos image.Point
	switch corner {
	case TopLeft:
		pos = image.Pt(logoPadding, logoPadding)
	case BottomRight:
		pos = image.Pt(bounds.Dx()-sb.Dx()-logoPadding, bounds.Dy()-sb.Dy()-logoPadding)
	case BottomLeft:
		pos = image.Pt(logoPadding, bounds.Dy()-sb.Dy()-logoPadding)
	default:
		pos = image.Pt(bounds.Dx()-sb.Dx()-logoPadding, logoPadding)
	}

	out := imaging.Overlay(base, scaled, pos, 1.0)
	return encode(out)
}

// OverlayText draws text centered in a full-width translucent black band.
// Font size scales with the canvas width, with a floor of 20pt. An empty
// text still produces the band.
func OverlayText(img []byte, text string, pos Position) ([]byte, error) {
	base, err := decode(img)
	if err != nil {
		return nil, err
	}

	bounds := base.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	fontSize := float64(w) / 25
	if fontSize < 20 {
		fontSize = 20
	}

	ft, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing embedded font")
	}
	face := truetype.NewFace(ft, &truetype.Options{Size: fontSize})

	dc := gg.NewContextForImage(base)
	dc.SetFontFace(face)

	_, textH := dc.MeasureString(text)
	bandH := textH + bandPadding

	var bandY float64
	switch pos {
	case Top:
		bandY = bandPadding
	case Center:
		bandY = (float64(h) - bandH) / 2
	default:
		bandY = float64(h) - bandH - bandPadding
	}

	dc.SetRGBA(0, 0, 0, 0.7)
	dc.DrawRectangle(0, bandY, float64(w), bandH)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, float64(w)/2, bandY+bandH/2, 0.5, 0.35)

	return encode(dc.Image())
}

func decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decoding image")
	}
	return img, nil
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encoding image")
	}
	return buf.Bytes(), nil
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
