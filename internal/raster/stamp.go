package raster

import (
	"fmt"
	"image"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const stampMargin = 16

// Stamp marks a debug frame: a QR code carrying payload in the top-right
// corner and a plain label in the bottom-left.
func Stamp(dst *image.RGBA, label, payload string) error {
	b := dst.Bounds()
	if payload != "" {
		q, err := qrcode.New(payload, qrcode.Low)
		if err != nil {
			return fmt.Errorf("qr stamp: %w", err)
		}
		size := min(b.Dx(), b.Dy()) / 8
		img := q.Image(size)
		at := image.Pt(b.Max.X-stampMargin-size, b.Min.Y+stampMargin)
		draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))}, img, img.Bounds().Min, draw.Src)
	}
	if label != "" {
		face := basicfont.Face7x13
		w := font.MeasureString(face, label).Ceil()
		box := image.Rect(b.Min.X+stampMargin-4, b.Max.Y-stampMargin-face.Height-4, b.Min.X+stampMargin+w+4, b.Max.Y-stampMargin+4)
		draw.Draw(dst, box, image.NewUniform(color.NRGBA{A: 0xb0}), image.Point{}, draw.Over)
		d := font.Drawer{
			Dst:  dst,
			Src:  image.White,
			Face: face,
			Dot:  fixed.P(b.Min.X+stampMargin, b.Max.Y-stampMargin-face.Descent),
		}
		d.DrawString(label)
	}
	return nil
}
