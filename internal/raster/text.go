package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/promoreel/internal/scene"
)

// text paints a single line centered vertically on the layer origin, with
// the origin at the left edge of the run. Rotation in the image plane is
// not applied.
func (r *Renderer) text(dst *image.RGBA, l scene.Layer) error {
	size := l.Style.FontSize * scaleOf(l.Transform)
	if l.Text == "" || size < 1 {
		return nil
	}
	face, err := r.face(l.Style.FontWeight >= 600, size)
	if err != nil {
		return err
	}

	mask := glyphMask(face, l.Text)
	if mask == nil {
		return nil
	}
	if l.Style.Color == "" && l.Style.Stroke != "" {
		mask = outline(mask, max(1, int(size/24)))
	}

	sx, sy := foreshorten(l.Transform)
	s := scaleOf(l.Transform)
	if fx, fy := sx/s, sy/s; fx < 0.999 || fy < 0.999 {
		b := mask.Bounds()
		w, h := max(1, int(float64(b.Dx())*fx)), max(1, int(float64(b.Dy())*fy))
		squeezed := image.NewAlpha(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(squeezed, squeezed.Bounds(), mask, b, draw.Src, nil)
		mask = squeezed
	}
	scaleAlpha(mask, l.Opacity)

	x, y := r.anchor(l.Transform)
	m := face.Metrics()
	top := y - float64(m.Ascent+m.Descent)/64/2
	at := image.Pt(int(math.Round(x)), int(math.Round(top)))
	dr := mask.Bounds().Add(at)

	var src image.Image
	switch {
	case len(l.Colors) > 1:
		src = &horizontalGradient{stops: parseAll(l.Colors), x0: dr.Min.X, width: dr.Dx()}
	case l.Style.Color != "":
		src = image.NewUniform(hex(l.Style.Color))
	default:
		src = image.NewUniform(hex(l.Style.Stroke))
	}
	draw.DrawMask(dst, dr, src, dr.Min, mask, mask.Bounds().Min, draw.Over)
	return nil
}

// glyphMask rasterizes s into an alpha mask whose top edge is the face
// ascent.
func glyphMask(face font.Face, s string) *image.Alpha {
	m := face.Metrics()
	_, advance := font.BoundString(face, s)
	w := advance.Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return nil
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.Point26_6{Y: m.Ascent}}
	d.DrawString(s)
	return mask
}

// outline returns the ring of width px around the glyphs.
func outline(mask *image.Alpha, px int) *image.Alpha {
	b := mask.Bounds()
	grown := image.NewAlpha(b.Inset(-px))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := mask.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			for dy := -px; dy <= px; dy++ {
				for dx := -px; dx <= px; dx++ {
					if grown.AlphaAt(x+dx, y+dy).A < a {
						grown.SetAlpha(x+dx, y+dy, color.Alpha{A: a})
					}
				}
			}
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g, a := grown.AlphaAt(x, y).A, mask.AlphaAt(x, y).A
			if a >= g {
				g = 0
			} else {
				g -= a
			}
			grown.SetAlpha(x, y, color.Alpha{A: g})
		}
	}
	return grown
}

func scaleAlpha(m *image.Alpha, opacity float64) {
	if opacity >= 1 {
		return
	}
	for i, a := range m.Pix {
		m.Pix[i] = uint8(float64(a)*opacity + 0.5)
	}
}

func parseAll(cs []string) []color.NRGBA {
	out := make([]color.NRGBA, len(cs))
	for i, c := range cs {
		out[i] = hex(c)
	}
	return out
}

// horizontalGradient spreads stops across [x0, x0+width).
type horizontalGradient struct {
	stops []color.NRGBA
	x0    int
	width int
}

func (g *horizontalGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *horizontalGradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}
func (g *horizontalGradient) At(x, _ int) color.Color {
	if g.width <= 1 {
		return stops(g.stops, 0)
	}
	return stops(g.stops, float64(x-g.x0)/float64(g.width-1))
}
