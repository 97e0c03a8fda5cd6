package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/ivlev/promoreel/internal/motion"
	"github.com/ivlev/promoreel/internal/scene"
)

// plane is the full-frame surface an effect layer covers, after the
// layer's translation and scale.
type plane struct {
	cx, cy, w, h float64
}

func (r *Renderer) plane(t scene.Transform) plane {
	s := scaleOf(t)
	x, y := r.anchor(t)
	return plane{cx: x, cy: y, w: float64(r.Width) * s, h: float64(r.Height) * s}
}

func (p plane) rect() image.Rectangle {
	return image.Rect(
		int(math.Floor(p.cx-p.w/2)), int(math.Floor(p.cy-p.h/2)),
		int(math.Ceil(p.cx+p.w/2)), int(math.Ceil(p.cy+p.h/2)),
	)
}

func (r *Renderer) effect(dst *image.RGBA, l scene.Layer) {
	switch l.Effect {
	case "fill":
		r.fill(dst, l)
	case "radial-gradient":
		r.radial(dst, l)
	case "linear-gradient":
		r.linear(dst, l)
	case "vignette":
		r.vignette(dst, l)
	case "dot":
		r.dot(dst, l)
	case "rect":
		r.rect(dst, l)
	case "scanlines":
		r.scanlines(dst, l)
	}
}

// each calls fn for every destination pixel inside area.
func each(dst *image.RGBA, area image.Rectangle, fn func(x, y int)) {
	area = area.Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			fn(x, y)
		}
	}
}

// over composites c with extra coverage a onto the premultiplied pixel.
func over(dst *image.RGBA, x, y int, c color.NRGBA, a float64) {
	a *= float64(c.A) / 255
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = uint8(float64(c.R)*a + float64(p[0])*inv + 0.5)
	p[1] = uint8(float64(c.G)*a + float64(p[1])*inv + 0.5)
	p[2] = uint8(float64(c.B)*a + float64(p[2])*inv + 0.5)
	p[3] = uint8(255*a + float64(p[3])*inv + 0.5)
}

func (r *Renderer) fill(dst *image.RGBA, l scene.Layer) {
	c := hex(l.Style.Fill)
	each(dst, r.plane(l.Transform).rect(), func(x, y int) {
		over(dst, x, y, c, l.Opacity)
	})
}

// radial paints a linear falloff centered at (cx%, cy%) of the plane with
// a radius of radius% of its larger side.
func (r *Renderer) radial(dst *image.RGBA, l scene.Layer) {
	p := r.plane(l.Transform)
	c := hex(l.Style.Color)
	alpha := l.Params["alpha"] * l.Opacity
	if alpha <= 0 {
		return
	}
	ox := p.cx - p.w/2 + l.Params["cx"]/100*p.w
	oy := p.cy - p.h/2 + l.Params["cy"]/100*p.h
	radius := l.Params["radius"] / 100 * math.Max(p.w, p.h)
	if radius <= 0 {
		return
	}
	area := image.Rect(int(ox-radius), int(oy-radius), int(ox+radius)+1, int(oy+radius)+1).Intersect(p.rect())
	each(dst, area, func(x, y int) {
		d := math.Hypot(float64(x)+0.5-ox, float64(y)+0.5-oy) / radius
		if d < 1 {
			over(dst, x, y, c, alpha*(1-d))
		}
	})
}

// linear follows the CSS convention: 0deg runs bottom to top, 90deg left
// to right.
func (r *Renderer) linear(dst *image.RGBA, l scene.Layer) {
	p := r.plane(l.Transform)
	cs := parseAll(l.Colors)
	if len(cs) == 0 {
		return
	}
	theta := l.Params["angle"] * math.Pi / 180
	dx, dy := math.Sin(theta), -math.Cos(theta)
	length := math.Abs(p.w*dx) + math.Abs(p.h*dy)
	if length <= 0 {
		return
	}
	each(dst, p.rect(), func(x, y int) {
		t := ((float64(x)+0.5-p.cx)*dx+(float64(y)+0.5-p.cy)*dy)/length + 0.5
		over(dst, x, y, stops(cs, t), l.Opacity)
	})
}

func (r *Renderer) vignette(dst *image.RGBA, l scene.Layer) {
	p := r.plane(l.Transform)
	c := hex(l.Style.Color)
	k := l.Params["intensity"] * l.Opacity
	if k <= 0 {
		return
	}
	each(dst, p.rect(), func(x, y int) {
		nx := (float64(x) + 0.5 - p.cx) / (p.w / 2)
		ny := (float64(y) + 0.5 - p.cy) / (p.h / 2)
		d := math.Hypot(nx, ny) / math.Sqrt2
		over(dst, x, y, c, k*smoothstep(0.35, 1, d))
	})
}

func (r *Renderer) dot(dst *image.RGBA, l scene.Layer) {
	rad := l.Params["radius"] * scaleOf(l.Transform)
	if rad <= 0 {
		return
	}
	x0, y0 := r.anchor(l.Transform)
	c := hex(l.Style.Fill)
	area := image.Rect(int(x0-rad-1), int(y0-rad-1), int(x0+rad)+2, int(y0+rad)+2)
	each(dst, area, func(x, y int) {
		d := math.Hypot(float64(x)+0.5-x0, float64(y)+0.5-y0)
		over(dst, x, y, c, l.Opacity*clamp01(rad+0.5-d))
	})
}

// rect paints a rounded rectangle whose top-left corner is the layer
// origin. Two or more Colors fill it with a horizontal gradient.
func (r *Renderer) rect(dst *image.RGBA, l scene.Layer) {
	sx, sy := foreshorten(l.Transform)
	w, h := l.Params["width"]*sx, l.Params["height"]*sy
	if w <= 0 || h <= 0 {
		return
	}
	rad := math.Min(l.Params["radius"]*scaleOf(l.Transform), math.Min(w, h)/2)
	x0, y0 := r.anchor(l.Transform)
	fill := hex(l.Style.Fill)
	var grad []color.NRGBA
	if len(l.Colors) > 1 {
		grad = parseAll(l.Colors)
	}

	area := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x0+w)), int(math.Ceil(y0+h)))
	each(dst, area, func(x, y int) {
		px, py := float64(x)+0.5-x0, float64(y)+0.5-y0
		cov := roundedCoverage(px, py, w, h, rad)
		if cov <= 0 {
			return
		}
		c := fill
		if grad != nil {
			c = stops(grad, px/w)
		}
		over(dst, x, y, c, l.Opacity*cov)
	})
}

// roundedCoverage is the approximate pixel coverage of (px, py) inside a
// w x h rectangle with corner radius rad.
func roundedCoverage(px, py, w, h, rad float64) float64 {
	edge := math.Min(math.Min(px+0.5, w-px+0.5), math.Min(py+0.5, h-py+0.5))
	cov := clamp01(edge)
	if rad <= 0 {
		return cov
	}
	cx := math.Max(rad-px, math.Max(px-(w-rad), 0))
	cy := math.Max(rad-py, math.Max(py-(h-rad), 0))
	if cx > 0 && cy > 0 {
		cov = math.Min(cov, clamp01(rad+0.5-math.Hypot(cx, cy)))
	}
	return cov
}

var glitchTints = [...]color.NRGBA{
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff},
	{R: 0xff, G: 0x00, B: 0xff, A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// scanlines paints horizontal glitch bands chosen deterministically from
// the seed.
func (r *Renderer) scanlines(dst *image.RGBA, l scene.Layer) {
	const band = 6
	seed := l.Params["seed"]
	p := r.plane(l.Transform)
	area := p.rect().Intersect(dst.Bounds())
	for i := 0; i*band < area.Dy(); i++ {
		h := motion.Hash01(i, seed+0.17)
		if h > 0.3 {
			continue
		}
		tint := glitchTints[i%len(glitchTints)]
		top := area.Min.Y + i*band
		rows := image.Rect(area.Min.X, top, area.Max.X, min(top+band/2, area.Max.Y))
		each(dst, rows, func(x, y int) {
			over(dst, x, y, tint, l.Opacity*0.35)
		})
	}
}

func smoothstep(e0, e1, x float64) float64 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}
