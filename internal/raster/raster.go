// Package raster turns a flattened scene frame into pixels. It is a preview
// quality painter: layers keep their order, opacity, blur and clip, but
// 3D rotation is approximated by foreshortening.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ivlev/promoreel/internal/scene"
)

// Images resolves image layer URIs. It must not block on the network.
type Images interface {
	Image(uri string) (image.Image, error)
}

var loadFonts = sync.OnceValues(func() ([2]*opentype.Font, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return [2]*opentype.Font{}, err
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return [2]*opentype.Font{}, err
	}
	return [2]*opentype.Font{regular, bold}, nil
})

type faceKey struct {
	bold bool
	size int
}

// Renderer paints frames of a fixed size. A Renderer caches font faces and
// is not safe for concurrent use; give each worker its own.
type Renderer struct {
	Width, Height int
	Images        Images

	faces map[faceKey]font.Face
}

func New(width, height int, images Images) *Renderer {
	return &Renderer{Width: width, Height: height, Images: images, faces: make(map[faceKey]font.Face)}
}

// Render paints f into a pooled buffer. Release it with PutImage once it has
// been written out.
func (r *Renderer) Render(f scene.Frame) (*image.RGBA, error) {
	dst := GetImage(r.Width, r.Height)
	bg := hex(f.Background)
	bg.A = 255
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, l := range f.Layers {
		if err := r.layer(dst, l); err != nil {
			PutImage(dst)
			return nil, fmt.Errorf("layer %s: %w", l.Path, err)
		}
	}
	return dst, nil
}

func (r *Renderer) layer(dst *image.RGBA, l scene.Layer) error {
	if l.Opacity <= 0 {
		return nil
	}
	// CSS blur lengths are the gaussian's standard deviation.
	sigma := l.Blur * scaleOf(l.Transform)
	if sigma < 0.5 && l.Clip.Shape == scene.ClipNone {
		return r.paint(dst, l)
	}

	tmp := GetImage(r.Width, r.Height)
	defer PutImage(tmp)
	if err := r.paint(tmp, l); err != nil {
		return err
	}
	var src image.Image = tmp
	if sigma >= 0.5 {
		src = imaging.Blur(tmp, sigma)
	}
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, r.clipMask(l.Clip), image.Point{}, draw.Over)
	return nil
}

func (r *Renderer) paint(dst *image.RGBA, l scene.Layer) error {
	switch l.Kind {
	case scene.KindText:
		return r.text(dst, l)
	case scene.KindImage:
		return r.image(dst, l)
	case scene.KindEffect:
		r.effect(dst, l)
	}
	return nil
}

func scaleOf(t scene.Transform) float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// anchor is the layer origin in pixel space.
func (r *Renderer) anchor(t scene.Transform) (x, y float64) {
	return float64(r.Width)/2 + t.X, float64(r.Height)/2 + t.Y
}

// foreshorten approximates rotation about the x and y axes.
func foreshorten(t scene.Transform) (sx, sy float64) {
	s := scaleOf(t)
	return s * math.Abs(math.Cos(t.RotateY*math.Pi/180)), s * math.Abs(math.Cos(t.RotateX*math.Pi/180))
}

func (r *Renderer) image(dst *image.RGBA, l scene.Layer) error {
	if r.Images == nil {
		return nil
	}
	src, err := r.Images.Image(l.Asset)
	if err != nil {
		return err
	}
	sx, sy := foreshorten(l.Transform)
	x, y := r.anchor(l.Transform)
	w, h := l.Params["width"]*sx, l.Params["height"]*sy
	dr := image.Rect(int(x), int(y), int(x+w), int(y+h))

	// Cover the box, cropping the source to its aspect ratio.
	sr := src.Bounds()
	if sw, sh := float64(sr.Dx()), float64(sr.Dy()); sw > 0 && sh > 0 && w > 0 && h > 0 {
		if sw/sh > w/h {
			cw := int(sh * w / h)
			sr.Min.X += (sr.Dx() - cw) / 2
			sr.Max.X = sr.Min.X + cw
		} else {
			ch := int(sw * h / w)
			sr.Max.Y = sr.Min.Y + ch
		}
	}

	opts := &draw.Options{DstMask: image.NewUniform(color.Alpha16{A: uint16(clamp01(l.Opacity) * 0xffff)})}
	draw.ApproxBiLinear.Scale(dst, dr, src, sr, draw.Over, opts)
	return nil
}

func (r *Renderer) face(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, size: int(math.Round(size))}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	idx := 0
	if bold {
		idx = 1
	}
	f, err := opentype.NewFace(fonts[idx], &opentype.FaceOptions{Size: float64(key.size), DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	r.faces[key] = f
	return f, nil
}

// clipMask returns nil for an unclipped layer.
func (r *Renderer) clipMask(c scene.Clip) image.Image {
	b := image.Rect(0, 0, r.Width, r.Height)
	switch c.Shape {
	case scene.ClipRevealLeft:
		return &revealMask{bounds: b, edge: int(c.Amount * float64(r.Width))}
	case scene.ClipCircle:
		rad := c.Amount * math.Hypot(float64(r.Width), float64(r.Height)) / 2
		return &circleMask{bounds: b, cx: float64(r.Width) / 2, cy: float64(r.Height) / 2, r2: rad * rad}
	}
	return nil
}

type revealMask struct {
	bounds image.Rectangle
	edge   int
}

func (m *revealMask) ColorModel() color.Model { return color.AlphaModel }
func (m *revealMask) Bounds() image.Rectangle { return m.bounds }
func (m *revealMask) At(x, _ int) color.Color {
	if x < m.edge {
		return color.Opaque
	}
	return color.Transparent
}

type circleMask struct {
	bounds     image.Rectangle
	cx, cy, r2 float64
}

func (m *circleMask) ColorModel() color.Model { return color.AlphaModel }
func (m *circleMask) Bounds() image.Rectangle { return m.bounds }
func (m *circleMask) At(x, y int) color.Color {
	dx, dy := float64(x)+0.5-m.cx, float64(y)+0.5-m.cy
	if dx*dx+dy*dy <= m.r2 {
		return color.Opaque
	}
	return color.Transparent
}
