package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses #rgb, #rrggbb and #rrggbbaa.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	alpha := uint64(255)
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
		}
		alpha, h = a, h[:6]
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// hex parses s, falling back to transparent for empty or malformed input.
func hex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.NRGBA{}
	}
	return c
}

// fade scales the alpha of c by opacity.
func fade(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(clamp01(float64(c.A)/255*opacity)*255 + 0.5)
	return c
}

func mix(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

// stops samples evenly spaced color stops at t in [0,1].
func stops(cs []color.NRGBA, t float64) color.NRGBA {
	switch len(cs) {
	case 0:
		return color.NRGBA{}
	case 1:
		return cs[0]
	}
	t = clamp01(t) * float64(len(cs)-1)
	i := int(t)
	if i >= len(cs)-1 {
		return cs[len(cs)-1]
	}
	return mix(cs[i], cs[i+1], t-float64(i))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
