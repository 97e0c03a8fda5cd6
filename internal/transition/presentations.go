package transition

import (
	"math"

	"github.com/ivlev/promoreel/internal/scene"
)

var registry = map[string]Presentation{
	"fade":         crossfade,
	"whipPan":      whipPan,
	"glitch":       glitch,
	"slideLeft":    slide(-1, 0),
	"slideRight":   slide(1, 0),
	"slideUp":      slide(0, -1),
	"slideDown":    slide(0, 1),
	"zoomIn":       zoomIn,
	"zoomOut":      zoomOut,
	"flashWhite":   flashWhite,
	"wipeRight":    wipeRight,
	"blurDissolve": blurDissolve,
	"morphCircle":  morphCircle,
}

// bell rises from 0 to 1 at mid-transition and back, exactly 0 at the ends.
func bell(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return math.Sin(math.Pi * p)
}

func with(t Treatment, f func(*Treatment)) Treatment {
	f(&t)
	return t
}

func crossfade(p float64) Step {
	return Step{
		Out: with(Identity, func(t *Treatment) { t.Opacity = 1 - p }),
		In:  with(Identity, func(t *Treatment) { t.Opacity = p }),
	}
}

// slide pushes the outgoing scene off in direction (dx,dy) while the
// incoming one follows it in from the opposite edge.
func slide(dx, dy float64) Presentation {
	return func(p float64) Step {
		return Step{
			Out: with(Identity, func(t *Treatment) { t.OffsetX, t.OffsetY = dx*p, dy*p }),
			In:  with(Identity, func(t *Treatment) { t.OffsetX, t.OffsetY = -dx*(1-p), -dy*(1-p) }),
		}
	}
}

// whipPan is a fast leftward slide with motion blur peaking mid-way.
func whipPan(p float64) Step {
	st := slide(-1, 0)(p)
	blur := 24 * bell(p)
	st.Out.Blur, st.In.Blur = blur, blur
	return st
}

func glitch(p float64) Step {
	st := crossfade(p)
	strength := bell(p)
	jitter := math.Sin(40*p) * 0.02 * strength
	st.Out.OffsetX, st.In.OffsetX = jitter, -jitter
	st.Glitch = strength
	return st
}

func zoomIn(p float64) Step {
	return Step{
		Out: with(Identity, func(t *Treatment) { t.Scale, t.Opacity = 1+p, 1-p }),
		In:  with(Identity, func(t *Treatment) { t.Scale, t.Opacity = 0.5+0.5*p, p }),
	}
}

func zoomOut(p float64) Step {
	return Step{
		Out: with(Identity, func(t *Treatment) { t.Scale, t.Opacity = 1-0.5*p, 1-p }),
		In:  with(Identity, func(t *Treatment) { t.Scale, t.Opacity = 1.5-0.5*p, p }),
	}
}

func flashWhite(p float64) Step {
	st := crossfade(p)
	st.Flash = bell(p)
	return st
}

// wipeRight uncovers the incoming scene from the left edge.
func wipeRight(p float64) Step {
	return Step{
		Out: Identity,
		In:  with(Identity, func(t *Treatment) { t.Clip = scene.Clip{Shape: scene.ClipRevealLeft, Amount: p} }),
	}
}

func blurDissolve(p float64) Step {
	st := crossfade(p)
	st.Out.Blur = 20 * p
	st.In.Blur = 20 * (1 - p)
	return st
}

// morphCircle grows the incoming scene out of a centered circle.
func morphCircle(p float64) Step {
	return Step{
		Out: Identity,
		In:  with(Identity, func(t *Treatment) { t.Clip = scene.Clip{Shape: scene.ClipCircle, Amount: p} }),
	}
}
