// Package transition blends two rendered scene frames into one. A
// presentation decides how each side is treated at a given progress; the
// timing curve decides how progress moves across the transition window.
package transition

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/promoreel/internal/easing"
	"github.com/ivlev/promoreel/internal/motion"
	"github.com/ivlev/promoreel/internal/scene"
)

var ErrUnknownPresentation = errors.New("unknown presentation")

// Family is the timing feel of a transition.
type Family string

const (
	Snappy Family = "snappy"
	Spring Family = "spring"
	Smooth Family = "smooth"
	Linear Family = "linear"
)

var families = map[Family]easing.Family{
	Snappy: easing.QuartOut,
	Spring: easing.Spring,
	Smooth: easing.CubicInOut,
	Linear: easing.Linear,
}

// Easing returns the easing family behind f.
func (f Family) Easing() (easing.Family, error) {
	e, ok := families[f]
	if !ok {
		return "", fmt.Errorf("timing %q: %w", f, easing.ErrUnknownFamily)
	}
	return e, nil
}

// Timing is a transition's duration in frames and its feel.
type Timing struct {
	Family   Family
	Duration int
}

// Progress maps a frame offset inside the window to eased progress in [0,1].
func (t Timing) Progress(offset float64) float64 {
	if t.Duration <= 0 {
		return 1
	}
	e, err := t.Family.Easing()
	if err != nil {
		e = easing.Linear
	}
	return easing.MustLookup(e)(motion.Clamp01(offset / float64(t.Duration)))
}

// Spec places a named presentation with its timing between two scenes.
type Spec struct {
	Presentation string
	Timing       Timing
}

// Validate checks the presentation and timing family names.
func (s Spec) Validate() error {
	if _, err := Lookup(s.Presentation); err != nil {
		return err
	}
	_, err := s.Timing.Family.Easing()
	return err
}

// Blend composites out and in at window offset for a width x height frame.
func (s Spec) Blend(out, in scene.Frame, offset float64, width, height int) scene.Frame {
	p, err := Lookup(s.Presentation)
	if err != nil {
		p = crossfade
	}
	return Blend(p, out, in, s.Timing.Progress(offset), width, height)
}

// Treatment is what a presentation does to one side of the blend. Offsets
// are fractions of the frame size, Scale is about the frame center.
type Treatment struct {
	Opacity          float64
	OffsetX, OffsetY float64
	Scale            float64
	Blur             float64
	Clip             scene.Clip
}

// Identity leaves a frame untouched.
var Identity = Treatment{Opacity: 1, Scale: 1}

func (t Treatment) identity() bool {
	return t.Opacity == 1 && t.OffsetX == 0 && t.OffsetY == 0 && t.Scale == 1 &&
		t.Blur == 0 && t.clip().Shape == scene.ClipNone
}

func (t Treatment) hidden() bool {
	c := t.clip()
	return t.Opacity <= 0 || math.Abs(t.OffsetX) >= 1 || math.Abs(t.OffsetY) >= 1 ||
		(c.Shape != scene.ClipNone && c.Amount <= 0)
}

// clip normalizes a fully open clip to no clip.
func (t Treatment) clip() scene.Clip {
	if t.Clip.Shape != scene.ClipNone && t.Clip.Amount >= 1 {
		return scene.Clip{}
	}
	return t.Clip
}

// Step is one presentation's output at a progress value.
type Step struct {
	Out, In Treatment
	// Flash is the alpha of a white overlay painted over both sides.
	Flash float64
	// Glitch is the strength of the scanline overlay.
	Glitch float64
}

// Presentation computes the treatment of both sides at progress p in [0,1].
type Presentation func(p float64) Step

// Blend applies pres at progress p. At p <= 0 it returns out and at p >= 1
// it returns in, so a transition never changes the frames on either side of
// its window.
func Blend(pres Presentation, out, in scene.Frame, p float64, width, height int) scene.Frame {
	if p <= 0 {
		return out
	}
	if p >= 1 {
		return in
	}
	st := pres(p)
	if st.In.identity() && st.Flash <= 0 && st.Glitch <= 0 {
		return in
	}

	w, h := float64(width), float64(height)
	res := scene.Frame{Background: out.Background}
	if !st.Out.hidden() {
		res.Layers = append(res.Layers, st.Out.apply(out.Layers, w, h)...)
	}
	if !st.In.hidden() {
		backdrop := scene.Layer{
			Kind:      scene.KindEffect,
			Path:      "transition/backdrop",
			Transform: scene.Transform{Scale: 1},
			Opacity:   1,
			Style:     scene.Style{Fill: in.Background},
			Effect:    "fill",
		}
		res.Layers = append(res.Layers, st.In.apply([]scene.Layer{backdrop}, w, h)...)
		res.Layers = append(res.Layers, st.In.apply(in.Layers, w, h)...)
	}
	if st.Glitch > 0 {
		res.Layers = append(res.Layers, scene.Layer{
			Kind:      scene.KindEffect,
			Path:      "transition/glitch",
			Transform: scene.Transform{Scale: 1},
			Opacity:   st.Glitch,
			Effect:    "scanlines",
			Params:    map[string]float64{"seed": math.Floor(p * 24)},
		})
	}
	if st.Flash > 0 {
		res.Layers = append(res.Layers, scene.Layer{
			Kind:      scene.KindEffect,
			Path:      "transition/flash",
			Transform: scene.Transform{Scale: 1},
			Opacity:   math.Min(st.Flash, 1),
			Style:     scene.Style{Fill: "#ffffff"},
			Effect:    "fill",
		})
	}
	return res
}

func (t Treatment) apply(layers []scene.Layer, w, h float64) []scene.Layer {
	if t.identity() {
		return layers
	}
	root := scene.Transform{X: t.OffsetX * w, Y: t.OffsetY * h, Scale: t.Scale}
	clip := t.clip()
	out := make([]scene.Layer, 0, len(layers))
	for _, l := range layers {
		l.Transform = root.Compose(l.Transform)
		l.Opacity *= t.Opacity
		l.Blur = math.Max(l.Blur, t.Blur)
		if clip.Shape != scene.ClipNone {
			l.Clip = clip
		}
		out = append(out, l)
	}
	return out
}

// Lookup returns the named presentation.
func Lookup(name string) (Presentation, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPresentation, name)
	}
	return p, nil
}

// Names lists the registered presentations in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
