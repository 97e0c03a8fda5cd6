// Package motion turns a frame number into animated values: piecewise
// eased curves, staggered reveals and deterministic oscillators.
package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/ivlev/promoreel/internal/easing"
)

// ErrDegenerateCurve is returned when a curve cannot be built: fewer than
// two breakpoints, a NaN or infinite breakpoint, frames that do not
// strictly increase, or an unknown easing family.
var ErrDegenerateCurve = errors.New("degenerate curve")

// Extrapolation decides what a curve does outside its first and last
// breakpoint.
type Extrapolation int

const (
	// Extend continues the edge segment through the easing function.
	Extend Extrapolation = iota
	// Clamp holds the edge value.
	Clamp
)

// Point is a (frame, value) breakpoint.
type Point struct {
	Frame float64
	Value float64
}

// Options configures a Curve. The zero value is linear with extended
// extrapolation on both sides.
type Options struct {
	Easing easing.Family
	Left   Extrapolation
	Right  Extrapolation
}

// Clamped returns options that clamp both ends.
func Clamped(f easing.Family) Options {
	return Options{Easing: f, Left: Clamp, Right: Clamp}
}

// ClampRight returns options that extend on the left and clamp on the right.
func ClampRight(f easing.Family) Options {
	return Options{Easing: f, Left: Extend, Right: Clamp}
}

// Curve is an immutable piecewise eased curve.
type Curve struct {
	points []Point
	ease   easing.Func
	left   Extrapolation
	right  Extrapolation
}

// NewCurve validates the breakpoints and resolves the easing family.
func NewCurve(points []Point, opts Options) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 breakpoints, got %d", ErrDegenerateCurve, len(points))
	}
	for i, p := range points {
		if !finite(p.Frame) || !finite(p.Value) {
			return nil, fmt.Errorf("%w: breakpoint %d is not finite (frame %g, value %g)",
				ErrDegenerateCurve, i, p.Frame, p.Value)
		}
	}
	for i := 1; i < len(points); i++ {
		if points[i].Frame <= points[i-1].Frame {
			return nil, fmt.Errorf("%w: breakpoint %d at frame %g does not follow frame %g",
				ErrDegenerateCurve, i, points[i].Frame, points[i-1].Frame)
		}
	}

	family := opts.Easing
	if family == "" {
		family = easing.Linear
	}
	fn, err := easing.Lookup(family)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerateCurve, err)
	}

	pts := make([]Point, len(points))
	copy(pts, points)

	return &Curve{points: pts, ease: fn, left: opts.Left, right: opts.Right}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Span builds a curve from parallel frame and value slices, the shape most
// scene code writes.
func Span(frames, values []float64, opts Options) (*Curve, error) {
	if len(frames) != len(values) {
		return nil, fmt.Errorf("%w: %d frames but %d values", ErrDegenerateCurve, len(frames), len(values))
	}
	points := make([]Point, len(frames))
	for i := range frames {
		points[i] = Point{Frame: frames[i], Value: values[i]}
	}
	return NewCurve(points, opts)
}

// MustSpan is Span for curves fixed at composition-definition time.
func MustSpan(frames, values []float64, opts Options) *Curve {
	c, err := Span(frames, values, opts)
	if err != nil {
		panic(err)
	}
	return c
}

// Fade is the common two-point curve from (f0,v0) to (f1,v1).
func Fade(f0, f1, v0, v1 float64, opts Options) *Curve {
	return MustSpan([]float64{f0, f1}, []float64{v0, v1}, opts)
}

// At evaluates the curve at frame.
func (c *Curve) At(frame float64) float64 {
	first, last := c.points[0], c.points[len(c.points)-1]

	if frame <= first.Frame {
		if c.left == Clamp || frame == first.Frame {
			return first.Value
		}
		return c.segment(0, frame)
	}

	if frame >= last.Frame {
		if c.right == Clamp || frame == last.Frame {
			return last.Value
		}
		return c.segment(len(c.points)-2, frame)
	}

	// Breakpoint lists are short; a linear scan beats a binary search here.
	i := 0
	for i < len(c.points)-2 && frame >= c.points[i+1].Frame {
		i++
	}
	return c.segment(i, frame)
}

// segment evaluates segment i (between points i and i+1) at frame without
// clamping t, so it also serves extended extrapolation.
func (c *Curve) segment(i int, frame float64) float64 {
	a, b := c.points[i], c.points[i+1]
	t := (frame - a.Frame) / (b.Frame - a.Frame)
	return a.Value + c.ease(t)*(b.Value-a.Value)
}

// Points returns a copy of the breakpoints.
func (c *Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}
