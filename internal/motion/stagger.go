package motion

import "github.com/ivlev/promoreel/internal/easing"

// Stagger offsets the start of each element in a group by a fixed delay.
// Element i animates over [Start+i*Delay, Start+i*Delay+Duration].
type Stagger struct {
	Count    int
	Start    float64
	Delay    float64
	Duration float64
}

// Window returns element i's active window.
func (s Stagger) Window(i int) (from, to float64) {
	from = s.Start + float64(i)*s.Delay
	return from, from + s.Duration
}

// Progress returns element i's linear progress in [0,1] at frame.
func (s Stagger) Progress(i int, frame float64) float64 {
	from, _ := s.Window(i)
	if s.Duration <= 0 {
		if frame >= from {
			return 1
		}
		return 0
	}
	return Clamp01((frame - from) / s.Duration)
}

// Progresses returns the progress of every element at frame. A negative
// Count is an empty group.
func (s Stagger) Progresses(frame float64) []float64 {
	out := make([]float64, max(s.Count, 0))
	for i := range out {
		out[i] = s.Progress(i, frame)
	}
	return out
}

// End is the frame at which the last element finishes.
func (s Stagger) End() float64 {
	if s.Count <= 0 {
		return s.Start
	}
	_, to := s.Window(s.Count - 1)
	return to
}

// ElementState is the per-element visual parameter set driven by progress.
type ElementState struct {
	Opacity float64
	OffsetX float64
	OffsetY float64
	Scale   float64
	Blur    float64
}

// Reveal animates each staggered element from a starting state to rest
// (opacity 1, no offset, scale 1, no blur). From is the complete starting
// state: leave Scale at 1 when the reveal does not scale.
type Reveal struct {
	Stagger Stagger
	Easing  easing.Family
	From    ElementState
}

// Element returns element i's state at frame.
func (r Reveal) Element(i int, frame float64) ElementState {
	fn := easing.MustLookup(r.family())
	p := fn(r.Stagger.Progress(i, frame))
	return ElementState{
		Opacity: lerp(r.From.Opacity, 1, p),
		OffsetX: lerp(r.From.OffsetX, 0, p),
		OffsetY: lerp(r.From.OffsetY, 0, p),
		Scale:   lerp(r.From.Scale, 1, p),
		Blur:    lerp(r.From.Blur, 0, p),
	}
}

func (r Reveal) family() easing.Family {
	if r.Easing == "" {
		return easing.Linear
	}
	return r.Easing
}

// SecondsToFrames converts a duration in seconds to (fractional) frames.
func SecondsToFrames(seconds float64, fps int) float64 {
	return seconds * float64(fps)
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
