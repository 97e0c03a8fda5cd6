package easing

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const springSamples = 240

// defaultSpring is critically damped, so transition progress never
// overshoots the incoming scene.
var defaultSpring = NewSpringTable(6.0, 1.0)

// SpringTable is a spring response sampled once at construction so that
// evaluation stays a pure function of t.
type SpringTable struct {
	samples []float64
}

// NewSpringTable integrates a unit step response over two simulated
// seconds and normalizes the last sample to 1.
func NewSpringTable(angularFrequency, dampingRatio float64) *SpringTable {
	spring := harmonica.NewSpring(harmonica.FPS(springSamples/2), angularFrequency, dampingRatio)

	samples := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		samples[i] = pos
	}

	last := samples[springSamples]
	if last != 0 {
		for i := range samples {
			samples[i] /= last
		}
	}
	samples[springSamples] = 1

	return &SpringTable{samples: samples}
}

// At samples the table with linear interpolation; t is clamped to [0,1].
func (s *SpringTable) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	pos := t * springSamples
	i := int(math.Floor(pos))
	frac := pos - float64(i)
	return s.samples[i] + (s.samples[i+1]-s.samples[i])*frac
}
