package motion

import "math"

// Wave is a deterministic oscillation of frame: Amplitude*sin(frame/Divisor + Phase).
// It stands in for motion that looks random but must replay exactly.
type Wave struct {
	Divisor   float64
	Phase     float64
	Amplitude float64
}

// Sin evaluates the wave with sine.
func (w Wave) Sin(frame float64) float64 {
	return math.Sin(frame/w.Divisor+w.Phase) * w.Amplitude
}

// Cos evaluates the wave with cosine.
func (w Wave) Cos(frame float64) float64 {
	return math.Cos(frame/w.Divisor+w.Phase) * w.Amplitude
}

// Pulse returns 1 + Amplitude*sin(frame/Divisor + Phase), the breathing
// scale used by call-to-action buttons.
func (w Wave) Pulse(frame float64) float64 {
	return 1 + w.Sin(frame)
}

// Hash01 maps an element index to a stable pseudo-random value in [0,1)
// using the golden-ratio sequence.
func Hash01(i int, salt float64) float64 {
	const phi = 0.6180339887498949
	v := float64(i)*phi + salt*0.7548776662466927
	return v - math.Floor(v)
}
