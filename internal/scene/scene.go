package scene

// Scene is a pure function from local frame to visual state. Render must
// be total: the sequencer queries frames slightly outside
// [0, DurationInFrames) while blending transitions.
type Scene interface {
	Name() string
	DurationInFrames() int
	Render(frame int) Frame
}

// BuildFunc produces a scene tree for a local frame.
type BuildFunc func(frame float64) *Node

// Definition is a Scene backed by a BuildFunc.
type Definition struct {
	name       string
	duration   int
	background string
	build      BuildFunc
}

// New defines a scene. It panics on a non-positive duration, which is a
// composition-definition bug.
func New(name string, durationInFrames int, background string, build BuildFunc) *Definition {
	if durationInFrames <= 0 {
		panic("scene " + name + ": durationInFrames must be positive")
	}
	return &Definition{name: name, duration: durationInFrames, background: background, build: build}
}

func (d *Definition) Name() string          { return d.name }
func (d *Definition) DurationInFrames() int { return d.duration }

func (d *Definition) Render(frame int) Frame {
	return Flatten(d.background, d.build(float64(frame)))
}
