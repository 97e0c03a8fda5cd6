// Package timeline sequences scenes end to end. A transition between two
// scenes overlaps the tail of the first with the head of the second, so it
// shortens the output instead of lengthening it.
package timeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/transition"
)

var (
	ErrInvalidTransitionDuration = errors.New("invalid transition duration")
	ErrFrameOutOfRange           = errors.New("frame out of range")
	ErrInvalidLayout             = errors.New("invalid timeline layout")
)

// Item is one entry of a timeline: a scene or a transition between scenes.
type Item struct {
	scene      scene.Scene
	transition *transition.Spec
}

// Sequence places a scene on the timeline.
func Sequence(s scene.Scene) Item {
	return Item{scene: s}
}

// Transition joins the scenes before and after it.
func Transition(presentation string, family transition.Family, duration int) Item {
	return Item{transition: &transition.Spec{
		Presentation: presentation,
		Timing:       transition.Timing{Family: family, Duration: duration},
	}}
}

// Timeline is an immutable, validated scene sequence.
type Timeline struct {
	scenes []scene.Scene
	starts []int
	// joins[i] sits between scenes i and i+1; nil is a hard cut.
	joins  []*transition.Spec
	length int
}

// New validates items and computes scene start offsets. Items must begin
// and end with a scene, and transitions may not be adjacent. Two scenes
// with nothing between them are joined by a cut.
func New(items ...Item) (*Timeline, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no scenes", ErrInvalidLayout)
	}
	t := &Timeline{}
	var pending *transition.Spec
	for i, it := range items {
		if it.transition != nil {
			if len(t.scenes) == 0 || pending != nil || i == len(items)-1 {
				return nil, fmt.Errorf("%w: transition at item %d is not between two scenes", ErrInvalidLayout, i)
			}
			pending = it.transition
			continue
		}
		if it.scene == nil {
			return nil, fmt.Errorf("%w: item %d is empty", ErrInvalidLayout, i)
		}
		if it.scene.DurationInFrames() <= 0 {
			return nil, fmt.Errorf("%w: scene %q has no frames", ErrInvalidLayout, it.scene.Name())
		}
		if len(t.scenes) > 0 {
			t.joins = append(t.joins, pending)
		}
		t.scenes = append(t.scenes, it.scene)
		pending = nil
	}

	if err := t.validateJoins(); err != nil {
		return nil, err
	}

	t.starts = make([]int, len(t.scenes))
	for i := 1; i < len(t.scenes); i++ {
		t.starts[i] = t.starts[i-1] + t.scenes[i-1].DurationInFrames() - t.overlap(i-1)
	}
	last := len(t.scenes) - 1
	t.length = t.starts[last] + t.scenes[last].DurationInFrames()
	return t, nil
}

func (t *Timeline) validateJoins() error {
	for i, j := range t.joins {
		if j == nil {
			continue
		}
		if err := j.Validate(); err != nil {
			return fmt.Errorf("transition %d: %w", i, err)
		}
		out, in := t.scenes[i], t.scenes[i+1]
		d := j.Timing.Duration
		if d < 1 || d > out.DurationInFrames() || d > in.DurationInFrames() {
			return fmt.Errorf("%w: %s %d frames between %q (%d) and %q (%d)",
				ErrInvalidTransitionDuration, j.Presentation, d,
				out.Name(), out.DurationInFrames(), in.Name(), in.DurationInFrames())
		}
	}
	// A scene cannot be blended on both sides for longer than it lasts.
	for i := 1; i < len(t.scenes)-1; i++ {
		if both := t.overlap(i-1) + t.overlap(i); both > t.scenes[i].DurationInFrames() {
			return fmt.Errorf("%w: %q (%d frames) overlaps %d frames with its neighbours",
				ErrInvalidTransitionDuration, t.scenes[i].Name(), t.scenes[i].DurationInFrames(), both)
		}
	}
	return nil
}

// overlap is the duration of join i, zero for a cut.
func (t *Timeline) overlap(i int) int {
	if j := t.joins[i]; j != nil {
		return j.Timing.Duration
	}
	return 0
}

// Length is the number of output frames.
func (t *Timeline) Length() int { return t.length }

// Scenes returns the scenes in order.
func (t *Timeline) Scenes() []scene.Scene {
	return append([]scene.Scene(nil), t.scenes...)
}

// Start returns the first output frame of scene i.
func (t *Timeline) Start(i int) int { return t.starts[i] }

// Kind is the shape of a resolved frame.
type Kind int

const (
	SingleScene Kind = iota
	Transitioning
)

func (k Kind) String() string {
	if k == Transitioning {
		return "Transitioning"
	}
	return "SingleScene"
}

// State is what a global frame resolves to. For SingleScene only Scene and
// Local are set.
type State struct {
	Kind  Kind
	Frame int
	// Scene is the visible scene, or the outgoing one while transitioning.
	Scene int
	Local int

	Incoming      int
	IncomingLocal int
	// Offset is the frame's position inside the transition window.
	Offset     int
	Progress   float64
	Transition *transition.Spec
}

// Resolve maps a global frame to its state.
func (t *Timeline) Resolve(frame int) (State, error) {
	if frame < 0 || frame >= t.length {
		return State{}, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, frame, t.length)
	}
	// Last scene that has started by frame.
	i := sort.Search(len(t.starts), func(k int) bool { return t.starts[k] > frame }) - 1

	if i > 0 {
		if j := t.joins[i-1]; j != nil && frame < t.starts[i]+j.Timing.Duration {
			offset := frame - t.starts[i]
			return State{
				Kind:          Transitioning,
				Frame:         frame,
				Scene:         i - 1,
				Local:         frame - t.starts[i-1],
				Incoming:      i,
				IncomingLocal: offset,
				Offset:        offset,
				Progress:      j.Timing.Progress(float64(offset)),
				Transition:    j,
			}, nil
		}
	}
	return State{Kind: SingleScene, Frame: frame, Scene: i, Local: frame - t.starts[i]}, nil
}

// Render composites the frame at the given output size.
func (t *Timeline) Render(frame, width, height int) (scene.Frame, error) {
	st, err := t.Resolve(frame)
	if err != nil {
		return scene.Frame{}, err
	}
	return t.RenderState(st, width, height), nil
}

// RenderState renders a state obtained from Resolve.
func (t *Timeline) RenderState(st State, width, height int) scene.Frame {
	out := t.scenes[st.Scene].Render(st.Local)
	if st.Kind == SingleScene {
		return out
	}
	in := t.scenes[st.Incoming].Render(st.IncomingLocal)
	return st.Transition.Blend(out, in, float64(st.Offset), width, height)
}
