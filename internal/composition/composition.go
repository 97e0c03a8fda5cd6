// Package composition is the root of a video: fixed output metadata, the
// audio and still-image assets attached to it, and the timeline it plays.
package composition

import (
	"errors"
	"fmt"

	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/timeline"
)

var ErrInvalidMetadata = errors.New("invalid composition metadata")

// Metadata is read once at startup.
type Metadata struct {
	ID               string
	DurationInFrames int
	FPS              int
	Width            int
	Height           int
	Background       string
}

// Seconds is the declared duration in seconds.
func (m Metadata) Seconds() float64 {
	return float64(m.DurationInFrames) / float64(m.FPS)
}

// Audio is a track that plays for the whole composition.
type Audio struct {
	Name   string
	URI    string
	Volume float64
}

// Still is an image shown by one scene.
type Still struct {
	Name  string
	URI   string
	Scene string
}

// Composition plays a timeline inside its declared duration. Frames past
// the end of the timeline show only the background.
type Composition struct {
	Metadata
	Audio    []Audio
	Stills   []Still
	Timeline *timeline.Timeline
}

// New checks that the timeline fits the declared duration and that every
// still belongs to a scene on it.
func New(meta Metadata, tl *timeline.Timeline, audio []Audio, stills []Still) (*Composition, error) {
	if meta.FPS <= 0 || meta.Width <= 0 || meta.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d at %d fps", ErrInvalidMetadata, meta.Width, meta.Height, meta.FPS)
	}
	if tl == nil {
		return nil, fmt.Errorf("%w: no timeline", ErrInvalidMetadata)
	}
	if tl.Length() > meta.DurationInFrames {
		return nil, fmt.Errorf("%w: timeline is %d frames, composition declares %d",
			ErrInvalidMetadata, tl.Length(), meta.DurationInFrames)
	}
	for _, a := range audio {
		if a.Volume < 0 || a.Volume > 1 {
			return nil, fmt.Errorf("%w: audio %q volume %v", ErrInvalidMetadata, a.Name, a.Volume)
		}
	}
	names := map[string]bool{}
	for _, s := range tl.Scenes() {
		names[s.Name()] = true
	}
	for _, s := range stills {
		if !names[s.Scene] {
			return nil, fmt.Errorf("%w: still %q attached to unknown scene %q", ErrInvalidMetadata, s.Name, s.Scene)
		}
	}
	return &Composition{Metadata: meta, Audio: audio, Stills: stills, Timeline: tl}, nil
}

// Assets lists every URI the composition references, audio first.
func (c *Composition) Assets() []string {
	var uris []string
	for _, a := range c.Audio {
		uris = append(uris, a.URI)
	}
	for _, s := range c.Stills {
		uris = append(uris, s.URI)
	}
	return uris
}

// Resolve maps a frame to its timeline state. tail reports a frame inside
// the declared duration but past the timeline.
func (c *Composition) Resolve(frame int) (st timeline.State, tail bool, err error) {
	if err := c.check(frame); err != nil {
		return timeline.State{}, false, err
	}
	if frame >= c.Timeline.Length() {
		return timeline.State{Frame: frame}, true, nil
	}
	st, err = c.Timeline.Resolve(frame)
	return st, false, err
}

// Render returns the visual state of frame.
func (c *Composition) Render(frame int) (scene.Frame, error) {
	if err := c.check(frame); err != nil {
		return scene.Frame{}, err
	}
	if frame >= c.Timeline.Length() {
		return scene.Frame{Background: c.Background}, nil
	}
	return c.Timeline.Render(frame, c.Width, c.Height)
}

func (c *Composition) check(frame int) error {
	if frame < 0 || frame >= c.DurationInFrames {
		return fmt.Errorf("%w: %d not in [0, %d)", timeline.ErrFrameOutOfRange, frame, c.DurationInFrames)
	}
	return nil
}

// Describe summarizes what frame shows, for logs and debug stamps.
func (c *Composition) Describe(frame int) (string, error) {
	st, tail, err := c.Resolve(frame)
	if err != nil {
		return "", err
	}
	if tail {
		return fmt.Sprintf("frame %d: tail", frame), nil
	}
	scenes := c.Timeline.Scenes()
	out := fmt.Sprintf("frame %d: %s@%d", frame, scenes[st.Scene].Name(), st.Local)
	if st.Kind == timeline.Transitioning {
		out += fmt.Sprintf(" -> %s@%d %s %d/%d p=%.2f",
			scenes[st.Incoming].Name(), st.IncomingLocal,
			st.Transition.Presentation, st.Offset, st.Transition.Timing.Duration, st.Progress)
	}
	return out, nil
}
