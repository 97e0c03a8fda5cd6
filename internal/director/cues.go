package director

import (
	"fmt"

	"github.com/ivlev/promoreel/internal/composition"
)

const cueSheetVersion = "1.0"

// Build snapshots c.
func Build(c *composition.Composition) *CueSheet {
	plan := c.Timeline.Plan()
	sheet := &CueSheet{
		Version: cueSheetVersion,
		Composition: CompositionCue{
			ID:               c.ID,
			FPS:              c.FPS,
			Width:            c.Width,
			Height:           c.Height,
			DurationInFrames: c.DurationInFrames,
			TimelineFrames:   plan.Length,
		},
	}

	stills := map[string][]string{}
	for _, s := range c.Stills {
		stills[s.Scene] = append(stills[s.Scene], s.URI)
	}
	for _, s := range plan.Scenes {
		sheet.Scenes = append(sheet.Scenes, SceneCue{
			Name:     s.Name,
			Start:    s.Start,
			Duration: s.Duration,
			Time:     float64(s.Start) / float64(c.FPS),
			Stills:   stills[s.Name],
		})
	}
	for _, w := range plan.Transitions {
		sheet.Transitions = append(sheet.Transitions, TransitionCue{
			Presentation: w.Presentation,
			Timing:       string(w.Family),
			Start:        w.Start,
			Duration:     w.Duration,
			From:         w.From,
			To:           w.To,
		})
	}
	for _, a := range c.Audio {
		sheet.Audio = append(sheet.Audio, AudioCue{Name: a.Name, URI: a.URI, Volume: a.Volume})
	}
	return sheet
}

// Diff lists how got departs from want, one line per difference. Audio
// and still URIs are ignored; only timing is compared.
func Diff(want, got *CueSheet) []string {
	var out []string
	if want.Composition != got.Composition {
		out = append(out, fmt.Sprintf("composition: %+v != %+v", want.Composition, got.Composition))
	}
	if len(want.Scenes) != len(got.Scenes) {
		out = append(out, fmt.Sprintf("scenes: %d != %d", len(want.Scenes), len(got.Scenes)))
	}
	for i := 0; i < min(len(want.Scenes), len(got.Scenes)); i++ {
		w, g := want.Scenes[i], got.Scenes[i]
		if w.Name != g.Name || w.Start != g.Start || w.Duration != g.Duration {
			out = append(out, fmt.Sprintf("scene %d: %s@%d+%d != %s@%d+%d", i, w.Name, w.Start, w.Duration, g.Name, g.Start, g.Duration))
		}
	}
	if len(want.Transitions) != len(got.Transitions) {
		out = append(out, fmt.Sprintf("transitions: %d != %d", len(want.Transitions), len(got.Transitions)))
	}
	for i := 0; i < min(len(want.Transitions), len(got.Transitions)); i++ {
		if w, g := want.Transitions[i], got.Transitions[i]; w != g {
			out = append(out, fmt.Sprintf("transition %d: %s %s@%d+%d != %s %s@%d+%d", i,
				w.Presentation, w.Timing, w.Start, w.Duration, g.Presentation, g.Timing, g.Start, g.Duration))
		}
	}
	return out
}
