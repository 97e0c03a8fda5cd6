package timeline

import "github.com/ivlev/promoreel/internal/transition"

// Placement is a scene's span in output frames.
type Placement struct {
	Name     string
	Start    int
	Duration int
}

// Window is a transition's span in output frames.
type Window struct {
	Presentation string
	Family       transition.Family
	Start        int
	Duration     int
	From, To     string
}

// Plan is the resolved layout of a timeline.
type Plan struct {
	Length      int
	Scenes      []Placement
	Transitions []Window
}

// Plan lists where every scene and transition lands.
func (t *Timeline) Plan() Plan {
	p := Plan{Length: t.length}
	for i, s := range t.scenes {
		p.Scenes = append(p.Scenes, Placement{Name: s.Name(), Start: t.starts[i], Duration: s.DurationInFrames()})
	}
	for i, j := range t.joins {
		if j == nil {
			continue
		}
		p.Transitions = append(p.Transitions, Window{
			Presentation: j.Presentation,
			Family:       j.Timing.Family,
			Start:        t.starts[i+1],
			Duration:     j.Timing.Duration,
			From:         t.scenes[i].Name(),
			To:           t.scenes[i+1].Name(),
		})
	}
	return p
}
