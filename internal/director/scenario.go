// Package director writes and checks cue sheets: YAML snapshots of where
// every scene, transition and asset of a composition lands.
package director

// CueSheet is the resolved layout of a composition.
type CueSheet struct {
	Version     string          `yaml:"version"`
	Composition CompositionCue  `yaml:"composition"`
	Scenes      []SceneCue      `yaml:"scenes"`
	Transitions []TransitionCue `yaml:"transitions"`
	Audio       []AudioCue      `yaml:"audio,omitempty"`
}

type CompositionCue struct {
	ID               string `yaml:"id"`
	FPS              int    `yaml:"fps"`
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	DurationInFrames int    `yaml:"duration_in_frames"`
	TimelineFrames   int    `yaml:"timeline_frames"`
}

// SceneCue is one scene's span. Seconds are derived from frames.
type SceneCue struct {
	Name     string   `yaml:"name"`
	Start    int      `yaml:"start"`
	Duration int      `yaml:"duration"`
	Time     float64  `yaml:"time"` // start in seconds
	Stills   []string `yaml:"stills,omitempty"`
}

// TransitionCue is one overlap window between adjacent scenes.
type TransitionCue struct {
	Presentation string `yaml:"presentation"`
	Timing       string `yaml:"timing"`
	Start        int    `yaml:"start"`
	Duration     int    `yaml:"duration"`
	From         string `yaml:"from"`
	To           string `yaml:"to"`
}

type AudioCue struct {
	Name   string  `yaml:"name"`
	URI    string  `yaml:"uri"`
	Volume float64 `yaml:"volume"`
}
