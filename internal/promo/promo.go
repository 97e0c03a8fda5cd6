// Package promo is the fixed Superlinks promo script: twelve scenes joined
// by eleven transitions, with music and voiceover under the whole cut.
package promo

import (
	"github.com/ivlev/promoreel/internal/composition"
	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/timeline"
	"github.com/ivlev/promoreel/internal/transition"
)

const (
	ID               = "Main"
	FPS              = 30
	Width            = 1280
	Height           = 720
	DurationInFrames = 1260

	VoiceoverURL  = "https://pub-e3bfc0083b0644b296a7080b21024c5f.r2.dev/audio/1770723001434_0nwrbfpgn6x_nPczCjzI_Building_your_busine.mp3"
	MusicURL      = "https://pub-e3bfc0083b0644b296a7080b21024c5f.r2.dev/music/1770723049406_0gjhm98hjts_music_Modern_uplifting_cor.mp3"
	ScreenshotURL = "https://pub-e3bfc0083b0644b296a7080b21024c5f.r2.dev/superlinks/1770723090227_pz67odrzhos_superlinks_screenshot.png"
)

// transitionFrames is the default transition length.
const transitionFrames = 8

// Theme is the brand palette and font pair.
var Theme = scene.Theme{
	Colors: scene.Palette{
		Primary:   "#6366f1",
		Secondary: "#8b5cf6",
		Accent:    "#22d3ee",
		Success:   "#10b981",
		Dark:      "#0f0f14",
		Darker:    "#080810",
		Light:     "#f8fafc",
		White:     "#ffffff",
		Red:       "#ef4444",
	},
	Fonts: scene.Fonts{Body: "Inter", Display: "Outfit"},
}

// Timeline builds the scene sequence for th.
func Timeline(th scene.Theme) (*timeline.Timeline, error) {
	return timeline.New(
		timeline.Sequence(hook(th)),
		timeline.Transition("whipPan", transition.Snappy, transitionFrames),
		timeline.Sequence(amplify(th)),
		timeline.Transition("glitch", transition.Snappy, transitionFrames),
		timeline.Sequence(problem(th)),
		timeline.Transition("slideLeft", transition.Snappy, transitionFrames),
		timeline.Sequence(consequence(th)),
		timeline.Transition("zoomIn", transition.Spring, 10),
		timeline.Sequence(solutionReveal(th)),
		timeline.Transition("flashWhite", transition.Snappy, transitionFrames),
		timeline.Sequence(productIntro(th)),
		timeline.Transition("slideUp", transition.Smooth, 10),
		timeline.Sequence(featureDemo(th)),
		timeline.Transition("wipeRight", transition.Linear, transitionFrames),
		timeline.Sequence(featureBenefits(th)),
		timeline.Transition("blurDissolve", transition.Smooth, 12),
		timeline.Sequence(outcome(th)),
		timeline.Transition("zoomOut", transition.Spring, 10),
		timeline.Sequence(tagline1(th)),
		timeline.Transition("slideRight", transition.Snappy, transitionFrames),
		timeline.Sequence(tagline2(th)),
		timeline.Transition("morphCircle", transition.Smooth, 12),
		timeline.Sequence(logoCTA(th)),
	)
}

// Composition assembles the full promo.
func Composition() (*composition.Composition, error) {
	tl, err := Timeline(Theme)
	if err != nil {
		return nil, err
	}
	return composition.New(
		composition.Metadata{
			ID:               ID,
			DurationInFrames: DurationInFrames,
			FPS:              FPS,
			Width:            Width,
			Height:           Height,
			Background:       Theme.Colors.Darker,
		},
		tl,
		[]composition.Audio{
			{Name: "music", URI: MusicURL, Volume: 0.25},
			{Name: "voiceover", URI: VoiceoverURL, Volume: 1},
		},
		[]composition.Still{
			{Name: "screenshot", URI: ScreenshotURL, Scene: "FeatureDemo"},
		},
	)
}
