package effects

import (
	"fmt"

	"github.com/ivlev/promoreel/internal/easing"
	"github.com/ivlev/promoreel/internal/motion"
	"github.com/ivlev/promoreel/internal/scene"
)

// Zoom scales its content linearly from From to To across Duration frames.
type Zoom struct {
	From, To float64
	Duration int
}

// Wrap returns content inside a scaled container for frame.
func (z Zoom) Wrap(frame float64, content ...*scene.Node) *scene.Node {
	scale := z.To
	if z.Duration > 0 {
		scale = motion.Fade(0, float64(z.Duration), z.From, z.To, motion.Clamped(easing.Linear)).At(frame)
	}
	return scene.Container("zoom", content...).With(scene.Transform{Scale: scale})
}

// Vignette darkens the frame edges.
type Vignette struct {
	Intensity float64
	Color     string
}

func (v Vignette) Node(float64) *scene.Node {
	color := v.Color
	if color == "" {
		color = "#000000"
	}
	return scene.Effect("vignette", "vignette", scene.Style{Color: color},
		map[string]float64{"intensity": v.Intensity})
}

// Particles is a deterministic drifting star field spanning a Width x Height
// frame. Positions derive from the particle index and frame only.
type Particles struct {
	Count         int
	Colors        []string
	Speed         float64
	Width, Height float64
}

func (p Particles) Node(frame float64) *scene.Node {
	root := scene.Container("particles")
	if len(p.Colors) == 0 || p.Width <= 0 {
		return root
	}
	for i := 0; i < p.Count; i++ {
		drift := frame * p.Speed * (0.5 + motion.Hash01(i, 0.7)) / p.Width * 4
		x := motion.Hash01(i, 0.1) + drift
		x -= float64(int(x))
		y := (motion.Hash01(i, 0.37)-0.5)*p.Height + motion.Wave{Divisor: 30, Phase: float64(i), Amplitude: 6}.Sin(frame)
		twinkle := 0.3 + 0.7*(0.5+0.5*motion.Wave{Divisor: 20, Phase: float64(i) * 1.3, Amplitude: 1}.Sin(frame))

		star := scene.Effect(fmt.Sprintf("star-%d", i), "dot",
			scene.Style{Fill: p.Colors[i%len(p.Colors)]},
			map[string]float64{"radius": 1 + 2.5*motion.Hash01(i, 0.9)}).
			With(scene.Transform{X: (x - 0.5) * p.Width, Y: y}).
			Fade(twinkle)
		root.Children = append(root.Children, star)
	}
	return root
}

// RevealStyle selects a logo reveal animation.
type RevealStyle string

const (
	RevealGlow    RevealStyle = "glow"
	RevealElastic RevealStyle = "elastic"
)

// LogoReveal brings in a logo after Delay seconds over Duration seconds.
type LogoReveal struct {
	Style     RevealStyle
	GlowColor string
	Duration  float64
	Delay     float64
	FPS       int
}

// Wrap returns the revealed content for frame.
func (l LogoReveal) Wrap(frame float64, content ...*scene.Node) *scene.Node {
	start := motion.SecondsToFrames(l.Delay, l.FPS)
	end := start + max(motion.SecondsToFrames(l.Duration, l.FPS), 1)
	p := motion.Fade(start, end, 0, 1, motion.Clamped(easing.Linear)).At(frame)

	root := scene.Container("logo")
	switch l.Style {
	case RevealElastic:
		scale := motion.Fade(start, end, 0.3, 1, motion.Clamped(easing.ElasticOut)).At(frame)
		root.Children = append(root.Children,
			scene.Container("mark", content...).
				With(scene.Transform{Scale: scale}).
				Fade(motion.Clamp01(p*4)))
	default:
		glow := scene.Effect("glow", "radial-gradient", scene.Style{Color: l.GlowColor},
			map[string]float64{"cx": 50, "cy": 50, "radius": 35, "alpha": 0.5 * p})
		root.Children = append(root.Children,
			glow,
			scene.Container("mark", content...).
				With(scene.Transform{Scale: 0.9 + 0.1*p}).
				Fade(p).
				Blurred(20*(1-p)))
	}
	return root
}

// BrowserMockup frames content in a browser window with a tab strip and
// address bar.
type BrowserMockup struct {
	URL           string
	TabTitle      string
	Width, Height float64
	Shadow        bool
	Light         bool
}

const chromeHeight = 44

// Wrap places content inside the mockup's viewport.
func (b BrowserMockup) Wrap(content ...*scene.Node) *scene.Node {
	bar, text := "#202124", "#e8eaed"
	if b.Light {
		bar, text = "#f1f3f4", "#3c4043"
	}
	x0, y0 := -b.Width/2, -b.Height/2

	root := scene.Container("browser")
	if b.Shadow {
		root.Children = append(root.Children,
			scene.Effect("shadow", "rect", scene.Style{Fill: "#00000040"},
				map[string]float64{"width": b.Width, "height": b.Height, "radius": 14}).
				With(scene.Transform{X: x0 + 6, Y: y0 + 18}).
				Blurred(24))
	}
	root.Children = append(root.Children,
		scene.Effect("chrome", "rect", scene.Style{Fill: bar},
			map[string]float64{"width": b.Width, "height": chromeHeight, "radius": 10}).
			With(scene.Transform{X: x0, Y: y0}),
		scene.Text("tab", b.TabTitle, scene.Style{Color: text, FontSize: 13}).
			With(scene.Transform{X: x0 + 80, Y: y0 + 8}),
		scene.Text("url", b.URL, scene.Style{Color: text, FontSize: 14}).
			With(scene.Transform{X: x0 + 80, Y: y0 + 26}),
		scene.Container("viewport", content...).
			With(scene.Transform{X: x0, Y: y0 + chromeHeight}),
	)
	return root
}

// RadialGradient is a soft color spot. Center and radius are percentages
// of the frame.
func RadialGradient(name, color string, cx, cy, radius, alpha float64) *scene.Node {
	return scene.Effect(name, "radial-gradient", scene.Style{Color: color},
		map[string]float64{"cx": cx, "cy": cy, "radius": radius, "alpha": alpha})
}

// LinearGradient fills the frame with evenly spaced color stops at angle
// degrees.
func LinearGradient(name string, angle float64, stops ...string) *scene.Node {
	return scene.Effect(name, "linear-gradient", scene.Style{},
		map[string]float64{"angle": angle}).Tinted(stops...)
}

// Rect is a filled rounded rectangle anchored at its top-left corner.
func Rect(name, fill string, width, height, radius float64) *scene.Node {
	return scene.Effect(name, "rect", scene.Style{Fill: fill},
		map[string]float64{"width": width, "height": height, "radius": radius})
}
