package promo

import (
	"fmt"

	"github.com/ivlev/promoreel/internal/easing"
	"github.com/ivlev/promoreel/internal/effects"
	"github.com/ivlev/promoreel/internal/motion"
	"github.com/ivlev/promoreel/internal/scene"
)

func fadeIn(f0, f1 float64) *motion.Curve {
	return motion.Fade(f0, f1, 0, 1, motion.Clamped(easing.Linear))
}

// row places children at vertical offset y from the frame center.
func row(name string, y float64, children ...*scene.Node) *scene.Node {
	return scene.Container(name, children...).With(scene.Transform{Y: y})
}

// pct converts a CSS-style percentage position to a center-origin offset.
func pct(p, size float64) float64 {
	return (p/100 - 0.5) * size
}

func display(th scene.Theme, size float64, weight int, color string) scene.Style {
	return scene.Style{Font: th.Fonts.Display, FontSize: size, FontWeight: weight, Color: color}
}

func body(th scene.Theme, size float64, weight int, color string) scene.Style {
	return scene.Style{Font: th.Fonts.Body, FontSize: size, FontWeight: weight, Color: color}
}

func stars(count int, speed float64, colors ...string) effects.Particles {
	return effects.Particles{Count: count, Colors: colors, Speed: speed, Width: Width, Height: Height}
}

func hook(th scene.Theme) scene.Scene {
	c := th.Colors
	wobble := [4]motion.Wave{
		{Divisor: 50, Amplitude: 10},
		{Divisor: 40, Amplitude: 10},
		{Divisor: 60, Amplitude: 10},
		{Divisor: 45, Amplitude: 10},
	}
	particles := stars(30, 0.3, c.Primary, c.Accent)
	zoom := effects.Zoom{From: 1, To: 1.05, Duration: 90}
	stomp := effects.StompStream{StreamParams: effects.StreamParams{
		Text:               "Create Launch Monetize",
		WordsPerGroup:      1,
		FontSize:           110,
		FontWeight:         800,
		Color:              c.White,
		Font:               th.Fonts.Display,
		TransitionDuration: 12,
	}}
	vignette := effects.Vignette{Intensity: 0.4}

	return scene.New("Hook", 90, c.Darker, func(f float64) *scene.Node {
		return scene.Container("hook",
			effects.RadialGradient("glow-primary", c.Primary, 30+wobble[0].Sin(f), 40+wobble[1].Cos(f), 50, 0.3),
			effects.RadialGradient("glow-secondary", c.Secondary, 70+wobble[2].Cos(f), 60+wobble[3].Sin(f), 50, 0.2),
			particles.Node(f),
			zoom.Wrap(f, stomp.Node(f)),
			vignette.Node(f),
		)
	})
}

func amplify(th scene.Theme) scene.Scene {
	c := th.Colors
	zoom := effects.Zoom{From: 1.02, To: 1, Duration: 90}
	headline := effects.Words("headline", "Without writing a single line of code",
		display(th, 60, 700, c.White),
		effects.Timing{
			From:     motion.ElementState{OffsetY: 20, Scale: 1, Blur: 10},
			Duration: 0.6,
			Stagger:  0.08,
			Easing:   easing.MustParse("power2.out"),
		}, FPS).Wrapped(Width - 160)
	powered := fadeIn(20, 35)
	vignette := effects.Vignette{Intensity: 0.3}

	return scene.New("Amplify", 90, c.Dark, func(f float64) *scene.Node {
		return scene.Container("amplify",
			effects.LinearGradient("backdrop", 135, c.Darker, c.Dark, scene.WithAlpha(c.Primary, 0x1a)),
			zoom.Wrap(f,
				row("headline-row", -40, headline.Node(f)),
				row("powered-row", 70,
					effects.Label("powered", "Powered by AI", body(th, 24, 400, c.Accent)),
				).Fade(powered.At(f)),
			),
			vignette.Node(f),
		)
	})
}

func problem(th scene.Theme) scene.Scene {
	c := th.Colors
	icons := []string{"📊", "💳", "📧", "📱", "🔧", "📈"}
	iconOpacity := motion.Fade(0, 15, 0, 0.4, motion.ClampRight(easing.Linear))
	zoom := effects.Zoom{From: 1, To: 1.03, Duration: 105}
	headline := effects.Words("headline", "Building your business shouldn't feel like solving a puzzle",
		display(th, 48, 700, c.White),
		effects.Timing{
			From:     motion.ElementState{OffsetY: 15, Scale: 1},
			Duration: 0.5,
			Stagger:  0.08,
			Easing:   easing.MustParse("power2.out"),
		}, FPS).Wrapped(Width - 128)
	missing := fadeIn(25, 40)
	vignette := effects.Vignette{Intensity: 0.5, Color: "#1a0000"}

	return scene.New("Problem", 105, "#0a0a0f", func(f float64) *scene.Node {
		scattered := scene.Container("icons")
		for i, icon := range icons {
			fi := float64(i)
			baseX := 15 + float64(i%3)*35
			baseY := 20 + float64(i/3)*40
			wx := motion.Wave{Divisor: 15, Phase: fi * 2, Amplitude: 8}.Sin(f)
			wy := motion.Wave{Divisor: 12, Phase: fi * 1.5, Amplitude: 6}.Cos(f)
			rot := motion.Wave{Divisor: 20, Phase: fi, Amplitude: 15}.Sin(f)

			n := scene.Text(fmt.Sprintf("icon-%d", i), icon, scene.Style{FontSize: 48}).
				With(scene.Transform{X: pct(baseX+wx, Width), Y: pct(baseY+wy, Height), Rotate: rot}).
				Fade(iconOpacity.At(f))
			n.Params = map[string]float64{"grayscale": 0.5}
			scattered.Children = append(scattered.Children, n)
		}

		return scene.Container("problem",
			scattered,
			zoom.Wrap(f,
				row("headline-row", -30, headline.Node(f)),
				row("missing-row", 80,
					effects.Label("missing", "with missing pieces", body(th, 24, 500, c.Red)),
				).Fade(missing.At(f)),
			),
			vignette.Node(f),
		)
	})
}

func consequence(th scene.Theme) scene.Scene {
	c := th.Colors
	type pain struct {
		text           string
		opacity, slide *motion.Curve
	}
	var pains []pain
	for _, p := range []struct {
		text  string
		delay float64
	}{
		{"Scattered tools", 0},
		{"Complicated tech", 8},
		{"Endless frustration", 16},
	} {
		pains = append(pains, pain{
			text:    p.text,
			opacity: fadeIn(p.delay, p.delay+12),
			slide:   motion.Fade(p.delay, p.delay+12, -30, 0, motion.Clamped(easing.MustParse("out(cubic)"))),
		})
	}
	const size, gap = 36, 16
	zoom := effects.Zoom{From: 1.02, To: 1, Duration: 90}
	vignette := effects.Vignette{Intensity: 0.5}

	return scene.New("Consequence", 90, "#0a0808", func(f float64) *scene.Node {
		list := scene.Container("pains")
		for i, p := range pains {
			mark := effects.Measure("✕", size)
			x0 := -(mark + gap + effects.Measure(p.text, size)) / 2
			line := scene.Container("pain",
				scene.Text("mark", "✕", display(th, size, 600, c.Red)).With(scene.Transform{X: x0}),
				scene.Text("text", p.text, display(th, size, 600, c.White)).With(scene.Transform{X: x0 + mark + gap}),
			).With(scene.Transform{X: p.slide.At(f), Y: float64(i-1) * 76}).Fade(p.opacity.At(f))
			line.Name = p.text
			list.Children = append(list.Children, line)
		}
		return scene.Container("consequence",
			effects.RadialGradient("glow", c.Red, 50, 50, 60, 0.15),
			zoom.Wrap(f, list),
			vignette.Node(f),
		)
	})
}

func solutionReveal(th scene.Theme) scene.Scene {
	c := th.Colors
	glow := motion.Fade(0, 20, 0, 0.4, motion.ClampRight(easing.Linear))
	zoom := effects.Zoom{From: 0.95, To: 1, Duration: 90}
	question := effects.Chars("question", "What if everything you needed",
		body(th, 30, 500, c.Accent),
		effects.Timing{
			From:     motion.ElementState{OffsetY: 60, Scale: 1},
			Duration: 0.5,
			Stagger:  0.03,
			Easing:   easing.MustParse("power3.out"),
		}, FPS)
	answer := effects.Chars("answer", "was in ONE place?",
		display(th, 60, 700, c.White),
		effects.Timing{
			From:     motion.ElementState{OffsetY: -50, Scale: 0.5},
			Duration: 0.8,
			Stagger:  0.03,
			Start:    15,
			Easing:   easing.MustParse("elastic.out(1, 0.3)"),
		}, FPS)
	answerOpacity := fadeIn(15, 30)
	vignette := effects.Vignette{Intensity: 0.3}

	return scene.New("SolutionReveal", 90, c.Dark, func(f float64) *scene.Node {
		return scene.Container("solution",
			effects.RadialGradient("glow", c.Primary, 50, 50, 60, glow.At(f)),
			zoom.Wrap(f,
				row("question-row", -45, question.Node(f)),
				row("answer-row", 35, answer.Node(f)).Fade(answerOpacity.At(f)),
			),
			vignette.Node(f),
		)
	})
}

func productIntro(th scene.Theme) scene.Scene {
	c := th.Colors
	particles := stars(20, 0.2, c.Accent, c.Primary)
	zoom := effects.Zoom{From: 1, To: 1.03, Duration: 105}
	intro := motion.Fade(0, 15, 0, 1, motion.ClampRight(easing.Linear))
	logo := effects.LogoReveal{Style: effects.RevealGlow, GlowColor: c.Primary, Duration: 0.8, Delay: 0.3, FPS: FPS}
	tagline := fadeIn(35, 50)
	vignette := effects.Vignette{Intensity: 0.3}

	return scene.New("ProductIntro", 105, c.Darker, func(f float64) *scene.Node {
		return scene.Container("intro",
			effects.LinearGradient("backdrop", 135, c.Darker, c.Dark, scene.WithAlpha(c.Primary, 0x33)),
			particles.Node(f),
			zoom.Wrap(f,
				row("introducing-row", -100,
					effects.Label("introducing", "INTRODUCING", body(th, 24, 500, c.Accent)),
				).Fade(intro.At(f)),
				logo.Wrap(f,
					effects.Label("wordmark", "Superlinks", display(th, 96, 900, c.White)).Tinted(c.White, c.Accent),
				),
				row("tagline-row", 85,
					effects.Label("tagline", "The all-in-one AI platform for creators", body(th, 20, 400, c.White)).Fade(0.8),
				).Fade(tagline.At(f)),
			),
			vignette.Node(f),
		)
	})
}

func featureDemo(th scene.Theme) scene.Scene {
	c := th.Colors
	scale := motion.Fade(0, 30, 0.9, 1, motion.Clamped(easing.MustParse("out(cubic)")))
	opacity := motion.Fade(0, 20, 0, 1, motion.ClampRight(easing.Linear))
	rotateX := motion.Fade(0, 30, 15, 5, motion.Clamped(easing.Linear))
	rotateY := motion.Fade(0, 30, -10, -3, motion.Clamped(easing.Linear))
	zoom := effects.Zoom{From: 1, To: 1.02, Duration: 120}
	mockup := effects.BrowserMockup{
		URL:      "superlinks.ai",
		TabTitle: "Superlinks - Creator Platform",
		Width:    900,
		Height:   550,
		Shadow:   true,
		Light:    true,
	}

	return scene.New("FeatureDemo", 120, c.Light, func(f float64) *scene.Node {
		card := scene.Container("card",
			mockup.Wrap(scene.Image("screenshot", ScreenshotURL, mockup.Width, mockup.Height-44)),
		).With(scene.Transform{Scale: scale.At(f), RotateX: rotateX.At(f), RotateY: rotateY.At(f)}).
			Fade(opacity.At(f))
		return scene.Container("demo", zoom.Wrap(f, card))
	})
}

func featureBenefits(th scene.Theme) scene.Scene {
	c := th.Colors
	features := []struct {
		icon, text, color string
	}{
		{"📚", "Build courses & guides", c.Primary},
		{"🚀", "AI helps you create faster", c.Secondary},
		{"💰", "Sell smarter", c.Success},
	}
	const box, gap, labelSize = 80, 24, 36
	widest := 0.0
	for _, ft := range features {
		widest = max(widest, box+gap+effects.Measure(ft.text, labelSize))
	}
	type anim struct{ opacity, x, scale *motion.Curve }
	var anims []anim
	for i := range features {
		d := float64(i * 12)
		anims = append(anims, anim{
			opacity: fadeIn(d, d+15),
			x:       motion.Fade(d, d+15, 50, 0, motion.Clamped(easing.MustParse("out(back(1.5))"))),
			scale:   motion.Fade(d, d+15, 0.8, 1, motion.Clamped(easing.Linear)),
		})
	}
	zoom := effects.Zoom{From: 1.02, To: 1, Duration: 120}
	vignette := effects.Vignette{Intensity: 0.3}

	return scene.New("FeatureBenefits", 120, c.Darker, func(f float64) *scene.Node {
		list := scene.Container("features")
		for i, ft := range features {
			a := anims[i]
			item := scene.Container(ft.text,
				effects.Rect("badge", scene.WithAlpha(ft.color, 0x20), box, box, 16).
					With(scene.Transform{Y: -box / 2}),
				scene.Text("icon", ft.icon, scene.Style{FontSize: 48}).With(scene.Transform{X: 16}),
				scene.Text("label", ft.text, display(th, labelSize, 600, c.White)).With(scene.Transform{X: box + gap}),
			).With(scene.Transform{
				X:     -widest/2 + a.x.At(f),
				Y:     float64(i-1) * 120,
				Scale: a.scale.At(f),
			}).Fade(a.opacity.At(f))
			list.Children = append(list.Children, item)
		}
		return scene.Container("benefits",
			effects.RadialGradient("glow-primary", c.Primary, 30, 70, 50, 0.2),
			effects.RadialGradient("glow-accent", c.Accent, 70, 30, 50, 0.15),
			zoom.Wrap(f, list),
			vignette.Node(f),
		)
	})
}

func outcome(th scene.Theme) scene.Scene {
	c := th.Colors
	particles := stars(25, 0.4, c.Success, c.Accent)
	zoom := effects.Zoom{From: 1, To: 1.04, Duration: 120}
	grow := effects.Words("grow", "Grow effortlessly",
		body(th, 30, 500, c.Accent),
		effects.Timing{
			From:     motion.ElementState{OffsetY: 15, Scale: 1},
			Duration: 0.5,
			Stagger:  0.06,
			Easing:   easing.MustParse("power2.out"),
		}, FPS)
	push := effects.PushStream{StreamParams: effects.StreamParams{
		Text:               "Products Sales Analytics Engagement",
		WordsPerGroup:      1,
		FontSize:           70,
		FontWeight:         700,
		Color:              c.White,
		Font:               th.Fonts.Display,
		TransitionDuration: 10,
	}}
	pushOpacity := fadeIn(15, 30)
	closing := fadeIn(50, 65)
	vignette := effects.Vignette{Intensity: 0.3}

	return scene.New("Outcome", 120, c.Dark, func(f float64) *scene.Node {
		return scene.Container("outcome",
			effects.RadialGradient("glow", c.Success, 50, 50, 60, 0.25),
			particles.Node(f),
			zoom.Wrap(f,
				row("grow-row", -90, grow.Node(f)),
				row("push-row", 0, push.Node(f)).Fade(pushOpacity.At(f)),
				row("closing-row", 95,
					effects.Label("closing", "All in one intelligent interface ✓", body(th, 24, 500, c.Success)),
				).Fade(closing.At(f)),
			),
			vignette.Node(f),
		)
	})
}

func tagline1(th scene.Theme) scene.Scene {
	c := th.Colors
	sway := motion.Wave{Divisor: 30, Amplitude: 10}
	zoom := effects.Zoom{From: 1, To: 1.05, Duration: 90}
	outline := effects.OutlineStream{StreamParams: effects.StreamParams{
		Text:               "Turn Your Knowledge Into Income",
		WordsPerGroup:      2,
		FontSize:           80,
		FontWeight:         800,
		Color:              c.White,
		Font:               th.Fonts.Display,
		TransitionDuration: 12,
	}}
	vignette := effects.Vignette{Intensity: 0.2}

	return scene.New("Tagline1", 90, c.Primary, func(f float64) *scene.Node {
		return scene.Container("tagline1",
			effects.LinearGradient("backdrop", 135+sway.Sin(f), c.Primary, c.Secondary, c.Accent),
			zoom.Wrap(f, outline.Node(f)),
			vignette.Node(f),
		)
	})
}

func tagline2(th scene.Theme) scene.Scene {
	c := th.Colors
	particles := stars(40, 0.5, c.Accent, c.Primary, c.White)
	zoom := effects.Zoom{From: 0.98, To: 1.02, Duration: 90}
	platform := effects.Chars("platform", "One Platform",
		display(th, 72, 900, c.White),
		effects.Timing{
			From:     motion.ElementState{Blur: 10, Scale: 1.2},
			Duration: 0.8,
			Stagger:  0.05,
			Easing:   easing.MustParse("power2.out"),
		}, FPS)
	infinite := fadeIn(20, 35)
	vignette := effects.Vignette{Intensity: 0.3}

	return scene.New("Tagline2", 90, c.Darker, func(f float64) *scene.Node {
		return scene.Container("tagline2",
			effects.RadialGradient("glow-primary", c.Primary, 50, 50, 60, 0.3),
			effects.RadialGradient("glow-accent", c.Accent, 20, 80, 50, 0.2),
			particles.Node(f),
			zoom.Wrap(f,
				row("platform-row", -45, platform.Node(f)),
				row("infinite-row", 50,
					effects.Label("infinite", "Infinite Possibilities", display(th, 48, 700, c.Accent)).Tinted(c.Accent, c.Primary),
				).Fade(infinite.At(f)),
			),
			vignette.Node(f),
		)
	})
}

func logoCTA(th scene.Theme) scene.Scene {
	c := th.Colors
	pulse := motion.Wave{Divisor: 10, Amplitude: 0.03}
	particles := stars(30, 0.2, c.Primary, c.Accent)
	zoom := effects.Zoom{From: 1, To: 1.02, Duration: 150}
	logo := effects.LogoReveal{Style: effects.RevealElastic, GlowColor: c.Primary, Duration: 1, FPS: FPS}
	motto := fadeIn(25, 40)
	button := fadeIn(40, 55)
	const label = "Start Free Today →"
	buttonWidth := effects.Measure(label, 24) + 96
	vignette := effects.Vignette{Intensity: 0.3}

	return scene.New("LogoCTA", 150, c.Darker, func(f float64) *scene.Node {
		return scene.Container("cta",
			effects.RadialGradient("glow-primary", c.Primary, 50, 40, 50, 0.25),
			effects.RadialGradient("glow-secondary", c.Secondary, 30, 70, 40, 0.15),
			effects.RadialGradient("glow-accent", c.Accent, 70, 60, 40, 0.1),
			particles.Node(f),
			zoom.Wrap(f,
				row("logo-row", -100, logo.Wrap(f,
					effects.Label("wordmark", "Superlinks", display(th, 96, 900, c.White)).Tinted(c.White, c.Accent),
				)),
				row("motto-row", 10,
					effects.Label("motto", "Build • Launch • Monetize", body(th, 24, 500, c.White)).Fade(0.9),
				).Fade(motto.At(f)),
				scene.Container("button-row",
					effects.Rect("button", c.Primary, buttonWidth, 64, 32).
						Tinted(c.Primary, c.Secondary).
						With(scene.Transform{X: -buttonWidth / 2, Y: -32}),
					effects.Label("button-label", label, display(th, 24, 700, c.White)),
				).With(scene.Transform{Y: 120, Scale: pulse.Pulse(f)}).Fade(button.At(f)),
			),
			vignette.Node(f),
		)
	})
}
