// Package effects holds the default stream and reveal renderers the scenes
// call with a small fixed parameter set. Each returns a scene subtree for a
// local frame and keeps no state between calls.
package effects

import (
	"fmt"

	"github.com/ivlev/promoreel/internal/easing"
	"github.com/ivlev/promoreel/internal/motion"
	"github.com/ivlev/promoreel/internal/scene"
)

// Renderer produces a visual subtree for a local frame.
type Renderer interface {
	Node(frame float64) *scene.Node
}

// StreamParams is the parameter set shared by cascading text streams.
type StreamParams struct {
	Text               string
	WordsPerGroup      int
	FontSize           float64
	FontWeight         int
	Color              string
	Font               string
	TransitionDuration int
	// GroupFrames is how long each group holds before the next enters.
	// Zero means 5/2 of TransitionDuration.
	GroupFrames int
}

func (p StreamParams) stagger() motion.Stagger {
	hold := p.GroupFrames
	if hold <= 0 {
		hold = p.TransitionDuration * 5 / 2
	}
	return motion.Stagger{
		Count:    len(group(p.Text, p.WordsPerGroup)),
		Delay:    float64(hold),
		Duration: float64(p.TransitionDuration),
	}
}

func (p StreamParams) style() scene.Style {
	return scene.Style{Color: p.Color, Font: p.Font, FontSize: p.FontSize, FontWeight: p.FontWeight}
}

// current returns the index of the newest group that has started.
func current(s motion.Stagger, frame float64) int {
	idx := 0
	for i := 0; i < s.Count; i++ {
		if from, _ := s.Window(i); frame >= from {
			idx = i
		}
	}
	return idx
}

// StompStream slams one word group at a time onto the screen: each group
// drops from a large scale to rest and replaces the previous one.
type StompStream struct{ StreamParams }

func (s StompStream) Node(frame float64) *scene.Node {
	groups := group(s.Text, s.WordsPerGroup)
	st := s.stagger()
	root := scene.Container("stomp")
	if len(groups) == 0 {
		return root
	}

	i := current(st, frame)
	p := easing.MustLookup(easing.BackOut)(st.Progress(i, frame))
	fade := motion.Clamp01(st.Progress(i, frame) * 3)

	text := groups[i]
	node := scene.Text(fmt.Sprintf("group-%d", i), text, s.style()).
		With(scene.Transform{X: -textWidth(text, s.FontSize) / 2, Scale: 1.8 - 0.8*p}).
		Fade(fade)
	root.Children = append(root.Children, node)
	return root
}

// PushStream pushes each new group up from below while the previous group
// exits upward.
type PushStream struct{ StreamParams }

func (s PushStream) Node(frame float64) *scene.Node {
	groups := group(s.Text, s.WordsPerGroup)
	st := s.stagger()
	root := scene.Container("push")
	if len(groups) == 0 {
		return root
	}

	ease := easing.MustLookup(easing.CubicOut)
	i := current(st, frame)
	p := ease(st.Progress(i, frame))
	travel := s.FontSize * 0.8

	if i > 0 {
		prev := groups[i-1]
		root.Children = append(root.Children,
			scene.Text(fmt.Sprintf("group-%d", i-1), prev, s.style()).
				With(scene.Transform{X: -textWidth(prev, s.FontSize) / 2, Y: -travel * p}).
				Fade(1-p))
	}

	text := groups[i]
	root.Children = append(root.Children,
		scene.Text(fmt.Sprintf("group-%d", i), text, s.style()).
			With(scene.Transform{X: -textWidth(text, s.FontSize) / 2, Y: travel * (1 - p)}).
			Fade(p))
	return root
}

// OutlineStream accumulates groups on stacked lines. Each group first
// draws as an outline, then fills in.
type OutlineStream struct{ StreamParams }

func (s OutlineStream) Node(frame float64) *scene.Node {
	groups := group(s.Text, s.WordsPerGroup)
	st := s.stagger()
	root := scene.Container("outline")

	top := -float64(len(groups)-1) / 2 * s.FontSize * lineHeight
	for i, text := range groups {
		p := st.Progress(i, frame)
		if p <= 0 {
			continue
		}
		style := s.style()
		style.Stroke = s.Color
		if p < 0.5 {
			style.Color = ""
		}
		root.Children = append(root.Children,
			scene.Text(fmt.Sprintf("group-%d", i), text, style).
				With(scene.Transform{
					X: -textWidth(text, s.FontSize) / 2,
					Y: top + float64(i)*s.FontSize*lineHeight,
				}).
				Fade(motion.Clamp01(p*2)))
	}
	return root
}

// SplitText reveals text element by element (words or characters) with a
// staggered from-state. Lines are centered and break at MaxWidth when set.
type SplitText struct {
	Name     string
	Text     string
	Mode     SplitMode
	Style    scene.Style
	MaxWidth float64
	Reveal   motion.Reveal
}

func (s SplitText) Node(frame float64) *scene.Node {
	parts := lay(s.Text, s.Mode, s.Style.FontSize, s.MaxWidth)
	reveal := s.Reveal
	reveal.Stagger.Count = len(parts)

	root := scene.Container(s.Name)
	for i, part := range parts {
		st := reveal.Element(i, frame)
		node := scene.Text(fmt.Sprintf("%s-%d", s.Name, i), part.text, s.Style).
			With(scene.Transform{
				X:     part.x + st.OffsetX,
				Y:     part.y + st.OffsetY,
				Scale: st.Scale,
			}).
			Fade(st.Opacity).
			Blurred(st.Blur)
		root.Children = append(root.Children, node)
	}
	return root
}

// Wrapped returns a copy that breaks lines at width.
func (s SplitText) Wrapped(width float64) SplitText {
	s.MaxWidth = width
	return s
}

// Timing is a staggered reveal written in seconds, the way the script
// specifies it, plus the frame the first element starts on.
type Timing struct {
	From     motion.ElementState
	Duration float64
	Stagger  float64
	Start    float64
	Easing   easing.Family
}

// Reveal converts the timing to frames at fps.
func (t Timing) Reveal(fps int) motion.Reveal {
	return motion.Reveal{
		Stagger: motion.Stagger{
			Start:    t.Start,
			Delay:    motion.SecondsToFrames(t.Stagger, fps),
			Duration: motion.SecondsToFrames(t.Duration, fps),
		},
		Easing: t.Easing,
		From:   t.From,
	}
}

// Words reveals text word by word.
func Words(name, text string, style scene.Style, t Timing, fps int) SplitText {
	return SplitText{Name: name, Text: text, Mode: SplitWords, Style: style, Reveal: t.Reveal(fps)}
}

// Chars reveals text character by character.
func Chars(name, text string, style scene.Style, t Timing, fps int) SplitText {
	return SplitText{Name: name, Text: text, Mode: SplitChars, Style: style, Reveal: t.Reveal(fps)}
}
