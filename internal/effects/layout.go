package effects

import (
	"strings"
	"unicode/utf8"

	"github.com/ivlev/promoreel/internal/scene"
)

// glyphAdvance approximates the advance width of one glyph as a fraction
// of the font size. Exact metrics belong to the font collaborator.
const glyphAdvance = 0.56

// lineHeight is the line pitch as a fraction of the font size.
const lineHeight = 1.2

func textWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * glyphAdvance
}

// Measure is the approximate rendered width of text.
func Measure(text string, fontSize float64) float64 {
	return textWidth(text, fontSize)
}

// Label is a text run centered horizontally on its origin.
func Label(name, text string, style scene.Style) *scene.Node {
	return scene.Text(name, text, style).With(scene.Transform{X: -textWidth(text, style.FontSize) / 2})
}

// SplitMode selects how text is divided into staggered elements.
type SplitMode int

const (
	SplitWords SplitMode = iota
	SplitChars
)

// placed is one laid-out element, positioned relative to the center of the
// text block.
type placed struct {
	text string
	x, y float64
}

// lay splits text into elements and centers them on the origin, breaking
// lines between words once a line would exceed maxWidth. A zero maxWidth
// keeps everything on one line.
func lay(text string, mode SplitMode, fontSize, maxWidth float64) []placed {
	space := fontSize * glyphAdvance
	lines := wrap(strings.Fields(text), fontSize, maxWidth)

	var out []placed
	for n, line := range lines {
		y := (float64(n) - float64(len(lines)-1)/2) * fontSize * lineHeight
		x := -textWidth(strings.Join(line, " "), fontSize) / 2
		for k, w := range line {
			if k > 0 {
				x += space
			}
			if mode == SplitChars {
				for _, r := range w {
					out = append(out, placed{text: string(r), x: x, y: y})
					x += space
				}
				continue
			}
			out = append(out, placed{text: w, x: x, y: y})
			x += textWidth(w, fontSize)
		}
	}
	return out
}

// wrap greedily fills lines up to maxWidth. A word wider than maxWidth gets
// a line of its own.
func wrap(words []string, fontSize, maxWidth float64) [][]string {
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return [][]string{words}
	}
	var lines [][]string
	var line []string
	for _, w := range words {
		next := append(append([]string(nil), line...), w)
		if len(line) > 0 && textWidth(strings.Join(next, " "), fontSize) > maxWidth {
			lines = append(lines, line)
			line = []string{w}
			continue
		}
		line = next
	}
	return append(lines, line)
}

// group joins words into groups of n.
func group(text string, n int) []string {
	if n <= 0 {
		n = 1
	}
	words := strings.Fields(text)
	var out []string
	for i := 0; i < len(words); i += n {
		end := min(i+n, len(words))
		out = append(out, strings.Join(words[i:end], " "))
	}
	return out
}
