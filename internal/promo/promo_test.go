package promo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/timeline"
)

func TestCompositionLayout(t *testing.T) {
	c, err := Composition()
	if err != nil {
		t.Fatal(err)
	}
	if c.DurationInFrames != 1260 || c.FPS != 30 || c.Width != 1280 || c.Height != 720 {
		t.Errorf("metadata %+v", c.Metadata)
	}

	plan := c.Timeline.Plan()
	if plan.Length != 1158 {
		t.Errorf("timeline length %d, want 1158", plan.Length)
	}

	sum, overlap := 0, 0
	for _, s := range plan.Scenes {
		sum += s.Duration
	}
	for _, w := range plan.Transitions {
		overlap += w.Duration
	}
	if sum != 1260 || overlap != 102 || plan.Length != sum-overlap {
		t.Errorf("sum %d overlap %d length %d", sum, overlap, plan.Length)
	}

	starts := map[string]int{}
	for _, s := range plan.Scenes {
		starts[s.Name] = s.Start
	}
	want := map[string]int{
		"Hook": 0, "Amplify": 82, "Problem": 164, "Consequence": 261,
		"SolutionReveal": 341, "ProductIntro": 423, "FeatureDemo": 518,
		"FeatureBenefits": 630, "Outcome": 738, "Tagline1": 848,
		"Tagline2": 930, "LogoCTA": 1008,
	}
	if diff := cmp.Diff(want, starts); diff != "" {
		t.Errorf("scene starts (-want +got):\n%s", diff)
	}

	var names []string
	for _, w := range plan.Transitions {
		names = append(names, w.Presentation)
	}
	wantNames := []string{
		"whipPan", "glitch", "slideLeft", "zoomIn", "flashWhite", "slideUp",
		"wipeRight", "blurDissolve", "zoomOut", "slideRight", "morphCircle",
	}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("transitions (-want +got):\n%s", diff)
	}
}

func TestEveryFrameRenders(t *testing.T) {
	c, err := Composition()
	if err != nil {
		t.Fatal(err)
	}
	for f := 0; f < c.DurationInFrames; f++ {
		if _, err := c.Render(f); err != nil {
			t.Fatalf("frame %d: %v", f, err)
		}
	}
	if _, err := c.Render(c.DurationInFrames); !errors.Is(err, timeline.ErrFrameOutOfRange) {
		t.Errorf("frame past the end: %v", err)
	}

	tail, _ := c.Render(1200)
	if diff := cmp.Diff(scene.Frame{Background: Theme.Colors.Darker}, tail); diff != "" {
		t.Errorf("tail frame (-want +got):\n%s", diff)
	}
}

func TestResolveHookToAmplify(t *testing.T) {
	c, _ := Composition()
	st, tail, err := c.Resolve(85)
	if err != nil || tail {
		t.Fatalf("resolve: %v tail=%v", err, tail)
	}
	if st.Kind != timeline.Transitioning || st.Transition.Presentation != "whipPan" {
		t.Errorf("frame 85: %+v", st)
	}
}

func TestSceneSpotChecks(t *testing.T) {
	tl, err := Timeline(Theme)
	if err != nil {
		t.Fatal(err)
	}
	scenes := map[string]scene.Scene{}
	for _, s := range tl.Scenes() {
		scenes[s.Name()] = s
	}

	hook := scenes["Hook"].Render(12)
	if l, ok := hook.Find("group-0"); !ok || l.Text != "Create" || l.Opacity != 1 {
		t.Errorf("hook frame 12: %+v", l)
	}

	if _, ok := scenes["Consequence"].Render(0).Find("Scattered tools/text"); ok {
		t.Error("first pain point visible at frame 0")
	}
	if l, ok := scenes["Consequence"].Render(12).Find("Scattered tools/text"); !ok || l.Opacity != 1 {
		t.Errorf("first pain point at frame 12: %+v", l)
	}

	demo := scenes["FeatureDemo"].Render(60)
	if l, ok := demo.Find("screenshot"); !ok || l.Asset != ScreenshotURL {
		t.Errorf("screenshot layer %+v", l)
	}

	// The call to action is settled by the last frame.
	end := scenes["LogoCTA"].Render(149)
	if l, ok := end.Find("button-label"); !ok || l.Opacity != 1 {
		t.Errorf("cta button at end: %+v", l)
	}
}

func TestRenderDeterministic(t *testing.T) {
	c, _ := Composition()
	a, _ := c.Render(600)
	for _, f := range []int{1000, 12, 599, 601} {
		_, _ = c.Render(f)
	}
	b, _ := c.Render(600)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("frame 600 changed between renders:\n%s", diff)
	}
}
