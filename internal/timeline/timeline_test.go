package timeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/transition"
)

// counter renders its local frame as text so tests can see which scene and
// frame were queried.
func counter(name string, duration int) scene.Scene {
	return scene.New(name, duration, "#000000", func(f float64) *scene.Node {
		return scene.Text("frame", fmt.Sprintf("%s@%d", name, int(f)), scene.Style{})
	})
}

func TestTwoScenesOneTransition(t *testing.T) {
	tl, err := New(
		Sequence(counter("a", 90)),
		Transition("fade", transition.Snappy, 8),
		Sequence(counter("b", 90)),
	)
	if err != nil {
		t.Fatal(err)
	}
	if tl.Length() != 172 {
		t.Errorf("length %d, want 172", tl.Length())
	}

	st, err := tl.Resolve(85)
	if err != nil {
		t.Fatal(err)
	}
	if st.Kind != Transitioning {
		t.Fatalf("frame 85: %v, want Transitioning", st.Kind)
	}
	if st.Scene != 0 || st.Local != 85 || st.Incoming != 1 || st.IncomingLocal != 3 {
		t.Errorf("frame 85: %+v", st)
	}
	if st.Progress <= 0 || st.Progress >= 1 {
		t.Errorf("frame 85: progress %v", st.Progress)
	}

	st, err = tl.Resolve(40)
	if err != nil {
		t.Fatal(err)
	}
	want := State{Kind: SingleScene, Frame: 40, Scene: 0, Local: 40}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("frame 40 (-want +got):\n%s", diff)
	}
}

func TestWindowEdges(t *testing.T) {
	tl, _ := New(
		Sequence(counter("a", 90)),
		Transition("fade", transition.Linear, 8),
		Sequence(counter("b", 90)),
	)
	tests := []struct {
		frame int
		kind  Kind
		scene int
		local int
	}{
		{0, SingleScene, 0, 0},
		{81, SingleScene, 0, 81},
		{82, Transitioning, 0, 82},
		{89, Transitioning, 0, 89},
		{90, SingleScene, 1, 8},
		{171, SingleScene, 1, 89},
	}
	for _, tt := range tests {
		st, err := tl.Resolve(tt.frame)
		if err != nil {
			t.Fatalf("frame %d: %v", tt.frame, err)
		}
		if st.Kind != tt.kind || st.Scene != tt.scene || st.Local != tt.local {
			t.Errorf("frame %d: got %v scene %d local %d, want %v scene %d local %d",
				tt.frame, st.Kind, st.Scene, st.Local, tt.kind, tt.scene, tt.local)
		}
	}

	first, _ := tl.Resolve(82)
	if first.Progress != 0 {
		t.Errorf("window start progress %v, want 0", first.Progress)
	}
}

func TestLengthInvariant(t *testing.T) {
	for n := 1; n <= 12; n++ {
		items := []Item{}
		sum, overlap := 0, 0
		for i := 0; i < n; i++ {
			d := 30 + (i*37)%90
			sum += d
			if i > 0 {
				td := 1 + (i*5)%12
				overlap += td
				items = append(items, Transition("slideLeft", transition.Smooth, td))
			}
			items = append(items, Sequence(counter(fmt.Sprintf("s%d", i), d)))
		}
		tl, err := New(items...)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if tl.Length() != sum-overlap {
			t.Errorf("n=%d: length %d, want %d", n, tl.Length(), sum-overlap)
		}

		// Every frame resolves, and single-scene frames cover each scene's
		// unblended middle exactly once.
		for f := 0; f < tl.Length(); f++ {
			st, err := tl.Resolve(f)
			if err != nil {
				t.Fatalf("n=%d frame %d: %v", n, f, err)
			}
			if st.Local < 0 || st.Local >= tl.scenes[st.Scene].DurationInFrames() {
				t.Fatalf("n=%d frame %d: local %d outside scene", n, f, st.Local)
			}
		}
	}
}

func TestCutsAddNoOverlap(t *testing.T) {
	tl, err := New(Sequence(counter("a", 10)), Sequence(counter("b", 20)))
	if err != nil {
		t.Fatal(err)
	}
	if tl.Length() != 30 || tl.Start(1) != 10 {
		t.Errorf("length %d start %d", tl.Length(), tl.Start(1))
	}
	st, _ := tl.Resolve(10)
	if st.Kind != SingleScene || st.Scene != 1 || st.Local != 0 {
		t.Errorf("frame 10: %+v", st)
	}
}

func TestFrameOutOfRange(t *testing.T) {
	tl, _ := New(Sequence(counter("a", 90)), Transition("fade", transition.Snappy, 8), Sequence(counter("b", 90)))
	for _, f := range []int{-1, 172, 1000} {
		if _, err := tl.Resolve(f); !errors.Is(err, ErrFrameOutOfRange) {
			t.Errorf("frame %d: got %v, want ErrFrameOutOfRange", f, err)
		}
		if _, err := tl.Render(f, 1280, 720); !errors.Is(err, ErrFrameOutOfRange) {
			t.Errorf("render frame %d: got %v", f, err)
		}
	}
}

func TestInvalidTransitions(t *testing.T) {
	a, b, c := counter("a", 30), counter("b", 20), counter("c", 30)
	tests := []struct {
		name  string
		items []Item
		want  error
	}{
		{"zero", []Item{Sequence(a), Transition("fade", transition.Linear, 0), Sequence(b)}, ErrInvalidTransitionDuration},
		{"negative", []Item{Sequence(a), Transition("fade", transition.Linear, -4), Sequence(b)}, ErrInvalidTransitionDuration},
		{"longer than incoming", []Item{Sequence(a), Transition("fade", transition.Linear, 21), Sequence(b)}, ErrInvalidTransitionDuration},
		{"longer than outgoing", []Item{Sequence(b), Transition("fade", transition.Linear, 25), Sequence(a)}, ErrInvalidTransitionDuration},
		{"both sides exceed middle", []Item{
			Sequence(a), Transition("fade", transition.Linear, 12), Sequence(b),
			Transition("fade", transition.Linear, 12), Sequence(c),
		}, ErrInvalidTransitionDuration},
		{"unknown presentation", []Item{Sequence(a), Transition("spin", transition.Linear, 8), Sequence(b)}, transition.ErrUnknownPresentation},
		{"leading transition", []Item{Transition("fade", transition.Linear, 8), Sequence(a)}, ErrInvalidLayout},
		{"trailing transition", []Item{Sequence(a), Transition("fade", transition.Linear, 8)}, ErrInvalidLayout},
		{"adjacent transitions", []Item{
			Sequence(a), Transition("fade", transition.Linear, 4), Transition("fade", transition.Linear, 4), Sequence(b),
		}, ErrInvalidLayout},
		{"empty", nil, ErrInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.items...); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRenderBlendsBothScenes(t *testing.T) {
	tl, _ := New(Sequence(counter("a", 90)), Transition("fade", transition.Linear, 8), Sequence(counter("b", 90)))

	f, err := tl.Render(86, 1280, 720)
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, l := range f.Layers {
		if l.Kind == scene.KindText {
			texts = append(texts, l.Text)
		}
	}
	if diff := cmp.Diff([]string{"a@86", "b@4"}, texts); diff != "" {
		t.Errorf("blended texts (-want +got):\n%s", diff)
	}

	single, _ := tl.Render(120, 1280, 720)
	if diff := cmp.Diff(counter("b", 90).Render(38), single); diff != "" {
		t.Errorf("frame 120 (-want +got):\n%s", diff)
	}
}

func TestRenderIsPure(t *testing.T) {
	tl, _ := New(Sequence(counter("a", 90)), Transition("zoomIn", transition.Spring, 10), Sequence(counter("b", 90)))
	// Out-of-order evaluation gives the same frames.
	want, _ := tl.Render(84, 1280, 720)
	for _, f := range []int{170, 3, 84, 0} {
		_, _ = tl.Render(f, 1280, 720)
	}
	got, _ := tl.Render(84, 1280, 720)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("re-render differs:\n%s", diff)
	}
}

func TestPlan(t *testing.T) {
	tl, _ := New(
		Sequence(counter("a", 90)),
		Transition("whipPan", transition.Snappy, 8),
		Sequence(counter("b", 90)),
		Sequence(counter("c", 30)),
	)
	want := Plan{
		Length: 202,
		Scenes: []Placement{
			{Name: "a", Start: 0, Duration: 90},
			{Name: "b", Start: 82, Duration: 90},
			{Name: "c", Start: 172, Duration: 30},
		},
		Transitions: []Window{
			{Presentation: "whipPan", Family: transition.Snappy, Start: 82, Duration: 8, From: "a", To: "b"},
		},
	}
	if diff := cmp.Diff(want, tl.Plan()); diff != "" {
		t.Errorf("plan (-want +got):\n%s", diff)
	}
}
