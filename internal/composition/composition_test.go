package composition

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/timeline"
	"github.com/ivlev/promoreel/internal/transition"
)

func solid(name string, duration int) scene.Scene {
	return scene.New(name, duration, "#0f0f14", func(float64) *scene.Node {
		return scene.Text("label", name, scene.Style{})
	})
}

func testTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	tl, err := timeline.New(
		timeline.Sequence(solid("intro", 30)),
		timeline.Transition("fade", transition.Linear, 6),
		timeline.Sequence(solid("outro", 30)),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tl
}

var meta = Metadata{ID: "Test", DurationInFrames: 60, FPS: 30, Width: 1280, Height: 720, Background: "#080810"}

func TestRenderTail(t *testing.T) {
	c, err := New(meta, testTimeline(t), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	f, err := c.Render(53)
	if err != nil {
		t.Fatal(err)
	}
	if l, ok := f.Find("label"); !ok || l.Text != "outro" {
		t.Errorf("frame 53 shows %+v", f)
	}

	for _, frame := range []int{54, 59} {
		f, err := c.Render(frame)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(scene.Frame{Background: "#080810"}, f); diff != "" {
			t.Errorf("tail frame %d (-want +got):\n%s", frame, diff)
		}
		if _, tail, _ := c.Resolve(frame); !tail {
			t.Errorf("frame %d not reported as tail", frame)
		}
	}

	for _, frame := range []int{-1, 60} {
		if _, err := c.Render(frame); !errors.Is(err, timeline.ErrFrameOutOfRange) {
			t.Errorf("frame %d: got %v", frame, err)
		}
	}
}

func TestNewValidates(t *testing.T) {
	tl := testTimeline(t)
	tests := []struct {
		name   string
		meta   Metadata
		audio  []Audio
		stills []Still
	}{
		{"timeline too long", Metadata{DurationInFrames: 50, FPS: 30, Width: 1, Height: 1}, nil, nil},
		{"zero fps", Metadata{DurationInFrames: 60, Width: 1, Height: 1}, nil, nil},
		{"loud audio", meta, []Audio{{Name: "music", Volume: 1.5}}, nil},
		{"orphan still", meta, nil, []Still{{Name: "shot", Scene: "demo"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.meta, tl, tt.audio, tt.stills); !errors.Is(err, ErrInvalidMetadata) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestAssets(t *testing.T) {
	c, err := New(meta, testTimeline(t),
		[]Audio{{Name: "music", URI: "https://example.com/m.mp3", Volume: 0.25}},
		[]Still{{Name: "shot", URI: "https://example.com/s.png", Scene: "outro"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"https://example.com/m.mp3", "https://example.com/s.png"}
	if diff := cmp.Diff(want, c.Assets()); diff != "" {
		t.Errorf("assets (-want +got):\n%s", diff)
	}
	if c.Seconds() != 2 {
		t.Errorf("seconds %v", c.Seconds())
	}
}

func TestDescribe(t *testing.T) {
	c, err := New(meta, testTimeline(t), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		frame int
		want  string
	}{
		{10, "frame 10: intro@10"},
		{27, "frame 27: intro@27 -> outro@3 fade 3/6 p=0.50"},
		{56, "frame 56: tail"},
	}
	for _, tt := range tests {
		got, err := c.Describe(tt.frame)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Describe(%d) = %q, want %q", tt.frame, got, tt.want)
		}
	}
	if _, err := c.Describe(60); !errors.Is(err, timeline.ErrFrameOutOfRange) {
		t.Errorf("Describe(60) error = %v", err)
	}
}
