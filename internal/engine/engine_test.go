package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ivlev/promoreel/internal/composition"
	"github.com/ivlev/promoreel/internal/config"
	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/timeline"
	"github.com/ivlev/promoreel/internal/transition"
	"github.com/ivlev/promoreel/internal/video"
)

// recorder keeps the top-left pixel of every frame.
type recorder struct {
	mu     sync.Mutex
	pixels []color.RGBA
	failAt int
	closed bool
}

func (r *recorder) WriteFrame(img *image.RGBA) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAt > 0 && len(r.pixels) == r.failAt {
		return errors.New("disk full")
	}
	r.pixels = append(r.pixels, img.RGBAAt(0, 0))
	return nil
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func solid(name, bg string, duration int) scene.Scene {
	return scene.New(name, duration, bg, func(float64) *scene.Node {
		return scene.Container("root")
	})
}

func testComposition(t *testing.T) *composition.Composition {
	t.Helper()
	tl, err := timeline.New(
		timeline.Sequence(solid("red", "#ff0000", 20)),
		timeline.Transition("fade", transition.Linear, 4),
		timeline.Sequence(solid("blue", "#0000ff", 20)),
	)
	if err != nil {
		t.Fatal(err)
	}
	c, err := composition.New(composition.Metadata{
		ID: "Test", DurationInFrames: 40, FPS: 30, Width: 32, Height: 18, Background: "#000000",
	}, tl, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func project(t *testing.T, cfg *config.Config, rec *recorder) *VideoProject {
	p := NewVideoProject(cfg, testComposition(t), nil, func(_ context.Context, first, count int) (video.Sink, error) {
		return rec, nil
	})
	p.BenchmarkLog = ""
	return p
}

func TestRunKeepsFrameOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 4
	cfg.ChunkSize = 3
	rec := &recorder{}
	if err := project(t, cfg, rec).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(rec.pixels) != 40 {
		t.Fatalf("wrote %d frames, want 40", len(rec.pixels))
	}
	if !rec.closed {
		t.Error("sink not closed")
	}
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	black := color.RGBA{A: 255}
	for f, px := range rec.pixels {
		var want color.RGBA
		switch {
		case f < 16:
			want = red
		case f < 20:
			continue // fading
		case f < 36:
			want = blue
		default:
			want = black
		}
		if px != want {
			t.Errorf("frame %d pixel %v, want %v", f, px, want)
		}
	}
}

func TestRunRange(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 2
	cfg.Start, cfg.End = 30, 38
	rec := &recorder{}
	var gotFirst, gotCount int
	p := project(t, cfg, rec)
	p.Open = func(_ context.Context, first, count int) (video.Sink, error) {
		gotFirst, gotCount = first, count
		return rec, nil
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotFirst != 30 || gotCount != 8 || len(rec.pixels) != 8 {
		t.Errorf("opened at %d for %d, wrote %d", gotFirst, gotCount, len(rec.pixels))
	}
}

func TestRunSinkError(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 3
	cfg.ChunkSize = 2
	rec := &recorder{failAt: 5}
	err := project(t, cfg, rec).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("error = %v", err)
	}
	if !rec.closed {
		t.Error("sink must be closed on failure")
	}
}

func TestRunDebugStamp(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 1
	cfg.Start, cfg.End = 0, 1
	cfg.Debug = true
	rec := &recorder{}
	p := project(t, cfg, rec)
	p.Composition.Width, p.Composition.Height = 320, 180
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(rec.pixels) != 1 {
		t.Fatalf("wrote %d frames", len(rec.pixels))
	}
}

func TestReportLine(t *testing.T) {
	r := Report{RunID: "abc", Build: "dev", Frames: 60, Workers: 4, Total: 2 * time.Second, Render: time.Second, Encode: time.Second / 2}
	if r.FPS() != 30 {
		t.Errorf("FPS = %v", r.FPS())
	}
	line := r.LogLine(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	want := "[2026-01-02 03:04:05] Run: abc | Build: dev | Frames: 60 | Workers: 4 | Total: 2.00s | Render: 1.00s | Encode: 0.50s | FPS: 30.00\n"
	if line != want {
		t.Errorf("LogLine = %q", line)
	}
	if !strings.Contains(r.String(), "Effective FPS: 30.00") {
		t.Error("report missing fps")
	}
}
