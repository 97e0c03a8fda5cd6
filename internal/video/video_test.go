package video

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildArgsVideoOnly(t *testing.T) {
	args := buildArgs("out.mp4", Params{Width: 1280, Height: 720, FPS: 30, Duration: 42, Encoder: "libx264", Quality: 23})
	want := []string{
		"-y", "-f", "rawvideo", "-pixel_format", "rgba", "-video_size", "1280x720", "-framerate", "30", "-i", "-",
		"-map", "0:v",
		"-t", "42.000000", "-pix_fmt", "yuv420p", "-c:v", "libx264", "-crf", "23", "-preset", "medium",
		"out.mp4",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArgsMixesAudio(t *testing.T) {
	args := buildArgs("out.mp4", Params{
		Width: 1280, Height: 720, FPS: 30, Offset: 2, Duration: 10,
		Audio: []Track{
			{Path: "music.mp3", Volume: 0.25},
			{Path: "muted.mp3", Volume: 0},
			{Path: "voice.mp3", Volume: 1},
		},
		Encoder: "h264_nvenc", Quality: 28,
	})
	joined := strings.Join(args, " ")
	for _, part := range []string{
		"-ss 2.000000 -i music.mp3",
		"-ss 2.000000 -i voice.mp3",
		"[1:a]volume=0.250[a0];[2:a]volume=1.000[a1];[a0][a1]amix=inputs=2:duration=longest:normalize=0[aout]",
		"-map [aout]",
		"-cq 28",
	} {
		if !strings.Contains(joined, part) {
			t.Errorf("args %q missing %q", joined, part)
		}
	}
	if strings.Contains(joined, "muted.mp3") {
		t.Error("silent track should be skipped")
	}
}

func TestQualityArgs(t *testing.T) {
	if diff := cmp.Diff([]string{"-b:v", "7500k"}, qualityArgs("h264_videotoolbox", 75)); diff != "" {
		t.Error(diff)
	}
}

func TestWriteRawRGBAPacksSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	var buf bytes.Buffer
	if err := writeRawRGBA(&buf, sub); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2*2*4 {
		t.Fatalf("wrote %d bytes", buf.Len())
	}
	if buf.Bytes()[0] != img.Pix[img.PixOffset(1, 1)] {
		t.Error("first pixel should come from (1,1)")
	}
}

func TestPNGSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	seq := &PNGSequence{Dir: dir, First: 82}
	for i := 0; i < 2; i++ {
		if err := seq.WriteFrame(image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
			t.Fatal(err)
		}
	}
	if err := seq.Close(); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "frame_00083.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Errorf("decoded size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestDefaultQuality(t *testing.T) {
	for enc, want := range map[string]int{"h264_videotoolbox": 75, "h264_nvenc": 28, "libx264": 23} {
		if got := DefaultQuality(enc); got != want {
			t.Errorf("DefaultQuality(%s) = %d, want %d", enc, got, want)
		}
	}
}
