// Package video turns rendered frames into files: an ffmpeg stream fed raw
// RGBA on stdin, or a numbered PNG sequence.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Sink receives frames in output order.
type Sink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// Track is an audio overlay mixed under the video at the given volume.
type Track struct {
	Path   string
	Volume float64
}

// Params describes the encoded stream. Offset is where the rendered range
// starts within the composition, in seconds; audio is trimmed to match.
type Params struct {
	Width, Height int
	FPS           int
	Offset        float64
	Duration      float64
	Audio         []Track
	Encoder       string
	Quality       int
}

type FFmpegEncoder struct {
	Path string
}

// Open starts ffmpeg writing to output. Frames written to the returned
// sink must match p's size.
func (e *FFmpegEncoder) Open(ctx context.Context, output string, p Params) (Sink, error) {
	bin := e.Path
	if bin == "" {
		bin = "ffmpeg"
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, err
	}

	s := &ffmpegSink{}
	s.cmd = exec.CommandContext(ctx, bin, buildArgs(output, p)...)
	s.cmd.Stdout = &s.log
	s.cmd.Stderr = &s.log

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin
	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func buildArgs(output string, p Params) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
	}

	var tracks []Track
	for _, t := range p.Audio {
		if t.Path != "" && t.Volume > 0 {
			tracks = append(tracks, t)
		}
	}
	for _, t := range tracks {
		if p.Offset > 0 {
			args = append(args, "-ss", fmt.Sprintf("%f", p.Offset))
		}
		args = append(args, "-i", t.Path)
	}

	args = append(args, "-map", "0:v")
	if len(tracks) > 0 {
		var graph strings.Builder
		for i, t := range tracks {
			fmt.Fprintf(&graph, "[%d:a]volume=%.3f[a%d];", i+1, t.Volume, i)
		}
		for i := range tracks {
			fmt.Fprintf(&graph, "[a%d]", i)
		}
		fmt.Fprintf(&graph, "amix=inputs=%d:duration=longest:normalize=0[aout]", len(tracks))
		args = append(args, "-filter_complex", graph.String(), "-map", "[aout]", "-c:a", "aac")
	}

	args = append(args,
		"-t", fmt.Sprintf("%f", p.Duration),
		"-pix_fmt", "yuv420p",
		"-c:v", p.Encoder,
	)
	args = append(args, qualityArgs(p.Encoder, p.Quality)...)
	return append(args, output)
}

// Качество в зависимости от энкодера
func qualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую. Используем битрейт.
		bitrate := quality * 100
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

type ffmpegSink struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	log   bytes.Buffer
}

func (s *ffmpegSink) WriteFrame(img *image.RGBA) error {
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

func (s *ffmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, s.log.String())
	}
	return nil
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	// Проверяем стандартный шаг (stride)
	if img.Stride != bounds.Dx()*4 || img.Rect.Min.X != 0 || img.Rect.Min.Y != 0 {
		packed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		img = packed
	}
	_, err := w.Write(img.Pix)
	return err
}

// PNGSequence writes frame_00000.png, frame_00001.png and so on, numbered
// from First.
type PNGSequence struct {
	Dir   string
	First int

	next int
}

func (s *PNGSequence) WriteFrame(img *image.RGBA) error {
	if s.next == 0 {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return err
		}
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("frame_%05d.png", s.First+s.next))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	s.next++
	return f.Close()
}

func (s *PNGSequence) Close() error { return nil }

// DefaultQuality is the quality setting used when none is configured.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // Хорошее качество для VideoToolbox
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}
