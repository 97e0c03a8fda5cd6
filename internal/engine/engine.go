package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/promoreel/internal/composition"
	"github.com/ivlev/promoreel/internal/config"
	"github.com/ivlev/promoreel/internal/raster"
	"github.com/ivlev/promoreel/internal/system"
	"github.com/ivlev/promoreel/internal/video"
)

// Opener starts the output for a run of count frames beginning at first.
type Opener func(ctx context.Context, first, count int) (video.Sink, error)

// VideoProject renders a frame range of a composition and streams it into
// a sink.
type VideoProject struct {
	Config      *config.Config
	Composition *composition.Composition
	Images      raster.Images
	Open        Opener

	// BenchmarkLog receives one line per run when stats are on.
	BenchmarkLog string
}

func NewVideoProject(cfg *config.Config, comp *composition.Composition, images raster.Images, open Opener) *VideoProject {
	return &VideoProject{Config: cfg, Composition: comp, Images: images, Open: open, BenchmarkLog: "benchmark.log"}
}

// chunk is a contiguous run of frames rendered by one worker.
type chunk struct {
	first  int
	frames []*image.RGBA
	err    error
}

func (p *VideoProject) Run(ctx context.Context) error {
	runID := uuid.New()
	startTime := time.Now()
	c := p.Composition
	start, end := p.Config.Range(c.DurationInFrames)
	count := end - start
	workers := max(p.Config.Workers, 1)
	size := max(p.Config.ChunkSize, 1)

	fmt.Println("--- [PROJECT: PROMOREEL] ---")
	fmt.Printf("[*] Run: %s | Composition: %s | Кадры: [%d, %d)\n", runID, c.ID, start, end)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Потоков: %d\n", c.Width, c.Height, c.FPS, workers)
	fmt.Println("-----------------------------")

	sink, err := p.Open(ctx, start, count)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}

	// Each renderer caches font faces, so workers share a fixed set.
	renderers := make(chan *raster.Renderer, workers)
	for i := 0; i < workers; i++ {
		renderers <- raster.New(c.Width, c.Height, p.Images)
	}

	var chunks []chan chunk
	for first := start; first < end; first += size {
		chunks = append(chunks, make(chan chunk, 1))
	}
	// window bounds rendered chunks waiting for the writer.
	window := make(chan struct{}, 2*workers)

	g, gctx := errgroup.WithContext(ctx)
	var renderTime, encodeTime time.Duration

	g.Go(func() error {
		rs := time.Now()
		defer func() { renderTime = time.Since(rs) }()
		rg, rctx := errgroup.WithContext(gctx)
		rg.SetLimit(workers)
		for i, first := 0, start; first < end; i, first = i+1, first+size {
			select {
			case window <- struct{}{}:
			case <-rctx.Done():
				return rg.Wait()
			}
			first := first
			out, last := chunks[i], min(first+size, end)
			rg.Go(func() error {
				r := <-renderers
				defer func() { renderers <- r }()
				ch := p.renderChunk(rctx, r, first, last)
				out <- ch
				return ch.err
			})
		}
		return rg.Wait()
	})

	g.Go(func() error {
		done := 0
		for _, in := range chunks {
			var ch chunk
			select {
			case ch = <-in:
			case <-gctx.Done():
				return gctx.Err()
			}
			if ch.err != nil {
				return ch.err
			}
			es := time.Now()
			for _, img := range ch.frames {
				if err := sink.WriteFrame(img); err != nil {
					return fmt.Errorf("write frame %d: %w", ch.first, err)
				}
				raster.PutImage(img)
			}
			encodeTime += time.Since(es)
			done += len(ch.frames)
			<-window
			fmt.Printf("[>] Ready: %d/%d\n", done, count)
		}
		return nil
	})

	err = g.Wait()
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if p.Config.ShowStats {
		p.report(Report{
			RunID:   runID.String(),
			Build:   p.Config.BuildVersion,
			Frames:  count,
			Workers: workers,
			Total:   time.Since(startTime),
			Render:  renderTime,
			Encode:  encodeTime,
			Host:    system.Host(),
		})
	}
	return nil
}

func (p *VideoProject) renderChunk(ctx context.Context, r *raster.Renderer, first, last int) chunk {
	ch := chunk{first: first}
	for f := first; f < last; f++ {
		if err := ctx.Err(); err != nil {
			ch.err = err
			break
		}
		img, err := p.renderFrame(r, f)
		if err != nil {
			ch.err = fmt.Errorf("frame %d: %w", f, err)
			break
		}
		ch.frames = append(ch.frames, img)
	}
	if ch.err != nil {
		for _, img := range ch.frames {
			raster.PutImage(img)
		}
		ch.frames = nil
	}
	return ch
}

func (p *VideoProject) renderFrame(r *raster.Renderer, f int) (*image.RGBA, error) {
	frame, err := p.Composition.Render(f)
	if err != nil {
		return nil, err
	}
	img, err := r.Render(frame)
	if err != nil {
		return nil, err
	}
	if p.Config.Debug {
		label, err := p.Composition.Describe(f)
		if err != nil {
			return nil, err
		}
		if err := raster.Stamp(img, label, fmt.Sprintf("%s:%d", p.Composition.ID, f)); err != nil {
			log.Printf("[!] Debug stamp frame %d: %v", f, err)
		}
	}
	return img, nil
}

// Report is the performance summary of one run.
type Report struct {
	RunID   string
	Build   string
	Frames  int
	Workers int
	Total   time.Duration
	Render  time.Duration
	Encode  time.Duration
	Host    system.HostStats
}

func (r Report) FPS() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Total.Seconds()
}

func (r Report) String() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Run: %s\n"+
			"Build: %s\n"+
			"Host: %s\n"+
			"Workers: %d\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		r.RunID, r.Build, r.Host, r.Workers, r.Total.Seconds(), r.Render.Seconds(), r.Encode.Seconds(), r.FPS(),
	)
}

// LogLine is the benchmark.log entry for the run.
func (r Report) LogLine(at time.Time) string {
	return fmt.Sprintf("[%s] Run: %s | Build: %s | Frames: %d | Workers: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		at.Format("2006-01-02 15:04:05"), r.RunID, r.Build, r.Frames, r.Workers,
		r.Total.Seconds(), r.Render.Seconds(), r.Encode.Seconds(), r.FPS())
}

func (p *VideoProject) report(r Report) {
	fmt.Print(r.String())
	if p.BenchmarkLog == "" {
		return
	}
	f, err := os.OpenFile(p.BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Не удалось записать %s: %v\n", p.BenchmarkLog, err)
		return
	}
	defer f.Close()
	f.WriteString(r.LogLine(time.Now()))
}
