package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/voxarel/showcase/internal/config"
	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/renderer"
	"github.com/voxarel/showcase/internal/system"
	"github.com/voxarel/showcase/internal/video"
)

// VideoProject renders a tour over a container layout into a video file.
type VideoProject struct {
	Config   *config.Config
	Cache    *layout.Cache
	Encoder  video.Encoder
	Renderer *renderer.Renderer
	Logger   *log.Logger
	// Out receives the progress lines, os.Stdout when nil.
	Out io.Writer
	// BenchmarkLog is appended to when ShowStats is set, "" disables it.
	BenchmarkLog string
}

func NewVideoProject(cfg *config.Config, cache *layout.Cache, ve video.Encoder, logger *log.Logger) *VideoProject {
	if logger == nil {
		logger = log.Default()
	}
	r := renderer.New(cfg.Width, cfg.Height)
	if cfg.Accent != "" {
		r.SetAccent(cfg.Accent)
	}
	return &VideoProject{
		Config:       cfg,
		Cache:        cache,
		Encoder:      ve,
		Renderer:     r,
		Logger:       logger,
		BenchmarkLog: "benchmark.log",
	}
}

func (p *VideoProject) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p *VideoProject) endCard() renderer.EndCardOptions {
	opts := renderer.DefaultEndCard
	opts.URL = p.Config.EndCardURL
	return opts
}

// renderIndex draws frame i of plan into dst.
func (p *VideoProject) renderIndex(dst *image.RGBA, plan *Plan, i int) error {
	if i >= len(plan.Frames) {
		return p.Renderer.EndCard(dst, p.endCard())
	}
	f := plan.Frames[i]
	spin := p.Config.Spin * float64(i) / float64(plan.FPS)
	if plan.Compare() {
		return p.Renderer.CompareFrame(dst, plan.Layout, plan.After, f.Pose, spin)
	}
	scene := renderer.Scene{Layout: plan.Layout, Spin: spin, Wireframe: p.Config.Wireframe}
	return p.Renderer.RenderFrame(dst, scene, f)
}

// RenderResult is one finished frame waiting for its turn at the encoder.
type RenderResult struct {
	Index int
	Image *image.RGBA
}

type timings struct {
	start, renderEnd, end time.Time
}

func (p *VideoProject) Run(ctx context.Context) error {
	var tm timings
	tm.start = time.Now()
	cfg := p.Config

	plan, err := p.Plan(ctx)
	if err != nil {
		return err
	}

	encoder := cfg.VideoEncoder
	if encoder == config.AutoEncoder {
		encoder = system.GetBestH264Encoder(ctx, cfg.FFmpeg, p.Logger)
	}

	if dir := filepath.Dir(cfg.OutputVideo); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	w := p.out()
	fmt.Fprintln(w, "--- [PROJECT: SHOWCASE ENGINE] ---")
	fmt.Fprintf(w, "[*] Scene: %s | Tour: %s (%d stops) | Frames: %d\n",
		sceneName(plan), plan.Tour.Name, len(plan.Tour.Stops), plan.Total())
	fmt.Fprintf(w, "[*] Resolution: %dx%d @ %d FPS | Encoder: %s | Workers: %d\n",
		cfg.Width, cfg.Height, cfg.FPS, encoder, cfg.Workers)
	fmt.Fprintln(w, "----------------------------------")

	params := cfg.StreamParams(encoder, plan.Seconds())
	if err := p.stream(ctx, plan, params, &tm); err != nil {
		return err
	}
	tm.end = time.Now()

	p.Logger.Info("[*] video ready", "path", cfg.OutputVideo, "seconds", fmt.Sprintf("%.2f", plan.Seconds()))
	if cfg.ShowStats {
		p.report(ctx, plan, encoder, tm)
	}
	return nil
}

// stream renders frames on a bounded pool and hands them to the encoder in
// order. At most 2×workers frames are in flight at once.
func (p *VideoProject) stream(ctx context.Context, plan *Plan, params video.StreamParams, tm *timings) error {
	total := plan.Total()
	workers := p.Config.Workers
	if workers > total {
		workers = total
	}

	slots := make([]chan *image.RGBA, total)
	for i := range slots {
		slots[i] = make(chan *image.RGBA, 1)
	}
	window := make(chan struct{}, 2*workers)
	frames := make(chan *image.RGBA, workers)
	bounds := p.Renderer.Bounds()

	g, gctx := errgroup.WithContext(ctx)

	// 1. Render pool (CPU bound)
	g.Go(func() error {
		defer func() { tm.renderEnd = time.Now() }()
		rg, rctx := errgroup.WithContext(gctx)
		rg.SetLimit(workers)
	dispatch:
		for i := 0; i < total; i++ {
			select {
			case window <- struct{}{}:
			case <-rctx.Done():
				break dispatch
			}
			rg.Go(func() error {
				img := system.GetImage(bounds)
				if err := p.renderIndex(img, plan, i); err != nil {
					system.PutImage(img)
					return fmt.Errorf("render frame %d: %w", i, err)
				}
				slots[i] <- img
				return nil
			})
		}
		if err := rg.Wait(); err != nil {
			return err
		}
		return gctx.Err()
	})

	// 2. Reorder into the encoder's input
	g.Go(func() error {
		defer close(frames)
		w := p.out()
		for i := 0; i < total; i++ {
			var res RenderResult
			select {
			case img := <-slots[i]:
				res = RenderResult{Index: i, Image: img}
			case <-gctx.Done():
				return gctx.Err()
			}
			select {
			case frames <- res.Image:
			case <-gctx.Done():
				system.PutImage(res.Image)
				return gctx.Err()
			}
			<-window
			if n := res.Index + 1; n%plan.FPS == 0 || n == total {
				fmt.Fprintf(w, "[>] Ready: %d/%d\n", n, total)
			}
		}
		return nil
	})

	// 3. Encoder
	g.Go(func() error {
		if err := p.Encoder.Encode(gctx, frames, p.Config.OutputVideo, params); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func sceneName(plan *Plan) string {
	if plan.Compare() {
		return fmt.Sprintf("%s vs %s", plan.Layout.Policy, plan.After.Policy)
	}
	return plan.Layout.Policy.String()
}

// Snapshot writes a PNG of the tour at elapsed time at, without smoothing.
func (p *VideoProject) Snapshot(ctx context.Context, at float64, path string) error {
	main, after, err := p.resolveLayouts()
	if err != nil {
		return err
	}
	t, err := ResolveTour(p.Config.Tour, main)
	if err != nil {
		return fmt.Errorf("tour: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := t.FrameAt(at)
	img := p.Renderer.NewFrame()
	spin := p.Config.Spin * at
	if after != nil {
		err = p.Renderer.CompareFrame(img, main, after, f.Pose, spin)
	} else {
		err = p.Renderer.RenderFrame(img, renderer.Scene{Layout: main, Spin: spin, Wireframe: p.Config.Wireframe}, f)
	}
	if err != nil {
		return err
	}
	if err := renderer.WritePNG(path, img); err != nil {
		return err
	}
	p.Logger.Info("[*] snapshot written", "path", path, "at", at, "stop", f.State.Stop, "phase", f.State.Phase)
	return nil
}
