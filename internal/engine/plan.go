package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/renderer"
	"github.com/voxarel/showcase/internal/tour"
)

// Plan is everything needed to render a video: the scene, the tour and the
// precomputed frame sequence.
type Plan struct {
	Tour   *tour.Tour
	Layout *layout.Layout
	// After is the optimized layout in compare mode, nil otherwise.
	After *layout.Layout

	FPS       int
	Frames    []tour.Frame
	EndFrames int
}

// Total is the number of frames including the end card.
func (p *Plan) Total() int { return len(p.Frames) + p.EndFrames }

// Seconds is the length of the video.
func (p *Plan) Seconds() float64 { return float64(p.Total()) / float64(p.FPS) }

// Compare reports whether the plan renders the before/after split view.
func (p *Plan) Compare() bool { return p.After != nil }

// resolveLayouts picks the layout(s) from cache. Compare mode always shows
// the manual packing against the optimized one.
func (p *VideoProject) resolveLayouts() (main, after *layout.Layout, err error) {
	if p.Config.Compare {
		cmp, err := p.Cache.Get(layout.Inefficient)
		if err != nil {
			return nil, nil, err
		}
		after, err = p.Cache.Get(layout.Efficient)
		return cmp, after, err
	}
	policy, err := layout.ParsePolicy(p.Config.Policy)
	if err != nil {
		return nil, nil, err
	}
	main, err = p.Cache.Get(policy)
	return main, nil, err
}

// ResolveTour loads the configured tour: an existing YAML file, then an
// embedded preset, and when nothing is configured a tour planned over l.
func ResolveTour(name string, l *layout.Layout) (*tour.Tour, error) {
	if name == "" {
		return tour.NewDirector().Plan(l)
	}
	if _, err := os.Stat(name); err == nil {
		return tour.ReadTour(name)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return tour.Preset(name)
}

// Plan resolves the scene and tour and steps a controller through them one
// frame at a time. Duration 0 means one full tour cycle.
func (p *VideoProject) Plan(ctx context.Context) (*Plan, error) {
	cfg := p.Config
	main, after, err := p.resolveLayouts()
	if err != nil {
		return nil, err
	}
	t, err := ResolveTour(cfg.Tour, main)
	if err != nil {
		return nil, fmt.Errorf("tour: %w", err)
	}

	duration := cfg.Duration
	if duration <= 0 {
		duration = t.CycleLength()
	}
	n := int(math.Round(duration * float64(cfg.FPS)))
	if n < 1 {
		n = 1
	}

	plan := &Plan{
		Tour:      t,
		Layout:    main,
		After:     after,
		FPS:       cfg.FPS,
		Frames:    make([]tour.Frame, n),
		EndFrames: int(math.Round(cfg.EndCard * float64(cfg.FPS))),
	}

	dt := 1 / float64(cfg.FPS)
	ctrl := tour.NewController(t)
	follow := renderer.NewFollower()
	for i := range plan.Frames {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		f := ctrl.Frame()
		if i > 0 {
			f = ctrl.Advance(dt)
		}
		if cfg.Smoothing {
			f.Pose = follow.Update(f.Pose, dt)
		}
		plan.Frames[i] = f
	}
	return plan, nil
}
