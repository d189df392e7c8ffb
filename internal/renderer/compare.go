package renderer

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/tour"
)

// CompareFrame draws before and after side by side from the same pose, each
// half captioned with its box count, and the improvement badge centered on top.
func (r *Renderer) CompareFrame(dst *image.RGBA, before, after *layout.Layout, pose tour.Pose, spin float64) error {
	if dst.Bounds() != r.Bounds() {
		return ErrSizeMismatch
	}
	half := *r
	half.Width = r.Width / 2

	stats := layout.Compare(before, after)
	panels := []struct {
		l       *layout.Layout
		title   string
		caption string
	}{
		{before, "Manual", fmt.Sprintf("%d boxes", stats.Before)},
		{after, "AI-optimized", fmt.Sprintf("%d boxes", stats.After)},
	}

	f := tour.Frame{Pose: pose}
	for i, p := range panels {
		panel := image.NewRGBA(half.Bounds())
		if err := half.RenderFrame(panel, Scene{Layout: p.l, Spin: spin, Wireframe: true}, f); err != nil {
			return err
		}
		c := newCanvas(panel)
		_, ch := cardSize(p.title, p.caption)
		half.drawCard(c, image.Pt(cardMargin, r.Height-cardMargin-ch), p.title, p.caption)
		draw.Draw(dst, panel.Bounds().Add(image.Pt(i*half.Width, 0)), panel, image.Point{}, draw.Src)
	}

	c := newCanvas(dst)
	c.fillRect(image.Rect(half.Width-1, 0, half.Width+1, r.Height), r.Accent)
	badge := fmt.Sprintf("+%d%% capacity", stats.Improvement)
	w, _ := cardSize(badge, "")
	r.drawCard(c, image.Pt((r.Width-w)/2, cardMargin), badge, "")
	return nil
}
