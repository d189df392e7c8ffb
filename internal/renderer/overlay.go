package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/voxarel/showcase/internal/tour"
)

const (
	cardPad    = 8
	cardMargin = 16
)

var (
	cardFill  = color.RGBA{0x1e, 0x29, 0x3b, 0xe6}
	titleText = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	subText   = color.RGBA{0x94, 0xa3, 0xb8, 0xff}
)

// cardSize returns the box needed for a title and optional subtitle.
func cardSize(title, subtitle string) (w, h int) {
	w = textWidth(title)
	h = lineHeight
	if subtitle != "" {
		if sw := textWidth(subtitle); sw > w {
			w = sw
		}
		h += lineHeight + 4
	}
	return w + 2*cardPad, h + 2*cardPad
}

// drawCard draws a label card with its top-left corner at at.
func (r *Renderer) drawCard(c *canvas, at image.Point, title, subtitle string) image.Rectangle {
	w, h := cardSize(title, subtitle)
	rect := image.Rect(at.X, at.Y, at.X+w, at.Y+h).Intersect(c.dst.Bounds())
	c.fillRect(rect, cardFill)
	c.fillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+3, rect.Max.Y), r.Accent)

	y := at.Y + cardPad + lineHeight - 3
	c.text(title, at.X+cardPad, y, titleText)
	if subtitle != "" {
		c.text(subtitle, at.X+cardPad, y+lineHeight+4, subText)
	}
	return rect
}

// drawAnnotation pins a card above the projected anchor with a short leader
// line. Anchors behind the camera are skipped.
func (r *Renderer) drawAnnotation(c *canvas, view View, a *tour.Annotation, spin float64) {
	p, ok := projectPoint(view, fromV(a.Anchor).rotateY(spin))
	if !ok {
		return
	}
	w, h := cardSize(a.Title, a.Subtitle)
	x := clampInt(int(p.x)-w/2, cardMargin, r.Width-w-cardMargin)
	y := clampInt(int(p.y)-h-24, cardMargin, r.Height-h-cardMargin)

	c.line(p, point{float64(x + w/2), float64(y + h)}, 1.2, r.Accent)
	c.polygon(circle(p, 3.5), r.Accent)
	r.drawCard(c, image.Pt(x, y), a.Title, a.Subtitle)
}

// drawTooltip docks a caption at one of six screen anchors.
func (r *Renderer) drawTooltip(c *canvas, t *Tooltip) {
	r.drawCard(c, r.TooltipRect(t.Anchor, t.Text).Min, t.Text, "")
}

// TooltipRect reports where a tooltip with text would be docked.
func (r *Renderer) TooltipRect(a tour.Anchor, text string) image.Rectangle {
	w, h := cardSize(text, "")
	x := cardMargin
	if !a.Left() {
		x = r.Width - w - cardMargin
	}
	y := cardMargin
	switch a.Row() {
	case 1:
		y = (r.Height - h) / 2
	case 2:
		y = r.Height - h - cardMargin
	}
	return image.Rect(x, y, x+w, y+h)
}

func circle(c point, radius float64) []point {
	const n = 12
	pts := make([]point, n)
	for i := range pts {
		s, co := math.Sincos(float64(i) / n * 2 * math.Pi)
		pts[i] = point{c.x + radius*co, c.y + radius*s}
	}
	return pts
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
