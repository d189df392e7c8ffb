package renderer

import (
	"image"
	"image/color"
	"math"

	"cogentcore.org/core/colors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// point is a screen position in pixels.
type point struct{ x, y float64 }

// canvas wraps a destination image with a reusable rasterizer.
type canvas struct {
	dst *image.RGBA
	ras *vector.Rasterizer
}

func newCanvas(dst *image.RGBA) *canvas {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	return &canvas{dst: dst, ras: r}
}

func (c *canvas) fill(col color.Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) fillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// polygon fills the closed path through pts.
func (c *canvas) polygon(pts []point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	b := c.dst.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
	c.ras.DrawOp = draw.Over
	c.ras.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		c.ras.LineTo(float32(p.x), float32(p.y))
	}
	c.ras.ClosePath()
	c.ras.Draw(c.dst, b, image.NewUniform(col), image.Point{})
}

// line strokes a segment of the given width as a thin quad.
func (c *canvas) line(a, b point, width float64, col color.Color) {
	dx, dy := b.x-a.x, b.y-a.y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	ox, oy := -dy/n*width/2, dx/n*width/2
	c.polygon([]point{
		{a.x + ox, a.y + oy},
		{b.x + ox, b.y + oy},
		{b.x - ox, b.y - oy},
		{a.x - ox, a.y - oy},
	}, col)
}

// text draws s with its baseline-left corner at (x, y).
func (c *canvas) text(s string, x, y int, col color.Color) {
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth returns the advance of s in pixels.
func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

const lineHeight = 13

// parseColor resolves a hex token, falling back to def.
func parseColor(hex string, def color.RGBA) color.RGBA {
	c, err := colors.FromHex(hex)
	if err != nil {
		return def
	}
	return c
}

// shade scales the RGB channels of c by f in [0, 1].
func shade(c color.RGBA, f float64) color.RGBA {
	f = math.Max(0, math.Min(1, f))
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// premultiplied
	f := float64(a) / 255
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: a}
}
