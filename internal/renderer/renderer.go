package renderer

import (
	"errors"
	"image"
	"image/color"
	"sort"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/tour"
)

// ErrSizeMismatch is returned when the destination does not match the
// renderer's viewport.
var ErrSizeMismatch = errors.New("destination size does not match renderer")

// Scene is what gets drawn: a layout, optionally spun about the Y axis.
type Scene struct {
	Layout *layout.Layout
	Spin   float64 // radians
	// Wireframe draws the layout's envelope as an outline.
	Wireframe bool
	// Tooltip, when set, docks a caption bubble at a screen anchor.
	Tooltip *Tooltip
}

// Tooltip is a caption pinned to one of the stepper's screen anchors.
type Tooltip struct {
	Anchor tour.Anchor
	Text   string
}

// Renderer draws flat-shaded boxes with a perspective camera.
type Renderer struct {
	Width, Height int
	FOV           float64 // degrees
	Background    color.RGBA
	Accent        color.RGBA
	Light         [3]float64 // direction toward the light, need not be unit
	Ambient       float64
}

// New returns a renderer with the site's dark slate look.
func New(width, height int) *Renderer {
	return &Renderer{
		Width:      width,
		Height:     height,
		FOV:        35,
		Background: color.RGBA{0x0f, 0x17, 0x2a, 0xff},
		Accent:     parseColor(layout.DefaultAccent, color.RGBA{0x06, 0xb6, 0xd4, 0xff}),
		Light:      [3]float64{10, 10, 5},
		Ambient:    0.45,
	}
}

// SetAccent sets the highlight color from a hex string. Invalid input keeps
// the current accent.
func (r *Renderer) SetAccent(hex string) {
	r.Accent = parseColor(hex, r.Accent)
}

// Bounds is the viewport rectangle.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// NewFrame allocates a destination image for RenderFrame.
func (r *Renderer) NewFrame() *image.RGBA {
	return image.NewRGBA(r.Bounds())
}

// RenderFrame draws scene as seen from f.Pose, then the visible annotation
// and any tooltip.
func (r *Renderer) RenderFrame(dst *image.RGBA, scene Scene, f tour.Frame) error {
	if dst.Bounds() != r.Bounds() {
		return ErrSizeMismatch
	}
	c := newCanvas(dst)
	c.fill(r.Background)

	view := Camera{Pose: f.Pose, FOV: r.FOV}.View(r.Width, r.Height)
	if scene.Layout != nil {
		if scene.Wireframe {
			r.drawEnvelope(c, view, scene.Layout.Envelope, scene.Spin)
		}
		r.drawBoxes(c, view, scene.Layout.Boxes, scene.Spin)
	}
	if f.Annotation != nil {
		r.drawAnnotation(c, view, f.Annotation, scene.Spin)
	}
	if scene.Tooltip != nil {
		r.drawTooltip(c, scene.Tooltip)
	}
	return nil
}

// face is one visible quad queued for painting.
type face struct {
	pts   [4]point
	depth float64
	col   color.RGBA
}

// Corner order per face; normals point outward.
var cubeFaces = [6]struct {
	normal  vec3
	corners [4]int
}{
	{vec3{1, 0, 0}, [4]int{1, 3, 7, 5}},
	{vec3{-1, 0, 0}, [4]int{0, 4, 6, 2}},
	{vec3{0, 1, 0}, [4]int{2, 6, 7, 3}},
	{vec3{0, -1, 0}, [4]int{0, 1, 5, 4}},
	{vec3{0, 0, 1}, [4]int{4, 5, 7, 6}},
	{vec3{0, 0, -1}, [4]int{0, 2, 3, 1}},
}

// boxCorners returns the 8 corners of b; bit 0 selects +X, bit 1 +Y, bit 2 +Z.
func boxCorners(b layout.Box) [8]vec3 {
	c := fromV(b.Position)
	h := fromV(b.Size).scale(0.5)
	var out [8]vec3
	for i := range out {
		p := c
		if i&1 != 0 {
			p.x += h.x
		} else {
			p.x -= h.x
		}
		if i&2 != 0 {
			p.y += h.y
		} else {
			p.y -= h.y
		}
		if i&4 != 0 {
			p.z += h.z
		} else {
			p.z -= h.z
		}
		out[i] = p
	}
	return out
}

// drawBoxes paints back faces first (painter's algorithm) with one flat
// shade per face.
func (r *Renderer) drawBoxes(c *canvas, view View, boxes []layout.Box, spin float64) {
	light := vec3{r.Light[0], r.Light[1], r.Light[2]}.normalize()
	faces := make([]face, 0, len(boxes)*3)

	for _, b := range boxes {
		base := parseColor(b.Color, r.Accent)
		corners := boxCorners(b)
		for i := range corners {
			corners[i] = corners[i].rotateY(spin)
		}
		for _, cf := range cubeFaces {
			n := cf.normal.rotateY(spin)
			center := vec3{}
			for _, idx := range cf.corners {
				center = center.add(corners[idx])
			}
			center = center.scale(0.25)
			if n.dot(view.eye.sub(center)) <= 0 {
				continue
			}

			var f face
			visible := true
			for k, idx := range cf.corners {
				x, y, _, ok := view.project(corners[idx])
				if !ok {
					visible = false
					break
				}
				f.pts[k] = point{x, y}
			}
			if !visible {
				continue
			}
			f.depth = center.sub(view.eye).length()
			lambert := n.dot(light)
			if lambert < 0 {
				lambert = 0
			}
			f.col = shade(base, r.Ambient+(1-r.Ambient)*lambert)
			faces = append(faces, f)
		}
	}

	sort.SliceStable(faces, func(i, j int) bool { return faces[i].depth > faces[j].depth })
	edge := color.RGBA{0, 0, 0, 0x40}
	for _, f := range faces {
		c.polygon(f.pts[:], f.col)
		for k := range f.pts {
			c.line(f.pts[k], f.pts[(k+1)%4], 0.8, edge)
		}
	}
}

// drawEnvelope outlines the container's 12 edges.
func (r *Renderer) drawEnvelope(c *canvas, view View, env layout.Envelope, spin float64) {
	corners := boxCorners(layout.Box{Size: env.Size})
	col := withAlpha(parseColor(layout.Slate400, r.Accent), 0x90)
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			j := i | bit
			if j == i {
				continue
			}
			a, okA := projectPoint(view, corners[i].rotateY(spin))
			b, okB := projectPoint(view, corners[j].rotateY(spin))
			if okA && okB {
				c.line(a, b, 1.5, col)
			}
		}
	}
}

func projectPoint(view View, p vec3) (point, bool) {
	x, y, _, ok := view.project(p)
	return point{x, y}, ok
}
