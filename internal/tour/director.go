package tour

import (
	"fmt"
	"sort"
	"strings"

	"cogentcore.org/core/math32"

	"github.com/voxarel/showcase/internal/layout"
)

// Director plans a tour from a layout: an overview of the whole load, then a
// close look at each tier from the floor up.
type Director struct {
	Hold       float64 // seconds per stop
	Transition float64 // seconds between stops
	Distance   float32 // camera distance as a multiple of the framed region's largest side
	Elevation  float32 // camera rise per unit of horizontal offset
}

// NewDirector creates a new Director with default settings
func NewDirector() *Director {
	return &Director{
		Hold:       3.0,
		Transition: 1.5,
		Distance:   1.6,
		Elevation:  0.5,
	}
}

// Plan builds a tour over l. The returned tour loops back to the overview.
func (d *Director) Plan(l *layout.Layout) (*Tour, error) {
	if l.Len() == 0 {
		return nil, fmt.Errorf("plan %s: %w", l.Policy, ErrEmptyTour)
	}

	overview := l.Bounds()
	stops := []Stop{d.frame(overview, l.Envelope.Name, l.Len())}

	type region struct {
		name   string
		bounds math32.Box3
		count  int
	}
	var regions []region
	for _, tc := range l.Tiers() {
		b := math32.B3Empty()
		for _, box := range l.TierBoxes(tc.Name) {
			b.ExpandByBox(box.Extent())
		}
		regions = append(regions, region{name: tc.Name, bounds: b, count: tc.Count})
	}
	// A single tier would only repeat the overview.
	if len(regions) > 1 {
		sort.SliceStable(regions, func(i, j int) bool {
			return regions[i].bounds.Min.Y < regions[j].bounds.Min.Y
		})
		for _, r := range regions {
			stops = append(stops, d.frame(r.bounds, tierLabel(r.name), r.count))
		}
	}

	return New(l.Policy.String()+"-tour", stops, d.Transition)
}

// frame places the camera in front of and above region, looking at its
// center, and pins a label just above it.
func (d *Director) frame(region math32.Box3, title string, count int) Stop {
	center := region.Center()
	size := region.Size()
	reach := math32.Max(size.X, math32.Max(size.Y, size.Z)) * d.Distance

	dir := normalize(math32.Vec3(0.6, d.Elevation, 1))
	return Stop{
		Camera: center.Add(dir.MulScalar(reach)),
		LookAt: center,
		Hold:   d.Hold,
		Annotation: &Annotation{
			Anchor:   math32.Vec3(center.X, region.Max.Y+0.15, center.Z),
			Title:    title,
			Subtitle: boxCount(count),
		},
	}
}

func boxCount(n int) string {
	if n == 1 {
		return "1 box"
	}
	return fmt.Sprintf("%d boxes", n)
}

func tierLabel(name string) string {
	if name == "" {
		return "Boxes"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func normalize(v math32.Vector3) math32.Vector3 {
	n := math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if n == 0 {
		return v
	}
	return v.MulScalar(1 / n)
}
