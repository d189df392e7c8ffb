package layout

import (
	"errors"
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
)

// ErrUnknownPolicy is returned for a Policy value outside the enumerated set.
var ErrUnknownPolicy = errors.New("unknown layout policy")

// Policy selects one of the box arrangement procedures.
type Policy int

const (
	// Inefficient is the manual packing: tiered grids of large, medium and small cartons.
	Inefficient Policy = iota
	// Efficient is the optimized packing: one uniform, tighter grid.
	Efficient
	// Feature is the container-loading illustration used by the role showcase.
	Feature
)

// Policies lists every policy in declaration order.
var Policies = []Policy{Inefficient, Efficient, Feature}

func (p Policy) String() string {
	switch p {
	case Inefficient:
		return "inefficient"
	case Efficient:
		return "efficient"
	case Feature:
		return "feature"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts the policy names plus the "before"/"after" aliases
// used by the comparison view.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inefficient", "manual", "before":
		return Inefficient, nil
	case "efficient", "optimized", "ai", "after":
		return Efficient, nil
	case "feature", "loading":
		return Feature, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Box is a single package placed inside a container.
type Box struct {
	Position math32.Vector3 // center, container-local
	Size     math32.Vector3 // width, height, depth
	Color    string         // hex token, presentation only
	Tier     string         // grid tier or scene part the box came from
}

// Extent returns the axis-aligned box occupied by b.
func (b Box) Extent() math32.Box3 {
	var e math32.Box3
	e.SetFromCenterAndSize(b.Position, b.Size)
	return e
}

// Volume returns width*height*depth.
func (b Box) Volume() float64 {
	return float64(b.Size.X) * float64(b.Size.Y) * float64(b.Size.Z)
}

// Envelope is the nominal bounding box of a container, centered at the origin.
type Envelope struct {
	Name string
	Size math32.Vector3
}

// Container20ft approximates a standard 20-foot container in scene units.
var Container20ft = Envelope{Name: "20ft Standard", Size: math32.Vec3(6, 2.6, 2.4)}

// admitTolerance absorbs float32 rounding on grid positions.
const admitTolerance = 1e-4

// Bounds returns the envelope as a Box3.
func (e Envelope) Bounds() math32.Box3 {
	var b math32.Box3
	b.SetFromCenterAndSize(math32.Vector3{}, e.Size)
	return b
}

// Volume returns the envelope's capacity in cubic scene units.
func (e Envelope) Volume() float64 {
	return float64(e.Size.X) * float64(e.Size.Y) * float64(e.Size.Z)
}

// Admits reports whether the center of b lies within the envelope bounds
// inflated by half of b's own size on each axis.
func (e Envelope) Admits(b Box) bool {
	bounds := e.Bounds()
	bounds.ExpandByVector(b.Size.MulScalar(0.5))
	bounds.ExpandByScalar(admitTolerance)
	return bounds.ContainsPoint(b.Position)
}

// Contains reports whether b lies entirely inside the envelope.
func (e Envelope) Contains(b Box) bool {
	bounds := e.Bounds()
	bounds.ExpandByScalar(admitTolerance)
	ext := b.Extent()
	return bounds.ContainsPoint(ext.Min) && bounds.ContainsPoint(ext.Max)
}

// Layout is an ordered set of boxes generated under one policy.
// Order is insertion order and only drives color cycling.
type Layout struct {
	Policy   Policy
	Envelope Envelope
	Boxes    []Box
}

// Len returns the number of boxes.
func (l *Layout) Len() int { return len(l.Boxes) }

// Volume returns the summed volume of all boxes.
func (l *Layout) Volume() float64 {
	v := 0.0
	for _, b := range l.Boxes {
		v += b.Volume()
	}
	return v
}

// Utilization is the ratio of box volume to envelope volume.
func (l *Layout) Utilization() float64 {
	ev := l.Envelope.Volume()
	if ev == 0 {
		return 0
	}
	return l.Volume() / ev
}

// Bounds returns the union of all box extents. It is empty for an empty layout.
func (l *Layout) Bounds() math32.Box3 {
	b := math32.B3Empty()
	for _, box := range l.Boxes {
		b.ExpandByBox(box.Extent())
	}
	return b
}

// TierCount is the number of boxes that came from one tier.
type TierCount struct {
	Name  string
	Count int
}

// Tiers returns per-tier box counts in first-seen order.
func (l *Layout) Tiers() []TierCount {
	var out []TierCount
	idx := map[string]int{}
	for _, b := range l.Boxes {
		i, ok := idx[b.Tier]
		if !ok {
			i = len(out)
			idx[b.Tier] = i
			out = append(out, TierCount{Name: b.Tier})
		}
		out[i].Count++
	}
	return out
}

// TierBoxes returns the boxes belonging to tier name.
func (l *Layout) TierBoxes(name string) []Box {
	var out []Box
	for _, b := range l.Boxes {
		if b.Tier == name {
			out = append(out, b)
		}
	}
	return out
}

// Clone returns a copy that shares no box storage with l.
func (l *Layout) Clone() *Layout {
	c := *l
	c.Boxes = append([]Box(nil), l.Boxes...)
	return &c
}
