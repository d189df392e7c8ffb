package layout

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Tier is one block of identical boxes laid out on a regular grid.
// The box at (layer, row, col) is centered at
// Origin + (col*Stride.X, layer*Stride.Y, row*Stride.Z).
type Tier struct {
	Name   string
	Layers int
	Rows   int
	Cols   int
	Origin math32.Vector3
	Stride math32.Vector3
	Size   math32.Vector3
}

// Count returns the number of boxes the tier places.
func (t Tier) Count() int { return t.Layers * t.Rows * t.Cols }

// Position returns the center of the box at the given grid indices.
func (t Tier) Position(layer, row, col int) math32.Vector3 {
	return math32.Vec3(
		t.Origin.X+float32(col)*t.Stride.X,
		t.Origin.Y+float32(layer)*t.Stride.Y,
		t.Origin.Z+float32(row)*t.Stride.Z,
	)
}

// manualTiers is the hand-loaded container: heavy cartons at the bottom,
// lighter ones stacked above, leaving the gaps a person packing by eye leaves.
var manualTiers = []Tier{
	{
		Name: "large", Layers: 2, Rows: 4, Cols: 8,
		Origin: math32.Vec3(-2.65, -1.04, -0.95),
		Stride: math32.Vec3(0.68, 0.55, 0.5),
		Size:   math32.Vec3(0.65, 0.52, 0.48),
	},
	{
		Name: "medium", Layers: 2, Rows: 4, Cols: 9,
		Origin: math32.Vec3(-2.6, 0.05, -0.9),
		Stride: math32.Vec3(0.6, 0.48, 0.48),
		Size:   math32.Vec3(0.55, 0.45, 0.45),
	},
	{
		Name: "small", Layers: 1, Rows: 4, Cols: 16,
		Origin: math32.Vec3(-2.7, 1.0, -0.825),
		Stride: math32.Vec3(0.36, 0, 0.55),
		Size:   math32.Vec3(0.34, 0.35, 0.5),
	},
}

// optimizedTiers fills the same container with one uniform carton size on a
// tighter pitch.
var optimizedTiers = []Tier{
	{
		Name: "uniform", Layers: 5, Rows: 5, Cols: 10,
		Origin: math32.Vec3(-2.7, -1.05, -0.95),
		Stride: math32.Vec3(0.55, 0.48, 0.42),
		Size:   math32.Vec3(0.52, 0.45, 0.4),
	},
}

// Generate builds the layout for policy p. The result is freshly allocated
// and identical on every call.
func Generate(p Policy) (*Layout, error) {
	switch p {
	case Inefficient:
		return fromTiers(p, Container20ft, manualTiers), nil
	case Efficient:
		return fromTiers(p, Container20ft, optimizedTiers), nil
	case Feature:
		return loadingScene(DefaultAccent), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
}

// MustGenerate is Generate for policies known to be valid.
func MustGenerate(p Policy) *Layout {
	l, err := Generate(p)
	if err != nil {
		panic(err)
	}
	return l
}

// fromTiers walks each tier layer by layer, row by row, column by column.
func fromTiers(p Policy, env Envelope, tiers []Tier) *Layout {
	n := 0
	for _, t := range tiers {
		n += t.Count()
	}
	l := &Layout{Policy: p, Envelope: env, Boxes: make([]Box, 0, n)}
	idx := 0
	for _, t := range tiers {
		for layer := 0; layer < t.Layers; layer++ {
			for row := 0; row < t.Rows; row++ {
				for col := 0; col < t.Cols; col++ {
					l.Boxes = append(l.Boxes, Box{
						Position: t.Position(layer, row, col),
						Size:     t.Size,
						Color:    PaletteColor(idx),
						Tier:     t.Name,
					})
					idx++
				}
			}
		}
	}
	return l
}
