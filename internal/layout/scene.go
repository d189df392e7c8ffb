package layout

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
)

// VisualizationType names the canvas a role feature is illustrated with.
type VisualizationType string

const (
	Packages    VisualizationType = "packages"
	Containers  VisualizationType = "containers"
	Analytics   VisualizationType = "analytics"
	Workflow    VisualizationType = "workflow"
	DataFlow    VisualizationType = "dataflow"
	Orbit       VisualizationType = "orbit"
	AWBTree     VisualizationType = "awbtree"
	OfflineSync VisualizationType = "offlinesync"
	LabelAttach VisualizationType = "labelattach"
)

// VisualizationTypes lists every known kind.
var VisualizationTypes = []VisualizationType{
	Packages, Containers, Analytics, Workflow, DataFlow, Orbit, AWBTree, OfflineSync, LabelAttach,
}

// ParseVisualizationType validates s against the known kinds.
func ParseVisualizationType(s string) (VisualizationType, error) {
	v := VisualizationType(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range VisualizationTypes {
		if k == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown visualization type %q", s)
}

// FeatureScene returns the small illustrative arrangement for a feature
// canvas, tinted with accent. Kinds without a dedicated scene get the
// scattered parcels.
func FeatureScene(kind VisualizationType, accent string) *Layout {
	if accent == "" {
		accent = DefaultAccent
	}
	switch kind {
	case Containers:
		return loadingScene(accent)
	case Analytics:
		return analyticsScene(accent)
	case Workflow:
		return workflowScene(accent)
	default:
		return parcelsScene(accent)
	}
}

func box(x, y, z, w, h, d float32, color, tier string) Box {
	return Box{Position: math32.Vec3(x, y, z), Size: math32.Vec3(w, h, d), Color: color, Tier: tier}
}

// loadingScene is a half-loaded container: two rows on the floor, a partial
// second layer and one tall crate.
func loadingScene(accent string) *Layout {
	return &Layout{
		Policy:   Feature,
		Envelope: Envelope{Name: "loading bay", Size: math32.Vec3(2.5, 1.4, 1.2)},
		Boxes: []Box{
			box(-0.8, -0.4, 0.2, 0.5, 0.4, 0.5, accent, "floor"),
			box(-0.2, -0.4, 0.2, 0.5, 0.4, 0.5, Slate500, "floor"),
			box(0.4, -0.4, 0.2, 0.5, 0.4, 0.5, accent, "floor"),
			box(-0.8, -0.4, -0.3, 0.5, 0.4, 0.4, Slate400, "floor"),
			box(-0.2, -0.4, -0.3, 0.5, 0.4, 0.4, accent, "floor"),
			box(0.4, -0.4, -0.3, 0.5, 0.4, 0.4, Slate300, "floor"),
			box(-0.8, 0.05, 0.2, 0.5, 0.4, 0.5, Slate500, "stacked"),
			box(-0.2, 0.05, 0.2, 0.5, 0.4, 0.5, accent, "stacked"),
			box(0.4, 0.05, 0, 0.5, 0.5, 0.8, Slate400, "crate"),
		},
	}
}

func parcelsScene(accent string) *Layout {
	return &Layout{
		Policy:   Feature,
		Envelope: Envelope{Name: "parcels", Size: math32.Vec3(2.2, 1.4, 1.6)},
		Boxes: []Box{
			box(-0.8, -0.3, 0.5, 0.5, 0.4, 0.3, accent, "parcel"),
			box(0.6, -0.2, -0.4, 0.4, 0.5, 0.4, Slate500, "parcel"),
			box(0, 0.2, 0.3, 0.6, 0.3, 0.5, accent, "parcel"),
			box(-0.5, 0.4, -0.5, 0.3, 0.3, 0.3, Slate400, "parcel"),
			box(0.7, 0.3, 0.2, 0.35, 0.4, 0.35, accent, "parcel"),
			box(-0.2, -0.5, -0.3, 0.45, 0.35, 0.4, Slate300, "parcel"),
			box(0.3, -0.4, 0.6, 0.3, 0.25, 0.3, Slate500, "parcel"),
		},
	}
}

// analyticsScene is a bar chart standing on a thin platform.
func analyticsScene(accent string) *Layout {
	bars := []struct {
		x, h  float32
		color string
	}{
		{-1.0, 0.6, Slate500},
		{-0.6, 1.0, accent},
		{-0.2, 0.8, Slate400},
		{0.2, 1.2, accent},
		{0.6, 0.9, Slate500},
		{1.0, 1.4, accent},
	}
	l := &Layout{
		Policy:   Feature,
		Envelope: Envelope{Name: "chart", Size: math32.Vec3(3, 2, 2)},
		Boxes:    []Box{box(0, -0.51, 0, 3, 0.02, 2, Slate800, "platform")},
	}
	for _, b := range bars {
		l.Boxes = append(l.Boxes, box(b.x, b.h/2-0.5, 0, 0.3, b.h, 0.3, b.color, "bar"))
	}
	return l
}

// workflowScene is three stations (in, process, out) joined by flow arrows,
// each holding fewer packages than the one before.
func workflowScene(accent string) *Layout {
	l := &Layout{
		Policy:   Feature,
		Envelope: Envelope{Name: "workflow", Size: math32.Vec3(3.2, 1.4, 1)},
		Boxes: []Box{
			box(-0.6, -0.3, 0, 0.8, 0.05, 0.05, accent, "arrow"),
			box(0.6, -0.3, 0, 0.8, 0.05, 0.05, accent, "arrow"),
		},
	}
	stages := []struct {
		x     float32
		boxes int
	}{{-1.2, 3}, {0, 2}, {1.2, 1}}
	for _, s := range stages {
		l.Boxes = append(l.Boxes, box(s.x, -0.5, 0, 0.8, 0.1, 0.8, Slate800, "platform"))
		for j := 0; j < s.boxes; j++ {
			c := Slate500
			if j == 0 {
				c = accent
			}
			l.Boxes = append(l.Boxes, box(s.x, -0.3+float32(j)*0.25, 0, 0.25, 0.2, 0.25, c, "package"))
		}
	}
	return l
}
