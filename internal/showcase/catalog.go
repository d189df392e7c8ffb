package showcase

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/tour"
)

//go:embed roles.yaml
var rolesYAML []byte

var (
	ErrUnknownRole    = errors.New("unknown role")
	ErrUnknownFeature = errors.New("unknown feature")
)

// Feature is one capability shown for a role.
type Feature struct {
	ID            string                   `yaml:"id" json:"id"`
	Label         string                   `yaml:"label" json:"label"`
	Description   string                   `yaml:"description" json:"description"`
	Visualization layout.VisualizationType `yaml:"visualization" json:"visualization"`
}

// Role is a user persona with its feature list.
type Role struct {
	ID       string    `yaml:"id" json:"id"`
	Title    string    `yaml:"title" json:"title"`
	Tagline  string    `yaml:"tagline" json:"tagline"`
	Color    string    `yaml:"color" json:"color"`
	Features []Feature `yaml:"features" json:"features"`
}

// Feature looks up a feature of r by id.
func (r *Role) Feature(id string) (int, *Feature, error) {
	for i := range r.Features {
		if r.Features[i].ID == id {
			return i, &r.Features[i], nil
		}
	}
	return -1, nil, fmt.Errorf("%w: %q in role %q", ErrUnknownFeature, id, r.ID)
}

// Catalog is the full set of roles plus the accent color for each color name.
type Catalog struct {
	Colors map[string]string `yaml:"colors" json:"colors"`
	Roles  []Role            `yaml:"roles" json:"roles"`
}

// LoadCatalog decodes the built-in role catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(bytes.NewReader(rolesYAML))
}

// ParseCatalog decodes and validates a catalog from r.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Roles) == 0 {
		return errors.New("catalog has no roles")
	}
	roles := map[string]bool{}
	for _, r := range c.Roles {
		if r.ID == "" || roles[r.ID] {
			return fmt.Errorf("role %q: missing or duplicate id", r.ID)
		}
		roles[r.ID] = true
		if _, ok := c.Colors[r.Color]; !ok {
			return fmt.Errorf("role %q: unknown color %q", r.ID, r.Color)
		}
		if len(r.Features) == 0 {
			return fmt.Errorf("role %q: no features", r.ID)
		}
		features := map[string]bool{}
		for _, f := range r.Features {
			if f.ID == "" || features[f.ID] {
				return fmt.Errorf("role %q: feature %q: missing or duplicate id", r.ID, f.ID)
			}
			features[f.ID] = true
			if _, err := layout.ParseVisualizationType(string(f.Visualization)); err != nil {
				return fmt.Errorf("role %q: feature %q: %w", r.ID, f.ID, err)
			}
		}
	}
	return nil
}

// Role looks up a role by id.
func (c *Catalog) Role(id string) (*Role, error) {
	for i := range c.Roles {
		if c.Roles[i].ID == id {
			return &c.Roles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRole, id)
}

// IDs returns the role ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		ids[i] = r.ID
	}
	return ids
}

// Accent returns the hex accent for a color name, or the default accent.
func (c *Catalog) Accent(color string) string {
	if hex, ok := c.Colors[color]; ok {
		return hex
	}
	return layout.DefaultAccent
}

// FeatureTour is the auto-play tour over a role's features: one stop per
// feature, the camera orbiting a little further round the canvas each time.
func FeatureTour(r *Role, hold, transition float64) (*tour.Tour, error) {
	stops := make([]tour.Stop, len(r.Features))
	for i, f := range r.Features {
		angle := float64(i) * 0.35
		stops[i] = tour.Stop{
			Camera: math32.Vec3(float32(4*math.Sin(angle)), 1, float32(4*math.Cos(angle))),
			LookAt: math32.Vector3{},
			Hold:   hold,
			Annotation: &tour.Annotation{
				Anchor:   math32.Vec3(0, 0.9, 0),
				Title:    f.Label,
				Subtitle: f.Description,
			},
		}
	}
	return tour.New(r.ID, stops, transition)
}
