package layout

import (
	"encoding/json"
	"io"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"
)

// Document is the wire form of a layout: vectors as [x, y, z] tuples.
type Document struct {
	Policy   string        `json:"policy" yaml:"policy"`
	Envelope EnvelopeDoc   `json:"envelope" yaml:"envelope"`
	Count    int           `json:"count" yaml:"count"`
	Boxes    []BoxDocument `json:"boxes" yaml:"boxes"`
}

// EnvelopeDoc is the wire form of an Envelope.
type EnvelopeDoc struct {
	Name string     `json:"name" yaml:"name"`
	Size [3]float32 `json:"size" yaml:"size,flow"`
}

// BoxDocument is the wire form of a Box.
type BoxDocument struct {
	Position [3]float32 `json:"position" yaml:"position,flow"`
	Size     [3]float32 `json:"size" yaml:"size,flow"`
	Color    string     `json:"color" yaml:"color"`
	Tier     string     `json:"tier,omitempty" yaml:"tier,omitempty"`
}

func tuple(v math32.Vector3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

// ToDocument converts l to its wire form.
func ToDocument(l *Layout) Document {
	doc := Document{
		Policy:   l.Policy.String(),
		Envelope: EnvelopeDoc{Name: l.Envelope.Name, Size: tuple(l.Envelope.Size)},
		Count:    l.Len(),
		Boxes:    make([]BoxDocument, len(l.Boxes)),
	}
	for i, b := range l.Boxes {
		doc.Boxes[i] = BoxDocument{
			Position: tuple(b.Position),
			Size:     tuple(b.Size),
			Color:    b.Color,
			Tier:     b.Tier,
		}
	}
	return doc
}

// WriteJSON writes l as indented JSON.
func WriteJSON(w io.Writer, l *Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToDocument(l))
}

// WriteYAML writes l as YAML.
func WriteYAML(w io.Writer, l *Layout) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(l)); err != nil {
		return err
	}
	return enc.Close()
}
