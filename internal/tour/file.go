package tour

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"
)

// Version is the tour file format version written by EncodeTour.
const Version = "1.0"

// ErrUnsupportedVersion is returned for tour files of another format version.
var ErrUnsupportedVersion = errors.New("unsupported tour file version")

// File is the on-disk form of a tour.
type File struct {
	Version    string     `yaml:"version" json:"version"`
	Name       string     `yaml:"name" json:"name"`
	Transition float64    `yaml:"transition" json:"transition"`
	Stops      []StopFile `yaml:"stops" json:"stops"`
}

// StopFile is the on-disk form of a Stop.
type StopFile struct {
	Camera     [3]float32      `yaml:"camera,flow" json:"camera"`
	LookAt     [3]float32      `yaml:"look_at,flow" json:"lookAt"`
	Hold       float64         `yaml:"hold" json:"hold"`
	Annotation *AnnotationFile `yaml:"annotation,omitempty" json:"annotation,omitempty"`
}

// AnnotationFile is the on-disk form of an Annotation.
type AnnotationFile struct {
	Anchor   [3]float32 `yaml:"anchor,flow" json:"anchor"`
	Title    string     `yaml:"title" json:"title"`
	Subtitle string     `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
}

func tuple(v math32.Vector3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func vec(t [3]float32) math32.Vector3 { return math32.Vec3(t[0], t[1], t[2]) }

// ToFile converts t to its on-disk form.
func ToFile(t *Tour) *File {
	f := &File{Version: Version, Name: t.Name, Transition: t.Transition}
	for _, s := range t.Stops {
		sf := StopFile{Camera: tuple(s.Camera), LookAt: tuple(s.LookAt), Hold: s.Hold}
		if a := s.Annotation; a != nil {
			sf.Annotation = &AnnotationFile{Anchor: tuple(a.Anchor), Title: a.Title, Subtitle: a.Subtitle}
		}
		f.Stops = append(f.Stops, sf)
	}
	return f
}

// Tour validates f and builds the tour it describes.
func (f *File) Tour() (*Tour, error) {
	if f.Version != Version {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, f.Version)
	}
	stops := make([]Stop, len(f.Stops))
	for i, sf := range f.Stops {
		stops[i] = Stop{Camera: vec(sf.Camera), LookAt: vec(sf.LookAt), Hold: sf.Hold}
		if a := sf.Annotation; a != nil {
			stops[i].Annotation = &Annotation{Anchor: vec(a.Anchor), Title: a.Title, Subtitle: a.Subtitle}
		}
	}
	return New(f.Name, stops, f.Transition)
}

// DecodeTour reads a YAML tour from r. Unknown keys and invalid tours are
// rejected.
func DecodeTour(r io.Reader) (*Tour, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode tour: %w", err)
	}
	return f.Tour()
}

// EncodeTour writes t as YAML to w.
func EncodeTour(w io.Writer, t *Tour) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToFile(t)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteTour writes a tour to a YAML file
func WriteTour(t *Tour, path string) error {
	var buf bytes.Buffer
	if err := EncodeTour(&buf, t); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ReadTour reads a tour from a YAML file
func ReadTour(path string) (*Tour, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := DecodeTour(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
