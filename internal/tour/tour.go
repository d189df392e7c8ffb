// Package tour drives a camera through a looping list of stops: hold at each
// stop, ease to the next one, and report which annotation is showing.
//
// Everything here is plain math over float64 seconds and math32 vectors.
// Nothing in the package knows about rendering, so a render loop applies the
// returned Frame to whatever scene graph it owns.
package tour

import (
	"errors"
	"fmt"
	"math"

	"cogentcore.org/core/math32"
)

var (
	// ErrEmptyTour is returned when a tour has no stops.
	ErrEmptyTour = errors.New("tour has no stops")
	// ErrInvalidDuration is returned for a non-positive hold, a negative
	// transition, or any non-finite duration.
	ErrInvalidDuration = errors.New("invalid duration")
)

// Annotation is a label pinned to a point in the scene.
type Annotation struct {
	Anchor   math32.Vector3
	Title    string
	Subtitle string
}

// Stop is one camera viewpoint of a tour.
type Stop struct {
	Camera     math32.Vector3
	LookAt     math32.Vector3
	Hold       float64     // seconds spent stationary
	Annotation *Annotation // nil when the stop shows no label
}

// Tour is an ordered, non-empty, cyclic list of stops sharing one
// transition duration. After the last stop the tour returns to the first.
// A Tour is immutable once built by New.
type Tour struct {
	Name       string
	Stops      []Stop
	Transition float64 // seconds, same for every stop
}

// New validates stops and returns a tour over a private copy of them.
func New(name string, stops []Stop, transition float64) (*Tour, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("tour %q: %w", name, ErrEmptyTour)
	}
	if transition < 0 || !finite(transition) {
		return nil, fmt.Errorf("tour %q: transition %v: %w", name, transition, ErrInvalidDuration)
	}
	for i, s := range stops {
		if !(s.Hold > 0) || !finite(s.Hold) {
			return nil, fmt.Errorf("tour %q: stop %d: hold %v: %w", name, i, s.Hold, ErrInvalidDuration)
		}
	}
	own := make([]Stop, len(stops))
	copy(own, stops)
	return &Tour{Name: name, Stops: own, Transition: transition}, nil
}

// MustNew is New for tours built from constant data.
func MustNew(name string, stops []Stop, transition float64) *Tour {
	t, err := New(name, stops, transition)
	if err != nil {
		panic(err)
	}
	return t
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// CycleLength is the sum over all stops of hold plus transition.
func (t *Tour) CycleLength() float64 {
	total := 0.0
	for _, s := range t.Stops {
		total += s.Hold + t.Transition
	}
	return total
}

// Phase is what the camera is doing within a stop's segment.
type Phase int

const (
	Holding Phase = iota
	Transitioning
)

func (p Phase) String() string {
	switch p {
	case Holding:
		return "holding"
	case Transitioning:
		return "transitioning"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State locates an instant within a tour.
type State struct {
	Elapsed  float64 // seconds since the tour started
	Stop     int     // current stop, or the stop being left while transitioning
	Next     int     // stop after Stop, wrapping to 0
	Phase    Phase
	Progress float64 // linear transition progress in [0, 1]; 0 while holding
	Eased    float64 // Progress through EaseInOutCubic
}

// StateAt returns the state at elapsed seconds. Negative or NaN elapsed
// counts as 0.
func (t *Tour) StateAt(elapsed float64) State {
	if !(elapsed > 0) {
		elapsed = 0
	}
	local := math.Mod(elapsed, t.CycleLength())
	n := len(t.Stops)
	start := 0.0
	for i, s := range t.Stops {
		end := start + s.Hold + t.Transition
		if local < end || i == n-1 {
			st := State{Elapsed: elapsed, Stop: i, Next: (i + 1) % n}
			into := local - start
			if into < s.Hold {
				st.Phase = Holding
				return st
			}
			st.Phase = Transitioning
			st.Progress = 1
			if t.Transition > 0 {
				st.Progress = clamp01((into - s.Hold) / t.Transition)
			}
			st.Eased = EaseInOutCubic(st.Progress)
			return st
		}
		start = end
	}
	return State{Elapsed: elapsed}
}

// Pose is where the camera sits and what it looks at.
type Pose struct {
	Camera math32.Vector3
	LookAt math32.Vector3
}

// PoseAt returns the camera pose for s: the current stop's values while
// holding, a per-axis blend toward the next stop while transitioning.
func (t *Tour) PoseAt(s State) Pose {
	from := t.Stops[s.Stop]
	if s.Phase == Holding {
		return Pose{Camera: from.Camera, LookAt: from.LookAt}
	}
	to := t.Stops[s.Next]
	return Pose{
		Camera: LerpVec(from.Camera, to.Camera, s.Eased),
		LookAt: LerpVec(from.LookAt, to.LookAt, s.Eased),
	}
}

// Frame is everything a render loop needs for one instant.
type Frame struct {
	State      State
	Pose       Pose
	Annotation *Annotation // nil when no label is visible
}

// Visible reports whether an annotation is showing.
func (f Frame) Visible() bool { return f.Annotation != nil }

// FrameAt returns the frame at elapsed seconds. The annotation is set only
// while holding at a stop that declares one.
func (t *Tour) FrameAt(elapsed float64) Frame {
	s := t.StateAt(elapsed)
	f := Frame{State: s, Pose: t.PoseAt(s)}
	if s.Phase == Holding {
		f.Annotation = t.Stops[s.Stop].Annotation
	}
	return f
}

// EaseInOutCubic accelerates through the first half and decelerates
// through the second.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates each axis independently.
func LerpVec(a, b math32.Vector3, t float64) math32.Vector3 {
	f := float32(t)
	return math32.Vec3(
		math32.Lerp(a.X, b.X, f),
		math32.Lerp(a.Y, b.Y, f),
		math32.Lerp(a.Z, b.Z, f),
	)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
