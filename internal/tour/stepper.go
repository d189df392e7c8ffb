package tour

import (
	"context"
	"fmt"
	"time"
)

// Anchor is a screen position a tooltip can be docked to.
type Anchor int

const (
	LeftTop Anchor = iota
	LeftCenter
	LeftBottom
	RightTop
	RightCenter
	RightBottom
)

// DefaultAnchors visits every anchor, left column first.
var DefaultAnchors = []Anchor{LeftTop, LeftCenter, LeftBottom, RightTop, RightCenter, RightBottom}

func (a Anchor) String() string {
	switch a {
	case LeftTop:
		return "left-top"
	case LeftCenter:
		return "left-center"
	case LeftBottom:
		return "left-bottom"
	case RightTop:
		return "right-top"
	case RightCenter:
		return "right-center"
	case RightBottom:
		return "right-bottom"
	default:
		return fmt.Sprintf("anchor(%d)", int(a))
	}
}

// Left reports whether the anchor sits in the left column.
func (a Anchor) Left() bool { return a <= LeftBottom }

// Row returns 0 for top, 1 for center and 2 for bottom.
func (a Anchor) Row() int { return int(a) % 3 }

// Stepper is the discrete variant of a tour: one stop per anchor, no
// transition, advancing a whole step per Tick. It pauses while the paused
// flag is set and stops for good once the user has interacted.
//
// Like Controller it has a single owner; Run calls back on its own goroutine.
type Stepper struct {
	anchors    []Anchor
	interval   time.Duration
	ctrl       *Controller
	paused     bool
	interacted bool
}

// NewStepper builds a stepper that shows each anchor for interval.
func NewStepper(anchors []Anchor, interval time.Duration) (*Stepper, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("stepper interval %v: %w", interval, ErrInvalidDuration)
	}
	hold := interval.Seconds()
	stops := make([]Stop, len(anchors))
	for i, a := range anchors {
		stops[i] = Stop{Hold: hold, Annotation: &Annotation{Title: a.String()}}
	}
	t, err := New("stepper", stops, 0)
	if err != nil {
		return nil, err
	}
	s := &Stepper{
		anchors:  append([]Anchor(nil), anchors...),
		interval: interval,
		ctrl:     NewController(t),
	}
	// Sit mid-hold so whole-interval ticks never land on a stop boundary.
	s.ctrl.Advance(hold / 2)
	return s, nil
}

// Tick advances one step and reports whether it did.
func (s *Stepper) Tick() bool {
	if s.paused || s.interacted {
		return false
	}
	s.ctrl.Advance(s.interval.Seconds())
	return true
}

// SetPaused suspends or resumes ticking.
func (s *Stepper) SetPaused(paused bool) {
	s.paused = paused
	s.ctrl.SetManualOverride(s.halted())
}

// Interact records a user interaction. The stepper never resumes after it.
func (s *Stepper) Interact() {
	s.interacted = true
	s.ctrl.SetManualOverride(true)
}

// Interacted reports whether Interact was called.
func (s *Stepper) Interacted() bool { return s.interacted }

// Paused reports the paused flag.
func (s *Stepper) Paused() bool { return s.paused }

func (s *Stepper) halted() bool { return s.paused || s.interacted }

// Step returns the current step index into the anchor list.
func (s *Stepper) Step() int { return s.ctrl.Frame().State.Stop }

// Anchor returns the anchor for the current step.
func (s *Stepper) Anchor() Anchor { return s.anchors[s.Step()] }

// Interval returns the time each anchor is shown.
func (s *Stepper) Interval() time.Duration { return s.interval }

// Run ticks every interval until ctx is done, calling fn after each step
// taken. The ticker is stopped before Run returns.
func (s *Stepper) Run(ctx context.Context, fn func(step int, a Anchor)) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.Tick() && fn != nil {
				fn(s.Step(), s.Anchor())
			}
		}
	}
}
