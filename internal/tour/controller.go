package tour

import "math"

// Controller owns the runtime state of one tour. It is meant to be driven
// once per rendered frame by a single owner and is not safe for concurrent
// use.
type Controller struct {
	tour     *Tour
	elapsed  float64
	override bool
	frame    Frame
}

// NewController starts t at HOLDING(0) with no time elapsed.
func NewController(t *Tour) *Controller {
	c := &Controller{}
	c.Reset(t)
	return c
}

// Advance moves the clock forward by dt seconds and returns the new frame.
// While manual override is active the clock and pose stay frozen and no
// annotation is reported. Negative or non-finite dt counts as 0.
func (c *Controller) Advance(dt float64) Frame {
	if c.override {
		return c.frame
	}
	if dt > 0 && !math.IsInf(dt, 1) {
		c.elapsed += dt
	}
	c.frame = c.tour.FrameAt(c.elapsed)
	return c.frame
}

// SetManualOverride suspends (on) or resumes (off) automatic advancement.
// Resuming continues from the frozen elapsed time.
func (c *Controller) SetManualOverride(on bool) {
	if on == c.override {
		return
	}
	c.override = on
	if on {
		c.frame.Annotation = nil
		return
	}
	c.frame = c.tour.FrameAt(c.elapsed)
}

// ManualOverride reports whether automatic advancement is suspended.
func (c *Controller) ManualOverride() bool { return c.override }

// Reset switches to t (or restarts the current tour when t is nil) at
// HOLDING(0) with the clock at zero and override cleared.
func (c *Controller) Reset(t *Tour) {
	if t != nil {
		c.tour = t
	}
	c.elapsed = 0
	c.override = false
	c.frame = c.tour.FrameAt(0)
}

// Elapsed returns the accumulated tour time in seconds.
func (c *Controller) Elapsed() float64 { return c.elapsed }

// Frame returns the most recently computed frame without advancing.
func (c *Controller) Frame() Frame { return c.frame }

// Tour returns the tour being played.
func (c *Controller) Tour() *Tour { return c.tour }
