package renderer

import (
	"math"

	"github.com/voxarel/showcase/internal/tour"
)

// Follower eases a displayed pose toward the tour's target pose. It is a
// render-side smoothing step; the tour itself stays exact.
type Follower struct {
	Rate    float64 // approach rate per second
	MaxStep float64 // largest dt honoured in one update, seconds

	pose  tour.Pose
	ready bool
}

// NewFollower returns a follower with the canvas defaults.
func NewFollower() *Follower {
	return &Follower{Rate: 4, MaxStep: 0.1}
}

// Update moves the held pose toward target and returns it. The first call
// snaps to target.
func (f *Follower) Update(target tour.Pose, dt float64) tour.Pose {
	if !f.ready {
		f.pose, f.ready = target, true
		return f.pose
	}
	if !(dt > 0) {
		return f.pose
	}
	if f.MaxStep > 0 && dt > f.MaxStep {
		dt = f.MaxStep
	}
	alpha := 1 - math.Exp(-f.Rate*dt)
	f.pose = tour.Pose{
		Camera: tour.LerpVec(f.pose.Camera, target.Camera, alpha),
		LookAt: tour.LerpVec(f.pose.LookAt, target.LookAt, alpha),
	}
	return f.pose
}

// Pose returns the current smoothed pose.
func (f *Follower) Pose() tour.Pose { return f.pose }

// Reset forgets the held pose so the next Update snaps.
func (f *Follower) Reset() { f.ready = false }
