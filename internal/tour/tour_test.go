package tour

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeStops(holds ...float64) []Stop {
	stops := make([]Stop, len(holds))
	for i, h := range holds {
		x := float32(i) * 10
		stops[i] = Stop{
			Camera: math32.Vec3(x, 1, 5),
			LookAt: math32.Vec3(x, 0, 0),
			Hold:   h,
		}
	}
	return stops
}

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name       string
		stops      []Stop
		transition float64
		want       error
	}{
		{"empty", nil, 1, ErrEmptyTour},
		{"zero hold", threeStops(1, 0, 1), 1, ErrInvalidDuration},
		{"negative hold", threeStops(-2), 1, ErrInvalidDuration},
		{"nan hold", threeStops(math.NaN()), 1, ErrInvalidDuration},
		{"inf hold", threeStops(math.Inf(1)), 1, ErrInvalidDuration},
		{"negative transition", threeStops(1), -0.5, ErrInvalidDuration},
		{"nan transition", threeStops(1), math.NaN(), ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.name, tt.stops, tt.transition)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewCopiesStops(t *testing.T) {
	stops := threeStops(1, 2)
	tr, err := New("copy", stops, 0)
	require.NoError(t, err)
	stops[0].Hold = 99
	assert.Equal(t, 1.0, tr.Stops[0].Hold)
}

func TestCycleLength(t *testing.T) {
	assert.Equal(t, 13.5, MustNew("a", threeStops(3, 3, 3), 1.5).CycleLength())
	assert.Equal(t, 9.0, MustNew("b", threeStops(2, 2, 2), 1).CycleLength())
}

func TestScenarioThreeSecondHolds(t *testing.T) {
	stops := threeStops(3, 3, 3)
	stops[0].Annotation = &Annotation{Title: "overview"}
	tr := MustNew("scenario", stops, 1.5)

	f := tr.FrameAt(1.0)
	assert.Equal(t, Holding, f.State.Phase)
	assert.Equal(t, 0, f.State.Stop)
	assert.True(t, f.Visible())
	assert.Equal(t, "overview", f.Annotation.Title)

	f = tr.FrameAt(3.75)
	assert.Equal(t, Transitioning, f.State.Phase)
	assert.Equal(t, 0, f.State.Stop)
	assert.Equal(t, 1, f.State.Next)
	assert.InDelta(t, 0.5, f.State.Progress, 1e-9)
	assert.False(t, f.Visible())

	a := tr.FrameAt(1.0)
	b := tr.FrameAt(13.5 + 1.0)
	a.State.Elapsed, b.State.Elapsed = 0, 0
	assert.Equal(t, a, b)
}

func TestScenarioTwoSecondHolds(t *testing.T) {
	tr := MustNew("scenario", threeStops(2, 2, 2), 1)

	s := tr.StateAt(0)
	assert.Equal(t, Holding, s.Phase)
	assert.Equal(t, 0, s.Stop)

	s = tr.StateAt(2.5)
	assert.Equal(t, Transitioning, s.Phase)
	assert.Equal(t, 0, s.Stop)
	assert.Equal(t, 1, s.Next)
	assert.InDelta(t, 0.5, s.Progress, 1e-9)
	assert.InDelta(t, 0.5, s.Eased, 1e-9)

	p := tr.PoseAt(s)
	assert.InDelta(t, 5, p.Camera.X, 1e-5)
	assert.InDelta(t, 5, p.LookAt.X, 1e-5)

	at0, at9 := tr.StateAt(0), tr.StateAt(9)
	at9.Elapsed = 0
	assert.Equal(t, at0, at9)
}

func TestPeriodicity(t *testing.T) {
	tr := MustNew("period", threeStops(2, 1.5, 3.25), 0.75)
	cycle := tr.CycleLength()
	for _, at := range []float64{0, 0.5, 1.75, 2.25, 3.5, 4.0, 6.5, 7.75, 8.25} {
		a := tr.FrameAt(at)
		b := tr.FrameAt(at + cycle)
		c := tr.FrameAt(at + 3*cycle)
		a.State.Elapsed, b.State.Elapsed, c.State.Elapsed = 0, 0, 0
		assert.Equal(t, a, b, "t=%v", at)
		assert.Equal(t, a, c, "t=%v", at)
	}
}

func TestPhaseBoundaries(t *testing.T) {
	// Segments: stop0 [0,2) hold, [2,3) move; stop1 [3,4) hold, [4,5) move;
	// stop2 [5,8) hold, [8,9) move.
	tr := MustNew("bounds", threeStops(2, 1, 3), 1)
	tests := []struct {
		at    float64
		stop  int
		phase Phase
	}{
		{0, 0, Holding},
		{1.999, 0, Holding},
		{2, 0, Transitioning},
		{2.999, 0, Transitioning},
		{3, 1, Holding},
		{4, 1, Transitioning},
		{5, 2, Holding},
		{7.5, 2, Holding},
		{8, 2, Transitioning},
		{8.999, 2, Transitioning},
		{9, 0, Holding},
	}
	for _, tt := range tests {
		s := tr.StateAt(tt.at)
		assert.Equal(t, tt.stop, s.Stop, "t=%v", tt.at)
		assert.Equal(t, tt.phase, s.Phase, "t=%v", tt.at)
	}
}

func TestLastStopWrapsToFirst(t *testing.T) {
	tr := MustNew("wrap", threeStops(1, 1), 2)
	s := tr.StateAt(4.5)
	assert.Equal(t, Transitioning, s.Phase)
	assert.Equal(t, 1, s.Stop)
	assert.Equal(t, 0, s.Next)

	p := tr.PoseAt(s)
	assert.InDelta(t, 10*(1-EaseInOutCubic(0.25)), p.Camera.X, 1e-4)
}

func TestHoldingPoseIsExact(t *testing.T) {
	stops := threeStops(2, 2)
	tr := MustNew("exact", stops, 1)
	p := tr.PoseAt(tr.StateAt(3.2))
	assert.Equal(t, stops[1].Camera, p.Camera)
	assert.Equal(t, stops[1].LookAt, p.LookAt)
}

func TestAnnotationVisibility(t *testing.T) {
	stops := threeStops(2, 2)
	stops[0].Annotation = &Annotation{Title: "first"}
	tr := MustNew("labels", stops, 1)

	tests := []struct {
		at      float64
		visible bool
	}{
		{0.5, true},  // holding, annotated
		{2.5, false}, // transitioning away from annotated stop
		{3.5, false}, // holding, no annotation
		{5.5, false}, // transitioning, no annotation
		{6.25, true}, // next cycle
	}
	for _, tt := range tests {
		assert.Equal(t, tt.visible, tr.FrameAt(tt.at).Visible(), "t=%v", tt.at)
	}
}

func TestNegativeElapsedClampsToStart(t *testing.T) {
	tr := MustNew("neg", threeStops(1, 1), 1)
	assert.Equal(t, tr.StateAt(0), tr.StateAt(-3))
	assert.Equal(t, tr.StateAt(0), tr.StateAt(math.NaN()))
}

func TestZeroTransition(t *testing.T) {
	tr := MustNew("snap", threeStops(1, 1, 1), 0)
	assert.Equal(t, 3.0, tr.CycleLength())
	for i, at := range []float64{0.5, 1.5, 2.5} {
		s := tr.StateAt(at)
		assert.Equal(t, Holding, s.Phase)
		assert.Equal(t, i, s.Stop)
	}
}

func TestEaseInOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOutCubic(0))
	assert.Equal(t, 1.0, EaseInOutCubic(1))
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-12)
	assert.InDelta(t, 4*0.25*0.25*0.25, EaseInOutCubic(0.25), 1e-12)
	assert.InDelta(t, 1-EaseInOutCubic(0.25), EaseInOutCubic(0.75), 1e-12)

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestLerpVec(t *testing.T) {
	got := LerpVec(math32.Vec3(0, 2, -4), math32.Vec3(10, 4, 4), 0.25)
	assert.Equal(t, math32.Vec3(2.5, 2.5, -2), got)
	assert.Equal(t, 7.5, Lerp(5, 10, 0.5))
}

func TestPhaseText(t *testing.T) {
	b, err := Transitioning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "transitioning", string(b))
	assert.Equal(t, "holding", Holding.String())
}
