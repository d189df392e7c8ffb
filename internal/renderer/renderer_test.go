package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/tour"
)

var overview = tour.Pose{Camera: math32.Vec3(8, 4, 8), LookAt: math32.Vec3(0, 0, 0)}

func TestProjectLookAtIsCenter(t *testing.T) {
	poses := []tour.Pose{
		overview,
		{Camera: math32.Vec3(0, 1, 4), LookAt: math32.Vec3(0, 0, 0)},
		{Camera: math32.Vec3(-3, 2, 1), LookAt: math32.Vec3(1, -1, 0.5)},
		{Camera: math32.Vec3(0, 4, 0), LookAt: math32.Vec3(0, 0, 0)}, // straight down
	}
	for _, p := range poses {
		cam := Camera{Pose: p, FOV: 35}
		x, y, depth, ok := cam.Project(p.LookAt, 640, 360)
		require.True(t, ok)
		assert.InDelta(t, 320, x, 1e-6)
		assert.InDelta(t, 180, y, 1e-6)
		assert.Positive(t, depth)
	}
}

func TestProjectOrientation(t *testing.T) {
	cam := Camera{Pose: tour.Pose{Camera: math32.Vec3(0, 0, 5), LookAt: math32.Vec3(0, 0, 0)}, FOV: 90}

	x, y, _, ok := cam.Project(math32.Vec3(1, 0, 0), 200, 200)
	require.True(t, ok)
	assert.Greater(t, x, 100.0, "+X is right")
	assert.InDelta(t, 100, y, 1e-6)

	x, y, _, ok = cam.Project(math32.Vec3(0, 1, 0), 200, 200)
	require.True(t, ok)
	assert.Less(t, y, 100.0, "+Y is up")
	assert.InDelta(t, 100, x, 1e-6)

	// fov 90: a point at depth 5 offset by 5 lands on the viewport edge
	_, y, _, _ = cam.Project(math32.Vec3(0, 5, 0), 200, 200)
	assert.InDelta(t, 0, y, 1e-6)

	_, _, _, ok = cam.Project(math32.Vec3(0, 0, 6), 200, 200)
	assert.False(t, ok, "behind camera")
}

func TestRenderFrameDrawsBoxes(t *testing.T) {
	r := New(320, 180)
	dst := r.NewFrame()
	l := layout.MustGenerate(layout.Efficient)
	require.NoError(t, r.RenderFrame(dst, Scene{Layout: l, Wireframe: true}, tour.Frame{Pose: overview}))

	assert.NotEqual(t, r.Background, dst.RGBAAt(160, 90), "boxes at the center")
	assert.Equal(t, r.Background, dst.RGBAAt(0, 0), "corner stays clear")
}

func TestRenderFrameEmptyScene(t *testing.T) {
	r := New(64, 48)
	dst := r.NewFrame()
	require.NoError(t, r.RenderFrame(dst, Scene{}, tour.Frame{Pose: overview}))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			require.Equal(t, r.Background, dst.RGBAAt(x, y))
		}
	}
}

func TestRenderFrameSizeMismatch(t *testing.T) {
	r := New(64, 48)
	err := r.RenderFrame(image.NewRGBA(image.Rect(0, 0, 10, 10)), Scene{}, tour.Frame{Pose: overview})
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestAnnotationChangesPixels(t *testing.T) {
	r := New(320, 180)
	scene := Scene{Layout: layout.MustGenerate(layout.Feature)}
	pose := tour.Pose{Camera: math32.Vec3(0, 1, 4), LookAt: math32.Vec3(0, 0, 0)}

	plain := r.NewFrame()
	require.NoError(t, r.RenderFrame(plain, scene, tour.Frame{Pose: pose}))

	labelled := r.NewFrame()
	ann := &tour.Annotation{Anchor: math32.Vec3(0, 0.8, 0), Title: "Loading", Subtitle: "9 boxes"}
	require.NoError(t, r.RenderFrame(labelled, scene, tour.Frame{Pose: pose, Annotation: ann}))

	assert.NotEqual(t, plain.Pix, labelled.Pix)
}

func TestTooltipRect(t *testing.T) {
	r := New(400, 300)
	b := r.Bounds()
	for _, a := range tour.DefaultAnchors {
		rect := r.TooltipRect(a, "Scan a parcel")
		assert.True(t, rect.In(b), a.String())
		if a.Left() {
			assert.Less(t, rect.Max.X, 200, a.String())
		} else {
			assert.Greater(t, rect.Min.X, 200, a.String())
		}
	}
	top := r.TooltipRect(tour.LeftTop, "x")
	mid := r.TooltipRect(tour.LeftCenter, "x")
	bot := r.TooltipRect(tour.LeftBottom, "x")
	assert.Less(t, top.Min.Y, mid.Min.Y)
	assert.Less(t, mid.Min.Y, bot.Min.Y)
}

func TestCompareFrame(t *testing.T) {
	r := New(320, 180)
	dst := r.NewFrame()
	before := layout.MustGenerate(layout.Inefficient)
	after := layout.MustGenerate(layout.Efficient)
	require.NoError(t, r.CompareFrame(dst, before, after, overview, 0))
	assert.Equal(t, r.Accent, dst.RGBAAt(160, 100), "divider")
}

func TestEndCard(t *testing.T) {
	r := New(320, 180)
	dst := r.NewFrame()
	require.NoError(t, r.EndCard(dst, DefaultEndCard))

	// QR codes have a white quiet zone.
	side := 90
	x := 320 - side - 32
	y := (180 - side) / 2
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(x+1, y+1))
}

func TestFollower(t *testing.T) {
	f := NewFollower()
	start := tour.Pose{Camera: math32.Vec3(0, 0, 10)}
	target := tour.Pose{Camera: math32.Vec3(10, 0, 10)}

	assert.Equal(t, start, f.Update(start, 1.0/30))

	p := f.Update(target, 1.0/30)
	assert.Greater(t, p.Camera.X, float32(0))
	assert.Less(t, p.Camera.X, float32(10))

	// A long stall is clamped to MaxStep.
	g := NewFollower()
	g.Update(start, 0)
	q := g.Update(target, 5)
	assert.InDelta(t, 10*(1-math.Exp(-4*0.1)), q.Camera.X, 1e-4)

	for i := 0; i < 300; i++ {
		p = f.Update(target, 1.0/30)
	}
	assert.InDelta(t, 10, p.Camera.X, 1e-3)

	f.Reset()
	assert.Equal(t, start, f.Update(start, 1.0/30))
}

func TestWritePNG(t *testing.T) {
	r := New(32, 24)
	dst := r.NewFrame()
	require.NoError(t, r.RenderFrame(dst, Scene{}, tour.Frame{Pose: overview}))

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, dst))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, dst.Bounds(), img.Bounds())

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, WritePNG(path, dst))
}
