package renderer

import (
	"math"

	"cogentcore.org/core/math32"

	"github.com/voxarel/showcase/internal/tour"
)

// nearPlane is the closest depth a point may have and still be projected.
const nearPlane = 0.05

// vec3 is a float64 working vector for projection math.
type vec3 struct{ x, y, z float64 }

func fromV(v math32.Vector3) vec3 { return vec3{float64(v.X), float64(v.Y), float64(v.Z)} }

func (a vec3) add(b vec3) vec3 { return vec3{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3) sub(b vec3) vec3 { return vec3{a.x - b.x, a.y - b.y, a.z - b.z} }
func (a vec3) scale(s float64) vec3 { return vec3{a.x * s, a.y * s, a.z * s} }
func (a vec3) dot(b vec3) float64 { return a.x*b.x + a.y*b.y + a.z*b.z }
func (a vec3) length() float64 { return math.Sqrt(a.dot(a)) }
func (a vec3) cross(b vec3) vec3 {
	return vec3{a.y*b.z - a.z*b.y, a.z*b.x - a.x*b.z, a.x*b.y - a.y*b.x}
}

func (a vec3) normalize() vec3 {
	n := a.length()
	if n == 0 {
		return a
	}
	return a.scale(1 / n)
}

// rotateY turns a about the world Y axis by angle radians.
func (a vec3) rotateY(angle float64) vec3 {
	s, c := math.Sincos(angle)
	return vec3{a.x*c + a.z*s, a.y, -a.x*s + a.z*c}
}

// Camera is a perspective camera aimed with a look-at pose. World up is +Y.
type Camera struct {
	Pose tour.Pose
	FOV  float64 // vertical field of view in degrees
}

// View is a camera bound to a viewport, ready to project points.
type View struct {
	eye            vec3
	right, up, fwd vec3
	focal          float64
	cx, cy         float64
}

// View binds c to a width x height viewport.
func (c Camera) View(width, height int) View {
	eye := fromV(c.Pose.Camera)
	fwd := fromV(c.Pose.LookAt).sub(eye).normalize()
	worldUp := vec3{0, 1, 0}
	right := fwd.cross(worldUp)
	if right.length() < 1e-9 {
		// Looking straight up or down.
		right = fwd.cross(vec3{0, 0, -1})
	}
	right = right.normalize()

	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 45
	}
	return View{
		eye:   eye,
		right: right,
		up:    right.cross(fwd),
		fwd:   fwd,
		focal: float64(height) / 2 / math.Tan(fov*math.Pi/360),
		cx:    float64(width) / 2,
		cy:    float64(height) / 2,
	}
}

// project maps a world point to screen coordinates. ok is false for points
// behind the near plane.
func (v View) project(p vec3) (x, y, depth float64, ok bool) {
	d := p.sub(v.eye)
	depth = d.dot(v.fwd)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	x = v.cx + d.dot(v.right)*v.focal/depth
	y = v.cy - d.dot(v.up)*v.focal/depth
	return x, y, depth, true
}

// Project maps a world point to pixel coordinates.
func (v View) Project(p math32.Vector3) (x, y, depth float64, ok bool) {
	return v.project(fromV(p))
}

// Project maps a world point to pixel coordinates in a width x height viewport.
func (c Camera) Project(p math32.Vector3, width, height int) (x, y, depth float64, ok bool) {
	return c.View(width, height).Project(p)
}
