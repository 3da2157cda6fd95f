// Package camera implements the orbit camera used by terminal and stream hosts
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/vmath"
)

// axis is one spring-smoothed camera coordinate
type axis struct {
	pos, vel, goal float64
}

func (a *axis) step(s harmonica.Spring) {
	a.pos, a.vel = s.Update(a.pos, a.vel, a.goal)
}

func (a *axis) settled() bool {
	return math.Abs(a.pos-a.goal) < 1e-4 && math.Abs(a.vel) < 1e-4
}

// Orbit looks at a fixed target from a point on a sphere
// Yaw rotates around +Y, polar is measured from +Y; at yaw 0 and polar π/2 the camera sits on +Z
// Viewport is in terminal cells; CellAspect corrects for tall cells
type Orbit struct {
	target vmath.Vec3F
	yaw    axis
	polar  axis
	dist   axis

	spring  harmonica.Spring
	tanHalf float64

	width, height int
}

// NewOrbit creates the default camera at (0,0,9) looking at the origin
// fps sets the spring step; Update must be called once per frame at that rate
func NewOrbit(fps int) *Orbit {
	if fps <= 0 {
		fps = parameter.DefaultFPS
	}
	o := &Orbit{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), parameter.CameraSpringFrequency, parameter.CameraSpringDamping),
		tanHalf: math.Tan(parameter.CameraFOV * math.Pi / 360),
		width:   1,
		height:  1,
	}
	o.yaw = axis{pos: 0, goal: 0}
	o.polar = axis{pos: math.Pi / 2, goal: math.Pi / 2}
	o.dist = axis{pos: parameter.CameraDistance, goal: parameter.CameraDistance}
	return o
}

// SetViewport updates the cell dimensions used for projection
func (o *Orbit) SetViewport(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	o.width, o.height = width, height
}

// Viewport returns the cell dimensions
func (o *Orbit) Viewport() (int, int) {
	return o.width, o.height
}

// Rotate moves the yaw and polar goals; polar is clamped to the allowed band
func (o *Orbit) Rotate(dYaw, dPolar float64) {
	o.yaw.goal += dYaw
	o.polar.goal = vmath.Clamp(o.polar.goal+dPolar, parameter.CameraPolarMin, parameter.CameraPolarMax)
}

// Zoom moves the distance goal within [CameraDistanceMin, CameraDistanceMax]
func (o *Orbit) Zoom(d float64) {
	o.dist.goal = vmath.Clamp(o.dist.goal+d, parameter.CameraDistanceMin, parameter.CameraDistanceMax)
}

// Update steps every axis one spring tick toward its goal
func (o *Orbit) Update() {
	o.yaw.step(o.spring)
	o.polar.step(o.spring)
	o.dist.step(o.spring)
}

// Settled reports whether the camera has reached its goals
func (o *Orbit) Settled() bool {
	return o.yaw.settled() && o.polar.settled() && o.dist.settled()
}

// Distance returns the current smoothed distance
func (o *Orbit) Distance() float64 {
	return o.dist.pos
}

// Polar returns the current smoothed polar angle
func (o *Orbit) Polar() float64 {
	return o.polar.pos
}

// Eye returns the camera position
func (o *Orbit) Eye() vmath.Vec3F {
	sp, cp := math.Sincos(o.polar.pos)
	sy, cy := math.Sincos(o.yaw.pos)
	offset := vmath.Vec3F{X: o.dist.pos * sp * sy, Y: o.dist.pos * cp, Z: o.dist.pos * sp * cy}
	return vmath.V3FAdd(o.target, offset)
}

// basis returns forward, right and up unit vectors
func (o *Orbit) basis(eye vmath.Vec3F) (f, r, u vmath.Vec3F) {
	f = vmath.V3FNormalize(vmath.V3FSub(o.target, eye))
	r = vmath.V3FNormalize(vmath.V3FCross(f, vmath.Vec3F{Y: 1}))
	u = vmath.V3FCross(r, f)
	return
}

// aspect is the visible width/height ratio in square units
func (o *Orbit) aspect() float64 {
	return float64(o.width) / (float64(o.height) * parameter.CellAspect)
}

// Project maps a world point to fractional cell coordinates
// ok is false for points behind the near plane; depth is view-space distance along forward
func (o *Orbit) Project(p vmath.Vec3F) (sx, sy, depth float64, ok bool) {
	eye := o.Eye()
	f, r, u := o.basis(eye)
	v := vmath.V3FSub(p, eye)

	depth = vmath.V3FDot(v, f)
	if depth < parameter.CameraNear {
		return 0, 0, depth, false
	}

	ndcX := vmath.V3FDot(v, r) / (depth * o.tanHalf * o.aspect())
	ndcY := vmath.V3FDot(v, u) / (depth * o.tanHalf)

	sx = (ndcX + 1) / 2 * float64(o.width)
	sy = (1 - ndcY) / 2 * float64(o.height)
	return sx, sy, depth, true
}

// CellToNDC returns the normalized device coordinates of a cell center
func (o *Orbit) CellToNDC(x, y int) (ndcX, ndcY float64) {
	ndcX = (float64(x)+0.5)/float64(o.width)*2 - 1
	ndcY = 1 - (float64(y)+0.5)/float64(o.height)*2
	return
}

// Unproject returns the view ray through the given NDC point
func (o *Orbit) Unproject(ndcX, ndcY float64) vmath.Ray {
	eye := o.Eye()
	f, r, u := o.basis(eye)
	dir := vmath.V3FAdd(f, vmath.V3FAdd(
		vmath.V3FScale(r, ndcX*o.tanHalf*o.aspect()),
		vmath.V3FScale(u, ndcY*o.tanHalf),
	))
	return vmath.Ray{Origin: eye, Dir: vmath.V3FNormalize(dir)}
}

// PointerOnPlane intersects the pointer ray with the interaction plane z = InteractionPlaneZ
// ok is false when the ray is parallel to or points away from the plane
func (o *Orbit) PointerOnPlane(ndcX, ndcY float64) (vmath.Vec3F, bool) {
	return o.Unproject(ndcX, ndcY).IntersectPlaneZ(parameter.InteractionPlaneZ)
}
