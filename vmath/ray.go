package vmath

import "math"

// rayParallelEpsilon rejects rays nearly parallel to the target plane
const rayParallelEpsilon = 1e-9

// Ray is a half-line with normalized direction
type Ray struct {
	Origin Vec3F
	Dir    Vec3F
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3F {
	return V3FAdd(r.Origin, V3FScale(r.Dir, t))
}

// IntersectPlaneZ intersects the ray with the plane z = planeZ
// Returns false when the ray is parallel to the plane or the hit lies behind the origin
func (r Ray) IntersectPlaneZ(planeZ float64) (Vec3F, bool) {
	if math.Abs(r.Dir.Z) < rayParallelEpsilon {
		return Vec3F{}, false
	}
	t := (planeZ - r.Origin.Z) / r.Dir.Z
	if t < 0 || !isFinite(t) {
		return Vec3F{}, false
	}
	return r.At(t), true
}
