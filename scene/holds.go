package scene

import (
	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/vmath"
)

// Shape selects the host glyph used for a hold
type Shape uint8

const (
	ShapeBox Shape = iota
	ShapeSphere
	ShapeDodecahedron
)

// Hold is a fixed selectable point; Ordinal equals its index in the route
type Hold struct {
	ID       int
	Position vmath.Vec3F
	Ordinal  int
	Color    uint32 // 0xRRGGBB
	Shape    Shape
}

// DefaultHolds returns the ten holds spiralling up the tree, bottom to top
func DefaultHolds() []Hold {
	raw := []struct {
		pos   vmath.Vec3F
		color uint32
		shape Shape
	}{
		{vmath.Vec3F{X: 1.3, Y: -2.5, Z: 0}, 0xef4444, ShapeBox},
		{vmath.Vec3F{X: 0.9, Y: -2.0, Z: 1.1}, 0x3b82f6, ShapeDodecahedron},
		{vmath.Vec3F{X: -0.6, Y: -1.5, Z: 1.3}, 0xeab308, ShapeSphere},
		{vmath.Vec3F{X: -1.3, Y: -1.0, Z: 0.3}, 0xa855f7, ShapeBox},
		{vmath.Vec3F{X: -0.9, Y: -0.5, Z: -0.9}, 0xec4899, ShapeDodecahedron},
		{vmath.Vec3F{X: 0.3, Y: 0.0, Z: -1.1}, 0x14b8a6, ShapeSphere},
		{vmath.Vec3F{X: 1.0, Y: 0.6, Z: -0.5}, 0xf97316, ShapeBox},
		{vmath.Vec3F{X: 0.7, Y: 1.2, Z: 0.6}, 0x84cc16, ShapeDodecahedron},
		{vmath.Vec3F{X: -0.3, Y: 1.8, Z: 0.7}, 0x06b6d4, ShapeSphere},
		{vmath.Vec3F{X: 0, Y: 2.4, Z: 0}, 0xf43f5e, ShapeBox},
	}

	holds := make([]Hold, len(raw))
	for i, r := range raw {
		holds[i] = Hold{
			ID:       i,
			Position: r.pos,
			Ordinal:  i,
			Color:    r.color,
			Shape:    r.shape,
		}
	}
	return holds
}

// Apex is the star point the finale gathers toward
func Apex() vmath.Vec3F {
	return vmath.Vec3F{X: parameter.ApexX, Y: parameter.ApexY, Z: parameter.ApexZ}
}

// ExplodeCenter is the reference point the finale pushes away from
func ExplodeCenter() vmath.Vec3F {
	return vmath.Vec3F{X: parameter.ExplodeCenterX, Y: parameter.ExplodeCenterY, Z: parameter.ExplodeCenterZ}
}
