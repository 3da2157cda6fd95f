package particle

import (
	"math"

	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/vmath"
)

type flake struct {
	speed  float64
	offset float64
}

// SnowField is the falling atmosphere layer; flakes wrap from bottom to top
type SnowField struct {
	positions []float32
	flakes    []flake
	rng       *vmath.FastRand
}

func NewSnowField(count int, rng *vmath.FastRand) *SnowField {
	if count < 0 {
		count = 0
	}
	s := &SnowField{
		positions: make([]float32, count*3),
		flakes:    make([]flake, count),
		rng:       rng,
	}
	for i := range s.flakes {
		x, z := rng.Disc(parameter.SnowRadius)
		y := (rng.Float64() - 0.5) * parameter.SnowSpanY
		vmath.V3FPut(s.positions, i, vmath.Vec3F{X: x, Y: y, Z: z})
		s.flakes[i] = flake{
			speed:  rng.Range(parameter.SnowSpeedMin, parameter.SnowSpeedMax),
			offset: rng.Float64() * parameter.SnowOffsetMax,
		}
	}
	return s
}

// Update moves flakes down with a time-based horizontal drift
func (s *SnowField) Update(elapsed, dt float64) {
	for i, fl := range s.flakes {
		p := vmath.V3FAt(s.positions, i)

		p.Y -= fl.speed * dt * parameter.SnowFallScale
		p.X += math.Cos(elapsed+fl.offset) * parameter.SnowDriftX * dt
		p.Z += math.Sin(elapsed*parameter.SnowDriftFreq+fl.offset) * parameter.SnowDriftZ * dt

		if p.Y < parameter.SnowBottom {
			p.Y = parameter.SnowTop
			p.X, p.Z = s.rng.Disc(parameter.SnowRadius)
		}
		vmath.V3FPut(s.positions, i, p)
	}
}

// Positions returns the flat xyz buffer
func (s *SnowField) Positions() []float32 {
	return s.positions
}

// Len returns the flake count
func (s *SnowField) Len() int {
	return len(s.flakes)
}
