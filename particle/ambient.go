package particle

import (
	"math"

	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/scene"
	"github.com/lixenwraith/memory-tree/status"
	"github.com/lixenwraith/memory-tree/vmath"
)

// AmbientParticle is a long-lived mote anchored to Home
type AmbientParticle struct {
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Home     vmath.Vec3F
}

// AmbientField is the fixed set of motes circling the tree
// Allocated once per density mode; particles are never added or removed
type AmbientField struct {
	particles []AmbientParticle
	positions []float32
	sizes     []float32

	finale  FinaleSequencer
	apex    vmath.Vec3F
	explode vmath.Vec3F

	statPhase   *status.AtomicString
	statElapsed *status.AtomicFloat
}

// NewAmbientField places count motes in the annulus-cylinder around the trunk axis
func NewAmbientField(count int, rng *vmath.FastRand, reg *status.Registry) *AmbientField {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if count < 0 {
		count = 0
	}

	f := &AmbientField{
		particles:   make([]AmbientParticle, count),
		positions:   make([]float32, count*3),
		sizes:       make([]float32, count),
		apex:        scene.Apex(),
		explode:     scene.ExplodeCenter(),
		statPhase:   reg.Strings.Get("finale.phase"),
		statElapsed: reg.Floats.Get("finale.elapsed"),
	}
	reg.Ints.Get("ambient.count").Store(int64(count))

	for i := range f.particles {
		r := rng.Range(parameter.AmbientRadiusMin, parameter.AmbientRadiusMax)
		theta := rng.Float64() * 2 * math.Pi
		y := (rng.Float64() - 0.5) * parameter.AmbientHeightSpan

		home := vmath.Vec3F{X: r * math.Cos(theta), Y: y, Z: r * math.Sin(theta)}
		f.particles[i] = AmbientParticle{Position: home, Home: home}
		f.sizes[i] = float32(rng.Float64())
		vmath.V3FPut(f.positions, i, home)
	}
	f.statPhase.Store(FinaleNone.String())
	return f
}

// Update advances every mote by one frame
// pointer is the pointer projected onto the interaction plane; nil disables repulsion
func (f *AmbientField) Update(dt float64, pointer *vmath.Vec3F, finished bool) {
	phase := f.finale.Advance(finished, dt)
	f.statPhase.Store(phase.String())
	f.statElapsed.Set(f.finale.Elapsed())

	springStrength := parameter.AmbientSpringStrength * dt
	forceStrength := parameter.RepulsionForce * dt
	radius := parameter.RepulsionRadius
	radiusSq := radius * radius

	for i := range f.particles {
		p := &f.particles[i]
		pos, vel := p.Position, p.Velocity

		switch phase {
		case FinaleAttract:
			vel = vmath.V3FAdd(vel, vmath.V3FScale(vmath.V3FSub(f.apex, pos), parameter.AttractStrength*dt))

		case FinaleExplode:
			vel = vmath.V3FAdd(vel, vmath.V3FScale(vmath.V3FSub(pos, f.explode), parameter.ExplodeStrength*dt))

		default:
			vel = vmath.V3FAdd(vel, vmath.V3FScale(vmath.V3FSub(p.Home, pos), springStrength))

			if pointer != nil {
				d := vmath.V3FSub(pos, *pointer)
				d2 := vmath.V3FMagSq(d)
				// Below epsilon the direction is undefined; skip rather than divide by ~0
				if d2 < radiusSq && d2 > parameter.RepulsionEpsilonSq {
					dist := math.Sqrt(d2)
					falloff := (radius - dist) / radius
					vel = vmath.V3FAdd(vel, vmath.V3FScale(d, falloff*forceStrength/dist))
				}
			}
		}

		vel = vmath.V3FScale(vel, parameter.AmbientDamping)
		pos = vmath.V3FAdd(pos, vel)

		p.Position, p.Velocity = pos, vel
		vmath.V3FPut(f.positions, i, pos)
	}
}

// Positions returns the flat xyz buffer rewritten each frame
func (f *AmbientField) Positions() []float32 {
	return f.positions
}

// Sizes returns per-mote size factors in [0,1)
func (f *AmbientField) Sizes() []float32 {
	return f.sizes
}

// Len returns the mote count
func (f *AmbientField) Len() int {
	return len(f.particles)
}

// Particle returns a copy of mote i
func (f *AmbientField) Particle(i int) AmbientParticle {
	return f.particles[i]
}

// Finale exposes the embedded sequencer for inspection
func (f *AmbientField) Finale() *FinaleSequencer {
	return &f.finale
}

// Phase returns the finale phase of the last update
func (f *AmbientField) Phase() FinalePhase {
	return f.finale.Phase()
}

// CarryFinale copies the finale timer from a field being replaced
// Keeps a running finale on schedule across a density change
func (f *AmbientField) CarryFinale(from *AmbientField) {
	if from == nil {
		return
	}
	f.finale = from.finale
}
