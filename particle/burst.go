package particle

import (
	"sync/atomic"

	"github.com/lixenwraith/memory-tree/event"
	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/status"
	"github.com/lixenwraith/memory-tree/vmath"
)

// BurstParticle is one pool slot; Life <= 0 means dead and reusable
type BurstParticle struct {
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Life     float64
}

// BurstPool is a fixed-capacity arena of explosion particles
// Slots are addressed by index and recycled by a dead-slot scan; the pool never grows
type BurstPool struct {
	slots     []BurstParticle
	positions []float32
	budget    int
	alive     int

	cursor event.BurstCursor
	rng    *vmath.FastRand

	statSpawned *atomic.Int64
	statDropped *atomic.Int64
	statAlive   *atomic.Int64
}

var parked = vmath.Vec3F{X: parameter.BurstParkCoord, Y: parameter.BurstParkCoord, Z: parameter.BurstParkCoord}

// NewBurstPool allocates capacity slots, all dead and parked off-screen
// budget is the per-event spawn limit
func NewBurstPool(capacity, budget int, rng *vmath.FastRand, reg *status.Registry) *BurstPool {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if capacity < 0 {
		capacity = 0
	}

	p := &BurstPool{
		slots:       make([]BurstParticle, capacity),
		positions:   make([]float32, capacity*3),
		budget:      budget,
		rng:         rng,
		statSpawned: reg.Ints.Get("burst.spawned"),
		statDropped: reg.Ints.Get("burst.dropped"),
		statAlive:   reg.Ints.Get("burst.alive"),
	}
	for i := range p.slots {
		p.slots[i].Position = parked
		vmath.V3FPut(p.positions, i, parked)
	}
	return p
}

// Consume spawns a burst if the signal holds a request this pool has not processed
// Returns the number of particles activated
func (p *BurstPool) Consume(sig *event.BurstSignal) int {
	req, ok := p.cursor.Poll(sig)
	if !ok {
		return 0
	}
	return p.Spawn(req.Origin, p.budget)
}

// Spawn activates up to n dead slots at origin in index order
// Requests beyond available dead slots are dropped silently
func (p *BurstPool) Spawn(origin vmath.Vec3F, n int) int {
	spawned := 0
	for i := range p.slots {
		if spawned >= n {
			break
		}
		s := &p.slots[i]
		if s.Life > 0 {
			continue
		}

		speed := p.rng.Range(parameter.BurstSpeedMin, parameter.BurstSpeedMax)
		s.Position = origin
		s.Velocity = vmath.V3FScale(p.rng.UnitSphere(), speed)
		s.Life = 1.0
		vmath.V3FPut(p.positions, i, origin)
		spawned++
	}

	p.alive += spawned
	p.statSpawned.Add(int64(spawned))
	if n > spawned {
		p.statDropped.Add(int64(n - spawned))
	}
	p.statAlive.Store(int64(p.alive))
	return spawned
}

// Update integrates live particles by one frame
func (p *BurstPool) Update(dt float64) {
	if p.alive == 0 {
		return
	}

	alive := 0
	for i := range p.slots {
		s := &p.slots[i]
		if s.Life <= 0 {
			continue
		}

		s.Velocity.Y -= parameter.BurstGravity * dt
		s.Velocity = vmath.V3FScale(s.Velocity, parameter.BurstDrag)
		s.Position = vmath.V3FAdd(s.Position, s.Velocity)
		s.Life -= dt * parameter.BurstDecayRate

		if s.Life <= 0 {
			s.Position = parked
		} else {
			alive++
		}
		vmath.V3FPut(p.positions, i, s.Position)
	}
	p.alive = alive
	p.statAlive.Store(int64(alive))
}

// Positions returns the flat xyz buffer; dead slots sit at the park coordinate
func (p *BurstPool) Positions() []float32 {
	return p.positions
}

// Capacity returns the fixed slot count
func (p *BurstPool) Capacity() int {
	return len(p.slots)
}

// Budget returns the per-event spawn limit
func (p *BurstPool) Budget() int {
	return p.budget
}

// Alive returns the number of live slots
func (p *BurstPool) Alive() int {
	return p.alive
}

// Slot returns a copy of slot i
func (p *BurstPool) Slot(i int) BurstParticle {
	return p.slots[i]
}

// Resume continues consumption after cursor, so a pool rebuilt for a new
// density does not replay a request its predecessor already handled
func (p *BurstPool) Resume(cursor event.BurstCursor) {
	p.cursor = cursor
}

// Cursor returns the consumption cursor
func (p *BurstPool) Cursor() event.BurstCursor {
	return p.cursor
}
