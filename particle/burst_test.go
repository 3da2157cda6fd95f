package particle

import (
	"math"
	"testing"

	"github.com/lixenwraith/memory-tree/event"
	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/status"
	"github.com/lixenwraith/memory-tree/vmath"
)

func newTestPool(capacity, budget int) *BurstPool {
	return NewBurstPool(capacity, budget, vmath.NewFastRand(42), status.NewRegistry())
}

func TestBurstPoolStartsDeadAndParked(t *testing.T) {
	p := newTestPool(30, 10)
	if p.Alive() != 0 {
		t.Errorf("Expected no live slots, got %d", p.Alive())
	}
	for i := 0; i < p.Capacity(); i++ {
		if p.Slot(i).Life > 0 {
			t.Fatalf("Slot %d alive at creation", i)
		}
		if got := vmath.V3FAt(p.Positions(), i); got.X != parameter.BurstParkCoord {
			t.Fatalf("Slot %d not parked: %+v", i, got)
		}
	}
}

func TestBurstSpawnCapacityBound(t *testing.T) {
	p := newTestPool(24, 1000)
	origin := vmath.Vec3F{X: 1, Y: 2, Z: 3}

	spawned := p.Spawn(origin, 24+7)
	if spawned != 24 {
		t.Errorf("Expected 24 spawned, got %d", spawned)
	}
	if p.Alive() != 24 {
		t.Errorf("Expected 24 alive, got %d", p.Alive())
	}
	if p.Spawn(origin, 5) != 0 {
		t.Error("Expected exhausted pool to spawn nothing")
	}

	for i := 0; i < p.Capacity(); i++ {
		s := p.Slot(i)
		if s.Life <= 0 || s.Life > 1 {
			t.Errorf("Slot %d life %f outside (0,1]", i, s.Life)
		}
		if s.Position != origin {
			t.Errorf("Slot %d not at origin", i)
		}
		speed := vmath.V3FMag(s.Velocity)
		if speed < parameter.BurstSpeedMin-1e-9 || speed >= parameter.BurstSpeedMax+1e-9 {
			t.Errorf("Slot %d speed %f outside explosive range", i, speed)
		}
	}
}

func TestBurstSpawnIndexOrder(t *testing.T) {
	p := newTestPool(10, 4)
	p.Spawn(vmath.Vec3F{}, 4)
	for i := 0; i < 10; i++ {
		alive := p.Slot(i).Life > 0
		if alive != (i < 4) {
			t.Errorf("Slot %d alive=%v, expected first four only", i, alive)
		}
	}
}

func TestBurstLifeMonotonicUntilDead(t *testing.T) {
	p := newTestPool(16, 16)
	p.Spawn(vmath.Vec3F{}, 16)

	prev := make([]float64, p.Capacity())
	for i := range prev {
		prev[i] = p.Slot(i).Life
	}

	for frame := 0; frame < 200 && p.Alive() > 0; frame++ {
		p.Update(1.0 / 60)
		for i := range prev {
			life := p.Slot(i).Life
			if prev[i] > 0 && life >= prev[i] {
				t.Fatalf("Slot %d life did not decrease: %f -> %f", i, prev[i], life)
			}
			prev[i] = life
		}
	}
	if p.Alive() != 0 {
		t.Errorf("Expected all slots dead, %d alive", p.Alive())
	}

	for i := 0; i < p.Capacity(); i++ {
		pos := p.Slot(i).Position
		if pos.X != parameter.BurstParkCoord || pos.Y != parameter.BurstParkCoord || pos.Z != parameter.BurstParkCoord {
			t.Errorf("Dead slot %d not parked: %+v", i, pos)
		}
	}
}

func TestBurstDeadSlotsReused(t *testing.T) {
	p := newTestPool(8, 8)
	p.Spawn(vmath.Vec3F{}, 8)

	// Run until dead: life 1.0 at 1.5/s needs > 0.67s
	for i := 0; i < 60; i++ {
		p.Update(1.0 / 60)
	}
	if p.Alive() != 0 {
		t.Fatalf("Expected pool drained, %d alive", p.Alive())
	}

	origin := vmath.Vec3F{X: -1}
	if got := p.Spawn(origin, 8); got != 8 {
		t.Errorf("Expected 8 reused slots, got %d", got)
	}
}

func TestBurstGravityAndDrag(t *testing.T) {
	p := newTestPool(1, 1)
	p.Spawn(vmath.Vec3F{}, 1)
	v0 := p.Slot(0).Velocity

	dt := 0.02
	p.Update(dt)
	v1 := p.Slot(0).Velocity

	wantY := (v0.Y - parameter.BurstGravity*dt) * parameter.BurstDrag
	if math.Abs(v1.Y-wantY) > 1e-12 {
		t.Errorf("Expected vy %f, got %f", wantY, v1.Y)
	}
	if math.Abs(v1.X-v0.X*parameter.BurstDrag) > 1e-12 {
		t.Errorf("Expected vx %f, got %f", v0.X*parameter.BurstDrag, v1.X)
	}
	if got := p.Slot(0).Position; got != v1 {
		t.Errorf("Expected position to integrate velocity from origin, got %+v", got)
	}
	if math.Abs(p.Slot(0).Life-(1-dt*parameter.BurstDecayRate)) > 1e-12 {
		t.Errorf("Unexpected life %f", p.Slot(0).Life)
	}
}

func TestBurstConsumeIdempotent(t *testing.T) {
	p := newTestPool(30, 10)
	sig := event.NewBurstSignal()

	if p.Consume(sig) != 0 {
		t.Error("Expected nothing to consume on empty signal")
	}

	sig.Emit(vmath.Vec3F{Y: 1})
	if got := p.Consume(sig); got != 10 {
		t.Errorf("Expected budget of 10 spawned, got %d", got)
	}
	if got := p.Consume(sig); got != 0 {
		t.Errorf("Expected same id to be ignored, got %d", got)
	}
	if p.Alive() != 10 {
		t.Errorf("Expected 10 alive, got %d", p.Alive())
	}

	sig.Emit(vmath.Vec3F{Y: 2})
	sig.Emit(vmath.Vec3F{Y: 3})
	if got := p.Consume(sig); got != 10 {
		t.Errorf("Expected collapsed bursts to spawn one budget, got %d", got)
	}
}

func TestBurstResumeSkipsHandledRequest(t *testing.T) {
	sig := event.NewBurstSignal()
	a := newTestPool(10, 5)
	sig.Emit(vmath.Vec3F{})
	a.Consume(sig)

	b := newTestPool(10, 5)
	b.Resume(a.Cursor())
	if got := b.Consume(sig); got != 0 {
		t.Errorf("Expected rebuilt pool to skip handled request, spawned %d", got)
	}
}

func TestBurstMetrics(t *testing.T) {
	reg := status.NewRegistry()
	p := NewBurstPool(6, 6, vmath.NewFastRand(1), reg)
	p.Spawn(vmath.Vec3F{}, 9)

	if got := reg.Ints.Get("burst.spawned").Load(); got != 6 {
		t.Errorf("Expected spawned=6, got %d", got)
	}
	if got := reg.Ints.Get("burst.dropped").Load(); got != 3 {
		t.Errorf("Expected dropped=3, got %d", got)
	}
	if got := reg.Ints.Get("burst.alive").Load(); got != 6 {
		t.Errorf("Expected alive=6, got %d", got)
	}
}
