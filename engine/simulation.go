package engine

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/memory-tree/event"
	"github.com/lixenwraith/memory-tree/particle"
	"github.com/lixenwraith/memory-tree/progression"
	"github.com/lixenwraith/memory-tree/scene"
	"github.com/lixenwraith/memory-tree/status"
	"github.com/lixenwraith/memory-tree/vmath"
)

// FrameInput is everything the host supplies for one frame
type FrameInput struct {
	// Elapsed is monotonic seconds since start, for phase-independent drift
	Elapsed float64
	// Delta is seconds since the previous frame; clamped on entry
	Delta float64
	// Pointer is the pointer already unprojected onto the interaction plane; nil when unavailable
	Pointer *vmath.Vec3F
}

// Options configures a Simulation
type Options struct {
	Holds   []scene.Hold
	Density Density
	Seed    uint64
	Status  *status.Registry
}

// Simulation owns the progression machine and every particle layer
// All mutation happens on the goroutine calling Update and the direct command methods;
// other goroutines communicate through Push
type Simulation struct {
	reg   *status.Registry
	rng   *vmath.FastRand
	queue *event.EventQueue
	burst *event.BurstSignal

	machine *progression.Machine

	density Density
	ambient *particle.AmbientField
	pool    *particle.BurstPool
	snow    *particle.SnowField

	frame   int64
	elapsed float64

	statFrame   *atomic.Int64
	statEmitted *atomic.Int64
	statDensity *status.AtomicString
}

// NewSimulation builds a session at currentIndex 0 with particles at rest
func NewSimulation(opts Options) *Simulation {
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.Holds == nil {
		opts.Holds = scene.DefaultHolds()
	}

	burst := event.NewBurstSignal()
	s := &Simulation{
		reg:     opts.Status,
		rng:     vmath.NewFastRand(opts.Seed),
		queue:   event.NewEventQueue(),
		burst:   burst,
		machine: progression.NewMachine(opts.Holds, burst, opts.Status),
		density: opts.Density,

		statFrame:   opts.Status.Ints.Get("frame.count"),
		statEmitted: opts.Status.Ints.Get("burst.emitted"),
		statDensity: opts.Status.Strings.Get("density"),
	}
	s.allocate()
	return s
}

// allocate (re)builds the particle layers for the current density
func (s *Simulation) allocate() {
	counts := s.density.Counts()

	ambient := particle.NewAmbientField(counts.Ambient, s.rng, s.reg)
	ambient.CarryFinale(s.ambient)

	pool := particle.NewBurstPool(counts.BurstPool, counts.BurstBudget, s.rng, s.reg)
	if s.pool != nil {
		pool.Resume(s.pool.Cursor())
	}

	s.ambient = ambient
	s.pool = pool
	s.snow = particle.NewSnowField(counts.Snow, s.rng)
	s.statDensity.Store(s.density.String())
}

// AttemptSelect is the interactive entry point; see progression.Machine.Attempt
func (s *Simulation) AttemptSelect(index int) bool {
	return s.machine.Attempt(index)
}

// Reset restarts progression; live burst particles decay naturally
func (s *Simulation) Reset() {
	s.machine.Reset()
	log.Printf("[engine] session reset at frame %d", s.frame)
}

// ToggleDensity swaps particle counts; progression is untouched
func (s *Simulation) ToggleDensity() {
	s.density = s.density.Toggle()
	s.allocate()
	log.Printf("[engine] density %s: ambient=%d burst=%d snow=%d",
		s.density, s.ambient.Len(), s.pool.Capacity(), s.snow.Len())
}

// CloseFinale dismisses the finale notice
func (s *Simulation) CloseFinale() {
	s.machine.CloseFinale()
}

// OnFinale registers the finale-open listener
func (s *Simulation) OnFinale(fn func()) {
	s.machine.OnFinale(fn)
}

// Push queues a command from any goroutine; applied at the start of the next Update
func (s *Simulation) Push(ev event.GameEvent) {
	s.queue.Push(ev)
}

// Queue exposes the command queue for producers that emit through event helpers
func (s *Simulation) Queue() *event.EventQueue {
	return s.queue
}

// Update runs one frame: queued commands, then burst spawn, then particle integration
func (s *Simulation) Update(in FrameInput) {
	dt := ClampDelta(in.Delta)
	s.frame++
	s.elapsed = in.Elapsed

	for _, ev := range s.queue.Consume() {
		s.dispatch(ev)
	}

	finished := s.machine.Finished()
	s.pool.Consume(s.burst)
	s.ambient.Update(dt, in.Pointer, finished)
	s.pool.Update(dt)
	s.snow.Update(in.Elapsed, dt)

	s.statFrame.Store(s.frame)
	s.statEmitted.Store(int64(s.burst.Emitted()))
}

func (s *Simulation) dispatch(ev event.GameEvent) {
	switch ev.Type {
	case event.EventSelectRequest:
		if p, ok := ev.Payload.(*event.SelectRequestPayload); ok {
			s.AttemptSelect(p.Index)
		}
	case event.EventResetRequest:
		s.Reset()
	case event.EventDensityToggle:
		s.ToggleDensity()
	case event.EventCloseFinale:
		s.CloseFinale()
	}
}

// === Read-only outputs ===

// AmbientPositions is the flat xyz buffer of ambient motes
func (s *Simulation) AmbientPositions() []float32 {
	return s.ambient.Positions()
}

// AmbientSizes is the per-mote size factor buffer
func (s *Simulation) AmbientSizes() []float32 {
	return s.ambient.Sizes()
}

// BurstPositions is the flat xyz buffer of the burst pool, dead slots parked
func (s *Simulation) BurstPositions() []float32 {
	return s.pool.Positions()
}

// SnowPositions is the flat xyz buffer of snow flakes
func (s *Simulation) SnowPositions() []float32 {
	return s.snow.Positions()
}

// State returns the progression snapshot
func (s *Simulation) State() progression.State {
	return s.machine.Snapshot()
}

// Holds returns the route
func (s *Simulation) Holds() []scene.Hold {
	return s.machine.Holds()
}

// Finale returns the finale phase of the last frame
func (s *Simulation) Finale() particle.FinalePhase {
	return s.ambient.Phase()
}

// Density returns the active density mode
func (s *Simulation) Density() Density {
	return s.density
}

// BurstAlive returns live burst particle count
func (s *Simulation) BurstAlive() int {
	return s.pool.Alive()
}

// BurstsEmitted returns how many burst requests progression ever produced
func (s *Simulation) BurstsEmitted() uint64 {
	return s.burst.Emitted()
}

// Frame returns the number of updates run
func (s *Simulation) Frame() int64 {
	return s.frame
}

// Status returns the metrics registry
func (s *Simulation) Status() *status.Registry {
	return s.reg
}
