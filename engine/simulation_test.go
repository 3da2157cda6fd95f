package engine

import (
	"testing"

	"github.com/lixenwraith/memory-tree/event"
	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/particle"
	"github.com/lixenwraith/memory-tree/vmath"
)

const testDT = 1.0 / 60.0

func newTestSimulation(d Density) *Simulation {
	return NewSimulation(Options{Density: d, Seed: 42})
}

func step(sim *Simulation, frames int, pointer *vmath.Vec3F) {
	for i := 0; i < frames; i++ {
		elapsed := float64(sim.Frame()+1) * testDT
		sim.Update(FrameInput{Elapsed: elapsed, Delta: testDT, Pointer: pointer})
	}
}

func TestSimulationInitialState(t *testing.T) {
	sim := newTestSimulation(DensityFull)
	st := sim.State()

	if st.CurrentIndex != 0 || st.IsFinished || st.FinaleOpen {
		t.Errorf("Expected fresh session, got %+v", st)
	}
	if st.Total != 10 {
		t.Errorf("Expected 10 holds, got %d", st.Total)
	}
	if len(sim.AmbientPositions()) != 350*3 {
		t.Errorf("Expected 350 ambient motes, got %d floats", len(sim.AmbientPositions()))
	}
	if len(sim.BurstPositions()) != 360*3 {
		t.Errorf("Expected 360 burst slots, got %d floats", len(sim.BurstPositions()))
	}
	if len(sim.SnowPositions()) != 2000*3 {
		t.Errorf("Expected 2000 flakes, got %d floats", len(sim.SnowPositions()))
	}
}

func TestSimulationFullRoute(t *testing.T) {
	sim := newTestSimulation(DensityFull)
	finaleCalls := 0
	sim.OnFinale(func() { finaleCalls++ })

	// Wrong holds first
	if sim.AttemptSelect(3) {
		t.Error("Expected skip-ahead to fail")
	}

	for i := 0; i < 10; i++ {
		if !sim.AttemptSelect(i) {
			t.Fatalf("Expected hold %d to advance", i)
		}
		// Let each burst decay fully so the pool never runs dry
		step(sim, 45, nil)
	}

	if sim.BurstsEmitted() != 10 {
		t.Errorf("Expected exactly 10 bursts, got %d", sim.BurstsEmitted())
	}
	spawned := sim.Status().Ints.Get("burst.spawned").Load()
	if spawned != 10*parameter.BurstBudgetFull {
		t.Errorf("Expected %d spawned particles, got %d", 10*parameter.BurstBudgetFull, spawned)
	}

	st := sim.State()
	if !st.IsFinished || !st.FinaleOpen || st.CurrentIndex != 10 {
		t.Errorf("Expected finished session with open finale, got %+v", st)
	}
	if finaleCalls != 1 {
		t.Errorf("Expected finale listener once, got %d", finaleCalls)
	}

	// Finished machine rejects everything and emits nothing
	if sim.AttemptSelect(9) || sim.AttemptSelect(0) {
		t.Error("Expected finished session to reject attempts")
	}
	if sim.BurstsEmitted() != 10 {
		t.Errorf("Expected no bursts after finish, got %d", sim.BurstsEmitted())
	}
}

func TestSimulationFinalePhaseOrder(t *testing.T) {
	sim := newTestSimulation(DensityLow)
	for i := 0; i < 10; i++ {
		sim.AttemptSelect(i)
	}

	var order []particle.FinalePhase
	for f := 0; f < 200; f++ {
		step(sim, 1, nil)
		ph := sim.Finale()
		if len(order) == 0 || order[len(order)-1] != ph {
			order = append(order, ph)
		}
	}

	want := []particle.FinalePhase{particle.FinaleAttract, particle.FinaleExplode, particle.FinaleSettle}
	if len(order) != len(want) {
		t.Fatalf("Expected phases %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Phase %d: expected %v, got %v", i, want[i], order[i])
		}
	}
}

func TestSimulationQueuedCommands(t *testing.T) {
	sim := newTestSimulation(DensityFull)

	event.EmitSelect(sim.Queue(), 0, 0)
	event.EmitSelect(sim.Queue(), 1, 0)
	event.EmitSelect(sim.Queue(), 5, 0)

	if sim.State().CurrentIndex != 0 {
		t.Fatal("Expected queued commands to wait for Update")
	}

	step(sim, 1, nil)

	st := sim.State()
	if st.CurrentIndex != 2 {
		t.Errorf("Expected index 2 after queued selects, got %d", st.CurrentIndex)
	}
	if st.LastAttemptIndex == nil || *st.LastAttemptIndex != 5 || *st.LastAttemptSucceeded {
		t.Errorf("Expected last attempt 5 failed, got %+v", st)
	}
	// Two bursts in one frame collapse to the latest
	if sim.BurstAlive() != parameter.BurstBudgetFull {
		t.Errorf("Expected one burst of %d alive, got %d", parameter.BurstBudgetFull, sim.BurstAlive())
	}

	sim.Push(event.GameEvent{Type: event.EventResetRequest})
	step(sim, 1, nil)
	if sim.State().CurrentIndex != 0 {
		t.Errorf("Expected reset through queue, got index %d", sim.State().CurrentIndex)
	}
}

func TestSimulationDensityTogglePreservesProgression(t *testing.T) {
	sim := newTestSimulation(DensityFull)
	sim.AttemptSelect(0)
	sim.AttemptSelect(1)
	sim.AttemptSelect(2)
	step(sim, 1, nil)
	emitted := sim.BurstsEmitted()

	sim.ToggleDensity()

	if sim.Density() != DensityLow {
		t.Fatalf("Expected low density, got %v", sim.Density())
	}
	if sim.State().CurrentIndex != 3 {
		t.Errorf("Expected progression kept at 3, got %d", sim.State().CurrentIndex)
	}
	if len(sim.AmbientPositions()) != 120*3 {
		t.Errorf("Expected 120 ambient motes, got %d floats", len(sim.AmbientPositions()))
	}
	if len(sim.BurstPositions()) != 120*3 {
		t.Errorf("Expected 120 burst slots, got %d floats", len(sim.BurstPositions()))
	}
	if len(sim.SnowPositions()) != 700*3 {
		t.Errorf("Expected 700 flakes, got %d floats", len(sim.SnowPositions()))
	}

	// Already-consumed request must not replay into the new pool
	step(sim, 1, nil)
	if sim.BurstAlive() != 0 {
		t.Errorf("Expected no replayed burst after toggle, got %d alive", sim.BurstAlive())
	}
	if sim.BurstsEmitted() != emitted {
		t.Errorf("Expected toggle not to emit, got %d", sim.BurstsEmitted())
	}

	sim.AttemptSelect(3)
	step(sim, 1, nil)
	if sim.BurstAlive() != parameter.BurstBudgetLow {
		t.Errorf("Expected low budget burst %d, got %d", parameter.BurstBudgetLow, sim.BurstAlive())
	}
}

func TestSimulationDensityToggleKeepsFinaleSchedule(t *testing.T) {
	sim := newTestSimulation(DensityFull)
	for i := 0; i < 10; i++ {
		sim.AttemptSelect(i)
	}
	step(sim, 60, nil) // one second in: explode

	if sim.Finale() != particle.FinaleExplode {
		t.Fatalf("Expected explode phase, got %v", sim.Finale())
	}
	sim.ToggleDensity()
	step(sim, 1, nil)
	if sim.Finale() != particle.FinaleExplode {
		t.Errorf("Expected finale to continue after toggle, got %v", sim.Finale())
	}
}

func TestSimulationReset(t *testing.T) {
	sim := newTestSimulation(DensityFull)
	for i := 0; i < 10; i++ {
		sim.AttemptSelect(i)
	}
	step(sim, 5, nil)

	sim.Reset()
	st := sim.State()
	if st.CurrentIndex != 0 || st.IsFinished || st.FinaleOpen {
		t.Errorf("Expected reset session, got %+v", st)
	}
	if st.LastAttemptIndex != nil {
		t.Error("Expected last attempt cleared by reset")
	}

	step(sim, 1, nil)
	if sim.Finale() != particle.FinaleNone {
		t.Errorf("Expected finale cancelled, got %v", sim.Finale())
	}
	if !sim.AttemptSelect(0) {
		t.Error("Expected first hold accepted after reset")
	}
}

func TestSimulationCloseFinale(t *testing.T) {
	sim := newTestSimulation(DensityLow)
	for i := 0; i < 10; i++ {
		sim.AttemptSelect(i)
	}
	sim.Push(event.GameEvent{Type: event.EventCloseFinale})
	step(sim, 1, nil)

	st := sim.State()
	if st.FinaleOpen {
		t.Error("Expected finale notice closed")
	}
	if !st.IsFinished {
		t.Error("Expected session still finished after closing notice")
	}
}

func TestSimulationPointerRepulsion(t *testing.T) {
	sim := newTestSimulation(DensityFull)
	before := append([]float32(nil), sim.AmbientPositions()...)

	step(sim, 1, nil)
	for i := range before {
		if before[i] != sim.AmbientPositions()[i] {
			t.Fatalf("Expected motes at rest without pointer, float %d moved", i)
		}
	}

	// Pointer sweeps through the field
	moved := false
	for x := -5.0; x <= 5.0; x += 0.5 {
		p := vmath.Vec3F{X: x, Y: 0, Z: 0}
		step(sim, 1, &p)
	}
	for i := range before {
		if before[i] != sim.AmbientPositions()[i] {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("Expected pointer sweep to displace some motes")
	}
}

func TestSimulationSnapshotIsCopy(t *testing.T) {
	sim := newTestSimulation(DensityLow)
	sim.AttemptSelect(0)
	step(sim, 1, nil)

	snap := sim.Snapshot()
	if snap.Frame != 1 || snap.Density != "low" {
		t.Errorf("Expected frame 1 low density, got %d %s", snap.Frame, snap.Density)
	}
	if snap.State.CurrentIndex != 1 {
		t.Errorf("Expected index 1 in snapshot, got %d", snap.State.CurrentIndex)
	}
	if snap.BurstAlive != parameter.BurstBudgetLow {
		t.Errorf("Expected %d alive in snapshot, got %d", parameter.BurstBudgetLow, snap.BurstAlive)
	}

	snap.Burst[0] = -1
	if sim.BurstPositions()[0] == -1 {
		t.Error("Expected snapshot buffers to be independent copies")
	}
}
