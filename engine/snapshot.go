package engine

import (
	"github.com/lixenwraith/memory-tree/progression"
)

// Snapshot is a self-contained copy of one frame's outputs
// Safe to hand to other goroutines
type Snapshot struct {
	Frame      int64             `json:"frame"`
	Elapsed    float64           `json:"elapsed"`
	Density    string            `json:"density"`
	Phase      string            `json:"phase"`
	State      progression.State `json:"state"`
	Ambient    []float32         `json:"ambient"`
	Burst      []float32         `json:"burst"`
	BurstAlive int               `json:"burstAlive"`
}

// Snapshot copies the current outputs; snow is left out as purely decorative
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Frame:      s.frame,
		Elapsed:    s.elapsed,
		Density:    s.density.String(),
		Phase:      s.ambient.Phase().String(),
		State:      s.machine.Snapshot(),
		Ambient:    append([]float32(nil), s.ambient.Positions()...),
		Burst:      append([]float32(nil), s.pool.Positions()...),
		BurstAlive: s.pool.Alive(),
	}
}
