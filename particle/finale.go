package particle

import (
	"github.com/lixenwraith/memory-tree/parameter"
)

// FinalePhase selects ambient behavior during the finale
type FinalePhase uint8

const (
	// FinaleNone is normal spring-and-repulsion behavior outside the finale
	FinaleNone FinalePhase = iota
	// FinaleAttract pulls every mote toward the apex
	FinaleAttract
	// FinaleExplode pushes motes outward from the explode center
	FinaleExplode
	// FinaleSettle falls back to spring-to-home while progression stays finished
	FinaleSettle
)

func (p FinalePhase) String() string {
	switch p {
	case FinaleAttract:
		return "attract"
	case FinaleExplode:
		return "explode"
	case FinaleSettle:
		return "settle"
	default:
		return "none"
	}
}

// FinaleSequencer is the finale timer gated by the finished flag
type FinaleSequencer struct {
	active  bool
	elapsed float64
	phase   FinalePhase
}

// Advance observes finished, accumulates dt while active and returns the phase for this frame
// Rising edge restarts the timer; falling edge deactivates immediately
func (f *FinaleSequencer) Advance(finished bool, dt float64) FinalePhase {
	if !finished {
		f.active = false
		f.elapsed = 0
		f.phase = FinaleNone
		return f.phase
	}

	if !f.active {
		f.active = true
		f.elapsed = 0
	}
	f.elapsed += dt

	switch {
	case f.elapsed < parameter.FinaleAttractEnd:
		f.phase = FinaleAttract
	case f.elapsed < parameter.FinaleExplodeEnd:
		f.phase = FinaleExplode
	default:
		f.phase = FinaleSettle
	}
	return f.phase
}

// Phase returns the phase computed by the last Advance
func (f *FinaleSequencer) Phase() FinalePhase {
	return f.phase
}

// Active reports whether the timer is running
func (f *FinaleSequencer) Active() bool {
	return f.active
}

// Elapsed returns seconds since the rising edge
func (f *FinaleSequencer) Elapsed() float64 {
	return f.elapsed
}
