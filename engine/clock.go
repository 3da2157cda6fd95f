package engine

import (
	"time"

	"github.com/lixenwraith/memory-tree/parameter"
	"github.com/lixenwraith/memory-tree/vmath"
)

// FrameClock converts wall time into per-frame (elapsed, delta) pairs in seconds
// Delta is clamped to [MinDeltaTime, MaxDeltaTime]; elapsed advances by the clamped
// delta, so time spent paused or stalled never reaches the simulation
type FrameClock struct {
	provider TimeProvider
	last     time.Time
	elapsed  float64
	paused   bool
}

// NewFrameClock starts a clock at the provider's current time
func NewFrameClock(provider TimeProvider) *FrameClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &FrameClock{
		provider: provider,
		last:     provider.Now(),
	}
}

// Tick returns elapsed and delta for a new frame
// While paused the delta is zero and elapsed is frozen
func (c *FrameClock) Tick() (elapsed, delta float64) {
	now := c.provider.Now()
	raw := now.Sub(c.last).Seconds()
	c.last = now

	if c.paused {
		return c.elapsed, 0
	}

	delta = ClampDelta(raw)
	c.elapsed += delta
	return c.elapsed, delta
}

// Pause freezes simulation time
func (c *FrameClock) Pause() {
	c.paused = true
}

// Resume restarts simulation time from the current instant
func (c *FrameClock) Resume() {
	c.paused = false
	c.last = c.provider.Now()
}

// IsPaused reports pause state
func (c *FrameClock) IsPaused() bool {
	return c.paused
}

// Elapsed returns accumulated simulation seconds
func (c *FrameClock) Elapsed() float64 {
	return c.elapsed
}

// ClampDelta bounds a raw delta to the simulation's accepted range
func ClampDelta(dt float64) float64 {
	if dt != dt { // NaN
		return parameter.MinDeltaTime
	}
	return vmath.Clamp(dt, parameter.MinDeltaTime, parameter.MaxDeltaTime)
}
