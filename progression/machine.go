package progression

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/memory-tree/event"
	"github.com/lixenwraith/memory-tree/scene"
	"github.com/lixenwraith/memory-tree/status"
)

// State is a read-only snapshot of progression for hosts and UI
type State struct {
	CurrentIndex int  `json:"currentIndex"`
	Total        int  `json:"total"`
	IsFinished   bool `json:"isFinished"`
	// FinaleOpen is the dismissible finale notice; raised only by the finishing transition
	FinaleOpen bool `json:"finaleOpen"`

	// Debug fields of the last attempt; nil until the first attempt after creation or reset
	LastAttemptIndex     *int  `json:"lastAttemptIndex,omitempty"`
	LastAttemptSucceeded *bool `json:"lastAttemptSucceeded,omitempty"`
}

// Machine owns progression and is its only writer
// Holds must be visited strictly in ascending ordinal order
// Not safe for concurrent use; hosts route input through the simulation frame
type Machine struct {
	holds []scene.Hold
	burst *event.BurstSignal

	currentIndex int
	finished     bool
	finaleOpen   bool

	lastAttemptIndex     int
	lastAttemptSucceeded bool
	hasAttempt           bool

	onFinale func()

	statAdvanced *atomic.Int64
	statRejected *atomic.Int64
	statRepeated *atomic.Int64
	statIndex    *atomic.Int64
	statFinished *atomic.Bool
}

// NewMachine creates a machine over the given route
// burst receives one request per successful advance; reg may be nil
func NewMachine(holds []scene.Hold, burst *event.BurstSignal, reg *status.Registry) *Machine {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if burst == nil {
		burst = event.NewBurstSignal()
	}

	route := make([]scene.Hold, len(holds))
	copy(route, holds)

	m := &Machine{
		holds: route,
		burst: burst,

		statAdvanced: reg.Ints.Get("progression.advanced"),
		statRejected: reg.Ints.Get("progression.rejected"),
		statRepeated: reg.Ints.Get("progression.repeated"),
		statIndex:    reg.Ints.Get("progression.index"),
		statFinished: reg.Bools.Get("progression.finished"),
	}
	m.Reset()
	return m
}

// OnFinale registers the finale-open listener, invoked once per finishing transition
func (m *Machine) OnFinale(fn func()) {
	m.onFinale = fn
}

// Attempt tries to select the hold at index
// Returns true on advance or on re-click of a completed hold, false on rejection or after finish
func (m *Machine) Attempt(index int) bool {
	log.Printf("[progression] attempt hold=%d next=%d finished=%v", index, m.currentIndex, m.finished)

	if m.finished {
		return false
	}

	switch {
	case index < 0 || index >= len(m.holds):
		m.record(index, false)
		m.statRejected.Add(1)
		return false

	case index == m.currentIndex:
		m.currentIndex++
		m.burst.Emit(m.holds[index].Position)
		m.record(index, true)
		m.statAdvanced.Add(1)
		m.statIndex.Store(int64(m.currentIndex))

		if m.currentIndex == len(m.holds) {
			m.finished = true
			m.finaleOpen = true
			m.statFinished.Store(true)
			log.Printf("[progression] route complete after hold=%d", index)
			if m.onFinale != nil {
				m.onFinale()
			}
		}
		return true

	case index < m.currentIndex:
		// Already lit; acknowledged without advancing or bursting
		m.record(index, true)
		m.statRepeated.Add(1)
		return true

	default:
		m.record(index, false)
		m.statRejected.Add(1)
		return false
	}
}

// Reset returns to a fresh session and drops any pending burst request
func (m *Machine) Reset() {
	m.currentIndex = 0
	// An empty route is complete from the start
	m.finished = len(m.holds) == 0
	m.finaleOpen = false
	m.hasAttempt = false
	m.lastAttemptIndex = 0
	m.lastAttemptSucceeded = false
	m.burst.Clear()

	m.statIndex.Store(0)
	m.statFinished.Store(m.finished)
}

// CloseFinale dismisses the finale notice; progression stays finished
func (m *Machine) CloseFinale() {
	m.finaleOpen = false
}

// Snapshot returns a copy of the current state
func (m *Machine) Snapshot() State {
	s := State{
		CurrentIndex: m.currentIndex,
		Total:        len(m.holds),
		IsFinished:   m.finished,
		FinaleOpen:   m.finaleOpen,
	}
	if m.hasAttempt {
		idx := m.lastAttemptIndex
		ok := m.lastAttemptSucceeded
		s.LastAttemptIndex = &idx
		s.LastAttemptSucceeded = &ok
	}
	return s
}

// Finished reports whether every hold has been selected
func (m *Machine) Finished() bool {
	return m.finished
}

// Holds returns a copy of the route
func (m *Machine) Holds() []scene.Hold {
	out := make([]scene.Hold, len(m.holds))
	copy(out, m.holds)
	return out
}

// Burst returns the signal this machine writes to
func (m *Machine) Burst() *event.BurstSignal {
	return m.burst
}

func (m *Machine) record(index int, ok bool) {
	m.hasAttempt = true
	m.lastAttemptIndex = index
	m.lastAttemptSucceeded = ok
}
