package event

import (
	"github.com/lixenwraith/memory-tree/vmath"
)

// BurstRequest asks the burst pool to explode at Origin
// ID is unique and strictly increasing for the lifetime of the signal
type BurstRequest struct {
	ID     uint64
	Origin vmath.Vec3F
}

// BurstSignal is a single-slot, latest-wins burst channel
// The producer overwrites unconditionally; there is no backlog
// Several emits before a consume collapse into the newest request
type BurstSignal struct {
	current BurstRequest
	pending bool
	nextID  uint64
	emitted uint64
}

func NewBurstSignal() *BurstSignal {
	return &BurstSignal{}
}

// Emit stores a new request with a fresh id and returns it
func (b *BurstSignal) Emit(origin vmath.Vec3F) BurstRequest {
	b.nextID++
	b.emitted++
	b.current = BurstRequest{ID: b.nextID, Origin: origin}
	b.pending = true
	return b.current
}

// Latest returns the retained request, if any
func (b *BurstSignal) Latest() (BurstRequest, bool) {
	return b.current, b.pending
}

// Clear drops the retained request; the id counter is kept so ids stay unique across resets
func (b *BurstSignal) Clear() {
	b.current = BurstRequest{}
	b.pending = false
}

// Emitted returns the number of requests ever produced
func (b *BurstSignal) Emitted() uint64 {
	return b.emitted
}

// BurstCursor tracks the last processed request id for one consumer
type BurstCursor struct {
	lastSeen uint64
}

// Poll returns the retained request when it has not been processed by this cursor
// Calling Poll again for the same id returns false
func (c *BurstCursor) Poll(b *BurstSignal) (BurstRequest, bool) {
	req, ok := b.Latest()
	if !ok || req.ID == c.lastSeen {
		return BurstRequest{}, false
	}
	c.lastSeen = req.ID
	return req, true
}

// LastSeen returns the id of the last processed request, 0 if none
func (c *BurstCursor) LastSeen() uint64 {
	return c.lastSeen
}
