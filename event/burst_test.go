package event

import (
	"testing"

	"github.com/lixenwraith/memory-tree/vmath"
)

func TestBurstSignalIDsIncrease(t *testing.T) {
	b := NewBurstSignal()

	if _, ok := b.Latest(); ok {
		t.Fatal("Expected empty signal on creation")
	}

	first := b.Emit(vmath.Vec3F{X: 1})
	second := b.Emit(vmath.Vec3F{X: 2})
	if second.ID <= first.ID {
		t.Errorf("Expected increasing ids, got %d then %d", first.ID, second.ID)
	}
	if b.Emitted() != 2 {
		t.Errorf("Expected 2 emitted, got %d", b.Emitted())
	}
}

func TestBurstSignalLatestWins(t *testing.T) {
	b := NewBurstSignal()
	var c BurstCursor

	b.Emit(vmath.Vec3F{X: 1})
	b.Emit(vmath.Vec3F{X: 2})
	last := b.Emit(vmath.Vec3F{X: 3})

	req, ok := c.Poll(b)
	if !ok {
		t.Fatal("Expected pending request")
	}
	if req.ID != last.ID || req.Origin.X != 3 {
		t.Errorf("Expected newest request %+v, got %+v", last, req)
	}

	if _, ok := c.Poll(b); ok {
		t.Error("Expected no further requests after collapse")
	}
}

func TestBurstCursorIdempotent(t *testing.T) {
	b := NewBurstSignal()
	var c BurstCursor

	b.Emit(vmath.Vec3F{Y: 1})
	if _, ok := c.Poll(b); !ok {
		t.Fatal("Expected first poll to deliver")
	}
	for i := 0; i < 3; i++ {
		if _, ok := c.Poll(b); ok {
			t.Fatalf("Poll %d delivered the same id twice", i)
		}
	}

	next := b.Emit(vmath.Vec3F{Y: 2})
	req, ok := c.Poll(b)
	if !ok || req.ID != next.ID {
		t.Errorf("Expected new id %d, got %d (ok=%v)", next.ID, req.ID, ok)
	}
	if c.LastSeen() != next.ID {
		t.Errorf("Expected LastSeen %d, got %d", next.ID, c.LastSeen())
	}
}

func TestBurstSignalClearKeepsCounter(t *testing.T) {
	b := NewBurstSignal()
	var c BurstCursor

	first := b.Emit(vmath.Vec3F{})
	c.Poll(b)
	b.Clear()

	if _, ok := c.Poll(b); ok {
		t.Error("Expected nothing after Clear")
	}

	second := b.Emit(vmath.Vec3F{})
	if second.ID <= first.ID {
		t.Errorf("Expected id to keep increasing across Clear, got %d after %d", second.ID, first.ID)
	}
	if _, ok := c.Poll(b); !ok {
		t.Error("Expected cursor to see request emitted after Clear")
	}
}
