package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/memory-tree/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()

	EmitSelect(q, 0, 1)
	EmitCommand(q, EventResetRequest, 1)
	EmitSelect(q, 1, 2)

	events := q.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Type != EventSelectRequest || events[1].Type != EventResetRequest || events[2].Type != EventSelectRequest {
		t.Errorf("Unexpected order: %v %v %v", events[0].Type, events[1].Type, events[2].Type)
	}
	p, ok := events[2].Payload.(*SelectRequestPayload)
	if !ok || p.Index != 1 {
		t.Errorf("Expected select payload index 1, got %+v", events[2].Payload)
	}

	if q.Consume() != nil {
		t.Error("Expected empty queue after consume")
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		EmitSelect(q, i, int64(i))
	}

	if q.Len() != parameter.EventQueueSize {
		t.Errorf("Expected Len %d, got %d", parameter.EventQueueSize, q.Len())
	}

	events := q.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(events))
	}
	last := events[len(events)-1].Payload.(*SelectRequestPayload)
	if last.Index != total-1 {
		t.Errorf("Expected newest index %d, got %d", total-1, last.Index)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 16; i++ {
				EmitCommand(q, EventDensityToggle, 0)
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != 64 {
		t.Errorf("Expected 64 events, got %d", got)
	}
}

func TestGetEventType(t *testing.T) {
	tests := []struct {
		name string
		want EventType
		ok   bool
	}{
		{"select", EventSelectRequest, true},
		{" Reset ", EventResetRequest, true},
		{"DENSITY", EventDensityToggle, true},
		{"close", EventCloseFinale, true},
		{"jump", EventNone, false},
	}
	for _, tt := range tests {
		got, ok := GetEventType(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("GetEventType(%q) = %v,%v; want %v,%v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	if EventResetRequest.String() != "reset" {
		t.Errorf("Expected reset, got %s", EventResetRequest.String())
	}
}
