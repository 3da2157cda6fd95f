package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/memory-tree/event"
)

// MessageType identifies the semantic meaning of a message
type MessageType string

const (
	// Server to client
	MsgSnapshot MessageType = "snapshot" // Frame outputs and progression
	MsgAck      MessageType = "ack"      // Command accepted into the queue
	MsgError    MessageType = "error"    // Command rejected before queueing

	// Client to server
	MsgCommand MessageType = "command"
)

var (
	ErrMalformed      = errors.New("malformed message")
	ErrUnknownCommand = errors.New("unknown command")
)

// Message is the JSON envelope for every websocket text frame
type Message struct {
	Type MessageType     `json:"type"`
	Seq  uint32          `json:"seq,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Command is the payload of MsgCommand
// Cmd is one of select, reset, density, close; Index is used by select only
type Command struct {
	Cmd   string `json:"cmd"`
	Index *int   `json:"index,omitempty"`
}

// ErrorPayload is the payload of MsgError
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage marshals data into an envelope
func NewMessage(t MessageType, data any) (*Message, error) {
	m := &Message{Type: t}
	if data == nil {
		return m, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	m.Data = raw
	return m, nil
}

// Encode returns the wire form of the message
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a wire frame
func Decode(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if m.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	return &m, nil
}

// ToEvent converts a command into a queue event
// Index bounds are not checked here; the progression machine rejects out-of-range holds
func (c *Command) ToEvent(frame int64) (event.GameEvent, error) {
	t, ok := event.GetEventType(c.Cmd)
	if !ok {
		return event.GameEvent{}, fmt.Errorf("%w: %q", ErrUnknownCommand, c.Cmd)
	}
	ev := event.GameEvent{Type: t, Frame: frame}
	if t == event.EventSelectRequest {
		if c.Index == nil {
			return event.GameEvent{}, fmt.Errorf("%w: select without index", ErrMalformed)
		}
		ev.Payload = &event.SelectRequestPayload{Index: *c.Index}
	}
	return ev, nil
}
