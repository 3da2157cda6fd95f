package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/lixenwraith/memory-tree/engine"
	"github.com/lixenwraith/memory-tree/event"
	"github.com/lixenwraith/memory-tree/status"
)

// Service streams simulation snapshots to websocket peers and feeds their commands into the event queue
// Publish is called from the frame loop; peers are served on their own goroutines
type Service struct {
	config    *Config
	transport *Transport

	// Event queue receiving remote commands
	eventQueue *event.EventQueue

	// Latest encoded snapshot, sent to peers on connect
	latest atomic.Pointer[Message]
	frame  atomic.Int64

	statPeers    *atomic.Int64
	statCommands *atomic.Int64
	statRejected *atomic.Int64

	disabled atomic.Bool
}

// NewService creates a stream service (disabled until Init receives an address)
func NewService(reg *status.Registry) *Service {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Service{
		config:       DefaultConfig(),
		statPeers:    reg.Ints.Get("network.peers"),
		statCommands: reg.Ints.Get("network.commands"),
		statRejected: reg.Ints.Get("network.rejected"),
	}
}

// Name returns the service name used in logs
func (s *Service) Name() string {
	return "network"
}

// Dependencies lists services that must start first
func (s *Service) Dependencies() []string {
	return []string{"status"}
}

// Init applies configuration
// args[0]: *Config (optional, overrides default)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}

	s.transport = NewTransport(s.config)
	s.transport.SetHandlers(s.onConnect, s.onDisconnect, s.onMessage)
	s.disabled.Store(!s.config.Enabled())
	return nil
}

// Start begins listening when enabled
func (s *Service) Start() error {
	if s.disabled.Load() || s.transport == nil {
		return nil
	}
	return s.transport.Start()
}

// Stop closes the listener and disconnects peers
func (s *Service) Stop() error {
	if s.transport != nil {
		return s.transport.Stop()
	}
	return nil
}

// Handler exposes the websocket endpoint for embedding in another server
func (s *Service) Handler() http.Handler {
	if s.transport == nil {
		s.Init()
	}
	return s.transport.Handler()
}

// SetEventQueue wires remote commands into the simulation
func (s *Service) SetEventQueue(eq *event.EventQueue) {
	s.eventQueue = eq
}

// Publish broadcasts a snapshot to every peer
func (s *Service) Publish(snap engine.Snapshot) error {
	msg, err := NewMessage(MsgSnapshot, snap)
	if err != nil {
		return err
	}
	s.latest.Store(msg)
	s.frame.Store(snap.Frame)

	if s.transport != nil {
		s.transport.Broadcast(msg)
	}
	return nil
}

// PeerCount returns connected peer count
func (s *Service) PeerCount() int {
	if s.transport == nil {
		return 0
	}
	return s.transport.PeerCount()
}

// IsRunning returns true if the listener is active
func (s *Service) IsRunning() bool {
	return s.transport != nil && s.transport.IsRunning()
}

// Addr returns the bound listen address or empty
func (s *Service) Addr() string {
	if s.transport == nil || s.transport.Addr() == nil {
		return ""
	}
	return s.transport.Addr().String()
}

func (s *Service) onConnect(p *Peer) {
	s.statPeers.Store(int64(s.PeerCount()))
	log.Printf("[network] peer %d connected from %s", p.ID, p.Addr)
	if msg := s.latest.Load(); msg != nil {
		p.Send(msg)
	}
}

func (s *Service) onDisconnect(id PeerID) {
	s.statPeers.Store(int64(s.PeerCount()))
	log.Printf("[network] peer %d disconnected", id)
}

// onMessage decodes a command and queues it; malformed input is answered with an error message
func (s *Service) onMessage(id PeerID, data []byte) {
	ev, err := s.decodeCommand(data)
	if err != nil {
		s.statRejected.Add(1)
		log.Printf("[network] peer %d: %v", id, err)
		if reply, encErr := NewMessage(MsgError, ErrorPayload{Message: err.Error()}); encErr == nil {
			s.transport.Send(id, reply)
		}
		return
	}

	if s.eventQueue != nil {
		s.eventQueue.Push(ev)
	}
	s.statCommands.Add(1)
	if reply, encErr := NewMessage(MsgAck, nil); encErr == nil {
		s.transport.Send(id, reply)
	}
}

var errNotCommand = errors.New("expected command message")

func (s *Service) decodeCommand(data []byte) (event.GameEvent, error) {
	msg, err := Decode(data)
	if err != nil {
		return event.GameEvent{}, err
	}
	if msg.Type != MsgCommand {
		return event.GameEvent{}, errNotCommand
	}

	var cmd Command
	if err := json.Unmarshal(msg.Data, &cmd); err != nil {
		return event.GameEvent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return cmd.ToEvent(s.frame.Load())
}
