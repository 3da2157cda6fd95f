package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// Transport serves the websocket endpoint and owns the peer set
type Transport struct {
	config   *Config
	upgrader websocket.Upgrader
	peers    *PeerManager

	listener net.Listener
	server   *http.Server

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config) *Transport {
	return &Transport{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// Local viewer tool; any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		peers: NewPeerManager(cfg),
	}
}

// SetHandlers configures message and connection callbacks
func (t *Transport) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(PeerID),
	onMessage func(PeerID, []byte),
) {
	t.peers.SetHandlers(onConnect, onDisconnect, onMessage)
}

// Handler returns the HTTP handler upgrading requests on the configured path
func (t *Transport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(t.config.Path, t.handleUpgrade)
	return mux
}

func (t *Transport) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Printf("[network] upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	if _, err := t.peers.AddConnection(conn); err != nil {
		log.Printf("[network] rejected %s: %v", r.RemoteAddr, err)
	}
}

// Start binds the configured address and serves in the background
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	ln, err := net.Listen("tcp", t.config.Address)
	if err != nil {
		t.running.Store(false)
		return fmt.Errorf("listen %s: %w", t.config.Address, err)
	}
	t.listener = ln
	t.server = &http.Server{Handler: t.Handler()}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[network] serve: %v", err)
		}
	}()

	log.Printf("[network] listening on %s%s", ln.Addr(), t.config.Path)
	return nil
}

// Stop closes the listener and every peer
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		// Handler-only use still owns peers
		t.peers.Close()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
	defer cancel()
	err := t.server.Shutdown(ctx)

	t.peers.Close()
	t.wg.Wait()

	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Addr returns the bound address, or nil before Start
func (t *Transport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Broadcast sends to all peers
func (t *Transport) Broadcast(msg *Message) {
	t.peers.Broadcast(msg)
}

// Send transmits to a specific peer
func (t *Transport) Send(id PeerID, msg *Message) bool {
	return t.peers.Send(id, msg)
}

// PeerCount returns connected peer count
func (t *Transport) PeerCount() int {
	return t.peers.PeerCount()
}

// IsRunning returns transport state
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
