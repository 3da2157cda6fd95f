package network

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// PeerID uniquely identifies a connected peer
type PeerID uint32

// ConnState represents connection lifecycle state
type ConnState uint8

const (
	StateDisconnected ConnState = iota
	StateConnected
	StateDisconnecting
)

var errMaxPeers = errors.New("max peers reached")

// Peer is one websocket client
// Only writeLoop writes to conn; only readLoop reads
type Peer struct {
	ID       PeerID
	Addr     string
	State    atomic.Uint32 // ConnState
	LastSeen atomic.Int64  // UnixNano

	OutSeq atomic.Uint32

	conn   *websocket.Conn
	config *Config

	sendCh chan []byte

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(id PeerID, conn *websocket.Conn, cfg *Config) *Peer {
	p := &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		config:  cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.State.Store(uint32(StateConnected))
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send stamps and queues a message
// Returns false if peer is disconnected or queue full; snapshots are lossy by nature
func (p *Peer) Send(msg *Message) bool {
	if ConnState(p.State.Load()) != StateConnected {
		return false
	}

	clone := *msg
	clone.Seq = p.OutSeq.Add(1)
	data, err := clone.Encode()
	if err != nil {
		return false
	}

	select {
	case p.sendCh <- data:
		return true
	default:
		return false // Queue full
	}
}

// Close initiates shutdown; writeLoop sends the close frame and releases the socket
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		p.State.Store(uint32(StateDisconnecting))
		close(p.closeCh)
	})
}

// readLoop reads text frames until error or close
func (p *Peer) readLoop(handler func(PeerID, []byte)) {
	defer p.Close()

	p.conn.SetReadLimit(p.config.MaxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
	})

	for {
		mt, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[network] peer %d read: %v", p.ID, err)
			}
			return
		}

		p.LastSeen.Store(time.Now().UnixNano())
		p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))

		if mt != websocket.TextMessage {
			continue
		}
		handler(p.ID, data)
	}
}

// writeLoop sends queued frames and keepalive pings
func (p *Peer) writeLoop() {
	ping := time.NewTicker(p.config.PingInterval)
	defer func() {
		ping.Stop()
		p.Close()
		p.conn.Close()
	}()

	for {
		select {
		case <-p.closeCh:
			p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(p.config.WriteTimeout))
			return

		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ping.C:
			p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PeerManager handles multiple peer connections
type PeerManager struct {
	mu       sync.RWMutex
	peers    map[PeerID]*Peer
	nextID   atomic.Uint32
	maxPeers int
	config   *Config
	wg       sync.WaitGroup

	// Callbacks
	onConnect    func(*Peer)
	onDisconnect func(PeerID)
	onMessage    func(PeerID, []byte)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:    make(map[PeerID]*Peer),
		maxPeers: cfg.MaxPeers,
		config:   cfg,
	}
}

// SetHandlers configures event callbacks
func (pm *PeerManager) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(PeerID),
	onMessage func(PeerID, []byte),
) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// AddConnection registers a new peer from an upgraded connection
func (pm *PeerManager) AddConnection(conn *websocket.Conn) (PeerID, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.maxPeers {
		pm.mu.Unlock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, errMaxPeers.Error()),
			time.Now().Add(pm.config.WriteTimeout))
		conn.Close()
		return 0, errMaxPeers
	}

	id := PeerID(pm.nextID.Add(1))
	peer := newPeer(id, conn, pm.config)
	pm.peers[id] = peer
	pm.mu.Unlock()

	pm.wg.Add(3)
	go func() {
		defer pm.wg.Done()
		peer.readLoop(pm.handleMessage)
	}()
	go func() {
		defer pm.wg.Done()
		peer.writeLoop()
	}()
	go func() {
		defer pm.wg.Done()
		pm.monitorPeer(peer)
	}()

	if pm.onConnect != nil {
		pm.onConnect(peer)
	}
	return id, nil
}

func (pm *PeerManager) handleMessage(id PeerID, data []byte) {
	if pm.onMessage != nil {
		pm.onMessage(id, data)
	}
}

// monitorPeer removes the peer once it closes
func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	if pm.onDisconnect != nil {
		pm.onDisconnect(peer.ID)
	}
}

// Send transmits a message to a specific peer
func (pm *PeerManager) Send(id PeerID, msg *Message) bool {
	pm.mu.RLock()
	peer, ok := pm.peers[id]
	pm.mu.RUnlock()

	if !ok {
		return false
	}
	return peer.Send(msg)
}

// Broadcast sends a message to all connected peers
func (pm *PeerManager) Broadcast(msg *Message) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	for _, peer := range pm.peers {
		peer.Send(msg)
	}
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers and waits for their goroutines
func (pm *PeerManager) Close() {
	pm.mu.Lock()
	for _, peer := range pm.peers {
		peer.Close()
	}
	pm.mu.Unlock()
	pm.wg.Wait()
}
