package network

import (
	"time"

	"github.com/lixenwraith/memory-tree/parameter"
)

// Config holds stream service configuration
type Config struct {
	// Address to bind; empty disables the service
	Address string
	// Path serves the websocket endpoint
	Path string

	// Connection limits
	MaxPeers int

	// Timing
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	PingInterval      time.Duration
	BroadcastInterval time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
	// MaxMessageSize caps inbound command frames
	MaxMessageSize int64
}

// DefaultConfig returns production-safe defaults with the service disabled
func DefaultConfig() *Config {
	return &Config{
		Address:           "",
		Path:              "/ws",
		MaxPeers:          16,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Second,
		PingInterval:      10 * time.Second,
		BroadcastInterval: parameter.StreamBroadcastInterval,
		ReadBufferSize:    4 * 1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     16,
		MaxMessageSize:    4 * 1024,
	}
}

// DebugConfig returns defaults bound to addr
func DebugConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}

// Enabled reports whether the service should listen
func (c *Config) Enabled() bool {
	return c != nil && c.Address != ""
}
