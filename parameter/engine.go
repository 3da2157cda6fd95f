package parameter

import "time"

// Frame Loop Timing
const (
	// DefaultFPS is the target frame rate when not configured
	DefaultFPS = 60

	// MaxFPS caps configured frame rate
	MaxFPS = 240

	// MaxDeltaTime is the upper clamp for per-frame delta in seconds
	// Frames stalled longer than this (suspend, debugger) advance the simulation by this much only
	MaxDeltaTime = 0.1

	// MinDeltaTime is the lower clamp; zero or negative deltas are raised to it
	MinDeltaTime = 1e-4
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the host command ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Stream Defaults
const (
	// StreamBroadcastInterval is the snapshot push rate to websocket peers
	StreamBroadcastInterval = 50 * time.Millisecond

	// StatusReportInterval is how often metrics are written to the debug log
	StatusReportInterval = 5 * time.Second
)
