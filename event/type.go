package event

// EventType represents the type of host command event
type EventType int

const (
	// EventNone is the zero value and never dispatched
	EventNone EventType = iota

	// EventSelectRequest asks the progression machine to attempt a hold
	// Trigger: pointer click in terminal host, websocket "select"
	// Consumer: Simulation | Payload: *SelectRequestPayload
	EventSelectRequest

	// EventResetRequest restarts the session
	// Trigger: 'r' key, websocket "reset"
	// Consumer: Simulation | Payload: nil
	EventResetRequest

	// EventDensityToggle flips between full and low-power particle counts
	// Trigger: 'l' key, websocket "density"
	// Consumer: Simulation | Payload: nil
	EventDensityToggle

	// EventCloseFinale dismisses the finale notice without resetting
	// Trigger: 'c' key, websocket "close"
	// Consumer: Simulation | Payload: nil
	EventCloseFinale
)

// GameEvent is a single queued host command
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
