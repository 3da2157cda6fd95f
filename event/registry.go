package event

import (
	"strings"
)

var (
	nameToType = map[string]EventType{
		"select":  EventSelectRequest,
		"reset":   EventResetRequest,
		"density": EventDensityToggle,
		"close":   EventCloseFinale,
	}
	typeToName = map[EventType]string{
		EventNone:          "none",
		EventSelectRequest: "select",
		EventResetRequest:  "reset",
		EventDensityToggle: "density",
		EventCloseFinale:   "close",
	}
)

// GetEventType returns the EventType for a command name, case-insensitive
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[strings.ToLower(strings.TrimSpace(name))]
	return et, ok
}

// String returns the command name of the event type
func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "unknown"
}
