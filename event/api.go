package event

// EmitSelect queues a hold selection attempt
func EmitSelect(q *EventQueue, index int, frame int64) {
	q.Push(GameEvent{
		Type:    EventSelectRequest,
		Payload: &SelectRequestPayload{Index: index},
		Frame:   frame,
	})
}

// EmitCommand queues a payload-less command (reset, density, close)
func EmitCommand(q *EventQueue, t EventType, frame int64) {
	q.Push(GameEvent{Type: t, Frame: frame})
}
