package event

// SelectRequestPayload carries the ordinal of the clicked hold
type SelectRequestPayload struct {
	Index int `json:"index"`
}
