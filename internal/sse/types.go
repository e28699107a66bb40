package sse

// ConnectedPayload is the payload of the first event on a stream
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Filters  []string `json:"filters"`
}
