package models

import "time"

// Reply is the decoded body of a /message response
type Reply struct {
	Text string
}

// Answer is the decoded body of an /ask response
type Answer struct {
	Text string
	Mode string
}

// Health is the decoded body of a /health response
type Health struct {
	Status string
	Time   time.Time
}

// OK reports whether the server declared itself healthy
func (h *Health) OK() bool {
	return h != nil && h.Status == "ok"
}
