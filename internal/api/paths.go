// Package api provides the Blarry chat endpoint client.
package api

// GJSON paths for extracting values from Blarry responses.
const (
	PathReply  = "reply"
	PathAnswer = "answer"
	PathMode   = "mode"
	PathStatus = "status"
	PathTime   = "time"
	PathError  = "error"
)

// maxResponseBody bounds how much of a response body is read
const maxResponseBody = 1 << 20

// maxErrorBody bounds how much of an error body ends up in an APIError
const maxErrorBody = 256
