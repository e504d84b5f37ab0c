// Package models contains data types and constants for the Blarry chat endpoint.
package models

import (
	"net/url"
	"strings"
)

// Endpoint paths on the Blarry server
const (
	DefaultEndpoint = "http://127.0.0.1:5000"

	PathMessage = "/message"
	PathAsk     = "/ask"
	PathHealth  = "/health"
)

// DefaultUserID is the identifier sent with every message.
// The widget assumes a single local user.
const DefaultUserID = "localuser"

// Sender labels shown in the message log
const (
	LabelLocal     = "You"
	LabelAssistant = "Blarry AI"
	LabelError     = "Error"
)

// Ask modes understood by the server
const (
	ModeCasual = "casual"
	ModeGaming = "gaming"
)

// NormalizeMode maps free-form input to a server mode.
// Anything starting with "g" is gaming, everything else is casual.
func NormalizeMode(mode string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(mode)), "g") {
		return ModeGaming
	}
	return ModeCasual
}

// DefaultHeaders returns the headers sent with every JSON request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "blarrychat",
	}
}

// JoinEndpoint joins a base URL and a path without doubling slashes
func JoinEndpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// IsHTTPEndpoint reports whether endpoint is an absolute http or https URL.
// The scheme is matched case-insensitively.
func IsHTTPEndpoint(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
