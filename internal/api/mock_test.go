package api

import (
	"io"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

// recordedRequest captures what the client put on the wire
type recordedRequest struct {
	Method string
	URL    string
	Header fhttp.Header
	Body   string
}

// MockHTTPDoer is a mock implementation of HTTPDoer for testing
type MockHTTPDoer struct {
	// DoFunc, when set, produces the response; otherwise Status/Body/Err are used
	DoFunc func(req *fhttp.Request) (*fhttp.Response, error)
	Status int
	Body   string
	Err    error

	mu       sync.Mutex
	requests []recordedRequest
}

// Do implements HTTPDoer
func (m *MockHTTPDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	var body string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
	}

	m.mu.Lock()
	m.requests = append(m.requests, recordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	})
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return newResponse(m.Status, m.Body), nil
}

// Requests returns the recorded requests
func (m *MockHTTPDoer) Requests() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedRequest(nil), m.requests...)
}

// newResponse builds a response with the given status and body
func newResponse(status int, body string) *fhttp.Response {
	if status == 0 {
		status = 200
	}
	return &fhttp.Response{
		StatusCode: status,
		Header:     fhttp.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// errReader fails every read
type errReader struct{ err error }

func (r errReader) Read(p []byte) (int, error) { return 0, r.err }
func (r errReader) Close() error               { return nil }
