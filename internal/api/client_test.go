package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/blarrychat/internal/errors"
	"github.com/diogo/blarrychat/internal/models"
)

func newTestClient(t *testing.T, doer HTTPDoer, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{
		WithHTTPClient(doer),
		WithRequestIDFunc(func() string { return "req-1" }),
	}, opts...)
	client, err := NewClient(opts...)
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name         string
		opts         []ClientOption
		wantErr      bool
		wantEndpoint string
		wantUserID   string
	}{
		{
			name:         "defaults",
			opts:         []ClientOption{WithHTTPClient(&MockHTTPDoer{})},
			wantEndpoint: models.DefaultEndpoint,
			wantUserID:   "localuser",
		},
		{
			name:         "custom endpoint and user",
			opts:         []ClientOption{WithHTTPClient(&MockHTTPDoer{}), WithEndpoint("https://blarry.example"), WithUserID("bob")},
			wantEndpoint: "https://blarry.example",
			wantUserID:   "bob",
		},
		{
			name:         "upper case scheme",
			opts:         []ClientOption{WithHTTPClient(&MockHTTPDoer{}), WithEndpoint("HTTP://127.0.0.1:5000")},
			wantEndpoint: "HTTP://127.0.0.1:5000",
			wantUserID:   "localuser",
		},
		{
			name:    "endpoint without scheme",
			opts:    []ClientOption{WithHTTPClient(&MockHTTPDoer{}), WithEndpoint("127.0.0.1:5000")},
			wantErr: true,
		},
		{
			name:    "empty user id",
			opts:    []ClientOption{WithHTTPClient(&MockHTTPDoer{}), WithUserID(" ")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient() returned error: %v", err)
			}
			if client.Endpoint() != tt.wantEndpoint {
				t.Errorf("Endpoint() = %q, want %q", client.Endpoint(), tt.wantEndpoint)
			}
			if client.UserID() != tt.wantUserID {
				t.Errorf("UserID() = %q, want %q", client.UserID(), tt.wantUserID)
			}
		})
	}
}

func TestSendMessage_RequestShape(t *testing.T) {
	doer := &MockHTTPDoer{Body: `{"reply":"hello"}`}
	client := newTestClient(t, doer)

	reply, err := client.SendMessage(context.Background(), "hi there")
	if err != nil {
		t.Fatalf("SendMessage() returned error: %v", err)
	}
	if reply.Text != "hello" {
		t.Errorf("reply = %q, want hello", reply.Text)
	}

	reqs := doer.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Method != fhttp.MethodPost {
		t.Errorf("method = %s, want POST", req.Method)
	}
	if req.URL != "http://127.0.0.1:5000/message" {
		t.Errorf("url = %s", req.URL)
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", req.Header.Get("Content-Type"))
	}
	if req.Header.Get("X-Request-ID") != "req-1" {
		t.Errorf("X-Request-ID = %q", req.Header.Get("X-Request-ID"))
	}
	if req.Body != `{"message":"hi there","user_id":"localuser"}` {
		t.Errorf("body = %s", req.Body)
	}
}

func TestSendMessage_Empty(t *testing.T) {
	doer := &MockHTTPDoer{}
	client := newTestClient(t, doer)

	_, err := client.SendMessage(context.Background(), "")
	if !errors.Is(err, apierrors.ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	if len(doer.Requests()) != 0 {
		t.Error("empty message should not issue a request")
	}
}

func TestSendMessage_ReplyVerbatim(t *testing.T) {
	reply := "<b>bold</b> & \"quoted\"\nsecond line"
	data, _ := json.Marshal(map[string]string{"reply": reply})
	client := newTestClient(t, &MockHTTPDoer{Body: string(data)})

	got, err := client.SendMessage(context.Background(), "x")
	if err != nil {
		t.Fatalf("SendMessage() returned error: %v", err)
	}
	if got.Text != reply {
		t.Errorf("reply = %q, want %q", got.Text, reply)
	}
}

func TestSendMessage_Failures(t *testing.T) {
	tests := []struct {
		name      string
		doer      *MockHTTPDoer
		check     func(error) bool
		checkName string
	}{
		{"transport error", &MockHTTPDoer{Err: errors.New("connection refused")}, apierrors.IsNetworkError, "network"},
		{"server error", &MockHTTPDoer{Status: 500, Body: `{"error":"boom"}`}, func(err error) bool { return apierrors.GetHTTPStatus(err) == 500 }, "status 500"},
		{"unauthorized", &MockHTTPDoer{Status: 401, Body: `{"error":"unauthorized"}`}, func(err error) bool { return apierrors.GetHTTPStatus(err) == 401 }, "status 401"},
		{"empty object", &MockHTTPDoer{Body: `{}`}, apierrors.IsParseError, "parse"},
		{"invalid json", &MockHTTPDoer{Body: `not json`}, apierrors.IsParseError, "parse"},
		{"array body", &MockHTTPDoer{Body: `["reply"]`}, apierrors.IsParseError, "parse"},
		{"non-string reply", &MockHTTPDoer{Body: `{"reply":42}`}, apierrors.IsParseError, "parse"},
		{"null reply", &MockHTTPDoer{Body: `{"reply":null}`}, apierrors.IsParseError, "parse"},
		{
			"body read error",
			&MockHTTPDoer{DoFunc: func(req *fhttp.Request) (*fhttp.Response, error) {
				return &fhttp.Response{StatusCode: 200, Body: errReader{errors.New("reset")}}, nil
			}},
			apierrors.IsNetworkError, "network",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.doer)
			reply, err := client.SendMessage(context.Background(), "hi")
			if err == nil {
				t.Fatalf("expected error, got reply %+v", reply)
			}
			if !tt.check(err) {
				t.Errorf("error %v is not %s", err, tt.checkName)
			}
		})
	}
}

func TestSendMessage_ErrorMessage(t *testing.T) {
	client := newTestClient(t, &MockHTTPDoer{Status: 401, Body: `{"error":"unauthorized"}`})
	_, err := client.SendMessage(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("expected error to carry server message, got %v", err)
	}

	client = newTestClient(t, &MockHTTPDoer{Status: 503})
	_, err = client.SendMessage(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "Service Unavailable") {
		t.Errorf("expected status text for empty body, got %v", err)
	}

	client = newTestClient(t, &MockHTTPDoer{Status: 500, Body: strings.Repeat("x", 1000)})
	_, err = client.SendMessage(context.Background(), "hi")
	if err == nil || !strings.HasSuffix(err.Error(), "...") {
		t.Errorf("expected truncated body, got %v", err)
	}
}

func TestSendMessage_Timeout(t *testing.T) {
	doer := &MockHTTPDoer{DoFunc: func(req *fhttp.Request) (*fhttp.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	}}
	client := newTestClient(t, doer, WithTimeout(20*time.Millisecond))

	_, err := client.SendMessage(context.Background(), "hi")
	if !apierrors.IsTimeoutError(err) {
		t.Errorf("expected TimeoutError, got %v", err)
	}
}

func TestSendMessage_NoDeadlineWithoutTimeout(t *testing.T) {
	tests := []struct {
		name string
		opts []ClientOption
	}{
		{"default", nil},
		{"zero timeout", []ClientOption{WithTimeout(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &MockHTTPDoer{DoFunc: func(req *fhttp.Request) (*fhttp.Response, error) {
				if deadline, ok := req.Context().Deadline(); ok {
					t.Errorf("request carries a deadline %v", deadline)
				}
				return newResponse(200, `{"reply":"ok"}`), nil
			}}
			client := newTestClient(t, doer, tt.opts...)

			reply, err := client.SendMessage(context.Background(), "hi")
			if err != nil {
				t.Fatalf("SendMessage() returned error: %v", err)
			}
			if reply.Text != "ok" {
				t.Errorf("reply = %q, want ok", reply.Text)
			}
		})
	}
}

func TestSendMessage_Cancelled(t *testing.T) {
	doer := &MockHTTPDoer{DoFunc: func(req *fhttp.Request) (*fhttp.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	}}
	client := newTestClient(t, doer, WithTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SendMessage(ctx, "hi")
	if !apierrors.IsNetworkError(err) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected NetworkError wrapping context.Canceled, got %v", err)
	}
}

func TestAsk(t *testing.T) {
	doer := &MockHTTPDoer{Body: `{"answer":"Zelda is a game","mode":"gaming"}`}
	client := newTestClient(t, doer, WithUserID("bob"))

	answer, err := client.Ask(context.Background(), "  zelda ", "G")
	if err != nil {
		t.Fatalf("Ask() returned error: %v", err)
	}
	if answer.Text != "Zelda is a game" || answer.Mode != "gaming" {
		t.Errorf("answer = %+v", answer)
	}

	req := doer.Requests()[0]
	if !strings.HasSuffix(req.URL, "/ask") {
		t.Errorf("url = %s", req.URL)
	}
	if req.Body != `{"question":"zelda","mode":"gaming","user_id":"bob"}` {
		t.Errorf("body = %s", req.Body)
	}
}

func TestAsk_ModeFallback(t *testing.T) {
	client := newTestClient(t, &MockHTTPDoer{Body: `{"answer":"ok"}`})

	answer, err := client.Ask(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("Ask() returned error: %v", err)
	}
	if answer.Mode != models.ModeCasual {
		t.Errorf("mode = %q, want casual", answer.Mode)
	}
}

func TestAsk_Errors(t *testing.T) {
	client := newTestClient(t, &MockHTTPDoer{Body: `{"reply":"wrong field"}`})

	if _, err := client.Ask(context.Background(), "   ", "casual"); !errors.Is(err, apierrors.ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := client.Ask(context.Background(), "q", "casual"); !apierrors.IsParseError(err) {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	doer := &MockHTTPDoer{Body: `{"status":"ok","time":1700000000}`}
	client := newTestClient(t, doer)

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() returned error: %v", err)
	}
	if !health.OK() {
		t.Errorf("health = %+v, want ok", health)
	}
	if health.Time.Unix() != 1700000000 {
		t.Errorf("time = %v", health.Time)
	}

	req := doer.Requests()[0]
	if req.Method != fhttp.MethodGet || !strings.HasSuffix(req.URL, "/health") {
		t.Errorf("request = %s %s", req.Method, req.URL)
	}
	if req.Body != "" {
		t.Errorf("GET should have no body, got %q", req.Body)
	}
}

func TestHealth_BadTime(t *testing.T) {
	client := newTestClient(t, &MockHTTPDoer{Body: `{"status":"ok","time":"now"}`})
	if _, err := client.Health(context.Background()); !apierrors.IsParseError(err) {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestMockClient(t *testing.T) {
	mock := &MockClient{ReplyVal: &models.Reply{Text: "hey"}}

	reply, err := mock.SendMessage(context.Background(), "a")
	if err != nil || reply.Text != "hey" {
		t.Errorf("SendMessage() = %+v, %v", reply, err)
	}
	if got := mock.Sent(); len(got) != 1 || got[0] != "a" {
		t.Errorf("Sent() = %v", got)
	}
	if mock.Endpoint() != models.DefaultEndpoint || mock.UserID() != models.DefaultUserID {
		t.Error("unexpected mock defaults")
	}
}
