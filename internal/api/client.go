package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/blarrychat/internal/errors"
	"github.com/diogo/blarrychat/internal/models"
)

// HTTPDoer is the subset of tls_client.HttpClient the client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BlarryClientInterface defines the endpoint operations used by the widget and commands
type BlarryClientInterface interface {
	SendMessage(ctx context.Context, text string) (*models.Reply, error)
	Ask(ctx context.Context, question, mode string) (*models.Answer, error)
	Health(ctx context.Context) (*models.Health, error)
	Endpoint() string
	UserID() string
}

// Client talks to the Blarry server. It holds no conversation state and
// is safe for concurrent use.
type Client struct {
	httpClient   HTTPDoer
	endpoint     string
	userID       string
	timeout      time.Duration
	logger       zerolog.Logger
	newRequestID func() string
}

var _ BlarryClientInterface = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithEndpoint sets the server base URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithUserID sets the user identifier sent with each message
func WithUserID(userID string) ClientOption {
	return func(c *Client) {
		c.userID = userID
	}
}

// WithTimeout bounds each request. Zero, the default, leaves requests
// bounded only by their context.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the transport (used by tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithLogger sets the logger for request outcomes
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestIDFunc overrides how X-Request-ID values are generated
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *Client) {
		c.newRequestID = fn
	}
}

// NewClient creates a new Client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		endpoint:     models.DefaultEndpoint,
		userID:       models.DefaultUserID,
		logger:       zerolog.Nop(),
		newRequestID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(client)
	}

	if !models.IsHTTPEndpoint(client.endpoint) {
		return nil, fmt.Errorf("invalid endpoint %q: must start with http:// or https://", client.endpoint)
	}
	if strings.TrimSpace(client.userID) == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}

	if client.httpClient == nil {
		// Deadlines come from the request context; the transport adds none.
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(0),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Endpoint returns the server base URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// UserID returns the identifier sent with each message
func (c *Client) UserID() string {
	return c.userID
}

// do performs one request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, operation, method, path string, payload any) ([]byte, error) {
	url := models.JoinEndpoint(c.endpoint, path)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	requestID := c.newRequestID()
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With().
		Str("operation", operation).
		Str("url", url).
		Str("request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apierrors.NewTimeoutError(fmt.Sprintf("%s after %v", operation, c.timeout))
		}
		return nil, apierrors.NewNetworkError(operation, url, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("failed to read response body")
		return nil, apierrors.NewNetworkError(operation, url, err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIError(resp.StatusCode, url, errorMessage(data, resp.StatusCode))
	}

	return data, nil
}

// errorMessage extracts a readable message from an error response body
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, PathError); msg.Type == gjson.String && msg.String() != "" {
			return msg.String()
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(status)
	}
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return text
}

// parseObject validates that body is a JSON object
func parseObject(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, apierrors.NewParseError("response is not valid JSON", "")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, apierrors.NewParseError("response is not a JSON object", "")
	}
	return root, nil
}

// stringField returns the string value at path or a ParseError
func stringField(root gjson.Result, path string) (string, error) {
	value := root.Get(path)
	if !value.Exists() {
		return "", apierrors.NewParseError("missing field", path)
	}
	if value.Type != gjson.String {
		return "", apierrors.NewParseError(fmt.Sprintf("field is %s, not a string", value.Type), path)
	}
	return value.String(), nil
}
