package api

import (
	"context"
	"sync"

	"github.com/diogo/blarrychat/internal/models"
)

// MockClient is a mock implementation of BlarryClientInterface for testing.
// It is safe for concurrent use.
type MockClient struct {
	// SendMessageFunc, when set, takes precedence over ReplyVal/ReplyErr
	SendMessageFunc func(ctx context.Context, text string) (*models.Reply, error)

	// Mock return values
	ReplyVal    *models.Reply
	ReplyErr    error
	AnswerVal   *models.Answer
	AnswerErr   error
	HealthVal   *models.Health
	HealthErr   error
	EndpointVal string
	UserIDVal   string

	mu       sync.Mutex
	sent     []string
	askCalls []string
}

// Ensure MockClient implements BlarryClientInterface
var _ BlarryClientInterface = (*MockClient)(nil)

func (m *MockClient) SendMessage(ctx context.Context, text string) (*models.Reply, error) {
	m.mu.Lock()
	m.sent = append(m.sent, text)
	fn := m.SendMessageFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	return m.ReplyVal, m.ReplyErr
}

func (m *MockClient) Ask(ctx context.Context, question, mode string) (*models.Answer, error) {
	m.mu.Lock()
	m.askCalls = append(m.askCalls, question)
	m.mu.Unlock()
	return m.AnswerVal, m.AnswerErr
}

func (m *MockClient) Health(ctx context.Context) (*models.Health, error) {
	return m.HealthVal, m.HealthErr
}

func (m *MockClient) Endpoint() string {
	if m.EndpointVal == "" {
		return models.DefaultEndpoint
	}
	return m.EndpointVal
}

func (m *MockClient) UserID() string {
	if m.UserIDVal == "" {
		return models.DefaultUserID
	}
	return m.UserIDVal
}

// Sent returns the texts passed to SendMessage, in call order
func (m *MockClient) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

// Asked returns the questions passed to Ask, in call order
func (m *MockClient) Asked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.askCalls...)
}
