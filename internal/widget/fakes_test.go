package widget

import (
	"context"
	"fmt"
	"sync"

	"github.com/diogo/blarrychat/internal/api"
	"github.com/diogo/blarrychat/internal/models"
)

// recordingLog is a Log that keeps every appended message
type recordingLog struct {
	mu       sync.Mutex
	messages []models.Message
	scrolls  int
	onAppend func(models.Message)
}

func (l *recordingLog) Append(msg models.Message) {
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	cb := l.onAppend
	l.mu.Unlock()
	if cb != nil {
		cb(msg)
	}
}

func (l *recordingLog) ScrollToBottom() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scrolls++
}

func (l *recordingLog) Messages() []models.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Message(nil), l.messages...)
}

// fakeInput is an Input with a settable value
type fakeInput struct {
	value   string
	cleared int
}

func (i *fakeInput) Value() string { return i.value }
func (i *fakeInput) Clear() {
	i.value = ""
	i.cleared++
}

// fakeControl records SetEnabled calls
type fakeControl struct {
	states []bool
}

func (c *fakeControl) SetEnabled(enabled bool) {
	c.states = append(c.states, enabled)
}

func (c *fakeControl) Enabled() bool {
	return len(c.states) > 0 && c.states[len(c.states)-1]
}

// echoClient replies "reply-to-<text>"
func echoClient() *api.MockClient {
	return &api.MockClient{
		SendMessageFunc: func(ctx context.Context, text string) (*models.Reply, error) {
			return &models.Reply{Text: fmt.Sprintf("reply-to-%s", text)}, nil
		},
	}
}
