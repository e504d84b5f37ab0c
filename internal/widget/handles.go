package widget

import (
	"context"

	"github.com/diogo/blarrychat/internal/models"
)

// Log is the scrollable message log
type Log interface {
	Append(msg models.Message)
	ScrollToBottom()
}

// Input is the text field messages are composed in
type Input interface {
	Value() string
	Clear()
}

// SendControl is the control that triggers a submit
type SendControl interface {
	SetEnabled(enabled bool)
}

// Sender performs the network step of an exchange
type Sender interface {
	SendMessage(ctx context.Context, text string) (*models.Reply, error)
}

// noopControl is used when the front end has no separate send control
type noopControl struct{}

func (noopControl) SetEnabled(bool) {}
