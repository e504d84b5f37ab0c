package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/blarrychat/internal/errors"
	"github.com/diogo/blarrychat/internal/models"
)

type messageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type askRequest struct {
	Question string `json:"question"`
	Mode     string `json:"mode"`
	UserID   string `json:"user_id"`
}

// SendMessage posts one message to /message and returns the server's reply.
// The text is sent as given; trimming is the caller's concern.
func (c *Client) SendMessage(ctx context.Context, text string) (*models.Reply, error) {
	if text == "" {
		return nil, apierrors.ErrEmptyMessage
	}

	body, err := c.do(ctx, "send message", http.MethodPost, models.PathMessage, messageRequest{
		Message: text,
		UserID:  c.userID,
	})
	if err != nil {
		return nil, err
	}

	return parseReply(body)
}

// parseReply decodes a /message response body
func parseReply(body []byte) (*models.Reply, error) {
	root, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	text, err := stringField(root, PathReply)
	if err != nil {
		return nil, err
	}

	return &models.Reply{Text: text}, nil
}

// Ask posts a question to /ask in the given mode
func (c *Client) Ask(ctx context.Context, question, mode string) (*models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apierrors.ErrEmptyMessage
	}
	mode = models.NormalizeMode(mode)

	body, err := c.do(ctx, "ask", http.MethodPost, models.PathAsk, askRequest{
		Question: question,
		Mode:     mode,
		UserID:   c.userID,
	})
	if err != nil {
		return nil, err
	}

	root, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	text, err := stringField(root, PathAnswer)
	if err != nil {
		return nil, err
	}

	answer := &models.Answer{Text: text, Mode: mode}
	if m := root.Get(PathMode); m.Exists() && m.String() != "" {
		answer.Mode = m.String()
	}
	return answer, nil
}

// Health queries /health
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	body, err := c.do(ctx, "health", http.MethodGet, models.PathHealth, nil)
	if err != nil {
		return nil, err
	}

	root, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	status, err := stringField(root, PathStatus)
	if err != nil {
		return nil, err
	}

	health := &models.Health{Status: status}
	if ts := root.Get(PathTime); ts.Exists() {
		if ts.Type != gjson.Number {
			return nil, apierrors.NewParseError(fmt.Sprintf("field is %s, not a number", ts.Type), PathTime)
		}
		health.Time = time.Unix(ts.Int(), 0)
	}
	return health, nil
}
