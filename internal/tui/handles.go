package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/blarrychat/internal/models"
	"github.com/diogo/blarrychat/internal/widget"
)

var (
	_ widget.Log         = (*chatLog)(nil)
	_ widget.Input       = (*composer)(nil)
	_ widget.SendControl = (*sendButton)(nil)
)

// chatLog is the log handle backed by a viewport
type chatLog struct {
	viewport viewport.Model
	messages []models.Message
}

func newChatLog(width, height int) *chatLog {
	return &chatLog{viewport: viewport.New(width, height)}
}

func (l *chatLog) Append(msg models.Message) {
	l.messages = append(l.messages, msg)
	l.refresh()
}

func (l *chatLog) ScrollToBottom() {
	l.viewport.GotoBottom()
}

// Clear drops every entry
func (l *chatLog) Clear() {
	l.messages = nil
	l.refresh()
}

// Resize sets the viewport dimensions and re-wraps the entries
func (l *chatLog) Resize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()
}

// Messages returns the entries in display order
func (l *chatLog) Messages() []models.Message {
	return l.messages
}

// LastReply returns the text of the newest assistant entry
func (l *chatLog) LastReply() (string, bool) {
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].Kind == models.KindAssistant {
			return l.messages[i].Text, true
		}
	}
	return "", false
}

func (l *chatLog) refresh() {
	var content strings.Builder
	bubbleWidth := l.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, msg := range l.messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(renderEntry(msg, bubbleWidth))
		content.WriteString("\n")
	}

	l.viewport.SetContent(content.String())
}

// renderEntry styles one log entry. Text is already plain, so it is
// placed in the bubble as is.
func renderEntry(msg models.Message, width int) string {
	tag := ""
	if msg.Seq > 0 {
		tag = seqStyle.Render(fmt.Sprintf(" #%d", msg.Seq))
	}

	switch msg.Kind {
	case models.KindUser:
		label := userLabelStyle.Render("● "+msg.Sender) + tag
		return label + "\n" + userBubbleStyle.Width(width).Render(msg.Text)
	case models.KindError:
		label := errorLabelStyle.Render("⚠ "+msg.Sender) + tag
		return label + "\n" + errorBubbleStyle.Width(width).Render(msg.Text)
	default:
		label := assistantLabelStyle.Render("✦ "+msg.Sender) + tag
		return label + "\n" + assistantBubbleStyle.Width(width).Render(msg.Text)
	}
}

// composer is the input handle backed by a single line text input
type composer struct {
	input textinput.Model
}

func newComposer() *composer {
	ti := textinput.New()
	ti.Placeholder = "Type your message here..."
	ti.CharLimit = 4000
	ti.Prompt = "› "
	ti.PromptStyle = inputLabelStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	ti.Focus()
	return &composer{input: ti}
}

func (c *composer) Value() string {
	return c.input.Value()
}

func (c *composer) Clear() {
	c.input.Reset()
}

// sendButton is the send control
type sendButton struct {
	enabled bool
	focused bool
}

func (b *sendButton) SetEnabled(enabled bool) {
	b.enabled = enabled
}

func (b *sendButton) View() string {
	switch {
	case !b.enabled:
		return buttonDisabledStyle.Render("[ Send ]")
	case b.focused:
		return buttonFocusedStyle.Render("[ Send ]")
	default:
		return buttonStyle.Render("[ Send ]")
	}
}
