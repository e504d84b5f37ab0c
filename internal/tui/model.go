package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/blarrychat/internal/api"
	"github.com/diogo/blarrychat/internal/config"
	"github.com/diogo/blarrychat/internal/render"
	"github.com/diogo/blarrychat/internal/widget"
)

// Message types for the TUI
type (
	// exchangeDoneMsg carries a dispatched exchange back to the UI loop
	exchangeDoneMsg struct {
		result widget.Result
	}
	copiedMsg struct {
		auto bool
		err  error
	}
)

type focusTarget int

const (
	focusInput focusTarget = iota
	focusSend
)

// Model represents the TUI state. The log, input and send button are
// pointers shared with the controller, so copies of Model made by
// bubbletea all see the same handles.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl   *widget.Controller
	log    *chatLog
	input  *composer
	button *sendButton

	spinner spinner.Model

	endpoint       string
	userID         string
	copyReplies    bool
	markdown       render.Options
	writeClipboard func(string) error

	// State
	focus    focusTarget
	showHelp bool
	helpView string
	notice   string
	ready    bool

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a chat model bound to client. ctx bounds every
// request the model dispatches and is cancelled when the user quits.
func NewChatModel(ctx context.Context, client api.BlarryClientInterface, cfg config.Config, logger zerolog.Logger) Model {
	ctx, cancel := context.WithCancel(ctx)

	log := newChatLog(76, 10)
	input := newComposer()
	button := &sendButton{}

	ctrl := widget.New(log, input, button, client,
		widget.WithLabels(cfg.Labels.Local, cfg.Labels.Assistant),
		widget.WithSerialSends(cfg.SerialSends),
		widget.WithErrorEntries(cfg.ErrorEntries),
		widget.WithLogger(logger),
	)

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		ctx:            ctx,
		cancel:         cancel,
		ctrl:           ctrl,
		log:            log,
		input:          input,
		button:         button,
		spinner:        s,
		endpoint:       client.Endpoint(),
		userID:         client.UserID(),
		copyReplies:    cfg.CopyToClipboard,
		markdown:       render.OptionsFromConfig(cfg),
		writeClipboard: clipboard.WriteAll,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Pooled help renderers wrap at the old width
		if msg.Width != m.width {
			render.ClearCache()
		}
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Header panel with border
		inputHeight := 3  // Input panel with border
		statusHeight := 1 // Status bar
		borders := 2      // Messages panel border

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - borders
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4
		m.log.Resize(contentWidth-2, vpHeight)
		m.input.input.Width = contentWidth - 16
		if m.showHelp {
			m.helpView = m.renderHelp()
		}
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case exchangeDoneMsg:
		m.ctrl.Complete(msg.result)
		if msg.result.OK() && m.copyReplies {
			return m, m.copyText(msg.result.Reply, true)
		}
		return m, nil

	case copiedMsg:
		switch {
		case msg.err != nil:
			m.notice = "Copy failed: " + msg.err.Error()
		case !msg.auto:
			m.notice = "Reply copied to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Pending() > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Mouse wheel scrolls the log, cursor blinks go to the input
	m.log.viewport, cmd = m.log.viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.input.input, cmd = m.input.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancel()
		return m, tea.Quit

	case "f1":
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.helpView = m.renderHelp()
		}
		return m, nil

	case "ctrl+l":
		m.log.Clear()
		m.notice = ""
		return m, nil

	case "ctrl+y":
		reply, ok := m.log.LastReply()
		if !ok {
			m.notice = "No reply to copy yet"
			return m, nil
		}
		return m, m.copyText(reply, false)

	case "tab", "shift+tab":
		cmd := m.toggleFocus()
		return m, cmd

	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.log.viewport, cmd = m.log.viewport.Update(msg)
		return m, cmd

	case "enter":
		// Enter confirms in the input and clicks the button when it has focus
		if m.focus == focusSend && !m.button.enabled {
			return m, nil
		}
		return m.submitAndTick()

	case " ", "space":
		if m.focus == focusSend {
			if !m.button.enabled {
				return m, nil
			}
			return m.submitAndTick()
		}
	}

	if m.focus != focusInput {
		return m, nil
	}

	var cmd tea.Cmd
	m.input.input, cmd = m.input.input.Update(msg)
	return m, cmd
}

// submitAndTick submits and starts the spinner when the first reply
// becomes pending
func (m Model) submitAndTick() (tea.Model, tea.Cmd) {
	next, cmd := m.submit()
	if cmd != nil && next.ctrl.Pending() == 1 {
		cmd = tea.Batch(cmd, next.spinner.Tick)
	}
	return next, cmd
}

// submit runs the controller's submit step and returns the dispatch
// command, or nil when nothing was submitted
func (m Model) submit() (Model, tea.Cmd) {
	ex, ok := m.ctrl.Submit()
	if !ok {
		return m, nil
	}
	m.notice = ""
	return m, m.dispatch(ex)
}

// dispatch performs the network step off the UI loop
func (m Model) dispatch(ex widget.Exchange) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return exchangeDoneMsg{result: ctrl.Dispatch(ctx, ex)}
	}
}

func (m Model) copyText(text string, auto bool) tea.Cmd {
	write := m.writeClipboard
	return func() tea.Msg {
		return copiedMsg{auto: auto, err: write(text)}
	}
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusSend
		m.button.focused = true
		m.input.input.Blur()
		return nil
	}
	m.focus = focusInput
	m.button.focused = false
	return m.input.input.Focus()
}

func (m Model) renderHelp() string {
	width := m.width - 8
	if width < 20 {
		width = 76
	}
	return render.Help(m.endpoint, m.userID, m.markdown.WithWidth(width))
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Center,
		titleStyle.Render("✦ Blarry Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.endpoint),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.userID),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages area
	var body string
	switch {
	case m.showHelp:
		body = m.helpView
	case len(m.log.Messages()) == 0:
		body = m.renderWelcome()
	default:
		body = m.log.viewport.View()
	}
	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.log.viewport.Height).
		MaxHeight(m.log.viewport.Height + 2).
		Render(body)
	sections = append(sections, messagesPanel)

	// Input area
	inputRow := lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.input.input.View(),
		"  ",
		m.button.View(),
	)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputRow))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when the log is empty
func (m Model) renderWelcome() string {
	width := m.log.viewport.Width - 4
	height := m.log.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("Welcome to Blarry Chat"),
		"",
		welcomeStyle.Width(width).Render("Type a message below and press Enter. F1 shows the keys."),
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Tab", "Focus"},
		{"Ctrl+Y", "Copy"},
		{"F1", "Help"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	bar := strings.Join(items, "  │  ")

	var left string
	if n := m.ctrl.Pending(); n > 0 {
		noun := "replies"
		if n == 1 {
			noun = "reply"
		}
		left = m.spinner.View() + loadingStyle.Render(fmt.Sprintf(" waiting for %d %s", n, noun))
	} else if m.notice != "" {
		left = noticeStyle.Render(m.notice)
	}
	if left != "" {
		bar = left + "   " + bar
	}

	return statusBarStyle.Width(width).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(ctx context.Context, client api.BlarryClientInterface, cfg config.Config, logger zerolog.Logger) error {
	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		logger.Warn().Str("theme", cfg.TUITheme).Msg("unknown theme, using default")
	}
	UpdateTheme()

	m := NewChatModel(ctx, client, cfg, logger)
	defer m.cancel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
