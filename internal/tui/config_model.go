package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/blarrychat/internal/config"
	"github.com/diogo/blarrychat/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewStyleSelect    // Markdown style
	viewTUIThemeSelect // TUI color theme
)

// Menu item indices for main view
const (
	menuSerialSends = iota
	menuVerbose
	menuErrorEntries
	menuCopyToClipboard
	menuMarkdownStyle
	menuTUITheme
	menuExit
	menuItemCount
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config     config.Config
	configPath string
	save       func(config.Config) error

	// Navigation
	view           configView
	cursor         int
	styleCursor    int
	tuiThemeCursor int

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a config menu editing cfg. Changes are written
// with config.SaveConfig as soon as they are made.
func NewConfigModel(cfg config.Config, configPath string) ConfigModel {
	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		save:            config.SaveConfig,
		view:            viewMain,
		styleCursor:     indexOf(render.MarkdownStyles(), cfg.MarkdownStyle),
		tuiThemeCursor:  indexOf(render.TUIThemeNames(), cfg.TUITheme),
		feedbackTimeout: 2 * time.Second,
	}
}

func indexOf(items []string, item string) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// wrap moves a cursor by delta within n items
func wrap(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((cursor+delta)%n + n) % n
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.move(-1)

		case "down", "j":
			m.move(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func (m *ConfigModel) move(delta int) {
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor, delta, menuItemCount)
	case viewStyleSelect:
		m.styleCursor = wrap(m.styleCursor, delta, len(render.MarkdownStyles()))
	case viewTUIThemeSelect:
		m.tuiThemeCursor = wrap(m.tuiThemeCursor, delta, len(render.TUIThemeNames()))
	}
}

// persist saves the config and reports the outcome as feedback
func (m ConfigModel) persist(done string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = done
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func toggled(name string, on bool) string {
	if on {
		return name + " enabled"
	}
	return name + " disabled"
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuSerialSends:
			m.config.SerialSends = !m.config.SerialSends
			return m.persist(toggled("One message at a time", m.config.SerialSends))

		case menuVerbose:
			m.config.Verbose = !m.config.Verbose
			return m.persist(toggled("Verbose logging", m.config.Verbose))

		case menuErrorEntries:
			m.config.ErrorEntries = !m.config.ErrorEntries
			return m.persist(toggled("Show failed sends", m.config.ErrorEntries))

		case menuCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			return m.persist(toggled("Copy to clipboard", m.config.CopyToClipboard))

		case menuMarkdownStyle:
			m.view = viewStyleSelect

		case menuTUITheme:
			m.view = viewTUIThemeSelect

		case menuExit:
			return m, tea.Quit
		}

	case viewStyleSelect:
		m.config.MarkdownStyle = render.MarkdownStyles()[m.styleCursor]
		m.view = viewMain
		return m.persist("Markdown style set to " + m.config.MarkdownStyle)

	case viewTUIThemeSelect:
		selected := render.TUIThemeNames()[m.tuiThemeCursor]
		m.config.TUITheme = selected

		// Apply the new TUI theme immediately
		render.SetTUITheme(selected)
		UpdateTheme()

		m.view = viewMain
		return m.persist("TUI theme set to " + selected)
	}

	return m, nil
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := headerStyle.Width(contentWidth).Render(configTitleStyle.Render("✦ Configuration"))
	sections = append(sections, header)

	paths := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Paths"),
		"   Config:   "+configPathStyle.Render(m.configPath),
		"   Endpoint: "+configValueStyle.Render(m.config.Endpoint),
		"   User:     "+configValueStyle.Render(m.config.UserID),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(paths))

	var settings string
	switch m.view {
	case viewMain:
		settings = m.renderMainMenu()
	case viewStyleSelect:
		settings = m.renderChoice("Select Markdown Style", render.MarkdownStyles(), m.styleCursor, m.config.MarkdownStyle)
	case viewTUIThemeSelect:
		settings = m.renderChoice("Select TUI Theme", render.TUIThemeNames(), m.tuiThemeCursor, m.config.TUITheme)
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settings))

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	back := "Exit"
	if m.view != viewMain {
		back = "Back"
	}
	bar := statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate") + "  │  " +
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Select") + "  │  " +
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" "+back)
	sections = append(sections, statusBarStyle.Width(contentWidth).Align(lipgloss.Center).Render(bar))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// menuLine renders one row with the cursor marker when selected
func menuLine(selected bool, label, value string) string {
	cursor := "  "
	style := configMenuItemStyle
	if selected {
		cursor = configCursorStyle.Render("▸ ")
		style = configMenuSelectedStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	return cursor + style.Render(fmt.Sprintf("%-24s", label)) + value
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	rows := []struct {
		label string
		value string
	}{
		menuSerialSends:     {"One Message at a Time", m.renderBoolValue(m.config.SerialSends)},
		menuVerbose:         {"Verbose Logging", m.renderBoolValue(m.config.Verbose)},
		menuErrorEntries:    {"Show Failed Sends", m.renderBoolValue(m.config.ErrorEntries)},
		menuCopyToClipboard: {"Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)},
		menuMarkdownStyle:   {"Markdown Style", configValueStyle.Render(m.config.MarkdownStyle)},
		menuTUITheme:        {"TUI Theme", configValueStyle.Render(m.config.TUITheme)},
		menuExit:            {"Exit", ""},
	}

	items := []string{configSectionTitleStyle.Render("⚙ Settings"), ""}
	for i, row := range rows {
		if i == menuExit {
			items = append(items, "")
		}
		items = append(items, menuLine(m.cursor == i, row.label, row.value))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderChoice renders a selection sub-menu
func (m ConfigModel) renderChoice(title string, options []string, cursor int, current string) string {
	items := []string{configSectionTitleStyle.Render(title), ""}
	for i, opt := range options {
		line := menuLine(cursor == i, opt, "")
		if opt == current {
			line += configEnabledStyle.Render(" (current)")
		}
		items = append(items, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderBoolValue renders a boolean value with appropriate styling
func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

// RunConfig starts the config TUI
func RunConfig(cfg config.Config, configPath string) error {
	render.SetTUITheme(cfg.TUITheme)
	UpdateTheme()

	p := tea.NewProgram(
		NewConfigModel(cfg, configPath),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
