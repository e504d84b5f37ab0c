// Package tui provides the terminal user interface for blarrychat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/blarrychat/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder lipgloss.Color

	// Accent colors
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorError     lipgloss.Color

	// Text colors
	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Messages area panel
	messagesAreaStyle lipgloss.Style

	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style
	errorBubbleStyle     lipgloss.Style
	errorLabelStyle      lipgloss.Style
	seqStyle             lipgloss.Style

	// Input area panel
	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style

	// Send button
	buttonStyle         lipgloss.Style
	buttonFocusedStyle  lipgloss.Style
	buttonDisabledStyle lipgloss.Style

	loadingStyle lipgloss.Style

	// Status bar styles
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	// Welcome styles
	welcomeStyle      lipgloss.Style
	welcomeTitleStyle lipgloss.Style
	welcomeIconStyle  lipgloss.Style

	// Config menu styles
	configTitleStyle        lipgloss.Style
	configPanelStyle        lipgloss.Style
	configSectionTitleStyle lipgloss.Style
	configMenuItemStyle     lipgloss.Style
	configMenuSelectedStyle lipgloss.Style
	configCursorStyle       lipgloss.Style
	configValueStyle        lipgloss.Style
	configEnabledStyle      lipgloss.Style
	configDisabledStyle     lipgloss.Style
	configPathStyle         lipgloss.Style
	configFeedbackStyle     lipgloss.Style
)

// init loads the default theme on package initialization
func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(4)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	errorBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorError).
		Foreground(colorError).
		Padding(0, 1).
		MarginRight(4)

	errorLabelStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	seqStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	buttonStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Padding(0, 1)

	buttonFocusedStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorAccent).
		Bold(true).
		Padding(0, 1)

	buttonDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Italic(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Align(lipgloss.Center)

	welcomeIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Align(lipgloss.Center)

	configTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	configPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	configSectionTitleStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	configMenuItemStyle = lipgloss.NewStyle().
		Foreground(colorText)

	configMenuSelectedStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	configCursorStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	configValueStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	configEnabledStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	configDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	configPathStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	configFeedbackStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		PaddingLeft(2)
}
