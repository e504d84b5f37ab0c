package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the chat interface
type TUITheme struct {
	Name string

	Border lipgloss.Color

	Primary   lipgloss.Color // assistant messages, titles
	Secondary lipgloss.Color // local messages
	Accent    lipgloss.Color // spinner, focused controls
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	TokyoNightTheme = TUITheme{
		Name:      "tokyonight",
		Border:    lipgloss.Color("#414868"),
		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Error:     lipgloss.Color("#f7768e"),
		Text:      lipgloss.Color("#c0caf5"),
		TextDim:   lipgloss.Color("#565f89"),
		TextMute:  lipgloss.Color("#3b4261"),
	}

	CatppuccinMochaTheme = TUITheme{
		Name:      "catppuccin",
		Border:    lipgloss.Color("#45475a"),
		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#a6e3a1"),
		Accent:    lipgloss.Color("#cba6f7"),
		Error:     lipgloss.Color("#f38ba8"),
		Text:      lipgloss.Color("#cdd6f4"),
		TextDim:   lipgloss.Color("#6c7086"),
		TextMute:  lipgloss.Color("#45475a"),
	}

	NordTheme = TUITheme{
		Name:      "nord",
		Border:    lipgloss.Color("#4c566a"),
		Primary:   lipgloss.Color("#88c0d0"),
		Secondary: lipgloss.Color("#a3be8c"),
		Accent:    lipgloss.Color("#b48ead"),
		Error:     lipgloss.Color("#bf616a"),
		Text:      lipgloss.Color("#eceff4"),
		TextDim:   lipgloss.Color("#7b88a1"),
		TextMute:  lipgloss.Color("#4c566a"),
	}
)

var (
	themeMu      sync.RWMutex
	currentTheme = TokyoNightTheme
)

// GetTUITheme returns the active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTUITheme activates the named theme. Unknown names leave the active
// theme unchanged and return false.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, theme := range AvailableTUIThemes() {
		if theme.Name == name {
			return theme, true
		}
	}
	return TUITheme{}, false
}

// ThemeOrDefault returns the named theme, or Tokyo Night when unknown
func ThemeOrDefault(name string) TUITheme {
	if theme, ok := GetTUIThemeByName(name); ok {
		return theme
	}
	return TokyoNightTheme
}

// AvailableTUIThemes returns all built-in TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		TokyoNightTheme,
		CatppuccinMochaTheme,
		NordTheme,
	}
}

// TUIThemeNames returns the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
