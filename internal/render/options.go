// Package render provides markdown rendering and color themes for the terminal.
package render

import (
	"os"

	"github.com/diogo/blarrychat/internal/config"
)

// Built-in glamour style names
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
	StyleASCII = "ascii"
)

// MarkdownStyles returns the built-in style names
func MarkdownStyles() []string {
	return []string{StyleDark, StyleLight, StyleNoTTY, StyleASCII}
}

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style is a glamour style name or a path to a JSON style file
	Style string

	// PreserveNewLines preserves original line breaks
	PreserveNewLines bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		PreserveNewLines: true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// OptionsFromConfig builds options from the user configuration.
// GLAMOUR_STYLE takes precedence over the config file.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	if cfg.MarkdownStyle != "" {
		opts.Style = cfg.MarkdownStyle
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}
