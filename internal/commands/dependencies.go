package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/diogo/blarrychat/internal/api"
	"github.com/diogo/blarrychat/internal/config"
	"github.com/diogo/blarrychat/internal/logging"
	"github.com/diogo/blarrychat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, client api.BlarryClientInterface, cfg config.Config, logger zerolog.Logger) error
	RunConfig(cfg config.Config, configPath string) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the endpoint client. When nil one is built from the config.
	Client api.BlarryClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether input comes from a terminal.
	StdinIsTerminal func() bool

	// Spinner enables the progress animation on Stderr.
	Spinner bool

	// NewLogger builds the logger for a command run.
	NewLogger func(cfg config.Config) (zerolog.Logger, io.Closer, error)

	// Clipboard writes text to the system clipboard.
	Clipboard func(text string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, client api.BlarryClientInterface, cfg config.Config, logger zerolog.Logger) error {
	return tui.RunChat(ctx, client, cfg, logger)
}

func (d *DefaultTUI) RunConfig(cfg config.Config, configPath string) error {
	return tui.RunConfig(cfg, configPath)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:    &DefaultTUI{},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		Spinner:   term.IsTerminal(int(os.Stderr.Fd())),
		NewLogger: logging.New,
		Clipboard: clipboard.WriteAll,
	}
}
