package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/blarrychat/internal/api"
	"github.com/diogo/blarrychat/internal/config"
	"github.com/diogo/blarrychat/internal/widget"
)

// rootOptions holds the global flags
type rootOptions struct {
	endpoint string
	userID   string
	serial   bool
	verbose  bool
}

// session is everything one command run needs to talk to the endpoint
type session struct {
	cfg    config.Config
	client api.BlarryClientInterface
	logger zerolog.Logger
	closer io.Closer
}

func (s *session) Close() error {
	return s.closer.Close()
}

// resolveConfig loads the config and applies the global flags on top.
// Precedence is flags, then environment, then the config file.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if opts.userID != "" {
		cfg.UserID = opts.userID
	}
	if cmd.Flags().Changed("serial") {
		cfg.SerialSends = opts.serial
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = opts.verbose
	}

	return cfg, nil
}

// newSession resolves the config, opens the logger and builds the client
func newSession(cmd *cobra.Command, deps *Dependencies, opts *rootOptions) (*session, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := deps.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	client := deps.Client
	if client == nil {
		c, err := api.NewClient(
			api.WithEndpoint(cfg.Endpoint),
			api.WithUserID(cfg.UserID),
			api.WithTimeout(cfg.Timeout()),
			api.WithLogger(logger),
		)
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		client = c
	}

	logger.Debug().
		Str("command", cmd.Name()).
		Str("endpoint", client.Endpoint()).
		Str("user_id", client.UserID()).
		Bool("serial", cfg.SerialSends).
		Bool("error_entries", cfg.ErrorEntries).
		Msg("session ready")

	return &session{cfg: cfg, client: client, logger: logger, closer: closer}, nil
}

// controller binds a line-mode controller writing to out
func (s *session) controller(out io.Writer, input widget.Input) *widget.Controller {
	return widget.New(widget.NewWriterLog(out), input, nil, s.client,
		widget.WithLabels(s.cfg.Labels.Local, s.cfg.Labels.Assistant),
		widget.WithSerialSends(s.cfg.SerialSends),
		widget.WithErrorEntries(s.cfg.ErrorEntries),
		widget.WithLogger(s.logger),
	)
}
