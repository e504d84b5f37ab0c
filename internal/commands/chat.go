package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/diogo/blarrychat/internal/widget"
)

func newChatCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the Blarry server.

Each message is sent on its own; the server keeps no conversation state.
Press Esc or Ctrl+C to end the session. With --plain, or when input is
not a terminal, every line read from stdin is sent as a message.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd, deps, opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			if plain || !deps.StdinIsTerminal() {
				return runLines(cmd.Context(), deps, sess)
			}
			return deps.TUI.RunChat(cmd.Context(), sess.client, sess.cfg, sess.logger)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Line mode: read messages from stdin, print replies to stdout")
	return cmd
}

// runLines drives a line-mode controller from stdin until EOF
func runLines(ctx context.Context, deps *Dependencies, sess *session) error {
	input := &widget.LineInput{}
	c := sess.controller(deps.Stdout, input)

	err := widget.RunLines(ctx, c, input, deps.Stdin)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
