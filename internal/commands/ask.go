package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/blarrychat/internal/models"
)

func newAskCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question in casual or gaming mode",
		Long: `Ask sends one question to POST /ask. Gaming mode answers as a gaming
expert; casual mode is a friendly assistant. Modes starting with "g"
select gaming.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question cannot be empty")
			}

			sess, err := newSession(cmd, deps, opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			spin := newSpinner(deps.Stderr, deps.Spinner, "Asking Blarry")
			spin.start()
			answer, err := sess.client.Ask(cmd.Context(), question, mode)
			if err != nil {
				spin.stopWithError()
				return fmt.Errorf("ask failed: %w", err)
			}
			spin.stop()

			fmt.Fprintf(deps.Stdout, "%s (%s): %s\n", sess.cfg.Labels.Assistant, answer.Mode, answer.Text)

			if sess.cfg.CopyToClipboard {
				copyReply(deps, answer.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", models.ModeCasual, "Answer mode: casual or gaming")
	return cmd
}
