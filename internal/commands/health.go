package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the chat server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd, deps, opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			health, err := sess.client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			if !health.OK() {
				return fmt.Errorf("server at %s reports status %q", sess.client.Endpoint(), health.Status)
			}

			fmt.Fprintf(deps.Stdout, "%s: %s (server time %s)\n",
				sess.client.Endpoint(), health.Status, health.Time.UTC().Format(time.RFC3339))
			return nil
		},
	}
}
