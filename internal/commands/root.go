// Package commands provides CLI commands for blarrychat.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "blarrychat [message]",
		Short: "Terminal chat widget for the Blarry chat server",
		Long: `blarrychat sends your messages to a Blarry chat server and shows the
replies. Every message is one request to POST /message.

Examples:
  blarrychat                           Open the chat window
  blarrychat "hello there"             Send a single message
  cat lines.txt | blarrychat           Send one message per line
  blarrychat ask --mode gaming "best RPG?"
  blarrychat health                    Check that the server is up
  blarrychat config set endpoint http://10.0.0.2:5000`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "blarrychat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			sess, err := newSession(cmd, deps, opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			switch {
			case len(args) > 0:
				return runOnce(cmd.Context(), deps, sess, args[0])
			case !deps.StdinIsTerminal():
				return runLines(cmd.Context(), deps, sess)
			default:
				return deps.TUI.RunChat(cmd.Context(), sess.client, sess.cfg, sess.logger)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.endpoint, "endpoint", "", "Chat server base URL (default from config)")
	flags.StringVar(&opts.userID, "user-id", "", "User id sent with every message")
	flags.BoolVar(&opts.serial, "serial", false, "Wait for each reply before sending the next message")
	flags.BoolVar(&opts.verbose, "verbose", false, "Write a debug log to ~/.blarrychat/blarrychat.log")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(
		newChatCmd(deps, opts),
		newAskCmd(deps, opts),
		newHealthCmd(deps, opts),
		NewConfigCmd(deps),
	)

	return cmd
}

var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// A failed exchange is already on screen as an error entry
		if !errors.Is(err, errExchangeFailed) {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		}
		stop()
		os.Exit(1)
	}
}
