package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/blarrychat/internal/config"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open configuration menu",
		Long: `Interactive menu to configure blarrychat settings.

Use the subcommands to script changes instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFileConfig()
			if err != nil {
				return err
			}
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if !deps.StdinIsTerminal() {
				return printConfig(deps, cfg)
			}
			return deps.TUI.RunConfig(cfg, path)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				return printConfig(deps, cfg)
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Long:  fmt.Sprintf("Set a configuration value and save it.\n\nKeys: %v", config.Keys()),
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadFileConfig()
				if err != nil {
					return err
				}
				if err := cfg.Set(args[0], args[1]); err != nil {
					return err
				}
				if err := config.SaveConfig(cfg); err != nil {
					return err
				}
				fmt.Fprintf(deps.Stdout, "%s = %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(deps.Stdout, path)
				return nil
			},
		},
	)

	return cmd
}

func printConfig(deps *Dependencies, cfg config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
