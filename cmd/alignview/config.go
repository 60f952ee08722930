package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/alignview/internal/config"
)

func newConfigCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return usageError(cmd, "a config subcommand is required")
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), r.config.String())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.NewLoader(version, r.configPath).SavePath()
			if path == "" {
				return fmt.Errorf("no config path: set --config or HOME")
			}
			if err := r.config.Save(path); err != nil {
				return fmt.Errorf("save config %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}
