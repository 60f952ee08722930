package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/alignview/internal/display"
)

// listMonitors is replaced in tests.
var listMonitors = display.List

func newMonitorsCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List monitors usable with view --monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mons, err := listMonitors()
			if err != nil {
				return fmt.Errorf("list monitors: %w", err)
			}
			for _, m := range mons {
				fmt.Fprintln(cmd.OutOrStdout(), m.String())
			}
			return nil
		},
	}
}
