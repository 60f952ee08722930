package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/alignview/internal/settings"
)

func newSettingsCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or write the saved image placement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return usageError(cmd, "a settings subcommand is required")
		},
	}
	cmd.AddCommand(newSettingsGetCmd(r), newSettingsSetCmd(r))
	return cmd
}

func newSettingsGetCmd(r *root) *cobra.Command {
	var src sourceFlags
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the settings response from the configured source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := settings.Open(src.resolve(cmd, r.config.Source()))
			if err != nil {
				return usageError(cmd, "%v", err)
			}
			if closer, ok := b.(io.Closer); ok {
				defer closer.Close()
			}
			resp, err := b.Fetch(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch settings: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	src.register(cmd)
	return cmd
}

func newSettingsSetCmd(r *root) *cobra.Command {
	var (
		file string
		p    settings.Placement
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Write a placement into a settings file",
		Long: `Write a placement into the image_processing section of a YAML settings
file. Scale must be in (0, 3] and offsets whole numbers; other sections of
the file are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := file
			if path == "" {
				path = r.config.Settings.Path
			}
			if path == "" {
				return usageError(cmd, "a settings file is required (--file or settings.path)")
			}
			if err := settings.Store(path, p); err != nil {
				return err
			}
			r.logger.Info("settings stored", "path", path, "scale", p.Scale, "offset_x", p.OffsetX, "offset_y", p.OffsetY)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&file, "file", "", "settings file to write")
	f.Float64Var(&p.Scale, "scale", 1, "image scale")
	f.Float64Var(&p.OffsetX, "offset-x", 0, "horizontal offset")
	f.Float64Var(&p.OffsetY, "offset-y", 0, "vertical offset")
	return cmd
}
