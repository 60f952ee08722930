package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/example/alignview/internal/app"
	"github.com/example/alignview/internal/display"
	"github.com/example/alignview/internal/notify"
	"github.com/example/alignview/internal/settings"
	"github.com/example/alignview/internal/viewer"
)

type viewCmd struct {
	*root
	placement placementFlags
	source    sourceFlags
	listen    string
	monitor   string
	width     int
	height    int

	notifyPick        bool
	notifyLoadFailure bool
	notifyCopy        bool
}

func newViewCmd(r *root) *cobra.Command {
	c := &viewCmd{root: r}
	cmd := &cobra.Command{
		Use:   "view [image]",
		Short: "Open the viewer window",
		Long: `Open the viewer window, optionally loading an image straight away.

Click once to accept the start-scale view. Press, drag and release to pick a
reference line; the image is then rotated to level it about the line's
midpoint. Any click returns to the fitted view.

Keys: Ctrl+C copy frame, Ctrl+V load clipboard image, R reset to start scale,
Ctrl+O reload settings, Escape quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args)
		},
	}
	c.placement.register(cmd)
	c.source.register(cmd)
	f := cmd.Flags()
	f.StringVar(&c.listen, "listen", "", "serve the HTTP control API on this address (e.g. 127.0.0.1:7070)")
	f.StringVar(&c.monitor, "monitor", "", "size the window to a monitor: primary, an index or a name")
	f.IntVar(&c.width, "width", 0, "window width in pixels")
	f.IntVar(&c.height, "height", 0, "window height in pixels")
	f.BoolVar(&c.notifyPick, "notify-pick", false, "show a desktop notification when a line is picked")
	f.BoolVar(&c.notifyLoadFailure, "notify-load-failure", false, "show a desktop notification when an image fails to load")
	f.BoolVar(&c.notifyCopy, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	return cmd
}

func (c *viewCmd) run(cmd *cobra.Command, args []string) error {
	cfg := c.config
	tp, err := c.placement.resolve(cmd, cfg.Transform())
	if err != nil {
		return err
	}

	bridge, err := settings.Open(c.source.resolve(cmd, cfg.Source()))
	if err != nil {
		return usageError(cmd, "%v", err)
	}
	if closer, ok := bridge.(io.Closer); ok {
		defer closer.Close()
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	monitor := cfg.Window.Monitor
	if cmd.Flags().Changed("monitor") {
		monitor = c.monitor
	}
	if monitor != "" {
		mons, err := display.List()
		if err != nil {
			c.logger.Warn("monitor lookup failed, using configured size", "err", err)
		} else if m, err := display.Find(mons, monitor); err != nil {
			return usageError(cmd, "%v", err)
		} else {
			w, h = m.Size()
			c.logger.Debug("sized to monitor", "monitor", m.String())
		}
	}
	if c.width > 0 {
		w = c.width
	}
	if c.height > 0 {
		h = c.height
	}

	n := notify.New(notify.LoadPreferences(), c.logger)
	n.Enable(notify.EventPick, flagOr(cmd, "notify-pick", c.notifyPick, cfg.Notify.Pick))
	n.Enable(notify.EventLoadFailure, flagOr(cmd, "notify-load-failure", c.notifyLoadFailure, cfg.Notify.LoadFailure))
	n.Enable(notify.EventCopy, flagOr(cmd, "notify-copy", c.notifyCopy, cfg.Notify.Copy))

	listen := cfg.Control.Listen
	if cmd.Flags().Changed("listen") {
		listen = c.listen
	}

	opts := []app.Option{
		app.WithContext(cmd.Context()),
		app.WithLogger(c.logger),
		app.WithTheme(c.theme),
		app.WithSize(w, h),
		app.WithNotifier(n),
		app.WithSettings(bridge),
		app.WithControl(listen),
		app.WithViewer(viewer.WithTransform(tp)),
	}
	if len(args) == 1 {
		opts = append(opts, app.WithInitialLoad(args[0], nil))
	}
	app.New(opts...).Run()
	return nil
}

// flagOr returns the flag value when it was set, otherwise fallback.
func flagOr(cmd *cobra.Command, name string, val, fallback bool) bool {
	if cmd.Flags().Changed(name) {
		return val
	}
	return fallback
}

// sourceFlags select a settings source on the command line.
type sourceFlags struct {
	file      string
	redisAddr string
	redisKey  string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.file, "settings-file", "", "read saved placement from this YAML/JSON file")
	f.StringVar(&s.redisAddr, "redis-addr", "", "read saved placement from this redis server")
	f.StringVar(&s.redisKey, "redis-key", "", "redis key holding the settings response")
}

func (s *sourceFlags) resolve(cmd *cobra.Command, base settings.Source) settings.Source {
	f := cmd.Flags()
	if f.Changed("settings-file") {
		base.Kind, base.Path = "file", s.file
	}
	if f.Changed("redis-addr") {
		base.Kind, base.RedisAddr = "redis", s.redisAddr
	}
	if f.Changed("redis-key") {
		base.RedisKey = s.redisKey
	}
	return base
}
