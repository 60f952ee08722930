package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/example/alignview/internal/config"
	"github.com/example/alignview/internal/theme"
)

// root carries the state shared by every subcommand once the persistent
// flags have been resolved.
type root struct {
	configPath string
	themeName  string
	verbose    bool

	stdout io.Writer
	stderr io.Writer

	config *config.Config
	theme  *theme.Theme
	logger *log.Logger
}

// UsageError reports a command invoked with the wrong arguments.
type UsageError struct {
	cmd *cobra.Command
	msg string
}

func (e *UsageError) Error() string {
	if e.cmd == nil {
		return e.msg
	}
	return strings.TrimSpace(e.msg + "\n\n" + e.cmd.UsageString())
}

func usageError(cmd *cobra.Command, format string, args ...interface{}) error {
	return &UsageError{cmd: cmd, msg: fmt.Sprintf(format, args...)}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	r := &root{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "alignview",
		Short:         "Kiosk image viewer with pick-a-line levelling",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.setup(cmd)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(fmt.Sprintf("alignview %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	pf := cmd.PersistentFlags()
	pf.StringVar(&r.configPath, "config", configPathOverride, "path to the TOML configuration file")
	pf.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast, or a .theme file)")
	pf.BoolVarP(&r.verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(
		newViewCmd(r),
		newRenderCmd(r),
		newMonitorsCmd(r),
		newSettingsCmd(r),
		newConfigCmd(r),
		newVersionCmd(r),
	)
	return cmd
}

// setup loads configuration, logger and theme. Precedence for the theme is
// flag, then ALIGNVIEW_THEME, then the config file.
func (r *root) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	r.config = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if r.verbose {
		level = log.DebugLevel
	}
	r.logger = newLogger(r.stderr, level)
	cmd.SetContext(withLogger(cmd.Context(), r.logger))

	name := r.themeName
	if name == "" {
		name = os.Getenv("ALIGNVIEW_THEME")
	}
	if name == "" {
		name = cfg.Theme
	}
	inline, err := cfg.InlineThemes()
	if err != nil {
		return err
	}
	loader := theme.NewLoader()
	loader.Extra = inline
	if p := config.DefaultPath(); p != "" {
		loader.ConfigDir = filepath.Join(filepath.Dir(p), "themes")
	}
	t, err := loader.Load(name)
	if err != nil {
		r.logger.Warn("theme not loaded, using default", "theme", name, "err", err)
		t = theme.Default()
	}
	r.theme = t
	return nil
}
