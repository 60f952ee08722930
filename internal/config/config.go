package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/example/alignview/internal/settings"
	"github.com/example/alignview/internal/theme"
	"github.com/example/alignview/internal/viewport"
)

// Window holds the viewer window geometry.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Monitor selects a monitor to fill: "primary", an index or a name.
	Monitor string `toml:"monitor"`
}

// Image holds the default placement used when no settings source answers.
type Image struct {
	Scale   float64 `toml:"scale"`
	OffsetX float64 `toml:"offset_x"`
	OffsetY float64 `toml:"offset_y"`
}

// Settings selects where saved placements come from.
type Settings struct {
	Source        string `toml:"source"`
	Path          string `toml:"path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisKey      string `toml:"redis_key"`
}

// Control configures the HTTP control API.
type Control struct {
	Listen string `toml:"listen"`
}

// Notify holds notification settings.
type Notify struct {
	Pick        bool `toml:"pick"`
	LoadFailure bool `toml:"load_failure"`
	Copy        bool `toml:"copy"`
}

// Config holds the application configuration.
type Config struct {
	Theme    string   `toml:"theme"`
	LogLevel string   `toml:"log_level"`
	Window   Window   `toml:"window"`
	Image    Image    `toml:"image"`
	Settings Settings `toml:"settings"`
	Control  Control  `toml:"control"`
	Notify   Notify   `toml:"notify"`
	// Themes declares inline themes as key/value pairs in the theme file
	// format, for example PickLine = "#00FF00".
	Themes map[string]map[string]string `toml:"themes"`
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Window:   Window{Width: 1280, Height: 800},
		Image:    Image{Scale: 1},
		Settings: Settings{Source: "none", RedisKey: settings.DefaultRedisKey},
		Themes:   map[string]map[string]string{},
	}
}

// Parse decodes TOML from r over the defaults.
func Parse(r io.Reader) (*Config, error) {
	c := New()
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if !(c.Image.Scale > 0) {
		return fmt.Errorf("config: image.scale must be greater than zero, got %v", c.Image.Scale)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("config: window size must not be negative")
	}
	switch strings.ToLower(c.Settings.Source) {
	case "", "none", "file", "redis":
	default:
		return fmt.Errorf("config: unknown settings source %q", c.Settings.Source)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Transform returns the default placement as transform parameters.
func (c *Config) Transform() viewport.TransformParams {
	return viewport.TransformParams{Scale: c.Image.Scale, OffsetX: c.Image.OffsetX, OffsetY: c.Image.OffsetY}
}

// Source returns the settings source description.
func (c *Config) Source() settings.Source {
	return settings.Source{
		Kind:          c.Settings.Source,
		Path:          c.Settings.Path,
		RedisAddr:     c.Settings.RedisAddr,
		RedisPassword: c.Settings.RedisPassword,
		RedisDB:       c.Settings.RedisDB,
		RedisKey:      c.Settings.RedisKey,
	}
}

// InlineThemes parses the [themes.*] tables.
func (c *Config) InlineThemes() (map[string]*theme.Theme, error) {
	out := make(map[string]*theme.Theme, len(c.Themes))
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Name: %s\n", name)
		keys := make([]string, 0, len(c.Themes[name]))
		for k := range c.Themes[name] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %s\n", k, c.Themes[name][k])
		}
		t, err := theme.Parse(strings.NewReader(sb.String()))
		if err != nil {
			return nil, fmt.Errorf("theme %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// String implements fmt.Stringer and returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("# encode config: %v\n", err)
	}
	return buf.String()
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(c.String()), 0o644)
}
