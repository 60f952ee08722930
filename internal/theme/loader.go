package theme

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed defaults/*.theme
var embeddedThemes embed.FS

// Loader resolves theme names to Theme values.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Extra holds themes declared inline in the application config.
	Extra map[string]*Theme
}

// NewLoader creates a Loader with the standard search directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "alignview", "themes"),
		SystemDir: "/usr/share/alignview/themes",
	}
}

// Load resolves name in this order: empty name gives Default, then an
// existing file path, inline config themes, embedded themes, ConfigDir and
// finally SystemDir.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}

	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(name)
	}

	if t, ok := l.Extra[name]; ok && t != nil {
		return t, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}

	if f, err := embeddedThemes.Open("defaults/" + filename); err == nil {
		defer f.Close()
		return parseNamed(f, name)
	}

	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return parseFile(p)
		}
	}

	return nil, fmt.Errorf("theme %q not found", name)
}

// Embedded lists the names of the built-in themes.
func Embedded() []string {
	entries, err := fs.ReadDir(embeddedThemes, "defaults")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".theme"))
	}
	sort.Strings(names)
	return names
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseNamed(f, strings.TrimSuffix(filepath.Base(path), ".theme"))
}

func parseNamed(r io.Reader, fallback string) (*Theme, error) {
	t, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if t.Name == "" || t.Name == Default().Name {
		t.Name = fallback
	}
	return t, nil
}
