package theme

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
Name: night
// comment
Background: #101010
PickLine: #00FF0080
PickLineWidth: 6
Unknown: #123456
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "night" {
		t.Fatalf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x10, 0x10, 0xff}) {
		t.Fatalf("background = %+v", th.Background)
	}
	if th.PickLine != (color.RGBA{0, 0xff, 0, 0x80}) {
		t.Fatalf("pick line = %+v", th.PickLine)
	}
	if th.PickLineWidth != 6 {
		t.Fatalf("pick width = %d", th.PickLineWidth)
	}
	if th.Placeholder != Default().Placeholder {
		t.Fatalf("unset key should keep default, got %+v", th.Placeholder)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: red\n")); err == nil {
		t.Fatalf("expected error for color without #")
	}
	if _, err := Parse(strings.NewReader("PickLineWidth: -2\n")); err == nil {
		t.Fatalf("expected error for negative width")
	}
}

func TestWriteParseCircular(t *testing.T) {
	orig := Default()
	orig.Name = "circular"
	orig.PickLine = color.RGBA{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := orig.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *got != *orig {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, orig)
	}
}

func TestLoaderEmbedded(t *testing.T) {
	l := &Loader{}
	for _, name := range []string{"default", "dark", "high_contrast"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name != name {
			t.Fatalf("Load(%q) name = %q", name, th.Name)
		}
	}
	if names := Embedded(); len(names) != 3 {
		t.Fatalf("embedded themes = %v", names)
	}
}

func TestLoaderSearchOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "kiosk.theme"), []byte("PickLine: #0000FF\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("kiosk")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "kiosk" || th.PickLine != (color.RGBA{0, 0, 0xff, 0xff}) {
		t.Fatalf("unexpected theme %+v", th)
	}

	l.Extra = map[string]*Theme{"kiosk": {Name: "inline"}}
	if th, _ := l.Load("kiosk"); th.Name != "inline" {
		t.Fatalf("inline theme should win over config dir, got %q", th.Name)
	}

	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
