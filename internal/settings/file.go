package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Section is the key of the placement block in the host settings document.
const Section = "image_processing"

// FileBridge reads the host's settings document. The document is YAML (JSON
// also parses) with the placement under the image_processing key; other
// sections are left alone.
type FileBridge struct {
	Path string
}

// NewFileBridge returns a FileBridge for path.
func NewFileBridge(path string) *FileBridge { return &FileBridge{Path: path} }

type document struct {
	ImageProcessing *Placement `yaml:"image_processing"`
}

// Fetch implements Bridge. A missing file or section is reported as an
// unsuccessful response rather than an error.
func (b *FileBridge) Fetch(ctx context.Context) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Failed(fmt.Errorf("%w: %s", ErrNotFound, b.Path)), nil
	}
	if err != nil {
		return Response{}, fmt.Errorf("read settings: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Failed(fmt.Errorf("parse %s: %w", b.Path, err)), nil
	}
	if doc.ImageProcessing == nil {
		return Failed(fmt.Errorf("%w: %s has no %s section", ErrNotFound, b.Path, Section)), nil
	}
	return Succeeded(*doc.ImageProcessing), nil
}

// Validate applies the host's save rules: 0 < scale <= MaxScale and whole
// pixel offsets.
func (p Placement) Validate() error {
	if !(p.Scale > 0) || p.Scale > MaxScale {
		return fmt.Errorf("%w: scale %v not in (0, %v]", ErrOutOfRange, p.Scale, MaxScale)
	}
	if p.OffsetX != math.Trunc(p.OffsetX) {
		return fmt.Errorf("%w: offset_x %v is not a whole number", ErrOutOfRange, p.OffsetX)
	}
	if p.OffsetY != math.Trunc(p.OffsetY) {
		return fmt.Errorf("%w: offset_y %v is not a whole number", ErrOutOfRange, p.OffsetY)
	}
	return nil
}

// Store validates p and writes it into the image_processing section of the
// document at path, creating the file when needed and keeping every other
// section.
func Store(path string, p Placement) error {
	if err := p.Validate(); err != nil {
		return err
	}
	var doc yaml.Node
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read settings: %w", err)
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: top level is not a mapping", path)
	}

	var value yaml.Node
	if err := value.Encode(struct {
		OffsetX int64   `yaml:"offset_x"`
		OffsetY int64   `yaml:"offset_y"`
		Scale   float64 `yaml:"scale"`
	}{int64(p.OffsetX), int64(p.OffsetY), p.Scale}); err != nil {
		return err
	}

	replaced := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == Section {
			root.Content[i+1] = &value
			replaced = true
			break
		}
	}
	if !replaced {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: Section}
		root.Content = append(root.Content, key, &value)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, out, 0o644)
}
