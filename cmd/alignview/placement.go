package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/alignview/internal/geometry"
	"github.com/example/alignview/internal/viewport"
)

// placementFlags are the --scale/--offset-x/--offset-y flags shared by view
// and render. Unset flags fall back to the config file.
type placementFlags struct {
	scale   float64
	offsetX float64
	offsetY float64
}

func (p *placementFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&p.scale, "scale", 1, "image scale for the start-scale view")
	f.Float64Var(&p.offsetX, "offset-x", 0, "horizontal offset of the start-scale view in image pixels")
	f.Float64Var(&p.offsetY, "offset-y", 0, "vertical offset of the start-scale view in image pixels")
}

func (p *placementFlags) resolve(cmd *cobra.Command, base viewport.TransformParams) (viewport.TransformParams, error) {
	f := cmd.Flags()
	if f.Changed("scale") {
		base.Scale = p.scale
	}
	if f.Changed("offset-x") {
		base.OffsetX = p.offsetX
	}
	if f.Changed("offset-y") {
		base.OffsetY = p.offsetY
	}
	if err := base.Validate(); err != nil {
		return base, usageError(cmd, "%v", err)
	}
	return base, nil
}

// parseSize parses WxH.
func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("size %q is not WxH", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}

// parseLine parses x0,y0,x1,y1 in canvas pixels.
func parseLine(s string) (geometry.Point, geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.Point{}, geometry.Point{}, fmt.Errorf("pick %q is not x0,y0,x1,y1", s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Point{}, geometry.Point{}, fmt.Errorf("pick %q: %w", s, err)
		}
		v[i] = f
	}
	return geometry.Pt(v[0], v[1]), geometry.Pt(v[2], v[3]), nil
}
