package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/alignview/internal/geometry"
	"github.com/example/alignview/internal/viewer"
	"github.com/example/alignview/internal/viewport"
)

type renderCmd struct {
	*root
	placement  placementFlags
	output     string
	size       string
	pick       string
	status     string
	printState bool
}

func newRenderCmd(r *root) *cobra.Command {
	c := &renderCmd{root: r}
	cmd := &cobra.Command{
		Use:   "render <image>",
		Short: "Render one frame without a window",
		Long: `Render one frame of the viewer to a PNG without opening a window.

The frame is produced by the same state machine as the window: the image is
loaded into the start-scale view, --status forces a status and --pick replays
a press, drag and release along a reference line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args[0])
		},
	}
	c.placement.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&c.output, "output", "o", "", "output PNG file (- for stdout)")
	f.StringVar(&c.size, "size", "800x600", "canvas size as WxH")
	f.StringVar(&c.pick, "pick", "", "reference line x0,y0,x1,y1 in canvas pixels")
	f.StringVar(&c.status, "status", "", "force a status before rendering (none, normal, drawing, startScale, zoomAndRotate)")
	f.BoolVar(&c.printState, "print-state", false, "print the resulting state as JSON")
	return cmd
}

func (c *renderCmd) run(cmd *cobra.Command, path string) error {
	if c.output == "" {
		return usageError(cmd, "an output file is required (-o)")
	}
	if c.output == "-" && c.printState {
		return usageError(cmd, "--print-state cannot share stdout with -o -")
	}
	w, h, err := parseSize(c.size)
	if err != nil {
		return usageError(cmd, "%v", err)
	}
	tp, err := c.placement.resolve(cmd, c.config.Transform())
	if err != nil {
		return err
	}

	v := viewer.New(
		viewer.WithLogger(c.logger),
		viewer.WithTheme(c.theme),
		viewer.WithCanvas(w, h),
		viewer.WithTransform(tp),
		viewer.WithContext(cmd.Context()),
	)
	loadErr := v.LoadImageWait(cmd.Context(), path, nil)

	if c.status != "" {
		st, err := viewport.ParseStatus(c.status)
		if err != nil {
			return usageError(cmd, "%v", err)
		}
		v.SetStatus(st)
	}
	if c.pick != "" {
		start, end, err := parseLine(c.pick)
		if err != nil {
			return usageError(cmd, "%v", err)
		}
		replayPick(v, start, end)
	}

	frame := v.Render()
	if err := c.write(frame, cmd.OutOrStdout()); err != nil {
		return err
	}
	if c.printState {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(v.Snapshot()); err != nil {
			return err
		}
	}
	if loadErr != nil {
		return fmt.Errorf("load %s: %w", path, loadErr)
	}
	return nil
}

func (c *renderCmd) write(frame *image.RGBA, stdout io.Writer) error {
	if c.output == "-" {
		return png.Encode(stdout, frame)
	}
	f, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.output, err)
	}
	if err := png.Encode(f, frame); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", c.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", c.output, err)
	}
	c.logger.Info("frame written", "path", c.output)
	return nil
}

// replayPick feeds the press, drag and release of a pick along start to
// end. A start-scale or rotated view is first dismissed with a click.
func replayPick(v *viewer.Viewer, start, end geometry.Point) {
	click := func(kind viewer.Kind, pos geometry.Point) {
		v.HandlePointer(viewer.PointerEvent{Kind: kind, Button: viewer.Primary, Pos: pos})
	}
	if s := v.Status(); s == viewport.StartScale || s == viewport.ZoomAndRotate {
		click(viewer.Press, start)
		click(viewer.Release, start)
	}
	click(viewer.Press, start)
	v.HandlePointer(viewer.PointerEvent{Kind: viewer.Move, Pos: end})
	click(viewer.Release, end)
}
