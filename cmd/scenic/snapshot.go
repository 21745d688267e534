package main

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/taigrr/scenic/pkg/config"
	"github.com/taigrr/scenic/pkg/render"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	savedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50FA7B"))
	statsStyle = lipgloss.NewStyle().Faint(true)
	numbers    = message.NewPrinter(language.English)
)

func summary(path string, w, h int, st render.FrameStats) string {
	return savedStyle.Render("Saved "+path) + " " + statsStyle.Render(numbers.Sprintf(
		"(%dx%d, %d items, %d triangles, %d pixels)", w, h, st.Items, st.Triangles, st.Pixels))
}

func runSnapshot(cfg config.Config, path string, frames int) error {
	s, ctx, err := setup(cfg)
	if err != nil {
		return err
	}
	for range frames {
		s.Update()
	}

	w, h := cfg.Snapshot.Width, cfg.Snapshot.Height
	applyProjection(s.Manager.Frustum(), cfg.Projection, w, h)
	ctx.SetViewportSize(w, h)
	ctx.Display()

	if err := ctx.ColorBuffer().SavePNG(path, cfg.Snapshot.Scale); err != nil {
		return err
	}
	fmt.Println(summary(path, w*cfg.Snapshot.Scale, h*cfg.Snapshot.Scale, ctx.Stats()))
	return nil
}

// sequencePath turns "out.png" into "out-0007.png".
func sequencePath(base string, i int) string {
	if base == "" {
		base = "frame.png"
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(base, ext), i, ext)
}

// runSequence renders count consecutive frames. Rendering stays on this
// goroutine; finished frames are encoded in parallel.
func runSequence(ctx context.Context, cfg config.Config, base string, skip, count int) error {
	s, rctx, err := setup(cfg)
	if err != nil {
		return err
	}
	for range skip {
		s.Update()
	}

	w, h := cfg.Snapshot.Width, cfg.Snapshot.Height
	applyProjection(s.Manager.Frustum(), cfg.Projection, w, h)
	rctx.SetViewportSize(w, h)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	var pixels int
	for i := range count {
		if ctx.Err() != nil {
			break
		}
		rctx.Display()
		pixels += rctx.Stats().Pixels

		fb := rctx.ColorBuffer()
		frame := render.NewFramebuffer(fb.Width, fb.Height)
		copy(frame.Pixels, fb.Pixels)
		path := sequencePath(base, i)
		g.Go(func() error {
			return frame.SavePNG(path, cfg.Snapshot.Scale)
		})
		s.Update()
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Println(savedStyle.Render(numbers.Sprintf("Saved %d frames", count)) + " " +
		statsStyle.Render(numbers.Sprintf("(%d pixels written)", pixels)))
	return nil
}
