package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/scenic/pkg/anim"
	"github.com/taigrr/scenic/pkg/config"
	"github.com/taigrr/scenic/pkg/render"
)

// HUD renders an overlay with scene info and frame statistics
type HUD struct {
	Visible bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
	message   string
	msgUntil  time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{Visible: true, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Flash shows msg on the bottom row for a few seconds.
func (h *HUD) Flash(msg string) {
	h.message = msg
	h.msgUntil = time.Now().Add(3 * time.Second)
}

var (
	hudGreen  = color.RGBA{80, 255, 120, 255}
	hudWhite  = color.RGBA{240, 240, 240, 255}
	hudYellow = color.RGBA{255, 220, 80, 255}
)

// Draw writes the overlay on top of the frame.
func (h *HUD) Draw(scr uv.Screen, width, height int, name string, cull, wire, paused bool, st render.FrameStats) {
	if time.Now().Before(h.msgUntil) {
		render.DrawText(scr, 0, height-1, h.message, hudYellow)
	}
	if !h.Visible {
		return
	}
	render.DrawText(scr, 0, 0, fmt.Sprintf(" %.0f FPS ", h.fps), hudGreen)
	title := " " + name + " "
	render.DrawText(scr, max((width-render.TextWidth(title))/2, 0), 0, title, hudWhite)

	stats := numbers.Sprintf(" %d items %d tris ", st.Items, st.Triangles)
	render.DrawText(scr, max(width-render.TextWidth(stats), 0), 0, stats, hudWhite)

	if time.Now().Before(h.msgUntil) {
		return
	}
	modes := fmt.Sprintf(" %s Cull  %s Wire  %s Pause ", check(cull), check(wire), check(paused))
	render.DrawText(scr, 0, height-1, modes, hudWhite)
}

func check(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func run(parent context.Context, cfg config.Config) error {
	s, rctx, err := setup(cfg)
	if err != nil {
		return err
	}
	m := s.Manager
	orbit := anim.NewOrbit(cfg.FPS, m.Camera())
	hud := NewHUD()

	// Create terminal
	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Half blocks give two framebuffer rows per terminal row.
	resize := func() {
		rctx.SetViewportSize(width, height*2)
		applyProjection(m.Frustum(), cfg.Projection, width, height*2)
	}
	resize()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Events are handed to the render loop so scene state is only touched
	// between frames.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	const orbitStrength = 0.02
	var paused bool
	snapshots := 0

	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			resize()
		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "ctrl+c"):
				cancel()
			case ev.MatchString("w", "up"):
				orbit.Pitch.Impulse(orbitStrength)
			case ev.MatchString("s", "down"):
				orbit.Pitch.Impulse(-orbitStrength)
			case ev.MatchString("a", "left"):
				orbit.Yaw.Impulse(-orbitStrength)
			case ev.MatchString("d", "right"):
				orbit.Yaw.Impulse(orbitStrength)
			case ev.MatchString("+", "="):
				orbit.Zoom(0.9)
			case ev.MatchString("-", "_"):
				orbit.Zoom(1.1)
			case ev.MatchString("c"):
				if m.ToggleCulling() {
					hud.Flash("culling on")
				} else {
					hud.Flash("culling off")
				}
			case ev.MatchString("x"):
				rctx.Wireframe = !rctx.Wireframe
			case ev.MatchString("space"):
				paused = !paused
			case ev.MatchString("r"):
				orbit.Reset()
			case ev.MatchString("p"):
				snapshots++
				path := fmt.Sprintf("scenic-%s-%d.png", s.Name, snapshots)
				if err := rctx.ColorBuffer().SavePNG(path, cfg.Snapshot.Scale); err != nil {
					hud.Flash(err.Error())
				} else {
					hud.Flash("saved " + path)
				}
			case ev.MatchString("?"), ev.MatchString("shift+/"):
				hud.Visible = !hud.Visible
			}
		}
	}

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	// Main loop
	targetDuration := time.Second / time.Duration(cfg.FPS)
	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}
		now := time.Now()

	drain:
		for {
			select {
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}

		orbit.Update()
		orbit.Apply(m.Camera())
		if !paused {
			s.Update()
		}

		rctx.Display()
		if fb := rctx.ColorBuffer(); fb != nil {
			fb.Draw(term, uv.Rectangle(image.Rect(0, 0, width, height)))
		}
		hud.UpdateFPS()
		hud.Draw(term, width, height, s.Name, m.Culling(), rctx.Wireframe, paused, rctx.Stats())
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
