package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"
)

// Draw presents the framebuffer in area using upper half blocks: each cell
// shows two framebuffer rows, the top one as foreground and the bottom one
// as background. The framebuffer should be 2x as tall as area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, topY+1)),
				},
			})
		}
	}
}

// DrawText writes s starting at (x, y) with the given foreground color and
// returns the number of columns used. Zero-width runes are dropped.
func DrawText(scr uv.Screen, x, y int, s string, fg color.RGBA) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		scr.SetCell(col, y, &uv.Cell{
			Content: string(r),
			Width:   w,
			Style:   uv.Style{Fg: fg},
		})
		col += w
	}
	return col - x
}

// TextWidth is the number of terminal columns s occupies.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// cellColor maps transparent pixels to the terminal default.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
