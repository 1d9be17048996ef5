package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// drawText draws s starting at (x, y) one grapheme cluster at a time and
// returns the column after the last cluster. Wide clusters such as emoji
// advance by their display width.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		r.screen.SetGrapheme(x, y, g.Runes(), style)
		x += max(g.Width(), 1)
	}
	return x
}

// drawCentered draws s centered between columns left and right.
func (r *Renderer) drawCentered(left, right, y int, s string, style tcell.Style) {
	x := left + (right-left-textWidth(s))/2
	r.drawText(max(x, left), y, s, style)
}

// drawRight draws s so that it ends at column right.
func (r *Renderer) drawRight(right, y int, s string, style tcell.Style) {
	r.drawText(right-textWidth(s), y, s, style)
}

// fill paints a rectangle with spaces.
func (r *Renderer) fill(x, y, w, h int, style tcell.Style) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r.screen.SetContent(x+dx, y+dy, ' ', style)
		}
	}
}

// textWidth returns the number of terminal columns s occupies.
func textWidth(s string) int {
	return uniseg.StringWidth(s)
}
