package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/typecity/internal/game"
	"github.com/samdwyer/typecity/internal/world"
)

// Screen layout.
const (
	keyWidth     = 5 // Columns per key face
	keyHeight    = 2 // Rows per key face
	keyGap       = 1
	rowStagger   = 2 // Each keyboard row shifts right by this much
	messageRows  = 3
	panelTop     = 4
	headerRow    = 1
	hintRow      = 2
	contentInset = 2
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	theme  Theme
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws the whole game: frame, status, the panel for the current
// mode, the keyboard and messages.
func (r *Renderer) Render(c *game.Controller) {
	r.screen.Clear()
	w, h := r.screen.Size()
	phase := c.Cycle().Phase

	r.drawFrame(w, h, r.theme.Border(phase))
	r.drawHeader(c, w)

	kbTop := h - 2 - messageRows - keyboardHeight(c.Keyboard())
	if c.Config().Debug {
		kbTop--
	}

	switch c.Mode() {
	case game.ModeIntro:
		r.drawIntro(c, w)
	case game.ModeIdle:
		r.drawIdle(c)
	case game.ModeBuildingSelect:
		r.drawBuildingSelect(c)
	case game.ModeTyping:
		r.drawTyping(c)
	case game.ModeNightReport:
		r.drawNightReport(c)
	case game.ModeGameOver:
		r.drawGameOver(c, w)
	}

	if c.Mode() != game.ModeIntro && c.Mode() != game.ModeGameOver {
		r.drawKeyboard(c, w, kbTop)
	}
	r.drawMessages(c, h)
	if c.Config().Debug {
		r.drawText(contentInset, h-2, c.DebugLine(), r.theme.Dim)
	}

	r.screen.Show()
}

// drawFrame outlines the screen in the phase color.
func (r *Renderer) drawFrame(w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for x := 1; x < w-1; x++ {
		r.screen.SetContent(x, 0, '─', style)
		r.screen.SetContent(x, h-1, '─', style)
	}
	for y := 1; y < h-1; y++ {
		r.screen.SetContent(0, y, '│', style)
		r.screen.SetContent(w-1, y, '│', style)
	}
	r.screen.SetContent(0, 0, '┌', style)
	r.screen.SetContent(w-1, 0, '┐', style)
	r.screen.SetContent(0, h-1, '└', style)
	r.screen.SetContent(w-1, h-1, '┘', style)
}

func (r *Renderer) drawHeader(c *game.Controller, w int) {
	cycle := c.Cycle()
	status := fmt.Sprintf("Day %d · %s", cycle.Day, cycle.Phase)
	r.drawText(contentInset, headerRow, status, r.theme.Border(cycle.Phase).Bold(true))
	r.drawRight(w-contentInset, headerRow, c.Ledger().String(), r.theme.Text)
	r.drawText(contentInset, hintRow, hints(c.Mode()), r.theme.Dim)
}

// hints returns the key help for a mode.
func hints(m game.Mode) string {
	switch m {
	case game.ModeIdle:
		return "[key] use or build  [Tab] next phase  [Esc] exit"
	case game.ModeTyping, game.ModeBuildingSelect:
		return "[Backspace] correct  [Esc] cancel"
	case game.ModeNightReport:
		return "[Tab] sleep until morning  [Esc] exit"
	default:
		return "[Esc] exit"
	}
}

func (r *Renderer) drawIntro(c *game.Controller, w int) {
	y := panelTop + 1
	r.drawCentered(0, w, y, "T Y P E   C I T Y", r.theme.Border(world.PhaseMorning).Bold(true))
	y += 2
	lines := []string{
		"Every key is a plot of land. Press one to work its building,",
		"unlock it with knowledge, or build on it with money.",
		"Type the building's prompt to harvest. Speed and accuracy pay.",
		fmt.Sprintf("Raiders attack every night. Survive %d nights to win.", c.Config().DaysToSurvive),
	}
	for _, line := range lines {
		r.drawCentered(0, w, y, line, r.theme.Text)
		y++
	}
	y++
	r.drawCentered(0, w, y, "Type the phrase below to begin:", r.theme.Dim)
	y++

	phrase := []rune(c.Config().IntroPhrase)
	x := (w - len(phrase)) / 2
	r.drawPrompt(max(x, contentInset), y, phrase, []rune(c.Input()))
}

func (r *Renderer) drawIdle(c *game.Controller) {
	y := panelTop
	r.drawText(contentInset, y, fmt.Sprintf("Tonight's threat: %d", c.Threat()), r.theme.Warning)
	y++
	r.drawText(contentInset, y, fmt.Sprintf("Military: %d", c.Ledger().Military().Amount), r.theme.Text)
	y++
	r.drawText(contentInset, y, fmt.Sprintf("Survive until night %d.", c.Config().DaysToSurvive), r.theme.Dim)
}

func (r *Renderer) drawBuildingSelect(c *game.Controller) {
	key := c.CurrentKey()
	y := panelTop
	if key != nil {
		title := fmt.Sprintf("Build on key '%c'. Type a building name:", unicode.ToUpper(key.Char))
		r.drawText(contentInset, y, title, r.theme.Text.Bold(true))
	}
	y++
	x := r.drawText(contentInset, y, "> ", r.theme.Dim)
	x = r.drawText(x, y, c.Input(), r.theme.Text)
	r.screen.SetContent(x, y, ' ', r.theme.Caret)
	y += 2

	r.drawText(contentInset, y, fmt.Sprintf("%-10s %-4s %8s  %-10s %s", "Name", "", "Cost", "Produces", "Needs"), r.theme.Dim)
	y++
	money := c.Ledger().Money()
	typed := strings.ToLower(c.Input())
	for _, def := range c.Catalog().All() {
		style := r.theme.Text
		if !money.Has(def.Cost) {
			style = r.theme.Dim
		}
		if typed != "" && strings.HasPrefix(strings.ToLower(def.Name), typed) {
			style = style.Bold(true)
		}

		col := r.drawText(contentInset, y, fmt.Sprintf("%-10s ", def.Name), style)
		r.drawText(col, y, def.Symbol, style)
		col += 5
		col = r.drawText(col, y, fmt.Sprintf("%7d%s  ", def.Cost, symbolOf(c, "money")), style)
		col = r.drawText(col, y, fmt.Sprintf("+%d%s", def.OutputAmount, symbolOf(c, def.Output)), style)
		if def.HasInput() {
			r.drawText(max(col+2, contentInset+40), y, fmt.Sprintf("-%d%s", def.InputAmount, symbolOf(c, def.Input)), style)
		}
		y++
	}
}

func (r *Renderer) drawTyping(c *game.Controller) {
	challenge := c.Challenge()
	key := c.CurrentKey()
	if challenge == nil || key == nil {
		return
	}

	y := panelTop
	title := fmt.Sprintf("%s %s on key '%c'", key.Building.Symbol, key.Building.Name, unicode.ToUpper(key.Char))
	r.drawText(contentInset, y, title, r.theme.Text.Bold(true))
	y += 2
	r.drawPrompt(contentInset, y, []rune(challenge.Target), challenge.InputRunes())
	y += 2

	accStyle := r.theme.Success
	if c.Accuracy() < 0.5 {
		accStyle = r.theme.Error
	}
	x := r.drawText(contentInset, y, fmt.Sprintf("WPM: %.2f   ", c.WPM()), r.theme.Text)
	r.drawText(x, y, fmt.Sprintf("Accuracy: %.2f%%", c.Accuracy()*100), accStyle)
}

// drawPrompt draws target with typed characters colored by correctness and
// a caret on the next character.
func (r *Renderer) drawPrompt(x, y int, target, typed []rune) {
	for i, ch := range target {
		style := r.theme.Dim
		switch {
		case i < len(typed) && typed[i] == ch:
			style = r.theme.Success
		case i < len(typed):
			style = r.theme.Error.Underline(true)
			if ch == ' ' {
				ch = '_'
			}
		case i == len(typed):
			style = r.theme.Caret
		}
		r.screen.SetContent(x+i, y, ch, style)
	}
}

func (r *Renderer) drawNightReport(c *game.Controller) {
	r.drawReport(c.BattleReport(), panelTop)
}

func (r *Renderer) drawReport(lines []string, y int) int {
	for i, line := range lines {
		style := r.theme.Text
		if i == 0 {
			style = r.theme.Success.Bold(true)
			if strings.HasPrefix(line, "DEFEAT") {
				style = r.theme.Error.Bold(true)
			}
		}
		r.drawText(contentInset, y, line, style)
		y++
	}
	return y
}

func (r *Renderer) drawGameOver(c *game.Controller, w int) {
	y := panelTop + 1
	title, style := "THE CITY HAS FALLEN", r.theme.Error.Bold(true)
	if c.Won() {
		title, style = "THE CITY ENDURES", r.theme.Success.Bold(true)
	}
	r.drawCentered(0, w, y, title, style)
	y += 2
	r.drawReport(c.BattleReport(), y)
}

// drawKeyboard draws every key as a colored block with its building symbol.
// Locked keys show their unlock cost below the letter.
func (r *Renderer) drawKeyboard(c *game.Controller, w, top int) {
	kb := c.Keyboard()
	left := max((w-keyboardWidth(kb))/2, contentInset)
	phase := c.Cycle().Phase

	for _, key := range kb.Keys() {
		x := left + key.Row*rowStagger + key.Col*(keyWidth+keyGap)
		y := top + key.Row*(keyHeight+keyGap)

		style := r.keyStyle(c, key, phase)
		r.fill(x, y, keyWidth, keyHeight, style)
		r.screen.SetContent(x+1, y, unicode.ToUpper(key.Char), style.Bold(true))
		switch {
		case key.Locked:
			r.drawText(x+1, y+1, fmt.Sprint(key.UnlockCost), style)
		case key.HasBuilding():
			r.drawText(x+2, y+1, key.Building.Symbol, style)
		}
		for dx := 1; dx <= keyWidth; dx++ {
			r.screen.SetContent(x+dx, y+keyHeight, '▀', r.theme.Shadow)
		}
	}
}

func (r *Renderer) keyStyle(c *game.Controller, key *world.Key, phase world.Phase) tcell.Style {
	switch {
	case c.PressedKey() == key.Char:
		return r.theme.KeyPressed
	case key.Locked:
		return r.theme.KeyLocked
	case key.HasBuilding() && !key.Active:
		return r.theme.KeyHarvested
	default:
		return r.theme.KeyFace(phase)
	}
}

func (r *Renderer) drawMessages(c *game.Controller, h int) {
	msgs := c.Messages()
	y := h - 1 - messageRows
	if c.Config().Debug {
		y--
	}
	for _, msg := range msgs {
		r.drawText(contentInset, y, msg.Text, r.theme.Severity(msg.Severity))
		y++
	}
}

// symbolOf returns the symbol of a ledger resource, or "" if unknown.
func symbolOf(c *game.Controller, name string) string {
	res, err := c.Ledger().FindByName(name)
	if err != nil {
		return ""
	}
	return res.Symbol
}

func keyboardHeight(kb *world.Keyboard) int {
	return len(kb.Rows) * (keyHeight + keyGap)
}

func keyboardWidth(kb *world.Keyboard) int {
	width := 0
	for i, row := range kb.Rows {
		width = max(width, i*rowStagger+len(row)*(keyWidth+keyGap))
	}
	return width
}
