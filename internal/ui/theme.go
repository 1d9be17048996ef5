package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/typecity/internal/game"
	"github.com/samdwyer/typecity/internal/gamedata"
	"github.com/samdwyer/typecity/internal/world"
)

// keyTint is how far key faces lean toward the phase color.
const keyTint = 0.2

// Theme is the set of styles the renderer draws with.
type Theme struct {
	Text    tcell.Style
	Dim     tcell.Style
	Success tcell.Style
	Warning tcell.Style
	Error   tcell.Style
	Caret   tcell.Style

	KeyLocked    tcell.Style
	KeyPressed   tcell.Style
	KeyHarvested tcell.Style
	Shadow       tcell.Style

	border   map[world.Phase]tcell.Style
	keyFaces map[world.Phase]tcell.Style
}

// LoadTheme builds a theme from the embedded theme.json. On error the
// built-in colors are returned along with the error.
func LoadTheme() (Theme, error) {
	def, err := gamedata.LoadTheme()
	if err != nil {
		return DefaultTheme(), err
	}
	return NewTheme(def), nil
}

// DefaultTheme returns a theme using named terminal colors only.
func DefaultTheme() Theme {
	return NewTheme(gamedata.ThemeDef{})
}

// NewTheme converts hex colors into styles. Missing or malformed colors
// fall back to named terminal colors.
func NewTheme(def gamedata.ThemeDef) Theme {
	bg := gamedata.HexColorOr(def.Background, tcell.ColorBlack)
	fg := func(hex string, fallback tcell.Color) tcell.Style {
		return tcell.StyleDefault.Background(bg).Foreground(gamedata.HexColorOr(hex, fallback))
	}
	keyStyle := func(hex string, fallback tcell.Color) tcell.Style {
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(gamedata.HexColorOr(hex, fallback))
	}

	t := Theme{
		Text:    fg(def.Text, tcell.ColorWhite),
		Dim:     fg(def.Dim, tcell.ColorGray),
		Success: fg(def.Success, tcell.ColorGreen),
		Warning: fg(def.Warning, tcell.ColorYellow),
		Error:   fg(def.Error, tcell.ColorRed),

		KeyLocked:    keyStyle(def.KeyLocked, tcell.ColorMaroon).Foreground(tcell.ColorWhite),
		KeyPressed:   keyStyle(def.KeyPressed, tcell.ColorGreen),
		KeyHarvested: keyStyle(def.KeyHarvested, tcell.ColorOlive),
		Shadow:       fg(def.Shadow, tcell.ColorDarkGray),

		border:   make(map[world.Phase]tcell.Style),
		keyFaces: make(map[world.Phase]tcell.Style),
	}
	t.Caret = t.Text.Reverse(true)

	face := gamedata.HexColorOr(def.KeyFace, tcell.ColorSilver)
	for _, phase := range []world.Phase{world.PhaseMorning, world.PhaseAfternoon, world.PhaseEvening, world.PhaseNight} {
		hex := def.Phases[phaseKey(phase)]
		t.border[phase] = fg(hex, tcell.ColorTeal)
		t.keyFaces[phase] = tcell.StyleDefault.Foreground(tcell.ColorBlack).
			Background(blend(def.KeyFace, hex, keyTint, face))
	}
	return t
}

// Border returns the frame style for a phase.
func (t Theme) Border(phase world.Phase) tcell.Style {
	if s, ok := t.border[phase]; ok {
		return s
	}
	return t.Text
}

// KeyFace returns the style of an unlocked, ready key during a phase.
func (t Theme) KeyFace(phase world.Phase) tcell.Style {
	if s, ok := t.keyFaces[phase]; ok {
		return s
	}
	return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
}

// Severity returns the text style for a message severity.
func (t Theme) Severity(s game.Severity) tcell.Style {
	switch s {
	case game.SeveritySuccess:
		return t.Success
	case game.SeverityWarning:
		return t.Warning
	case game.SeverityError:
		return t.Error
	case game.SeverityNight:
		return t.Border(world.PhaseNight)
	default:
		return t.Text
	}
}

func phaseKey(p world.Phase) string {
	switch p {
	case world.PhaseMorning:
		return "morning"
	case world.PhaseAfternoon:
		return "afternoon"
	case world.PhaseEvening:
		return "evening"
	case world.PhaseNight:
		return "night"
	default:
		return ""
	}
}

// blend mixes two hex colors in Lab space, t=0 being a. If either color is
// malformed, fallback is returned.
func blend(a, b string, t float64, fallback tcell.Color) tcell.Color {
	ca, err := colorful.Hex(a)
	if err != nil {
		return fallback
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return fallback
	}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}
