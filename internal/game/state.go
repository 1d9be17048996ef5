// Package game implements the city's rules: the mode state machine, typing
// challenges, phase advancement and night raids.
package game

// Mode represents what the player is currently doing.
type Mode int

const (
	// ModeIntro is the splash screen; the player types a phrase to start.
	ModeIntro Mode = iota
	// ModeIdle lets the player pick any key.
	ModeIdle
	// ModeTyping is an active typing challenge on a building.
	ModeTyping
	// ModeBuildingSelect is typing a building name to construct on an empty key.
	ModeBuildingSelect
	// ModeNightReport shows the raid outcome; the city sleeps until morning.
	ModeNightReport
	// ModeGameOver is terminal, won or lost.
	ModeGameOver
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeIntro:
		return "intro"
	case ModeIdle:
		return "idle"
	case ModeTyping:
		return "typing"
	case ModeBuildingSelect:
		return "building_select"
	case ModeNightReport:
		return "night_report"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
