package game

import (
	"time"

	"github.com/samdwyer/typecity/internal/combat"
	"github.com/samdwyer/typecity/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible prompt order.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Layout           []string        // Keyboard rows
	CenterKeys       []rune          // Free keys the city starts from
	StarterBuildings map[rune]string // Center key -> building ID placed at start

	DaysToSurvive int     // Surviving this day's night wins the game
	ThreatBase    float64 // Threat = round(day × ThreatBase × ThreatGrowth^day)
	ThreatGrowth  float64

	IntroPhrase string // Typed on the intro screen to start

	MessageTimeout time.Duration // Messages clear after this long without a new one
	KeyHighlight   time.Duration // How long a pressed key stays highlighted
	EscapeWindow   time.Duration // Second Escape within this window exits

	// Debug shows the last logged line on screen.
	Debug bool
}

// DefaultConfig returns the standard game settings.
func DefaultConfig() Config {
	return Config{
		Layout:     world.DefaultLayout,
		CenterKeys: world.DefaultCenters,
		StarterBuildings: map[rune]string{
			'f': "hut",
			'j': "market",
		},
		DaysToSurvive:  5,
		ThreatBase:     combat.DefaultThreatBase,
		ThreatGrowth:   combat.DefaultThreatGrowth,
		IntroPhrase:    "defend the city",
		MessageTimeout: 3 * time.Second,
		KeyHighlight:   100 * time.Millisecond,
		EscapeWindow:   5 * time.Second,
	}
}
