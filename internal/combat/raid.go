// Package combat resolves the nightly raids against the city.
package combat

import (
	"fmt"
	"math"

	"github.com/samdwyer/typecity/internal/entity"
)

// Default threat scaling.
const (
	DefaultThreatBase   = 4
	DefaultThreatGrowth = 1.2
)

// ThreatLevel returns the raid strength for a day:
// round(day × base × growth^day).
func ThreatLevel(day int, base, growth float64) int {
	return int(math.Round(float64(day) * base * math.Pow(growth, float64(day))))
}

// Outcome is the result of a raid.
type Outcome int

const (
	OutcomeVictory Outcome = iota
	OutcomeDefeat
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// RaidReport describes a resolved raid.
type RaidReport struct {
	Outcome         Outcome
	Threat          int
	Military        int
	KnowledgeGained int
	Lines           []string // Narrative shown on the night screen
}

// Victory returns true if the city held.
func (r RaidReport) Victory() bool {
	return r.Outcome == OutcomeVictory
}

// ResolveRaid pits the ledger's military against threat. Military equal to
// the threat holds the city. A victory pays the threat in knowledge; a defeat
// leaves the ledger untouched since it ends the game.
func ResolveRaid(threat int, ledger *entity.Ledger) RaidReport {
	military := ledger.Military().Amount
	knowledge := ledger.Knowledge()
	summary := fmt.Sprintf("THREAT LEVEL: %d | MILITARY: %d", threat, military)

	if military >= threat {
		knowledge.Add(threat)
		return RaidReport{
			Outcome:         OutcomeVictory,
			Threat:          threat,
			Military:        military,
			KnowledgeGained: threat,
			Lines: []string{
				"VICTORY!",
				summary,
				"The city is safe.",
				fmt.Sprintf("Gained %d%s from combat experience.", threat, knowledge.Symbol),
			},
		}
	}

	return RaidReport{
		Outcome:  OutcomeDefeat,
		Threat:   threat,
		Military: military,
		Lines: []string{
			"DEFEAT...",
			summary,
			"Raiders breached the defenses!",
			"They take everything, including your life.",
		},
	}
}
