package world

// Phase is a part of the day.
type Phase int

const (
	PhaseMorning Phase = iota
	PhaseAfternoon
	PhaseEvening
	PhaseNight

	phaseCount = 4
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMorning:
		return "Morning"
	case PhaseAfternoon:
		return "Afternoon"
	case PhaseEvening:
		return "Evening"
	case PhaseNight:
		return "Night"
	default:
		return "Unknown"
	}
}

// Cycle tracks the current phase and day. Days start at 1.
type Cycle struct {
	Phase Phase
	Day   int
}

// NewCycle returns a cycle at the morning of day 1.
func NewCycle() *Cycle {
	return &Cycle{Phase: PhaseMorning, Day: 1}
}

// Advance moves to the next phase, starting a new day after night.
func (c *Cycle) Advance() Phase {
	c.Phase = (c.Phase + 1) % phaseCount
	if c.Phase == PhaseMorning {
		c.Day++
	}
	return c.Phase
}

// IsNight returns true during the night phase.
func (c *Cycle) IsNight() bool {
	return c.Phase == PhaseNight
}
