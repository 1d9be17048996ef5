// Package typing scores typing challenges: accuracy, speed and payout.
package typing

import (
	"math"
	"time"
)

// minElapsed keeps WPM finite when a prompt is finished instantly.
const minElapsed = 0.001

// Buffer is the text the player has typed so far.
type Buffer struct {
	runes []rune
}

// Append adds a character to the end of the buffer.
func (b *Buffer) Append(r rune) {
	b.runes = append(b.runes, r)
}

// Backspace removes the last character. It returns false if the buffer was empty.
func (b *Buffer) Backspace() bool {
	if len(b.runes) == 0 {
		return false
	}
	b.runes = b.runes[:len(b.runes)-1]
	return true
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
}

// Len returns the number of characters typed.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// String returns the typed text.
func (b *Buffer) String() string {
	return string(b.runes)
}

// Runes returns the typed characters. The slice must not be modified.
func (b *Buffer) Runes() []rune {
	return b.runes
}

// Challenge is one attempt at typing a building's prompt.
type Challenge struct {
	Target   string
	Mistakes int // Wrong keystrokes so far; backspace never lowers this
	Started  time.Time

	target []rune
	input  Buffer
}

// NewChallenge starts a challenge for target at the given time.
func NewChallenge(target string, started time.Time) *Challenge {
	return &Challenge{
		Target:  target,
		Started: started,
		target:  []rune(target),
	}
}

// Type records a keystroke. Input beyond the prompt length is ignored and
// reported as false. A character that does not match the prompt at its
// position counts as a mistake.
func (c *Challenge) Type(r rune) bool {
	pos := c.input.Len()
	if pos >= len(c.target) {
		return false
	}
	c.input.Append(r)
	if r != c.target[pos] {
		c.Mistakes++
	}
	return true
}

// Backspace removes the last typed character without forgiving the mistake.
func (c *Challenge) Backspace() bool {
	return c.input.Backspace()
}

// Input returns the typed text.
func (c *Challenge) Input() string {
	return c.input.String()
}

// InputRunes returns the typed characters for per-character rendering.
func (c *Challenge) InputRunes() []rune {
	return c.input.Runes()
}

// Length returns the prompt length in characters.
func (c *Challenge) Length() int {
	return len(c.target)
}

// Complete returns true once the typed text equals the prompt exactly.
func (c *Challenge) Complete() bool {
	return c.input.Len() == len(c.target) && c.input.String() == c.Target
}

// WPM returns words per minute at now, counting five characters as a word.
func (c *Challenge) WPM(now time.Time) float64 {
	return WPM(c.input.Len(), now.Sub(c.Started))
}

// Accuracy returns the accuracy ratio for the challenge so far.
func (c *Challenge) Accuracy() float64 {
	return Accuracy(c.Mistakes, len(c.target))
}

// Reward returns the payout for a building producing output at full accuracy.
func (c *Challenge) Reward(output int) int {
	return Reward(output, c.Accuracy())
}

// WPM computes (chars × 12) / seconds with the elapsed time floor-clamped.
func WPM(chars int, elapsed time.Duration) float64 {
	seconds := math.Max(elapsed.Seconds(), minElapsed)
	return float64(chars*12) / seconds
}

// Accuracy returns 1 - min(mistakes/length, 1).
func Accuracy(mistakes, length int) float64 {
	if length <= 0 {
		return 1
	}
	return 1 - math.Min(float64(mistakes)/float64(length), 1)
}

// Reward scales output by accuracy, rounding to the nearest unit.
func Reward(output int, accuracy float64) int {
	return int(math.Round(float64(output) * accuracy))
}
