package world

import (
	"fmt"
	"math"
	"unicode"

	"github.com/samdwyer/typecity/internal/gamedata"
)

const (
	// Unlock cost = baseUnlockCost + distance to nearest center * unlockCostPerKey
	baseUnlockCost   = 10
	unlockCostPerKey = 15
)

// DefaultLayout is a US keyboard without modifier keys.
var DefaultLayout = []string{
	"`1234567890-=",
	"qwertyuiop[]",
	"asdfghjkl;'",
	"zxcvbnm,./",
}

// DefaultCenters are the home-row keys the city starts from.
var DefaultCenters = []rune{'f', 'g', 'h', 'j'}

// Keyboard is the grid of keys the city is built on.
type Keyboard struct {
	Rows [][]*Key
	keys []*Key
}

// NewKeyboard creates a keyboard from layout rows. Center keys start unlocked
// and free; every other key is locked with a cost growing with its Euclidean
// distance to the nearest center.
func NewKeyboard(layout []string, centers []rune) (*Keyboard, error) {
	if len(centers) == 0 {
		return nil, fmt.Errorf("keyboard needs at least one center key")
	}

	kb := &Keyboard{Rows: make([][]*Key, 0, len(layout))}
	for row, line := range layout {
		keys := make([]*Key, 0, len(line))
		for col, ch := range []rune(line) {
			key := &Key{
				Char:   unicode.ToLower(ch),
				Row:    row,
				Col:    col,
				Locked: true,
				Active: true,
			}
			keys = append(keys, key)
			kb.keys = append(kb.keys, key)
		}
		kb.Rows = append(kb.Rows, keys)
	}

	centerKeys := make([]*Key, 0, len(centers))
	for _, c := range centers {
		key := kb.GetByChar(c)
		if key == nil {
			return nil, fmt.Errorf("center key %q not in layout", c)
		}
		centerKeys = append(centerKeys, key)
	}

	for _, key := range kb.keys {
		dist := math.Inf(1)
		for _, center := range centerKeys {
			dist = math.Min(dist, distance(key, center))
		}
		if dist == 0 {
			key.Locked = false
			key.UnlockCost = 0
			continue
		}
		key.UnlockCost = int(math.Round(baseUnlockCost + dist*unlockCostPerKey))
	}

	return kb, nil
}

// distance returns the Euclidean distance between two keys in grid units.
func distance(a, b *Key) float64 {
	return math.Hypot(float64(a.Row-b.Row), float64(a.Col-b.Col))
}

// GetByChar returns the key for a character, ignoring case, or nil if the
// character is not on the keyboard.
func (kb *Keyboard) GetByChar(ch rune) *Key {
	ch = unicode.ToLower(ch)
	for _, key := range kb.keys {
		if key.Char == ch {
			return key
		}
	}
	return nil
}

// AssignStarter places a building on an unlocked key at game start.
func (kb *Keyboard) AssignStarter(ch rune, def *gamedata.BuildingDef) error {
	key := kb.GetByChar(ch)
	if key == nil {
		return fmt.Errorf("starter key %q not in layout", ch)
	}
	if key.Locked {
		return fmt.Errorf("starter key %q is locked", ch)
	}
	if def == nil {
		return fmt.Errorf("starter key %q has no building", ch)
	}
	key.Building = def
	return nil
}

// ResetActivity recharges every key for a new phase.
func (kb *Keyboard) ResetActivity() {
	for _, key := range kb.keys {
		key.Active = true
	}
}

// Keys returns all keys in layout order.
func (kb *Keyboard) Keys() []*Key {
	return kb.keys
}

// UnlockedCount returns the number of unlocked keys.
func (kb *Keyboard) UnlockedCount() int {
	count := 0
	for _, key := range kb.keys {
		if !key.Locked {
			count++
		}
	}
	return count
}
