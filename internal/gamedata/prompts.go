package gamedata

import "math/rand"

// PromptDeck draws typing prompts for buildings. Each building's text pool is
// shuffled and dealt in order; when the pool runs out it is reshuffled.
type PromptDeck struct {
	rng     *rand.Rand
	cursors map[string]*promptCursor
}

// promptCursor is the runtime draw state for one building.
type promptCursor struct {
	order []int
	next  int
	last  int
}

// NewPromptDeck creates a deck drawing with the given random source.
func NewPromptDeck(rng *rand.Rand) *PromptDeck {
	return &PromptDeck{
		rng:     rng,
		cursors: make(map[string]*promptCursor),
	}
}

// Next returns the next prompt for the building. A text is never returned
// twice in a row unless the pool holds a single entry.
func (d *PromptDeck) Next(def *BuildingDef) string {
	if def == nil || len(def.Texts) == 0 {
		return ""
	}

	cur := d.cursors[def.ID]
	if cur == nil || len(cur.order) != len(def.Texts) {
		cur = &promptCursor{last: -1}
		d.cursors[def.ID] = cur
		d.shuffle(cur, len(def.Texts))
	}
	if cur.next >= len(cur.order) {
		d.shuffle(cur, len(def.Texts))
	}

	idx := cur.order[cur.next]
	cur.next++
	cur.last = idx
	return def.Texts[idx]
}

// shuffle deals a fresh order, keeping the previous draw off the top.
func (d *PromptDeck) shuffle(cur *promptCursor, n int) {
	cur.order = d.rng.Perm(n)
	cur.next = 0
	if n > 1 && cur.order[0] == cur.last {
		swap := 1 + d.rng.Intn(n-1)
		cur.order[0], cur.order[swap] = cur.order[swap], cur.order[0]
	}
}
