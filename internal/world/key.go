// Package world provides the keyboard grid the city is built on and the day cycle.
package world

import (
	"github.com/samdwyer/typecity/internal/entity"
	"github.com/samdwyer/typecity/internal/gamedata"
)

// Key is one position on the keyboard grid.
type Key struct {
	Char       rune                  // Lowercase layout character
	Row, Col   int                   // Grid position in the layout
	Locked     bool                  // Locked keys must be bought with knowledge
	Active     bool                  // False once the building was harvested this phase
	UnlockCost int                   // Knowledge needed to unlock, fixed at construction
	Building   *gamedata.BuildingDef // Building on this key, nil if empty
}

// HasBuilding returns true if a building stands on the key.
func (k *Key) HasBuilding() bool {
	return k.Building != nil
}

// Unlock spends knowledge to unlock the key. It returns false and changes
// nothing if the key is already unlocked or knowledge is insufficient.
func (k *Key) Unlock(knowledge *entity.Resource) bool {
	if !k.Locked || !knowledge.Has(k.UnlockCost) {
		return false
	}
	knowledge.Subtract(k.UnlockCost)
	k.Locked = false
	return true
}
