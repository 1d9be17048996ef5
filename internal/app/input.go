package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/typecity/internal/game"
)

// translateKey converts a terminal key press into a game event.
// Control keys go through the key-code table; named keys such as arrows
// are ignored.
func translateKey(ev *tcell.EventKey) game.Event {
	switch {
	case ev.Key() == tcell.KeyRune:
		return game.RuneEvent(ev.Rune())
	case ev.Key() < tcell.KeyRune:
		return game.EventFromKeyCode(int(ev.Key()))
	default:
		return game.Event{}
	}
}
