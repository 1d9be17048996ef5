package game

import "fmt"

// EventKind identifies a discrete input event.
type EventKind int

const (
	EventNone      EventKind = iota // No input pending
	EventRune                       // A printable character
	EventAdvance                    // Advance to the next phase (Tab/Enter)
	EventBackspace                  // Delete the last typed character
	EventEscape                     // Cancel, or exit when pressed twice
)

// Event is one input event consumed by the controller.
type Event struct {
	Kind EventKind
	Rune rune // Set for EventRune
}

// RuneEvent returns an event for a typed character.
func RuneEvent(r rune) Event {
	return Event{Kind: EventRune, Rune: r}
}

// Curses-style key codes accepted by EventFromKeyCode.
const (
	keyNone         = -1
	keyBackspaceBS  = 8
	keyTab          = 9
	keyLineFeed     = 10
	keyReturn       = 13
	keyEscape       = 27
	keyDelete       = 127
	keyBackspaceKey = 263
)

// EventFromKeyCode converts an integer key code into an event.
// Unrecognized codes map to EventNone.
func EventFromKeyCode(code int) Event {
	switch code {
	case keyNone:
		return Event{}
	case keyTab, keyLineFeed, keyReturn:
		return Event{Kind: EventAdvance}
	case keyBackspaceBS, keyDelete, keyBackspaceKey:
		return Event{Kind: EventBackspace}
	case keyEscape:
		return Event{Kind: EventEscape}
	}
	if code >= 32 && code <= 126 {
		return RuneEvent(rune(code))
	}
	return Event{}
}

// String returns a short description for debug logging.
func (e Event) String() string {
	switch e.Kind {
	case EventNone:
		return "none"
	case EventRune:
		return fmt.Sprintf("rune %q", e.Rune)
	case EventAdvance:
		return "advance"
	case EventBackspace:
		return "backspace"
	case EventEscape:
		return "escape"
	default:
		return "unknown"
	}
}
