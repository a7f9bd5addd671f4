package driver

import "seymour-harness/internal/response"

// MenuState is the driver's belief about which on-device menu is
// currently displayed (spec.md §3). It is set to LoginPrompt after every
// Quit transition; a Rebooting response read during a later operation
// does not change it (only the first Response seen at construction is
// mapped to a state).
type MenuState int

const (
	LoginPrompt MenuState = iota
	DebugMenu
	LifecycleMenu
	BrightnessMenu
)

func (s MenuState) String() string {
	switch s {
	case LoginPrompt:
		return "LoginPrompt"
	case DebugMenu:
		return "DebugMenu"
	case LifecycleMenu:
		return "LifecycleMenu"
	case BrightnessMenu:
		return "BrightnessMenu"
	default:
		return "Unknown"
	}
}

// menuOrder gives the linear position of each non-root menu, so a
// generic step function can tell whether it needs to move forward
// (deeper into the menu line) or backward (toward LoginPrompt) to make
// progress toward a target — a table, not a tangle of per-target
// conditionals, per spec.md §9's design note.
var menuOrder = map[MenuState]int{
	DebugMenu:      0,
	LifecycleMenu:  1,
	BrightnessMenu: 2,
}

// forwardStep describes how to move one step deeper from a given state.
type forwardStep struct {
	cmd  response.Command
	next MenuState
}

var forward = map[MenuState]forwardStep{
	DebugMenu:     {response.LifecycleMenu, LifecycleMenu},
	LifecycleMenu: {response.BrightnessMenu, BrightnessMenu},
}

// backward maps a state to the one reached by writing UpMenuLevel.
var backward = map[MenuState]MenuState{
	BrightnessMenu: LifecycleMenu,
	LifecycleMenu:  DebugMenu,
}
