package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-vanguard/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions. Keeping
// the bindings in one place makes them testable and easy to document.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action. Returns the action (may
// be ActionNone) and whether it was a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ":
		return core.ActionJump, false
	case "f":
		return core.ActionFire, false
	case "g":
		return core.ActionSpecial, false
	case "e":
		return core.ActionDash, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}
