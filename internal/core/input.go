package core

// Action represents a semantic game action, abstracted from physical key
// presses. The platform maps keys (or SSH session input) to actions; the
// game consumes actions without knowing the input source.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionUp             // W, Up arrow - aim/climb intent
	ActionDown           // S, Down arrow - aim/drop intent
	ActionJump           // Space - jump (buffered by the simulation)
	ActionFire           // F - fire equipped weapon
	ActionSpecial        // G - special ability (deploy turret)
	ActionDash           // E - dash
	ActionConfirm        // Enter - confirm selection in menus
	ActionBack           // B, Escape - go back
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionFire:
		return "Fire"
	case ActionSpecial:
		return "Special"
	case ActionDash:
		return "Dash"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
