package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // Left arrow, A - nudge the pointer left
	ActionRight             // Right arrow, D - nudge the pointer right
	ActionStartStop         // Enter, Space - start or stop the round
	ActionDifficulty        // Tab - cycle difficulty
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - restart after game over
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause
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
	case ActionStartStop:
		return "StartStop"
	case ActionDifficulty:
		return "Difficulty"
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

// PointerEvent is a pointer position in absolute terminal cells.
type PointerEvent struct {
	X, Y int
}

// InputFrame represents the input collected between two simulation ticks.
type InputFrame struct {
	Actions map[Action]bool

	// Pointer holds the most recent pointer move, nil when the pointer
	// did not move this frame.
	Pointer *PointerEvent
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

// MovePointer records a pointer move. Later moves overwrite earlier ones.
func (f *InputFrame) MovePointer(x, y int) {
	f.Pointer = &PointerEvent{X: x, Y: y}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and the pointer for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
}
