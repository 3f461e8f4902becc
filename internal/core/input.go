package core

// Action represents a semantic input, abstracted from physical key presses.
// The platform layer debounces keys and sets at most one frame entry per action.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow, h
	ActionRight            // D, Right arrow, l
	ActionDown             // S, Down arrow, j
	ActionUp               // W, Up arrow, k
	ActionNextLevel        // N - request the next level
	ActionPrevLevel        // P - request the previous level
	ActionQuit             // Q, Ctrl+C
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
	case ActionDown:
		return "Down"
	case ActionUp:
		return "Up"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions newly pressed during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as pressed for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was pressed this frame.
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

// directionPriority is the order in which simultaneous presses are honored.
var directionPriority = [...]struct {
	action Action
	dir    Dir
}{
	{ActionLeft, DirLeft},
	{ActionRight, DirRight},
	{ActionDown, DirDown},
	{ActionUp, DirUp},
}

// ResolveDirection picks the single direction honored this tick.
// Left wins over right, right over down, down over up.
// Returns false when no direction was pressed.
func ResolveDirection(f InputFrame) (Dir, bool) {
	for _, p := range directionPriority {
		if f.Has(p.action) {
			return p.dir, true
		}
	}
	return 0, false
}
