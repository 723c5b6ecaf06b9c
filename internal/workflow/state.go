package workflow

// State is the name of a machine state. The application machine's
// current state is mirrored into the store's phase.
type State string

const (
	StateWaiting          State = "waiting"
	StateLoadingTodos     State = "loadingTodos"
	StateLoaded           State = "loaded"
	StateConfirmingDelete State = "confirmingDelete"

	StateAwaitingConfirmation State = "awaitingConfirmation"
	StateConfirmed            State = "confirmed"
	StateCanceled             State = "canceled"
)

func (s State) String() string { return string(s) }

// Final reports whether s is a terminal state of the confirmation machine.
func (s State) Final() bool { return s == StateConfirmed || s == StateCanceled }

// Action is a store mutation run on a transition.
type Action int

const (
	ActionSetTodos Action = iota + 1
	ActionAddTodo
	ActionEditTodo
	ActionSetPendingDelete
	ActionDeleteTodo
	ActionClearPendingDelete
)

var actionNames = map[Action]string{
	ActionSetTodos:           "setTodos",
	ActionAddTodo:            "addTodo",
	ActionEditTodo:           "editTodo",
	ActionSetPendingDelete:   "setPendingDelete",
	ActionDeleteTodo:         "deleteTodo",
	ActionClearPendingDelete: "clearPendingDelete",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}
