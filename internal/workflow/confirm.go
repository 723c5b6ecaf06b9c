package workflow

import (
	"log/slog"

	"github.com/Makepad-fr/mxr/internal/logging"
)

// Result is the completion data of a confirmation.
type Result struct {
	DeleteTodo bool
	ID         string
}

var confirmTransitions = map[State]map[EventType]State{
	StateAwaitingConfirmation: {
		EventConfirmDelete: StateConfirmed,
		EventCancelDelete:  StateCanceled,
	},
}

// Confirm is the delete-confirmation machine. A fresh instance is created
// for every pending deletion and dropped once it reaches a final state.
type Confirm struct {
	todoID string
	state  State
	log    *slog.Logger
}

// NewConfirm starts a confirmation for deleting todoID.
func NewConfirm(todoID string, log *slog.Logger) *Confirm {
	if log == nil {
		log = logging.NewNop()
	}
	return &Confirm{todoID: todoID, state: StateAwaitingConfirmation, log: log}
}

func (c *Confirm) State() State { return c.state }

func (c *Confirm) Done() bool { return c.state.Final() }

// Send feeds ev to the machine. It returns the completion result and true
// once the machine reaches a final state; unrecognised events are dropped.
func (c *Confirm) Send(ev Event) (Result, bool) {
	next, ok := confirmTransitions[c.state][ev.Type]
	if !ok {
		c.log.Debug("confirm: event ignored", "state", c.state, "event", ev.Type)
		return Result{}, false
	}
	c.log.Debug("confirm: transition", "from", c.state, "to", next, "event", ev.Type)
	c.state = next
	return c.result(), true
}

func (c *Confirm) result() Result {
	if c.state == StateConfirmed {
		return Result{DeleteTodo: true, ID: c.todoID}
	}
	return Result{DeleteTodo: false}
}
