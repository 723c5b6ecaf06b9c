package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/mxr/internal/model"
)

// EventType names the messages the machines react to.
type EventType string

const (
	EventLoad          EventType = "LOAD"
	EventAddTodo       EventType = "ADD_TODO"
	EventEditTodo      EventType = "EDIT_TODO"
	EventDeleteTodo    EventType = "DELETE_TODO"
	EventConfirmDelete EventType = "CONFIRM_DELETE"
	EventCancelDelete  EventType = "CANCEL_DELETE"

	// posted back by the loader invocation
	eventLoadDone   EventType = "done.invoke.loader"
	eventLoadFailed EventType = "error.invoke.loader"
)

// ErrUnknownEvent is returned for event names that cannot be sent from outside.
var ErrUnknownEvent = errors.New("unknown event")

// Event is a message sent into the workflow. Only the fields relevant to
// Type are set.
type Event struct {
	Type  EventType
	ID    string
	Name  string
	Todos []model.Todo
	Err   error
}

func (e Event) String() string {
	switch e.Type {
	case EventEditTodo:
		return fmt.Sprintf("%s{id:%s name:%q}", e.Type, e.ID, e.Name)
	case EventDeleteTodo:
		return fmt.Sprintf("%s{id:%s}", e.Type, e.ID)
	case eventLoadDone:
		return fmt.Sprintf("%s{todos:%d}", e.Type, len(e.Todos))
	}
	return string(e.Type)
}

func Load() Event { return Event{Type: EventLoad} }
func AddTodo() Event { return Event{Type: EventAddTodo} }
func EditTodo(id, name string) Event { return Event{Type: EventEditTodo, ID: id, Name: name} }
func DeleteTodo(id string) Event { return Event{Type: EventDeleteTodo, ID: id} }
func ConfirmDelete() Event { return Event{Type: EventConfirmDelete} }
func CancelDelete() Event { return Event{Type: EventCancelDelete} }
func loadDone(todos []model.Todo) Event { return Event{Type: eventLoadDone, Todos: todos} }
func loadFailed(err error) Event { return Event{Type: eventLoadFailed, Err: err} }

// ParseEventType maps a wire name ("ADD_TODO", case-insensitive) to a
// public event type.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(strings.ToUpper(strings.TrimSpace(s))); t {
	case EventLoad, EventAddTodo, EventEditTodo, EventDeleteTodo, EventConfirmDelete, EventCancelDelete:
		return t, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownEvent, s)
}
