package cli

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Makepad-fr/mxr/internal/workflow"
)

var verbs = map[string]workflow.EventType{
	"load":    workflow.EventLoad,
	"add":     workflow.EventAddTodo,
	"edit":    workflow.EventEditTodo,
	"delete":  workflow.EventDeleteTodo,
	"rm":      workflow.EventDeleteTodo,
	"confirm": workflow.EventConfirmDelete,
	"yes":     workflow.EventConfirmDelete,
	"cancel":  workflow.EventCancelDelete,
	"no":      workflow.EventCancelDelete,
}

// ParseEvent turns one script step ("add", "edit 2 Buy milk", "delete 2",
// "confirm", "cancel" or the raw event names) into a workflow event. An
// edit name is kept as written after the id, inner spaces included.
func ParseEvent(step string) (workflow.Event, error) {
	verb, rest := cutField(step)
	if verb == "" {
		return workflow.Event{}, fmt.Errorf("empty step")
	}
	typ, ok := verbs[strings.ToLower(verb)]
	if !ok {
		var err error
		if typ, err = workflow.ParseEventType(verb); err != nil {
			return workflow.Event{}, err
		}
	}

	switch typ {
	case workflow.EventEditTodo:
		id, name := cutField(rest)
		name = strings.TrimRightFunc(name, unicode.IsSpace)
		if id == "" || name == "" {
			return workflow.Event{}, fmt.Errorf("usage: edit <id> <name...>")
		}
		return workflow.EditTodo(id, name), nil
	case workflow.EventDeleteTodo:
		args := strings.Fields(rest)
		if len(args) != 1 {
			return workflow.Event{}, fmt.Errorf("usage: delete <id>")
		}
		return workflow.DeleteTodo(args[0]), nil
	}
	if strings.TrimSpace(rest) != "" {
		return workflow.Event{}, fmt.Errorf("%s takes no arguments", strings.ToLower(verb))
	}
	return workflow.Event{Type: typ}, nil
}

// cutField splits off the first whitespace-separated field of s. rest
// starts at the next non-space rune and is otherwise untouched.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

func ParseScript(steps []string) ([]workflow.Event, error) {
	events := make([]workflow.Event, 0, len(steps))
	for i, s := range steps {
		ev, err := ParseEvent(s)
		if err != nil {
			return nil, fmt.Errorf("step %d %q: %w", i+1, s, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
