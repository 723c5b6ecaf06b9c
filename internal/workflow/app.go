package workflow

import (
	"context"
	"log/slog"

	"github.com/Makepad-fr/mxr/internal/loader"
	"github.com/Makepad-fr/mxr/internal/logging"
	"github.com/Makepad-fr/mxr/internal/model"
)

// Store is the mutation surface the machines need from the list store.
type Store interface {
	SetPhase(phase string)
	SetTodos(todos []model.Todo)
	AddTodo() model.Todo
	EditTodo(id, name string) bool
	SetPendingDeleteID(id string)
	ClearPendingDeleteID()
	DeleteTodo() bool
}

// Cmd is asynchronous work requested by a transition. Its returned event
// must be sent back to the machine that produced it.
type Cmd func(ctx context.Context) Event

type transition struct {
	target  State
	actions []Action
	// internal transitions run actions without re-entering the state
	internal bool
}

var appTransitions = map[State]map[EventType]transition{
	StateWaiting: {
		EventLoad: {target: StateLoadingTodos},
	},
	StateLoadingTodos: {
		eventLoadDone:   {target: StateLoaded, actions: []Action{ActionSetTodos}},
		eventLoadFailed: {target: StateWaiting},
	},
	StateLoaded: {
		EventAddTodo:    {target: StateLoaded, actions: []Action{ActionAddTodo}, internal: true},
		EventEditTodo:   {target: StateLoaded, actions: []Action{ActionEditTodo}, internal: true},
		EventDeleteTodo: {target: StateConfirmingDelete, actions: []Action{ActionSetPendingDelete}},
	},
}

// App is the root workflow: waiting -> loadingTodos -> loaded, with
// confirmingDelete delegating to a Confirm child.
//
// App is not safe for concurrent use; one owner feeds it events (see Service
// or the TUI program loop).
type App struct {
	store  Store
	loader loader.Loader
	log    *slog.Logger

	state State
	child *Confirm
}

type AppOption func(*App)

func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// NewApp builds the machine in its initial state and publishes that state
// to the store.
func NewApp(st Store, l loader.Loader, opts ...AppOption) *App {
	a := &App{
		store:  st,
		loader: l,
		log:    logging.NewNop(),
	}
	for _, o := range opts {
		o(a)
	}
	a.state = StateWaiting
	a.store.SetPhase(a.state.String())
	return a
}

func (a *App) State() State { return a.state }

// Child returns the running confirmation machine, or nil.
func (a *App) Child() *Confirm { return a.child }

// Send processes ev to completion. A non-nil Cmd must be run and its
// result sent back.
func (a *App) Send(ev Event) Cmd {
	if a.state == StateConfirmingDelete && a.child != nil {
		return a.forward(ev)
	}

	t, ok := appTransitions[a.state][ev.Type]
	if !ok {
		a.log.Debug("event ignored", "state", a.state, "event", ev.Type)
		return nil
	}
	for _, act := range t.actions {
		a.run(act, ev)
	}
	if t.internal {
		return nil
	}
	return a.enter(t.target, ev)
}

// forward passes ev to the child and applies its result once it finishes.
func (a *App) forward(ev Event) Cmd {
	res, done := a.child.Send(ev)
	if !done {
		return nil
	}
	a.child = nil
	if res.DeleteTodo {
		a.run(ActionDeleteTodo, ev)
	} else {
		a.run(ActionClearPendingDelete, ev)
	}
	return a.enter(StateLoaded, ev)
}

func (a *App) enter(s State, ev Event) Cmd {
	if ev.Type == eventLoadFailed {
		a.log.Error("load failed", "error", ev.Err)
	}
	a.log.Debug("transition", "from", a.state, "to", s, "event", ev.String())
	a.state = s
	a.store.SetPhase(s.String())

	switch s {
	case StateLoadingTodos:
		return a.invokeLoader()
	case StateConfirmingDelete:
		a.child = NewConfirm(ev.ID, a.log)
	}
	return nil
}

func (a *App) invokeLoader() Cmd {
	l := a.loader
	log := a.log
	return func(ctx context.Context) Event {
		log.Info("loading todos")
		todos, err := l.Load(ctx)
		if err != nil {
			return loadFailed(err)
		}
		return loadDone(todos)
	}
}

func (a *App) run(act Action, ev Event) {
	switch act {
	case ActionSetTodos:
		a.store.SetTodos(ev.Todos)
		a.log.Info("loaded todos", "count", len(ev.Todos))
	case ActionAddTodo:
		t := a.store.AddTodo()
		a.log.Debug("added todo", "id", t.ID)
	case ActionEditTodo:
		if !a.store.EditTodo(ev.ID, ev.Name) {
			a.log.Debug("edit: no such todo", "id", ev.ID)
		}
	case ActionSetPendingDelete:
		a.store.SetPendingDeleteID(ev.ID)
	case ActionDeleteTodo:
		if !a.store.DeleteTodo() {
			a.log.Debug("delete: pending todo not found")
		}
	case ActionClearPendingDelete:
		a.store.ClearPendingDeleteID()
	default:
		a.log.Warn("unhandled action", "action", act)
	}
}
