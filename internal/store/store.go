package store

import (
	"sync"

	"github.com/Makepad-fr/mxr/internal/model"
)

// Snapshot is a read-only copy of the store state handed to observers.
type Snapshot struct {
	Phase           string       `json:"phase"`
	Todos           []model.Todo `json:"todos"`
	PendingDeleteID string       `json:"pendingDeleteId,omitempty"`
}

// Store holds the todo list plus the transient UI state the workflow
// exposes to the view. It is only mutated through its action methods;
// each mutation notifies subscribers with the resulting Snapshot.
//
// Mutations are expected to come from a single owner (the workflow).
// Reads may happen from any goroutine.
type Store struct {
	mu              sync.RWMutex
	phase           string
	todos           []model.Todo
	pendingDeleteID string

	newID       model.IDFunc
	defaultName string

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	order  []int
	nextID int
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides the id generator used by AddTodo.
func WithIDFunc(f model.IDFunc) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

// WithDefaultName overrides the name given to added todos.
func WithDefaultName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.defaultName = name
		}
	}
}

// New returns an empty store in no phase.
func New(opts ...Option) *Store {
	s := &Store{
		todos:       []model.Todo{},
		newID:       model.NewID,
		defaultName: model.DefaultName,
		subs:        make(map[int]func(Snapshot)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ---------------------------------------------------
// reads
// ---------------------------------------------------

func (s *Store) Phase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Store) PendingDeleteID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingDeleteID
}

// Todos returns a copy of the list in insertion order.
func (s *Store) Todos() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTodos(s.todos)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:           s.phase,
		Todos:           cloneTodos(s.todos),
		PendingDeleteID: s.pendingDeleteID,
	}
}

// ---------------------------------------------------
// actions
// ---------------------------------------------------

func (s *Store) SetPhase(phase string) {
	s.mutate(func() { s.phase = phase })
}

// SetTodos replaces the whole collection, keeping the given order.
func (s *Store) SetTodos(todos []model.Todo) {
	s.mutate(func() { s.todos = cloneTodos(todos) })
}

// AddTodo appends a todo with a fresh id and the default name.
func (s *Store) AddTodo() model.Todo {
	var added model.Todo
	s.mutate(func() {
		id := s.newID()
		for s.indexLocked(id) >= 0 || id == "" {
			id = s.newID()
		}
		added = model.Todo{ID: id, Name: s.defaultName}
		s.todos = append(s.todos, added)
	})
	return added
}

// EditTodo renames the todo with the given id. Unknown ids are ignored.
func (s *Store) EditTodo(id, name string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.todos[i].Name = name
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return true
}

func (s *Store) SetPendingDeleteID(id string) {
	s.mutate(func() { s.pendingDeleteID = id })
}

func (s *Store) ClearPendingDeleteID() {
	s.mutate(func() { s.pendingDeleteID = "" })
}

// DeleteTodo removes the todo referenced by the pending delete id and
// clears it. A pending id that no longer resolves is dropped silently.
func (s *Store) DeleteTodo() bool {
	removed := false
	s.mutate(func() {
		if i := s.indexLocked(s.pendingDeleteID); i >= 0 && s.pendingDeleteID != "" {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			removed = true
		}
		s.pendingDeleteID = ""
	})
	return removed
}

// ---------------------------------------------------
// observation
// ---------------------------------------------------

// Subscribe registers fn to be called after every mutation. Calls happen
// synchronously on the mutating goroutine, in subscription order.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTodos(in []model.Todo) []model.Todo {
	out := make([]model.Todo, len(in))
	copy(out, in)
	return out
}
