package loader

import (
	"context"
	"time"

	"github.com/Makepad-fr/mxr/internal/model"
)

// Loader fetches the initial todo list. It is invoked once per LOAD.
type Loader interface {
	Load(ctx context.Context) ([]model.Todo, error)
}

// Func adapts a plain function to Loader.
type Func func(ctx context.Context) ([]model.Todo, error)

func (f Func) Load(ctx context.Context) ([]model.Todo, error) { return f(ctx) }

// Seed is the payload served by the demo API.
func Seed() []model.Todo {
	return []model.Todo{
		{ID: "1", Name: "Take a shower"},
		{ID: "2", Name: "Walk the dog"},
		{ID: "3", Name: "Go to work"},
	}
}

// Static simulates a network fetch: it waits Delay, then returns Todos
// (Seed when nil). It only fails if ctx is done first.
type Static struct {
	Delay time.Duration
	Todos []model.Todo
}

func (s Static) Load(ctx context.Context) ([]model.Todo, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}
	todos := s.Todos
	if todos == nil {
		todos = Seed()
	}
	out := make([]model.Todo, len(todos))
	copy(out, todos)
	return out, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
