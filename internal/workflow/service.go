package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Makepad-fr/mxr/internal/logging"
	"github.com/Makepad-fr/mxr/internal/store"
)

const defaultQueueSize = 64

// ErrStopped is returned by SendSync once Run has returned.
var ErrStopped = errors.New("workflow stopped")

type envelope struct {
	ev   Event
	done chan struct{}
}

// Service confines an App to one goroutine. Events from any goroutine are
// queued and processed one at a time; commands returned by transitions run
// in their own goroutine and post their result back to the queue.
type Service struct {
	app    *App
	queue  chan envelope
	log    *slog.Logger
	wg     sync.WaitGroup
	closed chan struct{}
	once   sync.Once
}

// NewService wraps app. A nil log discards output.
func NewService(app *App, log *slog.Logger) *Service {
	if log == nil {
		log = logging.NewNop()
	}
	return &Service{
		app:    app,
		queue:  make(chan envelope, defaultQueueSize),
		log:    log,
		closed: make(chan struct{}),
	}
}

// Send queues ev without waiting for it to be processed. Events sent after
// Run has returned are dropped and never reach the queue.
func (s *Service) Send(ev Event) {
	// checked first: select picks randomly among ready cases
	select {
	case <-s.closed:
		s.log.Debug("event dropped, service stopped", "event", ev.Type)
		return
	default:
	}
	select {
	case s.queue <- envelope{ev: ev}:
	case <-s.closed:
		s.log.Debug("event dropped, service stopped", "event", ev.Type)
	}
}

// SendSync queues ev and waits until it has been processed. It does not
// wait for commands the event started.
func (s *Service) SendSync(ctx context.Context, ev Event) error {
	select {
	case <-s.closed:
		return ErrStopped
	default:
	}
	env := envelope{ev: ev, done: make(chan struct{})}
	select {
	case s.queue <- env:
	case <-s.closed:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-env.done:
		return nil
	case <-s.closed:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is done. It waits for in-flight
// commands before returning ctx.Err().
func (s *Service) Run(ctx context.Context) error {
	defer s.once.Do(func() { close(s.closed) })
	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case env := <-s.queue:
			if cmd := s.app.Send(env.ev); cmd != nil {
				s.exec(ctx, cmd)
			}
			if env.done != nil {
				close(env.done)
			}
		}
	}
}

func (s *Service) exec(ctx context.Context, cmd Cmd) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ev := cmd(ctx)
		select {
		case s.queue <- envelope{ev: ev}:
		case <-ctx.Done():
		}
	}()
}

// Observable is the read side of the list store.
type Observable interface {
	Phase() string
	Subscribe(fn func(store.Snapshot)) (unsubscribe func())
}

// WaitPhase blocks until the store reports one of phases, or ctx is done.
// It returns the phase reached.
func WaitPhase(ctx context.Context, st Observable, phases ...State) (State, error) {
	match := func(p string) (State, bool) {
		for _, want := range phases {
			if p == want.String() {
				return want, true
			}
		}
		return "", false
	}

	reached := make(chan State, 1)
	unsub := st.Subscribe(func(snap store.Snapshot) {
		if s, ok := match(snap.Phase); ok {
			select {
			case reached <- s:
			default:
			}
		}
	})
	defer unsub()

	if s, ok := match(st.Phase()); ok {
		return s, nil
	}
	select {
	case s := <-reached:
		return s, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
