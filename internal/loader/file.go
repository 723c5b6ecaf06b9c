package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/mxr/internal/model"
)

var (
	ErrEmptyID     = errors.New("todo with empty id")
	ErrDuplicateID = errors.New("duplicate todo id")
)

const lockRetry = 20 * time.Millisecond

// File reads seed todos from a JSON or YAML file (chosen by extension).
// A shared lock on <Path>.lock is held while reading so a writer using
// the same lock never hands us a half-written file.
type File struct {
	Path  string
	Delay time.Duration
}

func (f File) Load(ctx context.Context) ([]model.Todo, error) {
	if err := wait(ctx, f.Delay); err != nil {
		return nil, err
	}

	lock := flock.New(f.Path + ".lock")
	locked, err := lock.TryRLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", f.Path, err)
	}
	if locked {
		defer lock.Unlock()
	}

	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var todos []model.Todo
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &todos); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &todos); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	}
	if err := validate(todos); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

func validate(todos []model.Todo) error {
	seen := make(map[string]struct{}, len(todos))
	for i, t := range todos {
		if t.ID == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyID)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// New returns a File loader when source is set, otherwise the demo loader.
func New(source string, delay time.Duration) Loader {
	if strings.TrimSpace(source) != "" {
		return File{Path: source, Delay: delay}
	}
	return Static{Delay: delay}
}
