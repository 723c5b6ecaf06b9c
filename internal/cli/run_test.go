package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/mxr/internal/model"
	"github.com/Makepad-fr/mxr/internal/store"
	"github.com/Makepad-fr/mxr/internal/ui"
)

func monoTheme(t *testing.T) {
	t.Helper()
	ui.SetTheme("mono")
	t.Cleanup(func() {
		ui.SetColorForcing(false, false)
		ui.SetTheme("classic")
	})
}

func TestTodoLinesKeepsNonASCIINames(t *testing.T) {
	monoTheme(t)
	name := strings.Repeat("é", 41)
	lines := todoLines(store.Snapshot{Todos: []model.Todo{{ID: "1", Name: name}}})
	require.Len(t, lines, 1)
	assert.Equal(t, " 1. - "+name+" #1", lines[0])
}

func TestTodoLinesTruncatesByWidth(t *testing.T) {
	monoTheme(t)
	lines := todoLines(store.Snapshot{Todos: []model.Todo{
		{ID: "1", Name: strings.Repeat("é", 90)},
		{ID: "2", Name: strings.Repeat("x", 100)},
	}})
	require.Len(t, lines, 2)
	for _, ln := range lines {
		assert.True(t, utf8.ValidString(ln), ln)
	}
	assert.Equal(t, " 1. - "+strings.Repeat("é", 77)+"... #1", lines[0])
	assert.Equal(t, " 2. - "+strings.Repeat("x", 77)+"... #2", lines[1])
}

func TestTodoLinesEmpty(t *testing.T) {
	monoTheme(t)
	assert.Equal(t, []string{"no todos"}, todoLines(store.Snapshot{}))
}
