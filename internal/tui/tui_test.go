package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/mxr/internal/loader"
	"github.com/Makepad-fr/mxr/internal/store"
	"github.com/Makepad-fr/mxr/internal/workflow"
)

// pump runs cmd and feeds workflow events back into the model until no
// more are produced. Other messages (spinner ticks, cursor blinks) are dropped.
func pump(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case eventMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and pumps any workflow events it triggers.
func press(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	m, cmd := m.Update(keyPress(s))
	return pump(t, m, cmd)
}

func started(t *testing.T) (tea.Model, *store.Store) {
	t.Helper()
	st := store.New()
	app := workflow.NewApp(st, loader.Static{})
	var m tea.Model = New(context.Background(), app, st)
	m = pump(t, m, m.Init())
	require.Equal(t, "loaded", st.Phase())
	return m, st
}

func TestInitLoadsTodos(t *testing.T) {
	m, st := started(t)
	assert.Len(t, m.(Model).list.Items(), 3)
	assert.Equal(t, loader.Seed(), st.Todos())
	assert.Contains(t, m.View(), "Take a shower")
	assert.Contains(t, m.View(), "loaded")
}

func TestWaitingView(t *testing.T) {
	st := store.New()
	app := workflow.NewApp(st, loader.Static{})
	m := New(context.Background(), app, st)
	assert.Contains(t, m.View(), "Press l to load todos")

	press(t, m, "l")
	assert.Equal(t, "loaded", st.Phase())
}

func TestAddKey(t *testing.T) {
	m, st := started(t)
	m = press(t, m, "a")
	require.Len(t, st.Todos(), 4)
	assert.Equal(t, "New Todo", st.Todos()[3].Name)
	assert.Len(t, m.(Model).list.Items(), 4)
}

func TestDeleteCancelAndConfirm(t *testing.T) {
	m, st := started(t)

	m = press(t, m, "d")
	assert.Equal(t, "confirmingDelete", st.Phase())
	assert.Equal(t, "1", st.PendingDeleteID())
	assert.Contains(t, m.View(), "Are you sure you'd like to delete this todo?")

	// list keys are inert while the dialog is open
	m = press(t, m, "a")
	assert.Len(t, st.Todos(), 3)

	m = press(t, m, "n")
	assert.Equal(t, "loaded", st.Phase())
	assert.Len(t, st.Todos(), 3)
	assert.NotContains(t, m.View(), "Are you sure")

	m = press(t, m, "d")
	m = press(t, m, "y")
	assert.Equal(t, "loaded", st.Phase())
	require.Len(t, st.Todos(), 2)
	assert.Equal(t, "2", st.Todos()[0].ID)
	assert.Len(t, m.(Model).list.Items(), 2)
}

func TestEditKey(t *testing.T) {
	m, st := started(t)

	m, _ = m.Update(keyPress("e"))
	require.True(t, m.(Model).editing)
	assert.Equal(t, "Take a shower", m.(Model).ti.Value())

	m, _ = m.Update(keyPress("!"))
	m = press(t, m, "enter")

	assert.False(t, m.(Model).editing)
	assert.Equal(t, "Take a shower!", st.Todos()[0].Name)
}

func TestEditRejectsEmptyName(t *testing.T) {
	m, st := started(t)

	m, _ = m.Update(keyPress("e"))
	mm := m.(Model)
	mm.ti.SetValue("   ")
	m = press(t, mm, "enter")

	assert.True(t, m.(Model).editing)
	assert.Equal(t, "Name cannot be empty", m.(Model).editErr)
	assert.Equal(t, "Take a shower", st.Todos()[0].Name)

	m = press(t, m, "esc")
	assert.False(t, m.(Model).editing)
}

func TestQuit(t *testing.T) {
	m, _ := started(t)
	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSize(t *testing.T) {
	m, _ := started(t)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.(Model).width)
	assert.Equal(t, 96, m.(Model).list.Width())
}
