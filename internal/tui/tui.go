package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/mxr/internal/model"
	"github.com/Makepad-fr/mxr/internal/store"
	"github.com/Makepad-fr/mxr/internal/workflow"
)

// eventMsg carries a workflow event through the Bubble Tea loop, which is
// the single owner of the App while the TUI runs.
type eventMsg workflow.Event

// todoItem adapts model.Todo to bubbles/list.Item
type todoItem struct{ model.Todo }

func (i todoItem) Title() string       { return i.Name }
func (i todoItem) Description() string { return i.ID }
func (i todoItem) FilterValue() string { return i.Name }

// itemDelegate renders a todo on one line and strikes through the one
// awaiting delete confirmation.
type itemDelegate struct {
	pending func() string
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	name := it.Name
	if name == "" {
		name = mutedStyle.Render("(unnamed)")
	}
	if d.pending != nil && d.pending() == it.ID {
		name = markedStyle.Render(name)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+name+" "+mutedStyle.Render("#"+it.ID))
}

type Model struct {
	ctx   context.Context
	app   *workflow.App
	store *store.Store

	list list.Model
	spin spinner.Model

	// inline edit
	ti      textinput.Model
	editing bool
	editID  string
	editErr string

	width, height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// New builds the view for app. st must be the store app mutates.
func New(ctx context.Context, app *workflow.App, st *store.Store) Model {
	l := list.New(nil, itemDelegate{pending: st.PendingDeleteID}, 0, 0)
	l.Title = "Todos"
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	// free d/u/b/f for our own bindings
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "pgdown"), key.WithHelp("→/pgdn", "next page"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "pgup"), key.WithHelp("←/pgup", "prev page"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, deleteBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, deleteBind} }

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter a name..."
	ti.CharLimit = 200

	m := Model{
		ctx:    ctx,
		app:    app,
		store:  st,
		list:   l,
		spin:   sp,
		ti:     ti,
		width:  80,
		height: 24,
	}
	m.resize()
	return m
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, app *workflow.App, st *store.Store) error {
	p := tea.NewProgram(New(ctx, app, st), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func send(ev workflow.Event) tea.Cmd {
	return func() tea.Msg { return eventMsg(ev) }
}

// Init starts loading as soon as the program is up.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, send(workflow.Load()))
}

func (m Model) phase() workflow.State { return workflow.State(m.store.Phase()) }

// dispatch feeds ev to the workflow and refreshes the list from the store.
func (m Model) dispatch(ev workflow.Event) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if wc := m.app.Send(ev); wc != nil {
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg { return eventMsg(wc(ctx)) })
	}
	cmds = append(cmds, m.syncList())
	return m, tea.Batch(cmds...)
}

func (m *Model) syncList() tea.Cmd {
	todos := m.store.Todos()
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, todoItem{t})
	}
	cmd := m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	return cmd
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.Todo, true
}

func (m *Model) resize() {
	listHeight := m.height - 6
	if m.editing || m.phase() == workflow.StateConfirmingDelete {
		listHeight -= 5
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case eventMsg:
		var cmd tea.Cmd
		m, cmd = m.dispatch(workflow.Event(msg))
		m.resize()
		return m, cmd

	case spinner.TickMsg:
		if m.phase() != workflow.StateLoadingTodos && m.phase() != workflow.StateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		switch m.phase() {
		case workflow.StateConfirmingDelete:
			return m.updateConfirm(msg)
		case workflow.StateLoaded:
			return m.updateLoaded(msg)
		default:
			switch msg.String() {
			case "q", "esc":
				return m, tea.Quit
			case "l":
				return m, send(workflow.Load())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateLoaded(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "a":
		return m, send(workflow.AddTodo())
	case "e":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editing = true
		m.editID = t.ID
		m.editErr = ""
		m.ti.SetValue(t.Name)
		m.ti.CursorEnd()
		m.resize()
		cmd := m.ti.Focus()
		return m, cmd
	case "d":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, send(workflow.DeleteTodo(t.ID))
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.ti.Value())
		if name == "" {
			m.editErr = "Name cannot be empty"
			return m, nil
		}
		id := m.editID
		m.stopEditing()
		return m, send(workflow.EditTodo(id, name))
	case "esc":
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.editID = ""
	m.editErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return m, send(workflow.ConfirmDelete())
	case "n", "esc":
		return m, send(workflow.CancelDelete())
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.store.Snapshot()
	header := fmt.Sprintf("%s   %s   %s %d",
		titleStyle.Render("Welcome to the MXR Stack Workshop"),
		phaseStyle(snap.Phase).Render(snap.Phase),
		accentStyle.Render("Total"), len(snap.Todos),
	)

	var body string
	switch workflow.State(snap.Phase) {
	case workflow.StateWaiting:
		body = mutedStyle.Render("Press l to load todos, q to quit.")
	case workflow.StateLoadingTodos:
		body = m.spin.View() + " Loading todos..."
	default:
		body = m.list.View()
		if m.editing {
			title := "Edit todo"
			if m.editErr != "" {
				title += " " + errorStyle.Render(m.editErr)
			}
			body += "\n" + frameStyle.Render(title+"\n"+m.ti.View())
		}
		if workflow.State(snap.Phase) == workflow.StateConfirmingDelete {
			body += "\n" + confirmView(snap)
		}
	}
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

func confirmView(snap store.Snapshot) string {
	name := snap.PendingDeleteID
	for _, t := range snap.Todos {
		if t.ID == snap.PendingDeleteID {
			name = t.Name
			break
		}
	}
	return modalStyle.Render(
		"Are you sure you'd like to delete this todo?\n" +
			markedStyle.Render(name) + "\n\n" +
			helpStyle.Render("y confirm • n cancel"),
	)
}
