package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/mxr/internal/workflow"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		step string
		want workflow.Event
	}{
		{"load", workflow.Load()},
		{"add", workflow.AddTodo()},
		{"ADD_TODO", workflow.AddTodo()},
		{"edit 2 Walk the cat", workflow.EditTodo("2", "Walk the cat")},
		{"edit 2 Walk  the   cat", workflow.EditTodo("2", "Walk  the   cat")},
		{"edit\t2\tTab\tseparated ", workflow.EditTodo("2", "Tab\tseparated")},
		{"edit 2 Café crème", workflow.EditTodo("2", "Café crème")},
		{"delete 3", workflow.DeleteTodo("3")},
		{"rm 3", workflow.DeleteTodo("3")},
		{"confirm", workflow.ConfirmDelete()},
		{"yes", workflow.ConfirmDelete()},
		{"cancel_delete", workflow.CancelDelete()},
		{"  no  ", workflow.CancelDelete()},
	}
	for _, tt := range tests {
		t.Run(tt.step, func(t *testing.T) {
			got, err := ParseEvent(tt.step)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEventErrors(t *testing.T) {
	for _, step := range []string{"", "   ", "fly", "edit 2", "edit 2   ", "delete", "delete 1 2", "add 3"} {
		t.Run(step, func(t *testing.T) {
			_, err := ParseEvent(step)
			assert.Error(t, err)
		})
	}

	_, err := ParseEvent("done.invoke.loader")
	assert.ErrorIs(t, err, workflow.ErrUnknownEvent)
}

func TestParseScriptReportsStep(t *testing.T) {
	_, err := ParseScript([]string{"add", "bogus"})
	assert.ErrorContains(t, err, `step 2 "bogus"`)

	events, err := ParseScript([]string{"add", "delete 1", "confirm"})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
