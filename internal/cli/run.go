package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/mxr/internal/store"
	"github.com/Makepad-fr/mxr/internal/ui"
	"github.com/Makepad-fr/mxr/internal/workflow"
)

var errLoadFailed = errors.New("loading todos failed")

// maxNameWidth caps a todo name in the panel, in terminal cells.
const maxNameWidth = 80

type runOptions struct {
	JSON    bool
	Timeout time.Duration
}

func newRunCmd(opts *Options) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [step...]",
		Short: "Load the list, apply scripted steps and print the result",
		Long: `Run the workflow without a terminal UI.

Steps:
  add                  Add a todo with the default name
  edit <id> <name...>  Rename a todo
  delete <id>          Ask to delete a todo
  confirm | cancel     Answer the pending delete`,
		Example: `  mxr run
  mxr run add "edit 2 Walk the cat" "delete 3" confirm
  mxr run --json "delete 1" cancel`,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := ParseScript(args)
			if err != nil {
				return usageError{err}
			}
			e, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()
			if err := runScript(ctx, e, events); err != nil {
				return err
			}
			snap := e.store.Snapshot()
			if ro.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			ui.OK(cmd.ErrOrStderr(), fmt.Sprintf("steps applied: %d", len(events)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&ro.JSON, "json", false, "print the final store state as JSON")
	cmd.Flags().DurationVar(&ro.Timeout, "timeout", 30*time.Second, "give up after this long")
	return cmd
}

// runScript loads the list, then applies events one by one, each processed
// to completion before the next is sent.
func runScript(ctx context.Context, e *env, events []workflow.Event) error {
	svc := workflow.NewService(e.app, e.log)
	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- svc.Run(runCtx) }()
	defer func() {
		stop()
		<-done
	}()

	if err := svc.SendSync(ctx, workflow.Load()); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	got, err := workflow.WaitPhase(ctx, e.store, workflow.StateLoaded, workflow.StateWaiting)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if got != workflow.StateLoaded {
		return errLoadFailed
	}

	for _, ev := range events {
		if err := svc.SendSync(ctx, ev); err != nil {
			return fmt.Errorf("%s: %w", ev, err)
		}
		e.log.Debug("step applied", "event", ev.String(), "phase", e.store.Phase())
	}
	return nil
}

// -------------- rendering helpers --------------

func printSnapshot(w io.Writer, snap store.Snapshot) {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %s  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Muted, "phase"), ui.C(t.Accent, snap.Phase),
		ui.C(t.Accent, "Total"), len(snap.Todos),
	)

	lines := []string{header, ""}
	lines = append(lines, todoLines(snap)...)
	if snap.PendingDeleteID != "" {
		lines = append(lines, "")
		lines = append(lines, ui.C(t.Pending, "Awaiting confirmation to delete #"+snap.PendingDeleteID))
	}
	ui.Panel(w, lines)
}

func todoLines(snap store.Snapshot) []string {
	t := ui.Current()
	if len(snap.Todos) == 0 {
		return []string{ui.C(t.Muted, "no todos")}
	}
	out := make([]string, 0, len(snap.Todos))
	for i, td := range snap.Todos {
		idx := fmt.Sprintf("%2d.", i+1)
		bullet := ui.C(t.Muted, t.Bullet)
		if td.ID == snap.PendingDeleteID {
			bullet = ui.C(t.Error, t.Marker)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.Dim(idx), bullet, ui.Truncate(td.Name, maxNameWidth), ui.Dim("#"+td.ID)))
	}
	return out
}
