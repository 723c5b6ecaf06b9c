package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/mxr/internal/config"
	"github.com/Makepad-fr/mxr/internal/loader"
	"github.com/Makepad-fr/mxr/internal/logging"
	"github.com/Makepad-fr/mxr/internal/store"
	"github.com/Makepad-fr/mxr/internal/tui"
	"github.com/Makepad-fr/mxr/internal/ui"
	"github.com/Makepad-fr/mxr/internal/workflow"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// Options tune behavior from root flags.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Theme      string
	Color      string
}

// usageError marks errors that exit with code 2.
type usageError struct{ error }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

// Execute runs the command line and returns an exit code
// (0 ok, 1 error, 2 usage).
func Execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		ui.Fail(stderr, err.Error())
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "mxr",
		Short:         "A todo list driven by a workflow state machine",
		Long:          "mxr loads a todo list and lets you add, edit and delete todos.\nDeletes go through a confirmation step.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&opts.LogFile, "log-file", "", "write logs to this file")
	pf.StringVar(&opts.Theme, "theme", "", "output theme: classic, neon, mono")
	pf.StringVar(&opts.Color, "color", "", "color output: auto, always, never")

	root.AddCommand(
		newTUICmd(opts),
		newRunCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newTUICmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive todo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "mxr "+Version)
		},
	}
}

// env is everything a command needs, built from config and flags.
type env struct {
	cfg   config.Config
	log   *slog.Logger
	store *store.Store
	app   *workflow.App
	close func()
}

// setup resolves configuration and wires store, loader and workflow.
// defaultLog receives logs when no log file is configured.
func setup(opts *Options, defaultLog io.Writer) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, usagef("config: %w", err)
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if opts.Color != "" {
		cfg.Color = opts.Color
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError{err}
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, usageError{err}
	}
	delay, err := cfg.LoaderDelay()
	if err != nil {
		return nil, usageError{err}
	}

	e := &env{cfg: cfg, close: func() {}}
	w := defaultLog
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		e.close = func() { f.Close() }
	}
	e.log = logging.New(w, level)

	if err := ui.SetColorMode(cfg.Color); err != nil {
		return nil, usageError{err}
	}
	// after the color mode, so mono stays uncolored
	ui.SetTheme(cfg.Theme)
	e.store = store.New(store.WithDefaultName(cfg.Todo.DefaultName))
	e.app = workflow.NewApp(e.store, loader.New(cfg.Loader.Source, delay), workflow.WithLogger(e.log))
	return e, nil
}

func runTUI(cmd *cobra.Command, opts *Options) error {
	// the alt screen owns the terminal; only log when asked to
	e, err := setup(opts, io.Discard)
	if err != nil {
		return err
	}
	defer e.close()
	return tui.Run(cmd.Context(), e.app, e.store)
}
