// Package stratis assembles the stratis command tree and executes it.
package stratis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/daemonsys"
	"github.com/opensvc/stratis/core/stratiscmd"
	"github.com/opensvc/stratis/util/logging"
	"github.com/opensvc/stratis/util/render"
	"github.com/opensvc/stratis/util/version"
)

// tree is a command tree and the state shared by its commands.
type tree struct {
	root    *cobra.Command
	options stratiscmd.OptsGlobal

	// ran is set when a command RunE is entered: errors returned before
	// are command line grammar errors.
	ran bool
}

func newTree() *tree {
	t := &tree{}
	t.root = &cobra.Command{
		Use:               filepath.Base(os.Args[0]),
		Short:             "the stratis storage management command",
		PersistentPreRunE: t.persistentPreRunE,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version.Version(),
	}
	t.root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &clierr.UsageError{Err: err}
	})
	stratiscmd.FlagsGlobal(t.root.PersistentFlags(), &t.options)
	g := &t.options
	t.root.AddCommand(
		newCmdPool(g),
		newCmdFilesystem(g),
		newCmdBlockdev(g),
		newCmdKey(g),
		stratiscmd.NewCmdReport(g),
		newCmdDaemon(g),
		newCmdDebug(g),
	)
	t.hookRunE(t.root)
	return t
}

// hookRunE wraps the RunE of cmd and its descendants to record the
// command line was accepted. Command groups get a RunE printing their
// help, so an unknown subcommand is not silently ignored.
func (t *tree) hookRunE(cmd *cobra.Command) {
	if cmd.RunE == nil && cmd.Run == nil && cmd.HasSubCommands() {
		cmd.RunE = runGroup
	}
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			t.ran = true
			return run(cmd, args)
		}
	}
	for _, c := range cmd.Commands() {
		t.hookRunE(c)
	}
}

func runGroup(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &clierr.UsageError{Err: fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
	}
	return cmd.Help()
}

func (t *tree) persistentPreRunE(cmd *cobra.Command, _ []string) error {
	render.SetColor(t.options.Color)
	level := "info"
	if t.options.Debug {
		level = "debug"
	}
	return logging.Configure(logging.Config{
		WithConsoleLog: true,
		WithColor:      t.options.Color != "no",
		Level:          level,
	})
}

// Execute runs the command line of the process and exits.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line args and returns the process exit code.
// A reported failure prints a single line on stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := ExecuteArgs(ctx, args, stdout, stderr)
	if err == nil {
		return clierr.ExitOK
	}
	if ctx.Err() != nil && !errors.Is(err, clierr.ErrInterrupted) {
		err = &clierr.InterruptedError{Err: err}
	}
	log.Debug().Err(err).Msg("execution failed")
	if msg := clierr.Message(err, propagate(args)); msg != "" {
		fmt.Fprintln(stderr, msg)
	}
	return clierr.ExitCode(err)
}

// ExecuteArgs executes the command line args, with the outputs redirected
// to stdout and stderr, and returns the classified error.
func ExecuteArgs(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	t := newTree()
	t.root.SetArgs(args)
	t.root.SetOut(stdout)
	t.root.SetErr(stderr)
	err := t.root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return nil
	case !t.ran:
		var usageErr *clierr.UsageError
		if errors.As(err, &usageErr) {
			return err
		}
		return &clierr.UsageError{Err: err}
	default:
		return explain(ctx, err)
	}
}

// explain adds the state of the stratisd unit to the explanation of an
// unreachable daemon.
func explain(ctx context.Context, err error) error {
	var transportErr *clierr.TransportError
	if !errors.As(err, &transportErr) || !transportErr.Unreachable {
		return err
	}
	if s := daemonsys.Explain(ctx); s != "" {
		transportErr.Explanation += " " + s
	}
	return err
}

// propagate returns true if --propagate is in args. It is looked up in
// the raw arguments so it applies to errors raised before the flags are
// parsed.
func propagate(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "--propagate", "--propagate=true":
			return true
		}
	}
	return false
}
