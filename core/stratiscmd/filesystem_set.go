package stratiscmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/stratisd"
)

type (
	// CmdFilesystemSet sets a writable property of a filesystem.
	CmdFilesystemSet struct {
		OptsGlobal
		Pool  string
		Name  string
		Limit string
		set   func(context.Context, *stratisd.Filesystem) error
	}
)

func NewCmdFilesystemSetSizeLimit(g *OptsGlobal) *cobra.Command {
	var options CmdFilesystemSet
	cmd := &cobra.Command{
		Use:   "set-size-limit <pool> <fs> <limit>",
		Short: "set an upper limit on the size of a filesystem",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Pool = args[0]
			options.Name = args[1]
			options.Limit = args[2]
			limit, err := sizeArg("size-limit", options.Limit)
			if err != nil {
				return err
			}
			options.set = func(ctx context.Context, fs *stratisd.Filesystem) error {
				return fs.SetSizeLimit(ctx, limit)
			}
			return options.Run()
		},
	}
	return cmd
}

func NewCmdFilesystemUnsetSizeLimit(g *OptsGlobal) *cobra.Command {
	return newCmdFilesystemSet(g, "unset-size-limit", "remove the upper limit on the size of a filesystem",
		func(ctx context.Context, fs *stratisd.Filesystem) error {
			return fs.SetSizeLimit(ctx, stratisd.OptionalString{})
		})
}

func NewCmdFilesystemScheduleRevert(g *OptsGlobal) *cobra.Command {
	return newCmdFilesystemSet(g, "schedule-revert", "revert a snapshot into its origin at the next pool start",
		func(ctx context.Context, fs *stratisd.Filesystem) error {
			return fs.SetMergeScheduled(ctx, true)
		})
}

func NewCmdFilesystemCancelRevert(g *OptsGlobal) *cobra.Command {
	return newCmdFilesystemSet(g, "cancel-revert", "cancel a scheduled revert of a snapshot",
		func(ctx context.Context, fs *stratisd.Filesystem) error {
			return fs.SetMergeScheduled(ctx, false)
		})
}

func newCmdFilesystemSet(g *OptsGlobal, action, short string, set func(context.Context, *stratisd.Filesystem) error) *cobra.Command {
	options := CmdFilesystemSet{set: set}
	cmd := &cobra.Command{
		Use:   action + " <pool> <fs>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Pool = args[0]
			options.Name = args[1]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdFilesystemSet) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	_, fs, err := s.filesystem(ctx, t.Pool, t.Name)
	if err != nil {
		return err
	}
	return t.set(ctx, fs)
}
