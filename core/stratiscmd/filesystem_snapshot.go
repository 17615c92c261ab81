package stratiscmd

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdFilesystemSnapshot struct {
		OptsGlobal
		Pool     string
		Origin   string
		Snapshot string
	}
)

func NewCmdFilesystemSnapshot(g *OptsGlobal) *cobra.Command {
	var options CmdFilesystemSnapshot
	cmd := &cobra.Command{
		Use:   "snapshot <pool> <origin> <snapshot>",
		Short: "snapshot a filesystem",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Pool = args[0]
			options.Origin = args[1]
			options.Snapshot = args[2]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdFilesystemSnapshot) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	pool, origin, err := s.filesystem(ctx, t.Pool, t.Origin)
	if err != nil {
		return err
	}
	changed, _, err := pool.SnapshotFilesystem(ctx, origin.Path(), t.Snapshot)
	if err != nil {
		return err
	}
	return noChange(changed, "snapshot", objects.NewName(t.Snapshot).String())
}
