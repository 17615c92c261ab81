package stratiscmd

import (
	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdFilesystemDestroy struct {
		OptsGlobal
		Pool  string
		Names []string
	}
)

func NewCmdFilesystemDestroy(g *OptsGlobal) *cobra.Command {
	var options CmdFilesystemDestroy
	cmd := &cobra.Command{
		Use:   "destroy <pool> <fs>...",
		Short: "destroy filesystems",
		Long:  "Destroy the named filesystems of the pool. Each filesystem is destroyed independently of the failures of the others.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Pool = args[0]
			options.Names = args[1:]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdFilesystemDestroy) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	m, pool, o, err := s.pool(ctx, objects.NewName(t.Pool))
	if err != nil {
		return err
	}
	destroy := func(name string) error {
		id := objects.NewName(name)
		fs, err := m.Resolve(objects.KindFilesystem, id, o.Path)
		if err != nil {
			return err
		}
		changed, _, err := pool.DestroyFilesystems(ctx, []dbus.ObjectPath{fs.Path})
		if err != nil {
			return err
		}
		return noChange(changed, "destroy", "filesystem "+id.String())
	}
	if len(t.Names) == 1 {
		return destroy(t.Names[0])
	}
	return t.batch(t.Names, destroy)
}
