package stratiscmd

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdPoolDestroy struct {
		OptsGlobal
		Name string
	}
)

func NewCmdPoolDestroy(g *OptsGlobal) *cobra.Command {
	var options CmdPoolDestroy
	cmd := &cobra.Command{
		Use:   "destroy <pool>",
		Short: "destroy a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdPoolDestroy) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	id := objects.NewName(t.Name)
	_, pool, _, err := s.pool(ctx, id)
	if err != nil {
		return err
	}
	changed, err := s.manager.DestroyPool(ctx, pool.Path())
	if err != nil {
		return err
	}
	return noChange(changed, "destroy", id.String())
}
