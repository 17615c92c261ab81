package stratiscmd

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdPoolRename struct {
		OptsGlobal
		Current string
		New     string
	}
)

func NewCmdPoolRename(g *OptsGlobal) *cobra.Command {
	var options CmdPoolRename
	cmd := &cobra.Command{
		Use:   "rename <current> <new>",
		Short: "rename a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Current = args[0]
			options.New = args[1]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdPoolRename) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	_, pool, _, err := s.pool(ctx, objects.NewName(t.Current))
	if err != nil {
		return err
	}
	changed, err := pool.SetName(ctx, t.New)
	if err != nil {
		return err
	}
	return noChange(changed, "rename", objects.NewName(t.New).String())
}
