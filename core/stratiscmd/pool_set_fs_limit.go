package stratiscmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdPoolSetFsLimit struct {
		OptsGlobal
		Name   string
		Amount string
	}
)

func NewCmdPoolSetFsLimit(g *OptsGlobal) *cobra.Command {
	var options CmdPoolSetFsLimit
	cmd := &cobra.Command{
		Use:   "set-fs-limit <pool> <amount>",
		Short: "set the maximum number of filesystems of a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			options.Amount = args[1]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdPoolSetFsLimit) Run() error {
	amount, err := strconv.ParseUint(t.Amount, 10, 64)
	if err != nil {
		return clierr.Validationf("invalid filesystem limit %q: expected a natural number", t.Amount)
	}
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	_, pool, _, err := s.pool(ctx, objects.NewName(t.Name))
	if err != nil {
		return err
	}
	return pool.SetFsLimit(ctx, amount)
}
