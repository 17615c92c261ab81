package stratiscmd

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdPoolOverprovision struct {
		OptsGlobal
		Name     string
		Decision string
	}
)

func NewCmdPoolOverprovision(g *OptsGlobal) *cobra.Command {
	var options CmdPoolOverprovision
	cmd := &cobra.Command{
		Use:       "overprovision <pool> yes|no",
		Short:     "allow or deny the sum of the filesystems logical sizes to exceed the pool size",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"yes", "no"},
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			options.Decision = args[1]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdPoolOverprovision) Run() error {
	var allowed bool
	switch t.Decision {
	case "yes":
		allowed = true
	case "no":
	default:
		return clierr.Validationf("invalid overprovision decision %q: use yes or no", t.Decision)
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
	return pool.SetOverprovisioning(ctx, allowed)
}
