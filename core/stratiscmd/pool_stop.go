package stratiscmd

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdPoolStop struct {
		OptsGlobal
		Names []string
		Name  string
		UUID  string
	}
)

func NewCmdPoolStop(g *OptsGlobal) *cobra.Command {
	var options CmdPoolStop
	cmd := &cobra.Command{
		Use:   "stop [<pool>...]",
		Short: "stop pools",
		Long:  "Stop the named pools, or the pool designated by --name or --uuid. Each pool is stopped independently of the failures of the others.",
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Names = args
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagPoolName(flags, &options.Name)
	FlagPoolUUID(flags, &options.UUID)
	return cmd
}

// ids returns the designations of the pools to stop, in input order.
func (t *CmdPoolStop) ids() ([]objects.ID, error) {
	if len(t.Names) > 0 {
		if t.Name != "" || t.UUID != "" {
			return nil, clierr.Validationf("pool names arguments and --name or --uuid are mutually exclusive")
		}
		l := make([]objects.ID, len(t.Names))
		for i, name := range t.Names {
			l[i] = objects.NewName(name)
		}
		return l, nil
	}
	id, err := resourceID(t.Name, t.UUID)
	if err != nil {
		return nil, err
	}
	return []objects.ID{id}, nil
}

func (t *CmdPoolStop) Run() error {
	ids, err := t.ids()
	if err != nil {
		return err
	}
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()

	stop := func(id objects.ID) error {
		changed, err := s.manager.StopPool(ctx, poolIDArg(id))
		if err != nil {
			return err
		}
		return noChange(changed, "stop", id.String())
	}
	if len(ids) == 1 {
		return stop(ids[0])
	}
	items := make([]string, len(ids))
	byItem := make(map[string]objects.ID, len(ids))
	for i, id := range ids {
		items[i] = id.Value()
		byItem[id.Value()] = id
	}
	return t.batch(items, func(item string) error {
		return stop(byItem[item])
	})
}
