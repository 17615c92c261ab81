package stratiscmd

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	// CmdPoolAdd adds block devices to a pool tier. Action is one of
	// init-cache, add-data or add-cache.
	CmdPoolAdd struct {
		OptsGlobal
		Action  string
		Name    string
		Devices []string
	}

	addFunc func(p *stratisd.Pool, ctx context.Context, devices []string) (bool, []dbus.ObjectPath, error)
)

var addFuncs = map[string]addFunc{
	"init-cache": (*stratisd.Pool).InitCache,
	"add-data":   (*stratisd.Pool).AddDataDevs,
	"add-cache":  (*stratisd.Pool).AddCacheDevs,
}

func newCmdPoolAdd(g *OptsGlobal, action, short string) *cobra.Command {
	options := CmdPoolAdd{Action: action}
	cmd := &cobra.Command{
		Use:   action + " <pool> <blockdev>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			options.Devices = args[1:]
			return options.Run()
		},
	}
	return cmd
}

func NewCmdPoolInitCache(g *OptsGlobal) *cobra.Command {
	return newCmdPoolAdd(g, "init-cache", "initialize the cache tier of a pool with block devices")
}

func NewCmdPoolAddData(g *OptsGlobal) *cobra.Command {
	return newCmdPoolAdd(g, "add-data", "add block devices to the data tier of a pool")
}

func NewCmdPoolAddCache(g *OptsGlobal) *cobra.Command {
	return newCmdPoolAdd(g, "add-cache", "add block devices to the cache tier of a pool")
}

func (t *CmdPoolAdd) Run() error {
	devices, err := absPaths(t.Devices)
	if err != nil {
		return err
	}
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
	changed, added, err := addFuncs[t.Action](pool, ctx, devices)
	if err != nil {
		return err
	}
	log.Debug().Str("action", t.Action).Int("requested", len(devices)).Int("added", len(added)).Msg("block devices added")
	return noChange(changed, t.Action, id.String())
}
